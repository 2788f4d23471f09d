package waitlist

import (
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from, to entity.WaitlistStatus
		want     *gerr.Error
	}{
		{entity.WaitlistStatusPending, entity.WaitlistStatusApproved, nil},
		{entity.WaitlistStatusPending, entity.WaitlistStatusRejected, nil},
		{entity.WaitlistStatusApproved, entity.WaitlistStatusRejected, gerr.WaitlistEntryAlreadyProcessed},
		{entity.WaitlistStatusApproved, entity.WaitlistStatusApproved, gerr.WaitlistEntryAlreadyProcessed},
		{entity.WaitlistStatusRejected, entity.WaitlistStatusApproved, gerr.WaitlistEntryAlreadyProcessed},
		{entity.WaitlistStatusApproved, entity.WaitlistStatusPending, gerr.Internal},
		{entity.WaitlistStatusPending, entity.WaitlistStatusPending, gerr.Internal},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewProcess(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := &entity.WaitlistEntry{Id: "e1", Status: entity.WaitlistStatusPending}

	p, err := NewProcess(e, entity.WaitlistStatusApproved, "admin-1", at)
	require.NoError(t, err)
	assert.Equal(t, entity.WaitlistProcess{
		Status:      entity.WaitlistStatusApproved,
		ProcessedAt: at,
		ProcessedBy: "admin-1",
	}, p)

	apply(e, p)
	assert.Equal(t, entity.WaitlistStatusApproved, e.Status)
	assert.True(t, e.ProcessedAt.Valid)
	assert.True(t, e.ProcessedBy.Valid)

	_, err = NewProcess(e, entity.WaitlistStatusRejected, "admin-2", at.Add(time.Hour))
	assert.ErrorIs(t, err, gerr.WaitlistEntryAlreadyProcessed)
}
