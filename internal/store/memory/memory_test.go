package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-waitlist/internal/dependency"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store, n int) time.Time {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := s.AddWaitlistEntry(context.Background(), &entity.WaitlistEntry{
			Id:          fmt.Sprintf("e%02d", i),
			Email:       fmt.Sprintf("user%02d@test.com", i),
			Status:      entity.WaitlistStatusPending,
			RequestedAt: base.Add(time.Duration(i) * time.Minute),
			Extension:   entity.ExtensionValues{"seats": float64(i % 3), "company": "acme"},
		})
		require.NoError(t, err)
	}
	return base
}

func TestStore_AddAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()
	seed(t, s, 1)

	e, err := s.GetWaitlistEntryById(ctx, "e00")
	require.NoError(t, err)
	assert.Equal(t, "user00@test.com", e.Email)

	e, err = s.GetWaitlistEntryByEmail(ctx, "user00@test.com")
	require.NoError(t, err)
	assert.Equal(t, "e00", e.Id)

	// returned entries don't alias stored ones
	e.Extension["company"] = "other"
	again, err := s.GetWaitlistEntryById(ctx, "e00")
	require.NoError(t, err)
	assert.Equal(t, "acme", again.Extension["company"])

	_, err = s.GetWaitlistEntryById(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	_, err = s.GetWaitlistEntryByEmail(ctx, "missing@test.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = s.AddWaitlistEntry(ctx, &entity.WaitlistEntry{Id: "other", Email: "user00@test.com"})
	assert.ErrorIs(t, err, entity.ErrWaitlistEmailTaken)
}

func TestStore_ListWaitlistEntries(t *testing.T) {
	s := New()
	ctx := context.Background()
	seed(t, s, 25)

	tests := []struct {
		name    string
		query   entity.WaitlistQuery
		wantIds []string
	}{
		{
			name:    "newest first page one",
			query:   entity.WaitlistQuery{SortBy: entity.SortByRequestedAt, Order: entity.Descending, Limit: 3},
			wantIds: []string{"e24", "e23", "e22"},
		},
		{
			name:    "oldest first second page",
			query:   entity.WaitlistQuery{SortBy: entity.SortByRequestedAt, Order: entity.Ascending, Limit: 10, Offset: 10},
			wantIds: []string{"e10", "e11", "e12", "e13", "e14", "e15", "e16", "e17", "e18", "e19"},
		},
		{
			name: "extension filter",
			query: entity.WaitlistQuery{
				Filters: []entity.WaitlistFilter{{Field: "seats", Operator: entity.OperatorEq, Value: float64(2)}},
				SortBy:  entity.SortById,
				Order:   entity.Ascending,
				Limit:   3,
			},
			wantIds: []string{"e02", "e05", "e08"},
		},
		{
			name: "email filter",
			query: entity.WaitlistQuery{
				Filters: []entity.WaitlistFilter{{Field: "email", Operator: entity.OperatorEq, Value: "user07@test.com"}},
				Limit:   10,
			},
			wantIds: []string{"e07"},
		},
		{
			name:    "offset past the end",
			query:   entity.WaitlistQuery{Limit: 10, Offset: 30},
			wantIds: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.ListWaitlistEntries(ctx, tt.query)
			require.NoError(t, err)
			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.Id)
			}
			assert.Equal(t, tt.wantIds, ids)
		})
	}

	_, err := s.ListWaitlistEntries(ctx, entity.WaitlistQuery{SortBy: "bad field!"})
	assert.ErrorIs(t, err, entity.ErrInvalidSortField)
}

func TestStore_CountAndProcess(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := seed(t, s, 4)
	at := base.Add(time.Hour)

	pending := []entity.WaitlistFilter{{Field: "status", Operator: entity.OperatorEq, Value: entity.WaitlistStatusPending}}

	n, err := s.CountWaitlistEntries(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	e, err := s.ProcessWaitlistEntry(ctx, "e01", entity.WaitlistProcess{
		Status:      entity.WaitlistStatusApproved,
		ProcessedAt: at,
		ProcessedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WaitlistStatusApproved, e.Status)
	assert.Equal(t, at, e.ProcessedAt.Time)

	_, err = s.ProcessWaitlistEntry(ctx, "e01", entity.WaitlistProcess{
		Status:      entity.WaitlistStatusRejected,
		ProcessedAt: at.Add(time.Hour),
		ProcessedBy: "admin-2",
	})
	assert.ErrorIs(t, err, entity.ErrWaitlistEntryProcessed)

	unchanged, err := s.GetWaitlistEntryById(ctx, "e01")
	require.NoError(t, err)
	assert.Equal(t, at, unchanged.ProcessedAt.Time)
	assert.Equal(t, "admin-1", unchanged.ProcessedBy.String)

	_, err = s.ProcessWaitlistEntry(ctx, "missing", entity.WaitlistProcess{Status: entity.WaitlistStatusApproved})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	n, err = s.CountWaitlistEntries(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.CountWaitlistEntries(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.CountWaitlistEntries(ctx, []entity.WaitlistFilter{{Field: "status", Operator: entity.OperatorNe, Value: "pending"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_TxRollback(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		err := rep.Waitlist().AddWaitlistEntry(ctx, &entity.WaitlistEntry{Id: "e1", Email: "a@test.com"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetWaitlistEntryById(ctx, "e1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		// nested transactions reuse the outer lock
		return rep.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
			return rep.Waitlist().AddWaitlistEntry(ctx, &entity.WaitlistEntry{Id: "e1", Email: "a@test.com"})
		})
	})
	require.NoError(t, err)

	_, err = s.GetWaitlistEntryById(ctx, "e1")
	assert.NoError(t, err)
}
