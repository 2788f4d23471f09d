package waitlist

import (
	"fmt"
	"time"

	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
)

// Transition checks that an entry may move from one status to another.
// Only pending -> approved and pending -> rejected are allowed.
func Transition(from, to entity.WaitlistStatus) error {
	if !to.IsTerminal() {
		return gerr.Internal.Wrap(fmt.Errorf("invalid waitlist transition %s -> %s", from, to))
	}
	if from != entity.WaitlistStatusPending {
		return gerr.WaitlistEntryAlreadyProcessed
	}
	return nil
}

// NewProcess builds the status change for a pending entry, stamping who and when.
func NewProcess(e *entity.WaitlistEntry, to entity.WaitlistStatus, by string, at time.Time) (entity.WaitlistProcess, error) {
	if err := Transition(e.Status, to); err != nil {
		return entity.WaitlistProcess{}, err
	}
	return entity.WaitlistProcess{
		Status:      to,
		ProcessedAt: at,
		ProcessedBy: by,
	}, nil
}

// apply sets the processed metadata on e in place.
func apply(e *entity.WaitlistEntry, p entity.WaitlistProcess) {
	e.Status = p.Status
	e.ProcessedAt.Time, e.ProcessedAt.Valid = p.ProcessedAt, true
	e.ProcessedBy.String, e.ProcessedBy.Valid = p.ProcessedBy, true
}
