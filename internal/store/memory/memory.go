// Package memory is an in-process implementation of dependency.Repository.
// It backs local runs with storage type "memory" and the service tests.
package memory

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jekabolt/grbpwr-waitlist/internal/dependency"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
)

type state struct {
	mu      sync.Mutex
	entries map[string]entity.WaitlistEntry
	byEmail map[string]string
}

// Store keeps waitlist entries in memory.
// Every operation holds the state lock; a transaction holds it for its whole duration.
type Store struct {
	st   *state
	inTx bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		st: &state{
			entries: map[string]entity.WaitlistEntry{},
			byEmail: map[string]string{},
		},
	}
}

func (s *Store) lock() {
	if !s.inTx {
		s.st.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.inTx {
		s.st.mu.Unlock()
	}
}

// Waitlist returns an object implementing Waitlist interface
func (s *Store) Waitlist() dependency.Waitlist {
	return s
}

// Tx runs f with exclusive access to the store. If f returns an error every
// change made inside it is discarded.
func (s *Store) Tx(ctx context.Context, f func(context.Context, dependency.Repository) error) error {
	if s.inTx {
		return f(ctx, s)
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	entries := maps.Clone(s.st.entries)
	byEmail := maps.Clone(s.st.byEmail)

	if err := f(ctx, &Store{st: s.st, inTx: true}); err != nil {
		s.st.entries = entries
		s.st.byEmail = byEmail
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) Close() {}

func (s *Store) AddWaitlistEntry(ctx context.Context, entry *entity.WaitlistEntry) error {
	s.lock()
	defer s.unlock()

	if _, ok := s.st.byEmail[entry.Email]; ok {
		return fmt.Errorf("failed to add waitlist entry: %w", entity.ErrWaitlistEmailTaken)
	}
	if _, ok := s.st.entries[entry.Id]; ok {
		return fmt.Errorf("failed to add waitlist entry: duplicate id %s", entry.Id)
	}
	e := cloneEntry(*entry)
	s.st.entries[e.Id] = e
	s.st.byEmail[e.Email] = e.Id
	return nil
}

func (s *Store) GetWaitlistEntryById(ctx context.Context, id string) (*entity.WaitlistEntry, error) {
	s.lock()
	defer s.unlock()

	e, ok := s.st.entries[id]
	if !ok {
		return nil, fmt.Errorf("failed to get waitlist entry by id: %w", sql.ErrNoRows)
	}
	e = cloneEntry(e)
	return &e, nil
}

func (s *Store) GetWaitlistEntryByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	s.lock()
	defer s.unlock()

	id, ok := s.st.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("failed to get waitlist entry by email: %w", sql.ErrNoRows)
	}
	e := cloneEntry(s.st.entries[id])
	return &e, nil
}

func (s *Store) ListWaitlistEntries(ctx context.Context, q entity.WaitlistQuery) ([]entity.WaitlistEntry, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = entity.SortByRequestedAt
	}
	if !entity.IsCoreField(string(sortBy)) && !entity.IsValidFieldName(string(sortBy)) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidSortField, sortBy)
	}

	s.lock()
	matched, err := s.filter(q.Filters)
	s.unlock()
	if err != nil {
		return nil, err
	}

	desc := q.Order.String() == string(entity.Descending)
	slices.SortStableFunc(matched, func(a, b entity.WaitlistEntry) int {
		c := compareValues(fieldValue(a, string(sortBy)), fieldValue(b, string(sortBy)))
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Id, b.Id)
	})

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []entity.WaitlistEntry{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *Store) CountWaitlistEntries(ctx context.Context, filters []entity.WaitlistFilter) (int, error) {
	s.lock()
	defer s.unlock()

	matched, err := s.filter(filters)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *Store) ProcessWaitlistEntry(ctx context.Context, id string, p entity.WaitlistProcess) (*entity.WaitlistEntry, error) {
	s.lock()
	defer s.unlock()

	e, ok := s.st.entries[id]
	if !ok {
		return nil, fmt.Errorf("failed to process waitlist entry: %w", sql.ErrNoRows)
	}
	if e.Status != entity.WaitlistStatusPending {
		return nil, fmt.Errorf("failed to process waitlist entry %s: %w", id, entity.ErrWaitlistEntryProcessed)
	}

	e.Status = p.Status
	e.ProcessedAt = sql.NullTime{Time: p.ProcessedAt, Valid: true}
	e.ProcessedBy = sql.NullString{String: p.ProcessedBy, Valid: true}
	s.st.entries[id] = e

	out := cloneEntry(e)
	return &out, nil
}

// filter must be called with the state lock held.
func (s *Store) filter(filters []entity.WaitlistFilter) ([]entity.WaitlistEntry, error) {
	for _, f := range filters {
		if f.Operator != "" && f.Operator != entity.OperatorEq && f.Operator != entity.OperatorNe {
			return nil, fmt.Errorf("unsupported filter operator %s", f.Operator)
		}
		if !entity.IsCoreField(f.Field) && !entity.IsValidFieldName(f.Field) {
			return nil, fmt.Errorf("invalid waitlist field %q", f.Field)
		}
	}

	out := []entity.WaitlistEntry{}
	for _, e := range s.st.entries {
		ok, err := matches(e, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, cloneEntry(e))
		}
	}
	return out, nil
}

func matches(e entity.WaitlistEntry, filters []entity.WaitlistFilter) (bool, error) {
	for _, f := range filters {
		eq, err := equalValues(fieldValue(e, f.Field), normalize(f.Value))
		if err != nil {
			return false, err
		}
		if f.Operator == entity.OperatorNe {
			eq = !eq
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func fieldValue(e entity.WaitlistEntry, field string) any {
	switch entity.SortFactor(field) {
	case entity.SortById:
		return e.Id
	case entity.SortByEmail:
		return e.Email
	case entity.SortByStatus:
		return string(e.Status)
	case entity.SortByRequestedAt:
		return e.RequestedAt
	case entity.SortByProcessedAt:
		if e.ProcessedAt.Valid {
			return e.ProcessedAt.Time
		}
		return nil
	case entity.SortByProcessedBy:
		if e.ProcessedBy.Valid {
			return e.ProcessedBy.String
		}
		return nil
	}
	if e.Extension == nil {
		return nil
	}
	return e.Extension[field]
}

func normalize(v any) any {
	switch x := v.(type) {
	case entity.WaitlistStatus:
		return string(x)
	case int:
		return float64(x)
	}
	return v
}

func equalValues(a, b any) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt), nil
	}
	ab, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("marshal stored value: %w", err)
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false, fmt.Errorf("marshal filter value: %w", err)
	}
	return string(ab) == string(bb), nil
}

// compareValues orders nil first, then values of the same kind naturally.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmp.Compare(boolRank(av), boolRank(bv))
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return strings.Compare(string(ab), string(bb))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func cloneEntry(e entity.WaitlistEntry) entity.WaitlistEntry {
	if e.Extension != nil {
		e.Extension = maps.Clone(e.Extension)
	}
	return e
}
