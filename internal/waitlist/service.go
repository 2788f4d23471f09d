// Package waitlist implements waitlist admission, review and lookup.
package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jekabolt/grbpwr-waitlist/internal/dependency"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
	"github.com/jekabolt/grbpwr-waitlist/internal/form"
	"golang.org/x/sync/errgroup"
)

// JoinRequest is an applicant's submission. Fields holds the extension values, keyed by name.
type JoinRequest struct {
	Email  string
	Fields map[string]any
}

// JoinResult describes the created entry.
type JoinResult struct {
	Id          string
	Email       string
	Status      entity.WaitlistStatus
	RequestedAt time.Time
	Fields      entity.ExtensionValues
}

// ListResult is one page of entries plus the total number of matches.
type ListResult struct {
	Entries []entity.WaitlistEntry
	Page    int
	Limit   int
	Total   int
}

// StatusResult is the public view of an entry.
type StatusResult struct {
	Status      entity.WaitlistStatus
	RequestedAt time.Time
}

// Service composes the admission policy, lifecycle, gate and query builder over a repository.
type Service struct {
	cfg     Config
	repo    dependency.Repository
	schema  *Schema
	policy  *Policy
	gate    *Gate
	queries *QueryBuilder

	now            func() time.Time
	newID          func() string
	autoApprove    AutoApprovePredicate
	onStatusChange StatusChangeHook
}

// New validates the configuration and returns a Service backed by repo.
func New(cfg Config, repo dependency.Repository, opts Options) (*Service, error) {
	cfg = cfg.withDefaults()
	opts = opts.withDefaults()

	schema, err := NewSchema(cfg.AdditionalFields)
	if err != nil {
		return nil, fmt.Errorf("waitlist schema: %w", err)
	}
	if cfg.MaximumParticipants < 0 {
		return nil, fmt.Errorf("maximum participants can't be negative: %d", cfg.MaximumParticipants)
	}

	return &Service{
		cfg:            cfg,
		repo:           repo,
		schema:         schema,
		policy:         NewPolicy(cfg, opts.ValidateEntry),
		gate:           NewGate(cfg.AdminRole, opts.CanManage),
		queries:        NewQueryBuilder(schema, cfg.DefaultLimit, cfg.MaxLimit),
		now:            opts.Now,
		newID:          opts.NewID,
		autoApprove:    opts.AutoApprove,
		onStatusChange: opts.OnStatusChange,
	}, nil
}

// Schema returns the entity schema of the waitlist.
func (s *Service) Schema() *Schema {
	return s.schema
}

// NormalizeEmail trims and lower-cases an email. Stored emails are always normalized.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string, rules ...validation.Rule) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	return form.ValidateStruct(&req, validation.Field(&req.Email, rules...))
}

// Join admits an applicant. The existence check, the pending count and the insert run in
// one transaction; a unique violation from the store still maps to EMAIL_ALREADY_IN_WAITLIST.
func (s *Service) Join(ctx context.Context, req JoinRequest) (*JoinResult, error) {
	email := NormalizeEmail(req.Email)
	if err := validateEmail(email, validation.Required); err != nil {
		return nil, err
	}
	fields, err := s.schema.Validate(req.Fields)
	if err != nil {
		return nil, err
	}
	data := JoinData{Email: email, Fields: fields}

	var entry *entity.WaitlistEntry
	err = s.repo.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		c, err := s.candidate(ctx, rep, data)
		if err != nil {
			return err
		}
		if d := s.policy.Evaluate(ctx, c); !d.Accepted {
			return d.Reason
		}
		// format is checked only once admitted, malformed emails still get the policy's answer
		if err := validateEmail(email, is.EmailFormat); err != nil {
			return err
		}

		entry = &entity.WaitlistEntry{
			Id:          s.newID(),
			Email:       email,
			RequestedAt: s.now(),
			Extension:   fields,
		}
		s.schema.BeforeCreate(entry)

		auto, err := s.shouldAutoApprove(ctx, data)
		if err != nil {
			return err
		}
		if auto {
			apply(entry, entity.WaitlistProcess{
				Status:      entity.WaitlistStatusApproved,
				ProcessedAt: entry.RequestedAt,
				ProcessedBy: SystemProcessor,
			})
		}

		if err := rep.Waitlist().AddWaitlistEntry(ctx, entry); err != nil {
			if errors.Is(err, entity.ErrWaitlistEmailTaken) {
				return gerr.EmailAlreadyInWaitlist.Wrap(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if ge, ok := gerr.As(err); ok {
			slog.Default().InfoContext(ctx, "waitlist join rejected",
				slog.String("domain", emailDomain(email)),
				slog.String("code", ge.Code),
			)
		}
		return nil, err
	}

	if entry.Status != entity.WaitlistStatusPending {
		s.statusChanged(ctx, *entry)
	}

	return &JoinResult{
		Id:          entry.Id,
		Email:       entry.Email,
		Status:      entry.Status,
		RequestedAt: entry.RequestedAt,
		Fields:      entry.Extension,
	}, nil
}

// candidate gathers the store facts for the admission policy.
// Nothing is looked up while the waitlist is disabled, the policy rejects first anyway.
func (s *Service) candidate(ctx context.Context, rep dependency.Repository, data JoinData) (Candidate, error) {
	c := Candidate{Data: data}
	if !s.cfg.Enabled {
		return c, nil
	}

	_, err := rep.Waitlist().GetWaitlistEntryByEmail(ctx, data.Email)
	switch {
	case err == nil:
		c.Exists = true
		return c, nil
	case !errors.Is(err, sql.ErrNoRows):
		return c, err
	}

	if s.cfg.MaximumParticipants > 0 {
		c.PendingCount, err = rep.Waitlist().CountWaitlistEntries(ctx, []entity.WaitlistFilter{
			eq(string(entity.SortByStatus), entity.WaitlistStatusPending),
		})
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

func (s *Service) shouldAutoApprove(ctx context.Context, data JoinData) (bool, error) {
	if s.autoApprove != nil {
		ok, err := s.autoApprove(ctx, data)
		if err != nil {
			return false, fmt.Errorf("auto approve: %w", err)
		}
		return ok, nil
	}
	return s.cfg.AutoApprove, nil
}

// List returns a page of entries matching params.
func (s *Service) List(ctx context.Context, p *Principal, params SearchParams) (*ListResult, error) {
	if err := s.gate.Authorize(ctx, p); err != nil {
		return nil, err
	}
	search, err := s.queries.Build(params)
	if err != nil {
		return nil, err
	}

	var (
		entries []entity.WaitlistEntry
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.repo.Waitlist().ListWaitlistEntries(gctx, search.Query)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Waitlist().CountWaitlistEntries(gctx, search.Query.Filters)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, entity.ErrInvalidSortField) {
			return nil, gerr.ValidationFailed.Wrap(err).WithDetails(gerr.FieldViolation{
				Field:       "sortBy",
				Description: "Unknown sort field.",
			})
		}
		return nil, err
	}

	return &ListResult{
		Entries: entries,
		Page:    search.Page,
		Limit:   search.Limit,
		Total:   total,
	}, nil
}

// Count returns the number of entries with the given status, or of all entries if status is empty.
func (s *Service) Count(ctx context.Context, p *Principal, status string) (int, error) {
	if err := s.gate.Authorize(ctx, p); err != nil {
		return 0, err
	}
	var filters []entity.WaitlistFilter
	if status != "" {
		if !entity.IsValidWaitlistStatus(status) {
			return 0, gerr.ValidationFailed.WithDetails(gerr.FieldViolation{
				Field:       "status",
				Description: "Must be one of pending, approved, rejected.",
			})
		}
		filters = append(filters, eq(string(entity.SortByStatus), entity.WaitlistStatus(status)))
	}
	return s.repo.Waitlist().CountWaitlistEntries(ctx, filters)
}

// Find returns the entry with the given id.
func (s *Service) Find(ctx context.Context, p *Principal, id string) (*entity.WaitlistEntry, error) {
	if err := s.gate.Authorize(ctx, p); err != nil {
		return nil, err
	}
	e, err := s.repo.Waitlist().GetWaitlistEntryById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// CheckStatus is the unauthenticated lookup applicants use. It exposes no processing metadata.
func (s *Service) CheckStatus(ctx context.Context, email string) (*StatusResult, error) {
	e, err := s.repo.Waitlist().GetWaitlistEntryByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, notFound(err)
	}
	return &StatusResult{
		Status:      e.Status,
		RequestedAt: e.RequestedAt,
	}, nil
}

// Approve moves a pending entry to approved.
func (s *Service) Approve(ctx context.Context, p *Principal, id string) (*entity.WaitlistEntry, error) {
	return s.process(ctx, p, id, entity.WaitlistStatusApproved)
}

// Reject moves a pending entry to rejected.
func (s *Service) Reject(ctx context.Context, p *Principal, id string) (*entity.WaitlistEntry, error) {
	return s.process(ctx, p, id, entity.WaitlistStatusRejected)
}

func (s *Service) process(ctx context.Context, p *Principal, id string, to entity.WaitlistStatus) (*entity.WaitlistEntry, error) {
	if err := s.gate.Authorize(ctx, p); err != nil {
		return nil, err
	}
	e, err := s.repo.Waitlist().GetWaitlistEntryById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	proc, err := NewProcess(e, to, p.Id, s.now())
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Waitlist().ProcessWaitlistEntry(ctx, id, proc)
	if err != nil {
		if errors.Is(err, entity.ErrWaitlistEntryProcessed) {
			return nil, gerr.WaitlistEntryAlreadyProcessed.Wrap(err)
		}
		return nil, notFound(err)
	}

	s.statusChanged(ctx, *updated)
	return updated, nil
}

// statusChanged runs the hook after the change is stored. Hook errors are logged only.
func (s *Service) statusChanged(ctx context.Context, e entity.WaitlistEntry) {
	if s.onStatusChange == nil {
		return
	}
	if err := s.onStatusChange(ctx, e); err != nil {
		slog.Default().ErrorContext(ctx, "waitlist status change hook failed",
			slog.String("id", e.Id),
			slog.String("status", string(e.Status)),
			slog.String("err", err.Error()),
		)
	}
}

// CheckSignUpAllowed gates the host's sign-up and sign-in when they're restricted to approved emails.
func (s *Service) CheckSignUpAllowed(ctx context.Context, email string) error {
	if !s.cfg.DisableSignInAndSignUp {
		return nil
	}
	e, err := s.repo.Waitlist().GetWaitlistEntryByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gerr.WaitlistApprovalRequired
		}
		return err
	}
	if e.Status != entity.WaitlistStatusApproved {
		return gerr.WaitlistApprovalRequired
	}
	return nil
}

// emailDomain returns the part after the last "@", empty if there is none.
func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}

// notFound maps a missing row to WAITLIST_ENTRY_NOT_FOUND and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return gerr.WaitlistEntryNotFound.Wrap(err)
	}
	return err
}
