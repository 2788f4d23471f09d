package waitlist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
)

const (
	defaultAdminRole = "admin"
	defaultLimit     = 10
	defaultMaxLimit  = 100

	// SystemProcessor is recorded as processedBy on auto-approved entries.
	SystemProcessor = "system"
)

// Config is the waitlist configuration. It is read once at startup and never mutated.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
	// AllowedDomains are "@domain" suffixes; empty means any domain.
	AllowedDomains []string `mapstructure:"allowed_domains"`
	// MaximumParticipants caps the number of pending entries; 0 means no cap.
	MaximumParticipants    int                      `mapstructure:"maximum_participants"`
	DisableSignInAndSignUp bool                     `mapstructure:"disable_sign_in_and_sign_up"`
	AutoApprove            bool                     `mapstructure:"auto_approve"`
	AdminRole              string                   `mapstructure:"admin_role"`
	DefaultLimit           int                      `mapstructure:"default_limit"`
	MaxLimit               int                      `mapstructure:"max_limit"`
	AdditionalFields       []entity.FieldDescriptor `mapstructure:"additional_fields"`
}

func (c Config) withDefaults() Config {
	if c.AdminRole == "" {
		c.AdminRole = defaultAdminRole
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = defaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = defaultMaxLimit
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	return c
}

// JoinData is what an applicant submitted, after normalization.
type JoinData struct {
	Email  string
	Fields entity.ExtensionValues
}

type (
	// EntryValidator is a custom admission check. Returning false or an error rejects the entry.
	EntryValidator func(ctx context.Context, data JoinData) (bool, error)
	// ManagePredicate replaces the admin role check when set.
	ManagePredicate func(ctx context.Context, p Principal) (bool, error)
	// StatusChangeHook is called after an entry left pending.
	StatusChangeHook func(ctx context.Context, entry entity.WaitlistEntry) error
	// AutoApprovePredicate decides at join time whether the entry skips manual review.
	AutoApprovePredicate func(ctx context.Context, data JoinData) (bool, error)
)

// Options carries the callbacks the host wires in. All fields are optional.
type Options struct {
	ValidateEntry  EntryValidator
	CanManage      ManagePredicate
	OnStatusChange StatusChangeHook
	AutoApprove    AutoApprovePredicate
	Now            func() time.Time
	NewID          func() string
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}
