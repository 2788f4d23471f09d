package waitlist

import (
	"context"
	"errors"
	"strings"

	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
)

// Candidate is a join request together with the store facts the policy needs.
type Candidate struct {
	Data JoinData
	// Exists is true if an entry with the same email is already stored.
	Exists bool
	// PendingCount is the number of entries currently pending.
	PendingCount int
}

// Decision is the outcome of the admission policy. Reason is set iff Accepted is false.
type Decision struct {
	Accepted bool
	Reason   *gerr.Error
}

func accept() Decision {
	return Decision{Accepted: true}
}

func reject(reason *gerr.Error) Decision {
	return Decision{Reason: reason}
}

// Policy decides whether a join request is admitted. It does no I/O of its own:
// callers look up existence and the pending count first.
type Policy struct {
	enabled        bool
	allowedDomains map[string]struct{}
	maximum        int
	validate       EntryValidator
}

func NewPolicy(cfg Config, validate EntryValidator) *Policy {
	p := &Policy{
		enabled:  cfg.Enabled,
		maximum:  cfg.MaximumParticipants,
		validate: validate,
	}
	if len(cfg.AllowedDomains) > 0 {
		p.allowedDomains = make(map[string]struct{}, len(cfg.AllowedDomains))
		for _, d := range cfg.AllowedDomains {
			d = strings.ToLower(strings.TrimSpace(d))
			if !strings.HasPrefix(d, "@") {
				d = "@" + d
			}
			p.allowedDomains[d] = struct{}{}
		}
	}
	return p
}

// Evaluate runs the admission checks in order; the first failing check wins.
func (p *Policy) Evaluate(ctx context.Context, c Candidate) Decision {
	switch {
	case !p.enabled:
		return reject(gerr.WaitlistNotEnabled)
	case c.Exists:
		return reject(gerr.EmailAlreadyInWaitlist)
	case p.maximum > 0 && c.PendingCount >= p.maximum:
		return reject(gerr.WaitlistFull)
	case !p.domainAllowed(c.Data.Email):
		return reject(gerr.DomainNotAllowed)
	}

	if p.validate != nil {
		ok, err := p.validate(ctx, c.Data)
		if err != nil {
			return reject(gerr.InvalidEntry.Wrap(err))
		}
		if !ok {
			return reject(gerr.InvalidEntry.Wrap(errors.New("rejected by entry validator")))
		}
	}
	return accept()
}

func (p *Policy) domainAllowed(email string) bool {
	if p.allowedDomains == nil {
		return true
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	_, ok := p.allowedDomains["@"+strings.ToLower(parts[1])]
	return ok
}
