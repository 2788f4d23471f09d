package waitlist

import (
	"context"
	"fmt"

	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
)

// Principal is the authenticated actor of a request.
type Principal struct {
	Id   string
	Role string
}

// Gate authorizes administrative operations.
type Gate struct {
	adminRole string
	canManage ManagePredicate
}

// NewGate returns a gate checking the admin role, or canManage instead when it's set.
func NewGate(adminRole string, canManage ManagePredicate) *Gate {
	return &Gate{
		adminRole: adminRole,
		canManage: canManage,
	}
}

// Authorize returns UNAUTHORIZED without a principal and FORBIDDEN when the principal is denied.
func (g *Gate) Authorize(ctx context.Context, p *Principal) error {
	if p == nil {
		return gerr.Unauthorized
	}
	if g.canManage == nil {
		if p.Role != g.adminRole {
			return gerr.Forbidden
		}
		return nil
	}

	ok, err := g.canManage(ctx, *p)
	if err != nil {
		return gerr.Forbidden.Wrap(fmt.Errorf("can manage: %w", err))
	}
	if !ok {
		return gerr.Forbidden
	}
	return nil
}
