// Package identity binds an authenticated principal to an invitation's
// intended recipient. Matching is an ordered list of strategies evaluated in
// sequence; the first success authorizes the principal. Binding happens at
// validation time, not issuance time, because an invitation may be addressed
// to an email that had no account when it was issued.
package identity

import (
	"strings"

	"github.com/consite-erp/consite-backend-go/internal/domain/invitation"
	"github.com/consite-erp/consite-backend-go/internal/domain/user"
)

// MatchStrategy checks one binding key between principal and invitation.
type MatchStrategy interface {
	Name() string
	Matches(inv invitation.Invitation, p user.Principal) bool
}

// EmailMatch matches the principal's email against the invitation's engineer
// email, case-insensitively.
type EmailMatch struct{}

func (EmailMatch) Name() string { return "email" }

func (EmailMatch) Matches(inv invitation.Invitation, p user.Principal) bool {
	return p.Email != "" && strings.EqualFold(p.Email, inv.EngineerEmail)
}

// IDMatch matches the principal's id against the invitation's engineer id.
type IDMatch struct{}

func (IDMatch) Name() string { return "id" }

func (IDMatch) Matches(inv invitation.Invitation, p user.Principal) bool {
	return p.ID != "" && p.ID == inv.EngineerID
}

type Binder struct {
	strategies []MatchStrategy
}

// NewBinder builds a binder over the given strategies, evaluated in order.
func NewBinder(strategies ...MatchStrategy) *Binder {
	return &Binder{strategies: strategies}
}

// NewDefaultBinder matches by email first, then by engineer id.
func NewDefaultBinder() *Binder {
	return NewBinder(EmailMatch{}, IDMatch{})
}

// Bind authorizes the principal against the invitation. The role is
// re-checked here independently of any route gating: only a TENDER_ENGINEER
// may consume an engineer invitation, even when an admin's id happens to
// match the recipient.
func (b *Binder) Bind(inv invitation.Invitation, p user.Principal) error {
	if !p.IsTenderEngineer() {
		return invitation.ErrUnauthorizedRole
	}
	for _, s := range b.strategies {
		if s.Matches(inv, p) {
			return nil
		}
	}
	return invitation.ErrIdentityMismatch
}
