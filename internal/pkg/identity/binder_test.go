package identity

import (
	"testing"

	"github.com/consite-erp/consite-backend-go/internal/domain/invitation"
	"github.com/consite-erp/consite-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func testInvitation() invitation.Invitation {
	return invitation.Invitation{
		Token:         "TND-1757836013000-abcdef-ghijkl",
		EngineerID:    "eng-7",
		EngineerEmail: "e@x.com",
		Status:        invitation.StatusPending,
	}
}

func TestBinder_MatchesByEmailCaseInsensitive(t *testing.T) {
	binder := NewDefaultBinder()

	// Different id, email differs only in case
	principal := user.Principal{ID: "someone-else", Email: "E@X.COM", Role: user.RoleTenderEngineer}

	err := binder.Bind(testInvitation(), principal)
	assert.NoError(t, err)
}

func TestBinder_MatchesByIDWhenEmailDiffers(t *testing.T) {
	binder := NewDefaultBinder()

	// The engineer registered under a different address after being invited
	principal := user.Principal{ID: "eng-7", Email: "new@y.com", Role: user.RoleTenderEngineer}

	err := binder.Bind(testInvitation(), principal)
	assert.NoError(t, err)
}

func TestBinder_MismatchOnBothKeys(t *testing.T) {
	binder := NewDefaultBinder()

	principal := user.Principal{ID: "eng-9", Email: "other@x.com", Role: user.RoleTenderEngineer}

	err := binder.Bind(testInvitation(), principal)
	assert.ErrorIs(t, err, invitation.ErrIdentityMismatch)
}

func TestBinder_RejectsAdminEvenWhenKeysMatch(t *testing.T) {
	binder := NewDefaultBinder()

	// Matching id and email, but the role alone disqualifies the principal
	principal := user.Principal{ID: "eng-7", Email: "e@x.com", Role: user.RoleAdmin}

	err := binder.Bind(testInvitation(), principal)
	assert.ErrorIs(t, err, invitation.ErrUnauthorizedRole)
}

func TestBinder_RejectsUnknownRole(t *testing.T) {
	binder := NewDefaultBinder()

	principal := user.Principal{ID: "eng-7", Email: "e@x.com", Role: "GUEST"}

	err := binder.Bind(testInvitation(), principal)
	assert.ErrorIs(t, err, invitation.ErrUnauthorizedRole)
}

func TestBinder_EmptyPrincipalFieldsNeverMatch(t *testing.T) {
	binder := NewDefaultBinder()

	inv := testInvitation()
	inv.EngineerID = ""
	inv.EngineerEmail = ""

	// An invitation with blank keys must not bind a principal with blank
	// fields of its own.
	principal := user.Principal{ID: "", Email: "", Role: user.RoleTenderEngineer}

	err := binder.Bind(inv, principal)
	assert.ErrorIs(t, err, invitation.ErrIdentityMismatch)
}

func TestBinder_StrategyOrder(t *testing.T) {
	binder := NewDefaultBinder()

	// Email strategy runs first; a principal matching only by email binds
	// before the id strategy is consulted.
	principal := user.Principal{ID: "", Email: "e@x.com", Role: user.RoleTenderEngineer}

	err := binder.Bind(testInvitation(), principal)
	assert.NoError(t, err)
}
