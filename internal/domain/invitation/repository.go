package invitation

import (
	"context"
	"time"
)

// StatusUpdate describes one requested status move. From is the status the
// caller observed; the repository must apply the move atomically only while
// the stored status still equals From, so two racing accepts cannot both win.
type StatusUpdate struct {
	From    Status
	To      Status
	ActorID string
	At      time.Time
}

// InvitationRepository defines the interface for invitation persistence.
// The collection is append-only and keyed by token.
type InvitationRepository interface {
	// Save appends a new invitation. Returns ErrDuplicateToken if the token
	// is already present; tokens are never reused or reissued.
	Save(ctx context.Context, inv Invitation) error

	// FindByToken retrieves an invitation or ErrInvitationNotFound.
	FindByToken(ctx context.Context, token string) (Invitation, error)

	// UpdateStatus applies a compare-and-set status move. Returns
	// ErrInvitationNotFound for an unknown token and ErrInvalidTransition
	// when the stored status no longer equals upd.From or the move is not in
	// the transition table. A move to accepted stamps AcceptedAt and
	// AcceptedBy from upd exactly once.
	UpdateStatus(ctx context.Context, token string, upd StatusUpdate) (Invitation, error)

	// ListByEngineer returns invitations whose engineer id equals the key or
	// whose engineer email equals it case-insensitively. Callers pass either
	// key; the recipient may not have had an account at issuance time.
	ListByEngineer(ctx context.Context, idOrEmail string) ([]Invitation, error)
}
