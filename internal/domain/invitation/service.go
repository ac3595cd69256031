package invitation

import (
	"context"

	"github.com/consite-erp/consite-backend-go/internal/domain/project"
	"github.com/consite-erp/consite-backend-go/internal/domain/user"
)

// InvitationService defines the interface for the tender invitation core
type InvitationService interface {
	// Issue mints a token, appends a pending invitation and dispatches the
	// invitation link. Re-inviting the same project and engineer issues a
	// second, independent token.
	Issue(ctx context.Context, req IssueRequest) (IssueResult, error)

	// Validate checks token format, existence and expiry without binding an
	// identity (used by the completion workflow)
	Validate(ctx context.Context, token string) (Invitation, error)

	// ValidateAndBind validates the token and then binds the principal
	// against the invitation's intended recipient
	ValidateAndBind(ctx context.Context, token string, principal user.Principal) (Invitation, error)

	// Accept moves the invitation pending -> accepted on behalf of the bound
	// principal; exactly one of two racing calls can win
	Accept(ctx context.Context, token string, principal user.Principal) (Invitation, error)

	// Complete moves the invitation accepted -> completed (driven by the
	// external submission workflow, no identity binding)
	Complete(ctx context.Context, token string) (Invitation, error)

	// ListForEngineer lists invitations addressed to the principal by either
	// engineer id or email
	ListForEngineer(ctx context.Context, principal user.Principal) ([]Invitation, error)

	// ResolveProject joins the invitation to the project collection,
	// degrading to the issuance-time snapshot when the join misses
	ResolveProject(ctx context.Context, inv Invitation) (project.Resolution, error)
}
