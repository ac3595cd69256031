package response

import (
	"errors"
	"net/http"

	"github.com/consite-erp/consite-backend-go/internal/domain/invitation"
	"github.com/consite-erp/consite-backend-go/internal/domain/project"
	"github.com/consite-erp/consite-backend-go/internal/domain/user"
	"github.com/consite-erp/consite-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Invitation domain errors
	case errors.Is(err, invitation.ErrInvalidFormat):
		BadRequest(w, "Invitation token is malformed", nil)
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationExpired):
		Gone(w, "Invitation has expired")
	// Both identity errors share one deliberately vague message so the
	// response cannot be used to probe which engineer an invitation
	// actually belongs to.
	case errors.Is(err, invitation.ErrIdentityMismatch),
		errors.Is(err, invitation.ErrUnauthorizedRole):
		Forbidden(w, "This invitation is not assigned to your account")
	case errors.Is(err, invitation.ErrInvalidTransition):
		Conflict(w, "Invitation is not in a state that allows this action")
	case errors.Is(err, invitation.ErrDuplicateToken):
		// Broken issuer invariant, not a user-facing condition.
		InternalServerError(w, "An unexpected error occurred")

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")

	// Session errors
	case errors.Is(err, user.ErrInvalidSession):
		Unauthorized(w, "Invalid session")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Administrator access is required")
	case errors.Is(err, user.ErrEngineerAccessRequired):
		Forbidden(w, "Tender engineer access is required")
	case errors.Is(err, user.ErrRouteAccessDenied):
		Forbidden(w, "You do not have access to this resource")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
