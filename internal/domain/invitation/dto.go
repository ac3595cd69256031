package invitation

import (
	"time"

	"github.com/consite-erp/consite-backend-go/internal/pkg/validator"
)

// Engineer identifies the intended recipient of an invitation. The id may be
// empty when the engineer has no account yet; the email is always required
// because the invitation link is dispatched to it.
type Engineer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IssueRequest - POST /invitations
type IssueRequest struct {
	ProjectID string   `json:"project_id"`
	Engineer  Engineer `json:"engineer"`
}

func (r *IssueRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	if validator.IsEmpty(r.Engineer.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "engineer.email",
			Message: "engineer email is required",
		})
	} else if !validator.IsValidEmail(r.Engineer.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "engineer.email",
			Message: "engineer email format is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IssueResult carries the minted token and the link dispatched to the
// engineer.
type IssueResult struct {
	Invitation     Invitation
	InvitationLink string
}

// IssueResponse - POST /invitations
type IssueResponse struct {
	Token          string `json:"token"`
	InvitationLink string `json:"invitation_link"`
	Status         string `json:"status"`
	ProjectID      string `json:"project_id"`
	EngineerEmail  string `json:"engineer_email"`
	CreatedAt      string `json:"created_at"`
}

// DetailResponse - GET /invitations/{token}
type DetailResponse struct {
	Token                  string  `json:"token"`
	ProjectID              string  `json:"project_id"`
	ProjectReferenceNumber string  `json:"project_reference_number,omitempty"`
	ProjectName            string  `json:"project_name"`
	ProjectClient          string  `json:"project_client"`
	ProjectFound           bool    `json:"project_found"`
	EngineerEmail          string  `json:"engineer_email"`
	Status                 string  `json:"status"`
	AcceptedAt             *string `json:"accepted_at,omitempty"`
	CreatedAt              string  `json:"created_at"`
}

// ListItemResponse - GET /invitations/my
type ListItemResponse struct {
	Token         string `json:"token"`
	ProjectName   string `json:"project_name"`
	ProjectClient string `json:"project_client"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// FormatTime renders timestamps the way the API exposes them.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
