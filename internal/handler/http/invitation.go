package http

import (
	"encoding/json"
	"net/http"

	"github.com/consite-erp/consite-backend-go/internal/domain/invitation"
	"github.com/consite-erp/consite-backend-go/internal/handler/http/middleware"
	"github.com/consite-erp/consite-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InvitationHandler interface {
	// Admin endpoints
	Issue(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	// Engineer endpoints
	GetByToken(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type invitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &invitationHandlerImpl{
		invitationService: invitationService,
	}
}

// Issue implements InvitationHandler - admin issues a tender invitation
func (h *invitationHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	var req invitation.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.invitationService.Issue(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invitation issued", invitation.IssueResponse{
		Token:          result.Invitation.Token,
		InvitationLink: result.InvitationLink,
		Status:         string(result.Invitation.Status),
		ProjectID:      result.Invitation.ProjectID,
		EngineerEmail:  result.Invitation.EngineerEmail,
		CreatedAt:      invitation.FormatTime(result.Invitation.CreatedAt),
	})
}

// GetByToken implements InvitationHandler - validates the token, binds the
// caller and returns the invitation joined to its project
func (h *invitationHandlerImpl) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	inv, err := h.invitationService.ValidateAndBind(r.Context(), token, principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resolution, err := h.invitationService.ResolveProject(r.Context(), inv)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	detail := invitation.DetailResponse{
		Token:                  inv.Token,
		ProjectID:              inv.ProjectID,
		ProjectReferenceNumber: inv.ProjectReferenceNumber,
		EngineerEmail:          inv.EngineerEmail,
		Status:                 string(inv.Status),
		CreatedAt:              invitation.FormatTime(inv.CreatedAt),
		ProjectFound:           resolution.Found,
	}
	if resolution.Found {
		detail.ProjectName = resolution.Project.Name
		detail.ProjectClient = resolution.Project.Client
	} else {
		detail.ProjectName = resolution.Snapshot.Name
		detail.ProjectClient = resolution.Snapshot.Client
	}
	if inv.AcceptedAt != nil {
		acceptedAt := invitation.FormatTime(*inv.AcceptedAt)
		detail.AcceptedAt = &acceptedAt
	}

	response.Success(w, detail)
}

// Accept implements InvitationHandler - engineer accepts an invitation
func (h *invitationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	inv, err := h.invitationService.Accept(r.Context(), token, principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	acceptedAt := ""
	if inv.AcceptedAt != nil {
		acceptedAt = invitation.FormatTime(*inv.AcceptedAt)
	}
	response.SuccessWithMessage(w, "Invitation accepted", map[string]string{
		"token":       inv.Token,
		"status":      string(inv.Status),
		"accepted_at": acceptedAt,
	})
}

// Complete implements InvitationHandler - the submission workflow marks the
// invitation completed
func (h *invitationHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	inv, err := h.invitationService.Complete(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation completed", map[string]string{
		"token":  inv.Token,
		"status": string(inv.Status),
	})
}

// ListMine implements InvitationHandler - lists invitations addressed to the
// authenticated engineer by id or email
func (h *invitationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	invitations, err := h.invitationService.ListForEngineer(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]invitation.ListItemResponse, 0, len(invitations))
	for _, inv := range invitations {
		items = append(items, invitation.ListItemResponse{
			Token:         inv.Token,
			ProjectName:   inv.ProjectName,
			ProjectClient: inv.ProjectClient,
			Status:        string(inv.Status),
			CreatedAt:     invitation.FormatTime(inv.CreatedAt),
		})
	}

	response.Success(w, items)
}
