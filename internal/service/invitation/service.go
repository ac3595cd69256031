package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/consite-erp/consite-backend-go/internal/config"
	invitationDomain "github.com/consite-erp/consite-backend-go/internal/domain/invitation"
	"github.com/consite-erp/consite-backend-go/internal/domain/project"
	"github.com/consite-erp/consite-backend-go/internal/domain/user"
	"github.com/consite-erp/consite-backend-go/internal/pkg/email"
	"github.com/consite-erp/consite-backend-go/internal/pkg/identity"
	"github.com/consite-erp/consite-backend-go/internal/pkg/token"
)

type invitationServiceImpl struct {
	invitations invitationDomain.InvitationRepository
	projects    project.ProjectRepository
	codec       token.Codec
	binder      *identity.Binder
	email       email.EmailService
	cfg         config.InvitationConfig
	frontendURL string
}

func NewInvitationService(
	invitations invitationDomain.InvitationRepository,
	projects project.ProjectRepository,
	codec token.Codec,
	binder *identity.Binder,
	emailService email.EmailService,
	cfg config.InvitationConfig,
	frontendURL string,
) invitationDomain.InvitationService {
	return &invitationServiceImpl{
		invitations: invitations,
		projects:    projects,
		codec:       codec,
		binder:      binder,
		email:       emailService,
		cfg:         cfg,
		frontendURL: frontendURL,
	}
}

// Issue implements invitation.InvitationService. Re-inviting the same
// project and engineer mints a second, independent token; there is no
// deduplication.
func (s *invitationServiceImpl) Issue(ctx context.Context, req invitationDomain.IssueRequest) (invitationDomain.IssueResult, error) {
	if err := req.Validate(); err != nil {
		return invitationDomain.IssueResult{}, err
	}

	now := time.Now()

	// Snapshot the project fields into the invitation so a later rename or
	// removal of the project cannot break the invitation view.
	inv := invitationDomain.Invitation{
		ProjectID:     req.ProjectID,
		EngineerID:    req.Engineer.ID,
		EngineerEmail: req.Engineer.Email,
		Status:        invitationDomain.StatusPending,
		CreatedAt:     now,
	}
	proj, err := s.projects.GetByID(ctx, req.ProjectID)
	switch {
	case err == nil:
		inv.ProjectReferenceNumber = proj.ReferenceNumber
		inv.ProjectName = proj.Name
		inv.ProjectClient = proj.Client
	case errors.Is(err, project.ErrProjectNotFound):
		slog.Warn("Issuing invitation for unknown project", "project_id", req.ProjectID)
	default:
		return invitationDomain.IssueResult{}, fmt.Errorf("failed to snapshot project: %w", err)
	}

	tok, err := s.codec.Mint(now)
	if err != nil {
		return invitationDomain.IssueResult{}, fmt.Errorf("failed to mint invitation token: %w", err)
	}
	inv.Token = tok

	if err := s.invitations.Save(ctx, inv); err != nil {
		if errors.Is(err, invitationDomain.ErrDuplicateToken) {
			// Statistically unreachable given the token entropy; a collision
			// means the codec is broken, not a user mistake.
			slog.Error("Minted a duplicate invitation token", "token", tok)
		}
		return invitationDomain.IssueResult{}, fmt.Errorf("failed to save invitation: %w", err)
	}

	link := s.invitationLink(tok)
	go s.dispatchLink(inv, link, now)

	return invitationDomain.IssueResult{Invitation: inv, InvitationLink: link}, nil
}

func (s *invitationServiceImpl) invitationLink(tok string) string {
	return strings.TrimRight(s.frontendURL, "/") + "/tender/invitation/" + tok
}

// dispatchLink hands the link to the mail relay. Delivery runs on its own
// goroutine and is best-effort; the issue operation never waits on the relay
// and never fails because it is down.
func (s *invitationServiceImpl) dispatchLink(inv invitationDomain.Invitation, link string, issuedAt time.Time) {
	if s.email == nil {
		return
	}
	expiresAt := issuedAt.Add(s.cfg.TTL).UTC().Format("2 January 2006")
	if err := s.email.SendTenderInvitation(inv.EngineerEmail, inv.ProjectName, inv.ProjectClient, link, expiresAt); err != nil {
		slog.Warn("Failed to dispatch invitation link",
			"engineer_email", inv.EngineerEmail,
			"project_id", inv.ProjectID,
			"error", err,
		)
	}
}

// Validate implements invitation.InvitationService. Expiry is derived solely
// from the timestamp embedded in the token, recomputed on every call; it is
// never cached and never read from store metadata.
func (s *invitationServiceImpl) Validate(ctx context.Context, tok string) (invitationDomain.Invitation, error) {
	issuedAt, err := s.codec.IssuedAt(tok)
	if err != nil {
		return invitationDomain.Invitation{}, invitationDomain.ErrInvalidFormat
	}

	inv, err := s.invitations.FindByToken(ctx, tok)
	if err != nil {
		return invitationDomain.Invitation{}, err
	}

	if s.expiryApplies(inv) && time.Since(issuedAt) > s.cfg.TTL {
		return invitationDomain.Invitation{}, invitationDomain.ErrInvitationExpired
	}

	return inv, nil
}

// expiryApplies decides whether the expiry re-check covers this invitation.
// By default it always does, matching the original behavior where even an
// accepted or completed invitation reports expired after the TTL.
func (s *invitationServiceImpl) expiryApplies(inv invitationDomain.Invitation) bool {
	if !s.cfg.FreezeExpiryOnceAccepted {
		return true
	}
	return inv.Status == invitationDomain.StatusPending
}

// ValidateAndBind implements invitation.InvitationService.
func (s *invitationServiceImpl) ValidateAndBind(ctx context.Context, tok string, principal user.Principal) (invitationDomain.Invitation, error) {
	inv, err := s.Validate(ctx, tok)
	if err != nil {
		return invitationDomain.Invitation{}, err
	}

	if err := s.binder.Bind(inv, principal); err != nil {
		return invitationDomain.Invitation{}, err
	}

	return inv, nil
}

// Accept implements invitation.InvitationService.
func (s *invitationServiceImpl) Accept(ctx context.Context, tok string, principal user.Principal) (invitationDomain.Invitation, error) {
	if _, err := s.ValidateAndBind(ctx, tok, principal); err != nil {
		return invitationDomain.Invitation{}, err
	}

	return s.invitations.UpdateStatus(ctx, tok, invitationDomain.StatusUpdate{
		From:    invitationDomain.StatusPending,
		To:      invitationDomain.StatusAccepted,
		ActorID: principal.ID,
		At:      time.Now(),
	})
}

// Complete implements invitation.InvitationService. Completion is driven by
// the external submission workflow; no identity binding happens here.
func (s *invitationServiceImpl) Complete(ctx context.Context, tok string) (invitationDomain.Invitation, error) {
	inv, err := s.Validate(ctx, tok)
	if err != nil {
		return invitationDomain.Invitation{}, err
	}

	return s.invitations.UpdateStatus(ctx, tok, invitationDomain.StatusUpdate{
		From: inv.Status,
		To:   invitationDomain.StatusCompleted,
		At:   time.Now(),
	})
}

// ListForEngineer implements invitation.InvitationService. The store lookup
// is dual-keyed: an invitation may carry only the engineer's email when it
// was issued before the engineer had an account, so both the principal's id
// and email are tried and the results merged.
func (s *invitationServiceImpl) ListForEngineer(ctx context.Context, principal user.Principal) ([]invitationDomain.Invitation, error) {
	if !principal.IsTenderEngineer() {
		return nil, invitationDomain.ErrUnauthorizedRole
	}

	seen := make(map[string]bool)
	var result []invitationDomain.Invitation

	for _, key := range []string{principal.ID, principal.Email} {
		if key == "" {
			continue
		}
		matches, err := s.invitations.ListByEngineer(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to list invitations: %w", err)
		}
		for _, inv := range matches {
			if !seen[inv.Token] {
				seen[inv.Token] = true
				result = append(result, inv)
			}
		}
	}

	return result, nil
}

// ResolveProject implements invitation.InvitationService. Lookup order is
// exact id, then reference number. A miss on both keys returns the
// issuance-time snapshot, never an error: the project collection has no
// enforced referential integrity with invitations.
func (s *invitationServiceImpl) ResolveProject(ctx context.Context, inv invitationDomain.Invitation) (project.Resolution, error) {
	if inv.ProjectID != "" {
		p, err := s.projects.GetByID(ctx, inv.ProjectID)
		if err == nil {
			return project.Resolution{Found: true, Project: p}, nil
		}
		if !errors.Is(err, project.ErrProjectNotFound) {
			return project.Resolution{}, fmt.Errorf("failed to resolve project by id: %w", err)
		}
	}

	if inv.ProjectReferenceNumber != "" {
		p, err := s.projects.GetByReference(ctx, inv.ProjectReferenceNumber)
		if err == nil {
			return project.Resolution{Found: true, Project: p}, nil
		}
		if !errors.Is(err, project.ErrProjectNotFound) {
			return project.Resolution{}, fmt.Errorf("failed to resolve project by reference: %w", err)
		}
	}

	return project.Resolution{
		Found:    false,
		Snapshot: project.Snapshot{Name: inv.ProjectName, Client: inv.ProjectClient},
	}, nil
}
