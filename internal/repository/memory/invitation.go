// Package memory holds in-memory repository implementations. The invitation
// core is storage-agnostic; these back the tests and local development while
// the postgresql package backs deployments.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/consite-erp/consite-backend-go/internal/domain/invitation"
)

type InvitationRepository struct {
	mu      sync.RWMutex
	byToken map[string]invitation.Invitation
	order   []string // insertion order; the collection is append-only
}

func NewInvitationRepository() *InvitationRepository {
	return &InvitationRepository{
		byToken: make(map[string]invitation.Invitation),
	}
}

// Save implements invitation.InvitationRepository.
func (r *InvitationRepository) Save(ctx context.Context, inv invitation.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byToken[inv.Token]; exists {
		return invitation.ErrDuplicateToken
	}
	r.byToken[inv.Token] = inv
	r.order = append(r.order, inv.Token)
	return nil
}

// FindByToken implements invitation.InvitationRepository.
func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, exists := r.byToken[token]
	if !exists {
		return invitation.Invitation{}, invitation.ErrInvitationNotFound
	}
	return inv, nil
}

// UpdateStatus implements invitation.InvitationRepository. The check and the
// write happen under one lock, so of two racing identical updates exactly one
// observes From and wins; the other gets ErrInvalidTransition.
func (r *InvitationRepository) UpdateStatus(ctx context.Context, token string, upd invitation.StatusUpdate) (invitation.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, exists := r.byToken[token]
	if !exists {
		return invitation.Invitation{}, invitation.ErrInvitationNotFound
	}

	if inv.Status != upd.From || !invitation.CanTransition(upd.From, upd.To) {
		return invitation.Invitation{}, invitation.ErrInvalidTransition
	}

	inv.Status = upd.To
	if upd.To == invitation.StatusAccepted {
		at := upd.At
		inv.AcceptedAt = &at
		inv.AcceptedBy = upd.ActorID
	}
	r.byToken[token] = inv
	return inv, nil
}

// ListByEngineer implements invitation.InvitationRepository.
func (r *InvitationRepository) ListByEngineer(ctx context.Context, idOrEmail string) ([]invitation.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []invitation.Invitation
	for _, token := range r.order {
		inv := r.byToken[token]
		if inv.EngineerID == idOrEmail || strings.EqualFold(inv.EngineerEmail, idOrEmail) {
			result = append(result, inv)
		}
	}
	return result, nil
}
