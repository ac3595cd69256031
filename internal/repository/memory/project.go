package memory

import (
	"context"
	"sync"

	"github.com/consite-erp/consite-backend-go/internal/domain/project"
)

type ProjectRepository struct {
	mu    sync.RWMutex
	byID  map[string]project.ProjectRef
	byRef map[string]string // reference number -> id
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		byID:  make(map[string]project.ProjectRef),
		byRef: make(map[string]string),
	}
}

// Put stores or replaces a project record.
func (r *ProjectRepository) Put(p project.ProjectRef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = p
	if p.ReferenceNumber != "" {
		r.byRef[p.ReferenceNumber] = p.ID
	}
}

// Remove deletes a project record; dangling invitations are expected to
// degrade gracefully, never to fail.
func (r *ProjectRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.byID[id]; ok {
		delete(r.byRef, p.ReferenceNumber)
		delete(r.byID, id)
	}
}

// GetByID implements project.ProjectRepository.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (project.ProjectRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.byID[id]
	if !exists {
		return project.ProjectRef{}, project.ErrProjectNotFound
	}
	return p, nil
}

// GetByReference implements project.ProjectRepository.
func (r *ProjectRepository) GetByReference(ctx context.Context, referenceNumber string) (project.ProjectRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byRef[referenceNumber]
	if !exists {
		return project.ProjectRef{}, project.ErrProjectNotFound
	}
	return r.byID[id], nil
}
