package project

import "context"

// ProjectRepository defines read access to the externally-owned project
// collection. There is no foreign key between invitations and projects;
// both lookups are by-value.
type ProjectRepository interface {
	// GetByID retrieves a project by its id
	GetByID(ctx context.Context, id string) (ProjectRef, error)

	// GetByReference retrieves a project by its reference number
	GetByReference(ctx context.Context, referenceNumber string) (ProjectRef, error)
}
