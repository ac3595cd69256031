package postgresql

import (
	"context"
	"fmt"

	"github.com/consite-erp/consite-backend-go/internal/domain/project"
	"github.com/consite-erp/consite-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// The projects table belongs to the wider ERP; this repository only reads
// from it and there is no foreign key from tender_invitations into it.
type projectRepositoryImpl struct {
	q database.Querier
}

// NewProjectRepository creates a new read-only project repository instance
func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{q: db.Pool}
}

const projectColumns = `id, reference_number, name, client, owner, start_date, end_date`

// GetByID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id string) (project.ProjectRef, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	var p project.ProjectRef
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ReferenceNumber, &p.Name, &p.Client, &p.Owner, &p.StartDate, &p.EndDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return project.ProjectRef{}, project.ErrProjectNotFound
		}
		return project.ProjectRef{}, fmt.Errorf("failed to get project by id: %w", err)
	}

	return p, nil
}

// GetByReference implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByReference(ctx context.Context, referenceNumber string) (project.ProjectRef, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE reference_number = $1`

	var p project.ProjectRef
	err := r.q.QueryRow(ctx, query, referenceNumber).Scan(
		&p.ID, &p.ReferenceNumber, &p.Name, &p.Client, &p.Owner, &p.StartDate, &p.EndDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return project.ProjectRef{}, project.ErrProjectNotFound
		}
		return project.ProjectRef{}, fmt.Errorf("failed to get project by reference: %w", err)
	}

	return p, nil
}
