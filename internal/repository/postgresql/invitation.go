package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/consite-erp/consite-backend-go/internal/domain/invitation"
	"github.com/consite-erp/consite-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const invitationColumns = `token, project_id, project_reference_number, project_name,
	project_client, engineer_id, engineer_email, status, accepted_at, accepted_by, created_at`

// invitationRepositoryImpl runs on any database.Querier; a caller that needs
// transactional composition can construct it over a pgx.Tx instead of the pool.
type invitationRepositoryImpl struct {
	q database.Querier
}

// NewInvitationRepository creates a new invitation repository instance
func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepositoryImpl{q: db.Pool}
}

// Save implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) Save(ctx context.Context, inv invitation.Invitation) error {
	query := `
		INSERT INTO tender_invitations (
			token, project_id, project_reference_number, project_name, project_client,
			engineer_id, engineer_email, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.Exec(ctx, query,
		inv.Token, inv.ProjectID, inv.ProjectReferenceNumber, inv.ProjectName,
		inv.ProjectClient, inv.EngineerID, inv.EngineerEmail, inv.Status, inv.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return invitation.ErrDuplicateToken
		}
		return fmt.Errorf("failed to save invitation: %w", err)
	}

	return nil
}

// FindByToken implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) FindByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM tender_invitations WHERE token = $1`

	var inv invitation.Invitation
	err := r.q.QueryRow(ctx, query, token).Scan(
		&inv.Token, &inv.ProjectID, &inv.ProjectReferenceNumber, &inv.ProjectName,
		&inv.ProjectClient, &inv.EngineerID, &inv.EngineerEmail, &inv.Status,
		&inv.AcceptedAt, &inv.AcceptedBy, &inv.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to get invitation by token: %w", err)
	}

	return inv, nil
}

// UpdateStatus implements invitation.InvitationRepository. The WHERE clause
// compares against the expected current status, so the move is a single
// atomic compare-and-set: of two racing identical updates only one row wins.
func (r *invitationRepositoryImpl) UpdateStatus(ctx context.Context, token string, upd invitation.StatusUpdate) (invitation.Invitation, error) {
	if !invitation.CanTransition(upd.From, upd.To) {
		return invitation.Invitation{}, invitation.ErrInvalidTransition
	}

	var inv invitation.Invitation
	var err error

	if upd.To == invitation.StatusAccepted {
		query := `
			UPDATE tender_invitations
			SET status = $3, accepted_at = $4, accepted_by = $5
			WHERE token = $1 AND status = $2
			RETURNING ` + invitationColumns
		err = r.q.QueryRow(ctx, query, token, upd.From, upd.To, upd.At, upd.ActorID).Scan(
			&inv.Token, &inv.ProjectID, &inv.ProjectReferenceNumber, &inv.ProjectName,
			&inv.ProjectClient, &inv.EngineerID, &inv.EngineerEmail, &inv.Status,
			&inv.AcceptedAt, &inv.AcceptedBy, &inv.CreatedAt,
		)
	} else {
		query := `
			UPDATE tender_invitations
			SET status = $3
			WHERE token = $1 AND status = $2
			RETURNING ` + invitationColumns
		err = r.q.QueryRow(ctx, query, token, upd.From, upd.To).Scan(
			&inv.Token, &inv.ProjectID, &inv.ProjectReferenceNumber, &inv.ProjectName,
			&inv.ProjectClient, &inv.EngineerID, &inv.EngineerEmail, &inv.Status,
			&inv.AcceptedAt, &inv.AcceptedBy, &inv.CreatedAt,
		)
	}

	if err != nil {
		if err == pgx.ErrNoRows {
			// Either the token is unknown or another caller moved the status
			// first; distinguish with a follow-up read.
			if _, findErr := r.FindByToken(ctx, token); findErr != nil {
				return invitation.Invitation{}, findErr
			}
			return invitation.Invitation{}, invitation.ErrInvalidTransition
		}
		return invitation.Invitation{}, fmt.Errorf("failed to update invitation status: %w", err)
	}

	return inv, nil
}

// ListByEngineer implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) ListByEngineer(ctx context.Context, idOrEmail string) ([]invitation.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM tender_invitations
		WHERE engineer_id = $1 OR LOWER(engineer_email) = LOWER($1)
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, idOrEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations by engineer: %w", err)
	}
	defer rows.Close()

	var invitations []invitation.Invitation
	for rows.Next() {
		var inv invitation.Invitation
		err := rows.Scan(
			&inv.Token, &inv.ProjectID, &inv.ProjectReferenceNumber, &inv.ProjectName,
			&inv.ProjectClient, &inv.EngineerID, &inv.EngineerEmail, &inv.Status,
			&inv.AcceptedAt, &inv.AcceptedBy, &inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}
