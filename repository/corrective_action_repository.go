package repository

import (
	"context"
	"time"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CorrectiveActionRepository handles database operations for corrective actions
type CorrectiveActionRepository struct {
	db *pgxpool.Pool
}

// NewCorrectiveActionRepository creates a new corrective action repository
func NewCorrectiveActionRepository(db *pgxpool.Pool) *CorrectiveActionRepository {
	return &CorrectiveActionRepository{db: db}
}

// Create creates a new corrective action
func (r *CorrectiveActionRepository) Create(ctx context.Context, action *models.CorrectiveAction) error {
	query := `
		INSERT INTO ethics_corrective_actions (
			tenant_id, report_id, description, owner, status, due_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		action.TenantID,
		action.ReportID,
		action.Description,
		action.Owner,
		action.Status,
		action.DueAt,
	).Scan(&action.ID, &action.CreatedAt, &action.UpdatedAt)

	return err
}

// GetByID retrieves a corrective action by ID within a tenant
func (r *CorrectiveActionRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CorrectiveAction, error) {
	action := &models.CorrectiveAction{}
	query := `
		SELECT id, tenant_id, report_id, description, owner, status,
			due_at, completed_at, created_at, updated_at
		FROM ethics_corrective_actions
		WHERE id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&action.ID,
		&action.TenantID,
		&action.ReportID,
		&action.Description,
		&action.Owner,
		&action.Status,
		&action.DueAt,
		&action.CompletedAt,
		&action.CreatedAt,
		&action.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return action, nil
}

// ListByReportID retrieves all corrective actions for a report
func (r *CorrectiveActionRepository) ListByReportID(ctx context.Context, tenantID, reportID uuid.UUID) ([]*models.CorrectiveAction, error) {
	query := `
		SELECT id, tenant_id, report_id, description, owner, status,
			due_at, completed_at, created_at, updated_at
		FROM ethics_corrective_actions
		WHERE report_id = $1 AND tenant_id = $2
		ORDER BY due_at ASC`

	rows, err := r.db.Query(ctx, query, reportID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*models.CorrectiveAction
	for rows.Next() {
		action := &models.CorrectiveAction{}
		err := rows.Scan(
			&action.ID,
			&action.TenantID,
			&action.ReportID,
			&action.Description,
			&action.Owner,
			&action.Status,
			&action.DueAt,
			&action.CompletedAt,
			&action.CreatedAt,
			&action.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return actions, rows.Err()
}

// Complete marks a corrective action as completed
func (r *CorrectiveActionRepository) Complete(ctx context.Context, tenantID, id uuid.UUID) error {
	now := time.Now()
	query := `
		UPDATE ethics_corrective_actions SET
			status = $3,
			completed_at = $4,
			updated_at = $4
		WHERE id = $1 AND tenant_id = $2`

	_, err := r.db.Exec(ctx, query, id, tenantID, models.ActionStatusCompleted, now)
	return err
}
