package repository

import (
	"context"
	"fmt"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EthicsReportRepository handles database operations for ethics reports
type EthicsReportRepository struct {
	db *pgxpool.Pool
}

// NewEthicsReportRepository creates a new ethics report repository
func NewEthicsReportRepository(db *pgxpool.Pool) *EthicsReportRepository {
	return &EthicsReportRepository{db: db}
}

// Create creates a new ethics report
func (r *EthicsReportRepository) Create(ctx context.Context, report *models.EthicsReport) error {
	query := `
		INSERT INTO ethics_reports (
			tenant_id, reference_code, category, title, description, severity,
			status, reporter_name, reporter_email, anonymous, assigned_to,
			sla_due_at, sla_breached
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		report.TenantID,
		report.ReferenceCode,
		report.Category,
		report.Title,
		report.Description,
		report.Severity,
		report.Status,
		report.ReporterName,
		report.ReporterEmail,
		report.Anonymous,
		report.AssignedTo,
		report.SLADueAt,
		report.SLABreach,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)

	return err
}

// GetByID retrieves an ethics report by ID within a tenant
func (r *EthicsReportRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.EthicsReport, error) {
	report := &models.EthicsReport{}
	query := `
		SELECT id, tenant_id, reference_code, category, title, description,
			severity, status, reporter_name, reporter_email, anonymous,
			assigned_to, sla_due_at, sla_breached,
			created_at, updated_at, closed_at
		FROM ethics_reports
		WHERE id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&report.ID,
		&report.TenantID,
		&report.ReferenceCode,
		&report.Category,
		&report.Title,
		&report.Description,
		&report.Severity,
		&report.Status,
		&report.ReporterName,
		&report.ReporterEmail,
		&report.Anonymous,
		&report.AssignedTo,
		&report.SLADueAt,
		&report.SLABreach,
		&report.CreatedAt,
		&report.UpdatedAt,
		&report.ClosedAt,
	)

	if err != nil {
		return nil, err
	}

	return report, nil
}

// Update updates an ethics report
func (r *EthicsReportRepository) Update(ctx context.Context, report *models.EthicsReport) error {
	query := `
		UPDATE ethics_reports SET
			category = $3,
			title = $4,
			description = $5,
			severity = $6,
			status = $7,
			assigned_to = $8,
			sla_due_at = $9,
			sla_breached = $10,
			closed_at = $11,
			updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		report.ID,
		report.TenantID,
		report.Category,
		report.Title,
		report.Description,
		report.Severity,
		report.Status,
		report.AssignedTo,
		report.SLADueAt,
		report.SLABreach,
		report.ClosedAt,
	).Scan(&report.UpdatedAt)

	return err
}

// List retrieves ethics reports. A nil tenantID lists across all tenants
// (platform-admin override).
func (r *EthicsReportRepository) List(ctx context.Context, tenantID *uuid.UUID, status *models.ReportStatus, limit, offset int) ([]*models.EthicsReport, error) {
	query := `
		SELECT id, tenant_id, reference_code, category, title, description,
			severity, status, reporter_name, reporter_email, anonymous,
			assigned_to, sla_due_at, sla_breached,
			created_at, updated_at, closed_at
		FROM ethics_reports
		WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if tenantID != nil {
		query += fmt.Sprintf(" AND tenant_id = $%d", argIndex)
		args = append(args, *tenantID)
		argIndex++
	}

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.EthicsReport
	for rows.Next() {
		report := &models.EthicsReport{}
		err := rows.Scan(
			&report.ID,
			&report.TenantID,
			&report.ReferenceCode,
			&report.Category,
			&report.Title,
			&report.Description,
			&report.Severity,
			&report.Status,
			&report.ReporterName,
			&report.ReporterEmail,
			&report.Anonymous,
			&report.AssignedTo,
			&report.SLADueAt,
			&report.SLABreach,
			&report.CreatedAt,
			&report.UpdatedAt,
			&report.ClosedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
