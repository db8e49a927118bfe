package repository

import (
	"context"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvestigationPlanRepository handles database operations for investigation plans
type InvestigationPlanRepository struct {
	db *pgxpool.Pool
}

// NewInvestigationPlanRepository creates a new investigation plan repository
func NewInvestigationPlanRepository(db *pgxpool.Pool) *InvestigationPlanRepository {
	return &InvestigationPlanRepository{db: db}
}

// Upsert creates or replaces the investigation plan for a report. Each
// report carries at most one plan.
func (r *InvestigationPlanRepository) Upsert(ctx context.Context, plan *models.InvestigationPlan) error {
	query := `
		INSERT INTO ethics_investigation_plans (
			tenant_id, report_id, summary, steps, status
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (report_id) DO UPDATE SET
			summary = EXCLUDED.summary,
			steps = EXCLUDED.steps,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		plan.TenantID,
		plan.ReportID,
		plan.Summary,
		plan.Steps,
		plan.Status,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)

	return err
}

// GetByID retrieves an investigation plan by ID within a tenant
func (r *InvestigationPlanRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InvestigationPlan, error) {
	plan := &models.InvestigationPlan{}
	query := `
		SELECT id, tenant_id, report_id, summary, steps, status,
			created_at, updated_at
		FROM ethics_investigation_plans
		WHERE id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&plan.ID,
		&plan.TenantID,
		&plan.ReportID,
		&plan.Summary,
		&plan.Steps,
		&plan.Status,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if plan.Steps == nil {
		plan.Steps = make(models.PlanSteps, 0)
	}

	return plan, nil
}

// GetByReportID retrieves the investigation plan for a report
func (r *InvestigationPlanRepository) GetByReportID(ctx context.Context, tenantID, reportID uuid.UUID) (*models.InvestigationPlan, error) {
	plan := &models.InvestigationPlan{}
	query := `
		SELECT id, tenant_id, report_id, summary, steps, status,
			created_at, updated_at
		FROM ethics_investigation_plans
		WHERE report_id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, reportID, tenantID).Scan(
		&plan.ID,
		&plan.TenantID,
		&plan.ReportID,
		&plan.Summary,
		&plan.Steps,
		&plan.Status,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if plan.Steps == nil {
		plan.Steps = make(models.PlanSteps, 0)
	}

	return plan, nil
}

// UpdateSteps updates the steps and status of an investigation plan
func (r *InvestigationPlanRepository) UpdateSteps(ctx context.Context, tenantID, id uuid.UUID, steps models.PlanSteps, status models.PlanStatus) error {
	query := `
		UPDATE ethics_investigation_plans SET
			steps = $3,
			status = $4,
			updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2`

	_, err := r.db.Exec(ctx, query, id, tenantID, steps, status)
	return err
}
