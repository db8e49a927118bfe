package repository

import (
	"context"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChecklistRepository handles database operations for due-diligence
// checklist templates and responses
type ChecklistRepository struct {
	db *pgxpool.Pool
}

// NewChecklistRepository creates a new checklist repository
func NewChecklistRepository(db *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// CreateTemplate creates a new checklist template
func (r *ChecklistRepository) CreateTemplate(ctx context.Context, template *models.ChecklistTemplate) error {
	query := `
		INSERT INTO vendor_checklist_templates (
			tenant_id, name, items
		) VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		template.TenantID,
		template.Name,
		template.Items,
	).Scan(&template.ID, &template.CreatedAt)

	return err
}

// GetTemplate retrieves a checklist template by ID within a tenant
func (r *ChecklistRepository) GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (*models.ChecklistTemplate, error) {
	template := &models.ChecklistTemplate{}
	query := `
		SELECT id, tenant_id, name, items, created_at
		FROM vendor_checklist_templates
		WHERE id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&template.ID,
		&template.TenantID,
		&template.Name,
		&template.Items,
		&template.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	if template.Items == nil {
		template.Items = make(models.ChecklistItems, 0)
	}

	return template, nil
}

// GetDefaultTemplate retrieves the oldest checklist template of a tenant,
// which acts as the default due-diligence questionnaire.
func (r *ChecklistRepository) GetDefaultTemplate(ctx context.Context, tenantID uuid.UUID) (*models.ChecklistTemplate, error) {
	template := &models.ChecklistTemplate{}
	query := `
		SELECT id, tenant_id, name, items, created_at
		FROM vendor_checklist_templates
		WHERE tenant_id = $1
		ORDER BY created_at ASC
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, tenantID).Scan(
		&template.ID,
		&template.TenantID,
		&template.Name,
		&template.Items,
		&template.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	if template.Items == nil {
		template.Items = make(models.ChecklistItems, 0)
	}

	return template, nil
}

// UpsertResponse creates or updates a vendor's response to one checklist item
func (r *ChecklistRepository) UpsertResponse(ctx context.Context, response *models.ChecklistResponse) error {
	query := `
		INSERT INTO vendor_checklist_responses (
			tenant_id, vendor_id, template_id, item_id, compliance_status, justification
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vendor_id, item_id) DO UPDATE SET
			compliance_status = EXCLUDED.compliance_status,
			justification = EXCLUDED.justification,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		response.TenantID,
		response.VendorID,
		response.TemplateID,
		response.ItemID,
		response.Status,
		response.Justification,
	).Scan(&response.ID, &response.CreatedAt, &response.UpdatedAt)

	return err
}

// ListResponses retrieves all checklist responses for a vendor
func (r *ChecklistRepository) ListResponses(ctx context.Context, tenantID, vendorID uuid.UUID) ([]*models.ChecklistResponse, error) {
	query := `
		SELECT id, tenant_id, vendor_id, template_id, item_id,
			compliance_status, justification, created_at, updated_at
		FROM vendor_checklist_responses
		WHERE vendor_id = $1 AND tenant_id = $2
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, vendorID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*models.ChecklistResponse
	for rows.Next() {
		response := &models.ChecklistResponse{}
		err := rows.Scan(
			&response.ID,
			&response.TenantID,
			&response.VendorID,
			&response.TemplateID,
			&response.ItemID,
			&response.Status,
			&response.Justification,
			&response.CreatedAt,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, rows.Err()
}
