package repository

import (
	"context"
	"fmt"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorRepository handles database operations for the vendor registry
type VendorRepository struct {
	db *pgxpool.Pool
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create creates a new vendor registry entry
func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO vendor_registry (
			tenant_id, legal_name, trade_name, tax_id, contact_name,
			contact_email, category, risk_score, risk_level,
			onboarding_status, onboarding_step, onboarding_progress, status,
			contract_review_done, contract_review_skipped, assessment_done
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		vendor.TenantID,
		vendor.LegalName,
		vendor.TradeName,
		vendor.TaxID,
		vendor.ContactName,
		vendor.ContactEmail,
		vendor.Category,
		vendor.RiskScore,
		vendor.RiskLevel,
		vendor.OnboardingStatus,
		vendor.OnboardingStep,
		vendor.OnboardingProgress,
		vendor.Status,
		vendor.ContractReviewDone,
		vendor.ContractReviewSkipped,
		vendor.AssessmentDone,
	).Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)

	return err
}

// GetByID retrieves a vendor by ID within a tenant
func (r *VendorRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	query := `
		SELECT id, tenant_id, legal_name, trade_name, tax_id, contact_name,
			contact_email, category, risk_score, risk_level,
			onboarding_status, onboarding_step, onboarding_progress, status,
			contract_review_done, contract_review_skipped, assessment_done,
			created_at, updated_at
		FROM vendor_registry
		WHERE id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&vendor.ID,
		&vendor.TenantID,
		&vendor.LegalName,
		&vendor.TradeName,
		&vendor.TaxID,
		&vendor.ContactName,
		&vendor.ContactEmail,
		&vendor.Category,
		&vendor.RiskScore,
		&vendor.RiskLevel,
		&vendor.OnboardingStatus,
		&vendor.OnboardingStep,
		&vendor.OnboardingProgress,
		&vendor.Status,
		&vendor.ContractReviewDone,
		&vendor.ContractReviewSkipped,
		&vendor.AssessmentDone,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return vendor, nil
}

// Update updates a vendor registry entry
func (r *VendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	query := `
		UPDATE vendor_registry SET
			legal_name = $3,
			trade_name = $4,
			tax_id = $5,
			contact_name = $6,
			contact_email = $7,
			category = $8,
			risk_score = $9,
			risk_level = $10,
			onboarding_status = $11,
			onboarding_step = $12,
			onboarding_progress = $13,
			status = $14,
			contract_review_done = $15,
			contract_review_skipped = $16,
			assessment_done = $17,
			updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		vendor.ID,
		vendor.TenantID,
		vendor.LegalName,
		vendor.TradeName,
		vendor.TaxID,
		vendor.ContactName,
		vendor.ContactEmail,
		vendor.Category,
		vendor.RiskScore,
		vendor.RiskLevel,
		vendor.OnboardingStatus,
		vendor.OnboardingStep,
		vendor.OnboardingProgress,
		vendor.Status,
		vendor.ContractReviewDone,
		vendor.ContractReviewSkipped,
		vendor.AssessmentDone,
	).Scan(&vendor.UpdatedAt)

	return err
}

// List retrieves vendors. A nil tenantID lists across all tenants
// (platform-admin override).
func (r *VendorRepository) List(ctx context.Context, tenantID *uuid.UUID, status *models.VendorStatus, limit, offset int) ([]*models.Vendor, error) {
	query := `
		SELECT id, tenant_id, legal_name, trade_name, tax_id, contact_name,
			contact_email, category, risk_score, risk_level,
			onboarding_status, onboarding_step, onboarding_progress, status,
			contract_review_done, contract_review_skipped, assessment_done,
			created_at, updated_at
		FROM vendor_registry
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

	var vendors []*models.Vendor
	for rows.Next() {
		vendor := &models.Vendor{}
		err := rows.Scan(
			&vendor.ID,
			&vendor.TenantID,
			&vendor.LegalName,
			&vendor.TradeName,
			&vendor.TaxID,
			&vendor.ContactName,
			&vendor.ContactEmail,
			&vendor.Category,
			&vendor.RiskScore,
			&vendor.RiskLevel,
			&vendor.OnboardingStatus,
			&vendor.OnboardingStep,
			&vendor.OnboardingProgress,
			&vendor.Status,
			&vendor.ContractReviewDone,
			&vendor.ContractReviewSkipped,
			&vendor.AssessmentDone,
			&vendor.CreatedAt,
			&vendor.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}
