package repository

import (
	"context"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysisRepository handles database operations for contract analyses and
// the analysis point rubric
type AnalysisRepository struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// CreateAnalysis persists a completed contract analysis run
func (r *AnalysisRepository) CreateAnalysis(ctx context.Context, analysis *models.ContractAnalysis) error {
	query := `
		INSERT INTO contract_analyses (
			tenant_id, vendor_id, filename, provider, result,
			overall_score, risk_level
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		analysis.TenantID,
		analysis.VendorID,
		analysis.Filename,
		analysis.Provider,
		analysis.Result,
		analysis.OverallScore,
		analysis.RiskLevel,
	).Scan(&analysis.ID, &analysis.CreatedAt)

	return err
}

// GetAnalysis retrieves a contract analysis by ID within a tenant
func (r *AnalysisRepository) GetAnalysis(ctx context.Context, tenantID, id uuid.UUID) (*models.ContractAnalysis, error) {
	analysis := &models.ContractAnalysis{}
	query := `
		SELECT id, tenant_id, vendor_id, filename, provider, result,
			overall_score, risk_level, created_at
		FROM contract_analyses
		WHERE id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&analysis.ID,
		&analysis.TenantID,
		&analysis.VendorID,
		&analysis.Filename,
		&analysis.Provider,
		&analysis.Result,
		&analysis.OverallScore,
		&analysis.RiskLevel,
		&analysis.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return analysis, nil
}

// ListAnalysesByVendor retrieves all analyses run for a vendor
func (r *AnalysisRepository) ListAnalysesByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) ([]*models.ContractAnalysis, error) {
	query := `
		SELECT id, tenant_id, vendor_id, filename, provider, result,
			overall_score, risk_level, created_at
		FROM contract_analyses
		WHERE vendor_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, vendorID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*models.ContractAnalysis
	for rows.Next() {
		analysis := &models.ContractAnalysis{}
		err := rows.Scan(
			&analysis.ID,
			&analysis.TenantID,
			&analysis.VendorID,
			&analysis.Filename,
			&analysis.Provider,
			&analysis.Result,
			&analysis.OverallScore,
			&analysis.RiskLevel,
			&analysis.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	return analyses, rows.Err()
}

// ListPoints retrieves all analysis points for a tenant
func (r *AnalysisRepository) ListPoints(ctx context.Context, tenantID uuid.UUID) ([]models.AnalysisPoint, error) {
	query := `
		SELECT id, tenant_id, category, title, description, weight, enabled,
			keywords, created_at, updated_at
		FROM analysis_points
		WHERE tenant_id = $1
		ORDER BY category, title`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.AnalysisPoint
	for rows.Next() {
		var point models.AnalysisPoint
		err := rows.Scan(
			&point.ID,
			&point.TenantID,
			&point.Category,
			&point.Title,
			&point.Description,
			&point.Weight,
			&point.Enabled,
			&point.Keywords,
			&point.CreatedAt,
			&point.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, rows.Err()
}

// CreatePoint creates a new analysis point
func (r *AnalysisRepository) CreatePoint(ctx context.Context, point *models.AnalysisPoint) error {
	query := `
		INSERT INTO analysis_points (
			tenant_id, category, title, description, weight, enabled, keywords
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		point.TenantID,
		point.Category,
		point.Title,
		point.Description,
		point.Weight,
		point.Enabled,
		point.Keywords,
	).Scan(&point.ID, &point.CreatedAt, &point.UpdatedAt)

	return err
}

// UpdatePoint updates an analysis point
func (r *AnalysisRepository) UpdatePoint(ctx context.Context, point *models.AnalysisPoint) error {
	query := `
		UPDATE analysis_points SET
			category = $3,
			title = $4,
			description = $5,
			weight = $6,
			enabled = $7,
			keywords = $8,
			updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		point.ID,
		point.TenantID,
		point.Category,
		point.Title,
		point.Description,
		point.Weight,
		point.Enabled,
		point.Keywords,
	).Scan(&point.UpdatedAt)

	return err
}
