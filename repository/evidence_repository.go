package repository

import (
	"context"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EvidenceRepository handles database operations for ethics evidence
type EvidenceRepository struct {
	db *pgxpool.Pool
}

// NewEvidenceRepository creates a new evidence repository
func NewEvidenceRepository(db *pgxpool.Pool) *EvidenceRepository {
	return &EvidenceRepository{db: db}
}

// Create creates a new evidence record
func (r *EvidenceRepository) Create(ctx context.Context, evidence *models.EthicsEvidence) error {
	query := `
		INSERT INTO ethics_evidence (
			id, tenant_id, report_id, filename, mime_type, size,
			storage_path, sha256, custody_chain
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		evidence.ID,
		evidence.TenantID,
		evidence.ReportID,
		evidence.Filename,
		evidence.MimeType,
		evidence.Size,
		evidence.StoragePath,
		evidence.SHA256,
		evidence.CustodyChain,
	).Scan(&evidence.CreatedAt)

	return err
}

// GetByID retrieves an evidence record by ID within a tenant
func (r *EvidenceRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.EthicsEvidence, error) {
	evidence := &models.EthicsEvidence{}
	query := `
		SELECT id, tenant_id, report_id, filename, mime_type, size,
			storage_path, sha256, custody_chain, created_at
		FROM ethics_evidence
		WHERE id = $1 AND tenant_id = $2`

	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&evidence.ID,
		&evidence.TenantID,
		&evidence.ReportID,
		&evidence.Filename,
		&evidence.MimeType,
		&evidence.Size,
		&evidence.StoragePath,
		&evidence.SHA256,
		&evidence.CustodyChain,
		&evidence.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	if evidence.CustodyChain == nil {
		evidence.CustodyChain = make(models.CustodyChain, 0)
	}

	return evidence, nil
}

// ListByReportID retrieves all evidence for a report
func (r *EvidenceRepository) ListByReportID(ctx context.Context, tenantID, reportID uuid.UUID) ([]*models.EthicsEvidence, error) {
	query := `
		SELECT id, tenant_id, report_id, filename, mime_type, size,
			storage_path, sha256, custody_chain, created_at
		FROM ethics_evidence
		WHERE report_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, reportID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.EthicsEvidence
	for rows.Next() {
		evidence := &models.EthicsEvidence{}
		err := rows.Scan(
			&evidence.ID,
			&evidence.TenantID,
			&evidence.ReportID,
			&evidence.Filename,
			&evidence.MimeType,
			&evidence.Size,
			&evidence.StoragePath,
			&evidence.SHA256,
			&evidence.CustodyChain,
			&evidence.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, evidence)
	}

	return items, rows.Err()
}

// UpdateCustodyChain replaces the custody chain of an evidence record
func (r *EvidenceRepository) UpdateCustodyChain(ctx context.Context, tenantID, id uuid.UUID, chain models.CustodyChain) error {
	query := `
		UPDATE ethics_evidence SET
			custody_chain = $3
		WHERE id = $1 AND tenant_id = $2`

	_, err := r.db.Exec(ctx, query, id, tenantID, chain)
	return err
}
