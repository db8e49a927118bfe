package repository

import (
	"context"

	"grcdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository handles database operations for regulatory notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new regulatory notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.RegulatoryNotification) error {
	query := `
		INSERT INTO ethics_regulatory_notifications (
			tenant_id, report_id, authority, reference, notified_at, notes
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		notification.TenantID,
		notification.ReportID,
		notification.Authority,
		notification.Reference,
		notification.NotifiedAt,
		notification.Notes,
	).Scan(&notification.ID, &notification.CreatedAt)

	return err
}

// ListByReportID retrieves all regulatory notifications for a report
func (r *NotificationRepository) ListByReportID(ctx context.Context, tenantID, reportID uuid.UUID) ([]*models.RegulatoryNotification, error) {
	query := `
		SELECT id, tenant_id, report_id, authority, reference, notified_at,
			notes, created_at
		FROM ethics_regulatory_notifications
		WHERE report_id = $1 AND tenant_id = $2
		ORDER BY notified_at DESC`

	rows, err := r.db.Query(ctx, query, reportID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.RegulatoryNotification
	for rows.Next() {
		notification := &models.RegulatoryNotification{}
		err := rows.Scan(
			&notification.ID,
			&notification.TenantID,
			&notification.ReportID,
			&notification.Authority,
			&notification.Reference,
			&notification.NotifiedAt,
			&notification.Notes,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	return notifications, rows.Err()
}
