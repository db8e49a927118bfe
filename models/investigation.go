package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PlanStatus represents the status of an investigation plan
type PlanStatus string

const (
	PlanStatusDraft      PlanStatus = "draft"
	PlanStatusInProgress PlanStatus = "in_progress"
	PlanStatusCompleted  PlanStatus = "completed"
)

// PlanStep represents a step in an investigation plan
type PlanStep struct {
	Name   string     `json:"name"`
	Status string     `json:"status"` // "pending", "in_progress", "completed", "skipped"
	Owner  string     `json:"owner,omitempty"`
	Due    *time.Time `json:"due,omitempty"`
}

// PlanSteps represents a list of investigation plan steps
type PlanSteps []PlanStep

// Value implements driver.Valuer for JSONB
func (p PlanSteps) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *PlanSteps) Scan(value interface{}) error {
	if value == nil {
		*p = make(PlanSteps, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*p = make(PlanSteps, 0)
		return nil
	}

	if len(bytes) == 0 {
		*p = make(PlanSteps, 0)
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// InvestigationPlan represents the investigation plan for an ethics report
type InvestigationPlan struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	ReportID  uuid.UUID  `json:"report_id"`
	Summary   string     `json:"summary"`
	Steps     PlanSteps  `json:"steps"`
	Status    PlanStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ActionStatus represents the status of a corrective action
type ActionStatus string

const (
	ActionStatusOpen      ActionStatus = "open"
	ActionStatusCompleted ActionStatus = "completed"
	ActionStatusCancelled ActionStatus = "cancelled"
)

// CorrectiveAction represents a corrective action attached to an ethics report
type CorrectiveAction struct {
	ID          uuid.UUID    `json:"id"`
	TenantID    uuid.UUID    `json:"tenant_id"`
	ReportID    uuid.UUID    `json:"report_id"`
	Description string       `json:"description"`
	Owner       string       `json:"owner"`
	Status      ActionStatus `json:"status"`
	DueAt       time.Time    `json:"due_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// RegulatoryNotification represents a notification sent to a regulator about a report
type RegulatoryNotification struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	ReportID   uuid.UUID `json:"report_id"`
	Authority  string    `json:"authority"`
	Reference  *string   `json:"reference,omitempty"`
	NotifiedAt time.Time `json:"notified_at"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
