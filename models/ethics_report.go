package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus represents the status of an ethics report
type ReportStatus string

const (
	ReportStatusReceived      ReportStatus = "received"
	ReportStatusTriage        ReportStatus = "triage"
	ReportStatusInvestigating ReportStatus = "investigating"
	ReportStatusResolved      ReportStatus = "resolved"
	ReportStatusClosed        ReportStatus = "closed"
	ReportStatusDismissed     ReportStatus = "dismissed"
)

// ReportSeverity represents the severity of an ethics report
type ReportSeverity string

const (
	SeverityCritical ReportSeverity = "critical"
	SeverityHigh     ReportSeverity = "high"
	SeverityMedium   ReportSeverity = "medium"
	SeverityLow      ReportSeverity = "low"
)

// ReportCategory represents the category of an ethics report
type ReportCategory string

const (
	CategoryFraud              ReportCategory = "fraud"
	CategoryHarassment         ReportCategory = "harassment"
	CategoryCorruption         ReportCategory = "corruption"
	CategoryDataPrivacy        ReportCategory = "data_privacy"
	CategorySafety             ReportCategory = "safety"
	CategoryConflictOfInterest ReportCategory = "conflict_of_interest"
	CategoryOther              ReportCategory = "other"
)

// EthicsReport represents an ethics report entity
type EthicsReport struct {
	ID            uuid.UUID      `json:"id"`
	TenantID      uuid.UUID      `json:"tenant_id"`
	ReferenceCode string         `json:"reference_code"`
	Category      ReportCategory `json:"category"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Severity      ReportSeverity `json:"severity"`
	Status        ReportStatus   `json:"status"`

	// Reporter identity is optional: anonymous reports carry neither field
	ReporterName  *string `json:"reporter_name,omitempty"`
	ReporterEmail *string `json:"reporter_email,omitempty"`
	Anonymous     bool    `json:"anonymous"`

	AssignedTo *uuid.UUID `json:"assigned_to,omitempty"`

	SLADueAt  time.Time `json:"sla_due_at"`
	SLABreach bool      `json:"sla_breached"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}
