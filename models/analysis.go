package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RiskLevel represents a discrete risk classification
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// AnalysisPoint is a user-configurable weighted keyword rubric used to
// score one facet of a contract (e.g. "Data Protection")
type AnalysisPoint struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Weight      int       `json:"weight"` // 1-10
	Enabled     bool      `json:"enabled"`
	Keywords    []string  `json:"keywords"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Finding is a single issue derived from an analysis run
type Finding struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Recommendation  string    `json:"recommendation"`
	ClauseReference string    `json:"clauseReference,omitempty"`
}

// AnalysisResult is the full outcome of one contract analysis run.
// It is created fresh on every run and overwritten by the next.
type AnalysisResult struct {
	OverallScore    int       `json:"overallScore"` // 0-100
	RiskLevel       RiskLevel `json:"riskLevel"`
	Summary         string    `json:"summary"`
	Findings        []Finding `json:"findings"`
	Recommendations []string  `json:"recommendations"`
	MissingClauses  []string  `json:"missingClauses"`
	RedFlags        []string  `json:"redFlags"`
	IsValidContract *bool     `json:"isValidContract,omitempty"`
}

// Value implements driver.Valuer for JSONB
func (r AnalysisResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB
func (r *AnalysisResult) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// ContractAnalysis is a persisted analysis run
type ContractAnalysis struct {
	ID           uuid.UUID      `json:"id"`
	TenantID     uuid.UUID      `json:"tenant_id"`
	VendorID     *uuid.UUID     `json:"vendor_id,omitempty"`
	Filename     *string        `json:"filename,omitempty"`
	Provider     string         `json:"provider"` // "heuristic", "gemini", "openai"
	Result       AnalysisResult `json:"result"`
	OverallScore int            `json:"overall_score"`
	RiskLevel    RiskLevel      `json:"risk_level"`
	CreatedAt    time.Time      `json:"created_at"`
}
