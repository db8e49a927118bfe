package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ComplianceStatus is the tri-state judgment attached to a checklist response
type ComplianceStatus string

const (
	Compliant                ComplianceStatus = "compliant"
	CompliantWithReservation ComplianceStatus = "compliant_with_reservation"
	NonCompliant             ComplianceStatus = "non_compliant"
)

// ChecklistItem defines a single due-diligence question
type ChecklistItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category,omitempty"`
	Required bool   `json:"required"`
}

// ChecklistItems represents the item list of a checklist template
type ChecklistItems []ChecklistItem

// Value implements driver.Valuer for JSONB
func (c ChecklistItems) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *ChecklistItems) Scan(value interface{}) error {
	if value == nil {
		*c = make(ChecklistItems, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*c = make(ChecklistItems, 0)
		return nil
	}

	if len(bytes) == 0 {
		*c = make(ChecklistItems, 0)
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// ChecklistTemplate represents a due-diligence checklist template
type ChecklistTemplate struct {
	ID        uuid.UUID      `json:"id"`
	TenantID  uuid.UUID      `json:"tenant_id"`
	Name      string         `json:"name"`
	Items     ChecklistItems `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

// ChecklistResponse holds a vendor's answer to one checklist item
type ChecklistResponse struct {
	ID            uuid.UUID        `json:"id"`
	TenantID      uuid.UUID        `json:"tenant_id"`
	VendorID      uuid.UUID        `json:"vendor_id"`
	TemplateID    uuid.UUID        `json:"template_id"`
	ItemID        string           `json:"item_id"`
	Status        ComplianceStatus `json:"compliance_status"`
	Justification string           `json:"justification"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
