package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CustodyEntry represents a single link in an evidence custody chain
type CustodyEntry struct {
	Actor  string    `json:"actor"`
	Action string    `json:"action"` // "collected", "accessed", "transferred"
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

// CustodyChain is the append-only list of custody entries for one evidence item
type CustodyChain []CustodyEntry

// Value implements driver.Valuer for JSONB
func (c CustodyChain) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *CustodyChain) Scan(value interface{}) error {
	if value == nil {
		*c = make(CustodyChain, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*c = make(CustodyChain, 0)
		return nil
	}

	if len(bytes) == 0 {
		*c = make(CustodyChain, 0)
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// EthicsEvidence represents an evidence file attached to an ethics report
type EthicsEvidence struct {
	ID           uuid.UUID    `json:"id"`
	TenantID     uuid.UUID    `json:"tenant_id"`
	ReportID     uuid.UUID    `json:"report_id"`
	Filename     string       `json:"filename"`
	MimeType     string       `json:"mime_type"`
	Size         int64        `json:"size"`
	StoragePath  string       `json:"storage_path"`
	SHA256       string       `json:"sha256"`
	CustodyChain CustodyChain `json:"custody_chain"`
	CreatedAt    time.Time    `json:"created_at"`
}
