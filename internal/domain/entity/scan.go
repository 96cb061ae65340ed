package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScanItem is one consumable line item a scan uses per performance.
type ScanItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ScanItems is the consumables list of a catalog scan, stored as JSONB.
type ScanItems []ScanItem

func (s ScanItems) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *ScanItems) Scan(value interface{}) error {
	*s = nil
	return scanJSONB(value, s)
}

// Scan is a catalog item: a service offered by the lab, priced by actual cost
// and minimum sale price, consuming stock line items when performed.
type Scan struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	ActualCost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"actual_cost"`
	MinPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"min_price"`
	Items      ScanItems       `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Images     StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	IsActive   *bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Scan) TableName() string {
	return "scans"
}

// Active reports whether the scan can be booked.
func (s *Scan) Active() bool {
	return s.IsActive != nil && *s.IsActive
}
