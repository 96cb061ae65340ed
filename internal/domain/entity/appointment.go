package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no-show"
)

// Priority values
const (
	PriorityRoutine = "routine"
	PriorityUrgent  = "urgent"
)

// allowedTransitions is the full state machine. Terminal states map to nothing.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusInProgress: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
	AppointmentStatusNoShow:    {},
}

// IsValidAppointmentStatus reports whether the value names a known status.
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from the status.
func (s AppointmentStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && IsValidAppointmentStatus(s)
}

// CanTransitionTo checks the transition table.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AppointmentScan is one catalog scan booked with a quantity.
type AppointmentScan struct {
	ScanID   uuid.UUID `json:"scan_id"`
	Quantity int       `json:"quantity"`
}

// AppointmentScans is the booked scan list, stored as JSONB.
type AppointmentScans []AppointmentScan

func (a AppointmentScans) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

func (a *AppointmentScans) Scan(value interface{}) error {
	*a = nil
	return scanJSONB(value, a)
}

// Appointment is a scheduled delivery of catalog scans to a patient by a
// radiologist at a branch. Financial fields are derived: profit = price - cost.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RadiologistID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_slot" json:"radiologist_id"`
	BranchID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"branch_id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	Scans              AppointmentScans  `gorm:"type:jsonb;not null;default:'[]'" json:"scans"`
	Cost               decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"cost"`
	Price              decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"price"`
	Profit             decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"profit"`
	ReferredByID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"referred_by_id"`
	RepresentativeID   *uuid.UUID        `gorm:"type:uuid;index" json:"representative_id,omitempty"`
	ScheduledAt        time.Time         `gorm:"not null;index:idx_appointments_slot" json:"scheduled_at"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Priority           string            `gorm:"type:varchar(20);not null;default:'routine'" json:"priority"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	PDFReport          *string           `gorm:"type:text" json:"pdf_report,omitempty"`
	MakeHugeSale       bool              `gorm:"not null;default:false" json:"make_huge_sale"`
	CustomPrice        *decimal.Decimal  `gorm:"type:decimal(12,2)" json:"custom_price,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CancelledByID      *uuid.UUID        `gorm:"type:uuid" json:"cancelled_by_id,omitempty"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	IsActive           *bool             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Radiologist    User            `gorm:"foreignKey:RadiologistID" json:"radiologist,omitempty"`
	Branch         Branch          `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Patient        Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	ReferredBy     Doctor          `gorm:"foreignKey:ReferredByID" json:"referred_by,omitempty"`
	Representative *Representative `gorm:"foreignKey:RepresentativeID" json:"representative,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ComputeFinancials derives cost, price and profit from the catalog entries
// of the booked scans. Under a huge-sale override the price is the explicit
// custom price; cost is always recomputed from the catalog.
func (a *Appointment) ComputeFinancials(catalog map[uuid.UUID]*Scan) {
	cost := decimal.Zero
	price := decimal.Zero

	for _, line := range a.Scans {
		scan, ok := catalog[line.ScanID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		cost = cost.Add(scan.ActualCost.Mul(qty))
		price = price.Add(scan.MinPrice.Mul(qty))
	}

	if a.MakeHugeSale && a.CustomPrice != nil {
		price = *a.CustomPrice
	}

	a.Cost = cost
	a.Price = price
	a.Profit = price.Sub(cost)
}
