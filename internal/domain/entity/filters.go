package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Status           *AppointmentStatus
	From             *time.Time
	To               *time.Time
	PatientID        *uuid.UUID
	DoctorID         *uuid.UUID
	RadiologistID    *uuid.UUID
	BranchID         *uuid.UUID
	RepresentativeID *uuid.UUID
}

// StockFilter selects stock rows by branch and derived conditions.
type StockFilter struct {
	BranchID *uuid.UUID
	LowStock bool
	Expired  bool
}

// AuditFilter selects audit records by the indexed dimensions.
type AuditFilter struct {
	EntityKind *string
	EntityID   *string
	ActorID    *uuid.UUID
	Action     *string
	From       *time.Time
	To         *time.Time
}

// ExpenseFilter selects expenses by status and date range.
type ExpenseFilter struct {
	Status *ExpenseStatus
	From   *time.Time
	To     *time.Time
}
