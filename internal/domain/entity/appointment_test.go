package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   AppointmentStatus
		to     AppointmentStatus
		wantOK bool
	}{
		{"scheduled to confirmed", AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{"scheduled to completed", AppointmentStatusScheduled, AppointmentStatusCompleted, true},
		{"scheduled to no-show", AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{"confirmed to in_progress", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"confirmed to scheduled", AppointmentStatusConfirmed, AppointmentStatusScheduled, false},
		{"in_progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"in_progress to cancelled", AppointmentStatusInProgress, AppointmentStatusCancelled, true},
		{"in_progress to no-show", AppointmentStatusInProgress, AppointmentStatusNoShow, false},
		{"completed to cancelled", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"cancelled to scheduled", AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{"no-show to confirmed", AppointmentStatusNoShow, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.wantOK {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.wantOK)
			}
		})
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	terminal := []AppointmentStatus{
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}

	open := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
	}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}

	if AppointmentStatus("bogus").IsTerminal() {
		t.Error("IsTerminal(bogus) = true, want false")
	}
}

func TestIsValidAppointmentStatus(t *testing.T) {
	if !IsValidAppointmentStatus(AppointmentStatusInProgress) {
		t.Error("IsValidAppointmentStatus(in_progress) = false, want true")
	}
	if IsValidAppointmentStatus("done") {
		t.Error("IsValidAppointmentStatus(done) = true, want false")
	}
}

func TestComputeFinancials(t *testing.T) {
	mri := uuid.New()
	xray := uuid.New()
	catalog := map[uuid.UUID]*Scan{
		mri: {
			ID:         mri,
			ActualCost: decimal.NewFromInt(100),
			MinPrice:   decimal.NewFromInt(250),
		},
		xray: {
			ID:         xray,
			ActualCost: decimal.NewFromInt(20),
			MinPrice:   decimal.NewFromInt(60),
		},
	}

	appointment := &Appointment{
		Scans: AppointmentScans{
			{ScanID: mri, Quantity: 1},
			{ScanID: xray, Quantity: 2},
		},
	}
	appointment.ComputeFinancials(catalog)

	if !appointment.Cost.Equal(decimal.NewFromInt(140)) {
		t.Errorf("Cost = %s, want 140", appointment.Cost)
	}
	if !appointment.Price.Equal(decimal.NewFromInt(370)) {
		t.Errorf("Price = %s, want 370", appointment.Price)
	}
	if !appointment.Profit.Equal(decimal.NewFromInt(230)) {
		t.Errorf("Profit = %s, want 230", appointment.Profit)
	}
}

func TestComputeFinancialsHugeSale(t *testing.T) {
	mri := uuid.New()
	catalog := map[uuid.UUID]*Scan{
		mri: {
			ID:         mri,
			ActualCost: decimal.NewFromInt(100),
			MinPrice:   decimal.NewFromInt(250),
		},
	}

	custom := decimal.NewFromInt(500)
	appointment := &Appointment{
		Scans:        AppointmentScans{{ScanID: mri, Quantity: 2}},
		MakeHugeSale: true,
		CustomPrice:  &custom,
	}
	appointment.ComputeFinancials(catalog)

	// Cost still comes from the catalog; only the price is overridden.
	if !appointment.Cost.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Cost = %s, want 200", appointment.Cost)
	}
	if !appointment.Price.Equal(custom) {
		t.Errorf("Price = %s, want %s", appointment.Price, custom)
	}
	if !appointment.Profit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Profit = %s, want 300", appointment.Profit)
	}
}

func TestComputeFinancialsUnknownScanSkipped(t *testing.T) {
	known := uuid.New()
	catalog := map[uuid.UUID]*Scan{
		known: {
			ID:         known,
			ActualCost: decimal.NewFromInt(10),
			MinPrice:   decimal.NewFromInt(30),
		},
	}

	appointment := &Appointment{
		Scans: AppointmentScans{
			{ScanID: known, Quantity: 1},
			{ScanID: uuid.New(), Quantity: 5},
		},
	}
	appointment.ComputeFinancials(catalog)

	if !appointment.Cost.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Cost = %s, want 10", appointment.Cost)
	}
	if !appointment.Price.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Price = %s, want 30", appointment.Price)
	}
}
