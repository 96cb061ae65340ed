package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"radlab-backoffice/internal/converter"
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrRadiologistNotFound        = errors.New("radiologist not found")
	ErrNotARadiologist            = errors.New("user is not a radiologist")
	ErrRadiologistInactive        = errors.New("radiologist is inactive")
	ErrPatientInactive            = errors.New("patient is inactive")
	ErrScheduledAtInPast          = errors.New("scheduled time must be in the future")
	ErrSlotAlreadyBooked          = errors.New("Time slot is already booked")
	ErrHugeSaleNotAllowed         = errors.New("You do not have permission to make huge sales")
	ErrCustomPriceRequired        = errors.New("custom price must be provided and positive for huge sales")
	ErrTerminalState              = errors.New("appointment is in a terminal state")
	ErrPDFReportRequired          = errors.New("completing an appointment requires a PDF report")
	ErrCancellationReasonRequired = errors.New("cancellation from in_progress requires a reason")
	ErrDeleteNotScheduled         = errors.New("only scheduled appointments can be deleted")
)

// ErrStockUnavailable wraps the availability result so the handler can
// return the per-item reasons.
type ErrStockUnavailable struct {
	Result *service.AvailabilityResult
}

func (e *ErrStockUnavailable) Error() string {
	names := make([]string, len(e.Result.UnavailableItems))
	for i, item := range e.Result.UnavailableItems {
		names[i] = fmt.Sprintf("%s: %s", item.Name, item.Reason)
	}
	return "insufficient stock: " + strings.Join(names, "; ")
}

// ErrIllegalTransition reports a status change outside the transition table.
type ErrIllegalTransition struct {
	From entity.AppointmentStatus
	To   entity.AppointmentStatus
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

type AppointmentUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context, filter *entity.AppointmentFilter, params *pagination.Params) ([]dto.AppointmentResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest, pdfFile io.Reader) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
	GetHistory(ctx context.Context, id uuid.UUID, params *pagination.Params) ([]dto.AuditLogResponse, int64, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	branchRepo      repository.BranchRepository
	scanRepo        repository.ScanRepository
	auditRepo       repository.AuditLogRepository
	stockService    service.StockService
	audit           service.AuditService
	hub             *service.NotificationHub
	fileStore       service.FileStore
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	branchRepo repository.BranchRepository,
	scanRepo repository.ScanRepository,
	auditRepo repository.AuditLogRepository,
	stockService service.StockService,
	audit service.AuditService,
	hub *service.NotificationHub,
	fileStore service.FileStore,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		branchRepo:      branchRepo,
		scanRepo:        scanRepo,
		auditRepo:       auditRepo,
		stockService:    stockService,
		audit:           audit,
		hub:             hub,
		fileStore:       fileStore,
	}
}

// Create books an appointment. Preconditions run in a fixed order and the
// first failure wins: radiologist, patient and referring doctor, slot
// conflict, stock availability, huge-sale authorization.
func (u *appointmentUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !req.ScheduledAt.After(time.Now()) {
		return nil, ErrScheduledAtInPast
	}

	radiologist, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.RadiologistID)
	if err != nil {
		u.log.Warnf("Failed to find radiologist: %+v", err)
		return nil, err
	}
	if radiologist == nil {
		return nil, ErrRadiologistNotFound
	}
	if !radiologist.IsRadiologist() {
		return nil, ErrNotARadiologist
	}
	if !radiologist.Active() {
		return nil, ErrRadiologistInactive
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.IsActive == nil || !*patient.IsActive {
		return nil, ErrPatientInactive
	}

	referredBy, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), patient.DoctorReferredID)
	if err != nil {
		u.log.Warnf("Failed to find referring doctor: %+v", err)
		return nil, err
	}
	if referredBy == nil {
		return nil, ErrReferringDoctorNotFound
	}
	if !referredBy.Active() {
		return nil, ErrReferringDoctorInactive
	}

	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), req.BranchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	conflict, err := u.appointmentRepo.FindConflict(u.db.WithContext(ctx), req.RadiologistID, req.ScheduledAt, uuid.Nil)
	if err != nil {
		u.log.Warnf("Failed to check slot conflict: %+v", err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotAlreadyBooked
	}

	scans := make(entity.AppointmentScans, len(req.Scans))
	for i, line := range req.Scans {
		scans[i] = entity.AppointmentScan{ScanID: line.ScanID, Quantity: line.Quantity}
	}

	availability, err := u.stockService.CheckAvailability(ctx, req.BranchID, scans)
	if err != nil {
		u.log.Warnf("Failed to check stock availability: %+v", err)
		return nil, err
	}
	if !availability.Available {
		return nil, &ErrStockUnavailable{Result: availability}
	}

	if req.MakeHugeSale {
		if !actor.Allow(entity.ModuleAppointments, entity.OperationMakeHugeSale) {
			return nil, ErrHugeSaleNotAllowed
		}
		if req.CustomPrice == nil || !req.CustomPrice.IsPositive() {
			return nil, ErrCustomPriceRequired
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = "routine"
	}

	appointment := &entity.Appointment{
		RadiologistID:    req.RadiologistID,
		BranchID:         req.BranchID,
		PatientID:        req.PatientID,
		Scans:            scans,
		ReferredByID:     referredBy.ID,
		RepresentativeID: patient.RepresentativeID,
		ScheduledAt:      req.ScheduledAt,
		Status:           entity.AppointmentStatusScheduled,
		Priority:         priority,
		Notes:            req.Notes,
		MakeHugeSale:     req.MakeHugeSale,
		CustomPrice:      req.CustomPrice,
	}

	catalog, err := u.loadCatalog(ctx, scans)
	if err != nil {
		return nil, err
	}
	appointment.ComputeFinancials(catalog)

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindAppointment, appointment.ID.String(), converter.AppointmentToResponse(appointment))

	// Counter bump is best-effort; Recount reconciles drift.
	if err := u.doctorRepo.IncrementScansReferred(u.db.WithContext(ctx), referredBy.ID); err != nil {
		u.log.Warnf("Failed to increment doctor scan counter: %+v", err)
	}

	u.hub.Send(radiologist.ID, service.Notification{
		Type: service.NotificationNewAppointment,
		Data: map[string]interface{}{
			"appointment_id": appointment.ID,
			"patient_name":   patient.Name,
			"scheduled_at":   appointment.ScheduledAt,
			"scans":          appointment.Scans,
		},
	})

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context, filter *entity.AppointmentFilter, params *pagination.Params) ([]dto.AppointmentResponse, int64, error) {
	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter, params)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, err
	}
	return converter.AppointmentsToResponses(appointments), total, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Update mutates a non-terminal appointment. Slot conflicts are rechecked
// when the schedule moves and financials recomputed when scans or the
// huge-sale flags change.
func (u *appointmentUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status.IsTerminal() {
		return nil, ErrTerminalState
	}

	before := converter.AppointmentToResponse(appointment)
	recompute := false

	if req.RadiologistID != nil && *req.RadiologistID != appointment.RadiologistID {
		radiologist, err := u.userRepo.FindByID(u.db.WithContext(ctx), *req.RadiologistID)
		if err != nil {
			u.log.Warnf("Failed to find radiologist: %+v", err)
			return nil, err
		}
		if radiologist == nil {
			return nil, ErrRadiologistNotFound
		}
		if !radiologist.IsRadiologist() {
			return nil, ErrNotARadiologist
		}
		if !radiologist.Active() {
			return nil, ErrRadiologistInactive
		}
		appointment.RadiologistID = *req.RadiologistID
	}

	if req.PatientID != nil && *req.PatientID != appointment.PatientID {
		patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), *req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		if patient.IsActive == nil || !*patient.IsActive {
			return nil, ErrPatientInactive
		}
		referredBy, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), patient.DoctorReferredID)
		if err != nil {
			u.log.Warnf("Failed to find referring doctor: %+v", err)
			return nil, err
		}
		if referredBy == nil {
			return nil, ErrReferringDoctorNotFound
		}
		if !referredBy.Active() {
			return nil, ErrReferringDoctorInactive
		}
		appointment.PatientID = *req.PatientID
		appointment.ReferredByID = referredBy.ID
		appointment.RepresentativeID = patient.RepresentativeID
	}

	if req.Scans != nil {
		scans := make(entity.AppointmentScans, len(req.Scans))
		for i, line := range req.Scans {
			scans[i] = entity.AppointmentScan{ScanID: line.ScanID, Quantity: line.Quantity}
		}
		appointment.Scans = scans
		recompute = true
	}

	if req.ScheduledAt != nil && !req.ScheduledAt.Equal(appointment.ScheduledAt) {
		if !req.ScheduledAt.After(time.Now()) {
			return nil, ErrScheduledAtInPast
		}
		appointment.ScheduledAt = *req.ScheduledAt
	}

	if req.Priority != nil {
		appointment.Priority = *req.Priority
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.MakeHugeSale != nil && *req.MakeHugeSale != appointment.MakeHugeSale {
		appointment.MakeHugeSale = *req.MakeHugeSale
		recompute = true
	}
	if req.CustomPrice != nil {
		appointment.CustomPrice = req.CustomPrice
		recompute = true
	}

	if appointment.MakeHugeSale {
		if !actor.Allow(entity.ModuleAppointments, entity.OperationMakeHugeSale) {
			return nil, ErrHugeSaleNotAllowed
		}
		if appointment.CustomPrice == nil || !appointment.CustomPrice.IsPositive() {
			return nil, ErrCustomPriceRequired
		}
	}

	conflict, err := u.appointmentRepo.FindConflict(u.db.WithContext(ctx), appointment.RadiologistID, appointment.ScheduledAt, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to check slot conflict: %+v", err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotAlreadyBooked
	}

	if recompute {
		catalog, err := u.loadCatalog(ctx, appointment.Scans)
		if err != nil {
			return nil, err
		}
		appointment.ComputeFinancials(catalog)
	}

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	after := converter.AppointmentToResponse(appointment)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindAppointment, appointment.ID.String(), before, after)

	u.hub.Send(appointment.RadiologistID, service.Notification{
		Type: service.NotificationAppointmentUpdate,
		Data: map[string]interface{}{
			"appointment_id": appointment.ID,
			"scheduled_at":   appointment.ScheduledAt,
		},
	})

	return after, nil
}

// UpdateStatus drives the state machine. Completion requires the PDF report
// and available stock, checked before the save; deduction runs after it, so
// a stock drain between check and deduct leaves the appointment completed
// with a partial deduction captured in the audit record for operator
// reconciliation.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest, pdfFile io.Reader) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	target := entity.AppointmentStatus(req.Status)
	if !entity.IsValidAppointmentStatus(target) || !appointment.Status.CanTransitionTo(target) {
		return nil, &ErrIllegalTransition{From: appointment.Status, To: target}
	}

	previous := appointment.Status
	changes := entity.JSON{
		"status_from": string(previous),
		"status_to":   string(target),
	}

	switch target {
	case entity.AppointmentStatusCompleted:
		if pdfFile == nil {
			return nil, ErrPDFReportRequired
		}
		availability, err := u.stockService.CheckAvailability(ctx, appointment.BranchID, appointment.Scans)
		if err != nil {
			u.log.Warnf("Failed to check stock availability: %+v", err)
			return nil, err
		}
		if !availability.Available {
			return nil, &ErrStockUnavailable{Result: availability}
		}
		relPath, err := u.fileStore.SavePDFReport(appointment.ID, pdfFile)
		if err != nil {
			u.log.Warnf("Failed to store PDF report: %+v", err)
			return nil, err
		}
		appointment.PDFReport = &relPath

	case entity.AppointmentStatusCancelled:
		if previous == entity.AppointmentStatusInProgress && req.CancellationReason == "" {
			return nil, ErrCancellationReasonRequired
		}
		now := time.Now()
		appointment.CancelledAt = &now
		appointment.CancelledByID = &actor.ID
		if req.CancellationReason != "" {
			appointment.CancellationReason = &req.CancellationReason
			changes["cancellation_reason"] = req.CancellationReason
		}
	}

	appointment.Status = target
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}

	// Deduction runs after the save; the appointment stays completed even
	// when some lines fail. The audit record carries the outcome.
	if target == entity.AppointmentStatusCompleted {
		deduction, err := u.stockService.Deduct(ctx, appointment.BranchID, appointment.Scans)
		if err != nil {
			u.log.Warnf("Failed to deduct stock for appointment %s: %+v", appointment.ID, err)
			changes["stock_deduction"] = entity.JSON{"error": err.Error()}
		} else {
			changes["stock_deduction"] = entity.JSON{
				"success":                 deduction.Success,
				"total_items_deducted":    deduction.TotalItemsDeducted,
				"total_quantity_deducted": deduction.TotalQuantityDeducted,
				"errors":                  deduction.Errors,
			}
			if !deduction.Success {
				u.log.Warnf("Partial stock deduction for appointment %s: %v", appointment.ID, deduction.Errors)
			}
		}
	}

	u.audit.LogStatusChange(ctx, &actor.ID, entity.EntityKindAppointment, appointment.ID.String(), changes)

	u.hub.Send(appointment.RadiologistID, service.Notification{
		Type: service.NotificationStatusChange,
		Data: map[string]interface{}{
			"appointment_id": appointment.ID,
			"status":         string(target),
		},
	})

	return converter.AppointmentToResponse(appointment), nil
}

// Delete hard-deletes an appointment that never progressed past scheduled.
func (u *appointmentUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.Status != entity.AppointmentStatusScheduled {
		return ErrDeleteNotScheduled
	}

	if err := u.appointmentRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindAppointment, id.String(), converter.AppointmentToResponse(appointment))
	return nil
}

// GetHistory returns the audit trail of a single appointment.
func (u *appointmentUsecase) GetHistory(ctx context.Context, id uuid.UUID, params *pagination.Params) ([]dto.AuditLogResponse, int64, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, 0, err
	}
	if appointment == nil {
		return nil, 0, ErrAppointmentNotFound
	}

	kind := entity.EntityKindAppointment
	entityID := id.String()
	filter := &entity.AuditFilter{EntityKind: &kind, EntityID: &entityID}

	logs, total, err := u.auditRepo.FindAll(u.db.WithContext(ctx), filter, params)
	if err != nil {
		u.log.Warnf("Failed to list appointment history: %+v", err)
		return nil, 0, err
	}
	return converter.AuditLogsToResponses(logs), total, nil
}

func (u *appointmentUsecase) loadCatalog(ctx context.Context, scans entity.AppointmentScans) (map[uuid.UUID]*entity.Scan, error) {
	ids := make([]uuid.UUID, len(scans))
	for i, line := range scans {
		ids[i] = line.ScanID
	}
	catalog, err := u.scanRepo.FindByIDs(u.db.WithContext(ctx), ids)
	if err != nil {
		u.log.Warnf("Failed to load scan catalog: %+v", err)
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Scan, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}
	for _, line := range scans {
		if _, ok := byID[line.ScanID]; !ok {
			return nil, ErrScanNotFound
		}
	}
	return byID, nil
}
