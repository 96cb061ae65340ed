package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type stubAppointmentRepo struct {
	byID     map[uuid.UUID]*entity.Appointment
	conflict *entity.Appointment
	created  *entity.Appointment
	updated  *entity.Appointment
	deleted  []uuid.UUID
}

func (r *stubAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	appointment.ID = uuid.New()
	r.created = appointment
	return nil
}
func (r *stubAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.byID[id], nil
}
func (r *stubAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter, params *pagination.Params) ([]entity.Appointment, int64, error) {
	return nil, 0, nil
}
func (r *stubAppointmentRepo) FindConflict(db *gorm.DB, radiologistID uuid.UUID, scheduledAt time.Time, excludeID uuid.UUID) (*entity.Appointment, error) {
	return r.conflict, nil
}
func (r *stubAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	r.updated = appointment
	return nil
}
func (r *stubAppointmentRepo) Delete(db *gorm.DB, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}
func (r *stubAppointmentRepo) CountActiveByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *stubAppointmentRepo) CountByReferredBy(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubUserRepo struct {
	byID map[uuid.UUID]*entity.User
}

func (r *stubUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }
func (r *stubUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *stubUserRepo) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) FindByResetToken(db *gorm.DB, token string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.User, int64, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) FindActive(db *gorm.DB) ([]entity.User, error) { return nil, nil }
func (r *stubUserRepo) Update(db *gorm.DB, user *entity.User) error { return nil }
func (r *stubUserRepo) Delete(db *gorm.DB, id uuid.UUID) error { return nil }

type stubPatientRepo struct {
	byID map[uuid.UUID]*entity.Patient
}

func (r *stubPatientRepo) Create(db *gorm.DB, patient *entity.Patient) error { return nil }
func (r *stubPatientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.byID[id], nil
}
func (r *stubPatientRepo) FindActiveByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.byID[id], nil
}
func (r *stubPatientRepo) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Patient, int64, error) {
	return nil, 0, nil
}
func (r *stubPatientRepo) Update(db *gorm.DB, patient *entity.Patient) error { return nil }
func (r *stubPatientRepo) SoftDelete(db *gorm.DB, id uuid.UUID) error { return nil }
func (r *stubPatientRepo) CountByDoctor(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *stubPatientRepo) CountByRepresentative(db *gorm.DB, representativeID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubDoctorRepo struct {
	byID             map[uuid.UUID]*entity.Doctor
	scansIncremented []uuid.UUID
}

func (r *stubDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error { return nil }
func (r *stubDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return r.byID[id], nil
}
func (r *stubDoctorRepo) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Doctor, int64, error) {
	return nil, 0, nil
}
func (r *stubDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error { return nil }
func (r *stubDoctorRepo) Delete(db *gorm.DB, id uuid.UUID) error { return nil }
func (r *stubDoctorRepo) IncrementPatientsReferred(db *gorm.DB, id uuid.UUID) error { return nil }
func (r *stubDoctorRepo) IncrementScansReferred(db *gorm.DB, id uuid.UUID) error {
	r.scansIncremented = append(r.scansIncremented, id)
	return nil
}
func (r *stubDoctorRepo) SetCounters(db *gorm.DB, id uuid.UUID, patients, scans int64) error {
	return nil
}
func (r *stubDoctorRepo) CountByRepresentative(db *gorm.DB, representativeID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubBranchRepo struct {
	byID map[uuid.UUID]*entity.Branch
}

func (r *stubBranchRepo) Create(db *gorm.DB, branch *entity.Branch) error { return nil }
func (r *stubBranchRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Branch, error) {
	return r.byID[id], nil
}
func (r *stubBranchRepo) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Branch, int64, error) {
	return nil, 0, nil
}
func (r *stubBranchRepo) Update(db *gorm.DB, branch *entity.Branch) error { return nil }
func (r *stubBranchRepo) Delete(db *gorm.DB, id uuid.UUID) error { return nil }

type stubScanRepo struct {
	scans []entity.Scan
}

func (r *stubScanRepo) Create(db *gorm.DB, scan *entity.Scan) error { return nil }
func (r *stubScanRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Scan, error) { return nil, nil }
func (r *stubScanRepo) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Scan, error) {
	return r.scans, nil
}
func (r *stubScanRepo) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Scan, int64, error) {
	return nil, 0, nil
}
func (r *stubScanRepo) Update(db *gorm.DB, scan *entity.Scan) error { return nil }
func (r *stubScanRepo) SoftDelete(db *gorm.DB, id uuid.UUID) error { return nil }

type stubAuditRepo struct {
	logs []entity.AuditLog
}

func (r *stubAuditRepo) Create(db *gorm.DB, auditLog *entity.AuditLog) error { return nil }
func (r *stubAuditRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) { return nil, nil }
func (r *stubAuditRepo) FindAll(db *gorm.DB, filter *entity.AuditFilter, params *pagination.Params) ([]entity.AuditLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

type stubStockService struct {
	availability *service.AvailabilityResult
	deduction    *service.DeductionResult
	deductCalls  int
}

func (s *stubStockService) CheckAvailability(ctx context.Context, branchID uuid.UUID, scans entity.AppointmentScans) (*service.AvailabilityResult, error) {
	return s.availability, nil
}
func (s *stubStockService) Deduct(ctx context.Context, branchID uuid.UUID, scans entity.AppointmentScans) (*service.DeductionResult, error) {
	s.deductCalls++
	return s.deduction, nil
}

type stubAuditService struct {
	statusChanges []entity.JSON
}

func (s *stubAuditService) LogCreate(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, newValue interface{}) {
}
func (s *stubAuditService) LogUpdate(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, oldValue, newValue interface{}) {
}
func (s *stubAuditService) LogDelete(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, oldValue interface{}) {
}
func (s *stubAuditService) LogStatusChange(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, changes entity.JSON) {
	s.statusChanges = append(s.statusChanges, changes)
}

type stubFileStore struct {
	saved []uuid.UUID
}

func (s *stubFileStore) SavePDFReport(appointmentID uuid.UUID, src io.Reader) (string, error) {
	s.saved = append(s.saved, appointmentID)
	return "reports/" + appointmentID.String() + ".pdf", nil
}
func (s *stubFileStore) Remove(relPath string) error { return nil }
func (s *stubFileStore) Open(relPath string) (*os.File, error) { return nil, nil }

// appointmentFixture wires the usecase against in-memory stubs with a valid
// radiologist, patient, referring doctor, branch and catalog so each test
// only has to break the piece it cares about.
type appointmentFixture struct {
	usecase         AppointmentUsecase
	actor           *entity.User
	radiologist     *entity.User
	patient         *entity.Patient
	doctor          *entity.Doctor
	branch          *entity.Branch
	scanID          uuid.UUID
	appointmentRepo *stubAppointmentRepo
	doctorRepo      *stubDoctorRepo
	stock           *stubStockService
	audit           *stubAuditService
	files           *stubFileStore
}

func newAppointmentFixture() *appointmentFixture {
	active := true
	log := logrus.New()
	db := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}

	radiologist := &entity.User{ID: uuid.New(), UserType: entity.UserTypeRadiologist, IsActive: &active}
	doctor := &entity.Doctor{ID: uuid.New(), IsActive: &active}
	patient := &entity.Patient{ID: uuid.New(), Name: "Jane Roe", DoctorReferredID: doctor.ID, IsActive: &active}
	branch := &entity.Branch{ID: uuid.New()}
	scanID := uuid.New()

	f := &appointmentFixture{
		actor:           &entity.User{ID: uuid.New(), UserType: entity.UserTypeSuperAdmin, IsSuperAdmin: true, IsActive: &active},
		radiologist:     radiologist,
		patient:         patient,
		doctor:          doctor,
		branch:          branch,
		scanID:          scanID,
		appointmentRepo: &stubAppointmentRepo{byID: map[uuid.UUID]*entity.Appointment{}},
		doctorRepo:      &stubDoctorRepo{byID: map[uuid.UUID]*entity.Doctor{doctor.ID: doctor}},
		stock:           &stubStockService{availability: &service.AvailabilityResult{Available: true}, deduction: &service.DeductionResult{Success: true}},
		audit:           &stubAuditService{},
		files:           &stubFileStore{},
	}

	f.usecase = NewAppointmentUsecase(
		db,
		log,
		f.appointmentRepo,
		&stubUserRepo{byID: map[uuid.UUID]*entity.User{radiologist.ID: radiologist}},
		&stubPatientRepo{byID: map[uuid.UUID]*entity.Patient{patient.ID: patient}},
		f.doctorRepo,
		&stubBranchRepo{byID: map[uuid.UUID]*entity.Branch{branch.ID: branch}},
		&stubScanRepo{scans: []entity.Scan{{ID: scanID, ActualCost: decimal.NewFromInt(100), MinPrice: decimal.NewFromInt(250)}}},
		&stubAuditRepo{},
		f.stock,
		f.audit,
		service.NewNotificationHub(log),
		f.files,
	)
	return f
}

func (f *appointmentFixture) createRequest() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		RadiologistID: f.radiologist.ID,
		PatientID:     f.patient.ID,
		BranchID:      f.branch.ID,
		Scans:         []dto.AppointmentScanRequest{{ScanID: f.scanID, Quantity: 2}},
		ScheduledAt:   time.Now().Add(24 * time.Hour),
	}
}

func TestCreateComputesFinancials(t *testing.T) {
	f := newAppointmentFixture()

	resp, err := f.usecase.Create(context.Background(), f.actor, f.createRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	created := f.appointmentRepo.created
	if created == nil {
		t.Fatal("appointment was not persisted")
	}
	if created.Status != entity.AppointmentStatusScheduled {
		t.Errorf("status = %s, want scheduled", created.Status)
	}
	if created.Priority != "routine" {
		t.Errorf("priority = %q, want routine default", created.Priority)
	}
	if created.ReferredByID != f.doctor.ID {
		t.Errorf("referred_by = %s, want the patient's referring doctor %s", created.ReferredByID, f.doctor.ID)
	}
	if !created.Cost.Equal(decimal.NewFromInt(200)) {
		t.Errorf("cost = %s, want 200", created.Cost)
	}
	if !created.Price.Equal(decimal.NewFromInt(500)) {
		t.Errorf("price = %s, want 500", created.Price)
	}
	if !created.Profit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("profit = %s, want 300", created.Profit)
	}
	if len(f.doctorRepo.scansIncremented) != 1 || f.doctorRepo.scansIncremented[0] != f.doctor.ID {
		t.Errorf("scans-referred counter not bumped for doctor %s", f.doctor.ID)
	}
	if resp == nil || resp.ID != created.ID {
		t.Errorf("response does not reflect the created appointment")
	}
}

func TestCreateHugeSaleOverridesPrice(t *testing.T) {
	f := newAppointmentFixture()
	custom := decimal.NewFromInt(900)
	req := f.createRequest()
	req.MakeHugeSale = true
	req.CustomPrice = &custom

	_, err := f.usecase.Create(context.Background(), f.actor, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	created := f.appointmentRepo.created
	if !created.Price.Equal(custom) {
		t.Errorf("price = %s, want the custom price 900", created.Price)
	}
	if !created.Cost.Equal(decimal.NewFromInt(200)) {
		t.Errorf("cost = %s, want 200 from the catalog", created.Cost)
	}
	if !created.Profit.Equal(decimal.NewFromInt(700)) {
		t.Errorf("profit = %s, want 700", created.Profit)
	}
}

func TestCreatePreconditions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *appointmentFixture, req *dto.CreateAppointmentRequest)
		wantErr error
	}{
		{
			name: "schedule in the past",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				req.ScheduledAt = time.Now().Add(-time.Hour)
			},
			wantErr: ErrScheduledAtInPast,
		},
		{
			name: "assignee is not a radiologist",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				f.radiologist.UserType = entity.UserTypeReceptionist
			},
			wantErr: ErrNotARadiologist,
		},
		{
			name: "radiologist deactivated",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				inactive := false
				f.radiologist.IsActive = &inactive
			},
			wantErr: ErrRadiologistInactive,
		},
		{
			name: "patient deactivated",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				inactive := false
				f.patient.IsActive = &inactive
			},
			wantErr: ErrPatientInactive,
		},
		{
			name: "referring doctor deactivated",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				inactive := false
				f.doctor.IsActive = &inactive
			},
			wantErr: ErrReferringDoctorInactive,
		},
		{
			name: "unknown branch",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				req.BranchID = uuid.New()
			},
			wantErr: ErrBranchNotFound,
		},
		{
			name: "slot already booked",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				f.appointmentRepo.conflict = &entity.Appointment{ID: uuid.New()}
			},
			wantErr: ErrSlotAlreadyBooked,
		},
		{
			name: "huge sale without privilege",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				f.actor.IsSuperAdmin = false
				f.actor.UserType = entity.UserTypeReceptionist
				custom := decimal.NewFromInt(900)
				req.MakeHugeSale = true
				req.CustomPrice = &custom
			},
			wantErr: ErrHugeSaleNotAllowed,
		},
		{
			name: "huge sale without a custom price",
			prepare: func(f *appointmentFixture, req *dto.CreateAppointmentRequest) {
				req.MakeHugeSale = true
			},
			wantErr: ErrCustomPriceRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture()
			req := f.createRequest()
			tt.prepare(f, req)

			_, err := f.usecase.Create(context.Background(), f.actor, req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if f.appointmentRepo.created != nil {
				t.Error("appointment was persisted despite a failed precondition")
			}
		})
	}
}

func TestCreateReportsUnavailableStock(t *testing.T) {
	f := newAppointmentFixture()
	f.stock.availability = &service.AvailabilityResult{
		Available: false,
		UnavailableItems: []service.ItemStatus{
			{Name: "contrast dye", Required: 4, InStock: 1, Reason: "Insufficient quantity"},
		},
		TotalItemsNeeded: 1,
	}

	_, err := f.usecase.Create(context.Background(), f.actor, f.createRequest())

	var stockErr *ErrStockUnavailable
	if !errors.As(err, &stockErr) {
		t.Fatalf("Create() error = %v, want *ErrStockUnavailable", err)
	}
	if len(stockErr.Result.UnavailableItems) != 1 || stockErr.Result.UnavailableItems[0].Name != "contrast dye" {
		t.Errorf("unavailable items = %+v, want the failing line carried through", stockErr.Result.UnavailableItems)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	f := newAppointmentFixture()
	id := uuid.New()
	f.appointmentRepo.byID[id] = &entity.Appointment{ID: id, Status: entity.AppointmentStatusCompleted}

	_, err := f.usecase.UpdateStatus(context.Background(), f.actor, id, &dto.UpdateAppointmentStatusRequest{Status: "in_progress"}, nil)

	var transitionErr *ErrIllegalTransition
	if !errors.As(err, &transitionErr) {
		t.Fatalf("UpdateStatus() error = %v, want *ErrIllegalTransition", err)
	}
	if transitionErr.From != entity.AppointmentStatusCompleted || transitionErr.To != entity.AppointmentStatusInProgress {
		t.Errorf("transition = %s -> %s, want completed -> in_progress", transitionErr.From, transitionErr.To)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newAppointmentFixture()
	id := uuid.New()
	f.appointmentRepo.byID[id] = &entity.Appointment{ID: id, Status: entity.AppointmentStatusScheduled}

	_, err := f.usecase.UpdateStatus(context.Background(), f.actor, id, &dto.UpdateAppointmentStatusRequest{Status: "archived"}, nil)

	var transitionErr *ErrIllegalTransition
	if !errors.As(err, &transitionErr) {
		t.Fatalf("UpdateStatus() error = %v, want *ErrIllegalTransition", err)
	}
	if f.appointmentRepo.updated != nil {
		t.Error("appointment was saved with an unknown status")
	}
}

func TestUpdateStatusCompleteRequiresReport(t *testing.T) {
	f := newAppointmentFixture()
	id := uuid.New()
	f.appointmentRepo.byID[id] = &entity.Appointment{ID: id, Status: entity.AppointmentStatusInProgress}

	_, err := f.usecase.UpdateStatus(context.Background(), f.actor, id, &dto.UpdateAppointmentStatusRequest{Status: "completed"}, nil)
	if !errors.Is(err, ErrPDFReportRequired) {
		t.Errorf("UpdateStatus() error = %v, want %v", err, ErrPDFReportRequired)
	}
	if f.appointmentRepo.updated != nil {
		t.Error("appointment was saved without a report")
	}
}

func TestUpdateStatusCompleteStoresReportAndDeductsStock(t *testing.T) {
	f := newAppointmentFixture()
	id := uuid.New()
	f.appointmentRepo.byID[id] = &entity.Appointment{
		ID:            id,
		RadiologistID: f.radiologist.ID,
		BranchID:      f.branch.ID,
		Status:        entity.AppointmentStatusInProgress,
		Scans:         entity.AppointmentScans{{ScanID: f.scanID, Quantity: 2}},
	}

	resp, err := f.usecase.UpdateStatus(context.Background(), f.actor, id, &dto.UpdateAppointmentStatusRequest{Status: "completed"}, strings.NewReader("%PDF-1.7"))
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resp.Status != "completed" {
		t.Errorf("status = %s, want completed", resp.Status)
	}
	if resp.PDFReport == nil {
		t.Error("PDF report path was not recorded")
	}
	if len(f.files.saved) != 1 || f.files.saved[0] != id {
		t.Error("report was not handed to the file store")
	}
	if f.stock.deductCalls != 1 {
		t.Errorf("stock deductions = %d, want 1", f.stock.deductCalls)
	}
	if len(f.audit.statusChanges) != 1 {
		t.Fatalf("status changes audited = %d, want 1", len(f.audit.statusChanges))
	}
	if _, ok := f.audit.statusChanges[0]["stock_deduction"]; !ok {
		t.Error("audit record is missing the deduction outcome")
	}
}

func TestUpdateStatusCompleteRejectsUnavailableStock(t *testing.T) {
	f := newAppointmentFixture()
	id := uuid.New()
	f.appointmentRepo.byID[id] = &entity.Appointment{
		ID:       id,
		BranchID: f.branch.ID,
		Status:   entity.AppointmentStatusInProgress,
		Scans:    entity.AppointmentScans{{ScanID: f.scanID, Quantity: 2}},
	}
	f.stock.availability = &service.AvailabilityResult{
		Available: false,
		UnavailableItems: []service.ItemStatus{
			{Name: "x-ray film", Required: 4, InStock: 1, Reason: "Insufficient quantity"},
		},
		TotalItemsNeeded: 1,
	}

	_, err := f.usecase.UpdateStatus(context.Background(), f.actor, id, &dto.UpdateAppointmentStatusRequest{Status: "completed"}, strings.NewReader("%PDF-1.7"))

	var stockErr *ErrStockUnavailable
	if !errors.As(err, &stockErr) {
		t.Fatalf("UpdateStatus() error = %v, want *ErrStockUnavailable", err)
	}
	if f.appointmentRepo.updated != nil {
		t.Error("appointment was saved as completed despite unavailable stock")
	}
	if f.stock.deductCalls != 0 {
		t.Errorf("stock deductions = %d, want 0", f.stock.deductCalls)
	}
	if len(f.files.saved) != 0 {
		t.Error("report was stored for a rejected completion")
	}
	if f.appointmentRepo.byID[id].Status != entity.AppointmentStatusInProgress {
		t.Errorf("status = %s, want the prior in_progress state", f.appointmentRepo.byID[id].Status)
	}
}

func TestUpdateStatusCancelFromInProgressRequiresReason(t *testing.T) {
	f := newAppointmentFixture()
	id := uuid.New()
	f.appointmentRepo.byID[id] = &entity.Appointment{ID: id, Status: entity.AppointmentStatusInProgress}

	_, err := f.usecase.UpdateStatus(context.Background(), f.actor, id, &dto.UpdateAppointmentStatusRequest{Status: "cancelled"}, nil)
	if !errors.Is(err, ErrCancellationReasonRequired) {
		t.Errorf("UpdateStatus() error = %v, want %v", err, ErrCancellationReasonRequired)
	}
}

func TestUpdateStatusCancelRecordsActor(t *testing.T) {
	f := newAppointmentFixture()
	id := uuid.New()
	f.appointmentRepo.byID[id] = &entity.Appointment{ID: id, Status: entity.AppointmentStatusScheduled}

	_, err := f.usecase.UpdateStatus(context.Background(), f.actor, id, &dto.UpdateAppointmentStatusRequest{Status: "cancelled", CancellationReason: "patient request"}, nil)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	updated := f.appointmentRepo.updated
	if updated.CancelledByID == nil || *updated.CancelledByID != f.actor.ID {
		t.Error("cancelling actor was not recorded")
	}
	if updated.CancelledAt == nil {
		t.Error("cancellation time was not recorded")
	}
	if updated.CancellationReason == nil || *updated.CancellationReason != "patient request" {
		t.Error("cancellation reason was not recorded")
	}
	if f.stock.deductCalls != 0 {
		t.Error("stock must not be deducted on cancellation")
	}
}

func TestDeleteOnlyScheduled(t *testing.T) {
	f := newAppointmentFixture()
	scheduled := uuid.New()
	confirmed := uuid.New()
	f.appointmentRepo.byID[scheduled] = &entity.Appointment{ID: scheduled, Status: entity.AppointmentStatusScheduled}
	f.appointmentRepo.byID[confirmed] = &entity.Appointment{ID: confirmed, Status: entity.AppointmentStatusConfirmed}

	if err := f.usecase.Delete(context.Background(), f.actor, confirmed); !errors.Is(err, ErrDeleteNotScheduled) {
		t.Errorf("Delete(confirmed) error = %v, want %v", err, ErrDeleteNotScheduled)
	}
	if err := f.usecase.Delete(context.Background(), f.actor, scheduled); err != nil {
		t.Errorf("Delete(scheduled) error = %v", err)
	}
	if len(f.appointmentRepo.deleted) != 1 || f.appointmentRepo.deleted[0] != scheduled {
		t.Errorf("deleted = %v, want only the scheduled appointment", f.appointmentRepo.deleted)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	f := newAppointmentFixture()

	_, err := f.usecase.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("GetByID() error = %v, want %v", err, ErrAppointmentNotFound)
	}
}
