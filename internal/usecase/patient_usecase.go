package usecase

import (
	"context"
	"errors"
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
	ErrPatientNotFound            = errors.New("patient not found")
	ErrReferringDoctorNotFound    = errors.New("referring doctor not found")
	ErrReferringDoctorInactive    = errors.New("referring doctor is inactive")
	ErrSocialNumberAlreadyExists  = errors.New("social number already exists")
	ErrPatientHasActiveBookings   = errors.New("patient has active appointments")
	ErrInvalidDateFormat          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrDateOfBirthInFuture        = errors.New("date of birth cannot be in the future")
	ErrRepresentativeNotFoundByID = errors.New("representative not found")
)

type PatientUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAll(ctx context.Context, params *pagination.Params) ([]dto.PatientResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	repRepo         repository.RepresentativeRepository
	appointmentRepo repository.AppointmentRepository
	audit           service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	repRepo repository.RepresentativeRepository,
	appointmentRepo repository.AppointmentRepository,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		repRepo:         repRepo,
		appointmentRepo: appointmentRepo,
		audit:           audit,
	}
}

// Create registers a patient. The referring doctor must exist and be active;
// its referral counter and the representative counters are bumped
// best-effort after the insert.
func (u *patientUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if dob.After(time.Now()) {
		return nil, ErrDateOfBirthInFuture
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorReferredID)
	if err != nil {
		u.log.Warnf("Failed to find referring doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrReferringDoctorNotFound
	}
	if !doctor.Active() {
		return nil, ErrReferringDoctorInactive
	}

	if req.RepresentativeID != nil {
		rep, err := u.repRepo.FindByID(u.db.WithContext(ctx), *req.RepresentativeID)
		if err != nil {
			u.log.Warnf("Failed to find representative: %+v", err)
			return nil, err
		}
		if rep == nil {
			return nil, ErrRepresentativeNotFoundByID
		}
	}

	patient := &entity.Patient{
		Name:             req.Name,
		DateOfBirth:      dob,
		Gender:           req.Gender,
		PhoneNumber:      req.PhoneNumber,
		SocialNumber:     req.SocialNumber,
		DoctorReferredID: req.DoctorReferredID,
		RepresentativeID: req.RepresentativeID,
		MedicalHistory:   req.MedicalHistory,
		Address:          req.Address,
	}

	if err := u.patientRepo.Create(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "social") {
			return nil, ErrSocialNumberAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	// Counter maintenance is best-effort; Recount reconciles drift.
	if err := u.doctorRepo.IncrementPatientsReferred(u.db.WithContext(ctx), doctor.ID); err != nil {
		u.log.Warnf("Failed to increment doctor patient counter: %+v", err)
	}
	if patient.RepresentativeID != nil {
		u.recountRepresentative(ctx, *patient.RepresentativeID)
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindPatient, patient.ID.String(), converter.PatientToResponse(patient))

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAll(ctx context.Context, params *pagination.Params) ([]dto.PatientResponse, int64, error) {
	patients, total, err := u.patientRepo.FindAll(u.db.WithContext(ctx), params)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, 0, err
	}
	return converter.PatientsToResponses(patients), total, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	before := converter.PatientToResponse(patient)

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		if dob.After(time.Now()) {
			return nil, ErrDateOfBirthInFuture
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.PhoneNumber != nil {
		patient.PhoneNumber = *req.PhoneNumber
	}
	if req.SocialNumber != nil {
		patient.SocialNumber = req.SocialNumber
	}
	if req.RepresentativeID != nil {
		rep, err := u.repRepo.FindByID(u.db.WithContext(ctx), *req.RepresentativeID)
		if err != nil {
			u.log.Warnf("Failed to find representative: %+v", err)
			return nil, err
		}
		if rep == nil {
			return nil, ErrRepresentativeNotFoundByID
		}
		patient.RepresentativeID = req.RepresentativeID
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = req.MedicalHistory
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}

	if err := u.patientRepo.Update(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "social") {
			return nil, ErrSocialNumberAlreadyExists
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	after := converter.PatientToResponse(patient)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindPatient, patient.ID.String(), before, after)

	return after, nil
}

// Delete soft-deactivates a patient. Blocked while the patient still has
// non-terminal appointments.
func (u *patientUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	active, err := u.appointmentRepo.CountActiveByPatient(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to count active appointments: %+v", err)
		return err
	}
	if active > 0 {
		return ErrPatientHasActiveBookings
	}

	if err := u.patientRepo.SoftDelete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to soft delete patient: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindPatient, id.String(), converter.PatientToResponse(patient))
	return nil
}

// recountRepresentative refreshes both cached counters from source tables.
func (u *patientUsecase) recountRepresentative(ctx context.Context, repID uuid.UUID) {
	patients, err := u.patientRepo.CountByRepresentative(u.db.WithContext(ctx), repID)
	if err != nil {
		u.log.Warnf("Failed to count patients by representative: %+v", err)
		return
	}
	doctors, err := u.doctorRepo.CountByRepresentative(u.db.WithContext(ctx), repID)
	if err != nil {
		u.log.Warnf("Failed to count doctors by representative: %+v", err)
		return
	}
	if err := u.repRepo.SetCounters(u.db.WithContext(ctx), repID, patients, doctors); err != nil {
		u.log.Warnf("Failed to update representative counters: %+v", err)
	}
}
