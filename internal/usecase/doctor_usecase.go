package usecase

import (
	"context"
	"errors"

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
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorHasReferral = errors.New("doctor has referrals and cannot be deleted")
)

type DoctorUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context, params *pagination.Params) ([]dto.DoctorResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
	Recount(ctx context.Context) (int, error)
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	repRepo         repository.RepresentativeRepository
	audit           service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	repRepo repository.RepresentativeRepository,
	audit service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		repRepo:         repRepo,
		audit:           audit,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
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

	doctor := &entity.Doctor{
		Name:             req.Name,
		Specialization:   req.Specialization,
		LicenseNumber:    req.LicenseNumber,
		ContactNumber:    req.ContactNumber,
		RepresentativeID: req.RepresentativeID,
	}

	if err := u.doctorRepo.Create(u.db.WithContext(ctx), doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindDoctor, doctor.ID.String(), converter.DoctorToResponse(doctor))

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAll(ctx context.Context, params *pagination.Params) ([]dto.DoctorResponse, int64, error) {
	doctors, total, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), params)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, 0, err
	}
	return converter.DoctorsToResponses(doctors), total, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	before := converter.DoctorToResponse(doctor)

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.LicenseNumber != nil {
		doctor.LicenseNumber = req.LicenseNumber
	}
	if req.ContactNumber != nil {
		doctor.ContactNumber = *req.ContactNumber
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
		doctor.RepresentativeID = req.RepresentativeID
	}
	if req.IsActive != nil {
		doctor.IsActive = req.IsActive
	}

	if err := u.doctorRepo.Update(u.db.WithContext(ctx), doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	after := converter.DoctorToResponse(doctor)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindDoctor, doctor.ID.String(), before, after)

	return after, nil
}

// Delete removes a doctor. Doctors with any recorded referrals are kept.
func (u *doctorUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	if doctor.HasReferrals() {
		return ErrDoctorHasReferral
	}

	if err := u.doctorRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindDoctor, id.String(), converter.DoctorToResponse(doctor))
	return nil
}

// Recount rebuilds both referral counters for every doctor from the patient
// and appointment tables. Idempotent.
func (u *doctorUsecase) Recount(ctx context.Context) (int, error) {
	params := &pagination.Params{Page: 1, Limit: 100}
	updated := 0

	for {
		doctors, total, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), params)
		if err != nil {
			u.log.Warnf("Failed to list doctors for recount: %+v", err)
			return updated, err
		}

		for i := range doctors {
			patients, err := u.patientRepo.CountByDoctor(u.db.WithContext(ctx), doctors[i].ID)
			if err != nil {
				u.log.Warnf("Failed to count patients for doctor %s: %+v", doctors[i].ID, err)
				return updated, err
			}
			scans, err := u.appointmentRepo.CountByReferredBy(u.db.WithContext(ctx), doctors[i].ID)
			if err != nil {
				u.log.Warnf("Failed to count appointments for doctor %s: %+v", doctors[i].ID, err)
				return updated, err
			}
			if err := u.doctorRepo.SetCounters(u.db.WithContext(ctx), doctors[i].ID, patients, scans); err != nil {
				u.log.Warnf("Failed to set counters for doctor %s: %+v", doctors[i].ID, err)
				return updated, err
			}
			updated++
		}

		if int64(params.Page*params.Limit) >= total {
			break
		}
		params.Page++
	}

	return updated, nil
}
