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
	ErrRepresentativeNotFound   = errors.New("representative not found")
	ErrRepresentativeReferenced = errors.New("representative has associated patients or doctors")
	ErrBusinessIDAlreadyExists  = errors.New("business id already exists")
)

type RepresentativeUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateRepresentativeRequest) (*dto.RepresentativeResponse, error)
	GetAll(ctx context.Context, params *pagination.Params) ([]dto.RepresentativeResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.RepresentativeResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateRepresentativeRequest) (*dto.RepresentativeResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
	Recount(ctx context.Context) (int, error)
}

type representativeUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	repRepo     repository.RepresentativeRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	audit       service.AuditService
}

func NewRepresentativeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	repRepo repository.RepresentativeRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	audit service.AuditService,
) RepresentativeUsecase {
	return &representativeUsecase{
		db:          db,
		log:         log,
		repRepo:     repRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		audit:       audit,
	}
}

func (u *representativeUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateRepresentativeRequest) (*dto.RepresentativeResponse, error) {
	rep := &entity.Representative{
		Name:        req.Name,
		Age:         req.Age,
		BusinessID:  req.BusinessID,
		PhoneNumber: req.PhoneNumber,
		Notes:       req.Notes,
	}

	if err := u.repRepo.Create(u.db.WithContext(ctx), rep); err != nil {
		if isDuplicateKeyError(err, "business") {
			return nil, ErrBusinessIDAlreadyExists
		}
		u.log.Warnf("Failed to create representative: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindRepresentative, rep.ID.String(), converter.RepresentativeToResponse(rep))

	return converter.RepresentativeToResponse(rep), nil
}

func (u *representativeUsecase) GetAll(ctx context.Context, params *pagination.Params) ([]dto.RepresentativeResponse, int64, error) {
	reps, total, err := u.repRepo.FindAll(u.db.WithContext(ctx), params)
	if err != nil {
		u.log.Warnf("Failed to list representatives: %+v", err)
		return nil, 0, err
	}
	return converter.RepresentativesToResponses(reps), total, nil
}

func (u *representativeUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.RepresentativeResponse, error) {
	rep, err := u.repRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find representative: %+v", err)
		return nil, err
	}
	if rep == nil {
		return nil, ErrRepresentativeNotFound
	}
	return converter.RepresentativeToResponse(rep), nil
}

func (u *representativeUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateRepresentativeRequest) (*dto.RepresentativeResponse, error) {
	rep, err := u.repRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find representative: %+v", err)
		return nil, err
	}
	if rep == nil {
		return nil, ErrRepresentativeNotFound
	}

	before := converter.RepresentativeToResponse(rep)

	if req.Name != nil {
		rep.Name = *req.Name
	}
	if req.Age != nil {
		rep.Age = *req.Age
	}
	if req.PhoneNumber != nil {
		rep.PhoneNumber = *req.PhoneNumber
	}
	if req.Notes != nil {
		rep.Notes = *req.Notes
	}
	if req.IsActive != nil {
		rep.IsActive = req.IsActive
	}

	if err := u.repRepo.Update(u.db.WithContext(ctx), rep); err != nil {
		u.log.Warnf("Failed to update representative: %+v", err)
		return nil, err
	}

	after := converter.RepresentativeToResponse(rep)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindRepresentative, rep.ID.String(), before, after)

	return after, nil
}

// Delete removes a representative unless patients or doctors still point at
// it.
func (u *representativeUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	rep, err := u.repRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find representative: %+v", err)
		return err
	}
	if rep == nil {
		return ErrRepresentativeNotFound
	}

	patients, err := u.patientRepo.CountByRepresentative(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to count patients by representative: %+v", err)
		return err
	}
	doctors, err := u.doctorRepo.CountByRepresentative(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to count doctors by representative: %+v", err)
		return err
	}
	if patients > 0 || doctors > 0 {
		return ErrRepresentativeReferenced
	}

	if err := u.repRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete representative: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindRepresentative, id.String(), converter.RepresentativeToResponse(rep))
	return nil
}

// Recount rebuilds patientsCount and doctorsCount for every representative.
// Idempotent.
func (u *representativeUsecase) Recount(ctx context.Context) (int, error) {
	params := &pagination.Params{Page: 1, Limit: 100}
	updated := 0

	for {
		reps, total, err := u.repRepo.FindAll(u.db.WithContext(ctx), params)
		if err != nil {
			u.log.Warnf("Failed to list representatives for recount: %+v", err)
			return updated, err
		}

		for i := range reps {
			patients, err := u.patientRepo.CountByRepresentative(u.db.WithContext(ctx), reps[i].ID)
			if err != nil {
				u.log.Warnf("Failed to count patients for representative %s: %+v", reps[i].ID, err)
				return updated, err
			}
			doctors, err := u.doctorRepo.CountByRepresentative(u.db.WithContext(ctx), reps[i].ID)
			if err != nil {
				u.log.Warnf("Failed to count doctors for representative %s: %+v", reps[i].ID, err)
				return updated, err
			}
			if err := u.repRepo.SetCounters(u.db.WithContext(ctx), reps[i].ID, patients, doctors); err != nil {
				u.log.Warnf("Failed to set counters for representative %s: %+v", reps[i].ID, err)
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
