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
	ErrBranchNotFound          = errors.New("branch not found")
	ErrBranchNameAlreadyExists = errors.New("branch name already exists")
)

type BranchUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateBranchRequest) (*dto.BranchResponse, error)
	GetAll(ctx context.Context, params *pagination.Params) ([]dto.BranchResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type branchUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	branchRepo repository.BranchRepository
	audit      service.AuditService
}

func NewBranchUsecase(db *gorm.DB, log *logrus.Logger, branchRepo repository.BranchRepository, audit service.AuditService) BranchUsecase {
	return &branchUsecase{
		db:         db,
		log:        log,
		branchRepo: branchRepo,
		audit:      audit,
	}
}

func (u *branchUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	branch := &entity.Branch{
		Name:     req.Name,
		Location: req.Location,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Manager:  req.Manager,
	}

	if err := u.branchRepo.Create(u.db.WithContext(ctx), branch); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrBranchNameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create branch: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindBranch, branch.ID.String(), converter.BranchToResponse(branch))

	return converter.BranchToResponse(branch), nil
}

func (u *branchUsecase) GetAll(ctx context.Context, params *pagination.Params) ([]dto.BranchResponse, int64, error) {
	branches, total, err := u.branchRepo.FindAll(u.db.WithContext(ctx), params)
	if err != nil {
		u.log.Warnf("Failed to list branches: %+v", err)
		return nil, 0, err
	}
	return converter.BranchesToResponses(branches), total, nil
}

func (u *branchUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error) {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}
	return converter.BranchToResponse(branch), nil
}

func (u *branchUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	before := converter.BranchToResponse(branch)

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Location != nil {
		branch.Location = *req.Location
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.Manager != nil {
		branch.Manager = *req.Manager
	}
	if req.IsActive != nil {
		branch.IsActive = req.IsActive
	}

	if err := u.branchRepo.Update(u.db.WithContext(ctx), branch); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrBranchNameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update branch: %+v", err)
		return nil, err
	}

	after := converter.BranchToResponse(branch)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindBranch, branch.ID.String(), before, after)

	return after, nil
}

func (u *branchUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return err
	}
	if branch == nil {
		return ErrBranchNotFound
	}

	if err := u.branchRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete branch: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindBranch, id.String(), converter.BranchToResponse(branch))
	return nil
}
