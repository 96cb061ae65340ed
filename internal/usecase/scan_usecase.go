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
	ErrScanNotFound      = errors.New("scan not found")
	ErrScanItemsRequired = errors.New("scan must declare at least one consumable item")
	ErrNegativeAmount    = errors.New("amounts must not be negative")
)

type ScanUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateScanRequest) (*dto.ScanResponse, error)
	GetAll(ctx context.Context, params *pagination.Params) ([]dto.ScanResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ScanResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateScanRequest) (*dto.ScanResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type scanUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	scanRepo repository.ScanRepository
	audit    service.AuditService
}

func NewScanUsecase(db *gorm.DB, log *logrus.Logger, scanRepo repository.ScanRepository, audit service.AuditService) ScanUsecase {
	return &scanUsecase{
		db:       db,
		log:      log,
		scanRepo: scanRepo,
		audit:    audit,
	}
}

func (u *scanUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateScanRequest) (*dto.ScanResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrScanItemsRequired
	}
	if req.ActualCost.IsNegative() || req.MinPrice.IsNegative() {
		return nil, ErrNegativeAmount
	}

	items := make(entity.ScanItems, len(req.Items))
	for i, item := range req.Items {
		items[i] = entity.ScanItem{Name: item.Name, Quantity: item.Quantity}
	}

	scan := &entity.Scan{
		Name:       req.Name,
		ActualCost: req.ActualCost,
		MinPrice:   req.MinPrice,
		Items:      items,
		Images:     req.Images,
	}

	if err := u.scanRepo.Create(u.db.WithContext(ctx), scan); err != nil {
		u.log.Warnf("Failed to create scan: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindScan, scan.ID.String(), converter.ScanToResponse(scan))

	return converter.ScanToResponse(scan), nil
}

func (u *scanUsecase) GetAll(ctx context.Context, params *pagination.Params) ([]dto.ScanResponse, int64, error) {
	scans, total, err := u.scanRepo.FindAll(u.db.WithContext(ctx), params)
	if err != nil {
		u.log.Warnf("Failed to list scans: %+v", err)
		return nil, 0, err
	}
	return converter.ScansToResponses(scans), total, nil
}

func (u *scanUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ScanResponse, error) {
	scan, err := u.scanRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find scan: %+v", err)
		return nil, err
	}
	if scan == nil {
		return nil, ErrScanNotFound
	}
	return converter.ScanToResponse(scan), nil
}

func (u *scanUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateScanRequest) (*dto.ScanResponse, error) {
	scan, err := u.scanRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find scan: %+v", err)
		return nil, err
	}
	if scan == nil {
		return nil, ErrScanNotFound
	}

	before := converter.ScanToResponse(scan)

	if req.Name != nil {
		scan.Name = *req.Name
	}
	if req.ActualCost != nil {
		if req.ActualCost.IsNegative() {
			return nil, ErrNegativeAmount
		}
		scan.ActualCost = *req.ActualCost
	}
	if req.MinPrice != nil {
		if req.MinPrice.IsNegative() {
			return nil, ErrNegativeAmount
		}
		scan.MinPrice = *req.MinPrice
	}
	if req.Items != nil {
		items := make(entity.ScanItems, len(req.Items))
		for i, item := range req.Items {
			items[i] = entity.ScanItem{Name: item.Name, Quantity: item.Quantity}
		}
		scan.Items = items
	}
	if req.Images != nil {
		scan.Images = req.Images
	}
	if req.IsActive != nil {
		scan.IsActive = req.IsActive
	}

	if err := u.scanRepo.Update(u.db.WithContext(ctx), scan); err != nil {
		u.log.Warnf("Failed to update scan: %+v", err)
		return nil, err
	}

	after := converter.ScanToResponse(scan)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindScan, scan.ID.String(), before, after)

	return after, nil
}

// Delete soft-deletes a catalog scan so historical appointments keep their
// references.
func (u *scanUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	scan, err := u.scanRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find scan: %+v", err)
		return err
	}
	if scan == nil {
		return ErrScanNotFound
	}

	if err := u.scanRepo.SoftDelete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to soft delete scan: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindScan, id.String(), converter.ScanToResponse(scan))
	return nil
}
