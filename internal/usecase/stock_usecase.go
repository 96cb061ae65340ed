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
	ErrStockItemNotFound   = errors.New("stock item not found")
	ErrThresholdExceedsQty = errors.New("minimum threshold cannot exceed quantity")
	ErrValidUntilInPast    = errors.New("valid until must be in the future")
	ErrAdjustmentBelowZero = errors.New("adjustment would take quantity below zero")
	ErrStockBranchNotFound = errors.New("branch not found")
)

type StockUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateStockItemRequest) (*dto.StockItemResponse, error)
	GetAll(ctx context.Context, filter *entity.StockFilter, params *pagination.Params) ([]dto.StockItemResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.StockItemResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateStockItemRequest) (*dto.StockItemResponse, error)
	Adjust(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.StockItemResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type stockUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	stockRepo  repository.StockRepository
	branchRepo repository.BranchRepository
	audit      service.AuditService
}

func NewStockUsecase(db *gorm.DB, log *logrus.Logger, stockRepo repository.StockRepository, branchRepo repository.BranchRepository, audit service.AuditService) StockUsecase {
	return &stockUsecase{
		db:         db,
		log:        log,
		stockRepo:  stockRepo,
		branchRepo: branchRepo,
		audit:      audit,
	}
}

func (u *stockUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if req.MinimumThreshold > req.Quantity {
		return nil, ErrThresholdExceedsQty
	}
	if req.Price.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if !req.ValidUntil.After(time.Now()) {
		return nil, ErrValidUntilInPast
	}

	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), req.BranchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrStockBranchNotFound
	}

	item := &entity.StockItem{
		Name:             req.Name,
		BranchID:         req.BranchID,
		Quantity:         req.Quantity,
		MinimumThreshold: req.MinimumThreshold,
		Price:            req.Price,
		ValidUntil:       req.ValidUntil,
	}

	if err := u.stockRepo.Create(u.db.WithContext(ctx), item); err != nil {
		u.log.Warnf("Failed to create stock item: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindStockItem, item.ID.String(), converter.StockItemToResponse(item))

	return converter.StockItemToResponse(item), nil
}

func (u *stockUsecase) GetAll(ctx context.Context, filter *entity.StockFilter, params *pagination.Params) ([]dto.StockItemResponse, int64, error) {
	items, total, err := u.stockRepo.FindAll(u.db.WithContext(ctx), filter, params)
	if err != nil {
		u.log.Warnf("Failed to list stock items: %+v", err)
		return nil, 0, err
	}
	return converter.StockItemsToResponses(items), total, nil
}

func (u *stockUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.StockItemResponse, error) {
	item, err := u.stockRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find stock item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrStockItemNotFound
	}
	return converter.StockItemToResponse(item), nil
}

func (u *stockUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	item, err := u.stockRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find stock item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrStockItemNotFound
	}

	before := converter.StockItemToResponse(item)

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.MinimumThreshold != nil {
		if *req.MinimumThreshold > item.Quantity {
			return nil, ErrThresholdExceedsQty
		}
		item.MinimumThreshold = *req.MinimumThreshold
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrNegativeAmount
		}
		item.Price = *req.Price
	}
	if req.ValidUntil != nil {
		item.ValidUntil = *req.ValidUntil
	}
	if req.IsActive != nil {
		item.IsActive = req.IsActive
	}

	if err := u.stockRepo.Update(u.db.WithContext(ctx), item); err != nil {
		u.log.Warnf("Failed to update stock item: %+v", err)
		return nil, err
	}

	after := converter.StockItemToResponse(item)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindStockItem, item.ID.String(), before, after)

	return after, nil
}

// Adjust applies a signed quantity delta. The repository runs a conditional
// update so a subtraction can never cross zero, even under concurrency.
func (u *stockUsecase) Adjust(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.AdjustStockRequest) (*dto.StockItemResponse, error) {
	item, err := u.stockRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find stock item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrStockItemNotFound
	}

	before := converter.StockItemToResponse(item)

	affected, err := u.stockRepo.AdjustQuantity(u.db.WithContext(ctx), id, req.Delta)
	if err != nil {
		u.log.Warnf("Failed to adjust stock quantity: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAdjustmentBelowZero
	}

	item, err = u.stockRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to reload stock item: %+v", err)
		return nil, err
	}

	after := converter.StockItemToResponse(item)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindStockItem, id.String(), before, after)

	return after, nil
}

func (u *stockUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	item, err := u.stockRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find stock item: %+v", err)
		return err
	}
	if item == nil {
		return ErrStockItemNotFound
	}

	if err := u.stockRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete stock item: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindStockItem, id.String(), converter.StockItemToResponse(item))
	return nil
}
