package service

import (
	"context"
	"strings"

	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ItemStatus describes one consumable line in an availability check or a
// deduction report.
type ItemStatus struct {
	Name     string `json:"name"`
	Required int    `json:"required"`
	InStock  int    `json:"in_stock"`
	Reason   string `json:"reason,omitempty"`
}

// AvailabilityResult is the outcome of checking a branch's stock against the
// consumables a set of booked scans needs.
type AvailabilityResult struct {
	Available        bool         `json:"available"`
	AvailableItems   []ItemStatus `json:"available_items"`
	UnavailableItems []ItemStatus `json:"unavailable_items"`
	TotalItemsNeeded int          `json:"total_items_needed"`
}

// DeductionResult summarizes a per-item deduction pass. Items deduct
// independently: one failing line does not roll back the lines already
// deducted.
type DeductionResult struct {
	Success               bool         `json:"success"`
	DeductedItems         []ItemStatus `json:"deducted_items"`
	Errors                []string     `json:"errors,omitempty"`
	TotalItemsDeducted    int          `json:"total_items_deducted"`
	TotalQuantityDeducted int          `json:"total_quantity_deducted"`
}

// StockService resolves booked scans into consumable requirements and
// checks or deducts them against a branch's stock.
type StockService interface {
	CheckAvailability(ctx context.Context, branchID uuid.UUID, scans entity.AppointmentScans) (*AvailabilityResult, error)
	Deduct(ctx context.Context, branchID uuid.UUID, scans entity.AppointmentScans) (*DeductionResult, error)
}

type stockService struct {
	db        *gorm.DB
	log       *logrus.Logger
	scanRepo  repository.ScanRepository
	stockRepo repository.StockRepository
	userRepo  repository.UserRepository
	hub       *NotificationHub
}

func NewStockService(db *gorm.DB, log *logrus.Logger, scanRepo repository.ScanRepository, stockRepo repository.StockRepository, userRepo repository.UserRepository, hub *NotificationHub) StockService {
	return &stockService{
		db:        db,
		log:       log,
		scanRepo:  scanRepo,
		stockRepo: stockRepo,
		userRepo:  userRepo,
		hub:       hub,
	}
}

// requirement is one merged consumable line. Order follows first
// appearance across the booked scans.
type requirement struct {
	name     string
	quantity int
}

// expandRequirements resolves booked scans into their consumable items and
// merges duplicates case-insensitively, multiplying by booked quantity.
func (s *stockService) expandRequirements(ctx context.Context, scans entity.AppointmentScans) ([]requirement, error) {
	ids := make([]uuid.UUID, 0, len(scans))
	for _, bs := range scans {
		ids = append(ids, bs.ScanID)
	}

	catalog, err := s.scanRepo.FindByIDs(s.db.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Scan, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}

	var order []string
	totals := make(map[string]*requirement)
	for _, bs := range scans {
		scan, ok := byID[bs.ScanID]
		if !ok {
			continue
		}
		for _, item := range scan.Items {
			key := strings.ToLower(item.Name)
			if existing, ok := totals[key]; ok {
				existing.quantity += item.Quantity * bs.Quantity
				continue
			}
			totals[key] = &requirement{name: item.Name, quantity: item.Quantity * bs.Quantity}
			order = append(order, key)
		}
	}

	reqs := make([]requirement, 0, len(order))
	for _, key := range order {
		reqs = append(reqs, *totals[key])
	}
	return reqs, nil
}

// CheckAvailability reports whether the branch holds enough of every
// consumable the booked scans need. Scans with no consumables are trivially
// available.
func (s *stockService) CheckAvailability(ctx context.Context, branchID uuid.UUID, scans entity.AppointmentScans) (*AvailabilityResult, error) {
	reqs, err := s.expandRequirements(ctx, scans)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		Available:        true,
		AvailableItems:   []ItemStatus{},
		UnavailableItems: []ItemStatus{},
		TotalItemsNeeded: len(reqs),
	}

	for _, req := range reqs {
		item, err := s.stockRepo.FindByNameAndBranch(s.db.WithContext(ctx), branchID, req.name)
		if err != nil {
			return nil, err
		}

		status := ItemStatus{Name: req.name, Required: req.quantity}
		switch {
		case item == nil:
			status.Reason = "Item not found in stock"
			result.Available = false
			result.UnavailableItems = append(result.UnavailableItems, status)
		case item.Quantity < req.quantity:
			status.InStock = item.Quantity
			status.Reason = "Insufficient quantity"
			result.Available = false
			result.UnavailableItems = append(result.UnavailableItems, status)
		default:
			status.InStock = item.Quantity
			result.AvailableItems = append(result.AvailableItems, status)
		}
	}

	return result, nil
}

// Deduct subtracts each required consumable from branch stock with a
// conditional update per line. Lines that cannot be satisfied are reported
// in Errors while satisfied lines stay deducted.
func (s *stockService) Deduct(ctx context.Context, branchID uuid.UUID, scans entity.AppointmentScans) (*DeductionResult, error) {
	reqs, err := s.expandRequirements(ctx, scans)
	if err != nil {
		return nil, err
	}

	result := &DeductionResult{
		Success:       true,
		DeductedItems: []ItemStatus{},
	}

	for _, req := range reqs {
		affected, err := s.stockRepo.DeductByName(s.db.WithContext(ctx), branchID, req.name, req.quantity)
		if err != nil {
			result.Success = false
			result.Errors = append(result.Errors, "Failed to deduct "+req.name+": "+err.Error())
			continue
		}
		if affected == 0 {
			result.Success = false
			result.Errors = append(result.Errors, "Insufficient stock for "+req.name)
			continue
		}

		result.DeductedItems = append(result.DeductedItems, ItemStatus{Name: req.name, Required: req.quantity})
		result.TotalItemsDeducted++
		result.TotalQuantityDeducted += req.quantity

		s.alertIfLow(ctx, branchID, req.name)
	}

	return result, nil
}

// alertIfLow notifies users who manage stock when a deduction drops an item
// to or below its threshold. Alerting is best-effort.
func (s *stockService) alertIfLow(ctx context.Context, branchID uuid.UUID, name string) {
	item, err := s.stockRepo.FindByNameAndBranch(s.db.WithContext(ctx), branchID, name)
	if err != nil || item == nil || !item.LowStock() {
		return
	}

	users, err := s.userRepo.FindActive(s.db.WithContext(ctx))
	if err != nil {
		s.log.Warnf("Failed to load users for low stock alert: %+v", err)
		return
	}

	var recipients []uuid.UUID
	for i := range users {
		if users[i].Allow(entity.ModuleStock, entity.OperationUpdate) {
			recipients = append(recipients, users[i].ID)
		}
	}

	s.hub.SendToUsers(recipients, Notification{
		Type: NotificationLowStock,
		Data: map[string]interface{}{
			"item_name": item.Name,
			"branch_id": item.BranchID,
			"quantity":  item.Quantity,
			"threshold": item.MinimumThreshold,
		},
	})
}
