package service

import (
	"context"
	"strings"
	"testing"

	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// stubScanRepo serves a fixed catalog.
type stubScanRepo struct {
	scans []entity.Scan
}

func (r *stubScanRepo) Create(db *gorm.DB, scan *entity.Scan) error { return nil }
func (r *stubScanRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Scan, error) {
	return nil, nil
}
func (r *stubScanRepo) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Scan, error) {
	return r.scans, nil
}
func (r *stubScanRepo) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Scan, int64, error) {
	return nil, 0, nil
}
func (r *stubScanRepo) Update(db *gorm.DB, scan *entity.Scan) error { return nil }
func (r *stubScanRepo) SoftDelete(db *gorm.DB, id uuid.UUID) error { return nil }

// stubStockRepo keeps in-memory quantities keyed by lowercase name.
type stubStockRepo struct {
	items map[string]*entity.StockItem
}

func (r *stubStockRepo) Create(db *gorm.DB, item *entity.StockItem) error { return nil }
func (r *stubStockRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.StockItem, error) {
	return nil, nil
}
func (r *stubStockRepo) FindByNameAndBranch(db *gorm.DB, branchID uuid.UUID, name string) (*entity.StockItem, error) {
	return r.items[strings.ToLower(name)], nil
}
func (r *stubStockRepo) FindAll(db *gorm.DB, filter *entity.StockFilter, params *pagination.Params) ([]entity.StockItem, int64, error) {
	return nil, 0, nil
}
func (r *stubStockRepo) Update(db *gorm.DB, item *entity.StockItem) error { return nil }
func (r *stubStockRepo) Delete(db *gorm.DB, id uuid.UUID) error { return nil }
func (r *stubStockRepo) AdjustQuantity(db *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	return 0, nil
}
func (r *stubStockRepo) DeductByName(db *gorm.DB, branchID uuid.UUID, name string, qty int) (int64, error) {
	item, ok := r.items[strings.ToLower(name)]
	if !ok || item.Quantity < qty {
		return 0, nil
	}
	item.Quantity -= qty
	return 1, nil
}

// stubUserRepo has no stock managers, so low stock alerts go nowhere.
type stubUserRepo struct{}

func (r *stubUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }
func (r *stubUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindByResetToken(db *gorm.DB, token string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindAll(db *gorm.DB, params *pagination.Params) ([]entity.User, int64, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) FindActive(db *gorm.DB) ([]entity.User, error) { return nil, nil }
func (r *stubUserRepo) Update(db *gorm.DB, user *entity.User) error { return nil }
func (r *stubUserRepo) Delete(db *gorm.DB, id uuid.UUID) error { return nil }

func newTestStockService(scans []entity.Scan, items map[string]*entity.StockItem) StockService {
	log := logrus.New()
	return NewStockService(
		&gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}},
		log,
		&stubScanRepo{scans: scans},
		&stubStockRepo{items: items},
		&stubUserRepo{},
		NewNotificationHub(log),
	)
}

func TestCheckAvailabilityMergesCaseInsensitively(t *testing.T) {
	ctScan := uuid.New()
	mriScan := uuid.New()
	scans := []entity.Scan{
		{ID: ctScan, Items: entity.ScanItems{{Name: "Contrast Dye", Quantity: 2}}},
		{ID: mriScan, Items: entity.ScanItems{{Name: "contrast dye", Quantity: 1}, {Name: "Film", Quantity: 1}}},
	}
	items := map[string]*entity.StockItem{
		"contrast dye": {Name: "Contrast Dye", Quantity: 10},
		"film":         {Name: "Film", Quantity: 3},
	}

	svc := newTestStockService(scans, items)
	result, err := svc.CheckAvailability(context.Background(), uuid.New(), entity.AppointmentScans{
		{ScanID: ctScan, Quantity: 2},
		{ScanID: mriScan, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}

	if !result.Available {
		t.Errorf("Available = false, want true: %+v", result.UnavailableItems)
	}
	if result.TotalItemsNeeded != 2 {
		t.Errorf("TotalItemsNeeded = %d, want 2 merged lines", result.TotalItemsNeeded)
	}
	// 2*2 from the CT booking plus 1*1 from the MRI booking.
	if got := result.AvailableItems[0].Required; got != 5 {
		t.Errorf("merged contrast dye requirement = %d, want 5", got)
	}
}

func TestCheckAvailabilityReportsReasons(t *testing.T) {
	scanID := uuid.New()
	scans := []entity.Scan{
		{ID: scanID, Items: entity.ScanItems{
			{Name: "Gloves", Quantity: 4},
			{Name: "Tracer", Quantity: 1},
		}},
	}
	items := map[string]*entity.StockItem{
		"gloves": {Name: "Gloves", Quantity: 3},
	}

	svc := newTestStockService(scans, items)
	result, err := svc.CheckAvailability(context.Background(), uuid.New(), entity.AppointmentScans{
		{ScanID: scanID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}

	if result.Available {
		t.Fatal("Available = true, want false")
	}
	if len(result.UnavailableItems) != 2 {
		t.Fatalf("UnavailableItems = %d entries, want 2", len(result.UnavailableItems))
	}

	reasons := map[string]string{}
	for _, item := range result.UnavailableItems {
		reasons[strings.ToLower(item.Name)] = item.Reason
	}
	if reasons["gloves"] != "Insufficient quantity" {
		t.Errorf("gloves reason = %q, want Insufficient quantity", reasons["gloves"])
	}
	if reasons["tracer"] != "Item not found in stock" {
		t.Errorf("tracer reason = %q, want Item not found in stock", reasons["tracer"])
	}
}

func TestDeductPartialFailureKeepsDeductedLines(t *testing.T) {
	scanID := uuid.New()
	scans := []entity.Scan{
		{ID: scanID, Items: entity.ScanItems{
			{Name: "Film", Quantity: 2},
			{Name: "Tracer", Quantity: 1},
		}},
	}
	items := map[string]*entity.StockItem{
		"film": {Name: "Film", Quantity: 5, MinimumThreshold: 1},
	}

	svc := newTestStockService(scans, items)
	result, err := svc.Deduct(context.Background(), uuid.New(), entity.AppointmentScans{
		{ScanID: scanID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Deduct() error = %v", err)
	}

	if result.Success {
		t.Error("Success = true, want false for partial failure")
	}
	if result.TotalItemsDeducted != 1 || result.TotalQuantityDeducted != 2 {
		t.Errorf("deducted items=%d qty=%d, want 1 and 2", result.TotalItemsDeducted, result.TotalQuantityDeducted)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one entry", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Tracer") {
		t.Errorf("error %q does not name the failing item", result.Errors[0])
	}
	// The satisfied line stays deducted.
	if items["film"].Quantity != 3 {
		t.Errorf("film quantity = %d, want 3", items["film"].Quantity)
	}
}
