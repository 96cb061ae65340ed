package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScanRepository interface {
	Create(db *gorm.DB, scan *entity.Scan) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Scan, error)
	FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Scan, error)
	FindAll(db *gorm.DB, params *pagination.Params) ([]entity.Scan, int64, error)
	Update(db *gorm.DB, scan *entity.Scan) error
	SoftDelete(db *gorm.DB, id uuid.UUID) error
}
