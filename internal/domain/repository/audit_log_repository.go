package repository

import (
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/pkg/pagination"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, auditLog *entity.AuditLog) error
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
	FindAll(db *gorm.DB, filter *entity.AuditFilter, params *pagination.Params) ([]entity.AuditLog, int64, error)
}
