package repository

import (
	"errors"

	"radlab-backoffice/internal/domain/entity"
	domainRepo "radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, auditLog *entity.AuditLog) error {
	return db.Create(auditLog).Error
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var auditLog entity.AuditLog
	err := db.Preload("Actor").Where("id = ?", id).First(&auditLog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &auditLog, nil
}

func (r *auditLogRepository) FindAll(db *gorm.DB, filter *entity.AuditFilter, params *pagination.Params) ([]entity.AuditLog, int64, error) {
	q := db.Model(&entity.AuditLog{})

	if filter != nil {
		if filter.EntityKind != nil {
			q = q.Where("entity_kind = ?", *filter.EntityKind)
		}
		if filter.EntityID != nil {
			q = q.Where("entity_id = ?", *filter.EntityID)
		}
		if filter.ActorID != nil {
			q = q.Where("actor_id = ?", *filter.ActorID)
		}
		if filter.Action != nil {
			q = q.Where("action = ?", *filter.Action)
		}
		if filter.From != nil {
			q = q.Where("created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("created_at < ?", *filter.To)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.AuditLog
	err := q.Preload("Actor").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
