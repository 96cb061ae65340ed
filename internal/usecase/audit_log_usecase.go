package usecase

import (
	"context"
	"errors"

	"radlab-backoffice/internal/converter"
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit record not found")

type AuditLogUsecase interface {
	GetAll(ctx context.Context, filter *entity.AuditFilter, params *pagination.Params) ([]dto.AuditLogResponse, int64, error)
	GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditLogUsecase) GetAll(ctx context.Context, filter *entity.AuditFilter, params *pagination.Params) ([]dto.AuditLogResponse, int64, error) {
	logs, total, err := u.auditRepo.FindAll(u.db.WithContext(ctx), filter, params)
	if err != nil {
		u.log.Warnf("Failed to list audit records: %+v", err)
		return nil, 0, err
	}
	return converter.AuditLogsToResponses(logs), total, nil
}

func (u *auditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit record: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}
	return converter.AuditLogToResponse(auditLog), nil
}
