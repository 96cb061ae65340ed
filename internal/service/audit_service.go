package service

import (
	"context"

	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records mutating operations. Recording is best-effort: a
// failed write is logged and swallowed so it never fails the calling
// operation.
type AuditService interface {
	LogCreate(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, oldValue, newValue interface{})
	LogDelete(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, oldValue interface{})
	LogStatusChange(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, changes entity.JSON)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate records a create action
func (s *auditService) LogCreate(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, newValue interface{}) {
	s.write(ctx, actorID, entity.AuditActionCreate, entityKind, entityID, entity.JSON{
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate records an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, oldValue, newValue interface{}) {
	s.write(ctx, actorID, entity.AuditActionUpdate, entityKind, entityID, entity.JSON{
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete records a delete action with the last seen value
func (s *auditService) LogDelete(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, oldValue interface{}) {
	s.write(ctx, actorID, entity.AuditActionDelete, entityKind, entityID, entity.JSON{
		"old_value": oldValue,
		"new_value": nil,
	})
}

// LogStatusChange records a status transition with caller-supplied changes
func (s *auditService) LogStatusChange(ctx context.Context, actorID *uuid.UUID, entityKind string, entityID string, changes entity.JSON) {
	s.write(ctx, actorID, entity.AuditActionStatusChange, entityKind, entityID, changes)
}

func (s *auditService) write(ctx context.Context, actorID *uuid.UUID, action string, entityKind string, entityID string, changes entity.JSON) {
	auditLog := &entity.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
		Changes:    changes,
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s %s: %+v", entityKind, entityID, err)
	}
}
