package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(auditLog *entity.AuditLog) *dto.AuditLogResponse {
	if auditLog == nil {
		return nil
	}

	response := &dto.AuditLogResponse{
		ID:         auditLog.ID,
		ActorID:    auditLog.ActorID,
		Action:     auditLog.Action,
		EntityKind: auditLog.EntityKind,
		EntityID:   auditLog.EntityID,
		Changes:    auditLog.Changes,
		CreatedAt:  auditLog.CreatedAt,
	}

	if auditLog.Actor != nil {
		response.ActorName = auditLog.Actor.Name
	}

	return response
}

// AuditLogsToResponses converts a slice of AuditLog entities to AuditLogResponse DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
