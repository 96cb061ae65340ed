package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/usecase"
	"radlab-backoffice/pkg/pagination"
	"radlab-backoffice/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditUsecase: auditUsecase,
	}
}

func (h *AuditLogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	filter, err := parseAuditFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	records, total, err := h.auditUsecase.GetAll(r.Context(), filter, params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve audit records")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Audit records retrieved successfully", records, pagination.Build(params.Page, params.Limit, total))
}

func (h *AuditLogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit record ID")
		return
	}

	result, err := h.auditUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAuditLogNotFound):
			response.NotFound(w, "Audit record not found")
		default:
			response.InternalServerError(w, "Failed to retrieve audit record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit record retrieved successfully", result)
}

func parseAuditFilter(r *http.Request) (*entity.AuditFilter, error) {
	q := r.URL.Query()
	filter := &entity.AuditFilter{}

	if raw := q.Get("entityKind"); raw != "" {
		filter.EntityKind = &raw
	}

	if raw := q.Get("entityId"); raw != "" {
		filter.EntityID = &raw
	}

	if raw := q.Get("action"); raw != "" {
		filter.Action = &raw
	}

	if raw := q.Get("actorId"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("actorId must be a valid UUID")
		}
		filter.ActorID = &actorID
	}

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("from must be an RFC3339 timestamp")
		}
		filter.From = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("to must be an RFC3339 timestamp")
		}
		filter.To = &to
	}

	return filter, nil
}
