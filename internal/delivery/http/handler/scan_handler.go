package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/delivery/http/middleware"
	"radlab-backoffice/internal/usecase"
	"radlab-backoffice/pkg/pagination"
	"radlab-backoffice/pkg/response"
	"radlab-backoffice/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScanHandler struct {
	scanUsecase usecase.ScanUsecase
	validator   *validator.CustomValidator
}

func NewScanHandler(scanUsecase usecase.ScanUsecase, validator *validator.CustomValidator) *ScanHandler {
	return &ScanHandler{
		scanUsecase: scanUsecase,
		validator:   validator,
	}
}

func (h *ScanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.scanUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrScanItemsRequired):
			response.BadRequest(w, "Scan must declare at least one consumable item")
		case errors.Is(err, usecase.ErrNegativeAmount):
			response.BadRequest(w, "Amounts must not be negative")
		default:
			response.InternalServerError(w, "Failed to create scan")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Scan created successfully", result)
}

func (h *ScanHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	scans, total, err := h.scanUsecase.GetAll(r.Context(), params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve scans")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Scans retrieved successfully", scans, pagination.Build(params.Page, params.Limit, total))
}

func (h *ScanHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid scan ID")
		return
	}

	result, err := h.scanUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrScanNotFound):
			response.NotFound(w, "Scan not found")
		default:
			response.InternalServerError(w, "Failed to retrieve scan")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scan retrieved successfully", result)
}

func (h *ScanHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid scan ID")
		return
	}

	var req dto.UpdateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.scanUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrScanNotFound):
			response.NotFound(w, "Scan not found")
		case errors.Is(err, usecase.ErrNegativeAmount):
			response.BadRequest(w, "Amounts must not be negative")
		default:
			response.InternalServerError(w, "Failed to update scan")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scan updated successfully", result)
}

func (h *ScanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid scan ID")
		return
	}

	if err := h.scanUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrScanNotFound):
			response.NotFound(w, "Scan not found")
		default:
			response.InternalServerError(w, "Failed to delete scan")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scan deleted successfully", nil)
}
