package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/delivery/http/middleware"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/usecase"
	"radlab-backoffice/pkg/pagination"
	"radlab-backoffice/pkg/response"
	"radlab-backoffice/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StockHandler struct {
	stockUsecase usecase.StockUsecase
	validator    *validator.CustomValidator
}

func NewStockHandler(stockUsecase usecase.StockUsecase, validator *validator.CustomValidator) *StockHandler {
	return &StockHandler{
		stockUsecase: stockUsecase,
		validator:    validator,
	}
}

func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateStockItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.stockUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStockBranchNotFound):
			response.NotFound(w, "Branch not found")
		case errors.Is(err, usecase.ErrThresholdExceedsQty):
			response.BadRequest(w, "Minimum threshold cannot exceed quantity")
		case errors.Is(err, usecase.ErrNegativeAmount):
			response.BadRequest(w, "Amounts must not be negative")
		case errors.Is(err, usecase.ErrValidUntilInPast):
			response.BadRequest(w, "Valid until must be in the future")
		default:
			response.InternalServerError(w, "Failed to create stock item")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Stock item created successfully", result)
}

func (h *StockHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	filter, err := parseStockFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	items, total, err := h.stockUsecase.GetAll(r.Context(), filter, params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve stock items")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Stock items retrieved successfully", items, pagination.Build(params.Page, params.Limit, total))
}

func (h *StockHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid stock item ID")
		return
	}

	result, err := h.stockUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStockItemNotFound):
			response.NotFound(w, "Stock item not found")
		default:
			response.InternalServerError(w, "Failed to retrieve stock item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stock item retrieved successfully", result)
}

func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid stock item ID")
		return
	}

	var req dto.UpdateStockItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.stockUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStockItemNotFound):
			response.NotFound(w, "Stock item not found")
		case errors.Is(err, usecase.ErrThresholdExceedsQty):
			response.BadRequest(w, "Minimum threshold cannot exceed quantity")
		case errors.Is(err, usecase.ErrNegativeAmount):
			response.BadRequest(w, "Amounts must not be negative")
		case errors.Is(err, usecase.ErrValidUntilInPast):
			response.BadRequest(w, "Valid until must be in the future")
		default:
			response.InternalServerError(w, "Failed to update stock item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stock item updated successfully", result)
}

func (h *StockHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid stock item ID")
		return
	}

	var req dto.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.stockUsecase.Adjust(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStockItemNotFound):
			response.NotFound(w, "Stock item not found")
		case errors.Is(err, usecase.ErrAdjustmentBelowZero):
			response.Conflict(w, "Adjustment would take quantity below zero")
		default:
			response.InternalServerError(w, "Failed to adjust stock item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stock item adjusted successfully", result)
}

func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid stock item ID")
		return
	}

	if err := h.stockUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrStockItemNotFound):
			response.NotFound(w, "Stock item not found")
		default:
			response.InternalServerError(w, "Failed to delete stock item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stock item deleted successfully", nil)
}

func parseStockFilter(r *http.Request) (*entity.StockFilter, error) {
	q := r.URL.Query()
	filter := &entity.StockFilter{
		LowStock: q.Get("lowStock") == "true",
		Expired:  q.Get("expired") == "true",
	}

	if raw := q.Get("branchId"); raw != "" {
		branchID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("branchId must be a valid UUID")
		}
		filter.BranchID = &branchID
	}

	return filter, nil
}
