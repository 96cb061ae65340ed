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

type BranchHandler struct {
	branchUsecase usecase.BranchUsecase
	validator     *validator.CustomValidator
}

func NewBranchHandler(branchUsecase usecase.BranchUsecase, validator *validator.CustomValidator) *BranchHandler {
	return &BranchHandler{
		branchUsecase: branchUsecase,
		validator:     validator,
	}
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.branchUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBranchNameAlreadyExists):
			response.Conflict(w, "Branch name already exists")
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			response.Conflict(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to create branch")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Branch created successfully", result)
}

func (h *BranchHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	branches, total, err := h.branchUsecase.GetAll(r.Context(), params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve branches")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Branches retrieved successfully", branches, pagination.Build(params.Page, params.Limit, total))
}

func (h *BranchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	result, err := h.branchUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBranchNotFound):
			response.NotFound(w, "Branch not found")
		default:
			response.InternalServerError(w, "Failed to retrieve branch")
		}
		return
	}

	response.Success(w, http.StatusOK, "Branch retrieved successfully", result)
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	var req dto.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.branchUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBranchNotFound):
			response.NotFound(w, "Branch not found")
		case errors.Is(err, usecase.ErrBranchNameAlreadyExists):
			response.Conflict(w, "Branch name already exists")
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			response.Conflict(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to update branch")
		}
		return
	}

	response.Success(w, http.StatusOK, "Branch updated successfully", result)
}

func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	if err := h.branchUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBranchNotFound):
			response.NotFound(w, "Branch not found")
		default:
			response.InternalServerError(w, "Failed to delete branch")
		}
		return
	}

	response.Success(w, http.StatusOK, "Branch deleted successfully", nil)
}
