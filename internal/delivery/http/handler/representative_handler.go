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

type RepresentativeHandler struct {
	repUsecase usecase.RepresentativeUsecase
	validator  *validator.CustomValidator
}

func NewRepresentativeHandler(repUsecase usecase.RepresentativeUsecase, validator *validator.CustomValidator) *RepresentativeHandler {
	return &RepresentativeHandler{
		repUsecase: repUsecase,
		validator:  validator,
	}
}

func (h *RepresentativeHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateRepresentativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.repUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBusinessIDAlreadyExists):
			response.Conflict(w, "Business ID already exists")
		default:
			response.InternalServerError(w, "Failed to create representative")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Representative created successfully", result)
}

func (h *RepresentativeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	reps, total, err := h.repUsecase.GetAll(r.Context(), params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve representatives")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Representatives retrieved successfully", reps, pagination.Build(params.Page, params.Limit, total))
}

func (h *RepresentativeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid representative ID")
		return
	}

	result, err := h.repUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRepresentativeNotFound):
			response.NotFound(w, "Representative not found")
		default:
			response.InternalServerError(w, "Failed to retrieve representative")
		}
		return
	}

	response.Success(w, http.StatusOK, "Representative retrieved successfully", result)
}

func (h *RepresentativeHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid representative ID")
		return
	}

	var req dto.UpdateRepresentativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.repUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRepresentativeNotFound):
			response.NotFound(w, "Representative not found")
		case errors.Is(err, usecase.ErrBusinessIDAlreadyExists):
			response.Conflict(w, "Business ID already exists")
		default:
			response.InternalServerError(w, "Failed to update representative")
		}
		return
	}

	response.Success(w, http.StatusOK, "Representative updated successfully", result)
}

func (h *RepresentativeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid representative ID")
		return
	}

	if err := h.repUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrRepresentativeNotFound):
			response.NotFound(w, "Representative not found")
		case errors.Is(err, usecase.ErrRepresentativeReferenced):
			response.Conflict(w, "Representative has associated patients or doctors")
		default:
			response.InternalServerError(w, "Failed to delete representative")
		}
		return
	}

	response.Success(w, http.StatusOK, "Representative deleted successfully", nil)
}

func (h *RepresentativeHandler) Recount(w http.ResponseWriter, r *http.Request) {
	updated, err := h.repUsecase.Recount(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to recount representative referrals")
		return
	}

	response.Success(w, http.StatusOK, "Representative referral counters recalculated", dto.RecountResponse{Updated: updated})
}
