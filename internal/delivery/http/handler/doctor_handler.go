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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.doctorUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRepresentativeNotFoundByID):
			response.NotFound(w, "Representative not found")
		case errors.Is(err, usecase.ErrLicenseIDAlreadyExists):
			response.Conflict(w, "License ID already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", result)
}

func (h *DoctorHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	doctors, total, err := h.doctorUsecase.GetAll(r.Context(), params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve doctors")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Doctors retrieved successfully", doctors, pagination.Build(params.Page, params.Limit, total))
}

func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	result, err := h.doctorUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to retrieve doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", result)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.doctorUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrRepresentativeNotFoundByID):
			response.NotFound(w, "Representative not found")
		case errors.Is(err, usecase.ErrLicenseIDAlreadyExists):
			response.Conflict(w, "License ID already exists")
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", result)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrDoctorHasReferral):
			response.Conflict(w, "Doctor has referrals and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) Recount(w http.ResponseWriter, r *http.Request) {
	updated, err := h.doctorUsecase.Recount(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to recount doctor referrals")
		return
	}

	response.Success(w, http.StatusOK, "Doctor referral counters recalculated", dto.RecountResponse{Updated: updated})
}
