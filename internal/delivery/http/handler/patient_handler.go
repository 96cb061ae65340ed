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

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.patientUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case errors.Is(err, usecase.ErrDateOfBirthInFuture):
			response.BadRequest(w, "Date of birth cannot be in the future")
		case errors.Is(err, usecase.ErrReferringDoctorNotFound):
			response.NotFound(w, "Referring doctor not found")
		case errors.Is(err, usecase.ErrReferringDoctorInactive):
			response.BadRequest(w, "Referring doctor is inactive")
		case errors.Is(err, usecase.ErrRepresentativeNotFoundByID):
			response.NotFound(w, "Representative not found")
		case errors.Is(err, usecase.ErrSocialNumberAlreadyExists):
			response.Conflict(w, "Social number already exists")
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", result)
}

func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	patients, total, err := h.patientUsecase.GetAll(r.Context(), params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve patients")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Patients retrieved successfully", patients, pagination.Build(params.Page, params.Limit, total))
}

func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	result, err := h.patientUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to retrieve patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", result)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.patientUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case errors.Is(err, usecase.ErrDateOfBirthInFuture):
			response.BadRequest(w, "Date of birth cannot be in the future")
		case errors.Is(err, usecase.ErrReferringDoctorNotFound):
			response.NotFound(w, "Referring doctor not found")
		case errors.Is(err, usecase.ErrReferringDoctorInactive):
			response.BadRequest(w, "Referring doctor is inactive")
		case errors.Is(err, usecase.ErrRepresentativeNotFoundByID):
			response.NotFound(w, "Representative not found")
		case errors.Is(err, usecase.ErrSocialNumberAlreadyExists):
			response.Conflict(w, "Social number already exists")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", result)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrPatientHasActiveBookings):
			response.Conflict(w, "Patient has active appointments")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
