package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

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

// maxReportSize bounds the multipart body on the status endpoint.
const maxReportSize = 10 << 20

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		h.writeCreateUpdateError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", result)
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	filter, err := parseAppointmentFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	appointments, total, err := h.appointmentUsecase.GetAll(r.Context(), filter, params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve appointments")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Appointments retrieved successfully", appointments, pagination.Build(params.Page, params.Limit, total))
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	result, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to retrieve appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", result)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		h.writeCreateUpdateError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", result)
}

// UpdateStatus accepts a JSON body for every transition except completion,
// which arrives as multipart form data with the PDF report in the
// "pdfFile" file part.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	var pdfFile io.Reader

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxReportSize)
		if err := r.ParseMultipartForm(maxReportSize); err != nil {
			response.BadRequest(w, "Invalid multipart form")
			return
		}

		req.Status = r.FormValue("status")
		req.Notes = r.FormValue("notes")
		req.CancellationReason = r.FormValue("cancellation_reason")

		file, header, err := r.FormFile("pdfFile")
		if err == nil {
			defer file.Close()
			if header.Header.Get("Content-Type") != "application/pdf" {
				response.BadRequest(w, "Report must be a PDF file")
				return
			}
			pdfFile = file
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.UpdateStatus(r.Context(), actor, id, &req, pdfFile)
	if err != nil {
		var transitionErr *usecase.ErrIllegalTransition
		var stockErr *usecase.ErrStockUnavailable
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.As(err, &transitionErr):
			response.BadRequest(w, fmt.Sprintf("Cannot change appointment status from %s to %s", transitionErr.From, transitionErr.To))
		case errors.Is(err, usecase.ErrPDFReportRequired):
			response.BadRequest(w, "Completing an appointment requires a PDF report")
		case errors.As(err, &stockErr):
			response.Error(w, http.StatusBadRequest, "Insufficient stock for the requested scans", stockErr.Result)
		case errors.Is(err, usecase.ErrCancellationReasonRequired):
			response.BadRequest(w, "Cancelling an in-progress appointment requires a reason")
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", result)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrDeleteNotScheduled):
			response.BadRequest(w, "Only scheduled appointments can be deleted")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	history, total, err := h.appointmentUsecase.GetHistory(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to retrieve appointment history")
		}
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Appointment history retrieved successfully", history, pagination.Build(params.Page, params.Limit, total))
}

func (h *AppointmentHandler) writeCreateUpdateError(w http.ResponseWriter, err error) {
	var stockErr *usecase.ErrStockUnavailable
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrScheduledAtInPast):
		response.BadRequest(w, "Scheduled time must be in the future")
	case errors.Is(err, usecase.ErrRadiologistNotFound):
		response.NotFound(w, "Radiologist not found")
	case errors.Is(err, usecase.ErrNotARadiologist):
		response.BadRequest(w, "User is not a radiologist")
	case errors.Is(err, usecase.ErrRadiologistInactive):
		response.BadRequest(w, "Radiologist is inactive")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrPatientInactive):
		response.BadRequest(w, "Patient is inactive")
	case errors.Is(err, usecase.ErrReferringDoctorNotFound):
		response.NotFound(w, "Referring doctor not found")
	case errors.Is(err, usecase.ErrReferringDoctorInactive):
		response.BadRequest(w, "Referring doctor is inactive")
	case errors.Is(err, usecase.ErrBranchNotFound):
		response.NotFound(w, "Branch not found")
	case errors.Is(err, usecase.ErrScanNotFound):
		response.NotFound(w, "Scan not found")
	case errors.Is(err, usecase.ErrSlotAlreadyBooked):
		response.Conflict(w, "Time slot is already booked")
	case errors.As(err, &stockErr):
		response.Error(w, http.StatusBadRequest, "Insufficient stock for the requested scans", stockErr.Result)
	case errors.Is(err, usecase.ErrHugeSaleNotAllowed):
		response.Forbidden(w, "You do not have permission to make huge sales")
	case errors.Is(err, usecase.ErrCustomPriceRequired):
		response.BadRequest(w, "Custom price must be provided and positive for huge sales")
	case errors.Is(err, usecase.ErrTerminalState):
		response.BadRequest(w, "Appointment is in a terminal state")
	default:
		response.InternalServerError(w, "Failed to save appointment")
	}
}

func parseAppointmentFilter(r *http.Request) (*entity.AppointmentFilter, error) {
	q := r.URL.Query()
	filter := &entity.AppointmentFilter{}

	if raw := q.Get("status"); raw != "" {
		status := entity.AppointmentStatus(raw)
		if !entity.IsValidAppointmentStatus(status) {
			return nil, errors.New("status must be one of scheduled, confirmed, in_progress, completed, cancelled, no-show")
		}
		filter.Status = &status
	}

	for param, target := range map[string]**uuid.UUID{
		"patientId":        &filter.PatientID,
		"doctorId":         &filter.DoctorID,
		"radiologistId":    &filter.RadiologistID,
		"branchId":         &filter.BranchID,
		"representativeId": &filter.RepresentativeID,
	} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be a valid UUID", param)
		}
		*target = &id
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
