package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
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

type ExpenseHandler struct {
	expenseUsecase usecase.ExpenseUsecase
	validator      *validator.CustomValidator
}

func NewExpenseHandler(expenseUsecase usecase.ExpenseUsecase, validator *validator.CustomValidator) *ExpenseHandler {
	return &ExpenseHandler{
		expenseUsecase: expenseUsecase,
		validator:      validator,
	}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.expenseUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case errors.Is(err, usecase.ErrNegativeAmount):
			response.BadRequest(w, "Amounts must not be negative")
		default:
			response.InternalServerError(w, "Failed to create expense")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Expense created successfully", result)
}

func (h *ExpenseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	filter, err := parseExpenseFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	expenses, total, err := h.expenseUsecase.GetAll(r.Context(), filter, params)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve expenses")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Expenses retrieved successfully", expenses, pagination.Build(params.Page, params.Limit, total))
}

func (h *ExpenseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	result, err := h.expenseUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrExpenseNotFound):
			response.NotFound(w, "Expense not found")
		default:
			response.InternalServerError(w, "Failed to retrieve expense")
		}
		return
	}

	response.Success(w, http.StatusOK, "Expense retrieved successfully", result)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.expenseUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrExpenseNotFound):
			response.NotFound(w, "Expense not found")
		case errors.Is(err, usecase.ErrExpenseNotEditable):
			response.Conflict(w, "Only pending expenses can be edited")
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case errors.Is(err, usecase.ErrNegativeAmount):
			response.BadRequest(w, "Amounts must not be negative")
		default:
			response.InternalServerError(w, "Failed to update expense")
		}
		return
	}

	response.Success(w, http.StatusOK, "Expense updated successfully", result)
}

func (h *ExpenseHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	var req dto.UpdateExpenseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.expenseUsecase.UpdateStatus(r.Context(), actor, id, &req)
	if err != nil {
		var transitionErr *usecase.ErrIllegalExpenseTransition
		switch {
		case errors.Is(err, usecase.ErrExpenseNotFound):
			response.NotFound(w, "Expense not found")
		case errors.As(err, &transitionErr):
			response.BadRequest(w, fmt.Sprintf("Cannot change expense status from %s to %s", transitionErr.From, transitionErr.To))
		default:
			response.InternalServerError(w, "Failed to update expense status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Expense status updated successfully", result)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	if err := h.expenseUsecase.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrExpenseNotFound):
			response.NotFound(w, "Expense not found")
		case errors.Is(err, usecase.ErrExpenseNotEditable):
			response.Conflict(w, "Only pending expenses can be deleted")
		default:
			response.InternalServerError(w, "Failed to delete expense")
		}
		return
	}

	response.Success(w, http.StatusOK, "Expense deleted successfully", nil)
}

func parseExpenseFilter(r *http.Request) (*entity.ExpenseFilter, error) {
	q := r.URL.Query()
	filter := &entity.ExpenseFilter{}

	if raw := q.Get("status"); raw != "" {
		status := entity.ExpenseStatus(raw)
		switch status {
		case entity.ExpenseStatusPending, entity.ExpenseStatusApproved, entity.ExpenseStatusRejected, entity.ExpenseStatusPaid:
			filter.Status = &status
		default:
			return nil, errors.New("status must be one of pending, approved, rejected, paid")
		}
	}

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("from must be a date in YYYY-MM-DD format")
		}
		filter.From = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("to must be a date in YYYY-MM-DD format")
		}
		filter.To = &to
	}

	return filter, nil
}
