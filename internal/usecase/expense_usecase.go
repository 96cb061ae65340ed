package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"radlab-backoffice/internal/converter"
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrExpenseNotEditable = errors.New("only pending expenses can be edited")
)

// ErrIllegalExpenseTransition reports a status change outside the expense
// state machine.
type ErrIllegalExpenseTransition struct {
	From entity.ExpenseStatus
	To   entity.ExpenseStatus
}

func (e *ErrIllegalExpenseTransition) Error() string {
	return fmt.Sprintf("illegal expense status transition from %s to %s", e.From, e.To)
}

type ExpenseUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	GetAll(ctx context.Context, filter *entity.ExpenseFilter, params *pagination.Params) ([]dto.ExpenseResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ExpenseResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	UpdateStatus(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateExpenseStatusRequest) (*dto.ExpenseResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type expenseUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	expenseRepo repository.ExpenseRepository
	audit       service.AuditService
}

func NewExpenseUsecase(db *gorm.DB, log *logrus.Logger, expenseRepo repository.ExpenseRepository, audit service.AuditService) ExpenseUsecase {
	return &expenseUsecase{
		db:          db,
		log:         log,
		expenseRepo: expenseRepo,
		audit:       audit,
	}
}

func (u *expenseUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if req.TotalCost.IsNegative() {
		return nil, ErrNegativeAmount
	}

	expense := &entity.Expense{
		Date:          date,
		Reason:        req.Reason,
		TotalCost:     req.TotalCost,
		RequesterID:   actor.ID,
		Category:      req.Category,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Status:        entity.ExpenseStatusPending,
	}

	if err := u.expenseRepo.Create(u.db.WithContext(ctx), expense); err != nil {
		u.log.Warnf("Failed to create expense: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindExpense, expense.ID.String(), converter.ExpenseToResponse(expense))

	return converter.ExpenseToResponse(expense), nil
}

func (u *expenseUsecase) GetAll(ctx context.Context, filter *entity.ExpenseFilter, params *pagination.Params) ([]dto.ExpenseResponse, int64, error) {
	expenses, total, err := u.expenseRepo.FindAll(u.db.WithContext(ctx), filter, params)
	if err != nil {
		u.log.Warnf("Failed to list expenses: %+v", err)
		return nil, 0, err
	}
	return converter.ExpensesToResponses(expenses), total, nil
}

func (u *expenseUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ExpenseResponse, error) {
	expense, err := u.expenseRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find expense: %+v", err)
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	return converter.ExpenseToResponse(expense), nil
}

// Update edits the expense body. Only pending expenses are editable; the
// approval flow goes through UpdateStatus.
func (u *expenseUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := u.expenseRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find expense: %+v", err)
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	if expense.Status != entity.ExpenseStatusPending {
		return nil, ErrExpenseNotEditable
	}

	before := converter.ExpenseToResponse(expense)

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		expense.Date = date
	}
	if req.Reason != nil {
		expense.Reason = *req.Reason
	}
	if req.TotalCost != nil {
		if req.TotalCost.IsNegative() {
			return nil, ErrNegativeAmount
		}
		expense.TotalCost = *req.TotalCost
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.PaymentMethod != nil {
		expense.PaymentMethod = *req.PaymentMethod
	}

	if err := u.expenseRepo.Update(u.db.WithContext(ctx), expense); err != nil {
		u.log.Warnf("Failed to update expense: %+v", err)
		return nil, err
	}

	after := converter.ExpenseToResponse(expense)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindExpense, expense.ID.String(), before, after)

	return after, nil
}

// UpdateStatus advances the expense state machine. Approval and rejection
// stamp the acting user and time.
func (u *expenseUsecase) UpdateStatus(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateExpenseStatusRequest) (*dto.ExpenseResponse, error) {
	expense, err := u.expenseRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find expense: %+v", err)
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	target := entity.ExpenseStatus(req.Status)
	if !expense.Status.CanTransitionTo(target) {
		return nil, &ErrIllegalExpenseTransition{From: expense.Status, To: target}
	}

	previous := expense.Status
	expense.Status = target
	if target == entity.ExpenseStatusApproved || target == entity.ExpenseStatusRejected {
		now := time.Now()
		expense.ApprovedByID = &actor.ID
		expense.ApprovedAt = &now
	}

	if err := u.expenseRepo.Update(u.db.WithContext(ctx), expense); err != nil {
		u.log.Warnf("Failed to update expense status: %+v", err)
		return nil, err
	}

	u.audit.LogStatusChange(ctx, &actor.ID, entity.EntityKindExpense, expense.ID.String(), entity.JSON{
		"status_from": string(previous),
		"status_to":   string(target),
	})

	return converter.ExpenseToResponse(expense), nil
}

func (u *expenseUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	expense, err := u.expenseRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find expense: %+v", err)
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.Status != entity.ExpenseStatusPending {
		return ErrExpenseNotEditable
	}

	if err := u.expenseRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete expense: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindExpense, id.String(), converter.ExpenseToResponse(expense))
	return nil
}
