package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// ExpenseToResponse converts an Expense entity to ExpenseResponse DTO
func ExpenseToResponse(expense *entity.Expense) *dto.ExpenseResponse {
	if expense == nil {
		return nil
	}

	response := &dto.ExpenseResponse{
		ID:            expense.ID,
		Date:          expense.Date,
		Reason:        expense.Reason,
		TotalCost:     expense.TotalCost,
		RequesterID:   expense.RequesterID,
		Category:      expense.Category,
		Description:   expense.Description,
		PaymentMethod: expense.PaymentMethod,
		Status:        string(expense.Status),
		ApprovedByID:  expense.ApprovedByID,
		ApprovedAt:    expense.ApprovedAt,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     expense.UpdatedAt,
	}

	if expense.Requester.ID != uuid.Nil {
		response.Requester = UserToResponse(&expense.Requester)
	}
	if expense.ApprovedBy != nil {
		response.ApprovedBy = UserToResponse(expense.ApprovedBy)
	}

	return response
}

// ExpensesToResponses converts a slice of Expense entities to ExpenseResponse DTOs
func ExpensesToResponses(expenses []entity.Expense) []dto.ExpenseResponse {
	responses := make([]dto.ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = *ExpenseToResponse(&expenses[i])
	}
	return responses
}
