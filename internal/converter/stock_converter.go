package converter

import (
	"time"

	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// StockItemToResponse converts a StockItem entity to StockItemResponse DTO
func StockItemToResponse(item *entity.StockItem) *dto.StockItemResponse {
	if item == nil {
		return nil
	}

	response := &dto.StockItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		BranchID:         item.BranchID,
		Quantity:         item.Quantity,
		MinimumThreshold: item.MinimumThreshold,
		Price:            item.Price,
		ValidUntil:       item.ValidUntil,
		IsActive:         item.IsActive != nil && *item.IsActive,
		LowStock:         item.LowStock(),
		Expired:          item.Expired(time.Now()),
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}

	if item.Branch.ID != uuid.Nil {
		response.Branch = BranchToResponse(&item.Branch)
	}

	return response
}

// StockItemsToResponses converts a slice of StockItem entities to StockItemResponse DTOs
func StockItemsToResponses(items []entity.StockItem) []dto.StockItemResponse {
	responses := make([]dto.StockItemResponse, len(items))
	for i := range items {
		responses[i] = *StockItemToResponse(&items[i])
	}
	return responses
}
