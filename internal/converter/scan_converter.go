package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
)

// ScanToResponse converts a Scan entity to ScanResponse DTO
func ScanToResponse(scan *entity.Scan) *dto.ScanResponse {
	if scan == nil {
		return nil
	}

	items := make([]dto.ScanItemResponse, len(scan.Items))
	for i, item := range scan.Items {
		items[i] = dto.ScanItemResponse{
			Name:     item.Name,
			Quantity: item.Quantity,
		}
	}

	return &dto.ScanResponse{
		ID:         scan.ID,
		Name:       scan.Name,
		ActualCost: scan.ActualCost,
		MinPrice:   scan.MinPrice,
		Items:      items,
		Images:     scan.Images,
		IsActive:   scan.Active(),
		CreatedAt:  scan.CreatedAt,
		UpdatedAt:  scan.UpdatedAt,
	}
}

// ScansToResponses converts a slice of Scan entities to ScanResponse DTOs
func ScansToResponses(scans []entity.Scan) []dto.ScanResponse {
	responses := make([]dto.ScanResponse, len(scans))
	for i := range scans {
		responses[i] = *ScanToResponse(&scans[i])
	}
	return responses
}
