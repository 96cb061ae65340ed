package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
)

// BranchToResponse converts a Branch entity to BranchResponse DTO
func BranchToResponse(branch *entity.Branch) *dto.BranchResponse {
	if branch == nil {
		return nil
	}

	return &dto.BranchResponse{
		ID:        branch.ID,
		Name:      branch.Name,
		Location:  branch.Location,
		Address:   branch.Address,
		Phone:     branch.Phone,
		Email:     branch.Email,
		Manager:   branch.Manager,
		IsActive:  branch.IsActive != nil && *branch.IsActive,
		CreatedAt: branch.CreatedAt,
		UpdatedAt: branch.UpdatedAt,
	}
}

// BranchesToResponses converts a slice of Branch entities to BranchResponse DTOs
func BranchesToResponses(branches []entity.Branch) []dto.BranchResponse {
	responses := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		responses[i] = *BranchToResponse(&branches[i])
	}
	return responses
}
