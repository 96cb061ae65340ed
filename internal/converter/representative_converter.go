package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
)

// RepresentativeToResponse converts a Representative entity to RepresentativeResponse DTO
func RepresentativeToResponse(rep *entity.Representative) *dto.RepresentativeResponse {
	if rep == nil {
		return nil
	}

	return &dto.RepresentativeResponse{
		ID:            rep.ID,
		Name:          rep.Name,
		Age:           rep.Age,
		BusinessID:    rep.BusinessID,
		PhoneNumber:   rep.PhoneNumber,
		PatientsCount: rep.PatientsCount,
		DoctorsCount:  rep.DoctorsCount,
		Notes:         rep.Notes,
		IsActive:      rep.IsActive != nil && *rep.IsActive,
		CreatedAt:     rep.CreatedAt,
		UpdatedAt:     rep.UpdatedAt,
	}
}

// RepresentativesToResponses converts a slice of Representative entities to RepresentativeResponse DTOs
func RepresentativesToResponses(reps []entity.Representative) []dto.RepresentativeResponse {
	responses := make([]dto.RepresentativeResponse, len(reps))
	for i := range reps {
		responses[i] = *RepresentativeToResponse(&reps[i])
	}
	return responses
}
