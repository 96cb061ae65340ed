package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                    doctor.ID,
		Name:                  doctor.Name,
		Specialization:        doctor.Specialization,
		LicenseNumber:         doctor.LicenseNumber,
		ContactNumber:         doctor.ContactNumber,
		TotalPatientsReferred: doctor.TotalPatientsReferred,
		TotalScansReferred:    doctor.TotalScansReferred,
		RepresentativeID:      doctor.RepresentativeID,
		IsActive:              doctor.Active(),
		CreatedAt:             doctor.CreatedAt,
		UpdatedAt:             doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
