package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:               patient.ID,
		Name:             patient.Name,
		DateOfBirth:      patient.DateOfBirth,
		Gender:           patient.Gender,
		PhoneNumber:      patient.PhoneNumber,
		SocialNumber:     patient.SocialNumber,
		DoctorReferredID: patient.DoctorReferredID,
		RepresentativeID: patient.RepresentativeID,
		MedicalHistory:   patient.MedicalHistory,
		Address:          patient.Address,
		IsActive:         patient.IsActive != nil && *patient.IsActive,
		CreatedAt:        patient.CreatedAt,
		UpdatedAt:        patient.UpdatedAt,
	}

	// Include relations when preloaded
	if patient.DoctorReferred.ID != uuid.Nil {
		response.DoctorReferred = DoctorToResponse(&patient.DoctorReferred)
	}
	if patient.Representative != nil {
		response.Representative = RepresentativeToResponse(patient.Representative)
	}

	return response
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
