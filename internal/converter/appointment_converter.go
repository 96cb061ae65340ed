package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	scans := make([]dto.AppointmentScanResponse, len(appointment.Scans))
	for i, line := range appointment.Scans {
		scans[i] = dto.AppointmentScanResponse{
			ScanID:   line.ScanID,
			Quantity: line.Quantity,
		}
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		RadiologistID:      appointment.RadiologistID,
		BranchID:           appointment.BranchID,
		PatientID:          appointment.PatientID,
		Scans:              scans,
		Cost:               appointment.Cost,
		Price:              appointment.Price,
		Profit:             appointment.Profit,
		ReferredByID:       appointment.ReferredByID,
		RepresentativeID:   appointment.RepresentativeID,
		ScheduledAt:        appointment.ScheduledAt,
		Status:             string(appointment.Status),
		Priority:           appointment.Priority,
		Notes:              appointment.Notes,
		PDFReport:          appointment.PDFReport,
		MakeHugeSale:       appointment.MakeHugeSale,
		CustomPrice:        appointment.CustomPrice,
		CancelledAt:        appointment.CancelledAt,
		CancelledByID:      appointment.CancelledByID,
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	// Include relations when preloaded
	if appointment.Radiologist.ID != uuid.Nil {
		response.Radiologist = UserToResponse(&appointment.Radiologist)
	}
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Branch.ID != uuid.Nil {
		response.Branch = BranchToResponse(&appointment.Branch)
	}
	if appointment.ReferredBy.ID != uuid.Nil {
		response.ReferredBy = DoctorToResponse(&appointment.ReferredBy)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
