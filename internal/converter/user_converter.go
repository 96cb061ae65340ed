package converter

import (
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	privileges := make([]dto.PrivilegeGrantResponse, len(user.Privileges))
	for i, grant := range user.Privileges {
		privileges[i] = dto.PrivilegeGrantResponse{
			Module:     grant.Module,
			Operations: grant.Operations,
			GrantedBy:  grant.GrantedBy,
			GrantedAt:  grant.GrantedAt,
		}
	}

	return &dto.UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		Name:             user.Name,
		Email:            user.Email,
		UserType:         user.UserType,
		IsSuperAdmin:     user.IsSuperAdmin,
		IsActive:         user.Active(),
		TwoFactorEnabled: user.TwoFactorEnabled,
		LicenseID:        user.LicenseID,
		Privileges:       privileges,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
