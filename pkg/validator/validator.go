package validator

import (
	"radlab-backoffice/pkg/response"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) []response.FieldError {
	var errors []response.FieldError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			var message string
			switch e.Tag() {
			case "required":
				message = field + " is required"
			case "email":
				message = field + " must be a valid email address"
			case "min":
				message = field + " must be at least " + e.Param()
			case "max":
				message = field + " must be at most " + e.Param()
			case "gte":
				message = field + " must be greater than or equal to " + e.Param()
			case "lte":
				message = field + " must be less than or equal to " + e.Param()
			case "gt":
				message = field + " must be greater than " + e.Param()
			case "oneof":
				message = field + " must be one of: " + e.Param()
			case "uuid":
				message = field + " must be a valid id"
			default:
				message = field + " is invalid"
			}
			errors = append(errors, response.FieldError{Field: field, Message: message})
		}
	}

	return errors
}
