package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMinLength      = "must contain at least %s items"
	ErrMaxLength      = "must contain at most %s items"
	ErrDefaultInvalid = "is invalid"

	seatIdRgx = regexp.MustCompile(`^[A-Z][0-9]{1,3}$`)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_id", validateSeatId)

	return validator
}

// validateSeatId checks the seat identifier format (row letter followed by a
// column number, e.g. "B5"). Whether the seat exists on the showing's screen
// is checked later against the seat space.
func validateSeatId(fl validator.FieldLevel) bool {
	return seatIdRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "seat_id":
		return "must be a seat identifier like A1 or B12"
	default:
		return ErrDefaultInvalid
	}
}
