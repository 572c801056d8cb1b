package impl

import (
	domainerrors "fieldops/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals
var inputValidator = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tag validation and maps failures to VALIDATION_ERROR.
func validateInput(input any) error {
	if err := inputValidator.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
