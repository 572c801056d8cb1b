// Package validator adapts go-playground/validator to echo.
package validator

import (
	domainerrors "fieldops/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with required-struct checks enabled
func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate runs struct tag validation and reports failures as VALIDATION_ERROR
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
