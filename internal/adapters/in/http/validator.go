package http

import (
	"workshop/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
)

// BodyValidator plugs go-playground/validator into echo's ctx.Validate.
type BodyValidator struct {
	validate *validator.Validate
}

func NewBodyValidator() *BodyValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := kernel.MoneyFromString(fl.Field().String())
		return err == nil
	})
	return &BodyValidator{validate: v}
}

func (v *BodyValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
