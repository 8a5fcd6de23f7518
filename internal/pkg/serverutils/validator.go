package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and maps failures to a 400.
func ValidateRequest(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		return NewBadRequestError(err.Error())
	}
	return nil
}
