package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RequestValidationError carries the first failed field so the error
// middleware can map it to a 422.
type RequestValidationError struct {
	Field string
	Tag   string
}

func (e *RequestValidationError) Error() string {
	return fmt.Sprintf("field %s failed validation on %s", e.Field, e.Tag)
}

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &RequestValidationError{
				Field: errs[0].Field(),
				Tag:   errs[0].Tag(),
			}
		}
		return err
	}
	return nil
}
