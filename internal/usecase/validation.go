package usecase

import (
	"errors"
	"fmt"
	"strings"

	"TrainBoard/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct runs the struct tags and converts failures into a
// models.ValidationError keyed by json field name.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return models.NewValidationError("", "%v", err)
	}
	out := &models.ValidationError{Fields: make([]models.FieldError, 0, len(ves))}
	for _, fe := range ves {
		field := strings.ToLower(fe.Field())
		out.Fields = append(out.Fields, models.FieldError{Field: field, Message: fieldMessage(field, fe)})
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
