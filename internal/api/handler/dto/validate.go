package dto

import (
	"math"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("truthy", isTruthy); err != nil {
			panic(err)
		}
	})
	return validate
}

// isTruthy rejects "", 0, NaN and false. Nil values never reach it; the
// validator reports them as failures of the tag.
func isTruthy(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return field.Len() > 0
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field.Uint() != 0
	case reflect.Bool:
		return field.Bool()
	case reflect.Invalid:
		return false
	default:
		return true
	}
}

type ErrorResponse struct {
	Error string `json:"error" example:"Customer not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"App is working"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
