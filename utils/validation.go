package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"guate-servicios/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// RegisterValidation installs RegisterRules on gin's validator.
func RegisterValidation() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			RegisterRules(v)
		}
	})
}

// RegisterRules makes v report JSON field names ("technicianId") and adds
// the notblank tag, which rejects whitespace-only strings.
func RegisterRules(v *validator.Validate) {
	v.RegisterTagNameFunc(JSONTagName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidationErrors turns a binding error into per-field messages.
func ValidationErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]models.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, models.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []models.FieldError{{Field: typeErr.Field, Message: "Tipo de dato inválido"}}
	}

	return []models.FieldError{{Field: "body", Message: "Cuerpo de la petición inválido"}}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	numeric := isNumeric(fe.Kind())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es requerido", field)
	case "notblank":
		return fmt.Sprintf("El campo %s no puede estar vacío", field)
	case "email":
		return "Debe ser un email válido"
	case "min":
		if numeric {
			return fmt.Sprintf("El campo %s debe ser al menos %s", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", field, fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("El campo %s debe ser como máximo %s", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe tener como máximo %s caracteres", field, fe.Param())
	case "gt":
		return fmt.Sprintf("El campo %s debe ser mayor que %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("El campo %s debe ser mayor o igual a %s", field, fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido", field)
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
