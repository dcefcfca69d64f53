package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CURPPattern is the fixed 18-character format of a CURP.
var CURPPattern = regexp.MustCompile(`^[A-Z]{4}\d{6}[HM][A-Z]{5}[A-Z0-9]{2}$`)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// RegisterCustomTags adds the curp and phone_mx tags to gin's binding validator.
func RegisterCustomTags() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("curp", func(fl validator.FieldLevel) bool {
		return CURPPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone_mx", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "email":
		return fmt.Sprintf("%s debe ser un correo válido", field)
	case "curp":
		return "Formato de CURP inválido"
	case "phone_mx":
		return fmt.Sprintf("%s debe tener 10 dígitos", field)
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe ser a lo más %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"CURP":              "CURP",
		"Password":          "Contraseña",
		"PasswordConfirm":   "Confirmación de contraseña",
		"Nombre":            "Nombre",
		"ApellidoPaterno":   "Apellido paterno",
		"ApellidoMaterno":   "Apellido materno",
		"Telefono":          "Teléfono",
		"Correo":            "Correo",
		"Promedio":          "Promedio",
		"Carrera":           "Carrera",
		"DiagnosticoMedico": "Diagnóstico médico",
		"TipoEducacion":     "Tipo de educación",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
