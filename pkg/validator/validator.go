package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Validator проверяет DTO запросов по тегам `validate`
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор; в ошибках используются имена полей из json-тегов
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})

	return &Validator{validate: v}
}

// Validate проверяет структуру
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FormatErrors превращает ошибки валидации в карту поле -> сообщение
func (v *Validator) FormatErrors(err error) map[string]string {
	result := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return result
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required", "required_without":
			result[field] = "обязательное поле"
		case "email":
			result[field] = "некорректный email"
		case "min":
			result[field] = "минимальное значение " + e.Param()
		case "max":
			result[field] = "максимальное значение " + e.Param()
		case "gt":
			result[field] = "должно быть больше " + e.Param()
		case "gte":
			result[field] = "должно быть не меньше " + e.Param()
		case "lte":
			result[field] = "должно быть не больше " + e.Param()
		case "oneof":
			result[field] = "допустимые значения: " + e.Param()
		case "hhmm":
			result[field] = "ожидается время в формате HH:MM"
		case "datetime":
			result[field] = "ожидается дата в формате " + e.Param()
		default:
			result[field] = "некорректное значение"
		}
	}

	return result
}
