package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// genresMaxLen matches the width of the genres column.
const genresMaxLen = 120

// Validator plugs go-playground/validator into echo's Validator hook.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := strings.Split(f.Tag.Get("form"), ",")[0]; name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("showtime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("genres", func(fl validator.FieldLevel) bool {
		genres, ok := fl.Field().Interface().([]string)
		if !ok {
			return false
		}
		return len(strings.Join(genres, ",")) <= genresMaxLen
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	if err := cv.v.Struct(i); err != nil {
		return describe(err)
	}
	return nil
}

// describe flattens validator errors into one readable message.
func describe(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gt":
			msgs = append(msgs, field+" must be a positive id")
		case "url":
			msgs = append(msgs, field+" must be a valid URL")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "showtime":
			msgs = append(msgs, field+" must be a date and time such as 2023-01-01T20:00:00")
		case "genres":
			msgs = append(msgs, fmt.Sprintf("genres must fit in %d characters", genresMaxLen))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
