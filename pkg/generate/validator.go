package generate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// nameCheck wraps a normalized name so that it can be validated with struct
// tags.
type nameCheck struct {
	Name string `validate:"required,projectname"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// cannot fail: the tag is non-empty and the function non-nil
	_ = v.RegisterValidation("projectname", func(fl validator.FieldLevel) bool {
		return IsValidProjectName(fl.Field().String())
	})

	return v
}

// IsValidProjectName reports whether name can be used as the name of a
// single directory inside the destination.
func IsValidProjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, "/\\\x00")
}

func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	ret := make(ValidationErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		ret = append(ret, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}

	return ret
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "projectname":
		return fmt.Sprintf("%q cannot be used as a directory name", fe.Value())
	default:
		return fe.Error()
	}
}
