// Package inputval validates decoded request payloads with struct tags.
//
// Payload structs use `validate` tags for rules and an optional `label` tag
// for the name shown in messages:
//
//	type createUserInput struct {
//		Username string `json:"username" validate:"required,min=3,max=50" label:"Username"`
//		Email    string `json:"email" validate:"required,email" label:"Email"`
//	}
//
// Custom rules: objectid, role, submissionstatus, password.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects validation failures.
type Result struct {
	Errors []FieldError
}

func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All returns every message.
func (r Result) All() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return models.ValidID(fl.Field().String())
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return models.IsValidRole(fl.Field().String())
		})
		_ = v.RegisterValidation("submissionstatus", func(fl validator.FieldLevel) bool {
			return models.SubmissionStatus(fl.Field().String()).Valid()
		})
		// bcrypt limit is in bytes, not runes.
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= passwords.MaxBytes
		})
		validate = v
	})
	return validate
}

// Validate runs the struct's tag rules.
func Validate(s any) Result {
	err := instance().Struct(s)
	if err == nil {
		return Result{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []FieldError{{Message: err.Error()}}}
	}
	res := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s items", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", label, fe.Param())
	case "email":
		return label + " must be a valid email address"
	case "objectid":
		return "Invalid " + label + " format"
	case "role":
		return "Invalid role. Must be one of: " + strings.Join(models.AllRoles, ", ")
	case "password":
		return fmt.Sprintf("%s must be at most %d bytes", label, passwords.MaxBytes)
	case "submissionstatus":
		return "Invalid status. Must be one of: " + strings.Join(models.SubmissionStatusStrings(), ", ")
	}
	return label + " is invalid"
}

// IsValidEmail reports whether s is a plain addr-spec email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return instance().Var(s, "email") == nil
}
