package shared

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|webp|gif)$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process-wide validator used for domain records.
// Field names in violations follow the json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		RegisterRules(validate)
	})
	return validate
}

// RegisterRules installs tag-name, custom-type and custom-rule hooks on v.
// The HTTP layer reuses it for gin's binding validator.
func RegisterRules(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return imageURLPattern.MatchString(fl.Field().String())
	})
}

// Validate runs struct rules on v and converts failures into a
// VALIDATION_ERROR domain error listing every violation.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return ValidationFailed(fieldErrs)
}

// ValidationFailed converts validator errors into a domain error
func ValidationFailed(fieldErrs validator.ValidationErrors) *DomainError {
	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field:   FieldPath(fe),
			Message: ValidationMessage(fe),
		})
	}
	return &DomainError{
		Code:       CodeValidation,
		Message:    "Validation error",
		Violations: violations,
	}
}

// FieldPath returns the dotted json path of a failed field without the
// root struct name, e.g. "address.zipCode" or "images[1]".
func FieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// ValidationMessage returns a human-readable validation message
func ValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please provide a valid email"
	case "imageurl":
		return "Please provide a valid image URL"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gtefield":
		return "Must not be before " + e.Param()
	case "url":
		return "Invalid URL format"
	default:
		return "Invalid value"
	}
}
