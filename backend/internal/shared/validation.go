package shared

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	notBlankTag         = "notblank"
	phoneTag            = "phone"
	employmentStatusTag = "employment_status"

	phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError carries every failed field of a payload.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

// NewValidationError wraps err with the failing fields.
func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return "validation failed"
	}
	return err.Err.Error()
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// IsValidationError reports whether err (or anything it wraps) is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func init() {
	validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	_ = validate.RegisterValidation(employmentStatusTag, employmentStatusValidation)

	registerCustomValidationsTranslations(notBlankTag, phoneTag, employmentStatusTag)
}

// Check validates a struct against its `validate` tags and converts failures
// into a *ValidationError keyed by JSON field name.
func Check(val interface{}) error {
	if err := validate.Struct(val); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}

		fields := make([]FieldError, 0, len(verrs))
		for _, verr := range verrs {
			fields = append(fields, FieldError{
				Field: verr.Field(),
				Error: verr.Translate(translator),
			})
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return NewValidationError(errors.New("data validation failed"), fields...)
	}
	return nil
}

// registerCustomValidationsTranslations registers error messages for custom validations.
// The default translations are already registered, so a noop register func is passed.
func registerCustomValidationsTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case phoneTag:
		return "invalid phone number format"
	case employmentStatusTag:
		return "must be one of Active, On Leave, Retired"
	default:
		return ""
	}
}

// Custom Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func phoneValidation(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func employmentStatusValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case EmploymentActive, EmploymentOnLeave, EmploymentRetired:
		return true
	}
	return false
}
