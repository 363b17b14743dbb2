// Package validate checks request payloads before they are sent, reporting
// failures by JSON field name with English messages.
package validate

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag       = "notblank"
	strongPasswordTag = "strong_password"
)

// PasswordRuleMessage describes what StrongPassword requires.
const PasswordRuleMessage = "must be at least 8 characters and contain an uppercase letter, a lowercase letter, a digit and a special character"

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(strongPasswordTag, strongPasswordValidation)

	registerCustomValidationsTranslations(notBlankTag, strongPasswordTag)
}

// registerCustomValidationsTranslations registers messages for the custom tags.
// The default translations are already registered, so a noop register func is passed.
func registerCustomValidationsTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case strongPasswordTag:
		return fe.Field() + " " + PasswordRuleMessage
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func strongPasswordValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return StrongPassword(str)
	}
	return false
}

// StrongPassword reports whether password has 8+ characters including an
// uppercase letter, a lowercase letter, a digit and a non-alphanumeric character.
func StrongPassword(password string) bool {
	if len([]rune(password)) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// FieldErrors maps JSON field names to translated messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fe[f])
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

func (fe FieldErrors) Unwrap() error {
	return apperrors.ErrInvalidRequest
}

// Struct validates v, returning FieldErrors when any rule fails.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !apperrors.As(err, &vErrs) {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "%v", err)
	}

	fldErrs := make(FieldErrors, len(vErrs))
	for _, vErr := range vErrs {
		fldErrs[vErr.Field()] = vErr.Translate(Translator)
	}
	return fldErrs
}
