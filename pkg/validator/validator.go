// Package validator wraps go-playground/validator with the project's custom
// rules and translated error messages.
package validator

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/caseworks/casegate/pkg/authz"
)

// Validator validates request structs using json tag names in messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	global *Validator
	once   sync.Once
)

// Global returns the process-wide validator, initialized on first use.
func Global() *Validator {
	once.Do(func() {
		global = New()
	})
	return global
}

// slugPattern covers user, program and client identifiers: lowercase
// alphanumerics with internal dashes or underscores.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// New creates a validator with the project's custom rules registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	uni := ut.New(en.New())
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	out := &Validator{validate: v, trans: trans}
	out.mustRule("slug", validSlug, "{0} must be a lowercase identifier")
	out.mustRule("permkey", validPermissionKey, "{0} must be a registered permission key")
	out.mustRule("role", validRole, "{0} must be a declared role")
	return out
}

// validSlug accepts identifiers and the explicit org-wide context marker.
func validSlug(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == authz.GlobalContext || slugPattern.MatchString(s)
}

func validPermissionKey(fl validator.FieldLevel) bool {
	return authz.IsRegistered(authz.Key(fl.Field().String()))
}

func validRole(fl validator.FieldLevel) bool {
	return authz.Role(fl.Field().String()).Valid()
}

func (v *Validator) mustRule(tag string, fn validator.Func, message string) {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
	_ = v.validate.RegisterTranslation(tag, v.trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		},
	)
}

// Struct validates a request struct, returning translated field errors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &ValidationErrors{}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fe.Translate(v.trans),
		})
	}
	return out
}

// Struct validates s with the global validator.
func Struct(s interface{}) error {
	return Global().Struct(s)
}

// ValidationErrors is a collection of field validation failures.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// FieldError is one field's validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if v == nil || len(v.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(v.Errors))
	for i, fe := range v.Errors {
		msgs[i] = fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
