// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "pbl/internal/platform/errors"
	"pbl/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel is re-exported so callers registering tags skip the validator import
type FieldLevel = validator.FieldLevel

type svc struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	vs   *svc
)

func get() *svc {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		translate(v, trans, "min", "{0} must be at least {1} characters")
		translate(v, trans, "max", "{0} must be at most {1} characters")

		vs = &svc{v: v, trans: trans}
	})
	return vs
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// RegisterValidation adds a custom tag with its English message; {0} in msg
// is the json field name
func RegisterValidation(tag string, fn func(FieldLevel) bool, msg string) error {
	s := get()
	if err := s.v.RegisterValidation(tag, fn); err != nil {
		return err
	}
	translate(s.v, s.trans, tag, msg)
	return nil
}

// Validate runs struct validation on v and maps the first failure to a
// Validation error carrying the field name
func Validate(v any) error {
	err := get().v.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Named("bind").Error().Err(inv).Msg("validator misuse")
		return perr.Internalf("validation unavailable")
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.Validationf("%s", fe.Translate(get().trans)), fe.Field())
	}
	return perr.Validationf("%s", err.Error())
}

// Options controls ParseJSON
type Options struct {
	MaxBytes     int64 // 0 means 64KiB
	AllowUnknown bool
	AllowEmpty   bool
}

// ParseJSON decodes one JSON value into T and validates it. Bodies are capped,
// unknown fields and trailing data are rejected
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero, dst T
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 64 << 10
	}
	if r.Body == nil {
		r.Body = http.NoBody
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, o.MaxBytes))
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			if o.AllowEmpty {
				return dst, Validate(dst)
			}
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
