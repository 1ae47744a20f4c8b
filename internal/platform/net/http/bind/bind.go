// Package bind decodes JSON request bodies and validates them with go-playground/validator
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "feedbackd/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// JSONOptions controls how a body is read
type JSONOptions struct {
	MaxBytes        int64 // <= 0 means no cap
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultJSONOptions is the strict profile used when ParseJSON gets no options
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

// shortMessages replace the stock english text for these tags
var shortMessages = map[string]string{
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"notblank": "{0} must not be blank",
}

var checks = sync.OnceValue(func() *checker {
	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(v, trans)
	for tag, text := range shortMessages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field(), fe.Param())
				return msg
			},
		)
	}
	return &checker{v: v, trans: trans}
})

// jsonName reports fields by their json key so messages match the wire
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// RegisterValidation installs a custom tag on the shared validator
func RegisterValidation(tag string, fn validator.Func) error {
	return checks().v.RegisterValidation(tag, fn)
}

// NotBlank turns a blank predicate into a validator.Func; non string fields always fail
func NotBlank(blank func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.Kind() == reflect.String && !blank(f.String())
	}
}

// ParseJSON decodes one JSON object from r into T and validates it
// decode problems are ErrorCodeJSON, validation failures ErrorCodeValidation with the field attached
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var out T
	o := DefaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}

	body, err := readBody(r, o.MaxBytes)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if o.AllowEmptyBody || safeMethod(r.Method) {
			return out, nil
		}
		return out, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		return out, perr.Wrap(err, perr.ErrorCodeJSON, "invalid JSON")
	}
	if dec.More() {
		return out, perr.JSONErrf("unexpected data after the JSON value")
	}

	if reflect.Indirect(reflect.ValueOf(&out)).Kind() != reflect.Struct {
		return out, perr.JSONErrf("body must be a JSON object")
	}
	if err := checks().v.Struct(out); err != nil {
		field, msg := violation(err)
		return out, perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
	}
	return out, nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer func() { _ = r.Body.Close() }()

	src := io.Reader(r.Body)
	if limit > 0 {
		src = io.LimitReader(r.Body, limit+1)
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "read body")
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, perr.JSONErrf("body exceeds %d bytes", limit)
	}
	return b, nil
}

func safeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// violation returns the first failing field and its translated message
func violation(err error) (field, msg string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(checks().trans)
	}
	return "", err.Error()
}
