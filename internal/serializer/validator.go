// Package serializer validates request payloads and shapes entities for output.
package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"rentapp_backend/internal/model"
)

const maxPrice = 1e8

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// errors report JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "notblank", notBlankField)
	mustRegister(v, "digits", digitsField)
	mustRegister(v, "price", priceField)
	mustRegister(v, "weburl", webURLField)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// Non-empty after trimming whitespace
func notBlankField(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Only 0-9; the empty string passes so an optional value can be cleared
func digitsField(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// Positive, at most two decimals, fits numeric(10,2)
func priceField(fl validator.FieldLevel) bool {
	p := fl.Field().Float()
	if p <= 0 || p >= maxPrice || math.IsNaN(p) || math.IsInf(p, 0) {
		return false
	}
	cents := p * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

var webSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "ftps": true}

// Absolute web URL with a host; javascript:, file:, mailto: and friends fail
func webURLField(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return webSchemes[strings.ToLower(u.Scheme)] && u.Host != ""
}

// Validate runs the struct tags and returns the first failure as a validation error.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return model.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	return model.NewValidationError(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s cannot be empty", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid absolute URL", field)
	case "weburl":
		return fmt.Sprintf("%s must be an http(s) or ftp(s) URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "digits":
		return fmt.Sprintf("%s must contain only digits", field)
	case "price":
		return fmt.Sprintf("%s must be greater than 0 with at most two decimal places", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Bind decodes a JSON object into v and also returns the raw keys, so callers
// can tell an omitted field from a zero one.
func Bind(body []byte, v interface{}) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, model.NewValidationError("", "Request body must be a JSON object")
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, model.NewValidationError(typeErr.Field, fmt.Sprintf("%s has the wrong type", typeErr.Field))
		}
		return nil, model.NewValidationError("", "Request body must be a JSON object")
	}
	return raw, nil
}

// RejectFields fails when the payload tries to set any of the given server-managed keys.
func RejectFields(body map[string]json.RawMessage, keys ...string) error {
	var present []string
	for _, key := range keys {
		if _, ok := body[key]; ok {
			present = append(present, key)
		}
	}
	if len(present) == 0 {
		return nil
	}
	sort.Strings(present)
	return model.NewValidationError(present[0], fmt.Sprintf("%s cannot be set by the client", present[0]))
}
