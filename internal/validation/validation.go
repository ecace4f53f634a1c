// Package validation decodes request bodies and checks them against their
// binding rules.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrEmptyBody is returned when the request has no body or the body is a
// JSON null.
var ErrEmptyBody = errors.New("empty request body")

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	}
}

// jsonTagName reports fields by their JSON name.
func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

type fieldError struct {
	field   string
	rule    string
	message string
}

// DecodeJSON reads the body into dst without applying binding rules.
func DecodeJSON(c *gin.Context, dst any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// Struct applies the `binding` tags of v using gin's validator.
func Struct(v any) error {
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(v)
}

// fields converts a validation error into per-field descriptions. Errors
// that are not validation errors yield a single syntax entry.
func fields(err error) []fieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{rule: "syntax", message: err.Error()}}
	}

	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		jsonField := toJSONFieldName(fe.Field())
		out = append(out, fieldError{
			field:   jsonField,
			rule:    fe.Tag(),
			message: buildMessage(jsonField, fe),
		})
	}
	return out
}

// Summary joins the field messages of err for logging.
func Summary(err error) string {
	fes := fields(err)
	msgs := make([]string, 0, len(fes))
	for _, f := range fes {
		msgs = append(msgs, f.message)
	}
	return strings.Join(msgs, "; ")
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
