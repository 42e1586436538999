package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation matches any *ValidationError via errors.Is
var ErrValidation = errors.New("validation failed")

// FieldError describes one violated constraint on one field
type FieldError struct {
	Field      string `json:"field"`                // json path, e.g. "sources[1]" or "sentiment.confidence"
	Constraint string `json:"constraint"`           // min, max, gte, lte, http_url, enum, notblank, required
	Param      string `json:"param,omitempty"`      // constraint parameter, e.g. "10" for min=10
	Value      any    `json:"-"`                    // offending value
	Message    string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError aggregates every failing field of a single record
type ValidationError struct {
	Record string       `json:"record"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	noun := "errors"
	if len(e.Fields) == 1 {
		noun = "error"
	}
	return fmt.Sprintf("%s: %d validation %s: %s", e.Record, len(e.Fields), noun, strings.Join(parts, "; "))
}

// Is reports ErrValidation as a match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Field returns the first error reported for the given field path
func (e *ValidationError) Field(path string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == path {
			return f, true
		}
	}
	return FieldError{}, false
}

// validate is safe for concurrent use; structs are cached after first use
var validate = newValidator()

type enumValue interface {
	IsValid() bool
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.IsValid()
	})

	return v
}

// check runs the declarative constraints and merges them with errors found during normalization
func check(record string, v any, pre ...FieldError) error {
	fields := append([]FieldError(nil), pre...)

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%s: %w", record, err)
		}
		for _, fe := range verrs {
			fields = append(fields, fieldErrorFrom(fe))
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Record: record, Fields: fields}
}

func fieldErrorFrom(fe validator.FieldError) FieldError {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}

	return FieldError{
		Field:      path,
		Constraint: fe.Tag(),
		Param:      fe.Param(),
		Value:      fe.Value(),
		Message:    describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	unit := "characters"
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isNumeric(fe.Kind()) {
			return "must be at least " + fe.Param()
		}
		return fmt.Sprintf("must be at least %s %s long", fe.Param(), unit)
	case "max":
		if isNumeric(fe.Kind()) {
			return "must be at most " + fe.Param()
		}
		return fmt.Sprintf("must be at most %s %s long", fe.Param(), unit)
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "http_url":
		return "must be a well-formed absolute http(s) URL"
	case "enum":
		return fmt.Sprintf("%q is not one of %s", fmt.Sprint(fe.Value()), allowedValues(fe.Value()))
	default:
		return "failed constraint " + fe.Tag()
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func allowedValues(v any) string {
	var set []string
	switch v.(type) {
	case BiasRating:
		set = stringsOf(BiasRatings)
	case CredibilityRating:
		set = stringsOf(CredibilityRatings)
	case VerificationStatus:
		set = stringsOf(VerificationStatuses)
	case SentimentLabel:
		set = stringsOf(SentimentLabels)
	}
	return "{" + strings.Join(set, ", ") + "}"
}

func stringsOf[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
