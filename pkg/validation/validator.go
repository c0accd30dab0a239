package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Op selects which presence rules apply to a payload.
type Op int

const (
	// Create requires every field.
	Create Op = iota
	// Update accepts any subset of fields.
	Update
)

// FieldError is the first violation found in a payload.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Rule checks one decoded field. It returns nil when the field is acceptable.
type Rule func(v *validator.Validate, op Op) *FieldError

// Field builds a Rule for a decoded field. A nil value means the client did
// not send it (or sent null): rejected on Create, skipped on Update. Present
// values are checked against tags using validator syntax.
func Field[T any](name string, value *T, tags string) Rule {
	return func(v *validator.Validate, op Op) *FieldError {
		if value == nil {
			if op == Create {
				return &FieldError{Field: name, Reason: "is required"}
			}
			return nil
		}
		if tags == "" {
			return nil
		}
		err := v.Var(*value, tags)
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &FieldError{Field: name, Reason: formatFieldError(verrs[0])}
		}
		return &FieldError{Field: name, Reason: "is invalid"}
	}
}

// Validator runs rules in order and stops at the first failure.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// maxbytes bounds the encoded length of a string; max counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	})
	return &Validator{v: v}
}

// Check returns a *FieldError for the first rule that fails, or nil.
func (x *Validator) Check(op Op, rules ...Rule) error {
	for _, r := range rules {
		if fe := r(x.v, op); fe != nil {
			return fe
		}
	}
	return nil
}

// Decode unmarshals a JSON object into dst. An empty body decodes as {} so
// that presence rules report the missing field. Malformed JSON is reported on
// the "payload" field; a type mismatch names the offending field.
func Decode(raw []byte, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if ute.Field == "" {
			return &FieldError{Field: "payload", Reason: "must be a JSON object"}
		}
		return &FieldError{Field: ute.Field, Reason: "must be " + typeName(ute.Type)}
	}
	return &FieldError{Field: "payload", Reason: "invalid json"}
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case t.Kind() == reflect.String:
		return "a string"
	case isIntegerKind(t.Kind()):
		return "an integer"
	case isNumberKind(t.Kind()):
		return "a number"
	case t.Kind() == reflect.Bool:
		return "a boolean"
	default:
		return "of type " + t.String()
	}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "maxbytes":
		return "must be at most " + param + " bytes long"
	case "gt":
		return "must be greater than " + param
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isNumberKind(k reflect.Kind) bool {
	return isIntegerKind(k) || k == reflect.Float32 || k == reflect.Float64
}
