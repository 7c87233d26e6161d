// Package validators supplies the stock validator set for goform fields.
//
// Every constructor returns a goform.Validator. Validators report through
// the returned result: a failure message is appended to the field's
// errors and, for the required/optional family, halts the rest of the
// chain. Each constructor accepts an optional custom message that
// replaces the translated default.
package validators

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/reoring/goform"
)

func pick(message []string, fallback string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return fallback
}

// DataRequired checks that the field's coerced data is set and truthy.
// Unlike InputRequired it looks at the post-coercion value, so a checkbox
// submitted as false or a string filtered down to "" fails. Failure halts
// the chain.
func DataRequired(message ...string) goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		if dataPresent(field.Data()) {
			return goform.Passed()
		}
		return goform.Stopped(pick(message, field.Gettext("This field is required.")))
	}
}

// InputRequired checks that raw wire input was supplied for the field,
// regardless of how it coerced. Failure halts the chain.
func InputRequired(message ...string) goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		raw := field.RawData()
		if len(raw) > 0 && raw[0] != "" {
			return goform.Passed()
		}
		return goform.Stopped(pick(message, field.Gettext("This field is required.")))
	}
}

// Optional halts the chain without an error when the field received no
// input, or only whitespace. Place it first so the remaining validators
// apply only to filled-in fields.
func Optional() goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		raw := field.RawData()
		if len(raw) == 0 || strings.TrimSpace(raw[0]) == "" {
			return goform.Stopped("")
		}
		return goform.Passed()
	}
}

// Length validates the length of the field's string data. Pass -1 to
// leave an end unbounded; at least one bound must be set and the bounds
// must be consistent, otherwise the constructor panics.
func Length(min, max int, message ...string) goform.Validator {
	if min == -1 && max == -1 {
		panic(fmt.Sprintf("validators: length requires at least one bound, got min=%d max=%d", min, max))
	}
	if max != -1 && min > max {
		panic(fmt.Sprintf("validators: length bounds are inverted, got min=%d max=%d", min, max))
	}
	return func(form *goform.Form, field goform.Field) goform.Result {
		s, _ := field.Data().(string)
		n := len([]rune(s))
		if (min == -1 || n >= min) && (max == -1 || n <= max) {
			return goform.Passed()
		}
		if len(message) > 0 && message[0] != "" {
			return goform.Failed(message[0])
		}
		switch {
		case max == -1:
			return goform.Failed(fmt.Sprintf(field.Ngettext(
				"Field must be at least %d character long.",
				"Field must be at least %d characters long.", min), min))
		case min == -1:
			return goform.Failed(fmt.Sprintf(field.Ngettext(
				"Field cannot be longer than %d character.",
				"Field cannot be longer than %d characters.", max), max))
		case min == max:
			return goform.Failed(fmt.Sprintf(field.Ngettext(
				"Field must be exactly %d character long.",
				"Field must be exactly %d characters long.", max), max))
		default:
			return goform.Failed(fmt.Sprintf(
				field.Gettext("Field must be between %d and %d characters long."), min, max))
		}
	}
}

// NumberRange validates that numeric data falls within [min, max]. Use
// math.Inf(-1) or math.Inf(1) to leave an end unbounded. Non-numeric or
// NaN data fails.
func NumberRange(min, max float64, message ...string) goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		v, ok := toFloat(field.Data())
		if ok && !math.IsNaN(v) && v >= min && v <= max {
			return goform.Passed()
		}
		if len(message) > 0 && message[0] != "" {
			return goform.Failed(message[0])
		}
		switch {
		case math.IsInf(max, 1):
			return goform.Failed(fmt.Sprintf(field.Gettext("Number must be at least %v."), min))
		case math.IsInf(min, -1):
			return goform.Failed(fmt.Sprintf(field.Gettext("Number must be at most %v."), max))
		default:
			return goform.Failed(fmt.Sprintf(field.Gettext("Number must be between %v and %v."), min, max))
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case decimal.Decimal:
		f, _ := t.Float64()
		return f, true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// EqualTo compares the field's data to that of another field on the same
// form, by declared name. Useful for password confirmation.
func EqualTo(fieldName string, message ...string) goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		other := form.Field(fieldName)
		if other == nil {
			return goform.Failed(fmt.Sprintf(field.Gettext("Invalid field name '%s'."), fieldName))
		}
		if reflect.DeepEqual(field.Data(), other.Data()) {
			return goform.Passed()
		}
		if len(message) > 0 && message[0] != "" {
			return goform.Failed(message[0])
		}
		label := other.Label()
		if label == "" {
			label = fieldName
		}
		return goform.Failed(fmt.Sprintf(field.Gettext("Field must be equal to %s."), label))
	}
}

// Regexp validates the field's string data against a compiled pattern,
// anchored at the start. Non-string data fails.
func Regexp(re *regexp.Regexp, message ...string) goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		s, ok := field.Data().(string)
		if ok {
			loc := re.FindStringIndex(s)
			if loc != nil && loc[0] == 0 {
				return goform.Passed()
			}
		}
		return goform.Failed(pick(message, field.Gettext("Invalid input.")))
	}
}

// AnyOf validates that the field's data is one of the given values.
func AnyOf(values []any, message ...string) goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		for _, v := range values {
			if reflect.DeepEqual(field.Data(), v) {
				return goform.Passed()
			}
		}
		if len(message) > 0 && message[0] != "" {
			return goform.Failed(message[0])
		}
		return goform.Failed(fmt.Sprintf(
			field.Gettext("Invalid value, must be one of: %s."), joinValues(values)))
	}
}

// NoneOf validates that the field's data is none of the given values.
func NoneOf(values []any, message ...string) goform.Validator {
	return func(form *goform.Form, field goform.Field) goform.Result {
		for _, v := range values {
			if reflect.DeepEqual(field.Data(), v) {
				if len(message) > 0 && message[0] != "" {
					return goform.Failed(message[0])
				}
				return goform.Failed(fmt.Sprintf(
					field.Gettext("Invalid value, can't be any of: %s."), joinValues(values)))
			}
		}
		return goform.Passed()
	}
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// dataPresent mirrors the truthiness test DataRequired applies: nil,
// false, empty strings and empty collections are absent; whitespace-only
// strings are absent too.
func dataPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case bool:
		return t
	}
	if goform.IsUnset(v) {
		return false
	}
	if d, ok := v.(decimal.Decimal); ok {
		return !d.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
