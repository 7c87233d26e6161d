package goform

import "reflect"

// defaultFalseValues are the raw strings a checkbox submits (or omits)
// when unchecked.
var defaultFalseValues = []string{"false", ""}

// BooleanField implements checkbox semantics: a key absent from the wire
// payload means unchecked, not "no opinion". Callers cannot distinguish
// "field omitted" from "explicitly unchecked"; that is intentional.
type BooleanField struct {
	BaseField

	falseValues []string
}

func (f *BooleanField) ProcessData(value any) { f.data = truthy(value) }

func (f *BooleanField) ProcessFormdata(values []string) error {
	if len(values) == 0 || f.isFalseValue(values[0]) {
		f.data = false
	} else {
		f.data = true
	}
	return nil
}

func (f *BooleanField) isFalseValue(raw string) bool {
	for _, v := range f.falseValues {
		if raw == v {
			return true
		}
	}
	return false
}

func (f *BooleanField) Value() string {
	if len(f.rawData) > 0 {
		return f.rawData[0]
	}
	return "y"
}

// Boolean declares a checkbox field. WithFalseValues replaces the raw
// strings read as false (default {"false", ""}).
func Boolean(opts ...Option) *UnboundField {
	return newUnbound("boolean", opts, newBooleanField)
}

// Submit declares a field reporting whether a given submit button was
// pressed.
func Submit(opts ...Option) *UnboundField {
	return newUnbound("submit", opts, newBooleanField)
}

func newBooleanField(cfg *fieldConfig) (Field, error) {
	f := &BooleanField{falseValues: defaultFalseValues}
	if cfg.falseValuesSet {
		f.falseValues = append([]string(nil), cfg.falseValues...)
	}
	return f, nil
}

// truthy mirrors generic truthiness for object-supplied data: nil, false,
// zero numbers, empty strings and empty containers are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if IsUnset(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return !rv.IsZero()
}
