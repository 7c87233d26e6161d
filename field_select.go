package goform

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Choice is one (value, label) pair of a choice field.
type Choice struct {
	Value string
	Label string
}

// ChoiceOption is the on-demand presentation view over a choice: its
// value, label, and whether the field's current data selects it. It is
// derived, never persisted.
type ChoiceOption struct {
	Value    string
	Label    string
	Selected bool
}

// SelectField binds one value constrained to a declared choice set. The
// coerce function converts raw wire strings (and stringified object data)
// to the domain value compared against the choices.
type SelectField struct {
	BaseField

	choices []Choice
	coerce  Coerce
}

// Choices returns the declared (value, label) pairs.
func (f *SelectField) Choices() []Choice { return f.choices }

// SetChoices replaces the choice set, e.g. for per-request option lists.
func (f *SelectField) SetChoices(choices []Choice) {
	f.choices = append([]Choice(nil), choices...)
}

func (f *SelectField) ProcessData(value any) {
	if value == nil || IsUnset(value) {
		f.data = nil
		return
	}
	v, err := f.coerce(fmt.Sprint(value))
	if err != nil {
		f.data = nil
		return
	}
	f.data = v
}

func (f *SelectField) ProcessFormdata(values []string) error {
	if len(values) == 0 {
		return nil
	}
	v, err := f.coerce(values[0])
	if err != nil {
		// Prior data is deliberately left in place on coercion failure;
		// see the package tests pinning this behavior.
		return errors.New(f.Gettext("Invalid Choice: could not coerce"))
	}
	f.data = v
	return nil
}

func (f *SelectField) PreValidate(form *Form) Result {
	for _, c := range f.choices {
		cv, err := f.coerce(c.Value)
		if err != nil {
			continue
		}
		if valueEq(cv, f.data) {
			return Passed()
		}
	}
	return Failed(f.Gettext("Not a valid choice"))
}

// Options derives the presentation view, marking the choice selected by
// the current data.
func (f *SelectField) Options() []ChoiceOption {
	out := make([]ChoiceOption, 0, len(f.choices))
	for _, c := range f.choices {
		cv, err := f.coerce(c.Value)
		selected := err == nil && valueEq(cv, f.data)
		out = append(out, ChoiceOption{Value: c.Value, Label: c.Label, Selected: selected})
	}
	return out
}

// Select declares a single-choice field. The default coerce keeps the raw
// string.
func Select(opts ...Option) *UnboundField {
	return newUnbound("select", opts, func(cfg *fieldConfig) (Field, error) {
		return newSelectField(cfg), nil
	})
}

// Radio declares a single-choice field presented as radio buttons.
// Binding behavior is the SelectField's.
func Radio(opts ...Option) *UnboundField {
	return newUnbound("radio", opts, func(cfg *fieldConfig) (Field, error) {
		return newSelectField(cfg), nil
	})
}

func newSelectField(cfg *fieldConfig) *SelectField {
	return &SelectField{
		choices: append([]Choice(nil), cfg.choices...),
		coerce:  choiceCoerce(cfg),
	}
}

func choiceCoerce(cfg *fieldConfig) Coerce {
	if cfg.coerceSet {
		return cfg.coerce
	}
	return func(raw string) (any, error) { return raw, nil }
}

// SelectMultipleField binds any number of values from the choice set; its
// data is a []any.
type SelectMultipleField struct {
	BaseField

	choices []Choice
	coerce  Coerce
}

// Choices returns the declared (value, label) pairs.
func (f *SelectMultipleField) Choices() []Choice { return f.choices }

// SetChoices replaces the choice set.
func (f *SelectMultipleField) SetChoices(choices []Choice) {
	f.choices = append([]Choice(nil), choices...)
}

func (f *SelectMultipleField) ProcessData(value any) {
	items := anySlice(value)
	if items == nil {
		f.data = nil
		return
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := f.coerce(fmt.Sprint(item))
		if err != nil {
			f.data = nil
			return
		}
		out = append(out, v)
	}
	f.data = out
}

func (f *SelectMultipleField) ProcessFormdata(values []string) error {
	out := make([]any, 0, len(values))
	for _, raw := range values {
		v, err := f.coerce(raw)
		if err != nil {
			return errors.New(f.Gettext("Invalid choice(s): one or more data inputs could not be coerced"))
		}
		out = append(out, v)
	}
	f.data = out
	return nil
}

func (f *SelectMultipleField) PreValidate(form *Form) Result {
	items, _ := f.data.([]any)
	if len(items) == 0 {
		return Passed()
	}
	allowed := f.coercedChoices()
	for _, d := range items {
		if !containsValue(allowed, d) {
			return Failed(fmt.Sprintf(f.Gettext("'%v' is not a valid choice for this field"), d))
		}
	}
	return Passed()
}

// Options derives the presentation view, marking every choice present in
// the current data.
func (f *SelectMultipleField) Options() []ChoiceOption {
	items, _ := f.data.([]any)
	out := make([]ChoiceOption, 0, len(f.choices))
	for _, c := range f.choices {
		cv, err := f.coerce(c.Value)
		selected := err == nil && containsValue(items, cv)
		out = append(out, ChoiceOption{Value: c.Value, Label: c.Label, Selected: selected})
	}
	return out
}

func (f *SelectMultipleField) coercedChoices() []any {
	out := make([]any, 0, len(f.choices))
	for _, c := range f.choices {
		if v, err := f.coerce(c.Value); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// SelectMultiple declares a multi-choice field.
func SelectMultiple(opts ...Option) *UnboundField {
	return newUnbound("select_multiple", opts, func(cfg *fieldConfig) (Field, error) {
		return &SelectMultipleField{
			choices: append([]Choice(nil), cfg.choices...),
			coerce:  choiceCoerce(cfg),
		}, nil
	})
}

// IntCoerce is a ready-made Coerce for integer-valued choices.
func IntCoerce(raw string) (any, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func valueEq(a, b any) bool { return reflect.DeepEqual(a, b) }

func containsValue(items []any, v any) bool {
	for _, item := range items {
		if valueEq(item, v) {
			return true
		}
	}
	return false
}

// anySlice views any slice value as []any; nil for non-slices.
func anySlice(v any) []any {
	if v == nil || IsUnset(v) {
		return nil
	}
	if items, ok := v.([]any); ok {
		return items
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
