package goform

import (
	"fmt"

	"github.com/reoring/goform/i18n"
)

// Field is one bound, typed, validatable input slot on a form. Concrete
// field types embed BaseField, which supplies the full lifecycle, and
// override the per-type hooks (ProcessData, ProcessFormdata, PreValidate,
// PostValidate) as needed.
type Field interface {
	// Type returns the field-type identifier assigned at declaration.
	Type() string
	// Name returns the full wire-format key: prefix + short name.
	Name() string
	// ShortName returns the name the field was declared under.
	ShortName() string
	// ID returns the field id (defaults to Name).
	ID() string
	// Label returns the human-readable label.
	Label() string
	// Description returns the declared help text.
	Description() string

	// RawData returns the raw wire strings last supplied for this field's
	// key; empty when the key was absent, nil before formdata processing.
	RawData() []string
	// Data returns the coerced value. Its type depends on the field kind.
	Data() any
	// ObjectData returns the value the field held before formdata overlay.
	ObjectData() any
	// Errors returns the messages collected by the last Validate call.
	Errors() []string
	// ProcessErrors returns the coercion failures captured by Process.
	ProcessErrors() []string
	// Gettext translates a message through the field's translations.
	Gettext(message string) string
	// Ngettext translates a pluralizable message; n selects the form.
	Ngettext(singular, plural string, n int) string
	// Value returns the string to redisplay: raw input when present (so
	// invalid input round-trips), the formatted data otherwise.
	Value() string

	// Process binds incoming wire data and/or object data onto the field.
	// Coercion failures are captured, never returned.
	Process(formdata Formdata, data any)
	// Validate rebuilds Errors from scratch against current data and
	// reports whether the field is valid.
	Validate(form *Form, extra ...Validator) bool
	// PopulateObj writes the field's data onto target's attribute name.
	// Destructive: an existing value is overwritten.
	PopulateObj(target any, name string) error

	// Per-type hooks; exported so adapters and tests can drive them
	// directly.
	ProcessData(value any)
	ProcessFormdata(values []string) error
	PreValidate(form *Form) Result
	PostValidate(form *Form, stopped bool) error

	base() *BaseField
}

// BaseField carries the state and lifecycle shared by every field type.
// It is not used directly; field constructors return concrete types that
// embed it.
type BaseField struct {
	self Field

	typ         string
	name        string
	shortName   string
	prefix      string
	id          string
	label       string
	description string

	form         *Form
	meta         *Meta
	translations i18n.Translations

	validators   []Validator
	filters      []Filter
	defaultValue any

	data          any
	objectData    any
	rawData       []string
	errors        []string
	processErrors []string
}

func (f *BaseField) base() *BaseField { return f }

func (f *BaseField) Type() string        { return f.typ }
func (f *BaseField) Name() string        { return f.name }
func (f *BaseField) ShortName() string   { return f.shortName }
func (f *BaseField) ID() string          { return f.id }
func (f *BaseField) Label() string       { return f.label }
func (f *BaseField) Description() string { return f.description }
func (f *BaseField) RawData() []string   { return f.rawData }
func (f *BaseField) Data() any           { return f.data }
func (f *BaseField) ObjectData() any     { return f.objectData }
func (f *BaseField) Errors() []string    { return f.errors }

// ProcessErrors returns the coercion failures captured by Process. They
// seed Errors on the next Validate call.
func (f *BaseField) ProcessErrors() []string { return f.processErrors }

// Gettext translates a message through the field's translations.
func (f *BaseField) Gettext(message string) string {
	return f.translations.Gettext(message)
}

// Ngettext translates a pluralizable message through the field's
// translations.
func (f *BaseField) Ngettext(singular, plural string, n int) string {
	return f.translations.Ngettext(singular, plural, n)
}

// Value renders the current data for redisplay. Fields whose coercion can
// fail override this to prefer RawData so the user's exact input comes
// back.
func (f *BaseField) Value() string {
	if f.data == nil {
		return ""
	}
	return fmt.Sprint(f.data)
}

// Process resolves the default when data is Unset, absorbs object data
// via ProcessData, overlays wire input via ProcessFormdata when formdata
// is present, then applies filters in order. Every coercion or filter
// failure is queued into the field's process errors; nothing escapes.
func (f *BaseField) Process(formdata Formdata, data any) {
	f.processErrors = nil
	if IsUnset(data) {
		data = f.resolveDefault()
	}
	f.objectData = data

	f.self.ProcessData(data)

	if formdata != nil {
		if formdata.Has(f.name) {
			f.rawData = formdata.GetAll(f.name)
		} else {
			f.rawData = []string{}
		}
		if err := f.self.ProcessFormdata(f.rawData); err != nil {
			f.processErrors = append(f.processErrors, err.Error())
		}
	}

	for _, filter := range f.filters {
		v, err := filter(f.data)
		if err != nil {
			f.processErrors = append(f.processErrors, err.Error())
			break
		}
		f.data = v
	}
}

func (f *BaseField) resolveDefault() any {
	if fn, ok := f.defaultValue.(func() any); ok {
		return fn()
	}
	return f.defaultValue
}

// Validate rebuilds the error list from scratch: process errors first,
// then PreValidate, then the validator chain (declared validators
// followed by extra ones, halting on the first Stopped result), then
// PostValidate regardless of halting. Returns true iff no message was
// collected.
func (f *BaseField) Validate(form *Form, extra ...Validator) bool {
	f.errors = append([]string(nil), f.processErrors...)

	res := f.self.PreValidate(form)
	if res.Message != "" {
		f.errors = append(f.errors, res.Message)
	}
	stopped := res.Halt

	if !stopped {
		chain := make([]Validator, 0, len(f.validators)+len(extra))
		chain = append(chain, f.validators...)
		chain = append(chain, extra...)
		stopped = f.runValidationChain(form, chain)
	}

	if err := f.self.PostValidate(form, stopped); err != nil {
		f.errors = append(f.errors, err.Error())
	}

	return len(f.errors) == 0
}

// runValidationChain reports whether a validator halted the chain.
func (f *BaseField) runValidationChain(form *Form, validators []Validator) bool {
	for _, validator := range validators {
		res := validator(form, f.self)
		if res.Message != "" {
			f.errors = append(f.errors, res.Message)
		}
		if res.Halt {
			return true
		}
	}
	return false
}

// PopulateObj writes the field's data onto target's attribute name.
func (f *BaseField) PopulateObj(target any, name string) error {
	return setAttr(target, name, f.data)
}

// ProcessData stores the object-supplied value as-is. Coercing field
// types override this.
func (f *BaseField) ProcessData(value any) { f.data = value }

// ProcessFormdata keeps the first raw value. The primary per-type hook.
func (f *BaseField) ProcessFormdata(values []string) error {
	if len(values) > 0 {
		f.data = values[0]
	}
	return nil
}

// PreValidate runs before the validator chain; the default passes.
func (f *BaseField) PreValidate(form *Form) Result { return Passed() }

// PostValidate runs after the chain, halted or not; the default passes.
func (f *BaseField) PostValidate(form *Form, stopped bool) error { return nil }
