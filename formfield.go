package goform

import "reflect"

// FormField encapsulates a whole sub-schema as a single field. Enclosed
// field names are prefixed with this field's name plus the separator.
// Filters and validators cannot be attached to the FormField itself;
// define them on the enclosed schema's fields.
type FormField struct {
	BaseField

	schema    *Schema
	separator string
	form      *Form
	obj       any
}

// Form returns the nested form produced by Process.
func (f *FormField) Form() *Form { return f.form }

// Process constructs the nested form under the sub-prefix. Mapping data
// seeds the enclosed fields by name; any other object is handed through
// as the nested form's source object.
func (f *FormField) Process(formdata Formdata, data any) {
	f.processErrors = nil
	if IsUnset(data) {
		data = f.resolveDefault()
		f.obj = data
	}
	f.objectData = data

	prefix := f.name + f.separator
	opts := []FormOption{
		WithPrefix(prefix),
		WithFormMeta(f.meta),
		WithTranslations(f.translations),
	}
	if m, ok := data.(map[string]any); ok {
		opts = append(opts, WithData(m))
	} else if data != nil {
		opts = append(opts, WithObject(data))
	}

	var fdAny any
	if formdata != nil {
		fdAny = formdata
	}
	nested, err := f.schema.NewForm(fdAny, opts...)
	if err != nil {
		f.processErrors = append(f.processErrors, err.Error())
		return
	}
	f.form = nested
}

// Validate delegates entirely to the enclosed form. Passing extra
// validators is a configuration error and panics; define validation on
// the enclosed schema instead.
func (f *FormField) Validate(form *Form, extra ...Validator) bool {
	if len(extra) > 0 {
		panic(configErrorf("formfield %q: does not accept in-line validators; define them on the enclosed schema", f.name))
	}
	f.errors = append([]string(nil), f.processErrors...)
	if f.form == nil {
		return len(f.errors) == 0
	}
	if !f.form.Validate() {
		for name, msgs := range f.form.Errors() {
			for _, msg := range msgs {
				f.errors = append(f.errors, name+": "+msg)
			}
		}
	}
	return len(f.errors) == 0
}

// ErrorMap returns the enclosed form's errors keyed by enclosed field
// name, preserving structure Errors flattens.
func (f *FormField) ErrorMap() map[string][]string {
	if f.form == nil {
		return nil
	}
	return f.form.Errors()
}

// Data reads through to the enclosed form's data map.
func (f *FormField) Data() any {
	if f.form == nil {
		return nil
	}
	return f.form.Data()
}

// PopulateObj populates the existing object held at target's attribute
// name, falling back to the object captured at Process time when the
// attribute is missing or nil. Having neither is a configuration error.
func (f *FormField) PopulateObj(target any, name string) error {
	if f.form == nil {
		return configErrorf("formfield %q: populate before process", f.name)
	}
	candidate, ok := attrPointer(target, name)
	if !ok {
		if f.obj == nil {
			return configErrorf("formfield %q: cannot find a value to populate from the provided obj or input data/defaults", f.name)
		}
		if err := setAttr(target, name, f.obj); err != nil {
			return err
		}
		candidate = f.obj
	}
	return f.form.PopulateObj(candidate)
}

// attrPointer returns a mutable handle on target's attribute name: the
// stored pointer when the attribute is a non-nil pointer or map value, or
// the address of an embedded struct field.
func attrPointer(target any, name string) (any, bool) {
	if m, ok := target.(map[string]any); ok {
		v, ok := m[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	fv, ok := structField(rv, name)
	if !ok {
		return nil, false
	}
	switch fv.Kind() {
	case reflect.Pointer:
		if fv.IsNil() {
			return nil, false
		}
		return fv.Interface(), true
	case reflect.Map:
		if fv.IsNil() {
			return nil, false
		}
		return fv.Interface(), true
	case reflect.Struct:
		if !fv.CanAddr() {
			return nil, false
		}
		return fv.Addr().Interface(), true
	}
	return nil, false
}

// SubForm declares a nested-form field over schema. Attaching filters or
// validators to the field itself is a configuration error.
func SubForm(schema *Schema, opts ...Option) *UnboundField {
	return newUnbound("formfield", opts, func(cfg *fieldConfig) (Field, error) {
		if schema == nil {
			return nil, configErrorf("formfield: schema must not be nil")
		}
		if len(cfg.filters) > 0 {
			return nil, configErrorf("formfield: cannot take filters, as the encapsulated data is not mutable")
		}
		if len(cfg.validators) > 0 {
			return nil, configErrorf("formfield: does not accept any validators; define them on the enclosed schema")
		}
		return &FormField{schema: schema, separator: cfg.separator}, nil
	})
}
