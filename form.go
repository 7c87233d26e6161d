package goform

import (
	"sort"

	"github.com/reoring/goform/i18n"
)

type fieldDecl struct {
	name  string
	field *UnboundField
}

// Schema is the immutable, ordered set of field declarations a form class
// consists of. Build one once and bind it per incoming request.
type Schema struct {
	decls []fieldDecl
}

// SchemaBuilder assembles a Schema; Field calls chain.
type SchemaBuilder struct {
	decls []fieldDecl
	err   error
}

// NewSchema starts a schema definition.
func NewSchema() *SchemaBuilder { return &SchemaBuilder{} }

// Field declares one named field. Declaring the same name twice is a
// configuration error reported by Build.
func (b *SchemaBuilder) Field(name string, field *UnboundField) *SchemaBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = configErrorf("schema: field name must not be empty")
		return b
	}
	if field == nil {
		b.err = configErrorf("schema: field %q has a nil declaration", name)
		return b
	}
	for _, d := range b.decls {
		if d.name == name {
			b.err = configErrorf("schema: duplicate field %q", name)
			return b
		}
	}
	b.decls = append(b.decls, fieldDecl{name: name, field: field})
	return b
}

// Build finalizes the schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Schema{decls: append([]fieldDecl(nil), b.decls...)}, nil
}

// MustBuild is like Build but panics on error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// SchemaOf builds a Schema from an unordered field map, restoring
// declaration order from each descriptor's creation counter.
func SchemaOf(fields map[string]*UnboundField) *Schema {
	decls := make([]fieldDecl, 0, len(fields))
	for name, field := range fields {
		decls = append(decls, fieldDecl{name: name, field: field})
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].field.CreationOrder() < decls[j].field.CreationOrder()
	})
	return &Schema{decls: decls}
}

// FieldNames lists the declared names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.decls))
	for i, d := range s.decls {
		names[i] = d.name
	}
	return names
}

type formConfig struct {
	prefix       string
	meta         *Meta
	translations i18n.Translations
	obj          any
	data         map[string]any
}

// FormOption configures one form instantiation.
type FormOption func(*formConfig)

// WithPrefix prepends prefix to every field's wire name.
func WithPrefix(prefix string) FormOption {
	return func(c *formConfig) { c.prefix = prefix }
}

// WithFormMeta replaces the default Meta.
func WithFormMeta(m *Meta) FormOption {
	return func(c *formConfig) { c.meta = m }
}

// WithTranslations overrides the translations every bound field receives.
func WithTranslations(tr i18n.Translations) FormOption {
	return func(c *formConfig) { c.translations = tr }
}

// WithObject supplies a source object whose attributes seed field data.
// Object attributes take precedence over WithData entries.
func WithObject(obj any) FormOption {
	return func(c *formConfig) { c.obj = obj }
}

// WithData supplies per-field seed data by short name.
func WithData(data map[string]any) FormOption {
	return func(c *formConfig) { c.data = data }
}

// Form is one bound instance of a Schema: a name-keyed collection of
// bound fields holding raw input, coerced data and error state. A Form
// belongs to a single request and must not be shared across goroutines.
type Form struct {
	meta   *Meta
	prefix string
	fields map[string]Field
	order  []string
}

// NewForm binds the schema and processes input. formdata may be nil,
// url.Values, map[string][]string, map[string]string, or any Formdata;
// the meta's WrapFormdata hook adapts anything else. Field data
// precedence is formdata over object attribute over WithData entry over
// the field's declared default.
func (s *Schema) NewForm(formdata any, opts ...FormOption) (*Form, error) {
	cfg := formConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.meta == nil {
		cfg.meta = DefaultMeta()
	}

	form := &Form{
		meta:   cfg.meta,
		prefix: cfg.prefix,
		fields: make(map[string]Field, len(s.decls)),
	}

	fd, err := cfg.meta.wrapFormdata(form, formdata)
	if err != nil {
		return nil, err
	}

	tr := cfg.translations
	if tr == nil {
		tr = cfg.meta.GetTranslations()
	}

	for _, d := range s.decls {
		field, err := cfg.meta.bindField(form, d.field, BindOptions{
			Name:         d.name,
			Prefix:       cfg.prefix,
			Translations: tr,
		})
		if err != nil {
			return nil, err
		}
		form.fields[d.name] = field
		form.order = append(form.order, d.name)
	}

	for _, name := range form.order {
		data := any(Unset)
		if cfg.obj != nil {
			if v, ok := getAttr(cfg.obj, name); ok {
				data = v
			}
		}
		if IsUnset(data) && cfg.data != nil {
			if v, ok := cfg.data[name]; ok {
				data = v
			}
		}
		form.fields[name].Process(fd, data)
	}
	return form, nil
}

// Meta returns the binding policy this form was built with.
func (f *Form) Meta() *Meta { return f.meta }

// Prefix returns the wire-name prefix.
func (f *Form) Prefix() string { return f.prefix }

// Field returns the bound field declared under name, or nil.
func (f *Form) Field(name string) Field { return f.fields[name] }

// Fields returns every bound field in declaration order.
func (f *Form) Fields() []Field {
	out := make([]Field, len(f.order))
	for i, name := range f.order {
		out[i] = f.fields[name]
	}
	return out
}

// Validate validates every field and reports whether all passed.
func (f *Form) Validate() bool {
	return f.ValidateWith(nil)
}

// ValidateWith validates every field, running any extra validators keyed
// by field name after the field's own chain.
func (f *Form) ValidateWith(extra map[string][]Validator) bool {
	valid := true
	for _, name := range f.order {
		if !f.fields[name].Validate(f, extra[name]...) {
			valid = false
		}
	}
	return valid
}

// Errors returns the per-field error messages collected by the last
// validation, keyed by short name. Fields without errors are omitted.
func (f *Form) Errors() map[string][]string {
	out := make(map[string][]string)
	for _, name := range f.order {
		if errs := f.fields[name].Errors(); len(errs) > 0 {
			out[name] = errs
		}
	}
	return out
}

// Data returns every field's coerced data keyed by short name.
func (f *Form) Data() map[string]any {
	out := make(map[string]any, len(f.order))
	for _, name := range f.order {
		out[name] = f.fields[name].Data()
	}
	return out
}

// PopulateObj writes every field's data onto the matching attributes of
// obj. Destructive: existing values are overwritten.
func (f *Form) PopulateObj(obj any) error {
	for _, name := range f.order {
		if err := f.fields[name].PopulateObj(obj, name); err != nil {
			return err
		}
	}
	return nil
}
