package goform

import (
	"strings"
	"sync/atomic"

	"github.com/reoring/goform/i18n"
)

// creationCounter orders declarations across the whole process so a
// schema assembled from an unordered map can still present its fields in
// declaration order.
var creationCounter atomic.Uint64

// UnboundField is the immutable descriptor produced by a field
// constructor. It captures the field type, the declared options and a
// creation-order counter; Bind materializes a fresh bound field per form
// instance without mutating the descriptor.
type UnboundField struct {
	typ     string
	opts    []Option
	build   func(cfg *fieldConfig) (Field, error)
	created uint64
}

func newUnbound(typ string, opts []Option, build func(cfg *fieldConfig) (Field, error)) *UnboundField {
	return &UnboundField{
		typ:     typ,
		opts:    opts,
		build:   build,
		created: creationCounter.Add(1),
	}
}

// Type returns the field-type identifier, e.g. "string" or "fieldlist".
func (u *UnboundField) Type() string { return u.typ }

// CreationOrder returns the monotonically increasing counter assigned
// when the descriptor was declared.
func (u *UnboundField) CreationOrder() uint64 { return u.created }

// Bind materializes a bound field. The descriptor's captured options are
// applied first, then any extra overrides, so overrides win. Bind fails
// with a ConfigError when neither form nor an explicit meta supplies the
// binding context, or when the merged options conflict for the field
// type.
func (u *UnboundField) Bind(form *Form, name, prefix string, translations i18n.Translations, extra ...Option) (Field, error) {
	cfg := &fieldConfig{separator: "-"}
	for _, opt := range u.opts {
		opt(cfg)
	}
	for _, opt := range extra {
		opt(cfg)
	}

	meta := cfg.meta
	if meta == nil && form != nil {
		meta = form.Meta()
	}
	if meta == nil {
		return nil, configErrorf("bind %q: must provide a form or a meta", name)
	}

	tr := translations
	if tr == nil {
		tr = cfg.translations
	}
	if tr == nil {
		tr = meta.GetTranslations()
	}

	field, err := u.build(cfg)
	if err != nil {
		return nil, err
	}

	b := field.base()
	if b.self != nil {
		return nil, configErrorf("bind %q: field is already bound", name)
	}
	b.self = field
	b.typ = u.typ
	b.form = form
	b.meta = meta
	b.translations = tr
	b.shortName = name
	b.prefix = prefix
	b.name = prefix + name
	b.id = cfg.id
	if b.id == "" {
		b.id = b.name
	}
	b.description = cfg.description
	b.validators = cfg.validators
	b.filters = cfg.filters
	b.defaultValue = cfg.defaultValue
	if cfg.labelSet {
		b.label = cfg.label
	} else {
		b.label = tr.Gettext(titleWords(name))
	}
	return field, nil
}

// titleWords turns "first_name" into "First Name" for default labels.
func titleWords(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
