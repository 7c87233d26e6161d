package goform

import "github.com/reoring/goform/i18n"

// fieldConfig collects every declared option for a field. A descriptor
// captures the options once; Bind merges call-site overrides on top and
// hands the merged view to the per-type constructor.
type fieldConfig struct {
	label       string
	labelSet    bool
	id          string
	description string

	defaultValue any
	hasDefault   bool

	validators []Validator
	filters    []Filter

	meta         *Meta
	translations i18n.Translations

	// choice fields
	choices   []Choice
	coerce    Coerce
	coerceSet bool

	// boolean fields
	falseValues    []string
	falseValuesSet bool

	// numeric fields
	useLocale    bool
	numberFormat string
	places       int
	placesSet    bool
	rounding     Rounding
	roundingSet  bool

	// temporal fields
	layout string

	// composite fields
	separator  string
	minEntries int
	maxEntries int
}

// Option configures a field declaration. Options irrelevant to the field
// type are ignored unless they conflict with a declared constraint, in
// which case Bind reports a ConfigError.
type Option func(*fieldConfig)

// Coerce converts one raw wire string into the field's domain value.
type Coerce func(raw string) (any, error)

// WithLabel sets the human-readable label. The default is the field name
// with underscores replaced and words title-cased, run through gettext.
func WithLabel(label string) Option {
	return func(c *fieldConfig) { c.label = label; c.labelSet = true }
}

// WithID overrides the field id; the default is the full wire name.
func WithID(id string) Option {
	return func(c *fieldConfig) { c.id = id }
}

// WithDescription attaches help text to the field.
func WithDescription(text string) Option {
	return func(c *fieldConfig) { c.description = text }
}

// WithDefault sets the value used when neither formdata nor object data
// covers the field. Pass a func() any for a value computed per bind.
func WithDefault(value any) Option {
	return func(c *fieldConfig) { c.defaultValue = value; c.hasDefault = true }
}

// WithValidators appends to the field's validator chain.
func WithValidators(vs ...Validator) Option {
	return func(c *fieldConfig) { c.validators = append(c.validators, vs...) }
}

// WithFilters appends data transforms applied, in order, at the end of
// Process.
func WithFilters(fs ...Filter) Option {
	return func(c *fieldConfig) { c.filters = append(c.filters, fs...) }
}

// WithChoices sets the (value, label) pairs of a choice field. The slice
// is copied at bind time; later caller mutation has no effect.
func WithChoices(choices ...Choice) Option {
	return func(c *fieldConfig) { c.choices = choices }
}

// WithCoerce sets the raw-string conversion for choice fields. The
// default keeps the raw string.
func WithCoerce(fn Coerce) Option {
	return func(c *fieldConfig) { c.coerce = fn; c.coerceSet = true }
}

// WithFalseValues replaces the raw strings a Boolean field reads as
// false. The default set is {"false", ""}.
func WithFalseValues(values ...string) Option {
	return func(c *fieldConfig) { c.falseValues = values; c.falseValuesSet = true }
}

// WithUseLocale routes Decimal parsing and display through the
// locale-aware numeric provider. Mutually exclusive with WithPlaces and
// WithRounding.
func WithUseLocale() Option {
	return func(c *fieldConfig) { c.useLocale = true }
}

// WithNumberFormat sets an optional display pattern for locale-aware
// Decimal formatting.
func WithNumberFormat(format string) Option {
	return func(c *fieldConfig) { c.numberFormat = format }
}

// WithPlaces fixes the number of decimal places a Decimal field displays.
// Pass a negative value to disable quantization. The default is 2.
func WithPlaces(places int) Option {
	return func(c *fieldConfig) { c.places = places; c.placesSet = true }
}

// WithRounding selects the rounding mode used during quantization.
func WithRounding(mode Rounding) Option {
	return func(c *fieldConfig) { c.rounding = mode; c.roundingSet = true }
}

// WithLayout sets the time layout (Go reference time) used by Date, Time
// and DateTime fields for both parsing and display.
func WithLayout(layout string) Option {
	return func(c *fieldConfig) { c.layout = layout }
}

// WithSeparator sets the string joining a composite field's name to the
// names of its enclosed fields. The default is "-".
func WithSeparator(sep string) Option {
	return func(c *fieldConfig) { c.separator = sep }
}

// WithMinEntries keeps a FieldList padded to at least n entries.
func WithMinEntries(n int) Option {
	return func(c *fieldConfig) { c.minEntries = n }
}

// WithMaxEntries caps the entries a FieldList accepts from wire input.
func WithMaxEntries(n int) Option {
	return func(c *fieldConfig) { c.maxEntries = n }
}

// WithMeta supplies the meta object directly. Composite fields use this
// to bind enclosed fields without a form.
func WithMeta(m *Meta) Option {
	return func(c *fieldConfig) { c.meta = m }
}

// WithFieldTranslations overrides the translations a single field uses.
func WithFieldTranslations(tr i18n.Translations) Option {
	return func(c *fieldConfig) { c.translations = tr }
}
