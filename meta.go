package goform

import (
	"net/url"

	"github.com/reoring/goform/i18n"
)

// BindOptions carries the call-site context BindField hands to
// UnboundField.Bind.
type BindOptions struct {
	Name         string
	Prefix       string
	Translations i18n.Translations
	Extra        []Option
}

// Meta defines the form-wide binding policy: how fields are bound, how
// raw form input is adapted to the Formdata capability, and how
// translations and locale-aware numbers are looked up. The zero hooks
// fall back to the defaults below.
type Meta struct {
	// Locales is the locale preference list, most preferred first. Empty
	// means no translation and English number formatting.
	Locales []string
	// CacheTranslations reuses translation lookups process-wide. The
	// cache tolerates concurrent read/insert; two goroutines may build
	// the same entry and the last insert wins, which is harmless because
	// both values are equivalent.
	CacheTranslations bool
	// Numbers is the locale-aware numeric provider for Decimal fields.
	// Nil means DefaultNumbers.
	Numbers NumberFormatter
	// BindField allows customization of how fields are bound.
	BindField func(form *Form, field *UnboundField, opts BindOptions) (Field, error)
	// WrapFormdata adapts raw form input into the Formdata capability.
	WrapFormdata func(form *Form, formdata any) (Formdata, error)
}

// DefaultMeta returns a Meta with translation caching enabled and every
// hook at its default.
func DefaultMeta() *Meta {
	return &Meta{CacheTranslations: true}
}

func (m *Meta) bindField(form *Form, field *UnboundField, opts BindOptions) (Field, error) {
	if m.BindField != nil {
		return m.BindField(form, field, opts)
	}
	return field.Bind(form, opts.Name, opts.Prefix, opts.Translations, opts.Extra...)
}

func (m *Meta) wrapFormdata(form *Form, formdata any) (Formdata, error) {
	if m.WrapFormdata != nil {
		return m.WrapFormdata(form, formdata)
	}
	switch t := formdata.(type) {
	case nil:
		return nil, nil
	case Formdata:
		return t, nil
	case url.Values:
		return Values(t), nil
	case map[string][]string:
		return MultiMap(t), nil
	case map[string]string:
		return SingleMap(t), nil
	default:
		return nil, configErrorf("formdata should be url.Values, a string-keyed map, or implement Formdata; got %T", formdata)
	}
}

// GetTranslations resolves the Translations for this meta's locales,
// using the process-wide cache unless caching is disabled.
func (m *Meta) GetTranslations() i18n.Translations {
	if len(m.Locales) == 0 {
		return i18n.Default()
	}
	if m.CacheTranslations {
		return i18n.Get(m.Locales)
	}
	return i18n.New(m.Locales)
}
