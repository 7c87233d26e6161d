// Package i18n supplies message translation to goform fields.
//
// Fields consume translation through the two-function Translations
// capability. The default is an identity passthrough; Get builds (and
// caches) locale-backed translations on top of golang.org/x/text.
package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translations retrieves localized messages for field errors and labels.
type Translations interface {
	// Gettext returns the translation for message, or message itself when
	// no translation exists.
	Gettext(message string) string
	// Ngettext returns the translation for a pluralizable message. n
	// selects between the singular and plural forms.
	Ngettext(singular, plural string, n int) string
}

// dummyTranslations is the identity passthrough used when no locales are
// configured.
type dummyTranslations struct{}

func (dummyTranslations) Gettext(message string) string { return message }

func (dummyTranslations) Ngettext(singular, plural string, n int) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Default returns the passthrough Translations.
func Default() Translations { return dummyTranslations{} }

// printerTranslations resolves messages through an x/text printer, which
// consults any catalog registered for the matched language.
type printerTranslations struct {
	printer *message.Printer
}

func (t printerTranslations) Gettext(msg string) string {
	return t.printer.Sprintf(message.Key(msg, msg))
}

func (t printerTranslations) Ngettext(singular, plural string, n int) string {
	if n == 1 {
		return t.Gettext(singular)
	}
	return t.Gettext(plural)
}

// cache holds one Translations per locale list. Concurrent readers may
// race to build the same entry; both values are equivalent and the last
// insert wins, which is harmless.
var cache sync.Map // string -> Translations

// Get returns Translations for the given locale preference list, most
// preferred first. An empty list yields the passthrough default. Results
// are cached process-wide.
func Get(locales []string) Translations {
	if len(locales) == 0 {
		return Default()
	}
	key := strings.Join(locales, ";")
	if tr, ok := cache.Load(key); ok {
		return tr.(Translations)
	}
	tr := build(locales)
	cache.Store(key, tr)
	return tr
}

// New builds Translations for the locale list without touching the
// process-wide cache.
func New(locales []string) Translations { return build(locales) }

func build(locales []string) Translations {
	tags := make([]language.Tag, 0, len(locales))
	for _, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return Default()
	}
	return printerTranslations{printer: message.NewPrinter(tags[0])}
}
