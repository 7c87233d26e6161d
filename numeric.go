package goform

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormatter is the locale-aware numeric capability consumed by
// DecimalField when WithUseLocale is declared. Implementations parse a
// locale-formatted decimal string and format a decimal for a locale.
type NumberFormatter interface {
	ParseDecimal(raw string, locale string) (decimal.Decimal, error)
	FormatDecimal(d decimal.Decimal, format string, locale string) (string, error)
}

// DefaultNumbers formats through golang.org/x/text and parses by
// normalizing the locale's separators back to a plain decimal literal.
var DefaultNumbers NumberFormatter = localeNumbers{}

type localeNumbers struct{}

type numberSeparators struct {
	decimal string
	group   string
}

var separatorCache sync.Map // locale -> numberSeparators

// localeSeparators derives the decimal and group separators of a locale
// by formatting a probe value and inspecting the result. Locales whose
// digits the probe cannot recognize fall back to "." and "".
func localeSeparators(locale string) numberSeparators {
	if v, ok := separatorCache.Load(locale); ok {
		return v.(numberSeparators)
	}
	seps := numberSeparators{decimal: "."}
	tag, err := language.Parse(locale)
	if err == nil {
		p := message.NewPrinter(tag)
		sample := p.Sprint(number.Decimal(1234567.89, number.Scale(2)))
		if i := strings.LastIndex(sample, "89"); i > 0 {
			r, _ := utf8.DecodeLastRuneInString(sample[:i])
			if !unicode.IsDigit(r) {
				seps.decimal = string(r)
			}
		}
		if j := strings.IndexByte(sample, '1'); j >= 0 && j+1 < len(sample) {
			r, _ := utf8.DecodeRuneInString(sample[j+1:])
			if !unicode.IsDigit(r) && string(r) != seps.decimal {
				seps.group = string(r)
			}
		}
	}
	separatorCache.Store(locale, seps)
	return seps
}

func (localeNumbers) ParseDecimal(raw string, locale string) (decimal.Decimal, error) {
	seps := localeSeparators(locale)
	s := strings.TrimSpace(raw)
	if seps.group != "" {
		s = strings.ReplaceAll(s, seps.group, "")
	}
	// Grouping is sometimes typed with a regular space regardless of the
	// locale's canonical separator.
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if seps.decimal != "." {
		s = strings.ReplaceAll(s, seps.decimal, ".")
	}
	return decimal.NewFromString(s)
}

func (localeNumbers) FormatDecimal(d decimal.Decimal, format string, locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	scale := 0
	if format != "" {
		if i := strings.IndexByte(format, '.'); i >= 0 {
			scale = len(format) - i - 1
		}
	} else if d.Exponent() < 0 {
		scale = int(-d.Exponent())
	}
	p := message.NewPrinter(tag)
	f, _ := d.Float64()
	return p.Sprint(number.Decimal(f, number.Scale(scale))), nil
}
