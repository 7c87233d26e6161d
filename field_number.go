package goform

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// IntegerField coerces wire input to int. Erroneous input nulls the data
// but stays available through RawData and Value for redisplay.
type IntegerField struct {
	BaseField
}

func (f *IntegerField) Value() string {
	if len(f.rawData) > 0 {
		return f.rawData[0]
	}
	if f.data != nil {
		return fmt.Sprint(f.data)
	}
	return ""
}

func (f *IntegerField) ProcessFormdata(values []string) error {
	if len(values) == 0 {
		return nil
	}
	n, err := strconv.Atoi(values[0])
	if err != nil {
		f.data = nil
		return errors.New(f.Gettext("Not a valid integer value"))
	}
	f.data = n
	return nil
}

// Integer declares an int-coercing field.
func Integer(opts ...Option) *UnboundField {
	return newUnbound("integer", opts, func(cfg *fieldConfig) (Field, error) {
		return &IntegerField{}, nil
	})
}

// FloatField coerces wire input to float64.
type FloatField struct {
	BaseField
}

func (f *FloatField) Value() string {
	if len(f.rawData) > 0 {
		return f.rawData[0]
	}
	if f.data != nil {
		return fmt.Sprint(f.data)
	}
	return ""
}

func (f *FloatField) ProcessFormdata(values []string) error {
	if len(values) == 0 {
		return nil
	}
	n, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		f.data = nil
		return errors.New(f.Gettext("Not a valid float value"))
	}
	f.data = n
	return nil
}

// Float declares a float64-coercing field.
func Float(opts ...Option) *UnboundField {
	return newUnbound("float", opts, func(cfg *fieldConfig) (Field, error) {
		return &FloatField{}, nil
	})
}

// Rounding selects how a DecimalField quantizes for display.
type Rounding int

const (
	// RoundHalfUp rounds half away from zero (the default).
	RoundHalfUp Rounding = iota
	// RoundHalfEven rounds half to the nearest even digit.
	RoundHalfEven
	// RoundUp rounds away from zero.
	RoundUp
	// RoundDown truncates toward zero.
	RoundDown
	// RoundCeiling rounds toward positive infinity.
	RoundCeiling
	// RoundFloor rounds toward negative infinity.
	RoundFloor
)

func applyRounding(d decimal.Decimal, places int32, mode Rounding) decimal.Decimal {
	switch mode {
	case RoundHalfEven:
		return d.RoundBank(places)
	case RoundUp:
		return d.RoundUp(places)
	case RoundDown:
		return d.RoundDown(places)
	case RoundCeiling:
		return d.RoundCeil(places)
	case RoundFloor:
		return d.RoundFloor(places)
	default:
		return d.Round(places)
	}
}

// DecimalField coerces wire input to decimal.Decimal. Display either
// quantizes to a fixed number of places (default 2) or routes through the
// locale-aware numeric provider; the two modes are mutually exclusive.
type DecimalField struct {
	BaseField

	useLocale    bool
	numberFormat string
	places       int
	rounding     Rounding
	roundingSet  bool
}

func (f *DecimalField) locale() string {
	if f.meta != nil && len(f.meta.Locales) > 0 {
		return f.meta.Locales[0]
	}
	return ""
}

func (f *DecimalField) numbers() NumberFormatter {
	if f.meta != nil && f.meta.Numbers != nil {
		return f.meta.Numbers
	}
	return DefaultNumbers
}

func (f *DecimalField) ProcessFormdata(values []string) error {
	if len(values) == 0 {
		return nil
	}
	var (
		d   decimal.Decimal
		err error
	)
	if f.useLocale {
		d, err = f.numbers().ParseDecimal(values[0], f.locale())
	} else {
		d, err = decimal.NewFromString(values[0])
	}
	if err != nil {
		f.data = nil
		return errors.New(f.Gettext("Not a valid decimal value"))
	}
	f.data = d
	return nil
}

func (f *DecimalField) Value() string {
	if len(f.rawData) > 0 {
		return f.rawData[0]
	}
	if f.data == nil {
		return ""
	}
	if f.useLocale {
		s, err := f.numbers().FormatDecimal(f.dataDecimal(), f.numberFormat, f.locale())
		if err != nil {
			return f.dataDecimal().String()
		}
		return s
	}
	if f.places >= 0 {
		d, ok := f.data.(decimal.Decimal)
		if !ok {
			// Object data may be a plain float or int; format the way we
			// would a float.
			return fmt.Sprintf("%.*f", f.places, toFloat(f.data))
		}
		if f.roundingSet {
			d = applyRounding(d, int32(f.places), f.rounding)
		}
		return d.StringFixed(int32(f.places))
	}
	return fmt.Sprint(f.data)
}

func (f *DecimalField) dataDecimal() decimal.Decimal {
	if d, ok := f.data.(decimal.Decimal); ok {
		return d
	}
	return decimal.NewFromFloat(toFloat(f.data))
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}

// Decimal declares a decimal.Decimal-coercing field. WithPlaces and
// WithRounding control quantized display; WithUseLocale switches to the
// locale-aware numeric provider instead. Declaring both is a
// configuration error surfaced at bind time.
func Decimal(opts ...Option) *UnboundField {
	return newUnbound("decimal", opts, func(cfg *fieldConfig) (Field, error) {
		if cfg.useLocale && (cfg.placesSet || cfg.roundingSet) {
			return nil, configErrorf("decimal: when using locale-aware numbers, places and rounding are ignored")
		}
		f := &DecimalField{
			useLocale:    cfg.useLocale,
			numberFormat: cfg.numberFormat,
			places:       2,
			rounding:     cfg.rounding,
			roundingSet:  cfg.roundingSet,
		}
		if cfg.placesSet {
			f.places = cfg.places
		}
		return f, nil
	})
}
