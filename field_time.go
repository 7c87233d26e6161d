package goform

import (
	"errors"
	"strings"
	"time"
)

// Default layouts, Go reference time.
const (
	DefaultDateTimeLayout = "2006-01-02 15:04:05"
	DefaultDateLayout     = "2006-01-02"
	DefaultTimeLayout     = "15:04"
)

// DateTimeField coerces wire input to time.Time using a configurable
// layout. Multiple raw values are joined with a single space before
// parsing, which supports split date and time sub-inputs sharing one
// logical field.
type DateTimeField struct {
	BaseField

	layout     string
	invalidMsg string
}

func (f *DateTimeField) Layout() string { return f.layout }

func (f *DateTimeField) ProcessFormdata(values []string) error {
	if len(values) == 0 {
		return nil
	}
	joined := strings.Join(values, " ")
	t, err := time.Parse(f.layout, joined)
	if err != nil {
		f.data = nil
		return errors.New(f.Gettext(f.invalidMsg))
	}
	f.data = t
	return nil
}

func (f *DateTimeField) Value() string {
	if len(f.rawData) > 0 {
		return strings.Join(f.rawData, " ")
	}
	if t, ok := f.data.(time.Time); ok {
		return t.Format(f.layout)
	}
	return ""
}

// DateTime declares a timestamp field (default layout
// "2006-01-02 15:04:05").
func DateTime(opts ...Option) *UnboundField {
	return newUnbound("datetime", opts, func(cfg *fieldConfig) (Field, error) {
		return newDateTimeField(cfg, DefaultDateTimeLayout, "Not a valid datetime value"), nil
	})
}

// Date declares a calendar-date field (default layout "2006-01-02").
func Date(opts ...Option) *UnboundField {
	return newUnbound("date", opts, func(cfg *fieldConfig) (Field, error) {
		return newDateTimeField(cfg, DefaultDateLayout, "Not a valid date value"), nil
	})
}

// Time declares a time-of-day field (default layout "15:04").
func Time(opts ...Option) *UnboundField {
	return newUnbound("time", opts, func(cfg *fieldConfig) (Field, error) {
		return newDateTimeField(cfg, DefaultTimeLayout, "Not a valid time value"), nil
	})
}

func newDateTimeField(cfg *fieldConfig, layout, invalidMsg string) *DateTimeField {
	f := &DateTimeField{layout: layout, invalidMsg: invalidMsg}
	if cfg.layout != "" {
		f.layout = cfg.layout
	}
	return f
}
