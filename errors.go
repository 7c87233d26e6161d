package goform

import (
	"errors"
	"fmt"
)

// ConfigError reports a fatal misuse of the library surfaced at
// declaration or bind time: conflicting options, forbidden filters or
// validators on composite fields, or missing form/meta context. It is the
// only error kind that escapes form construction; coercion and validation
// problems are collected per field instead.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return "goform: " + e.msg }

func configErrorf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// AsConfigError extracts a *ConfigError from an error using errors.As
// internally.
func AsConfigError(err error) (*ConfigError, bool) {
	if err == nil {
		return nil, false
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Result is the outcome of one validator invocation. Three states are
// possible: a zero Result continues the chain, a non-empty Message is
// appended to the field's errors, and Halt stops the remaining validators
// in the chain. A halting Result may or may not carry a message.
type Result struct {
	Message string
	Halt    bool
}

// Passed continues the chain with no message.
func Passed() Result { return Result{} }

// Failed appends msg and continues with the next validator.
func Failed(msg string) Result { return Result{Message: msg} }

// Stopped halts the remaining chain; msg may be empty.
func Stopped(msg string) Result { return Result{Message: msg, Halt: true} }

// Validator inspects a bound field in the context of its form. Validators
// must not mutate the field; they report through the returned Result.
type Validator func(form *Form, field Field) Result

// Filter transforms coerced data during Process. Returning an error
// queues the message into the field's process errors and stops the
// remaining filters.
type Filter func(value any) (any, error)
