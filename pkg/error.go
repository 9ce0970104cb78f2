package pkg

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every error produced by the template front end derives from one of these,
// so callers can classify a failure with [errors.Is] regardless of the
// detail or attributes attached to it.
var (
	ErrUnexpectedToken   = NewError("unexpected token")
	ErrUnsupportedTag    = NewError("unsupported tag")
	ErrUnsupportedFilter = NewError("unsupported filter")
	ErrFilter            = NewError("filter error")
	ErrUnknownVariable   = NewError("unknown variable")
	ErrUnknownIndex      = NewError("unknown index")
	ErrInvalidArgument   = NewError("invalid argument")
	ErrReadInput         = NewError("failed to read input")
	ErrRender            = NewError("render failed")
	ErrJSONMarshal       = NewError("JSON marshal error")
	ErrYAMLMarshal       = NewError("YAML marshal error")
	ErrInvalidFormat     = NewError("invalid format")
	ErrExprCompile       = NewError("expression compile error")
	ErrExprEvaluate      = NewError("expression evaluation error")
)

// Nothing is the display form of an exhausted input.
const Nothing = "nothing"

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind   *Error      // Sentinel this error was derived from (nil for sentinels)
	msg    string      // Sentinel message
	detail string      // Human-readable elaboration of msg
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// UnexpectedToken returns an [ErrUnexpectedToken] describing what a parser
// expected and what it found instead. An empty found is reported as
// [Nothing], meaning the input was exhausted.
func UnexpectedToken(expected, found string) *Error {
	display := Nothing
	if found == "" {
		found = Nothing
	} else {
		display = "`" + found + "`"
	}

	return ErrUnexpectedToken.
		Describe("expected " + expected + ", found " + display).
		With(
			slog.String("expected", expected),
			slog.String("found", found),
		)
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message from whichever fields are set, in order:
	//
	//   "<msg>: <detail>: <err>"
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.detail != "" {
		part = append(part, e.detail)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this error derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e.base() == t.base()
}

// Detail returns the human-readable elaboration, if any.
func (e *Error) Detail() string { return e.detail }

// Attr returns the value of the first attribute with the given key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.detail != "" {
		attrs = append(attrs, slog.String("detail", e.detail))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// Describe creates a new Error with the given human-readable detail.
func (e *Error) Describe(detail string) *Error {
	c := e.derive()
	c.detail = detail

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

func (e *Error) derive() *Error {
	return &Error{
		kind:   e.base(),
		msg:    e.msg,
		detail: e.detail,
		err:    e.err,
		attrs:  e.attrs, // Share attrs
	}
}

func (e *Error) base() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}
