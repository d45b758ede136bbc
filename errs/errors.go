// Package errs defines the closed set of error kinds the rendering pipeline
// can produce, in the style of cogentcore-core's base/errors package: a
// small wrapper type callers can switch on by Kind, compatible with the
// standard errors.Is/As machinery via Unwrap.
package errs

import "fmt"

// Kind is one of the error categories the pipeline surfaces. The set is
// closed; stages never invent new kinds.
type Kind int

const (
	// FontNotFound means the requested font could not be resolved from any
	// configured source.
	FontNotFound Kind = iota
	// FontInvalid means the bytes exist but do not parse as a supported
	// format, or a required table is missing.
	FontInvalid
	// FontTooLarge means the file exceeds the configured maximum size.
	FontTooLarge
	// AxisOutOfRange means a variation tag is not present in the font. A
	// clamped (but present) axis is a warning, not this error.
	AxisOutOfRange
	// ShapeFailure means the shaping backend refused the input.
	ShapeFailure
	// RenderFailure means the rasterizer could not produce a bitmap.
	RenderFailure
	// ExportFailure means the chosen encoder rejected the render output.
	ExportFailure
	// ConfigurationError means the pipeline was executed without a required
	// backend configured, or was given invalid input (e.g. a path-traversal
	// font source).
	ConfigurationError
)

func (k Kind) String() string {
	switch k {
	case FontNotFound:
		return "font not found"
	case FontInvalid:
		return "font invalid"
	case FontTooLarge:
		return "font too large"
	case AxisOutOfRange:
		return "axis unknown or out of range"
	case ShapeFailure:
		return "shape failure"
	case RenderFailure:
		return "render failure"
	case ExportFailure:
		return "export failure"
	case ConfigurationError:
		return "configuration error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every pipeline stage. It
// carries a Kind so callers can branch on category without string matching,
// plus an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an *Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind wrapping an existing error.
// Wrap returns nil if err is nil, so it can be used directly on a function's
// error return.
func Wrap(kind Kind, message string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
