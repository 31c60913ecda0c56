package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// The first group is produced by the LST parser, the second by the
// AST emit conversions. Both layers fail at the first offending
// element; no partial tree is ever returned.
var (
	// LST parse errors.
	ErrUnterminatedQuote = NewError("unterminated quote")
	ErrMalformedLine     = NewError("malformed variable definition")

	// AST emit errors.
	ErrBadSubstitution       = NewError("bad substitution")
	ErrUnknownModifier       = NewError("unknown expansion modifier")
	ErrBadOffset             = NewError("invalid substring offset or length")
	ErrUnterminatedExpansion = NewError("unterminated braced expansion")
	ErrUnterminatedRange     = NewError("unterminated bracket range")
	ErrBadEscape             = NewError("invalid escape sequence")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
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

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError decorates an LST parse failure with its source location.
//
// LST and AST nodes carry no spans, so line and column information
// lives only in errors. The Source field is optional; when set, Error
// renders a snippet of the offending line with a caret marker.
type ParseError struct {
	Err    error  // The underlying sentinel (wrapped, for errors.Is)
	Source string // The original source input
	Line   int    // 1-based line of the failure
	Column int    // 1-based column of the failure
}

// NewParseError creates a ParseError at the given position.
func NewParseError(err error, source string, line, col int) *ParseError {
	return &ParseError{
		Err:    err,
		Source: source,
		Line:   line,
		Column: col,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err == nil {
		return "parse error"
	}

	if e.Source != "" {
		return e.formatWithContext()
	}

	return e.Err.Error()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ParseError) Unwrap() error { return e.Err }

// formatWithContext formats the parse error with source code context.
func (e *ParseError) formatWithContext() string {
	lines := strings.Split(e.Source, "\n")

	var buf strings.Builder

	// Write error location and description
	buf.WriteString(e.Err.Error())
	buf.WriteString(" at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))
	buf.WriteString(":\n")

	// Show the offending line if within bounds
	if e.Line > 0 && e.Line <= len(lines) {
		line := lines[e.Line-1]

		// Print the line with line number
		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(e.Line))
		buf.WriteString(" | ")
		buf.WriteString(line)
		buf.WriteRune('\n')

		// Print marker pointing to the column
		// Calculate the width needed for line number display
		lineNumWidth := len(strconv.Itoa(e.Line))
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", lineNumWidth+5)

		// Add spaces to reach the error column
		if e.Column > 0 {
			padding += strings.Repeat(" ", e.Column-1)
		}

		buf.WriteString(padding + "^")
	}

	return buf.String()
}
