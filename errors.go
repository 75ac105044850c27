package toon

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind categorizes the errors encode/decode can raise.
type ErrorKind int

const (
	// ErrEmptyInput: input has no non-blank content.
	ErrEmptyInput ErrorKind = iota
	// ErrSyntaxUnterminatedString: a quoted run never closes.
	ErrSyntaxUnterminatedString
	// ErrSyntaxInvalidEscape: `\X` where X is not one of the five
	// recognized escape characters.
	ErrSyntaxInvalidEscape
	// ErrSyntaxMissingColon: a key was parsed without a trailing ':'.
	ErrSyntaxMissingColon
	// ErrSyntaxInvalidHeader: the bracket contents of an array header
	// don't parse as a length. Also raised when a line cannot be placed
	// in the document: an indented first line, or content left over after
	// the root value.
	ErrSyntaxInvalidHeader
	// ErrLengthMismatch: the declared length disagrees with the actual
	// item/row/value count.
	ErrLengthMismatch
	// ErrTabularWidthMismatch: a tabular row's value count disagrees
	// with its header's field count.
	ErrTabularWidthMismatch
	// ErrStrictIndentNotMultiple: (strict mode) a non-zero indent is not
	// an exact multiple of the configured indent size.
	ErrStrictIndentNotMultiple
	// ErrStrictTabInIndent: (strict mode) a tab character appears in the
	// leading whitespace of a line.
	ErrStrictTabInIndent
	// ErrStrictBlankInArray: (strict mode) a blank line appears between
	// the first and last item/row of an array body.
	ErrStrictBlankInArray
	// ErrDelimiterMismatch: a tabular row splits into a single value under
	// the header's delimiter while the header declares more than one
	// field. Any other row width that disagrees with the field count is
	// ErrTabularWidthMismatch.
	ErrDelimiterMismatch
	// ErrOptionInvalid: an EncodeOptions/DecodeOptions field is out of
	// its documented range. Also raised when Normalize or Unmarshal meets
	// a Go value or destination type it cannot convert.
	ErrOptionInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyInput:
		return "EmptyInput"
	case ErrSyntaxUnterminatedString:
		return "SyntaxUnterminatedString"
	case ErrSyntaxInvalidEscape:
		return "SyntaxInvalidEscape"
	case ErrSyntaxMissingColon:
		return "SyntaxMissingColon"
	case ErrSyntaxInvalidHeader:
		return "SyntaxInvalidHeader"
	case ErrLengthMismatch:
		return "LengthMismatch"
	case ErrTabularWidthMismatch:
		return "TabularWidthMismatch"
	case ErrStrictIndentNotMultiple:
		return "StrictIndentNotMultiple"
	case ErrStrictTabInIndent:
		return "StrictTabInIndent"
	case ErrStrictBlankInArray:
		return "StrictBlankInArray"
	case ErrDelimiterMismatch:
		return "DelimiterMismatch"
	case ErrOptionInvalid:
		return "OptionInvalid"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by Encode and Decode. Marshal and
// Unmarshal return it too, but may wrap it with struct-field or index
// context, so errors.As is the way to reach it there. Line is 1-based and refers to the input text; it is
// 0 when the error is not addressable to a specific line (e.g. an option
// validation failure).
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("toon: line %d: %s: %s", e.Line, e.Kind, msg)
	}
	return fmt.Sprintf("toon: %s: %s", e.Kind, msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Is reports equality by Kind, so callers can write
// errors.Is(err, &toon.Error{Kind: toon.ErrLengthMismatch}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// wrapError attaches kind/line/context to cause without discarding it. The
// cause is wrapped with github.com/pkg/errors.Wrapf into the Err field, so a
// %+v format verb on that field (not on the returned *Error) prints a stack
// trace.
func wrapError(cause error, kind ErrorKind, line int, context string) *Error {
	return &Error{Kind: kind, Line: line, Msg: context, Err: errors.Wrapf(cause, context)}
}

// wrapDecodeFrame adds one frame of "while decoding X" context to an error
// bubbling up through recursive descent, keeping its original Kind so
// errors.Is/As still match on the innermost cause.
func wrapDecodeFrame(err error, line int, context string) error {
	te, ok := err.(*Error)
	if !ok {
		return err
	}
	return wrapError(te, te.Kind, line, context)
}
