package mi

import "fmt"

// ErrorKind classifies a ParsingError the way §7 of the design groups them:
// the parser always knows exactly why a line failed, never just "bad input".
type ErrorKind int

const (
	// ErrEndOfInput means a parser needed more bytes than the line contained.
	ErrEndOfInput ErrorKind = iota
	// ErrUnexpectedToken means a byte was found where the grammar forbids it.
	ErrUnexpectedToken
	// ErrMissingDelimiter means a required '=', '"', '}' or ']' was absent.
	ErrMissingDelimiter
	// ErrLengthMismatch means a record parser didn't consume the whole line.
	ErrLengthMismatch
	// ErrInvalidRecordStart means the first non-token byte isn't one of ~ @ & ^ * + =.
	ErrInvalidRecordStart
	// ErrBufferOverflow means no terminator arrived within max_buffered_bytes.
	ErrBufferOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEndOfInput:
		return "EndOfInput"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrMissingDelimiter:
		return "MissingDelimiter"
	case ErrLengthMismatch:
		return "LengthMismatch"
	case ErrInvalidRecordStart:
		return "InvalidRecordStart"
	case ErrBufferOverflow:
		return "BufferOverflow"
	default:
		return "Unknown"
	}
}

// ParsingError is a recoverable, per-line parse failure. The framer never
// retries a line; it hands one of these back to the caller and moves on to
// the next line untouched.
type ParsingError struct {
	Kind    ErrorKind
	Message string
	Line    string
	Offset  int
	Window  string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("gdb/mi: %s at offset %d: %s (near %q)", e.Kind, e.Offset, e.Message, e.Window)
}

// windowAround returns a ±30-byte slice of line centered on offset, clamped
// to the line's bounds.
func windowAround(line string, offset int) string {
	if offset > len(line) {
		offset = len(line)
	}
	if offset < 0 {
		offset = 0
	}
	start := offset - 30
	if start < 0 {
		start = 0
	}
	end := offset + 30
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

func newParsingError(kind ErrorKind, message, line string, offset int) *ParsingError {
	return &ParsingError{
		Kind:    kind,
		Message: message,
		Line:    line,
		Offset:  offset,
		Window:  windowAround(line, offset),
	}
}

// UsageError is a programming error: a classification filter of a type the
// predicates don't accept. It is never produced by parsing input.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return "gdb/mi: " + e.Message
}
