package mi

import (
	"bytes"
	"fmt"
)

// Options configures a Framer or a standalone ParseLine call.
type Options struct {
	// Terminator is the line terminator. Empty means "\n".
	Terminator string
	// UnknownEscapePolicy controls unrecognized c-string escapes.
	UnknownEscapePolicy EscapePolicy
	// MaxBufferedBytes caps how large the pending buffer may grow while
	// waiting for a terminator. 0 means unbounded.
	MaxBufferedBytes int
}

func (o Options) withDefaults() Options {
	if o.Terminator == "" {
		o.Terminator = "\n"
	}
	return o
}

// Framer accumulates byte chunks of arbitrary size and emits one Record per
// complete line. It is the only stateful piece of the core: everything else
// is a pure function of its input. Two Framer instances are independent;
// sharing one across goroutines is not supported, matching §5.
type Framer struct {
	opts    Options
	pending []byte
	more    bool
}

// NewFramer creates a Framer. A zero Options uses the default terminator
// "\n" and the DropBackslash escape policy.
func NewFramer(opts Options) *Framer {
	return &Framer{opts: opts.withDefaults()}
}

// MoreToParse reports whether the buffer already holds at least one more
// complete line, so the caller knows to call Parse(nil) again without
// waiting on the transport for more bytes.
func (f *Framer) MoreToParse() bool { return f.more }

// BufferedBytes reports how many bytes are currently held in the pending
// buffer, waiting on a terminator to complete a line.
func (f *Framer) BufferedBytes() int { return len(f.pending) }

// Parse feeds chunk into the buffer. If a complete line (buffered bytes
// plus chunk, containing the terminator) can be assembled, it returns
// exactly one parsed Record and buffers the remainder. Otherwise it buffers
// chunk and returns (nil, nil). At most one record is ever parsed per call,
// regardless of chunk size or how many terminators it contains.
//
// A ParsingError aborts only the line that produced it: the line is
// already removed from the buffer before the record parser runs, so a bad
// line never poisons subsequent chunks.
func (f *Framer) Parse(chunk []byte) (Record, error) {
	buf := chunk
	if len(f.pending) > 0 {
		buf = make([]byte, 0, len(f.pending)+len(chunk))
		buf = append(buf, f.pending...)
		buf = append(buf, chunk...)
	}

	term := []byte(f.opts.Terminator)
	idx := bytes.Index(buf, term)
	if idx < 0 {
		if f.opts.MaxBufferedBytes > 0 && len(buf) > f.opts.MaxBufferedBytes {
			f.pending = nil
			f.more = false
			return nil, newParsingError(ErrBufferOverflow,
				fmt.Sprintf("no terminator found within max_buffered_bytes (%d)", f.opts.MaxBufferedBytes),
				"", len(buf))
		}
		// Copy rather than alias: chunk is often a caller-owned, reused
		// read buffer (see cmd/gdbmicat and cmd/gdbmi-live), and the next
		// Read into it would silently corrupt a partial line held here.
		f.pending = append([]byte(nil), buf...)
		f.more = false
		return nil, nil
	}

	lineEnd := idx + len(term)
	line := buf[:lineEnd]
	rest := buf[lineEnd:]

	f.pending = append([]byte(nil), rest...)
	f.more = bytes.Contains(rest, term)

	return ParseLine(string(line), f.opts)
}
