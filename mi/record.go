package mi

import (
	"fmt"
	"strconv"
)

// RecordKind discriminates the four Record variants.
type RecordKind int

const (
	KindStream RecordKind = iota
	KindAsync
	KindResult
	KindTermination
)

func (k RecordKind) String() string {
	switch k {
	case KindStream:
		return "Stream"
	case KindAsync:
		return "Async"
	case KindResult:
		return "Result"
	case KindTermination:
		return "Termination"
	default:
		return "Unknown"
	}
}

// StreamKind is the variety of a StreamRecord.
type StreamKind int

const (
	StreamConsole StreamKind = iota
	StreamTarget
	StreamLog
)

func (k StreamKind) String() string {
	switch k {
	case StreamConsole:
		return "Console"
	case StreamTarget:
		return "Target"
	case StreamLog:
		return "Log"
	default:
		return "Unknown"
	}
}

// AsyncKind is the variety of an AsyncRecord.
type AsyncKind int

const (
	AsyncExec AsyncKind = iota
	AsyncStatus
	AsyncNotify
)

func (k AsyncKind) String() string {
	switch k {
	case AsyncExec:
		return "Exec"
	case AsyncStatus:
		return "Status"
	case AsyncNotify:
		return "Notify"
	default:
		return "Unknown"
	}
}

// Record is the tagged union over the four line variants GDB/MI can emit.
// Once parsed, a Record is never mutated.
type Record interface {
	Kind() RecordKind
	AsNative() any
	IsStream(filter any) (bool, error)
	IsAsync(filter any) (bool, error)
	IsResult(filter any) (bool, error)
}

// matchFilter implements the classification-predicate filter contract: nil
// means "any", a string matches exactly, a []string matches any member; any
// other type is a usage error.
func matchFilter(filter any, value string) (bool, error) {
	switch f := filter.(type) {
	case nil:
		return true, nil
	case string:
		return f == value, nil
	case []string:
		for _, s := range f {
			if s == value {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, &UsageError{
			Message: fmt.Sprintf("invalid filter type %T: expected nil, string, or []string", filter),
		}
	}
}

// StreamRecord is a ~/@/& line: a kind and a decoded c-string payload. It
// never carries a token (§9's Open Question: the source never parses one
// before a stream record's sigil).
type StreamRecord struct {
	StreamKind StreamKind
	Value      string
}

func (s *StreamRecord) Kind() RecordKind { return KindStream }

func (s *StreamRecord) AsNative() any {
	m := newNativeMap()
	m.Set("value", s.Value)
	m.Set("type", s.StreamKind.String())
	return m
}

func (s *StreamRecord) IsStream(filter any) (bool, error) { return matchFilter(filter, s.StreamKind.String()) }
func (s *StreamRecord) IsAsync(any) (bool, error)         { return false, nil }
func (s *StreamRecord) IsResult(any) (bool, error)        { return false, nil }

// AsyncRecord is a */+/= line: an optional token, a kind, an async class
// identifier, and an ordered list of Results.
type AsyncRecord struct {
	Token     *int
	AsyncKind AsyncKind
	Class     string
	Results   []Result
}

func (a *AsyncRecord) Kind() RecordKind { return KindAsync }

func (a *AsyncRecord) AsNative() any {
	m := foldResults(a.Results)
	renameReservedKeys(m)
	m.Set("class", a.Class)
	m.Set("type", a.AsyncKind.String())
	if a.Token != nil {
		m.Set("token", *a.Token)
	} else {
		m.Set("token", nil)
	}
	return m
}

func (a *AsyncRecord) IsStream(any) (bool, error)       { return false, nil }
func (a *AsyncRecord) IsAsync(filter any) (bool, error) { return matchFilter(filter, a.AsyncKind.String()) }
func (a *AsyncRecord) IsResult(any) (bool, error)       { return false, nil }

// ResultRecord is a ^ line: an optional token, a result class identifier,
// and an ordered list of Results.
type ResultRecord struct {
	Token   *int
	Class   string
	Results []Result
}

func (r *ResultRecord) Kind() RecordKind { return KindResult }

func (r *ResultRecord) AsNative() any {
	m := foldResults(r.Results)
	renameReservedKeys(m)
	m.Set("class", r.Class)
	m.Set("type", "Result")
	if r.Token != nil {
		m.Set("token", *r.Token)
	} else {
		m.Set("token", nil)
	}
	return m
}

func (r *ResultRecord) IsStream(any) (bool, error)       { return false, nil }
func (r *ResultRecord) IsAsync(any) (bool, error)        { return false, nil }
func (r *ResultRecord) IsResult(filter any) (bool, error) { return matchFilter(filter, r.Class) }

// TerminationRecord is the singleton "(gdb) " prompt marking the end of a
// response group.
type TerminationRecord struct{}

func (TerminationRecord) Kind() RecordKind         { return KindTermination }
func (TerminationRecord) AsNative() any            { return TerminationSentinel }
func (TerminationRecord) IsStream(any) (bool, error)  { return false, nil }
func (TerminationRecord) IsAsync(any) (bool, error)   { return false, nil }
func (TerminationRecord) IsResult(any) (bool, error)  { return false, nil }

// scanToken reads an optional leading token (DIGIT+ ("." DIGIT+)?) without a
// regexp engine: a plain byte scan, matching the hand-rolled rendering
// SPEC_FULL.md's original-source review confirms. The fractional part is
// consumed but discarded, per spec.
func scanToken(line string) (int, *int) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, nil
	}

	j := i
	if j < len(line) && line[j] == '.' {
		k := j + 1
		for k < len(line) && line[k] >= '0' && line[k] <= '9' {
			k++
		}
		if k > j+1 {
			j = k
		}
	}

	n, err := strconv.Atoi(line[:i])
	if err != nil {
		return 0, nil
	}
	return j, &n
}

// ParseLine classifies and parses one complete, terminator-ending line into
// a Record. It is the entry point for component C; Framer calls it once per
// assembled line.
func ParseLine(line string, opts Options) (Record, error) {
	opts = opts.withDefaults()
	term := opts.Terminator

	if line == "(gdb) "+term {
		return TerminationRecord{}, nil
	}
	if len(line) == 0 {
		return nil, newParsingError(ErrEndOfInput, "end of input", line, 0)
	}

	switch line[0] {
	case '~':
		return parseStreamRecord(line, StreamConsole, term, opts.UnknownEscapePolicy)
	case '@':
		return parseStreamRecord(line, StreamTarget, term, opts.UnknownEscapePolicy)
	case '&':
		return parseStreamRecord(line, StreamLog, term, opts.UnknownEscapePolicy)
	}

	offset, token := scanToken(line)
	if offset >= len(line) {
		return nil, newParsingError(ErrEndOfInput, "end of input after token", line, offset)
	}

	switch line[offset] {
	case '^':
		return parseResultRecord(rewriteBugWorkarounds(line, term), offset, token, term, opts.UnknownEscapePolicy)
	case '*':
		return parseAsyncRecord(rewriteBugWorkarounds(line, term), offset, token, AsyncExec, term, opts.UnknownEscapePolicy)
	case '+':
		return parseAsyncRecord(rewriteBugWorkarounds(line, term), offset, token, AsyncStatus, term, opts.UnknownEscapePolicy)
	case '=':
		return parseAsyncRecord(rewriteBugWorkarounds(line, term), offset, token, AsyncNotify, term, opts.UnknownEscapePolicy)
	default:
		return nil, newParsingError(ErrInvalidRecordStart,
			"first non-token byte is not one of ~ @ & ^ * + =; the debuggee's stdout may be mixed into the MI channel",
			line, offset)
	}
}

func parseStreamRecord(line string, kind StreamKind, term string, policy EscapePolicy) (Record, error) {
	ctx := &parseCtx{line: line, policy: policy}
	offset, str, err := parseCString(ctx, 1)
	if err != nil {
		return nil, err
	}
	if offset+len(term) != len(line) {
		return nil, ctx.fail(ErrLengthMismatch, "trailing bytes after the stream value", offset)
	}
	return &StreamRecord{StreamKind: kind, Value: str}, nil
}

func parseResultRecord(line string, offset int, token *int, term string, policy EscapePolicy) (Record, error) {
	ctx := &parseCtx{line: line, policy: policy}
	offset++ // consume '^'

	classEnd, class, err := parseWord(ctx, offset, ",\r\n")
	if err != nil {
		return nil, err
	}
	results, finalOffset, err := parseResultList(ctx, classEnd)
	if err != nil {
		return nil, err
	}
	if finalOffset+len(term) != len(line) {
		return nil, ctx.fail(ErrLengthMismatch, "trailing bytes after the last result", finalOffset)
	}
	return &ResultRecord{Token: token, Class: class, Results: results}, nil
}

func parseAsyncRecord(line string, offset int, token *int, kind AsyncKind, term string, policy EscapePolicy) (Record, error) {
	ctx := &parseCtx{line: line, policy: policy}
	offset++ // consume '*'/'+'/'='

	classEnd, class, err := parseWord(ctx, offset, ",\r\n")
	if err != nil {
		return nil, err
	}
	results, finalOffset, err := parseResultList(ctx, classEnd)
	if err != nil {
		return nil, err
	}
	if finalOffset+len(term) != len(line) {
		return nil, ctx.fail(ErrLengthMismatch, "trailing bytes after the last result", finalOffset)
	}
	return &AsyncRecord{Token: token, AsyncKind: kind, Class: class, Results: results}, nil
}

// parseResultList reads zero or more ",result" pairs, stopping as soon as
// the next byte isn't a comma (normally the line terminator).
func parseResultList(ctx *parseCtx, offset int) ([]Result, int, error) {
	var results []Result
	for {
		if err := ctx.need(offset); err != nil {
			return results, offset, err
		}
		if ctx.line[offset] != ',' {
			return results, offset, nil
		}
		offset++

		newOffset, r, err := parseResult(ctx, offset)
		if err != nil {
			return results, offset, err
		}
		results = append(results, r)
		offset = newOffset
	}
}
