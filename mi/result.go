package mi

import "strings"

// Result is an ordered (name, value) pair. Names are bare identifiers: any
// byte sequence up to the next '='; the scan never interprets quoting.
type Result struct {
	Name  string
	Value Value
}

// AsNativeKeyValue returns the pair as (name, projected value), the
// building block foldResults uses to assemble a parent's native mapping.
func (r Result) AsNativeKeyValue() (string, any) {
	return r.Name, r.Value.AsNative()
}

// AsNativeSingleton projects a lone Result to a single-key *NativeMap. Used
// for a List-of-Results element, which is not folded into its siblings the
// way a Tuple's or record's Results are.
func (r Result) AsNativeSingleton() *NativeMap {
	m := newNativeMap()
	m.Set(r.Name, r.Value.AsNative())
	return m
}

// parseResult reads a variable name up to the first '=', consumes the '=',
// then parses a Value.
func parseResult(c *parseCtx, offset int) (int, Result, error) {
	if err := c.need(offset); err != nil {
		return offset, Result{}, err
	}

	rel := strings.IndexByte(c.line[offset:], '=')
	if rel < 0 {
		return offset, Result{}, c.fail(ErrMissingDelimiter, "'=' not found while reading a variable name", offset)
	}
	name := c.line[offset : offset+rel]

	valueOffset := offset + rel + 1
	newOffset, v, err := parseValue(c, valueOffset)
	if err != nil {
		return offset, Result{}, err
	}
	return newOffset, Result{Name: name, Value: v}, nil
}
