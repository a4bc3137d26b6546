package mi

import "iter"

// NativeList is the canonical projection of a List value: an ordered
// sequence of projected elements (strings, *NativeMaps, or nested
// NativeLists).
type NativeList []any

// Termination is the sentinel native projection of a TerminationRecord. It
// is a string under the hood so it compares equal to the untyped literal
// "(gdb)" with plain ==, without sharing identity with TerminationRecord.
type Termination string

// TerminationSentinel is the value every TerminationRecord projects to.
const TerminationSentinel Termination = "(gdb)"

// NativeMap is an insertion-ordered name -> value mapping, the canonical
// projection of a Tuple or of a record's Results. Preserving insertion
// order matters here in a way a plain Go map cannot: duplicate keys fold
// into a growing NativeList in the order they were seen (§9's "ordered map
// whose values are either scalar or a growing sequence").
type NativeMap struct {
	keys   []string
	values map[string]any
}

func newNativeMap() *NativeMap {
	return &NativeMap{values: make(map[string]any)}
}

// Set assigns key, appending it to the key order the first time it's seen.
func (m *NativeMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get looks up key, reporting whether it was present.
func (m *NativeMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present, closing the gap in the key order.
func (m *NativeMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *NativeMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len reports the number of entries.
func (m *NativeMap) Len() int { return len(m.keys) }

// All iterates entries in insertion order, mirroring util.CanonicalMapIter's
// iter.Seq2 shape but ordered by insertion rather than sorted by key.
func (m *NativeMap) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// dupAccumulator is the internal bookkeeping value foldResults uses while a
// key has collided more than once. It is never returned to a caller: the
// final pass below unwraps it into a NativeList. Keeping it distinct from
// NativeList avoids mistaking a legitimately list-valued Result for an
// in-progress accumulation.
type dupAccumulator struct {
	items []any
}

// foldResults folds an ordered slice of Results into a single NativeMap.
// The first occurrence of a name is a scalar; a second occurrence turns the
// slot into a two-element list; further occurrences append, in original
// order.
func foldResults(results []Result) *NativeMap {
	m := newNativeMap()
	for _, r := range results {
		name, value := r.AsNativeKeyValue()
		existing, ok := m.Get(name)
		if !ok {
			m.Set(name, value)
			continue
		}
		if acc, isAcc := existing.(*dupAccumulator); isAcc {
			acc.items = append(acc.items, value)
			continue
		}
		m.Set(name, &dupAccumulator{items: []any{existing, value}})
	}

	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if acc, isAcc := v.(*dupAccumulator); isAcc {
			m.Set(k, NativeList(acc.items))
		}
	}
	return m
}

// reservedKeys are the envelope fields the native projection injects on
// every Async/Result record. A Result whose own name collides with one of
// these is renamed with a leading underscore so the envelope always wins.
var reservedKeys = [...]string{"class", "type", "token"}

func renameReservedKeys(m *NativeMap) {
	for _, k := range reservedKeys {
		if v, ok := m.Get(k); ok {
			m.Delete(k)
			m.Set("_"+k, v)
		}
	}
}

// Lookup fetches a named result from a record's native projection and
// type-asserts it to T. It returns false if the record does not project to
// a *NativeMap (Termination), the name is absent, or the value isn't a T.
// A Stream record projects to a map holding only "value" and "type", so
// those are the only names Lookup finds on it. This is the Go-idiomatic rendering of the source's result()/results()
// convenience accessors (see SPEC_FULL.md's "Supplemented features").
func Lookup[T any](rec Record, name string) (T, bool) {
	var zero T
	m, ok := rec.AsNative().(*NativeMap)
	if !ok {
		return zero, false
	}
	v, ok := m.Get(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
