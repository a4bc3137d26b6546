package mi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeMapOrderingAndDeletion(t *testing.T) {
	m := newNativeMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())

	m.Delete("a")
	assert.Equal(t, []string{"b", "c"}, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Set("a", 4)
	assert.Equal(t, []string{"b", "c", "a"}, m.Keys(), "re-adding after deletion appends at the end")
}

func TestNativeMapAll(t *testing.T) {
	m := newNativeMap()
	m.Set("x", 1)
	m.Set("y", 2)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
	}
	assert.Equal(t, []string{"x", "y"}, seen)
}

func TestFoldResultsScalar(t *testing.T) {
	results := []Result{
		{Name: "a", Value: Value{Kind: ValueCString, Str: "1"}},
	}
	m := foldResults(results)
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestFoldResultsDuplicateKeyBecomesList(t *testing.T) {
	results := []Result{
		{Name: "bkpt", Value: Value{Kind: ValueCString, Str: "1"}},
		{Name: "bkpt", Value: Value{Kind: ValueCString, Str: "2"}},
		{Name: "bkpt", Value: Value{Kind: ValueCString, Str: "3"}},
	}
	m := foldResults(results)
	v, ok := m.Get("bkpt")
	require.True(t, ok)
	list, ok := v.(NativeList)
	require.True(t, ok)
	assert.Equal(t, NativeList{"1", "2", "3"}, list)
}

func TestFoldResultsPreservesKeyOrder(t *testing.T) {
	results := []Result{
		{Name: "second", Value: Value{Kind: ValueCString, Str: "b"}},
		{Name: "first", Value: Value{Kind: ValueCString, Str: "a"}},
	}
	m := foldResults(results)
	assert.Equal(t, []string{"second", "first"}, m.Keys())
}

func TestRenameReservedKeys(t *testing.T) {
	m := newNativeMap()
	m.Set("class", "user-value")
	m.Set("other", "x")
	renameReservedKeys(m)

	_, ok := m.Get("class")
	assert.False(t, ok)
	v, ok := m.Get("_class")
	require.True(t, ok)
	assert.Equal(t, "user-value", v)
	other, ok := m.Get("other")
	require.True(t, ok)
	assert.Equal(t, "x", other)
}

func TestLookup(t *testing.T) {
	rec := &ResultRecord{
		Class:   "done",
		Results: []Result{{Name: "count", Value: Value{Kind: ValueCString, Str: "3"}}},
	}

	v, ok := Lookup[string](rec, "count")
	require.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok = Lookup[string](rec, "missing")
	assert.False(t, ok)

	_, ok = Lookup[int](rec, "count")
	assert.False(t, ok, "wrong type assertion fails rather than coercing")
}

func TestLookupOnStreamRecordHasNoResults(t *testing.T) {
	rec := &StreamRecord{StreamKind: StreamConsole, Value: "x"}
	_, ok := rec.AsNative().(*NativeMap)
	require.True(t, ok)
	_, ok = Lookup[string](rec, "class")
	assert.False(t, ok)
}

func TestTerminationSentinelEquality(t *testing.T) {
	assert.Equal(t, Termination("(gdb)"), TerminationSentinel)
}
