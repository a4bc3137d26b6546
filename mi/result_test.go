package mi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	t.Run("string value", func(t *testing.T) {
		offset, r, err := parseResult(ctx(`reason="breakpoint-hit"`), 0)
		require.NoError(t, err)
		assert.Equal(t, 23, offset)
		assert.Equal(t, "reason", r.Name)
		assert.Equal(t, "breakpoint-hit", r.Value.Str)
	})

	t.Run("tuple value", func(t *testing.T) {
		_, r, err := parseResult(ctx(`frame={level="0"}`), 0)
		require.NoError(t, err)
		assert.Equal(t, "frame", r.Name)
		assert.Equal(t, ValueTuple, r.Value.Kind)
		require.Len(t, r.Value.Tuple, 1)
		assert.Equal(t, "level", r.Value.Tuple[0].Name)
	})

	t.Run("missing equals", func(t *testing.T) {
		_, _, err := parseResult(ctx(`reason"breakpoint-hit"`), 0)
		require.Error(t, err)
		var pe *ParsingError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ErrMissingDelimiter, pe.Kind)
	})

	t.Run("end of input", func(t *testing.T) {
		_, _, err := parseResult(ctx(`reason="x"`), 20)
		require.Error(t, err)
		var pe *ParsingError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ErrEndOfInput, pe.Kind)
	})
}

func TestResultAsNativeKeyValue(t *testing.T) {
	r := Result{Name: "number", Value: Value{Kind: ValueCString, Str: "1"}}
	name, value := r.AsNativeKeyValue()
	assert.Equal(t, "number", name)
	assert.Equal(t, "1", value)
}

func TestResultAsNativeSingleton(t *testing.T) {
	r := Result{Name: "number", Value: Value{Kind: ValueCString, Str: "1"}}
	m := r.AsNativeSingleton()
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get("number")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}
