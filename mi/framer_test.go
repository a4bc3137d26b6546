package mi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramerSingleChunkSingleLine(t *testing.T) {
	f := NewFramer(Options{})
	rec, err := f.Parse([]byte("~\"hello\\n\"\n"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	s := rec.(*StreamRecord)
	assert.Equal(t, "hello\n", s.Value)
	assert.False(t, f.MoreToParse())
}

func TestFramerSplitAcrossChunks(t *testing.T) {
	f := NewFramer(Options{})
	rec, err := f.Parse([]byte(`~"par`))
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.False(t, f.MoreToParse())

	rec, err = f.Parse([]byte("tial\"\n"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	s := rec.(*StreamRecord)
	assert.Equal(t, "partial", s.Value)
}

func TestFramerMultipleLinesInOneChunk(t *testing.T) {
	f := NewFramer(Options{})
	chunk := []byte("~\"one\"\n~\"two\"\n")

	rec, err := f.Parse(chunk)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "one", rec.(*StreamRecord).Value)
	assert.True(t, f.MoreToParse())

	rec, err = f.Parse(nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "two", rec.(*StreamRecord).Value)
	assert.False(t, f.MoreToParse())
}

func TestFramerConservationAcrossByteAtATimeFeed(t *testing.T) {
	f := NewFramer(Options{})
	whole := `~"one"` + "\n" + `~"two"` + "\n"

	var records []Record
	for i := 0; i < len(whole); i++ {
		rec, err := f.Parse([]byte{whole[i]})
		require.NoError(t, err)
		if rec != nil {
			records = append(records, rec)
		}
		for f.MoreToParse() {
			rec, err := f.Parse(nil)
			require.NoError(t, err)
			if rec != nil {
				records = append(records, rec)
			}
		}
	}

	require.Len(t, records, 2)
	assert.Equal(t, "one", records[0].(*StreamRecord).Value)
	assert.Equal(t, "two", records[1].(*StreamRecord).Value)
}

func TestFramerBadLineDoesNotPoisonNextLine(t *testing.T) {
	f := NewFramer(Options{})
	_, err := f.Parse([]byte("not-an-mi-line\n~\"ok\"\n"))
	require.Error(t, err)

	rec, err := f.Parse(nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "ok", rec.(*StreamRecord).Value)
}

func TestFramerCustomTerminator(t *testing.T) {
	f := NewFramer(Options{Terminator: "\r\n"})
	rec, err := f.Parse([]byte("~\"hi\"\r\n"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "hi", rec.(*StreamRecord).Value)
}

func TestFramerTerminationRecord(t *testing.T) {
	f := NewFramer(Options{})
	rec, err := f.Parse([]byte("(gdb) \n"))
	require.NoError(t, err)
	_, ok := rec.(TerminationRecord)
	assert.True(t, ok)
}

// TestFramerDoesNotAliasReusedReadBuffer guards against stashing a partial
// line by reference into a caller-owned buffer that gets overwritten by the
// next Read, the way cmd/gdbmicat and cmd/gdbmi-live both reuse one []byte
// across repeated reads.
func TestFramerDoesNotAliasReusedReadBuffer(t *testing.T) {
	f := NewFramer(Options{})
	readBuf := make([]byte, 16)

	copy(readBuf, `~"par`)
	rec, err := f.Parse(readBuf[:5])
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Simulate the next Read into the very same backing array, as a
	// bufio.Reader-backed loop would do, before the framer sees more data.
	for i := range readBuf {
		readBuf[i] = 'X'
	}

	copy(readBuf, `tial"`+"\n")
	rec, err = f.Parse(readBuf[:6])
	require.NoError(t, err)
	require.NotNil(t, rec)
	s := rec.(*StreamRecord)
	assert.Equal(t, "partial", s.Value)
}

func TestFramerMaxBufferedBytesOverflow(t *testing.T) {
	f := NewFramer(Options{MaxBufferedBytes: 8})
	_, err := f.Parse([]byte("~\"this line has no terminator yet"))
	require.Error(t, err)
	var pe *ParsingError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrBufferOverflow, pe.Kind)
	assert.Equal(t, 0, f.BufferedBytes(), "buffer is dropped once the cap is exceeded, not held forever")
}

func TestFramerMaxBufferedBytesWithinCap(t *testing.T) {
	f := NewFramer(Options{MaxBufferedBytes: 64})
	rec, err := f.Parse([]byte("~\"hello\"\n"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "hello", rec.(*StreamRecord).Value)
}

func TestFramerZeroMaxBufferedBytesIsUnbounded(t *testing.T) {
	f := NewFramer(Options{})
	_, err := f.Parse([]byte(`~"` + string(make([]byte, 10000))))
	require.NoError(t, err)
}
