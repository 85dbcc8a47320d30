package text

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPeekRead(t *testing.T) {
	b := NewStringBuffer("foo bar")

	assert.Equal(t, int('f'), b.Peek(0))
	assert.Equal(t, int('o'), b.Peek(1))
	assert.Equal(t, int('b'), b.Peek(4))
	assert.Equal(t, -1, b.Peek(7))

	assert.Equal(t, "foo", b.Read(3))
	assert.Equal(t, int(' '), b.Peek(0))
	assert.Equal(t, " bar", b.Read(10))
	assert.Equal(t, "", b.Read(1))
	assert.True(t, b.Eof())
	assert.NoError(t, b.Err())
}

// Read must return exactly what Peek promised, in order.
func TestBufferPeekReadConsistency(t *testing.T) {
	const input = "alpha\nbeta gamma\ndelta"
	b := NewStringBuffer(input)

	for off := 0; off < len(input); off += 5 {
		var want []rune
		for i := 0; i < 5; i++ {
			c := b.Peek(i)
			if c < 0 {
				break
			}
			want = append(want, rune(c))
		}
		require.Equal(t, string(want), b.Read(5))
	}
	assert.True(t, b.Eof())
}

func TestBufferLineColumn(t *testing.T) {
	b := NewStringBuffer("ab\ncd\r\nef")

	assert.Equal(t, 1, b.LineNumber())
	assert.Equal(t, 1, b.ColumnNumber())

	b.Read(2)
	assert.Equal(t, 1, b.LineNumber())
	assert.Equal(t, 3, b.ColumnNumber())

	b.Read(1) // \n
	assert.Equal(t, 2, b.LineNumber())
	assert.Equal(t, 1, b.ColumnNumber())

	// A lone \r is an ordinary character: it advances the column.
	b.Read(3) // cd\r
	assert.Equal(t, 2, b.LineNumber())
	assert.Equal(t, 4, b.ColumnNumber())

	b.Read(3) // \nef
	assert.Equal(t, 3, b.LineNumber())
	assert.Equal(t, 3, b.ColumnNumber())
}

func TestBufferSubstring(t *testing.T) {
	b := NewStringBuffer("identifier 1234")
	b.Read(10)

	assert.Equal(t, "identifier", b.Substring(0, 10))
	assert.Equal(t, "dent", b.Substring(1, 4))
	assert.Equal(t, " 1234", b.Substring(10, 99))
	assert.Equal(t, "", b.Substring(20, 4))
}

func TestBufferTrimKeepsHistory(t *testing.T) {
	big := strings.Repeat("x", 3000) + "tail"
	b := NewStringBuffer(big)

	b.Read(2000)
	pos := b.Position()
	assert.Equal(t, 2000, pos)

	// At least 16 characters of history stay addressable after trimming.
	assert.Equal(t, strings.Repeat("x", 16), b.Substring(pos-16, 16))
	assert.Equal(t, strings.Repeat("x", 1000)+"tail", b.Read(2000))
}

type failingReader struct {
	data string
	read int
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.read >= len(r.data) {
		return 0, errors.New("broken pipe")
	}
	n := copy(p, r.data[r.read:])
	r.read += n
	return n, nil
}

func TestBufferReaderFailure(t *testing.T) {
	b := NewBuffer(&failingReader{data: "abc"})

	assert.Equal(t, "abc", b.Read(10))
	assert.True(t, b.Eof())
	require.Error(t, b.Err())
	assert.Contains(t, b.Err().Error(), "broken pipe")

	// The reader is discarded: repeated reads stay at EOF.
	assert.Equal(t, "", b.Read(1))
}

func TestBufferDispose(t *testing.T) {
	b := NewStringBuffer("abc")
	b.Read(1)
	b.Dispose()

	assert.Equal(t, -1, b.Peek(0))
	assert.Equal(t, "", b.Read(3))
	assert.Equal(t, 1, b.Position())
}

var _ io.Reader = (*failingReader)(nil)
