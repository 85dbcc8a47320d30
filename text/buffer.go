// Package text provides a streaming character buffer with unbounded
// look-ahead and line/column tracking. It is the input boundary shared
// by the regex matcher and the tokenizer.
package text

import (
	"bufio"
	"io"
	"strings"
)

const (
	// blockSize is the granularity of buffer growth and the trim threshold.
	blockSize = 1024
	// retainChars is how much consumed history a trim leaves before the
	// current position, so error reporting can quote recent input.
	retainChars = 16
)

// Buffer is a growing window of characters fetched from an underlying
// reader. Line and column always describe the next character to consume.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	buf   []rune
	start int // stream offset of buf[0]
	pos   int // index into buf of the next unread character
	line  int
	col   int
	rd    io.RuneReader
	src   io.Reader // original reader, closed on exhaustion if it is a Closer
	err   error     // sticky IO error; buffer behaves as EOF once set
}

// NewBuffer returns a Buffer reading characters from r.
// The buffer owns r and closes it (if it is an io.Closer) once exhausted
// or on Dispose.
func NewBuffer(r io.Reader) *Buffer {
	b := &Buffer{line: 1, col: 1, src: r}
	if rr, ok := r.(io.RuneReader); ok {
		b.rd = rr
	} else if r != nil {
		b.rd = bufio.NewReader(r)
	}
	return b
}

// NewStringBuffer returns a Buffer over an in-memory string.
func NewStringBuffer(s string) *Buffer {
	return NewBuffer(strings.NewReader(s))
}

// Position returns the stream offset of the next character to consume.
func (b *Buffer) Position() int {
	return b.start + b.pos
}

// LineNumber returns the 1-based line of the next character to consume.
func (b *Buffer) LineNumber() int {
	return b.line
}

// ColumnNumber returns the 1-based column of the next character to consume.
func (b *Buffer) ColumnNumber() int {
	return b.col
}

// Length returns the total number of characters buffered so far,
// counted from the start of the stream.
func (b *Buffer) Length() int {
	return b.start + len(b.buf)
}

// Err returns the sticky IO error, if any. A plain end of input does
// not set an error; only a failing underlying reader does.
func (b *Buffer) Err() error {
	return b.err
}

// Eof reports whether all input has been consumed.
func (b *Buffer) Eof() bool {
	return b.Peek(0) < 0
}

// Peek returns the character at the given offset from the current
// position, or -1 at end of input. Peeking does not consume input.
func (b *Buffer) Peek(offset int) int {
	if !b.ensure(offset + 1) {
		return -1
	}
	return int(b.buf[b.pos+offset])
}

// Read consumes up to n characters and returns them. The result is
// shorter than n if the input ends first, and empty once no characters
// remain. Line and column counters advance over the consumed text;
// a line feed increments the line and resets the column (a lone
// carriage return is an ordinary character).
func (b *Buffer) Read(n int) string {
	b.ensure(n)
	avail := len(b.buf) - b.pos
	if avail <= 0 {
		return ""
	}
	if n > avail {
		n = avail
	}
	chars := b.buf[b.pos : b.pos+n]
	for _, c := range chars {
		if c == '\n' {
			b.line++
			b.col = 1
		} else {
			b.col++
		}
	}
	s := string(chars)
	b.pos += n
	b.trim()
	return s
}

// Substring returns length characters starting at the given stream
// offset. Text trimmed out of the retained history, or beyond the
// buffered window, is clipped.
func (b *Buffer) Substring(index, length int) string {
	lo := index - b.start
	if lo < 0 {
		length += lo
		lo = 0
	}
	if lo >= len(b.buf) || length <= 0 {
		return ""
	}
	hi := lo + length
	if hi > len(b.buf) {
		hi = len(b.buf)
	}
	return string(b.buf[lo:hi])
}

// Dispose releases the buffer contents and closes the underlying reader.
// The buffer reads as end of input afterwards.
func (b *Buffer) Dispose() {
	b.buf = nil
	b.start += b.pos
	b.pos = 0
	b.closeReader()
}

// ensure fills the buffer until at least n unread characters are
// available, end of input is reached, or the reader fails. It reports
// whether n characters are available.
func (b *Buffer) ensure(n int) bool {
	for len(b.buf)-b.pos < n {
		if b.rd == nil {
			return false
		}
		if err := b.fillBlock(); err != nil {
			if err != io.EOF {
				b.err = err
			}
			b.closeReader()
		}
	}
	return true
}

// fillBlock reads up to one block of characters from the reader.
func (b *Buffer) fillBlock() error {
	for i := 0; i < blockSize; i++ {
		c, _, err := b.rd.ReadRune()
		if err != nil {
			return err
		}
		b.buf = append(b.buf, c)
	}
	return nil
}

// trim drops consumed history once the position has moved past one
// block, keeping retainChars characters for look-back.
func (b *Buffer) trim() {
	if b.pos <= blockSize {
		return
	}
	keep := b.pos - retainChars
	b.buf = append(b.buf[:0], b.buf[keep:]...)
	b.start += keep
	b.pos = retainChars
}

func (b *Buffer) closeReader() {
	if c, ok := b.src.(io.Closer); ok {
		c.Close()
	}
	b.rd = nil
	b.src = nil
}
