package regex

import (
	"unicode"

	"github.com/golangsnmp/mibparse/text"
)

// Matcher applies a compiled Pattern to a text.Buffer. It caches the
// buffer pointer and the outcome of the last match attempt. A Matcher
// is stateful and must not be shared between goroutines; create one
// per buffer with Pattern.Matcher.
type Matcher struct {
	pattern *Pattern
	buf     *text.Buffer
	start   int
	length  int
	readEof bool
}

// Reset rebinds the matcher to a new buffer and clears match state.
func (m *Matcher) Reset(buf *text.Buffer) {
	m.buf = buf
	m.start = 0
	m.length = -1
	m.readEof = false
}

// MatchFromBeginning attempts a match at the buffer's current position.
func (m *Matcher) MatchFromBeginning() bool {
	return m.MatchFrom(0)
}

// MatchFrom attempts a match at the given peek offset from the
// buffer's current position. It reports whether the pattern matched;
// Length returns the matched length afterwards.
func (m *Matcher) MatchFrom(start int) bool {
	m.start = start
	m.readEof = false
	m.length = m.pattern.root.matchLen(m, m.buf, start, 0)
	return m.length >= 0
}

// Start returns the peek offset of the last match attempt.
func (m *Matcher) Start() int {
	return m.start
}

// Length returns the length of the last match, or -1 if the last
// attempt failed.
func (m *Matcher) Length() int {
	return m.length
}

// HasReadEof reports whether the last match attempt peeked past the
// end of the buffered input. It lets a streaming caller distinguish
// "no match" from "need more input".
func (m *Matcher) HasReadEof() bool {
	return m.readEof
}

// peek reads one character at the given offset, recording end-of-input
// and folding case when the pattern is case-insensitive.
func (m *Matcher) peek(buf *text.Buffer, offset int) int {
	c := buf.Peek(offset)
	if c < 0 {
		m.readEof = true
		return -1
	}
	if m.pattern.ignoreCase {
		return int(unicode.ToLower(rune(c)))
	}
	return c
}
