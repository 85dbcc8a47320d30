package regex

import (
	"strings"

	"github.com/golangsnmp/mibparse/text"
)

// charRange is an inclusive character range inside a set.
type charRange struct {
	min rune
	max rune
}

// charSetElement matches exactly one character against a set built
// from individual characters, ranges and nested subsets. The
// predefined singletons below are shared between patterns; they are
// stateless and must not be mutated.
type charSetElement struct {
	inverted bool
	chars    []rune
	ranges   []charRange
	subsets  []*charSetElement
	name     string // display name for predefined sets
}

// Predefined character set singletons.
var (
	dotSet = &charSetElement{
		inverted: true,
		chars:    []rune{'\n', '\r'},
		name:     ".",
	}
	digitSet = &charSetElement{
		ranges: []charRange{{'0', '9'}},
		name:   `\d`,
	}
	nonDigitSet = &charSetElement{
		inverted: true,
		ranges:   []charRange{{'0', '9'}},
		name:     `\D`,
	}
	whitespaceSet = &charSetElement{
		chars: []rune{' ', '\t', '\n', '\f', '\r', 0x0b},
		name:  `\s`,
	}
	nonWhitespaceSet = &charSetElement{
		inverted: true,
		chars:    []rune{' ', '\t', '\n', '\f', '\r', 0x0b},
		name:     `\S`,
	}
	wordSet = &charSetElement{
		chars:  []rune{'_'},
		ranges: []charRange{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}},
		name:   `\w`,
	}
	nonWordSet = &charSetElement{
		inverted: true,
		chars:    []rune{'_'},
		ranges:   []charRange{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}},
		name:     `\W`,
	}
)

func (e *charSetElement) addChar(c rune) {
	e.chars = append(e.chars, c)
}

func (e *charSetElement) addRange(min, max rune) {
	e.ranges = append(e.ranges, charRange{min: min, max: max})
}

func (e *charSetElement) addSubset(sub *charSetElement) {
	e.subsets = append(e.subsets, sub)
}

// contains reports set membership ignoring inversion.
func (e *charSetElement) contains(c rune) bool {
	for _, ch := range e.chars {
		if ch == c {
			return true
		}
	}
	for _, r := range e.ranges {
		if r.min <= c && c <= r.max {
			return true
		}
	}
	for _, sub := range e.subsets {
		if sub.matches(c) {
			return true
		}
	}
	return false
}

// matches reports whether the character belongs to the set,
// honouring inversion.
func (e *charSetElement) matches(c rune) bool {
	return e.contains(c) != e.inverted
}

func (e *charSetElement) matchLen(m *Matcher, buf *text.Buffer, start, skip int) int {
	if skip != 0 {
		return -1
	}
	c := m.peek(buf, start)
	if c < 0 {
		return -1
	}
	if !e.matches(rune(c)) {
		return -1
	}
	return 1
}

func (e *charSetElement) writeTo(b *strings.Builder) {
	if e.name != "" {
		b.WriteString(e.name)
		return
	}
	b.WriteByte('[')
	if e.inverted {
		b.WriteByte('^')
	}
	for _, c := range e.chars {
		b.WriteRune(c)
	}
	for _, r := range e.ranges {
		b.WriteRune(r.min)
		b.WriteByte('-')
		b.WriteRune(r.max)
	}
	for _, sub := range e.subsets {
		sub.writeTo(b)
	}
	b.WriteByte(']')
}
