package regex

import (
	"fmt"
	"slices"
	"strings"

	"github.com/golangsnmp/mibparse/text"
)

// element is one node of a compiled pattern. The match contract:
// matchLen returns the length of the skip'th match of this element, in
// the element's order of preference, at the given peek offset, or -1 when no such alternative
// exists. skip lets a parent element re-enter with the next-best
// outcome while backtracking.
type element interface {
	matchLen(m *Matcher, buf *text.Buffer, start, skip int) int
	writeTo(b *strings.Builder)
}

// --- string element ---

// stringElement matches a fixed run of characters. It has exactly one
// outcome, so any nonzero skip fails.
type stringElement struct {
	value []rune
}

func newStringElement(value []rune) *stringElement {
	return &stringElement{value: value}
}

func (e *stringElement) matchLen(m *Matcher, buf *text.Buffer, start, skip int) int {
	if skip != 0 {
		return -1
	}
	for i, want := range e.value {
		c := m.peek(buf, start+i)
		if c < 0 || rune(c) != want {
			return -1
		}
	}
	return len(e.value)
}

func (e *stringElement) writeTo(b *strings.Builder) {
	b.WriteString(string(e.value))
}

// --- alternative element ---

// alternativeElement matches either branch, preferring the longer
// match. Backtracking walks skip pairs across the two branches,
// incrementing the first branch on equal lengths.
type alternativeElement struct {
	first  element
	second element
}

func (e *alternativeElement) matchLen(m *Matcher, buf *text.Buffer, start, skip int) int {
	length := 0
	skip1 := 0
	skip2 := 0
	for length >= 0 && skip1+skip2 <= skip {
		length1 := e.first.matchLen(m, buf, start, skip1)
		length2 := e.second.matchLen(m, buf, start, skip2)
		if length1 >= length2 {
			length = length1
			skip1++
		} else {
			length = length2
			skip2++
		}
	}
	return length
}

func (e *alternativeElement) writeTo(b *strings.Builder) {
	b.WriteByte('(')
	e.first.writeTo(b)
	b.WriteByte('|')
	e.second.writeTo(b)
	b.WriteByte(')')
}

// --- combine element ---

// combineElement is concatenation. It iterates backtrack indices of
// the first element, asking the second for successive alternatives at
// each feasible split point.
type combineElement struct {
	first  element
	second element
}

func (e *combineElement) matchLen(m *Matcher, buf *text.Buffer, start, skip int) int {
	length1 := -1
	length2 := 0
	skip1 := 0
	skip2 := 0
	for skip >= 0 {
		length1 = e.first.matchLen(m, buf, start, skip1)
		if length1 < 0 {
			return -1
		}
		length2 = e.second.matchLen(m, buf, start+length1, skip2)
		if length2 < 0 {
			skip1++
			skip2 = 0
		} else {
			skip--
			if skip >= 0 {
				skip2++
			}
		}
	}
	return length1 + length2
}

func (e *combineElement) writeTo(b *strings.Builder) {
	e.first.writeTo(b)
	e.second.writeTo(b)
}

// --- repeat element ---

// repeatMode selects the matching strategy for a repetition.
type repeatMode int

const (
	modeGreedy repeatMode = iota
	modeReluctant
	modePossessive
)

// unboundedMax marks a repetition with no upper bound.
const unboundedMax = -1

// repeatElement matches between min and max repetitions of its inner
// element. Greedy prefers the longest total, reluctant the shortest,
// possessive consumes greedily and offers the parent no alternatives.
type repeatElement struct {
	elem element
	min  int
	max  int
	mode repeatMode
}

func (e *repeatElement) matchLen(m *Matcher, buf *text.Buffer, start, skip int) int {
	if e.mode == modePossessive {
		if skip != 0 {
			return -1
		}
		return e.matchPossessive(m, buf, start)
	}
	lengths := e.findLengths(m, buf, start)
	if skip >= len(lengths) {
		return -1
	}
	if e.mode == modeGreedy {
		return lengths[len(lengths)-1-skip]
	}
	return lengths[skip]
}

// matchPossessive consumes first-choice matches of the inner element
// until it fails, requiring at least min repetitions.
func (e *repeatElement) matchPossessive(m *Matcher, buf *text.Buffer, start int) int {
	length := 0
	count := 0
	for e.max == unboundedMax || count < e.max {
		l := e.elem.matchLen(m, buf, start+length, 0)
		if l < 0 {
			break
		}
		length += l
		count++
		if l == 0 {
			break
		}
	}
	if count < e.min {
		return -1
	}
	return length
}

// findLengths computes the ascending set of total lengths reachable
// with an allowed repetition count. The per-count frontier converges
// because input is finite and zero-width repetitions add no lengths.
func (e *repeatElement) findLengths(m *Matcher, buf *text.Buffer, start int) []int {
	reachable := map[int]bool{}
	if e.min == 0 {
		reachable[0] = true
	}
	frontier := map[int]bool{0: true}
	for count := 1; e.max == unboundedMax || count <= e.max; count++ {
		next := map[int]bool{}
		for length := range frontier {
			for s := 0; ; s++ {
				l := e.elem.matchLen(m, buf, start+length, s)
				if l < 0 {
					break
				}
				next[length+l] = true
			}
		}
		progressed := false
		for length := range next {
			if count >= e.min && !reachable[length] {
				reachable[length] = true
				progressed = true
			}
		}
		if len(next) == 0 || (count >= e.min && !progressed) {
			break
		}
		frontier = next
	}
	lengths := make([]int, 0, len(reachable))
	for length := range reachable {
		lengths = append(lengths, length)
	}
	slices.Sort(lengths)
	return lengths
}

func (e *repeatElement) writeTo(b *strings.Builder) {
	e.elem.writeTo(b)
	switch {
	case e.min == 0 && e.max == 1:
		b.WriteByte('?')
	case e.min == 0 && e.max == unboundedMax:
		b.WriteByte('*')
	case e.min == 1 && e.max == unboundedMax:
		b.WriteByte('+')
	case e.max == unboundedMax:
		fmt.Fprintf(b, "{%d,}", e.min)
	case e.min == e.max:
		fmt.Fprintf(b, "{%d}", e.min)
	default:
		fmt.Fprintf(b, "{%d,%d}", e.min, e.max)
	}
	switch e.mode {
	case modeReluctant:
		b.WriteByte('?')
	case modePossessive:
		b.WriteByte('+')
	}
}
