package parse

import (
	"fmt"
	"slices"
	"strings"
)

// LookAheadSet is a set of token-id sequences distinguishing a grammar
// position from its siblings. Sequences are capped at the set's
// maximum length; a sequence marked repetitive was truncated inside an
// unbounded repetition or recursion and may expand without limit,
// which exempts it from ambiguity diagnostics.
type LookAheadSet struct {
	maxLength int
	elements  []sequence
}

// sequence is one token-id sequence of a look-ahead set. The empty
// sequence is allowed and matches without consuming look-ahead.
type sequence struct {
	repetitive bool
	tokens     []int
}

func (s sequence) equals(other sequence) bool {
	return slices.Equal(s.tokens, other.tokens)
}

// isPrefixOf reports whether s is a non-empty prefix of other.
// Zero-length prefixes carry no distinguishing information and are
// never considered overlapping.
func (s sequence) isPrefixOf(other sequence) bool {
	if len(s.tokens) == 0 || len(s.tokens) > len(other.tokens) {
		return false
	}
	return slices.Equal(s.tokens, other.tokens[:len(s.tokens)])
}

// concat returns s followed by other, truncated to maxLength. The
// result is repetitive if the contributing truncated side was.
func (s sequence) concat(other sequence, maxLength int) sequence {
	tokens := make([]int, 0, min(maxLength, len(s.tokens)+len(other.tokens)))
	tokens = append(tokens, s.tokens...)
	for _, t := range other.tokens {
		if len(tokens) >= maxLength {
			break
		}
		tokens = append(tokens, t)
	}
	rep := s.repetitive
	if len(s.tokens)+len(other.tokens) > len(tokens) {
		rep = rep || other.repetitive
	}
	return sequence{repetitive: rep, tokens: tokens}
}

func (s sequence) String() string {
	parts := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		parts[i] = fmt.Sprint(t)
	}
	str := strings.Join(parts, " ")
	if s.repetitive {
		str += " ..."
	}
	return "[" + str + "]"
}

// NewLookAheadSet returns an empty set with the given maximum
// sequence length.
func NewLookAheadSet(maxLength int) *LookAheadSet {
	return &LookAheadSet{maxLength: maxLength}
}

// MaxLength returns the maximum sequence length of the set.
func (l *LookAheadSet) MaxLength() int {
	return l.maxLength
}

// Size returns the number of sequences in the set.
func (l *LookAheadSet) Size() int {
	return len(l.elements)
}

// IsEmpty reports whether the set contains no sequences.
func (l *LookAheadSet) IsEmpty() bool {
	return len(l.elements) == 0
}

// ContainsEmpty reports whether the set contains the empty sequence.
func (l *LookAheadSet) ContainsEmpty() bool {
	for _, s := range l.elements {
		if len(s.tokens) == 0 {
			return true
		}
	}
	return false
}

// IsRepetitive reports whether every sequence in the set is
// repetitive. An all-repetitive conflict is infinite-loop-safe and
// produces no diagnostic.
func (l *LookAheadSet) IsRepetitive() bool {
	if len(l.elements) == 0 {
		return false
	}
	for _, s := range l.elements {
		if !s.repetitive {
			return false
		}
	}
	return true
}

// MinSequenceLength returns the length of the shortest sequence.
func (l *LookAheadSet) MinSequenceLength() int {
	min := 0
	for i, s := range l.elements {
		if i == 0 || len(s.tokens) < min {
			min = len(s.tokens)
		}
	}
	return min
}

// InitialTokens returns the distinct first tokens of the sequences,
// in insertion order. Used for expected-token error reporting.
func (l *LookAheadSet) InitialTokens() []int {
	var tokens []int
	for _, s := range l.elements {
		if len(s.tokens) > 0 && !slices.Contains(tokens, s.tokens[0]) {
			tokens = append(tokens, s.tokens[0])
		}
	}
	return tokens
}

// contains reports whether an identical sequence is present.
func (l *LookAheadSet) contains(seq sequence) bool {
	for _, s := range l.elements {
		if s.equals(seq) {
			return true
		}
	}
	return false
}

// add inserts a sequence, truncating to the maximum length and
// dropping duplicates.
func (l *LookAheadSet) add(seq sequence) {
	if len(seq.tokens) > l.maxLength {
		seq = sequence{repetitive: seq.repetitive, tokens: seq.tokens[:l.maxLength]}
	}
	if !l.contains(seq) {
		l.elements = append(l.elements, seq)
	}
}

// Add inserts a single-token sequence. The repeat flag marks the
// sequence as repetitive.
func (l *LookAheadSet) Add(token int, repeat bool) {
	l.add(sequence{repetitive: repeat, tokens: []int{token}})
}

// AddEmpty inserts the empty sequence.
func (l *LookAheadSet) AddEmpty() {
	l.add(sequence{})
}

// AddAll inserts every sequence of another set.
func (l *LookAheadSet) AddAll(other *LookAheadSet) {
	for _, s := range other.elements {
		l.add(s)
	}
}

// RemoveAll removes every sequence also present in another set.
func (l *LookAheadSet) RemoveAll(other *LookAheadSet) {
	kept := l.elements[:0]
	for _, s := range l.elements {
		if !other.contains(s) {
			kept = append(kept, s)
		}
	}
	l.elements = kept
}

// IsNext reports whether the parser's upcoming tokens match some
// sequence in the set. The empty sequence matches trivially.
func (l *LookAheadSet) IsNext(p *Parser) bool {
	for _, s := range l.elements {
		if s.matchesParser(p) {
			return true
		}
	}
	return false
}

// isNextNonEmpty is like IsNext but ignores the empty sequence, so a
// nullable position only matches on actual look-ahead tokens.
func (l *LookAheadSet) isNextNonEmpty(p *Parser) bool {
	for _, s := range l.elements {
		if len(s.tokens) > 0 && s.matchesParser(p) {
			return true
		}
	}
	return false
}

// IsNextN is like IsNext but only considers the first n tokens of
// each sequence.
func (l *LookAheadSet) IsNextN(p *Parser, n int) bool {
	for _, s := range l.elements {
		trimmed := s
		if len(trimmed.tokens) > n {
			trimmed.tokens = trimmed.tokens[:n]
		}
		if trimmed.matchesParser(p) {
			return true
		}
	}
	return false
}

func (s sequence) matchesParser(p *Parser) bool {
	for i, id := range s.tokens {
		tok := p.peekToken(i)
		if tok == nil || tok.ID() != id {
			return false
		}
	}
	return true
}

// Intersects reports whether the sets share an identical sequence.
func (l *LookAheadSet) Intersects(other *LookAheadSet) bool {
	for _, s := range l.elements {
		if other.contains(s) {
			return true
		}
	}
	return false
}

// IsOverlap reports whether some sequence in the set is a prefix of a
// sequence in the other set, or vice versa.
func (l *LookAheadSet) IsOverlap(other *LookAheadSet) bool {
	for _, a := range l.elements {
		for _, b := range other.elements {
			if a.isPrefixOf(b) || b.isPrefixOf(a) {
				return true
			}
		}
	}
	return false
}

// CreateNextSet returns the sequences starting with the given token,
// shifted one position left. The result's maximum length shrinks by
// one.
func (l *LookAheadSet) CreateNextSet(token int) *LookAheadSet {
	result := NewLookAheadSet(max(l.maxLength-1, 0))
	for _, s := range l.elements {
		if len(s.tokens) > 0 && s.tokens[0] == token {
			result.add(sequence{repetitive: s.repetitive, tokens: s.tokens[1:]})
		}
	}
	return result
}

// CreateIntersection returns the sequences present in both sets. A
// result sequence is repetitive only when both sides are.
func (l *LookAheadSet) CreateIntersection(other *LookAheadSet) *LookAheadSet {
	result := NewLookAheadSet(l.maxLength)
	for _, a := range l.elements {
		for _, b := range other.elements {
			if a.equals(b) {
				result.add(sequence{
					repetitive: a.repetitive && b.repetitive,
					tokens:     a.tokens,
				})
				break
			}
		}
	}
	return result
}

// CreateCombination returns the Cartesian concatenation of the two
// sets, truncated to this set's maximum length. A sequence already at
// maximum length passes through unchanged; the empty sequence is
// replaced by the other set's sequences. An empty other set leaves
// this set's sequences as they are.
func (l *LookAheadSet) CreateCombination(other *LookAheadSet) *LookAheadSet {
	result := NewLookAheadSet(l.maxLength)
	if other.IsEmpty() {
		result.AddAll(l)
		return result
	}
	for _, a := range l.elements {
		if len(a.tokens) >= l.maxLength {
			result.add(a)
			continue
		}
		for _, b := range other.elements {
			result.add(a.concat(b, l.maxLength))
		}
	}
	return result
}

// CreateFilter returns this set's sequences left-trimmed by the
// matching prefixes in the other set.
func (l *LookAheadSet) CreateFilter(other *LookAheadSet) *LookAheadSet {
	result := NewLookAheadSet(l.maxLength)
	for _, a := range l.elements {
		for _, b := range other.elements {
			if b.isPrefixOf(a) {
				result.add(sequence{
					repetitive: a.repetitive,
					tokens:     a.tokens[len(b.tokens):],
				})
			}
		}
	}
	return result
}

// CreateOverlaps returns this set's sequences that are a prefix of a
// sequence in the other set, or have such a sequence as a prefix.
func (l *LookAheadSet) CreateOverlaps(other *LookAheadSet) *LookAheadSet {
	result := NewLookAheadSet(l.maxLength)
	for _, a := range l.elements {
		for _, b := range other.elements {
			if a.isPrefixOf(b) || b.isPrefixOf(a) {
				result.add(a)
				break
			}
		}
	}
	return result
}

// CreateRepetitive returns a copy with every maximum-length sequence
// marked repetitive. Shorter sequences are complete and keep their
// flag.
func (l *LookAheadSet) CreateRepetitive() *LookAheadSet {
	result := NewLookAheadSet(l.maxLength)
	for _, s := range l.elements {
		if len(s.tokens) >= l.maxLength {
			result.add(sequence{repetitive: true, tokens: s.tokens})
		} else {
			result.add(s)
		}
	}
	return result
}

func (l *LookAheadSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range l.elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteByte('}')
	return b.String()
}
