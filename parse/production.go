package parse

import (
	"fmt"
	"strings"
)

// Unbounded marks a repetition with no upper limit in an element's
// max count.
const Unbounded = -1

// ProductionPattern describes one production of a grammar as an
// ordered list of alternatives. The first pattern added to a parser
// is the start production. A Synthetic pattern is an auto-generated
// helper (typically from repetition rewrites); its parse-tree node is
// spliced into the grandparent and analyzer callbacks skip it.
type ProductionPattern struct {
	ID        int
	Name      string
	Synthetic bool

	alternatives []*Alternative
	lookAhead    *LookAheadSet
}

// NewProductionPattern returns an empty production pattern.
func NewProductionPattern(id int, name string) *ProductionPattern {
	return &ProductionPattern{ID: id, Name: name}
}

// AddAlternative appends an alternative to the pattern.
func (p *ProductionPattern) AddAlternative(alt *Alternative) {
	alt.pattern = p
	p.alternatives = append(p.alternatives, alt)
}

// Count returns the number of alternatives.
func (p *ProductionPattern) Count() int {
	return len(p.alternatives)
}

// Alternative returns the alternative at index.
func (p *ProductionPattern) Alternative(index int) *Alternative {
	return p.alternatives[index]
}

// LookAhead returns the look-ahead set computed by Prepare, or nil.
func (p *ProductionPattern) LookAhead() *LookAheadSet {
	return p.lookAhead
}

func (p *ProductionPattern) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%d) =", p.Name, p.ID)
	for i, alt := range p.alternatives {
		if i > 0 {
			b.WriteString(" |")
		}
		b.WriteString(alt.String())
	}
	return b.String()
}

// Alternative is one ordered right-hand side of a production pattern.
type Alternative struct {
	pattern   *ProductionPattern
	elements  []*Element
	lookAhead *LookAheadSet
}

// NewAlternative returns an empty alternative.
func NewAlternative() *Alternative {
	return &Alternative{}
}

// Pattern returns the owning production pattern.
func (a *Alternative) Pattern() *ProductionPattern {
	return a.pattern
}

// AddToken appends a token element. max may be Unbounded.
func (a *Alternative) AddToken(id, min, max int) {
	a.addElement(&Element{token: true, id: id, min: min, max: max})
}

// AddProduction appends a production element. max may be Unbounded.
func (a *Alternative) AddProduction(id, min, max int) {
	a.addElement(&Element{id: id, min: min, max: max})
}

func (a *Alternative) addElement(e *Element) {
	if e.min < 0 {
		e.min = 0
	}
	if e.max != Unbounded && e.max < e.min {
		e.max = e.min
	}
	a.elements = append(a.elements, e)
}

// Count returns the number of elements.
func (a *Alternative) Count() int {
	return len(a.elements)
}

// Element returns the element at index.
func (a *Alternative) Element(index int) *Element {
	return a.elements[index]
}

// LookAhead returns the look-ahead set computed by Prepare, or nil.
func (a *Alternative) LookAhead() *LookAheadSet {
	return a.lookAhead
}

// IsNullable reports whether the alternative can match zero tokens.
func (a *Alternative) IsNullable() bool {
	for _, e := range a.elements {
		if e.min > 0 {
			return false
		}
	}
	return true
}

func (a *Alternative) String() string {
	var b strings.Builder
	for _, e := range a.elements {
		b.WriteByte(' ')
		b.WriteString(e.String())
	}
	return b.String()
}

// Element is one item of an alternative: a token or production
// reference with a repetition count.
type Element struct {
	token bool
	id    int
	min   int
	max   int

	lookAhead *LookAheadSet
}

// IsToken reports whether the element references a token pattern.
func (e *Element) IsToken() bool {
	return e.token
}

// IsProduction reports whether the element references a production.
func (e *Element) IsProduction() bool {
	return !e.token
}

// ID returns the referenced token or production pattern id.
func (e *Element) ID() int {
	return e.id
}

// MinCount returns the minimum number of repetitions.
func (e *Element) MinCount() int {
	return e.min
}

// MaxCount returns the maximum number of repetitions, or Unbounded.
func (e *Element) MaxCount() int {
	return e.max
}

// LookAhead returns the continuation look-ahead set computed by
// Prepare for optional or repeatable elements, or nil.
func (e *Element) LookAhead() *LookAheadSet {
	return e.lookAhead
}

func (e *Element) String() string {
	kind := "P"
	if e.token {
		kind = "T"
	}
	switch {
	case e.min == 1 && e.max == 1:
		return fmt.Sprintf("%s%d", kind, e.id)
	case e.min == 0 && e.max == 1:
		return fmt.Sprintf("%s%d?", kind, e.id)
	case e.min == 0 && e.max == Unbounded:
		return fmt.Sprintf("%s%d*", kind, e.id)
	case e.min == 1 && e.max == Unbounded:
		return fmt.Sprintf("%s%d+", kind, e.id)
	case e.max == Unbounded:
		return fmt.Sprintf("%s%d{%d,}", kind, e.id, e.min)
	default:
		return fmt.Sprintf("%s%d{%d,%d}", kind, e.id, e.min, e.max)
	}
}
