package parse

import (
	"fmt"
	"strings"
)

// callStack tracks the (production id, look-ahead length) pairs on
// the current FIRST-set computation path. Revisiting a production at
// the same length means the grammar is left-recursive; a revisit at a
// shorter length marks the resulting sequences repetitive.
type callStack struct {
	entries []callEntry
}

type callEntry struct {
	id     int
	length int
}

func (s *callStack) push(id, length int) {
	s.entries = append(s.entries, callEntry{id: id, length: length})
}

func (s *callStack) pop() {
	s.entries = s.entries[:len(s.entries)-1]
}

func (s *callStack) contains(id int) bool {
	for _, e := range s.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

func (s *callStack) containsLen(id, length int) bool {
	for _, e := range s.entries {
		if e.id == id && e.length == length {
			return true
		}
	}
	return false
}

// calculateLookAheads computes the look-ahead sets for every
// production, alternative and repeatable element, resolving conflicts
// by growing the sequence length up to maxLookAhead.
func (p *Parser) calculateLookAheads() *Error {
	for _, pattern := range p.patterns {
		if err := p.calculatePattern(pattern); err != nil {
			return err
		}
	}
	return nil
}

// calculatePattern computes per-alternative look-ahead sets for one
// production, lengthening the sequences until the alternatives are
// disjoint or the cap is hit.
func (p *Parser) calculatePattern(pattern *ProductionPattern) *Error {
	length := 1
	sets := make([]*LookAheadSet, pattern.Count())
	for i := 0; i < pattern.Count(); i++ {
		stack := &callStack{}
		stack.push(pattern.ID, length)
		set, err := p.findAlternative(pattern.Alternative(i), length, 0, stack, nil)
		if err != nil {
			return err
		}
		sets[i] = set
		pattern.Alternative(i).lookAhead = set
	}

	union := NewLookAheadSet(maxLookAhead)
	for _, set := range sets {
		union.AddAll(set)
	}
	pattern.lookAhead = union

	previous := NewLookAheadSet(maxLookAhead)
	conflicts := findConflicts(sets, maxLookAhead)
	for !conflicts.IsEmpty() {
		length++
		if length > maxLookAhead {
			return &Error{
				Kind: ErrInvalidGrammar,
				Message: fmt.Sprintf("ambiguous alternatives in production %s on %s",
					pattern.Name, conflicts.String()),
			}
		}
		conflicts.AddAll(previous)
		for i := 0; i < pattern.Count(); i++ {
			if !sets[i].Intersects(conflicts) && !sets[i].IsOverlap(conflicts) {
				continue
			}
			stack := &callStack{}
			stack.push(pattern.ID, length)
			set, err := p.findAlternative(pattern.Alternative(i), length, 0, stack, conflicts)
			if err != nil {
				return err
			}
			sets[i] = set
			pattern.Alternative(i).lookAhead = set
		}
		previous = conflicts
		conflicts = findConflicts(sets, maxLookAhead)
	}

	for i := 0; i < pattern.Count(); i++ {
		if err := p.calculateElements(pattern, pattern.Alternative(i)); err != nil {
			return err
		}
	}
	return nil
}

// findConflicts collects the pairwise intersections of the
// alternative look-ahead sets. Sequences repetitive on both sides are
// infinite-loop safe and excluded.
func findConflicts(sets []*LookAheadSet, maxLength int) *LookAheadSet {
	conflicts := NewLookAheadSet(maxLength)
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			inter := sets[i].CreateIntersection(sets[j])
			for _, seq := range inter.elements {
				if !seq.repetitive {
					conflicts.add(seq)
				}
			}
		}
	}
	return conflicts
}

// calculateElements computes the continuation look-ahead set for
// every optional or repeatable element: the set deciding whether to
// parse one more occurrence or move on. Overlaps with the following
// elements are resolved by lengthening; persistent non-repetitive
// overlaps are grammar errors.
func (p *Parser) calculateElements(pattern *ProductionPattern, alt *Alternative) *Error {
	for pos := 0; pos < alt.Count(); pos++ {
		elem := alt.Element(pos)
		if elem.min == elem.max {
			continue
		}
		length := 1
		for {
			stack := &callStack{}
			stack.push(pattern.ID, length)
			first, err := p.findElementOnce(elem, length, stack, nil)
			if err != nil {
				return err
			}
			stack = &callStack{}
			stack.push(pattern.ID, length)
			follow, err := p.findAlternative(alt, length, pos+1, stack, nil)
			if err != nil {
				return err
			}
			conflicts := first.CreateOverlaps(follow)
			if conflicts.IsEmpty() || conflicts.IsRepetitive() {
				elem.lookAhead = first
				break
			}
			length++
			if length > maxLookAhead {
				return &Error{
					Kind: ErrInvalidGrammar,
					Message: fmt.Sprintf("ambiguous repetition of element %d in production %s on %s",
						pos, pattern.Name, conflicts.String()),
				}
			}
		}
	}
	return nil
}

// findAlternative computes the FIRST set of the alternative's
// elements from the given position. With a filter, only the
// conflicting sequence prefixes are extended; the rest keep their
// shorter form.
func (p *Parser) findAlternative(alt *Alternative, length, pos int, stack *callStack, filter *LookAheadSet) (*LookAheadSet, *Error) {
	if pos >= alt.Count() || length <= 0 {
		set := NewLookAheadSet(max(length, 0))
		set.AddEmpty()
		return set, nil
	}
	elem := alt.Element(pos)
	first, err := p.findElement(elem, length, stack, filter)
	if err != nil {
		return nil, err
	}
	if elem.min == 0 {
		first.AddEmpty()
	}
	if filter == nil {
		reduced := length - first.MinSequenceLength()
		if reduced > 0 && pos+1 < alt.Count() {
			follow, err := p.findAlternative(alt, reduced, pos+1, stack, nil)
			if err != nil {
				return nil, err
			}
			first = first.CreateCombination(follow)
		}
	} else if filter.IsOverlap(first) {
		overlaps := first.CreateOverlaps(filter)
		reduced := length - overlaps.MinSequenceLength()
		subFilter := filter.CreateFilter(overlaps)
		follow, err := p.findAlternative(alt, reduced, pos+1, stack, subFilter)
		if err != nil {
			return nil, err
		}
		first.RemoveAll(overlaps)
		first.AddAll(overlaps.CreateCombination(follow))
	}
	return first, nil
}

// findElement computes the FIRST set of one element including its
// repetitions. Unbounded repetitions iterate to a fixpoint and mark
// their truncated sequences repetitive.
func (p *Parser) findElement(elem *Element, length int, stack *callStack, filter *LookAheadSet) (*LookAheadSet, *Error) {
	once, err := p.findElementOnce(elem, length, stack, filter)
	if err != nil {
		return nil, err
	}
	if elem.max == 1 {
		return once, nil
	}

	result := NewLookAheadSet(length)
	current := once
	if elem.min <= 1 {
		result.AddAll(current)
	}
	for count := 2; elem.max == Unbounded || count <= elem.max; count++ {
		current = current.CreateCombination(once)
		if count >= elem.min {
			before := result.Size()
			result.AddAll(current)
			if elem.max == Unbounded && result.Size() == before {
				break
			}
		}
		if current.IsEmpty() {
			break
		}
	}
	if elem.max == Unbounded {
		result = result.CreateRepetitive()
	}
	return result, nil
}

// findElementOnce computes the FIRST set of a single occurrence of
// the element. A production revisited deeper in the computation marks
// the resulting sequences repetitive.
func (p *Parser) findElementOnce(elem *Element, length int, stack *callStack, filter *LookAheadSet) (*LookAheadSet, *Error) {
	if elem.IsToken() {
		set := NewLookAheadSet(length)
		set.Add(elem.ID(), false)
		return set, nil
	}
	pattern := p.byID[elem.ID()]
	set, err := p.findPattern(pattern, length, stack, filter)
	if err != nil {
		return nil, err
	}
	if stack.contains(pattern.ID) {
		set = set.CreateRepetitive()
	}
	return set, nil
}

// findPattern computes the FIRST set of a production as the union of
// its alternatives. A revisit at the same length is left recursion.
func (p *Parser) findPattern(pattern *ProductionPattern, length int, stack *callStack, filter *LookAheadSet) (*LookAheadSet, *Error) {
	if stack.containsLen(pattern.ID, length) {
		return nil, &Error{
			Kind: ErrInvalidGrammar,
			Message: fmt.Sprintf("infinite loop in grammar: production %s is left recursive (path %s)",
				pattern.Name, stack.String()),
		}
	}
	stack.push(pattern.ID, length)
	defer stack.pop()

	result := NewLookAheadSet(length)
	for i := 0; i < pattern.Count(); i++ {
		set, err := p.findAlternative(pattern.Alternative(i), length, 0, stack, filter)
		if err != nil {
			return nil, err
		}
		result.AddAll(set)
	}
	return result, nil
}

func (s *callStack) String() string {
	var b strings.Builder
	for i, e := range s.entries {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "%d/%d", e.id, e.length)
	}
	return b.String()
}
