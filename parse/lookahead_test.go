package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

// diffSeqs compares expected and actual sequence token lists, treating
// nil and empty slices as equal.
func diffSeqs(want, got [][]int) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

func seqSet(maxLength int, seqs ...[]int) *LookAheadSet {
	set := NewLookAheadSet(maxLength)
	for _, s := range seqs {
		set.add(sequence{tokens: s})
	}
	return set
}

func setTokens(l *LookAheadSet) [][]int {
	var out [][]int
	for _, s := range l.elements {
		out = append(out, s.tokens)
	}
	return out
}

func TestLookAheadSetAdd(t *testing.T) {
	set := NewLookAheadSet(2)
	set.Add(1, false)
	set.Add(1, false) // duplicate
	set.add(sequence{tokens: []int{1, 2, 3}})
	set.AddEmpty()

	assert.Equal(t, 3, set.Size())
	assert.True(t, set.ContainsEmpty())
	// over-long sequences are truncated to the maximum length
	if diff := diffSeqs([][]int{{1}, {1, 2}, {}}, setTokens(set)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestLookAheadSetHonoursRepeatFlag(t *testing.T) {
	set := NewLookAheadSet(2)
	set.Add(7, true)
	assert.True(t, set.IsRepetitive())

	other := NewLookAheadSet(2)
	other.Add(7, false)
	assert.False(t, other.IsRepetitive())
}

func TestCreateNextSet(t *testing.T) {
	set := seqSet(3, []int{1, 2, 3}, []int{1, 5}, []int{2, 2})
	next := set.CreateNextSet(1)

	assert.Equal(t, 2, next.MaxLength())
	if diff := diffSeqs([][]int{{2, 3}, {5}}, setTokens(next)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateIntersection(t *testing.T) {
	a := seqSet(2, []int{1}, []int{2, 3}, []int{4})
	b := seqSet(2, []int{2, 3}, []int{4}, []int{5})

	inter := a.CreateIntersection(b)
	if diff := diffSeqs([][]int{{2, 3}, {4}}, setTokens(inter)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestIntersectionRepetitiveIsAnd(t *testing.T) {
	a := NewLookAheadSet(1)
	a.Add(1, true)
	b := NewLookAheadSet(1)
	b.Add(1, false)

	inter := a.CreateIntersection(b)
	assert.Equal(t, 1, inter.Size())
	assert.False(t, inter.IsRepetitive())

	b2 := NewLookAheadSet(1)
	b2.Add(1, true)
	assert.True(t, a.CreateIntersection(b2).IsRepetitive())
}

func TestCreateCombination(t *testing.T) {
	a := seqSet(3, []int{1}, []int{2, 3})
	b := seqSet(3, []int{8}, []int{9})

	comb := a.CreateCombination(b)
	if diff := diffSeqs([][]int{{1, 8}, {1, 9}, {2, 3, 8}, {2, 3, 9}}, setTokens(comb)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCombinationMaxLengthPassThrough(t *testing.T) {
	a := seqSet(2, []int{1, 2})
	b := seqSet(2, []int{9})
	comb := a.CreateCombination(b)
	if diff := diffSeqs([][]int{{1, 2}}, setTokens(comb)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCombinationEmptySequenceReplaced(t *testing.T) {
	a := NewLookAheadSet(2)
	a.AddEmpty()
	b := seqSet(2, []int{5}, []int{6})
	comb := a.CreateCombination(b)
	if diff := diffSeqs([][]int{{5}, {6}}, setTokens(comb)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCombinationEmptyOtherKeepsSequences(t *testing.T) {
	a := seqSet(3, []int{1})
	comb := a.CreateCombination(NewLookAheadSet(3))
	if diff := diffSeqs([][]int{{1}}, setTokens(comb)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateFilter(t *testing.T) {
	a := seqSet(3, []int{1, 2, 3}, []int{1, 5}, []int{7})
	prefixes := seqSet(3, []int{1, 2}, []int{7})

	filtered := a.CreateFilter(prefixes)
	if diff := diffSeqs([][]int{{3}, {}}, setTokens(filtered)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateOverlaps(t *testing.T) {
	a := seqSet(3, []int{1, 2}, []int{3}, []int{4, 5})
	b := seqSet(3, []int{1}, []int{3, 9}, []int{6})

	overlaps := a.CreateOverlaps(b)
	if diff := diffSeqs([][]int{{1, 2}, {3}}, setTokens(overlaps)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, a.IsOverlap(b))
	assert.False(t, seqSet(2, []int{8}).IsOverlap(b))
}

func TestCreateRepetitiveMarksFullLengthOnly(t *testing.T) {
	set := seqSet(2, []int{1, 2}, []int{3})
	rep := set.CreateRepetitive()

	assert.True(t, rep.elements[0].repetitive)
	assert.False(t, rep.elements[1].repetitive)
}

func TestRemoveAll(t *testing.T) {
	a := seqSet(2, []int{1}, []int{2}, []int{3})
	a.RemoveAll(seqSet(2, []int{2}))
	if diff := diffSeqs([][]int{{1}, {3}}, setTokens(a)); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}
