package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	prodList = iota + 100
	prodItem
	prodTail
)

// listGrammar builds a parser for comma-separated identifiers:
//
//	List ::= ID (',' ID)*
func listGrammar(t *testing.T, input string, analyzer Analyzer) *Parser {
	t.Helper()
	tz := newTestTokenizer(t, input)
	p := NewParser(tz, analyzer, nil)

	list := NewProductionPattern(prodList, "List")
	alt := NewAlternative()
	alt.AddToken(tokID, 1, 1)
	alt.AddProduction(prodTail, 0, Unbounded)
	list.AddAlternative(alt)
	require.NoError(t, p.AddPattern(list))

	tail := NewProductionPattern(prodTail, "Tail")
	tail.Synthetic = true
	alt = NewAlternative()
	alt.AddToken(tokComma, 1, 1)
	alt.AddToken(tokID, 1, 1)
	tail.AddAlternative(alt)
	require.NoError(t, p.AddPattern(tail))
	return p
}

func leafImages(node Node) []string {
	if node.ChildCount() == 0 {
		if tok, ok := node.(*Token); ok {
			return []string{tok.Image()}
		}
		return nil
	}
	var out []string
	for i := 0; i < node.ChildCount(); i++ {
		out = append(out, leafImages(node.Child(i))...)
	}
	return out
}

func TestParseList(t *testing.T) {
	p := listGrammar(t, "foo, bar ,baz", nil)
	node, err := p.Parse()
	require.NoError(t, err)
	require.NotNil(t, node)

	// The synthetic Tail productions are spliced into the root.
	assert.Equal(t, prodList, node.ID())
	assert.Equal(t, []string{"foo", ",", "bar", ",", "baz"}, leafImages(node))
}

// A duplicate comma produces exactly one error and the remaining
// identifiers are still collected.
func TestParseErrorRecovery(t *testing.T) {
	p := listGrammar(t, "foo,,bar,baz", nil)
	node, err := p.Parse()
	require.Error(t, err)

	log, ok := err.(*ErrorLog)
	require.True(t, ok)
	require.Equal(t, 1, log.Count())
	entry := log.Entries()[0]
	assert.Equal(t, ErrUnexpectedToken, entry.Kind)
	assert.Contains(t, entry.Details, "<ID>")

	require.NotNil(t, node)
	images := leafImages(node)
	assert.Contains(t, images, "foo")
	assert.Contains(t, images, "bar")
	assert.Contains(t, images, "baz")
}

// Parsing the same input with separately constructed parsers yields
// identical trees.
func TestParseDeterminism(t *testing.T) {
	shape := func(node Node) string {
		if node == nil {
			return "<nil>"
		}
		var b strings.Builder
		var walk func(Node)
		walk = func(n Node) {
			if tok, ok := n.(*Token); ok {
				fmt.Fprintf(&b, "%d:%s@%d.%d ", tok.ID(), tok.Image(), tok.StartLine(), tok.StartColumn())
				return
			}
			fmt.Fprintf(&b, "%d(", n.ID())
			for i := 0; i < n.ChildCount(); i++ {
				walk(n.Child(i))
			}
			b.WriteString(") ")
		}
		walk(node)
		return b.String()
	}

	const input = "alpha, beta, gamma, delta"
	first, err := listGrammar(t, input, nil).Parse()
	require.NoError(t, err)
	second, err := listGrammar(t, input, nil).Parse()
	require.NoError(t, err)
	assert.Equal(t, shape(first), shape(second))
}

func TestParseUnexpectedEOF(t *testing.T) {
	p := listGrammar(t, "foo,", nil)
	_, err := p.Parse()
	require.Error(t, err)
	log := err.(*ErrorLog)
	require.Equal(t, 1, log.Count())
	assert.Equal(t, ErrUnexpectedEOF, log.Entries()[0].Kind)
}

func TestParseTrailingInput(t *testing.T) {
	tz := newTestTokenizer(t, "foo 42")
	p := NewParser(tz, nil, nil)
	item := NewProductionPattern(prodItem, "Item")
	alt := NewAlternative()
	alt.AddToken(tokID, 1, 1)
	item.AddAlternative(alt)
	require.NoError(t, p.AddPattern(item))

	_, err := p.Parse()
	require.Error(t, err)
	log := err.(*ErrorLog)
	require.Equal(t, 1, log.Count())
	assert.Contains(t, log.Entries()[0].Message, "expected end of input")
}

// recordingAnalyzer records callback order and can discard or fail.
type recordingAnalyzer struct {
	NopAnalyzer
	events  []string
	failOn  string
	discard string
}

func (a *recordingAnalyzer) Enter(node Node) error {
	a.events = append(a.events, "enter:"+node.Name())
	if node.Name() == a.failOn {
		return fmt.Errorf("refused %s", node.Name())
	}
	return nil
}

func (a *recordingAnalyzer) Exit(node Node) (Node, error) {
	a.events = append(a.events, "exit:"+node.Name())
	if node.Name() == a.discard {
		return nil, nil
	}
	return node, nil
}

func (a *recordingAnalyzer) Child(parent *Production, child Node) error {
	a.events = append(a.events, "child:"+parent.Name()+"<-"+child.Name())
	return nil
}

func TestAnalyzerCallbacks(t *testing.T) {
	a := &recordingAnalyzer{}
	p := listGrammar(t, "foo,bar", a)
	_, err := p.Parse()
	require.NoError(t, err)

	// Synthetic Tail productions never appear in callbacks; their
	// children are attached directly to List.
	for _, ev := range a.events {
		assert.NotContains(t, ev, "Tail")
	}
	assert.Contains(t, a.events, "enter:List")
	assert.Contains(t, a.events, "child:List<-COMMA")
	assert.Contains(t, a.events, "child:List<-ID")
	assert.Contains(t, a.events, "exit:List")
}

func TestAnalyzerDiscardSubtree(t *testing.T) {
	a := &recordingAnalyzer{discard: "List"}
	p := listGrammar(t, "foo", a)
	node, err := p.Parse()
	require.NoError(t, err)
	assert.Nil(t, node)
}

func TestAnalyzerErrorIsCollected(t *testing.T) {
	a := &recordingAnalyzer{failOn: "List"}
	p := listGrammar(t, "foo,bar", a)
	node, err := p.Parse()
	require.Error(t, err)
	log := err.(*ErrorLog)
	require.Equal(t, 1, log.Count())
	assert.Equal(t, ErrAnalysis, log.Entries()[0].Kind)
	// Analyzer errors do not trigger recovery: the tree still builds.
	require.NotNil(t, node)
	assert.Equal(t, []string{"foo", ",", "bar"}, leafImages(node))
}

func TestPrepareRejectsUnknownReference(t *testing.T) {
	tz := newTestTokenizer(t, "")
	p := NewParser(tz, nil, nil)
	pat := NewProductionPattern(prodItem, "Item")
	alt := NewAlternative()
	alt.AddProduction(999, 1, 1)
	pat.AddAlternative(alt)
	require.NoError(t, p.AddPattern(pat))

	err := p.Prepare()
	require.Error(t, err)
	perr := err.(*Error)
	assert.Equal(t, ErrInvalidGrammar, perr.Kind)
}

func TestPrepareRejectsLeftRecursion(t *testing.T) {
	tz := newTestTokenizer(t, "")
	p := NewParser(tz, nil, nil)
	pat := NewProductionPattern(prodList, "List")
	alt := NewAlternative()
	alt.AddProduction(prodList, 1, 1)
	alt.AddToken(tokID, 1, 1)
	pat.AddAlternative(alt)
	require.NoError(t, p.AddPattern(pat))

	err := p.Prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left recursive")
}

func TestPrepareRejectsAmbiguousAlternatives(t *testing.T) {
	tz := newTestTokenizer(t, "")
	p := NewParser(tz, nil, nil)
	pat := NewProductionPattern(prodList, "List")
	for i := 0; i < 2; i++ {
		alt := NewAlternative()
		alt.AddToken(tokID, 1, 1)
		pat.AddAlternative(alt)
	}
	require.NoError(t, p.AddPattern(pat))

	err := p.Prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestPrepareRejectsEmptyPattern(t *testing.T) {
	tz := newTestTokenizer(t, "")
	p := NewParser(tz, nil, nil)
	err := p.AddPattern(NewProductionPattern(prodItem, "Item"))
	require.Error(t, err)
}

// Two-token look-ahead distinguishes alternatives sharing a first
// token.
func TestTwoTokenLookAhead(t *testing.T) {
	build := func(input string) *Parser {
		tz := newTestTokenizer(t, input)
		p := NewParser(tz, nil, nil)
		pat := NewProductionPattern(prodItem, "Item")

		alt := NewAlternative()
		alt.AddToken(tokID, 1, 1)
		alt.AddToken(tokComma, 1, 1)
		alt.AddToken(tokInt, 1, 1)
		pat.AddAlternative(alt)

		alt = NewAlternative()
		alt.AddToken(tokID, 1, 1)
		alt.AddToken(tokID, 1, 1)
		pat.AddAlternative(alt)
		if err := p.AddPattern(pat); err != nil {
			t.Fatal(err)
		}
		return p
	}

	node, err := build("foo, 7").Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", ",", "7"}, leafImages(node))

	node, err = build("foo bar").Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, leafImages(node))
}
