package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tokInt = iota + 1
	tokID
	tokWS
	tokComma
	tokIf
	tokBad
)

func newTestTokenizer(t *testing.T, input string) *Tokenizer {
	t.Helper()
	tz := NewTokenizer(strings.NewReader(input), nil)
	// Literals go first so they win equal-length ties against the
	// identifier regex, the way keyword grammars are laid out.
	patterns := []*TokenPattern{
		{ID: tokComma, Name: "COMMA", Kind: PatternString, Image: ","},
		{ID: tokIf, Name: "IF", Kind: PatternString, Image: "if"},
		{ID: tokInt, Name: "INT", Kind: PatternRegex, Image: "[0-9]+"},
		{ID: tokID, Name: "ID", Kind: PatternRegex, Image: "[A-Za-z_][A-Za-z0-9_]*"},
		{ID: tokWS, Name: "WS", Kind: PatternRegex, Image: "[ \t\n]+", Ignored: true},
	}
	for _, p := range patterns {
		require.NoError(t, tz.Add(p))
	}
	return tz
}

type tokenTuple struct {
	id    int
	image string
	line  int
	col   int
}

func readAllTokens(t *testing.T, tz *Tokenizer) []tokenTuple {
	t.Helper()
	var tokens []tokenTuple
	for {
		tok, err := tz.Next()
		require.Nil(t, err)
		if tok == nil {
			return tokens
		}
		tokens = append(tokens, tokenTuple{tok.ID(), tok.Image(), tok.StartLine(), tok.StartColumn()})
	}
}

func TestTokenizeIntegersAndIdentifiers(t *testing.T) {
	tz := newTestTokenizer(t, "foo 42\nbar")
	tokens := readAllTokens(t, tz)
	assert.Equal(t, []tokenTuple{
		{tokID, "foo", 1, 1},
		{tokInt, "42", 1, 5},
		{tokID, "bar", 2, 1},
	}, tokens)
}

// Identical grammar and input produce identical token streams.
func TestTokenizerDeterminism(t *testing.T) {
	const input = "if foo,12 bar\nbaz 9,zap"
	first := readAllTokens(t, newTestTokenizer(t, input))
	second := readAllTokens(t, newTestTokenizer(t, input))
	assert.Equal(t, first, second)
}

// The longest match wins over literal/regex competition; "if" as a
// prefix of an identifier stays an identifier.
func TestTokenizerLongestMatch(t *testing.T) {
	tz := newTestTokenizer(t, "if iffy")
	tokens := readAllTokens(t, tz)
	require.Len(t, tokens, 2)
	assert.Equal(t, tokIf, tokens[0].id)
	assert.Equal(t, tokID, tokens[1].id)
	assert.Equal(t, "iffy", tokens[1].image)
}

func TestTokenizerUnexpectedCharRecovery(t *testing.T) {
	tz := newTestTokenizer(t, "foo %% bar")

	tok, err := tz.Next()
	require.Nil(t, err)
	assert.Equal(t, "foo", tok.Image())

	// Both stray characters produce an error each, advancing one
	// character at a time.
	for i := 0; i < 2; i++ {
		tok, err = tz.Next()
		require.NotNil(t, err)
		assert.Nil(t, tok)
		assert.Equal(t, ErrUnexpectedChar, err.Kind)
		assert.Equal(t, 1, err.Line)
	}

	tok, err = tz.Next()
	require.Nil(t, err)
	assert.Equal(t, "bar", tok.Image())
}

func TestTokenizerErrorPattern(t *testing.T) {
	tz := NewTokenizer(strings.NewReader("a ' b"), nil)
	require.NoError(t, tz.Add(&TokenPattern{ID: 1, Name: "ID", Kind: PatternRegex, Image: "[a-z]+"}))
	require.NoError(t, tz.Add(&TokenPattern{ID: 2, Name: "WS", Kind: PatternRegex, Image: " +", Ignored: true}))
	require.NoError(t, tz.Add(&TokenPattern{
		ID: 3, Name: "QUOTE", Kind: PatternString, Image: "'",
		Error: true, ErrorMessage: "single quotes are not allowed",
	}))

	tok, err := tz.Next()
	require.Nil(t, err)
	assert.Equal(t, "a", tok.Image())

	tok, err = tz.Next()
	require.NotNil(t, err)
	assert.Nil(t, tok)
	assert.Equal(t, "single quotes are not allowed", err.Message)

	tok, err = tz.Next()
	require.Nil(t, err)
	assert.Equal(t, "b", tok.Image())
}

func TestTokenizerTokenList(t *testing.T) {
	tz := newTestTokenizer(t, "foo 42")
	tz.UseTokenList(true)

	first, err := tz.Next()
	require.Nil(t, err)
	second, err := tz.Next()
	require.Nil(t, err)

	// The ignored whitespace token sits between the two on the chain.
	ws := first.Next()
	require.NotNil(t, ws)
	assert.Equal(t, tokWS, ws.ID())
	assert.Same(t, second, ws.Next())
	assert.Same(t, ws, second.Previous())
	assert.Nil(t, first.Previous())
}

func TestTokenizerPatternDescription(t *testing.T) {
	tz := newTestTokenizer(t, "")
	assert.Equal(t, `","`, tz.PatternDescription(tokComma))
	assert.Equal(t, "<INT>", tz.PatternDescription(tokInt))
	assert.Equal(t, "<token 99>", tz.PatternDescription(99))
}

func TestTokenizerReset(t *testing.T) {
	tz := newTestTokenizer(t, "foo")
	tokens := readAllTokens(t, tz)
	require.Len(t, tokens, 1)

	tz.Reset(strings.NewReader("bar\nbaz"))
	tokens = readAllTokens(t, tz)
	assert.Equal(t, []tokenTuple{
		{tokID, "bar", 1, 1},
		{tokID, "baz", 2, 1},
	}, tokens)
}

func TestTokenizerMultilineEnd(t *testing.T) {
	tz := NewTokenizer(strings.NewReader("\"ab\ncd\" x"), nil)
	require.NoError(t, tz.Add(&TokenPattern{ID: 1, Name: "STR", Kind: PatternRegex, Image: "\"[^\"]*\""}))
	require.NoError(t, tz.Add(&TokenPattern{ID: 2, Name: "WS", Kind: PatternRegex, Image: "[ \n]+", Ignored: true}))
	require.NoError(t, tz.Add(&TokenPattern{ID: 3, Name: "ID", Kind: PatternRegex, Image: "[a-z]+"}))

	tok, err := tz.Next()
	require.Nil(t, err)
	assert.Equal(t, 1, tok.StartLine())
	assert.Equal(t, 1, tok.StartColumn())
	assert.Equal(t, 2, tok.EndLine())
	assert.Equal(t, 3, tok.EndColumn())

	tok, err = tz.Next()
	require.Nil(t, err)
	assert.Equal(t, "x", tok.Image())
	assert.Equal(t, 2, tok.StartLine())
	assert.Equal(t, 5, tok.StartColumn())
}

func TestTokenizerDuplicateID(t *testing.T) {
	tz := NewTokenizer(strings.NewReader(""), nil)
	require.NoError(t, tz.Add(&TokenPattern{ID: 1, Name: "A", Kind: PatternString, Image: "a"}))
	err := tz.Add(&TokenPattern{ID: 1, Name: "B", Kind: PatternString, Image: "b"})
	require.Error(t, err)
}
