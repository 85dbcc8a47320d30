package parse

import (
	"fmt"
	"strings"
)

// PatternKind selects how a token pattern matches input.
type PatternKind int

const (
	// PatternString matches the pattern image literally.
	PatternString PatternKind = iota
	// PatternRegex matches the image as a regular expression.
	PatternRegex
)

// TokenPattern describes one token of a grammar. The integer ID is
// chosen by the grammar author and used as an index throughout the
// look-ahead machinery and in error reporting.
//
// An Ignored pattern is consumed but never surfaced to the parser
// (whitespace, comments). An Error pattern produces a parse error
// carrying ErrorMessage when matched.
type TokenPattern struct {
	ID           int
	Name         string
	Kind         PatternKind
	Image        string // literal text or regex source
	Ignored      bool
	Error        bool
	ErrorMessage string
}

// Description returns the pattern as presented in error messages:
// the quoted image for literals, <name> for regex patterns.
func (p *TokenPattern) Description() string {
	if p.Kind == PatternString {
		return fmt.Sprintf("%q", p.Image)
	}
	return "<" + p.Name + ">"
}

// Token is a parse-tree leaf produced by the tokenizer. When the
// tokenizer keeps a token list, Previous and Next chain every token
// read, including ignored and error tokens.
type Token struct {
	nodeValues
	pattern *TokenPattern
	image   string

	startLine   int
	startColumn int
	endLine     int
	endColumn   int

	prev *Token
	next *Token
}

// ID returns the token pattern id.
func (t *Token) ID() int {
	return t.pattern.ID
}

// Name returns the token pattern name.
func (t *Token) Name() string {
	return t.pattern.Name
}

// Image returns the matched text.
func (t *Token) Image() string {
	return t.image
}

// Pattern returns the pattern that produced this token.
func (t *Token) Pattern() *TokenPattern {
	return t.pattern
}

// StartLine returns the 1-based line of the first character.
func (t *Token) StartLine() int { return t.startLine }

// StartColumn returns the 1-based column of the first character.
func (t *Token) StartColumn() int { return t.startColumn }

// EndLine returns the 1-based line of the last character.
func (t *Token) EndLine() int { return t.endLine }

// EndColumn returns the 1-based column of the last character.
func (t *Token) EndColumn() int { return t.endColumn }

// ChildCount returns zero; tokens are leaves.
func (t *Token) ChildCount() int { return 0 }

// Child returns nil; tokens are leaves.
func (t *Token) Child(int) Node { return nil }

// Previous returns the preceding token in the token list, or nil when
// the tokenizer does not keep the list.
func (t *Token) Previous() *Token { return t.prev }

// Next returns the following token in the token list, or nil.
func (t *Token) Next() *Token { return t.next }

func (t *Token) String() string {
	var b strings.Builder
	b.WriteString(t.pattern.Name)
	fmt.Fprintf(&b, "(%d)", t.pattern.ID)
	image := t.image
	if len(image) > 20 {
		image = image[:20] + "..."
	}
	fmt.Fprintf(&b, ": %q, line: %d, col: %d", image, t.startLine, t.startColumn)
	return b.String()
}
