// Package regex implements the small regular expression engine used by
// tokenizer patterns. Patterns compile to a tree of match elements; a
// backtracking Matcher binds the compiled tree to a text.Buffer.
//
// The accepted syntax covers literals, '.', character sets with ranges,
// grouping, alternation, and greedy/reluctant/possessive repetition.
// Anchors ('^', '$'), back-references and look-around are rejected at
// compile time.
package regex

import (
	"strings"

	"github.com/golangsnmp/mibparse/text"
)

// Pattern is a compiled regular expression. It is immutable after
// construction and safe for concurrent use; obtain a Matcher per
// buffer for matching.
type Pattern struct {
	src        string
	ignoreCase bool
	root       element
}

// Compile parses a pattern into a Pattern, matching case-sensitively.
func Compile(pattern string) (*Pattern, error) {
	return compile(pattern, false)
}

// CompileIgnoreCase is like Compile but folds case during matching.
// Literal characters and range endpoints are lower-cased at compile
// time, input characters at match time.
func CompileIgnoreCase(pattern string) (*Pattern, error) {
	return compile(pattern, true)
}

// MustCompile is like Compile but panics on error. Use for patterns
// known valid at build time, such as grammar tables.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

func compile(pattern string, ignoreCase bool) (*Pattern, error) {
	c := &compiler{
		src:        pattern,
		pattern:    []rune(pattern),
		ignoreCase: ignoreCase,
	}
	root, err := c.compile()
	if err != nil {
		return nil, err
	}
	return &Pattern{src: pattern, ignoreCase: ignoreCase, root: root}, nil
}

// String returns a normalized form of the compiled pattern.
func (p *Pattern) String() string {
	var b strings.Builder
	p.root.writeTo(&b)
	return b.String()
}

// Source returns the pattern text the Pattern was compiled from.
func (p *Pattern) Source() string {
	return p.src
}

// IgnoreCase reports whether matching folds case.
func (p *Pattern) IgnoreCase() bool {
	return p.ignoreCase
}

// Matcher returns a new Matcher bound to the given buffer.
func (p *Pattern) Matcher(buf *text.Buffer) *Matcher {
	return &Matcher{pattern: p, buf: buf, length: -1}
}
