package parse

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/golangsnmp/mibparse/internal/logging"
	"github.com/golangsnmp/mibparse/regex"
	"github.com/golangsnmp/mibparse/text"
)

// Tokenizer produces the longest-match token at the current buffer
// position, repeatedly. String patterns are matched by a literal
// automaton walk, regex patterns by the embedded regex engine; on
// equal match lengths the earlier-added pattern wins.
type Tokenizer struct {
	buf        *text.Buffer
	patterns   []*TokenPattern // insertion order
	byID       map[int]*TokenPattern
	orderOf    map[int]int
	strings    *trieNode
	regexes    []*regexEntry
	keepTokens bool
	previous   *Token
	ioReported bool
	logging.Sink
}

type regexEntry struct {
	pattern *TokenPattern
	matcher *regex.Matcher
	re      *regex.Pattern
}

// NewTokenizer returns a Tokenizer reading from r. Pass nil for
// logger to disable logging.
func NewTokenizer(r io.Reader, logger *slog.Logger) *Tokenizer {
	return &Tokenizer{
		buf:     text.NewBuffer(r),
		byID:    make(map[int]*TokenPattern),
		orderOf: make(map[int]int),
		strings: newTrieNode(),
		Sink:    logging.Sink{Out: logger},
	}
}

// Add registers a token pattern. Regex patterns are compiled here;
// a compile failure or duplicate id is returned as a grammar error.
func (t *Tokenizer) Add(pattern *TokenPattern) error {
	if _, exists := t.byID[pattern.ID]; exists {
		return &Error{
			Kind:    ErrInvalidGrammar,
			Message: fmt.Sprintf("duplicate token pattern id %d (%s)", pattern.ID, pattern.Name),
		}
	}
	switch pattern.Kind {
	case PatternString:
		t.strings.insert([]rune(pattern.Image), pattern)
	case PatternRegex:
		re, err := regex.Compile(pattern.Image)
		if err != nil {
			return &Error{
				Kind: ErrInvalidGrammar,
				Message: fmt.Sprintf("invalid regex for token %s (%d): %v",
					pattern.Name, pattern.ID, err),
			}
		}
		t.regexes = append(t.regexes, &regexEntry{
			pattern: pattern,
			re:      re,
			matcher: re.Matcher(t.buf),
		})
	}
	t.orderOf[pattern.ID] = len(t.patterns)
	t.patterns = append(t.patterns, pattern)
	t.byID[pattern.ID] = pattern
	return nil
}

// Pattern returns the registered pattern with the given id, or nil.
func (t *Tokenizer) Pattern(id int) *TokenPattern {
	return t.byID[id]
}

// PatternDescription returns the error-message description for a
// token pattern id: the quoted literal image, or <name> for regex
// patterns.
func (t *Tokenizer) PatternDescription(id int) string {
	if p := t.byID[id]; p != nil {
		return p.Description()
	}
	return fmt.Sprintf("<token %d>", id)
}

// UseTokenList enables chaining every produced token (ignored and
// error tokens included) through Previous/Next links.
func (t *Tokenizer) UseTokenList(keep bool) {
	t.keepTokens = keep
}

// LineNumber returns the 1-based line of the next input character.
func (t *Tokenizer) LineNumber() int {
	return t.buf.LineNumber()
}

// ColumnNumber returns the 1-based column of the next input character.
func (t *Tokenizer) ColumnNumber() int {
	return t.buf.ColumnNumber()
}

// Reset rebinds the tokenizer to a new reader, discarding buffered
// input and the token list.
func (t *Tokenizer) Reset(r io.Reader) {
	t.buf.Dispose()
	t.buf = text.NewBuffer(r)
	t.previous = nil
	t.ioReported = false
	for _, e := range t.regexes {
		e.matcher.Reset(t.buf)
	}
}

// Next returns the next non-ignored token, or (nil, nil) at end of
// input. Lexical problems are returned as errors after advancing past
// the offending input, so the caller can log them and call Next again.
func (t *Tokenizer) Next() (*Token, *Error) {
	for {
		token, err := t.nextAny()
		if err != nil {
			return nil, err
		}
		if token == nil {
			return nil, nil
		}
		if token.pattern.Error {
			return nil, &Error{
				Kind:    ErrUnexpectedToken,
				Line:    token.startLine,
				Column:  token.startColumn,
				Message: token.pattern.ErrorMessage,
			}
		}
		if token.pattern.Ignored {
			continue
		}
		return token, nil
	}
}

// nextAny produces the next token of any kind, linking it into the
// token list when enabled.
func (t *Tokenizer) nextAny() (*Token, *Error) {
	if t.buf.Peek(0) < 0 {
		if err := t.buf.Err(); err != nil && !t.ioReported {
			t.ioReported = true
			return nil, &Error{
				Kind:    ErrIO,
				Line:    t.buf.LineNumber(),
				Column:  t.buf.ColumnNumber(),
				Message: err.Error(),
			}
		}
		return nil, nil
	}

	startLine := t.buf.LineNumber()
	startCol := t.buf.ColumnNumber()

	pattern, length := t.findMatch()
	if pattern == nil {
		c := rune(t.buf.Peek(0))
		t.buf.Read(1)
		return nil, &Error{
			Kind:    ErrUnexpectedChar,
			Line:    startLine,
			Column:  startCol,
			Message: fmt.Sprintf("unexpected character %q", c),
		}
	}

	image := t.buf.Read(length)
	token := &Token{
		pattern:     pattern,
		image:       image,
		startLine:   startLine,
		startColumn: startCol,
	}
	token.endLine, token.endColumn = imageEnd(startLine, startCol, image)

	if t.keepTokens {
		token.prev = t.previous
		if t.previous != nil {
			t.previous.next = token
		}
		t.previous = token
	}

	if t.Tracing() {
		t.Trace("token",
			slog.String("name", pattern.Name),
			slog.Int("id", pattern.ID),
			slog.Int("line", startLine),
			slog.Int("column", startCol),
			slog.Int("length", length))
	}
	return token, nil
}

// findMatch returns the longest-matching pattern at the current
// position. Ties go to the earlier-added pattern. Zero-length matches
// do not count.
func (t *Tokenizer) findMatch() (*TokenPattern, int) {
	best, bestLen := t.strings.match(t.buf)
	for _, e := range t.regexes {
		if !e.matcher.MatchFromBeginning() {
			continue
		}
		length := e.matcher.Length()
		if length <= 0 {
			continue
		}
		if length > bestLen ||
			(length == bestLen && best != nil && t.orderOf[e.pattern.ID] < t.orderOf[best.ID]) {
			best = e.pattern
			bestLen = length
		}
	}
	if bestLen <= 0 {
		return nil, 0
	}
	return best, bestLen
}

// imageEnd returns the line and column of the final character of
// image given its start position.
func imageEnd(line, col int, image string) (int, int) {
	curLine, curCol := line, col
	lastLine, lastCol := line, col
	for _, c := range image {
		lastLine, lastCol = curLine, curCol
		if c == '\n' {
			curLine++
			curCol = 1
		} else {
			curCol++
		}
	}
	return lastLine, lastCol
}

// --- literal pattern automaton ---

// trieNode is one state of the literal-string automaton. Each node
// maps the next character to a successor state; a node holding a
// pattern marks a complete literal.
type trieNode struct {
	children map[rune]*trieNode
	pattern  *TokenPattern
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func (n *trieNode) insert(chars []rune, pattern *TokenPattern) {
	if len(chars) == 0 {
		if n.pattern == nil {
			n.pattern = pattern
		}
		return
	}
	child := n.children[chars[0]]
	if child == nil {
		child = newTrieNode()
		n.children[chars[0]] = child
	}
	child.insert(chars[1:], pattern)
}

// match walks the automaton over the buffer, returning the longest
// complete literal and its length.
func (n *trieNode) match(buf *text.Buffer) (*TokenPattern, int) {
	var best *TokenPattern
	bestLen := 0
	node := n
	for depth := 0; ; depth++ {
		c := buf.Peek(depth)
		if c < 0 {
			break
		}
		node = node.children[rune(c)]
		if node == nil {
			break
		}
		if node.pattern != nil {
			best = node.pattern
			bestLen = depth + 1
		}
	}
	return best, bestLen
}
