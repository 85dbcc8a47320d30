package parse

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/golangsnmp/mibparse/internal/logging"
)

const (
	// maxLookAhead caps the look-ahead sequence length during conflict
	// resolution. Grammars still ambiguous at this length are rejected.
	maxLookAhead = 8
	// recoveryTokens is the number of accepted tokens after an error
	// during which analyzer callbacks stay suppressed.
	recoveryTokens = 3
)

// Parser is an LL(k) recursive-descent parser driven by production
// patterns and their computed look-ahead sets. The first pattern
// added is the start production. A Parser is single-use state and
// must not be shared between goroutines.
type Parser struct {
	tokenizer *Tokenizer
	analyzer  Analyzer
	patterns  []*ProductionPattern
	byID      map[int]*ProductionPattern
	prepared  bool

	queue    []*Token
	log      *ErrorLog
	recovery int // countdown; callbacks are suppressed while positive
	eof      bool
	logging.Sink
}

// NewParser returns a parser reading tokens from the tokenizer and
// reporting to the analyzer. Pass a NopAnalyzer-like value or nil for
// analyzer to build a plain parse tree; pass nil for logger to
// disable logging.
func NewParser(tokenizer *Tokenizer, analyzer Analyzer, logger *slog.Logger) *Parser {
	if analyzer == nil {
		analyzer = NopAnalyzer{}
	}
	return &Parser{
		tokenizer: tokenizer,
		analyzer:  analyzer,
		byID:      make(map[int]*ProductionPattern),
		Sink:      logging.Sink{Out: logger},
	}
}

// Tokenizer returns the parser's tokenizer.
func (p *Parser) Tokenizer() *Tokenizer {
	return p.tokenizer
}

// AddPattern registers a production pattern. The first pattern added
// becomes the start production.
func (p *Parser) AddPattern(pattern *ProductionPattern) error {
	if pattern.Count() == 0 {
		return &Error{
			Kind:    ErrInvalidGrammar,
			Message: fmt.Sprintf("production %s (%d) has no alternatives", pattern.Name, pattern.ID),
		}
	}
	if _, exists := p.byID[pattern.ID]; exists {
		return &Error{
			Kind:    ErrInvalidGrammar,
			Message: fmt.Sprintf("duplicate production pattern id %d (%s)", pattern.ID, pattern.Name),
		}
	}
	p.byID[pattern.ID] = pattern
	p.patterns = append(p.patterns, pattern)
	p.prepared = false
	return nil
}

// Pattern returns the production pattern with the given id, or nil.
func (p *Parser) Pattern(id int) *ProductionPattern {
	return p.byID[id]
}

// Prepare checks the grammar for static defects and computes the
// look-ahead sets. It must run before Parse; Parse invokes it
// automatically when needed.
func (p *Parser) Prepare() error {
	if len(p.patterns) == 0 {
		return &Error{Kind: ErrInvalidGrammar, Message: "no production patterns added"}
	}
	if err := p.checkReferences(); err != nil {
		return err
	}
	if err := p.calculateLookAheads(); err != nil {
		return err
	}
	p.prepared = true
	p.Emit(slog.LevelDebug, "grammar prepared",
		slog.Int("productions", len(p.patterns)))
	return nil
}

// checkReferences verifies that every element reference resolves to a
// registered token or production pattern.
func (p *Parser) checkReferences() *Error {
	for _, pattern := range p.patterns {
		for i := 0; i < pattern.Count(); i++ {
			alt := pattern.Alternative(i)
			for j := 0; j < alt.Count(); j++ {
				elem := alt.Element(j)
				if elem.IsToken() {
					if p.tokenizer.Pattern(elem.ID()) == nil {
						return &Error{
							Kind: ErrInvalidGrammar,
							Message: fmt.Sprintf("production %s references unknown token id %d",
								pattern.Name, elem.ID()),
						}
					}
				} else if p.byID[elem.ID()] == nil {
					return &Error{
						Kind: ErrInvalidGrammar,
						Message: fmt.Sprintf("production %s references unknown production id %d",
							pattern.Name, elem.ID()),
					}
				}
			}
		}
	}
	return nil
}

// Reset rebinds the underlying tokenizer to a new reader and clears
// parse state, keeping the prepared grammar.
func (p *Parser) Reset(r io.Reader) {
	p.tokenizer.Reset(r)
	p.queue = nil
	p.log = nil
	p.recovery = 0
	p.eof = false
}

// Parse parses the input and returns the root parse-tree node. All
// errors encountered are accumulated; a non-empty log is returned as
// the error value together with whatever tree was built.
func (p *Parser) Parse() (Node, error) {
	if !p.prepared {
		if err := p.Prepare(); err != nil {
			return nil, err
		}
	}
	p.log = NewErrorLog()
	p.recovery = 0

	node, err := p.parsePattern(p.patterns[0])
	if err != nil {
		p.addError(err, true)
	}
	if tok := p.peekToken(0); tok != nil {
		p.addError(&Error{
			Kind:    ErrUnexpectedToken,
			Line:    tok.StartLine(),
			Column:  tok.StartColumn(),
			Message: fmt.Sprintf("unexpected token %q, expected end of input", tok.Image()),
		}, false)
	}
	if logErr := p.log.Err(); logErr != nil {
		return node, logErr
	}
	return node, nil
}

// --- token queue ---

// peekToken returns the i'th upcoming non-ignored token, or nil at
// end of input. Lexical errors found while filling the queue are
// logged and trigger recovery mode.
func (p *Parser) peekToken(i int) *Token {
	for len(p.queue) <= i && !p.eof {
		tok, err := p.tokenizer.Next()
		if err != nil {
			p.addError(err, true)
			if err.Kind == ErrIO {
				p.eof = true
			}
			continue
		}
		if tok == nil {
			p.eof = true
			break
		}
		p.queue = append(p.queue, tok)
	}
	if i < len(p.queue) {
		return p.queue[i]
	}
	return nil
}

// nextToken dequeues the next token, failing with an EOF error when
// input is exhausted.
func (p *Parser) nextToken() (*Token, *Error) {
	tok := p.peekToken(0)
	if tok == nil {
		return nil, &Error{
			Kind:    ErrUnexpectedEOF,
			Line:    p.tokenizer.LineNumber(),
			Column:  p.tokenizer.ColumnNumber(),
			Message: "unexpected end of input",
		}
	}
	p.queue = p.queue[1:]
	if p.recovery > 0 {
		p.recovery--
	}
	return tok, nil
}

// nextTokenExpected dequeues the next token, requiring the given
// pattern id. A mismatch reports the expected pattern description and
// the offending token image.
func (p *Parser) nextTokenExpected(id int) (*Token, *Error) {
	tok := p.peekToken(0)
	if tok == nil {
		return nil, &Error{
			Kind:    ErrUnexpectedEOF,
			Line:    p.tokenizer.LineNumber(),
			Column:  p.tokenizer.ColumnNumber(),
			Message: "unexpected end of input",
			Details: []string{p.tokenizer.PatternDescription(id)},
		}
	}
	if tok.ID() != id {
		return nil, &Error{
			Kind:    ErrUnexpectedToken,
			Line:    tok.StartLine(),
			Column:  tok.StartColumn(),
			Message: fmt.Sprintf("unexpected token %q", tok.Image()),
			Details: []string{p.tokenizer.PatternDescription(id)},
		}
	}
	return p.nextToken()
}

// addError logs an error unless recovery is already active, and arms
// the recovery countdown when requested.
func (p *Parser) addError(err *Error, recover bool) {
	if p.recovery <= 0 {
		p.log.Add(err)
		if p.Tracing() {
			p.Trace("parse error", slog.String("error", err.Error()))
		}
	}
	if recover {
		p.recovery = recoveryTokens
	}
}

// --- recursive descent ---

func (p *Parser) parsePattern(pattern *ProductionPattern) (Node, *Error) {
	alt := p.selectAlternative(pattern)
	if alt == nil {
		return nil, p.unexpectedTokenError(pattern)
	}
	node := NewProduction(pattern)
	if !node.pattern.Synthetic {
		p.enterNode(node)
	}
	if err := p.parseAlternative(alt, node); err != nil {
		return nil, err
	}
	if node.pattern.Synthetic {
		return node, nil
	}
	return p.exitNode(node), nil
}

// selectAlternative picks the alternative whose look-ahead matches
// the upcoming tokens. Alternatives matching actual tokens win over
// ones that only match the empty sequence.
func (p *Parser) selectAlternative(pattern *ProductionPattern) *Alternative {
	for i := 0; i < pattern.Count(); i++ {
		alt := pattern.Alternative(i)
		if alt.lookAhead.isNextNonEmpty(p) {
			return alt
		}
	}
	for i := 0; i < pattern.Count(); i++ {
		alt := pattern.Alternative(i)
		if alt.lookAhead.ContainsEmpty() {
			return alt
		}
	}
	return nil
}

func (p *Parser) unexpectedTokenError(pattern *ProductionPattern) *Error {
	var details []string
	for _, id := range pattern.lookAhead.InitialTokens() {
		details = append(details, p.tokenizer.PatternDescription(id))
	}
	tok := p.peekToken(0)
	if tok == nil {
		return &Error{
			Kind:    ErrUnexpectedEOF,
			Line:    p.tokenizer.LineNumber(),
			Column:  p.tokenizer.ColumnNumber(),
			Message: "unexpected end of input",
			Details: details,
		}
	}
	return &Error{
		Kind:    ErrUnexpectedToken,
		Line:    tok.StartLine(),
		Column:  tok.StartColumn(),
		Message: fmt.Sprintf("unexpected token %q", tok.Image()),
		Details: details,
	}
}

func (p *Parser) parseAlternative(alt *Alternative, node *Production) *Error {
	for i := 0; i < alt.Count(); i++ {
		if err := p.parseElement(alt.Element(i), node); err != nil {
			return err
		}
	}
	return nil
}

// parseElement parses the repetitions of one element. Errors inside
// an optional repetition are logged and the parser resynchronizes on
// the element's look-ahead, salvaging the remaining repetitions.
func (p *Parser) parseElement(elem *Element, node *Production) *Error {
	for i := 0; elem.max == Unbounded || i < elem.max; i++ {
		if i >= elem.min {
			if elem.lookAhead == nil || !elem.lookAhead.IsNext(p) {
				break
			}
		}
		before := p.peekToken(0)
		err := p.parseElementOnce(elem, node)
		if err == nil {
			if i >= elem.min && p.peekToken(0) == before {
				// zero-width repetition makes no progress
				break
			}
			continue
		}
		if i < elem.min || (elem.max != Unbounded && elem.max <= 1) {
			return err
		}
		p.addError(err, true)
		if !p.resync(elem, before) {
			break
		}
	}
	return nil
}

// resync advances past the failed input until the element's
// look-ahead matches again. It consumes at least one token when the
// failed attempt made no progress, guaranteeing termination.
func (p *Parser) resync(elem *Element, before *Token) bool {
	if p.peekToken(0) == before {
		if _, err := p.nextToken(); err != nil {
			return false
		}
	}
	for {
		tok := p.peekToken(0)
		if tok == nil {
			return false
		}
		if elem.lookAhead != nil && elem.lookAhead.IsNext(p) {
			return true
		}
		p.nextToken()
	}
}

func (p *Parser) parseElementOnce(elem *Element, node *Production) *Error {
	if elem.IsToken() {
		tok, err := p.nextTokenExpected(elem.ID())
		if err != nil {
			return err
		}
		p.enterNode(tok)
		p.addNode(node, p.exitNode(tok))
		return nil
	}
	child, err := p.parsePattern(p.byID[elem.ID()])
	if err != nil {
		return err
	}
	p.addNode(node, child)
	return nil
}

// --- tree building and analyzer callbacks ---

// callbacksActive reports whether analyzer callbacks run; they are
// suppressed during the error-recovery countdown.
func (p *Parser) callbacksActive() bool {
	return p.recovery <= 0
}

func (p *Parser) enterNode(node Node) {
	if !p.callbacksActive() {
		return
	}
	if err := p.analyzer.Enter(node); err != nil {
		p.analysisError(node, err)
	}
}

func (p *Parser) exitNode(node Node) Node {
	if !p.callbacksActive() {
		return node
	}
	result, err := p.analyzer.Exit(node)
	if err != nil {
		p.analysisError(node, err)
		return node
	}
	return result
}

// addNode attaches a child to a production. Children of synthetic
// productions are spliced into the grandparent.
func (p *Parser) addNode(parent *Production, child Node) {
	if child == nil {
		return
	}
	if prod, ok := child.(*Production); ok && prod.pattern.Synthetic {
		for i := 0; i < prod.ChildCount(); i++ {
			p.addNode(parent, prod.Child(i))
		}
		return
	}
	parent.AddChild(child)
	if p.callbacksActive() && !parent.pattern.Synthetic {
		if err := p.analyzer.Child(parent, child); err != nil {
			p.analysisError(child, err)
		}
	}
}

// analysisError logs a callback failure at the node's location.
// Analyzer errors never trigger recovery mode.
func (p *Parser) analysisError(node Node, err error) {
	p.addError(&Error{
		Kind:    ErrAnalysis,
		Line:    node.StartLine(),
		Column:  node.StartColumn(),
		Message: err.Error(),
	}, false)
}
