package mib

import (
	"fmt"

	"github.com/golangsnmp/mibparse/parse"
)

// Symbol is a named definition inside a MIB module: a value
// assignment, a type assignment, or a macro definition.
type Symbol interface {
	// Name returns the symbol name.
	Name() string
	// Mib returns the owning module.
	Mib() *Mib
	// Line returns the 1-based source line of the definition.
	Line() int
	// Column returns the 1-based source column of the definition.
	Column() int
	String() string

	// clear detaches back-pointers when the owning Mib is cleared.
	clear()
}

// symbolBase carries the fields shared by all symbol kinds.
type symbolBase struct {
	mib  *Mib
	name string
	line int
	col  int
}

func (s *symbolBase) Name() string { return s.name }
func (s *symbolBase) Mib() *Mib    { return s.mib }
func (s *symbolBase) Line() int    { return s.line }
func (s *symbolBase) Column() int  { return s.col }

// ValueSymbol is a value assignment, most often an object identifier
// declaration carrying an SNMP macro type.
type ValueSymbol struct {
	symbolBase
	typ         Type
	value       Value
	initialized bool
}

// NewValueSymbol returns a value symbol owned by the module.
func NewValueSymbol(mib *Mib, name string, typ Type, value Value, line, col int) *ValueSymbol {
	return &ValueSymbol{
		symbolBase: symbolBase{mib: mib, name: name, line: line, col: col},
		typ:        typ,
		value:      value,
	}
}

// Type returns the declared type.
func (s *ValueSymbol) Type() Type { return s.typ }

// Value returns the symbol value; an ObjectIdentifierValue links into
// the OID tree once initialized.
func (s *ValueSymbol) Value() Value { return s.value }

// Initialize flattens the type and value indirection and links OID
// values into the tree, tagging the tree node with this symbol. The
// initialized flag is set before resolution starts so reference
// cycles re-enter harmlessly; the method is idempotent.
func (s *ValueSymbol) Initialize(log *parse.ErrorLog) {
	if s.initialized {
		return
	}
	s.initialized = true
	if s.typ != nil {
		s.typ = s.typ.Initialize(nil, log)
	}
	if s.value != nil {
		s.value = s.value.Initialize(log, s.typ)
		if oid, ok := s.value.(*ObjectIdentifierValue); ok {
			oid.setSymbol(s)
		}
		s.checkCompatibility(log)
	}
}

// checkCompatibility reports a value that does not fit the declared
// type. Unresolved references were already reported by Initialize.
func (s *ValueSymbol) checkCompatibility(log *parse.ErrorLog) {
	if s.typ == nil || s.value == nil {
		return
	}
	if _, unresolved := s.value.(*ValueReference); unresolved {
		return
	}
	if !s.typ.IsCompatible(s.value) {
		log.Add(&parse.Error{
			Kind:    parse.ErrSemantic,
			File:    s.mib.File(),
			Line:    s.line,
			Column:  s.col,
			Message: fmt.Sprintf("value of %s is not compatible with type %s", s.name, s.typ.Name()),
		})
	}
}

func (s *ValueSymbol) String() string {
	return fmt.Sprintf("VALUE %s ::= %v", s.name, s.value)
}

func (s *ValueSymbol) clear() {
	if oid, ok := s.value.(*ObjectIdentifierValue); ok {
		oid.detach(s.mib)
	}
	s.value = nil
	s.typ = nil
}

// TypeSymbol is a type assignment.
type TypeSymbol struct {
	symbolBase
	typ         Type
	initialized bool
}

// NewTypeSymbol returns a type symbol owned by the module.
func NewTypeSymbol(mib *Mib, name string, typ Type, line, col int) *TypeSymbol {
	return &TypeSymbol{
		symbolBase: symbolBase{mib: mib, name: name, line: line, col: col},
		typ:        typ,
	}
}

// Type returns the defined type.
func (s *TypeSymbol) Type() Type { return s.typ }

// Initialize flattens the type indirection. Idempotent; cycles
// re-enter harmlessly.
func (s *TypeSymbol) Initialize(log *parse.ErrorLog) {
	if s.initialized {
		return
	}
	s.initialized = true
	if s.typ != nil {
		s.typ = s.typ.Initialize(s, log)
	}
}

func (s *TypeSymbol) String() string {
	return fmt.Sprintf("TYPE %s ::= %v", s.name, s.typ)
}

func (s *TypeSymbol) clear() {
	s.typ = nil
}

// MacroSymbol is a macro definition. Only the name is retained; the
// macro body is skipped by the grammar.
type MacroSymbol struct {
	symbolBase
}

// NewMacroSymbol returns a macro symbol owned by the module.
func NewMacroSymbol(mib *Mib, name string, line, col int) *MacroSymbol {
	return &MacroSymbol{
		symbolBase: symbolBase{mib: mib, name: name, line: line, col: col},
	}
}

func (s *MacroSymbol) String() string {
	return fmt.Sprintf("MACRO %s", s.name)
}

func (s *MacroSymbol) clear() {}
