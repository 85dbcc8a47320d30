package mib

import (
	"fmt"
	"strings"

	"github.com/golangsnmp/mibparse/parse"
)

// Type is an ASN.1 type in the MIB model. Initialize flattens type
// reference indirection and resolves any values the type carries
// (named numbers, constraint endpoints); it returns the resolved type
// and is idempotent.
type Type interface {
	Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type
	// IsCompatible reports whether a value can be assigned to this
	// type.
	IsCompatible(value Value) bool
	// Name returns the primitive ASN.1 type name.
	Name() string
	String() string
}

// NamedNumber is one entry of an INTEGER or BITS enumeration.
type NamedNumber struct {
	Name   string
	Number Value // NumberValue after resolution
}

// IntegerType is the ASN.1 INTEGER type, optionally enumerated or
// range constrained.
type IntegerType struct {
	numbers    []NamedNumber
	constraint Constraint
}

// NewIntegerType returns an unconstrained INTEGER type.
func NewIntegerType() *IntegerType {
	return &IntegerType{}
}

// NewEnumeratedIntegerType returns an INTEGER with named numbers.
func NewEnumeratedIntegerType(numbers []NamedNumber) *IntegerType {
	return &IntegerType{numbers: numbers}
}

// NewConstrainedIntegerType returns an INTEGER with a constraint.
func NewConstrainedIntegerType(c Constraint) *IntegerType {
	return &IntegerType{constraint: c}
}

// Initialize resolves named-number and constraint values.
func (t *IntegerType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.numbers {
		t.numbers[i].Number = t.numbers[i].Number.Initialize(log, t)
	}
	if t.constraint != nil {
		t.constraint.initialize(t, log)
	}
	return t
}

// Numbers returns the named numbers, if enumerated.
func (t *IntegerType) Numbers() []NamedNumber {
	return t.numbers
}

// Constraint returns the value constraint, or nil.
func (t *IntegerType) Constraint() Constraint {
	return t.constraint
}

// IsCompatible accepts number values only; named references are not
// accepted.
func (t *IntegerType) IsCompatible(value Value) bool {
	_, ok := value.(*NumberValue)
	return ok
}

// Name returns "INTEGER".
func (t *IntegerType) Name() string { return "INTEGER" }

func (t *IntegerType) String() string {
	var b strings.Builder
	b.WriteString(t.Name())
	if len(t.numbers) > 0 {
		b.WriteString(" { ")
		for i, n := range t.numbers {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s(%s)", n.Name, n.Number)
		}
		b.WriteString(" }")
	}
	if t.constraint != nil {
		fmt.Fprintf(&b, " (%s)", t.constraint)
	}
	return b.String()
}

// StringType is the ASN.1 OCTET STRING type with an optional size
// constraint.
type StringType struct {
	constraint Constraint
}

// NewStringType returns an unconstrained OCTET STRING type.
func NewStringType() *StringType {
	return &StringType{}
}

// NewConstrainedStringType returns an OCTET STRING with a constraint.
func NewConstrainedStringType(c Constraint) *StringType {
	return &StringType{constraint: c}
}

// Initialize resolves constraint values.
func (t *StringType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	if t.constraint != nil {
		t.constraint.initialize(t, log)
	}
	return t
}

// Constraint returns the size constraint, or nil.
func (t *StringType) Constraint() Constraint {
	return t.constraint
}

// IsCompatible accepts string values.
func (t *StringType) IsCompatible(value Value) bool {
	_, ok := value.(*StringValue)
	return ok
}

// Name returns "OCTET STRING".
func (t *StringType) Name() string { return "OCTET STRING" }

func (t *StringType) String() string {
	if t.constraint != nil {
		return fmt.Sprintf("%s (%s)", t.Name(), t.constraint)
	}
	return t.Name()
}

// ObjectIdentifierType is the ASN.1 OBJECT IDENTIFIER type.
type ObjectIdentifierType struct{}

// NewObjectIdentifierType returns the OBJECT IDENTIFIER type.
func NewObjectIdentifierType() *ObjectIdentifierType {
	return &ObjectIdentifierType{}
}

// Initialize returns the type unchanged.
func (t *ObjectIdentifierType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	return t
}

// IsCompatible accepts object identifier values and unresolved
// references to them.
func (t *ObjectIdentifierType) IsCompatible(value Value) bool {
	switch value.(type) {
	case *ObjectIdentifierValue, *ValueReference:
		return true
	}
	return false
}

// Name returns "OBJECT IDENTIFIER".
func (t *ObjectIdentifierType) Name() string { return "OBJECT IDENTIFIER" }

func (t *ObjectIdentifierType) String() string { return t.Name() }

// BooleanType is the ASN.1 BOOLEAN type.
type BooleanType struct{}

// NewBooleanType returns the BOOLEAN type.
func NewBooleanType() *BooleanType { return &BooleanType{} }

// Initialize returns the type unchanged.
func (t *BooleanType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	return t
}

// IsCompatible accepts boolean values.
func (t *BooleanType) IsCompatible(value Value) bool {
	_, ok := value.(*BooleanValue)
	return ok
}

// Name returns "BOOLEAN".
func (t *BooleanType) Name() string { return "BOOLEAN" }

func (t *BooleanType) String() string { return t.Name() }

// NullType is the ASN.1 NULL type.
type NullType struct{}

// NewNullType returns the NULL type.
func NewNullType() *NullType { return &NullType{} }

// Initialize returns the type unchanged.
func (t *NullType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	return t
}

// IsCompatible rejects everything; NULL has no assignable values
// in the MIB subset.
func (t *NullType) IsCompatible(value Value) bool { return false }

// Name returns "NULL".
func (t *NullType) Name() string { return "NULL" }

func (t *NullType) String() string { return t.Name() }

// RealType is the ASN.1 REAL type, accepted for completeness.
type RealType struct{}

// NewRealType returns the REAL type.
func NewRealType() *RealType { return &RealType{} }

// Initialize returns the type unchanged.
func (t *RealType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	return t
}

// IsCompatible accepts number values.
func (t *RealType) IsCompatible(value Value) bool {
	_, ok := value.(*NumberValue)
	return ok
}

// Name returns "REAL".
func (t *RealType) Name() string { return "REAL" }

func (t *RealType) String() string { return t.Name() }

// AnyType is the ASN.1 ANY type, appearing in the base modules'
// ObjectSyntax definitions.
type AnyType struct{}

// NewAnyType returns the ANY type.
func NewAnyType() *AnyType { return &AnyType{} }

// Initialize returns the type unchanged.
func (t *AnyType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	return t
}

// IsCompatible accepts every value.
func (t *AnyType) IsCompatible(value Value) bool { return true }

// Name returns "ANY".
func (t *AnyType) Name() string { return "ANY" }

func (t *AnyType) String() string { return t.Name() }

// BitSetType is the SMIv2 BITS construct (and ASN.1 BIT STRING), with
// named bits.
type BitSetType struct {
	numbers    []NamedNumber
	constraint Constraint
}

// NewBitSetType returns an unconstrained BITS type.
func NewBitSetType() *BitSetType {
	return &BitSetType{}
}

// NewEnumeratedBitSetType returns a BITS type with named bits.
func NewEnumeratedBitSetType(numbers []NamedNumber) *BitSetType {
	return &BitSetType{numbers: numbers}
}

// Initialize resolves the named bit values.
func (t *BitSetType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.numbers {
		t.numbers[i].Number = t.numbers[i].Number.Initialize(log, t)
	}
	if t.constraint != nil {
		t.constraint.initialize(t, log)
	}
	return t
}

// Numbers returns the named bits.
func (t *BitSetType) Numbers() []NamedNumber {
	return t.numbers
}

// IsCompatible accepts bit-set values.
func (t *BitSetType) IsCompatible(value Value) bool {
	_, ok := value.(*BitSetValue)
	return ok
}

// Name returns "BITS".
func (t *BitSetType) Name() string { return "BITS" }

func (t *BitSetType) String() string {
	if len(t.numbers) == 0 {
		return t.Name()
	}
	var b strings.Builder
	b.WriteString(t.Name())
	b.WriteString(" { ")
	for i, n := range t.numbers {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s(%s)", n.Name, n.Number)
	}
	b.WriteString(" }")
	return b.String()
}

// SequenceElement is one named field of a SEQUENCE type.
type SequenceElement struct {
	Name string
	Type Type
}

// SequenceType is the ASN.1 SEQUENCE type, used for table rows.
type SequenceType struct {
	elements []SequenceElement
}

// NewSequenceType returns a SEQUENCE over the given elements.
func NewSequenceType(elements []SequenceElement) *SequenceType {
	return &SequenceType{elements: elements}
}

// Initialize resolves each element type.
func (t *SequenceType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.elements {
		t.elements[i].Type = t.elements[i].Type.Initialize(symbol, log)
	}
	return t
}

// Elements returns the sequence fields in declaration order.
func (t *SequenceType) Elements() []SequenceElement {
	return t.elements
}

// IsCompatible rejects everything; sequence values do not occur in
// the MIB subset.
func (t *SequenceType) IsCompatible(value Value) bool { return false }

// Name returns "SEQUENCE".
func (t *SequenceType) Name() string { return "SEQUENCE" }

func (t *SequenceType) String() string { return t.Name() }

// SequenceOfType is the ASN.1 SEQUENCE OF type, used for tables.
type SequenceOfType struct {
	element    Type
	constraint Constraint
}

// NewSequenceOfType returns a SEQUENCE OF the given element type.
func NewSequenceOfType(element Type) *SequenceOfType {
	return &SequenceOfType{element: element}
}

// Initialize resolves the element type.
func (t *SequenceOfType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	t.element = t.element.Initialize(symbol, log)
	return t
}

// Element returns the repeated element type.
func (t *SequenceOfType) Element() Type {
	return t.element
}

// IsCompatible rejects everything.
func (t *SequenceOfType) IsCompatible(value Value) bool { return false }

// Name returns "SEQUENCE OF".
func (t *SequenceOfType) Name() string { return "SEQUENCE OF" }

func (t *SequenceOfType) String() string {
	return fmt.Sprintf("%s %s", t.Name(), t.element)
}

// ChoiceType is the ASN.1 CHOICE type.
type ChoiceType struct {
	elements []SequenceElement
}

// NewChoiceType returns a CHOICE over the given elements.
func NewChoiceType(elements []SequenceElement) *ChoiceType {
	return &ChoiceType{elements: elements}
}

// Initialize resolves each element type.
func (t *ChoiceType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.elements {
		t.elements[i].Type = t.elements[i].Type.Initialize(symbol, log)
	}
	return t
}

// IsCompatible accepts a value compatible with any element type.
func (t *ChoiceType) IsCompatible(value Value) bool {
	for _, e := range t.elements {
		if e.Type.IsCompatible(value) {
			return true
		}
	}
	return false
}

// Name returns "CHOICE".
func (t *ChoiceType) Name() string { return "CHOICE" }

func (t *ChoiceType) String() string { return t.Name() }

// TypeReference is an unresolved reference to a type symbol by name,
// optionally with constraints or named numbers applied at the
// reference site. Initialize replaces it with the referenced type.
type TypeReference struct {
	mib        *Mib
	name       string
	line       int
	col        int
	constraint Constraint
	numbers    []NamedNumber
}

// NewTypeReference returns an unresolved type reference in the
// module's scope.
func NewTypeReference(mib *Mib, name string, line, col int) *TypeReference {
	return &TypeReference{mib: mib, name: name, line: line, col: col}
}

// NewConstrainedTypeReference returns a type reference with an
// attached constraint.
func NewConstrainedTypeReference(mib *Mib, name string, line, col int, c Constraint) *TypeReference {
	return &TypeReference{mib: mib, name: name, line: line, col: col, constraint: c}
}

// NewEnumeratedTypeReference returns a type reference with named
// numbers applied at the reference site.
func NewEnumeratedTypeReference(mib *Mib, name string, line, col int, numbers []NamedNumber) *TypeReference {
	return &TypeReference{mib: mib, name: name, line: line, col: col, numbers: numbers}
}

// TypeName returns the referenced type name.
func (t *TypeReference) TypeName() string {
	return t.name
}

// Initialize looks up the referenced type symbol and returns its
// resolved type, reapplying reference-site constraints. An unknown
// reference is a semantic error and the reference stays in place.
func (t *TypeReference) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	sym := t.mib.FindSymbol(t.name, true)
	ts, ok := sym.(*TypeSymbol)
	if !ok {
		log.Add(&parse.Error{
			Kind:    parse.ErrSemantic,
			File:    t.mib.File(),
			Line:    t.line,
			Column:  t.col,
			Message: fmt.Sprintf("undefined type %q referenced", t.name),
		})
		return t
	}
	ts.Initialize(log)
	resolved := ts.Type()
	if resolved == nil {
		return t
	}
	switch {
	case t.constraint != nil:
		resolved = constrainType(resolved, t.constraint)
		return resolved.Initialize(symbol, log)
	case len(t.numbers) != 0:
		resolved = enumerateType(resolved, t.numbers)
		return resolved.Initialize(symbol, log)
	}
	return resolved
}

// constrainType reapplies a reference-site constraint to the resolved
// base type.
func constrainType(base Type, c Constraint) Type {
	switch base.(type) {
	case *IntegerType:
		return NewConstrainedIntegerType(c)
	case *StringType:
		return NewConstrainedStringType(c)
	}
	return base
}

// enumerateType reapplies reference-site named numbers to the
// resolved base type.
func enumerateType(base Type, numbers []NamedNumber) Type {
	switch base.(type) {
	case *IntegerType:
		return NewEnumeratedIntegerType(numbers)
	case *BitSetType:
		return NewEnumeratedBitSetType(numbers)
	}
	return base
}

// IsCompatible rejects everything until resolved.
func (t *TypeReference) IsCompatible(value Value) bool { return false }

// Name returns the referenced name.
func (t *TypeReference) Name() string { return t.name }

func (t *TypeReference) String() string { return t.name }
