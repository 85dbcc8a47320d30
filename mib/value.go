package mib

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/golangsnmp/mibparse/parse"
)

// Value is an ASN.1 value in the MIB model. Values are created with
// symbolic references left unresolved; Initialize rewrites each
// reference to the concrete value during the validation pass and is
// idempotent.
type Value interface {
	// Initialize resolves references inside the value and returns the
	// resolved value. Problems are appended to the log.
	Initialize(log *parse.ErrorLog, typ Type) Value
	String() string
}

// NumberValue is an integer value. Large values from hex or binary
// strings are kept exact.
type NumberValue struct {
	value *big.Int
}

// NewNumberValue returns a number value for an int64.
func NewNumberValue(v int64) *NumberValue {
	return &NumberValue{value: big.NewInt(v)}
}

// NewBigNumberValue returns a number value for a big integer.
func NewBigNumberValue(v *big.Int) *NumberValue {
	return &NumberValue{value: v}
}

// Initialize returns the value unchanged; numbers hold no references.
func (v *NumberValue) Initialize(log *parse.ErrorLog, typ Type) Value {
	return v
}

// Int64 returns the value as an int64, truncating out-of-range values.
func (v *NumberValue) Int64() int64 {
	return v.value.Int64()
}

// Big returns the exact value.
func (v *NumberValue) Big() *big.Int {
	return v.value
}

func (v *NumberValue) String() string {
	return v.value.String()
}

// StringValue is a quoted text value.
type StringValue struct {
	value string
}

// NewStringValue returns a string value.
func NewStringValue(s string) *StringValue {
	return &StringValue{value: s}
}

// Initialize returns the value unchanged.
func (v *StringValue) Initialize(log *parse.ErrorLog, typ Type) Value {
	return v
}

// Text returns the string contents.
func (v *StringValue) Text() string {
	return v.value
}

func (v *StringValue) String() string {
	return v.value
}

// BooleanValue is an ASN.1 BOOLEAN value.
type BooleanValue struct {
	value bool
}

// NewBooleanValue returns a boolean value.
func NewBooleanValue(b bool) *BooleanValue {
	return &BooleanValue{value: b}
}

// Initialize returns the value unchanged.
func (v *BooleanValue) Initialize(log *parse.ErrorLog, typ Type) Value {
	return v
}

// Bool returns the boolean contents.
func (v *BooleanValue) Bool() bool {
	return v.value
}

func (v *BooleanValue) String() string {
	if v.value {
		return "TRUE"
	}
	return "FALSE"
}

// BitSetValue is a BITS value: a set of named bit references resolved
// to bit numbers.
type BitSetValue struct {
	bits []Value // NumberValue or ValueReference before resolution
}

// NewBitSetValue returns a bit-set value over the given elements.
func NewBitSetValue(bits []Value) *BitSetValue {
	return &BitSetValue{bits: bits}
}

// Initialize resolves each bit reference.
func (v *BitSetValue) Initialize(log *parse.ErrorLog, typ Type) Value {
	for i, bit := range v.bits {
		v.bits[i] = bit.Initialize(log, typ)
	}
	return v
}

// Bits returns the resolved bit elements.
func (v *BitSetValue) Bits() []Value {
	return v.bits
}

func (v *BitSetValue) String() string {
	parts := make([]string, len(v.bits))
	for i, b := range v.bits {
		parts[i] = b.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// NullValue is the ASN.1 NULL value.
type NullValue struct{}

// NewNullValue returns the NULL value.
func NewNullValue() *NullValue { return &NullValue{} }

// Initialize returns the value unchanged.
func (v *NullValue) Initialize(log *parse.ErrorLog, typ Type) Value {
	return v
}

func (v *NullValue) String() string { return "NULL" }

// ValueReference is an unresolved reference to a value symbol by
// name. Initialize replaces it with the symbol's concrete value,
// looked up in the owning module's scope (imports included).
type ValueReference struct {
	mib  *Mib
	name string
	line int
	col  int
}

// NewValueReference returns an unresolved reference in the module's
// scope.
func NewValueReference(mib *Mib, name string, line, col int) *ValueReference {
	return &ValueReference{mib: mib, name: name, line: line, col: col}
}

// Name returns the referenced symbol name.
func (v *ValueReference) Name() string {
	return v.name
}

// Initialize looks the symbol up and returns its value, initialized
// in turn. An unknown or non-value symbol is a semantic error and the
// reference stays in place.
func (v *ValueReference) Initialize(log *parse.ErrorLog, typ Type) Value {
	sym := v.mib.FindSymbol(v.name, true)
	vs, ok := sym.(*ValueSymbol)
	if !ok {
		if num := namedNumberValue(typ, v.name); num != nil {
			return num
		}
		if root := v.mib.RootOid(v.name); root != nil {
			return root
		}
		log.Add(&parse.Error{
			Kind:    parse.ErrSemantic,
			File:    v.mib.File(),
			Line:    v.line,
			Column:  v.col,
			Message: fmt.Sprintf("undefined symbol %q referenced", v.name),
		})
		return v
	}
	vs.Initialize(log)
	value := vs.Value()
	if value == nil {
		return v
	}
	if oid, ok := value.(*ObjectIdentifierValue); ok {
		return oid
	}
	return value.Initialize(log, typ)
}

func (v *ValueReference) String() string {
	return v.name
}

// namedNumberValue resolves an enumeration or bit label against the
// target type, so DEFVAL { enabled } finds the named number instead
// of a symbol. Textual conventions are looked through.
func namedNumberValue(typ Type, name string) Value {
	switch t := typ.(type) {
	case *IntegerType:
		for _, n := range t.Numbers() {
			if n.Name == name {
				return n.Number
			}
		}
	case *BitSetType:
		for _, n := range t.Numbers() {
			if n.Name == name {
				return n.Number
			}
		}
	case *SnmpTextualConvention:
		return namedNumberValue(t.Syntax(), name)
	case *SnmpObjectType:
		return namedNumberValue(t.Syntax(), name)
	}
	return nil
}
