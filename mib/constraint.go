package mib

import (
	"fmt"
	"strings"

	"github.com/golangsnmp/mibparse/parse"
)

// Constraint restricts the values of a type: a single value, a value
// range, a size bound, or a compound of those.
type Constraint interface {
	// initialize resolves value references inside the constraint.
	initialize(typ Type, log *parse.ErrorLog)
	// IsCompatible reports whether a value satisfies the constraint.
	IsCompatible(value Value) bool
	String() string
}

// ValueConstraint requires an exact value.
type ValueConstraint struct {
	value Value
}

// NewValueConstraint returns a single-value constraint.
func NewValueConstraint(v Value) *ValueConstraint {
	return &ValueConstraint{value: v}
}

func (c *ValueConstraint) initialize(typ Type, log *parse.ErrorLog) {
	c.value = c.value.Initialize(log, typ)
}

// Value returns the required value.
func (c *ValueConstraint) Value() Value {
	return c.value
}

// IsCompatible compares the string forms of the values.
func (c *ValueConstraint) IsCompatible(value Value) bool {
	return value != nil && value.String() == c.value.String()
}

func (c *ValueConstraint) String() string {
	return c.value.String()
}

// ValueRangeConstraint requires a value inside [lower, upper]. A nil
// endpoint means the range is open on that side (MIN or MAX).
type ValueRangeConstraint struct {
	lower Value
	upper Value
}

// NewValueRangeConstraint returns a range constraint.
func NewValueRangeConstraint(lower, upper Value) *ValueRangeConstraint {
	return &ValueRangeConstraint{lower: lower, upper: upper}
}

func (c *ValueRangeConstraint) initialize(typ Type, log *parse.ErrorLog) {
	if c.lower != nil {
		c.lower = c.lower.Initialize(log, typ)
	}
	if c.upper != nil {
		c.upper = c.upper.Initialize(log, typ)
	}
}

// Lower returns the lower endpoint, or nil for MIN.
func (c *ValueRangeConstraint) Lower() Value { return c.lower }

// Upper returns the upper endpoint, or nil for MAX.
func (c *ValueRangeConstraint) Upper() Value { return c.upper }

// IsCompatible checks number values against the endpoints.
func (c *ValueRangeConstraint) IsCompatible(value Value) bool {
	num, ok := value.(*NumberValue)
	if !ok {
		return false
	}
	if lo, ok := c.lower.(*NumberValue); ok && num.Big().Cmp(lo.Big()) < 0 {
		return false
	}
	if hi, ok := c.upper.(*NumberValue); ok && num.Big().Cmp(hi.Big()) > 0 {
		return false
	}
	return true
}

func (c *ValueRangeConstraint) String() string {
	lower := "MIN"
	upper := "MAX"
	if c.lower != nil {
		lower = c.lower.String()
	}
	if c.upper != nil {
		upper = c.upper.String()
	}
	return lower + ".." + upper
}

// SizeConstraint bounds the size of a string or sequence-of type with
// an inner value or range constraint.
type SizeConstraint struct {
	inner Constraint
}

// NewSizeConstraint returns a SIZE constraint wrapping the inner
// value or range constraint.
func NewSizeConstraint(inner Constraint) *SizeConstraint {
	return &SizeConstraint{inner: inner}
}

func (c *SizeConstraint) initialize(typ Type, log *parse.ErrorLog) {
	c.inner.initialize(NewIntegerType(), log)
}

// Inner returns the wrapped constraint.
func (c *SizeConstraint) Inner() Constraint {
	return c.inner
}

// IsCompatible checks a string value's length against the inner
// constraint.
func (c *SizeConstraint) IsCompatible(value Value) bool {
	str, ok := value.(*StringValue)
	if !ok {
		return false
	}
	return c.inner.IsCompatible(NewNumberValue(int64(len(str.Text()))))
}

func (c *SizeConstraint) String() string {
	return fmt.Sprintf("SIZE (%s)", c.inner)
}

// CompoundConstraint is an alternation of constraints; a value
// satisfying any member is accepted.
type CompoundConstraint struct {
	members []Constraint
}

// NewCompoundConstraint returns a compound over the members.
func NewCompoundConstraint(members []Constraint) *CompoundConstraint {
	return &CompoundConstraint{members: members}
}

func (c *CompoundConstraint) initialize(typ Type, log *parse.ErrorLog) {
	for _, m := range c.members {
		m.initialize(typ, log)
	}
}

// Members returns the member constraints.
func (c *CompoundConstraint) Members() []Constraint {
	return c.members
}

// IsCompatible accepts a value any member accepts.
func (c *CompoundConstraint) IsCompatible(value Value) bool {
	for _, m := range c.members {
		if m.IsCompatible(value) {
			return true
		}
	}
	return false
}

func (c *CompoundConstraint) String() string {
	parts := make([]string, len(c.members))
	for i, m := range c.members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}
