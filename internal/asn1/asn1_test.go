package asn1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/mibparse/mib"
	"github.com/golangsnmp/mibparse/parse"
)

// soloRegistry resolves nothing beyond the well-known roots, enough
// for single-module tests.
type soloRegistry struct {
	roots *mib.RootSet
}

func (r *soloRegistry) LookupMib(name string) *mib.Mib { return nil }

func (r *soloRegistry) Roots() *mib.RootSet { return r.roots }

func parseModule(t *testing.T, source string) (*mib.Mib, *parse.ErrorLog) {
	t.Helper()
	m := mib.NewMib("", &soloRegistry{roots: mib.NewRootSet()})
	p, err := NewParser(strings.NewReader(source), NewMibAnalyzer(m), nil)
	require.NoError(t, err)
	_, err = p.Parse()
	require.NoError(t, err)

	log := parse.NewErrorLog()
	m.Initialize(log)
	m.Validate(log)
	return m, log
}

func TestGrammarPrepares(t *testing.T) {
	p, err := NewParser(strings.NewReader(""), nil, nil)
	require.NoError(t, err)
	require.NoError(t, p.Prepare())
}

func TestParseMinimalModule(t *testing.T) {
	m, log := parseModule(t, `
DEMO-MIB DEFINITIONS ::= BEGIN

demo OBJECT IDENTIFIER ::= { iso org(3) dod(6) 1 99 }

END
`)
	require.NoError(t, log.Err())
	assert.Equal(t, "DEMO-MIB", m.Name())

	demo := m.Symbol("demo").(*mib.ValueSymbol)
	oid := demo.Value().(*mib.ObjectIdentifierValue)
	assert.Equal(t, "1.3.6.1.99", oid.String())
	assert.Equal(t, "demo", oid.Name())
	assert.Equal(t, "iso(1).org(3).dod(6).1.demo(99)", oid.NamedString())
}

func TestParseTypeAssignments(t *testing.T) {
	m, log := parseModule(t, `
TYPES-MIB DEFINITIONS ::= BEGIN

Word ::= OCTET STRING (SIZE (0..31))

Speed ::= INTEGER (0..4294967295)

State ::= INTEGER { up(1), down(2), unknown(3) }

Pair ::= SEQUENCE {
    left    INTEGER,
    right   OCTET STRING
}

Rows ::= SEQUENCE OF Pair

Addr ::= [APPLICATION 0] IMPLICIT OCTET STRING (SIZE (4))

END
`)
	require.NoError(t, log.Err())

	word := m.Symbol("Word").(*mib.TypeSymbol)
	st, ok := word.Type().(*mib.StringType)
	require.True(t, ok)
	size, ok := st.Constraint().(*mib.SizeConstraint)
	require.True(t, ok)
	assert.Equal(t, "SIZE (0..31)", size.String())

	state := m.Symbol("State").(*mib.TypeSymbol)
	it := state.Type().(*mib.IntegerType)
	require.Len(t, it.Numbers(), 3)
	assert.Equal(t, "down", it.Numbers()[1].Name)

	pair := m.Symbol("Pair").(*mib.TypeSymbol)
	seq := pair.Type().(*mib.SequenceType)
	require.Len(t, seq.Elements(), 2)
	assert.Equal(t, "left", seq.Elements()[0].Name)

	rows := m.Symbol("Rows").(*mib.TypeSymbol)
	seqOf := rows.Type().(*mib.SequenceOfType)
	_, ok = seqOf.Element().(*mib.SequenceType)
	assert.True(t, ok)

	addr := m.Symbol("Addr").(*mib.TypeSymbol)
	_, ok = addr.Type().(*mib.StringType)
	assert.True(t, ok)
}

func TestParseMacroDefinition(t *testing.T) {
	m, log := parseModule(t, `
MACRO-MIB DEFINITIONS ::= BEGIN

OBJECT-TYPE MACRO ::=
BEGIN
    TYPE NOTATION ::= "SYNTAX" type (TYPE ObjectSyntax)
                      "ACCESS" Access
                      "STATUS" Status
    VALUE NOTATION ::= value (VALUE ObjectName)

    Access ::= "read-only" | "read-write"
    Status ::= "mandatory" | "obsolete"
END

END
`)
	require.NoError(t, log.Err())
	sym := m.Symbol("OBJECT-TYPE")
	require.NotNil(t, sym)
	_, ok := sym.(*mib.MacroSymbol)
	assert.True(t, ok)
}

func TestParseObjectType(t *testing.T) {
	m, log := parseModule(t, `
OBJ-MIB DEFINITIONS ::= BEGIN

root OBJECT IDENTIFIER ::= { iso 42 }

speed OBJECT-TYPE
    SYNTAX  INTEGER (0..100)
    UNITS   "percent"
    ACCESS  read-write
    STATUS  mandatory
    DESCRIPTION
            "Current speed."
    DEFVAL  { 10 }
    ::= { root 1 }

END
`)
	require.NoError(t, log.Err())

	speed := m.Symbol("speed").(*mib.ValueSymbol)
	ot := speed.Type().(*mib.SnmpObjectType)
	assert.Equal(t, "percent", ot.Units())
	assert.Equal(t, mib.AccessReadWrite, ot.Access())
	assert.Equal(t, mib.StatusMandatory, ot.Status())
	assert.Equal(t, "Current speed.", ot.Description())
	assert.Equal(t, int64(10), ot.DefaultValue().(*mib.NumberValue).Int64())
	assert.Equal(t, "1.42.1", speed.Value().(*mib.ObjectIdentifierValue).String())
}

func TestParseTrapType(t *testing.T) {
	m, log := parseModule(t, `
TRAP-MIB DEFINITIONS ::= BEGIN

acme OBJECT IDENTIFIER ::= { iso 3 6 1 4 1 9999 }

coldReboot TRAP-TYPE
    ENTERPRISE  acme
    VARIABLES   { acme }
    DESCRIPTION
            "A cold reboot happened."
    ::= 1

END
`)
	require.NoError(t, log.Err())

	trap := m.Symbol("coldReboot").(*mib.ValueSymbol)
	tt := trap.Type().(*mib.SnmpTrapType)
	ent := tt.Enterprise().(*mib.ObjectIdentifierValue)
	assert.Equal(t, "1.3.6.1.4.1.9999", ent.String())
	assert.Len(t, tt.Variables(), 1)
	assert.Equal(t, int64(1), trap.Value().(*mib.NumberValue).Int64())
}

func TestParseErrorsCarryLocation(t *testing.T) {
	m := mib.NewMib("", &soloRegistry{roots: mib.NewRootSet()})
	p, err := NewParser(strings.NewReader(`
BROKEN DEFINITIONS ::= BEGIN
value OBJECT IDENTIFIER ::= { }
END
`), NewMibAnalyzer(m), nil)
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)

	log, ok := err.(*parse.ErrorLog)
	require.True(t, ok)
	require.NotZero(t, log.Count())
	first := log.Entries()[0]
	assert.Equal(t, 3, first.Line)
	assert.NotZero(t, first.Column)
}

func TestParseDuplicateSymbol(t *testing.T) {
	m := mib.NewMib("", &soloRegistry{roots: mib.NewRootSet()})
	p, err := NewParser(strings.NewReader(`
DUP-MIB DEFINITIONS ::= BEGIN
twice OBJECT IDENTIFIER ::= { iso 1 }
twice OBJECT IDENTIFIER ::= { iso 2 }
END
`), NewMibAnalyzer(m), nil)
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)

	log := err.(*parse.ErrorLog)
	require.Equal(t, 1, log.Count())
	assert.Equal(t, parse.ErrAnalysis, log.Entries()[0].Kind)
	assert.Contains(t, log.Entries()[0].Message, "already defined")
}
