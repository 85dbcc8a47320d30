package mibparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/mibparse/mib"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l := NewLoader(WithSource(MustDir("testdata")))
	return l
}

func TestLoadRFC1213(t *testing.T) {
	l := newTestLoader(t)
	m, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "RFC1213-MIB", m.Name())
	assert.Equal(t, 1, m.SMIVersion())
	assert.True(t, m.Loaded())
	assert.Contains(t, m.HeaderComment(), "MIB-II")

	sym := m.Symbol("sysDescr")
	require.NotNil(t, sym)
	vs, ok := sym.(*mib.ValueSymbol)
	require.True(t, ok)

	oid, ok := vs.Value().(*mib.ObjectIdentifierValue)
	require.True(t, ok)
	assert.Equal(t, "1.3.6.1.2.1.1.1", oid.String())
	assert.Same(t, vs, oid.Symbol())

	objType, ok := vs.Type().(*mib.SnmpObjectType)
	require.True(t, ok)
	assert.Equal(t, mib.AccessReadOnly, objType.Access())
	assert.Equal(t, mib.StatusMandatory, objType.Status())
	assert.Contains(t, objType.Description(), "textual description")
}

func TestLoadIsIdempotent(t *testing.T) {
	l := newTestLoader(t)
	first, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)
	second, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestOidLongestPrefixLookup(t *testing.T) {
	l := newTestLoader(t)
	m, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)

	sysDescr := m.Symbol("sysDescr").(*mib.ValueSymbol)

	// An instance suffix is not a declared child; the longest
	// declared prefix wins.
	assert.Same(t, sysDescr, m.SymbolByOid("1.3.6.1.2.1.1.1.0"))
	assert.Same(t, sysDescr, m.SymbolByOid("1.3.6.1.2.1.1.1"))
	assert.Same(t, sysDescr, m.SymbolByValue("1.3.6.1.2.1.1.1"))
	assert.Nil(t, m.SymbolByOid("2.99"))
}

func TestOidTreeStructure(t *testing.T) {
	l := newTestLoader(t)
	m, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)

	ifIndex := m.Symbol("ifIndex").(*mib.ValueSymbol)
	oid := ifIndex.Value().(*mib.ObjectIdentifierValue)
	assert.Equal(t, "1.3.6.1.2.1.2.2.1.1", oid.String())
	assert.Equal(t, "ifIndex", oid.Name())

	// walk up to the interfaces group across the declared parents
	entry := oid.Parent()
	assert.Equal(t, "ifEntry", entry.Name())
	table := entry.Parent()
	assert.Equal(t, "ifTable", table.Name())
	require.Len(t, entry.Children(), 11)
}

func TestTableModel(t *testing.T) {
	l := newTestLoader(t)
	m, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)

	table := m.Symbol("ifTable").(*mib.ValueSymbol)
	tableType := table.Type().(*mib.SnmpObjectType)
	seqOf, ok := tableType.Syntax().(*mib.SequenceOfType)
	require.True(t, ok)

	row, ok := seqOf.Element().(*mib.SequenceType)
	require.True(t, ok, "row type should resolve to the SEQUENCE")
	assert.Equal(t, "ifIndex", row.Elements()[0].Name)

	entry := m.Symbol("ifEntry").(*mib.ValueSymbol)
	entryType := entry.Type().(*mib.SnmpObjectType)
	require.Len(t, entryType.Index(), 1)
	ref := entryType.Index()[0]
	assert.False(t, ref.Implied)
	num, ok := ref.Value.(*mib.ObjectIdentifierValue)
	require.True(t, ok, "index reference resolves to the column OID")
	assert.Equal(t, "1.3.6.1.2.1.2.2.1.1", num.String())
}

func TestEnumeratedColumn(t *testing.T) {
	l := newTestLoader(t)
	m, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)

	ifType := m.Symbol("ifType").(*mib.ValueSymbol)
	objType := ifType.Type().(*mib.SnmpObjectType)
	intType, ok := objType.Syntax().(*mib.IntegerType)
	require.True(t, ok)

	names := make(map[string]int64)
	for _, n := range intType.Numbers() {
		names[n.Name] = n.Number.(*mib.NumberValue).Int64()
	}
	assert.Equal(t, int64(1), names["other"])
	assert.Equal(t, int64(6), names["ethernet-csmacd"])
	assert.Equal(t, int64(24), names["softwareLoopback"])
}

func TestRootSymbol(t *testing.T) {
	l := newTestLoader(t)
	m, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)

	root := m.RootSymbol()
	require.NotNil(t, root)
	assert.Equal(t, "mib-2", root.Name())
}

func TestLoadBundledSmiV2(t *testing.T) {
	l := NewLoader()
	m, err := l.Load("SNMPv2-SMI")
	require.NoError(t, err)

	internet := m.Symbol("internet").(*mib.ValueSymbol)
	oid := internet.Value().(*mib.ObjectIdentifierValue)
	assert.Equal(t, "1.3.6.1", oid.String())

	zero := m.Symbol("zeroDotZero").(*mib.ValueSymbol)
	assert.Equal(t, "0.0", zero.Value().(*mib.ObjectIdentifierValue).String())

	counter := m.Symbol("Counter64")
	require.NotNil(t, counter)
	_, ok := counter.(*mib.TypeSymbol)
	assert.True(t, ok)
}

func TestLoadSmiV2Module(t *testing.T) {
	l := newTestLoader(t)
	m, err := l.Load("EXAMPLE-MIB")
	require.NoError(t, err)

	assert.Equal(t, 2, m.SMIVersion())

	ident := m.Symbol("exampleMIB").(*mib.ValueSymbol)
	mi, ok := ident.Type().(*mib.SnmpModuleIdentity)
	require.True(t, ok)
	assert.Equal(t, "Example organization", mi.Organization())
	require.Len(t, mi.Revisions(), 1)

	enabled := m.Symbol("exampleEnabled").(*mib.ValueSymbol)
	objType := enabled.Type().(*mib.SnmpObjectType)
	assert.Equal(t, mib.AccessReadWrite, objType.Access())
	assert.Equal(t, mib.StatusCurrent, objType.Status())
	// DEFVAL { true } resolves against the TruthValue enumeration.
	defval, ok := objType.DefaultValue().(*mib.NumberValue)
	require.True(t, ok)
	assert.Equal(t, int64(1), defval.Int64())

	count := m.Symbol("exampleCount").(*mib.ValueSymbol)
	assert.Equal(t, "packets", count.Type().(*mib.SnmpObjectType).Units())

	tc := m.Symbol("ExampleIndex").(*mib.TypeSymbol)
	conv, ok := tc.Type().(*mib.SnmpTextualConvention)
	require.True(t, ok)
	assert.Equal(t, "d", conv.DisplayHint())

	group := m.Symbol("exampleObjectGroup").(*mib.ValueSymbol)
	og := group.Type().(*mib.SnmpObjectGroup)
	assert.Len(t, og.Objects(), 5)

	notif := m.Symbol("exampleAlarm").(*mib.ValueSymbol)
	nt := notif.Type().(*mib.SnmpNotificationType)
	assert.Len(t, nt.Objects(), 2)
	assert.Equal(t, "1.3.6.1.2.1.99.2.1", notif.Value().(*mib.ObjectIdentifierValue).String())

	comp := m.Symbol("exampleCompliance").(*mib.ValueSymbol)
	mc := comp.Type().(*mib.SnmpModuleCompliance)
	require.Len(t, mc.Modules(), 1)
	assert.Len(t, mc.Modules()[0].MandatoryGroups, 1)
}

// Two modules importing from each other load without recursing
// forever, and both resolve symmetrically.
func TestCircularImports(t *testing.T) {
	l := newTestLoader(t)
	a, err := l.Load("TEST-A")
	require.NoError(t, err)

	b := l.LookupMib("TEST-B")
	require.NotNil(t, b)

	assert.Same(t, b, a.Import("TEST-B").Mib())
	assert.Same(t, a, b.Import("TEST-A").Mib())

	aChild := a.Symbol("testAChild").(*mib.ValueSymbol)
	assert.Equal(t, "1.3.6.1.2.102.1", aChild.Value().(*mib.ObjectIdentifierValue).String())
	bChild := b.Symbol("testBChild").(*mib.ValueSymbol)
	assert.Equal(t, "1.3.6.1.2.101.1", bChild.Value().(*mib.ObjectIdentifierValue).String())
}

func TestLoadReader(t *testing.T) {
	const src = `
TINY-MIB DEFINITIONS ::= BEGIN
IMPORTS
    mgmt
        FROM RFC1155-SMI;
tiny OBJECT IDENTIFIER ::= { mgmt 200 }
END
`
	l := NewLoader()
	m, err := l.LoadReader(strings.NewReader(src), "TINY-MIB")
	require.NoError(t, err)
	assert.Equal(t, "TINY-MIB", m.Name())
	tiny := m.Symbol("tiny").(*mib.ValueSymbol)
	assert.Equal(t, "1.3.6.1.2.200", tiny.Value().(*mib.ObjectIdentifierValue).String())
}

func TestLoadUnknownModule(t *testing.T) {
	l := NewLoader()
	_, err := l.Load("NO-SUCH-MIB")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadUnresolvedReference(t *testing.T) {
	const src = `
BROKEN-MIB DEFINITIONS ::= BEGIN
broken OBJECT IDENTIFIER ::= { noSuchParent 1 }
END
`
	l := NewLoader()
	_, err := l.LoadReader(strings.NewReader(src), "BROKEN-MIB")
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, 1, loadErr.Log.Count())
	assert.Contains(t, loadErr.Log.Entries()[0].Message, "noSuchParent")
}

func TestLoadSyntaxError(t *testing.T) {
	const src = `
BAD-MIB DEFINITIONS ::= BEGIN
bad OBJECT IDENTIFIER ::=
END
`
	l := NewLoader()
	_, err := l.LoadReader(strings.NewReader(src), "BAD-MIB")
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.NotZero(t, loadErr.Log.Count())
}

func TestUnload(t *testing.T) {
	l := newTestLoader(t)
	_, err := l.Load("RFC1213-MIB")
	require.NoError(t, err)

	// Base modules stay pinned while importers remain.
	err = l.Unload("RFC1155-SMI")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still imported")

	require.NoError(t, l.Unload("RFC1213-MIB"))
	assert.Nil(t, l.LookupMib("RFC1213-MIB"))
	require.NoError(t, l.Unload("RFC-1212"))
	require.NoError(t, l.Unload("RFC1155-SMI"))
	assert.Empty(t, l.All())
}

func TestLoaderReset(t *testing.T) {
	l := newTestLoader(t)
	_, err := l.Load("TEST-A")
	require.NoError(t, err)
	require.NotEmpty(t, l.All())

	l.Reset()
	assert.Empty(t, l.All())
	assert.Nil(t, l.LookupMib("TEST-A"))

	// The loader is usable again after a reset.
	_, err = l.Load("RFC1213-MIB")
	require.NoError(t, err)
}
