package mib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/mibparse/parse"
)

// mapRegistry is a test registry over a name->module map.
type mapRegistry map[string]*Mib

func (r mapRegistry) LookupMib(name string) *Mib { return r[name] }

func (r mapRegistry) Roots() *RootSet { return nil }

// buildBaseMib declares iso(1).org(3).dod(6).internet(1) in a module
// named TEST-BASE.
func buildBaseMib(t *testing.T, reg mapRegistry) *Mib {
	t.Helper()
	m := NewMib("TEST-BASE", reg)
	reg["TEST-BASE"] = m

	iso := NewValueSymbol(m, "iso", NewObjectIdentifierType(), NewRootOidValue("iso", 1), 1, 1)
	require.NoError(t, m.AddSymbol(iso))

	org := NewValueSymbol(m, "org", NewObjectIdentifierType(),
		NewOidValue(m, NewValueReference(m, "iso", 2, 1), "org", 3, 2, 1), 2, 1)
	require.NoError(t, m.AddSymbol(org))

	dod := NewValueSymbol(m, "dod", NewObjectIdentifierType(),
		NewOidValue(m, NewValueReference(m, "org", 3, 1), "dod", 6, 3, 1), 3, 1)
	require.NoError(t, m.AddSymbol(dod))

	internet := NewValueSymbol(m, "internet", NewObjectIdentifierType(),
		NewOidValue(m, NewValueReference(m, "dod", 4, 1), "internet", 1, 4, 1), 4, 1)
	require.NoError(t, m.AddSymbol(internet))
	return m
}

func validate(t *testing.T, m *Mib) {
	t.Helper()
	log := parse.NewErrorLog()
	m.Initialize(log)
	m.Validate(log)
	require.NoError(t, log.Err(), "module %s", m.Name())
}

func TestOidTreeConstruction(t *testing.T) {
	reg := mapRegistry{}
	m := buildBaseMib(t, reg)
	validate(t, m)

	internet := m.Symbol("internet").(*ValueSymbol)
	oid := internet.Value().(*ObjectIdentifierValue)
	assert.Equal(t, "1.3.6.1", oid.String())
	assert.Equal(t, "iso(1).org(3).dod(6).internet(1)", oid.NamedString())
	assert.Same(t, internet, oid.Symbol())

	iso := m.Symbol("iso").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	assert.Equal(t, "1", iso.String())
	require.Len(t, iso.Children(), 1)
	assert.Equal(t, 3, iso.Children()[0].ID())
}

func TestOidChildrenAscendingAndShared(t *testing.T) {
	reg := mapRegistry{}
	m := buildBaseMib(t, reg)

	// Declare children out of order plus a duplicate sub-identifier.
	for _, tc := range []struct {
		name string
		id   int
	}{{"directory", 1}, {"mgmt", 2}, {"private", 4}, {"experimental", 3}} {
		sym := NewValueSymbol(m, tc.name, NewObjectIdentifierType(),
			NewOidValue(m, NewValueReference(m, "internet", 5, 1), tc.name, tc.id, 5, 1), 5, 1)
		require.NoError(t, m.AddSymbol(sym))
	}
	dup := NewValueSymbol(m, "mgmtAlias", NewObjectIdentifierType(),
		NewOidValue(m, NewValueReference(m, "internet", 9, 1), "", 2, 9, 1), 9, 1)
	require.NoError(t, m.AddSymbol(dup))
	validate(t, m)

	internet := m.Symbol("internet").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	var ids []int
	for _, c := range internet.Children() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)

	// The duplicate declaration shares the existing node.
	alias := m.Symbol("mgmtAlias").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	mgmt := m.Symbol("mgmt").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	assert.Same(t, mgmt, alias)
	assert.Equal(t, "mgmt", alias.Name())
}

func TestSymbolByValueAndOid(t *testing.T) {
	reg := mapRegistry{}
	m := buildBaseMib(t, reg)
	validate(t, m)

	internet := m.Symbol("internet").(*ValueSymbol)
	assert.Same(t, internet, m.SymbolByValue("1.3.6.1"))

	// Longest prefix: trailing instance components are stripped.
	assert.Same(t, internet, m.SymbolByOid("1.3.6.1.99.100"))
	assert.Same(t, internet, m.SymbolByOid("1.3.6.1"))
	assert.Nil(t, m.SymbolByOid("2.9"))
}

func TestRootSymbol(t *testing.T) {
	reg := mapRegistry{}
	m := buildBaseMib(t, reg)
	validate(t, m)
	root := m.RootSymbol()
	require.NotNil(t, root)
	assert.Equal(t, "iso", root.Name())
}

func TestCrossModuleImport(t *testing.T) {
	reg := mapRegistry{}
	base := buildBaseMib(t, reg)
	validate(t, base)

	m := NewMib("TEST-CHILD", reg)
	reg["TEST-CHILD"] = m
	m.AddImport(NewImport("TEST-BASE", []string{"internet"}, 2, 1))
	child := NewValueSymbol(m, "childNode", NewObjectIdentifierType(),
		NewOidValue(m, NewValueReference(m, "internet", 4, 1), "childNode", 7, 4, 1), 4, 1)
	require.NoError(t, m.AddSymbol(child))
	validate(t, m)

	oid := child.Value().(*ObjectIdentifierValue)
	assert.Equal(t, "1.3.6.1.7", oid.String())

	// The OID tree is shared, not copied: the new node hangs off the
	// exporting module's subtree.
	internet := base.Symbol("internet").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	assert.Same(t, oid, internet.Child(7))
	// Name lookup from the importer finds the exporter's symbol.
	assert.Same(t, base.Symbol("internet"), m.FindSymbol("internet", true))
	assert.Nil(t, m.FindSymbol("internet", false))
}

func TestImportErrors(t *testing.T) {
	reg := mapRegistry{}
	base := buildBaseMib(t, reg)
	validate(t, base)

	m := NewMib("TEST-BROKEN", reg)
	reg["TEST-BROKEN"] = m
	m.AddImport(NewImport("NO-SUCH-MODULE", []string{"foo"}, 2, 1))
	m.AddImport(NewImport("TEST-BASE", []string{"noSuchSymbol"}, 3, 1))

	log := parse.NewErrorLog()
	m.Initialize(log)
	require.Equal(t, 2, log.Count())
	for _, e := range log.Entries() {
		assert.Equal(t, parse.ErrSemantic, e.Kind)
	}
}

func TestUnresolvedReferenceReported(t *testing.T) {
	reg := mapRegistry{}
	m := NewMib("TEST-DANGLING", reg)
	reg["TEST-DANGLING"] = m
	sym := NewValueSymbol(m, "orphan", NewObjectIdentifierType(),
		NewOidValue(m, NewValueReference(m, "missingParent", 2, 1), "orphan", 1, 2, 1), 2, 1)
	require.NoError(t, m.AddSymbol(sym))

	log := parse.NewErrorLog()
	m.Initialize(log)
	m.Validate(log)
	require.Error(t, log.Err())
	assert.Equal(t, parse.ErrSemantic, log.Entries()[0].Kind)
}

func TestValidateIdempotent(t *testing.T) {
	reg := mapRegistry{}
	m := buildBaseMib(t, reg)
	validate(t, m)
	before := m.Symbol("internet").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	validate(t, m)
	after := m.Symbol("internet").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	assert.Same(t, before, after)
}

func TestClearDetaches(t *testing.T) {
	reg := mapRegistry{}
	base := buildBaseMib(t, reg)
	validate(t, base)

	m := NewMib("TEST-CHILD", reg)
	reg["TEST-CHILD"] = m
	m.AddImport(NewImport("TEST-BASE", []string{"internet"}, 2, 1))
	child := NewValueSymbol(m, "childNode", NewObjectIdentifierType(),
		NewOidValue(m, NewValueReference(m, "internet", 4, 1), "childNode", 7, 4, 1), 4, 1)
	require.NoError(t, m.AddSymbol(child))
	validate(t, m)

	internet := base.Symbol("internet").(*ValueSymbol).Value().(*ObjectIdentifierValue)
	require.NotNil(t, internet.Child(7))

	// Dependents clear first, releasing their nodes from the shared
	// tree; the base module keeps its own.
	m.Clear()
	assert.Nil(t, internet.Child(7))
	assert.Empty(t, m.Symbols())
	base.Clear()
	assert.Nil(t, internet.Symbol())
}

func TestEnumeratedInteger(t *testing.T) {
	typ := NewEnumeratedIntegerType([]NamedNumber{
		{Name: "up", Number: NewNumberValue(1)},
		{Name: "down", Number: NewNumberValue(2)},
	})
	log := parse.NewErrorLog()
	resolved := typ.Initialize(nil, log)
	require.NoError(t, log.Err())
	assert.True(t, resolved.IsCompatible(NewNumberValue(1)))
	assert.Contains(t, resolved.String(), "up(1)")
}

func TestConstraints(t *testing.T) {
	rng := NewValueRangeConstraint(NewNumberValue(0), NewNumberValue(255))
	assert.True(t, rng.IsCompatible(NewNumberValue(10)))
	assert.False(t, rng.IsCompatible(NewNumberValue(-1)))
	assert.False(t, rng.IsCompatible(NewNumberValue(256)))
	assert.Equal(t, "0..255", rng.String())

	size := NewSizeConstraint(NewValueRangeConstraint(NewNumberValue(0), NewNumberValue(4)))
	assert.True(t, size.IsCompatible(NewStringValue("abcd")))
	assert.False(t, size.IsCompatible(NewStringValue("abcde")))
	assert.Equal(t, "SIZE (0..4)", size.String())

	compound := NewCompoundConstraint([]Constraint{
		NewValueConstraint(NewNumberValue(4)),
		NewValueConstraint(NewNumberValue(6)),
	})
	assert.True(t, compound.IsCompatible(NewNumberValue(6)))
	assert.False(t, compound.IsCompatible(NewNumberValue(5)))
}
