package mib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golangsnmp/mibparse/parse"
)

// ObjectIdentifierValue is one node of the OID tree. The tree is a
// global forest shared across modules: importing a module does not
// copy its nodes, and two modules declaring the same OID share one
// node. Children are kept in strictly ascending sub-identifier order.
//
// Parent and child links form reference cycles; the garbage collector
// handles those, and Clear on the owning Mib detaches the links for
// an explicit lifecycle.
type ObjectIdentifierValue struct {
	parent   Value // *ObjectIdentifierValue once resolved
	name     string
	id       int
	symbol   *ValueSymbol
	children []*ObjectIdentifierValue
	resolved bool

	mib  *Mib
	line int
	col  int
}

// NewRootOidValue returns a tree root component with no parent, such
// as iso(1).
func NewRootOidValue(name string, id int) *ObjectIdentifierValue {
	return &ObjectIdentifierValue{name: name, id: id, resolved: true}
}

// RootSet holds the three well-known OID tree roots, owned by one
// loader. MIB modules reference ccitt, iso and joint-iso-ccitt
// without importing a definition (RFC1155-SMI itself hangs internet
// off a bare iso); value references fall back to this set.
type RootSet struct {
	roots []*ObjectIdentifierValue
}

// NewRootSet returns a fresh set of the three roots.
func NewRootSet() *RootSet {
	return &RootSet{roots: []*ObjectIdentifierValue{
		NewRootOidValue("ccitt", 0),
		NewRootOidValue("iso", 1),
		NewRootOidValue("joint-iso-ccitt", 2),
	}}
}

// ByName returns the root with the given name, or nil.
func (s *RootSet) ByName(name string) *ObjectIdentifierValue {
	for _, r := range s.roots {
		if r.name == name {
			return r
		}
	}
	return nil
}

// ByID returns the root with the given sub-identifier, or nil.
func (s *RootSet) ByID(id int) *ObjectIdentifierValue {
	for _, r := range s.roots {
		if r.id == id {
			return r
		}
	}
	return nil
}

// Roots returns the root nodes in numeric order.
func (s *RootSet) Roots() []*ObjectIdentifierValue {
	return s.roots
}

// NewOidValue returns an OID component under a parent value. The
// parent may be an unresolved ValueReference until Initialize runs.
func NewOidValue(mib *Mib, parent Value, name string, id int, line, col int) *ObjectIdentifierValue {
	return &ObjectIdentifierValue{
		parent: parent,
		name:   name,
		id:     id,
		mib:    mib,
		line:   line,
		col:    col,
	}
}

// NewNamedOidValue returns an OID component identified by name only.
// The sub-identifier is found at resolution time among the parent's
// existing children.
func NewNamedOidValue(mib *Mib, parent Value, name string, line, col int) *ObjectIdentifierValue {
	return &ObjectIdentifierValue{
		parent: parent,
		name:   name,
		id:     -1,
		mib:    mib,
		line:   line,
		col:    col,
	}
}

// SetName names an unnamed component; used when the declaring symbol
// supplies the name of its last OID component.
func (v *ObjectIdentifierValue) SetName(name string) {
	if v.name == "" {
		v.name = name
	}
}

// Initialize resolves the parent chain and links this node into the
// OID tree, merging with an existing node carrying the same
// sub-identifier. It returns the canonical tree node and is
// idempotent.
func (v *ObjectIdentifierValue) Initialize(log *parse.ErrorLog, typ Type) Value {
	if v.resolved || v.parent == nil {
		return v
	}
	parent := v.parent.Initialize(log, typ)
	if ref, ok := parent.(*ValueReference); ok {
		// the dangling reference has already been reported
		v.parent = ref
		return v
	}
	parentOid, ok := parent.(*ObjectIdentifierValue)
	if !ok {
		if v.mib != nil {
			log.Add(&parse.Error{
				Kind:    parse.ErrSemantic,
				File:    v.mib.File(),
				Line:    v.line,
				Column:  v.col,
				Message: fmt.Sprintf("parent of OID component %s(%d) is not an object identifier", v.name, v.id),
			})
		}
		return v
	}
	if v.id < 0 {
		existing := parentOid.ChildByName(v.name)
		if existing == nil {
			log.Add(&parse.Error{
				Kind:    parse.ErrSemantic,
				File:    v.mib.File(),
				Line:    v.line,
				Column:  v.col,
				Message: fmt.Sprintf("OID component %q not found under %s", v.name, parentOid),
			})
			return v
		}
		return existing
	}
	v.parent = parentOid
	v.resolved = true
	return parentOid.attachChild(v)
}

// attachChild inserts a child in ascending sub-identifier order. A
// child with the same sub-identifier shares the existing node, which
// adopts the new node's name and symbol when it has none.
func (v *ObjectIdentifierValue) attachChild(child *ObjectIdentifierValue) *ObjectIdentifierValue {
	lo := 0
	hi := len(v.children)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.children[mid].id < child.id {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.children) && v.children[lo].id == child.id {
		existing := v.children[lo]
		if existing.name == "" {
			existing.name = child.name
		}
		if existing.symbol == nil {
			existing.symbol = child.symbol
		}
		return existing
	}
	v.children = append(v.children, nil)
	copy(v.children[lo+1:], v.children[lo:])
	v.children[lo] = child
	return child
}

// setSymbol records the declaring value symbol on the node, keeping
// the first one when two modules declare the same OID.
func (v *ObjectIdentifierValue) setSymbol(symbol *ValueSymbol) {
	if v.symbol == nil {
		v.symbol = symbol
	}
}

// Name returns the component name, which may be empty for numeric
// components.
func (v *ObjectIdentifierValue) Name() string {
	return v.name
}

// ID returns the sub-identifier of this component.
func (v *ObjectIdentifierValue) ID() int {
	return v.id
}

// Parent returns the parent node, or nil for a root.
func (v *ObjectIdentifierValue) Parent() *ObjectIdentifierValue {
	if p, ok := v.parent.(*ObjectIdentifierValue); ok {
		return p
	}
	return nil
}

// Symbol returns the value symbol declared at this node, or nil.
func (v *ObjectIdentifierValue) Symbol() *ValueSymbol {
	return v.symbol
}

// Children returns the child nodes in ascending sub-identifier order.
func (v *ObjectIdentifierValue) Children() []*ObjectIdentifierValue {
	return v.children
}

// Child returns the child with the given sub-identifier, or nil.
func (v *ObjectIdentifierValue) Child(id int) *ObjectIdentifierValue {
	for _, c := range v.children {
		if c.id == id {
			return c
		}
		if c.id > id {
			break
		}
	}
	return nil
}

// ChildByName returns the child with the given name, or nil.
func (v *ObjectIdentifierValue) ChildByName(name string) *ObjectIdentifierValue {
	for _, c := range v.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// String returns the dotted numeric form, e.g. "1.3.6.1.2.1".
func (v *ObjectIdentifierValue) String() string {
	var ids []string
	for n := v; n != nil; n = n.Parent() {
		ids = append(ids, strconv.Itoa(n.id))
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return strings.Join(ids, ".")
}

// NamedString returns the dotted form with names where known, e.g.
// "iso(1).org(3).dod(6)".
func (v *ObjectIdentifierValue) NamedString() string {
	var parts []string
	for n := v; n != nil; n = n.Parent() {
		if n.name != "" {
			parts = append(parts, fmt.Sprintf("%s(%d)", n.name, n.id))
		} else {
			parts = append(parts, strconv.Itoa(n.id))
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// detach drops the symbol link owned by the clearing Mib and prunes
// the node out of the tree once nothing references it. Nodes still
// used by other modules stay in place.
func (v *ObjectIdentifierValue) detach(owner *Mib) {
	if v.symbol != nil && v.symbol.Mib() == owner {
		v.symbol = nil
	}
	v.prune()
}

// prune removes the node from its parent when it carries neither a
// symbol nor children, continuing upward through emptied parents.
func (v *ObjectIdentifierValue) prune() {
	if v.symbol != nil || len(v.children) > 0 {
		return
	}
	parent := v.Parent()
	if parent == nil {
		return
	}
	for i, c := range parent.children {
		if c == v {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	v.parent = nil
	parent.prune()
}
