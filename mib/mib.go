// Package mib holds the in-memory MIB model: modules, symbols, types,
// values, and the shared object-identifier tree, together with the
// two-phase Initialize/Validate resolution that links symbols across
// imported modules.
package mib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golangsnmp/mibparse/parse"
)

// Registry looks up loaded modules by name and owns the well-known
// OID roots. The loader implements it; modules consult it when
// binding imports and resolving bare root references.
type Registry interface {
	LookupMib(name string) *Mib
	Roots() *RootSet
}

// Mib is one loaded MIB module with its symbol table. It is created
// empty by the loader, populated during parsing, linked to its
// imports by Initialize, and resolved by Validate.
type Mib struct {
	name       string
	file       string
	smiVersion int
	registry   Registry

	imports   []*Import
	symbols   []Symbol
	symbolMap map[string]Symbol
	valueMap  map[string]*ValueSymbol

	headerComment string
	footerComment string
	explicit      bool
}

// NewMib returns an empty module bound to the registry.
func NewMib(name string, registry Registry) *Mib {
	return &Mib{
		name:       name,
		smiVersion: 1,
		registry:   registry,
		symbolMap:  make(map[string]Symbol),
	}
}

// Name returns the module name.
func (m *Mib) Name() string { return m.name }

// SetName renames the module; the loader uses the declared module
// name once parsing finds it.
func (m *Mib) SetName(name string) { m.name = name }

// File returns the source file path, if loaded from a file.
func (m *Mib) File() string { return m.file }

// SetFile records the source file path.
func (m *Mib) SetFile(file string) { m.file = file }

// SMIVersion returns 1 or 2, inferred from the imported base modules.
func (m *Mib) SMIVersion() int { return m.smiVersion }

// SetSMIVersion records the SMI version.
func (m *Mib) SetSMIVersion(v int) { m.smiVersion = v }

// Loaded reports whether the module was requested explicitly rather
// than pulled in as an import dependency.
func (m *Mib) Loaded() bool { return m.explicit }

// SetLoaded marks the module as explicitly loaded.
func (m *Mib) SetLoaded(explicit bool) { m.explicit = explicit }

// HeaderComment returns the comment preceding the module definition.
func (m *Mib) HeaderComment() string { return m.headerComment }

// SetHeaderComment records the comment preceding the module.
func (m *Mib) SetHeaderComment(s string) { m.headerComment = s }

// FooterComment returns the comment following the module end.
func (m *Mib) FooterComment() string { return m.footerComment }

// SetFooterComment records the comment following the module end.
func (m *Mib) SetFooterComment(s string) { m.footerComment = s }

// AddImport records an import declaration.
func (m *Mib) AddImport(imp *Import) {
	m.imports = append(m.imports, imp)
}

// Imports returns the import declarations in order.
func (m *Mib) Imports() []*Import { return m.imports }

// Import returns the import of the named module, or nil.
func (m *Mib) Import(module string) *Import {
	for _, imp := range m.imports {
		if imp.Module() == module {
			return imp
		}
	}
	return nil
}

// AddSymbol records a symbol definition. A duplicate name is a
// semantic error reported by the caller via the returned error.
func (m *Mib) AddSymbol(sym Symbol) error {
	if _, exists := m.symbolMap[sym.Name()]; exists {
		return fmt.Errorf("symbol %q already defined in %s", sym.Name(), m.name)
	}
	m.symbols = append(m.symbols, sym)
	m.symbolMap[sym.Name()] = sym
	return nil
}

// Symbols returns the symbols in declaration order.
func (m *Mib) Symbols() []Symbol { return m.symbols }

// Symbol returns the symbol declared in this module with the given
// name, or nil.
func (m *Mib) Symbol(name string) Symbol {
	return m.symbolMap[name]
}

// FindSymbol returns the named symbol, searching this module and,
// when expanded is true, the modules it imports. Imported symbols
// resolve through the exporting module's own scope.
func (m *Mib) FindSymbol(name string, expanded bool) Symbol {
	if sym := m.symbolMap[name]; sym != nil {
		return sym
	}
	if !expanded {
		return nil
	}
	for _, imp := range m.imports {
		if imp.Mib() == nil || !imp.ProvidesSymbol(name) {
			continue
		}
		if sym := imp.Mib().FindSymbol(name, true); sym != nil {
			return sym
		}
	}
	return nil
}

// RootOid returns the well-known root node with the given name, or
// nil when the registry does not supply roots.
func (m *Mib) RootOid(name string) *ObjectIdentifierValue {
	if m.registry == nil {
		return nil
	}
	if roots := m.registry.Roots(); roots != nil {
		return roots.ByName(name)
	}
	return nil
}

// RootOidByID returns the well-known root node with the given
// sub-identifier, or nil.
func (m *Mib) RootOidByID(id int) *ObjectIdentifierValue {
	if m.registry == nil {
		return nil
	}
	if roots := m.registry.Roots(); roots != nil {
		return roots.ByID(id)
	}
	return nil
}

// SymbolByValue returns the value symbol whose resolved value prints
// as the given string, or nil. The value map is built by Validate.
func (m *Mib) SymbolByValue(value string) *ValueSymbol {
	return m.valueMap[value]
}

// SymbolByOid returns the value symbol with the longest matching OID
// prefix of the dotted string, stripping trailing components until a
// declared symbol is found. A leading dot is accepted.
func (m *Mib) SymbolByOid(oid string) *ValueSymbol {
	oid = FormatOid(oid)
	for {
		if sym := m.valueMap[oid]; sym != nil {
			return sym
		}
		pos := strings.LastIndexByte(oid, '.')
		if pos < 0 {
			return nil
		}
		oid = oid[:pos]
	}
}

// RootSymbol returns the value symbol at the top of this module's OID
// subtree: starting from any OID symbol, the walk follows parents as
// long as they belong to this module.
func (m *Mib) RootSymbol() *ValueSymbol {
	var root *ValueSymbol
	for _, sym := range m.symbols {
		vs, ok := sym.(*ValueSymbol)
		if !ok {
			continue
		}
		oid, ok := vs.Value().(*ObjectIdentifierValue)
		if !ok {
			continue
		}
		root = vs
		for parent := oid.Parent(); parent != nil; parent = parent.Parent() {
			if parent.Symbol() == nil || parent.Symbol().Mib() != m {
				break
			}
			root = parent.Symbol()
		}
		return root
	}
	return nil
}

// Initialize resolves the import bindings against the registry. Each
// imported module must already be loaded; requested symbols missing
// from the exporter are semantic errors.
func (m *Mib) Initialize(log *parse.ErrorLog) {
	for _, imp := range m.imports {
		imp.initialize(m, log)
	}
}

// Validate flattens type and value indirection for every symbol and
// indexes the value symbols by their resolved value string. It may be
// rerun; symbol initialization is idempotent.
func (m *Mib) Validate(log *parse.ErrorLog) {
	for _, sym := range m.symbols {
		switch s := sym.(type) {
		case *ValueSymbol:
			s.Initialize(log)
		case *TypeSymbol:
			s.Initialize(log)
		}
	}
	m.valueMap = make(map[string]*ValueSymbol)
	for _, sym := range m.symbols {
		if vs, ok := sym.(*ValueSymbol); ok && vs.Value() != nil {
			key := vs.Value().String()
			if _, exists := m.valueMap[key]; !exists {
				m.valueMap[key] = vs
			}
		}
	}
}

// Clear detaches all back-pointers to break ownership cycles before
// disposal. It must only be invoked after all dependent modules have
// been cleared.
func (m *Mib) Clear() {
	for _, sym := range m.symbols {
		sym.clear()
	}
	m.symbols = nil
	m.symbolMap = map[string]Symbol{}
	m.valueMap = nil
	for _, imp := range m.imports {
		imp.mib = nil
	}
	m.imports = nil
	m.registry = nil
}

func (m *Mib) String() string {
	return m.name
}

// Import is one module of an IMPORTS declaration: the exporting
// module name, the requested symbol names, and the resolved module
// once Initialize has run.
type Import struct {
	module  string
	symbols []string
	mib     *Mib
	line    int
	col     int
}

// NewImport returns an unresolved import of the named symbols.
// An empty symbol list imports the whole module.
func NewImport(module string, symbols []string, line, col int) *Import {
	return &Import{module: module, symbols: symbols, line: line, col: col}
}

// Module returns the exporting module name.
func (i *Import) Module() string { return i.module }

// Symbols returns the requested symbol names.
func (i *Import) Symbols() []string { return i.symbols }

// Mib returns the resolved exporting module, or nil before
// initialization.
func (i *Import) Mib() *Mib { return i.mib }

// ProvidesSymbol reports whether the import covers the given name.
func (i *Import) ProvidesSymbol(name string) bool {
	if len(i.symbols) == 0 {
		return true
	}
	for _, s := range i.symbols {
		if s == name {
			return true
		}
	}
	return false
}

// initialize binds the import to the loaded exporter and verifies the
// requested symbols exist there.
func (i *Import) initialize(owner *Mib, log *parse.ErrorLog) {
	if i.mib != nil {
		return
	}
	if owner.registry != nil {
		i.mib = owner.registry.LookupMib(i.module)
	}
	if i.mib == nil {
		log.Add(&parse.Error{
			Kind:    parse.ErrSemantic,
			File:    owner.File(),
			Line:    i.line,
			Column:  i.col,
			Message: fmt.Sprintf("imported module %q not loaded", i.module),
		})
		return
	}
	for _, name := range i.symbols {
		if i.mib.Symbol(name) == nil && !isMacroImport(name) {
			log.Add(&parse.Error{
				Kind:    parse.ErrSemantic,
				File:    owner.File(),
				Line:    i.line,
				Column:  i.col,
				Message: fmt.Sprintf("symbol %q not defined in module %q", name, i.module),
			})
		}
	}
}

// isMacroImport accepts the well-known macro and type names that base
// modules export without a parsed definition (their macro bodies are
// skipped by the grammar).
func isMacroImport(name string) bool {
	switch name {
	case "OBJECT-TYPE", "MODULE-IDENTITY", "OBJECT-IDENTITY",
		"NOTIFICATION-TYPE", "TRAP-TYPE", "TEXTUAL-CONVENTION",
		"OBJECT-GROUP", "NOTIFICATION-GROUP", "MODULE-COMPLIANCE",
		"AGENT-CAPABILITIES":
		return true
	}
	return false
}

// FormatOid parses and normalizes a dotted OID string, used by
// lookups that accept a leading dot.
func FormatOid(oid string) string {
	oid = strings.TrimPrefix(oid, ".")
	parts := strings.Split(oid, ".")
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			parts[i] = strconv.Itoa(n)
		}
	}
	return strings.Join(parts, ".")
}
