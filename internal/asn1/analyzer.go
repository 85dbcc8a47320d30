package asn1

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/golangsnmp/mibparse/mib"
	"github.com/golangsnmp/mibparse/parse"
)

// MibAnalyzer translates the ASN.1 parse tree into the mib model. It
// follows the value protocol of the parse package: each production
// exit computes model objects from its children's attached values and
// attaches its own result, so parents assemble from parts. Symbols
// cited before their definition become unresolved references, fixed
// up by the loader's Initialize/Validate passes.
type MibAnalyzer struct {
	parse.NopAnalyzer
	mib *mib.Mib
}

// NewMibAnalyzer returns an analyzer populating the given module.
func NewMibAnalyzer(m *mib.Mib) *MibAnalyzer {
	return &MibAnalyzer{mib: m}
}

// rangeEndpoint wraps a constraint endpoint; a nil value stands for
// MIN or MAX.
type rangeEndpoint struct {
	value mib.Value
}

// oidComponent is one parsed component of a braced OID value.
type oidComponent struct {
	name      string
	number    int
	hasNumber bool
	line      int
	col       int
}

// augmentsClause marks an AUGMENTS index part.
type augmentsClause struct {
	row mib.Value
}

// Exit dispatches on the production id, attaching computed values.
func (a *MibAnalyzer) Exit(node parse.Node) (parse.Node, error) {
	production, ok := node.(*parse.Production)
	if !ok {
		return node, nil
	}
	switch production.ID() {
	case ProdModuleDefinition:
		return a.exitModuleDefinition(production)
	case ProdModuleIdentifier:
		node.AddValue(tokenImage(production, 0))
		return node, nil
	case ProdImportList:
		return a.exitImportList(production)
	case ProdSymbolsFromModule:
		return a.exitSymbolsFromModule(production)
	case ProdSymbolList, ProdValueList, ProdObjIdComponentList,
		ProdNamedNumberList, ProdElementTypeList, ProdSnmpIndexList:
		node.AddValues(childValues(production))
		return node, nil
	case ProdSymbol:
		node.AddValue(tokenImage(production, 0))
		return node, nil
	case ProdMacroDefinition:
		return a.exitMacroDefinition(production)
	case ProdMacroBody, ProdMacroToken:
		// macro bodies are skipped entirely
		return nil, nil
	case ProdTypeAssignment:
		return a.exitTypeAssignment(production)
	case ProdValueAssignment:
		return a.exitValueAssignment(production)
	case ProdType, ProdBuiltinType, ProdDefinedMacroType, ProdValue,
		ProdValueOrConstraintList, ProdNamedNumberListBraced, ProdRangeRest:
		node.AddValues(childValues(production))
		return node, nil
	case ProdDefinedType:
		return a.exitDefinedType(production)
	case ProdNullType:
		node.AddValue(mib.NewNullType())
	case ProdBooleanType:
		node.AddValue(mib.NewBooleanType())
	case ProdRealType:
		node.AddValue(mib.NewRealType())
	case ProdAnyType:
		node.AddValue(mib.NewAnyType())
	case ProdIntegerType:
		node.AddValue(integerTypeFrom(childValues(production)))
	case ProdObjectIdentifierType:
		node.AddValue(mib.NewObjectIdentifierType())
	case ProdStringType:
		node.AddValue(stringTypeFrom(childValues(production)))
	case ProdBitStringType, ProdBitsType:
		node.AddValue(bitsTypeFrom(childValues(production)))
	case ProdSequenceType:
		node.AddValue(mib.NewSequenceType(elementsFrom(childValues(production))))
	case ProdSetType:
		values := childValues(production)
		if typ, ok := firstType(values); ok {
			node.AddValue(mib.NewSequenceOfType(typ))
		} else {
			node.AddValue(mib.NewSequenceType(elementsFrom(values)))
		}
	case ProdSequenceOfType:
		return a.exitSequenceOfType(production)
	case ProdChoiceType:
		node.AddValue(mib.NewChoiceType(elementsFrom(childValues(production))))
	case ProdEnumeratedType:
		node.AddValue(mib.NewEnumeratedIntegerType(numbersFrom(childValues(production))))
	case ProdElementType:
		return a.exitElementType(production)
	case ProdNamedNumber:
		return a.exitNamedNumber(production)
	case ProdSignedNumber:
		return a.exitSignedNumber(production)
	case ProdConstraintList:
		node.AddValues(childValues(production))
	case ProdValueConstraintList:
		node.AddValue(constraintFrom(childValues(production)))
	case ProdConstraint:
		return a.exitConstraint(production)
	case ProdValueRange:
		return a.exitValueRange(production)
	case ProdRangeEndpoint:
		return a.exitRangeEndpoint(production)
	case ProdDefinedValue:
		tok := childToken(production, 0)
		node.AddValue(mib.NewValueReference(a.mib, tok.Image(), tok.StartLine(), tok.StartColumn()))
	case ProdNumberValue:
		node.AddValue(numberFrom(production))
	case ProdBinaryValue:
		node.AddValue(radixNumber(tokenImage(production, 0), 2))
	case ProdHexadecimalValue:
		node.AddValue(radixNumber(tokenImage(production, 0), 16))
	case ProdStringValue:
		node.AddValue(mib.NewStringValue(unquote(tokenImage(production, 0))))
	case ProdBooleanValue:
		node.AddValue(mib.NewBooleanValue(tokenImage(production, 0) == "TRUE"))
	case ProdSpecialValue:
		node.AddValue(mib.NewNullValue())
	case ProdObjectIdentifierValue:
		return a.exitObjectIdentifierValue(production)
	case ProdObjIdComponent:
		return a.exitObjIdComponent(production)
	case ProdNameValueComponent:
		node.AddValue(atoi(tokenImage(production, 1)))
	case ProdSnmpUpdatePart, ProdSnmpOrganizationPart, ProdSnmpContactPart,
		ProdSnmpDescrPart, ProdSnmpReferPart, ProdSnmpUnitsPart,
		ProdSnmpDisplayPart, ProdSnmpProductReleasePart:
		node.AddValue(unquote(tokenImage(production, 1)))
	case ProdSnmpStatusPart:
		return a.exitStatusPart(production)
	case ProdSnmpAccessPart:
		return a.exitAccessPart(production)
	case ProdSnmpSyntaxPart, ProdSnmpWriteSyntaxPart, ProdSnmpDefValPart,
		ProdSnmpDefValValue, ProdSnmpEnterprisePart:
		node.AddValues(childValues(production))
	case ProdSnmpDefValBitsValue:
		node.AddValue(a.bitsValueFrom(production))
	case ProdSnmpObjectsPart, ProdSnmpVarPart, ProdSnmpNotificationsPart,
		ProdSnmpMandatoryPart, ProdSnmpCreationPart:
		node.AddValue(valuesFrom(childValues(production)))
	case ProdSnmpRevisionPart:
		node.AddValue(mib.Revision{
			Value:       mib.NewStringValue(unquote(tokenImage(production, 1))),
			Description: unquote(tokenImage(production, 3)),
		})
	case ProdSnmpIndexPart:
		return a.exitIndexPart(production)
	case ProdSnmpIndexType:
		return a.exitIndexType(production)
	case ProdSnmpModulePart:
		return a.exitModulePart(production)
	case ProdSnmpModuleSupportPart:
		return a.exitModuleSupportPart(production)
	case ProdSnmpModuleIdentityMacroType:
		return a.exitModuleIdentityMacro(production)
	case ProdSnmpObjectIdentityMacroType:
		return a.exitObjectIdentityMacro(production)
	case ProdSnmpObjectTypeMacroType:
		return a.exitObjectTypeMacro(production)
	case ProdSnmpNotificationTypeMacroType:
		return a.exitNotificationTypeMacro(production)
	case ProdSnmpTrapTypeMacroType:
		return a.exitTrapTypeMacro(production)
	case ProdSnmpTextualConventionMacroType:
		return a.exitTextualConventionMacro(production)
	case ProdSnmpObjectGroupMacroType:
		return a.exitObjectGroupMacro(production)
	case ProdSnmpNotificationGroupMacroType:
		return a.exitNotificationGroupMacro(production)
	case ProdSnmpModuleComplianceMacroType:
		return a.exitModuleComplianceMacro(production)
	case ProdSnmpAgentCapabilitiesMacroType:
		return a.exitAgentCapabilitiesMacro(production)
	}
	return node, nil
}

// --- module structure ---

func (a *MibAnalyzer) exitModuleDefinition(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	for _, v := range values {
		if name, ok := v.(string); ok {
			a.mib.SetName(name)
			break
		}
	}
	return node, nil
}

func (a *MibAnalyzer) exitImportList(node *parse.Production) (parse.Node, error) {
	for _, v := range childValues(node) {
		imp, ok := v.(*mib.Import)
		if !ok {
			continue
		}
		a.mib.AddImport(imp)
		switch imp.Module() {
		case "SNMPv2-SMI", "SNMPv2-TC", "SNMPv2-CONF":
			a.mib.SetSMIVersion(2)
		}
	}
	return node, nil
}

func (a *MibAnalyzer) exitSymbolsFromModule(node *parse.Production) (parse.Node, error) {
	var names []string
	for _, v := range childValues(node) {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	from := lastToken(node)
	node.AddValue(mib.NewImport(from.Image(), names, from.StartLine(), from.StartColumn()))
	return node, nil
}

func (a *MibAnalyzer) exitMacroDefinition(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	sym := mib.NewMacroSymbol(a.mib, tok.Image(), tok.StartLine(), tok.StartColumn())
	if err := a.mib.AddSymbol(sym); err != nil {
		return node, err
	}
	return node, nil
}

func (a *MibAnalyzer) exitTypeAssignment(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	typ, ok := firstType(childValues(node))
	if !ok {
		return node, fmt.Errorf("type assignment %s produced no type", tok.Image())
	}
	sym := mib.NewTypeSymbol(a.mib, tok.Image(), typ, tok.StartLine(), tok.StartColumn())
	if err := a.mib.AddSymbol(sym); err != nil {
		return node, err
	}
	return node, nil
}

func (a *MibAnalyzer) exitValueAssignment(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	values := childValues(node)
	typ, _ := firstType(values)
	value, ok := firstValue(values)
	if !ok {
		return node, fmt.Errorf("value assignment %s produced no value", tok.Image())
	}
	if oid, isOid := value.(*mib.ObjectIdentifierValue); isOid {
		oid.SetName(tok.Image())
	}
	sym := mib.NewValueSymbol(a.mib, tok.Image(), typ, value, tok.StartLine(), tok.StartColumn())
	if err := a.mib.AddSymbol(sym); err != nil {
		return node, err
	}
	return node, nil
}

// --- types ---

func (a *MibAnalyzer) exitDefinedType(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	line, col := tok.StartLine(), tok.StartColumn()
	if numbers := numbersFrom(childValues(node)); len(numbers) > 0 {
		node.AddValue(mib.NewEnumeratedTypeReference(a.mib, tok.Image(), line, col, numbers))
		return node, nil
	}
	for _, v := range childValues(node) {
		switch extra := v.(type) {
		case mib.Constraint:
			node.AddValue(mib.NewConstrainedTypeReference(a.mib, tok.Image(), line, col, extra))
			return node, nil
		case []mib.NamedNumber:
			node.AddValue(mib.NewEnumeratedTypeReference(a.mib, tok.Image(), line, col, extra))
			return node, nil
		}
	}
	node.AddValue(mib.NewTypeReference(a.mib, tok.Image(), line, col))
	return node, nil
}

func (a *MibAnalyzer) exitSequenceOfType(node *parse.Production) (parse.Node, error) {
	typ, ok := firstType(childValues(node))
	if !ok {
		return node, fmt.Errorf("SEQUENCE OF produced no element type")
	}
	node.AddValue(mib.NewSequenceOfType(typ))
	return node, nil
}

func (a *MibAnalyzer) exitElementType(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	typ, ok := firstType(childValues(node))
	if !ok {
		return node, fmt.Errorf("sequence element %s produced no type", tok.Image())
	}
	node.AddValue(mib.SequenceElement{Name: tok.Image(), Type: typ})
	return node, nil
}

func (a *MibAnalyzer) exitNamedNumber(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	value, ok := firstValue(childValues(node))
	if !ok {
		return node, fmt.Errorf("named number %s has no value", tok.Image())
	}
	node.AddValue(mib.NamedNumber{Name: tok.Image(), Number: value})
	return node, nil
}

func (a *MibAnalyzer) exitSignedNumber(node *parse.Production) (parse.Node, error) {
	first := childToken(node, 0)
	switch first.ID() {
	case TokenIdentifierString:
		node.AddValue(mib.NewValueReference(a.mib, first.Image(), first.StartLine(), first.StartColumn()))
	case TokenMinus:
		node.AddValue(negNumber(tokenImage(node, 1)))
	default:
		node.AddValue(posNumber(first.Image()))
	}
	return node, nil
}

// --- constraints ---

func (a *MibAnalyzer) exitConstraint(node *parse.Production) (parse.Node, error) {
	if tok := childToken(node, 0); tok != nil && tok.ID() == TokenSize {
		inner, ok := firstConstraint(childValues(node))
		if !ok {
			return node, fmt.Errorf("SIZE constraint has no inner constraint")
		}
		node.AddValue(mib.NewSizeConstraint(inner))
		return node, nil
	}
	node.AddValues(childValues(node))
	return node, nil
}

func (a *MibAnalyzer) exitValueRange(node *parse.Production) (parse.Node, error) {
	var endpoints []rangeEndpoint
	for _, v := range childValues(node) {
		if ep, ok := v.(rangeEndpoint); ok {
			endpoints = append(endpoints, ep)
		}
	}
	switch len(endpoints) {
	case 1:
		if endpoints[0].value == nil {
			return node, fmt.Errorf("MIN or MAX cannot stand alone as a constraint")
		}
		node.AddValue(mib.NewValueConstraint(endpoints[0].value))
	case 2:
		node.AddValue(mib.NewValueRangeConstraint(endpoints[0].value, endpoints[1].value))
	default:
		return node, fmt.Errorf("malformed value range")
	}
	return node, nil
}

func (a *MibAnalyzer) exitRangeEndpoint(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	switch tok.ID() {
	case TokenMin, TokenMax:
		node.AddValue(rangeEndpoint{})
	case TokenMinus:
		node.AddValue(rangeEndpoint{value: negNumber(tokenImage(node, 1))})
	case TokenNumberString:
		node.AddValue(rangeEndpoint{value: posNumber(tok.Image())})
	case TokenBinaryString:
		node.AddValue(rangeEndpoint{value: radixNumber(tok.Image(), 2)})
	case TokenHexString:
		node.AddValue(rangeEndpoint{value: radixNumber(tok.Image(), 16)})
	case TokenIdentifierString:
		node.AddValue(rangeEndpoint{value: mib.NewValueReference(a.mib, tok.Image(),
			tok.StartLine(), tok.StartColumn())})
	}
	return node, nil
}

// --- OID values ---

func (a *MibAnalyzer) exitObjIdComponent(node *parse.Production) (parse.Node, error) {
	tok := childToken(node, 0)
	comp := oidComponent{line: tok.StartLine(), col: tok.StartColumn()}
	if tok.ID() == TokenNumberString {
		comp.number = atoi(tok.Image())
		comp.hasNumber = true
	} else {
		comp.name = tok.Image()
		for _, v := range childValues(node) {
			if n, ok := v.(int); ok {
				comp.number = n
				comp.hasNumber = true
			}
		}
	}
	node.AddValue(comp)
	return node, nil
}

// exitObjectIdentifierValue chains the components into OID nodes. The
// first component resolves by reference (or against the well-known
// roots); later components hang off the preceding one.
func (a *MibAnalyzer) exitObjectIdentifierValue(node *parse.Production) (parse.Node, error) {
	var comps []oidComponent
	for _, v := range childValues(node) {
		if c, ok := v.(oidComponent); ok {
			comps = append(comps, c)
		}
	}
	if len(comps) == 0 {
		return node, fmt.Errorf("empty object identifier value")
	}

	var current mib.Value
	for i, c := range comps {
		if i == 0 {
			current = a.firstOidComponent(c)
			if current == nil {
				return node, fmt.Errorf("unknown object identifier root %q", c.name)
			}
			continue
		}
		if c.hasNumber {
			current = mib.NewOidValue(a.mib, current, c.name, c.number, c.line, c.col)
		} else {
			current = mib.NewNamedOidValue(a.mib, current, c.name, c.line, c.col)
		}
	}
	node.AddValue(current)
	return node, nil
}

// firstOidComponent resolves the leading component of a braced OID.
func (a *MibAnalyzer) firstOidComponent(c oidComponent) mib.Value {
	if c.name != "" {
		if c.hasNumber {
			// named-and-numbered first component: a root such as
			// iso(1), or a child created under a root
			if root := a.mib.RootOid(c.name); root != nil {
				return root
			}
			if root := a.mib.RootOidByID(c.number); root != nil {
				return root
			}
		}
		return mib.NewValueReference(a.mib, c.name, c.line, c.col)
	}
	if root := a.mib.RootOidByID(c.number); root != nil {
		return root
	}
	return nil
}

// --- SNMP macro clause parts ---

func (a *MibAnalyzer) exitStatusPart(node *parse.Production) (parse.Node, error) {
	word := tokenImage(node, 1)
	status := mib.ParseStatus(word)
	node.AddValue(status)
	if status == mib.StatusUnknown {
		return node, fmt.Errorf("unknown STATUS value %q", word)
	}
	return node, nil
}

func (a *MibAnalyzer) exitAccessPart(node *parse.Production) (parse.Node, error) {
	word := tokenImage(node, 1)
	access := mib.ParseAccess(word)
	node.AddValue(access)
	if access == mib.AccessUnknown {
		return node, fmt.Errorf("unknown ACCESS value %q", word)
	}
	return node, nil
}

func (a *MibAnalyzer) exitIndexPart(node *parse.Production) (parse.Node, error) {
	if tok := childToken(node, 0); tok != nil && tok.ID() == TokenAugments {
		row, _ := firstValue(childValues(node))
		node.AddValue(augmentsClause{row: row})
		return node, nil
	}
	var entries []mib.IndexEntry
	for _, v := range childValues(node) {
		if e, ok := v.(mib.IndexEntry); ok {
			entries = append(entries, e)
		}
	}
	node.AddValue(entries)
	return node, nil
}

func (a *MibAnalyzer) exitIndexType(node *parse.Production) (parse.Node, error) {
	implied := false
	var ref *parse.Token
	for i := 0; i < node.ChildCount(); i++ {
		if tok, ok := node.Child(i).(*parse.Token); ok {
			if tok.ID() == TokenImplied {
				implied = true
			} else {
				ref = tok
			}
		}
	}
	if ref == nil {
		return node, fmt.Errorf("empty INDEX entry")
	}
	node.AddValue(mib.IndexEntry{
		Implied: implied,
		Value:   mib.NewValueReference(a.mib, ref.Image(), ref.StartLine(), ref.StartColumn()),
	})
	return node, nil
}

func (a *MibAnalyzer) exitModulePart(node *parse.Production) (parse.Node, error) {
	module := ""
	if tok := childToken(node, 1); tok != nil && tok.ID() == TokenIdentifierString {
		module = tok.Image()
	}
	var groups []mib.Value
	for _, v := range childValues(node) {
		if vs, ok := v.([]mib.Value); ok {
			groups = append(groups, vs...)
		}
	}
	node.AddValue(mib.ComplianceModule{Module: module, MandatoryGroups: groups})
	return node, nil
}

func (a *MibAnalyzer) exitModuleSupportPart(node *parse.Production) (parse.Node, error) {
	module := tokenImage(node, 1)
	var includes []mib.Value
	for _, v := range childValues(node) {
		if vs, ok := v.([]mib.Value); ok {
			includes = append(includes, vs...)
		}
	}
	node.AddValue(mib.CapabilitiesModule{Module: module, Includes: includes})
	return node, nil
}

// --- SNMP macro types ---

func (a *MibAnalyzer) exitModuleIdentityMacro(node *parse.Production) (parse.Node, error) {
	strs := stringsFrom(childValues(node))
	var revisions []mib.Revision
	for _, v := range childValues(node) {
		if r, ok := v.(mib.Revision); ok {
			revisions = append(revisions, r)
		}
	}
	node.AddValue(mib.NewSnmpModuleIdentity(
		stringAt(strs, 0), stringAt(strs, 1), stringAt(strs, 2), stringAt(strs, 3), revisions))
	return node, nil
}

func (a *MibAnalyzer) exitObjectIdentityMacro(node *parse.Production) (parse.Node, error) {
	strs := stringsFrom(childValues(node))
	node.AddValue(mib.NewSnmpObjectIdentity(
		statusFrom(childValues(node)), stringAt(strs, 0), stringAt(strs, 1)))
	return node, nil
}

func (a *MibAnalyzer) exitObjectTypeMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	syntax, _ := firstType(values)
	units, descr, ref := a.objectTypeStrings(node)
	var (
		index    []mib.IndexEntry
		augments mib.Value
		defval   mib.Value
	)
	for _, v := range values {
		switch c := v.(type) {
		case []mib.IndexEntry:
			index = c
		case augmentsClause:
			augments = c.row
		case mib.Value:
			defval = c
		}
	}
	node.AddValue(mib.NewSnmpObjectType(syntax, units,
		accessFrom(values), statusFrom(values), descr, ref, index, augments, defval))
	return node, nil
}

// objectTypeStrings pulls the UNITS, DESCRIPTION and REFERENCE texts
// from an OBJECT-TYPE by the production id of each clause child.
func (a *MibAnalyzer) objectTypeStrings(node *parse.Production) (units, descr, ref string) {
	for i := 0; i < node.ChildCount(); i++ {
		child, ok := node.Child(i).(*parse.Production)
		if !ok {
			continue
		}
		s, isString := firstString(child.Values())
		if !isString {
			continue
		}
		switch child.ID() {
		case ProdSnmpUnitsPart:
			units = s
		case ProdSnmpDescrPart:
			descr = s
		case ProdSnmpReferPart:
			ref = s
		}
	}
	return units, descr, ref
}

func (a *MibAnalyzer) exitNotificationTypeMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	strs := stringsFrom(values)
	node.AddValue(mib.NewSnmpNotificationType(listFrom(values),
		statusFrom(values), stringAt(strs, 0), stringAt(strs, 1)))
	return node, nil
}

func (a *MibAnalyzer) exitTrapTypeMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	strs := stringsFrom(values)
	enterprise, _ := firstValue(values)
	node.AddValue(mib.NewSnmpTrapType(enterprise, listFrom(values),
		stringAt(strs, 0), stringAt(strs, 1)))
	return node, nil
}

func (a *MibAnalyzer) exitTextualConventionMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	syntax, _ := firstType(values)
	display, descr, ref := "", "", ""
	for i := 0; i < node.ChildCount(); i++ {
		child, ok := node.Child(i).(*parse.Production)
		if !ok {
			continue
		}
		s, isString := firstString(child.Values())
		if !isString {
			continue
		}
		switch child.ID() {
		case ProdSnmpDisplayPart:
			display = s
		case ProdSnmpDescrPart:
			descr = s
		case ProdSnmpReferPart:
			ref = s
		}
	}
	node.AddValue(mib.NewSnmpTextualConvention(display, statusFrom(values), descr, ref, syntax))
	return node, nil
}

func (a *MibAnalyzer) exitObjectGroupMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	strs := stringsFrom(values)
	node.AddValue(mib.NewSnmpObjectGroup(listFrom(values),
		statusFrom(values), stringAt(strs, 0), stringAt(strs, 1)))
	return node, nil
}

func (a *MibAnalyzer) exitNotificationGroupMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	strs := stringsFrom(values)
	node.AddValue(mib.NewSnmpNotificationGroup(listFrom(values),
		statusFrom(values), stringAt(strs, 0), stringAt(strs, 1)))
	return node, nil
}

func (a *MibAnalyzer) exitModuleComplianceMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	strs := stringsFrom(values)
	var modules []mib.ComplianceModule
	for _, v := range values {
		if m, ok := v.(mib.ComplianceModule); ok {
			modules = append(modules, m)
		}
	}
	node.AddValue(mib.NewSnmpModuleCompliance(
		statusFrom(values), stringAt(strs, 0), stringAt(strs, 1), modules))
	return node, nil
}

func (a *MibAnalyzer) exitAgentCapabilitiesMacro(node *parse.Production) (parse.Node, error) {
	values := childValues(node)
	strs := stringsFrom(values)
	var modules []mib.CapabilitiesModule
	for _, v := range values {
		if m, ok := v.(mib.CapabilitiesModule); ok {
			modules = append(modules, m)
		}
	}
	node.AddValue(mib.NewSnmpAgentCapabilities(stringAt(strs, 0),
		statusFrom(values), stringAt(strs, 1), stringAt(strs, 2), modules))
	return node, nil
}

// --- helpers ---

// childValues collects the attached values of all children in order.
func childValues(node parse.Node) []any {
	var out []any
	for i := 0; i < node.ChildCount(); i++ {
		out = append(out, node.Child(i).Values()...)
	}
	return out
}

// childToken returns the index'th direct Token child, or nil.
func childToken(node parse.Node, index int) *parse.Token {
	seen := 0
	for i := 0; i < node.ChildCount(); i++ {
		if tok, ok := node.Child(i).(*parse.Token); ok {
			if seen == index {
				return tok
			}
			seen++
		}
	}
	return nil
}

// lastToken returns the last direct Token child, or nil.
func lastToken(node parse.Node) *parse.Token {
	var last *parse.Token
	for i := 0; i < node.ChildCount(); i++ {
		if tok, ok := node.Child(i).(*parse.Token); ok {
			last = tok
		}
	}
	return last
}

// tokenImage returns the image of the index'th direct Token child.
func tokenImage(node parse.Node, index int) string {
	if tok := childToken(node, index); tok != nil {
		return tok.Image()
	}
	return ""
}

func firstValue(values []any) (mib.Value, bool) {
	for _, v := range values {
		if mv, ok := v.(mib.Value); ok {
			return mv, true
		}
	}
	return nil, false
}

func firstType(values []any) (mib.Type, bool) {
	for _, v := range values {
		if mt, ok := v.(mib.Type); ok {
			return mt, true
		}
	}
	return nil, false
}

func firstConstraint(values []any) (mib.Constraint, bool) {
	for _, v := range values {
		if c, ok := v.(mib.Constraint); ok {
			return c, true
		}
	}
	return nil, false
}

func firstString(values []any) (string, bool) {
	for _, v := range values {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func stringsFrom(values []any) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringAt(strs []string, index int) string {
	if index < len(strs) {
		return strs[index]
	}
	return ""
}

func statusFrom(values []any) mib.Status {
	for _, v := range values {
		if s, ok := v.(mib.Status); ok {
			return s
		}
	}
	return mib.StatusUnknown
}

func accessFrom(values []any) mib.Access {
	for _, v := range values {
		if a, ok := v.(mib.Access); ok {
			return a
		}
	}
	return mib.AccessUnknown
}

// listFrom returns the first value-list among the values.
func listFrom(values []any) []mib.Value {
	for _, v := range values {
		if vs, ok := v.([]mib.Value); ok {
			return vs
		}
	}
	return nil
}

// valuesFrom collects loose mib.Values into a slice.
func valuesFrom(values []any) []mib.Value {
	var out []mib.Value
	for _, v := range values {
		if mv, ok := v.(mib.Value); ok {
			out = append(out, mv)
		}
	}
	return out
}

func numbersFrom(values []any) []mib.NamedNumber {
	var out []mib.NamedNumber
	for _, v := range values {
		if n, ok := v.(mib.NamedNumber); ok {
			out = append(out, n)
		}
	}
	return out
}

func elementsFrom(values []any) []mib.SequenceElement {
	var out []mib.SequenceElement
	for _, v := range values {
		if e, ok := v.(mib.SequenceElement); ok {
			out = append(out, e)
		}
	}
	return out
}

// constraintFrom combines the constraints of a list into one.
func constraintFrom(values []any) mib.Constraint {
	var members []mib.Constraint
	for _, v := range values {
		if c, ok := v.(mib.Constraint); ok {
			members = append(members, c)
		}
	}
	switch len(members) {
	case 0:
		return nil
	case 1:
		return members[0]
	}
	return mib.NewCompoundConstraint(members)
}

// integerTypeFrom builds an INTEGER from optional enumeration or
// constraint values.
func integerTypeFrom(values []any) mib.Type {
	if numbers := numbersFrom(values); len(numbers) > 0 {
		return mib.NewEnumeratedIntegerType(numbers)
	}
	for _, v := range values {
		switch extra := v.(type) {
		case []mib.NamedNumber:
			return mib.NewEnumeratedIntegerType(extra)
		case mib.Constraint:
			return mib.NewConstrainedIntegerType(extra)
		}
	}
	return mib.NewIntegerType()
}

func stringTypeFrom(values []any) mib.Type {
	if c, ok := firstConstraint(values); ok {
		return mib.NewConstrainedStringType(c)
	}
	return mib.NewStringType()
}

func bitsTypeFrom(values []any) mib.Type {
	if numbers := numbersFrom(values); len(numbers) > 0 {
		return mib.NewEnumeratedBitSetType(numbers)
	}
	for _, v := range values {
		if numbers, ok := v.([]mib.NamedNumber); ok {
			return mib.NewEnumeratedBitSetType(numbers)
		}
	}
	return mib.NewBitSetType()
}

// bitsValueFrom builds a DEFVAL bit set from loose references and
// numbers.
func (a *MibAnalyzer) bitsValueFrom(node *parse.Production) mib.Value {
	var bits []mib.Value
	for i := 0; i < node.ChildCount(); i++ {
		tok, ok := node.Child(i).(*parse.Token)
		if !ok {
			continue
		}
		switch tok.ID() {
		case TokenIdentifierString:
			bits = append(bits, mib.NewValueReference(a.mib, tok.Image(), tok.StartLine(), tok.StartColumn()))
		case TokenNumberString:
			bits = append(bits, posNumber(tok.Image()))
		}
	}
	return mib.NewBitSetValue(bits)
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, "\"")
	return strings.TrimSuffix(s, "\"")
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// numberFrom builds the value of a number production, honouring a
// leading minus.
func numberFrom(node parse.Node) *mib.NumberValue {
	if tok := childToken(node, 0); tok != nil && tok.ID() == TokenMinus {
		return negNumber(tokenImage(node, 1))
	}
	return posNumber(tokenImage(node, 0))
}

func posNumber(s string) *mib.NumberValue {
	v := new(big.Int)
	v.SetString(s, 10)
	return mib.NewBigNumberValue(v)
}

func negNumber(s string) *mib.NumberValue {
	v := new(big.Int)
	v.SetString(s, 10)
	v.Neg(v)
	return mib.NewBigNumberValue(v)
}

// radixNumber parses a 'xxxx'B or 'xxxx'H literal in the given base.
func radixNumber(image string, base int) *mib.NumberValue {
	digits := image
	if i := strings.IndexByte(digits, '\''); i >= 0 {
		digits = digits[i+1:]
	}
	if i := strings.IndexByte(digits, '\''); i >= 0 {
		digits = digits[:i]
	}
	v := new(big.Int)
	if digits != "" {
		v.SetString(digits, base)
	}
	return mib.NewBigNumberValue(v)
}
