package asn1

import (
	"io"
	"log/slog"

	"github.com/golangsnmp/mibparse/parse"
)

// Production pattern ids.
const (
	ProdStart = iota + 2001
	ProdModuleDefinition
	ProdModuleIdentifier
	ProdTagDefault
	ProdModuleBody
	ProdExportList
	ProdImportList
	ProdSymbolsFromModule
	ProdSymbolList
	ProdSymbol
	ProdAssignmentList
	ProdAssignment
	ProdMacroDefinition
	ProdMacroBody
	ProdMacroToken
	ProdTypeAssignment
	ProdValueAssignment
	ProdType
	ProdDefinedType
	ProdBuiltinType
	ProdNullType
	ProdBooleanType
	ProdRealType
	ProdIntegerType
	ProdObjectIdentifierType
	ProdStringType
	ProdBitStringType
	ProdBitsType
	ProdSequenceType
	ProdSequenceOfType
	ProdSetType
	ProdChoiceType
	ProdEnumeratedType
	ProdAnyType
	ProdElementTypeList
	ProdElementType
	ProdOptionalOrDefaultElement
	ProdValueOrConstraintList
	ProdNamedNumberListBraced
	ProdNamedNumberList
	ProdNamedNumber
	ProdSignedNumber
	ProdConstraintList
	ProdConstraint
	ProdValueConstraintList
	ProdValueRange
	ProdRangeRest
	ProdRangeEndpoint
	ProdValue
	ProdDefinedValue
	ProdNumberValue
	ProdBinaryValue
	ProdHexadecimalValue
	ProdStringValue
	ProdBooleanValue
	ProdSpecialValue
	ProdObjectIdentifierValue
	ProdObjIdComponentList
	ProdObjIdComponent
	ProdNameValueComponent
	ProdTagType
	ProdTagClass
	ProdDefinedMacroType
	ProdSnmpModuleIdentityMacroType
	ProdSnmpObjectIdentityMacroType
	ProdSnmpObjectTypeMacroType
	ProdSnmpNotificationTypeMacroType
	ProdSnmpTrapTypeMacroType
	ProdSnmpTextualConventionMacroType
	ProdSnmpObjectGroupMacroType
	ProdSnmpNotificationGroupMacroType
	ProdSnmpModuleComplianceMacroType
	ProdSnmpAgentCapabilitiesMacroType
	ProdSnmpUpdatePart
	ProdSnmpOrganizationPart
	ProdSnmpContactPart
	ProdSnmpDescrPart
	ProdSnmpRevisionPart
	ProdSnmpStatusPart
	ProdSnmpReferPart
	ProdSnmpSyntaxPart
	ProdSnmpUnitsPart
	ProdSnmpAccessPart
	ProdSnmpIndexPart
	ProdSnmpIndexList
	ProdSnmpIndexType
	ProdSnmpDefValPart
	ProdSnmpDefValValue
	ProdSnmpDefValBitsValue
	ProdSnmpObjectsPart
	ProdSnmpEnterprisePart
	ProdSnmpVarPart
	ProdSnmpDisplayPart
	ProdSnmpNotificationsPart
	ProdSnmpModulePart
	ProdSnmpMandatoryPart
	ProdSnmpCompliancePart
	ProdSnmpComplianceGroup
	ProdSnmpComplianceObject
	ProdSnmpWriteSyntaxPart
	ProdSnmpProductReleasePart
	ProdSnmpModuleSupportPart
	ProdSnmpVariationPart
	ProdSnmpCreationPart
	ProdValueList

	// synthetic helper productions for separated repetitions
	prodSymbolListRest
	prodNamedNumberListRest
	prodValueConstraintListRest
	prodElementTypeListRest
	prodSnmpIndexListRest
	prodValueListRest
	prodDefValItem
	prodMacroName
)

// grammarBuilder collects production patterns, tracking the first
// error from the underlying parser.
type grammarBuilder struct {
	parser *parse.Parser
	err    error
}

func (b *grammarBuilder) add(pattern *parse.ProductionPattern) {
	if b.err == nil {
		b.err = b.parser.AddPattern(pattern)
	}
}

// pattern assembles a production from its alternatives.
func pattern(id int, name string, alts ...*parse.Alternative) *parse.ProductionPattern {
	p := parse.NewProductionPattern(id, name)
	for _, alt := range alts {
		p.AddAlternative(alt)
	}
	return p
}

// synthetic marks a pattern as an auto-generated helper.
func synthetic(p *parse.ProductionPattern) *parse.ProductionPattern {
	p.Synthetic = true
	return p
}

// alt builds an alternative from element constructors.
type element func(*parse.Alternative)

func alt(elements ...element) *parse.Alternative {
	a := parse.NewAlternative()
	for _, e := range elements {
		e(a)
	}
	return a
}

func tok(id int) element {
	return func(a *parse.Alternative) { a.AddToken(id, 1, 1) }
}

func optTok(id int) element {
	return func(a *parse.Alternative) { a.AddToken(id, 0, 1) }
}

func prod(id int) element {
	return func(a *parse.Alternative) { a.AddProduction(id, 1, 1) }
}

func optProd(id int) element {
	return func(a *parse.Alternative) { a.AddProduction(id, 0, 1) }
}

func repProd(id int) element {
	return func(a *parse.Alternative) { a.AddProduction(id, 0, parse.Unbounded) }
}

func plusProd(id int) element {
	return func(a *parse.Alternative) { a.AddProduction(id, 1, parse.Unbounded) }
}

// NewParser returns a parser over the ASN.1 grammar feeding the given
// analyzer. The token and production tables are registered in full;
// Prepare runs during the first Parse call.
func NewParser(r io.Reader, analyzer parse.Analyzer, logger *slog.Logger) (*parse.Parser, error) {
	tz := parse.NewTokenizer(r, logger)
	for _, tp := range TokenPatterns() {
		if err := tz.Add(tp); err != nil {
			return nil, err
		}
	}
	p := parse.NewParser(tz, analyzer, logger)
	b := &grammarBuilder{parser: p}
	addProductions(b)
	if b.err != nil {
		return nil, b.err
	}
	return p, nil
}

// addProductions registers the grammar. The start production comes
// first.
func addProductions(b *grammarBuilder) {
	b.add(pattern(ProdStart, "Start",
		alt(prod(ProdModuleDefinition))))

	b.add(pattern(ProdModuleDefinition, "ModuleDefinition",
		alt(prod(ProdModuleIdentifier), tok(TokenDefinitions), optProd(ProdTagDefault),
			tok(TokenDefinition), tok(TokenBegin), prod(ProdModuleBody), tok(TokenEnd))))

	b.add(pattern(ProdModuleIdentifier, "ModuleIdentifier",
		alt(tok(TokenIdentifierString), optProd(ProdObjectIdentifierValue))))

	b.add(pattern(ProdTagDefault, "TagDefault",
		alt(tok(TokenExplicit), tok(TokenTags)),
		alt(tok(TokenImplicit), tok(TokenTags))))

	b.add(pattern(ProdModuleBody, "ModuleBody",
		alt(optProd(ProdExportList), optProd(ProdImportList), optProd(ProdAssignmentList))))

	b.add(pattern(ProdExportList, "ExportList",
		alt(tok(TokenExports), optProd(ProdSymbolList), tok(TokenSemicolon))))

	b.add(pattern(ProdImportList, "ImportList",
		alt(tok(TokenImports), repProd(ProdSymbolsFromModule), tok(TokenSemicolon))))

	b.add(pattern(ProdSymbolsFromModule, "SymbolsFromModule",
		alt(prod(ProdSymbolList), tok(TokenFrom), tok(TokenIdentifierString))))

	b.add(pattern(ProdSymbolList, "SymbolList",
		alt(prod(ProdSymbol), repProd(prodSymbolListRest))))
	b.add(synthetic(pattern(prodSymbolListRest, "SymbolListRest",
		alt(tok(TokenComma), prod(ProdSymbol)))))

	// Imported macro and type names arrive as keyword tokens.
	b.add(pattern(ProdSymbol, "Symbol",
		alt(tok(TokenIdentifierString)),
		alt(tok(TokenObjectType)),
		alt(tok(TokenModuleIdentity)),
		alt(tok(TokenObjectIdentity)),
		alt(tok(TokenNotificationType)),
		alt(tok(TokenTrapType)),
		alt(tok(TokenTextualConvention)),
		alt(tok(TokenObjectGroup)),
		alt(tok(TokenNotificationGroup)),
		alt(tok(TokenModuleCompliance)),
		alt(tok(TokenAgentCapabilities))))

	b.add(pattern(ProdAssignmentList, "AssignmentList",
		alt(plusProd(ProdAssignment))))

	b.add(pattern(ProdAssignment, "Assignment",
		alt(prod(ProdMacroDefinition)),
		alt(prod(ProdTypeAssignment)),
		alt(prod(ProdValueAssignment))))

	// The base modules define the SNMP macros themselves, so a macro
	// name may be one of the macro keywords.
	b.add(pattern(ProdMacroDefinition, "MacroDefinition",
		alt(prod(prodMacroName), tok(TokenMacro), tok(TokenDefinition),
			tok(TokenBegin), prod(ProdMacroBody), tok(TokenEnd))))
	b.add(synthetic(pattern(prodMacroName, "MacroName",
		alt(tok(TokenIdentifierString)),
		alt(tok(TokenObjectType)),
		alt(tok(TokenModuleIdentity)),
		alt(tok(TokenObjectIdentity)),
		alt(tok(TokenNotificationType)),
		alt(tok(TokenTrapType)),
		alt(tok(TokenTextualConvention)),
		alt(tok(TokenObjectGroup)),
		alt(tok(TokenNotificationGroup)),
		alt(tok(TokenModuleCompliance)),
		alt(tok(TokenAgentCapabilities)))))

	b.add(pattern(ProdMacroBody, "MacroBody",
		alt(repProd(ProdMacroToken))))

	b.add(macroTokenPattern())

	b.add(pattern(ProdTypeAssignment, "TypeAssignment",
		alt(tok(TokenIdentifierString), tok(TokenDefinition), prod(ProdType))))

	b.add(pattern(ProdValueAssignment, "ValueAssignment",
		alt(tok(TokenIdentifierString), prod(ProdType), tok(TokenDefinition), prod(ProdValue))))

	b.add(pattern(ProdType, "Type",
		alt(optProd(ProdTagType), prod(ProdBuiltinType)),
		alt(prod(ProdDefinedType)),
		alt(prod(ProdDefinedMacroType))))

	b.add(pattern(ProdTagType, "TagType",
		alt(tok(TokenLeftBracket), optProd(ProdTagClass), tok(TokenNumberString),
			tok(TokenRightBracket), optTok(TokenImplicit), optTok(TokenExplicit))))

	b.add(pattern(ProdTagClass, "TagClass",
		alt(tok(TokenUniversal)),
		alt(tok(TokenApplication)),
		alt(tok(TokenPrivate))))

	b.add(pattern(ProdDefinedType, "DefinedType",
		alt(tok(TokenIdentifierString), optProd(ProdValueOrConstraintList))))

	b.add(pattern(ProdBuiltinType, "BuiltinType",
		alt(prod(ProdNullType)),
		alt(prod(ProdBooleanType)),
		alt(prod(ProdRealType)),
		alt(prod(ProdIntegerType)),
		alt(prod(ProdObjectIdentifierType)),
		alt(prod(ProdStringType)),
		alt(prod(ProdBitStringType)),
		alt(prod(ProdBitsType)),
		alt(prod(ProdSequenceType)),
		alt(prod(ProdSequenceOfType)),
		alt(prod(ProdSetType)),
		alt(prod(ProdChoiceType)),
		alt(prod(ProdEnumeratedType)),
		alt(prod(ProdAnyType))))

	b.add(pattern(ProdNullType, "NullType", alt(tok(TokenNull))))
	b.add(pattern(ProdBooleanType, "BooleanType", alt(tok(TokenBoolean))))
	b.add(pattern(ProdRealType, "RealType", alt(tok(TokenReal))))

	b.add(pattern(ProdIntegerType, "IntegerType",
		alt(tok(TokenInteger), optProd(ProdValueOrConstraintList))))

	b.add(pattern(ProdObjectIdentifierType, "ObjectIdentifierType",
		alt(tok(TokenObject), tok(TokenIdentifier))))

	b.add(pattern(ProdStringType, "StringType",
		alt(tok(TokenOctet), tok(TokenString), optProd(ProdConstraintList))))

	b.add(pattern(ProdBitStringType, "BitStringType",
		alt(tok(TokenBit), tok(TokenString), optProd(ProdValueOrConstraintList))))

	b.add(pattern(ProdBitsType, "BitsType",
		alt(tok(TokenBits), optProd(ProdValueOrConstraintList))))

	b.add(pattern(ProdSequenceType, "SequenceType",
		alt(tok(TokenSequence), tok(TokenLeftBrace), optProd(ProdElementTypeList),
			tok(TokenRightBrace))))

	b.add(pattern(ProdSequenceOfType, "SequenceOfType",
		alt(tok(TokenSequence), optProd(ProdConstraintList), tok(TokenOf), prod(ProdType))))

	b.add(pattern(ProdSetType, "SetType",
		alt(tok(TokenSet), tok(TokenLeftBrace), optProd(ProdElementTypeList),
			tok(TokenRightBrace)),
		alt(tok(TokenSet), optProd(ProdConstraintList), tok(TokenOf), prod(ProdType))))

	b.add(pattern(ProdChoiceType, "ChoiceType",
		alt(tok(TokenChoice), tok(TokenLeftBrace), prod(ProdElementTypeList),
			tok(TokenRightBrace))))

	b.add(pattern(ProdEnumeratedType, "EnumeratedType",
		alt(tok(TokenEnumerated), tok(TokenLeftBrace), prod(ProdNamedNumberList),
			tok(TokenRightBrace))))

	b.add(pattern(ProdAnyType, "AnyType",
		alt(tok(TokenAny), optTok(TokenDefined), optTok(TokenBy), optTok(TokenIdentifierString))))

	b.add(pattern(ProdElementTypeList, "ElementTypeList",
		alt(prod(ProdElementType), repProd(prodElementTypeListRest))))
	b.add(synthetic(pattern(prodElementTypeListRest, "ElementTypeListRest",
		alt(tok(TokenComma), prod(ProdElementType)))))

	b.add(pattern(ProdElementType, "ElementType",
		alt(tok(TokenIdentifierString), prod(ProdType), optProd(ProdOptionalOrDefaultElement))))

	b.add(pattern(ProdOptionalOrDefaultElement, "OptionalOrDefaultElement",
		alt(tok(TokenOptional)),
		alt(tok(TokenDefault), prod(ProdValue))))

	// Either an enumeration "{ ... }" or a constraint "( ... )".
	b.add(pattern(ProdValueOrConstraintList, "ValueOrConstraintList",
		alt(prod(ProdNamedNumberListBraced)),
		alt(prod(ProdConstraintList))))

	b.add(pattern(ProdNamedNumberListBraced, "NamedNumberListBraced",
		alt(tok(TokenLeftBrace), prod(ProdNamedNumberList), tok(TokenRightBrace))))

	b.add(pattern(ProdNamedNumberList, "NamedNumberList",
		alt(prod(ProdNamedNumber), repProd(prodNamedNumberListRest))))
	b.add(synthetic(pattern(prodNamedNumberListRest, "NamedNumberListRest",
		alt(tok(TokenComma), prod(ProdNamedNumber)))))

	b.add(pattern(ProdNamedNumber, "NamedNumber",
		alt(tok(TokenIdentifierString), tok(TokenLeftParen), prod(ProdSignedNumber),
			tok(TokenRightParen))))

	b.add(pattern(ProdSignedNumber, "SignedNumber",
		alt(optTok(TokenMinus), tok(TokenNumberString)),
		alt(tok(TokenIdentifierString))))

	b.add(pattern(ProdConstraintList, "ConstraintList",
		alt(tok(TokenLeftParen), prod(ProdValueConstraintList), tok(TokenRightParen))))

	b.add(pattern(ProdValueConstraintList, "ValueConstraintList",
		alt(prod(ProdConstraint), repProd(prodValueConstraintListRest))))
	b.add(synthetic(pattern(prodValueConstraintListRest, "ValueConstraintListRest",
		alt(tok(TokenPipe), prod(ProdConstraint)))))

	b.add(pattern(ProdConstraint, "Constraint",
		alt(tok(TokenSize), prod(ProdConstraintList)),
		alt(prod(ProdValueRange))))

	// A single endpoint, optionally extended to a range.
	b.add(pattern(ProdValueRange, "ValueRange",
		alt(prod(ProdRangeEndpoint), optProd(ProdRangeRest))))

	b.add(pattern(ProdRangeRest, "RangeRest",
		alt(tok(TokenDoubleDot), prod(ProdRangeEndpoint))))

	b.add(pattern(ProdRangeEndpoint, "RangeEndpoint",
		alt(optTok(TokenMinus), tok(TokenNumberString)),
		alt(tok(TokenMin)),
		alt(tok(TokenMax)),
		alt(tok(TokenIdentifierString)),
		alt(tok(TokenBinaryString)),
		alt(tok(TokenHexString))))

	b.add(pattern(ProdValue, "Value",
		alt(prod(ProdObjectIdentifierValue)),
		alt(prod(ProdNumberValue)),
		alt(prod(ProdBinaryValue)),
		alt(prod(ProdHexadecimalValue)),
		alt(prod(ProdStringValue)),
		alt(prod(ProdBooleanValue)),
		alt(prod(ProdSpecialValue)),
		alt(prod(ProdDefinedValue))))

	b.add(pattern(ProdDefinedValue, "DefinedValue",
		alt(tok(TokenIdentifierString))))

	b.add(pattern(ProdNumberValue, "NumberValue",
		alt(optTok(TokenMinus), tok(TokenNumberString))))

	b.add(pattern(ProdBinaryValue, "BinaryValue",
		alt(tok(TokenBinaryString))))

	b.add(pattern(ProdHexadecimalValue, "HexadecimalValue",
		alt(tok(TokenHexString))))

	b.add(pattern(ProdStringValue, "StringValue",
		alt(tok(TokenQuotedString))))

	b.add(pattern(ProdBooleanValue, "BooleanValue",
		alt(tok(TokenTrue)),
		alt(tok(TokenFalse))))

	b.add(pattern(ProdSpecialValue, "SpecialValue",
		alt(tok(TokenNull))))

	b.add(pattern(ProdObjectIdentifierValue, "ObjectIdentifierValue",
		alt(tok(TokenLeftBrace), prod(ProdObjIdComponentList), tok(TokenRightBrace))))

	b.add(pattern(ProdObjIdComponentList, "ObjIdComponentList",
		alt(plusProd(ProdObjIdComponent))))

	b.add(pattern(ProdObjIdComponent, "ObjIdComponent",
		alt(tok(TokenNumberString)),
		alt(tok(TokenIdentifierString), optProd(ProdNameValueComponent))))

	b.add(pattern(ProdNameValueComponent, "NameValueComponent",
		alt(tok(TokenLeftParen), tok(TokenNumberString), tok(TokenRightParen))))

	b.add(pattern(ProdDefinedMacroType, "DefinedMacroType",
		alt(prod(ProdSnmpModuleIdentityMacroType)),
		alt(prod(ProdSnmpObjectIdentityMacroType)),
		alt(prod(ProdSnmpObjectTypeMacroType)),
		alt(prod(ProdSnmpNotificationTypeMacroType)),
		alt(prod(ProdSnmpTrapTypeMacroType)),
		alt(prod(ProdSnmpTextualConventionMacroType)),
		alt(prod(ProdSnmpObjectGroupMacroType)),
		alt(prod(ProdSnmpNotificationGroupMacroType)),
		alt(prod(ProdSnmpModuleComplianceMacroType)),
		alt(prod(ProdSnmpAgentCapabilitiesMacroType))))

	b.add(pattern(ProdSnmpModuleIdentityMacroType, "SnmpModuleIdentityMacroType",
		alt(tok(TokenModuleIdentity), prod(ProdSnmpUpdatePart), prod(ProdSnmpOrganizationPart),
			prod(ProdSnmpContactPart), prod(ProdSnmpDescrPart), repProd(ProdSnmpRevisionPart))))

	b.add(pattern(ProdSnmpObjectIdentityMacroType, "SnmpObjectIdentityMacroType",
		alt(tok(TokenObjectIdentity), prod(ProdSnmpStatusPart), prod(ProdSnmpDescrPart),
			optProd(ProdSnmpReferPart))))

	b.add(pattern(ProdSnmpObjectTypeMacroType, "SnmpObjectTypeMacroType",
		alt(tok(TokenObjectType), prod(ProdSnmpSyntaxPart), optProd(ProdSnmpUnitsPart),
			prod(ProdSnmpAccessPart), prod(ProdSnmpStatusPart), optProd(ProdSnmpDescrPart),
			optProd(ProdSnmpReferPart), optProd(ProdSnmpIndexPart), optProd(ProdSnmpDefValPart))))

	b.add(pattern(ProdSnmpNotificationTypeMacroType, "SnmpNotificationTypeMacroType",
		alt(tok(TokenNotificationType), optProd(ProdSnmpObjectsPart), prod(ProdSnmpStatusPart),
			prod(ProdSnmpDescrPart), optProd(ProdSnmpReferPart))))

	b.add(pattern(ProdSnmpTrapTypeMacroType, "SnmpTrapTypeMacroType",
		alt(tok(TokenTrapType), prod(ProdSnmpEnterprisePart), optProd(ProdSnmpVarPart),
			optProd(ProdSnmpDescrPart), optProd(ProdSnmpReferPart))))

	b.add(pattern(ProdSnmpTextualConventionMacroType, "SnmpTextualConventionMacroType",
		alt(tok(TokenTextualConvention), optProd(ProdSnmpDisplayPart), prod(ProdSnmpStatusPart),
			prod(ProdSnmpDescrPart), optProd(ProdSnmpReferPart), prod(ProdSnmpSyntaxPart))))

	b.add(pattern(ProdSnmpObjectGroupMacroType, "SnmpObjectGroupMacroType",
		alt(tok(TokenObjectGroup), prod(ProdSnmpObjectsPart), prod(ProdSnmpStatusPart),
			prod(ProdSnmpDescrPart), optProd(ProdSnmpReferPart))))

	b.add(pattern(ProdSnmpNotificationGroupMacroType, "SnmpNotificationGroupMacroType",
		alt(tok(TokenNotificationGroup), prod(ProdSnmpNotificationsPart), prod(ProdSnmpStatusPart),
			prod(ProdSnmpDescrPart), optProd(ProdSnmpReferPart))))

	b.add(pattern(ProdSnmpModuleComplianceMacroType, "SnmpModuleComplianceMacroType",
		alt(tok(TokenModuleCompliance), prod(ProdSnmpStatusPart), prod(ProdSnmpDescrPart),
			optProd(ProdSnmpReferPart), plusProd(ProdSnmpModulePart))))

	b.add(pattern(ProdSnmpAgentCapabilitiesMacroType, "SnmpAgentCapabilitiesMacroType",
		alt(tok(TokenAgentCapabilities), prod(ProdSnmpProductReleasePart), prod(ProdSnmpStatusPart),
			prod(ProdSnmpDescrPart), optProd(ProdSnmpReferPart), repProd(ProdSnmpModuleSupportPart))))

	b.add(pattern(ProdSnmpUpdatePart, "SnmpUpdatePart",
		alt(tok(TokenLastUpdated), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpOrganizationPart, "SnmpOrganizationPart",
		alt(tok(TokenOrganization), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpContactPart, "SnmpContactPart",
		alt(tok(TokenContactInfo), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpDescrPart, "SnmpDescrPart",
		alt(tok(TokenDescription), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpRevisionPart, "SnmpRevisionPart",
		alt(tok(TokenRevision), tok(TokenQuotedString), tok(TokenDescription),
			tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpStatusPart, "SnmpStatusPart",
		alt(tok(TokenStatus), tok(TokenIdentifierString))))

	b.add(pattern(ProdSnmpReferPart, "SnmpReferPart",
		alt(tok(TokenReference), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpSyntaxPart, "SnmpSyntaxPart",
		alt(tok(TokenSyntax), prod(ProdType))))

	b.add(pattern(ProdSnmpUnitsPart, "SnmpUnitsPart",
		alt(tok(TokenUnits), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpAccessPart, "SnmpAccessPart",
		alt(tok(TokenAccess), tok(TokenIdentifierString)),
		alt(tok(TokenMaxAccess), tok(TokenIdentifierString)),
		alt(tok(TokenMinAccess), tok(TokenIdentifierString))))

	b.add(pattern(ProdSnmpIndexPart, "SnmpIndexPart",
		alt(tok(TokenIndex), tok(TokenLeftBrace), prod(ProdSnmpIndexList), tok(TokenRightBrace)),
		alt(tok(TokenAugments), tok(TokenLeftBrace), prod(ProdDefinedValue), tok(TokenRightBrace))))

	b.add(pattern(ProdSnmpIndexList, "SnmpIndexList",
		alt(prod(ProdSnmpIndexType), repProd(prodSnmpIndexListRest))))
	b.add(synthetic(pattern(prodSnmpIndexListRest, "SnmpIndexListRest",
		alt(tok(TokenComma), prod(ProdSnmpIndexType)))))

	b.add(pattern(ProdSnmpIndexType, "SnmpIndexType",
		alt(optTok(TokenImplied), tok(TokenIdentifierString))))

	b.add(pattern(ProdSnmpDefValPart, "SnmpDefValPart",
		alt(tok(TokenDefVal), tok(TokenLeftBrace), prod(ProdSnmpDefValValue),
			tok(TokenRightBrace))))

	// DEFVAL contents: a plain value, or a braced list of names and
	// numbers, which the analyzer always reads as a bit set.
	b.add(pattern(ProdSnmpDefValValue, "SnmpDefValValue",
		alt(prod(ProdNumberValue)),
		alt(prod(ProdBinaryValue)),
		alt(prod(ProdHexadecimalValue)),
		alt(prod(ProdStringValue)),
		alt(prod(ProdBooleanValue)),
		alt(prod(ProdSpecialValue)),
		alt(prod(ProdDefinedValue)),
		alt(prod(ProdSnmpDefValBitsValue))))

	b.add(pattern(ProdSnmpDefValBitsValue, "SnmpDefValBitsValue",
		alt(tok(TokenLeftBrace), repProd(prodDefValItem), tok(TokenRightBrace))))
	b.add(synthetic(pattern(prodDefValItem, "DefValItem",
		alt(tok(TokenIdentifierString)),
		alt(tok(TokenNumberString)),
		alt(tok(TokenComma)))))

	b.add(pattern(ProdSnmpObjectsPart, "SnmpObjectsPart",
		alt(tok(TokenObjects), tok(TokenLeftBrace), prod(ProdValueList), tok(TokenRightBrace))))

	b.add(pattern(ProdSnmpEnterprisePart, "SnmpEnterprisePart",
		alt(tok(TokenEnterprise), prod(ProdValue))))

	b.add(pattern(ProdSnmpVarPart, "SnmpVarPart",
		alt(tok(TokenVariables), tok(TokenLeftBrace), prod(ProdValueList), tok(TokenRightBrace))))

	b.add(pattern(ProdSnmpDisplayPart, "SnmpDisplayPart",
		alt(tok(TokenDisplayHint), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpNotificationsPart, "SnmpNotificationsPart",
		alt(tok(TokenNotifications), tok(TokenLeftBrace), prod(ProdValueList),
			tok(TokenRightBrace))))

	b.add(pattern(ProdSnmpModulePart, "SnmpModulePart",
		alt(tok(TokenModule), optTok(TokenIdentifierString), optProd(ProdSnmpMandatoryPart),
			repProd(ProdSnmpCompliancePart))))

	b.add(pattern(ProdSnmpMandatoryPart, "SnmpMandatoryPart",
		alt(tok(TokenMandatoryGroups), tok(TokenLeftBrace), prod(ProdValueList),
			tok(TokenRightBrace))))

	b.add(pattern(ProdSnmpCompliancePart, "SnmpCompliancePart",
		alt(prod(ProdSnmpComplianceGroup)),
		alt(prod(ProdSnmpComplianceObject))))

	b.add(pattern(ProdSnmpComplianceGroup, "SnmpComplianceGroup",
		alt(tok(TokenGroup), prod(ProdValue), prod(ProdSnmpDescrPart))))

	b.add(pattern(ProdSnmpComplianceObject, "SnmpComplianceObject",
		alt(tok(TokenObject), prod(ProdValue), optProd(ProdSnmpSyntaxPart),
			optProd(ProdSnmpWriteSyntaxPart), optProd(ProdSnmpAccessPart),
			prod(ProdSnmpDescrPart))))

	b.add(pattern(ProdSnmpWriteSyntaxPart, "SnmpWriteSyntaxPart",
		alt(tok(TokenWriteSyntax), prod(ProdType))))

	b.add(pattern(ProdSnmpProductReleasePart, "SnmpProductReleasePart",
		alt(tok(TokenProductRelease), tok(TokenQuotedString))))

	b.add(pattern(ProdSnmpModuleSupportPart, "SnmpModuleSupportPart",
		alt(tok(TokenSupports), tok(TokenIdentifierString), tok(TokenIncludes),
			tok(TokenLeftBrace), prod(ProdValueList), tok(TokenRightBrace),
			repProd(ProdSnmpVariationPart))))

	b.add(pattern(ProdSnmpVariationPart, "SnmpVariationPart",
		alt(tok(TokenVariation), prod(ProdValue), optProd(ProdSnmpSyntaxPart),
			optProd(ProdSnmpWriteSyntaxPart), optProd(ProdSnmpAccessPart),
			optProd(ProdSnmpCreationPart), optProd(ProdSnmpDefValPart),
			prod(ProdSnmpDescrPart))))

	b.add(pattern(ProdSnmpCreationPart, "SnmpCreationPart",
		alt(tok(TokenCreationRequires), tok(TokenLeftBrace), prod(ProdValueList),
			tok(TokenRightBrace))))

	b.add(pattern(ProdValueList, "ValueList",
		alt(prod(ProdValue), repProd(prodValueListRest))))
	b.add(synthetic(pattern(prodValueListRest, "ValueListRest",
		alt(tok(TokenComma), prod(ProdValue)))))
}

// macroTokenPattern accepts any single token that can appear inside a
// skipped macro body; END terminates the body.
func macroTokenPattern() *parse.ProductionPattern {
	ids := []int{
		TokenDot, TokenDoubleDot, TokenComma, TokenSemicolon,
		TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace,
		TokenLeftBracket, TokenRightBracket, TokenMinus, TokenPipe, TokenDefinition,
		TokenDefinitions, TokenExplicit, TokenImplicit, TokenTags, TokenExports,
		TokenImports, TokenFrom,
		TokenInteger, TokenReal, TokenBoolean, TokenNull, TokenBit, TokenOctet,
		TokenString, TokenEnumerated, TokenSequence, TokenSet, TokenOf, TokenChoice,
		TokenUniversal, TokenApplication, TokenPrivate, TokenAny, TokenDefined,
		TokenBy, TokenObject, TokenIdentifier, TokenIncludes, TokenMin, TokenMax,
		TokenSize, TokenWith, TokenComponent, TokenComponents, TokenPresent,
		TokenAbsent, TokenOptional, TokenDefault, TokenTrue, TokenFalse,
		TokenLastUpdated, TokenOrganization, TokenContactInfo, TokenDescription,
		TokenRevision, TokenStatus, TokenReference, TokenSyntax, TokenBits, TokenUnits, TokenAccess,
		TokenMaxAccess, TokenMinAccess, TokenIndex, TokenAugments, TokenImplied,
		TokenDefVal, TokenObjects, TokenEnterprise, TokenVariables, TokenDisplayHint,
		TokenNotifications, TokenModule, TokenMandatoryGroups, TokenGroup,
		TokenWriteSyntax, TokenProductRelease, TokenSupports, TokenVariation,
		TokenCreationRequires,
		TokenIdentifierString, TokenNumberString, TokenQuotedString,
		TokenBinaryString, TokenHexString,
	}
	p := parse.NewProductionPattern(ProdMacroToken, "MacroToken")
	for _, id := range ids {
		p.AddAlternative(alt(tok(id)))
	}
	return p
}
