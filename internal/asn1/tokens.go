// Package asn1 holds the static grammar tables for the ASN.1 subset
// used by SNMP MIB modules, and the analyzer translating parse trees
// into the mib model. Token and production ids are stable integer
// constants used throughout error reporting.
package asn1

import (
	"github.com/golangsnmp/mibparse/parse"
)

// Token pattern ids.
const (
	TokenDot = iota + 1001
	TokenDoubleDot
	TokenComma
	TokenSemicolon
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenMinus
	TokenPipe
	TokenDefinition // "::="

	TokenDefinitions
	TokenExplicit
	TokenImplicit
	TokenTags
	TokenBegin
	TokenEnd
	TokenExports
	TokenImports
	TokenFrom
	TokenMacro

	TokenInteger
	TokenReal
	TokenBoolean
	TokenNull
	TokenBit
	TokenOctet
	TokenString
	TokenEnumerated
	TokenSequence
	TokenSet
	TokenOf
	TokenChoice
	TokenUniversal
	TokenApplication
	TokenPrivate
	TokenAny
	TokenDefined
	TokenBy
	TokenObject
	TokenIdentifier
	TokenIncludes
	TokenMin
	TokenMax
	TokenSize
	TokenWith
	TokenComponent
	TokenComponents
	TokenPresent
	TokenAbsent
	TokenOptional
	TokenDefault
	TokenTrue
	TokenFalse

	TokenModuleIdentity
	TokenObjectType
	TokenNotificationType
	TokenTrapType
	TokenObjectIdentity
	TokenTextualConvention
	TokenObjectGroup
	TokenNotificationGroup
	TokenModuleCompliance
	TokenAgentCapabilities

	TokenLastUpdated
	TokenOrganization
	TokenContactInfo
	TokenDescription
	TokenRevision
	TokenStatus
	TokenReference
	TokenSyntax
	TokenBits
	TokenUnits
	TokenAccess
	TokenMaxAccess
	TokenMinAccess
	TokenIndex
	TokenAugments
	TokenImplied
	TokenDefVal
	TokenObjects
	TokenEnterprise
	TokenVariables
	TokenDisplayHint
	TokenNotifications
	TokenModule
	TokenMandatoryGroups
	TokenGroup
	TokenWriteSyntax
	TokenProductRelease
	TokenSupports
	TokenVariation
	TokenCreationRequires

	TokenIdentifierString
	TokenNumberString
	TokenQuotedString
	TokenBinaryString
	TokenHexString
	TokenWhitespace
	TokenComment
)

// stringToken returns a literal token pattern.
func stringToken(id int, name, image string) *parse.TokenPattern {
	return &parse.TokenPattern{ID: id, Name: name, Kind: parse.PatternString, Image: image}
}

// regexToken returns a regex token pattern.
func regexToken(id int, name, pattern string) *parse.TokenPattern {
	return &parse.TokenPattern{ID: id, Name: name, Kind: parse.PatternRegex, Image: pattern}
}

// TokenPatterns returns the token patterns of the grammar in
// registration order. Literal keywords come before the identifier
// regex so they win equal-length ties; whitespace and comments are
// ignored patterns.
func TokenPatterns() []*parse.TokenPattern {
	return []*parse.TokenPattern{
		stringToken(TokenDoubleDot, "DOUBLE_DOT", ".."),
		stringToken(TokenDot, "DOT", "."),
		stringToken(TokenComma, "COMMA", ","),
		stringToken(TokenSemicolon, "SEMI_COLON", ";"),
		stringToken(TokenLeftParen, "LEFT_PAREN", "("),
		stringToken(TokenRightParen, "RIGHT_PAREN", ")"),
		stringToken(TokenLeftBrace, "LEFT_BRACE", "{"),
		stringToken(TokenRightBrace, "RIGHT_BRACE", "}"),
		stringToken(TokenLeftBracket, "LEFT_BRACKET", "["),
		stringToken(TokenRightBracket, "RIGHT_BRACKET", "]"),
		stringToken(TokenMinus, "MINUS", "-"),
		stringToken(TokenPipe, "VERTICAL_BAR", "|"),
		stringToken(TokenDefinition, "DEFINITION", "::="),

		stringToken(TokenDefinitions, "DEFINITIONS", "DEFINITIONS"),
		stringToken(TokenExplicit, "EXPLICIT", "EXPLICIT"),
		stringToken(TokenImplicit, "IMPLICIT", "IMPLICIT"),
		stringToken(TokenTags, "TAGS", "TAGS"),
		stringToken(TokenBegin, "BEGIN", "BEGIN"),
		stringToken(TokenEnd, "END", "END"),
		stringToken(TokenExports, "EXPORTS", "EXPORTS"),
		stringToken(TokenImports, "IMPORTS", "IMPORTS"),
		stringToken(TokenFrom, "FROM", "FROM"),
		stringToken(TokenMacro, "MACRO", "MACRO"),

		stringToken(TokenInteger, "INTEGER", "INTEGER"),
		stringToken(TokenReal, "REAL", "REAL"),
		stringToken(TokenBoolean, "BOOLEAN", "BOOLEAN"),
		stringToken(TokenNull, "NULL", "NULL"),
		stringToken(TokenBit, "BIT", "BIT"),
		stringToken(TokenOctet, "OCTET", "OCTET"),
		stringToken(TokenString, "STRING", "STRING"),
		stringToken(TokenEnumerated, "ENUMERATED", "ENUMERATED"),
		stringToken(TokenSequence, "SEQUENCE", "SEQUENCE"),
		stringToken(TokenSet, "SET", "SET"),
		stringToken(TokenOf, "OF", "OF"),
		stringToken(TokenChoice, "CHOICE", "CHOICE"),
		stringToken(TokenUniversal, "UNIVERSAL", "UNIVERSAL"),
		stringToken(TokenApplication, "APPLICATION", "APPLICATION"),
		stringToken(TokenPrivate, "PRIVATE", "PRIVATE"),
		stringToken(TokenAny, "ANY", "ANY"),
		stringToken(TokenDefined, "DEFINED", "DEFINED"),
		stringToken(TokenBy, "BY", "BY"),
		stringToken(TokenObject, "OBJECT", "OBJECT"),
		stringToken(TokenIdentifier, "IDENTIFIER", "IDENTIFIER"),
		stringToken(TokenIncludes, "INCLUDES", "INCLUDES"),
		stringToken(TokenMin, "MIN", "MIN"),
		stringToken(TokenMax, "MAX", "MAX"),
		stringToken(TokenSize, "SIZE", "SIZE"),
		stringToken(TokenWith, "WITH", "WITH"),
		stringToken(TokenComponent, "COMPONENT", "COMPONENT"),
		stringToken(TokenComponents, "COMPONENTS", "COMPONENTS"),
		stringToken(TokenPresent, "PRESENT", "PRESENT"),
		stringToken(TokenAbsent, "ABSENT", "ABSENT"),
		stringToken(TokenOptional, "OPTIONAL", "OPTIONAL"),
		stringToken(TokenDefault, "DEFAULT", "DEFAULT"),
		stringToken(TokenTrue, "TRUE", "TRUE"),
		stringToken(TokenFalse, "FALSE", "FALSE"),

		stringToken(TokenModuleIdentity, "MODULE_IDENTITY", "MODULE-IDENTITY"),
		stringToken(TokenObjectType, "OBJECT_TYPE", "OBJECT-TYPE"),
		stringToken(TokenNotificationType, "NOTIFICATION_TYPE", "NOTIFICATION-TYPE"),
		stringToken(TokenTrapType, "TRAP_TYPE", "TRAP-TYPE"),
		stringToken(TokenObjectIdentity, "OBJECT_IDENTITY", "OBJECT-IDENTITY"),
		stringToken(TokenTextualConvention, "TEXTUAL_CONVENTION", "TEXTUAL-CONVENTION"),
		stringToken(TokenObjectGroup, "OBJECT_GROUP", "OBJECT-GROUP"),
		stringToken(TokenNotificationGroup, "NOTIFICATION_GROUP", "NOTIFICATION-GROUP"),
		stringToken(TokenModuleCompliance, "MODULE_COMPLIANCE", "MODULE-COMPLIANCE"),
		stringToken(TokenAgentCapabilities, "AGENT_CAPABILITIES", "AGENT-CAPABILITIES"),

		stringToken(TokenLastUpdated, "LAST_UPDATED", "LAST-UPDATED"),
		stringToken(TokenOrganization, "ORGANIZATION", "ORGANIZATION"),
		stringToken(TokenContactInfo, "CONTACT_INFO", "CONTACT-INFO"),
		stringToken(TokenDescription, "DESCRIPTION", "DESCRIPTION"),
		stringToken(TokenRevision, "REVISION", "REVISION"),
		stringToken(TokenStatus, "STATUS", "STATUS"),
		stringToken(TokenReference, "REFERENCE", "REFERENCE"),
		stringToken(TokenSyntax, "SYNTAX", "SYNTAX"),
		stringToken(TokenBits, "BITS", "BITS"),
		stringToken(TokenUnits, "UNITS", "UNITS"),
		stringToken(TokenAccess, "ACCESS", "ACCESS"),
		stringToken(TokenMaxAccess, "MAX_ACCESS", "MAX-ACCESS"),
		stringToken(TokenMinAccess, "MIN_ACCESS", "MIN-ACCESS"),
		stringToken(TokenIndex, "INDEX", "INDEX"),
		stringToken(TokenAugments, "AUGMENTS", "AUGMENTS"),
		stringToken(TokenImplied, "IMPLIED", "IMPLIED"),
		stringToken(TokenDefVal, "DEFVAL", "DEFVAL"),
		stringToken(TokenObjects, "OBJECTS", "OBJECTS"),
		stringToken(TokenEnterprise, "ENTERPRISE", "ENTERPRISE"),
		stringToken(TokenVariables, "VARIABLES", "VARIABLES"),
		stringToken(TokenDisplayHint, "DISPLAY_HINT", "DISPLAY-HINT"),
		stringToken(TokenNotifications, "NOTIFICATIONS", "NOTIFICATIONS"),
		stringToken(TokenModule, "MODULE", "MODULE"),
		stringToken(TokenMandatoryGroups, "MANDATORY_GROUPS", "MANDATORY-GROUPS"),
		stringToken(TokenGroup, "GROUP", "GROUP"),
		stringToken(TokenWriteSyntax, "WRITE_SYNTAX", "WRITE-SYNTAX"),
		stringToken(TokenProductRelease, "PRODUCT_RELEASE", "PRODUCT-RELEASE"),
		stringToken(TokenSupports, "SUPPORTS", "SUPPORTS"),
		stringToken(TokenVariation, "VARIATION", "VARIATION"),
		stringToken(TokenCreationRequires, "CREATION_REQUIRES", "CREATION-REQUIRES"),

		regexToken(TokenIdentifierString, "IDENTIFIER_STRING", "[a-zA-Z][a-zA-Z0-9-_]*"),
		regexToken(TokenNumberString, "NUMBER_STRING", "[0-9]+"),
		regexToken(TokenQuotedString, "QUOTED_STRING", "\"[^\"]*\""),
		regexToken(TokenBinaryString, "BINARY_STRING", "'[01]*'[bB]"),
		regexToken(TokenHexString, "HEXADECIMAL_STRING", "'[0-9A-Fa-f]*'[hH]"),
		ignoredToken(regexToken(TokenWhitespace, "WHITESPACE", "[ \\t\\r\\n]+")),
		ignoredToken(regexToken(TokenComment, "COMMENT", "--([^-\\n]|-[^-\\n])*(--|-)?")),
	}
}

func ignoredToken(p *parse.TokenPattern) *parse.TokenPattern {
	p.Ignored = true
	return p
}
