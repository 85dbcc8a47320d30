package mib

import (
	"github.com/golangsnmp/mibparse/parse"
)

// Access is the SNMP access mode of an object.
type Access int

const (
	AccessUnknown Access = iota
	AccessNotImplemented
	AccessNotAccessible
	AccessAccessibleForNotify
	AccessReadOnly
	AccessReadWrite
	AccessReadCreate
	AccessWriteOnly
)

// ParseAccess maps an ACCESS/MAX-ACCESS clause word to an Access.
func ParseAccess(s string) Access {
	switch s {
	case "not-implemented":
		return AccessNotImplemented
	case "not-accessible":
		return AccessNotAccessible
	case "accessible-for-notify":
		return AccessAccessibleForNotify
	case "read-only":
		return AccessReadOnly
	case "read-write":
		return AccessReadWrite
	case "read-create":
		return AccessReadCreate
	case "write-only":
		return AccessWriteOnly
	}
	return AccessUnknown
}

func (a Access) String() string {
	switch a {
	case AccessNotImplemented:
		return "not-implemented"
	case AccessNotAccessible:
		return "not-accessible"
	case AccessAccessibleForNotify:
		return "accessible-for-notify"
	case AccessReadOnly:
		return "read-only"
	case AccessReadWrite:
		return "read-write"
	case AccessReadCreate:
		return "read-create"
	case AccessWriteOnly:
		return "write-only"
	}
	return "unknown"
}

// CanRead reports whether the access mode permits reads.
func (a Access) CanRead() bool {
	switch a {
	case AccessReadOnly, AccessReadWrite, AccessReadCreate:
		return true
	}
	return false
}

// CanWrite reports whether the access mode permits writes.
func (a Access) CanWrite() bool {
	switch a {
	case AccessReadWrite, AccessReadCreate, AccessWriteOnly:
		return true
	}
	return false
}

// Status is the SNMP status of a definition.
type Status int

const (
	StatusUnknown Status = iota
	StatusMandatory
	StatusOptional
	StatusCurrent
	StatusDeprecated
	StatusObsolete
)

// ParseStatus maps a STATUS clause word to a Status.
func ParseStatus(s string) Status {
	switch s {
	case "mandatory":
		return StatusMandatory
	case "optional":
		return StatusOptional
	case "current":
		return StatusCurrent
	case "deprecated":
		return StatusDeprecated
	case "obsolete":
		return StatusObsolete
	}
	return StatusUnknown
}

func (s Status) String() string {
	switch s {
	case StatusMandatory:
		return "mandatory"
	case StatusOptional:
		return "optional"
	case StatusCurrent:
		return "current"
	case StatusDeprecated:
		return "deprecated"
	case StatusObsolete:
		return "obsolete"
	}
	return "unknown"
}

// Revision is one REVISION clause of a MODULE-IDENTITY.
type Revision struct {
	Value       Value // revision date value
	Description string
}

// IndexEntry is one component of an OBJECT-TYPE INDEX clause.
type IndexEntry struct {
	Implied bool
	// Value holds the index object reference; Type holds an index
	// type when the clause names a type instead.
	Value Value
	Type  Type
}

// snmpType carries the clauses shared by every SNMP macro type.
type snmpType struct {
	description string
	reference   string
}

// Description returns the DESCRIPTION clause text.
func (t *snmpType) Description() string { return t.description }

// Reference returns the REFERENCE clause text, if any.
func (t *snmpType) Reference() string { return t.reference }

// SnmpModuleIdentity is the MODULE-IDENTITY macro type.
type SnmpModuleIdentity struct {
	snmpType
	lastUpdated  string
	organization string
	contactInfo  string
	revisions    []Revision
}

// NewSnmpModuleIdentity returns a MODULE-IDENTITY type.
func NewSnmpModuleIdentity(lastUpdated, organization, contactInfo, description string, revisions []Revision) *SnmpModuleIdentity {
	t := &SnmpModuleIdentity{
		lastUpdated:  lastUpdated,
		organization: organization,
		contactInfo:  contactInfo,
		revisions:    revisions,
	}
	t.description = description
	return t
}

// Initialize resolves revision values.
func (t *SnmpModuleIdentity) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.revisions {
		t.revisions[i].Value = t.revisions[i].Value.Initialize(log, nil)
	}
	return t
}

// LastUpdated returns the LAST-UPDATED clause text.
func (t *SnmpModuleIdentity) LastUpdated() string { return t.lastUpdated }

// Organization returns the ORGANIZATION clause text.
func (t *SnmpModuleIdentity) Organization() string { return t.organization }

// ContactInfo returns the CONTACT-INFO clause text.
func (t *SnmpModuleIdentity) ContactInfo() string { return t.contactInfo }

// Revisions returns the REVISION clauses in declaration order.
func (t *SnmpModuleIdentity) Revisions() []Revision { return t.revisions }

// IsCompatible accepts object identifier values.
func (t *SnmpModuleIdentity) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "MODULE-IDENTITY".
func (t *SnmpModuleIdentity) Name() string { return "MODULE-IDENTITY" }

func (t *SnmpModuleIdentity) String() string { return t.Name() }

// SnmpObjectIdentity is the OBJECT-IDENTITY macro type.
type SnmpObjectIdentity struct {
	snmpType
	status Status
}

// NewSnmpObjectIdentity returns an OBJECT-IDENTITY type.
func NewSnmpObjectIdentity(status Status, description, reference string) *SnmpObjectIdentity {
	t := &SnmpObjectIdentity{status: status}
	t.description = description
	t.reference = reference
	return t
}

// Initialize returns the type unchanged.
func (t *SnmpObjectIdentity) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	return t
}

// Status returns the STATUS clause value.
func (t *SnmpObjectIdentity) Status() Status { return t.status }

// IsCompatible accepts object identifier values.
func (t *SnmpObjectIdentity) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "OBJECT-IDENTITY".
func (t *SnmpObjectIdentity) Name() string { return "OBJECT-IDENTITY" }

func (t *SnmpObjectIdentity) String() string { return t.Name() }

// SnmpObjectType is the OBJECT-TYPE macro type, present in both SMI
// versions.
type SnmpObjectType struct {
	snmpType
	syntax   Type
	units    string
	access   Access
	status   Status
	index    []IndexEntry
	augments Value
	defval   Value
}

// NewSnmpObjectType returns an OBJECT-TYPE with the given clauses.
func NewSnmpObjectType(syntax Type, units string, access Access, status Status,
	description, reference string, index []IndexEntry, augments Value, defval Value) *SnmpObjectType {
	t := &SnmpObjectType{
		syntax:   syntax,
		units:    units,
		access:   access,
		status:   status,
		index:    index,
		augments: augments,
		defval:   defval,
	}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the syntax, index references and default value.
func (t *SnmpObjectType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	if t.syntax != nil {
		t.syntax = t.syntax.Initialize(symbol, log)
	}
	for i := range t.index {
		if t.index[i].Value != nil {
			t.index[i].Value = t.index[i].Value.Initialize(log, nil)
		}
		if t.index[i].Type != nil {
			t.index[i].Type = t.index[i].Type.Initialize(symbol, log)
		}
	}
	if t.augments != nil {
		t.augments = t.augments.Initialize(log, nil)
	}
	if t.defval != nil {
		t.defval = t.defval.Initialize(log, t.syntax)
	}
	return t
}

// Syntax returns the SYNTAX clause type.
func (t *SnmpObjectType) Syntax() Type { return t.syntax }

// Units returns the UNITS clause text, if any.
func (t *SnmpObjectType) Units() string { return t.units }

// Access returns the ACCESS or MAX-ACCESS clause value.
func (t *SnmpObjectType) Access() Access { return t.access }

// Status returns the STATUS clause value.
func (t *SnmpObjectType) Status() Status { return t.status }

// Index returns the INDEX clause entries, if any.
func (t *SnmpObjectType) Index() []IndexEntry { return t.index }

// Augments returns the AUGMENTS clause row reference, if any.
func (t *SnmpObjectType) Augments() Value { return t.augments }

// DefaultValue returns the DEFVAL clause value, if any.
func (t *SnmpObjectType) DefaultValue() Value { return t.defval }

// IsCompatible accepts object identifier values (the assigned OID).
func (t *SnmpObjectType) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "OBJECT-TYPE".
func (t *SnmpObjectType) Name() string { return "OBJECT-TYPE" }

func (t *SnmpObjectType) String() string { return t.Name() }

// SnmpNotificationType is the SMIv2 NOTIFICATION-TYPE macro type.
type SnmpNotificationType struct {
	snmpType
	objects []Value
	status  Status
}

// NewSnmpNotificationType returns a NOTIFICATION-TYPE.
func NewSnmpNotificationType(objects []Value, status Status, description, reference string) *SnmpNotificationType {
	t := &SnmpNotificationType{objects: objects, status: status}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the OBJECTS clause references.
func (t *SnmpNotificationType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.objects {
		t.objects[i] = t.objects[i].Initialize(log, nil)
	}
	return t
}

// Objects returns the OBJECTS clause references.
func (t *SnmpNotificationType) Objects() []Value { return t.objects }

// Status returns the STATUS clause value.
func (t *SnmpNotificationType) Status() Status { return t.status }

// IsCompatible accepts object identifier values.
func (t *SnmpNotificationType) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "NOTIFICATION-TYPE".
func (t *SnmpNotificationType) Name() string { return "NOTIFICATION-TYPE" }

func (t *SnmpNotificationType) String() string { return t.Name() }

// SnmpTrapType is the SMIv1 TRAP-TYPE macro type. Trap values are
// plain numbers, not OIDs.
type SnmpTrapType struct {
	snmpType
	enterprise Value
	variables  []Value
}

// NewSnmpTrapType returns a TRAP-TYPE.
func NewSnmpTrapType(enterprise Value, variables []Value, description, reference string) *SnmpTrapType {
	t := &SnmpTrapType{enterprise: enterprise, variables: variables}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the enterprise and variable references.
func (t *SnmpTrapType) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	if t.enterprise != nil {
		t.enterprise = t.enterprise.Initialize(log, nil)
	}
	for i := range t.variables {
		t.variables[i] = t.variables[i].Initialize(log, nil)
	}
	return t
}

// Enterprise returns the ENTERPRISE clause reference.
func (t *SnmpTrapType) Enterprise() Value { return t.enterprise }

// Variables returns the VARIABLES clause references.
func (t *SnmpTrapType) Variables() []Value { return t.variables }

// IsCompatible accepts number values (the trap number).
func (t *SnmpTrapType) IsCompatible(value Value) bool {
	_, ok := value.(*NumberValue)
	return ok
}

// Name returns "TRAP-TYPE".
func (t *SnmpTrapType) Name() string { return "TRAP-TYPE" }

func (t *SnmpTrapType) String() string { return t.Name() }

// SnmpTextualConvention is the SMIv2 TEXTUAL-CONVENTION macro type.
type SnmpTextualConvention struct {
	snmpType
	displayHint string
	status      Status
	syntax      Type
}

// NewSnmpTextualConvention returns a TEXTUAL-CONVENTION.
func NewSnmpTextualConvention(displayHint string, status Status, description, reference string, syntax Type) *SnmpTextualConvention {
	t := &SnmpTextualConvention{displayHint: displayHint, status: status, syntax: syntax}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the underlying syntax.
func (t *SnmpTextualConvention) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	if t.syntax != nil {
		t.syntax = t.syntax.Initialize(symbol, log)
	}
	return t
}

// DisplayHint returns the DISPLAY-HINT clause text, if any.
func (t *SnmpTextualConvention) DisplayHint() string { return t.displayHint }

// Status returns the STATUS clause value.
func (t *SnmpTextualConvention) Status() Status { return t.status }

// Syntax returns the underlying SYNTAX type.
func (t *SnmpTextualConvention) Syntax() Type { return t.syntax }

// IsCompatible delegates to the underlying syntax.
func (t *SnmpTextualConvention) IsCompatible(value Value) bool {
	return t.syntax != nil && t.syntax.IsCompatible(value)
}

// Name returns "TEXTUAL-CONVENTION".
func (t *SnmpTextualConvention) Name() string { return "TEXTUAL-CONVENTION" }

func (t *SnmpTextualConvention) String() string { return t.Name() }

// SnmpObjectGroup is the OBJECT-GROUP macro type.
type SnmpObjectGroup struct {
	snmpType
	objects []Value
	status  Status
}

// NewSnmpObjectGroup returns an OBJECT-GROUP.
func NewSnmpObjectGroup(objects []Value, status Status, description, reference string) *SnmpObjectGroup {
	t := &SnmpObjectGroup{objects: objects, status: status}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the member references.
func (t *SnmpObjectGroup) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.objects {
		t.objects[i] = t.objects[i].Initialize(log, nil)
	}
	return t
}

// Objects returns the OBJECTS clause references.
func (t *SnmpObjectGroup) Objects() []Value { return t.objects }

// Status returns the STATUS clause value.
func (t *SnmpObjectGroup) Status() Status { return t.status }

// IsCompatible accepts object identifier values.
func (t *SnmpObjectGroup) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "OBJECT-GROUP".
func (t *SnmpObjectGroup) Name() string { return "OBJECT-GROUP" }

func (t *SnmpObjectGroup) String() string { return t.Name() }

// SnmpNotificationGroup is the NOTIFICATION-GROUP macro type.
type SnmpNotificationGroup struct {
	snmpType
	notifications []Value
	status        Status
}

// NewSnmpNotificationGroup returns a NOTIFICATION-GROUP.
func NewSnmpNotificationGroup(notifications []Value, status Status, description, reference string) *SnmpNotificationGroup {
	t := &SnmpNotificationGroup{notifications: notifications, status: status}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the member references.
func (t *SnmpNotificationGroup) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.notifications {
		t.notifications[i] = t.notifications[i].Initialize(log, nil)
	}
	return t
}

// Notifications returns the NOTIFICATIONS clause references.
func (t *SnmpNotificationGroup) Notifications() []Value { return t.notifications }

// Status returns the STATUS clause value.
func (t *SnmpNotificationGroup) Status() Status { return t.status }

// IsCompatible accepts object identifier values.
func (t *SnmpNotificationGroup) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "NOTIFICATION-GROUP".
func (t *SnmpNotificationGroup) Name() string { return "NOTIFICATION-GROUP" }

func (t *SnmpNotificationGroup) String() string { return t.Name() }

// ComplianceModule is one MODULE clause of a MODULE-COMPLIANCE.
type ComplianceModule struct {
	Module          string
	MandatoryGroups []Value
}

// SnmpModuleCompliance is the MODULE-COMPLIANCE macro type.
type SnmpModuleCompliance struct {
	snmpType
	status  Status
	modules []ComplianceModule
}

// NewSnmpModuleCompliance returns a MODULE-COMPLIANCE.
func NewSnmpModuleCompliance(status Status, description, reference string, modules []ComplianceModule) *SnmpModuleCompliance {
	t := &SnmpModuleCompliance{status: status, modules: modules}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the group references of each module clause.
func (t *SnmpModuleCompliance) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.modules {
		for j := range t.modules[i].MandatoryGroups {
			t.modules[i].MandatoryGroups[j] = t.modules[i].MandatoryGroups[j].Initialize(log, nil)
		}
	}
	return t
}

// Modules returns the MODULE clauses.
func (t *SnmpModuleCompliance) Modules() []ComplianceModule { return t.modules }

// Status returns the STATUS clause value.
func (t *SnmpModuleCompliance) Status() Status { return t.status }

// IsCompatible accepts object identifier values.
func (t *SnmpModuleCompliance) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "MODULE-COMPLIANCE".
func (t *SnmpModuleCompliance) Name() string { return "MODULE-COMPLIANCE" }

func (t *SnmpModuleCompliance) String() string { return t.Name() }

// CapabilitiesModule is one SUPPORTS clause of an AGENT-CAPABILITIES.
type CapabilitiesModule struct {
	Module   string
	Includes []Value
}

// SnmpAgentCapabilities is the AGENT-CAPABILITIES macro type.
type SnmpAgentCapabilities struct {
	snmpType
	productRelease string
	status         Status
	modules        []CapabilitiesModule
}

// NewSnmpAgentCapabilities returns an AGENT-CAPABILITIES.
func NewSnmpAgentCapabilities(productRelease string, status Status, description, reference string, modules []CapabilitiesModule) *SnmpAgentCapabilities {
	t := &SnmpAgentCapabilities{productRelease: productRelease, status: status, modules: modules}
	t.description = description
	t.reference = reference
	return t
}

// Initialize resolves the include references of each supports clause.
func (t *SnmpAgentCapabilities) Initialize(symbol *TypeSymbol, log *parse.ErrorLog) Type {
	for i := range t.modules {
		for j := range t.modules[i].Includes {
			t.modules[i].Includes[j] = t.modules[i].Includes[j].Initialize(log, nil)
		}
	}
	return t
}

// ProductRelease returns the PRODUCT-RELEASE clause text.
func (t *SnmpAgentCapabilities) ProductRelease() string { return t.productRelease }

// Modules returns the SUPPORTS clauses.
func (t *SnmpAgentCapabilities) Modules() []CapabilitiesModule { return t.modules }

// Status returns the STATUS clause value.
func (t *SnmpAgentCapabilities) Status() Status { return t.status }

// IsCompatible accepts object identifier values.
func (t *SnmpAgentCapabilities) IsCompatible(value Value) bool {
	return oidCompatible(value)
}

// Name returns "AGENT-CAPABILITIES".
func (t *SnmpAgentCapabilities) Name() string { return "AGENT-CAPABILITIES" }

func (t *SnmpAgentCapabilities) String() string { return t.Name() }

// oidCompatible accepts OID values and unresolved references.
func oidCompatible(value Value) bool {
	switch value.(type) {
	case *ObjectIdentifierValue, *ValueReference:
		return true
	}
	return false
}
