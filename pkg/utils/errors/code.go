package errors

// Service codes (AA)
const (
	// ServiceCommon is for common/base errors shared by all subsystems.
	ServiceCommon = 0

	// ServiceAccess is for the access engine (matrix, resolver, scope,
	// decision, gateway).
	ServiceAccess = 1

	// ServiceAudit is for the audit subsystem.
	ServiceAudit = 2

	// ServiceRegistry is for the registry subsystem (programs, memberships,
	// client access blocks).
	ServiceRegistry = 3

	// ServiceSession is for the session subsystem (confidentiality context).
	ServiceSession = 4

	// ServiceInfraDB is for database infrastructure.
	ServiceInfraDB = 10

	// ServiceInfraCache is for cache infrastructure.
	ServiceInfraCache = 11
)

// Category codes (BB)
const (
	// CategorySuccess indicates successful operation.
	CategorySuccess = 0

	// CategoryRequest indicates request/validation errors (400).
	CategoryRequest = 1

	// CategoryAuthn indicates authentication errors (401).
	CategoryAuthn = 2

	// CategoryAuthz indicates authorization errors (403).
	CategoryAuthz = 3

	// CategoryNotFound indicates resource not found errors (404).
	CategoryNotFound = 4

	// CategoryConflict indicates conflict errors (409).
	CategoryConflict = 5

	// CategoryInternal indicates internal errors (500).
	CategoryInternal = 7

	// CategoryDatabase indicates database errors (500).
	CategoryDatabase = 8

	// CategoryCache indicates cache errors (500).
	CategoryCache = 9

	// CategoryConfiguration indicates configuration errors (500).
	CategoryConfiguration = 12
)

// MakeCode builds an AABBCCC error code from service, category and sequence.
func MakeCode(service, category, sequence int) int {
	return service*100000 + category*1000 + sequence
}

// ServiceOf extracts the service code (AA) from an error code.
func ServiceOf(code int) int {
	return code / 100000
}

// CategoryOf extracts the category code (BB) from an error code.
func CategoryOf(code int) int {
	return (code / 1000) % 100
}
