package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Common errors (service 00).
var (
	// OK indicates success.
	OK = Register(New(MakeCode(ServiceCommon, CategorySuccess, 0), http.StatusOK, codes.OK, "OK"))

	// ErrBadRequest indicates a malformed or invalid request.
	ErrBadRequest = Register(New(MakeCode(ServiceCommon, CategoryRequest, 1), http.StatusBadRequest, codes.InvalidArgument, "Bad request"))

	// ErrInvalidParam indicates an invalid request parameter.
	ErrInvalidParam = Register(New(MakeCode(ServiceCommon, CategoryRequest, 2), http.StatusBadRequest, codes.InvalidArgument, "Invalid parameter"))

	// ErrUnauthenticated indicates a missing or invalid principal.
	ErrUnauthenticated = Register(New(MakeCode(ServiceCommon, CategoryAuthn, 1), http.StatusUnauthorized, codes.Unauthenticated, "Unauthenticated"))

	// ErrNotFound indicates a missing resource.
	ErrNotFound = Register(New(MakeCode(ServiceCommon, CategoryNotFound, 1), http.StatusNotFound, codes.NotFound, "Resource not found"))

	// ErrAlreadyExists indicates a duplicate resource.
	ErrAlreadyExists = Register(New(MakeCode(ServiceCommon, CategoryConflict, 1), http.StatusConflict, codes.AlreadyExists, "Resource already exists"))

	// ErrInternal indicates an unexpected internal error.
	ErrInternal = Register(New(MakeCode(ServiceCommon, CategoryInternal, 1), http.StatusInternalServerError, codes.Internal, "Internal server error"))

	// ErrDatabase indicates a database failure.
	ErrDatabase = Register(New(MakeCode(ServiceInfraDB, CategoryDatabase, 1), http.StatusInternalServerError, codes.Internal, "Database error"))

	// ErrCache indicates a cache failure.
	ErrCache = Register(New(MakeCode(ServiceInfraCache, CategoryCache, 1), http.StatusInternalServerError, codes.Internal, "Cache error"))
)

// Access engine errors (service 01).
var (
	// ErrNotAuthorized is the single generic denial returned to callers.
	// The engine never reveals why a denial occurred (existence of a client,
	// presence of a block, program confidentiality); the distinct reasons are
	// preserved only in the audit trail.
	ErrNotAuthorized = Register(New(MakeCode(ServiceAccess, CategoryAuthz, 1), http.StatusForbidden, codes.PermissionDenied, "Not authorized"))

	// ErrConfiguration indicates an incomplete permission matrix or an
	// undeclared permission key. Fatal; prevents process startup.
	ErrConfiguration = Register(New(MakeCode(ServiceAccess, CategoryConfiguration, 1), http.StatusInternalServerError, codes.FailedPrecondition, "Access policy configuration error"))

	// ErrEngineFault indicates an unexpected failure during decision
	// evaluation. Resolved to DENY; logged distinctly from normal denials.
	ErrEngineFault = Register(New(MakeCode(ServiceAccess, CategoryInternal, 1), http.StatusForbidden, codes.PermissionDenied, "Not authorized"))

	// ErrSameActor indicates a two-person workflow transition attempted by
	// the actor who performed the paired originating transition.
	ErrSameActor = Register(New(MakeCode(ServiceAccess, CategoryConflict, 1), http.StatusConflict, codes.FailedPrecondition, "Approver must differ from recommender"))
)

// Audit errors (service 02).
var (
	// ErrAuditWrite indicates the audit sink could not record a decision.
	// Fatal to the current request; the guarded operation is aborted.
	ErrAuditWrite = Register(New(MakeCode(ServiceAudit, CategoryDatabase, 1), http.StatusInternalServerError, codes.Internal, "Audit record could not be written"))
)

// Session errors (service 04).
var (
	// ErrSessionStore indicates the session context store is unreachable.
	ErrSessionStore = Register(New(MakeCode(ServiceSession, CategoryCache, 1), http.StatusInternalServerError, codes.Internal, "Session store error"))
)
