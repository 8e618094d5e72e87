package authz

// Level is the permission level a matrix entry resolves to.
type Level string

const (
	// LevelAllow grants the operation unconditionally within scope.
	LevelAllow Level = "allow"

	// LevelDeny never grants the operation.
	LevelDeny Level = "deny"

	// LevelScoped grants the operation limited to a subset the caller must
	// further filter (e.g. the caller's own program's clients). The engine
	// grants the right to iterate; it does not iterate data itself.
	LevelScoped Level = "scoped"

	// LevelGated requires a documented justification record. Until the
	// justification infrastructure exists, GATED resolves to allow with a
	// warning marker recorded in the audit entry; it is never silently
	// treated as plain ALLOW.
	LevelGated Level = "gated"

	// LevelPerField delegates the decision to the external field-visibility
	// table.
	LevelPerField Level = "per_field"
)

// Valid reports whether l is a declared permission level.
func (l Level) Valid() bool {
	switch l {
	case LevelAllow, LevelDeny, LevelScoped, LevelGated, LevelPerField:
		return true
	}
	return false
}

func (l Level) String() string {
	return string(l)
}
