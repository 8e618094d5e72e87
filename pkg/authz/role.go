package authz

// Role identifies the function a user performs within one program. Roles are
// archetypes; a deployment does not have to use all of them. A user may hold
// different roles in different programs simultaneously, so a Role is only
// meaningful together with an explicit program context.
type Role string

const (
	// RoleFrontDesk handles reception and scheduling; no clinical access.
	RoleFrontDesk Role = "front_desk"

	// RoleDirectService delivers services to clients (case workers,
	// counselors).
	RoleDirectService Role = "direct_service"

	// RoleProgramManager supervises one program's staff and roster.
	RoleProgramManager Role = "program_manager"

	// RoleExecutive sees organization-wide aggregates, not client records.
	RoleExecutive Role = "executive"

	// RoleAdministrator manages system configuration. The admin flag alone
	// grants no client-data access.
	RoleAdministrator Role = "administrator"
)

// allRoles is the closed role set the matrix must be total over.
var allRoles = []Role{
	RoleFrontDesk,
	RoleDirectService,
	RoleProgramManager,
	RoleExecutive,
	RoleAdministrator,
}

// Roles returns the closed set of declared roles.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
