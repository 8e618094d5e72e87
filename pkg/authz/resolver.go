package authz

import (
	"context"
)

// RoleResolver resolves the single role a user holds in an explicit program
// context. There is no implicit fallback: if the caller does not name a
// program (or GlobalContext), no role resolves. Ambiguity here is the single
// most common source of privilege-escalation bugs in systems of this shape,
// so the contract forbids guessing.
type RoleResolver struct {
	members MembershipSource
}

// NewRoleResolver creates a resolver over the membership registry.
func NewRoleResolver(members MembershipSource) *RoleResolver {
	return &RoleResolver{members: members}
}

// ResolveRole returns the role the user holds in the program. The second
// return is false when the membership is missing or removed.
func (r *RoleResolver) ResolveRole(ctx context.Context, userID, programID string) (Role, bool, error) {
	if userID == "" || programID == "" {
		return "", false, nil
	}

	m, err := r.members.Membership(ctx, userID, programID)
	if err != nil {
		return "", false, err
	}
	if m == nil || !m.Active {
		return "", false, nil
	}
	if !m.Role.Valid() {
		// A corrupt registry row must not resolve to anything.
		return "", false, nil
	}
	return m.Role, true, nil
}
