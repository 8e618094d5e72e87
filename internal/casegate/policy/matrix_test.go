package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseworks/casegate/pkg/authz"
)

func TestLoadValidates(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)
	require.NotNil(t, m)

	// Total over the declared role and key space.
	for _, role := range authz.Roles() {
		for _, key := range authz.RegisteredKeys() {
			level, ok := m.Resolve(role, key)
			assert.True(t, ok, "missing entry for (%s, %s)", role, key)
			assert.True(t, level.Valid(), "invalid level for (%s, %s)", role, key)
		}
	}
}

func TestMatrixRoleBoundaries(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)

	cases := []struct {
		role  authz.Role
		key   authz.Key
		level authz.Level
	}{
		{authz.RoleFrontDesk, KeyNoteView, authz.LevelDeny},
		{authz.RoleFrontDesk, KeyClientView, authz.LevelAllow},
		{authz.RoleFrontDesk, KeyClientViewClinical, authz.LevelDeny},
		{authz.RoleDirectService, KeyNoteView, authz.LevelAllow},
		{authz.RoleDirectService, KeyAlertCancel, authz.LevelDeny},
		{authz.RoleProgramManager, KeyClientViewClinical, authz.LevelAllow},
		{authz.RoleProgramManager, KeyAlertCancel, authz.LevelGated},
		{authz.RoleProgramManager, KeyAuditView, authz.LevelScoped},
		{authz.RoleExecutive, KeyNoteView, authz.LevelDeny},
		{authz.RoleExecutive, KeyExportRun, authz.LevelGated},
		{authz.RoleAdministrator, KeyClientViewClinical, authz.LevelDeny},
		{authz.RoleAdministrator, KeyProgramManage, authz.LevelAllow},
	}
	for _, tc := range cases {
		level, ok := m.Resolve(tc.role, tc.key)
		require.True(t, ok, "(%s, %s)", tc.role, tc.key)
		assert.Equal(t, tc.level, level, "(%s, %s)", tc.role, tc.key)
	}
}

func TestAlertPairDeclared(t *testing.T) {
	origin, ok := authz.PairedOrigin(KeyAlertCancel)
	require.True(t, ok)
	assert.Equal(t, KeyAlertCreate, origin)

	_, ok = authz.PairedOrigin(KeyAlertCreate)
	assert.False(t, ok)
}

func TestMatrixImmutableAfterLoad(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)

	assert.Panics(t, func() {
		m.Set(authz.RoleFrontDesk, KeyNoteView, authz.LevelAllow)
	})
}
