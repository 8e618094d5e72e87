package authz

import (
	"context"
	"os"
	"testing"
)

// Test fixture keys. Registered once for the whole package test binary.
const (
	testKeyNoteView     = Key("note.view")
	testKeyClientView   = Key("client.view")
	testKeyClinical     = Key("client.view_clinical")
	testKeyExport       = Key("export.run")
	testKeyCustomFields = Key("profile.view_custom")
	testKeyAlertCreate  = Key("alert.create")
	testKeyAlertCancel  = Key("alert.cancel")
)

func TestMain(m *testing.M) {
	resetKeys()
	for _, k := range []Key{
		testKeyNoteView,
		testKeyClientView,
		testKeyClinical,
		testKeyExport,
		testKeyCustomFields,
		testKeyAlertCreate,
		testKeyAlertCancel,
	} {
		RegisterKey(k)
	}
	RegisterPair(testKeyAlertCreate, testKeyAlertCancel)
	os.Exit(m.Run())
}

// testMatrix builds a fresh validated matrix mirroring a realistic
// deployment: front desk sees rosters only, direct service works clients,
// managers supervise, executives see aggregates, administrators configure.
func testMatrix(t *testing.T) *Matrix {
	t.Helper()

	m := NewMatrix()
	m.SetRow(RoleFrontDesk, map[Key]Level{
		testKeyNoteView:     LevelDeny,
		testKeyClientView:   LevelScoped,
		testKeyClinical:     LevelDeny,
		testKeyExport:       LevelDeny,
		testKeyCustomFields: LevelPerField,
		testKeyAlertCreate:  LevelDeny,
		testKeyAlertCancel:  LevelDeny,
	})
	m.SetRow(RoleDirectService, map[Key]Level{
		testKeyNoteView:     LevelAllow,
		testKeyClientView:   LevelScoped,
		testKeyClinical:     LevelScoped,
		testKeyExport:       LevelGated,
		testKeyCustomFields: LevelPerField,
		testKeyAlertCreate:  LevelAllow,
		testKeyAlertCancel:  LevelDeny,
	})
	m.SetRow(RoleProgramManager, map[Key]Level{
		testKeyNoteView:     LevelAllow,
		testKeyClientView:   LevelAllow,
		testKeyClinical:     LevelAllow,
		testKeyExport:       LevelGated,
		testKeyCustomFields: LevelPerField,
		testKeyAlertCreate:  LevelAllow,
		testKeyAlertCancel:  LevelAllow,
	})
	m.SetRow(RoleExecutive, map[Key]Level{
		testKeyNoteView:     LevelDeny,
		testKeyClientView:   LevelDeny,
		testKeyClinical:     LevelDeny,
		testKeyExport:       LevelGated,
		testKeyCustomFields: LevelDeny,
		testKeyAlertCreate:  LevelDeny,
		testKeyAlertCancel:  LevelDeny,
	})
	m.SetRow(RoleAdministrator, map[Key]Level{
		testKeyNoteView:     LevelDeny,
		testKeyClientView:   LevelDeny,
		testKeyClinical:     LevelDeny,
		testKeyExport:       LevelDeny,
		testKeyCustomFields: LevelDeny,
		testKeyAlertCreate:  LevelDeny,
		testKeyAlertCancel:  LevelDeny,
	})
	if err := m.Validate(); err != nil {
		t.Fatalf("test matrix must validate: %v", err)
	}
	return m
}

// fakeRegistry is an in-memory stand-in for the program/membership/block
// registries and the session context store.
type fakeRegistry struct {
	programs    map[string]*Program
	memberships map[string]*Membership // userID|programID
	blocks      map[string]bool        // userID|clientID
	contexts    map[string]string      // sessionID -> programID

	membershipErr error
	blockErr      error
	contextErr    error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		programs:    make(map[string]*Program),
		memberships: make(map[string]*Membership),
		blocks:      make(map[string]bool),
		contexts:    make(map[string]string),
	}
}

func (f *fakeRegistry) addProgram(id string, confidential bool) {
	f.programs[id] = &Program{ID: id, Name: id, Confidential: confidential}
}

func (f *fakeRegistry) addMembership(userID, programID string, role Role, active bool) {
	f.memberships[userID+"|"+programID] = &Membership{
		UserID:    userID,
		ProgramID: programID,
		Role:      role,
		Active:    active,
	}
}

func (f *fakeRegistry) Membership(_ context.Context, userID, programID string) (*Membership, error) {
	if f.membershipErr != nil {
		return nil, f.membershipErr
	}
	return f.memberships[userID+"|"+programID], nil
}

func (f *fakeRegistry) Program(_ context.Context, programID string) (*Program, error) {
	return f.programs[programID], nil
}

func (f *fakeRegistry) Blocked(_ context.Context, userID, clientID string) (bool, error) {
	if f.blockErr != nil {
		return false, f.blockErr
	}
	return f.blocks[userID+"|"+clientID], nil
}

func (f *fakeRegistry) SelectedContext(_ context.Context, sessionID string) (string, error) {
	if f.contextErr != nil {
		return "", f.contextErr
	}
	return f.contexts[sessionID], nil
}

// fakeFields is a FieldVisibility delegate with a fixed visible set.
type fakeFields struct {
	visible map[string]bool
	err     error
}

func (f *fakeFields) FieldVisible(_ context.Context, _ string, _ Role, _ string, field string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.visible[field], nil
}

func newEngine(t *testing.T, reg *fakeRegistry, fields FieldVisibility) *Engine {
	t.Helper()
	return NewEngine(
		testMatrix(t),
		NewRoleResolver(reg),
		NewScopeEvaluator(reg, reg, reg, reg),
		fields,
	)
}
