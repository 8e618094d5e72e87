package authz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckScenarios(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("standard", false)
	reg.addProgram("other", false)
	reg.addMembership("fd", "standard", RoleFrontDesk, true)
	reg.addMembership("ds", "standard", RoleDirectService, true)
	reg.addMembership("pm", "standard", RoleProgramManager, true)
	// Administrator with no membership anywhere.

	engine := newEngine(t, reg, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     Request
		allowed bool
		reason  DenyReason
	}{
		{
			name:    "front desk cannot view notes",
			req:     Request{UserID: "fd", Key: testKeyNoteView, ProgramID: "standard"},
			allowed: false,
			reason:  ReasonMatrixDeny,
		},
		{
			name:    "direct service views notes in own program",
			req:     Request{UserID: "ds", Key: testKeyNoteView, ProgramID: "standard"},
			allowed: true,
		},
		{
			name:    "manager views clinical in own program",
			req:     Request{UserID: "pm", Key: testKeyClinical, ProgramID: "standard"},
			allowed: true,
		},
		{
			name:    "manager denied clinical in a program they do not belong to",
			req:     Request{UserID: "pm", Key: testKeyClinical, ProgramID: "other"},
			allowed: false,
			reason:  ReasonNotMember,
		},
		{
			name:    "administrator flag alone grants no client data",
			req:     Request{UserID: "admin", Key: testKeyClinical, ProgramID: "standard"},
			allowed: false,
			reason:  ReasonNotMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := engine.Check(ctx, tt.req)
			assert.Equal(t, tt.allowed, d.Allowed())
			if !tt.allowed {
				assert.Equal(t, tt.reason, d.Reason)
			}
		})
	}
}

func TestBlockSupremacy(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("p1", false)
	reg.blocks["pm|victim"] = true
	reg.addMembership("pm", "p1", RoleProgramManager, true)

	engine := newEngine(t, reg, nil)
	ctx := context.Background()

	// The manager's matrix row allows every clinical key, and none of it
	// matters: the block forces DENY for every key against that client.
	for _, key := range RegisteredKeys() {
		d := engine.Check(ctx, Request{
			UserID:    "pm",
			Key:       key,
			ProgramID: "p1",
			ClientID:  "victim",
		})
		assert.False(t, d.Allowed(), "block must supersede matrix for %s", key)
		assert.Equal(t, ReasonBlocked, d.Reason)
	}

	// Same user, unblocked client: the matrix applies again.
	d := engine.Check(ctx, Request{
		UserID:    "pm",
		Key:       testKeyClinical,
		ProgramID: "p1",
		ClientID:  "someone-else",
	})
	assert.True(t, d.Allowed())
}

func TestConfidentialityIsolation(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("shelter", true)
	reg.addMembership("ds", "shelter", RoleDirectService, true)

	engine := newEngine(t, reg, nil)
	ctx := context.Background()

	// Active role in the confidential program, but the session never selected
	// the shelter context: every key denies, including ALLOW-level ones.
	for _, key := range RegisteredKeys() {
		d := engine.Check(ctx, Request{
			UserID:    "ds",
			SessionID: "sess-1",
			Key:       key,
			ProgramID: "shelter",
		})
		assert.False(t, d.Allowed(), "confidential program without context must deny %s", key)
		assert.Equal(t, ReasonContextMismatch, d.Reason)
	}

	// Selecting the context makes ALLOW-level keys resolve again.
	reg.contexts["sess-1"] = "shelter"
	d := engine.Check(ctx, Request{
		UserID:    "ds",
		SessionID: "sess-1",
		Key:       testKeyNoteView,
		ProgramID: "shelter",
	})
	assert.True(t, d.Allowed())

	// A mid-session context switch takes effect on the very next evaluation.
	reg.contexts["sess-1"] = "elsewhere"
	d = engine.Check(ctx, Request{
		UserID:    "ds",
		SessionID: "sess-1",
		Key:       testKeyNoteView,
		ProgramID: "shelter",
	})
	assert.False(t, d.Allowed())
	assert.Equal(t, ReasonContextMismatch, d.Reason)
}

func TestPerProgramRoleResolution(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("a", false)
	reg.addProgram("b", false)
	reg.addMembership("u", "a", RoleDirectService, true)
	reg.addMembership("u", "b", RoleFrontDesk, true)

	engine := newEngine(t, reg, nil)
	ctx := context.Background()

	// Same user, same key, same session: the role follows the context.
	inA := engine.Check(ctx, Request{UserID: "u", Key: testKeyNoteView, ProgramID: "a"})
	assert.True(t, inA.Allowed())
	assert.Equal(t, RoleDirectService, inA.Role)

	inB := engine.Check(ctx, Request{UserID: "u", Key: testKeyNoteView, ProgramID: "b"})
	assert.False(t, inB.Allowed())
	assert.Equal(t, ReasonMatrixDeny, inB.Reason)
}

func TestRemovedMembershipDenies(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("p1", false)
	reg.addMembership("u", "p1", RoleDirectService, false)

	engine := newEngine(t, reg, nil)
	d := engine.Check(context.Background(), Request{UserID: "u", Key: testKeyNoteView, ProgramID: "p1"})
	assert.False(t, d.Allowed())
	assert.Equal(t, ReasonNotMember, d.Reason)
}

func TestIdempotence(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("p1", false)
	reg.addMembership("u", "p1", RoleDirectService, true)

	engine := newEngine(t, reg, nil)
	req := Request{UserID: "u", Key: testKeyClinical, ProgramID: "p1", ClientID: "c1"}

	first := engine.Check(context.Background(), req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.Check(context.Background(), req))
	}
}

func TestScopedComposition(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("p1", false)
	reg.addMembership("u", "p1", RoleDirectService, true)

	engine := newEngine(t, reg, nil)
	d := engine.Check(context.Background(), Request{UserID: "u", Key: testKeyClientView, ProgramID: "p1"})
	assert.True(t, d.Allowed())
	assert.True(t, d.Scoped, "SCOPED must carry the filter-required marker")
	assert.Equal(t, LevelScoped, d.Level)
}

func TestGatedComposition(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("p1", false)
	reg.addMembership("u", "p1", RoleDirectService, true)

	engine := newEngine(t, reg, nil)
	d := engine.Check(context.Background(), Request{UserID: "u", Key: testKeyExport, ProgramID: "p1"})
	assert.True(t, d.Allowed())
	assert.True(t, d.GatedWarning, "GATED must never pass as a silent ALLOW")
}

func TestPerFieldDelegation(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("p1", false)
	reg.addMembership("u", "p1", RoleDirectService, true)

	fields := &fakeFields{visible: map[string]bool{"pronouns": true}}
	engine := newEngine(t, reg, fields)
	ctx := context.Background()

	visible := engine.Check(ctx, Request{UserID: "u", Key: testKeyCustomFields, ProgramID: "p1", Field: "pronouns"})
	assert.True(t, visible.Allowed())

	hidden := engine.Check(ctx, Request{UserID: "u", Key: testKeyCustomFields, ProgramID: "p1", Field: "diagnosis"})
	assert.False(t, hidden.Allowed())
	assert.Equal(t, ReasonFieldHidden, hidden.Reason)

	// No field named at all: fail closed.
	missing := engine.Check(ctx, Request{UserID: "u", Key: testKeyCustomFields, ProgramID: "p1"})
	assert.False(t, missing.Allowed())
}

func TestFaultsFailClosed(t *testing.T) {
	ctx := context.Background()

	t.Run("membership lookup failure", func(t *testing.T) {
		reg := newFakeRegistry()
		reg.membershipErr = fmt.Errorf("registry unreachable")
		engine := newEngine(t, reg, nil)

		d := engine.Check(ctx, Request{UserID: "u", Key: testKeyNoteView, ProgramID: "p1"})
		assert.False(t, d.Allowed())
		assert.Equal(t, ReasonFault, d.Reason)
	})

	t.Run("block lookup failure", func(t *testing.T) {
		reg := newFakeRegistry()
		reg.addProgram("p1", false)
		reg.addMembership("u", "p1", RoleProgramManager, true)
		reg.blockErr = fmt.Errorf("registry unreachable")
		engine := newEngine(t, reg, nil)

		d := engine.Check(ctx, Request{UserID: "u", Key: testKeyNoteView, ProgramID: "p1", ClientID: "c1"})
		assert.False(t, d.Allowed())
		assert.Equal(t, ReasonFault, d.Reason)
	})

	t.Run("session store failure", func(t *testing.T) {
		reg := newFakeRegistry()
		reg.addProgram("shelter", true)
		reg.addMembership("u", "shelter", RoleProgramManager, true)
		reg.contextErr = fmt.Errorf("session store down")
		engine := newEngine(t, reg, nil)

		d := engine.Check(ctx, Request{UserID: "u", SessionID: "s", Key: testKeyNoteView, ProgramID: "shelter"})
		assert.False(t, d.Allowed())
		assert.Equal(t, ReasonFault, d.Reason)
	})

	t.Run("field delegate failure", func(t *testing.T) {
		reg := newFakeRegistry()
		reg.addProgram("p1", false)
		reg.addMembership("u", "p1", RoleDirectService, true)
		engine := newEngine(t, reg, &fakeFields{err: fmt.Errorf("table missing")})

		d := engine.Check(ctx, Request{UserID: "u", Key: testKeyCustomFields, ProgramID: "p1", Field: "x"})
		assert.False(t, d.Allowed())
		assert.Equal(t, ReasonFault, d.Reason)
	})
}

func TestGlobalContextIsExplicit(t *testing.T) {
	reg := newFakeRegistry()
	reg.addProgram("p1", false)
	// Permissive role in a real program, but no org-level assignment.
	reg.addMembership("u", "p1", RoleProgramManager, true)

	engine := newEngine(t, reg, nil)
	ctx := context.Background()

	// The resolver must not fall back to the user's most permissive program
	// role when the global context is named.
	d := engine.Check(ctx, Request{UserID: "u", Key: testKeyNoteView, ProgramID: GlobalContext})
	assert.False(t, d.Allowed())
	assert.Equal(t, ReasonNotMember, d.Reason)

	// An explicit org-level membership row resolves normally.
	reg.addMembership("u", GlobalContext, RoleExecutive, true)
	d = engine.Check(ctx, Request{UserID: "u", Key: testKeyExport, ProgramID: GlobalContext})
	assert.True(t, d.Allowed())
	assert.Equal(t, RoleExecutive, d.Role)
}
