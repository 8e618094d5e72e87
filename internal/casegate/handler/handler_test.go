package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/caseworks/casegate/internal/casegate/policy"
	"github.com/caseworks/casegate/internal/casegate/router"
	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/internal/pkg/middleware"
	"github.com/caseworks/casegate/pkg/authz"
	"github.com/caseworks/casegate/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	engine  *gin.Engine
	factory store.Factory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	factory := store.NewFactory(db)
	require.NoError(t, factory.AutoMigrate())
	t.Cleanup(func() { _ = factory.Close() })

	matrix, err := policy.Load()
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.Register(engine, factory, session.NewMemoryStore(session.DefaultTTL), matrix, testSecret)

	s := &testServer{engine: engine, factory: factory}
	s.seed(t)
	return s
}

func (s *testServer) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.factory.Programs().Create(ctx, &model.Program{
		ProgramID: "outreach", Name: "Street Outreach",
	}))
	require.NoError(t, s.factory.Programs().Create(ctx, &model.Program{
		ProgramID: "shelter", Name: "Emergency Shelter", Confidential: true,
	}))

	memberships := []*model.ProgramMembership{
		{UserID: "alice", ProgramID: "outreach", Role: "direct_service"},
		{UserID: "bob", ProgramID: "outreach", Role: "program_manager"},
		{UserID: "carol", ProgramID: "shelter", Role: "direct_service"},
		{UserID: "dana", ProgramID: authz.GlobalContext, Role: "administrator"},
	}
	for _, m := range memberships {
		require.NoError(t, s.factory.Memberships().Assign(ctx, m))
	}
}

func token(t *testing.T, user, sess string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": user,
		"sid": sess,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/v1/access/check", "", map[string]string{
		"key": "note.view", "program_id": "outreach",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/v1/access/check", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccessCheck(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", "s1")

	w := s.do(t, http.MethodPost, "/v1/access/check", alice, map[string]string{
		"key": "note.view", "program_id": "outreach",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":true`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// An unregistered key is a validation error, not a silent deny.
	w = s.do(t, http.MethodPost, "/v1/access/check", alice, map[string]string{
		"key": "note.viwe", "program_id": "outreach",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A key the role lacks reads as not allowed.
	w = s.do(t, http.MethodPost, "/v1/access/check", alice, map[string]string{
		"key": "alert.cancel", "program_id": "outreach",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":false`)
}

func TestDenialsAreGenericOverHTTP(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", "s1")

	// Three different root causes: no grant, no membership, confidential
	// program without context. All must produce an identical error body.
	bodies := make([]string, 0, 3)

	w := s.do(t, http.MethodGet, "/v1/audit/entries?program_id=outreach", alice, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	bodies = append(bodies, decode(t, w).Message)

	w = s.do(t, http.MethodGet, "/v1/audit/entries?program_id=shelter", alice, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	bodies = append(bodies, decode(t, w).Message)

	carol := token(t, "carol", "s2")
	w = s.do(t, http.MethodPost, "/v1/flags/f1/cancellation", carol, map[string]string{
		"program_id": "shelter",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	bodies = append(bodies, decode(t, w).Message)

	assert.Equal(t, "Not authorized", bodies[0])
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestSessionContextRoundTrip(t *testing.T) {
	s := newTestServer(t)
	carol := token(t, "carol", "s2")

	// Confidential program is dark until the context is selected.
	w := s.do(t, http.MethodPost, "/v1/access/check", carol, map[string]string{
		"key": "note.view", "program_id": "shelter",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":false`)

	w = s.do(t, http.MethodPost, "/v1/session/context", carol, map[string]string{
		"program_id": "shelter",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/v1/session/context", carol, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"program_id":"shelter"`)

	w = s.do(t, http.MethodPost, "/v1/access/check", carol, map[string]string{
		"key": "note.view", "program_id": "shelter",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":true`)

	w = s.do(t, http.MethodDelete, "/v1/session/context", carol, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/v1/access/check", carol, map[string]string{
		"key": "note.view", "program_id": "shelter",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":false`)

	// Selecting a program carol does not belong to is refused.
	w = s.do(t, http.MethodPost, "/v1/session/context", carol, map[string]string{
		"program_id": "outreach",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFlagCancellationFlow(t *testing.T) {
	s := newTestServer(t)
	alice := token(t, "alice", "s1")
	bob := token(t, "bob", "s3")

	w := s.do(t, http.MethodPost, "/v1/flags/f1/cancellation", alice, map[string]string{
		"program_id": "outreach",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The recommender cannot approve; their role lacks the cancel grant.
	w = s.do(t, http.MethodPost, "/v1/flags/f1/cancellation/approve", alice, map[string]string{
		"program_id": "outreach",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/v1/flags/f1/cancellation/approve", bob, map[string]string{
		"program_id": "outreach",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// bob alone cannot both recommend and resolve.
	w = s.do(t, http.MethodPost, "/v1/flags/f2/cancellation", bob, map[string]string{
		"program_id": "outreach",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/v1/flags/f2/cancellation/reject", bob, map[string]string{
		"program_id": "outreach",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminRegistryEndpoints(t *testing.T) {
	s := newTestServer(t)
	dana := token(t, "dana", "s4")
	alice := token(t, "alice", "s1")

	w := s.do(t, http.MethodPost, "/v1/programs", dana, map[string]interface{}{
		"program_id": "housing", "name": "Transitional Housing", "confidential": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/v1/programs", alice, map[string]interface{}{
		"program_id": "rogue", "name": "Rogue Program",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/v1/programs/housing/memberships", dana, map[string]string{
		"user_id": "erin", "role": "front_desk",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/v1/programs/housing/memberships", dana, map[string]string{
		"user_id": "erin", "role": "czar",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Program managers administer their own roster but not other programs'.
	bob := token(t, "bob", "s3")
	w = s.do(t, http.MethodPost, "/v1/programs/outreach/memberships", bob, map[string]string{
		"user_id": "frank", "role": "direct_service",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/v1/programs/housing/memberships", bob, map[string]string{
		"user_id": "frank", "role": "direct_service",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The audit trail shows each registry decision.
	w = s.do(t, http.MethodGet, "/v1/audit/entries?program_id=outreach", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"permission_key":"program.manage"`)
}
