package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-gateway/internal/adapters/session"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
)

const testCookie = "hms_session"

func signedInRequest(t *testing.T, store providers.SessionStore, identity *entities.Identity) *http.Request {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), "sess-1", identity))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sess-1"})
	return req
}

func newHarness() (providers.SessionStore, http.Handler) {
	store := session.NewMemoryStore(nil)

	inner := RequireRole(entities.RoleDoctor)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := SessionMiddleware(store, testCookie)(http.HandlerFunc(inner))
	return store, handler
}

func TestRequireRoleNoSession(t *testing.T) {
	_, handler := newHarness()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleMismatch(t *testing.T) {
	store, handler := newHarness()
	req := signedInRequest(t, store, &entities.Identity{UserID: 7, Name: "Ada", Role: entities.RolePatient})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMatch(t *testing.T) {
	store, handler := newHarness()
	req := signedInRequest(t, store, &entities.Identity{UserID: 3, Name: "Grace", Role: entities.RoleDoctor})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaleCookiePassesThroughUnauthenticated(t *testing.T) {
	_, handler := newHarness()

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "no-such-session"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityFromContextAfterMiddleware(t *testing.T) {
	store := session.NewMemoryStore(nil)

	var got *entities.Identity
	var gotSession string
	handler := SessionMiddleware(store, testCookie)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
		gotSession = SessionIDFromContext(r.Context())
	}))

	req := signedInRequest(t, store, &entities.Identity{UserID: 3, Name: "Grace", Role: entities.RoleDoctor})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, "sess-1", gotSession)
}
