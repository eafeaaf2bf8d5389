package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"distributor-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func tokenFor(t *testing.T, role user.Role) string {
	t.Helper()
	token, err := user.GenerateJWT(7, "Asha", "asha@example.com", role)
	require.NoError(t, err)
	return token
}

func TestAuth_AttachesIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var got Identity
	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = IdentityFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user.RoleRetailer))

	Auth(inner).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, user.RoleRetailer, got.Role)
}

func TestAuth_InvalidTokenStaysAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = IdentityFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rr := httptest.NewRecorder()
	Auth(inner).ServeHTTP(rr, req)

	// Request still goes through; it is just anonymous.
	assert.False(t, ok)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/myorders", nil)
	rr := httptest.NewRecorder()

	RequireAuth(okHandler()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"authentication required"}`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/orders/myorders", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: 7}))
	rr = httptest.NewRecorder()

	RequireAuth(okHandler()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRole(t *testing.T) {
	adminOnly := RequireRole(user.RoleAdmin)(okHandler())

	// No identity at all.
	rr := httptest.NewRecorder()
	adminOnly.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Wrong role.
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: 7, Role: user.RoleRetailer}))
	rr = httptest.NewRecorder()
	adminOnly.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Admin passes.
	req = httptest.NewRequest(http.MethodPost, "/products", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: 1, Role: user.RoleAdmin}))
	rr = httptest.NewRecorder()
	adminOnly.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit_StrictTierExhausts(t *testing.T) {
	handler := RateLimit(okHandler())

	var lastCode int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = "10.1.2.3:999"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		lastCode = rr.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRateLimit_TiersAreIndependent(t *testing.T) {
	handler := RateLimit(okHandler())

	// Exhaust the strict bucket for this IP.
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.RemoteAddr = "10.9.8.7:999"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// General-tier requests from the same IP still pass.
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = "10.9.8.7:999"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResolveRateTier(t *testing.T) {
	post := func(path string) *http.Request {
		return httptest.NewRequest(http.MethodPost, path, nil)
	}

	_, _, tier := resolveRateTier(post("/users/verify-otp"))
	assert.Equal(t, "strict", tier)

	_, _, tier = resolveRateTier(post("/orders"))
	assert.Equal(t, "general", tier)

	// Reads on auth paths are not strict.
	_, _, tier = resolveRateTier(httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, "general", tier)
}

func TestRequestID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	RequestID(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	// Client-supplied ids are kept.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	RequestID(inner).ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}
