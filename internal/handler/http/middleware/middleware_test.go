package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, svc *jwt.JWTService, guard func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	if guard != nil {
		r.Use(guard)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(IdentityFrom(r.Context()).UserID))
	})
	return r
}

func do(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc, err := jwt.NewJWTService("test-secret-key-with-enough-length", "15m", "24h")
	require.NoError(t, err)
	h := newRouter(t, svc, nil)

	access, _, err := svc.GenerateAccessToken(user.Identity{UserID: "d-1", Role: user.RoleDriver})
	require.NoError(t, err)
	rec := do(h, access)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "d-1", rec.Body.String())

	refresh, _, err := svc.GenerateRefreshToken("d-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(h, refresh).Code)

	assert.Equal(t, http.StatusUnauthorized, do(h, "").Code)
}

func TestRequirePermissionAndRole(t *testing.T) {
	svc, err := jwt.NewJWTService("test-secret-key-with-enough-length", "15m", "24h")
	require.NoError(t, err)

	driver, _, err := svc.GenerateAccessToken(user.Identity{UserID: "d-1", Role: user.RoleDriver})
	require.NoError(t, err)
	admin, _, err := svc.GenerateAccessToken(user.Identity{UserID: "a-1", Role: user.RoleAdmin})
	require.NoError(t, err)

	payroll := newRouter(t, svc, RequirePermission(user.PermissionPayrollManage))
	assert.Equal(t, http.StatusForbidden, do(payroll, driver).Code)
	assert.Equal(t, http.StatusOK, do(payroll, admin).Code)

	driversOnly := newRouter(t, svc, RequireRole(user.RoleDriver))
	assert.Equal(t, http.StatusOK, do(driversOnly, driver).Code)
	assert.Equal(t, http.StatusForbidden, do(driversOnly, admin).Code)
}
