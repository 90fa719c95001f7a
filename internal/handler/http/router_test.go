package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/config"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *jwt.JWTService) {
	t.Helper()
	jwtSvc, err := jwt.NewJWTService(handlerTestSecret, "1h", "24h")
	require.NoError(t, err)

	uploads := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "proofs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "proofs", "p.jpg"), []byte("jpeg"), 0o644))

	cfg := &config.Config{
		App:     config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		Storage: config.StorageConfig{Type: "local", BasePath: uploads},
	}
	router := NewRouter(
		cfg,
		jwtSvc,
		NewAuthHandler(jwtSvc, &fakeAuthService{}),
		NewDeliveryHandler(&fakeDeliveryService{}),
		NewLeaveHandler(nil),
		NewExpenseHandler(nil),
		NewInvitationHandler(nil),
		NewPayrollHandler(nil),
		NewWeighTicketHandler(nil),
		NewMasterHandler(nil),
		NewDashboardHandler(nil, nil),
		NewEventHandler(jwtSvc, sse.NewHub()),
	)
	return router, jwtSvc
}

func bearer(t *testing.T, svc *jwt.JWTService, role user.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(user.Identity{UserID: "u-" + string(role), Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_Guards(t *testing.T) {
	router, jwtSvc := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		role     user.Role
		wantCode int
	}{
		{"heartbeat", http.MethodGet, "/", "", http.StatusOK},
		{"list needs a token", http.MethodGet, "/api/v1/deliveries", "", http.StatusUnauthorized},
		{"driver lists deliveries", http.MethodGet, "/api/v1/deliveries", user.RoleDriver, http.StatusOK},
		{"driver cannot create orders", http.MethodPost, "/api/v1/deliveries", user.RoleDriver, http.StatusForbidden},
		{"driver cannot invoice", http.MethodPost, "/api/v1/deliveries/o-1/invoice", user.RoleDriver, http.StatusForbidden},
		{"driver cannot review leave", http.MethodPut, "/api/v1/leave/l-1/status", user.RoleDriver, http.StatusForbidden},
		{"driver cannot run payroll", http.MethodPost, "/api/v1/payroll/calculate", user.RoleDriver, http.StatusForbidden},
		{"driver cannot manage invitations", http.MethodPost, "/api/v1/invitations", user.RoleDriver, http.StatusForbidden},
		{"member cannot create weigh tickets", http.MethodPost, "/api/v1/weigh-tickets", user.RoleMember, http.StatusForbidden},
		{"driver cannot see overview", http.MethodGet, "/api/v1/dashboard", user.RoleDriver, http.StatusForbidden},
		{"admin has no driver dashboard", http.MethodGet, "/api/v1/dashboard/driver", user.RoleAdmin, http.StatusForbidden},
		{"stream needs sse token", http.MethodGet, "/api/v1/events/stream", "", http.StatusUnauthorized},
		{"uploads need a token", http.MethodGet, "/uploads/proofs/p.jpg", "", http.StatusUnauthorized},
		{"uploads served to signed in users", http.MethodGet, "/uploads/proofs/p.jpg", user.RoleDriver, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, jwtSvc, tt.role))
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
