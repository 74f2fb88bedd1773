package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookcatalog/internal/platform/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func TestRequireRole(t *testing.T) {
	admin, _, err := crypto.GenerateToken(testSecret, "admin", crypto.RoleAdmin, time.Minute)
	require.NoError(t, err)
	reader, _, err := crypto.GenerateToken(testSecret, "reader", "READER", time.Minute)
	require.NoError(t, err)
	foreign, _, err := crypto.GenerateToken("other-secret", "admin", crypto.RoleAdmin, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUser   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic YWRtaW46cGFzcw==", http.StatusUnauthorized, ""},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized, ""},
		{"wrong role", "Bearer " + reader, http.StatusForbidden, ""},
		{"admin", "Bearer " + admin, http.StatusOK, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser, gotRole string
			handler := RequireRole(testSecret, crypto.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserIDFromContext(r.Context())
				gotRole = RoleFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodDelete, "/v1/books/1", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUser, gotUser)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, crypto.RoleAdmin, gotRole)
			}
		})
	}
}

func TestRequireRole_EmptySecretDisablesCheck(t *testing.T) {
	handler := RequireRole("", crypto.RoleAdmin)(okHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/books", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
