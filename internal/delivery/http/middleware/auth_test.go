package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventful/internal/domain"
)

type stubVerifier struct {
	claims *domain.AuthClaims
	err    error
}

func (s *stubVerifier) Verify(token string) (*domain.AuthClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func TestRequireAuth(t *testing.T) {
	claims := &domain.AuthClaims{UserID: "u1", Email: "a@example.com", Role: domain.RoleOrganizer}

	tests := []struct {
		name       string
		authHeader string
		verifier   *stubVerifier
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid token passes claims through",
			authHeader: "Bearer good-token",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			verifier:   &stubVerifier{claims: claims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("bad signature")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := RequireAuth(tt.verifier)(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, ok := ClaimsFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, "u1", got.UserID)
				assert.Equal(t, domain.RoleOrganizer, got.Role)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestRequireRole(t *testing.T) {
	verifier := &stubVerifier{claims: &domain.AuthClaims{UserID: "u1", Role: domain.RoleAttendee}}
	nextCalled := false
	handler := RequireAuth(verifier)(RequireRole(domain.RoleOrganizer)(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/analytics/overall", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, nextCalled)
}
