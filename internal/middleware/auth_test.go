package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/pkg/utils/tokens"
)

type MockBlacklistRepo struct {
	mock.Mock
}

func (m *MockBlacklistRepo) Add(ctx context.Context, token string, remaining time.Duration) error {
	args := m.Called(ctx, token, remaining)
	return args.Error(0)
}

func (m *MockBlacklistRepo) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Secret = "middleware-test-secret"
	return cfg
}

func issueToken(t *testing.T, cfg *config.Config, userID uuid.UUID, isAdmin bool, ttl time.Duration) string {
	t.Helper()
	raw, err := tokens.NewAccessToken(cfg.Auth.Secret, userID, isAdmin, ttl)
	require.NoError(t, err)
	return raw
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := authTestConfig()
	userID := uuid.New()

	tests := []struct {
		name           string
		header         string
		setup          func(*MockBlacklistRepo)
		expectedStatus int
	}{
		{
			name:           "missing header",
			header:         "",
			setup:          func(bl *MockBlacklistRepo) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			header:         "Basic dXNlcjpwYXNz",
			setup:          func(bl *MockBlacklistRepo) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			header:         "Bearer garbage",
			setup:          func(bl *MockBlacklistRepo) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			header:         "Bearer " + issueToken(t, cfg, userID, false, -time.Minute),
			setup:          func(bl *MockBlacklistRepo) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer " + issueToken(t, cfg, userID, false, time.Hour),
			setup: func(bl *MockBlacklistRepo) {
				bl.On("IsBlacklisted", mock.Anything, mock.Anything).Return(false, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "blacklisted token rejected before expiry",
			header: "Bearer " + issueToken(t, cfg, userID, false, time.Hour),
			setup: func(bl *MockBlacklistRepo) {
				bl.On("IsBlacklisted", mock.Anything, mock.Anything).Return(true, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "blacklist lookup failure",
			header: "Bearer " + issueToken(t, cfg, userID, false, time.Hour),
			setup: func(bl *MockBlacklistRepo) {
				bl.On("IsBlacklisted", mock.Anything, mock.Anything).Return(false, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bl := &MockBlacklistRepo{}
			tt.setup(bl)

			r := gin.New()
			r.GET("/ping", Auth(cfg, bl), func(c *gin.Context) {
				id, ok := UserID(c)
				require.True(t, ok)
				assert.Equal(t, userID, id)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			bl.AssertExpectations(t)
		})
	}
}

func TestAuth_IgnoresIdentityHeaders(t *testing.T) {
	// Role comes from the token claims alone; spoofed headers change nothing.
	gin.SetMode(gin.TestMode)
	cfg := authTestConfig()
	userID := uuid.New()

	bl := &MockBlacklistRepo{}
	bl.On("IsBlacklisted", mock.Anything, mock.Anything).Return(false, nil)

	r := gin.New()
	r.GET("/ping", Auth(cfg, bl), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, userID, false, time.Hour))
	req.Header.Set("X-Is-Admin", "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		isAdmin        bool
		expectedStatus int
	}{
		{name: "admin passes", isAdmin: true, expectedStatus: http.StatusOK},
		{name: "annotator forbidden", isAdmin: false, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", func(c *gin.Context) {
				c.Set(CtxIsAdmin, tt.isAdmin)
			}, RequireAdmin(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		isAdmin        bool
		expectedStatus int
	}{
		{name: "own resource", pathID: self.String(), isAdmin: false, expectedStatus: http.StatusOK},
		{name: "someone else's resource", pathID: other.String(), isAdmin: false, expectedStatus: http.StatusForbidden},
		{name: "admin reads anyone", pathID: other.String(), isAdmin: true, expectedStatus: http.StatusOK},
		{name: "invalid id", pathID: "not-a-uuid", isAdmin: false, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/user/:user_id", func(c *gin.Context) {
				c.Set(CtxUserID, self)
				c.Set(CtxIsAdmin, tt.isAdmin)
			}, RequireSelfOrAdmin("user_id"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/user/"+tt.pathID, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
