package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddlewareHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"Empty header", "", http.StatusUnauthorized},
		{"Invalid format", "Token abc", http.StatusUnauthorized},
		{"Empty token", "Bearer ", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			req := httptest.NewRequest("GET", "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			c.Request = req

			handler := AuthMiddleware("secret")
			handler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Valid access token sets context", func(t *testing.T) {
		token, err := GenerateAccessToken(42, "user@test.com", RoleTrainer, testSecret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		c.Request = req

		handler := AuthMiddleware(testSecret)
		handler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		id, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, 42, id)

		role, ok := GetUserRole(c)
		assert.True(t, ok)
		assert.Equal(t, RoleTrainer, role)
	})

	t.Run("Refresh token rejected on protected routes", func(t *testing.T) {
		token, err := GenerateRefreshToken(42, "user@test.com", RoleMember, testSecret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		c.Request = req

		handler := AuthMiddleware(testSecret)
		handler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		userRole       any
		requiredRoles  []string
		expectedStatus int
	}{
		{"Correct role", RoleAdmin, []string{RoleAdmin}, http.StatusOK},
		{"One of several roles", RoleReceptionist, []string{RoleReceptionist, RoleAdmin}, http.StatusOK},
		{"Missing role", nil, []string{RoleAdmin}, http.StatusUnauthorized},
		{"Wrong role type", 123, []string{RoleAdmin}, http.StatusUnauthorized},
		{"Insufficient role", RoleMember, []string{RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			if tt.userRole != nil {
				c.Set("user_role", tt.userRole)
			}
			c.Request = httptest.NewRequest("GET", "/", nil)

			handler := RequireRole(tt.requiredRoles...)
			handler(c)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestIsStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		role     any
		expected bool
	}{
		{RoleReceptionist, true},
		{RoleAdmin, true},
		{RoleTrainer, false},
		{RoleMember, false},
		{nil, false},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		if tt.role != nil {
			c.Set("user_role", tt.role)
		}

		assert.Equal(t, tt.expected, IsStaff(c))
	}
}
