package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newAuthRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{middleware.AuthMiddleware(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, middleware.RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		actor := middleware.CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"employee": actor.EmployeeID, "role": actor.Role, "tenant": actor.TenantID})
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.MapClaims{
		"user_id":     "u1",
		"tenant_id":   "t1",
		"employee_id": "e1",
		"role":        domain.RoleManager,
		"exp":         time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid bearer", "Bearer " + signToken(t, testSecret, valid), http.StatusOK, `"employee":"e1"`},
		{"missing", "", http.StatusUnauthorized, "Token not found"},
		{"wrong secret", "Bearer " + signToken(t, "other", valid), http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u1", "tenant_id": "t1", "role": domain.RoleEmployee,
			"exp": time.Now().Add(-time.Minute).Unix(),
		}), http.StatusUnauthorized, "Token expired"},
		{"unknown role", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u1", "tenant_id": "t1", "role": "ROOT",
		}), http.StatusUnauthorized, "Invalid token"},
		{"missing tenant", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u1", "role": domain.RoleEmployee,
		}), http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1", "tenant_id": "t1", "role": domain.RoleHRAdmin,
	})})
	w := httptest.NewRecorder()

	newAuthRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employee":""`)
}

func TestRoleMiddleware(t *testing.T) {
	token := func(role string) string {
		return "Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": "u1", "tenant_id": "t1", "role": role})
	}
	r := newAuthRouter(domain.RoleHRAdmin, domain.RoleSuperAdmin)

	for role, status := range map[string]int{
		domain.RoleHRAdmin:    http.StatusOK,
		domain.RoleSuperAdmin: http.StatusOK,
		domain.RoleManager:    http.StatusForbidden,
		domain.RoleEmployee:   http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", token(role))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, status, w.Code, role)
	}
}
