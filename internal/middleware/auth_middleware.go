package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"
	"github.com/heyyrintu/hrms-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserID     = "user_id"
	CtxEmployeeID = "employee_id"
	CtxTenantID   = "tenant_id"
	CtxRole       = "role"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrTokenInvalid = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New(apperror.CodeUnauthorized, "Token expired", http.StatusUnauthorized)
)

// AuthMiddleware verifies an HS256 bearer token (or access_token cookie)
// and copies its claims into the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired)
				return
			}
			abortWith(c, ErrTokenInvalid)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrTokenInvalid)
			return
		}

		userID, _ := claims["user_id"].(string)
		tenantID, _ := claims["tenant_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || tenantID == "" || !domain.IsValidRole(role) {
			abortWith(c, ErrTokenInvalid)
			return
		}

		// HR accounts may not be linked to an employee record.
		employeeID, _ := claims["employee_id"].(string)

		c.Set(CtxUserID, userID)
		c.Set(CtxEmployeeID, employeeID)
		c.Set(CtxTenantID, tenantID)
		c.Set(CtxRole, role)

		ctx := contextutil.WithUserID(c.Request.Context(), userID)
		ctx = contextutil.WithTenantID(ctx, tenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(CtxRole)
		if userRole == "" {
			abortWith(c, apperror.ErrForbidden)
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWith(c, apperror.ErrForbidden)
	}
}

// CurrentActor reads the caller set by AuthMiddleware.
func CurrentActor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID:     c.GetString(CtxUserID),
		EmployeeID: c.GetString(CtxEmployeeID),
		TenantID:   c.GetString(CtxTenantID),
		Role:       c.GetString(CtxRole),
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
