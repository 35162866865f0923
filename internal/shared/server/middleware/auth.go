package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/shared/auth"
	"hireup-backend/internal/shared/server/respond"
)

const (
	accountIDKey    = "accountId"
	accountEmailKey = "accountEmail"
	accountRoleKey  = "accountRole"
)

// Account roles recognized by the identity gate.
const (
	RoleApplicant = "applicant"
	RoleCompany   = "company"
	RoleAdmin     = "admin"
)

// Auth validates bearer JWTs and stores the caller's identity in context.
// Unauthenticated requests pass through; role guards reject them later.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(accountIDKey, claims.Sub)
		c.Set(accountEmailKey, claims.Email)
		c.Set(accountRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAuth rejects requests that carry no verified identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if EmailFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
			return
		}
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if EmailFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
			return
		}
		if RoleFromContext(c) != role {
			respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
			return
		}
		c.Next()
	}
}

// RequireServiceToken guards internal callback routes with a shared token.
func RequireServiceToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			respond.Error(c, http.StatusForbidden, "forbidden", "callback token not configured", nil)
			return
		}
		if strings.TrimSpace(c.GetHeader("X-Service-Token")) != token {
			respond.Error(c, http.StatusForbidden, "forbidden", "invalid service token", nil)
			return
		}
		c.Next()
	}
}

// AccountIDFromContext fetches the account ID set by the auth middleware.
func AccountIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(accountIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// EmailFromContext fetches the account email set by the auth middleware.
func EmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(accountEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// RoleFromContext fetches the account role set by the auth middleware.
func RoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(accountRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}
