package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "user_role"
)

// Authenticate parses the bearer token and stores the caller identity on
// the context. Requests without a valid token stop here with a 401.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortAuth(c, http.StatusUnauthorized, "no token provided")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortAuth(c, http.StatusUnauthorized, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "invalid token")
			return
		}
		uid, ok := claims["user_id"].(float64)
		if !ok || uid <= 0 {
			abortAuth(c, http.StatusUnauthorized, "invalid token")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(userIDKey, int64(uid))
		c.Set(userRoleKey, strings.ToLower(strings.TrimSpace(role)))
		c.Next()
	}
}

// RequireRoles allows only callers whose role is in allowedRoles. It is the
// single role check; handlers behind it never re-inspect role strings.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := UserRole(c)
		if role == "" {
			abortAuth(c, http.StatusUnauthorized, "not authenticated")
			return
		}
		if _, ok := allowed[role]; !ok {
			abortAuth(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller id, 0 when unauthenticated.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// UserRole returns the authenticated caller role, empty when unauthenticated.
func UserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}

func abortAuth(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"error":      msg,
		"request_id": GetRequestID(c),
	})
}
