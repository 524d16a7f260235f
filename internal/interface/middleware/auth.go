package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
	"github.com/oksasatya/fitness-auth-api/pkg/response"
)

// CtxUserIDKey is the gin context key holding the authenticated user id.
const CtxUserIDKey = "userID"

type ctxKey struct{}

// UserIDFromContext returns the user id the Auth gate attached to ctx.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Auth rejects requests without a valid session token. The token is read from
// the session cookie first and the Authorization header second. The store is
// not consulted.
func Auth(jwt *helpers.JWTManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing token", nil)
			return
		}

		userID, err := jwt.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}

		c.Set(CtxUserIDKey, userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKey{}, userID))
		c.Next()
	}
}
