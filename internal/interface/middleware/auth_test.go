package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newGatedEngine(jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/private", Auth(jwt, "token"), func(c *gin.Context) {
		fromCtx, _ := UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"gin": c.GetString(CtxUserIDKey), "ctx": fromCtx})
	})
	return r
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	valid, _, err := jwt.Issue("user-1")
	require.NoError(t, err)
	other, _, err := helpers.NewJWTManager("other-secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized, "missing token"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: valid}) }, http.StatusOK, `"ctx":"user-1"`},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK, `"gin":"user-1"`},
		{"lowercase scheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer "+valid) }, http.StatusOK, `"gin":"user-1"`},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+valid) }, http.StatusUnauthorized, "missing token"},
		{"foreign signature", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+other) }, http.StatusUnauthorized, "invalid token"},
		{"garbage cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "abc"}) }, http.StatusUnauthorized, "invalid token"},
		{"cookie wins over header", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
			r.Header.Set("Authorization", "Bearer "+valid)
		}, http.StatusUnauthorized, "invalid token"},
	}

	r := newGatedEngine(jwt)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", -time.Minute)
	expired, _, err := jwt.Issue("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()
	newGatedEngine(helpers.NewJWTManager("secret", time.Hour)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}
