package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

func newLimitedEngine(rdb *redis.Client, max int, allow AllowFunc) *gin.Engine {
	r := gin.New()
	r.Use(RealIP(false))
	r.Use(RateLimit(rdb, max, 15*time.Minute, KeyByIP(), allow, helpers.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedEngine(rdb, 2, nil)

	w := hit(r, "/x", "203.0.113.7:1234")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "900", w.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusOK, hit(r, "/x", "203.0.113.7:1234").Code)

	w = hit(r, "/x", "203.0.113.7:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// another client has its own window
	assert.Equal(t, http.StatusOK, hit(r, "/x", "198.51.100.1:1234").Code)

	// window expiry resets the counter
	mr.FastForward(16 * time.Minute)
	assert.Equal(t, http.StatusOK, hit(r, "/x", "203.0.113.7:1234").Code)
}

func TestRateLimit_AllowBypasses(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedEngine(rdb, 1, AnyOf(AllowPaths("/"), nil))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/", "203.0.113.7:1234").Code)
	}
	assert.Equal(t, http.StatusOK, hit(r, "/x", "203.0.113.7:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "/x", "203.0.113.7:1234").Code)

	private := newLimitedEngine(rdb, 1, AllowPrivateIP())
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(private, "/x", "10.0.0.5:1234").Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	r := newLimitedEngine(rdb, 1, nil)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/x", "203.0.113.7:1234").Code)
	}
}
