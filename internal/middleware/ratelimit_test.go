package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
)

func newLimitedRouter(l *limiter.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/limited", RateLimit(l), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func hit(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func assertLimitedAfter(t *testing.T, r *gin.Engine, allowed int) {
	t.Helper()
	for i := 0; i < allowed; i++ {
		w := hit(r, "198.51.100.7:4000")
		require.Equal(t, http.StatusNoContent, w.Code, "request %d", i+1)
	}

	w := hit(r, "198.51.100.7:4000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// other clients keep their own budget
	w = hit(r, "203.0.113.9:4000")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_MemoryStore(t *testing.T) {
	l, err := NewLimiter("2-M", nil)
	require.NoError(t, err)

	assertLimitedAfter(t, newLimitedRouter(l), 2)
}

func TestRateLimit_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l, err := NewLimiter("2-M", client)
	require.NoError(t, err)

	assertLimitedAfter(t, newLimitedRouter(l), 2)

	keys := mr.Keys()
	require.NotEmpty(t, keys)
	assert.Contains(t, keys[0], "ledger_ratelimit")
}

func TestNewLimiter_InvalidRate(t *testing.T) {
	_, err := NewLimiter("lots-per-minute", nil)
	assert.Error(t, err)
}
