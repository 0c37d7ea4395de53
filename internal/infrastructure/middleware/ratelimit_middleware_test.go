package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

// 测试中令牌几乎不补充，只看桶容量
const slowRefill = rate.Limit(1.0 / (15 * 60))

func newLimitedEngine(r rate.Limit, b int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/submit", RateLimiter(r, b), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func doPost(engine *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = ip + ":12345"
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBurst(t *testing.T) {
	// 桶容量 3：第 4 次请求必被拒
	engine := newLimitedEngine(slowRefill, 3)

	for i := 0; i < 3; i++ {
		w := doPost(engine, "192.0.2.1")
		assert.Equal(t, http.StatusOK, w.Code, "第 %d 次请求应放行", i+1)
	}
	w := doPost(engine, "192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiterPerIP(t *testing.T) {
	engine := newLimitedEngine(slowRefill, 1)

	assert.Equal(t, http.StatusOK, doPost(engine, "192.0.2.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(engine, "192.0.2.1").Code)

	// 不同 IP 使用独立令牌桶
	assert.Equal(t, http.StatusOK, doPost(engine, "192.0.2.2").Code)
}

func TestIPRateLimiterReusesLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(slowRefill, 5)
	first := limiter.GetLimiter("192.0.2.1")
	second := limiter.GetLimiter("192.0.2.1")
	assert.Same(t, first, second)
}
