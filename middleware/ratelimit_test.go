package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/login", RateLimit(3, time.Minute), func(c *gin.Context) {
		c.String(200, "ok")
	})

	do := func() int {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	// 窗口内前3次放行
	assert.Equal(t, 200, do())
	assert.Equal(t, 200, do())
	assert.Equal(t, 200, do())

	// 第4次限流
	assert.Equal(t, http.StatusTooManyRequests, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRateLimit_PerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/login", RateLimit(1, time.Minute), func(c *gin.Context) {
		c.String(200, "ok")
	})

	do := func(addr string) int {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	// 不同 IP 相互独立
	assert.Equal(t, 200, do("10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1"))
	assert.Equal(t, 200, do("10.0.0.2:1"))
}

func TestRateLimit_WindowExpiry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/login", RateLimit(1, 50*time.Millisecond), func(c *gin.Context) {
		c.String(200, "ok")
	})

	do := func() int {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.3:1"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, 200, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	// 窗口滑过后恢复
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 200, do())
}
