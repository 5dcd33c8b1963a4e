package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitBurstThenBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	current := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return current })

	router := gin.New()
	router.Use(RateLimit(limiter, RateLimitRule{Rate: 1.0 / 30.0, Burst: 2}))
	router.POST("/submit", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	if got := send(); got != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", got)
	}
	if got := send(); got != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", got)
	}
	if got := send(); got != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", got)
	}

	// After the refill interval a token is available again.
	current = current.Add(31 * time.Second)
	if got := send(); got != http.StatusOK {
		t.Fatalf("after refill: expected 200, got %d", got)
	}
}

func TestRateLimitZeroRuleAllowsAll(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("k", RateLimitRule{})
		if !allowed {
			t.Fatalf("zero rule should never block")
		}
	}
}
