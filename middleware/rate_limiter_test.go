package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"therabook/config"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxRequestsPerMin = 2

	router := gin.New()
	router.Use(RateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	// The burst equals the per-minute limit; the next request is rejected.
	for i := 0; i < 2; i++ {
		if code := do("203.0.113.10"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, code)
		}
	}
	if code := do("203.0.113.10"); code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", code)
	}

	// Limits are tracked per client IP.
	if code := do("203.0.113.11"); code != http.StatusOK {
		t.Errorf("other IP status = %d, want 200", code)
	}
}
