package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedEngine(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(NewRateLimiter(rps, burst, KeyByIP()).Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hitFrom(r *gin.Engine, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_ExhaustedBucketAnswers429(t *testing.T) {
	// No replenishment: the bucket holds exactly two tokens.
	r := limitedEngine(0, 2)

	for i := 0; i < 2; i++ {
		if w := hitFrom(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, w.Code)
		}
	}

	w := hitFrom(r, "10.0.0.1:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}
	var env struct {
		OK    bool `json:"ok"`
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", w.Body.String(), err)
	}
	if env.OK || env.Error.Code != "RATE_LIMITED" || env.Error.RequestID == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestRateLimiter_BucketsAreIndependentPerIP(t *testing.T) {
	r := limitedEngine(0, 1)

	if w := hitFrom(r, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("first ip: got %d", w.Code)
	}
	if w := hitFrom(r, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first ip second hit: got %d", w.Code)
	}
	// A different client is unaffected by the first client's exhaustion.
	if w := hitFrom(r, "10.0.0.2:1234"); w.Code != http.StatusOK {
		t.Fatalf("second ip: got %d", w.Code)
	}
}

func TestNewRateLimiter_CoercesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByIP())
	if rl.burst != 1 {
		t.Fatalf("expected burst coerced to 1, got %d", rl.burst)
	}
}
