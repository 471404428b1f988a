package webui

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wmlab/robustwm/internal/utils"
)

// bucket is a token bucket for one client. Watermarking and editing are
// expensive on the backend side, so proxied stage requests are throttled
// per client before they are forwarded.
type bucket struct {
	tokens   float64
	lastTime time.Time
	mu       sync.Mutex
}

func (b *bucket) allow(rate float64, burst float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastTime).Seconds() * rate
	b.lastTime = now

	if b.tokens > burst {
		b.tokens = burst
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// throttle limits proxied backend requests per client IP.
type throttle struct {
	rate    float64
	burst   int
	buckets map[string]*bucket
	mu      sync.Mutex
}

func newThrottle(rate float64, burst int) *throttle {
	return &throttle{
		rate:    rate,
		burst:   burst,
		buckets: make(map[string]*bucket),
	}
}

func (t *throttle) bucketFor(clientID string) *bucket {
	t.mu.Lock()
	defer t.mu.Unlock()

	// One-shot clients accumulate; reset the map instead of tracking
	// last access per bucket.
	if len(t.buckets) > 10000 {
		log.Warn().Msg("Throttle table growing too large, resetting")
		t.buckets = make(map[string]*bucket)
	}

	b, exists := t.buckets[clientID]
	if !exists {
		b = &bucket{tokens: float64(t.burst), lastTime: time.Now()}
		t.buckets[clientID] = b
	}
	return b
}

// middleware rejects requests over the per-client rate with 429. RealIP runs
// earlier in the chain, so RemoteAddr identifies the client.
func (t *throttle) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.bucketFor(r.RemoteAddr).allow(t.rate, float64(t.burst)) {
			log.Warn().
				Str("client", r.RemoteAddr).
				Str("path", r.URL.Path).
				Msg("Proxied request throttled")
			utils.Error(w, http.StatusTooManyRequests, "rate_limited", "Too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
