package authhandlers

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Black-And-White-Club/party-bracket/pkg/events"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"golang.org/x/time/rate"
)

// CodeRateLimited is the reply code for throttled devices.
const CodeRateLimited = "RATE_LIMITED"

const (
	// pruneAfter is how many devices are tracked before idle buckets are dropped.
	pruneAfter = 500
	// deviceIdle is how long a device may stay quiet before its bucket is dropped.
	deviceIdle = 10 * time.Minute
)

type deviceBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

// DeviceLimiter throttles HTTP traffic per client address. Devices at a party usually share
// one network, so the burst should cover a room joining at once.
type DeviceLimiter struct {
	mu      sync.Mutex
	buckets map[string]*deviceBucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewDeviceLimiter allows rps requests per second per address with the given burst.
func NewDeviceLimiter(rps float64, burst int) *DeviceLimiter {
	return &DeviceLimiter{
		buckets: make(map[string]*deviceBucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow spends one token from addr's bucket.
func (l *DeviceLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) > pruneAfter {
		l.prune(now.Add(-deviceIdle))
	}

	b, ok := l.buckets[addr]
	if !ok {
		b = &deviceBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[addr] = b
	}
	b.seen = now
	return b.limiter.AllowN(now, 1)
}

// Tracked is the number of addresses holding a bucket.
func (l *DeviceLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *DeviceLimiter) prune(cutoff time.Time) {
	for addr, b := range l.buckets {
		if b.seen.Before(cutoff) {
			delete(l.buckets, addr)
		}
	}
}

// clientAddr is the request's host without the port. chi's RealIP runs first, so proxies are
// already unwrapped.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Throttle rejects requests over the device's budget with a RATE_LIMITED reply.
func Throttle(limiter *DeviceLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := clientAddr(r)
			if !limiter.Allow(addr) {
				logger.WarnContext(r.Context(), "Device throttled",
					attr.String("client_addr", addr),
					attr.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, events.Failure(CodeRateLimited, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AllowOrigins answers browser devices served from one of origins. Session requests carry the
// seat proof in the body, so only POST with a JSON content type is advertised. An empty list
// adds no headers.
func AllowOrigins(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimSuffix(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				w.Header().Add("Vary", "Origin")
			}
			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "600")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
