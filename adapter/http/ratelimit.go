package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit allows Max requests per Window for each client address.
type RateLimit struct {
	Window  time.Duration
	Max     int
	Message string
}

type visitor struct {
	limiter *rate.Limiter
	seen    time.Time
}

// limiter keeps one token bucket per client address. Buckets refill at
// Max/Window and burst up to Max.
type limiter struct {
	RateLimit
	mux      sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func newLimiter(limit RateLimit) *limiter {
	return &limiter{RateLimit: limit, visitors: map[string]*visitor{}, now: time.Now}
}

func (l *limiter) enabled() bool {
	return l != nil && l.Window > 0 && l.Max > 0
}

func (l *limiter) allow(key string) bool {
	now := l.now()
	l.mux.Lock()
	defer l.mux.Unlock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(float64(l.Max)/l.Window.Seconds()), l.Max)}
		l.visitors[key] = v
	}
	v.seen = now
	allowed := v.limiter.AllowN(now, 1)
	l.evict(now)
	return allowed
}

// evict drops visitors idle for longer than two windows.
func (l *limiter) evict(now time.Time) {
	if len(l.visitors) < 1024 {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.seen) > 2*l.Window {
			delete(l.visitors, key)
		}
	}
}

// withRateLimit rejects requests over the limit with 429.
func withRateLimit(l *limiter, next http.Handler) http.Handler {
	if !l.enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientAddr(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.Window.Seconds())))
			write(w, http.StatusTooManyRequests, &apiResponse{Status: "ERROR", Message: l.Message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientAddr keys a request by the address appended by the single trusted
// proxy (rightmost X-Forwarded-For entry), or by the peer address.
func clientAddr(r *http.Request) string {
	if forwarded := r.Header.Values("X-Forwarded-For"); len(forwarded) > 0 {
		hops := strings.Split(forwarded[len(forwarded)-1], ",")
		if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
			return last
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
