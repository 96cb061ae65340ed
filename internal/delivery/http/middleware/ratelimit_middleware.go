package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"radlab-backoffice/pkg/response"

	"golang.org/x/time/rate"
)

const limiterIdleTimeout = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a per-client token bucket keyed by remote IP.
// Idle entries are evicted in the background.
type RateLimitMiddleware struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go m.cleanupLoop()
	return m
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !m.limiterFor(ip).Allow() {
			response.Error(w, http.StatusTooManyRequests, "Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, ok := m.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

func (m *RateLimitMiddleware) cleanupLoop() {
	for range time.Tick(time.Minute) {
		m.mu.Lock()
		for ip, client := range m.clients {
			if time.Since(client.lastSeen) > limiterIdleTimeout {
				delete(m.clients, ip)
			}
		}
		m.mu.Unlock()
	}
}
