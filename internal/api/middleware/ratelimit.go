package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
)

const (
	defaultBurst      = 5
	msgTooManyRequest = "Too many requests, try again later"
)

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	limiters sync.Map // ключ клиента -> *clientLimiter
	rps      float64
	burst    int
	logger   Logger
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nano
}

func (c *clientLimiter) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}

// NewRateLimiter создает лимитер; rps <= 0 отключает ограничение
func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	return &RateLimiter{
		rps:    rps,
		burst:  burst,
		logger: logger,
		now:    time.Now,
	}
}

// Middleware отвечает 429, когда клиент исчерпал лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := clientKey(r)
		if !l.getLimiter(key).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded for client=%s", r.Method, r.URL.Path, key)
			handlers.RespondTooManyRequests(w, msgTooManyRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := l.now()
	if v, ok := l.limiters.Load(key); ok {
		c := v.(*clientLimiter)
		c.touch(now)
		return c.limiter
	}

	c := &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
	c.touch(now)
	actual, loaded := l.limiters.LoadOrStore(key, c)
	if loaded {
		c = actual.(*clientLimiter)
		c.touch(now)
	}
	return c.limiter
}

// Cleanup удаляет лимитеры клиентов, не обращавшихся дольше idle, возвращает число удалённых
func (l *RateLimiter) Cleanup(idle time.Duration) int {
	cutoff := l.now().Add(-idle).UnixNano()

	removed := 0
	l.limiters.Range(func(key, value interface{}) bool {
		if value.(*clientLimiter).lastSeen.Load() < cutoff {
			l.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// RunCleanup периодически вызывает Cleanup до отмены контекста
func (l *RateLimiter) RunCleanup(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := l.Cleanup(idle); removed > 0 {
				l.logger.Info("Rate limiter: evicted %d idle clients", removed)
			}
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
