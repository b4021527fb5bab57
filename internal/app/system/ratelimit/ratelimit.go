// Package ratelimit throttles login attempts with fixed per-key windows.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key inside a fixed window. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	now      func() time.Time

	// nextSweep bounds full sweeps to one per window.
	nextSweep time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per key every duration.
// Expired windows are swept lazily on Allow, at most once per duration, so no
// background goroutine runs.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		l.sweep(now)
		l.nextSweep = now.Add(l.duration)
	}
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many attempts key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.expiresAt) {
		return l.limit
	}
	if rem := l.limit - w.count; rem > 0 {
		return rem
	}
	return 0
}

// Reset forgets key, e.g. after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// sweep drops expired windows. Caller holds l.mu.
func (l *Limiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, k)
		}
	}
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles by client IP and by login name.
type LoginLimiter struct {
	ip    *Limiter
	login *Limiter
}

// NewLoginLimiter allows ipLimit attempts per IP and loginLimit attempts per
// login name within window.
func NewLoginLimiter(ipLimit, loginLimit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		ip:    New(ipLimit, window),
		login: New(loginLimit, window),
	}
}

// Check records an attempt and returns a client-facing reason when blocked.
func (ll *LoginLimiter) Check(r *http.Request, login string) (bool, string) {
	if !ll.ip.Allow(ClientIP(r)) {
		return false, "Too many login attempts. Please wait before trying again."
	}
	if key := strings.ToLower(strings.TrimSpace(login)); key != "" {
		if !ll.login.Allow(key) {
			return false, "Too many login attempts for this account. Please wait before trying again."
		}
	}
	return true, ""
}

// ResetLogin clears the per-login window after a successful login.
func (ll *LoginLimiter) ResetLogin(login string) {
	if key := strings.ToLower(strings.TrimSpace(login)); key != "" {
		ll.login.Reset(key)
	}
}
