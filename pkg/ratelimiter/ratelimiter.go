package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter is an in-memory sliding-window rate limiter keyed by an
// arbitrary string (here, the username attempting to sign in).
//
// It is safe for concurrent use. A background goroutine drops stale
// entries so the attempts map does not grow without bound; call Stop
// when the limiter is no longer needed.
type RateLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow records an attempt for key and reports whether it is within the
// configured limit. Attempts older than the window are discarded.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	valid := make([]time.Time, 0, len(rl.attempts[key]))
	for _, t := range rl.attempts[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.maxAttempts {
		rl.attempts[key] = valid
		return false
	}

	valid = append(valid, now)
	rl.attempts[key] = valid

	return true
}

// Reset clears recorded attempts for key, typically after a successful
// authentication.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.attempts, key)
}

// RetryAfter returns the number of seconds until the oldest still-valid
// attempt for key leaves the window. Returns 0 when the key is not limited.
func (rl *RateLimiter) RetryAfter(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)

	var oldest time.Time
	for _, t := range rl.attempts[key] {
		if t.After(cutoff) && (oldest.IsZero() || t.Before(oldest)) {
			oldest = t
		}
	}

	if oldest.IsZero() {
		return 0
	}

	remaining := time.Until(oldest.Add(rl.window))
	if remaining <= 0 {
		return 0
	}

	return int(remaining.Seconds()) + 1
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.window)
			for key, attempts := range rl.attempts {
				recent := false
				for _, t := range attempts {
					if t.After(cutoff) {
						recent = true
						break
					}
				}
				if !recent {
					delete(rl.attempts, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}
