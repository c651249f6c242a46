// Package limiter paces requests to a remote API. It applies a small fixed
// delay between calls and honors Retry-After instructions from 429 responses.
package limiter

import (
	"context"
	"strconv"
	"sync"
	"time"
)

func New(delay time.Duration) *Limiter {
	return &Limiter{delay: delay}
}

type Limiter struct {
	mu     sync.Mutex
	delay  time.Duration
	nextAt time.Time
}

// Wait blocks until the next request is allowed, or until ctx is canceled.
func (lim *Limiter) Wait(ctx context.Context) error {
	lim.mu.Lock()
	nextAt := lim.nextAt
	lim.mu.Unlock()

	if nextAt.IsZero() || !nextAt.After(time.Now()) {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(nextAt)):
		return nil
	}
}

// SetNextAt schedules the next allowed request from a Retry-After header
// value, in whole seconds. An empty value waits one minute. A second of slop
// is added since Spotify's Retry-After rounds down.
func (lim *Limiter) SetNextAt(secondsStr string) error {
	if secondsStr == "" {
		secondsStr = "60"
	}
	seconds, err := strconv.ParseInt(secondsStr, 10, 64)
	if err != nil {
		return err
	}
	waitTime := time.Duration(seconds)*time.Second + time.Second

	lim.mu.Lock()
	lim.nextAt = time.Now().Add(waitTime)
	lim.mu.Unlock()

	return nil
}

// Delay schedules the next request one standard delay from now.
func (lim *Limiter) Delay() {
	lim.mu.Lock()
	lim.nextAt = time.Now().Add(lim.delay)
	lim.mu.Unlock()
}
