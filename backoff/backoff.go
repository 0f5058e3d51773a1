// Copyright (c) tkc17.

package backoff

import (
	"context"
	"time"
)

// BackOff interface for managing retry delays and limits.
type BackOff interface {
	// NextBackOff returns the next backoff duration.
	// A negative duration stops the retries.
	NextBackOff(attempt int) time.Duration
	// Reset resets the backoff state.
	Reset()
}

// Do executes a function with retries and backoff.
func Do(ctx context.Context, backOff BackOff, fn func(int) error) error {
	for attempt := 1; ; attempt++ {
		if err := fn(attempt); err != nil {
			nextBackOff := backOff.NextBackOff(attempt)
			if nextBackOff < 0 {
				return err
			}
			select {
			case <-time.After(nextBackOff):
				continue
			case <-ctx.Done():
				return err
			}
		}
		return nil
	}
}

// SimpleBackOff is a constant backoff implementation of the BackOff interface.
type SimpleBackOff struct {
	interval   time.Duration
	maxAttempt int
}

// NewSimpleBackOff creates a new SimpleBackOff.
func NewSimpleBackOff(interval time.Duration, maxAttempt int) *SimpleBackOff {
	return &SimpleBackOff{interval: interval, maxAttempt: maxAttempt}
}

// NextBackOff implements BackOff.
func (b *SimpleBackOff) NextBackOff(attempt int) time.Duration {
	if attempt >= b.maxAttempt {
		return -1
	}
	return b.interval
}

// Reset implements BackOff.
func (b *SimpleBackOff) Reset() {
}

// ExponentialBackOff doubles the delay after every attempt
// up to the max interval.
type ExponentialBackOff struct {
	interval    time.Duration
	maxInterval time.Duration
	maxAttempt  int
	current     time.Duration
}

// NewExponentialBackOff creates a new ExponentialBackOff.
func NewExponentialBackOff(
	interval time.Duration,
	maxInterval time.Duration,
	maxAttempt int,
) *ExponentialBackOff {
	return &ExponentialBackOff{
		interval:    interval,
		maxInterval: maxInterval,
		maxAttempt:  maxAttempt,
	}
}

// NextBackOff implements BackOff.
func (b *ExponentialBackOff) NextBackOff(attempt int) time.Duration {
	if attempt >= b.maxAttempt {
		return -1
	}
	if b.current == 0 {
		b.current = b.interval
	} else {
		b.current *= 2
		if b.current > b.maxInterval {
			b.current = b.maxInterval
		}
	}
	return b.current
}

// Reset implements BackOff.
func (b *ExponentialBackOff) Reset() {
	b.current = 0
}
