// Copyright (c) tkc17.

package backoff

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoRetriesUntilSuccess(t *testing.T) {
	ctx := context.Background()
	backOff := NewSimpleBackOff(time.Millisecond, 10)
	count := 0
	err := Do(ctx, backOff, func(attempt int) error {
		count++
		if attempt < 3 {
			return errors.New("transient failure")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success - %s", err.Error())
	}
	if count != 3 {
		t.Fatalf("Expected 3 attempts, found %d", count)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	ctx := context.Background()
	backOff := NewSimpleBackOff(time.Millisecond, 3)
	count := 0
	err := Do(ctx, backOff, func(attempt int) error {
		count++
		return errors.New("persistent failure")
	})
	if err == nil {
		t.Fatalf("Expected error after exhausting attempts")
	}
	if count != 3 {
		t.Fatalf("Expected 3 attempts, found %d", count)
	}
}

func TestDoStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backOff := NewSimpleBackOff(time.Minute, 10)
	count := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := Do(ctx, backOff, func(attempt int) error {
		count++
		return errors.New("failure")
	})
	if err == nil {
		t.Fatalf("Expected error on context cancel")
	}
	if count != 1 {
		t.Fatalf("Expected 1 attempt, found %d", count)
	}
}

func TestExponentialBackOff(t *testing.T) {
	backOff := NewExponentialBackOff(time.Second, 4*time.Second, 10)
	expected := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		4 * time.Second,
	}
	for i, want := range expected {
		if got := backOff.NextBackOff(i + 1); got != want {
			t.Fatalf("attempt %d: expected %s, found %s", i+1, want, got)
		}
	}
	if got := backOff.NextBackOff(10); got >= 0 {
		t.Fatalf("Expected negative backoff after max attempts, found %s", got)
	}
	backOff.Reset()
	if got := backOff.NextBackOff(1); got != time.Second {
		t.Fatalf("Expected %s after reset, found %s", time.Second, got)
	}
}
