// Copyright (c) tkc17.

package scheduler

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/tkc17/iw-parser/app/executor"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "iwmon-scheduler-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("IWMON_HOME", tmpDir)
	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestScheduler(t *testing.T) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	executor.Init(ctx)
	Init(ctx)
	instance := GetInstance()
	interval := 200 * time.Millisecond
	// Buffered so late ticks after the loop below never block the handler.
	ch := make(chan int, 16)
	start := time.Now()
	instance.Schedule(ctx, interval, func(ctx context.Context) (any, error) {
		ch <- 1
		return nil, nil
	})
	count := 0
	maxCount := 3
loop:
	for {
		select {
		case <-ch:
			count++
			if count >= maxCount {
				break loop
			}
		case <-time.After(10 * time.Second):
			t.Fatalf("Timed out waiting for %d runs, got %d", maxCount, count)
		}
	}
	elapsedTime := time.Since(start)
	expectedMinTime := time.Duration(maxCount)*interval - time.Millisecond
	if elapsedTime < expectedMinTime {
		t.Fatalf("Elapsed time (%s) expected to be at least %s", elapsedTime, expectedMinTime)
	}

	// A handler that blocks past its next tick must not be started again.
	started := make(chan struct{}, 16)
	release := make(chan struct{})
	instance.Schedule(ctx, 50*time.Millisecond, func(ctx context.Context) (any, error) {
		started <- struct{}{}
		<-release
		return nil, nil
	})
	<-started
	select {
	case <-started:
		t.Fatalf("Expected overlapping run to be skipped")
	case <-time.After(200 * time.Millisecond):
	}
	close(release)

	cancelFunc()
	instance.WaitOnShutdown()
}
