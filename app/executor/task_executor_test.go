// Copyright (c) tkc17.

package executor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "iwmon-executor-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("IWMON_HOME", tmpDir)
	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func testHandler(ctx context.Context) (any, error) {
	return "test", nil
}

func testHandlerSlowTask(ctx context.Context) (any, error) {
	time.Sleep(10 * time.Second)
	return "test", nil
}

func testHandlerFailure(ctx context.Context) (any, error) {
	return nil, fmt.Errorf("error")
}

func testHandlerPanic(ctx context.Context) (any, error) {
	panic("panic in task")
}

func TestExecutor(t *testing.T) {
	ctx := context.Background()
	instance := Init(ctx)
	future, err := instance.SubmitTask(ctx, testHandler)
	if err != nil {
		t.Errorf("Submitting task to the executor failed - %s", err.Error())
	}

	data, err := future.Get()
	if err != nil {
		t.Errorf("Future.Get() failed - %s", err.Error())
	}
	value, ok := data.(string)
	if !ok {
		t.Errorf("Future.Get() returned incorrect data type")
	}

	if value != "test" {
		t.Errorf("Result assertion failed.")
	}
	if future.State() != TaskSuccess {
		t.Errorf("Expected Success state, found %s", future.State())
	}
}

func TestExecutorFailure(t *testing.T) {
	ctx := context.Background()
	instance := Init(ctx)
	future, err := instance.SubmitTask(ctx, testHandlerFailure)
	if err != nil {
		t.Errorf("Submitting task to the executor failed - %s", err.Error())
	}
	_, err = future.Get()
	if err == nil {
		t.Errorf("Expected Failure")
	}
	if future.State() != TaskFailed {
		t.Errorf("Expected Failed state, found %s", future.State())
	}
}

func TestExecutorPanic(t *testing.T) {
	ctx := context.Background()
	instance := Init(ctx)
	future, err := instance.SubmitTask(ctx, testHandlerPanic)
	if err != nil {
		t.Errorf("Submitting task to the executor failed - %s", err.Error())
	}
	_, err = future.Get()
	if err == nil {
		t.Errorf("Expected Failure")
	}
	if !strings.Contains(err.Error(), "Panic") {
		t.Errorf("Expected panic error, found %s", err.Error())
	}
}

func TestExecutorCancel(t *testing.T) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	instance := Init(context.Background())

	future, err := instance.SubmitTask(ctx, testHandlerSlowTask)
	if err != nil {
		t.Errorf("Submitting task to the executor failed - %s", err.Error())
	}
	cancelFunc()
	_, err = future.Get()
	if err == nil {
		t.Errorf("Expected Failure")
	}

	if err.Error() != "Task is cancelled" {
		t.Errorf("Expected Canceled status")
	}
}

func TestExecuteTask(t *testing.T) {
	ctx := context.Background()
	instance := Init(ctx)
	data, err := instance.ExecuteTask(ctx, testHandler)
	if err != nil {
		t.Errorf("ExecuteTask failed - %s", err.Error())
	}
	if data != "test" {
		t.Errorf("Result assertion failed.")
	}
}
