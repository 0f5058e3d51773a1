/*
 * Copyright (c) tkc17.
 */
package task

import (
	"context"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "iwmon-task-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("IWMON_HOME", tmpDir)
	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestShellTaskProcess(t *testing.T) {
	testShellTask := NewShellTask("test_echo", "echo", []string{"test"})
	ctx := context.Background()
	result, err := testShellTask.Process(ctx)
	if err != nil {
		t.Fatalf("Error while running shell task - %s", err.Error())
	}
	if result.Info.String() != "test\n" {
		t.Fatalf("Unexpected result %q", result.Info.String())
	}
	if result.ExitStatus.Code != 0 {
		t.Fatalf("Expected exit code 0, found %d", result.ExitStatus.Code)
	}
}

func TestShellTaskProcessFailure(t *testing.T) {
	testShellTask := NewShellTask("test_false", "false", []string{})
	ctx := context.Background()
	result, err := testShellTask.Process(ctx)
	if err == nil {
		t.Fatalf("Expected error for failing command")
	}
	if result.ExitStatus.Code == 0 {
		t.Fatalf("Expected non-zero exit code")
	}
}

func TestShellTaskProcessMissingBinary(t *testing.T) {
	testShellTask := NewShellTask("test_missing", "/nonexistent/iwmon-binary", []string{})
	ctx := context.Background()
	_, err := testShellTask.Process(ctx)
	if err == nil {
		t.Fatalf("Expected error for missing binary")
	}
}

func TestShellTaskCurrentTaskStatus(t *testing.T) {
	testShellTask := NewShellTask("test_echo", "echo", []string{"status"})
	status := testShellTask.CurrentTaskStatus()
	if status.ExitStatus != nil {
		t.Fatalf("Expected no exit status before run")
	}
	ctx := context.Background()
	if _, err := testShellTask.Process(ctx); err != nil {
		t.Fatalf("Error while running shell task - %s", err.Error())
	}
	status = testShellTask.CurrentTaskStatus()
	if status.ExitStatus == nil || status.ExitStatus.Code != 0 {
		t.Fatalf("Expected exit code 0 after run")
	}
}
