// Copyright (c) tkc17.

package module

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tkc17/iw-parser/backoff"
	"github.com/tkc17/iw-parser/util"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "iwmon-module-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("IWMON_HOME", tmpDir)
	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestRunShellCmd(t *testing.T) {
	ctx := context.Background()
	logOut := util.NewBuffer(MaxBufferCapacity)
	cmdInfo, err := RunShellCmd(ctx, "TestEcho", "echo -n hello", logOut)
	if err != nil {
		t.Fatalf("Error in running shell command - %s", err.Error())
	}
	if got := cmdInfo.StdOut.String(); got != "hello" {
		t.Fatalf("expected 'hello', found %q", got)
	}
	if !strings.Contains(logOut.String(), "TestEcho") {
		t.Fatalf("expected log output to mention the description")
	}
}

func TestRunShellCmdFailure(t *testing.T) {
	ctx := context.Background()
	cmdInfo, err := RunShellCmd(ctx, "TestFailure", "echo oops >&2; exit 3", nil)
	if err == nil {
		t.Fatalf("Expected error")
	}
	if got := cmdInfo.StdErr.String(); !strings.Contains(got, "oops") {
		t.Fatalf("expected stderr to contain 'oops', found %q", got)
	}
}

func TestRunShellCmdWithRetry(t *testing.T) {
	ctx := context.Background()
	marker := filepath.Join(t.TempDir(), "marker")
	// Fails on the first attempt and succeeds on the second.
	cmdStr := "test -f " + marker + " || { touch " + marker + "; exit 1; }"
	backOff := backoff.NewSimpleBackOff(10*time.Millisecond /* interval */, 3 /* max attempts */)
	_, err := RunShellCmdWithRetry(ctx, backOff, "TestRetry", cmdStr, nil)
	if err != nil {
		t.Fatalf("Error in running shell command with retry - %s", err.Error())
	}
}

func TestRunShellStepsWithRetry(t *testing.T) {
	ctx := context.Background()
	backOff := backoff.NewSimpleBackOff(10*time.Millisecond /* interval */, 2 /* max attempts */)
	steps := []struct {
		Desc string
		Cmd  string
	}{
		{"StepOne", "echo -n one"},
		{"StepTwo", "echo -n two"},
	}
	cmdInfos, err := RunShellStepsWithRetry(ctx, backOff, steps, nil)
	if err != nil {
		t.Fatalf("Error in running shell steps - %s", err.Error())
	}
	if len(cmdInfos) != 2 {
		t.Fatalf("expected 2 command infos, found %d", len(cmdInfos))
	}
	if got := cmdInfos[1].StdOut.String(); got != "two" {
		t.Fatalf("expected 'two', found %q", got)
	}
}

func TestRedactCommandArgs(t *testing.T) {
	cmdInfo := &CommandInfo{
		Cmd:  "curl",
		Args: []string{"--token", "secret-value", "--url", "http://localhost"},
	}
	redacted := cmdInfo.RedactCommandArgs()
	expected := []string{"--token", "REDACTED", "--url", "http://localhost"}
	if !reflect.DeepEqual(redacted, expected) {
		t.Fatalf("Expected: %v, got: %v", expected, redacted)
	}
}
