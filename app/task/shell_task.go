// Copyright (c) tkc17.

package task

import (
	"context"
	"fmt"
	"os/exec"
	"sync/atomic"

	"github.com/tkc17/iw-parser/util"
)

const (
	// MaxBufferCapacity is the max number of bytes allowed in the buffer
	// before truncating the first bytes.
	MaxBufferCapacity = 1000000
)

// TaskStatus carries information about the task progress.
type TaskStatus struct {
	// Info is a buffer holding the command output.
	Info util.Buffer
	// ExitStatus is the final status of the task execution.
	ExitStatus *ExitStatus
}

// ExitStatus is the exit code and the error output of a command.
type ExitStatus struct {
	Code  int
	Error util.Buffer
}

// ShellTask handles command execution.
type ShellTask struct {
	// Name of the task.
	name     string
	cmd      string
	args     []string
	stdout   util.Buffer
	stderr   util.Buffer
	exitCode *atomic.Value
}

// NewShellTask returns a shell task executor.
func NewShellTask(name string, cmd string, args []string) *ShellTask {
	return &ShellTask{
		name:     name,
		cmd:      cmd,
		args:     args,
		exitCode: &atomic.Value{},
		stdout:   util.NewBuffer(MaxBufferCapacity),
		stderr:   util.NewBuffer(MaxBufferCapacity),
	}
}

// TaskName returns the name of the shell task.
func (s *ShellTask) TaskName() string {
	return s.name
}

// Process runs the command task.
func (s *ShellTask) Process(ctx context.Context) (*TaskStatus, error) {
	util.FileLogger().Debugf(ctx, "Starting the command - %s", s.name)
	taskStatus := &TaskStatus{Info: s.stdout, ExitStatus: &ExitStatus{Code: 1, Error: s.stderr}}
	cmd := exec.CommandContext(ctx, s.cmd, s.args...)
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	if util.FileLogger().IsDebugEnabled() {
		util.FileLogger().Debugf(ctx, "Running command %s with args %v", s.cmd, s.args)
	}
	err := cmd.Run()
	if err == nil {
		taskStatus.ExitStatus.Code = 0
		util.FileLogger().
			Debugf(ctx, "Command %s executed successfully - %s", s.name, s.stdout.String())
	} else {
		if exitErr, ok := err.(*exec.ExitError); ok {
			taskStatus.ExitStatus.Code = exitErr.ExitCode()
		}
		errMsg := fmt.Sprintf("%s: %s", err.Error(), s.stderr.String())
		util.FileLogger().Errorf(ctx, "Command %s execution failed - %s", s.name, errMsg)
	}
	s.exitCode.Store(taskStatus.ExitStatus.Code)
	return taskStatus, err
}

// Handler returns the executor handler for the task.
func (s *ShellTask) Handler() util.Handler {
	return util.Handler(func(ctx context.Context) (any, error) {
		return s.Process(ctx)
	})
}

// CurrentTaskStatus returns the status of a possibly running task.
func (s *ShellTask) CurrentTaskStatus() *TaskStatus {
	v := s.exitCode.Load()
	if v == nil {
		return &TaskStatus{
			Info: s.stdout,
		}
	}
	return &TaskStatus{
		Info: s.stdout,
		ExitStatus: &ExitStatus{
			Code:  v.(int),
			Error: s.stderr,
		},
	}
}

// String implements fmt.Stringer.
func (s *ShellTask) String() string {
	return s.cmd
}
