// Copyright (c) tkc17.

package module

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/tkc17/iw-parser/backoff"
	"github.com/tkc17/iw-parser/util"
)

const (
	// MaxBufferCapacity is the max number of bytes allowed in the buffer
	// before truncating the first bytes.
	MaxBufferCapacity = 1000000
)

// Parameters in the command that should be redacted.
var redactParams = map[string]bool{
	"jwt":      true,
	"token":    true,
	"password": true,
}

// CommandInfo holds command information.
type CommandInfo struct {
	Desc   string
	Cmd    string
	Args   []string
	StdOut util.Buffer
	StdErr util.Buffer
}

// RedactCommandArgs redacts the command arguments and returns them.
func (cmdInfo *CommandInfo) RedactCommandArgs() []string {
	redacted := []string{}
	redactValue := false
	for _, param := range cmdInfo.Args {
		if strings.HasPrefix(param, "-") {
			if _, ok := redactParams[strings.TrimLeft(param, "-")]; ok {
				redactValue = true
			} else {
				redactValue = false
			}
			redacted = append(redacted, param)
		} else if redactValue {
			redacted = append(redacted, "REDACTED")
		} else {
			redacted = append(redacted, param)
		}
	}
	return redacted
}

// RunCmd runs the command in the command info.
func (cmdInfo *CommandInfo) RunCmd(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, cmdInfo.Cmd, cmdInfo.Args...)
	cmd.Env = os.Environ()
	if cmdInfo.StdOut != nil {
		cmd.Stdout = cmdInfo.StdOut
	}
	if cmdInfo.StdErr != nil {
		cmd.Stderr = cmdInfo.StdErr
	}
	return cmd.Run()
}

// RunShellCmd runs a shell command and captures its output.
func RunShellCmd(
	ctx context.Context,
	desc, cmdStr string,
	logOut util.Buffer,
) (*CommandInfo, error) {
	cmdInfo := &CommandInfo{
		Desc:   desc,
		Cmd:    util.DefaultShell,
		Args:   []string{"-c", cmdStr},
		StdOut: util.NewBuffer(MaxBufferCapacity),
		StdErr: util.NewBuffer(MaxBufferCapacity),
	}
	if logOut != nil {
		logOut.WriteLine("Running shell command for %s", desc)
	}
	err := cmdInfo.RunCmd(ctx)
	if err != nil {
		errMsg := fmt.Sprintf("%s - %s", err.Error(), cmdInfo.StdErr.String())
		util.FileLogger().
			Errorf(ctx, "Failed to run shell command for %s: %s", desc, errMsg)
		if logOut != nil {
			logOut.WriteLine("Failed to run shell command for %s: %s", desc, errMsg)
		}
	}
	return cmdInfo, err
}

// RunShellCmdWithRetry runs a shell command with retries on failure.
func RunShellCmdWithRetry(
	ctx context.Context,
	backOff backoff.BackOff,
	desc, cmdStr string,
	logOut util.Buffer,
) (*CommandInfo, error) {
	var cmdInfo *CommandInfo
	var err error
	if err = backoff.Do(ctx, backOff, func(attempt int) error {
		util.FileLogger().Infof(ctx, "Running %s command: %s", desc, cmdStr)
		if logOut != nil {
			logOut.WriteLine("Running %s command: %s", desc, cmdStr)
		}
		cmdInfo, err = RunShellCmd(ctx, desc, cmdStr, logOut)
		if err != nil {
			util.FileLogger().Errorf(ctx, "Failed to run %s command: %s - %s", desc, cmdStr, err.Error())
			if logOut != nil {
				logOut.WriteLine("Failed to run %s command: %s - %s", desc, cmdStr, err.Error())
			}
			return err
		}
		util.FileLogger().Infof(ctx, "%s command %s succeeded in %d attempts", desc, cmdStr, attempt)
		if logOut != nil {
			logOut.WriteLine("%s command %s succeeded in %d attempts", desc, cmdStr, attempt)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return cmdInfo, nil
}

// RunShellStepsWithRetry runs a list of shell command steps with retries and
// logs the output.
func RunShellStepsWithRetry(
	ctx context.Context,
	backOff backoff.BackOff,
	steps []struct {
		Desc string
		Cmd  string
	},
	logOut util.Buffer,
) ([]*CommandInfo, error) {
	cmdInfos := make([]*CommandInfo, len(steps))
	for i, step := range steps {
		cmdInfo, err := RunShellCmdWithRetry(ctx, backOff, step.Desc, step.Cmd, logOut)
		if err != nil {
			return cmdInfos, err
		}
		cmdInfos[i] = cmdInfo
	}
	return cmdInfos, nil
}
