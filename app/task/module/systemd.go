// Copyright (c) tkc17.

package module

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tkc17/iw-parser/backoff"
	"github.com/tkc17/iw-parser/util"
)

const (
	// UserSystemdUnitPath is the user-level unit directory relative to the
	// home directory.
	UserSystemdUnitPath = ".config/systemd/user"
)

var (
	SystemdBackOff = backoff.NewSimpleBackOff(2*time.Second /* interval */, 5 /* max attempts */)
)

// UserUnitDir returns the systemd user unit directory of the current user.
func UserUnitDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, UserSystemdUnitPath), nil
}

// UnitFilePath returns the path of the user-level unit file for the service.
func UnitFilePath(serverName string) (string, error) {
	unitDir, err := UserUnitDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(unitDir, unitFileName(serverName)), nil
}

func unitFileName(serverName string) string {
	if !strings.HasSuffix(serverName, ".service") && !strings.HasSuffix(serverName, ".timer") {
		serverName = serverName + ".service"
	}
	return serverName
}

// IsUserSystemd reports if a user-level unit file exists for the service.
func IsUserSystemd(serverName string) (bool, error) {
	path, err := UnitFilePath(serverName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// InstallUserService writes the unit file content and enables the service.
func InstallUserService(
	ctx context.Context,
	serverName, content string,
	logOut util.Buffer,
) error {
	unitDir, err := UserUnitDir()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(unitDir, 0755); err != nil {
		return err
	}
	unitPath := filepath.Join(unitDir, unitFileName(serverName))
	util.FileLogger().Infof(ctx, "Writing systemd unit file %s", unitPath)
	if logOut != nil {
		logOut.WriteLine("Writing systemd unit file %s", unitPath)
	}
	if err = os.WriteFile(unitPath, []byte(content), 0644); err != nil {
		return err
	}
	steps := []struct {
		Desc string
		Cmd  string
	}{
		{"ReloadSystemdDaemon", "systemctl --user daemon-reload"},
		{"EnableSystemdService", fmt.Sprintf("systemctl --user enable %s", serverName)},
	}
	_, err = RunShellStepsWithRetry(ctx, SystemdBackOff, steps, logOut)
	return err
}

// StartUserService starts the user-level service.
func StartUserService(ctx context.Context, serverName string, logOut util.Buffer) error {
	cmd := fmt.Sprintf("systemctl --user start %s", serverName)
	_, err := RunShellCmdWithRetry(ctx, SystemdBackOff, "StartSystemdService", cmd, logOut)
	return err
}

// StopUserService stops the user-level service.
func StopUserService(ctx context.Context, serverName string, logOut util.Buffer) error {
	cmd := fmt.Sprintf("systemctl --user stop %s", serverName)
	_, err := RunShellCmdWithRetry(ctx, SystemdBackOff, "StopSystemdService", cmd, logOut)
	return err
}

// RemoveUserService stops and disables the service, and removes its unit
// file.
func RemoveUserService(ctx context.Context, serverName string, logOut util.Buffer) error {
	steps := []struct {
		Desc string
		Cmd  string
	}{
		{"StopSystemdService", fmt.Sprintf("systemctl --user stop %s || true", serverName)},
		{"DisableSystemdService", fmt.Sprintf("systemctl --user disable %s || true", serverName)},
	}
	if _, err := RunShellStepsWithRetry(ctx, SystemdBackOff, steps, logOut); err != nil {
		return err
	}
	unitPath, err := UnitFilePath(serverName)
	if err != nil {
		return err
	}
	util.FileLogger().Infof(ctx, "Removing systemd unit file %s", unitPath)
	if logOut != nil {
		logOut.WriteLine("Removing systemd unit file %s", unitPath)
	}
	if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		util.FileLogger().
			Errorf(ctx, "Failed to remove systemd unit file %s - %s", unitPath, err.Error())
		if logOut != nil {
			logOut.WriteLine("Failed to remove systemd unit file %s - %s", unitPath, err.Error())
		}
		return err
	}
	cmd := "systemctl --user daemon-reload"
	_, err = RunShellCmdWithRetry(ctx, SystemdBackOff, "ReloadSystemdDaemon", cmd, logOut)
	return err
}

// UserServiceStatus returns the systemctl status output for the service.
// The command reports inactive services with a non-zero code, so the exit
// code is discarded.
func UserServiceStatus(
	ctx context.Context,
	serverName string,
	logOut util.Buffer,
) (string, error) {
	cmd := fmt.Sprintf("systemctl --user status %s --no-pager -l || true", serverName)
	cmdInfo, err := RunShellCmd(ctx, "SystemdServiceStatus", cmd, logOut)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(cmdInfo.StdOut.String()), nil
}

// IsProcessRunning checks if a process with the given name is running.
func IsProcessRunning(ctx context.Context, process string, logOut util.Buffer) (bool, error) {
	cmd := fmt.Sprintf("pgrep -lx %s 2>/dev/null || true", process)
	cmdInfo, err := RunShellCmd(ctx, "CheckRunningProcess", cmd, logOut)
	if err != nil {
		util.FileLogger().
			Errorf(ctx, "Failed to check if process is running: %s - %s", process, err.Error())
		if logOut != nil {
			logOut.WriteLine("Failed to check if process is running: %s - %s", process, err.Error())
		}
		return false, err
	}
	stdOut := cmdInfo.StdOut.String()
	util.FileLogger().Infof(ctx, "Process %s state: %s", process, stdOut)
	if logOut != nil {
		logOut.WriteLine("Process %s state: %s", process, stdOut)
	}
	return strings.Contains(stdOut, process), nil
}
