// Copyright (c) tkc17.

package task

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

const sysClassNetPath = "/sys/class/net"

// PreflightCheckHandler verifies the environment before monitoring
// starts. A missing iw binary is fatal while interface checks only
// warn because the interface can appear later.
type PreflightCheckHandler struct {
	iface       string
	iwPath      string
	sysClassNet string
	result      []model.PreflightCheck
}

// NewPreflightCheckHandler returns a new instance of PreflightCheckHandler.
func NewPreflightCheckHandler(iface, iwPath string) *PreflightCheckHandler {
	if iwPath == "" {
		iwPath = util.DefaultIwPath
	}
	return &PreflightCheckHandler{
		iface:       iface,
		iwPath:      iwPath,
		sysClassNet: sysClassNetPath,
	}
}

// TaskName returns the name of the task.
func (handler *PreflightCheckHandler) TaskName() string {
	return "preflightCheck"
}

// Result returns the checks from the last run.
func (handler *PreflightCheckHandler) Result() []model.PreflightCheck {
	return handler.result
}

// Process runs the checks and returns them. An error is returned only
// when a required check fails.
func (handler *PreflightCheckHandler) Process(ctx context.Context) ([]model.PreflightCheck, error) {
	checks := []model.PreflightCheck{
		handler.checkIwBinary(),
		handler.checkIfacePresent(),
		handler.checkIfaceWireless(),
	}
	handler.result = checks
	var failed error
	for _, check := range checks {
		if check.Ok {
			util.FileLogger().Infof(ctx, "Preflight check %s passed: %s", check.Name, check.Value)
			continue
		}
		if check.Required {
			util.FileLogger().Errorf(ctx, "Preflight check %s failed: %s", check.Name, check.Value)
			failed = &preflightError{check: check}
		} else {
			util.FileLogger().Warnf(ctx, "Preflight check %s failed: %s", check.Name, check.Value)
		}
	}
	if failed != nil {
		return checks, failed
	}
	return checks, nil
}

// Handler returns the executor handler for the task.
func (handler *PreflightCheckHandler) Handler() util.Handler {
	return util.Handler(func(ctx context.Context) (any, error) {
		return handler.Process(ctx)
	})
}

func (handler *PreflightCheckHandler) checkIwBinary() model.PreflightCheck {
	check := model.PreflightCheck{Name: "iw_binary", Required: true}
	path, err := exec.LookPath(handler.iwPath)
	if err != nil {
		check.Value = err.Error()
		return check
	}
	check.Value = path
	check.Ok = true
	return check
}

func (handler *PreflightCheckHandler) checkIfacePresent() model.PreflightCheck {
	check := model.PreflightCheck{Name: "iface_present"}
	_, err := os.Stat(filepath.Join(handler.sysClassNet, handler.iface))
	if err != nil {
		check.Value = err.Error()
		return check
	}
	check.Value = handler.iface
	check.Ok = true
	return check
}

func (handler *PreflightCheckHandler) checkIfaceWireless() model.PreflightCheck {
	check := model.PreflightCheck{Name: "iface_wireless"}
	_, err := os.Stat(filepath.Join(handler.sysClassNet, handler.iface, "wireless"))
	if err != nil {
		check.Value = err.Error()
		return check
	}
	check.Value = handler.iface
	check.Ok = true
	return check
}

type preflightError struct {
	check model.PreflightCheck
}

func (e *preflightError) Error() string {
	return "Preflight check " + e.check.Name + " failed: " + e.check.Value
}

// OutputPreflightChecks prints the checks as a table and returns false
// when a required check has failed.
func OutputPreflightChecks(checks []model.PreflightCheck) bool {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Preflight Check", "Value", "Required", "Result"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	allValid := true
	for _, check := range checks {
		if check.Ok {
			data := []string{check.Name, check.Value, strconv.FormatBool(check.Required), "Passed"}
			table.Rich(
				data,
				[]tablewriter.Colors{
					tablewriter.Colors{tablewriter.FgGreenColor},
					tablewriter.Colors{tablewriter.FgGreenColor},
					tablewriter.Colors{tablewriter.FgGreenColor},
					tablewriter.Colors{tablewriter.FgGreenColor},
				},
			)
		} else {
			if check.Required {
				allValid = false
			}
			data := []string{check.Name, check.Value, strconv.FormatBool(check.Required), "Failed"}
			table.Rich(data, []tablewriter.Colors{
				tablewriter.Colors{tablewriter.FgRedColor},
				tablewriter.Colors{tablewriter.FgRedColor},
				tablewriter.Colors{tablewriter.FgRedColor},
				tablewriter.Colors{tablewriter.FgRedColor},
			})
		}
	}
	table.Render()
	return allValid
}
