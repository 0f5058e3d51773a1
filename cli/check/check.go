// Copyright (c) tkc17.

package check

import (
	"github.com/spf13/cobra"

	"github.com/tkc17/iw-parser/app/executor"
	"github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/app/task"
	"github.com/tkc17/iw-parser/util"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Run the preflight checks for the monitor",
		Run:   checkCmdHandler,
	}
)

func SetupCheckCommand(parentCmd *cobra.Command) {
	checkCmd.PersistentFlags().StringP("iface", "i", "", "Wireless interface to check")
	checkCmd.PersistentFlags().String("iw_path", "", "Path to the iw binary")
	parentCmd.AddCommand(checkCmd)
}

func checkCmdHandler(cmd *cobra.Command, args []string) {
	ctx := service.Context()
	config := util.CurrentConfig()
	iface, err := cmd.Flags().GetString("iface")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading iface - %s", err.Error())
	}
	if iface == "" {
		iface = config.String(util.MonitorIfaceKey)
	}
	if iface == "" {
		util.ConsoleLogger().Fatalf(ctx, "Value for flag iface is not set")
	}
	iface, err = util.ValidateIfaceName(iface)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Invalid interface name - %s", err.Error())
	}
	iwPath, err := cmd.Flags().GetString("iw_path")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading iw_path - %s", err.Error())
	}
	if iwPath == "" {
		iwPath = config.String(util.MonitorIwPathKey)
	}
	executor.Init(ctx)
	handler := task.NewPreflightCheckHandler(iface, iwPath)
	// The task returns an error when a required check fails, but the
	// collected checks are still reported below.
	if _, err = executor.GetInstance().ExecuteTask(ctx, handler.Handler()); err != nil {
		util.FileLogger().Errorf(ctx, "Preflight checks failed - %s", err.Error())
	}
	results := handler.Result()
	if len(results) == 0 {
		util.ConsoleLogger().Fatalf(ctx, "Task execution failed - %s", err.Error())
	}
	if !task.OutputPreflightChecks(results) {
		util.ConsoleLogger().Fatal(ctx, "Preflight checks failed")
	}
}
