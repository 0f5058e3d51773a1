// Copyright (c) tkc17.

package service

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	svc "github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/app/task/module"
	"github.com/tkc17/iw-parser/util"
)

var (
	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the agent systemd user service",
		Run:   startCmdHandler,
	}

	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Stop the agent systemd user service",
		Run:   stopCmdHandler,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the agent systemd user service status",
		Run:   statusCmdHandler,
	}
)

func SetupControlCommands(parentCmd *cobra.Command) {
	parentCmd.AddCommand(startCmd)
	parentCmd.AddCommand(stopCmd)
	parentCmd.AddCommand(statusCmd)
}

func requireInstalled(ctx context.Context) {
	installed, err := module.IsUserSystemd(serviceName)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to check the service - %s", err.Error())
	}
	if !installed {
		util.ConsoleLogger().
			Fatalf(ctx, "Service is not installed, run: iwmon service install --iface <iface>")
	}
}

func startCmdHandler(cmd *cobra.Command, args []string) {
	ctx := svc.Context()
	requireInstalled(ctx)
	logOut := util.NewBuffer(module.MaxBufferCapacity)
	if err := module.StartUserService(ctx, serviceName, logOut); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to start the service - %s", err.Error())
	}
	util.ConsoleLogger().Infof(ctx, "Started %s.service", serviceName)
}

func stopCmdHandler(cmd *cobra.Command, args []string) {
	ctx := svc.Context()
	requireInstalled(ctx)
	logOut := util.NewBuffer(module.MaxBufferCapacity)
	if err := module.StopUserService(ctx, serviceName, logOut); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to stop the service - %s", err.Error())
	}
	util.ConsoleLogger().Infof(ctx, "Stopped %s.service", serviceName)
}

func statusCmdHandler(cmd *cobra.Command, args []string) {
	ctx := svc.Context()
	installed, err := module.IsUserSystemd(serviceName)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to check the service - %s", err.Error())
	}
	if installed {
		out, err := module.UserServiceStatus(ctx, serviceName, nil /* logOut */)
		if err != nil {
			util.ConsoleLogger().Fatalf(ctx, "Unable to get the service status - %s", err.Error())
		}
		fmt.Println(out)
		return
	}
	// Without a unit file, fall back to looking for the process.
	running, err := module.IsProcessRunning(ctx, serviceName, nil /* logOut */)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to check the process - %s", err.Error())
	}
	if running {
		util.ConsoleLogger().Infof(ctx, "%s is running but not installed as a service", serviceName)
	} else {
		util.ConsoleLogger().Infof(ctx, "%s is not running", serviceName)
	}
}
