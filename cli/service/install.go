// Copyright (c) tkc17.

package service

import (
	"os"

	"github.com/spf13/cobra"

	svc "github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/app/task/module"
	"github.com/tkc17/iw-parser/util"
)

var (
	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install and enable the agent systemd user service",
		Run:   installCmdHandler,
	}

	uninstallCmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Stop and remove the agent systemd user service",
		Run:   uninstallCmdHandler,
	}
)

func SetupInstallCommand(parentCmd *cobra.Command) {
	installCmd.PersistentFlags().StringP("iface", "i", "", "Wireless interface to monitor")
	parentCmd.AddCommand(installCmd)
}

func SetupUninstallCommand(parentCmd *cobra.Command) {
	parentCmd.AddCommand(uninstallCmd)
}

func installCmdHandler(cmd *cobra.Command, args []string) {
	ctx := svc.Context()
	config := util.CurrentConfig()
	iface, err := config.StoreCommandFlagString(
		ctx,
		cmd,
		"iface",
		util.MonitorIfaceKey,
		nil,  /* defaultValue */
		true, /* isRequired */
		util.ValidateIfaceName,
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the interface name - %s", err.Error())
	}
	// The unit runs the binary installing it, from wherever it lives.
	binaryPath, err := os.Executable()
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to locate the iwmon binary - %s", err.Error())
	}
	values := map[string]any{
		"binary_path": binaryPath,
		"iface":       iface,
	}
	content, err := module.ServiceUnit(ctx, values)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to render the unit file - %s", err.Error())
	}
	logOut := util.NewBuffer(module.MaxBufferCapacity)
	if err = module.InstallUserService(ctx, serviceName, content, logOut); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to install the service - %s", err.Error())
	}
	util.ConsoleLogger().Infof(ctx, "Installed and enabled %s.service", serviceName)
	util.ConsoleLogger().Infof(ctx, "Start it with: iwmon service start")
}

func uninstallCmdHandler(cmd *cobra.Command, args []string) {
	ctx := svc.Context()
	logOut := util.NewBuffer(module.MaxBufferCapacity)
	if err := module.RemoveUserService(ctx, serviceName, logOut); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to remove the service - %s", err.Error())
	}
	util.ConsoleLogger().Infof(ctx, "Removed %s.service", serviceName)
}
