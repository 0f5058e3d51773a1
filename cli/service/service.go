// Copyright (c) tkc17.

package service

import (
	"github.com/spf13/cobra"
)

// Name of the managed systemd unit.
const serviceName = "iwmon"

var (
	serviceCmd = &cobra.Command{
		Use:   "service ...",
		Short: "Manage the agent as a systemd user service",
	}
)

func SetupServiceCommand(parentCmd *cobra.Command) {
	SetupInstallCommand(serviceCmd)
	SetupUninstallCommand(serviceCmd)
	SetupControlCommands(serviceCmd)
	parentCmd.AddCommand(serviceCmd)
}
