// Copyright (c) tkc17.

package cli

import (
	"os"

	"github.com/spf13/cobra"

	svc "github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/cli/check"
	"github.com/tkc17/iw-parser/cli/monitor"
	"github.com/tkc17/iw-parser/cli/server"
	"github.com/tkc17/iw-parser/cli/service"
	"github.com/tkc17/iw-parser/cli/stations"
	"github.com/tkc17/iw-parser/cli/status"
	"github.com/tkc17/iw-parser/util"
)

var (
	rootCmd = &cobra.Command{
		Use:           "iwmon ...",
		Short:         "Command for the station monitor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Get Current Version",
		RunE:  versionCmdHandler,
	}
)

// Execute is the entry for the command.
func Execute() {
	monitor.SetupMonitorCommand(rootCmd)
	server.SetupServerCommand(rootCmd)
	check.SetupCheckCommand(rootCmd)
	stations.SetupStationsCommand(rootCmd)
	status.SetupStatusCommand(rootCmd)
	service.SetupServiceCommand(rootCmd)
	SetupTokenCommand(rootCmd)
	rootCmd.AddCommand(versionCmd)
	if err := rootCmd.Execute(); err != nil {
		util.ConsoleLogger().Errorf(svc.Context(), err.Error())
		os.Exit(1)
	}
}

func versionCmdHandler(cmd *cobra.Command, args []string) error {
	util.ConsoleLogger().Infof(svc.Context(), util.Version())
	return nil
}
