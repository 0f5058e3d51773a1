// Copyright (c) tkc17.

package monitor

import (
	"github.com/spf13/cobra"

	"github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/util"
)

const defaultIntervalSec = 2

var (
	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Monitor station stats on an interface and append them to a CSV file",
		Run:   monitorCmdHandler,
	}
)

func SetupMonitorCommand(parentCmd *cobra.Command) {
	monitorCmd.PersistentFlags().StringP("iface", "i", "", "Wireless interface to monitor")
	monitorCmd.PersistentFlags().StringP("output", "o", "", "Output CSV file path")
	monitorCmd.PersistentFlags().
		IntP("interval", "t", 0, "Sampling interval in seconds (default 2)")
	monitorCmd.PersistentFlags().String("iw_path", "", "Path to the iw binary")
	parentCmd.AddCommand(monitorCmd)
}

func monitorCmdHandler(cmd *cobra.Command, args []string) {
	ctx := service.Context()
	config := util.CurrentConfig()
	_, err := config.StoreCommandFlagString(
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
	_, err = config.StoreCommandFlagString(
		ctx,
		cmd,
		"output",
		util.MonitorOutputKey,
		nil,  /* defaultValue */
		true, /* isRequired */
		nil,  /* validator */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the output path - %s", err.Error())
	}
	defaultInterval := defaultIntervalSec
	_, err = config.StoreCommandFlagInt(
		ctx,
		cmd,
		"interval",
		util.MonitorIntervalKey,
		&defaultInterval,
		true, /* isRequired */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the sampling interval - %s", err.Error())
	}
	defaultIwPath := util.DefaultIwPath
	_, err = config.StoreCommandFlagString(
		ctx,
		cmd,
		"iw_path",
		util.MonitorIwPathKey,
		&defaultIwPath,
		false, /* isRequired */
		nil,   /* validator */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the iw path - %s", err.Error())
	}
	service.Start(false /* serverMode */)
}
