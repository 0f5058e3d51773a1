// Copyright (c) tkc17.

package server

import (
	"context"

	"github.com/spf13/cobra"

	svc "github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/util"
)

const defaultIntervalSec = 2

var (
	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the monitor agent with the HTTP API",
		Run:   startServerHandler,
	}
)

func SetupStartCommand(parentCmd *cobra.Command) {
	startCmd.PersistentFlags().StringP("iface", "i", "", "Wireless interface to monitor")
	startCmd.PersistentFlags().StringP("output", "o", "", "Output CSV file path")
	startCmd.PersistentFlags().
		IntP("interval", "t", 0, "Sampling interval in seconds (default 2)")
	startCmd.PersistentFlags().String("iw_path", "", "Path to the iw binary")
	startCmd.PersistentFlags().String("bind_ip", "", "Bind IP of the HTTP API")
	startCmd.PersistentFlags().StringP("port", "p", "", "Port of the HTTP API")
	startCmd.PersistentFlags().Int("max_conns", 0, "Max concurrent API connections (0 for no limit)")
	startCmd.PersistentFlags().Bool("archive", false, "Keep samples in the local archive")
	startCmd.PersistentFlags().
		Int("retention_days", 0, "Days to keep archived samples (0 keeps all)")
	startCmd.PersistentFlags().
		String("auth_secret_file", "", "Path of the API auth secret file")
	parentCmd.AddCommand(startCmd)
}

func startServerHandler(cmd *cobra.Command, args []string) {
	ctx := svc.Context()
	storeServerFlags(ctx, cmd)
	svc.Start(true /* serverMode */)
}

func storeServerFlags(ctx context.Context, cmd *cobra.Command) {
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
		nil,   /* defaultValue */
		false, /* isRequired */
		nil,   /* validator */
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
	defaultBindIp := util.DefaultBindIp
	_, err = config.StoreCommandFlagString(
		ctx,
		cmd,
		"bind_ip",
		util.ServerBindIpKey,
		&defaultBindIp,
		true, /* isRequired */
		nil,  /* validator */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the bind IP - %s", err.Error())
	}
	defaultPort := util.DefaultPort
	_, err = config.StoreCommandFlagString(
		ctx,
		cmd,
		"port",
		util.ServerPortKey,
		&defaultPort,
		true, /* isRequired */
		nil,  /* validator */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the port - %s", err.Error())
	}
	_, err = config.StoreCommandFlagInt(
		ctx,
		cmd,
		"max_conns",
		util.ServerMaxConnsKey,
		nil,   /* defaultValue */
		false, /* isRequired */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the max connections - %s", err.Error())
	}
	_, err = config.StoreCommandFlagBool(ctx, cmd, "archive", util.ArchiveEnabledKey)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the archive setting - %s", err.Error())
	}
	_, err = config.StoreCommandFlagInt(
		ctx,
		cmd,
		"retention_days",
		util.ArchiveRetentionKey,
		nil,   /* defaultValue */
		false, /* isRequired */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the retention days - %s", err.Error())
	}
	_, err = config.StoreCommandFlagString(
		ctx,
		cmd,
		"auth_secret_file",
		util.ServerAuthSecretKey,
		nil,   /* defaultValue */
		false, /* isRequired */
		nil,   /* validator */
	)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Unable to store the auth secret path - %s", err.Error())
	}
}
