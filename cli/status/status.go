// Copyright (c) tkc17.

package status

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

const defaultRequestTimeoutSec = 30

var (
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the status of a running agent",
		Run:   statusCmdHandler,
	}
)

func SetupStatusCommand(parentCmd *cobra.Command) {
	statusCmd.PersistentFlags().
		String("addr", "", "Base URL of the agent, e.g. http://127.0.0.1:9041")
	statusCmd.PersistentFlags().String("token", "", "API token for the agent")
	parentCmd.AddCommand(statusCmd)
}

func statusCmdHandler(cmd *cobra.Command, args []string) {
	ctx := service.Context()
	config := util.CurrentConfig()
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading addr - %s", err.Error())
	}
	if addr == "" {
		bindIp := config.String(util.ServerBindIpKey)
		if bindIp == "" {
			bindIp = util.DefaultBindIp
		}
		port := config.String(util.ServerPortKey)
		if port == "" {
			port = util.DefaultPort
		}
		addr = fmt.Sprintf("http://%s:%s", bindIp, port)
	}
	token, err := cmd.Flags().GetString("token")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading token - %s", err.Error())
	}
	timeout := config.Int(util.RequestTimeoutKey)
	if timeout == 0 {
		timeout = defaultRequestTimeoutSec
	}
	client := util.NewHttpClient(timeout, addr)
	health := &model.Health{}
	if err = client.FetchJSON(ctx, "/healthz", "" /* token */, health); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Agent is not reachable at %s - %s", addr, err.Error())
	}
	rows := [][]string{
		{"Status", health.Status},
		{"Version", health.Version},
		{"Uptime", (time.Duration(health.UptimeSec) * time.Second).String()},
		{"Samples", strconv.FormatUint(health.Samples, 10)},
		{"Sample errors", strconv.FormatUint(health.SampleErrors, 10)},
		{"Disconnected samples", strconv.FormatUint(health.Disconnected, 10)},
	}
	if health.LastSampleAt != nil {
		rows = append(rows, []string{"Last sample at", health.LastSampleAt.Format(time.RFC3339)})
	}
	// The info endpoint sits behind auth when a secret is configured, so
	// its fields are shown only when the call succeeds.
	info := &model.AgentInfo{}
	if err = client.FetchJSON(ctx, "/api/v1/info", token, info); err != nil {
		util.FileLogger().Warnf(ctx, "Unable to fetch the agent info - %s", err.Error())
	} else {
		rows = append(
			rows,
			[]string{"Agent ID", info.AgentId},
			[]string{"Interface", info.Iface},
			[]string{"Interval", (time.Duration(info.IntervalSec) * time.Second).String()},
		)
		if info.CsvPath != "" {
			rows = append(rows, []string{"CSV file", info.CsvPath})
		}
		if info.ArchivePath != "" {
			rows = append(rows, []string{"Archive", info.ArchivePath})
		}
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
