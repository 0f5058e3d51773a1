// Copyright (c) tkc17.

package stations

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	funk "github.com/thoas/go-funk"

	"github.com/tkc17/iw-parser/app/executor"
	"github.com/tkc17/iw-parser/app/recorder"
	"github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/app/task"
	"github.com/tkc17/iw-parser/iw"
	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

const defaultRequestTimeoutSec = 30

var outputFormats = []string{"table", "csv", "json"}

// Columns shown in the table output. The full stat set is available
// with the csv and json formats.
var tableColumns = []string{
	"signal",
	"signal avg",
	"tx bitrate",
	"rx bitrate",
	"rx bytes",
	"tx bytes",
	"connected time",
}

var (
	stationsCmd = &cobra.Command{
		Use:   "stations",
		Short: "Dump the current station stats once",
		Run:   stationsCmdHandler,
	}
)

func SetupStationsCommand(parentCmd *cobra.Command) {
	stationsCmd.PersistentFlags().StringP("iface", "i", "", "Wireless interface to dump")
	stationsCmd.PersistentFlags().String("iw_path", "", "Path to the iw binary")
	stationsCmd.PersistentFlags().
		StringP("format", "f", "table", "Output format: table, csv or json")
	stationsCmd.PersistentFlags().
		String("remote", "", "Base URL of a running agent, e.g. http://127.0.0.1:9041")
	stationsCmd.PersistentFlags().String("token", "", "API token for the remote agent")
	parentCmd.AddCommand(stationsCmd)
}

func stationsCmdHandler(cmd *cobra.Command, args []string) {
	ctx := service.Context()
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading format - %s", err.Error())
	}
	if !funk.ContainsString(outputFormats, format) {
		util.ConsoleLogger().Fatalf(
			ctx,
			"Unknown format %s, expected one of %s",
			format,
			strings.Join(outputFormats, ", "),
		)
	}
	remote, err := cmd.Flags().GetString("remote")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading remote - %s", err.Error())
	}
	var sample *model.Sample
	if remote != "" {
		sample = fetchRemoteSample(ctx, cmd, remote)
	} else {
		sample = dumpLocalSample(ctx, cmd)
	}
	switch format {
	case "csv":
		outputCsv(ctx, sample)
	case "json":
		outputJson(ctx, sample)
	default:
		outputTable(sample)
	}
}

func dumpLocalSample(ctx context.Context, cmd *cobra.Command) *model.Sample {
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
	dumpTask := task.NewStationDumpTask(iface, iwPath)
	data, err := executor.GetInstance().ExecuteTask(ctx, dumpTask.Handler())
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Station dump failed - %s", err.Error())
	}
	return data.(*model.Sample)
}

func fetchRemoteSample(
	ctx context.Context,
	cmd *cobra.Command,
	baseUrl string,
) *model.Sample {
	token, err := cmd.Flags().GetString("token")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading token - %s", err.Error())
	}
	timeout := util.CurrentConfig().Int(util.RequestTimeoutKey)
	if timeout == 0 {
		timeout = defaultRequestTimeoutSec
	}
	client := util.NewHttpClient(timeout, baseUrl)
	sample := &model.Sample{}
	if err := client.FetchJSON(ctx, "/api/v1/stations", token, sample); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in fetching stations - %s", err.Error())
	}
	return sample
}

func outputTable(sample *model.Sample) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(append([]string{"BSSID"}, tableColumns...))
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	if sample.Connected {
		for _, station := range sample.Stations {
			row := []string{station.MAC}
			for _, column := range tableColumns {
				row = append(row, station.Value(column))
			}
			table.Append(row)
		}
	} else {
		row := make([]string, len(tableColumns)+1)
		row[0] = model.DisconnectedBSSID
		table.Append(row)
	}
	table.Render()
}

func outputCsv(ctx context.Context, sample *model.Sample) {
	writer := csv.NewWriter(os.Stdout)
	if err := writer.Write(iw.CSVHeader()); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in writing CSV - %s", err.Error())
	}
	if err := writer.WriteAll(recorder.Rows(sample)); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in writing CSV - %s", err.Error())
	}
}

func outputJson(ctx context.Context, sample *model.Sample) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sample); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in writing JSON - %s", err.Error())
	}
}
