// Copyright (c) tkc17.

package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tkc17/iw-parser/iw"
	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

// StationDumpTask runs iw dev <iface> station dump and parses the
// output into a sample.
type StationDumpTask struct {
	iface  string
	iwPath string
}

// NewStationDumpTask creates a station dump task for the interface.
// An empty iwPath means iw is looked up on PATH.
func NewStationDumpTask(iface string, iwPath string) *StationDumpTask {
	if iwPath == "" {
		iwPath = util.DefaultIwPath
	}
	return &StationDumpTask{iface: iface, iwPath: iwPath}
}

// TaskName returns the name of the task.
func (t *StationDumpTask) TaskName() string {
	return "stationDump"
}

// Iface returns the monitored interface name.
func (t *StationDumpTask) Iface() string {
	return t.iface
}

// Process runs one station dump and returns the parsed sample.
// The sample id is taken from the context correlation id.
func (t *StationDumpTask) Process(ctx context.Context) (*model.Sample, error) {
	shellTask := NewShellTask(
		t.TaskName(),
		t.iwPath,
		[]string{"dev", t.iface, "station", "dump"},
	)
	status, err := shellTask.Process(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"Station dump failed on %s with exit code %d - %s",
			t.iface,
			status.ExitStatus.Code,
			strings.TrimSpace(status.ExitStatus.Error.String()),
		)
	}
	stations := iw.ParseStationDump(status.Info.String())
	sampleId := util.CorrelationID(ctx)
	if sampleId == "" {
		sampleId = util.NewUUID().String()
	}
	sample := model.NewSample(sampleId, t.iface, time.Now(), stations)
	if !sample.Connected {
		util.FileLogger().Warnf(ctx, "No station associated on %s", t.iface)
	}
	return sample, nil
}

// Handler returns the executor handler for the task.
func (t *StationDumpTask) Handler() util.Handler {
	return util.Handler(func(ctx context.Context) (any, error) {
		return t.Process(ctx)
	})
}
