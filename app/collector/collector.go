// Copyright (c) tkc17.

package collector

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tkc17/iw-parser/app/executor"
	"github.com/tkc17/iw-parser/app/recorder"
	"github.com/tkc17/iw-parser/app/scheduler"
	"github.com/tkc17/iw-parser/app/task"
	"github.com/tkc17/iw-parser/metric"
	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

// DefaultInterval is used when no sampling interval is configured.
const DefaultInterval = 2 * time.Second

// Recorder is a sink that persists samples.
type Recorder interface {
	Name() string
	Record(ctx context.Context, sample *model.Sample) error
}

// Publisher is a sink that broadcasts samples without persisting them.
type Publisher interface {
	Publish(sample *model.Sample)
}

// Params configures a collector.
type Params struct {
	Iface         string
	IwPath        string
	Interval      time.Duration
	Recorders     []Recorder
	Publishers    []Publisher
	Archive       *recorder.Archive
	RetentionDays int
}

// Collector owns the sampling loop. Every tick runs one station dump
// and fans the sample out to the recorders, publishers and metrics.
// A failed dump is counted and skipped without stopping the loop.
type Collector struct {
	params      Params
	dumpTask    *task.StationDumpTask
	startedAt   time.Time
	lastSample  atomic.Value
	samples     atomic.Uint64
	errors      atomic.Uint64
	disconnects atomic.Uint64
}

// NewCollector creates a collector from the params.
func NewCollector(params Params) *Collector {
	if params.Interval <= 0 {
		params.Interval = DefaultInterval
	}
	return &Collector{
		params:   params,
		dumpTask: task.NewStationDumpTask(params.Iface, params.IwPath),
	}
}

// Start runs one immediate collection and schedules the periodic runs
// on the singleton scheduler. The runs stop when the context is
// cancelled.
func (c *Collector) Start(ctx context.Context) {
	c.startedAt = time.Now()
	util.FileLogger().Infof(
		ctx,
		"Starting station monitor on %s every %s",
		c.params.Iface,
		c.params.Interval,
	)
	// The scheduler fires after one interval, so take the first sample
	// right away.
	if _, err := executor.GetInstance().ExecuteTask(ctx, c.handler()); err != nil {
		util.FileLogger().Warnf(ctx, "Initial station dump failed - %s", err.Error())
	}
	scheduler.GetInstance().Schedule(ctx, c.params.Interval, c.handler())
	if c.params.Archive != nil && c.params.RetentionDays > 0 {
		if _, err := executor.GetInstance().ExecuteTask(ctx, c.purgeHandler()); err != nil {
			util.FileLogger().Warnf(ctx, "Initial archive purge failed - %s", err.Error())
		}
		scheduler.GetInstance().Schedule(ctx, 24*time.Hour, c.purgeHandler())
	}
}

// Iface returns the monitored interface name.
func (c *Collector) Iface() string {
	return c.params.Iface
}

// Interval returns the sampling interval.
func (c *Collector) Interval() time.Duration {
	return c.params.Interval
}

// StartedAt returns the time the collector was started.
func (c *Collector) StartedAt() time.Time {
	return c.startedAt
}

// LatestSample returns the most recent sample, or nil before the first
// successful collection.
func (c *Collector) LatestSample() *model.Sample {
	sample, _ := c.lastSample.Load().(*model.Sample)
	return sample
}

// Counts returns the number of samples, failed dumps and disconnected
// samples since start.
func (c *Collector) Counts() (uint64, uint64, uint64) {
	return c.samples.Load(), c.errors.Load(), c.disconnects.Load()
}

func (c *Collector) handler() util.Handler {
	return util.Handler(func(ctx context.Context) (any, error) {
		return c.collect(ctx)
	})
}

func (c *Collector) collect(ctx context.Context) (*model.Sample, error) {
	ctx = util.WithCorrelationID(ctx, util.NewUUID().String())
	sample, err := c.dumpTask.Process(ctx)
	if err != nil {
		c.errors.Add(1)
		metric.GetInstance().PublishSampleError()
		util.FileLogger().Errorf(ctx, "Station dump failed - %s", err.Error())
		return nil, err
	}
	c.samples.Add(1)
	if !sample.Connected {
		c.disconnects.Add(1)
	}
	c.lastSample.Store(sample)
	metric.GetInstance().PublishSampleStats(sample)
	for _, rec := range c.params.Recorders {
		if err := rec.Record(ctx, sample); err != nil {
			util.FileLogger().
				Errorf(ctx, "Failed to record sample in %s - %s", rec.Name(), err.Error())
		}
	}
	for _, publisher := range c.params.Publishers {
		publisher.Publish(sample)
	}
	if util.FileLogger().IsDebugEnabled() {
		util.FileLogger().
			Debugf(ctx, "Collected sample %s with %d stations", sample.SampleId, len(sample.Stations))
	}
	return sample, nil
}

func (c *Collector) purgeHandler() util.Handler {
	return util.Handler(func(ctx context.Context) (any, error) {
		cutoff := time.Now().AddDate(0, 0, -c.params.RetentionDays)
		deleted, err := c.params.Archive.PurgeOlderThan(ctx, cutoff)
		if err != nil {
			util.FileLogger().Errorf(ctx, "Failed to purge archive - %s", err.Error())
			return nil, err
		}
		if deleted > 0 {
			util.FileLogger().Infof(ctx, "Purged %d archived samples", deleted)
		}
		return deleted, nil
	})
}
