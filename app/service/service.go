// Copyright (c) tkc17.

package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tkc17/iw-parser/app/collector"
	"github.com/tkc17/iw-parser/app/executor"
	"github.com/tkc17/iw-parser/app/recorder"
	"github.com/tkc17/iw-parser/app/scheduler"
	"github.com/tkc17/iw-parser/app/server"
	"github.com/tkc17/iw-parser/app/task"
	"github.com/tkc17/iw-parser/util"
)

const serverStartRetryIntervalSec = 10 //in sec

var (
	ctx        context.Context
	cancelFunc context.CancelFunc
	sigs       chan os.Signal
)

func init() {
	ctx, cancelFunc = context.WithCancel(context.Background())
}

func Context() context.Context {
	return ctx
}

func CancelFunc() context.CancelFunc {
	return cancelFunc
}

// Entry method for the monitor process. With serverMode, the HTTP API
// and the optional sample archive are brought up next to the CSV
// recorder.
func Start(serverMode bool) {
	sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	config := util.CurrentConfig()
	iface := config.String(util.MonitorIfaceKey)
	if iface == "" {
		util.FileLogger().Fatalf(ctx, "Monitored interface must be set")
	}
	executor.Init(ctx)
	scheduler.Init(ctx)

	preflightHandler := task.NewPreflightCheckHandler(iface, config.String(util.MonitorIwPathKey))
	if _, err := executor.GetInstance().ExecuteTask(ctx, preflightHandler.Handler()); err != nil {
		util.FileLogger().Fatalf(ctx, "Preflight checks failed - %s", err.Error())
	}

	output := config.String(util.MonitorOutputKey)
	if output == "" {
		output = util.DefaultCsvPath()
	}
	csvRecorder, err := recorder.NewCSVRecorder(ctx, output)
	if err != nil {
		util.FileLogger().Fatalf(ctx, "Error in creating CSV recorder - %s", err.Error())
	}
	// The recorder is closed after the collection loop has drained so
	// that the last sample is flushed.
	defer csvRecorder.Close()
	recorders := []collector.Recorder{csvRecorder}

	var archive *recorder.Archive
	if serverMode && config.Bool(util.ArchiveEnabledKey) {
		archivePath := config.String(util.ArchivePathKey)
		if archivePath == "" {
			archivePath = util.DefaultArchivePath()
		}
		archive, err = recorder.NewArchive(ctx, archivePath)
		if err != nil {
			util.FileLogger().Fatalf(ctx, "Error in opening sample archive - %s", err.Error())
		}
		defer archive.Close()
		recorders = append(recorders, archive)
	}

	params := collector.Params{
		Iface:         iface,
		IwPath:        config.String(util.MonitorIwPathKey),
		Interval:      time.Duration(config.Int(util.MonitorIntervalKey)) * time.Second,
		Recorders:     recorders,
		Archive:       archive,
		RetentionDays: config.Int(util.ArchiveRetentionKey),
	}
	var hub *server.Hub
	if serverMode {
		hub = server.NewHub()
		params.Publishers = append(params.Publishers, hub)
	}
	monitor := collector.NewCollector(params)
	monitor.Start(ctx)

	if serverMode {
		httpServer := startHTTPServer(config, monitor, archive, hub)
		if httpServer == nil {
			// Interrupted while waiting for the listen address.
			cancelFunc()
			return
		}
		util.FileLogger().Infof(ctx, "Started service on %s", httpServer.Addr())
		<-sigs
		httpServer.Stop()
	} else {
		util.FileLogger().Infof(ctx, "Started station monitor on %s", iface)
		<-sigs
	}
	cancelFunc()
	scheduler.GetInstance().WaitOnShutdown()
	executor.GetInstance().WaitOnShutdown()
}

// Starts the HTTP server, retrying until the listen address is free.
// The address can be held briefly by a previous instance across a
// restart. Returns nil when interrupted by a signal.
func startHTTPServer(
	config *util.Config,
	monitor *collector.Collector,
	archive *recorder.Archive,
	hub *server.Hub,
) *server.HTTPServer {
	serverConfig := &server.HTTPServerConfig{
		Addr: fmt.Sprintf(
			"%s:%s",
			config.String(util.ServerBindIpKey),
			config.String(util.ServerPortKey),
		),
		MaxConns:  config.Int(util.ServerMaxConnsKey),
		Collector: monitor,
		Hub:       hub,
	}
	if archive != nil {
		serverConfig.Store = archive
	}
	if util.AuthSecretPath(config) != "" {
		serverConfig.Authenticator = server.NewAuthenticator(config)
	}
	httpServer, err := server.NewHTTPServer(ctx, serverConfig)
	if err == nil {
		return httpServer
	}
	util.FileLogger().Errorf(ctx, "Error in starting HTTP server - %s", err.Error())
	ticker := time.NewTicker(serverStartRetryIntervalSec * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			httpServer, err = server.NewHTTPServer(ctx, serverConfig)
			if err == nil {
				return httpServer
			}
			util.FileLogger().Errorf(ctx, "Error in starting HTTP server - %s", err.Error())
		case <-sigs:
			return nil
		}
	}
}
