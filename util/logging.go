/*
 * Copyright (c) tkc17.
 */
package util

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogMaxMb      = 10
	defaultLogMaxBackups = 10
	defaultLogMaxDays    = 30
)

// AppLogger wraps an apex logger and resolves
// context values into log entry fields.
type AppLogger struct {
	logger *log.Logger
}

var (
	cliLogger      *AppLogger
	fileLogger     *AppLogger
	onceInitLogger = &sync.Once{}
)

// Initializes two loggers - console logger and file-only logger.
// The file logger writes logfmt records to a self-rotating file.
func initLoggers() {
	config := CurrentConfig()
	err := os.MkdirAll(LogsDir(), os.ModePerm)
	if err != nil {
		panic("Unable to create logs dir - " + err.Error())
	}
	logFilename := config.String(AgentLogKey)
	if logFilename == "" {
		logFilename = DefaultAgentLog
	}
	maxMb := config.Int(AgentLogMaxMbKey)
	if maxMb <= 0 {
		maxMb = defaultLogMaxMb
	}
	maxBackups := config.Int(AgentLogMaxBackupsKey)
	if maxBackups <= 0 {
		maxBackups = defaultLogMaxBackups
	}
	maxDays := config.Int(AgentLogMaxDaysKey)
	if maxDays <= 0 {
		maxDays = defaultLogMaxDays
	}
	level := log.InfoLevel
	if levelName := config.String(AgentLogLevelKey); levelName != "" {
		parsed, err := log.ParseLevel(levelName)
		if err == nil {
			level = parsed
		}
	}
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(LogsDir(), logFilename),
		MaxSize:    maxMb,
		MaxBackups: maxBackups,
		MaxAge:     maxDays,
	}
	cliLogger = &AppLogger{
		logger: &log.Logger{
			Handler: cli.New(os.Stdout),
			Level:   log.InfoLevel,
		},
	}
	fileLogger = &AppLogger{
		logger: &log.Logger{
			Handler: NewLogHandler(writer),
			Level:   level,
		},
	}
}

// ConsoleLogger returns the logger for user-facing command output.
func ConsoleLogger() *AppLogger {
	onceInitLogger.Do(initLoggers)
	return cliLogger
}

// FileLogger returns the file-only logger.
func FileLogger() *AppLogger {
	onceInitLogger.Do(initLoggers)
	return fileLogger
}

func (l *AppLogger) getEntry(ctx context.Context) *log.Entry {
	entry := log.NewEntry(l.logger)
	if ctx != nil {
		if corrId := CorrelationID(ctx); corrId != "" {
			entry = entry.WithField("corr", corrId)
		}
	}
	return entry
}

// IsDebugEnabled returns true if debug logging is turned on.
func (l *AppLogger) IsDebugEnabled() bool {
	return l.logger.Level <= log.DebugLevel
}

func (l *AppLogger) Debugf(ctx context.Context, msg string, v ...interface{}) {
	l.getEntry(ctx).Debugf(msg, v...)
}

func (l *AppLogger) Debug(ctx context.Context, msg string) {
	l.getEntry(ctx).Debug(msg)
}

func (l *AppLogger) Infof(ctx context.Context, msg string, v ...interface{}) {
	l.getEntry(ctx).Infof(msg, v...)
}

func (l *AppLogger) Info(ctx context.Context, msg string) {
	l.getEntry(ctx).Info(msg)
}

func (l *AppLogger) Warnf(ctx context.Context, msg string, v ...interface{}) {
	l.getEntry(ctx).Warnf(msg, v...)
}

func (l *AppLogger) Warn(ctx context.Context, msg string) {
	l.getEntry(ctx).Warn(msg)
}

func (l *AppLogger) Errorf(ctx context.Context, msg string, v ...interface{}) {
	l.getEntry(ctx).Errorf(msg, v...)
}

func (l *AppLogger) Error(ctx context.Context, msg string) {
	l.getEntry(ctx).Error(msg)
}

func (l *AppLogger) Fatalf(ctx context.Context, msg string, v ...interface{}) {
	l.getEntry(ctx).Fatalf(msg, v...)
}

func (l *AppLogger) Fatal(ctx context.Context, msg string) {
	l.getEntry(ctx).Fatal(msg)
}
