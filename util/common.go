package util

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const (
	// Agent common constants.
	DefaultConfig   = "config"
	DefaultShell    = "/bin/bash"
	DefaultIwPath   = "iw"
	DefaultAgentLog = "iwmon.log"
	DefaultPort     = "9041"
	DefaultBindIp   = "127.0.0.1"

	iwmonHomeEnv = "IWMON_HOME"
	iwmonDirName = "iwmon"
	configDir    = "/config"
	logsDir      = "/logs"
	dataDir      = "/data"

	JwtClientIdClaim  = "clientId"
	JwtIssuer         = "iwmon"
	JwtSubject        = "IWMON_CLIENT"
	JwtExpirationTime = 600 //in seconds

	RequestIdHeader = "X-REQUEST-ID"

	// Agent config keys.
	AgentIdKey            = "agent.uuid"
	AgentLogKey           = "agent.log"
	AgentLogLevelKey      = "agent.log_level"
	AgentLogMaxMbKey      = "agent.log_max_mb"
	AgentLogMaxBackupsKey = "agent.log_max_backups"
	AgentLogMaxDaysKey    = "agent.log_max_days"

	// Monitor config keys.
	MonitorIfaceKey    = "monitor.iface"
	MonitorOutputKey   = "monitor.output"
	MonitorIntervalKey = "monitor.interval_sec"
	MonitorIwPathKey   = "monitor.iw_path"

	// Server config keys.
	ServerPortKey       = "server.port"
	ServerBindIpKey     = "server.bind_ip"
	ServerMaxConnsKey   = "server.max_conns"
	ServerAuthSecretKey = "server.auth_secret_path"
	RequestTimeoutKey   = "server.request_timeout_sec"

	// Archive config keys.
	ArchiveEnabledKey   = "archive.enabled"
	ArchivePathKey      = "archive.path"
	ArchiveRetentionKey = "archive.retention_days"
)

const (
	CorrelationId ContextKey = "correlation-id"
)

var (
	iwmonHome         string
	onceLoadIwmonHome = &sync.Once{}
)

// ContextKey is the key type go context values.
type ContextKey string

// Handler is a generic handler func.
type Handler func(context.Context) (any, error)

func NewUUID() uuid.UUID {
	return uuid.New()
}

// Returns the home directory. The IWMON_HOME environment variable
// takes precedence over <user home>/iwmon.
func MustGetHomeDirectory() string {
	onceLoadIwmonHome.Do(func() {
		home := os.Getenv(iwmonHomeEnv)
		if home == "" {
			userHome, err := os.UserHomeDir()
			if err != nil {
				panic(fmt.Sprintf("Unable to fetch the Home Directory - %s", err.Error()))
			}
			home = filepath.Join(userHome, iwmonDirName)
		}
		iwmonHome = home
	})
	return iwmonHome
}

// Returns the config directory path.
// All the config files should
// be present in this directory.
func ConfigDir() string {
	return MustGetHomeDirectory() + configDir
}

// Returns path to the Logs directory.
func LogsDir() string {
	return MustGetHomeDirectory() + logsDir
}

// Returns path to the data directory holding recorded station stats.
func DataDir() string {
	return MustGetHomeDirectory() + dataDir
}

// DefaultCsvPath returns the default CSV output file path.
func DefaultCsvPath() string {
	return filepath.Join(DataDir(), "stations.csv")
}

// DefaultArchivePath returns the default sqlite archive file path.
func DefaultArchivePath() string {
	return filepath.Join(DataDir(), "archive.db")
}

func IsDigits(str string) bool {
	if str == "" {
		return false
	}
	runes := []rune(str)
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateIfaceName checks that the value looks like a network interface
// name before it is spliced into a command line.
func ValidateIfaceName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("Interface name cannot be empty")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == ':':
		default:
			return "", fmt.Errorf("Invalid character %q in interface name %s", r, name)
		}
	}
	return name, nil
}

// CorrelationID returns the correlation ID from the context.
func CorrelationID(ctx context.Context) string {
	if v := ctx.Value(CorrelationId); v != nil {
		return v.(string)
	}
	return ""
}

// WithCorrelationID creates a child context with correlation ID.
func WithCorrelationID(ctx context.Context, corrId string) context.Context {
	return context.WithValue(ctx, CorrelationId, corrId)
}
