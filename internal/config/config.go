// Package config loads the daemon configuration from a YAML file,
// applying defaults for every key so the daemon runs without any file
// present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sessiond/sessiond/internal/events"
)

// Log backends selectable via log.backend.
const (
	BackendStdout   = "stdout"
	BackendStderr   = "stderr"
	BackendFile     = "file"
	BackendSyslog   = "syslog"
	BackendJournald = "journald"
)

// Transports selectable via transport.kind.
const (
	TransportDBus  = "dbus"
	TransportRedis = "redis"
)

// Config is the fully resolved daemon configuration.
type Config struct {
	// LogBackend selects where events are written locally.
	LogBackend string
	// LogFile is the target path when LogBackend is "file".
	LogFile string
	// ColourMode selects line colouring for stream backends: none,
	// category or group. Ignored by syslog and journald.
	ColourMode string
	// Timestamp and Metadata toggle the corresponding writer features on
	// stream backends. Syslog and journald always timestamp.
	Timestamp bool
	Metadata  bool
	// LogLevel is the minimum severity forwarded to subscribers.
	LogLevel events.Category

	// Transport selects the signal transport.
	Transport string
	// RedisAddress and RedisChannelPrefix configure the Redis transport.
	RedisAddress       string
	RedisChannelPrefix string
	// DBusPath and DBusInterface name the emitting object on the bus.
	DBusPath      string
	DBusInterface string

	// ManagerService and LoggerService are the well-known names resolved
	// into the signal recipient groups.
	ManagerService string
	LoggerService  string

	// FatalGrace is how long a fatal message is given to leave the
	// process before termination.
	FatalGrace time.Duration
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogBackend:         BackendStdout,
		ColourMode:         "none",
		Timestamp:          true,
		Metadata:           true,
		LogLevel:           events.Debug,
		Transport:          TransportDBus,
		RedisAddress:       "localhost:6379",
		RedisChannelPrefix: "sessiond:",
		DBusPath:           "/net/sessiond/backends/session",
		DBusInterface:      "net.sessiond.backends.session",
		ManagerService:     "net.sessiond.sessions",
		LoggerService:      "net.sessiond.log",
		FatalGrace:         3 * time.Second,
	}
}

// Load reads sessiond.yaml from the given directories using Viper. A
// missing file yields the defaults; a malformed or invalid file is an
// error.
func Load(paths ...string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("sessiond")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"/etc/sessiond", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("log.backend", cfg.LogBackend)
	v.SetDefault("log.file", cfg.LogFile)
	v.SetDefault("log.colour", cfg.ColourMode)
	v.SetDefault("log.timestamp", cfg.Timestamp)
	v.SetDefault("log.metadata", cfg.Metadata)
	v.SetDefault("log.level", cfg.LogLevel.String())
	v.SetDefault("transport.kind", cfg.Transport)
	v.SetDefault("transport.redis.address", cfg.RedisAddress)
	v.SetDefault("transport.redis.channel_prefix", cfg.RedisChannelPrefix)
	v.SetDefault("transport.dbus.path", cfg.DBusPath)
	v.SetDefault("transport.dbus.interface", cfg.DBusInterface)
	v.SetDefault("services.manager", cfg.ManagerService)
	v.SetDefault("services.log", cfg.LoggerService)
	v.SetDefault("fatal_grace_seconds", int(cfg.FatalGrace/time.Second))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading sessiond.yaml: %w", err)
		}
	}

	cfg.LogBackend = strings.ToLower(v.GetString("log.backend"))
	cfg.LogFile = v.GetString("log.file")
	cfg.ColourMode = strings.ToLower(v.GetString("log.colour"))
	cfg.Timestamp = v.GetBool("log.timestamp")
	cfg.Metadata = v.GetBool("log.metadata")

	level, err := events.ParseCategory(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	cfg.LogLevel = level

	cfg.Transport = strings.ToLower(v.GetString("transport.kind"))
	cfg.RedisAddress = v.GetString("transport.redis.address")
	cfg.RedisChannelPrefix = v.GetString("transport.redis.channel_prefix")
	cfg.DBusPath = v.GetString("transport.dbus.path")
	cfg.DBusInterface = v.GetString("transport.dbus.interface")
	cfg.ManagerService = v.GetString("services.manager")
	cfg.LoggerService = v.GetString("services.log")
	cfg.FatalGrace = time.Duration(v.GetInt("fatal_grace_seconds")) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validBackends = map[string]bool{
	BackendStdout:   true,
	BackendStderr:   true,
	BackendFile:     true,
	BackendSyslog:   true,
	BackendJournald: true,
}

var validColourModes = map[string]bool{
	"none":     true,
	"category": true,
	"group":    true,
}

// Validate checks the configuration for invalid values and returns an
// error naming every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validBackends[c.LogBackend] {
		errs = append(errs, fmt.Sprintf(
			"log.backend %q is invalid, must be one of: stdout, stderr, file, syslog, journald",
			c.LogBackend))
	}
	if c.LogBackend == BackendFile && c.LogFile == "" {
		errs = append(errs, "log.file must be set when log.backend is file")
	}
	if !validColourModes[c.ColourMode] {
		errs = append(errs, fmt.Sprintf(
			"log.colour %q is invalid, must be one of: none, category, group",
			c.ColourMode))
	}
	if c.Transport != TransportDBus && c.Transport != TransportRedis {
		errs = append(errs, fmt.Sprintf(
			"transport.kind %q is invalid, must be dbus or redis", c.Transport))
	}
	if c.Transport == TransportRedis && c.RedisAddress == "" {
		errs = append(errs, "transport.redis.address must not be empty")
	}
	if c.ManagerService == "" {
		errs = append(errs, "services.manager must not be empty")
	}
	if c.LoggerService == "" {
		errs = append(errs, "services.log must not be empty")
	}
	if c.FatalGrace <= 0 {
		errs = append(errs, fmt.Sprintf(
			"fatal_grace_seconds must be positive, got %s", c.FatalGrace))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
