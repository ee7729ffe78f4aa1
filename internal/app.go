// Package internal provides the App struct that wires the configured log
// writer, signal transport and event sender together for the daemon.
package internal

import (
	"fmt"
	"io"
	"log/syslog"
	"os"

	"github.com/godbus/dbus/v5"
	"github.com/redis/go-redis/v9"

	"github.com/sessiond/sessiond/internal/config"
	"github.com/sessiond/sessiond/internal/events"
	"github.com/sessiond/sessiond/internal/logwriter"
	"github.com/sessiond/sessiond/internal/signals"
)

// App holds the wired components of one backend session process.
type App struct {
	Config    *config.Config
	Writer    logwriter.Writer
	Transport signals.Transport
	Sender    *signals.Sender

	closers []io.Closer
}

// NewApp builds the log writer and transport selected by the
// configuration and connects a Sender on top of them. group tags every
// event this process emits; sessionToken identifies the session to
// external consumers.
func NewApp(cfg *config.Config, group events.Group, sessionToken string) (*App, error) {
	app := &App{Config: cfg}

	writer, err := app.buildWriter()
	if err != nil {
		return nil, err
	}
	app.Writer = writer
	app.Writer.EnableTimestamp(cfg.Timestamp)
	app.Writer.EnableMetadata(cfg.Metadata)

	transport, err := app.buildTransport()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Transport = transport

	sender, err := signals.NewSender(transport, writer, signals.SenderConfig{
		Group:          group,
		SessionToken:   sessionToken,
		ManagerService: cfg.ManagerService,
		LoggerService:  cfg.LoggerService,
		LogLevel:       cfg.LogLevel,
		FatalGrace:     cfg.FatalGrace,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("connecting event sender: %w", err)
	}
	app.Sender = sender

	return app, nil
}

// LocalAddress returns the transport's own address when it has one, such
// as the unique D-Bus name. Used as the busname field of the
// registration request.
func (a *App) LocalAddress() string {
	type addressed interface{ LocalAddress() string }
	if t, ok := a.Transport.(addressed); ok {
		return t.LocalAddress()
	}
	return ""
}

// Close releases the writer's file handle and the transport connection.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// buildWriter constructs the log writer named by log.backend.
func (a *App) buildWriter() (logwriter.Writer, error) {
	cfg := a.Config
	switch cfg.LogBackend {
	case config.BackendStdout, config.BackendStderr, config.BackendFile:
		out, err := a.openStream()
		if err != nil {
			return nil, err
		}
		mode := logwriter.ParseColourMode(cfg.ColourMode)
		if mode == logwriter.ColourNone {
			return logwriter.NewStreamWriter(out), nil
		}
		return logwriter.NewColourStreamWriter(out, logwriter.NewColourScheme(mode)), nil

	case config.BackendSyslog:
		w, err := logwriter.NewSyslogWriter("sessiond", syslog.LOG_DAEMON)
		if err != nil {
			return nil, fmt.Errorf("opening syslog backend: %w", err)
		}
		a.closers = append(a.closers, w)
		return w, nil

	case config.BackendJournald:
		return logwriter.NewJournaldWriter(), nil
	}
	return nil, fmt.Errorf("unknown log backend %q", cfg.LogBackend)
}

func (a *App) openStream() (io.Writer, error) {
	switch a.Config.LogBackend {
	case config.BackendStdout:
		return os.Stdout, nil
	case config.BackendStderr:
		return os.Stderr, nil
	}
	f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	a.closers = append(a.closers, f)
	return f, nil
}

// buildTransport constructs the signal transport named by transport.kind.
func (a *App) buildTransport() (signals.Transport, error) {
	cfg := a.Config
	switch cfg.Transport {
	case config.TransportDBus:
		t, err := signals.ConnectSystemBus(dbus.ObjectPath(cfg.DBusPath), cfg.DBusInterface)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, t)
		return t, nil

	case config.TransportRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		t := signals.NewRedisTransport(client, cfg.RedisChannelPrefix)
		a.closers = append(a.closers, t)
		return t, nil
	}
	return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
}
