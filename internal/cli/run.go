package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/sessiond/sessiond/internal"
	"github.com/sessiond/sessiond/internal/config"
	"github.com/sessiond/sessiond/internal/events"
)

var (
	runConfigDir    string
	runGroup        string
	runSessionToken string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the backend session process",
	Long: `Run starts the session process: it connects the configured log backend
and signal transport, announces itself to the session manager and then
serves until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigDir, "config-dir", "", "directory holding sessiond.yaml (default /etc/sessiond, then .)")
	runCmd.Flags().StringVar(&runGroup, "group", "BACKEND", "log group tagging every emitted event")
	runCmd.Flags().StringVar(&runSessionToken, "session-token", "", "session token stamped onto outgoing log events")
	rootCmd.AddCommand(runCmd)
}

func loadConfig() (*config.Config, error) {
	if runConfigDir != "" {
		return config.Load(runConfigDir)
	}
	return config.Load()
}

func runSession(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	group, err := events.ParseGroup(runGroup)
	if err != nil {
		return err
	}

	a, err := app.NewApp(cfg, group, runSessionToken)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.Sender.SendRegistrationRequest(a.LocalAddress(), runSessionToken, os.Getpid()) {
		return fmt.Errorf("registration with %s failed", cfg.ManagerService)
	}
	a.Sender.SendStatusChange(events.MajorProcess, events.MinorProcessStarted, "")
	a.Sender.Log(events.NewLogEvent(group, events.Info, "session process started"), false)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.Sender.SendStatusChange(events.MajorProcess, events.MinorProcessStopped, "shutdown requested")
	a.Sender.Log(events.NewLogEvent(group, events.Info, "session process stopping"), false)
	return nil
}
