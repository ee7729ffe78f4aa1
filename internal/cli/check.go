package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sessiond/sessiond/internal/config"
)

// Style definitions.
var (
	checkTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	checkKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Width(18)

	checkOKStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and print the resolved values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderConfigSummary(cfg))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&runConfigDir, "config-dir", "", "directory holding sessiond.yaml (default /etc/sessiond, then .)")
	rootCmd.AddCommand(checkCmd)
}

// renderConfigSummary formats the resolved configuration for the check
// command.
func renderConfigSummary(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString(checkTitleStyle.Render("sessiond configuration"))
	b.WriteString("\n\n")

	row := func(key, value string) {
		b.WriteString(checkKeyStyle.Render(key))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("log backend", cfg.LogBackend)
	if cfg.LogBackend == config.BackendFile {
		row("log file", cfg.LogFile)
	}
	row("colour mode", cfg.ColourMode)
	row("timestamps", fmt.Sprintf("%t", cfg.Timestamp))
	row("metadata", fmt.Sprintf("%t", cfg.Metadata))
	row("log level", cfg.LogLevel.String())
	row("transport", cfg.Transport)
	if cfg.Transport == config.TransportRedis {
		row("redis address", cfg.RedisAddress)
		row("channel prefix", cfg.RedisChannelPrefix)
	} else {
		row("dbus path", cfg.DBusPath)
		row("dbus interface", cfg.DBusInterface)
	}
	row("manager service", cfg.ManagerService)
	row("log service", cfg.LoggerService)
	row("fatal grace", cfg.FatalGrace.String())

	b.WriteString("\n")
	b.WriteString(checkOKStyle.Render("configuration is valid"))
	return b.String()
}
