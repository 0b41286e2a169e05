package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/uiflow/internal/config"
	"github.com/dshills/uiflow/internal/logging"
)

var (
	configPath string
	logLevel   string
	scriptPath string
)

var rootCmd = &cobra.Command{
	Use:   "uiflow",
	Short: "Event propagation for retained-mode element trees",
	Long: `uiflow routes pointer, keyboard, focus and command events through a
tree of elements, with trickle-down and bubble-up phases, pointer capture
and enter/leave tracking.

  - run       Open the interactive demo panel in the terminal
  - trace     Replay an input script against the demo panel and print
              every dispatch step

Element behavior can be extended with a Lua script (--script), see the
script package documentation for the ui table.

Configuration is read from --config (TOML or YAML) and UIFLOW_* environment
variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVarP(&scriptPath, "script", "s", "", "Lua behavior script for the demo panel")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (trace, debug, info, warn, error)")
}

// loadConfig resolves the configuration for a command invocation.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		if !logging.ValidLevel(logLevel) {
			return cfg, errors.Wrapf(config.ErrInvalidConfig, "--log-level %q", logLevel)
		}
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}
