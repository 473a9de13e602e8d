// Package cmd wires the CLI: the terminal renderer, the websocket bridge
// and version info.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finbright/sparkfield/config"
	"github.com/finbright/sparkfield/logging"
)

var (
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "sparkfield",
	Short:   "Cursor-driven cube particle effect, in your terminal or behind a web page.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	// Bare invocation runs the terminal renderer.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd)
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./sparkfield.yaml)")
	rootCmd.Flags().String("ws", "", "attach to a bridge for remote pointer input (ws://host:port/ws)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
