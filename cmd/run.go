package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finbright/sparkfield/sim"
	"github.com/finbright/sparkfield/terminal"
	"github.com/finbright/sparkfield/websocket"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Render the simulation in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd)
	},
}

func runTerminal(cmd *cobra.Command) error {
	var remote <-chan sim.PointerEvent
	if url, _ := cmd.Flags().GetString("ws"); url != "" {
		events, closeConn, err := websocket.Dial(cmd.Context(), url, logger)
		if err != nil {
			return err
		}
		defer closeConn()
		remote = events
		logger.Info("attached to bridge", zap.String("url", url))
	}
	return terminal.Run(cfg.Sim.Options(), remote, logger)
}

func init() {
	runCmd.Flags().String("ws", "", "attach to a bridge for remote pointer input (ws://host:port/ws)")
	rootCmd.AddCommand(runCmd)
}
