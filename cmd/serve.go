package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finbright/sparkfield/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web front end and accept browser pointer input on /ws",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		bridge := websocket.NewBridge(cfg.Server.Bridge(), logger)
		go drain(bridge)
		return bridge.Run(ctx)
	},
}

// drain consumes bridge events when no renderer is attached, so a serve-only
// process never backs up its connections. Renderers attach with `run --ws`.
func drain(b *websocket.Bridge) {
	for range b.Events() {
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
