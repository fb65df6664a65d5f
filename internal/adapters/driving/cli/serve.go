package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replybot/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chatbot endpoint",
	Long: `Train the pipeline from the configured corpus and serve answers over HTTP.

Endpoints:
  POST /chatbot   {"query": "..."} -> {"response": "..."}
  GET  /healthz   readiness and label count

Training errors are reported before the server starts listening.

Examples:
  replybot serve
  replybot serve --addr 127.0.0.1:9000 --corpus ./train_data.csv`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr != "" {
		settings.Server.Addr = addr
	}

	chat, err := trainChat(cmd.Context())
	if err != nil {
		return err
	}
	return serveHTTP(cmd.Context(), chat, settings.Server)
}

// serveHTTP serves chat until ctx is cancelled or SIGINT/SIGTERM arrives.
func serveHTTP(ctx context.Context, chat driving.ChatService, settings domain.ServerSettings) error {
	server, err := httpapi.NewServer(chat, settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx)
}
