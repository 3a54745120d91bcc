package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/penwell/penwell/internal/config"
	"github.com/penwell/penwell/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reference annotation store server",
	Long: `Start the reference annotation store HTTP server.

The server keeps annotations in memory and validates every create against
the wire schema. It implements the API the store client consumes:
  - GET    /health            - Server health check
  - POST   /annotations       - Create an annotation
  - GET    /annotations       - List annotations (filter with ?file_id=)
  - DELETE /annotations/{id}  - Delete an annotation

Examples:
  penwell serve                    # Start on default port 8080
  penwell serve --port 3000        # Start on custom port
  penwell serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		host := cfg.Server.Host
		port := cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv := server.New(server.Config{
			Host:   host,
			Port:   port,
			Logger: logger,
		})

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
