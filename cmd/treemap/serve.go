package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"treemap/internal/loader"
	"treemap/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered map and summaries over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env := initEnv(ctx)
		defer env.Close()

		ds, err := env.Pipeline.Run(ctx)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		srv := server.New(ds, server.Options{
			Projection:   loader.Projection(cfg),
			CanvasWidth:  cfg.Canvas.Width,
			CanvasHeight: cfg.Canvas.Height,
			ZoomMin:      cfg.Zoom.Min,
			ZoomMax:      cfg.Zoom.Max,
		})
		return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
