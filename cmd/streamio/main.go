// Command streamio runs the single-host WebRTC capture/render server:
// it binds one HTTP port serving a signaling WebSocket, and streams either
// the local desktop or an offscreen 3D renderer to whichever browser
// connects.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloudomate/streamio/internal/config"
	"github.com/cloudomate/streamio/internal/httpserver"
	"github.com/cloudomate/streamio/internal/logging"
)

var version = "0.1.0"

var (
	logFormat string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "streamio",
	Short: "Single-host WebRTC desktop/render streaming server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("streamio v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer() error {
	logging.Init(logFormat, logLevel, os.Stdout)
	log := logging.L("main")

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}

	log.Info("starting streamio",
		"variant", cfg.Variant,
		"port", cfg.Port,
		"fps", cfg.FPS,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg)
	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}

	log.Info("streamio stopped cleanly")
	return nil
}
