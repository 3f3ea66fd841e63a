package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/gestalt"
	"github.com/aretw0/gestalt/internal/cli"
	"github.com/aretw0/gestalt/internal/config"
	"github.com/aretw0/gestalt/internal/logging"
	"github.com/aretw0/gestalt/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts an action system behind an HTTP API. Frames are posted as JSON, events are
streamed over SSE and optionally appended to a Redis stream. Settings come from
GESTALT_* environment variables; flags override them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServer()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("bindings") {
			cfg.BindingsPath, _ = cmd.Flags().GetString("bindings")
		}
		if cmd.Flags().Changed("redis") {
			cfg.RedisAddr, _ = cmd.Flags().GetString("redis")
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.LogLevel = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("GESTALT_LOG_LEVEL: %w", err)
		}
		logger := logging.New(level)
		slog.SetDefault(logger)

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(os.Stderr, gestalt.Version)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		if err := cli.Serve(sigCtx, cli.ServeOptions{Config: cfg, Logger: logger}); err != nil {
			return err
		}
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("stopped by signal", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (GESTALT_ADDR)")
	serveCmd.Flags().StringP("bindings", "b", "", "Binding file to load at startup (GESTALT_BINDINGS)")
	serveCmd.Flags().String("redis", "", "Redis address for the event stream (GESTALT_REDIS_ADDR)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
