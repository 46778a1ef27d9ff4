package gfdminer

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soundprediction/gfdminer/pkg/config"
	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/logger"
	"github.com/soundprediction/gfdminer/pkg/miner"
	"github.com/soundprediction/gfdminer/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Mine a graph and serve the clauses over HTTP",
	Long: `Mine a graph and expose the resulting clauses through a REST API.

The server provides endpoints for listing mined types, browsing clauses
per type with depth and threshold filters, and health checks.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("input", "", "N-Triples input file (overrides source config)")
	serveCmd.Flags().String("host", "localhost", "Server host")
	serveCmd.Flags().Int("port", 8080, "Server port")
	serveCmd.Flags().String("mode", "release", "Server mode (debug, release, test)")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.mode", serveCmd.Flags().Lookup("mode"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		cfg.Source.Driver = "file"
		cfg.Source.URI = input
	}
	if cfg.Source.URI == "" {
		return fmt.Errorf("no graph source configured; pass --input or set source.uri")
	}

	log := logger.NewLogger(logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		Color: cfg.Log.Color,
	})

	ctx := context.Background()
	src, err := openSource(cfg, log)
	if err != nil {
		return err
	}
	defer src.Close(ctx)

	g, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	log.Info("graph loaded", "triples", g.Len())

	opts := cfg.Mining.Options()
	opts.Logger = log

	var f *forest.Forest
	if cfg.Mining.Workers == 1 {
		f, err = miner.Generate(g, opts)
	} else {
		f, err = miner.GenerateParallel(g, opts, cfg.Mining.Workers)
	}
	if err != nil {
		return fmt.Errorf("mining failed: %w", err)
	}
	log.Info("mining finished", "clauses", f.Size())

	srv := server.New(cfg, f)
	srv.Setup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
