package gfdminer

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soundprediction/gfdminer/pkg/checkpoint"
	"github.com/soundprediction/gfdminer/pkg/config"
	"github.com/soundprediction/gfdminer/pkg/export"
	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/logger"
	"github.com/soundprediction/gfdminer/pkg/miner"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine clauses from a knowledge graph",
	Long: `Mine conditional graph rules from a typed knowledge graph.

The graph is read from an N-Triples file or a Neo4j database, searched
breadth-first up to the configured depth, and the surviving clauses are
written as TSV or Parquet.`,
	RunE: runMine,
}

func init() {
	rootCmd.AddCommand(mineCmd)

	mineCmd.Flags().String("input", "", "N-Triples input file (overrides source config)")
	mineCmd.Flags().String("output", "clauses.tsv", "Output path")
	mineCmd.Flags().String("format", "tsv", "Output format (tsv, parquet)")

	mineCmd.Flags().Int("depth-start", 0, "First depth kept in the result")
	mineCmd.Flags().Int("depth-stop", 2, "Depth until which clause bodies grow")
	mineCmd.Flags().Int("min-support", 2, "Minimal clause support")
	mineCmd.Flags().Int("min-confidence", 2, "Minimal clause confidence")
	mineCmd.Flags().String("mode", "BB", "Head/body vocabulary mode (AA, AT, AB, TA, TT, TB, BA, BT, BB)")
	mineCmd.Flags().Float64("p-explore", 1.0, "Probability of exploring a candidate endpoint")
	mineCmd.Flags().Float64("p-extend", 1.0, "Probability of keeping a candidate extension")
	mineCmd.Flags().Bool("prune", true, "Prune clauses that add conditions without narrowing")
	mineCmd.Flags().Int("max-length-body", 8, "Maximal number of body assertions")
	mineCmd.Flags().Int("max-width", 8, "Maximal extensions per body endpoint")
	mineCmd.Flags().Bool("multimodal", false, "Cluster literal values into ranges and patterns")
	mineCmd.Flags().Int64("seed", 1, "Random seed for stochastic skips")
	mineCmd.Flags().Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS, 1 = sequential)")

	mineCmd.Flags().Bool("checkpoint", false, "Write a run checkpoint next to the result")

	for flag, key := range map[string]string{
		"output":          "export.path",
		"format":          "export.format",
		"depth-start":     "mining.depth_start",
		"depth-stop":      "mining.depth_stop",
		"min-support":     "mining.min_support",
		"min-confidence":  "mining.min_confidence",
		"mode":            "mining.mode",
		"p-explore":       "mining.p_explore",
		"p-extend":        "mining.p_extend",
		"prune":           "mining.prune",
		"max-length-body": "mining.max_length_body",
		"max-width":       "mining.max_width",
		"multimodal":      "mining.multimodal",
		"seed":            "mining.seed",
		"workers":         "mining.workers",
		"checkpoint":      "checkpoint.enabled",
	} {
		viper.BindPFlag(key, mineCmd.Flags().Lookup(flag))
	}
}

func runMine(cmd *cobra.Command, args []string) error {
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

	log.Info("loading graph", "driver", cfg.Source.Driver, "uri", cfg.Source.URI)
	start := time.Now()
	g, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	log.Info("graph loaded", "triples", g.Len(), "duration", time.Since(start).Round(time.Millisecond))

	opts := cfg.Mining.Options()
	opts.Logger = log

	start = time.Now()
	var f *forest.Forest
	if cfg.Mining.Workers == 1 {
		f, err = miner.Generate(g, opts)
	} else {
		f, err = miner.GenerateParallel(g, opts, cfg.Mining.Workers)
	}
	if err != nil {
		return fmt.Errorf("mining failed: %w", err)
	}
	log.Info("mining finished", "clauses", f.Size(), "duration", time.Since(start).Round(time.Millisecond))

	if cfg.Checkpoint.Enabled {
		if err := writeCheckpoint(ctx, cfg, f); err != nil {
			log.Warn("failed to write checkpoint", "error", err)
		}
	}

	if err := export.Write(cfg.Export.Path, cfg.Export.Format, f); err != nil {
		return fmt.Errorf("failed to export clauses: %w", err)
	}
	log.Info("clauses written", "path", cfg.Export.Path, "format", cfg.Export.Format)
	return nil
}

func writeCheckpoint(ctx context.Context, cfg *config.Config, f *forest.Forest) error {
	manager, err := checkpoint.NewManager(cfg.Checkpoint.Dir)
	if err != nil {
		return err
	}

	snapshot := checkpoint.NewRunCheckpoint(cfg.Source.URI, checkpoint.Parameters{
		DepthStart:    cfg.Mining.DepthStart,
		DepthStop:     cfg.Mining.DepthStop,
		MinSupport:    cfg.Mining.MinSupport,
		MinConfidence: cfg.Mining.MinConfidence,
		Mode:          cfg.Mining.Mode,
		PExplore:      cfg.Mining.PExplore,
		PExtend:       cfg.Mining.PExtend,
		Prune:         cfg.Mining.Prune,
		Multimodal:    cfg.Mining.Multimodal,
		Seed:          cfg.Mining.Seed,
	})
	snapshot.Capture(f, cfg.Mining.DepthStop-1)
	snapshot.Completed = true

	return manager.Save(ctx, snapshot)
}
