package gfdminer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soundprediction/gfdminer/pkg/config"
	"github.com/soundprediction/gfdminer/pkg/source"
)

// openSource builds the configured graph source, wrapping remote
// backends in a circuit breaker.
func openSource(cfg *config.Config, log *slog.Logger) (source.Source, error) {
	switch cfg.Source.Driver {
	case "file", "":
		return source.NewFileSource(cfg.Source.URI), nil
	case "neo4j":
		src, err := source.NewNeo4jSource(cfg.Source.URI, cfg.Source.Username, cfg.Source.Password, cfg.Source.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open neo4j source: %w", err)
		}
		if !cfg.CircuitBreaker.Enabled {
			return src, nil
		}
		return source.NewCircuitBreakerSource(src, "neo4j", source.BreakerSettings{
			MaxRequests:      cfg.CircuitBreaker.MaxRequests,
			Interval:         time.Duration(cfg.CircuitBreaker.Interval) * time.Second,
			Timeout:          time.Duration(cfg.CircuitBreaker.Timeout) * time.Second,
			ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
		}, log), nil
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Source.Driver)
	}
}
