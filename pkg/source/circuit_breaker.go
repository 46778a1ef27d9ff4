package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// BreakerSettings tunes the circuit breaker around a remote source.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	ReadyToTripRatio float64
}

// CircuitBreakerSource wraps a Source with circuit breaking logic, so a
// flapping backend fails fast instead of hanging every retry.
type CircuitBreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker
	log    *slog.Logger
}

// NewCircuitBreakerSource creates a circuit-breaking wrapper around a
// source.
func NewCircuitBreakerSource(source Source, name string, cfg BreakerSettings, log *slog.Logger) *CircuitBreakerSource {
	if log == nil {
		log = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Error("circuit breaker tripped", "name", name, "from", from.String(), "to", to.String())
			}
		},
	}

	return &CircuitBreakerSource{
		source: source,
		cb:     gobreaker.NewCircuitBreaker(st),
		log:    log,
	}
}

// Load implements Source.
func (s *CircuitBreakerSource) Load(ctx context.Context) (*graph.MemoryGraph, error) {
	g, err := s.cb.Execute(func() (interface{}, error) {
		return s.source.Load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return g.(*graph.MemoryGraph), nil
}

// Close implements Source.
func (s *CircuitBreakerSource) Close(ctx context.Context) error {
	return s.source.Close(ctx)
}
