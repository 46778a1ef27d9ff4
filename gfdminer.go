// Package gfdminer mines conditional graph rules from typed knowledge
// graphs. Observed (entity, predicate, value) patterns are generalised
// into Horn-like clauses whose bodies are connected subgraph conditions,
// scored by support and confidence against type membership.
//
// The package root offers convenience entry points; pkg/miner exposes
// the full parameter surface.
package gfdminer

import (
	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/miner"
)

// Options re-exports the mining parameters.
type Options = miner.Options

// DefaultOptions returns the baseline mining parameters.
func DefaultOptions() Options { return miner.DefaultOptions() }

// Mine searches the graph sequentially and returns the generation
// forest of surviving clauses.
func Mine(g graph.Graph, opts Options) (*forest.Forest, error) {
	return miner.Generate(g, opts)
}

// MineParallel searches the graph with a bounded worker pool.
func MineParallel(g graph.Graph, opts Options, workers int) (*forest.Forest, error) {
	return miner.GenerateParallel(g, opts, workers)
}

// MineFile mines an N-Triples file with the given parameters.
func MineFile(path string, opts Options) (*forest.Forest, error) {
	g, err := graph.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Mine(g, opts)
}
