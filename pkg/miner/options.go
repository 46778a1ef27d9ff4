package miner

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// Mode restricts the vocabulary of heads (first letter) and bodies
// (second letter): A keeps bound resources only, T type variables only,
// B both.
type Mode string

const (
	ModeAA Mode = "AA"
	ModeAT Mode = "AT"
	ModeAB Mode = "AB"
	ModeTA Mode = "TA"
	ModeTT Mode = "TT"
	ModeTB Mode = "TB"
	ModeBA Mode = "BA"
	ModeBT Mode = "BT"
	ModeBB Mode = "BB"
)

// Valid reports whether m is one of the nine recognised combinations.
func (m Mode) Valid() bool {
	if len(m) != 2 {
		return false
	}
	for _, c := range []byte(m) {
		if c != 'A' && c != 'T' && c != 'B' {
			return false
		}
	}
	return true
}

// Head and Body return the per-position restriction letters.
func (m Mode) Head() byte { return m[0] }
func (m Mode) Body() byte { return m[1] }

// DepthRange selects which depths are mined and kept. Depths up to and
// including Stop-1 body extensions are explored (producing clauses at
// depths 1..Stop); only depths in [Start, Stop) survive in the result.
type DepthRange struct {
	Start int
	Stop  int
}

// Contains reports whether a depth is kept in the final forest.
func (r DepthRange) Contains(depth int) bool {
	return depth >= r.Start && depth < r.Stop
}

// Options bundles the mining parameters. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	Depths        DepthRange
	MinSupport    int
	MinConfidence int
	Mode          Mode

	// PExplore is the probability that a pendant endpoint is
	// explored at all; PExtend the probability that an accepted
	// candidate is kept. Both 1.0 for exhaustive search.
	PExplore float64
	PExtend  float64

	// Prune removes clauses flagged for lazy deletion once their
	// children have been generated.
	Prune bool

	MaxLengthBody int
	MaxWidth      int

	// Multimodal enables clustered literal heads at depth 0.
	Multimodal bool

	// Seed feeds the stochastic skips; runs with the same seed,
	// graph, and parameters draw identical decisions.
	Seed int64

	// IgnorePredicates are skipped when seeding depth 0. rdf:type
	// and rdfs:label are structural rather than informative.
	IgnorePredicates []graph.IRI

	Logger *slog.Logger
}

// DefaultOptions returns the baseline parameters used by the CLI.
func DefaultOptions() Options {
	return Options{
		Depths:           DepthRange{Start: 0, Stop: 2},
		MinSupport:       2,
		MinConfidence:    2,
		Mode:             ModeBB,
		PExplore:         1.0,
		PExtend:          1.0,
		Prune:            true,
		MaxLengthBody:    8,
		MaxWidth:         8,
		IgnorePredicates: []graph.IRI{graph.RDFType, graph.RDFSLabel},
	}
}

// Validate reports the first parameter contract violation.
func (o *Options) Validate() error {
	if !o.Mode.Valid() {
		return fmt.Errorf("miner: invalid mode %q", o.Mode)
	}
	if o.Depths.Stop <= 0 || o.Depths.Start < 0 || o.Depths.Start >= o.Depths.Stop {
		return fmt.Errorf("miner: invalid depth range [%d, %d)", o.Depths.Start, o.Depths.Stop)
	}
	if o.MinSupport < 1 {
		return errors.New("miner: min support must be at least 1")
	}
	if o.MinConfidence < 1 {
		return errors.New("miner: min confidence must be at least 1")
	}
	if o.PExplore < 0 || o.PExplore > 1 || o.PExtend < 0 || o.PExtend > 1 {
		return errors.New("miner: exploration probabilities must be within [0, 1]")
	}
	if o.MaxLengthBody < 1 || o.MaxWidth < 1 {
		return errors.New("miner: body length and width budgets must be at least 1")
	}
	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Options) ignored(p graph.IRI) bool {
	for _, ignore := range o.IgnorePredicates {
		if p == ignore {
			return true
		}
	}
	return false
}

// skip draws a stochastic skip decision: true with probability 1-p.
// Exhaustive searches never draw, keeping them deterministic.
func skip(rng *rand.Rand, p float64) bool {
	if p >= 1.0 {
		return false
	}
	return p < rng.Float64()
}
