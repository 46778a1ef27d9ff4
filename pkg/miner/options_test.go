package miner

import (
	"math/rand"
	"testing"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{ModeAA, ModeAT, ModeAB, ModeTA, ModeTT, ModeTB, ModeBA, ModeBT, ModeBB} {
		if !m.Valid() {
			t.Errorf("Valid(%s) = false", m)
		}
	}
	for _, m := range []Mode{"", "A", "AAA", "XX", "Ab", "ba"} {
		if m.Valid() {
			t.Errorf("Valid(%q) = true", m)
		}
	}
}

func TestModeLetters(t *testing.T) {
	if ModeAT.Head() != 'A' || ModeAT.Body() != 'T' {
		t.Errorf("ModeAT letters = %c%c", ModeAT.Head(), ModeAT.Body())
	}
}

func TestDepthRangeContains(t *testing.T) {
	r := DepthRange{Start: 1, Stop: 3}
	for depth, want := range map[int]bool{0: false, 1: true, 2: true, 3: false} {
		if got := r.Contains(depth); got != want {
			t.Errorf("Contains(%d) = %v, want %v", depth, got, want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := validated(func(o *Options) {}); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}

	cases := map[string]func(*Options){
		"bad mode":          func(o *Options) { o.Mode = "QQ" },
		"empty depth range": func(o *Options) { o.Depths = DepthRange{Start: 1, Stop: 1} },
		"negative start":    func(o *Options) { o.Depths = DepthRange{Start: -1, Stop: 2} },
		"zero support":      func(o *Options) { o.MinSupport = 0 },
		"zero confidence":   func(o *Options) { o.MinConfidence = 0 },
		"p explore low":     func(o *Options) { o.PExplore = -0.1 },
		"p explore high":    func(o *Options) { o.PExplore = 1.1 },
		"p extend high":     func(o *Options) { o.PExtend = 2.0 },
		"zero body length":  func(o *Options) { o.MaxLengthBody = 0 },
		"zero width":        func(o *Options) { o.MaxWidth = 0 },
	}
	for name, corrupt := range cases {
		if err := validated(corrupt); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func validated(corrupt func(*Options)) error {
	opts := DefaultOptions()
	corrupt(&opts)
	return opts.Validate()
}

func TestIgnoredPredicates(t *testing.T) {
	opts := DefaultOptions()
	if !opts.ignored(graph.RDFType) {
		t.Error("rdf:type should be ignored by default")
	}
	if opts.ignored(knows) {
		t.Error("domain predicates should not be ignored")
	}
}

func TestSkipNeverDrawsWhenExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if skip(rng, 1.0) {
			t.Fatal("skip must never trigger at p = 1.0")
		}
	}
}
