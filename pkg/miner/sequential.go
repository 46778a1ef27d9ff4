package miner

import (
	"math/rand"

	"github.com/soundprediction/gfdminer/pkg/cache"
	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/metrics"
	"github.com/soundprediction/gfdminer/pkg/types"
)

// Generate mines the graph breadth-first and returns the generation
// forest holding every surviving clause. Depths outside the requested
// window are cleared once their role as stepping stones is over.
func Generate(g graph.Graph, opts Options) (*forest.Forest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := opts.logger()
	rng := rand.New(rand.NewSource(opts.Seed))

	c := cache.New(g)
	f := initGenerationForest(g, c, &opts)
	log.Info("initialized generation forest", "types", len(f.Types()), "clauses", f.Size())

	modeSkip := make(map[graph.IRI]forest.ClauseSet)
	npruned := 0

	for depth := 0; depth < opts.Depths.Stop; depth++ {
		log.Info("generating depth", "depth", depth+1, "of", opts.Depths.Stop)

		for _, ctype := range f.Types() {
			tree := f.GetTree(ctype)
			derivatives := make(forest.ClauseSet)
			pruneSet := make(forest.ClauseSet)

			for _, clause := range tree.Get(depth) {
				if depth == 0 && headViolatesMode(clause, opts.Mode) {
					// Wrong head vocabulary for this mode, but
					// still usable as body candidate elsewhere.
					if _, ok := modeSkip[ctype]; !ok {
						modeSkip[ctype] = make(forest.ClauseSet)
					}
					modeSkip[ctype].Add(clause)
					clause.ClearSatisfySets()
					continue
				}

				if clause.Body.Size() < opts.MaxLengthBody {
					pendants := pendantIncidents(clause, depth)
					derivatives.Union(explore(f, clause, pendants, depth, c, &opts, rng))
				}

				clause.ClearSatisfySets()
				if opts.Prune && depth > 0 && clause.Prune {
					pruneSet.Add(clause)
				}
			}

			if opts.Prune {
				f.Prune(ctype, pruneSet, depth)
				npruned += len(pruneSet)

				if depth == opts.Depths.Stop-1 {
					// Nothing will ever supersede these.
					for d := range derivatives {
						if d.Prune {
							delete(derivatives, d)
							npruned++
						}
					}
				}
			}

			if depth == opts.Depths.Stop-1 {
				for d := range derivatives {
					d.ClearSatisfySets()
				}
			}

			log.Debug("expanded generation tree", "type", ctype, "depth", depth, "added", len(derivatives))

			if depth > 0 && !opts.Depths.Contains(depth) {
				before := tree.Size()
				f.Clear(ctype, depth)
				npruned += before - tree.Size()
			}

			if err := f.Update(ctype, derivatives, depth+1); err != nil {
				return nil, err
			}
		}
	}

	for ctype, skipped := range modeSkip {
		f.Prune(ctype, skipped, 0)
		npruned += len(skipped)
	}
	if !opts.Depths.Contains(0) {
		for _, ctype := range f.Types() {
			tree := f.GetTree(ctype)
			before := tree.Size()
			f.Clear(ctype, 0)
			npruned += before - tree.Size()
		}
	}

	log.Info("generation done", "clauses", f.Size(), "pruned", npruned)
	return f, nil
}

// headViolatesMode reports whether a depth-0 clause head uses the wrong
// vocabulary for the configured head mode.
func headViolatesMode(clause *types.Clause, mode Mode) bool {
	if mode.Head() == mode.Body() {
		return false
	}
	switch mode.Head() {
	case 'A':
		return types.IsTypeVariable(clause.Head.RHS)
	case 'T':
		return !types.IsTypeVariable(clause.Head.RHS)
	}
	return false
}

// pendantIncidents collects the frontier assertions of a clause body:
// those at the current depth whose object is still an unbound entity
// variable.
func pendantIncidents(clause *types.Clause, depth int) types.AssertionSet {
	pendants := make(types.AssertionSet)
	for a := range clause.Body.Distances[depth] {
		if _, ok := a.RHS.(types.ObjectTypeVariable); ok {
			pendants.Add(a)
		}
	}
	return pendants
}

// explore grows a clause at every pendant incident, drawing candidate
// extensions from the depth-0 vocabulary of the incident's type.
// Unsupported incidents are dropped from the passed set so deeper
// recursions skip them.
func explore(f *forest.Forest, clause *types.Clause, pendants types.AssertionSet,
	depth int, c *cache.Cache, opts *Options, rng *rand.Rand) forest.ClauseSet {

	extended := make(forest.ClauseSet)
	clauseIncidents := make(map[*types.Clause]*types.Assertion)
	unsupported := make(types.AssertionSet)

	for pendant := range pendants {
		v, ok := pendant.RHS.(types.ObjectTypeVariable)
		if !ok || !f.HasType(v.Type) {
			continue
		}
		if skip(rng, opts.PExplore) {
			continue
		}

		candidates := make(types.AssertionSet)
		for _, seed := range f.GetTree(v.Type).Get(0) {
			if bodyViolatesMode(seed.Head, opts.Mode) {
				continue
			}
			// Value ranges only make sense as terminal heads.
			if _, ok := seed.Head.RHS.(types.MultiModalNode); ok {
				continue
			}
			candidates.Add(seed.Head)
		}

		extensions := extend(clause, pendant, candidates, depth, c, opts, rng, 0)
		if len(extensions) == 0 {
			unsupported.Add(pendant)
			continue
		}

		collapseSiblings(extensions, pendant, opts)

		for ext := range extensions {
			clauseIncidents[ext] = pendant
		}
		extended.Union(extensions)
	}

	for pendant := range unsupported {
		delete(pendants, pendant)
	}

	for ext := range extended.Copy() {
		// The incident is saturated for this branch of the search.
		delete(pendants, clauseIncidents[ext])
		if ext.Body.Size() >= opts.MaxLengthBody {
			continue
		}
		extended.Union(explore(f, ext, pendants.Copy(), depth, c, opts, rng))
	}

	return extended
}

// collapseSiblings flags extension groups with identical statistics:
// among clauses with the same support and confidence, only the one with
// the fewest connections at the shared incident adds information.
func collapseSiblings(extensions forest.ClauseSet, pendant *types.Assertion, opts *Options) {
	if !opts.Prune {
		return
	}

	scoreSets := make(map[[2]int]forest.ClauseSet)
	for ext := range extensions {
		key := [2]int{ext.Support, ext.Confidence}
		if _, ok := scoreSets[key]; !ok {
			scoreSets[key] = make(forest.ClauseSet)
		}
		scoreSets[key].Add(ext)
	}

	for _, siblings := range scoreSets {
		if len(siblings) < 2 {
			continue
		}

		leanest := -1
		var keep *types.Clause
		ties := 0
		for ext := range siblings {
			n := len(ext.Body.Connections[pendant])
			switch {
			case leanest < 0 || n < leanest:
				leanest, keep, ties = n, ext, 1
			case n == leanest:
				ties++
			}
		}
		if ties == 1 {
			delete(siblings, keep)
		}
		for ext := range siblings {
			ext.Prune = true
		}
	}
}

// bodyViolatesMode reports whether an assertion uses the wrong
// vocabulary for the configured body mode.
func bodyViolatesMode(a *types.Assertion, mode Mode) bool {
	switch mode.Body() {
	case 'A':
		return types.IsTypeVariable(a.RHS)
	case 'T':
		return !types.IsTypeVariable(a.RHS)
	}
	return false
}

// extend attaches each candidate assertion to the clause body at the
// pendant incident, keeping extensions that clear the support and
// confidence thresholds. Accepted and unsupported candidates are both
// removed from the set before recursing, so a candidate is attached at
// most once per branch.
func extend(parent *types.Clause, pendant *types.Assertion, candidates types.AssertionSet,
	depth int, c *cache.Cache, opts *Options, rng *rand.Rand, width int) forest.ClauseSet {

	extended := make(forest.ClauseSet)
	if width >= opts.MaxWidth {
		return extended
	}

	clauseExtensions := make(map[*types.Clause]*types.Assertion)
	unsupported := make(types.AssertionSet)

	for candidate := range candidates {
		if redundant(parent, candidate, depth, c) {
			continue
		}
		if skip(rng, opts.PExtend) {
			continue
		}

		body := parent.Body.Copy()
		body.Extend(pendant, candidate.Copy())

		support, satisfiesBody := metrics.SupportOf(c, body, body.Identity, parent.SatisfyBody, opts.MinSupport)
		if support < opts.MinSupport {
			unsupported.Add(candidate)
			continue
		}
		confidence, satisfiesFull := metrics.ConfidenceOf(c, parent.Head, satisfiesBody)
		if confidence < opts.MinConfidence {
			unsupported.Add(candidate)
			continue
		}

		ext := types.NewClause(parent.Head, body, parent)
		ext.SatisfyBody = satisfiesBody
		ext.SatisfyFull = satisfiesFull
		ext.Support = support
		ext.Confidence = confidence
		ext.DomainProbability = float64(confidence) / float64(support)
		if pfreq := metrics.PredicateFrequency(c, parent.Head, satisfiesBody); pfreq > 0 {
			ext.RangeProbability = float64(confidence) / float64(pfreq)
		}
		// A child that explains no fewer entities than its parent
		// adds a condition without narrowing anything.
		if support >= parent.Support {
			ext.Prune = true
		}

		parent.Children = append(parent.Children, ext)
		clauseExtensions[ext] = candidate
		extended.Add(ext)
	}

	for candidate := range unsupported {
		delete(candidates, candidate)
	}

	for ext := range extended.Copy() {
		delete(candidates, clauseExtensions[ext])
		if ext.Body.Size() >= opts.MaxLengthBody {
			continue
		}
		extended.Union(extend(ext, pendant, candidates.Copy(), depth, c, opts, rng, width+1))
	}

	return extended
}

// redundant reports whether attaching the candidate would restate
// either the clause head or an assertion already present at the new
// distance.
func redundant(parent *types.Clause, candidate *types.Assertion, depth int, c *cache.Cache) bool {
	if depth == 0 && types.IsEquivalent(parent.Head, candidate, c) {
		return true
	}
	for a := range parent.Body.Distances[depth+1] {
		if types.IsEquivalent(a, candidate, c) {
			return true
		}
	}
	return false
}
