package miner

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/soundprediction/gfdminer/pkg/cache"
	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

// GenerateParallel mines the graph with a bounded pool of workers. Each
// worker explores one clause; the forest is only mutated between depth
// barriers, so workers share it read-only. A worker count below one
// falls back to GOMAXPROCS.
func GenerateParallel(g graph.Graph, opts Options, workers int) (*forest.Forest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 {
		return Generate(g, opts)
	}

	log := opts.logger()
	c := cache.New(g)
	f := initGenerationForest(g, c, &opts)
	log.Info("initialized generation forest", "types", len(f.Types()), "clauses", f.Size())

	modeSkip := make(map[graph.IRI]forest.ClauseSet)
	npruned := 0
	jobSeed := opts.Seed

	for depth := 0; depth < opts.Depths.Stop; depth++ {
		log.Info("generating depth", "depth", depth+1, "of", opts.Depths.Stop, "workers", workers)

		for _, ctype := range f.Types() {
			tree := f.GetTree(ctype)

			var jobs []*types.Clause
			for _, clause := range tree.Get(depth) {
				if depth == 0 && headViolatesMode(clause, opts.Mode) {
					if _, ok := modeSkip[ctype]; !ok {
						modeSkip[ctype] = make(forest.ClauseSet)
					}
					modeSkip[ctype].Add(clause)
					clause.ClearSatisfySets()
					continue
				}
				jobs = append(jobs, clause)
			}

			derivatives := make(forest.ClauseSet)
			var (
				mu  sync.Mutex
				wg  sync.WaitGroup
				sem = make(chan struct{}, workers)
			)

			for _, clause := range jobs {
				if clause.Body.Size() >= opts.MaxLengthBody {
					continue
				}

				wg.Add(1)
				jobSeed++
				go func(clause *types.Clause, seed int64) {
					defer wg.Done()
					sem <- struct{}{}
					defer func() { <-sem }()

					rng := rand.New(rand.NewSource(seed))
					found := explore(f, clause, pendantIncidents(clause, depth), depth, c, &opts, rng)

					mu.Lock()
					derivatives.Union(found)
					mu.Unlock()
				}(clause, jobSeed)
			}
			wg.Wait()

			pruneSet := make(forest.ClauseSet)
			for _, clause := range jobs {
				clause.ClearSatisfySets()
				if opts.Prune && depth > 0 && clause.Prune {
					pruneSet.Add(clause)
				}
			}

			if opts.Prune {
				f.Prune(ctype, pruneSet, depth)
				npruned += len(pruneSet)

				if depth == opts.Depths.Stop-1 {
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
