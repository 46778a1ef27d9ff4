package miner

import (
	"sort"

	"github.com/soundprediction/gfdminer/pkg/cache"
	"github.com/soundprediction/gfdminer/pkg/forest"
	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/multimodal"
	"github.com/soundprediction/gfdminer/pkg/types"
)

// initGenerationForest seeds one tree per entity type whose membership
// can still satisfy the minimal support. Depth 0 holds a clause per
// distinct (predicate, object) pair plus the derived type-variable and
// multimodal generalisations, each with statistics computed directly
// against type membership.
func initGenerationForest(g graph.Graph, c *cache.Cache, opts *Options) *forest.Forest {
	log := opts.logger()
	log.Info("initializing generation forest")

	f := forest.NewForest()
	for _, ctype := range sortedTypes(c) {
		members := c.MembersOf(ctype)
		// No pattern of this type can beat its own membership.
		if len(members) < opts.MinSupport {
			continue
		}

		tree := initGenerationTree(g, ctype, members, opts)
		if tree.Size() == 0 {
			continue
		}

		log.Debug("initialized generation tree", "type", ctype, "clauses", tree.Size())
		f.Plant(ctype, tree)
	}
	return f
}

// initGenerationTree seeds the depth-0 vocabulary of one type.
func initGenerationTree(g graph.Graph, ctype graph.IRI,
	members graph.Set, opts *Options) *forest.Tree {

	generateAboxHeads := opts.Mode != ModeTT
	generateTboxHeads := opts.Mode != ModeAA

	pom := mapPredicateObjectPairs(g, members, opts)
	v := types.ObjectTypeVariable{Type: ctype}
	tree := forest.NewTree()

	predicates := make([]graph.IRI, 0, len(pom))
	for p := range pom {
		predicates = append(predicates, p)
	}
	sort.Slice(predicates, func(i, j int) bool { return predicates[i] < predicates[j] })

	for _, p := range predicates {
		pfreq := 0
		for _, n := range pom[p] {
			pfreq += n
		}
		// Entities of this type carrying the predicate bound the
		// support of every pattern over it.
		if pfreq < opts.MinSupport {
			continue
		}

		objectTypes := make(map[graph.IRI]graph.Set)
		dataTypes := make(map[graph.IRI]graph.Set)
		dataTypeValues := make(map[graph.IRI][]graph.Literal)

		for o, count := range pom[p] {
			if generateTboxHeads {
				mapResources(g, p, o, members, objectTypes, dataTypes)
			}

			if opts.Multimodal {
				if lit, ok := o.(graph.Literal); ok {
					dtype := lit.EffectiveDatatype()
					if multimodal.Supported(dtype) {
						for i := 0; i < count; i++ {
							dataTypeValues[dtype] = append(dataTypeValues[dtype], lit)
						}
					}
				}
			}
		}

		if generateAboxHeads {
			for o := range pom[p] {
				if opts.Multimodal {
					// Multimodal nodes subsume bound literal heads.
					if _, ok := o.(graph.Literal); ok {
						continue
					}
				}
				if phi := newClause(g, v, p, o, members, pfreq, opts.MinConfidence); phi != nil {
					tree.Add(phi, 0)
				}
			}
		}

		if generateTboxHeads {
			for otype, satisfying := range objectTypes {
				rhs := types.ObjectTypeVariable{Type: otype}
				if phi := newVariableClause(v, p, rhs, satisfying, pfreq, opts.MinConfidence); phi != nil {
					tree.Add(phi, 0)
				}
			}
			for dtype, satisfying := range dataTypes {
				rhs := types.DataTypeVariable{Type: dtype}
				if phi := newVariableClause(v, p, rhs, satisfying, pfreq, opts.MinConfidence); phi != nil {
					tree.Add(phi, 0)
				}
			}
		}

		if opts.Multimodal {
			for dtype, values := range dataTypeValues {
				// Subsets cannot beat the full value multiset.
				if len(values) < opts.MinConfidence {
					continue
				}

				nodes := multimodal.Cluster(values, dtype)
				if len(nodes) == 0 || len(values)/len(nodes) < opts.MinConfidence {
					// The theoretical maximum confidence per
					// cluster already misses the threshold.
					continue
				}

				for _, node := range nodes {
					phi := newMultiModalClause(g, v, p, node, members, pfreq, opts.MinConfidence)
					if phi != nil {
						tree.Add(phi, 0)
					}
				}
			}
		}
	}

	return tree
}

// newClause seeds an Abox clause with a bound object.
func newClause(g graph.Graph, v types.ObjectTypeVariable, p graph.IRI, o graph.Term,
	members graph.Set, pfreq, minConfidence int) *types.Clause {

	phi := types.NewClause(
		types.NewAssertion(v, p, o),
		types.NewClauseBody(types.NewIdentityAssertion(v)),
		nil,
	)

	phi.SatisfyFull = make(graph.Set)
	for e := range members {
		if g.Has(e, p, o) {
			phi.SatisfyFull.Add(e)
		}
	}
	phi.Confidence = len(phi.SatisfyFull)
	if phi.Confidence < minConfidence {
		return nil
	}

	phi.SatisfyBody = members.Copy()
	phi.Support = len(phi.SatisfyBody)
	phi.DomainProbability = float64(phi.Confidence) / float64(phi.Support)
	phi.RangeProbability = float64(phi.Confidence) / float64(pfreq)
	return phi
}

// newVariableClause seeds a Tbox clause with a type-variable object.
// Its domain is the member subset for which the predicate reaches the
// variable's type at all, so both statistics count that subset.
func newVariableClause(v types.ObjectTypeVariable, p graph.IRI, rhs types.TypeVariable,
	satisfying graph.Set, pfreq, minConfidence int) *types.Clause {

	phi := types.NewClause(
		types.NewAssertion(v, p, rhs),
		types.NewClauseBody(types.NewIdentityAssertion(v)),
		nil,
	)

	phi.SatisfyFull = satisfying.Copy()
	phi.Confidence = len(phi.SatisfyFull)
	if phi.Confidence < minConfidence {
		return nil
	}

	phi.SatisfyBody = satisfying.Copy()
	phi.Support = len(phi.SatisfyBody)
	phi.DomainProbability = float64(phi.Confidence) / float64(phi.Support)
	phi.RangeProbability = float64(phi.Confidence) / float64(pfreq)
	return phi
}

// newMultiModalClause seeds a clause whose head is a clustered value
// range.
func newMultiModalClause(g graph.Graph, v types.ObjectTypeVariable,
	p graph.IRI, node types.MultiModalNode, members graph.Set,
	pfreq, minConfidence int) *types.Clause {

	phi := types.NewClause(
		types.NewAssertion(v, p, node),
		types.NewClauseBody(types.NewIdentityAssertion(v)),
		nil,
	)

	phi.SatisfyFull = make(graph.Set)
	for e := range members {
		for _, o := range g.Objects(e, p) {
			if lit, ok := o.(graph.Literal); ok && node.Contains(lit) {
				phi.SatisfyFull.Add(e)
				break
			}
		}
	}
	phi.Confidence = len(phi.SatisfyFull)
	if phi.Confidence < minConfidence {
		return nil
	}

	phi.SatisfyBody = members.Copy()
	phi.Support = len(phi.SatisfyBody)
	phi.DomainProbability = float64(phi.Confidence) / float64(phi.Support)
	phi.RangeProbability = float64(phi.Confidence) / float64(pfreq)
	return phi
}

// mapResources files a (p, o) pair's satisfying entities under the
// object's observed type or datatype.
func mapResources(g graph.Graph, p graph.IRI, o graph.Term, members graph.Set,
	objectTypes, dataTypes map[graph.IRI]graph.Set) {

	var (
		key    graph.IRI
		target map[graph.IRI]graph.Set
	)
	switch t := o.(type) {
	case graph.IRI:
		key = graph.RDFSClass
		if v, ok := g.Value(o, graph.RDFType); ok {
			if iri, ok := v.(graph.IRI); ok {
				key = iri
			}
		}
		target = objectTypes
	case graph.Literal:
		key = t.EffectiveDatatype()
		target = dataTypes
	default:
		return
	}

	if _, ok := target[key]; !ok {
		target[key] = make(graph.Set)
	}
	for e := range members {
		if g.Has(e, p, o) {
			target[key].Add(e)
		}
	}
}

// mapPredicateObjectPairs counts the (predicate, object) pairs observed
// among the members of a type.
func mapPredicateObjectPairs(g graph.Graph, members graph.Set, opts *Options) map[graph.IRI]map[graph.Term]int {
	pom := make(map[graph.IRI]map[graph.Term]int)
	for e := range members {
		for _, t := range g.TriplesFrom(e) {
			if opts.ignored(t.Predicate) {
				continue
			}
			if _, ok := pom[t.Predicate]; !ok {
				pom[t.Predicate] = make(map[graph.Term]int)
			}
			pom[t.Predicate][t.Object]++
		}
	}
	return pom
}

func sortedTypes(c *cache.Cache) []graph.IRI {
	ctypes := make([]graph.IRI, 0, len(c.ObjectTypeMap.TypeToObject))
	for ctype := range c.ObjectTypeMap.TypeToObject {
		ctypes = append(ctypes, ctype)
	}
	sort.Slice(ctypes, func(i, j int) bool { return ctypes[i] < ctypes[j] })
	return ctypes
}
