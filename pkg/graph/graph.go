package graph

// Graph is the read-only triple interface the miner depends on. How a
// graph is materialised (file, database, fixture) is the provider's
// concern; see MemoryGraph and pkg/source.
type Graph interface {
	// Triples returns every triple in the graph.
	Triples() []Triple

	// TriplesFrom returns every triple with the given subject.
	TriplesFrom(s Term) []Triple

	// Objects returns the objects of all (s, p, ·) triples.
	Objects(s Term, p IRI) []Term

	// Value returns one object of (s, p, ·), if any. Which one is
	// unspecified when several exist.
	Value(s Term, p IRI) (Term, bool)

	// Has reports whether the triple (s, p, o) is present.
	Has(s Term, p IRI, o Term) bool

	// Subjects returns the distinct subjects.
	Subjects() []Term

	// ObjectTerms returns the distinct objects.
	ObjectTerms() []Term

	// Len returns the number of triples.
	Len() int
}

// MemoryGraph is an indexed in-memory Graph.
type MemoryGraph struct {
	triples   []Triple
	bySubject map[Term][]Triple
	index     map[Triple]struct{}
}

// NewMemoryGraph returns an empty graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		bySubject: make(map[Term][]Triple),
		index:     make(map[Triple]struct{}),
	}
}

// Add inserts a triple. Duplicates are ignored.
func (g *MemoryGraph) Add(t Triple) {
	if _, ok := g.index[t]; ok {
		return
	}
	g.index[t] = struct{}{}
	g.triples = append(g.triples, t)
	g.bySubject[t.Subject] = append(g.bySubject[t.Subject], t)
}

func (g *MemoryGraph) Triples() []Triple { return g.triples }

func (g *MemoryGraph) TriplesFrom(s Term) []Triple { return g.bySubject[s] }

func (g *MemoryGraph) Objects(s Term, p IRI) []Term {
	var objects []Term
	for _, t := range g.bySubject[s] {
		if t.Predicate == p {
			objects = append(objects, t.Object)
		}
	}
	return objects
}

func (g *MemoryGraph) Value(s Term, p IRI) (Term, bool) {
	for _, t := range g.bySubject[s] {
		if t.Predicate == p {
			return t.Object, true
		}
	}
	return nil, false
}

func (g *MemoryGraph) Has(s Term, p IRI, o Term) bool {
	_, ok := g.index[Triple{Subject: s, Predicate: p, Object: o}]
	return ok
}

func (g *MemoryGraph) Subjects() []Term {
	seen := make(Set, len(g.bySubject))
	var subjects []Term
	for _, t := range g.triples {
		if !seen.Has(t.Subject) {
			seen.Add(t.Subject)
			subjects = append(subjects, t.Subject)
		}
	}
	return subjects
}

func (g *MemoryGraph) ObjectTerms() []Term {
	seen := make(Set, len(g.triples))
	var objects []Term
	for _, t := range g.triples {
		if !seen.Has(t.Object) {
			seen.Add(t.Object)
			objects = append(objects, t.Object)
		}
	}
	return objects
}

func (g *MemoryGraph) Len() int { return len(g.triples) }
