// Package cache builds the derived indices the miner reads instead of
// rescanning the graph: type membership for entities, datatype
// membership for literals, and forward/backward adjacency per
// predicate. A Cache is built exactly once per mining session and is
// read-only afterwards, which is what makes it shareable across
// workers.
package cache

import "github.com/soundprediction/gfdminer/pkg/graph"

// TypeMap indexes membership in both directions. Lookups on resources
// never observed in the graph yield zero values, not errors.
type TypeMap struct {
	ObjectToType map[graph.Term]graph.IRI
	TypeToObject map[graph.IRI]graph.Set
}

// Adjacency holds both directions of one predicate's edges.
type Adjacency struct {
	// Forwards maps subject to the set of objects.
	Forwards map[graph.Term]graph.Set
	// Backwards maps object to the set of subjects.
	Backwards map[graph.Term]graph.Set
}

// Cache bundles the three derived indices.
type Cache struct {
	ObjectTypeMap TypeMap
	DataTypeMap   TypeMap
	PredicateMap  map[graph.IRI]*Adjacency
}

// New scans the graph once per index.
func New(g graph.Graph) *Cache {
	return &Cache{
		ObjectTypeMap: buildObjectTypeMap(g),
		DataTypeMap:   buildDataTypeMap(g),
		PredicateMap:  buildPredicateMap(g),
	}
}

// buildObjectTypeMap indexes every IRI subject under its rdf:type,
// defaulting to rdfs:Class for untyped entities.
func buildObjectTypeMap(g graph.Graph) TypeMap {
	m := TypeMap{
		ObjectToType: make(map[graph.Term]graph.IRI),
		TypeToObject: make(map[graph.IRI]graph.Set),
	}
	for _, s := range g.Subjects() {
		if _, ok := s.(graph.IRI); !ok {
			continue
		}

		ctype := graph.RDFSClass
		if v, ok := g.Value(s, graph.RDFType); ok {
			if iri, ok := v.(graph.IRI); ok {
				ctype = iri
			}
		}

		if _, ok := m.TypeToObject[ctype]; !ok {
			m.TypeToObject[ctype] = make(graph.Set)
		}
		m.TypeToObject[ctype].Add(s)
		m.ObjectToType[s] = ctype
	}
	return m
}

// buildDataTypeMap indexes every literal object under its effective
// datatype.
func buildDataTypeMap(g graph.Graph) TypeMap {
	m := TypeMap{
		ObjectToType: make(map[graph.Term]graph.IRI),
		TypeToObject: make(map[graph.IRI]graph.Set),
	}
	for _, o := range g.ObjectTerms() {
		lit, ok := o.(graph.Literal)
		if !ok {
			continue
		}

		dtype := lit.EffectiveDatatype()
		if _, ok := m.TypeToObject[dtype]; !ok {
			m.TypeToObject[dtype] = make(graph.Set)
		}
		m.TypeToObject[dtype].Add(o)
		m.ObjectToType[o] = dtype
	}
	return m
}

func buildPredicateMap(g graph.Graph) map[graph.IRI]*Adjacency {
	m := make(map[graph.IRI]*Adjacency)
	for _, t := range g.Triples() {
		adj, ok := m[t.Predicate]
		if !ok {
			adj = &Adjacency{
				Forwards:  make(map[graph.Term]graph.Set),
				Backwards: make(map[graph.Term]graph.Set),
			}
			m[t.Predicate] = adj
		}

		if _, ok := adj.Forwards[t.Subject]; !ok {
			adj.Forwards[t.Subject] = make(graph.Set)
		}
		adj.Forwards[t.Subject].Add(t.Object)

		if _, ok := adj.Backwards[t.Object]; !ok {
			adj.Backwards[t.Object] = make(graph.Set)
		}
		adj.Backwards[t.Object].Add(t.Subject)
	}
	return m
}

// TypeOf implements types.TypeLookup.
func (c *Cache) TypeOf(t graph.Term) (graph.IRI, bool) {
	typ, ok := c.ObjectTypeMap.ObjectToType[t]
	return typ, ok
}

// DatatypeOf implements types.TypeLookup.
func (c *Cache) DatatypeOf(t graph.Term) (graph.IRI, bool) {
	dt, ok := c.DataTypeMap.ObjectToType[t]
	return dt, ok
}

// MembersOf returns the entities of a type; nil when the type was
// never observed.
func (c *Cache) MembersOf(ctype graph.IRI) graph.Set {
	return c.ObjectTypeMap.TypeToObject[ctype]
}

// ForwardsOf returns the objects reachable from entity over predicate;
// nil when none exist.
func (c *Cache) ForwardsOf(predicate graph.IRI, entity graph.Term) graph.Set {
	adj, ok := c.PredicateMap[predicate]
	if !ok {
		return nil
	}
	return adj.Forwards[entity]
}

// BackwardsOf returns the subjects reaching object over predicate; nil
// when none exist.
func (c *Cache) BackwardsOf(predicate graph.IRI, object graph.Term) graph.Set {
	adj, ok := c.PredicateMap[predicate]
	if !ok {
		return nil
	}
	return adj.Backwards[object]
}

// Domain returns the set of subjects for which predicate is defined at
// all; nil for unknown predicates.
func (c *Cache) Domain(predicate graph.IRI) map[graph.Term]graph.Set {
	adj, ok := c.PredicateMap[predicate]
	if !ok {
		return nil
	}
	return adj.Forwards
}
