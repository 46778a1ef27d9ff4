package types

import "github.com/soundprediction/gfdminer/pkg/graph"

// TypeLookup resolves concrete terms to their (data)type. The index
// cache implements it; tests can use a fixture.
type TypeLookup interface {
	// TypeOf returns the type of an entity observed in the graph.
	TypeOf(t graph.Term) (graph.IRI, bool)

	// DatatypeOf returns the datatype of a literal observed in the
	// graph.
	DatatypeOf(t graph.Term) (graph.IRI, bool)
}

// IsEquivalent reports whether two assertions constrain an entity in
// the same way: same entity-variable type on the left, same predicate,
// and right-hand sides that are identical, type variables over the same
// type, or a type variable matched by the other side's concrete type.
// The relation is symmetric.
func IsEquivalent(a, b *Assertion, lookup TypeLookup) bool {
	alhs, aok := a.LHS.(ObjectTypeVariable)
	blhs, bok := b.LHS.(ObjectTypeVariable)
	if !aok || !bok || alhs.Type != blhs.Type || a.Predicate != b.Predicate {
		return false
	}

	if a.RHS == b.RHS {
		return true
	}

	if av, ok := a.RHS.(TypeVariable); ok {
		if bv, ok := b.RHS.(TypeVariable); ok && av.VarType() == bv.VarType() {
			return true
		}
	}

	return isSameType(a.RHS, b.RHS, lookup) || isSameType(b.RHS, a.RHS, lookup)
}

// isSameType reports whether x is a type variable whose type matches
// the observed type of the concrete resource y.
func isSameType(x, y Resource, lookup TypeLookup) bool {
	switch v := x.(type) {
	case ObjectTypeVariable:
		if iri, ok := y.(graph.IRI); ok {
			if t, found := lookup.TypeOf(iri); found && t == v.Type {
				return true
			}
		}
	case DataTypeVariable:
		if lit, ok := y.(graph.Literal); ok {
			if t, found := lookup.DatatypeOf(lit); found && t == v.Type {
				return true
			}
		}
	}
	return false
}
