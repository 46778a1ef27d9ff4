package types

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/soundprediction/gfdminer/pkg/graph"
)

// Assertion is a directed labeled edge (lhs, predicate, rhs) in a
// clause pattern. Each instance carries a unique ID so two structurally
// identical assertions used in different positions of a pattern remain
// distinguishable; within a body, assertions are keyed by pointer.
type Assertion struct {
	LHS       Resource
	Predicate graph.IRI
	RHS       Resource

	// ID is the instantiation token, stable across body copies.
	ID string
}

// NewAssertion creates an assertion with a fresh instantiation token.
func NewAssertion(lhs Resource, predicate graph.IRI, rhs Resource) *Assertion {
	return &Assertion{
		LHS:       lhs,
		Predicate: predicate,
		RHS:       rhs,
		ID:        uuid.NewString(),
	}
}

// NewIdentityAssertion creates the reserved reflexive assertion
// (v, identity, v) that anchors a clause body to its entity variable.
func NewIdentityAssertion(v ObjectTypeVariable) *Assertion {
	return NewAssertion(v, graph.Identity, v)
}

// Copy returns a structurally identical assertion under a new
// instantiation token, for reuse in another pattern position.
func (a *Assertion) Copy() *Assertion {
	return NewAssertion(a.LHS, a.Predicate, a.RHS)
}

// IsIdentity reports whether this is the reflexive anchor.
func (a *Assertion) IsIdentity() bool { return a.Predicate == graph.Identity }

func (a *Assertion) String() string {
	return fmt.Sprintf("(%s, %s, %s)", a.LHS, a.Predicate, a.RHS)
}

// AssertionSet is keyed by instantiation, not by structure.
type AssertionSet map[*Assertion]struct{}

// NewAssertionSet returns a set holding the given assertions.
func NewAssertionSet(assertions ...*Assertion) AssertionSet {
	s := make(AssertionSet, len(assertions))
	for _, a := range assertions {
		s[a] = struct{}{}
	}
	return s
}

// Add inserts a.
func (s AssertionSet) Add(a *Assertion) { s[a] = struct{}{} }

// Has reports membership of a.
func (s AssertionSet) Has(a *Assertion) bool {
	_, ok := s[a]
	return ok
}

// Copy returns an independent shallow copy.
func (s AssertionSet) Copy() AssertionSet {
	c := make(AssertionSet, len(s))
	for a := range s {
		c[a] = struct{}{}
	}
	return c
}
