package types

import (
	"fmt"
	"sort"
	"strings"
)

// ClauseBody is a rooted, connected, acyclic pattern graph over
// assertions. The root is always the identity assertion at distance 0;
// every other assertion sits one step further from the root than the
// endpoint it was extended from. Extension is append-only: branching
// searches must Copy before they Extend.
type ClauseBody struct {
	// Identity is the reflexive anchor, the single root.
	Identity *Assertion

	// Connections records which assertions extend which. Every
	// assertion of the body is present as a key, leaves with an
	// empty set.
	Connections map[*Assertion]AssertionSet

	// Distances partitions the assertions by BFS distance from the
	// root. The frontier at depth d is Distances[d].
	Distances map[int]AssertionSet

	distanceOf map[*Assertion]int
}

// NewClauseBody returns a body holding only the identity anchor.
func NewClauseBody(identity *Assertion) *ClauseBody {
	if identity == nil || !identity.IsIdentity() {
		panic("types: clause body requires an identity assertion as root")
	}
	return &ClauseBody{
		Identity:    identity,
		Connections: map[*Assertion]AssertionSet{identity: make(AssertionSet)},
		Distances:   map[int]AssertionSet{0: NewAssertionSet(identity)},
		distanceOf:  map[*Assertion]int{identity: 0},
	}
}

// Extend appends extension to the pattern as a child of endpoint. The
// endpoint must already be part of the body and the extension must not;
// violating either is a caller bug and panics.
func (b *ClauseBody) Extend(endpoint, extension *Assertion) {
	if extension == nil {
		panic("types: cannot extend clause body with nil assertion")
	}
	if _, ok := b.Connections[endpoint]; !ok {
		panic(fmt.Sprintf("types: endpoint %s is not part of the clause body", endpoint))
	}
	if _, ok := b.Connections[extension]; ok {
		panic(fmt.Sprintf("types: assertion %s is already part of the clause body", extension))
	}

	b.Connections[endpoint].Add(extension)
	b.Connections[extension] = make(AssertionSet)

	distance := b.distanceOf[endpoint] + 1
	if _, ok := b.Distances[distance]; !ok {
		b.Distances[distance] = make(AssertionSet)
	}
	b.Distances[distance].Add(extension)
	b.distanceOf[extension] = distance
}

// DistanceOf returns the BFS distance of an assertion from the root.
func (b *ClauseBody) DistanceOf(a *Assertion) (int, bool) {
	d, ok := b.distanceOf[a]
	return d, ok
}

// Copy returns a body sharing the assertion instances but owning its
// own adjacency and distance maps, so sibling search branches never
// share mutable state.
func (b *ClauseBody) Copy() *ClauseBody {
	c := &ClauseBody{
		Identity:    b.Identity,
		Connections: make(map[*Assertion]AssertionSet, len(b.Connections)),
		Distances:   make(map[int]AssertionSet, len(b.Distances)),
		distanceOf:  make(map[*Assertion]int, len(b.distanceOf)),
	}
	for a, conns := range b.Connections {
		c.Connections[a] = conns.Copy()
	}
	for d, assertions := range b.Distances {
		c.Distances[d] = assertions.Copy()
	}
	for a, d := range b.distanceOf {
		c.distanceOf[a] = d
	}
	return c
}

// Size is the number of assertions including the identity anchor.
func (b *ClauseBody) Size() int { return len(b.Connections) }

// Ordered returns the assertions in BFS order; within a distance the
// order follows the assertion text so output is reproducible.
func (b *ClauseBody) Ordered() []*Assertion {
	var ordered []*Assertion
	for depth := 0; ; depth++ {
		assertions, ok := b.Distances[depth]
		if !ok {
			break
		}
		level := make([]*Assertion, 0, len(assertions))
		for a := range assertions {
			level = append(level, a)
		}
		sort.Slice(level, func(i, j int) bool {
			if level[i].String() != level[j].String() {
				return level[i].String() < level[j].String()
			}
			return level[i].ID < level[j].ID
		})
		ordered = append(ordered, level...)
	}
	return ordered
}

func (b *ClauseBody) String() string {
	parts := make([]string, 0, b.Size())
	for _, a := range b.Ordered() {
		if a.IsIdentity() {
			continue
		}
		parts = append(parts, a.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
