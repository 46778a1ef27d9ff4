// Package forest holds the per-type, per-depth containers of clauses
// discovered by the search. Depth d+1 of any tree is only populated
// once depth d of every tree is final, because extensions at depth d+1
// draw on the depth-0 vocabularies of other types.
package forest

import (
	"fmt"
	"sort"

	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

// ClauseSet is an unordered collection of clauses.
type ClauseSet map[*types.Clause]struct{}

// NewClauseSet returns a set holding the given clauses.
func NewClauseSet(clauses ...*types.Clause) ClauseSet {
	s := make(ClauseSet, len(clauses))
	for _, c := range clauses {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c.
func (s ClauseSet) Add(c *types.Clause) { s[c] = struct{}{} }

// Has reports membership of c.
func (s ClauseSet) Has(c *types.Clause) bool {
	_, ok := s[c]
	return ok
}

// Union inserts every clause of other.
func (s ClauseSet) Union(other ClauseSet) {
	for clause := range other {
		s[clause] = struct{}{}
	}
}

// Copy returns an independent shallow copy.
func (s ClauseSet) Copy() ClauseSet {
	c := make(ClauseSet, len(s))
	for clause := range s {
		c[clause] = struct{}{}
	}
	return c
}

// Tree is the generation tree of one entity type: a list indexed by
// depth of clauses grouped by head predicate.
type Tree struct {
	depths []map[graph.IRI]ClauseSet
	size   int
}

// NewTree returns an empty tree.
func NewTree() *Tree { return &Tree{} }

// Height is the number of depths materialised so far.
func (t *Tree) Height() int { return len(t.depths) }

// Size is the total number of clauses over all depths.
func (t *Tree) Size() int { return t.size }

// Add attaches a clause at the given depth. Depths must be materialised
// in order; skipping one is a caller bug and panics.
func (t *Tree) Add(clause *types.Clause, depth int) {
	if clause == nil {
		panic("forest: cannot add nil clause")
	}
	t.Grow(depth)

	p := clause.Head.Predicate
	if _, ok := t.depths[depth][p]; !ok {
		t.depths[depth][p] = make(ClauseSet)
	}
	if !t.depths[depth][p].Has(clause) {
		t.depths[depth][p].Add(clause)
		t.size++
	}
}

// Grow materialises a depth without adding clauses. Depths must be
// materialised in order; skipping one is a caller bug and panics.
func (t *Tree) Grow(depth int) {
	if depth > len(t.depths) {
		panic(fmt.Sprintf("forest: depth %d added before depth %d exists", depth, depth-1))
	}
	if depth == len(t.depths) {
		t.depths = append(t.depths, make(map[graph.IRI]ClauseSet))
	}
}

// Update attaches every clause of the set at the given depth. The depth
// is materialised even when the set is empty.
func (t *Tree) Update(clauses ClauseSet, depth int) {
	t.Grow(depth)
	for clause := range clauses {
		t.Add(clause, depth)
	}
}

// Get returns the clauses at one depth. Asking beyond the current
// height is a caller bug and panics.
func (t *Tree) Get(depth int) []*types.Clause {
	if depth < 0 || depth >= len(t.depths) {
		panic(fmt.Sprintf("forest: depth %d out of range (height %d)", depth, len(t.depths)))
	}
	var clauses []*types.Clause
	for _, set := range t.depths[depth] {
		for clause := range set {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// GetAll returns the clauses of every depth.
func (t *Tree) GetAll() []*types.Clause {
	var clauses []*types.Clause
	for depth := range t.depths {
		clauses = append(clauses, t.Get(depth)...)
	}
	return clauses
}

// Prune removes the given clauses, by identity, from one depth.
func (t *Tree) Prune(clauses ClauseSet, depth int) {
	if depth < 0 || depth >= len(t.depths) {
		return
	}
	for predicate, set := range t.depths[depth] {
		for clause := range set {
			if clauses.Has(clause) {
				delete(set, clause)
				t.size--
			}
		}
		if len(set) == 0 {
			delete(t.depths[depth], predicate)
		}
	}
}

// Clear drops every clause at one depth. The depth itself stays
// materialised so later depths keep their index.
func (t *Tree) Clear(depth int) {
	if depth < 0 || depth >= len(t.depths) {
		return
	}
	for _, set := range t.depths[depth] {
		t.size -= len(set)
	}
	t.depths[depth] = make(map[graph.IRI]ClauseSet)
}

// Forest maps entity types to their generation trees.
type Forest struct {
	trees map[graph.IRI]*Tree
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{trees: make(map[graph.IRI]*Tree)}
}

// Plant registers a tree for a type, replacing any previous one.
func (f *Forest) Plant(ctype graph.IRI, tree *Tree) {
	if tree == nil {
		panic("forest: cannot plant nil tree")
	}
	f.trees[ctype] = tree
}

// Types returns the planted types in deterministic order.
func (f *Forest) Types() []graph.IRI {
	ctypes := make([]graph.IRI, 0, len(f.trees))
	for ctype := range f.trees {
		ctypes = append(ctypes, ctype)
	}
	sort.Slice(ctypes, func(i, j int) bool { return ctypes[i] < ctypes[j] })
	return ctypes
}

// HasType reports whether a tree is planted for the type.
func (f *Forest) HasType(ctype graph.IRI) bool {
	_, ok := f.trees[ctype]
	return ok
}

// GetTree returns the tree of a type; nil when absent.
func (f *Forest) GetTree(ctype graph.IRI) *Tree { return f.trees[ctype] }

// Update forwards to the type's tree.
func (f *Forest) Update(ctype graph.IRI, clauses ClauseSet, depth int) error {
	tree, ok := f.trees[ctype]
	if !ok {
		return fmt.Errorf("forest: unknown type %s", ctype)
	}
	tree.Update(clauses, depth)
	return nil
}

// Prune forwards to the type's tree.
func (f *Forest) Prune(ctype graph.IRI, clauses ClauseSet, depth int) {
	if tree, ok := f.trees[ctype]; ok {
		tree.Prune(clauses, depth)
	}
}

// Clear forwards to the type's tree.
func (f *Forest) Clear(ctype graph.IRI, depth int) {
	if tree, ok := f.trees[ctype]; ok {
		tree.Clear(depth)
	}
}

// Size is the clause count over all trees.
func (f *Forest) Size() int {
	n := 0
	for _, tree := range f.trees {
		n += tree.Size()
	}
	return n
}
