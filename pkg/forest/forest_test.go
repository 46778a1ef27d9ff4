package forest

import (
	"testing"

	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

const person = graph.IRI("ex://Person")

func newClause(p graph.IRI) *types.Clause {
	v := types.ObjectTypeVariable{Type: person}
	head := types.NewAssertion(v, p, types.ObjectTypeVariable{Type: person})
	return types.NewClause(head, types.NewClauseBody(types.NewIdentityAssertion(v)), nil)
}

func TestTreeAddAndGet(t *testing.T) {
	tree := NewTree()
	a := newClause("ex://knows")
	b := newClause("ex://knows")
	c := newClause("ex://likes")

	tree.Add(a, 0)
	tree.Add(b, 0)
	tree.Add(c, 0)
	tree.Add(a, 0) // duplicate, ignored

	if tree.Size() != 3 {
		t.Errorf("Size() = %d, want 3", tree.Size())
	}
	if tree.Height() != 1 {
		t.Errorf("Height() = %d, want 1", tree.Height())
	}
	if got := len(tree.Get(0)); got != 3 {
		t.Errorf("Get(0) returned %d clauses, want 3", got)
	}
}

func TestTreeAddPanicsOnSkippedDepth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when a depth is added out of order")
		}
	}()
	tree := NewTree()
	tree.Add(newClause("ex://knows"), 1)
}

func TestTreeGetPanicsBeyondHeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when reading beyond the height")
		}
	}()
	tree := NewTree()
	tree.Add(newClause("ex://knows"), 0)
	tree.Get(1)
}

func TestTreeUpdateMaterialisesEmptyDepth(t *testing.T) {
	tree := NewTree()
	tree.Add(newClause("ex://knows"), 0)

	tree.Update(make(ClauseSet), 1)

	if tree.Height() != 2 {
		t.Errorf("Height() = %d, want 2", tree.Height())
	}
	if got := len(tree.Get(1)); got != 0 {
		t.Errorf("Get(1) returned %d clauses, want 0", got)
	}
}

func TestTreePruneRemovesByIdentity(t *testing.T) {
	tree := NewTree()
	a := newClause("ex://knows")
	b := newClause("ex://knows")
	tree.Add(a, 0)
	tree.Add(b, 0)

	tree.Prune(NewClauseSet(a), 0)

	if tree.Size() != 1 {
		t.Errorf("Size() = %d, want 1", tree.Size())
	}
	remaining := tree.Get(0)
	if len(remaining) != 1 || remaining[0] != b {
		t.Error("pruning removed the wrong clause")
	}
}

func TestTreeClearKeepsDepthMaterialised(t *testing.T) {
	tree := NewTree()
	tree.Add(newClause("ex://knows"), 0)
	tree.Add(newClause("ex://likes"), 1)

	tree.Clear(0)

	if tree.Size() != 1 {
		t.Errorf("Size() = %d, want 1", tree.Size())
	}
	if tree.Height() != 2 {
		t.Errorf("Height() = %d, want 2 after clearing depth 0", tree.Height())
	}
	if got := len(tree.Get(0)); got != 0 {
		t.Errorf("Get(0) returned %d clauses after Clear, want 0", got)
	}
}

func TestForest(t *testing.T) {
	f := NewForest()
	tree := NewTree()
	tree.Add(newClause("ex://knows"), 0)
	f.Plant(person, tree)

	if !f.HasType(person) {
		t.Error("expected HasType(person)")
	}
	if f.GetTree("ex://Unknown") != nil {
		t.Error("expected nil tree for unknown type")
	}
	if f.Size() != 1 {
		t.Errorf("Size() = %d, want 1", f.Size())
	}

	if err := f.Update(person, NewClauseSet(newClause("ex://likes")), 1); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := f.Update("ex://Unknown", make(ClauseSet), 0); err == nil {
		t.Error("expected error updating an unknown type")
	}

	ctypes := f.Types()
	if len(ctypes) != 1 || ctypes[0] != person {
		t.Errorf("Types() = %v, want [person]", ctypes)
	}
}
