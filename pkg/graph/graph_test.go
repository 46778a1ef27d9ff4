package graph

import (
	"testing"
)

func TestMemoryGraphAddDeduplicates(t *testing.T) {
	g := NewMemoryGraph()
	triple := Triple{Subject: IRI("ex://a"), Predicate: IRI("ex://p"), Object: IRI("ex://b")}

	g.Add(triple)
	g.Add(triple)

	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
	if !g.Has(IRI("ex://a"), IRI("ex://p"), IRI("ex://b")) {
		t.Error("expected Has to find the triple")
	}
}

func TestMemoryGraphObjects(t *testing.T) {
	g := NewMemoryGraph()
	a := IRI("ex://a")
	p := IRI("ex://p")
	g.Add(Triple{Subject: a, Predicate: p, Object: IRI("ex://b")})
	g.Add(Triple{Subject: a, Predicate: p, Object: IRI("ex://c")})
	g.Add(Triple{Subject: a, Predicate: IRI("ex://q"), Object: IRI("ex://d")})

	objects := g.Objects(a, p)
	if len(objects) != 2 {
		t.Fatalf("Objects() returned %d terms, want 2", len(objects))
	}

	if _, ok := g.Value(a, p); !ok {
		t.Error("expected Value to find an object")
	}
	if _, ok := g.Value(a, IRI("ex://missing")); ok {
		t.Error("expected Value to miss an absent predicate")
	}
}

func TestMemoryGraphSubjectsAndObjectTerms(t *testing.T) {
	g := NewMemoryGraph()
	g.Add(Triple{Subject: IRI("ex://a"), Predicate: IRI("ex://p"), Object: IRI("ex://b")})
	g.Add(Triple{Subject: IRI("ex://a"), Predicate: IRI("ex://q"), Object: IRI("ex://b")})
	g.Add(Triple{Subject: IRI("ex://b"), Predicate: IRI("ex://p"), Object: Literal{Value: "5", Datatype: XSDInteger}})

	if n := len(g.Subjects()); n != 2 {
		t.Errorf("Subjects() returned %d terms, want 2", n)
	}
	if n := len(g.ObjectTerms()); n != 2 {
		t.Errorf("ObjectTerms() returned %d terms, want 2", n)
	}
}

func TestSetOperations(t *testing.T) {
	a := NewSet(IRI("ex://x"), IRI("ex://y"))
	b := NewSet(IRI("ex://y"), IRI("ex://z"))

	c := a.Copy()
	c.IntersectWith(b)
	if len(c) != 1 || !c.Has(IRI("ex://y")) {
		t.Errorf("IntersectWith: got %v, want {ex://y}", c)
	}
	if len(a) != 2 {
		t.Error("IntersectWith mutated the source of the copy")
	}

	u := a.Copy()
	u.Union(b)
	if len(u) != 3 {
		t.Errorf("Union: got %d members, want 3", len(u))
	}

	if !c.Subset(b) {
		t.Error("expected {ex://y} to be a subset of b")
	}
	if a.Subset(b) {
		t.Error("did not expect a to be a subset of b")
	}
}

func TestLiteralEffectiveDatatype(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want IRI
	}{
		{"typed", Literal{Value: "5", Datatype: XSDInteger}, XSDInteger},
		{"language tagged", Literal{Value: "hello", Language: "en"}, XSDString},
		{"untyped", Literal{Value: "raw"}, XSDAnyType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lit.EffectiveDatatype(); got != tt.want {
				t.Errorf("EffectiveDatatype() = %s, want %s", got, tt.want)
			}
		})
	}
}
