package types

import (
	"testing"
	"time"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

const (
	personType = graph.IRI("ex://Person")
	cityType   = graph.IRI("ex://City")
)

func TestIdentityAssertion(t *testing.T) {
	v := ObjectTypeVariable{Type: personType}
	id := NewIdentityAssertion(v)

	if !id.IsIdentity() {
		t.Error("expected IsIdentity() to be true")
	}
	if id.LHS != Resource(v) || id.RHS != Resource(v) {
		t.Error("identity assertion must be reflexive over the variable")
	}
}

func TestAssertionCopyKeepsStructure(t *testing.T) {
	a := NewAssertion(ObjectTypeVariable{Type: personType}, "ex://knows", ObjectTypeVariable{Type: personType})
	b := a.Copy()

	if a == b {
		t.Fatal("Copy must return a new instance")
	}
	if a.ID == b.ID {
		t.Error("Copy must mint a new instantiation token")
	}
	if a.LHS != b.LHS || a.Predicate != b.Predicate || a.RHS != b.RHS {
		t.Error("Copy must keep the structure")
	}
}

func TestClauseBodyExtend(t *testing.T) {
	v := ObjectTypeVariable{Type: personType}
	body := NewClauseBody(NewIdentityAssertion(v))

	knows := NewAssertion(v, "ex://knows", ObjectTypeVariable{Type: personType})
	body.Extend(body.Identity, knows)

	lives := NewAssertion(ObjectTypeVariable{Type: personType}, "ex://livesIn", ObjectTypeVariable{Type: cityType})
	body.Extend(knows, lives)

	if body.Size() != 3 {
		t.Errorf("Size() = %d, want 3", body.Size())
	}
	if d, _ := body.DistanceOf(knows); d != 1 {
		t.Errorf("DistanceOf(knows) = %d, want 1", d)
	}
	if d, _ := body.DistanceOf(lives); d != 2 {
		t.Errorf("DistanceOf(lives) = %d, want 2", d)
	}
	if !body.Connections[knows].Has(lives) {
		t.Error("expected lives to be connected under knows")
	}
}

func TestClauseBodyExtendPanics(t *testing.T) {
	v := ObjectTypeVariable{Type: personType}

	tests := []struct {
		name string
		run  func(body *ClauseBody)
	}{
		{"nil extension", func(body *ClauseBody) {
			body.Extend(body.Identity, nil)
		}},
		{"unknown endpoint", func(body *ClauseBody) {
			outside := NewAssertion(v, "ex://p", ObjectTypeVariable{Type: cityType})
			body.Extend(outside, NewAssertion(v, "ex://q", ObjectTypeVariable{Type: cityType}))
		}},
		{"duplicate extension", func(body *ClauseBody) {
			a := NewAssertion(v, "ex://p", ObjectTypeVariable{Type: cityType})
			body.Extend(body.Identity, a)
			body.Extend(body.Identity, a)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.run(NewClauseBody(NewIdentityAssertion(v)))
		})
	}
}

func TestClauseBodyCopyIsolation(t *testing.T) {
	v := ObjectTypeVariable{Type: personType}
	body := NewClauseBody(NewIdentityAssertion(v))
	knows := NewAssertion(v, "ex://knows", ObjectTypeVariable{Type: personType})
	body.Extend(body.Identity, knows)

	clone := body.Copy()
	// Shared instances, independent adjacency.
	if clone.Identity != body.Identity {
		t.Error("Copy must share assertion instances")
	}

	extra := NewAssertion(ObjectTypeVariable{Type: personType}, "ex://livesIn", ObjectTypeVariable{Type: cityType})
	clone.Extend(knows, extra)

	if body.Size() != 2 {
		t.Errorf("source body grew to %d assertions after extending the copy", body.Size())
	}
	if clone.Size() != 3 {
		t.Errorf("clone Size() = %d, want 3", clone.Size())
	}
}

type fixtureLookup struct {
	types     map[graph.Term]graph.IRI
	datatypes map[graph.Term]graph.IRI
}

func (f fixtureLookup) TypeOf(t graph.Term) (graph.IRI, bool) {
	iri, ok := f.types[t]
	return iri, ok
}

func (f fixtureLookup) DatatypeOf(t graph.Term) (graph.IRI, bool) {
	iri, ok := f.datatypes[t]
	return iri, ok
}

func TestIsEquivalent(t *testing.T) {
	v := ObjectTypeVariable{Type: personType}
	lookup := fixtureLookup{
		types: map[graph.Term]graph.IRI{
			graph.IRI("ex://bob"): personType,
		},
		datatypes: map[graph.Term]graph.IRI{
			graph.Literal{Value: "34", Datatype: graph.XSDInteger}: graph.XSDInteger,
		},
	}

	tests := []struct {
		name string
		a, b *Assertion
		want bool
	}{
		{
			"same bound object",
			NewAssertion(v, "ex://knows", graph.IRI("ex://bob")),
			NewAssertion(v, "ex://knows", graph.IRI("ex://bob")),
			true,
		},
		{
			"different predicate",
			NewAssertion(v, "ex://knows", graph.IRI("ex://bob")),
			NewAssertion(v, "ex://likes", graph.IRI("ex://bob")),
			false,
		},
		{
			"matching type variables",
			NewAssertion(v, "ex://knows", ObjectTypeVariable{Type: personType}),
			NewAssertion(v, "ex://knows", ObjectTypeVariable{Type: personType}),
			true,
		},
		{
			"variable subsumes typed entity",
			NewAssertion(v, "ex://knows", ObjectTypeVariable{Type: personType}),
			NewAssertion(v, "ex://knows", graph.IRI("ex://bob")),
			true,
		},
		{
			"variable over different type",
			NewAssertion(v, "ex://knows", ObjectTypeVariable{Type: cityType}),
			NewAssertion(v, "ex://knows", graph.IRI("ex://bob")),
			false,
		},
		{
			"datatype variable subsumes literal",
			NewAssertion(v, "ex://age", DataTypeVariable{Type: graph.XSDInteger}),
			NewAssertion(v, "ex://age", graph.Literal{Value: "34", Datatype: graph.XSDInteger}),
			true,
		},
		{
			"different lhs types",
			NewAssertion(ObjectTypeVariable{Type: cityType}, "ex://knows", graph.IRI("ex://bob")),
			NewAssertion(v, "ex://knows", graph.IRI("ex://bob")),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEquivalent(tt.a, tt.b, lookup); got != tt.want {
				t.Errorf("IsEquivalent() = %v, want %v", got, tt.want)
			}
			// Must stay symmetric.
			if got := IsEquivalent(tt.b, tt.a, lookup); got != tt.want {
				t.Errorf("IsEquivalent() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTypeVariable(t *testing.T) {
	if !IsTypeVariable(ObjectTypeVariable{Type: personType}) {
		t.Error("ObjectTypeVariable must be a type variable")
	}
	if !IsTypeVariable(DataTypeVariable{Type: graph.XSDInteger}) {
		t.Error("DataTypeVariable must be a type variable")
	}
	if IsTypeVariable(NumericNode{Dtype: graph.XSDInteger, Min: 0, Max: 1}) {
		t.Error("multimodal nodes are generalised objects, not variables")
	}
	if IsTypeVariable(graph.IRI("ex://bob")) {
		t.Error("bound terms are not variables")
	}
}

func TestMultiModalNodeContains(t *testing.T) {
	numeric := NumericNode{Dtype: graph.XSDInteger, Min: 10, Max: 20}
	if !numeric.Contains(graph.Literal{Value: "15", Datatype: graph.XSDInteger}) {
		t.Error("numeric node must contain values in range")
	}
	if numeric.Contains(graph.Literal{Value: "25", Datatype: graph.XSDInteger}) {
		t.Error("numeric node must reject values out of range")
	}
	if numeric.Contains(graph.Literal{Value: "abc", Datatype: graph.XSDInteger}) {
		t.Error("numeric node must reject unparseable values")
	}

	dt := DateTimeNode{
		Dtype: graph.XSDDateTime,
		Begin: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	if !dt.Contains(graph.Literal{Value: "2020-06-15", Datatype: graph.XSDDate}) {
		t.Error("datetime node must contain dates in range")
	}
	if dt.Contains(graph.Literal{Value: "2021-06-15", Datatype: graph.XSDDate}) {
		t.Error("datetime node must reject dates out of range")
	}

	str := StringNode{Dtype: graph.XSDString, Pattern: `^[a-z]{3,5}$`}
	if !str.Contains(graph.Literal{Value: "abcd", Datatype: graph.XSDString}) {
		t.Error("string node must match its pattern")
	}
	if str.Contains(graph.Literal{Value: "ABCD", Datatype: graph.XSDString}) {
		t.Error("string node must reject non-matching values")
	}
}

func TestDateFragToDays(t *testing.T) {
	tests := []struct {
		name  string
		value string
		dtype graph.IRI
		want  int
	}{
		{"gMonth january", "--01", graph.XSDGMonth, 0},
		{"gMonthDay february first", "--02-01", graph.XSDGMonthDay, 32},
		{"gDay", "---21", graph.XSDGDay, 21},
		{"gYear", "2000", graph.XSDGYear, 730000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateFragToDays(tt.value, tt.dtype)
			if err != nil {
				t.Fatalf("DateFragToDays() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DateFragToDays(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}

	if _, err := DateFragToDays("bogus", graph.XSDGMonth); err == nil {
		t.Error("expected error for malformed fragment")
	}
}
