package graph

import "fmt"

// Term is a concrete node in a graph: an IRI or a literal value.
// The set is closed; pattern variables live in pkg/types and never
// appear inside a Graph.
type Term interface {
	fmt.Stringer
	isTerm()
}

// IRI identifies an entity, predicate, type, or datatype.
type IRI string

func (i IRI) isTerm() {}

func (i IRI) String() string { return string(i) }

// Literal is a typed (and optionally language-tagged) value.
type Literal struct {
	Value    string
	Datatype IRI
	Language string
}

func (l Literal) isTerm() {}

func (l Literal) String() string { return l.Value }

// EffectiveDatatype resolves the datatype the same way the cache does:
// untyped language-tagged literals count as xsd:string, other untyped
// literals as xsd:anyType.
func (l Literal) EffectiveDatatype() IRI {
	if l.Datatype != "" {
		return l.Datatype
	}
	if l.Language != "" {
		return XSDString
	}
	return XSDAnyType
}

// Triple is a directed labeled edge.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

func (t Triple) String() string {
	return fmt.Sprintf("(%s)-[%s]->(%s)", t.Subject, t.Predicate, t.Object)
}
