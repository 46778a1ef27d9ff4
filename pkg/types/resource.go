package types

import (
	"fmt"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// Resource is any node that can occur in an assertion: a concrete graph
// term (graph.IRI, graph.Literal), an unbound type variable, or a
// multimodal value-range node.
type Resource interface {
	fmt.Stringer
}

// TypeVariable is implemented by the unbound variable kinds. A variable
// stands for "any member of type T" and uses structural equality: two
// variables are equal iff they have the same kind and the same type.
type TypeVariable interface {
	Resource
	VarType() graph.IRI
}

// ObjectTypeVariable stands for any entity of a given type.
type ObjectTypeVariable struct {
	Type graph.IRI
}

func (v ObjectTypeVariable) VarType() graph.IRI { return v.Type }

func (v ObjectTypeVariable) String() string {
	return fmt.Sprintf("OBJECT TYPE (%s)", v.Type)
}

// DataTypeVariable stands for any literal of a given datatype.
type DataTypeVariable struct {
	Type graph.IRI
}

func (v DataTypeVariable) VarType() graph.IRI { return v.Type }

func (v DataTypeVariable) String() string {
	return fmt.Sprintf("DATA TYPE (%s)", v.Type)
}

// IsTypeVariable reports whether r is an unbound type variable.
// Multimodal nodes are not type variables: they behave as generalised
// bound objects with a membership test.
func IsTypeVariable(r Resource) bool {
	switch r.(type) {
	case ObjectTypeVariable, DataTypeVariable:
		return true
	}
	return false
}
