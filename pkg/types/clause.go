package types

import (
	"fmt"

	"github.com/soundprediction/gfdminer/pkg/graph"
)

// Clause is a candidate rule `head <- body` with its measured
// statistics. A clause is only attached to a generation forest once
// support and confidence are both known and above threshold.
type Clause struct {
	Head *Assertion
	Body *ClauseBody

	// Search-tree links.
	Parent   *Clause
	Children []*Clause

	// Support counts the domain members satisfying the body;
	// Confidence those satisfying body and head.
	Support    int
	Confidence int

	// DomainProbability is confidence/support. RangeProbability is
	// confidence over the number of domain members for which the
	// head's predicate is defined at all.
	DomainProbability float64
	RangeProbability  float64

	// SatisfyBody and SatisfyFull are working sets kept only while
	// the clause can still be extended; the miner clears them to
	// bound memory.
	SatisfyBody graph.Set
	SatisfyFull graph.Set

	// Prune marks a lazy deletion candidate: an extension whose
	// support did not strictly drop below its parent's adds no
	// information. The flag is order-dependent when bodies grow
	// several assertions wide in one depth; see the generate loop.
	Prune bool
}

// NewClause creates a clause linked to its search parent. Statistics
// are zero until the caller sets them.
func NewClause(head *Assertion, body *ClauseBody, parent *Clause) *Clause {
	return &Clause{Head: head, Body: body, Parent: parent}
}

// ClearSatisfySets drops the working entity sets.
func (c *Clause) ClearSatisfySets() {
	c.SatisfyBody = nil
	c.SatisfyFull = nil
}

func (c *Clause) String() string {
	return fmt.Sprintf("%0.3f: %s <- %s", c.DomainProbability, c.Head, c.Body)
}
