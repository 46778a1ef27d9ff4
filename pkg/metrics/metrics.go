// Package metrics implements minimal image-based support and
// confidence: pattern bodies are evaluated by propagating adjacency
// images forward to the range side and back to the domain side,
// shrinking the candidate sets as early as possible and aborting the
// moment the minimal support is provably out of reach.
package metrics

import (
	"github.com/soundprediction/gfdminer/pkg/cache"
	"github.com/soundprediction/gfdminer/pkg/graph"
	"github.com/soundprediction/gfdminer/pkg/types"
)

// SupportOf evaluates a body pattern rooted at assertion against a
// candidate domain and returns the number of domain members whose
// context satisfies the pattern, together with that satisfying subset.
// It returns (-1, nil) as soon as the minimal support cannot be met;
// that sentinel is search control flow, not an error. The candidate
// domain is never mutated.
func SupportOf(c *cache.Cache, body *types.ClauseBody, assertion *types.Assertion,
	domain graph.Set, minSupport int) (int, graph.Set) {

	connections := body.Connections[assertion]

	// Pattern leaves are evaluated directly against the domain.
	if len(connections) == 0 {
		if assertion.IsIdentity() {
			return len(domain), domain
		}
		return evalAssertion(c, assertion, domain)
	}

	// Compute the range reachable from the domain via this
	// assertion. Only object type variables ever carry children.
	var assertionRange graph.Set
	if assertion.IsIdentity() {
		assertionRange = domain.Copy()
	} else {
		v, ok := assertion.RHS.(types.ObjectTypeVariable)
		if !ok {
			panic("metrics: internal pattern node without an object type variable")
		}
		assertionRange = make(graph.Set)
		for entity := range domain {
			for resource := range c.ForwardsOf(assertion.Predicate, entity) {
				if t, found := c.TypeOf(resource); found && t == v.Type {
					assertionRange.Add(resource)
				}
			}
		}
	}

	// Cheap pre-filter: a range member that lacks a child's
	// predicate entirely can never satisfy that child.
	for connection := range connections {
		if len(assertionRange) < minSupport {
			return -1, nil
		}

		forwards := c.Domain(connection.Predicate)
		for resource := range assertionRange {
			if _, ok := forwards[resource]; !ok {
				delete(assertionRange, resource)
			}
		}
	}

	// Recursively evaluate the children, shrinking the surviving
	// range after each.
	for connection := range connections {
		if len(assertionRange) < minSupport {
			return -1, nil
		}

		support, rangeUpdate := SupportOf(c, body, connection, assertionRange, minSupport)
		if support < minSupport {
			return -1, nil
		}
		assertionRange.IntersectWith(rangeUpdate)
	}

	if assertion.IsIdentity() {
		return len(assertionRange), assertionRange
	}

	// Translate the surviving range back to the domain side.
	support := 0
	updated := make(graph.Set)
	for resource := range assertionRange {
		backwards := c.BackwardsOf(assertion.Predicate, resource)
		updated.Union(backwards)
		support += len(backwards)
	}
	return support, updated
}

// ConfidenceOf evaluates a clause head against a domain already known
// to satisfy the body, returning the satisfying count and subset.
func ConfidenceOf(c *cache.Cache, head *types.Assertion, domain graph.Set) (int, graph.Set) {
	return evalAssertion(c, head, domain)
}

// PredicateFrequency counts the domain members for which the head's
// predicate is defined at all.
func PredicateFrequency(c *cache.Cache, head *types.Assertion, domain graph.Set) int {
	forwards := c.Domain(head.Predicate)
	n := 0
	for entity := range domain {
		if _, ok := forwards[entity]; ok {
			n++
		}
	}
	return n
}

// evalAssertion dispatches on the right-hand-side kind: bound term,
// object/data type variable, or multimodal membership. Each domain
// member counts at most once.
func evalAssertion(c *cache.Cache, assertion *types.Assertion, domain graph.Set) (int, graph.Set) {
	updated := make(graph.Set)

	switch rhs := assertion.RHS.(type) {
	case types.ObjectTypeVariable:
		for entity := range domain {
			for resource := range c.ForwardsOf(assertion.Predicate, entity) {
				if t, found := c.TypeOf(resource); found && t == rhs.Type {
					updated.Add(entity)
					break
				}
			}
		}

	case types.DataTypeVariable:
		for entity := range domain {
			for resource := range c.ForwardsOf(assertion.Predicate, entity) {
				if dt, found := c.DatatypeOf(resource); found && dt == rhs.Type {
					updated.Add(entity)
					break
				}
			}
		}

	case types.MultiModalNode:
		for entity := range domain {
			for resource := range c.ForwardsOf(assertion.Predicate, entity) {
				if lit, ok := resource.(graph.Literal); ok && rhs.Contains(lit) {
					updated.Add(entity)
					break
				}
			}
		}

	default:
		// A bound entity or literal.
		term, ok := assertion.RHS.(graph.Term)
		if !ok {
			return 0, updated
		}
		for entity := range domain {
			if c.ForwardsOf(assertion.Predicate, entity).Has(term) {
				updated.Add(entity)
			}
		}
	}

	return len(updated), updated
}
