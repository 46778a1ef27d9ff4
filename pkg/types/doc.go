// Package types defines the candidate data model of the miner: pattern
// variables, multimodal value-range nodes, assertions, rooted clause
// bodies, and clauses with their statistics.
//
// A Clause is a candidate rule `head <- body` for the members of one
// entity type. Its body is a rooted, connected, acyclic pattern graph
// of assertions anchored by a reserved identity assertion, and its
// statistics (support, confidence, and the derived probabilities) are
// measured against the type's membership.
package types
