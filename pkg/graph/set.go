package graph

// Set is an unordered collection of graph terms. The miner spends most
// of its time intersecting these, so they stay plain maps rather than a
// wrapper type.
type Set map[Term]struct{}

// NewSet returns a set holding the given terms.
func NewSet(terms ...Term) Set {
	s := make(Set, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts t.
func (s Set) Add(t Term) { s[t] = struct{}{} }

// Has reports membership of t.
func (s Set) Has(t Term) bool {
	_, ok := s[t]
	return ok
}

// Copy returns an independent shallow copy.
func (s Set) Copy() Set {
	c := make(Set, len(s))
	for t := range s {
		c[t] = struct{}{}
	}
	return c
}

// IntersectWith removes every member of s that is not in other.
func (s Set) IntersectWith(other Set) {
	for t := range s {
		if _, ok := other[t]; !ok {
			delete(s, t)
		}
	}
}

// Union inserts every member of other into s.
func (s Set) Union(other Set) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Subset reports whether every member of s is in other.
func (s Set) Subset(other Set) bool {
	for t := range s {
		if _, ok := other[t]; !ok {
			return false
		}
	}
	return true
}
