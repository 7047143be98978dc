package container

// Set is a unique-element container backed by a Table whose values are
// presence markers. Members never carry an expiry, so the explicit size
// counter stays in lockstep with the backing table.
type Set[T comparable] struct {
	table *Table[T, struct{}]
	size  int
}

// NewSet creates an empty set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{table: NewTable[T, struct{}]()}
}

// Add inserts a member. Returns true if it was newly inserted.
func (s *Set[T]) Add(member T) bool {
	if s.table.Has(member) {
		return false
	}
	s.table.Set(member, struct{}{})
	s.size++
	return true
}

// Delete removes a member. Returns true if it was present.
func (s *Set[T]) Delete(member T) bool {
	if !s.table.Delete(member) {
		return false
	}
	s.size--
	return true
}

// Has reports membership.
func (s *Set[T]) Has(member T) bool {
	return s.table.Has(member)
}

// Clear removes every member.
func (s *Set[T]) Clear() {
	s.table.Clear()
	s.size = 0
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return s.size
}

// Union returns a new set holding the members of both operands.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for m := range s.table.Keys() {
		out.Add(m)
	}
	for m := range other.table.Keys() {
		out.Add(m)
	}
	return out
}

// Intersection returns a new set holding the members present in both
// operands. Iterates the smaller operand and probes the larger.
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	small, large := s, other
	if small.size > large.size {
		small, large = large, small
	}

	out := NewSet[T]()
	for m := range small.table.Keys() {
		if large.Has(m) {
			out.Add(m)
		}
	}
	return out
}

// Difference returns a new set holding the members of s absent from other.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for m := range s.table.Keys() {
		if !other.Has(m) {
			out.Add(m)
		}
	}
	return out
}

// IsSubsetOf reports whether every member of s is in other.
func (s *Set[T]) IsSubsetOf(other *Set[T]) bool {
	if s.size > other.size {
		return false
	}
	for m := range s.table.Keys() {
		if !other.Has(m) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether every member of other is in s.
func (s *Set[T]) IsSupersetOf(other *Set[T]) bool {
	return other.IsSubsetOf(s)
}

// IsProperSubsetOf reports whether s is a subset of other and strictly smaller.
func (s *Set[T]) IsProperSubsetOf(other *Set[T]) bool {
	return s.IsSubsetOf(other) && s.size < other.size
}

// First returns an arbitrary member under the backing table's iteration
// order. No sortedness is guaranteed.
func (s *Set[T]) First() (T, bool) {
	for m := range s.table.Keys() {
		return m, true
	}
	var zero T
	return zero, false
}

// Last returns the final member under one pass of the backing table's
// iteration order. No sortedness is guaranteed.
func (s *Set[T]) Last() (T, bool) {
	var last T
	found := false
	for m := range s.table.Keys() {
		last = m
		found = true
	}
	return last, found
}

// ToSlice materializes all members.
func (s *Set[T]) ToSlice() []T {
	out := make([]T, 0, s.size)
	for m := range s.table.Keys() {
		out = append(out, m)
	}
	return out
}
