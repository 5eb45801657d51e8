package container

// Set holds unique values. Iteration order is not defined.
type Set[T comparable] map[T]struct{}

// NewSet creates a set holding items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s Set[T]) Add(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Remove deletes v from the set.
func (s Set[T]) Remove(v T) {
	delete(s, v)
}

// Len returns the number of values.
func (s Set[T]) Len() int {
	return len(s)
}

// Values returns the set contents in unspecified order.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}
