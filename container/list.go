// Package container provides the small generic List and Set types shared by
// the sequence, file and codec layers.
//
// The lists handled here are short (file extensions, codec names, directory
// entries), so lookups are linear scans.
package container

// NotFound is returned by Find when no element matches.
const NotFound = -1

// List is an ordered, duplicate-permitting sequence.
type List[T comparable] []T

// NewList creates a list holding a copy of items.
func NewList[T comparable](items ...T) List[T] {
	l := make(List[T], len(items))
	copy(l, items)
	return l
}

// Len returns the number of elements.
func (l List[T]) Len() int {
	return len(l)
}

// At returns the element at index i.
func (l List[T]) At(i int) T {
	return l[i]
}

// Add appends items to the end of the list.
func (l *List[T]) Add(items ...T) {
	*l = append(*l, items...)
}

// AddList appends every element of other.
func (l *List[T]) AddList(other List[T]) {
	*l = append(*l, other...)
}

// PushFront inserts v at the start of the list.
func (l *List[T]) PushFront(v T) {
	var zero T
	*l = append(*l, zero)
	copy((*l)[1:], (*l)[:len(*l)-1])
	(*l)[0] = v
}

// PopFront removes and returns the first element.
// It panics if the list is empty.
func (l *List[T]) PopFront() T {
	v := (*l)[0]
	*l = (*l)[1:]
	return v
}

// PopBack removes and returns the last element.
// It panics if the list is empty.
func (l *List[T]) PopBack() T {
	n := len(*l) - 1
	v := (*l)[n]
	*l = (*l)[:n]
	return v
}

// Find returns the index of the first element equal to v, or NotFound.
func (l List[T]) Find(v T) int {
	return Find(v, l)
}

// Contains reports whether v is in the list.
func (l List[T]) Contains(v T) bool {
	return Find(v, l) != NotFound
}

// Unique returns a copy of the list with duplicates removed.
func (l List[T]) Unique() List[T] {
	return Unique(l)
}

// Slice returns the list as a plain slice. The slice aliases the list.
func (l List[T]) Slice() []T {
	return []T(l)
}

// Find returns the index of the first element of in equal to v, or NotFound.
func Find[T comparable](v T, in []T) int {
	for i := range in {
		if in[i] == v {
			return i
		}
	}
	return NotFound
}

// Unique returns the elements of in with duplicates removed. The first
// occurrence of each value keeps its position.
func Unique[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if Find(v, out) == NotFound {
			out = append(out, v)
		}
	}
	return out
}

// Convert maps every element of in through fn.
func Convert[A, B any](in []A, fn func(A) B) []B {
	out := make([]B, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
