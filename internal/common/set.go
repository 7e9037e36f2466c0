package common

// Set keeps unique elements in insertion order.
type Set[T comparable] struct {
	elements map[T]struct{}
	order    []T
}

// NewSet creates a set holding values, duplicates dropped
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{
		elements: make(map[T]struct{}, len(values)),
	}
	for _, value := range values {
		s.Add(value)
	}
	return s
}

// Add inserts an element and reports whether it was new
func (s *Set[T]) Add(value T) bool {
	if _, found := s.elements[value]; found {
		return false
	}
	s.elements[value] = struct{}{}
	s.order = append(s.order, value)
	return true
}

func (s *Set[T]) Contains(value T) bool {
	_, found := s.elements[value]
	return found
}

func (s *Set[T]) Size() int {
	return len(s.order)
}

// List returns the elements in the order they were first added
func (s *Set[T]) List() []T {
	return append([]T(nil), s.order...)
}
