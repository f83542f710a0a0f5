package util

import (
	"fmt"
	"strings"
)

// OrderedSet is a set that remembers the order elements were first added in.
// Iteration over Elements always gives insertion order, which makes any
// algorithm that walks the set deterministic.
//
// The zero value is ready to use.
type OrderedSet[E comparable] struct {
	elems []E
	index map[E]int
}

// OrderedSetOf creates an OrderedSet from the given elements, skipping any
// duplicates after the first.
func OrderedSetOf[E comparable](sl ...E) *OrderedSet[E] {
	s := &OrderedSet[E]{}
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

// Add adds v to the end of the set if it is not already present. Returns
// whether v was added.
func (s *OrderedSet[E]) Add(v E) bool {
	if s.index == nil {
		s.index = map[E]int{}
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.elems)
	s.elems = append(s.elems, v)
	return true
}

func (s *OrderedSet[E]) Has(v E) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// IndexOf gives the position v was inserted at, or -1 if it is not in the set.
func (s *OrderedSet[E]) IndexOf(v E) int {
	if s == nil || s.index == nil {
		return -1
	}
	idx, ok := s.index[v]
	if !ok {
		return -1
	}
	return idx
}

func (s *OrderedSet[E]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

// Elements returns the elements in insertion order. The returned slice must
// not be modified.
func (s *OrderedSet[E]) Elements() []E {
	if s == nil {
		return nil
	}
	return s.elems
}

func (s *OrderedSet[E]) String() string {
	strs := make([]string, s.Len())
	for i, e := range s.Elements() {
		strs[i] = fmt.Sprintf("%v", e)
	}
	return "{" + strings.Join(strs, ", ") + "}"
}
