package util

import (
	"fmt"
	"sort"
	"strings"
)

// KeySet is a set of comparable elements backed by a map.
type KeySet[E comparable] map[E]bool

// NewKeySet creates a KeySet holding every key that is present in the given
// maps.
func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// KeySetOf creates a KeySet holding every element of sl.
func KeySetOf[E comparable](sl []E) KeySet[E] {
	s := KeySet[E]{}
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

func (s KeySet[E]) Copy() KeySet[E] {
	return NewKeySet(s)
}

func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

// Add adds the given element to the set. If the element is already in the
// set, no effect occurs.
func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

func (s KeySet[E]) Len() int {
	return len(s)
}

func (s KeySet[E]) Empty() bool {
	return s.Len() == 0
}

// AddAll adds all elements in s2 to the set.
func (s KeySet[E]) AddAll(s2 KeySet[E]) {
	for k := range s2 {
		s.Add(k)
	}
}

// All returns whether every element in sl is in the set. An empty sl always
// gives true.
func (s KeySet[E]) All(sl []E) bool {
	for i := range sl {
		if !s.Has(sl[i]) {
			return false
		}
	}
	return true
}

// Elements returns the elements of the set. They are not guaranteed to be in
// any particular order.
func (s KeySet[E]) Elements() []E {
	elems := make([]E, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

// StringOrdered shows the contents of the set. Items are guaranteed to be
// alphabetized by their string representation.
func (s KeySet[E]) StringOrdered() string {
	convs := []string{}
	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(convs, ", "))
	sb.WriteRune('}')
	return sb.String()
}

// String shows the contents of the set. Items are not guaranteed to be in any
// particular order.
func (s KeySet[E]) String() string {
	var sb strings.Builder

	totalLen := s.Len()
	itemsWritten := 0

	sb.WriteRune('{')
	for k := range s {
		sb.WriteString(fmt.Sprintf("%v", k))
		itemsWritten++
		if itemsWritten < totalLen {
			sb.WriteRune(',')
			sb.WriteRune(' ')
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// Equal returns whether the set has exactly the same elements as o. o may be a
// KeySet[E] or a pointer to one.
func (s KeySet[E]) Equal(o any) bool {
	other, ok := o.(KeySet[E])
	if !ok {
		otherPtr, ok := o.(*KeySet[E])
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}
