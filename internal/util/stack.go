package util

// Stack is a LIFO stack. Of holds the elements with the top of the stack at
// the end; it may be set directly to give a starting stack.
type Stack[E any] struct {
	Of []E
}

func (s *Stack[E]) Push(v E) {
	s.Of = append(s.Of, v)
}

// Pop removes and returns the top element. It panics if the stack is empty.
func (s *Stack[E]) Pop() E {
	v := s.Of[len(s.Of)-1]
	s.Of = s.Of[:len(s.Of)-1]
	return v
}

// Peek returns the top element without removing it. It panics if the stack is
// empty.
func (s Stack[E]) Peek() E {
	return s.Of[len(s.Of)-1]
}

func (s Stack[E]) Len() int {
	return len(s.Of)
}

func (s Stack[E]) Empty() bool {
	return len(s.Of) == 0
}
