package interp

import "gostack/pkg/lang"

// Stack is the operand stack shared by every statement.
type Stack struct {
	items []lang.Literal
}

func (s *Stack) Push(v lang.Literal) {
	s.items = append(s.items, v)
}

// Pop removes the top value. ok is false when the stack is empty.
func (s *Stack) Pop() (v lang.Literal, ok bool) {
	n := len(s.items)
	if n == 0 {
		return lang.Literal{}, false
	}
	v = s.items[n-1]
	s.items = s.items[:n-1]
	return v, true
}

func (s *Stack) Len() int { return len(s.items) }

// Snapshot returns a copy of the stack, bottom first.
func (s *Stack) Snapshot() []lang.Literal {
	out := make([]lang.Literal, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Stack) Clear() { s.items = s.items[:0] }
