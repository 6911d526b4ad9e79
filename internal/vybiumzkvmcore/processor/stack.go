package processor

import "github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"

// MinStackDepth is the number of stack value columns the trace always
// allocates; it bounds the trace layout, not Depth()'s reported value,
// which tracks the real number of items pushed.
const MinStackDepth = 16

// Stack is the VM's operand stack: a LIFO sequence of field elements.
// Depth() reports the actual number of items present, not a value padded
// to MinStackDepth. Reads below the initial fill return ZERO: the
// implicit fill beneath any real stack content is an infinite plane of
// zeros.
type Stack struct {
	items []field.Element
}

// NewStack builds a Stack pre-filled with init. init[0] ends up deepest,
// init[len-1] on top, matching the natural reading order of
// ProgramInputs.StackInit.
func NewStack(init []field.Element) *Stack {
	items := make([]field.Element, len(init))
	copy(items, init)
	return &Stack{items: items}
}

// Depth returns the current stack depth as a field element.
func (s *Stack) Depth() field.Element { return field.New(uint64(len(s.items))) }

// Peek returns the top element without removing it, or ZERO if the stack
// is empty.
func (s *Stack) Peek() field.Element {
	if len(s.items) == 0 {
		return field.Zero
	}
	return s.items[len(s.items)-1]
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v field.Element) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top element. An empty stack yields ZERO
// rather than an error: popping past the fill reads the zero plane (see
// the Stack doc comment), so underflow is not an observable condition.
func (s *Stack) Pop() field.Element {
	if len(s.items) == 0 {
		return field.Zero
	}
	top := len(s.items) - 1
	v := s.items[top]
	s.items = s.items[:top]
	return v
}

// Drop removes the top element and discards it.
func (s *Stack) Drop() {
	s.Pop()
}

// PeekWord returns the top four elements as a Word without removing them,
// ordered so the current top of stack is word[3]. Missing elements (fewer
// than four real items present) read as ZERO.
func (s *Stack) PeekWord() field.Word {
	var w field.Word
	n := len(s.items)
	for i := 0; i < 4; i++ {
		idx := n - 4 + i
		if idx >= 0 {
			w[i] = s.items[idx]
		}
	}
	return w
}

// PushWord pushes w's four elements in order, leaving w[3] on top.
func (s *Stack) PushWord(w field.Word) {
	for _, e := range w {
		s.Push(e)
	}
}

// MoveUp4 moves the fifth element from the top (four below it; the one a
// pushw.mem-style Pad×4 prefix buried under four zeros) to the top,
// shifting the intervening elements down by one. If the stack does not yet
// have five elements, the missing depth is treated as ZERO, matching the
// rest of this type's below-the-fill semantics.
func (s *Stack) MoveUp4() {
	n := len(s.items)
	idx := n - 5
	if idx < 0 {
		s.items = append(s.items, field.Zero)
		return
	}
	v := s.items[idx]
	copy(s.items[idx:], s.items[idx+1:])
	s.items[n-1] = v
}
