package cpu

import "errors"

// stackDepth is the call stack capacity.
const stackDepth = 16

var (
	// ErrStackOverflow is returned when a call would exceed the
	// stack capacity.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when returning with an
	// empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// stack is the bounded LIFO of return addresses.
type stack struct {
	data [stackDepth]uint16
	sp   uint8
}

func (s *stack) push(addr uint16) error {
	if s.sp == stackDepth {
		return ErrStackOverflow
	}
	s.data[s.sp] = addr
	s.sp++
	return nil
}

func (s *stack) pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.data[s.sp], nil
}

func (s *stack) depth() int {
	return int(s.sp)
}
