package emu

import (
	"errors"
	"fmt"
)

var (
	// ErrNilState is returned when an operation receives a nil State.
	ErrNilState = errors.New("emu: nil state")

	// ErrCapacityExceeded is the parent of every size and depth limit error.
	ErrCapacityExceeded = errors.New("emu: capacity exceeded")

	// ErrProgramTooLarge is returned when a program does not fit above 0x200.
	ErrProgramTooLarge = fmt.Errorf("program too large: %w", ErrCapacityExceeded)

	// ErrStackOverflow is returned when CALL finds the stack full.
	ErrStackOverflow = fmt.Errorf("stack overflow: %w", ErrCapacityExceeded)

	// ErrStackUnderflow is returned when RET finds the stack empty.
	ErrStackUnderflow = errors.New("emu: stack underflow")

	// ErrUnknownInstruction is returned for words that decode to no defined
	// operation within their family.
	ErrUnknownInstruction = errors.New("emu: unknown instruction")
)
