package spritedit

import "errors"

// Sentinel errors for every failure mode in the engine. All are recoverable:
// the worst case is a rejected operation with prior state left intact.
// Match with errors.Is; returned errors may carry wrapped detail.
var (
	// ErrOutOfBounds reports a pixel coordinate outside the buffer.
	ErrOutOfBounds = errors.New("spritedit: pixel out of bounds")

	// ErrOutOfCanvas reports a screen position that resolves to a cell
	// outside the canvas. Gesture handlers treat it as a silent no-op.
	ErrOutOfCanvas = errors.New("spritedit: position outside canvas")

	// ErrInvalidDimension reports a non-positive size or resolution.
	ErrInvalidDimension = errors.New("spritedit: invalid dimension")

	// ErrDimensionMismatch reports decoded image data whose length does not
	// match the declared width and height.
	ErrDimensionMismatch = errors.New("spritedit: pixel data does not match dimensions")

	// ErrDuplicateID reports a command registered under an ID already taken.
	ErrDuplicateID = errors.New("spritedit: duplicate command id")

	// ErrNotFound reports an invoke of an unregistered command ID.
	ErrNotFound = errors.New("spritedit: command not found")

	// ErrDisabled reports an invoke of a command whose enablement predicate
	// currently evaluates false.
	ErrDisabled = errors.New("spritedit: command disabled")
)
