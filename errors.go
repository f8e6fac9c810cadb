package spvlink

import "fmt"

// ErrorKind categorizes module construction and linking errors.
type ErrorKind uint8

const (
	// ErrInvalidHeader indicates a malformed SPIR-V header or framing.
	ErrInvalidHeader ErrorKind = iota

	// ErrUnsupportedModel indicates an addressing or memory model other
	// than Logical/GLSL450.
	ErrUnsupportedModel

	// ErrBadTypeReference indicates a type instruction referencing an
	// undefined or wrongly-kinded prior identifier.
	ErrBadTypeReference

	// ErrBadVariable indicates a variable whose declared type is not a
	// pointer type.
	ErrBadVariable

	// ErrUnsupportedImage indicates an image dimensionality this linker
	// cannot expose (rect, subpass data, or unknown).
	ErrUnsupportedImage

	// ErrStageOrder indicates a link attempt where the previous module
	// does not strictly precede this one in the pipeline.
	ErrStageOrder

	// ErrUnlinkedInput indicates an input with no same-named output in
	// the previous stage.
	ErrUnlinkedInput

	// ErrUnlocatedOutput indicates a matched output that carries no
	// location to link against.
	ErrUnlocatedOutput
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidHeader:
		return "InvalidHeader"
	case ErrUnsupportedModel:
		return "UnsupportedModel"
	case ErrBadTypeReference:
		return "BadTypeReference"
	case ErrBadVariable:
		return "BadVariable"
	case ErrUnsupportedImage:
		return "UnsupportedImage"
	case ErrStageOrder:
		return "StageOrder"
	case ErrUnlinkedInput:
		return "UnlinkedInput"
	case ErrUnlocatedOutput:
		return "UnlocatedOutput"
	default:
		return "Unknown"
	}
}

// Error is a module construction or linking failure. A module that
// fails construction is discarded entirely; its stage must not be
// linked.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Stage is the pipeline stage the failing module belongs to.
	Stage Stage

	// ID optionally identifies the offending identifier (0 = none).
	ID uint32
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("spvlink %s (stage %s, id %%%d): %s", e.Kind, e.Stage, e.ID, e.Message)
	}
	return fmt.Sprintf("spvlink %s (stage %s): %s", e.Kind, e.Stage, e.Message)
}

func errorf(kind ErrorKind, stage Stage, id uint32, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Stage:   stage,
		ID:      id,
	}
}
