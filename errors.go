package hessian

import "fmt"

// DecodeError is the error that Decoder returns when it encounters a
// permanent decode failure: an invalid opcode byte, a strict
// sub-dispatcher seeing an opcode it does not accept, an invalid byte
// at a chunk continuation, or an out-of-range back-reference or
// class-definition index.
//
// Once a Decoder returns a DecodeError its internal state is
// corrupted; the caller must call Reset before reusing it.
type DecodeError struct {
	Byte byte // the offending opcode/continuation byte
	Pos  int  // cumulative byte offset within the current decode cycle
	Msg  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hessian: %s: byte %#x at position %d", e.Msg, e.Byte, e.Pos)
}

var (
	// errStackEmpty is returned by Finalize when no top-level value has
	// ever been emitted.
	errStackEmpty = fmt.Errorf("hessian: finalize: no value decoded yet")

	// errUnexpectedEOF is returned by Finalize when the frame stack is
	// non-empty, i.e. a composite or scalar is still being assembled.
	errUnexpectedEOF = fmt.Errorf("hessian: finalize: unexpected end of stream")

	// errDepthExceeded is returned when pushing a frame would exceed
	// Config.MaxDepth.
	errDepthExceeded = fmt.Errorf("hessian: maximum nesting depth exceeded")
)

// refOutOfRange builds a DecodeError for an out-of-range back-reference.
func refOutOfRange(pos int, idx int64) error {
	return &DecodeError{Pos: pos, Msg: fmt.Sprintf("back-reference index %d out of range", idx)}
}

// classOutOfRange builds a DecodeError for an out-of-range class-definition index.
func classOutOfRange(pos int, idx int64) error {
	return &DecodeError{Pos: pos, Msg: fmt.Sprintf("class-definition index %d out of range", idx)}
}

// invalidOpcode builds a DecodeError for a byte the active dispatcher
// (BEGIN or a strict sub-dispatcher) does not recognize.
func invalidOpcode(pos int, b byte, where string) error {
	return &DecodeError{Byte: b, Pos: pos, Msg: "invalid opcode at " + where}
}

// internalError reports a frame reaching step or emit in a state that
// function does not know how to handle, which would indicate a bug in
// the dispatcher rather than anything about the input bytes.
func internalError(pos int, state stateTag) error {
	return &DecodeError{Pos: pos, Msg: fmt.Sprintf("internal error: unexpected frame state %d", state)}
}
