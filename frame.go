package hessian
// frame and stateTag implement the "state stack as tagged sum" design
// note (spec §1.9): conceptually every state carries only the fields
// it needs, but — matching kisielk/og-rek's own flat-struct idiom
// (ogorek.go's Decoder keeps stack/buf/memo as plain fields rather
// than simulating a sum type) — this module realizes that with one
// struct carrying a stateTag discriminant plus the union of fields any
// state might use, which is the idiomatic Go shape for a tagged
// variant with a fixed, small set of cases.

import "bytes"

// stateTag enumerates the parsing sub-modes a frame can be in.
type stateTag int

const (
	stateStringSize stateTag = iota
	stateStringData
	stateStringChunkSize
	stateStringChunkData
	stateStringChunkFinalSize
	stateStringChunkFinalData
	stateStringChunkContinuation

	stateBinarySize
	stateBinaryData
	stateBinaryChunkSize
	stateBinaryChunkData
	stateBinaryChunkFinalSize
	stateBinaryChunkFinalData
	stateBinaryChunkContinuation

	stateInt32
	stateInt32Two
	stateInt32Three
	stateInt64
	stateInt64Two
	stateInt64Three
	stateInt64Via32

	stateDouble1
	stateDouble2
	stateDouble4
	stateDouble8

	stateTimestampMilliseconds
	stateTimestampMinutes

	stateCollectionType

	stateVector
	stateVectorFixed
	stateVectorSize

	stateMapKey
	stateMapValue

	stateClassDefinitionName
	stateClassDefinitionSize
	stateClassDefinitionField

	stateObjectInstanceType
	stateObjectInstanceField

	stateReference
)

// frame is one in-progress value on the parse stack.
type frame struct {
	state        stateTag
	buf          []byte      // accumulates raw bytes of the current scalar
	result       interface{} // composite under construction, or string/binary accumulator
	expectedSize int64       // sized strings/binaries/fixed vectors; field count for class defs
	nextKey      interface{} // pending map key, OR index of next object field to fill
}

// resetBuf clears the frame's scalar-accumulation buffer for reuse.
func (f *frame) resetBuf() {
	if f.buf == nil {
		f.buf = make([]byte, 0, 8)
		return
	}
	f.buf = f.buf[:0]
}

// stringBuilder returns the *bytes.Buffer used to accumulate a
// multi-chunk string or binary value's payload, allocating it lazily.
func (f *frame) stringBuilder() *bytes.Buffer {
	b, ok := f.result.(*bytes.Buffer)
	if !ok {
		b = &bytes.Buffer{}
		f.result = b
	}
	return b
}
