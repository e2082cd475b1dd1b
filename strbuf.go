package hessian
// strbuf.go accumulates sized and chunked string/binary payloads.
//
// The completion rule for strings — spec §4.4's "triple condition" —
// is adapted from pyquote.go's rune-walking idiom (pydecodeStringEscape
// used utf8.DecodeRuneInString to walk a Python pickle string's escape
// sequences rune by rune); here the same rune-walking machinery
// (utf8.Valid + utf8.RuneCount) verifies that the accumulated bytes
// form exactly expected_size complete Unicode characters, which is
// what lets the decoder tell a still-incomplete multi-byte UTF-8
// sequence apart from a genuinely finished string. Binary payloads
// have no such rule: they complete on byte-length alone.

import "unicode/utf8"

func stringComplete(buf []byte, expected int64) bool {
	if int64(len(buf)) < expected {
		return false
	}
	return utf8.Valid(buf) && int64(utf8.RuneCount(buf)) == expected
}

func (d *Decoder) stepStringData(top *frame, b byte) error {
	top.buf = append(top.buf, b)
	if !stringComplete(top.buf, top.expectedSize) {
		return nil
	}
	s := string(top.buf)
	d.popFrame()
	return d.emit(s)
}

func (d *Decoder) stepBinaryData(top *frame, b byte) error {
	top.buf = append(top.buf, b)
	if int64(len(top.buf)) < top.expectedSize {
		return nil
	}
	v := append(Binary(nil), top.buf...)
	d.popFrame()
	return d.emit(v)
}

// completeStringChunk folds top's in-progress chunk payload into its
// running accumulator, then either finalizes the whole multi-chunk
// string (final) or parks top awaiting the next 'R'/'S' continuation
// byte.
func (d *Decoder) completeStringChunk(top *frame, final bool) error {
	acc := top.stringBuilder()
	acc.Write(top.buf)
	top.resetBuf()
	if final {
		s := acc.String()
		d.popFrame()
		return d.emit(s)
	}
	top.state = stateStringChunkContinuation
	return nil
}

func (d *Decoder) completeBinaryChunk(top *frame, final bool) error {
	acc := top.stringBuilder()
	acc.Write(top.buf)
	top.resetBuf()
	if final {
		v := append(Binary(nil), acc.Bytes()...)
		d.popFrame()
		return d.emit(v)
	}
	top.state = stateBinaryChunkContinuation
	return nil
}

func (d *Decoder) stepStringChunkSize(top *frame, b byte, final bool) error {
	if !accumulate(top, b, 2) {
		return nil
	}
	size := int64(uint16(top.buf[0])<<8 | uint16(top.buf[1]))
	top.expectedSize = size
	top.resetBuf()
	if size == 0 {
		return d.completeStringChunk(top, final)
	}
	if final {
		top.state = stateStringChunkFinalData
	} else {
		top.state = stateStringChunkData
	}
	return nil
}

func (d *Decoder) stepStringChunkData(top *frame, b byte, final bool) error {
	top.buf = append(top.buf, b)
	if !stringComplete(top.buf, top.expectedSize) {
		return nil
	}
	return d.completeStringChunk(top, final)
}

func (d *Decoder) stepBinaryChunkSize(top *frame, b byte, final bool) error {
	if !accumulate(top, b, 2) {
		return nil
	}
	size := int64(uint16(top.buf[0])<<8 | uint16(top.buf[1]))
	top.expectedSize = size
	top.resetBuf()
	if size == 0 {
		return d.completeBinaryChunk(top, final)
	}
	if final {
		top.state = stateBinaryChunkFinalData
	} else {
		top.state = stateBinaryChunkData
	}
	return nil
}

func (d *Decoder) stepBinaryChunkData(top *frame, b byte, final bool) error {
	top.buf = append(top.buf, b)
	if int64(len(top.buf)) < top.expectedSize {
		return nil
	}
	return d.completeBinaryChunk(top, final)
}
