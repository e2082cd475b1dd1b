// +build gofuzz

package hessian
// fuzz.go adapts ogorek.go's Fuzz entry point to this module's
// decode-only scope: the teacher's Fuzz decodes and then re-encodes to
// test Encoder/Decoder consistency, which has no counterpart here
// (there is no encoder, see DESIGN.md). What carries over directly is
// feeding arbitrary bytes at a decoder to exercise panics, infinite
// loops, and unbounded recursion/allocation — stack overflow in the
// teacher's words — which for this decoder primarily means confirming
// MaxDepth actually bounds frame-stack growth on adversarial input.

func Fuzz(data []byte) int {
	d := NewDecoder()
	if err := d.Feed(data); err != nil {
		return 0
	}
	if _, err := d.Finalize(); err != nil {
		return 0
	}
	return 1
}
