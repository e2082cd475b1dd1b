package hessian
// typeconv.go smooths over one genuine ambiguity in the decoded value
// domain: Hessian's int and long share the same logical range of
// "whole number" but decode to distinct Go types (int32 and int64)
// because the wire format distinguishes them. Grounded on
// typeconv.go's AsInt64, which solves the analogous problem of
// Python's int (decoded int64) vs. long (decoded *big.Int) — this
// module has no bignum opcode, so the two cases collapse to a single
// widening conversion instead of a range check against big.Int.

import "fmt"

// AsInt64 accepts either a decoded int (int32) or long (int64) and
// returns it widened to int64, so callers that don't care which wire
// representation the encoder chose can accept both uniformly.
func AsInt64(x interface{}) (int64, error) {
	switch v := x.(type) {
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	}
	return 0, fmt.Errorf("hessian: expect int|long; got %T", x)
}

// AsString tries to represent a decoded value as a string. It
// succeeds only if x is a Hessian string; unlike AsInt64, string and
// binary are never interchangeable in Hessian.
func AsString(x interface{}) (string, error) {
	s, ok := x.(string)
	if !ok {
		return "", fmt.Errorf("hessian: expect string; got %T", x)
	}
	return s, nil
}

// AsBinary tries to represent a decoded value as Binary.
func AsBinary(x interface{}) (Binary, error) {
	b, ok := x.(Binary)
	if !ok {
		return nil, fmt.Errorf("hessian: expect binary; got %T", x)
	}
	return b, nil
}
