package hessian
// decoder_test.go exercises the worked scenarios from the incremental
// decoder's design notes, in the teacher's plain-testing, hex-literal
// style (ogorek_test.go's hexInput/TestPickle pattern, trimmed to this
// module's single push-based Decoder and no assertion library).

import (
	"encoding/hex"
	"testing"
	"time"
)

// hexBytes decodes a hex literal, panicking on malformed test input.
func hexBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// decodeAll feeds data to a fresh Decoder in one call and finalizes it.
func decodeAll(t *testing.T, data []byte) interface{} {
	t.Helper()
	d := NewDecoder()
	if err := d.Feed(data); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	v, err := d.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return v
}

func TestScalars(t *testing.T) {
	cases := []struct {
		name string
		hex  string
		want interface{}
	}{
		{"null", "4e", nil},
		{"true", "54", true},
		{"false", "46", false},
		{"int compact zero", "90", int32(0)},
		{"int compact min", "80", int32(-16)},
		{"int two-byte zero", "c800", int32(0)},
		{"int two-byte min", "c000", int32(-2048)},
		{"int two-byte max", "cfff", int32(2047)},
		{"int four-byte", "49000003e8", int32(1000)},
		{"long compact zero", "e0", int64(0)},
		{"long eight-byte", "4c0000000000000001", int64(1)},
		{"double zero", "5b", float64(0)},
		{"double one", "5c", float64(1)},
		{"double pi (8-byte IEEE)", "44400921fb54442d18", float64(3.141592653589793)},
		{"string empty", "00", ""},
		{"string compact", "0568656c6c6f", "hello"},
		{"binary empty", "20", Binary{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeAll(t, hexBytes(tc.hex))
			if !valueEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestStringChunked(t *testing.T) {
	// 'R' chunk "ab" (non-final) followed by 'S' chunk "cd" (final).
	data := []byte{'R', 0x00, 0x02, 'a', 'b', 'S', 0x00, 0x02, 'c', 'd'}
	got := decodeAll(t, data)
	if got != "abcd" {
		t.Errorf("got %#v, want %q", got, "abcd")
	}
}

func TestVectorStreamedUntyped(t *testing.T) {
	// 0x57 (untyped streamed vector) 0x90 (int 0) 0x91 (int 1) 'Z'
	data := []byte{0x57, 0x90, 0x91, 'Z'}
	got := decodeAll(t, data)
	vec, ok := got.(*Vector)
	if !ok || len(*vec) != 2 {
		t.Fatalf("got %#v", got)
	}
	if (*vec)[0] != int32(0) || (*vec)[1] != int32(1) {
		t.Errorf("got %#v", *vec)
	}
}

func TestVectorFixedCompact(t *testing.T) {
	// 0x7a (untyped fixed compact, size 2) 0x90 (int 0) 0x91 (int 1)
	got := decodeAll(t, []byte{0x7a, 0x90, 0x91})
	vec, ok := got.(*Vector)
	if !ok || len(*vec) != 2 {
		t.Fatalf("got %#v", got)
	}
	if (*vec)[0] != int32(0) || (*vec)[1] != int32(1) {
		t.Errorf("got %#v", *vec)
	}
}

func TestVectorFixedCompactEmpty(t *testing.T) {
	got := decodeAll(t, []byte{0x78})
	vec, ok := got.(*Vector)
	if !ok || len(*vec) != 0 {
		t.Fatalf("got %#v", got)
	}
}

func TestMapUntyped(t *testing.T) {
	// 'H' 0x03 "key" 0x90 (int 0) 'Z'
	data := append([]byte{'H', 0x03, 'k', 'e', 'y', 0x90}, 'Z')
	got := decodeAll(t, data)
	m, ok := got.(*OrderedMap)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	v, present := m.Get_("key")
	if !present || v != int32(0) {
		t.Errorf("got %#v", m)
	}
}

func TestClassInstanceWithNullField(t *testing.T) {
	// 'C' 0x04 "Self" 0x91 (field count 1) 0x04 "next"
	// 'O' 0x90 (class index 0) 'N' (field value null)
	data := []byte{'C', 0x04, 'S', 'e', 'l', 'f', 0x91, 0x04, 'n', 'e', 'x', 't', 'O', 0x90, 'N'}
	got := decodeAll(t, data)
	obj, ok := got.(*Object)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	if obj.ClassName() != "Self" {
		t.Errorf("got class name %q", obj.ClassName())
	}
	v, present := obj.Field("next")
	if !present || v != nil {
		t.Errorf("got field next=%#v, present=%v", v, present)
	}
}

func TestClassInstanceSelfReference(t *testing.T) {
	// Same class definition as above, but the object's own "next" field
	// is a back-reference (0x51) to the object itself (ref index 0).
	data := []byte{'C', 0x04, 'S', 'e', 'l', 'f', 0x91, 0x04, 'n', 'e', 'x', 't', 'O', 0x90, 0x51, 0x90}
	got := decodeAll(t, data)
	obj, ok := got.(*Object)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	v, present := obj.Field("next")
	if !present {
		t.Fatalf("field next missing")
	}
	cyclic, ok := v.(*Object)
	if !ok || cyclic != obj {
		t.Errorf("expected next to be the same *Object, got %#v", v)
	}
}

func TestTimestampMilliseconds(t *testing.T) {
	// 0x4a followed by the big-endian millisecond epoch for 2026-01-01T00:00:00Z.
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ms := want.UnixMilli()
	buf := make([]byte, 9)
	buf[0] = 0x4a
	for i := 0; i < 8; i++ {
		buf[1+i] = byte(ms >> (56 - 8*i))
	}
	got := decodeAll(t, buf)
	ts, ok := got.(time.Time)
	if !ok || !ts.Equal(want) {
		t.Errorf("got %#v, want %v", got, want)
	}
}

func TestIncrementalFeedMatchesSingleShot(t *testing.T) {
	data := []byte{'C', 0x04, 'S', 'e', 'l', 'f', 0x91, 0x04, 'n', 'e', 'x', 't', 'O', 0x90, 'N'}

	whole := decodeAll(t, data)
	wholeObj, ok := whole.(*Object)
	if !ok {
		t.Fatalf("baseline decode: got %#v", whole)
	}

	for split := 0; split <= len(data); split++ {
		d := NewDecoder()
		if err := d.Feed(data[:split]); err != nil {
			t.Fatalf("split %d: Feed first half: %v", split, err)
		}
		if err := d.Feed(data[split:]); err != nil {
			t.Fatalf("split %d: Feed second half: %v", split, err)
		}
		got, err := d.Finalize()
		if err != nil {
			t.Fatalf("split %d: Finalize: %v", split, err)
		}
		obj, ok := got.(*Object)
		if !ok || obj.ClassName() != wholeObj.ClassName() {
			t.Fatalf("split %d: got %#v, want object matching %#v", split, got, whole)
		}
	}

	// feeding a single byte at a time must reach the same state too.
	d := NewDecoder()
	for _, b := range data {
		if err := d.Feed([]byte{b}); err != nil {
			t.Fatalf("byte-at-a-time Feed: %v", err)
		}
	}
	if _, err := d.Finalize(); err != nil {
		t.Fatalf("byte-at-a-time Finalize: %v", err)
	}
}

func TestFinalizeBeforeAnyValue(t *testing.T) {
	d := NewDecoder()
	if _, err := d.Finalize(); err != errStackEmpty {
		t.Errorf("got %v, want errStackEmpty", err)
	}
}

func TestFinalizeMidValue(t *testing.T) {
	d := NewDecoder()
	if err := d.Feed([]byte{'C', 0x04, 'S', 'e'}); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, err := d.Finalize(); err != errUnexpectedEOF {
		t.Errorf("got %v, want errUnexpectedEOF", err)
	}
}

func TestResetAllowsReuse(t *testing.T) {
	d := NewDecoder()
	if err := d.Feed([]byte{'N'}); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, err := d.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := d.Feed([]byte{'T'}); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	got, err := d.Finalize()
	if err != nil || got != true {
		t.Errorf("got %#v, %v; want true, nil", got, err)
	}
}

func TestInvalidOpcodeAtBegin(t *testing.T) {
	d := NewDecoder()
	err := d.Feed([]byte{0x5a}) // 'Z' is never valid at top-level BEGIN
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Fatalf("got %T, want *DecodeError", err)
	}
}

func TestCollectionTypeRejectsBool(t *testing.T) {
	d := NewDecoder()
	// 'M' (typed map) followed by 'T' as the type tag: invalid, the
	// collection-type sub-dispatcher only accepts string or int32.
	err := d.Feed([]byte{'M', 'T'})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestMapCompositeKeyRegistersBeforeValue(t *testing.T) {
	// 'H' [vector key: 0x79 90] (fixed compact vector, size 1, [0])
	// [value: 91] 'Z'
	data := []byte{'H', 0x79, 0x90, 0x91, 'Z'}
	got := decodeAll(t, data)
	m, ok := got.(*OrderedMap)
	if !ok {
		t.Fatalf("got %#v", got)
	}
	if m.Len() != 1 {
		t.Fatalf("got len %d, want 1", m.Len())
	}
	var found bool
	m.Iter(func(k, v any) bool {
		vec, ok := k.(*Vector)
		if ok && len(*vec) == 1 && (*vec)[0] == int32(0) && v == int32(1) {
			found = true
		}
		return true
	})
	if !found {
		t.Errorf("composite key not found in %v", m)
	}

	// The key vector takes reference index 1 (the map holds 0) while the
	// key is being decoded, so a back-reference to 1 in the value
	// position (0x51 0x91) resolves to that very *Vector.
	got = decodeAll(t, []byte{'H', 0x79, 0x90, 0x51, 0x91, 'Z'})
	m, ok = got.(*OrderedMap)
	if !ok || m.Len() != 1 {
		t.Fatalf("got %#v", got)
	}
	m.Iter(func(k, v any) bool {
		kv, kok := k.(*Vector)
		vv, vok := v.(*Vector)
		if !kok || !vok || kv != vv {
			t.Errorf("value is not the key vector itself: key %#v, value %#v", k, v)
		}
		return true
	})
}
