package hessian
// opcode.go implements the BEGIN dispatcher (spec §4.3) and its three
// strict sub-dispatchers (spec §4.6): the opcode-byte-driven decision
// of what a freshly-started value is and how to start decoding it,
// either by emitting an already-fully-known value immediately or by
// pushing a new frame that will accumulate the rest of it over
// subsequent bytes.
//
// Grounded on ogorek.go's Decode method, whose giant `switch key`
// opcode-byte dispatch is the direct model for this dispatcher; the
// difference is that og-rek's loop runs to completion against a
// blocking io.Reader inside one switch arm (e.g. loadBinInt reads its
// four bytes right there), while this dispatcher only ever decides
// what to do with the one byte it has been handed, pushing a frame
// when more bytes are needed. That restructuring is what makes Feed
// safe to call with one byte, or one megabyte, at a time.

import "bytes"

// strictMode narrows which opcode categories beginValue will accept,
// realizing the three strict sub-dispatchers of spec §4.6.
type strictMode int

const (
	strictNone strictMode = iota
	strictInt
	strictString
	strictStringOrInt
)

func (s strictMode) allowsInt32() bool {
	return s == strictNone || s == strictInt || s == strictStringOrInt
}

func (s strictMode) allowsString() bool {
	return s == strictNone || s == strictString || s == strictStringOrInt
}

func (s strictMode) where() string {
	switch s {
	case strictInt:
		return "int-strict sub-dispatcher"
	case strictString:
		return "string-strict sub-dispatcher"
	case strictStringOrInt:
		return "collection-type sub-dispatcher"
	default:
		return "start of value"
	}
}

// beginValue is the BEGIN dispatcher: it classifies b as the opening
// byte of a new value and either emits that value directly (for
// opcodes that are fully self-describing) or pushes a frame that will
// finish accumulating it on later bytes.
func (d *Decoder) beginValue(b byte, strict strictMode) error {
	switch {
	case b == 'N':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.emit(nil)
	case b == 'T':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.emit(true)
	case b == 'F':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.emit(false)

	// int32: compact single-byte, two-byte, three-byte, four-byte ('I')
	case b >= 0x80 && b <= 0xbf:
		if !strict.allowsInt32() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.emit(int32(b) - 0x90)
	case b >= 0xc0 && b <= 0xcf:
		if !strict.allowsInt32() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateInt32Two, buf: []byte{b}})
	case b >= 0xd0 && b <= 0xd7:
		if !strict.allowsInt32() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateInt32Three, buf: []byte{b}})
	case b == 'I':
		if !strict.allowsInt32() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateInt32})

	// int64: compact single-byte, two-byte, three-byte, four-byte, eight-byte ('L')
	case b >= 0xd8 && b <= 0xef:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.emit(int64(b) - 0xe0)
	case b >= 0xf0 && b <= 0xff:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateInt64Two, buf: []byte{b}})
	case b >= 0x38 && b <= 0x3f:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateInt64Three, buf: []byte{b}})
	case b == 0x59:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateInt64Via32})
	case b == 'L':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateInt64})

	// double: two constants, and 1/2/4/8-byte encodings
	case b == 0x5b:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.emit(float64(0))
	case b == 0x5c:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.emit(float64(1))
	case b == 0x5d:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateDouble1})
	case b == 0x5e:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateDouble2})
	case b == 0x5f:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateDouble4})
	case b == 'D':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateDouble8})

	// string: compact, short, chunk (non-final 'R', final 'S')
	case b <= 0x1f:
		if !strict.allowsString() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		if b == 0 {
			return d.emit("")
		}
		return d.pushFrame(&frame{state: stateStringData, expectedSize: int64(b)})
	case b >= 0x30 && b <= 0x33:
		if !strict.allowsString() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateStringSize, expectedSize: int64(b-0x30) << 8})
	case b == 'R':
		if !strict.allowsString() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateStringChunkSize, result: &bytes.Buffer{}})
	case b == 'S':
		if !strict.allowsString() {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateStringChunkFinalSize, result: &bytes.Buffer{}})

	// binary: compact, short, chunk (non-final 'A', final 'B')
	case b >= 0x20 && b <= 0x2f:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		size := int64(b - 0x20)
		if size == 0 {
			return d.emit(Binary{})
		}
		return d.pushFrame(&frame{state: stateBinaryData, expectedSize: size})
	case b >= 0x34 && b <= 0x37:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateBinarySize, expectedSize: int64(b-0x34) << 8})
	case b == 'A':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateBinaryChunkSize, result: &bytes.Buffer{}})
	case b == 'B':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateBinaryChunkFinalSize, result: &bytes.Buffer{}})

	// timestamps
	case b == 0x4a:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateTimestampMilliseconds})
	case b == 0x4b:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateTimestampMinutes})

	// vectors
	case b == 0x55: // typed streamed
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.beginVectorStreamed(true)
	case b == 'V': // typed fixed, long form
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.beginVectorFixedSized(true)
	case b == 0x57: // untyped streamed
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.beginVectorStreamed(false)
	case b == 0x58: // untyped fixed, long form
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.beginVectorFixedSized(false)
	case b >= 0x70 && b <= 0x77: // typed fixed compact
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.beginVectorFixedCompact(int64(b-0x70), true)
	case b >= 0x78 && b <= 0x7f: // untyped fixed compact
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.beginVectorFixedCompact(int64(b-0x78), false)

	// maps
	case b == 'M': // typed
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		m := NewOrderedMap()
		d.registerComposite(m)
		if err := d.pushFrame(&frame{state: stateMapKey, result: m}); err != nil {
			return err
		}
		return d.pushFrame(&frame{state: stateCollectionType})
	case b == 'H': // untyped
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		m := NewOrderedMap()
		d.registerComposite(m)
		return d.pushFrame(&frame{state: stateMapKey, result: m})

	// class definition
	case b == 'C':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		def := &ClassDef{}
		d.classes.register(def)
		return d.pushFrame(&frame{state: stateClassDefinitionName, result: def})

	// object instance: long form and compact
	case b == 'O':
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateObjectInstanceType})
	case b >= 0x60 && b <= 0x6f:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		def, err := d.classes.at(d.pos, int64(b-0x60))
		if err != nil {
			return err
		}
		obj, err := d.beginObjectInstance(def)
		if err != nil {
			return err
		}
		if obj != nil {
			return d.emit(obj)
		}
		return nil

	// back-reference
	case b == 0x51:
		if strict != strictNone {
			return invalidOpcode(d.pos, b, strict.where())
		}
		return d.pushFrame(&frame{state: stateReference})

	default:
		return invalidOpcode(d.pos, b, strict.where())
	}
}
