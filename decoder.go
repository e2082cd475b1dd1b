package hessian
// decoder.go is the driver: the pushdown automaton that spec §2 and §4
// describe, holding the frame stack and reference/class tables and
// advancing exactly one state transition or accumulation step per fed
// byte (spec §1's core incrementality invariant).
//
// Grounded on ogorek.go's Decoder, which also carries {config, a
// stack, a memo table} as its three fields, and on its push/pop/top
// stack primitives; reworked from a blocking io.Reader-driven loop
// into a byte-at-a-time Feed/Finalize push API, since og-rek's
// Decode() assumes the whole stream is available to block on, which
// is exactly what spec requires this decoder not to assume.

// Config holds Decoder's tunable limits.
type Config struct {
	// MaxDepth bounds how many frames may be nested at once, guarding
	// against unbounded stack growth from a maliciously or accidentally
	// deeply nested input. Zero means DefaultMaxDepth.
	MaxDepth int
}

// DefaultMaxDepth is the MaxDepth Config applies when unset.
const DefaultMaxDepth = 1024

// Decoder incrementally decodes one Hessian 2.0 value from bytes
// delivered in arbitrary-sized increments via Feed, with the decoded
// result retrieved by Finalize.
//
// A Decoder is not safe for concurrent use. Its zero value is not
// ready to use; construct with NewDecoder or NewDecoderWithConfig.
type Decoder struct {
	config Config

	stack   []*frame
	refs    refTable
	classes classTable

	finalValue interface{}
	haveFinal  bool

	pos int // cumulative byte offset since the last Reset, for error reporting
}

// NewDecoder returns a Decoder with default configuration.
func NewDecoder() *Decoder {
	return NewDecoderWithConfig(Config{})
}

// NewDecoderWithConfig returns a Decoder configured per cfg.
func NewDecoderWithConfig(cfg Config) *Decoder {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	d := &Decoder{config: cfg}
	d.Reset()
	return d
}

// Reset discards all in-progress parse state, readying the Decoder to
// decode a new, unrelated value. Finalize calls Reset on success;
// callers need only call it themselves to abandon a decode in
// progress or to recover after an error.
func (d *Decoder) Reset() {
	d.stack = d.stack[:0]
	d.refs.reset()
	d.classes.reset()
	d.finalValue = nil
	d.haveFinal = false
	d.pos = 0
}

// Feed advances the decoder by data, which may be any length from a
// single byte to the remainder of the stream. Feed never blocks and
// never reads beyond data; bytes that complete a value are reflected
// in Finalize, and bytes belonging to a value still in progress are
// retained internally until more arrive.
//
// Once Feed returns a non-nil error, the Decoder's internal state is
// corrupted and must not be fed further bytes until Reset.
func (d *Decoder) Feed(data []byte) error {
	for _, b := range data {
		if err := d.step(b); err != nil {
			return err
		}
		d.pos++
	}
	return nil
}

// Finalize returns the value decoded so far, if at least one complete
// top-level value has been decoded and nothing remains in progress;
// when several top-level values were fed, it returns the last one. It returns
// errUnexpectedEOF if a value is still being assembled, or
// errStackEmpty if no value has been decoded at all. On success it
// resets the Decoder so it is immediately ready to decode the next
// value.
func (d *Decoder) Finalize() (interface{}, error) {
	if len(d.stack) != 0 {
		return nil, errUnexpectedEOF
	}
	if !d.haveFinal {
		return nil, errStackEmpty
	}
	v := d.finalValue
	d.Reset()
	return v, nil
}

func (d *Decoder) top() *frame {
	return d.stack[len(d.stack)-1]
}

func (d *Decoder) pushFrame(f *frame) error {
	if len(d.stack) >= d.config.MaxDepth {
		return errDepthExceeded
	}
	d.stack = append(d.stack, f)
	return nil
}

func (d *Decoder) popFrame() *frame {
	n := len(d.stack) - 1
	f := d.stack[n]
	d.stack = d.stack[:n]
	return f
}

// step advances the automaton by exactly one byte: it looks at what
// the currently active frame (or, with an empty stack, the top-level
// BEGIN dispatcher) expects next, and dispatches to the matching
// accumulator, strict sub-dispatcher, or composite continuation.
func (d *Decoder) step(b byte) error {
	if len(d.stack) == 0 {
		return d.beginValue(b, strictNone)
	}

	top := d.top()
	switch top.state {
	case stateVector:
		if b == 'Z' {
			d.popFrame()
			return d.emit(top.result.(*Vector))
		}
		return d.beginValue(b, strictNone)
	case stateVectorFixed, stateMapValue, stateObjectInstanceField:
		return d.beginValue(b, strictNone)
	case stateMapKey:
		if b == 'Z' {
			d.popFrame()
			return d.emit(top.result.(*OrderedMap))
		}
		return d.beginValue(b, strictNone)

	case stateVectorSize, stateReference, stateClassDefinitionSize, stateObjectInstanceType:
		return d.beginValue(b, strictInt)
	case stateClassDefinitionName, stateClassDefinitionField:
		return d.beginValue(b, strictString)
	case stateCollectionType:
		return d.beginValue(b, strictStringOrInt)

	case stateInt32:
		return d.stepInt32(top, b)
	case stateInt32Two:
		return d.stepInt32Two(top, b)
	case stateInt32Three:
		return d.stepInt32Three(top, b)
	case stateInt64:
		return d.stepInt64(top, b)
	case stateInt64Two:
		return d.stepInt64Two(top, b)
	case stateInt64Three:
		return d.stepInt64Three(top, b)
	case stateInt64Via32:
		return d.stepInt64Via32(top, b)

	case stateDouble1:
		return d.stepDouble1(top, b)
	case stateDouble2:
		return d.stepDouble2(top, b)
	case stateDouble4:
		return d.stepDouble4(top, b)
	case stateDouble8:
		return d.stepDouble8(top, b)

	case stateTimestampMilliseconds:
		return d.stepTimestampMilliseconds(top, b)
	case stateTimestampMinutes:
		return d.stepTimestampMinutes(top, b)

	case stateStringSize:
		top.expectedSize |= int64(b)
		if top.expectedSize == 0 {
			d.popFrame()
			return d.emit("")
		}
		top.state = stateStringData
		top.resetBuf()
		return nil
	case stateBinarySize:
		top.expectedSize |= int64(b)
		if top.expectedSize == 0 {
			d.popFrame()
			return d.emit(Binary{})
		}
		top.state = stateBinaryData
		top.resetBuf()
		return nil
	case stateStringData:
		return d.stepStringData(top, b)
	case stateBinaryData:
		return d.stepBinaryData(top, b)

	case stateStringChunkSize:
		return d.stepStringChunkSize(top, b, false)
	case stateStringChunkFinalSize:
		return d.stepStringChunkSize(top, b, true)
	case stateStringChunkData:
		return d.stepStringChunkData(top, b, false)
	case stateStringChunkFinalData:
		return d.stepStringChunkData(top, b, true)
	case stateStringChunkContinuation:
		switch b {
		case 'R':
			top.state = stateStringChunkSize
			top.resetBuf()
			return nil
		case 'S':
			top.state = stateStringChunkFinalSize
			top.resetBuf()
			return nil
		default:
			return invalidOpcode(d.pos, b, "string chunk continuation")
		}

	case stateBinaryChunkSize:
		return d.stepBinaryChunkSize(top, b, false)
	case stateBinaryChunkFinalSize:
		return d.stepBinaryChunkSize(top, b, true)
	case stateBinaryChunkData:
		return d.stepBinaryChunkData(top, b, false)
	case stateBinaryChunkFinalData:
		return d.stepBinaryChunkData(top, b, true)
	case stateBinaryChunkContinuation:
		switch b {
		case 'A':
			top.state = stateBinaryChunkSize
			top.resetBuf()
			return nil
		case 'B':
			top.state = stateBinaryChunkFinalSize
			top.resetBuf()
			return nil
		default:
			return invalidOpcode(d.pos, b, "binary chunk continuation")
		}

	default:
		return internalError(d.pos, top.state)
	}
}
