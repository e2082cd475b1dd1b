package hessian
// stream.go offers the pull-based convenience the teacher's own
// Decoder provides natively (ogorek.go's Decoder wraps a *bufio.Reader
// and blocks on ReadByte/Read inside Decode). This module's core
// Decoder is deliberately push-based instead (spec requires Feed to
// never block so it can be driven by arbitrary-sized increments from
// a non-blocking source); StreamDecoder recovers the same one-call
// ergonomics on top of it for the common case where a blocking
// io.Reader is in fact available.

import (
	"bufio"
	"io"
)

// StreamDecoder decodes a single Hessian value at a time from an
// io.Reader, taking from its buffered reader only the bytes that
// complete the value. The buffer may read ahead from the underlying
// io.Reader; those bytes are kept for the next Decode call.
type StreamDecoder struct {
	r   *bufio.Reader
	dec *Decoder
}

// NewStreamDecoder returns a StreamDecoder reading from r with default
// Decoder configuration.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return NewStreamDecoderWithConfig(r, Config{})
}

// NewStreamDecoderWithConfig returns a StreamDecoder reading from r,
// configuring its underlying Decoder per cfg.
func NewStreamDecoderWithConfig(r io.Reader, cfg Config) *StreamDecoder {
	return &StreamDecoder{
		r:   bufio.NewReader(r),
		dec: NewDecoderWithConfig(cfg),
	}
}

// Decode reads and decodes the next complete Hessian value from the
// underlying reader, blocking until a full value (or an error) has
// arrived.
func (sd *StreamDecoder) Decode() (interface{}, error) {
	for {
		b, err := sd.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, errUnexpectedEOF
			}
			return nil, err
		}
		if err := sd.dec.Feed([]byte{b}); err != nil {
			return nil, err
		}
		if len(sd.dec.stack) == 0 && sd.dec.haveFinal {
			return sd.dec.Finalize()
		}
	}
}
