package trace

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/kzs0/strata/internal"
)

const (
	// TraceIDSize is the size in bytes of a trace identifier.
	TraceIDSize = 16
	// SpanIDSize is the size in bytes of a span identifier.
	SpanIDSize = 8

	traceIDHexSize = 2 * TraceIDSize
	spanIDHexSize  = 2 * SpanIDSize
)

// TraceID is a 16-byte identifier shared by every span in a trace.
// The zero value is the canonical invalid identifier.
type TraceID [TraceIDSize]byte

// SpanID is an 8-byte identifier for a single span.
// The zero value is the canonical invalid identifier.
type SpanID [SpanIDSize]byte

// NewTraceID generates a new random trace ID.
func NewTraceID() TraceID {
	var id TraceID
	rand.Read(id[:])
	return id
}

// NewSpanID generates a new random span ID.
func NewSpanID() SpanID {
	var id SpanID
	rand.Read(id[:])
	return id
}

// TraceIDFromBytes builds a TraceID from the 16 bytes of src starting at
// offset. Returns ErrInvalidLength if src is too short from offset.
func TraceIDFromBytes(src []byte, offset int) (TraceID, error) {
	var id TraceID
	if offset < 0 || len(src)-offset < TraceIDSize {
		return id, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidLength, TraceIDSize, offset, len(src))
	}
	copy(id[:], src[offset:offset+TraceIDSize])
	return id, nil
}

// SpanIDFromBytes builds a SpanID from the 8 bytes of src starting at
// offset. Returns ErrInvalidLength if src is too short from offset.
func SpanIDFromBytes(src []byte, offset int) (SpanID, error) {
	var id SpanID
	if offset < 0 || len(src)-offset < SpanIDSize {
		return id, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidLength, SpanIDSize, offset, len(src))
	}
	copy(id[:], src[offset:offset+SpanIDSize])
	return id, nil
}

// TraceIDFromHex builds a TraceID from the 32 lowercase hex characters of
// src starting at offset. Returns ErrInvalidFormat if fewer than 32
// characters remain or any of them is not a lowercase hex digit.
func TraceIDFromHex(src string, offset int) (TraceID, error) {
	var id TraceID
	if offset < 0 || len(src)-offset < traceIDHexSize {
		return id, fmt.Errorf("%w: need %d hex characters at offset %d in %q", ErrInvalidFormat, traceIDHexSize, offset, src)
	}
	if !internal.DecodeHex(id[:], src[offset:offset+traceIDHexSize]) {
		return id, fmt.Errorf("%w: %q is not lowercase hex", ErrInvalidFormat, src[offset:offset+traceIDHexSize])
	}
	return id, nil
}

// SpanIDFromHex builds a SpanID from the 16 lowercase hex characters of
// src starting at offset. Returns ErrInvalidFormat if fewer than 16
// characters remain or any of them is not a lowercase hex digit.
func SpanIDFromHex(src string, offset int) (SpanID, error) {
	var id SpanID
	if offset < 0 || len(src)-offset < spanIDHexSize {
		return id, fmt.Errorf("%w: need %d hex characters at offset %d in %q", ErrInvalidFormat, spanIDHexSize, offset, src)
	}
	if !internal.DecodeHex(id[:], src[offset:offset+spanIDHexSize]) {
		return id, fmt.Errorf("%w: %q is not lowercase hex", ErrInvalidFormat, src[offset:offset+spanIDHexSize])
	}
	return id, nil
}

// CopyBytesTo copies the raw bytes of the trace ID into dest starting at
// offset. Returns ErrInvalidLength if dest is too short from offset.
func (t TraceID) CopyBytesTo(dest []byte, offset int) error {
	if offset < 0 || len(dest)-offset < TraceIDSize {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidLength, TraceIDSize, offset, len(dest))
	}
	copy(dest[offset:], t[:])
	return nil
}

// CopyBytesTo copies the raw bytes of the span ID into dest starting at
// offset. Returns ErrInvalidLength if dest is too short from offset.
func (s SpanID) CopyBytesTo(dest []byte, offset int) error {
	if offset < 0 || len(dest)-offset < SpanIDSize {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidLength, SpanIDSize, offset, len(dest))
	}
	copy(dest[offset:], s[:])
	return nil
}

// CopyHexTo writes the 32 lowercase hex characters of the trace ID into
// dest starting at offset. Returns ErrInvalidLength if dest is too short.
func (t TraceID) CopyHexTo(dest []byte, offset int) error {
	if offset < 0 || len(dest)-offset < traceIDHexSize {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidLength, traceIDHexSize, offset, len(dest))
	}
	internal.EncodeHex(dest[offset:], t[:])
	return nil
}

// CopyHexTo writes the 16 lowercase hex characters of the span ID into
// dest starting at offset. Returns ErrInvalidLength if dest is too short.
func (s SpanID) CopyHexTo(dest []byte, offset int) error {
	if offset < 0 || len(dest)-offset < spanIDHexSize {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidLength, spanIDHexSize, offset, len(dest))
	}
	internal.EncodeHex(dest[offset:], s[:])
	return nil
}

// IsValid reports whether the trace ID has at least one non-zero byte.
func (t TraceID) IsValid() bool {
	return t != TraceID{}
}

// IsValid reports whether the span ID has at least one non-zero byte.
func (s SpanID) IsValid() bool {
	return s != SpanID{}
}

// String returns the lowercase hex form of the trace ID.
func (t TraceID) String() string {
	buf := make([]byte, traceIDHexSize)
	internal.EncodeHex(buf, t[:])
	return string(buf)
}

// String returns the lowercase hex form of the span ID.
func (s SpanID) String() string {
	buf := make([]byte, spanIDHexSize)
	internal.EncodeHex(buf, s[:])
	return string(buf)
}

// Compare orders trace IDs numerically as big-endian values: the high
// 8 bytes are compared first, then the low 8 bytes. Returns -1, 0 or 1.
func (t TraceID) Compare(other TraceID) int {
	thisHi := binary.BigEndian.Uint64(t[:8])
	thatHi := binary.BigEndian.Uint64(other[:8])
	if thisHi != thatHi {
		if thisHi < thatHi {
			return -1
		}
		return 1
	}
	thisLo := binary.BigEndian.Uint64(t[8:])
	thatLo := binary.BigEndian.Uint64(other[8:])
	if thisLo != thatLo {
		if thisLo < thatLo {
			return -1
		}
		return 1
	}
	return 0
}
