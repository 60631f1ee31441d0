package trace

import (
	"fmt"

	"github.com/kzs0/strata/internal"
)

// TraceFlags is the 8-bit option field carried alongside the identifiers.
type TraceFlags byte

// FlagsSampled marks a trace that callers recorded and want exported.
const FlagsSampled TraceFlags = 0x01

const traceFlagsHexSize = 2

// IsSampled reports whether the sampled bit is set.
func (f TraceFlags) IsSampled() bool {
	return f&FlagsSampled != 0
}

// WithSampled returns a copy of the flags with the sampled bit set or
// cleared. The receiver is unchanged.
func (f TraceFlags) WithSampled(sampled bool) TraceFlags {
	if sampled {
		return f | FlagsSampled
	}
	return f &^ FlagsSampled
}

// TraceFlagsFromHex decodes the two lowercase hex characters of src
// starting at offset. Returns ErrInvalidFormat if fewer than two
// characters remain or either is not a lowercase hex digit.
func TraceFlagsFromHex(src string, offset int) (TraceFlags, error) {
	if offset < 0 || len(src)-offset < traceFlagsHexSize {
		return 0, fmt.Errorf("%w: need %d hex characters at offset %d in %q", ErrInvalidFormat, traceFlagsHexSize, offset, src)
	}
	var b [1]byte
	if !internal.DecodeHex(b[:], src[offset:offset+traceFlagsHexSize]) {
		return 0, fmt.Errorf("%w: %q is not lowercase hex", ErrInvalidFormat, src[offset:offset+traceFlagsHexSize])
	}
	return TraceFlags(b[0]), nil
}

// CopyHexTo writes the two lowercase hex characters of the flags into
// dest starting at offset. Returns ErrInvalidLength if dest is too short.
func (f TraceFlags) CopyHexTo(dest []byte, offset int) error {
	if offset < 0 || len(dest)-offset < traceFlagsHexSize {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidLength, traceFlagsHexSize, offset, len(dest))
	}
	internal.EncodeHex(dest[offset:], []byte{byte(f)})
	return nil
}

// String returns the two-character lowercase hex form of the flags.
func (f TraceFlags) String() string {
	buf := make([]byte, traceFlagsHexSize)
	internal.EncodeHex(buf, []byte{byte(f)})
	return string(buf)
}
