// Package internal holds lowercase base16 helpers shared by the
// identifier codec and the trace-context propagator.
package internal

const hexDigits = "0123456789abcdef"

// EncodeHex writes the lowercase base16 form of src into dst.
// dst must have room for 2*len(src) bytes.
func EncodeHex(dst, src []byte) {
	for i, b := range src {
		dst[i*2] = hexDigits[b>>4]
		dst[i*2+1] = hexDigits[b&0x0f]
	}
}

// DecodeHex fills dst from the lowercase base16 string src.
// src must be exactly 2*len(dst) characters. Returns false if src
// contains anything other than lowercase hex digits.
func DecodeHex(dst []byte, src string) bool {
	if len(src) != 2*len(dst) {
		return false
	}
	for i := range dst {
		hi, ok1 := nibble(src[i*2])
		lo, ok2 := nibble(src[i*2+1])
		if !ok1 || !ok2 {
			return false
		}
		dst[i] = hi<<4 | lo
	}
	return true
}

// IsLowerHex reports whether s consists solely of lowercase hex digits.
func IsLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if _, ok := nibble(s[i]); !ok {
			return false
		}
	}
	return true
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
