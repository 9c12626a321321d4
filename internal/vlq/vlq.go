package vlq

import (
	"errors"
	"strings"
)

const (
	vlqBaseShift       = 5
	vlqBase            = 1 << vlqBaseShift // 32
	vlqBaseMask        = vlqBase - 1       // 31 (0x1F)
	vlqContinuationBit = vlqBase           // 32 (0x20)
	vlqSignBit         = 1
)

// ErrTruncatedVLQ reports input that ended while a continuation bit was
// still set.
var ErrTruncatedVLQ = errors.New("truncated VLQ value")

// toSigned moves the sign of a two's complement value into the least
// significant bit: 1 becomes 2, -1 becomes 3, 2 becomes 4, -2 becomes 5.
// Magnitudes near the 32-bit limit wrap; the codec is only defined for
// values that fit a signed 32-bit integer.
func toSigned(value int32) uint32 {
	if value < 0 {
		return uint32(-value)<<1 | vlqSignBit
	}
	return uint32(value) << 1
}

// fromSigned is the inverse of toSigned.
func fromSigned(value uint32) int32 {
	negative := value&vlqSignBit != 0
	value >>= 1
	if negative {
		return -int32(value)
	}
	return int32(value)
}

// Encode encodes a signed integer as a base 64 VLQ string. The low 5 bits of
// the zig-zagged value are emitted first; every digit except the last carries
// the continuation bit.
func Encode(value int32) (string, error) {
	var buf strings.Builder

	v := toSigned(value)
	for {
		digit := v & vlqBaseMask
		v >>= vlqBaseShift
		if v > 0 {
			digit |= vlqContinuationBit
		}

		c, err := EncodeBase64(int(digit))
		if err != nil {
			return "", err
		}
		buf.WriteByte(c)

		if v == 0 {
			return buf.String(), nil
		}
	}
}

// Decode decodes the next VLQ value from the front of s. It returns the
// value and the number of characters consumed, so callers can advance a
// cursor; it never reads past the digit that terminates the value. An input
// that runs out while the continuation bit is set, or that contains a
// character outside the base 64 alphabet, is an error.
func Decode(s string) (int32, int, error) {
	var result uint32
	var shift uint32

	for i := 0; i < len(s); i++ {
		digit, err := DecodeBase64(s[i])
		if err != nil {
			return 0, 0, err
		}

		continuation := digit&vlqContinuationBit != 0
		result |= uint32(digit&vlqBaseMask) << shift
		shift += vlqBaseShift

		if !continuation {
			return fromSigned(result), i + 1, nil
		}
	}

	return 0, 0, ErrTruncatedVLQ
}
