// Package vlq implements the base 64 variable-length quantity encoding used
// by the Source Map v3 format.
//
// Each encoded digit carries 5 payload bits plus a continuation bit; values
// are zig-zag transformed so the sign lives in the least significant bit.
// See https://sourcemaps.info/spec.html
package vlq

import "errors"

// Base64 alphabet used by the source map format.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ErrInvalidBase64 reports a digit outside [0,63] or a character outside the
// base 64 alphabet.
var ErrInvalidBase64 = errors.New("invalid base64 digit")

// base64Values maps ASCII characters back to digit values, -1 for characters
// outside the alphabet.
var base64Values [128]int

func init() {
	for i := range base64Values {
		base64Values[i] = -1
	}
	for i, c := range base64Alphabet {
		base64Values[c] = i
	}
}

// EncodeBase64 encodes a single digit in [0,63] as a base 64 character.
func EncodeBase64(digit int) (byte, error) {
	if digit < 0 || digit >= len(base64Alphabet) {
		return 0, ErrInvalidBase64
	}
	return base64Alphabet[digit], nil
}

// DecodeBase64 decodes a single base 64 character to its digit value.
func DecodeBase64(c byte) (int, error) {
	if c >= 128 {
		return 0, ErrInvalidBase64
	}
	digit := base64Values[c]
	if digit < 0 {
		return 0, ErrInvalidBase64
	}
	return digit, nil
}
