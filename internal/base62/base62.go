// Package base62 encodes unsigned integers as compact alphanumeric strings.
//
// The alphabet is 0-9, A-Z, a-z. Digits are written most significant first
// with no padding, so every value has exactly one representation.
package base62

import (
	"errors"
	"math"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = uint64(len(alphabet))

var (
	// ErrEmpty is returned when decoding an empty string.
	ErrEmpty = errors.New("base62: empty string")

	// ErrInvalidCharacter is returned when the input contains a rune outside the alphabet.
	ErrInvalidCharacter = errors.New("base62: invalid character")

	// ErrOverflow is returned when the decoded value does not fit in a uint64.
	ErrOverflow = errors.New("base62: value overflows uint64")
)

// values maps an alphabet byte to its digit value; -1 marks bytes outside the alphabet.
var values = func() [256]int8 {
	var v [256]int8
	for i := range v {
		v[i] = -1
	}

	for i := 0; i < len(alphabet); i++ {
		v[alphabet[i]] = int8(i)
	}

	return v
}()

// Encode returns the base62 representation of n. Encode(0) is "0".
func Encode(n uint64) string {
	if n == 0 {
		return alphabet[:1]
	}

	// 11 digits cover math.MaxUint64.
	var buf [11]byte

	i := len(buf)
	for n > 0 {
		i--
		buf[i] = alphabet[n%base]
		n /= base
	}

	return string(buf[i:])
}

// Decode is the inverse of Encode.
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, ErrEmpty
	}

	var n uint64

	for i := 0; i < len(s); i++ {
		d := values[s[i]]
		if d < 0 {
			return 0, ErrInvalidCharacter
		}

		if n > (math.MaxUint64-uint64(d))/base {
			return 0, ErrOverflow
		}

		n = n*base + uint64(d)
	}

	return n, nil
}
