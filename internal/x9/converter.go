// Package x9 implements the integer / octet-string conversions from ANSI
// X9.62 used when encoding elliptic-curve points. Coordinates are written
// big-endian at a fixed width derived from the field size, left-padded with
// zero octets.
package x9

import (
	"fmt"
	"math/big"
)

// ByteLength returns the number of octets needed to hold a field element of
// the given bit size.
func ByteLength(fieldSizeBits int) int {
	return (fieldSizeBits + 7) / 8
}

// IntegerToBytes converts a non-negative integer into a big-endian octet
// string of exactly length octets. It fails when the value does not fit.
func IntegerToBytes(n *big.Int, length int) ([]byte, error) {
	if n.Sign() < 0 {
		return nil, fmt.Errorf("x9: cannot encode negative integer")
	}
	b := n.Bytes()
	if len(b) > length {
		return nil, fmt.Errorf("x9: integer needs %d octets, field width is %d", len(b), length)
	}
	out := make([]byte, length)
	copy(out[length-len(b):], b)
	return out, nil
}

// BytesToInteger is the inverse of IntegerToBytes. Leading zero octets are
// accepted and ignored.
func BytesToInteger(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
