// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package encoding provides the integer encodings fed into the SRP-6a hash computations.
package encoding

import (
	"errors"
	"math/big"
	"strings"
)

var (
	// ErrHexEmpty is returned when decoding an empty hexadecimal string.
	ErrHexEmpty = errors.New("empty hexadecimal string")

	// ErrHexInvalid is returned when decoding a string that is not hexadecimal.
	ErrHexInvalid = errors.New("invalid hexadecimal string")
)

// PadLength returns ceil(bitlen(n)/8).
func PadLength(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// Pad returns the unsigned magnitude of x left-padded with zeros to length bytes. If the magnitude is already longer
// than length, it is returned as is.
func Pad(x *big.Int, length int) []byte {
	b := x.Bytes()
	if len(b) >= length {
		return b
	}

	out := make([]byte, length)
	copy(out[length-len(b):], b)

	return out
}

// SignedBytes returns the minimal big-endian two's-complement encoding of the non-negative x. A zero byte is
// prepended whenever the most significant bit of the magnitude is set, and zero encodes as a single zero byte.
func SignedBytes(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == 0 || b[0]&0x80 != 0 {
		return append([]byte{0}, b...)
	}

	return b
}

// UnsignedBytes strips the superfluous leading zero byte a two's-complement encoding carries for values whose most
// significant bit is set. The input is not modified.
func UnsignedBytes(signed []byte) []byte {
	if len(signed) > 1 && signed[0] == 0 {
		return signed[1:]
	}

	return signed
}

// ToBytes returns the unsigned magnitude of x. Zero encodes as a single zero byte.
func ToBytes(x *big.Int) []byte {
	return UnsignedBytes(SignedBytes(x))
}

// FromBytes interprets b as an unsigned big-endian magnitude.
func FromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// ToHex returns the lowercase hexadecimal representation of x without leading zeros.
func ToHex(x *big.Int) string {
	return x.Text(16)
}

// FromHex parses a hexadecimal string, case-insensitively. Signs and prefixes are rejected.
func FromHex(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrHexEmpty
	}

	if strings.ContainsAny(s, "+-xX_") {
		return nil, ErrHexInvalid
	}

	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, ErrHexInvalid
	}

	return x, nil
}

// PadHex left-pads the hexadecimal string with '0' up to length characters.
func PadHex(s string, length int) string {
	if len(s) >= length {
		return s
	}

	return strings.Repeat("0", length-len(s)) + s
}
