// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6

import (
	"math/big"

	"github.com/Fi5t/srp6/internal/encoding"
)

// ToHex returns the lowercase hexadecimal representation of x, without leading zeros. Adapters commonly use it to
// put A, B, M1, M2, v and s on the wire.
func ToHex(x *big.Int) string {
	return encoding.ToHex(x)
}

// FromHex parses a hexadecimal string, case-insensitively.
func FromHex(s string) (*big.Int, error) {
	x, err := encoding.FromHex(s)
	if err != nil {
		return nil, ErrInvalidArgument.Join(err)
	}

	return x, nil
}

// BigIntToBytes returns the unsigned big-endian magnitude of x, without the leading zero byte a two's-complement
// encoding would carry.
func BigIntToBytes(x *big.Int) []byte {
	return encoding.ToBytes(x)
}

// BigIntFromBytes interprets b as an unsigned big-endian magnitude.
func BigIntFromBytes(b []byte) *big.Int {
	return encoding.FromBytes(b)
}

// Pad returns the unsigned magnitude of x left-padded to the byte length of N.
func (p *CryptoParams) Pad(x *big.Int) []byte {
	return encoding.Pad(x, p.PadLength())
}
