// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package internal provides structures and functions to operate SRP-6a that are not part of the public API.
package internal

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// MaxRejectionIterations bounds the rejection sampling loop of RandomInRange.
const MaxRejectionIterations = 1000

var (
	// ErrNoRandom is returned when no source of randomness is available.
	ErrNoRandom = errors.New("missing source of randomness")

	// ErrRandomRead is returned when reading from the source of randomness fails.
	ErrRandomRead = errors.New("reading random bytes")

	// ErrInvalidRange is returned when the lower bound exceeds the upper bound.
	ErrInvalidRange = errors.New("lower bound is greater than upper bound")

	// ErrInvalidLength is returned when a negative or zero length is requested.
	ErrInvalidLength = errors.New("requested length must be positive")
)

// RandomBytes returns length random bytes read from rng.
func RandomBytes(rng io.Reader, length int) ([]byte, error) {
	if rng == nil {
		return nil, ErrNoRandom
	}

	if length <= 0 {
		return nil, ErrInvalidLength
	}

	r := make([]byte, length)
	if _, err := io.ReadFull(rng, r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomRead, err)
	}

	return r, nil
}

// RandomBits returns a uniformly distributed integer in [0, 2^bits - 1].
func RandomBits(rng io.Reader, bits int) (*big.Int, error) {
	if bits <= 0 {
		return new(big.Int), nil
	}

	r, err := RandomBytes(rng, (bits+7)/8)
	if err != nil {
		return nil, err
	}

	if excess := len(r)*8 - bits; excess > 0 {
		r[0] &= byte(0xff >> excess)
	}

	return new(big.Int).SetBytes(r), nil
}

// RandomInRange returns a random integer in [lower, upper]. Candidates of the bit length of upper are drawn and rejected
// until one falls into the range. After MaxRejectionIterations failed draws, the value is built from a draw
// truncated to one bit less than upper - lower, which always terminates at the expense of not covering the full range.
func RandomInRange(rng io.Reader, lower, upper *big.Int) (*big.Int, error) {
	switch cmp := lower.Cmp(upper); {
	case cmp > 0:
		return nil, ErrInvalidRange
	case cmp == 0:
		return new(big.Int).Set(lower), nil
	}

	if lower.BitLen() > upper.BitLen()/2 {
		r, err := RandomInRange(rng, new(big.Int), new(big.Int).Sub(upper, lower))
		if err != nil {
			return nil, err
		}

		return r.Add(r, lower), nil
	}

	for range MaxRejectionIterations {
		x, err := RandomBits(rng, upper.BitLen())
		if err != nil {
			return nil, err
		}

		if x.Cmp(lower) >= 0 && x.Cmp(upper) <= 0 {
			return x, nil
		}
	}

	x, err := RandomBits(rng, new(big.Int).Sub(upper, lower).BitLen()-1)
	if err != nil {
		return nil, err
	}

	return x.Add(x, lower), nil
}
