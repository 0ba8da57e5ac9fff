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
	"slices"
)

// VerifierGenerator computes password verifiers at enrollment.
type VerifierGenerator struct {
	params *CryptoParams
	x      XRoutine
}

// NewVerifierGenerator returns a VerifierGenerator for the given parameters. The XRoutine, if overridden, must be
// the one the client sessions use.
func NewVerifierGenerator(params *CryptoParams, options ...*VerifierOptions) (*VerifierGenerator, error) {
	if params == nil {
		return nil, ErrInvalidArgument.Join(errNoParams)
	}

	return &VerifierGenerator{
		params: params,
		x:      parseVerifierOptions(options),
	}, nil
}

// GenerateVerifier returns v = g^x mod N for the salt, identity and password. The user identity is only used by
// routines that include it in x.
func (v *VerifierGenerator) GenerateVerifier(salt, userID, password []byte) (*big.Int, error) {
	if len(salt) == 0 {
		return nil, ErrInvalidArgument.Join(errNoSalt)
	}

	x := v.x.ComputeX(v.params, &XContext{
		UserID:   slices.Clone(userID),
		Salt:     slices.Clone(salt),
		Password: slices.Clone(password),
	})

	return ComputeVerifier(v.params, x), nil
}
