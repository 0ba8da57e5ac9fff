// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package ksf provides the Key Stretching Functions used to harden passwords before deriving x.
package ksf

import (
	"errors"
	"fmt"

	"github.com/bytemare/ksf"
)

var (
	// ErrParameters indicates an invalid amount of KSF parameters.
	ErrParameters = errors.New("invalid number of KSF parameters")

	// ErrUnavailable indicates the KSF identifier is not available.
	ErrUnavailable = errors.New("KSF is not available")
)

// KSF wraps a key stretching function and exposes its functions.
type KSF struct {
	ksfInterface
	id ksf.Identifier
}

// NewKSF returns a newly instantiated KSF. The identifier 0 yields the identity function. If parameters are
// provided, they must match the amount of canonical parameters of the function.
func NewKSF(id ksf.Identifier, parameters ...int) (*KSF, error) {
	if id == 0 {
		return &KSF{ksfInterface: &IdentityKSF{}}, nil
	}

	if !id.Available() {
		return nil, fmt.Errorf("%w: %d", ErrUnavailable, id)
	}

	f := &KSF{ksfInterface: id.Get(), id: id}

	if len(parameters) != 0 {
		if len(parameters) != len(f.Params()) {
			return nil, fmt.Errorf("%w: expected %d, got %d",
				ErrParameters, len(f.Params()), len(parameters))
		}

		f.Parameterize(parameters...)
	}

	return f, nil
}

// Identifier returns the identifier of the wrapped function, 0 for the identity function.
func (k *KSF) Identifier() ksf.Identifier {
	return k.id
}

type ksfInterface interface {
	// Harden uses default parameters for the key derivation function over the input password and salt.
	Harden(password, salt []byte, length int) []byte

	// Parameterize replaces the functions parameters with the new ones.
	// Must match the amount of parameters for the KSF.
	Parameterize(parameters ...int)

	// Params returns the list of internal parameters. If none were provided or modified,
	// the recommended defaults values are used.
	Params() []int
}

// IdentityKSF represents a KSF with no operations.
type IdentityKSF struct{}

// Harden returns the password as is.
func (i IdentityKSF) Harden(password, _ []byte, _ int) []byte {
	return password
}

// Parameterize applies KSF parameters if defined.
func (i IdentityKSF) Parameterize(_ ...int) {
	// no-op
}

// Params returns nil, the identity function has no parameters.
func (i IdentityKSF) Params() []int {
	return nil
}
