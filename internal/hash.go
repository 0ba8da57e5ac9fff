// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"crypto"
	"errors"

	"github.com/bytemare/hash"
)

// ErrKDFUnsupported is returned when no KDF can be built on top of the hash function.
var ErrKDFUnsupported = errors.New("hash function not supported for key derivation")

// kdfHashes are the hash functions bytemare/hash provides HKDF for.
var kdfHashes = map[crypto.Hash]struct{}{
	crypto.SHA256:   {},
	crypto.SHA384:   {},
	crypto.SHA512:   {},
	crypto.SHA3_256: {},
	crypto.SHA3_384: {},
	crypto.SHA3_512: {},
}

// IsKDFSupported reports whether NewKDF accepts id.
func IsKDFSupported(id crypto.Hash) bool {
	_, ok := kdfHashes[id]
	return ok
}

// NewKDF returns a newly instantiated KDF.
func NewKDF(id crypto.Hash) (*KDF, error) {
	if !IsKDFSupported(id) {
		return nil, ErrKDFUnsupported
	}

	return &KDF{h: hash.FromCrypto(id).GetHashFunction()}, nil
}

// KDF wraps a hash function and exposes KDF methods.
type KDF struct {
	h *hash.Fixed
}

// Extract exposes an Extract only KDF method.
func (k *KDF) Extract(salt, ikm []byte) []byte {
	return k.h.HKDFExtract(ikm, salt)
}

// Expand exposes an Expand only KDF method.
func (k *KDF) Expand(key, info []byte, length int) []byte {
	return k.h.HKDFExpand(key, info, length)
}

// Size returns the output size of the Extract method.
func (k *KDF) Size() int {
	return k.h.Size()
}

// Digest hashes the concatenation of the inputs with a fresh instance of h.
func Digest(id crypto.Hash, input ...[]byte) []byte {
	h := id.New()
	for _, in := range input {
		_, _ = h.Write(in)
	}

	return h.Sum(nil)
}
