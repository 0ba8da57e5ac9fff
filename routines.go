// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6

import (
	"io"
	"math/big"

	"github.com/Fi5t/srp6/internal"
	"github.com/Fi5t/srp6/internal/encoding"
)

// The routines in this file are pure functions computing the SRP-6a protocol values. They comply with RFC 5054
// except for two points:
//   - the password key x omits the user identity I, which allows the server to rename identities or accept
//     several alternate identities without re-enrolling the user. XRoutineWithUserIdentity restores the RFC form.
//   - the evidence messages M1 and M2 follow table 5 of Tom Wu's "SRP-6: Improvements and refinements to the
//     Secure Remote Password protocol" (2002), hashing the two's-complement encoding of each integer.

var bigOne = big.NewInt(1)

// privateValueMaxBits caps the lower bound of the private values to 2^255.
const privateValueMaxBits = 256

// hashPaddedPair returns H(PAD(n1) | PAD(n2)), padding to the byte length of N.
func hashPaddedPair(p *CryptoParams, n1, n2 *big.Int) *big.Int {
	l := p.PadLength()
	return new(big.Int).SetBytes(internal.Digest(p.h, encoding.Pad(n1, l), encoding.Pad(n2, l)))
}

// hashSigned returns H(n1 | n2 | ...) over the two's-complement encodings.
func hashSigned(p *CryptoParams, values ...*big.Int) *big.Int {
	input := make([][]byte, len(values))
	for i, v := range values {
		input[i] = encoding.SignedBytes(v)
	}

	return new(big.Int).SetBytes(internal.Digest(p.h, input...))
}

// ComputeK computes the SRP-6a multiplier k = H(PAD(N) | PAD(g)), as specified in RFC 5054.
func ComputeK(p *CryptoParams) *big.Int {
	return hashPaddedPair(p, p.n, p.g)
}

// GenerateRandomSalt returns length random bytes read from rng. If length is 0, DefaultSaltLength is used.
func GenerateRandomSalt(rng io.Reader, length int) ([]byte, error) {
	if length == 0 {
		length = DefaultSaltLength
	}

	s, err := internal.RandomBytes(rng, length)
	if err != nil {
		return nil, ErrInvalidArgument.Join(err)
	}

	return s, nil
}

// ComputeX computes the password key x = H(s | H(P)).
func ComputeX(p *CryptoParams, salt, password []byte) *big.Int {
	return new(big.Int).SetBytes(internal.Digest(p.h, salt, internal.Digest(p.h, password)))
}

// ComputeXWithUserIdentity computes the password key x = H(s | H(I | ":" | P)), as specified in RFC 5054.
func ComputeXWithUserIdentity(p *CryptoParams, salt, userID, password []byte) *big.Int {
	inner := internal.Digest(p.h, userID, []byte(":"), password)
	return new(big.Int).SetBytes(internal.Digest(p.h, salt, inner))
}

// ComputeVerifier computes the password verifier v = g^x mod N.
func ComputeVerifier(p *CryptoParams, x *big.Int) *big.Int {
	return new(big.Int).Exp(p.g, x, p.n)
}

// GeneratePrivateValue returns a random private value a or b in [2^(minBits - 1), N - 1], with
// minBits = min(256, bitlen(N)/2).
func GeneratePrivateValue(p *CryptoParams, rng io.Reader) (*big.Int, error) {
	minBits := max(1, min(privateValueMaxBits, p.n.BitLen()/2))

	lower := new(big.Int).Lsh(bigOne, uint(minBits-1))
	upper := new(big.Int).Sub(p.n, bigOne)

	x, err := internal.RandomInRange(rng, lower, upper)
	if err != nil {
		return nil, ErrInvalidArgument.Join(err)
	}

	return x, nil
}

// ComputePublicClientValue computes A = g^a mod N.
func ComputePublicClientValue(p *CryptoParams, a *big.Int) *big.Int {
	return new(big.Int).Exp(p.g, a, p.n)
}

// ComputePublicServerValue computes B = (g^b mod N + v * k) mod N.
func ComputePublicServerValue(p *CryptoParams, k, v, b *big.Int) *big.Int {
	gb := new(big.Int).Exp(p.g, b, p.n)
	vk := new(big.Int).Mul(v, k)

	return gb.Add(gb, vk).Mod(gb, p.n)
}

// IsValidPublicValue reports whether value mod N != 0. A public value congruent to zero would force the session
// key to a value known to an attacker, so such A or B must be rejected.
func IsValidPublicValue(p *CryptoParams, value *big.Int) bool {
	if value == nil {
		return false
	}

	return new(big.Int).Mod(value, p.n).Sign() != 0
}

// ComputeU computes the random scrambling parameter u = H(PAD(A) | PAD(B)).
func ComputeU(p *CryptoParams, A, B *big.Int) *big.Int { //nolint:gocritic // protocol notation
	return hashPaddedPair(p, A, B)
}

// ComputeClientSessionKey computes the session key S = (B - k * (g^x mod N))^(a + u * x) mod N from the client's
// values.
func ComputeClientSessionKey(p *CryptoParams, k, x, u, a, B *big.Int) *big.Int { //nolint:gocritic // protocol notation
	base := new(big.Int).Exp(p.g, x, p.n)
	base.Mul(base, k)
	base.Sub(B, base)
	base.Mod(base, p.n)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, a)

	return base.Exp(base, exp, p.n)
}

// ComputeServerSessionKey computes the session key S = (v^u * A)^b mod N from the server's values.
func ComputeServerSessionKey(p *CryptoParams, v, u, A, b *big.Int) *big.Int { //nolint:gocritic // protocol notation
	base := new(big.Int).Exp(v, u, p.n)
	base.Mul(base, A)

	return base.Exp(base, b, p.n)
}

// ComputeClientEvidence computes the client evidence message M1 = H(A | B | S).
func ComputeClientEvidence(p *CryptoParams, A, B, S *big.Int) *big.Int { //nolint:gocritic // protocol notation
	return hashSigned(p, A, B, S)
}

// ComputeServerEvidence computes the server evidence message M2 = H(A | M1 | S).
func ComputeServerEvidence(p *CryptoParams, A, M1, S *big.Int) *big.Int { //nolint:gocritic // protocol notation
	return hashSigned(p, A, M1, S)
}

// ComputeSessionKeyHash returns H(S), hashing the unsigned magnitude of S.
func ComputeSessionKeyHash(p *CryptoParams, S *big.Int) []byte { //nolint:gocritic // protocol notation
	return internal.Digest(p.h, encoding.ToBytes(S))
}
