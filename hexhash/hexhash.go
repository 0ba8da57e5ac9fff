// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package hexhash provides SRP-6a routines hashing the concatenation of hexadecimal strings instead of raw bytes,
// as browser clients typically do. Install them on both sides with ClientOptions, ServerOptions and
// VerifierOptions; mixing them with the default routines makes authentication fail.
package hexhash

import (
	"crypto"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/Fi5t/srp6"
	"github.com/Fi5t/srp6/internal/encoding"
)

// Params returns the 1024-bit SHA-256 parameters browser clients are commonly built for.
func Params() *srp6.CryptoParams {
	p, err := srp6.GetInstance(1024, crypto.SHA256)
	if err != nil {
		panic(err)
	}

	return p
}

// HashValues returns H(v1 | v2 | ...) over the UTF-8 concatenation of the strings.
func HashValues(h crypto.Hash, values ...string) *big.Int {
	d := h.New()
	for _, v := range values {
		_, _ = d.Write([]byte(v))
	}

	return new(big.Int).SetBytes(d.Sum(nil))
}

func toHex(x *big.Int) string {
	return srp6.ToHex(x)
}

var (
	// XRoutine computes x = H(SALT | HEX(H(I | ":" | P))) mod N, with uppercase hexadecimal strings, SALT the
	// hexadecimal encoding of the salt bytes, and the inner digest encoded over its full width.
	XRoutine srp6.XRoutine = srp6.XRoutineFunc(func(p *srp6.CryptoParams, ctx *srp6.XContext) *big.Int {
		credentials := HashValues(p.H(), string(ctx.UserID), ":", string(ctx.Password))
		digest := encoding.PadHex(toHex(credentials), 2*p.H().Size())
		x := HashValues(p.H(), strings.ToUpper(hex.EncodeToString(ctx.Salt)+digest))

		return x.Mod(x, p.N())
	})

	// URoutine computes u = H(hex(A) | hex(B)).
	URoutine srp6.URoutine = srp6.URoutineFunc(func(p *srp6.CryptoParams, ctx *srp6.URoutineContext) *big.Int {
		return HashValues(p.H(), toHex(ctx.A), toHex(ctx.B))
	})

	// ClientEvidence computes M1 = H(hex(A) | hex(B) | hex(S)).
	ClientEvidence srp6.ClientEvidenceRoutine = srp6.ClientEvidenceRoutineFunc(
		func(p *srp6.CryptoParams, ctx *srp6.ClientEvidenceContext) *big.Int {
			return HashValues(p.H(), toHex(ctx.A), toHex(ctx.B), toHex(ctx.S))
		})

	// ServerEvidence computes M2 = H(hex(A) | hex(M1) | hex(S)).
	ServerEvidence srp6.ServerEvidenceRoutine = srp6.ServerEvidenceRoutineFunc(
		func(p *srp6.CryptoParams, ctx *srp6.ServerEvidenceContext) *big.Int {
			return HashValues(p.H(), toHex(ctx.A), toHex(ctx.M1), toHex(ctx.S))
		})
)

// SessionKeyHash returns H(hex(S)), the hashed session key browser clients derive.
func SessionKeyHash(p *srp6.CryptoParams, S *big.Int) *big.Int { //nolint:gocritic // protocol notation
	return HashValues(p.H(), toHex(S))
}

// ClientOptions returns client options installing every routine of this package. Set the remaining fields on the
// returned value as needed.
func ClientOptions() *srp6.ClientOptions {
	return &srp6.ClientOptions{
		XRoutine:       XRoutine,
		URoutine:       URoutine,
		ClientEvidence: ClientEvidence,
		ServerEvidence: ServerEvidence,
	}
}

// ServerOptions returns server options installing every routine of this package.
func ServerOptions() *srp6.ServerOptions {
	return &srp6.ServerOptions{
		URoutine:       URoutine,
		ClientEvidence: ClientEvidence,
		ServerEvidence: ServerEvidence,
	}
}

// VerifierOptions returns verifier options installing XRoutine.
func VerifierOptions() *srp6.VerifierOptions {
	return &srp6.VerifierOptions{XRoutine: XRoutine}
}
