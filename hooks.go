// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/bytemare/ksf"

	"github.com/Fi5t/srp6/internal"
	internalKSF "github.com/Fi5t/srp6/internal/ksf"
)

// Routine hooks replace individual protocol computations without touching the session state machines, e.g. to
// interoperate with implementations that encode values differently.
//
// Overriding a routine on one side only does not raise a configuration error: both parties simply derive different
// values and authentication fails with ErrBadCredentials. Client and server must be configured with the same
// routines, and the verifier must be generated with the client's XRoutine.

// XContext is the snapshot given to an XRoutine.
type XContext struct {
	UserID   []byte
	Salt     []byte
	Password []byte
}

// URoutineContext is the snapshot given to a URoutine.
type URoutineContext struct {
	A *big.Int
	B *big.Int
}

// ClientEvidenceContext is the snapshot given to a ClientEvidenceRoutine.
type ClientEvidenceContext struct {
	A      *big.Int
	B      *big.Int
	S      *big.Int
	UserID string
	Salt   []byte
}

// ServerEvidenceContext is the snapshot given to a ServerEvidenceRoutine.
type ServerEvidenceContext struct {
	A  *big.Int
	M1 *big.Int
	S  *big.Int
}

// XRoutine computes the password key x.
type XRoutine interface {
	ComputeX(p *CryptoParams, ctx *XContext) *big.Int
}

// URoutine computes the scrambling parameter u.
type URoutine interface {
	ComputeU(p *CryptoParams, ctx *URoutineContext) *big.Int
}

// ClientEvidenceRoutine computes the client evidence message M1.
type ClientEvidenceRoutine interface {
	ComputeClientEvidence(p *CryptoParams, ctx *ClientEvidenceContext) *big.Int
}

// ServerEvidenceRoutine computes the server evidence message M2.
type ServerEvidenceRoutine interface {
	ComputeServerEvidence(p *CryptoParams, ctx *ServerEvidenceContext) *big.Int
}

// XRoutineFunc is an adapter to use ordinary functions as XRoutine.
type XRoutineFunc func(p *CryptoParams, ctx *XContext) *big.Int

// ComputeX calls f(p, ctx).
func (f XRoutineFunc) ComputeX(p *CryptoParams, ctx *XContext) *big.Int {
	return f(p, ctx)
}

// URoutineFunc is an adapter to use ordinary functions as URoutine.
type URoutineFunc func(p *CryptoParams, ctx *URoutineContext) *big.Int

// ComputeU calls f(p, ctx).
func (f URoutineFunc) ComputeU(p *CryptoParams, ctx *URoutineContext) *big.Int {
	return f(p, ctx)
}

// ClientEvidenceRoutineFunc is an adapter to use ordinary functions as ClientEvidenceRoutine.
type ClientEvidenceRoutineFunc func(p *CryptoParams, ctx *ClientEvidenceContext) *big.Int

// ComputeClientEvidence calls f(p, ctx).
func (f ClientEvidenceRoutineFunc) ComputeClientEvidence(p *CryptoParams, ctx *ClientEvidenceContext) *big.Int {
	return f(p, ctx)
}

// ServerEvidenceRoutineFunc is an adapter to use ordinary functions as ServerEvidenceRoutine.
type ServerEvidenceRoutineFunc func(p *CryptoParams, ctx *ServerEvidenceContext) *big.Int

// ComputeServerEvidence calls f(p, ctx).
func (f ServerEvidenceRoutineFunc) ComputeServerEvidence(p *CryptoParams, ctx *ServerEvidenceContext) *big.Int {
	return f(p, ctx)
}

var (
	// DefaultXRoutine computes x = H(s | H(P)).
	DefaultXRoutine XRoutine = XRoutineFunc(func(p *CryptoParams, ctx *XContext) *big.Int {
		return ComputeX(p, ctx.Salt, ctx.Password)
	})

	// XRoutineWithUserIdentity computes x = H(s | H(I | ":" | P)) as RFC 5054 does. It is opt-in: verifiers
	// generated with it cannot be verified by sessions using DefaultXRoutine, and renaming a user invalidates them.
	XRoutineWithUserIdentity XRoutine = XRoutineFunc(func(p *CryptoParams, ctx *XContext) *big.Int {
		return ComputeXWithUserIdentity(p, ctx.Salt, ctx.UserID, ctx.Password)
	})

	// DefaultURoutine computes u = H(PAD(A) | PAD(B)).
	DefaultURoutine URoutine = URoutineFunc(func(p *CryptoParams, ctx *URoutineContext) *big.Int {
		return ComputeU(p, ctx.A, ctx.B)
	})

	// DefaultClientEvidenceRoutine computes M1 = H(A | B | S).
	DefaultClientEvidenceRoutine ClientEvidenceRoutine = ClientEvidenceRoutineFunc(
		func(p *CryptoParams, ctx *ClientEvidenceContext) *big.Int {
			return ComputeClientEvidence(p, ctx.A, ctx.B, ctx.S)
		})

	// DefaultServerEvidenceRoutine computes M2 = H(A | M1 | S).
	DefaultServerEvidenceRoutine ServerEvidenceRoutine = ServerEvidenceRoutineFunc(
		func(p *CryptoParams, ctx *ServerEvidenceContext) *big.Int {
			return ComputeServerEvidence(p, ctx.A, ctx.M1, ctx.S)
		})
)

// NewKSFXRoutine returns an XRoutine computing x = H(s | KSF(P, s)), where KSF is one of the key stretching
// functions of github.com/bytemare/ksf (e.g. ksf.Argon2id, ksf.Scrypt, ksf.PBKDF2Sha512) with its output length set
// to the size of H. Parameters, if given, replace the function's recommended defaults and must match their count.
// Functions drawing their own salt, like bcrypt, are rejected since x must be reproducible.
func NewKSFXRoutine(id ksf.Identifier, parameters ...int) (XRoutine, error) {
	f, err := internalKSF.NewKSF(id, parameters...)
	if err != nil {
		return nil, ErrConfiguration.Join(err)
	}

	switch f.Identifier() {
	case 0, ksf.Argon2id, ksf.Scrypt, ksf.PBKDF2Sha512:
	default:
		return nil, ErrConfiguration.Join(fmt.Errorf("%w: identifier %d", errRandomizedKSF, f.Identifier()))
	}

	return XRoutineFunc(func(p *CryptoParams, ctx *XContext) *big.Int {
		hardened := f.Harden(ctx.Password, ctx.Salt, p.h.Size())
		return new(big.Int).SetBytes(internal.Digest(p.h, ctx.Salt, hardened))
	}), nil
}

func cloneInt(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}

	return new(big.Int).Set(x)
}

func newXContext(userID string, salt, password []byte) *XContext {
	return &XContext{
		UserID:   []byte(userID),
		Salt:     slices.Clone(salt),
		Password: slices.Clone(password),
	}
}

func newURoutineContext(a, b *big.Int) *URoutineContext {
	return &URoutineContext{A: cloneInt(a), B: cloneInt(b)}
}

func newClientEvidenceContext(userID string, salt []byte, a, b, s *big.Int) *ClientEvidenceContext {
	return &ClientEvidenceContext{
		UserID: userID,
		Salt:   slices.Clone(salt),
		A:      cloneInt(a),
		B:      cloneInt(b),
		S:      cloneInt(s),
	}
}

func newServerEvidenceContext(a, m1, s *big.Int) *ServerEvidenceContext {
	return &ServerEvidenceContext{A: cloneInt(a), M1: cloneInt(m1), S: cloneInt(s)}
}
