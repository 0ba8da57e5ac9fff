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
	"io"
	"log/slog"
	"math/big"
	"slices"
	"strings"
)

const roleClient = "client"

// ClientState is the state of a ClientSession.
type ClientState byte

const (
	// ClientStateInit is the state of a new session, awaiting the user identity and password.
	ClientStateInit ClientState = iota

	// ClientStateStep1 is the state after the identity and password have been input, awaiting the server's salt
	// and public value B.
	ClientStateStep1

	// ClientStateStep2 is the state after A and M1 have been computed, awaiting the server evidence M2.
	ClientStateStep2

	// ClientStateStep3 is the final state of a successfully authenticated session.
	ClientStateStep3
)

// String returns the name of the state.
func (s ClientState) String() string {
	switch s {
	case ClientStateInit:
		return "INIT"
	case ClientStateStep1:
		return "STEP_1"
	case ClientStateStep2:
		return "STEP_2"
	case ClientStateStep3:
		return "STEP_3"
	default:
		return fmt.Sprintf("ClientState(%d)", byte(s))
	}
}

// ClientCredentials is the client's step 2 message to the server.
type ClientCredentials struct {
	// A is the public client value.
	A *big.Int

	// M1 is the client evidence message.
	M1 *big.Int
}

// ClientSession drives the client side of an SRP-6a authentication. A session serves a single attempt and must
// not be used concurrently.
type ClientSession struct {
	*session
	password []byte
	state    ClientState
}

// NewClientSession returns a new client session drawing its private value from rng, which should be
// crypto/rand.Reader outside of tests.
func NewClientSession(rng io.Reader, options ...*ClientOptions) (*ClientSession, error) {
	if rng == nil {
		return nil, ErrInvalidArgument.Join(errNoRandom)
	}

	opts, err := parseClientOptions(options)
	if err != nil {
		return nil, err
	}

	return &ClientSession{
		session: newSession(nil, rng, opts),
		state:   ClientStateInit,
	}, nil
}

// State returns the current state of the session.
func (c *ClientSession) State() ClientState {
	return c.state
}

func (c *ClientSession) expect(state ClientState) error {
	if c.aborted {
		return ErrStateViolation.Join(errSessionAborted)
	}

	if c.state != state {
		return ErrStateViolation.Join(fmt.Errorf("%w: expected %s, session is in %s", errOutOfOrder, state, c.state))
	}

	return nil
}

// Step1 records the user identity 'I' and password 'P'. The identity must not be blank.
func (c *ClientSession) Step1(userID, password string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidArgument.Join(errNoUserID)
	}

	if err := c.expect(ClientStateInit); err != nil {
		return err
	}

	c.userID = userID
	c.password = []byte(password)
	c.state = ClientStateStep1
	c.touch()

	c.logger().Debug("srp6: step completed",
		slog.String("role", roleClient), slog.Int("step", 1), slog.String("user", userID))

	return nil
}

// Step2 takes the parameters, the user's salt 's' and the public server value 'B' received from the server, and
// returns the public client value 'A' and the client evidence 'M1' to send back. B must not be congruent to 0 mod N,
// or the session is aborted with ErrBadPublicValue. Once the timeout has elapsed, it fails with ErrTimeout and leaves
// the session unchanged.
func (c *ClientSession) Step2(params *CryptoParams, salt []byte, B *big.Int) (*ClientCredentials, error) { //nolint:gocritic // protocol notation
	if params == nil {
		return nil, ErrInvalidArgument.Join(errNoParams)
	}

	if len(salt) == 0 {
		return nil, ErrInvalidArgument.Join(errNoSalt)
	}

	if err := checkValue(B, errNoPublicValue); err != nil {
		return nil, err
	}

	if err := c.expect(ClientStateStep1); err != nil {
		return nil, err
	}

	if err := c.checkTimeout(roleClient, 2); err != nil {
		return nil, err
	}

	if !IsValidPublicValue(params, B) {
		return nil, c.abort(roleClient, 2, ErrBadPublicValue)
	}

	x := c.opts.x.ComputeX(params, newXContext(c.userID, salt, c.password))
	if err := checkRoutineResult(x); err != nil {
		return nil, err
	}

	a, err := GeneratePrivateValue(params, c.rng)
	if err != nil {
		return nil, err
	}

	A := ComputePublicClientValue(params, a) //nolint:gocritic // protocol notation
	k := ComputeK(params)

	u := c.opts.u.ComputeU(params, newURoutineContext(A, B))
	if err = checkRoutineResult(u); err != nil {
		return nil, err
	}

	S := ComputeClientSessionKey(params, k, x, u, a, B)

	m1 := c.opts.m1.ComputeClientEvidence(params, newClientEvidenceContext(c.userID, salt, A, B, S))
	if err = checkRoutineResult(m1); err != nil {
		return nil, err
	}

	c.params = params
	c.salt = slices.Clone(salt)
	c.b = new(big.Int).Set(B)
	c.a = A
	c.k = k
	c.u = u
	c.s = S
	c.m1 = m1

	clear(c.password)
	c.password = nil

	c.state = ClientStateStep2
	c.touch()

	c.logger().Debug("srp6: step completed",
		slog.String("role", roleClient), slog.Int("step", 2), slog.String("user", c.userID))

	return &ClientCredentials{A: cloneInt(A), M1: cloneInt(m1)}, nil
}

// Step3 validates the server evidence 'M2'. On mismatch, the session is aborted with ErrBadCredentials.
func (c *ClientSession) Step3(M2 *big.Int) error { //nolint:gocritic // protocol notation
	if err := checkValue(M2, errNoEvidence); err != nil {
		return err
	}

	if err := c.expect(ClientStateStep2); err != nil {
		return err
	}

	if err := c.checkTimeout(roleClient, 3); err != nil {
		return err
	}

	expected := c.opts.m2.ComputeServerEvidence(c.params, newServerEvidenceContext(c.a, c.m1, c.s))
	if err := checkRoutineResult(expected); err != nil {
		return err
	}

	if !equalEvidence(expected, M2) {
		return c.abort(roleClient, 3, ErrBadCredentials)
	}

	c.m2 = new(big.Int).Set(M2)
	c.state = ClientStateStep3
	c.touch()

	c.logger().Debug("srp6: step completed",
		slog.String("role", roleClient), slog.Int("step", 3), slog.String("user", c.userID))

	return nil
}

func (c *ClientSession) authenticated() error {
	if c.aborted || c.state != ClientStateStep3 {
		return ErrStateViolation.Join(errNotAuthorized)
	}

	return nil
}

// SessionKey returns a copy of the shared session key 'S'. It is only available once the server evidence has been
// validated.
func (c *ClientSession) SessionKey() (*big.Int, error) {
	if err := c.authenticated(); err != nil {
		return nil, err
	}

	return c.sessionKey(), nil
}

// SessionKeyHash returns H(S).
func (c *ClientSession) SessionKeyHash() ([]byte, error) {
	if err := c.authenticated(); err != nil {
		return nil, err
	}

	return c.sessionKeyHash(), nil
}

// DeriveKey derives length bytes of keying material from S with HKDF, binding it to info. A length of 0 yields the
// output size of H. H must be one of SHA-256, SHA-384, SHA-512, SHA3-256, SHA3-384 or SHA3-512.
func (c *ClientSession) DeriveKey(info []byte, length int) ([]byte, error) {
	if err := c.authenticated(); err != nil {
		return nil, err
	}

	return c.deriveKey(info, length)
}
