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

const roleServer = "server"

// ServerState is the state of a ServerSession.
type ServerState byte

const (
	// ServerStateInit is the state of a new session, awaiting the user's record.
	ServerStateInit ServerState = iota

	// ServerStateStep1 is the state after B has been generated, awaiting the client's A and M1.
	ServerStateStep1

	// ServerStateStep2 is the final state of a successfully authenticated session.
	ServerStateStep2
)

// String returns the name of the state.
func (s ServerState) String() string {
	switch s {
	case ServerStateInit:
		return "INIT"
	case ServerStateStep1:
		return "STEP_1"
	case ServerStateStep2:
		return "STEP_2"
	default:
		return fmt.Sprintf("ServerState(%d)", byte(s))
	}
}

// ServerSession drives the server side of an SRP-6a authentication. A session serves a single attempt and must
// not be used concurrently.
type ServerSession struct {
	*session
	verifier *big.Int
	private  *big.Int
	state    ServerState
	noSuchID bool
}

// NewServerSession returns a new server session for the given parameters, drawing its private value from rng,
// which should be crypto/rand.Reader outside of tests.
func NewServerSession(params *CryptoParams, rng io.Reader, options ...*ServerOptions) (*ServerSession, error) {
	if params == nil {
		return nil, ErrInvalidArgument.Join(errNoParams)
	}

	if rng == nil {
		return nil, ErrInvalidArgument.Join(errNoRandom)
	}

	opts, err := parseServerOptions(options)
	if err != nil {
		return nil, err
	}

	return &ServerSession{
		session: newSession(params, rng, opts),
		state:   ServerStateInit,
	}, nil
}

// State returns the current state of the session.
func (s *ServerSession) State() ServerState {
	return s.state
}

func (s *ServerSession) expect(state ServerState) error {
	if s.aborted {
		return ErrStateViolation.Join(errSessionAborted)
	}

	if s.state != state {
		return ErrStateViolation.Join(fmt.Errorf("%w: expected %s, session is in %s", errOutOfOrder, state, s.state))
	}

	return nil
}

// Step1 takes the user identity 'I', salt 's' and verifier 'v' from the user's record, and returns the public
// server value 'B' to send to the client along with the salt.
func (s *ServerSession) Step1(userID string, salt []byte, verifier *big.Int) (*big.Int, error) {
	return s.step1(userID, salt, verifier, false)
}

// MockStep1 is Step1 for an identity that has no record. Given a fake salt and verifier, it behaves exactly like
// Step1, and the following Step2 runs every computation before failing with ErrBadCredentials. Callers should derive
// the fake salt deterministically from the identity, so that repeated attempts do not reveal the absence of a record.
func (s *ServerSession) MockStep1(userID string, salt []byte, verifier *big.Int) (*big.Int, error) {
	return s.step1(userID, salt, verifier, true)
}

func (s *ServerSession) step1(userID string, salt []byte, verifier *big.Int, mock bool) (*big.Int, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidArgument.Join(errNoUserID)
	}

	if len(salt) == 0 {
		return nil, ErrInvalidArgument.Join(errNoSalt)
	}

	if err := checkValue(verifier, errNoVerifier); err != nil {
		return nil, err
	}

	if err := s.expect(ServerStateInit); err != nil {
		return nil, err
	}

	b, err := GeneratePrivateValue(s.params, s.rng)
	if err != nil {
		return nil, err
	}

	k := ComputeK(s.params)
	B := ComputePublicServerValue(s.params, k, verifier, b) //nolint:gocritic // protocol notation

	s.userID = userID
	s.salt = slices.Clone(salt)
	s.verifier = new(big.Int).Set(verifier)
	s.private = b
	s.k = k
	s.b = B
	s.noSuchID = mock
	s.state = ServerStateStep1
	s.touch()

	s.logger().Debug("srp6: step completed",
		slog.String("role", roleServer), slog.Int("step", 1), slog.String("user", userID))

	return cloneInt(B), nil
}

// Step2 takes the public client value 'A' and the client evidence 'M1', and returns the server evidence 'M2' to
// send back. An invalid A aborts the session with ErrBadPublicValue, and an evidence mismatch or a mocked identity
// aborts it with ErrBadCredentials.
func (s *ServerSession) Step2(A, M1 *big.Int) (*big.Int, error) { //nolint:gocritic // protocol notation
	if err := checkValue(A, errNoPublicValue); err != nil {
		return nil, err
	}

	if err := checkValue(M1, errNoEvidence); err != nil {
		return nil, err
	}

	if err := s.expect(ServerStateStep1); err != nil {
		return nil, err
	}

	if err := s.checkTimeout(roleServer, 2); err != nil {
		return nil, err
	}

	if !IsValidPublicValue(s.params, A) {
		return nil, s.abort(roleServer, 2, ErrBadPublicValue)
	}

	u := s.opts.u.ComputeU(s.params, newURoutineContext(A, s.b))
	if err := checkRoutineResult(u); err != nil {
		return nil, err
	}

	S := ComputeServerSessionKey(s.params, s.verifier, u, A, s.private) //nolint:gocritic // protocol notation

	expected := s.opts.m1.ComputeClientEvidence(s.params, newClientEvidenceContext(s.userID, s.salt, A, s.b, S))
	if err := checkRoutineResult(expected); err != nil {
		return nil, err
	}

	if ok := equalEvidence(expected, M1); !ok || s.noSuchID {
		return nil, s.abort(roleServer, 2, ErrBadCredentials)
	}

	m2 := s.opts.m2.ComputeServerEvidence(s.params, newServerEvidenceContext(A, M1, S))
	if err := checkRoutineResult(m2); err != nil {
		return nil, err
	}

	s.a = new(big.Int).Set(A)
	s.m1 = new(big.Int).Set(M1)
	s.u = u
	s.s = S
	s.m2 = m2
	s.private = nil
	s.state = ServerStateStep2
	s.touch()

	s.logger().Debug("srp6: step completed",
		slog.String("role", roleServer), slog.Int("step", 2), slog.String("user", s.userID))

	return cloneInt(m2), nil
}

func (s *ServerSession) authenticated() error {
	if s.aborted || s.state != ServerStateStep2 {
		return ErrStateViolation.Join(errNotAuthorized)
	}

	return nil
}

// SessionKey returns a copy of the shared session key 'S'. It is only available once the client evidence has been
// validated.
func (s *ServerSession) SessionKey() (*big.Int, error) {
	if err := s.authenticated(); err != nil {
		return nil, err
	}

	return s.sessionKey(), nil
}

// SessionKeyHash returns H(S).
func (s *ServerSession) SessionKeyHash() ([]byte, error) {
	if err := s.authenticated(); err != nil {
		return nil, err
	}

	return s.sessionKeyHash(), nil
}

// DeriveKey derives length bytes of keying material from S with HKDF, binding it to info. A length of 0 yields the
// output size of H. H must be one of SHA-256, SHA-384, SHA-512, SHA3-256, SHA3-384 or SHA3-512.
func (s *ServerSession) DeriveKey(info []byte, length int) ([]byte, error) {
	if err := s.authenticated(); err != nil {
		return nil, err
	}

	return s.deriveKey(info, length)
}
