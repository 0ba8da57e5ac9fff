// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6

import (
	"crypto/subtle"
	"io"
	"log/slog"
	"maps"
	"math/big"
	"slices"
	"time"

	"github.com/Fi5t/srp6/internal"
	"github.com/Fi5t/srp6/internal/encoding"
)

// session holds the values shared by both roles. Every protocol value is written once and returned as a copy.
type session struct {
	params       *CryptoParams
	rng          io.Reader
	opts         *sessionOptions
	attributes   map[string]any
	creationTime time.Time
	lastActivity time.Time
	userID       string
	salt         []byte
	k            *big.Int
	u            *big.Int
	a            *big.Int // public client value A
	b            *big.Int // public server value B
	s            *big.Int
	m1           *big.Int
	m2           *big.Int
	aborted      bool
}

func newSession(params *CryptoParams, rng io.Reader, opts *sessionOptions) *session {
	now := opts.now()

	return &session{
		params:       params,
		rng:          rng,
		opts:         opts,
		attributes:   make(map[string]any),
		creationTime: now,
		lastActivity: now,
	}
}

func (s *session) logger() *slog.Logger {
	return s.opts.logger
}

// touch records activity at the current time.
func (s *session) touch() {
	s.lastActivity = s.opts.now()
}

// abort marks the session as failed. The state tag is kept, and any further step is a state violation.
func (s *session) abort(role string, step int, err error) error {
	s.aborted = true
	s.logFailure("srp6: session aborted", role, step, err)

	return err
}

func (s *session) logFailure(msg, role string, step int, err error) {
	s.logger().Debug(msg,
		slog.String("role", role),
		slog.Int("step", step),
		slog.String("user", s.userID),
		slog.String("code", CodeOf(err).String()))
}

// checkTimeout fails with ErrTimeout once the inactivity window has been exceeded. The session is left untouched,
// so every later step fails the same way.
func (s *session) checkTimeout(role string, step int) error {
	if s.HasTimedOut() {
		s.logFailure("srp6: session timed out", role, step, ErrTimeout)
		return ErrTimeout
	}

	return nil
}

// CryptoParams returns the parameters the session runs with, nil before they are known.
func (s *session) CryptoParams() *CryptoParams {
	return s.params
}

// UserID returns the user identity 'I', empty before it is known.
func (s *session) UserID() string {
	return s.userID
}

// Salt returns a copy of the salt 's', nil before it is known.
func (s *session) Salt() []byte {
	return slices.Clone(s.salt)
}

// PublicClientValue returns a copy of 'A', nil before it is known.
func (s *session) PublicClientValue() *big.Int {
	return cloneInt(s.a)
}

// PublicServerValue returns a copy of 'B', nil before it is known.
func (s *session) PublicServerValue() *big.Int {
	return cloneInt(s.b)
}

// ClientEvidenceMessage returns a copy of 'M1', nil before it is known.
func (s *session) ClientEvidenceMessage() *big.Int {
	return cloneInt(s.m1)
}

// ServerEvidenceMessage returns a copy of 'M2', nil before it is known.
func (s *session) ServerEvidenceMessage() *big.Int {
	return cloneInt(s.m2)
}

// CreationTime returns the time the session was created.
func (s *session) CreationTime() time.Time {
	return s.creationTime
}

// LastActivityTime returns the time of the last successful step, or the creation time.
func (s *session) LastActivityTime() time.Time {
	return s.lastActivity
}

// Timeout returns the inactivity timeout. 0 means no timeout.
func (s *session) Timeout() time.Duration {
	return s.opts.timeout
}

// HasTimedOut reports whether more than Timeout has elapsed since the last activity. It is always false when no
// timeout is set.
func (s *session) HasTimedOut() bool {
	if s.opts.timeout == 0 {
		return false
	}

	return s.opts.now().Sub(s.lastActivity) > s.opts.timeout
}

// IsAborted reports whether a protocol failure ended the session.
func (s *session) IsAborted() bool {
	return s.aborted
}

// SetAttribute stores a caller-defined value with the session. A nil value deletes the key.
func (s *session) SetAttribute(key string, value any) {
	if value == nil {
		delete(s.attributes, key)
		return
	}

	s.attributes[key] = value
}

// Attribute returns the value stored under key.
func (s *session) Attribute(key string) (any, bool) {
	v, ok := s.attributes[key]
	return v, ok
}

// Attributes returns a shallow copy of all stored attributes.
func (s *session) Attributes() map[string]any {
	return maps.Clone(s.attributes)
}

func (s *session) sessionKey() *big.Int {
	return cloneInt(s.s)
}

func (s *session) sessionKeyHash() []byte {
	return ComputeSessionKeyHash(s.params, s.s)
}

// deriveKey expands HKDF-Extract(nil, PAD(S)) into length bytes. length 0 yields the size of H.
func (s *session) deriveKey(info []byte, length int) ([]byte, error) {
	if length < 0 {
		return nil, ErrInvalidArgument.Join(internal.ErrInvalidLength)
	}

	kdf, err := internal.NewKDF(s.params.h)
	if err != nil {
		return nil, ErrConfiguration.Join(err)
	}

	if length == 0 {
		length = kdf.Size()
	}

	prk := kdf.Extract(nil, s.params.Pad(s.s))

	return kdf.Expand(prk, info, length), nil
}

// equalEvidence compares two evidence messages in constant time with respect to their content.
func equalEvidence(expected, received *big.Int) bool {
	if expected == nil || expected.Sign() < 0 {
		return false
	}

	length := max(len(expected.Bytes()), len(received.Bytes()))
	return subtle.ConstantTimeCompare(encoding.Pad(expected, length), encoding.Pad(received, length)) == 1
}

// checkValue rejects nil and negative integers given as protocol input.
// checkRoutineResult rejects nil or negative values returned by routines.
func checkRoutineResult(values ...*big.Int) error {
	for _, v := range values {
		if v == nil || v.Sign() < 0 {
			return ErrConfiguration.Join(errRoutineResult)
		}
	}

	return nil
}

func checkValue(x *big.Int, missing error) error {
	if x == nil {
		return ErrInvalidArgument.Join(missing)
	}

	if x.Sign() < 0 {
		return ErrInvalidArgument.Join(errNegativeValue)
	}

	return nil
}
