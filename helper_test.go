// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6_test

import (
	"crypto"
	"errors"
	"io"
	"math/big"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Fi5t/srp6"
)

const dbgErr = "%v"

type configuration struct {
	params *srp6.CryptoParams
	name   string
}

func mustParams(bits int, h crypto.Hash) *srp6.CryptoParams {
	p, err := srp6.GetInstance(bits, h)
	if err != nil {
		panic(err)
	}

	return p
}

var configurationTable = []*configuration{
	{name: "N256-SHA1", params: mustParams(256, crypto.SHA1)},
	{name: "N512-SHA256", params: mustParams(512, crypto.SHA256)},
	{name: "N768-SHA3_256", params: mustParams(768, crypto.SHA3_256)},
	{name: "N1024-SHA256", params: mustParams(1024, crypto.SHA256)},
	{name: "N1536-BLAKE2b_512", params: mustParams(1536, crypto.BLAKE2b_512)},
	{name: "N2048-SHA512", params: mustParams(2048, crypto.SHA512)},
}

func testAll(t *testing.T, f func(*testing.T, *configuration)) {
	for _, test := range configurationTable {
		t.Run(test.name, func(t *testing.T) {
			f(t, test)
		})
	}
}

// newRNG returns a deterministic source of randomness.
func newRNG(seed byte) io.Reader {
	return rand.NewChaCha8([32]byte{seed})
}

// expectErrors fails the test if err does not match every target.
func expectErrors(t *testing.T, err error, targets ...error) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected an error matching %v, got nil", targets)
	}

	for _, target := range targets {
		if !errors.Is(err, target) {
			t.Fatalf("expected error %q to match %q", err, target)
		}
	}
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type user struct {
	verifier *big.Int
	id       string
	password string
	salt     []byte
}

func enroll(t *testing.T, p *srp6.CryptoParams, id, password string, options ...*srp6.VerifierOptions) *user {
	t.Helper()

	salt, err := srp6.GenerateRandomSalt(newRNG(0xAA), 0)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	gen, err := srp6.NewVerifierGenerator(p, options...)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	v, err := gen.GenerateVerifier(salt, []byte(id), []byte(password))
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	return &user{id: id, password: password, salt: salt, verifier: v}
}

type exchange struct {
	client *srp6.ClientSession
	server *srp6.ServerSession
	creds  *srp6.ClientCredentials
	m2     *big.Int
}

func newSessions(
	t *testing.T,
	p *srp6.CryptoParams,
	clientOptions *srp6.ClientOptions,
	serverOptions *srp6.ServerOptions,
) (*srp6.ClientSession, *srp6.ServerSession) {
	t.Helper()

	client, err := srp6.NewClientSession(newRNG(1), clientOptions)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	server, err := srp6.NewServerSession(p, newRNG(2), serverOptions)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	return client, server
}

// runExchange runs a full authentication with password as the client's input, and returns the first error.
func runExchange(
	t *testing.T,
	p *srp6.CryptoParams,
	u *user,
	password string,
	clientOptions *srp6.ClientOptions,
	serverOptions *srp6.ServerOptions,
) (*exchange, error) {
	t.Helper()

	client, server := newSessions(t, p, clientOptions, serverOptions)
	e := &exchange{client: client, server: server}

	B, err := server.Step1(u.id, u.salt, u.verifier)
	if err != nil {
		return e, err
	}

	if err = client.Step1(u.id, password); err != nil {
		return e, err
	}

	e.creds, err = client.Step2(p, u.salt, B)
	if err != nil {
		return e, err
	}

	e.m2, err = server.Step2(e.creds.A, e.creds.M1)
	if err != nil {
		return e, err
	}

	return e, client.Step3(e.m2)
}
