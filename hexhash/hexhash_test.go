// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package hexhash_test

import (
	"encoding/hex"
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/Fi5t/srp6"
	"github.com/Fi5t/srp6/hexhash"
)

const (
	testUser     = "alice"
	testPassword = "password123"
	testSalt     = "beb25379d1a8581eb5a727673a2441ee"

	// RFC 5054 Appendix B values.
	vectorA = "61d5e490f6f1b79547b0704c436f523dd0e560f0c64115bb72557ec44352e8903211c04692272d8b2d1a5358a2cf1b6e0" +
		"bfcf99f921530ec8e39356179eae45e42ba92aeaced825171e1e8b9af6d9c03e1327f44be087ef06530e69f66615261eef" +
		"54073ca11cf5858f0edfdfe15efeab349ef5d76988a3672fac47b0769447b"
	vectorB = "bd0c61512c692c0cb6d041fa01bb152d4916a1e77af46ae105393011baf38964dc46a0670dd125b95a981652236f99d9b" +
		"681cbf87837ec996c6da04453728610d0c6ddb58b318885d7d82c7f8deb75ce7bd4fbaa37089e6f9c6059f388838e7a000" +
		"30b331eb76840910440b1b27aaeaeeb4012b7d7665238a8e3fb004b117b58"
	vectorS = "b0dc82babcf30674ae450c0287745e7990a3381f63b387aaf271a10d233861e359b48220f7c4693c9ae12b0a6f67809f0" +
		"876e2d013800d6c41bb59b6d5979b5c00a172b4a2a5903a0bdcaf8a709585eb2afafa8f3499b200210dcc1f10eb33943cd" +
		"67fc88a2f39a4be5bec4ec0a3212dc346d7e474b29ede8a469ffeca686e5a"
)

func mustHex(t *testing.T, s string) *big.Int {
	t.Helper()

	x, err := srp6.FromHex(s)
	if err != nil {
		t.Fatal(err)
	}

	return x
}

func expect(t *testing.T, name string, got *big.Int, want string) {
	t.Helper()

	if srp6.ToHex(got) != want {
		t.Errorf("%s: got %s, want %s", name, srp6.ToHex(got), want)
	}
}

func TestRoutines(t *testing.T) {
	p := hexhash.Params()
	A, B, S := mustHex(t, vectorA), mustHex(t, vectorB), mustHex(t, vectorS)
	salt, _ := hex.DecodeString(testSalt)

	expect(t, "credentials", hexhash.HashValues(p.H(), testUser, ":", testPassword),
		"c6c742bcb086fcbd67fc64c373cc91ff9a411c0ecddb5dce2b7abf646621f83f")

	x := hexhash.XRoutine.ComputeX(p, &srp6.XContext{
		UserID:   []byte(testUser),
		Salt:     salt,
		Password: []byte(testPassword),
	})
	expect(t, "x", x, "42841ca62b5d4a1fa610a22158a4ef5c7fb15e7e799f9942a446551f980d5e20")

	// H("alice:pw51") starts with a zero nibble, which must be kept in the inner hexadecimal digest.
	x = hexhash.XRoutine.ComputeX(p, &srp6.XContext{
		UserID:   []byte(testUser),
		Salt:     salt,
		Password: []byte("pw51"),
	})
	expect(t, "x with a short inner digest", x, "5152adffb9c59d012cbbfacd2892fa6058dfa6b4ff676c5d923e13fd37d1c71")

	u := hexhash.URoutine.ComputeU(p, &srp6.URoutineContext{A: A, B: B})
	expect(t, "u", u, "69f9692fa2da3f8554bb1a82e4f670475b575f3a1f91e6a0800faad3f7ac82e7")

	m1 := hexhash.ClientEvidence.ComputeClientEvidence(p, &srp6.ClientEvidenceContext{A: A, B: B, S: S})
	expect(t, "M1", m1, "4aaf64697a614894702575a749e7745d305388963b30a6aeeb62b6e3fb7c64f8")

	m2 := hexhash.ServerEvidence.ComputeServerEvidence(p, &srp6.ServerEvidenceContext{A: A, M1: m1, S: S})
	expect(t, "M2", m2, "1e1742529a05b257c4bd2233c45905649867e592ded77a7a409066272ec51a9c")

	expect(t, "H(S)", hexhash.SessionKeyHash(p, S),
		"86128513b8d7303f4e8e78bd44d0b026484f4c3c48f971706e3046050211957b")
}

type exchange struct {
	client *srp6.ClientSession
	server *srp6.ServerSession
}

func run(t *testing.T, password string, clientOptions *srp6.ClientOptions, serverOptions *srp6.ServerOptions) (
	*exchange, error,
) {
	t.Helper()

	p := hexhash.Params()
	salt, _ := hex.DecodeString(testSalt)

	gen, err := srp6.NewVerifierGenerator(p, hexhash.VerifierOptions())
	if err != nil {
		t.Fatal(err)
	}

	v, err := gen.GenerateVerifier(salt, []byte(testUser), []byte(testPassword))
	if err != nil {
		t.Fatal(err)
	}

	client, err := srp6.NewClientSession(rand.NewChaCha8([32]byte{1}), clientOptions)
	if err != nil {
		t.Fatal(err)
	}

	server, err := srp6.NewServerSession(p, rand.NewChaCha8([32]byte{2}), serverOptions)
	if err != nil {
		t.Fatal(err)
	}

	if err = client.Step1(testUser, password); err != nil {
		t.Fatal(err)
	}

	B, err := server.Step1(testUser, salt, v)
	if err != nil {
		t.Fatal(err)
	}

	creds, err := client.Step2(p, salt, B)
	if err != nil {
		t.Fatal(err)
	}

	M2, err := server.Step2(creds.A, creds.M1)
	if err != nil {
		return nil, err
	}

	if err = client.Step3(M2); err != nil {
		return nil, err
	}

	return &exchange{client: client, server: server}, nil
}

func TestExchange(t *testing.T) {
	e, err := run(t, testPassword, hexhash.ClientOptions(), hexhash.ServerOptions())
	if err != nil {
		t.Fatal(err)
	}

	clientKey, err := e.client.SessionKey()
	if err != nil {
		t.Fatal(err)
	}

	serverKey, err := e.server.SessionKey()
	if err != nil {
		t.Fatal(err)
	}

	if clientKey.Cmp(serverKey) != 0 {
		t.Fatal("session keys differ")
	}

	p := hexhash.Params()
	A, B := e.server.PublicClientValue(), e.server.PublicServerValue()

	expected := hexhash.ClientEvidence.ComputeClientEvidence(p, &srp6.ClientEvidenceContext{A: A, B: B, S: serverKey})
	if expected.Cmp(e.server.ClientEvidenceMessage()) != 0 {
		t.Fatal("the hexadecimal evidence routine was not used")
	}
}

func TestExchange_WrongPassword(t *testing.T) {
	_, err := run(t, "password124", hexhash.ClientOptions(), hexhash.ServerOptions())
	if !errors.Is(err, srp6.ErrBadCredentials) {
		t.Fatalf("expected %q, got %v", srp6.ErrBadCredentials, err)
	}
}

// Routines must be installed on both sides.
func TestExchange_MixedRoutines(t *testing.T) {
	_, err := run(t, testPassword, hexhash.ClientOptions(), nil)
	if !errors.Is(err, srp6.ErrBadCredentials) {
		t.Fatalf("expected %q, got %v", srp6.ErrBadCredentials, err)
	}

	_, err = run(t, testPassword, nil, hexhash.ServerOptions())
	if !errors.Is(err, srp6.ErrBadCredentials) {
		t.Fatalf("expected %q, got %v", srp6.ErrBadCredentials, err)
	}
}
