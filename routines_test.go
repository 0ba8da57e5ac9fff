// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6_test

import (
	"bytes"
	"crypto"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/Fi5t/srp6"
)

// rfc5054 holds the test vectors of RFC 5054, Appendix B, completed with the evidence messages.
var rfc5054 = struct {
	I, P, s                   string
	k, x, v, a, b, A, B, u, S string
	m1, m2, keyHash           string
	xNoIdent, vNoIdent        string
}{
	I: "alice",
	P: "password123",
	s: "beb25379d1a8581eb5a727673a2441ee",
	k: "7556aa045aef2cdd07abaf0f665c3e818913186f",
	x: "94b7555aabe9127cc58ccf4993db6cf84d16c124",
	v: "7e273de8696ffc4f4e337d05b4b375beb0dde1569e8fa00a9886d8129bada1f1822223ca1a605b530e379ba4729fdc59" +
		"f105b4787e5186f5c671085a1447b52a48cf1970b4fb6f8400bbf4cebfbb168152e08ab5ea53d15c1aff87b2b9da6e04e0" +
		"58ad51cc72bfc9033b564e26480d78e955a5e29e7ab245db2be315e2099afb",
	a: "60975527035cf2ad1989806f0407210bc81edc04e2762a56afd529ddda2d4393",
	b: "e487cb59d31ac550471e81f00f6928e01dda08e974a004f49e61f5d105284d20",
	A: "61d5e490f6f1b79547b0704c436f523dd0e560f0c64115bb72557ec44352e8903211c04692272d8b2d1a5358a2cf1b6e0" +
		"bfcf99f921530ec8e39356179eae45e42ba92aeaced825171e1e8b9af6d9c03e1327f44be087ef06530e69f66615261eef" +
		"54073ca11cf5858f0edfdfe15efeab349ef5d76988a3672fac47b0769447b",
	B: "bd0c61512c692c0cb6d041fa01bb152d4916a1e77af46ae105393011baf38964dc46a0670dd125b95a981652236f99d9b" +
		"681cbf87837ec996c6da04453728610d0c6ddb58b318885d7d82c7f8deb75ce7bd4fbaa37089e6f9c6059f388838e7a000" +
		"30b331eb76840910440b1b27aaeaeeb4012b7d7665238a8e3fb004b117b58",
	u: "ce38b9593487da98554ed47d70a7ae5f462ef019",
	S: "b0dc82babcf30674ae450c0287745e7990a3381f63b387aaf271a10d233861e359b48220f7c4693c9ae12b0a6f67809f0" +
		"876e2d013800d6c41bb59b6d5979b5c00a172b4a2a5903a0bdcaf8a709585eb2afafa8f3499b200210dcc1f10eb33943cd" +
		"67fc88a2f39a4be5bec4ec0a3212dc346d7e474b29ede8a469ffeca686e5a",
	m1:       "79f4db5172c8cd13ca5ea4c39f5b6bfb494c66b4",
	m2:       "ec97a011fe36ad372e0d246076f2358a0c8baedc",
	keyHash:  "017eefa1cefc5c2e626e21598987f31e0f1b11bb",
	xNoIdent: "bf56d7df933ff138c4ed956e26d2576dbbe8530b",
	vNoIdent: "344f98fdd71980b04505183b35243094f155ede6b8c2fa72fa0293b4d3b71595983d9508ba1302eb42365992304dc19" +
		"2f3cc0ce2bddc3310acb738197a32e392960427f275ce9d7c033adbd1476359a690292097fcac8bb25962f581c965a06f2a" +
		"2ee8b42c4a9acf4e432eff03eed00e4864099988f4e10324a0a02673c7c7cd",
}

func fromHex(t *testing.T, s string) *big.Int {
	t.Helper()

	x, err := srp6.FromHex(s)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	return x
}

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	return b
}

func expectInt(t *testing.T, name string, got *big.Int, want string) {
	t.Helper()

	if srp6.ToHex(got) != want {
		t.Errorf("unexpected %s\n\tgot  %s\n\twant %s", name, srp6.ToHex(got), want)
	}
}

func TestRoutines_RFC5054(t *testing.T) {
	p := mustParams(1024, crypto.SHA1)
	v := rfc5054
	salt := decodeHex(t, v.s)

	k := srp6.ComputeK(p)
	expectInt(t, "k", k, v.k)

	x := srp6.ComputeXWithUserIdentity(p, salt, []byte(v.I), []byte(v.P))
	expectInt(t, "x", x, v.x)

	verifier := srp6.ComputeVerifier(p, x)
	expectInt(t, "v", verifier, v.v)

	a, b := fromHex(t, v.a), fromHex(t, v.b)

	A := srp6.ComputePublicClientValue(p, a)
	expectInt(t, "A", A, v.A)

	B := srp6.ComputePublicServerValue(p, k, verifier, b)
	expectInt(t, "B", B, v.B)

	u := srp6.ComputeU(p, A, B)
	expectInt(t, "u", u, v.u)

	expectInt(t, "client S", srp6.ComputeClientSessionKey(p, k, x, u, a, B), v.S)
	expectInt(t, "server S", srp6.ComputeServerSessionKey(p, verifier, u, A, b), v.S)

	S := fromHex(t, v.S)
	m1 := srp6.ComputeClientEvidence(p, A, B, S)
	expectInt(t, "M1", m1, v.m1)
	expectInt(t, "M2", srp6.ComputeServerEvidence(p, A, m1, S), v.m2)

	if got := hex.EncodeToString(srp6.ComputeSessionKeyHash(p, S)); got != v.keyHash {
		t.Errorf("unexpected H(S): got %s, want %s", got, v.keyHash)
	}
}

func TestRoutines_XOmitsIdentity(t *testing.T) {
	p := mustParams(1024, crypto.SHA1)
	salt := decodeHex(t, rfc5054.s)

	x := srp6.ComputeX(p, salt, []byte(rfc5054.P))
	expectInt(t, "x", x, rfc5054.xNoIdent)
	expectInt(t, "v", srp6.ComputeVerifier(p, x), rfc5054.vNoIdent)

	if x.Cmp(srp6.ComputeXWithUserIdentity(p, salt, []byte(rfc5054.I), []byte(rfc5054.P))) == 0 {
		t.Fatal("x must differ when the identity is included")
	}
}

func TestRoutines_Deterministic(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration) {
		p := c.params
		salt := []byte("salt")
		password := []byte("password")

		x1, x2 := srp6.ComputeX(p, salt, password), srp6.ComputeX(p, salt, password)
		if x1.Cmp(x2) != 0 {
			t.Fatal("ComputeX is not deterministic")
		}

		v1, v2 := srp6.ComputeVerifier(p, x1), srp6.ComputeVerifier(p, x2)
		if v1.Cmp(v2) != 0 {
			t.Fatal("ComputeVerifier is not deterministic")
		}

		a, err := srp6.GeneratePrivateValue(p, newRNG(3))
		if err != nil {
			t.Fatalf(dbgErr, err)
		}

		b, err := srp6.GeneratePrivateValue(p, newRNG(4))
		if err != nil {
			t.Fatalf(dbgErr, err)
		}

		k := srp6.ComputeK(p)
		A := srp6.ComputePublicClientValue(p, a)
		B := srp6.ComputePublicServerValue(p, k, v1, b)

		u := srp6.ComputeU(p, A, B)
		if u.Cmp(srp6.ComputeU(p, A, B)) != 0 {
			t.Fatal("ComputeU is not deterministic")
		}

		S := srp6.ComputeClientSessionKey(p, k, x1, u, a, B)
		if S.Cmp(srp6.ComputeClientSessionKey(p, k, x2, u, a, B)) != 0 {
			t.Fatal("ComputeClientSessionKey is not deterministic")
		}

		if S.Cmp(srp6.ComputeServerSessionKey(p, v1, u, A, b)) != 0 {
			t.Fatal("client and server session keys differ")
		}

		m1 := srp6.ComputeClientEvidence(p, A, B, S)
		if m1.Cmp(srp6.ComputeClientEvidence(p, A, B, S)) != 0 {
			t.Fatal("ComputeClientEvidence is not deterministic")
		}

		m2 := srp6.ComputeServerEvidence(p, A, m1, S)
		if m2.Cmp(srp6.ComputeServerEvidence(p, A, m1, S)) != 0 {
			t.Fatal("ComputeServerEvidence is not deterministic")
		}
	})
}

func TestRoutines_WrongPasswordKey(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration) {
		p := c.params
		salt := []byte("salt")
		v := srp6.ComputeVerifier(p, srp6.ComputeX(p, salt, []byte("password")))
		x := srp6.ComputeX(p, salt, []byte("Password"))

		a, _ := srp6.GeneratePrivateValue(p, newRNG(5))
		b, _ := srp6.GeneratePrivateValue(p, newRNG(6))
		k := srp6.ComputeK(p)
		A := srp6.ComputePublicClientValue(p, a)
		B := srp6.ComputePublicServerValue(p, k, v, b)
		u := srp6.ComputeU(p, A, B)

		if srp6.ComputeClientSessionKey(p, k, x, u, a, B).Cmp(srp6.ComputeServerSessionKey(p, v, u, A, b)) == 0 {
			t.Fatal("session keys must differ for a wrong password")
		}
	})
}

func TestIsValidPublicValue(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration) {
		p := c.params
		n := p.N()

		invalid := []*big.Int{
			nil,
			big.NewInt(0),
			n,
			new(big.Int).Mul(n, big.NewInt(2)),
			new(big.Int).Mul(n, big.NewInt(7)),
		}

		for i, value := range invalid {
			if srp6.IsValidPublicValue(p, value) {
				t.Errorf("value %d should be invalid", i)
			}
		}

		valid := []*big.Int{
			big.NewInt(1),
			p.G(),
			new(big.Int).Sub(n, big.NewInt(1)),
			new(big.Int).Add(n, big.NewInt(1)),
		}

		for i, value := range valid {
			if !srp6.IsValidPublicValue(p, value) {
				t.Errorf("value %d should be valid", i)
			}
		}
	})
}

func TestGeneratePrivateValue_Range(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration) {
		p := c.params
		minBits := min(256, p.BitSize()/2)
		lower := new(big.Int).Lsh(big.NewInt(1), uint(minBits-1))
		upper := new(big.Int).Sub(p.N(), big.NewInt(1))
		rng := newRNG(7)

		for range 64 {
			x, err := srp6.GeneratePrivateValue(p, rng)
			if err != nil {
				t.Fatalf(dbgErr, err)
			}

			if x.Cmp(lower) < 0 || x.Cmp(upper) > 0 {
				t.Fatalf("private value %s out of range", srp6.ToHex(x))
			}
		}
	})
}

func TestGeneratePrivateValue_NoRandom(t *testing.T) {
	_, err := srp6.GeneratePrivateValue(srp6.DefaultCryptoParams(), nil)
	expectErrors(t, err, srp6.ErrInvalidArgument)
}

func TestGenerateRandomSalt(t *testing.T) {
	salt, err := srp6.GenerateRandomSalt(newRNG(8), 0)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	if len(salt) != srp6.DefaultSaltLength {
		t.Fatalf("expected %d bytes, got %d", srp6.DefaultSaltLength, len(salt))
	}

	salt2, err := srp6.GenerateRandomSalt(newRNG(9), 32)
	if err != nil {
		t.Fatalf(dbgErr, err)
	}

	if len(salt2) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(salt2))
	}

	if bytes.Equal(salt, salt2[:srp6.DefaultSaltLength]) {
		t.Fatal("distinct seeds yielded the same salt")
	}

	if _, err = srp6.GenerateRandomSalt(nil, 0); err == nil {
		t.Fatal("expected an error without a source of randomness")
	}

	_, err = srp6.GenerateRandomSalt(newRNG(8), -1)
	expectErrors(t, err, srp6.ErrInvalidArgument)
}
