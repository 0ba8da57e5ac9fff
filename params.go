// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package srp6

import (
	"crypto"
	_ "crypto/sha1" // registers crypto.SHA1, used by RFC 5054 and the reference test vectors
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"hash"
	"math/big"
	"slices"

	_ "golang.org/x/crypto/blake2b" // registers crypto.BLAKE2b_256, crypto.BLAKE2b_384 and crypto.BLAKE2b_512
	_ "golang.org/x/crypto/sha3"    // registers crypto.SHA3_224 to crypto.SHA3_512

	"github.com/Fi5t/srp6/internal/encoding"
)

// Precomputed safe primes 'N', in decimal, for the supported bit sizes.
const (
	n256 = "125617018995153554710546479714086468244499594888726646874671447258204721048803"

	n512 = "1114425243914953341783574955616899173693915777892494703720026835861386335004033901709779025915475090" +
		"6072491181606044774215413467851989724116331597513345603"

	n768 = "1087179135105457859072065649059069760280540086975817629066444682366896187793570736574549981488868217" +
		"8436270948679248003428870960648442278367356671683199812887653774998063854899133414887241525628809184" +
		"38701129530606139552645689583147"

	n1024 = "1676094344103350613451395237643500902601355253298139045574209303098008658594735515315515238000139165" +
		"7389186478993474703901054632848084897951663767377660561037466942621477619782849269138451945321825370" +
		"2788022233205683635831626913357154941914129985489522629902540768368409482248290641036967659389658897" +
		"350067939"

	n1536 = "1486998185923128292816507353619409521152457662596380074614818966810244974827752411420380336514078832" +
		"3147314999383131975331479985653010207970407874280514796393169280159984157091012939029710729604875274" +
		"1106808231176317154917052800862081339141144590758491286522207610072605025527156774921390533065926490" +
		"8657221124284665444825474741087704974475795505492821585749417639344967192301749033325359286273431675" +
		"492866492416941152646940908101472416714421046022696100064262587"

	n2048 = "2176617445861743577319100889180275378190766837425553851114464322468988623538384095721090901308605640" +
		"1571399717235807266581649606472148410291413364152197364477180887395655483738115072677402235101762521" +
		"9015698207402931495296204193332662620734710545483687360395197024862265062488610602569718029849535611" +
		"2144268015766800076142998822245709041387397397017192709399211475176516806361476111961547623342209644" +
		"2783117971236371647333871414335895773474667308967050807005509320424799678417036867928316761272274230" +
		"3140675482911335824795830614395775593471019617714061736843785227034834953370376550067513284475105502" +
		"99250924469288819"
)

// GeneratorCommon is the generator used with all precomputed primes.
const GeneratorCommon = 2

// DefaultSaltLength is the length in bytes of salts generated by GenerateRandomSalt when no length is given.
const DefaultSaltLength = 16

var precomputedPrimes = map[int]*big.Int{
	256:  mustParsePrime(n256),
	512:  mustParsePrime(n512),
	768:  mustParsePrime(n768),
	1024: mustParsePrime(n1024),
	1536: mustParsePrime(n1536),
	2048: mustParsePrime(n2048),
}

func mustParsePrime(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("srp6: invalid precomputed prime")
	}

	return n
}

// SupportedBitSizes returns the bit sizes for which a precomputed safe prime is available, in ascending order.
func SupportedBitSizes() []int {
	sizes := make([]int, 0, len(precomputedPrimes))
	for size := range precomputedPrimes {
		sizes = append(sizes, size)
	}

	slices.Sort(sizes)

	return sizes
}

// CryptoParams holds the SRP-6a domain parameters agreed upon by both parties: the safe prime N, the generator g,
// and the hash function H. A CryptoParams is immutable and safe for concurrent use.
type CryptoParams struct {
	n *big.Int
	g *big.Int
	h crypto.Hash
}

// GetInstance returns the parameters for one of the precomputed safe primes and generator 2. The bit size must be
// one of 256, 512, 768, 1024, 1536 or 2048.
func GetInstance(bits int, h crypto.Hash) (*CryptoParams, error) {
	n, ok := precomputedPrimes[bits]
	if !ok {
		return nil, ErrConfiguration.Join(fmt.Errorf("%w: %d", errUnknownBitSize, bits))
	}

	return NewCryptoParams(n, big.NewInt(GeneratorCommon), h)
}

// DefaultCryptoParams returns 2048-bit parameters with SHA-256.
func DefaultCryptoParams() *CryptoParams {
	p, err := GetInstance(2048, crypto.SHA256)
	if err != nil {
		panic(err)
	}

	return p
}

// IsSupportedHash reports whether h is linked into the binary and can be used as H.
func IsSupportedHash(h crypto.Hash) bool {
	return h != 0 && h.Available()
}

// NewCryptoParams validates and returns custom parameters. The generator g must not be 0, 1, or N-1, and H must
// be available. N is not checked for primality: using a safe prime is the caller's responsibility.
func NewCryptoParams(n, g *big.Int, h crypto.Hash) (*CryptoParams, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, ErrInvalidArgument.Join(errNoPrime)
	}

	if g == nil {
		return nil, ErrInvalidArgument.Join(errNoGenerator)
	}

	switch {
	case g.Sign() == 0:
		return nil, ErrInvalidArgument.Join(errGeneratorZero)
	case g.Cmp(bigOne) == 0:
		return nil, ErrInvalidArgument.Join(errGeneratorOne)
	case g.Cmp(new(big.Int).Sub(n, bigOne)) == 0:
		return nil, ErrInvalidArgument.Join(errGeneratorNMinus)
	}

	if !IsSupportedHash(h) {
		return nil, ErrInvalidArgument.Join(fmt.Errorf("%w: %v", errUnsupportedHash, h))
	}

	return &CryptoParams{
		n: new(big.Int).Set(n),
		g: new(big.Int).Set(g),
		h: h,
	}, nil
}

// N returns a copy of the safe prime.
func (p *CryptoParams) N() *big.Int {
	return new(big.Int).Set(p.n)
}

// G returns a copy of the generator.
func (p *CryptoParams) G() *big.Int {
	return new(big.Int).Set(p.g)
}

// H returns the hash function identifier.
func (p *CryptoParams) H() crypto.Hash {
	return p.h
}

// NewHash returns a fresh instance of H. Instances must not be shared across concurrent computations.
func (p *CryptoParams) NewHash() hash.Hash {
	return p.h.New()
}

// PadLength returns the length in bytes integers are padded to before being hashed in pairs.
func (p *CryptoParams) PadLength() int {
	return encoding.PadLength(p.n)
}

// BitSize returns the bit length of N.
func (p *CryptoParams) BitSize() int {
	return p.n.BitLen()
}

// Equal reports whether both parameter sets hold the same N, g and H.
func (p *CryptoParams) Equal(o *CryptoParams) bool {
	if p == nil || o == nil {
		return p == o
	}

	return p.h == o.h && p.n.Cmp(o.n) == 0 && p.g.Cmp(o.g) == 0
}

// String returns a short, human-readable description of the parameters.
func (p *CryptoParams) String() string {
	return fmt.Sprintf("SRP-6a N=%d bits g=%s H=%v", p.n.BitLen(), p.g.String(), p.h)
}
