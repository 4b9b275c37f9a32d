// Package primes implements the primality oracle and prime generators used
// to synthesize deliberately weak and deliberately strong key material.
//
// Two testing paths exist: a deterministic Miller-Rabin specialization for
// integers below 2^64, and a probabilistic big-integer variant for the
// strong generation path where moduli exceed the 64-bit lab ceiling.
package primes

import (
	"crypto/rand"
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
)

// smallPrimes is the trial-division sieve applied before Miller-Rabin.
// An exact match is accepted immediately; any other multiple is rejected.
var smallPrimes = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
}

// mrWitnesses is sufficient for a deterministic result below 3.3e24,
// which covers the full uint64 range.
var mrWitnesses = []uint64{2, 3, 5, 7, 11, 13, 17}

// mulMod returns a*b mod m without overflow, using the 128-bit product.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// powMod returns base^exp mod m.
func powMod(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		base = mulMod(base, base, m)
		exp >>= 1
	}
	return result
}

// IsProbablePrime reports whether n is prime. The result is exact for the
// whole uint64 range despite the name, which is kept for parity with the
// probabilistic big-integer path.
func IsProbablePrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range smallPrimes {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}

	// n-1 = d * 2^s with d odd
	d := n - 1
	s := 0
	for d%2 == 0 {
		d /= 2
		s++
	}

	for _, a := range mrWitnesses {
		if a%n == 0 {
			continue
		}
		x := powMod(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		composite := true
		for i := 0; i < s-1; i++ {
			x = mulMod(x, x, n)
			if x == n-1 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// MillerRabin runs a probabilistic Miller-Rabin test on n with random
// witnesses. It is the test used for primes wider than 64 bits; 64 rounds
// give a comfortable error margin at those sizes.
func MillerRabin(n *big.Int, rounds int) bool {
	one := big.NewInt(1)
	two := big.NewInt(2)

	if n.Cmp(two) < 0 {
		return false
	}
	for _, p := range smallPrimes {
		sp := new(big.Int).SetUint64(p)
		if n.Cmp(sp) == 0 {
			return true
		}
		if new(big.Int).Mod(n, sp).Sign() == 0 {
			return false
		}
	}

	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	nMinus3 := new(big.Int).Sub(n, big.NewInt(3))
	for i := 0; i < rounds; i++ {
		a, err := rand.Int(rand.Reader, nMinus3)
		if err != nil {
			return false
		}
		a.Add(a, two) // a in [2, n-2]

		x := new(big.Int).Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		composite := true
		for j := 0; j < s-1; j++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// ErrBudgetExhausted is returned when a generator runs out of retries
// before finding a qualifying prime.
var ErrBudgetExhausted = errors.New("prime generation retry budget exhausted")
