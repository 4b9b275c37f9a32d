package primes

import (
	"math/big"
	"testing"
)

func TestIsProbablePrime_KnownValues(t *testing.T) {
	primes := []uint64{
		2, 3, 5, 7, 11, 13, 113, 127, 233, 65537,
		32783, 32789, // 16-bit pair used by the factoring tests
		1000000007,
		2147483647,           // Mersenne prime 2^31-1
		18446744073709551557, // largest prime below 2^64
	}
	for _, p := range primes {
		if !IsProbablePrime(p) {
			t.Errorf("IsProbablePrime(%d) = false, want true", p)
		}
	}

	composites := []uint64{
		0, 1, 4, 9, 111, 119, 121,
		561,        // Carmichael number
		3215031751, // strong pseudoprime to bases 2,3,5,7
		25326001,   // strong pseudoprime to bases 2,3,5
		1000000007 * 3,
		18446744073709551615, // 2^64-1 = 3*5*17*257*641*65537*6700417
	}
	for _, c := range composites {
		if IsProbablePrime(c) {
			t.Errorf("IsProbablePrime(%d) = true, want false", c)
		}
	}
}

func TestIsProbablePrime_SmallExhaustive(t *testing.T) {
	// Sieve up to 10000 and compare.
	const limit = 10000
	sieve := make([]bool, limit)
	for i := 2; i < limit; i++ {
		sieve[i] = true
	}
	for i := 2; i*i < limit; i++ {
		if sieve[i] {
			for j := i * i; j < limit; j += i {
				sieve[j] = false
			}
		}
	}
	for n := 0; n < limit; n++ {
		if got := IsProbablePrime(uint64(n)); got != sieve[n] {
			t.Fatalf("IsProbablePrime(%d) = %v, want %v", n, got, sieve[n])
		}
	}
}

func TestMillerRabin_BigValues(t *testing.T) {
	p, _ := new(big.Int).SetString("18446744073709551629", 10) // 2^64+13, prime
	if !MillerRabin(p, 64) {
		t.Error("2^64+13 reported composite")
	}

	c := new(big.Int).Mul(p, p)
	if MillerRabin(c, 64) {
		t.Error("(2^64+13)^2 reported prime")
	}

	if MillerRabin(big.NewInt(1), 64) {
		t.Error("1 reported prime")
	}
	if !MillerRabin(big.NewInt(2), 64) {
		t.Error("2 reported composite")
	}
}

func TestGenerate_BitLength(t *testing.T) {
	for _, bits := range []int{8, 12, 16, 24, 32, 48, 64} {
		p, err := Generate(bits)
		if err != nil {
			t.Fatalf("Generate(%d): %v", bits, err)
		}
		if got := bitLen(p); got != bits {
			t.Errorf("Generate(%d) = %d with bit length %d", bits, p, got)
		}
		if !IsProbablePrime(p) {
			t.Errorf("Generate(%d) = %d is composite", bits, p)
		}
	}
}

func TestGenerate_RejectsBadBits(t *testing.T) {
	if _, err := Generate(7); err == nil {
		t.Error("Generate(7) should fail")
	}
	if _, err := Generate(65); err == nil {
		t.Error("Generate(65) should fail")
	}
}

func TestGenerateSafe(t *testing.T) {
	for _, bits := range []int{9, 12, 16} {
		p, err := GenerateSafe(bits)
		if err != nil {
			t.Fatalf("GenerateSafe(%d): %v", bits, err)
		}
		if got := bitLen(p); got != bits {
			t.Errorf("GenerateSafe(%d) = %d with bit length %d", bits, p, got)
		}
		if !IsProbablePrime(p) {
			t.Errorf("safe prime %d is composite", p)
		}
		r := (p - 1) / 2
		if !IsProbablePrime(r) {
			t.Errorf("GenerateSafe(%d) = %d but (p-1)/2 = %d is composite", bits, p, r)
		}
	}
}

func TestGenerateBig(t *testing.T) {
	p, err := GenerateBig(128, 16)
	if err != nil {
		t.Fatalf("GenerateBig(128): %v", err)
	}
	if p.BitLen() != 128 {
		t.Errorf("GenerateBig(128) bit length = %d", p.BitLen())
	}
	if !p.ProbablyPrime(32) {
		t.Errorf("GenerateBig(128) = %s is composite", p)
	}
}

func TestGenerateSafeBig(t *testing.T) {
	p, err := GenerateSafeBig(64, 16)
	if err != nil {
		t.Fatalf("GenerateSafeBig(64): %v", err)
	}
	if p.BitLen() != 64 {
		t.Errorf("bit length = %d, want 64", p.BitLen())
	}
	r := new(big.Int).Rsh(p, 1)
	if !r.ProbablyPrime(32) {
		t.Errorf("(p-1)/2 = %s is composite", r)
	}
}
