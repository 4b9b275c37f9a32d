package primes

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"
)

// maxTries caps the sampling loops. Prime density makes exhaustion all but
// impossible at these sizes; the cap exists so a broken random source fails
// loudly instead of spinning forever.
const maxTries = 100000

// randOddWithBits returns a random odd integer with exactly the requested
// bit length (top bit forced).
func randOddWithBits(bits int) (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, errors.Wrap(err, "reading random candidate")
	}
	n := binary.BigEndian.Uint64(buf[:])
	n >>= 64 - uint(bits)
	n |= 1 << uint(bits-1)
	n |= 1
	return n, nil
}

// Generate returns a random prime with exactly the requested bit length.
// Requires 8 <= bits <= 64, the range where the deterministic oracle holds.
func Generate(bits int) (uint64, error) {
	if bits < 8 || bits > 64 {
		return 0, errors.Errorf("bits must be in [8, 64], got %d", bits)
	}
	for try := 0; try < maxTries; try++ {
		cand, err := randOddWithBits(bits)
		if err != nil {
			return 0, err
		}
		if IsProbablePrime(cand) {
			return cand, nil
		}
	}
	return 0, errors.Wrapf(ErrBudgetExhausted, "no %d-bit prime after %d tries", bits, maxTries)
}

// GenerateSafe returns a safe prime p = 2r+1 with r prime, p having exactly
// the requested bit length. Candidates whose doubling overflows into bits+1
// are rejected and resampled.
func GenerateSafe(bits int) (uint64, error) {
	if bits < 9 || bits > 64 {
		return 0, errors.Errorf("bits must be in [9, 64] for safe primes, got %d", bits)
	}
	for try := 0; try < maxTries; try++ {
		r, err := Generate(bits - 1)
		if err != nil {
			return 0, err
		}
		p := 2*r + 1
		if bitLen(p) != bits {
			continue
		}
		if IsProbablePrime(p) {
			return p, nil
		}
	}
	return 0, errors.Wrapf(ErrBudgetExhausted, "no %d-bit safe prime after %d tries", bits, maxTries)
}

func bitLen(n uint64) int {
	l := 0
	for n > 0 {
		n >>= 1
		l++
	}
	return l
}

// GenerateBig returns a random probable prime of the requested bit length,
// tested with the probabilistic Miller-Rabin variant. This is the path the
// strong RSA generator takes for realistic modulus sizes.
func GenerateBig(bits, rounds int) (*big.Int, error) {
	if bits < 8 {
		return nil, errors.Errorf("bits must be >= 8, got %d", bits)
	}
	buf := make([]byte, (bits+7)/8)
	for try := 0; try < maxTries; try++ {
		if _, err := rand.Read(buf); err != nil {
			return nil, errors.Wrap(err, "sampling prime candidate")
		}
		cand := new(big.Int).SetBytes(buf)
		cand.SetBit(cand, bits-1, 1)
		cand.SetBit(cand, 0, 1)
		if extra := cand.BitLen() - bits; extra > 0 {
			cand.Rsh(cand, uint(extra))
			cand.SetBit(cand, bits-1, 1)
			cand.SetBit(cand, 0, 1)
		}
		if MillerRabin(cand, rounds) {
			return cand, nil
		}
	}
	return nil, errors.Wrapf(ErrBudgetExhausted, "no %d-bit prime after %d tries", bits, maxTries)
}

// GenerateSafeBig returns a big safe prime p = 2r+1 with r prime.
func GenerateSafeBig(bits, rounds int) (*big.Int, error) {
	if bits < 9 {
		return nil, errors.Errorf("bits must be >= 9 for safe primes, got %d", bits)
	}
	one := big.NewInt(1)
	for try := 0; try < maxTries; try++ {
		r, err := GenerateBig(bits-1, rounds)
		if err != nil {
			return nil, err
		}
		p := new(big.Int).Lsh(r, 1)
		p.Add(p, one)
		if p.BitLen() != bits {
			continue
		}
		if MillerRabin(p, rounds) {
			return p, nil
		}
	}
	return nil, errors.Wrapf(ErrBudgetExhausted, "no %d-bit safe prime after %d tries", bits, maxTries)
}
