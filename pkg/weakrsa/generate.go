package weakrsa

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/maelab/maetool/pkg/primes"
)

// ErrNoCandidate is returned when the weak generator exhausts its delta
// range without finding a nearby prime q. Widen closeness or resample p.
var ErrNoCandidate = errors.New("no nearby prime q in closeness range")

// ErrBudgetExhausted is returned when the strong generator runs out of
// tries before finding a qualifying prime pair.
var ErrBudgetExhausted = errors.New("strong generation try budget exhausted")

// GenerateWeak produces an RSA key whose primes differ by at most
// closeness, making the modulus trivially vulnerable to Fermat
// factorization. bits is the size of each prime (n is about 2*bits).
func GenerateWeak(bits, closeness int) (*Key, error) {
	return GenerateWeakWithExponent(bits, closeness, DefaultExponent)
}

// GenerateWeakWithExponent is GenerateWeak with an explicit public exponent.
func GenerateWeakWithExponent(bits, closeness int, e int64) (*Key, error) {
	if closeness < 1 {
		return nil, errors.Errorf("closeness must be >= 1, got %d", closeness)
	}
	p64, err := primes.Generate(bits)
	if err != nil {
		return nil, err
	}
	return weakKeyFromPrime(p64, closeness, e)
}

// weakKeyFromPrime scans q = p+delta upward from a fixed prime p.
func weakKeyFromPrime(p64 uint64, closeness int, e int64) (*Key, error) {
	p := new(big.Int).SetUint64(p64)
	bigE := big.NewInt(e)
	one := big.NewInt(1)

	for delta := uint64(1); delta <= uint64(closeness); delta++ {
		q64 := p64 + delta
		if q64 < p64 {
			// wrapped past 2^64, nothing left to scan
			break
		}
		if !primes.IsProbablePrime(q64) {
			continue
		}
		q := new(big.Int).SetUint64(q64)
		if new(big.Int).GCD(nil, nil, p, q).Cmp(one) != 0 {
			continue
		}

		pMinus1 := new(big.Int).Sub(p, one)
		qMinus1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pMinus1, qMinus1)
		if new(big.Int).GCD(nil, nil, bigE, phi).Cmp(one) != 0 {
			continue
		}

		d := new(big.Int).ModInverse(bigE, phi)
		if d == nil {
			continue
		}
		return &Key{
			P: p,
			Q: q,
			N: new(big.Int).Mul(p, q),
			E: bigE,
			D: d,
		}, nil
	}
	return nil, errors.Wrapf(ErrNoCandidate, "no prime q in (p, p+%d] for p=%d", closeness, p64)
}

// StrongConfig controls strong key generation. Zero values fall back to
// the defaults from DefaultStrongConfig.
type StrongConfig struct {
	// ModulusBits is the total size of n; each prime gets half.
	ModulusBits int

	// E is the public exponent.
	E int64

	// SafePrimes selects p = 2r+1 generation for both primes.
	SafePrimes bool

	// MinGapBits requires |p-q| to span at least this many bits.
	// Ignored when MinGap is set; zero disables the check entirely.
	MinGapBits int

	// MinGap, when non-nil, requires |p-q| >= MinGap as an absolute value.
	MinGap *big.Int

	// MaxTries caps the prime-pair sampling loop.
	MaxTries int

	// MRRounds is the Miller-Rabin round count for primes wider than the
	// deterministic 64-bit range.
	MRRounds int
}

// DefaultStrongConfig returns the production-shaped defaults: a 2048-bit
// modulus with a 128-bit minimum prime separation.
func DefaultStrongConfig() StrongConfig {
	return StrongConfig{
		ModulusBits: 2048,
		E:           DefaultExponent,
		MinGapBits:  128,
		MaxTries:    100000,
		MRRounds:    64,
	}
}

// gapOK applies the separation policy, absolute when MinGap is set and
// bit-length based otherwise.
func (cfg StrongConfig) gapOK(gap *big.Int) bool {
	if cfg.MinGap != nil {
		return gap.Cmp(cfg.MinGap) >= 0
	}
	if cfg.MinGapBits == 0 {
		return true
	}
	return gap.BitLen() >= cfg.MinGapBits
}

func (cfg StrongConfig) genPrime(bits int) (*big.Int, error) {
	if bits <= 64 {
		var (
			p   uint64
			err error
		)
		if cfg.SafePrimes {
			p, err = primes.GenerateSafe(bits)
		} else {
			p, err = primes.Generate(bits)
		}
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(p), nil
	}
	if cfg.SafePrimes {
		return primes.GenerateSafeBig(bits, cfg.MRRounds)
	}
	return primes.GenerateBig(bits, cfg.MRRounds)
}

// GenerateStrong produces an RSA key with independently sampled,
// well-separated primes and full CRT parameters.
func GenerateStrong(cfg StrongConfig) (*Key, error) {
	def := DefaultStrongConfig()
	if cfg.ModulusBits == 0 {
		cfg.ModulusBits = def.ModulusBits
	}
	if cfg.E == 0 {
		cfg.E = def.E
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = def.MaxTries
	}
	if cfg.MRRounds == 0 {
		cfg.MRRounds = def.MRRounds
	}
	if cfg.ModulusBits%2 != 0 {
		return nil, errors.Errorf("modulus bits must be even, got %d", cfg.ModulusBits)
	}
	half := cfg.ModulusBits / 2

	bigE := big.NewInt(cfg.E)
	one := big.NewInt(1)

	for try := 0; try < cfg.MaxTries; try++ {
		p, err := cfg.genPrime(half)
		if err != nil {
			return nil, err
		}
		q, err := cfg.genPrime(half)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}

		gap := new(big.Int).Sub(p, q)
		gap.Abs(gap)
		if !cfg.gapOK(gap) {
			continue
		}

		pMinus1 := new(big.Int).Sub(p, one)
		qMinus1 := new(big.Int).Sub(q, one)
		if new(big.Int).GCD(nil, nil, bigE, pMinus1).Cmp(one) != 0 {
			continue
		}
		if new(big.Int).GCD(nil, nil, bigE, qMinus1).Cmp(one) != 0 {
			continue
		}
		phi := new(big.Int).Mul(pMinus1, qMinus1)
		if new(big.Int).GCD(nil, nil, bigE, phi).Cmp(one) != 0 {
			continue
		}

		d := new(big.Int).ModInverse(bigE, phi)
		if d == nil {
			continue
		}
		return &Key{
			P:    p,
			Q:    q,
			N:    new(big.Int).Mul(p, q),
			E:    bigE,
			D:    d,
			Phi:  phi,
			DP:   new(big.Int).Mod(d, pMinus1),
			DQ:   new(big.Int).Mod(d, qMinus1),
			QInv: new(big.Int).ModInverse(q, p),
		}, nil
	}
	return nil, errors.Wrapf(ErrBudgetExhausted, "no qualifying prime pair after %d tries", cfg.MaxTries)
}
