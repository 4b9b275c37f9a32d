package weakrsa

import (
	"math/big"
	"time"

	"github.com/maelab/maetool/pkg/safety"
)

// FermatResult reports the outcome of a factorization attempt. Found=false
// with the step and timing diagnostics is a normal result, not an error.
type FermatResult struct {
	Found   bool
	P       *big.Int
	Q       *big.Int
	Steps   int
	Elapsed time.Duration
}

// FermatFactor searches for p, q with n = p*q via the classical
// a²-n = b² iteration, starting at a = ceil(sqrt(n)). The step count to
// success is about |p-q|/2, so moduli built from close primes fall almost
// immediately. The field ceiling is enforced before any work begins.
func FermatFactor(n *big.Int, maxSteps int, limits safety.Limits) (*FermatResult, error) {
	if err := limits.CheckField(n); err != nil {
		return nil, err
	}

	start := time.Now()

	a := new(big.Int).Sqrt(n)
	if sq := new(big.Int).Mul(a, a); sq.Cmp(n) < 0 {
		a.Add(a, big.NewInt(1))
	}

	one := big.NewInt(1)
	b2 := new(big.Int)
	b := new(big.Int)
	check := new(big.Int)

	for steps := 0; steps < maxSteps; steps++ {
		b2.Mul(a, a)
		b2.Sub(b2, n)
		if b2.Sign() >= 0 {
			b.Sqrt(b2)
			if check.Mul(b, b); check.Cmp(b2) == 0 {
				p := new(big.Int).Sub(a, b)
				q := new(big.Int).Add(a, b)
				// exact product check guards against sqrt rounding
				if check.Mul(p, q); check.Cmp(n) == 0 {
					return &FermatResult{
						Found:   true,
						P:       p,
						Q:       q,
						Steps:   steps,
						Elapsed: time.Since(start),
					}, nil
				}
			}
		}
		a.Add(a, one)
	}

	return &FermatResult{
		Found:   false,
		Steps:   maxSteps,
		Elapsed: time.Since(start),
	}, nil
}
