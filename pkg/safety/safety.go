// Package safety holds the global resource ceilings shared by every attack
// and enumeration entry point. The limits are a single value injected into
// each component so the ceilings stay consistent across solvers.
package safety

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrFieldTooLarge is returned when a field prime or modulus exceeds the
// configured bit-length ceiling. The check runs before any computation.
var ErrFieldTooLarge = errors.New("field bit length exceeds safety ceiling")

// ErrBoundTooLarge is returned when a discrete-log search bound exceeds the
// configured ceiling.
var ErrBoundTooLarge = errors.New("search bound exceeds safety ceiling")

// Limits bounds every search the toolkit runs. A violating input fails fast
// rather than starting an expensive computation.
type Limits struct {
	// MaxFieldBits is the largest permitted bit length for a field prime
	// or RSA modulus.
	MaxFieldBits int

	// MaxBSGSBound caps the BSGS search bound; table memory grows with
	// the square root of the bound.
	MaxBSGSBound int

	// MaxBruteForceBound caps the linear discrete-log search bound.
	MaxBruteForceBound int
}

// DefaultLimits returns the ceilings used by the library entry points.
func DefaultLimits() Limits {
	return Limits{
		MaxFieldBits:       64,
		MaxBSGSBound:       200000,
		MaxBruteForceBound: 100000,
	}
}

// InteractiveLimits returns the stricter ceilings enforced at interactive
// boundaries such as the CLI, where a request must return promptly.
func InteractiveLimits() Limits {
	return Limits{
		MaxFieldBits:       64,
		MaxBSGSBound:       200000,
		MaxBruteForceBound: 10000,
	}
}

// CheckField verifies that p fits under the field ceiling.
func (l Limits) CheckField(p *big.Int) error {
	return l.CheckFieldBits(p.BitLen())
}

// CheckFieldBits verifies a bit length against the field ceiling.
func (l Limits) CheckFieldBits(bits int) error {
	if bits > l.MaxFieldBits {
		return errors.Wrapf(ErrFieldTooLarge, "bit length %d > %d", bits, l.MaxFieldBits)
	}
	return nil
}

// CheckBSGSBound verifies a BSGS search bound against the ceiling.
func (l Limits) CheckBSGSBound(bound int) error {
	if bound > l.MaxBSGSBound {
		return errors.Wrapf(ErrBoundTooLarge, "bsgs bound %d > %d", bound, l.MaxBSGSBound)
	}
	return nil
}

// CheckBruteForceBound verifies a linear search bound against the ceiling.
func (l Limits) CheckBruteForceBound(bound int) error {
	if bound > l.MaxBruteForceBound {
		return errors.Wrapf(ErrBoundTooLarge, "brute-force bound %d > %d", bound, l.MaxBruteForceBound)
	}
	return nil
}
