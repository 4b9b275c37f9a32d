package weakec

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/maelab/maetool/pkg/curve"
	"github.com/maelab/maetool/pkg/primes"
	"github.com/maelab/maetool/pkg/safety"
)

// ErrTimedOut is returned when the sampling loop exhausts its deadline or
// try budget without landing on a point in the target order band. Lower
// the difficulty or widen the band.
var ErrTimedOut = errors.New("weak key generation timed out")

// ECKey is a deliberately weak elliptic-curve keypair together with the
// advisory material the dashboard shows next to it.
type ECKey struct {
	Curve *curve.Curve
	G     curve.Point
	Order uint64
	D     *big.Int
	Q     curve.Point

	// OrderFactors is the prime factorization of Order.
	OrderFactors map[uint64]int

	// AttackHint names the cheapest applicable method and EstOps its
	// rough operation count, about 2^(log2(order)/2).
	AttackHint string
	EstOps     uint64
}

// SubgroupPolicy picks the prime subgroup order to reduce into when the
// sampled point's order is composite. It receives the factor multiset and
// the target band and reports whether any factor qualifies. The band-match
// rule is a heuristic, so it is pluggable.
type SubgroupPolicy func(factors map[uint64]int, lo, hi uint64) (uint64, bool)

// DefaultSubgroupPolicy takes a prime factor inside the band when one
// exists, then falls back to the largest factor of at least lo/2.
func DefaultSubgroupPolicy(factors map[uint64]int, lo, hi uint64) (uint64, bool) {
	var candidates []uint64
	for f := range factors {
		candidates = append(candidates, f)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] > candidates[j] })

	for _, f := range candidates {
		if f >= lo && f <= hi {
			return f, true
		}
	}
	for _, f := range candidates {
		if f >= lo/2 {
			return f, true
		}
	}
	return 0, false
}

// DefaultToyCurve is the demo field the generator samples on: small enough
// that point operations are cheap, far under the 64-bit ceiling.
func DefaultToyCurve() *curve.Curve {
	return curve.NewCurve(big.NewInt(40961), big.NewInt(1), big.NewInt(1))
}

// difficulty presets: target bands for the order of the published point.
var difficultyBands = map[string][2]uint64{
	"easy":   {20, 120},    // brute force is enough
	"medium": {200, 900},   // BSGS shows its benefit
	"hard":   {1200, 4000}, // Pohlig-Hellman or BSGS needed
}

// GenConfig controls weak key sampling. Zero values fall back to the
// defaults from DefaultGenConfig.
type GenConfig struct {
	// Difficulty selects a preset order band: easy, medium, or hard.
	Difficulty string

	// PreferPrime restricts the published point to a prime-order
	// subgroup inside (or near) the band, via cofactor multiplication.
	PreferPrime bool

	// MinOrder / MaxOrder override the preset band when nonzero.
	MinOrder uint64
	MaxOrder uint64

	// Deadline bounds the whole sampling run.
	Deadline time.Duration

	// MaxTries bounds the number of sampled points.
	MaxTries int

	// PerTrySteps and PerTryBudget cap each order search independently
	// of the overall deadline.
	PerTrySteps  int
	PerTryBudget time.Duration

	// Policy selects the subgroup order on the PreferPrime path.
	Policy SubgroupPolicy

	Limits safety.Limits
}

// DefaultGenConfig returns the interactive-speed defaults.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Difficulty:   "medium",
		Deadline:     800 * time.Millisecond,
		MaxTries:     2000,
		PerTryBudget: 6 * time.Millisecond,
		Policy:       DefaultSubgroupPolicy,
		Limits:       safety.DefaultLimits(),
	}
}

func (cfg GenConfig) band() (uint64, uint64) {
	lo, hi := difficultyBands["medium"][0], difficultyBands["medium"][1]
	if b, ok := difficultyBands[cfg.Difficulty]; ok {
		lo, hi = b[0], b[1]
	}
	if cfg.MinOrder != 0 {
		lo = cfg.MinOrder
	}
	if cfg.MaxOrder != 0 {
		hi = cfg.MaxOrder
	}
	return lo, hi
}

// GenerateWeakKey samples random points on c until one lands in the target
// order band, then draws a secret scalar and publishes the pair. The whole
// run is bounded by the deadline and try budget; each order probe carries
// its own step and time caps so a bad sample cannot eat the deadline.
func GenerateWeakKey(c *curve.Curve, cfg GenConfig) (*ECKey, error) {
	def := DefaultGenConfig()
	if cfg.Deadline == 0 {
		cfg.Deadline = def.Deadline
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = def.MaxTries
	}
	if cfg.PerTryBudget == 0 {
		cfg.PerTryBudget = def.PerTryBudget
	}
	if cfg.Policy == nil {
		cfg.Policy = DefaultSubgroupPolicy
	}
	if cfg.Limits == (safety.Limits{}) {
		cfg.Limits = def.Limits
	}
	if err := cfg.Limits.CheckField(c.P); err != nil {
		return nil, err
	}

	lo, hi := cfg.band()
	perTrySteps := cfg.PerTrySteps
	if perTrySteps == 0 {
		perTrySteps = int(hi) + 100
		if perTrySteps < 600 {
			perTrySteps = 600
		}
	}

	deadline := time.Now().Add(cfg.Deadline)
	for try := 0; try < cfg.MaxTries && time.Now().Before(deadline); try++ {
		p, err := c.RandomPoint(rand.Reader)
		if err != nil {
			continue // non-residue x, resample
		}

		probe := findOrderBounded(c, p, perTrySteps, cfg.PerTryBudget)
		if !probe.Found {
			continue
		}
		order := uint64(probe.Order)

		g := p
		factors := Factorize(order)

		if cfg.PreferPrime {
			sub, ok := cfg.Policy(factors, lo, hi)
			if !ok || !primes.IsProbablePrime(sub) {
				continue
			}
			cofactor := order / sub
			g = c.ScalarMult(p, new(big.Int).SetUint64(cofactor))
			if g.IsInfinity() {
				continue
			}
			if !c.ScalarMult(g, new(big.Int).SetUint64(sub)).IsInfinity() {
				continue
			}
			order = sub
			factors = map[uint64]int{sub: 1}
		} else if order < lo || order > hi {
			continue
		}

		d, err := rand.Int(rand.Reader, new(big.Int).SetUint64(order-1))
		if err != nil {
			return nil, errors.Wrap(err, "sampling secret scalar")
		}
		d.Add(d, big.NewInt(1))

		key := &ECKey{
			Curve:        c,
			G:            g,
			Order:        order,
			D:            d,
			Q:            c.ScalarMult(g, d),
			OrderFactors: factors,
			EstOps:       estOps(order),
		}
		key.AttackHint = attackHint(order, factors)
		return key, nil
	}

	return nil, errors.Wrap(ErrTimedOut, "lower difficulty or widen the order range")
}

// estOps approximates 2^(log2(r)/2), the square-root work factor.
func estOps(order uint64) uint64 {
	if order < 2 {
		return 1
	}
	return uint64(math.Exp2(math.Log2(float64(order)) / 2))
}

func attackHint(order uint64, factors map[uint64]int) string {
	if len(factors) == 1 {
		for f, exp := range factors {
			if exp == 1 && f == order {
				return fmt.Sprintf("Use BSGS / Pollard-rho (~sqrt(r) = %d steps).", estOps(order))
			}
		}
	}
	return fmt.Sprintf("Pohlig-Hellman on factors %v (then BSGS on the largest).", factors)
}
