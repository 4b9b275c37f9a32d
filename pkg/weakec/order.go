package weakec

import (
	"time"

	"github.com/maelab/maetool/pkg/curve"
	"github.com/maelab/maetool/pkg/safety"
)

// OrderResult reports a point-order search. Steps counts group additions
// performed; a search that scanned its whole bound without hitting the
// identity returns Found=false with the diagnostics intact.
type OrderResult struct {
	Found   bool          `json:"found"`
	Order   int           `json:"order,omitempty"`
	Steps   int           `json:"steps"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// FindPointOrder determines the order of p by bounded repeated addition:
// the accumulator starts at p and the k-th multiple reaching the identity
// means order k. The identity itself has order 1 at zero steps. Multiples
// up to and including maxSearch are examined.
func FindPointOrder(c *curve.Curve, p curve.Point, maxSearch int, limits safety.Limits) (*OrderResult, error) {
	if err := limits.CheckField(c.P); err != nil {
		return nil, err
	}
	return findOrderBounded(c, p, maxSearch, 0), nil
}

// findOrderBounded is the budgeted core shared with the weak-key sampler,
// which additionally needs a per-attempt wall-clock cap. A zero budget
// means no time limit.
func findOrderBounded(c *curve.Curve, p curve.Point, maxSearch int, budget time.Duration) *OrderResult {
	start := time.Now()

	if p.IsInfinity() {
		return &OrderResult{Found: true, Order: 1, Steps: 0, Elapsed: time.Since(start)}
	}

	r := p
	steps := 0
	for m := 1; m <= maxSearch; m++ {
		if r.IsInfinity() {
			return &OrderResult{Found: true, Order: m, Steps: steps, Elapsed: time.Since(start)}
		}
		if budget > 0 && time.Since(start) > budget {
			return &OrderResult{Found: false, Steps: steps, Elapsed: time.Since(start)}
		}
		r = c.Add(r, p)
		steps++
	}
	return &OrderResult{Found: false, Steps: steps, Elapsed: time.Since(start)}
}
