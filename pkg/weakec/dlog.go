package weakec

import (
	"math"
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/maelab/maetool/pkg/curve"
	"github.com/maelab/maetool/pkg/safety"
)

// DlogResult reports a linear discrete-log search.
type DlogResult struct {
	Found   bool          `json:"found"`
	K       int           `json:"k,omitempty"`
	Steps   int           `json:"steps"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// BruteForceDLog searches for k with k*G = Q by walking the multiples of G
// from the identity. k in [0, bound] is covered: the loop checks before
// advancing, and a final check handles the inclusive upper boundary.
func BruteForceDLog(c *curve.Curve, g, q curve.Point, bound int, limits safety.Limits) (*DlogResult, error) {
	if err := limits.CheckField(c.P); err != nil {
		return nil, err
	}
	if err := limits.CheckBruteForceBound(bound); err != nil {
		return nil, err
	}
	if bound < 1 {
		return nil, errors.Errorf("bound must be >= 1, got %d", bound)
	}

	start := time.Now()
	r := curve.Infinity()
	steps := 0
	for k := 0; k < bound; k++ {
		if r.Equal(q) {
			return &DlogResult{Found: true, K: k, Steps: steps, Elapsed: time.Since(start)}, nil
		}
		r = c.Add(r, g)
		steps++
	}
	if r.Equal(q) {
		return &DlogResult{Found: true, K: bound, Steps: steps, Elapsed: time.Since(start)}, nil
	}
	return &DlogResult{Found: false, Steps: steps, Elapsed: time.Since(start)}, nil
}

// BSGSResult reports a baby-step/giant-step search, including the size of
// the baby-step table it materialized.
type BSGSResult struct {
	Found     bool          `json:"found"`
	K         int           `json:"k,omitempty"`
	TableSize int           `json:"table_size"`
	Steps     int           `json:"steps"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// pointKey is a hashable point identity for the baby-step table. The group
// identity gets its own tag so it can never collide with a coordinate pair.
type pointKey struct {
	inf  bool
	x, y string
}

func keyOf(p curve.Point) pointKey {
	if p.IsInfinity() {
		return pointKey{inf: true}
	}
	return pointKey{x: p.X.String(), y: p.Y.String()}
}

// BSGSDLog runs the meet-in-the-middle search: with m = ceil(sqrt(bound)),
// any k < bound decomposes as k = i*m + j with 0 <= j < m and 0 <= i <= m,
// so a table of the first m multiples of G plus at most m+1 giant steps of
// -m*G from Q covers the whole range. Memory is O(sqrt(bound)), which is
// why the bound ceiling is enforced up front.
func BSGSDLog(c *curve.Curve, g, q curve.Point, bound int, limits safety.Limits) (*BSGSResult, error) {
	if err := limits.CheckField(c.P); err != nil {
		return nil, err
	}
	if err := limits.CheckBSGSBound(bound); err != nil {
		return nil, err
	}
	if bound < 1 {
		return nil, errors.Errorf("bound must be >= 1, got %d", bound)
	}

	start := time.Now()
	m := int(math.Ceil(math.Sqrt(float64(bound))))

	// keep the smallest j per point; when order(G) < m the multiples
	// cycle and the table holds order(G) entries rather than m
	table := make(map[pointKey]int, m)
	r := curve.Infinity()
	for j := 0; j < m; j++ {
		if _, seen := table[keyOf(r)]; !seen {
			table[keyOf(r)] = j
		}
		r = c.Add(r, g)
	}

	negFactor := c.Neg(c.ScalarMult(g, big.NewInt(int64(m))))

	s := q
	for i := 0; i <= m; i++ {
		if j, ok := table[keyOf(s)]; ok {
			return &BSGSResult{
				Found:     true,
				K:         i*m + j,
				TableSize: len(table),
				Steps:     m + i,
				Elapsed:   time.Since(start),
			}, nil
		}
		s = c.Add(s, negFactor)
	}

	return &BSGSResult{Found: false, TableSize: len(table), Steps: 2*m + 1, Elapsed: time.Since(start)}, nil
}
