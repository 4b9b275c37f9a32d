package weakec

import (
	"fmt"

	"github.com/maelab/maetool/pkg/curve"
	"github.com/maelab/maetool/pkg/safety"
)

// Report collects the outcome of every triage stage. Stages that did not
// run stay nil; the messages narrate the run for the dashboard.
type Report struct {
	OrderSearch *OrderResult `json:"order_search,omitempty"`
	BruteForce  *DlogResult  `json:"bruteforce,omitempty"`
	BSGS        *BSGSResult  `json:"bsgs,omitempty"`
	Messages    []string     `json:"messages"`
}

func (r *Report) addMessage(format string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// Analyzer sequences the cryptanalytic triage: cheap order discovery, then
// the cheapest applicable solver, escalating only as needed.
type Analyzer struct {
	limits        safety.Limits
	bruteFeasible int
}

// NewAnalyzer returns an analyzer with the default ceilings and a
// brute-force feasibility threshold of 100000.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		limits:        safety.DefaultLimits(),
		bruteFeasible: 100000,
	}
}

// WithLimits replaces the safety ceilings.
func (a *Analyzer) WithLimits(limits safety.Limits) *Analyzer {
	a.limits = limits
	return a
}

// WithBruteFeasible replaces the order threshold below which the linear
// solver is attempted before BSGS.
func (a *Analyzer) WithBruteFeasible(n int) *Analyzer {
	a.bruteFeasible = n
	return a
}

// Analyze runs order discovery on g, brute-forces the discrete log of q
// modulo the order when it is small enough, and otherwise falls back to
// BSGS within dlogBound. Each stage's diagnostics land in the report
// whether or not later stages run; a brute-force hit short-circuits.
func (a *Analyzer) Analyze(c *curve.Curve, g, q curve.Point, orderSearchBound, dlogBound int) (*Report, error) {
	if err := a.limits.CheckField(c.P); err != nil {
		return nil, err
	}

	report := &Report{}

	orderRes, err := FindPointOrder(c, g, orderSearchBound, a.limits)
	if err != nil {
		return nil, err
	}
	report.OrderSearch = orderRes
	if orderRes.Found {
		report.addMessage("Found order r = %d (in %d steps, %s).", orderRes.Order, orderRes.Steps, orderRes.Elapsed)
	} else {
		report.addMessage("Order of G not found within %d steps.", orderSearchBound)
	}

	// the linear stage never exceeds the injected ceiling: an order above
	// it skips to BSGS instead of tripping the bound check mid-triage
	feasible := a.bruteFeasible
	if feasible > a.limits.MaxBruteForceBound {
		feasible = a.limits.MaxBruteForceBound
	}

	if orderRes.Found && orderRes.Order <= feasible {
		bfRes, err := BruteForceDLog(c, g, q, orderRes.Order, a.limits)
		if err != nil {
			return nil, err
		}
		report.BruteForce = bfRes
		if bfRes.Found {
			report.addMessage("Brute force succeeded: d mod r = %d (r = %d).", bfRes.K, orderRes.Order)
			return report, nil
		}
		report.addMessage("Brute force (mod r = %d) failed after %d steps.", orderRes.Order, bfRes.Steps)
	} else {
		report.addMessage("Skipping brute force mod r (order unknown or too large).")
	}

	if dlogBound <= a.limits.MaxBSGSBound {
		bsgsRes, err := BSGSDLog(c, g, q, dlogBound, a.limits)
		if err != nil {
			return nil, err
		}
		report.BSGS = bsgsRes
		if bsgsRes.Found {
			report.addMessage("BSGS succeeded: d = %d (within bound %d).", bsgsRes.K, dlogBound)
		} else {
			report.addMessage("BSGS did not find the discrete log within the bound.")
		}
	} else {
		report.addMessage("Skipping BSGS: dlog bound %d above ceiling %d.", dlogBound, a.limits.MaxBSGSBound)
	}

	return report, nil
}
