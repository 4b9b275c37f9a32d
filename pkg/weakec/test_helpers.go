package weakec

import (
	"math/big"

	"github.com/maelab/maetool/pkg/curve"
)

// curve233 is y² = x³ + x + 1 over F_233, group order 237 = 3 * 79.
func curve233() *curve.Curve {
	return curve.NewCurve(big.NewInt(233), big.NewInt(1), big.NewInt(1))
}

// gen79 is a generator of the order-79 subgroup on curve233.
func gen79() curve.Point {
	return curve.NewPoint(big.NewInt(0), big.NewInt(1))
}

// gen3 has order 3 on curve233.
func gen3() curve.Point {
	return curve.NewPoint(big.NewInt(138), big.NewInt(37))
}

// gen237 has the full group order 237 on curve233.
func gen237() curve.Point {
	return curve.NewPoint(big.NewInt(5), big.NewInt(36))
}
