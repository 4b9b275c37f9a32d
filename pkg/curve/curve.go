// Package curve implements short-Weierstrass elliptic-curve arithmetic over
// a prime field, in affine coordinates with an explicit point at infinity.
//
// The discrete-log solvers depend on the group law being total and exact and
// on point equality being structural; everything here operates on math/big
// integers with no tolerance anywhere.
package curve

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// ErrNoPoint is returned when a sampled x coordinate has no matching y on
// the curve (the right-hand side is a quadratic non-residue).
var ErrNoPoint = errors.New("x coordinate is not on the curve")

// Curve is the immutable triple (p, a, b) defining y² = x³ + ax + b mod p.
// p must be an odd prime; a nonzero discriminant is the caller's
// responsibility.
type Curve struct {
	P *big.Int
	A *big.Int
	B *big.Int
}

// NewCurve builds a curve from the field prime and equation constants.
func NewCurve(p, a, b *big.Int) *Curve {
	return &Curve{
		P: new(big.Int).Set(p),
		A: new(big.Int).Set(a),
		B: new(big.Int).Set(b),
	}
}

// Secp256k1 returns the secp256k1 curve from the decred parameters along
// with its generator. The toolkit refuses to search groups this large; the
// constructor exists so the safety gate can be demonstrated against a real
// curve rather than a synthetic one.
func Secp256k1() (*Curve, Point) {
	params := secp256k1.S256().Params()
	c := NewCurve(params.P, big.NewInt(0), params.B)
	return c, NewPoint(params.Gx, params.Gy)
}

// Point is an affine curve point or the group identity. The zero value is
// the identity.
type Point struct {
	X *big.Int
	Y *big.Int

	inf bool
}

// Infinity returns the group identity.
func Infinity() Point {
	return Point{inf: true}
}

// NewPoint builds a finite point from its coordinates.
func NewPoint(x, y *big.Int) Point {
	return Point{
		X: new(big.Int).Set(x),
		Y: new(big.Int).Set(y),
	}
}

// IsInfinity reports whether the point is the group identity.
func (p Point) IsInfinity() bool {
	return p.inf || p.X == nil
}

// Equal reports structural equality: both identity, or equal coordinates.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// RHS evaluates x³ + ax + b mod p.
func (c *Curve) RHS(x *big.Int) *big.Int {
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, new(big.Int).Mul(c.A, x))
	rhs.Add(rhs, c.B)
	rhs.Mod(rhs, c.P)
	return rhs
}

// IsOnCurve reports whether p satisfies the curve equation. The identity is
// considered on the curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	if p.X.Sign() < 0 || p.X.Cmp(c.P) >= 0 || p.Y.Sign() < 0 || p.Y.Cmp(c.P) >= 0 {
		return false
	}
	y2 := new(big.Int).Mul(p.Y, p.Y)
	y2.Mod(y2, c.P)
	return y2.Cmp(c.RHS(p.X)) == 0
}

// Neg returns -p, the reflection across the x axis.
func (c *Curve) Neg(p Point) Point {
	if p.IsInfinity() {
		return Infinity()
	}
	ny := new(big.Int).Neg(p.Y)
	ny.Mod(ny, c.P)
	return Point{X: new(big.Int).Set(p.X), Y: ny}
}

// Add returns p + q under the group law, handling the identity and the
// doubling case.
func (c *Curve) Add(p, q Point) Point {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}

	if p.X.Cmp(q.X) == 0 {
		ySum := new(big.Int).Add(p.Y, q.Y)
		ySum.Mod(ySum, c.P)
		if ySum.Sign() == 0 {
			// vertical line: q = -p
			return Infinity()
		}
		return c.double(p)
	}

	// chord slope (y2-y1)/(x2-x1)
	num := new(big.Int).Sub(q.Y, p.Y)
	den := new(big.Int).Sub(q.X, p.X)
	den.ModInverse(den, c.P)
	lam := num.Mul(num, den)
	lam.Mod(lam, c.P)

	return c.apply(lam, p, q)
}

// Double returns 2p.
func (c *Curve) Double(p Point) Point {
	if p.IsInfinity() {
		return Infinity()
	}
	if p.Y.Sign() == 0 {
		return Infinity()
	}
	return c.double(p)
}

func (c *Curve) double(p Point) Point {
	// tangent slope (3x²+a)/(2y)
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.A)
	den := new(big.Int).Lsh(p.Y, 1)
	den.ModInverse(den, c.P)
	lam := num.Mul(num, den)
	lam.Mod(lam, c.P)

	return c.apply(lam, p, p)
}

// apply finishes an addition given the line slope through p and q.
func (c *Curve) apply(lam *big.Int, p, q Point) Point {
	x3 := new(big.Int).Mul(lam, lam)
	x3.Sub(x3, p.X)
	x3.Sub(x3, q.X)
	x3.Mod(x3, c.P)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, lam)
	y3.Sub(y3, p.Y)
	y3.Mod(y3, c.P)

	return Point{X: x3, Y: y3}
}

// ScalarMult returns k*p via double-and-add. Negative k multiplies by |k|
// and negates the result.
func (c *Curve) ScalarMult(p Point, k *big.Int) Point {
	if p.IsInfinity() || k.Sign() == 0 {
		return Infinity()
	}
	if k.Sign() < 0 {
		return c.Neg(c.ScalarMult(p, new(big.Int).Neg(k)))
	}

	result := Infinity()
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = c.Add(result, addend)
		}
		addend = c.Add(addend, addend)
	}
	return result
}

// RandomPoint samples a uniform x coordinate and solves for y by a modular
// square root, flipping the sign at random. It fails with ErrNoPoint when
// the right-hand side has no root; callers resample.
func (c *Curve) RandomPoint(rnd io.Reader) (Point, error) {
	pMinus1 := new(big.Int).Sub(c.P, big.NewInt(1))
	x, err := rand.Int(rnd, pMinus1)
	if err != nil {
		return Infinity(), errors.Wrap(err, "sampling x coordinate")
	}
	x.Add(x, big.NewInt(1))

	y := new(big.Int).ModSqrt(c.RHS(x), c.P)
	if y == nil {
		return Infinity(), ErrNoPoint
	}

	var sign [1]byte
	if _, err := rnd.Read(sign[:]); err != nil {
		return Infinity(), errors.Wrap(err, "sampling y sign")
	}
	if sign[0]&1 == 1 {
		y.Sub(c.P, y)
		y.Mod(y, c.P)
	}
	return Point{X: x, Y: y}, nil
}
