// Package weakrsa synthesizes RSA key material with a controlled
// vulnerability to Fermat factorization, and implements the attack itself.
//
// The weak generator forces p and q close together so the a²-n = b² search
// terminates almost immediately; the strong generator enforces a minimum
// prime separation that pushes the same search past any realistic budget.
package weakrsa

import (
	"math/big"

	"github.com/pkg/errors"
)

// DefaultExponent is the public exponent used unless overridden.
const DefaultExponent = 65537

// Key is a full RSA key tuple. Phi and the CRT parameters (DP, DQ, QInv)
// are populated by the strong generator; the weak generator fills the
// base tuple only.
type Key struct {
	P *big.Int
	Q *big.Int
	N *big.Int
	E *big.Int
	D *big.Int

	Phi  *big.Int
	DP   *big.Int
	DQ   *big.Int
	QInv *big.Int
}

// Gap returns |p - q|.
func (k *Key) Gap() *big.Int {
	g := new(big.Int).Sub(k.P, k.Q)
	return g.Abs(g)
}

// Validate checks the RSA invariants: p != q, p*q = n, and e*d = 1 mod phi.
// CRT parameters are checked when present.
func (k *Key) Validate() error {
	if k.P == nil || k.Q == nil || k.N == nil || k.E == nil || k.D == nil {
		return errors.New("incomplete key")
	}
	if k.P.Cmp(k.Q) == 0 {
		return errors.New("p equals q")
	}
	if n := new(big.Int).Mul(k.P, k.Q); n.Cmp(k.N) != 0 {
		return errors.New("p*q does not equal n")
	}

	one := big.NewInt(1)
	pMinus1 := new(big.Int).Sub(k.P, one)
	qMinus1 := new(big.Int).Sub(k.Q, one)
	phi := new(big.Int).Mul(pMinus1, qMinus1)

	ed := new(big.Int).Mul(k.E, k.D)
	ed.Mod(ed, phi)
	if ed.Cmp(one) != 0 {
		return errors.New("e*d != 1 mod phi")
	}

	if k.DP != nil {
		dp := new(big.Int).Mod(k.D, pMinus1)
		if dp.Cmp(k.DP) != 0 {
			return errors.New("dP != d mod (p-1)")
		}
	}
	if k.DQ != nil {
		dq := new(big.Int).Mod(k.D, qMinus1)
		if dq.Cmp(k.DQ) != 0 {
			return errors.New("dQ != d mod (q-1)")
		}
	}
	if k.QInv != nil {
		check := new(big.Int).Mul(k.Q, k.QInv)
		check.Mod(check, k.P)
		if check.Cmp(one) != 0 {
			return errors.New("qInv != q^-1 mod p")
		}
	}
	return nil
}
