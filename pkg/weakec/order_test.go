package weakec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/maelab/maetool/pkg/curve"
	"github.com/maelab/maetool/pkg/safety"
)

func TestFindPointOrder(t *testing.T) {
	c := curve233()

	res, err := FindPointOrder(c, gen79(), 500, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	if !res.Found || res.Order != 79 {
		t.Fatalf("order of (0,1) = %+v, want 79", res)
	}
	if res.Steps != 78 {
		t.Errorf("steps = %d, want 78 additions for order 79", res.Steps)
	}

	res, err = FindPointOrder(c, gen3(), 500, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	if !res.Found || res.Order != 3 {
		t.Errorf("order of (138,37) = %+v, want 3", res)
	}

	res, err = FindPointOrder(c, gen237(), 500, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	if !res.Found || res.Order != 237 {
		t.Errorf("order of (5,36) = %+v, want 237", res)
	}
}

func TestFindPointOrder_Identity(t *testing.T) {
	res, err := FindPointOrder(curve233(), curve.Infinity(), 10, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	if !res.Found || res.Order != 1 || res.Steps != 0 {
		t.Errorf("identity: %+v, want order 1 at 0 steps", res)
	}
}

func TestFindPointOrder_Boundary(t *testing.T) {
	c := curve233()

	// order exactly at the bound is found
	res, err := FindPointOrder(c, gen79(), 79, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	if !res.Found || res.Order != 79 {
		t.Errorf("bound 79: %+v, want order 79 found", res)
	}

	// one below the order is not found
	res, err = FindPointOrder(c, gen79(), 78, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	if res.Found {
		t.Errorf("bound 78 should not find order 79: %+v", res)
	}
	if res.Steps != 78 {
		t.Errorf("exhausted search reported %d steps, want 78", res.Steps)
	}
}

func TestFindPointOrder_Idempotent(t *testing.T) {
	c := curve233()
	first, err := FindPointOrder(c, gen79(), 500, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	second, err := FindPointOrder(c, gen79(), 500, safety.DefaultLimits())
	if err != nil {
		t.Fatalf("FindPointOrder: %v", err)
	}
	if first.Order != second.Order || first.Steps != second.Steps {
		t.Errorf("repeated calls disagree: %+v vs %+v", first, second)
	}
}

func TestFindPointOrder_RefusesLargeField(t *testing.T) {
	p, _ := new(big.Int).SetString("18446744073709551629", 10) // 65 bits
	c := curve.NewCurve(p, big.NewInt(1), big.NewInt(1))
	_, err := FindPointOrder(c, gen79(), 10, safety.DefaultLimits())
	if !errors.Is(err, safety.ErrFieldTooLarge) {
		t.Fatalf("got %v, want ErrFieldTooLarge", err)
	}
}
