package safety

import (
	"errors"
	"math/big"
	"testing"
)

func TestCheckField(t *testing.T) {
	limits := DefaultLimits()

	// 2^64+13 is prime and 65 bits wide.
	tooBig, _ := new(big.Int).SetString("18446744073709551629", 10)
	if err := limits.CheckField(tooBig); !errors.Is(err, ErrFieldTooLarge) {
		t.Fatalf("65-bit prime: got %v, want ErrFieldTooLarge", err)
	}

	max64 := new(big.Int).SetUint64(^uint64(0))
	if err := limits.CheckField(max64); err != nil {
		t.Fatalf("64-bit value rejected: %v", err)
	}

	if err := limits.CheckField(big.NewInt(233)); err != nil {
		t.Fatalf("small prime rejected: %v", err)
	}
}

func TestCheckBounds(t *testing.T) {
	limits := DefaultLimits()

	if err := limits.CheckBSGSBound(200000); err != nil {
		t.Errorf("bound at ceiling rejected: %v", err)
	}
	if err := limits.CheckBSGSBound(200001); !errors.Is(err, ErrBoundTooLarge) {
		t.Errorf("bound over ceiling: got %v, want ErrBoundTooLarge", err)
	}

	if err := limits.CheckBruteForceBound(100000); err != nil {
		t.Errorf("brute-force bound at ceiling rejected: %v", err)
	}
	if err := limits.CheckBruteForceBound(100001); !errors.Is(err, ErrBoundTooLarge) {
		t.Errorf("brute-force bound over ceiling: got %v, want ErrBoundTooLarge", err)
	}
}

func TestInteractiveLimits(t *testing.T) {
	limits := InteractiveLimits()
	if err := limits.CheckBruteForceBound(10001); !errors.Is(err, ErrBoundTooLarge) {
		t.Errorf("interactive brute-force ceiling not enforced: %v", err)
	}
	if err := limits.CheckBruteForceBound(10000); err != nil {
		t.Errorf("bound at interactive ceiling rejected: %v", err)
	}
}
