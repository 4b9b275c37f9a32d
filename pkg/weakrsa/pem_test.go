package weakrsa

import (
	"math/big"
	"strings"
	"testing"
)

func TestEncodeDecodePublicPEM(t *testing.T) {
	key, err := GenerateWeak(16, 64)
	if err != nil {
		t.Fatalf("GenerateWeak: %v", err)
	}

	pemText, err := key.EncodePublicPEM()
	if err != nil {
		t.Fatalf("EncodePublicPEM: %v", err)
	}
	if !strings.Contains(pemText, "BEGIN PUBLIC KEY") {
		t.Errorf("unexpected PEM header:\n%s", pemText)
	}

	pub, err := DecodePublicPEM(pemText)
	if err != nil {
		t.Fatalf("DecodePublicPEM: %v", err)
	}
	if pub.N.Cmp(key.N) != 0 {
		t.Errorf("modulus round trip: got %s, want %s", pub.N, key.N)
	}
	if int64(pub.E) != key.E.Int64() {
		t.Errorf("exponent round trip: got %d, want %s", pub.E, key.E)
	}
}

func TestEncodePrivatePEM(t *testing.T) {
	key, err := GenerateStrong(StrongConfig{ModulusBits: 64, MinGapBits: 8})
	if err != nil {
		t.Fatalf("GenerateStrong: %v", err)
	}
	pemText, err := key.EncodePrivatePEM()
	if err != nil {
		t.Fatalf("EncodePrivatePEM: %v", err)
	}
	if !strings.Contains(pemText, "BEGIN PRIVATE KEY") {
		t.Errorf("unexpected PEM header:\n%s", pemText)
	}
}

func TestDecodePublicPEM_Garbage(t *testing.T) {
	if _, err := DecodePublicPEM("not a pem"); err == nil {
		t.Error("garbage input should fail")
	}
}

func TestEncodePublicPEM_RejectsHugeExponent(t *testing.T) {
	key, err := GenerateWeak(16, 64)
	if err != nil {
		t.Fatalf("GenerateWeak: %v", err)
	}
	key.E = new(big.Int).Lsh(big.NewInt(1), 40)

	if _, err := key.EncodePublicPEM(); err == nil {
		t.Error("oversized exponent should be rejected, not truncated")
	}
	if _, err := key.EncodePrivatePEM(); err == nil {
		t.Error("oversized exponent should be rejected, not truncated")
	}
}
