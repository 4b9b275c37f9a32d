package weakrsa

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"math"
	"math/big"

	"github.com/pkg/errors"
)

// stdPublic converts the public half into a crypto/rsa key, rejecting
// exponents the standard marshalers cannot represent.
func (k *Key) stdPublic() (*rsa.PublicKey, error) {
	if !k.E.IsInt64() || k.E.Int64() > math.MaxInt32 {
		return nil, errors.New("public exponent too large for serialization")
	}
	return &rsa.PublicKey{N: k.N, E: int(k.E.Int64())}, nil
}

// toStdKey converts a Key into a crypto/rsa private key with precomputed
// CRT values, so the standard marshalers can serialize it.
func (k *Key) toStdKey() (*rsa.PrivateKey, error) {
	pub, err := k.stdPublic()
	if err != nil {
		return nil, err
	}
	priv := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         k.D,
		Primes:    []*big.Int{k.P, k.Q},
	}
	priv.Precompute()
	return priv, nil
}

// EncodePublicPEM renders the public half as a SubjectPublicKeyInfo PEM
// block, the format the upload form of the lab dashboard consumes.
func (k *Key) EncodePublicPEM() (string, error) {
	pub, err := k.stdPublic()
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", errors.Wrap(err, "marshaling public key")
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// DecodePublicPEM parses a SubjectPublicKeyInfo PEM block and returns the
// RSA public key it carries. Non-RSA keys are rejected.
func DecodePublicPEM(pemText string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "parsing public key")
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Errorf("not an RSA public key: %T", pub)
	}
	return rsaPub, nil
}

// EncodePrivatePEM renders the full key as an unencrypted PKCS#8 PEM block.
func (k *Key) EncodePrivatePEM() (string, error) {
	priv, err := k.toStdKey()
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", errors.Wrap(err, "marshaling private key")
	}
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}
