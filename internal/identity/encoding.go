package identity

import (
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

var (
	ErrInvalidSigningKey = errors.New("invalid Ed25519 key")
	ErrInvalidRSAKey     = errors.New("invalid RSA key")
)

// EncodeSigningSeed returns the base64 seed of an Ed25519 private key.
func EncodeSigningSeed(key ed25519.PrivateKey) string {
	return base64.StdEncoding.EncodeToString(key.Seed())
}

// EncodeSigningPublic returns the base64 form of an Ed25519 public key.
func EncodeSigningPublic(key ed25519.PublicKey) string {
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeSigningSeed accepts either a base64 seed (32 bytes) or a full
// base64 private key (64 bytes).
func DecodeSigningSeed(b64 string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 encoding", ErrInvalidSigningKey)
	}

	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("%w: must be %d or %d bytes, got %d", ErrInvalidSigningKey, ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

// EncodeRSAPrivateKeyPEM encodes an RSA private key as a PKCS#8 PEM block.
func EncodeRSAPrivateKeyPEM(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// EncodeRSAPublicKeyPEM encodes an RSA public key as a PKIX PEM block.
func EncodeRSAPublicKeyPEM(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// DecodeRSAPrivateKeyPEM parses a PKCS#8 or PKCS#1 PEM-encoded RSA private key.
func DecodeRSAPrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidRSAKey)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRSAKey, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: PEM block holds a %T", ErrInvalidRSAKey, parsed)
	}
	return key, nil
}
