package transform

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/eldtechnologies/graphmsg/internal/identity"
)

// Signature schemes, named by message metadata.
const (
	AlgSHA256WithRSA = "SHA256withRSA" // RSA PKCS#1 v1.5 over SHA-256
	AlgEd25519       = "ed25519"
)

// SupportsSignature reports whether alg names a known signature scheme.
func SupportsSignature(alg string) bool {
	return alg == AlgSHA256WithRSA || alg == AlgEd25519
}

// Sign is the sender side: it signs data with the signer's private key.
func Sign(alg string, signer identity.KeyPair, data []byte) ([]byte, error) {
	switch alg {
	case AlgEd25519:
		if len(signer.SigningKey) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("signer has no Ed25519 key")
		}
		return ed25519.Sign(signer.SigningKey, data), nil
	case AlgSHA256WithRSA:
		if signer.RSAKey == nil {
			return nil, fmt.Errorf("signer has no RSA key")
		}
		digest := sha256.Sum256(data)
		return rsa.SignPKCS1v15(rand.Reader, signer.RSAKey, crypto.SHA256, digest[:])
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

// Verify checks signature over data against the signer's public keys.
// A mismatch, or a missing key, wraps ErrVerification.
func Verify(alg string, signer identity.PublicKeys, data, signature []byte) error {
	switch alg {
	case AlgEd25519:
		if len(signer.Signing) != ed25519.PublicKeySize {
			return fmt.Errorf("%w: signer has no Ed25519 key", ErrVerification)
		}
		if !ed25519.Verify(signer.Signing, data, signature) {
			return ErrVerification
		}
		return nil
	case AlgSHA256WithRSA:
		if signer.RSA == nil {
			return fmt.Errorf("%w: signer has no RSA key", ErrVerification)
		}
		digest := sha256.Sum256(data)
		if err := rsa.VerifyPKCS1v15(signer.RSA, crypto.SHA256, digest[:], signature); err != nil {
			return ErrVerification
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

// Digest returns the hex SHA3-256 of body. Senders use it as the
// original hash of a confirmation.
func Digest(body string) string {
	sum := sha3.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}
