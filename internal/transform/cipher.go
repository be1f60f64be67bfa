package transform

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/eldtechnologies/graphmsg/internal/identity"
)

// Encryption schemes, named by message metadata.
const (
	AlgRSA    = "RSA"                     // RSA-OAEP with SHA-256
	AlgX25519 = "x25519-chacha20poly1305" // Seal/Open
)

// SupportsEncryption reports whether alg names a known encryption scheme.
func SupportsEncryption(alg string) bool {
	return alg == AlgRSA || alg == AlgX25519
}

// Encrypt is the sender side: it encrypts plaintext to the recipient and
// returns the base64 body of an encrypted message.
func Encrypt(alg string, recipient identity.PublicKeys, plaintext []byte) (string, error) {
	var (
		ciphertext []byte
		err        error
	)

	switch alg {
	case AlgRSA:
		if recipient.RSA == nil {
			return "", fmt.Errorf("recipient has no RSA key")
		}
		ciphertext, err = rsa.EncryptOAEP(sha256.New(), rand.Reader, recipient.RSA, plaintext, nil)
	case AlgX25519:
		ciphertext, err = Seal(plaintext, recipient.Signing)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	if err != nil {
		return "", fmt.Errorf("encrypt with %s: %w", alg, err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decodes a base64 body and decrypts it with the receiver's keys.
// Every failure other than an unknown scheme wraps ErrDecryption.
func Decrypt(alg string, receiver identity.KeyPair, body string) ([]byte, error) {
	if !SupportsEncryption(alg) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 ciphertext", ErrDecryption)
	}

	if alg == AlgX25519 {
		return Open(ciphertext, receiver.SigningKey)
	}

	if receiver.RSAKey == nil {
		return nil, fmt.Errorf("%w: receiver has no RSA key", ErrDecryption)
	}
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, receiver.RSAKey, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong key or corrupt ciphertext", ErrDecryption)
	}
	return plaintext, nil
}
