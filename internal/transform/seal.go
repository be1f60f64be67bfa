package transform

import (
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

const (
	sealInfo        = "graphmsg-seal-v1"
	ephemeralPKSize = 32
	sealNonceSize   = chacha20poly1305.NonceSize
	sealKeySize     = chacha20poly1305.KeySize
	sealTagSize     = chacha20poly1305.Overhead
	minSealedLen    = ephemeralPKSize + sealNonceSize + sealTagSize // 60
)

// Seal encrypts plaintext to the holder of an Ed25519 key. The key is
// converted to X25519, combined with an ephemeral key, and the derived key
// drives ChaCha20-Poly1305.
// Wire format: ephemeral_pk[32] || nonce[12] || ciphertext+tag.
func Seal(plaintext []byte, recipient ed25519.PublicKey) ([]byte, error) {
	if len(recipient) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid recipient key length: %d, expected %d", len(recipient), ed25519.PublicKeySize)
	}

	recipientX, err := edPublicToX25519(recipient)
	if err != nil {
		return nil, err
	}

	var ephPriv [curve25519.ScalarSize]byte
	if _, err := rand.Read(ephPriv[:]); err != nil {
		return nil, err
	}
	ephPub, err := curve25519.X25519(ephPriv[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}

	shared, err := curve25519.X25519(ephPriv[:], recipientX)
	if err != nil {
		return nil, err
	}

	aead, err := sealAEAD(shared, ephPub, recipientX)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, sealNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	wire := make([]byte, 0, ephemeralPKSize+sealNonceSize+len(plaintext)+sealTagSize)
	wire = append(wire, ephPub...)
	wire = append(wire, nonce...)
	return aead.Seal(wire, nonce, plaintext, nil), nil
}

// Open decrypts a Seal payload with the recipient's Ed25519 private key.
func Open(wire []byte, key ed25519.PrivateKey) ([]byte, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: receiver has no Ed25519 key", ErrDecryption)
	}
	if len(wire) < minSealedLen {
		return nil, fmt.Errorf("%w: ciphertext too short: %d bytes, minimum %d", ErrDecryption, len(wire), minSealedLen)
	}

	ephPub := wire[:ephemeralPKSize]
	nonce := wire[ephemeralPKSize : ephemeralPKSize+sealNonceSize]
	ciphertext := wire[ephemeralPKSize+sealNonceSize:]

	ownPriv := edSeedToX25519(key.Seed())
	ownPub, err := curve25519.X25519(ownPriv, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: derive X25519 public key: %v", ErrDecryption, err)
	}

	shared, err := curve25519.X25519(ownPriv, ephPub)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ephemeral key", ErrDecryption)
	}

	aead, err := sealAEAD(shared, ephPub, ownPub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong key or tampered ciphertext", ErrDecryption)
	}
	return plaintext, nil
}

// sealAEAD derives the message key with HKDF-SHA256 salted by both public keys.
func sealAEAD(shared, ephPub, recipientX []byte) (cipher.AEAD, error) {
	salt := make([]byte, 0, len(ephPub)+len(recipientX))
	salt = append(salt, ephPub...)
	salt = append(salt, recipientX...)

	key := make([]byte, sealKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, salt, []byte(sealInfo)), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}

func edPublicToX25519(pub ed25519.PublicKey) ([]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, fmt.Errorf("invalid Ed25519 public key: %w", err)
	}
	return p.BytesMontgomery(), nil
}

// edSeedToX25519 clamps the SHA-512 of the seed, as Ed25519 does internally.
func edSeedToX25519(seed []byte) []byte {
	h := sha512.Sum512(seed)
	h[0] &= 248
	h[31] &= 127
	h[31] |= 64
	return h[:32]
}
