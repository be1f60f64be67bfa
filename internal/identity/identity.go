// Package identity defines graph members and their asymmetric key material.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/google/uuid"
)

// DefaultRSABits is the modulus size used when none is configured.
const DefaultRSABits = 2048

// KeyPair holds a member's keys. The Ed25519 key signs and, converted to
// X25519, receives sealed messages; the RSA key serves the RSA schemes.
type KeyPair struct {
	SigningKey ed25519.PrivateKey
	RSAKey     *rsa.PrivateKey
}

// GenerateKeyPair creates a fresh Ed25519 key and an RSA key of rsaBits.
func GenerateKeyPair(rsaBits int) (KeyPair, error) {
	if rsaBits <= 0 {
		rsaBits = DefaultRSABits
	}

	_, signingKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate ed25519 key: %w", err)
	}

	rsaKey, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate rsa key: %w", err)
	}

	return KeyPair{SigningKey: signingKey, RSAKey: rsaKey}, nil
}

// SigningPublic returns the Ed25519 public key, or nil if there is no signing key.
func (k KeyPair) SigningPublic() ed25519.PublicKey {
	if len(k.SigningKey) != ed25519.PrivateKeySize {
		return nil
	}
	return k.SigningKey.Public().(ed25519.PublicKey)
}

// RSAPublic returns the RSA public key, or nil if there is no RSA key.
func (k KeyPair) RSAPublic() *rsa.PublicKey {
	if k.RSAKey == nil {
		return nil
	}
	return &k.RSAKey.PublicKey
}

// PublicKeys is the part of a KeyPair that other members may hold.
type PublicKeys struct {
	Signing ed25519.PublicKey
	RSA     *rsa.PublicKey
}

// Public returns the public halves of the key pair.
func (k KeyPair) Public() PublicKeys {
	return PublicKeys{Signing: k.SigningPublic(), RSA: k.RSAPublic()}
}

// Identity is a graph member: a stable id, a display name and a key pair.
type Identity struct {
	ID          string
	DisplayName string
	Keys        KeyPair
}

// New builds an Identity. An empty id is replaced by a fresh UUIDv7.
func New(id, displayName string, keys KeyPair) Identity {
	if id == "" {
		id = NewUUIDv7().String()
	}
	return Identity{ID: id, DisplayName: displayName, Keys: keys}
}

// Generate builds an Identity with a freshly generated key pair.
func Generate(id, displayName string, rsaBits int) (Identity, error) {
	keys, err := GenerateKeyPair(rsaBits)
	if err != nil {
		return Identity{}, err
	}
	return New(id, displayName, keys), nil
}

// String omits key material.
func (i Identity) String() string {
	return fmt.Sprintf("Identity{id=%q, name=%q}", i.ID, i.DisplayName)
}

// NewUUIDv7 generates a time-ordered UUID v7.
func NewUUIDv7() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
