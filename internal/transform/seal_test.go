package transform

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
)

func generateTestSigningKey(t *testing.T) (ed25519.PrivateKey, ed25519.PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return priv, pub
}

func TestSealOpenRoundTrip(t *testing.T) {
	bobPriv, bobPub := generateTestSigningKey(t)

	wire, err := Seal([]byte("Hello, Bob!"), bobPub)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := Open(wire, bobPriv)
	if err != nil {
		t.Fatal(err)
	}
	if string(pt) != "Hello, Bob!" {
		t.Fatalf("expected 'Hello, Bob!', got %q", pt)
	}
}

func TestSealWireFormatStructure(t *testing.T) {
	_, pub := generateTestSigningKey(t)

	wire, err := Seal([]byte("test"), pub)
	if err != nil {
		t.Fatal(err)
	}
	// 32 (eph pk) + 12 (nonce) + 4 (plaintext) + 16 (tag) = 64
	if len(wire) != 64 {
		t.Fatalf("expected wire length 64, got %d", len(wire))
	}
}

func TestSealDifferentCiphertexts(t *testing.T) {
	priv, pub := generateTestSigningKey(t)

	w1, _ := Seal([]byte("same"), pub)
	w2, _ := Seal([]byte("same"), pub)
	if string(w1) == string(w2) {
		t.Fatal("ciphertexts should differ for same plaintext")
	}

	p1, _ := Open(w1, priv)
	p2, _ := Open(w2, priv)
	if string(p1) != "same" || string(p2) != "same" {
		t.Fatal("both should decrypt to 'same'")
	}
}

func TestOpenWrongKeyFails(t *testing.T) {
	_, pub := generateTestSigningKey(t)
	wire, _ := Seal([]byte("secret"), pub)

	wrongPriv, _ := generateTestSigningKey(t)
	_, err := Open(wire, wrongPriv)
	if !errors.Is(err, ErrDecryption) {
		t.Fatalf("expected ErrDecryption, got %v", err)
	}
}

func TestOpenTamperedCiphertext(t *testing.T) {
	priv, pub := generateTestSigningKey(t)

	wire, _ := Seal([]byte("secret"), pub)
	wire[len(wire)-1] ^= 0xFF

	if _, err := Open(wire, priv); !errors.Is(err, ErrDecryption) {
		t.Fatalf("expected ErrDecryption with tampered ciphertext, got %v", err)
	}
}

func TestOpenTruncatedCiphertext(t *testing.T) {
	priv, _ := generateTestSigningKey(t)

	if _, err := Open(make([]byte, 30), priv); !errors.Is(err, ErrDecryption) {
		t.Fatalf("expected ErrDecryption with truncated ciphertext, got %v", err)
	}
}

func TestOpenWithoutKey(t *testing.T) {
	if _, err := Open(make([]byte, 80), nil); !errors.Is(err, ErrDecryption) {
		t.Fatalf("expected ErrDecryption without key, got %v", err)
	}
}

func TestSealEmptyPlaintext(t *testing.T) {
	priv, pub := generateTestSigningKey(t)

	wire, err := Seal(nil, pub)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := Open(wire, priv)
	if err != nil {
		t.Fatal(err)
	}
	if len(pt) != 0 {
		t.Fatalf("expected empty plaintext, got %q", pt)
	}
}

func TestSealInvalidPublicKeyLength(t *testing.T) {
	if _, err := Seal([]byte("test"), make([]byte, 16)); err == nil {
		t.Fatal("expected error with wrong-length key")
	}
}

func TestSealBidirectional(t *testing.T) {
	alicePriv, alicePub := generateTestSigningKey(t)
	bobPriv, bobPub := generateTestSigningKey(t)

	w1, _ := Seal([]byte("Hi Bob"), bobPub)
	if pt, err := Open(w1, bobPriv); err != nil || string(pt) != "Hi Bob" {
		t.Fatal("Alice->Bob failed")
	}

	w2, _ := Seal([]byte("Hi Alice"), alicePub)
	if pt, err := Open(w2, alicePriv); err != nil || string(pt) != "Hi Alice" {
		t.Fatal("Bob->Alice failed")
	}
}
