package message

import (
	"fmt"

	"github.com/eldtechnologies/graphmsg/internal/identity"
	"github.com/eldtechnologies/graphmsg/internal/transform"
)

// The builders below run the sender side of each transform. They are used
// when populating a graph with traffic; delivery never calls them.

// SealFor encrypts plaintext to the receiver and wraps it in an Encrypted message.
func SealFor(senderID, receiverID, alg string, receiver identity.PublicKeys, plaintext string) (Encrypted, error) {
	body, err := transform.Encrypt(alg, receiver, []byte(plaintext))
	if err != nil {
		return Encrypted{}, err
	}
	return NewEncrypted(senderID, receiverID, alg, body), nil
}

// SignBy signs body with the sender's keys and wraps it in a Signed message.
func SignBy(senderID, receiverID, alg string, sender identity.KeyPair, body string) (Signed, error) {
	sig, err := transform.Sign(alg, sender, []byte(body))
	if err != nil {
		return Signed{}, err
	}
	return NewSigned(senderID, receiverID, alg, body, sig), nil
}

// ConfirmBy builds a Confirmation of original: the original hash is
// transform.Digest(original), and both it and body are signed by sender.
func ConfirmBy(senderID, receiverID, alg string, sender identity.KeyPair, original, body string) (Confirmation, error) {
	hash := transform.Digest(original)
	originalSig, err := transform.Sign(alg, sender, []byte(hash))
	if err != nil {
		return Confirmation{}, fmt.Errorf("sign original: %w", err)
	}

	current, err := SignBy(senderID, receiverID, alg, sender, body)
	if err != nil {
		return Confirmation{}, fmt.Errorf("sign confirmation: %w", err)
	}

	return Confirmation{
		Signed:            current,
		OriginalSignature: originalSig,
		OriginalHash:      hash,
	}, nil
}

// LossyFor pads text to a power of two and wraps it as an FFT lossy message.
func LossyFor(senderID, receiverID, text string, lossLevel uint) Lossy {
	return NewLossy(senderID, receiverID, transform.AlgFFT, transform.LossyEncode(text), lossLevel)
}
