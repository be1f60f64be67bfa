// Package message defines the closed set of message variants and the single
// Process function that applies each variant's transform.
package message

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrUnknownKind    = errors.New("unknown message kind")
)

// Kind tags a message variant.
type Kind string

const (
	KindCompressed   Kind = "compressed"
	KindLossy        Kind = "lossy"
	KindEncrypted    Kind = "encrypted"
	KindSigned       Kind = "signed"
	KindConfirmation Kind = "confirmation"
)

// Kinds lists every variant tag.
var Kinds = []Kind{KindCompressed, KindLossy, KindEncrypted, KindSigned, KindConfirmation}

// Header is shared by all variants. Metadata names the sub-algorithm.
type Header struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Metadata   string `json:"metadata"`
	Body       string `json:"body"`
}

// Envelope returns the header.
func (h Header) Envelope() Header {
	return h
}

// Message is implemented only by the variant types of this package.
type Message interface {
	Kind() Kind
	Envelope() Header
	isMessage()
}

// Compressed carries a body to be run-length encoded.
type Compressed struct {
	Header
}

// Lossy carries comma-separated samples reconstructed at LossLevel.
type Lossy struct {
	Header
	LossLevel uint `json:"loss_level"`
}

// Encrypted carries a base64 ciphertext for the receiver.
type Encrypted struct {
	Header
}

// Signed carries a body and the sender's signature over it.
type Signed struct {
	Header
	Signature []byte `json:"signature"`
}

// Confirmation is a Signed message that also vouches for an earlier one:
// OriginalSignature must verify over OriginalHash before the nested
// Signed payload is checked.
type Confirmation struct {
	Signed            Signed `json:"signed"`
	OriginalSignature []byte `json:"original_signature"`
	OriginalHash      string `json:"original_hash"`
}

func (Compressed) Kind() Kind   { return KindCompressed }
func (Lossy) Kind() Kind        { return KindLossy }
func (Encrypted) Kind() Kind    { return KindEncrypted }
func (Signed) Kind() Kind       { return KindSigned }
func (Confirmation) Kind() Kind { return KindConfirmation }

func (c Confirmation) Envelope() Header { return c.Signed.Header }

func (Compressed) isMessage()   {}
func (Lossy) isMessage()        {}
func (Encrypted) isMessage()    {}
func (Signed) isMessage()       {}
func (Confirmation) isMessage() {}

// NewCompressed builds a run-length message.
func NewCompressed(senderID, receiverID, metadata, body string) Compressed {
	return Compressed{Header{senderID, receiverID, metadata, body}}
}

// NewLossy builds an FFT lossy message.
func NewLossy(senderID, receiverID, metadata, body string, lossLevel uint) Lossy {
	return Lossy{Header: Header{senderID, receiverID, metadata, body}, LossLevel: lossLevel}
}

// NewEncrypted builds an encrypted message; body is base64 ciphertext.
func NewEncrypted(senderID, receiverID, metadata, body string) Encrypted {
	return Encrypted{Header{senderID, receiverID, metadata, body}}
}

// NewSigned builds a signed message. The signature is copied.
func NewSigned(senderID, receiverID, metadata, body string, signature []byte) Signed {
	return Signed{
		Header:    Header{senderID, receiverID, metadata, body},
		Signature: clone(signature),
	}
}

// NewConfirmation builds a confirmation. Byte slices are copied.
func NewConfirmation(senderID, receiverID, metadata, body string, signature, originalSignature []byte, originalHash string) Confirmation {
	return Confirmation{
		Signed:            NewSigned(senderID, receiverID, metadata, body, signature),
		OriginalSignature: clone(originalSignature),
		OriginalHash:      originalHash,
	}
}

// Validate reports every missing header field at once.
func Validate(m Message) error {
	if m == nil {
		return fmt.Errorf("%w: nil message", ErrInvalidMessage)
	}

	h := m.Envelope()
	var err error
	if h.SenderID == "" {
		err = multierr.Append(err, errors.New("sender id is required"))
	}
	if h.ReceiverID == "" {
		err = multierr.Append(err, errors.New("receiver id is required"))
	}
	if h.Metadata == "" {
		err = multierr.Append(err, errors.New("metadata is required"))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
