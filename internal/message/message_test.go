package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	msgs := []Message{
		NewCompressed("1", "2", "run-length", "x"),
		NewLossy("1", "2", "fft", "1,2", 0),
		NewEncrypted("1", "2", "RSA", ""),
		NewSigned("1", "2", "ed25519", "x", nil),
		NewConfirmation("1", "2", "ed25519", "x", nil, nil, ""),
	}
	require.Len(t, msgs, len(Kinds))
	for i, m := range msgs {
		assert.Equal(t, Kinds[i], m.Kind())
		assert.Equal(t, "1", m.Envelope().SenderID)
		assert.Equal(t, "2", m.Envelope().ReceiverID)
	}
}

func TestConstructorsCopySignatures(t *testing.T) {
	sig := []byte{1, 2, 3}
	orig := []byte{4, 5, 6}
	c := NewConfirmation("1", "2", "ed25519", "ok", sig, orig, "h")

	sig[0], orig[0] = 9, 9
	assert.Equal(t, []byte{1, 2, 3}, c.Signed.Signature)
	assert.Equal(t, []byte{4, 5, 6}, c.OriginalSignature)
	assert.Equal(t, "ok", c.Envelope().Body)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(NewCompressed("1", "2", "run-length", "")))

	err := Validate(NewCompressed("", "", "", "body"))
	require.ErrorIs(t, err, ErrInvalidMessage)
	assert.Contains(t, err.Error(), "sender id is required")
	assert.Contains(t, err.Error(), "receiver id is required")
	assert.Contains(t, err.Error(), "metadata is required")

	err = Validate(NewConfirmation("1", "", "ed25519", "x", nil, nil, ""))
	require.ErrorIs(t, err, ErrInvalidMessage)
	assert.NotContains(t, err.Error(), "sender")

	assert.ErrorIs(t, Validate(nil), ErrInvalidMessage)
}
