package message

import (
	"fmt"

	"github.com/eldtechnologies/graphmsg/internal/identity"
	"github.com/eldtechnologies/graphmsg/internal/transform"
)

// ConfirmationPrefix starts the result of a verified confirmation.
const ConfirmationPrefix = "Confirmation successful: "

// Process applies the transform bound to the variant of m. sender and
// receiver are the identities resolved from the header ids.
func Process(m Message, sender, receiver identity.Identity) (string, error) {
	switch m := m.(type) {
	case Compressed:
		return processCompressed(m)
	case Lossy:
		return processLossy(m)
	case Encrypted:
		return processEncrypted(m, receiver)
	case Signed:
		return verifySigned(m, sender)
	case Confirmation:
		return processConfirmation(m, sender)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownKind, m)
	}
}

func processCompressed(m Compressed) (string, error) {
	if m.Metadata != transform.AlgRunLength {
		return "", unsupported(m)
	}
	return transform.RunLengthEncode(m.Body), nil
}

func processLossy(m Lossy) (string, error) {
	if m.Metadata != transform.AlgFFT {
		return "", unsupported(m)
	}
	return transform.LossyDecode(m.Body, m.LossLevel)
}

func processEncrypted(m Encrypted, receiver identity.Identity) (string, error) {
	if !transform.SupportsEncryption(m.Metadata) {
		return "", unsupported(m)
	}
	plaintext, err := transform.Decrypt(m.Metadata, receiver.Keys, m.Body)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// currentStep is the second confirmation stage; tests replace it to observe
// whether it ran.
var currentStep = verifySigned

// verifySigned is the signature step shared by Signed and Confirmation.
func verifySigned(m Signed, sender identity.Identity) (string, error) {
	if !transform.SupportsSignature(m.Metadata) {
		return "", unsupported(m)
	}
	if err := transform.Verify(m.Metadata, sender.Keys.Public(), []byte(m.Body), m.Signature); err != nil {
		return "", err
	}
	return m.Body, nil
}

// processConfirmation checks the original signature first and stops there
// on failure; the nested Signed payload is only verified afterwards.
func processConfirmation(c Confirmation, sender identity.Identity) (string, error) {
	alg := c.Signed.Metadata
	if !transform.SupportsSignature(alg) {
		return "", unsupported(c)
	}

	if err := verifyOriginal(c, sender); err != nil {
		return "", fmt.Errorf("%w: %v", transform.ErrOriginalVerificationFailed, err)
	}

	body, err := currentStep(c.Signed, sender)
	if err != nil {
		return "", fmt.Errorf("%w: %v", transform.ErrCurrentVerificationFailed, err)
	}
	return ConfirmationPrefix + body, nil
}

func verifyOriginal(c Confirmation, sender identity.Identity) error {
	return transform.Verify(c.Signed.Metadata, sender.Keys.Public(), []byte(c.OriginalHash), c.OriginalSignature)
}

func unsupported(m Message) error {
	return fmt.Errorf("%w: %s message does not implement %q", transform.ErrUnsupportedAlgorithm, m.Kind(), m.Envelope().Metadata)
}
