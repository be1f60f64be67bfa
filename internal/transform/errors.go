// Package transform holds the pure routines applied to message bodies:
// run-length coding, FFT-based lossy reconstruction, decryption and
// signature verification.
//
// Every failure wraps one of the sentinel errors below so callers can
// branch with errors.Is. No routine panics on malformed input.
package transform

import "errors"

var (
	ErrUnsupportedAlgorithm       = errors.New("unsupported algorithm")
	ErrInvalidLength              = errors.New("invalid length")
	ErrParse                      = errors.New("parse error")
	ErrDecryption                 = errors.New("decryption failed")
	ErrVerification               = errors.New("signature verification failed")
	ErrOriginalVerificationFailed = errors.New("original signature verification failed")
	ErrCurrentVerificationFailed  = errors.New("current signature verification failed")
	ErrDecode                     = errors.New("decode error")
)

var kinds = []struct {
	err  error
	name string
}{
	// chain stages first, they are more specific than a plain mismatch
	{ErrOriginalVerificationFailed, "OriginalVerificationFailed"},
	{ErrCurrentVerificationFailed, "CurrentVerificationFailed"},
	{ErrVerification, "VerificationError"},
	{ErrUnsupportedAlgorithm, "UnsupportedAlgorithm"},
	{ErrInvalidLength, "InvalidLength"},
	{ErrParse, "ParseError"},
	{ErrDecryption, "DecryptionError"},
	{ErrDecode, "DecodeError"},
}

// Kind returns the taxonomy name of err, or "" if err is not a transform error.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
