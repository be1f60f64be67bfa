package transform

import (
	"fmt"
	"strings"
)

// AlgRunLength is the metadata tag of the run-length scheme.
const AlgRunLength = "run-length"

// maxRun is the largest count a single pair can carry: counts are one decimal digit.
const maxRun = 9

// RunLengthEncode emits a (code point, digit) pair for every run of identical
// code points. Runs longer than nine are split into several pairs, so
// "aaaaaaaaaaaa" encodes to "a9a3".
func RunLengthEncode(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		for n := j - i; n > 0; n -= maxRun {
			b.WriteRune(runes[i])
			b.WriteByte(byte('0' + min(n, maxRun)))
		}
		i = j
	}
	return b.String()
}

// RunLengthDecode reverses RunLengthEncode.
func RunLengthDecode(encoded string) (string, error) {
	runes := []rune(encoded)
	if len(runes)%2 != 0 {
		return "", fmt.Errorf("%w: run-length payload has odd length %d", ErrParse, len(runes))
	}

	var b strings.Builder
	for i := 0; i < len(runes); i += 2 {
		count := runes[i+1]
		if count < '1' || count > '9' {
			return "", fmt.Errorf("%w: invalid run count %q at position %d", ErrParse, count, i+1)
		}
		for n := 0; n < int(count-'0'); n++ {
			b.WriteRune(runes[i])
		}
	}
	return b.String(), nil
}
