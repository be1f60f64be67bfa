package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// AlgFFT is the metadata tag of the lossy frequency-domain scheme.
const AlgFFT = "fft"

// Threshold is the first spectrum index dropped at lossLevel:
// floor(n / (lossLevel+1)). Level 0 keeps every coefficient.
func Threshold(n int, lossLevel uint) int {
	if n <= 0 || lossLevel >= uint(n) {
		return 0
	}
	return n / int(lossLevel+1)
}

// Lossy returns a copy of spectrum with every coefficient at or above
// Threshold(len(spectrum), lossLevel) set to zero.
func Lossy(spectrum []complex128, lossLevel uint) []complex128 {
	out := make([]complex128, len(spectrum))
	copy(out, spectrum[:Threshold(len(spectrum), lossLevel)])
	return out
}

// LossyRoundTrip runs forward FFT, thresholding and inverse FFT over samples.
func LossyRoundTrip(samples []float64, lossLevel uint) ([]complex128, error) {
	x := make([]complex128, len(samples))
	for i, s := range samples {
		x[i] = complex(s, 0)
	}

	spectrum, err := FFT(x)
	if err != nil {
		return nil, err
	}
	return InverseFFT(Lossy(spectrum, lossLevel))
}

// LossyDecode parses a comma-separated sample body, reconstructs it at
// lossLevel and reads each rounded real part as a code point.
func LossyDecode(body string, lossLevel uint) (string, error) {
	samples, err := ParseSamples(body)
	if err != nil {
		return "", err
	}

	signal, err := LossyRoundTrip(samples, lossLevel)
	if err != nil {
		return "", err
	}
	return textFromSignal(signal)
}

// ParseSamples splits body on commas and parses each token as a float.
// An empty body yields no samples.
func ParseSamples(body string) ([]float64, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	tokens := strings.Split(body, ",")
	samples := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q is not a number", ErrParse, i, tok)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: token %d %q is not finite", ErrParse, i, tok)
		}
		samples[i] = v
	}
	return samples, nil
}

// FormatSamples is the inverse of ParseSamples.
func FormatSamples(samples []float64) string {
	parts := make([]string, len(samples))
	for i, s := range samples {
		parts[i] = strconv.FormatFloat(s, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// SamplesFromText returns the code points of s as samples.
func SamplesFromText(s string) []float64 {
	samples := make([]float64, 0, len(s))
	for _, r := range s {
		samples = append(samples, float64(r))
	}
	return samples
}

// PadSamples extends samples to the next power of two with fill.
func PadSamples(samples []float64, fill rune) []float64 {
	if len(samples) == 0 {
		return nil
	}
	n := 1
	for n < len(samples) {
		n <<= 1
	}
	out := make([]float64, n)
	copy(out, samples)
	for i := len(samples); i < n; i++ {
		out[i] = float64(fill)
	}
	return out
}

// LossyEncode is the sender side: text padded with spaces to a power of two
// and written as a sample body.
func LossyEncode(text string) string {
	return FormatSamples(PadSamples(SamplesFromText(text), ' '))
}

func textFromSignal(signal []complex128) (string, error) {
	var b strings.Builder
	for i, v := range signal {
		cp := math.Round(real(v))
		if cp < 0 || cp > utf8.MaxRune || !utf8.ValidRune(rune(cp)) {
			return "", fmt.Errorf("%w: sample %d reconstructs to %v, outside the character range", ErrDecode, i, cp)
		}
		b.WriteRune(rune(cp))
	}
	return b.String(), nil
}
