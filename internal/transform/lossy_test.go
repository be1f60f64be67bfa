package transform

import (
	"math/cmplx"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		n         int
		lossLevel uint
		want      int
	}{
		{8, 0, 8},
		{8, 1, 4},
		{8, 2, 2},
		{8, 3, 2},
		{8, 7, 1},
		{8, 8, 0},
		{8, 1 << 40, 0},
		{1024, 3, 256},
		{0, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Threshold(tt.n, tt.lossLevel), "n=%d level=%d", tt.n, tt.lossLevel)
	}
}

func countNonZero(spectrum []complex128) int {
	n := 0
	for _, c := range spectrum {
		if c != 0 {
			n++
		}
	}
	return n
}

func TestLossyRetainedIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x := randomSignal(rng, 64)
	spectrum, err := FFT(x)
	require.NoError(t, err)

	prev := len(spectrum) + 1
	for level := uint(0); level <= 70; level++ {
		kept := countNonZero(Lossy(spectrum, level))
		assert.LessOrEqual(t, kept, prev, "level %d", level)
		assert.Equal(t, Threshold(64, level), kept, "level %d", level)
		prev = kept
	}
}

func TestLossyDoesNotMutateSpectrum(t *testing.T) {
	spectrum := []complex128{1, 2, 3, 4}
	out := Lossy(spectrum, 1)
	assert.Equal(t, []complex128{1, 2, 0, 0}, out)
	assert.Equal(t, []complex128{1, 2, 3, 4}, spectrum)
}

func TestLossyDecodeLossless(t *testing.T) {
	got, err := LossyDecode("72,101,108,108,111,44,32,66", 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello, B", got)
}

func TestLossyEncodeDecode(t *testing.T) {
	body := LossyEncode("Hello, Bob!")
	assert.Len(t, strings.Split(body, ","), 16)

	got, err := LossyDecode(body, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bob!     ", got)
}

func TestLossyDecodeConstantSurvivesLoss(t *testing.T) {
	// a constant signal lives entirely in coefficient 0
	body := LossyEncode("AAAAAAAA")
	for level := uint(0); level < 8; level++ {
		got, err := LossyDecode(body, level)
		require.NoError(t, err)
		assert.Equal(t, "AAAAAAAA", got, "level %d", level)
	}

	// dropping coefficient 0 as well leaves silence
	got, err := LossyDecode(body, 8)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("\x00", 8), got)
}

func TestLossyRoundTripDropsEnergy(t *testing.T) {
	samples := SamplesFromText("Hello, B")
	full, err := LossyRoundTrip(samples, 0)
	require.NoError(t, err)
	lossy, err := LossyRoundTrip(samples, 3)
	require.NoError(t, err)

	var errFull, errLossy float64
	for i, s := range samples {
		errFull += cmplx.Abs(full[i] - complex(s, 0))
		errLossy += cmplx.Abs(lossy[i] - complex(s, 0))
	}
	assert.InDelta(t, 0, errFull, tolerance)
	assert.Greater(t, errLossy, 1.0)
}

func TestLossyDecodeInvalidLength(t *testing.T) {
	_, err := LossyDecode("1,2,3,4,5,6", 0)
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = LossyDecode("", 0)
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestLossyDecodeParseError(t *testing.T) {
	for _, body := range []string{"1,2,x,4", "1,,3,4", "NaN,1", "1,Inf"} {
		_, err := LossyDecode(body, 0)
		assert.ErrorIs(t, err, ErrParse, "body %q", body)
	}
}

func TestLossyDecodeOutOfRange(t *testing.T) {
	// negative code point
	_, err := LossyDecode("-5,-5", 0)
	require.ErrorIs(t, err, ErrDecode)

	// surrogate half
	_, err = LossyDecode("55296,55296", 0)
	require.ErrorIs(t, err, ErrDecode)

	// beyond the Unicode range
	_, err = LossyDecode("1114112,1114112", 0)
	require.ErrorIs(t, err, ErrDecode)
}

func TestParseSamplesTrimsWhitespace(t *testing.T) {
	got, err := ParseSamples(" 1.5, -2 ,3e2")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 300}, got)
	assert.Equal(t, "1.5,-2,300", FormatSamples(got))
}

func TestPadSamples(t *testing.T) {
	assert.Nil(t, PadSamples(nil, ' '))
	assert.Equal(t, []float64{1, 2, 3, 32}, PadSamples([]float64{1, 2, 3}, ' '))
	assert.Equal(t, []float64{1, 2}, PadSamples([]float64{1, 2}, ' '))
}
