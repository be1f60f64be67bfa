package transform

import (
	"fmt"
	"math"
	"math/cmplx"
)

// FFT returns the discrete Fourier transform of x using recursive radix-2
// decimation in time. The forward pass is unscaled. len(x) must be a power
// of two.
func FFT(x []complex128) ([]complex128, error) {
	if !IsPowerOfTwo(len(x)) {
		return nil, fmt.Errorf("%w: %d samples is not a power of two", ErrInvalidLength, len(x))
	}
	return fft(x, -1), nil
}

// InverseFFT inverts FFT. The output is divided by n, so
// InverseFFT(FFT(x)) == x up to rounding.
func InverseFFT(spectrum []complex128) ([]complex128, error) {
	n := len(spectrum)
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d coefficients is not a power of two", ErrInvalidLength, n)
	}

	out := fft(spectrum, 1)
	scale := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out, nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// fft is the unscaled transform; sign is -1 forward and +1 inverse.
func fft(x []complex128, sign float64) []complex128 {
	n := len(x)
	if n == 1 {
		return []complex128{x[0]}
	}

	half := n / 2
	even := make([]complex128, half)
	odd := make([]complex128, half)
	for i := 0; i < half; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	q := fft(even, sign)
	r := fft(odd, sign)

	y := make([]complex128, n)
	for k := 0; k < half; k++ {
		w := cmplx.Rect(1, sign*2*math.Pi*float64(k)/float64(n))
		t := w * r[k]
		y[k] = q[k] + t
		y[k+half] = q[k] - t
	}
	return y
}
