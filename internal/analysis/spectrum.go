package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of each non-negative frequency bin of
// the mean-removed signal, with the bin frequencies in Hz for sample step dt.
func PowerSpectrum(signal []float64, dt float64) (freqs, power []float64) {
	n := len(signal)
	if n < 2 || !(dt > 0) {
		return nil, nil
	}

	mean := stat.Mean(signal, nil)
	centered := make([]float64, n)
	for i, s := range signal {
		centered[i] = s - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	freqs = make([]float64, len(coeffs))
	power = make([]float64, len(coeffs))
	for i, c := range coeffs {
		freqs[i] = fft.Freq(i) / dt
		power[i] = cmplx.Abs(c)
	}
	return freqs, power
}

// DominantFrequency returns the frequency in Hz of the strongest non-zero bin,
// or 0 for a constant or too short signal.
func DominantFrequency(signal []float64, dt float64) float64 {
	freqs, power := PowerSpectrum(signal, dt)
	best, bestPower := 0.0, 1e-12
	for i := 1; i < len(power); i++ {
		if power[i] > bestPower {
			best, bestPower = freqs[i], power[i]
		}
	}
	return best
}
