package analysis

import (
	"math"
	"math/cmplx"
)

func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude spectrum of the signal after removing
// its mean. The input is truncated to the largest power-of-2 length so
// arbitrary-length trajectories can be analyzed directly.
func PowerSpectrum(data []float64) []float64 {
	n := prevPow2(len(data))
	if n < 2 {
		return []float64{}
	}

	mean := 0.0
	for _, v := range data[:n] {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i := 0; i < n; i++ {
		centered[i] = data[i] - mean
	}

	fft := FFT(centered)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantFrequency finds the strongest spectral peak in Hz. For a lightly
// damped pendulum of length r this sits near sqrt(g/r)/(2*pi).
func DominantFrequency(data []float64, dt float64) float64 {
	if dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	n := prevPow2(len(data))
	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	return float64(peak) / (float64(n) * dt)
}

func prevPow2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	if n < 1 {
		return 0
	}
	return p
}
