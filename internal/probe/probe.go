// Package probe measures rendered audio blocks.
package probe

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	floorDB    = -130.0
	minFFTSize = 16
	maxFFTSize = 1 << 16
)

// Report summarizes one analyzed signal.
type Report struct {
	Samples    int
	Peak       float64
	RMS        float64
	PeakDB     float64
	RMSDB      float64
	DominantHz float64
}

func (r Report) String() string {
	return fmt.Sprintf("samples=%d peak=%.4f (%.1f dBFS) rms=%.4f (%.1f dBFS) dominant=%.1f Hz",
		r.Samples, r.Peak, r.PeakDB, r.RMS, r.RMSDB, r.DominantHz)
}

var errEmptySignal = errors.New("probe: empty signal")

// Analyze measures peak and RMS level of signal and estimates its dominant
// frequency from a Hann-windowed FFT over the last power-of-two span of up to
// 65536 samples. Signals shorter than 16 samples report no dominant frequency.
func Analyze(signal []float64, sampleRate float64) (Report, error) {
	if len(signal) == 0 {
		return Report{}, errEmptySignal
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Report{}, fmt.Errorf("probe sample rate must be > 0 and finite: %f", sampleRate)
	}

	r := Report{
		Samples: len(signal),
		Peak:    vecmath.MaxAbs(signal),
		RMS:     math.Sqrt(vecmath.DotProduct(signal, signal) / float64(len(signal))),
	}
	r.PeakDB = toDB(r.Peak)
	r.RMSDB = toDB(r.RMS)

	if len(signal) < minFFTSize {
		return r, nil
	}

	hz, err := dominant(signal, sampleRate)
	if err != nil {
		return Report{}, err
	}

	r.DominantHz = hz

	return r, nil
}

func dominant(signal []float64, sampleRate float64) (float64, error) {
	n := 1 << (bits.Len(uint(min(len(signal), maxFFTSize))) - 1)
	tail := signal[len(signal)-n:]

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("probe fft plan: %w", err)
	}

	win := window.Generate(window.TypeHann, n, window.WithPeriodic())
	in := make([]complex128, n)

	for i, x := range tail {
		in[i] = complex(x*win[i], 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("probe fft: %w", err)
	}

	mags := make([]float64, n/2+1)
	for i := range mags {
		mags[i] = cmplx.Abs(out[i])
	}

	peak := 1
	for k := 2; k < len(mags); k++ {
		if mags[k] > mags[peak] {
			peak = k
		}
	}

	if mags[peak] == 0 {
		return 0, nil
	}

	return (float64(peak) + interpolate(mags, peak)) * sampleRate / float64(n), nil
}

// interpolate returns the parabolic offset of the true peak from bin k.
func interpolate(mags []float64, k int) float64 {
	if k <= 0 || k >= len(mags)-1 {
		return 0
	}

	a, b, c := mags[k-1], mags[k], mags[k+1]

	den := a - 2*b + c
	if den == 0 {
		return 0
	}

	return 0.5 * (a - c) / den
}

func toDB(v float64) float64 {
	if v <= 0 {
		return floorDB
	}

	return max(20*math.Log10(v), floorDB)
}
