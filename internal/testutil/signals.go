package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Blocks splits signal into consecutive blocks of size n. The last block
// may be shorter.
func Blocks(signal []float64, n int) [][]float64 {
	if n <= 0 {
		return nil
	}
	var out [][]float64
	for start := 0; start < len(signal); start += n {
		out = append(out, signal[start:min(start+n, len(signal))])
	}
	return out
}
