package modsource

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	defaultFollowerAttackMs  = 10.0
	defaultFollowerReleaseMs = 150.0
	maxFollowerTimeMs        = 5000.0
)

// Follower tracks the RMS level of the blocks fed to it.
type Follower struct {
	sampleRate float64
	params     *modmatrix.ParamTable
	envelope   float64
}

// NewFollower creates an envelope follower with 10 ms attack and 150 ms release.
func NewFollower(sampleRate float64) (*Follower, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("follower sample rate must be > 0 and finite: %f", sampleRate)
	}

	f := &Follower{sampleRate: sampleRate, params: modmatrix.NewParamTable()}
	f.params.MustDefine(modmatrix.Param{Name: "attack", Min: 0, Max: maxFollowerTimeMs}, defaultFollowerAttackMs)
	f.params.MustDefine(modmatrix.Param{Name: "release", Min: 0, Max: maxFollowerTimeMs}, defaultFollowerReleaseMs)
	f.params.MustDefine(modmatrix.Param{Name: "mul"}, 1)
	f.params.MustDefine(modmatrix.Param{Name: "add"}, 0)

	return f, nil
}

func (f *Follower) Parameters() []string { return f.params.Parameters() }

func (f *Follower) Parameter(name string) (modmatrix.Value, error) {
	return f.params.Parameter(name)
}

func (f *Follower) SetParameter(name string, v modmatrix.Value) error {
	return f.params.SetParameter(name, v)
}

// Feed measures the RMS of block and moves the envelope towards it.
func (f *Follower) Feed(block []float64) {
	if len(block) == 0 {
		return
	}

	rms := math.Sqrt(vecmath.DotProduct(block, block) / float64(len(block)))
	if math.IsNaN(rms) || math.IsInf(rms, 0) {
		return
	}

	timeMs := f.params.Float("release")
	if rms > f.envelope {
		timeMs = f.params.Float("attack")
	}

	f.envelope += (rms - f.envelope) * blockCoefficient(timeMs, f.sampleRate, len(block))
}

// Tick pulls live parameters for the coming block.
func (f *Follower) Tick(int) error { return f.params.Refresh() }

// Envelope returns the unscaled RMS envelope.
func (f *Follower) Envelope() float64 { return f.envelope }

// Output returns envelope*mul + add.
func (f *Follower) Output() float64 {
	return f.envelope*f.params.Float("mul") + f.params.Float("add")
}

// Reset clears the envelope.
func (f *Follower) Reset() { f.envelope = 0 }

func (f *Follower) String() string {
	return fmt.Sprintf("Follower(%g/%g ms)", f.params.Float("attack"), f.params.Float("release"))
}

// blockCoefficient is the one-pole smoothing factor for a step of frames samples.
func blockCoefficient(timeMs, sampleRate float64, frames int) float64 {
	if timeMs <= 0 {
		return 1
	}

	tauSeconds := timeMs / 1000

	return 1 - math.Exp(-float64(frames)/(tauSeconds*sampleRate))
}
