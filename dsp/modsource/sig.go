package modsource

import (
	"fmt"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
)

// Sig is a constant control signal: value*mul + add. Linking a source to
// value turns it into a scaling stage for that source.
type Sig struct {
	params *modmatrix.ParamTable
}

// NewSig creates a Sig holding value with unit gain and no offset.
func NewSig(value float64) *Sig {
	s := &Sig{params: modmatrix.NewParamTable()}
	s.params.MustDefine(modmatrix.Param{Name: "value"}, value)
	s.params.MustDefine(modmatrix.Param{Name: "mul"}, 1)
	s.params.MustDefine(modmatrix.Param{Name: "add"}, 0)

	return s
}

func (s *Sig) Parameters() []string { return s.params.Parameters() }

func (s *Sig) Parameter(name string) (modmatrix.Value, error) { return s.params.Parameter(name) }

func (s *Sig) SetParameter(name string, v modmatrix.Value) error {
	return s.params.SetParameter(name, v)
}

// Output returns value*mul + add from the last applied parameters.
func (s *Sig) Output() float64 {
	return s.params.Float("value")*s.params.Float("mul") + s.params.Float("add")
}

// Tick pulls live parameters for the coming block.
func (s *Sig) Tick(int) error { return s.params.Refresh() }

func (s *Sig) String() string {
	return fmt.Sprintf("Sig(%g)", s.Output())
}
