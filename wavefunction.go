// wavefunction.go
package qdistance

import (
	"math/rand/v2"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/stat/distuv"
)

/*
Shot is the classical readout of one circuit execution: one bit (0 or 1) per
measured qubit, in the readout order of the MEASURE gate, which for circuits
built by this package is Layout order.
*/
type Shot []byte

// Outcome renders the shot as a bit string.
func (s Shot) Outcome() Outcome {
	buf := make([]byte, len(s))
	for i, b := range s {
		buf[i] = '0' + b
	}
	return Outcome(buf)
}

/*
WaveFunction is the measurement distribution of a StateVector. Collapsing it
draws a basis index with probability |amplitude|², without disturbing the
underlying vector, so a single WaveFunction serves every shot of a run.
*/
type WaveFunction struct {
	probabilities []float64
	dist          distuv.Categorical
}

func NewWaveFunction(sv *StateVector, src rand.Source) *WaveFunction {
	probs := sv.Probabilities()

	errnie.Info(
		"NewWaveFunction - qubits %v, norm %v",
		sv.NumQubits,
		sv.Norm(),
	)

	return &WaveFunction{
		probabilities: probs,
		dist:          distuv.NewCategorical(probs, src),
	}
}

// Collapse draws one basis index.
func (wf *WaveFunction) Collapse() int {
	return int(wf.dist.Rand())
}

// Probability returns the exact probability of a basis index.
func (wf *WaveFunction) Probability(basis int) float64 {
	if basis < 0 || basis >= len(wf.probabilities) {
		return 0
	}
	return wf.probabilities[basis]
}

/*
Sample collapses the wave function shots times and reads out the given qubits
of each drawn basis index.
*/
func (wf *WaveFunction) Sample(shots int, readout []int) []Shot {
	out := make([]Shot, shots)
	for n := range out {
		basis := wf.Collapse()
		shot := make(Shot, len(readout))
		for i, q := range readout {
			shot[i] = byte((basis >> q) & 1)
		}
		out[n] = shot
	}
	return out
}
