package qdistance

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

/*
StateVector holds the 2^n complex amplitudes of an n-qubit register. Basis
index i has qubit q set when bit q of i is set, so qubit 0 is the least
significant bit; OutcomeOf translates indices into Layout order.
*/
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns |0…0⟩ on n qubits.
func NewStateVector(n int) *StateVector {
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: n}
}

func (sv *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(sv.Amplitudes))
	copy(amps, sv.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: sv.NumQubits}
}

/*
Apply runs op on target for every basis pair whose control bits are all 1.
With no controls it is a plain single-qubit gate.
*/
func (sv *StateVector) Apply(op Operator, controls []int, target int) {
	mask := 0
	for _, c := range controls {
		mask |= 1 << c
	}
	bit := 1 << target

	for i := range sv.Amplitudes {
		if i&bit != 0 || i&mask != mask {
			continue
		}
		j := i | bit
		sv.Amplitudes[i], sv.Amplitudes[j] = op.apply(sv.Amplitudes[i], sv.Amplitudes[j])
	}
}

// Norm is the L2 norm of the amplitudes; 1 for any state reachable by gates.
func (sv *StateVector) Norm() float64 {
	return cmplxs.Norm(sv.Amplitudes, 2)
}

// Probabilities returns |amplitude|² per basis index.
func (sv *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(sv.Amplitudes))
	cmplxs.Abs(probs, sv.Amplitudes)
	floats.Mul(probs, probs)
	return probs
}

// Amplitude looks up the amplitude of a Layout-ordered outcome.
func (sv *StateVector) Amplitude(o Outcome) (complex128, error) {
	basis, err := BasisOf(o)
	if err != nil {
		return 0, err
	}
	if basis >= len(sv.Amplitudes) {
		return 0, fmt.Errorf("%w: %q outside a %d-qubit register", ErrMalformedOutcome, string(o), sv.NumQubits)
	}
	return sv.Amplitudes[basis], nil
}

// Marginal returns the probability that role r reads as bit.
func (sv *StateVector) Marginal(r Role, bit byte) float64 {
	total := 0.0
	for i, amp := range sv.Amplitudes {
		if byte((i>>r.Qubit())&1) == bit {
			p := cmplx.Abs(amp)
			total += p * p
		}
	}
	return total
}

// States lists every basis state with a probability above cutoff.
func (sv *StateVector) States(cutoff float64) []State {
	probs := sv.Probabilities()
	states := make([]State, 0, len(probs))
	for i, p := range probs {
		if p <= cutoff {
			continue
		}
		states = append(states, State{
			Outcome:     OutcomeOf(i),
			Amplitude:   sv.Amplitudes[i],
			Probability: p,
		})
	}
	return states
}
