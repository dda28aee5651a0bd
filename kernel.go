package qdistance

import "math/cmplx"

// Kernel is K(a, b) = 1 - ‖a - b‖²/4, which equals ‖a + b‖²/4 for unit vectors.
func Kernel(a, b FeatureVector) float64 {
	dx := a.x - b.x
	dy := a.y - b.y
	return 1 - (dx*dx+dy*dy)/4
}

/*
Expectation is the exact postselection statistics the interference circuit
should reproduce, used to validate sampled estimates.
*/
type Expectation struct {
	Kernels            [2]float64
	AcceptanceRate     float64
	ClassProbabilities [2]float64
}

/*
Expect evaluates the kernel on the vectors the circuit actually loads (each
vector re-encoded through RY from |0⟩). With M = 2 training vectors the
ancilla=0 branch has probability Σ K_i / 2 and class k has conditional
probability K_k / Σ K_i.
*/
func Expect(test FeatureVector, training TrainingSet) (Expectation, error) {
	var exp Expectation

	probe, err := EncodeQubit(test)
	if err != nil {
		return exp, err
	}
	t0, t1 := probe.Amplitudes()

	sum := 0.0
	for i, ex := range training.Examples() {
		q, err := EncodeQubit(ex.Vector)
		if err != nil {
			return exp, err
		}
		a0, a1 := q.Amplitudes()

		overlap := cmplx.Abs(t0+a0)*cmplx.Abs(t0+a0) + cmplx.Abs(t1+a1)*cmplx.Abs(t1+a1)
		exp.Kernels[i] = overlap / 4
		sum += exp.Kernels[i]
	}

	exp.AcceptanceRate = sum / 2
	if sum > 0 {
		for i := range exp.Kernels {
			exp.ClassProbabilities[i] = exp.Kernels[i] / sum
		}
	}
	return exp, nil
}
