package qdistance

import "math"

// Operator is a single-qubit gate matrix acting on (|0⟩, |1⟩) amplitudes.
type Operator [2][2]complex128

// Hadamard returns H = 1/√2 * [1  1]
//
//	[1 -1]
func Hadamard() Operator {
	h := complex(1/math.Sqrt2, 0)
	return Operator{{h, h}, {h, -h}}
}

// PauliX returns the bit flip.
func PauliX() Operator {
	return Operator{{0, 1}, {1, 0}}
}

// RotationY returns RY(θ) with the half-angle convention:
//
//	[cos θ/2  -sin θ/2]
//	[sin θ/2   cos θ/2]
func RotationY(theta float64) Operator {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Operator{{c, -s}, {s, c}}
}

// apply maps an amplitude pair through the operator.
func (op Operator) apply(a0, a1 complex128) (complex128, complex128) {
	return op[0][0]*a0 + op[0][1]*a1, op[1][0]*a0 + op[1][1]*a1
}

// Qubit is a single isolated qubit, used to amplitude-encode one feature vector.
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

func NewQubit(alpha, beta complex128) *Qubit {
	return &Qubit{
		alpha: alpha,
		beta:  beta,
	}
}

// Apply transforms the qubit in place and returns it for chaining.
func (q *Qubit) Apply(op Operator) *Qubit {
	q.alpha, q.beta = op.apply(q.alpha, q.beta)
	return q
}

func (q *Qubit) ApplyHadamard() *Qubit {
	return q.Apply(Hadamard())
}

// Amplitudes returns the (|0⟩, |1⟩) amplitudes.
func (q *Qubit) Amplitudes() (complex128, complex128) {
	return q.alpha, q.beta
}

// EncodeQubit prepares RY(v.Angle())|0⟩, the single-qubit amplitude encoding of v.
func EncodeQubit(v FeatureVector) (*Qubit, error) {
	theta, err := v.Angle()
	if err != nil {
		return nil, err
	}
	return NewQubit(1, 0).Apply(RotationY(theta)), nil
}
