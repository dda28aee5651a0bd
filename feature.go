package qdistance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultNormTolerance accepts vectors that are unit length to roughly three
// decimal places, which is how feature vectors are usually written down.
const DefaultNormTolerance = 1e-2

/*
FeatureVector is an immutable 2-D point on the unit circle. It can only be
obtained through NewFeatureVector, which rejects anything that is not
normalized, so an Angle computed from it is always well defined.
*/
type FeatureVector struct {
	x float64
	y float64
}

// NewFeatureVector validates x² + y² = 1 within DefaultNormTolerance.
func NewFeatureVector(x, y float64) (FeatureVector, error) {
	return NewFeatureVectorWithin(x, y, DefaultNormTolerance)
}

// NewFeatureVectorWithin validates x² + y² = 1 within tol.
func NewFeatureVectorWithin(x, y, tol float64) (FeatureVector, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return FeatureVector{}, fmt.Errorf("%w: (%v, %v)", ErrNotNormalized, x, y)
	}
	if x < -1 || x > 1 {
		return FeatureVector{}, fmt.Errorf("%w: x=%v", ErrDomain, x)
	}
	if norm := x*x + y*y; !scalar.EqualWithinAbs(norm, 1, tol) {
		return FeatureVector{}, fmt.Errorf("%w: (%v, %v) has squared norm %v", ErrNotNormalized, x, y, norm)
	}
	return FeatureVector{x: x, y: y}, nil
}

// MustFeatureVector panics on invalid input. Intended for literals.
func MustFeatureVector(x, y float64) FeatureVector {
	v, err := NewFeatureVector(x, y)
	if err != nil {
		panic(err)
	}
	return v
}

func (v FeatureVector) X() float64 { return v.x }
func (v FeatureVector) Y() float64 { return v.y }

/*
Angle returns the RY angle that prepares this vector from |0⟩. The magnitude
is EncodeAngle(x); the sign follows y so that sin(θ/2) has the same sign as y.
*/
func (v FeatureVector) Angle() (float64, error) {
	theta, err := EncodeAngle(v.x)
	if err != nil {
		return 0, err
	}
	if v.y < 0 {
		theta = -theta
	}
	return theta, nil
}

// Encoded is the vector the circuit actually loads: (x, ±sqrt(1 - x²)).
func (v FeatureVector) Encoded() FeatureVector {
	y := math.Sqrt(math.Max(0, 1-v.x*v.x))
	if v.y < 0 {
		y = -y
	}
	return FeatureVector{x: v.x, y: y}
}

func (v FeatureVector) String() string {
	return fmt.Sprintf("[%g, %g]", v.x, v.y)
}

// Label is the binary class attached to a training vector.
type Label int

const (
	Label0 Label = 0
	Label1 Label = 1
)

func (l Label) Valid() bool {
	return l == Label0 || l == Label1
}

// Example is a labelled training vector.
type Example struct {
	Vector FeatureVector
	Label  Label
}

/*
TrainingSet holds exactly one example per class. The circuit loads the first
example with a bare CCX, so it has to be the basis vector [0, 1].
*/
type TrainingSet struct {
	first  Example
	second Example
}

/*
NewTrainingSet validates the two examples: the first must be [0, 1] labelled
0, the second any unit vector labelled 1.
*/
func NewTrainingSet(first, second Example) (TrainingSet, error) {
	if !first.Label.Valid() || !second.Label.Valid() {
		return TrainingSet{}, ErrInvalidLabel
	}
	if first.Label != Label0 || second.Label != Label1 {
		return TrainingSet{}, fmt.Errorf("%w: want labels (0, 1), got (%d, %d)", ErrTrainingSet, first.Label, second.Label)
	}
	if !scalar.EqualWithinAbs(first.Vector.x, 0, 1e-12) || first.Vector.y <= 0 {
		return TrainingSet{}, fmt.Errorf("%w: first example must be [0, 1], got %s", ErrTrainingSet, first.Vector)
	}
	return TrainingSet{first: first, second: second}, nil
}

// DefaultTrainingSet is the two-point set {[0,1] → 0, [0.78861006, 0.61489363] → 1}.
func DefaultTrainingSet() TrainingSet {
	ts, err := NewTrainingSet(
		Example{Vector: MustFeatureVector(0, 1), Label: Label0},
		Example{Vector: MustFeatureVector(0.78861006, 0.61489363), Label: Label1},
	)
	if err != nil {
		panic(err)
	}
	return ts
}

func (ts TrainingSet) First() Example  { return ts.first }
func (ts TrainingSet) Second() Example { return ts.second }

// Examples returns the examples ordered by the index qubit value that selects them.
func (ts TrainingSet) Examples() [2]Example {
	return [2]Example{ts.first, ts.second}
}
