package qdistance

import (
	"fmt"
	"math"
)

/*
EncodeAngle converts the first amplitude of a unit feature vector into the
rotation angle θ = 2·arccos(a), so that RY(θ)|0⟩ = cos(θ/2)|0⟩ + sin(θ/2)|1⟩
carries a on |0⟩. Values outside [-1, 1] are a caller bug and fail with
ErrDomain instead of producing NaN.
*/
func EncodeAngle(a float64) (float64, error) {
	if math.IsNaN(a) || a < -1 || a > 1 {
		return 0, fmt.Errorf("%w: %v", ErrDomain, a)
	}
	return 2 * math.Acos(a), nil
}
