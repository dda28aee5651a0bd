package qdistance

import "fmt"

/*
Role names the purpose of one of the four qubits of the classifier. The
numeric value of a Role is the qubit index inside the shared state vector and
also the position of its bit inside every Outcome string, so the two can never
drift apart.
*/
type Role int

const (
	Ancilla Role = iota // 0 selects the test branch, 1 the training branch
	Index               // selects which training vector is loaded
	Data                // holds the amplitude-encoded feature
	Class               // holds the label of the selected training vector
)

// NumQubits is the width of every circuit and every measured shot.
const NumQubits = 4

/*
Layout is the single bit ordering used by state preparation, interference,
sampling and postselection. Outcome strings are written left to right in this
order: outcome[0] is the ancilla bit, outcome[3] the class bit.
*/
var Layout = [NumQubits]Role{Ancilla, Index, Data, Class}

func (r Role) String() string {
	switch r {
	case Ancilla:
		return "ancilla"
	case Index:
		return "index"
	case Data:
		return "data"
	case Class:
		return "class"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Qubit returns the qubit index the role occupies.
func (r Role) Qubit() int {
	return int(r)
}

// Position returns the character offset of the role inside an Outcome.
func (r Role) Position() int {
	for i, role := range Layout {
		if role == r {
			return i
		}
	}
	return -1
}

// Outcome is a measured bit string in Layout order, e.g. "0110".
type Outcome string

// Bit returns the measured value of the given role.
func (o Outcome) Bit(r Role) (byte, error) {
	if err := o.validate(); err != nil {
		return 0, err
	}
	return o[r.Position()] - '0', nil
}

func (o Outcome) validate() error {
	if len(o) != NumQubits {
		return fmt.Errorf("%w: %q has %d bits, want %d", ErrMalformedOutcome, string(o), len(o), NumQubits)
	}
	for i := 0; i < len(o); i++ {
		if o[i] != '0' && o[i] != '1' {
			return fmt.Errorf("%w: %q is not binary", ErrMalformedOutcome, string(o))
		}
	}
	return nil
}

// OutcomeOf renders a basis-state index of the state vector as an Outcome.
func OutcomeOf(basis int) Outcome {
	buf := make([]byte, NumQubits)
	for i, role := range Layout {
		buf[i] = '0' + byte((basis>>role.Qubit())&1)
	}
	return Outcome(buf)
}

// BasisOf is the inverse of OutcomeOf.
func BasisOf(o Outcome) (int, error) {
	if err := o.validate(); err != nil {
		return 0, err
	}
	basis := 0
	for i, role := range Layout {
		if o[i] == '1' {
			basis |= 1 << role.Qubit()
		}
	}
	return basis, nil
}
