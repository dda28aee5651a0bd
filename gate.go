package qdistance

import (
	"fmt"
	"strconv"
	"strings"
)

// GateKind identifies a gate primitive understood by a Backend.
type GateKind string

const (
	GateH       GateKind = "H"
	GateX       GateKind = "X"
	GateCX      GateKind = "CNOT"
	GateCCX     GateKind = "CCNOT"
	GateCRY     GateKind = "CRY"
	GateCCRY    GateKind = "CCRY"
	GateRY      GateKind = "RY"
	GateMeasure GateKind = "MEASURE"
)

// arity is the number of control qubits each kind expects.
var arity = map[GateKind]int{
	GateH:    0,
	GateX:    0,
	GateRY:   0,
	GateCX:   1,
	GateCRY:  1,
	GateCCX:  2,
	GateCCRY: 2,
}

/*
Gate is one operation of a Circuit. Controls are always conditioned on |1⟩.
Targets holds a single qubit for unitary gates and the readout order for
MEASURE. Theta is only meaningful for the RY family and follows the half-angle
convention RY(θ) = [[cos θ/2, -sin θ/2], [sin θ/2, cos θ/2]].
*/
type Gate struct {
	Kind     GateKind
	Controls []int
	Targets  []int
	Theta    float64
}

// Parametric reports whether the gate carries a rotation angle.
func (g Gate) Parametric() bool {
	return g.Kind == GateRY || g.Kind == GateCRY || g.Kind == GateCCRY
}

// Qubits lists every qubit the gate touches, controls first.
func (g Gate) Qubits() []int {
	out := make([]int, 0, len(g.Controls)+len(g.Targets))
	out = append(out, g.Controls...)
	return append(out, g.Targets...)
}

func (g Gate) Equal(other Gate) bool {
	if g.Kind != other.Kind || g.Theta != other.Theta {
		return false
	}
	return intsEqual(g.Controls, other.Controls) && intsEqual(g.Targets, other.Targets)
}

func (g Gate) clone() Gate {
	return Gate{
		Kind:     g.Kind,
		Controls: append([]int(nil), g.Controls...),
		Targets:  append([]int(nil), g.Targets...),
		Theta:    g.Theta,
	}
}

// String renders the gate in a Quil-like form, e.g. "CONTROLLED RY(1.5) 0 2".
func (g Gate) String() string {
	var sb strings.Builder

	switch g.Kind {
	case GateCRY:
		sb.WriteString("CONTROLLED RY")
	case GateCCRY:
		sb.WriteString("CONTROLLED CONTROLLED RY")
	default:
		sb.WriteString(string(g.Kind))
	}

	if g.Parametric() {
		sb.WriteString("(" + strconv.FormatFloat(g.Theta, 'g', -1, 64) + ")")
	}

	for _, q := range g.Qubits() {
		sb.WriteString(" " + strconv.Itoa(q))
	}

	return sb.String()
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func describeQubits(qs []int) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = fmt.Sprintf("%s(%d)", Role(q), q)
	}
	return strings.Join(parts, ",")
}
