package qdistance

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

/*
Circuit is an immutable, ordered sequence of gates over NumQubits qubits.
Circuits are produced by a Builder; extending one yields a new Circuit and
never touches the original, so a prepared state and its interference-extended
descendant cannot alias each other.
*/
type Circuit struct {
	qubits int
	gates  []Gate
}

// Qubits returns the register width of the circuit.
func (c *Circuit) Qubits() int {
	return c.qubits
}

// Len returns the number of gates.
func (c *Circuit) Len() int {
	return len(c.gates)
}

// Gates returns a copy of the gate sequence.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		out[i] = g.clone()
	}
	return out
}

// Measured reports whether the circuit ends in a measurement.
func (c *Circuit) Measured() bool {
	return len(c.gates) > 0 && c.gates[len(c.gates)-1].Kind == GateMeasure
}

// Equal compares two circuits structurally.
func (c *Circuit) Equal(other *Circuit) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.qubits != other.qubits || len(c.gates) != len(other.gates) {
		return false
	}
	for i := range c.gates {
		if !c.gates[i].Equal(other.gates[i]) {
			return false
		}
	}
	return true
}

// Extend starts a Builder seeded with a copy of this circuit's gates.
func (c *Circuit) Extend() *Builder {
	return &Builder{qubits: c.qubits, gates: c.Gates()}
}

// String lists one gate per line.
func (c *Circuit) String() string {
	lines := make([]string, len(c.gates))
	for i, g := range c.gates {
		lines[i] = g.String()
	}
	return strings.Join(lines, "\n")
}

// Dump renders the full structure for debugging.
func (c *Circuit) Dump() string {
	return spew.Sdump(c.gates)
}

/*
Builder appends gates and produces an immutable Circuit. Roles are used
instead of raw qubit numbers so every call site shares the Layout mapping.
*/
type Builder struct {
	qubits int
	gates  []Gate
}

// NewBuilder creates a builder for the four-qubit classifier register.
func NewBuilder() *Builder {
	return &Builder{qubits: NumQubits}
}

func (b *Builder) H(target Role) *Builder {
	return b.add(Gate{Kind: GateH, Targets: []int{target.Qubit()}})
}

func (b *Builder) X(target Role) *Builder {
	return b.add(Gate{Kind: GateX, Targets: []int{target.Qubit()}})
}

func (b *Builder) RY(theta float64, target Role) *Builder {
	return b.add(Gate{Kind: GateRY, Targets: []int{target.Qubit()}, Theta: theta})
}

func (b *Builder) CX(control, target Role) *Builder {
	return b.add(Gate{Kind: GateCX, Controls: []int{control.Qubit()}, Targets: []int{target.Qubit()}})
}

func (b *Builder) CCX(c1, c2, target Role) *Builder {
	return b.add(Gate{Kind: GateCCX, Controls: []int{c1.Qubit(), c2.Qubit()}, Targets: []int{target.Qubit()}})
}

func (b *Builder) CRY(theta float64, control, target Role) *Builder {
	return b.add(Gate{Kind: GateCRY, Controls: []int{control.Qubit()}, Targets: []int{target.Qubit()}, Theta: theta})
}

func (b *Builder) CCRY(theta float64, c1, c2, target Role) *Builder {
	return b.add(Gate{
		Kind:     GateCCRY,
		Controls: []int{c1.Qubit(), c2.Qubit()},
		Targets:  []int{target.Qubit()},
		Theta:    theta,
	})
}

// MeasureAll reads every qubit out in Layout order.
func (b *Builder) MeasureAll() *Builder {
	targets := make([]int, 0, NumQubits)
	for _, role := range Layout {
		targets = append(targets, role.Qubit())
	}
	return b.add(Gate{Kind: GateMeasure, Targets: targets})
}

// Append adds an arbitrary gate. Backends validate it at compile time.
func (b *Builder) Append(g Gate) *Builder {
	return b.add(g.clone())
}

// Build snapshots the gates into a Circuit. The builder stays usable.
func (b *Builder) Build() *Circuit {
	gates := make([]Gate, len(b.gates))
	for i, g := range b.gates {
		gates[i] = g.clone()
	}
	return &Circuit{qubits: b.qubits, gates: gates}
}

func (b *Builder) add(g Gate) *Builder {
	b.gates = append(b.gates, g)
	return b
}
