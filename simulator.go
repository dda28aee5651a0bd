package qdistance

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Simulator is an in-process statevector backend. It plays both roles of the
external collaborator: Server (Start/Stop) and Backend (Compile/Run). A
stopped simulator refuses work with ErrBackendUnavailable, which is what a
terminated simulation server looks like to the core.
*/
type Simulator struct {
	mu      sync.Mutex
	running bool
	src     rand.Source
	metrics *Metrics
}

// NewSimulator seeds the sampler from config.Seed, or from the clock when it is 0.
func NewSimulator(config *Config) *Simulator {
	if config == nil {
		config = NewConfig()
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Simulator{
		src:     rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
		metrics: NewMetrics(),
	}
}

// Metrics exposes the simulator's counters.
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

func (s *Simulator) Start(ctx context.Context) (Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, fmt.Errorf("simulator already running")
	}
	s.running = true
	errnie.Info("Simulator - started")

	return s, nil
}

func (s *Simulator) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	errnie.Info("Simulator - stopped")
	return nil
}

func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// step is one compiled unitary.
type step struct {
	op       Operator
	controls []int
	target   int
}

type program struct {
	source  *Circuit
	steps   []step
	readout []int
}

func (p *program) Source() *Circuit {
	return p.source
}

func (s *Simulator) Compile(circuit *Circuit) (Program, error) {
	if !s.Running() {
		return nil, &ExecutionError{Op: "compile", Err: ErrBackendUnavailable}
	}

	p, err := compile(circuit)
	s.metrics.recordCompile(err == nil)
	if err != nil {
		return nil, err
	}
	return p, nil
}

/*
compile validates every gate and lowers it to a controlled single-qubit step.
MEASURE may only appear once, as the last gate.
*/
func compile(circuit *Circuit) (*program, error) {
	if circuit == nil {
		return nil, &CompilationError{Step: -1, Reason: "nil circuit"}
	}

	p := &program{source: circuit}
	gates := circuit.Gates()

	for i, g := range gates {
		if g.Kind == GateMeasure {
			if i != len(gates)-1 {
				return nil, &CompilationError{Step: i, Gate: g, Reason: "measurement must be the last gate"}
			}
			if err := checkQubits(g.Targets, circuit.Qubits()); err != "" {
				return nil, &CompilationError{Step: i, Gate: g, Reason: err}
			}
			if !intsEqual(g.Targets, layoutQubits()) {
				return nil, &CompilationError{Step: i, Gate: g, Reason: "readout must follow Layout"}
			}
			p.readout = g.Targets
			continue
		}

		controls, known := arity[g.Kind]
		if !known {
			return nil, &CompilationError{Step: i, Gate: g, Reason: "undefined gate"}
		}
		if len(g.Controls) != controls || len(g.Targets) != 1 {
			return nil, &CompilationError{
				Step:   i,
				Gate:   g,
				Reason: fmt.Sprintf("want %d controls and 1 target, got %s", controls, describeQubits(g.Qubits())),
			}
		}
		if err := checkQubits(g.Qubits(), circuit.Qubits()); err != "" {
			return nil, &CompilationError{Step: i, Gate: g, Reason: err}
		}
		if math.IsNaN(g.Theta) || math.IsInf(g.Theta, 0) {
			return nil, &CompilationError{Step: i, Gate: g, Reason: "non-finite angle"}
		}

		p.steps = append(p.steps, step{
			op:       operatorFor(g),
			controls: g.Controls,
			target:   g.Targets[0],
		})
	}

	return p, nil
}

// layoutQubits is the only readout order postselection can interpret.
func layoutQubits() []int {
	qubits := make([]int, len(Layout))
	for i, role := range Layout {
		qubits[i] = role.Qubit()
	}
	return qubits
}

func operatorFor(g Gate) Operator {
	switch g.Kind {
	case GateH:
		return Hadamard()
	case GateX, GateCX, GateCCX:
		return PauliX()
	default:
		return RotationY(g.Theta)
	}
}

// checkQubits returns a reason when qubits are out of range or repeated.
func checkQubits(qubits []int, width int) string {
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= width {
			return fmt.Sprintf("qubit %d outside register of %d", q, width)
		}
		if seen[q] {
			return fmt.Sprintf("qubit %d used twice", q)
		}
		seen[q] = true
	}
	return ""
}

func (p *program) evolve() *StateVector {
	sv := NewStateVector(p.source.Qubits())
	for _, st := range p.steps {
		sv.Apply(st.op, st.controls, st.target)
	}
	return sv
}

// Run executes the program shots times and returns the readout of every shot.
func (s *Simulator) Run(ctx context.Context, prog Program, shots int) ([]Shot, error) {
	start := time.Now()

	result, err := s.run(ctx, prog, shots)
	s.metrics.recordRun(start, shots, err == nil)

	return result, err
}

func (s *Simulator) run(ctx context.Context, prog Program, shots int) ([]Shot, error) {
	if !s.Running() {
		return nil, &ExecutionError{Op: "run", Err: ErrBackendUnavailable}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ExecutionError{Op: "run", Err: err}
	}
	if shots <= 0 {
		return nil, &ExecutionError{Op: "run", Err: fmt.Errorf("%w: %d shots", ErrNoSamples, shots)}
	}

	p, ok := prog.(*program)
	if !ok {
		return nil, &ExecutionError{Op: "run", Err: fmt.Errorf("program %T was not compiled by this simulator", prog)}
	}
	if len(p.readout) == 0 {
		return nil, &ExecutionError{Op: "run", Err: fmt.Errorf("program has no measurement")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return NewWaveFunction(p.evolve(), s.src).Sample(shots, p.readout), nil
}

/*
Statevector evolves the unitary part of a circuit and returns the exact state,
ignoring any final measurement. It needs no running server.
*/
func (s *Simulator) Statevector(circuit *Circuit) (*StateVector, error) {
	p, err := compile(circuit)
	if err != nil {
		return nil, err
	}
	return p.evolve(), nil
}
