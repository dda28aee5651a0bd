package qdistance

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulatorLifecycle(t *testing.T) {
	Convey("Given a simulator", t, func() {
		sim := NewSimulator(&Config{Seed: 11})
		circuit := Interfere(PrepareState(1, 2))

		Convey("It should refuse work before Start", func() {
			_, err := sim.Compile(circuit)
			So(errors.Is(err, ErrBackendUnavailable), ShouldBeTrue)
		})

		Convey("When started", func() {
			backend, err := sim.Start(context.Background())
			So(err, ShouldBeNil)
			So(sim.Running(), ShouldBeTrue)

			Reset(func() {
				sim.Stop()
			})

			Convey("A second Start should fail", func() {
				_, err := sim.Start(context.Background())
				So(err, ShouldNotBeNil)
			})

			Convey("Run should return shots of width 4", func() {
				prog, err := backend.Compile(circuit)
				So(err, ShouldBeNil)
				So(prog.Source(), ShouldEqual, circuit)

				shots, err := backend.Run(context.Background(), prog, 100)
				So(err, ShouldBeNil)
				So(shots, ShouldHaveLength, 100)
				for _, s := range shots {
					So(s, ShouldHaveLength, NumQubits)
				}
				So(sim.Metrics().ShotsExecuted, ShouldEqual, int64(100))
			})

			Convey("Run should reject a non-positive shot count", func() {
				prog, _ := backend.Compile(circuit)
				_, err := backend.Run(context.Background(), prog, 0)

				var execErr *ExecutionError
				So(errors.As(err, &execErr), ShouldBeTrue)
				So(errors.Is(err, ErrNoSamples), ShouldBeTrue)
			})

			Convey("Run should reject an unmeasured program", func() {
				prog, err := backend.Compile(PrepareState(1, 2))
				So(err, ShouldBeNil)
				_, err = backend.Run(context.Background(), prog, 10)
				So(err, ShouldNotBeNil)
			})

			Convey("Run should honour a cancelled context", func() {
				prog, _ := backend.Compile(circuit)
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				_, err := backend.Run(ctx, prog, 10)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})

			Convey("After Stop the backend should be unavailable", func() {
				prog, _ := backend.Compile(circuit)
				So(sim.Stop(), ShouldBeNil)

				_, err := backend.Run(context.Background(), prog, 10)
				var execErr *ExecutionError
				So(errors.As(err, &execErr), ShouldBeTrue)
				So(execErr.Op, ShouldEqual, "run")
				So(errors.Is(err, ErrBackendUnavailable), ShouldBeTrue)
			})
		})
	})
}

func TestSimulatorCompile(t *testing.T) {
	Convey("Given circuits the backend cannot execute", t, func() {
		sim := NewSimulator(nil)
		_, err := sim.Start(context.Background())
		So(err, ShouldBeNil)

		Reset(func() {
			sim.Stop()
		})

		cases := map[string]*Circuit{
			"undefined gate":       NewBuilder().Append(Gate{Kind: "TOFFOLI-ISH", Targets: []int{0}}).Build(),
			"qubit out of range":   NewBuilder().Append(Gate{Kind: GateH, Targets: []int{7}}).Build(),
			"repeated qubit":       NewBuilder().Append(Gate{Kind: GateCX, Controls: []int{1}, Targets: []int{1}}).Build(),
			"missing control":      NewBuilder().Append(Gate{Kind: GateCCX, Controls: []int{0}, Targets: []int{2}}).Build(),
			"measure not last":     NewBuilder().MeasureAll().H(Ancilla).Build(),
			"measure twice":        Interfere(Interfere(PrepareState(1, 2))),
			"non-finite rotation":  NewBuilder().RY(nanAngle(), Data).Build(),
			"measure out of range": NewBuilder().Append(Gate{Kind: GateMeasure, Targets: []int{0, 4}}).Build(),
			"reversed readout":     PrepareState(1, 2).Extend().H(Ancilla).Append(Gate{Kind: GateMeasure, Targets: []int{3, 2, 1, 0}}).Build(),
			"partial readout":      NewBuilder().H(Ancilla).Append(Gate{Kind: GateMeasure, Targets: []int{0, 1}}).Build(),
		}

		for name, circuit := range cases {
			Convey("It should return a CompilationError for "+name, func() {
				_, err := sim.Compile(circuit)
				var compileErr *CompilationError
				So(errors.As(err, &compileErr), ShouldBeTrue)
				So(compileErr.Error(), ShouldContainSubstring, "compile")
			})
		}

		Convey("It should explain a readout that does not follow Layout", func() {
			_, err := sim.Compile(cases["reversed readout"])
			var compileErr *CompilationError
			So(errors.As(err, &compileErr), ShouldBeTrue)
			So(compileErr.Reason, ShouldEqual, "readout must follow Layout")
		})

		Convey("It should accept the Layout readout", func() {
			_, err := sim.Compile(Interfere(PrepareState(1, 2)))
			So(err, ShouldBeNil)
		})

		Convey("It should count failures and successes", func() {
			sim.Compile(cases["undefined gate"])
			sim.Compile(PrepareState(1, 2))
			So(sim.Metrics().CompileFailures, ShouldEqual, int64(1))
			So(sim.Metrics().CircuitsCompiled, ShouldEqual, int64(1))
		})
	})
}

func TestSimulatorSampling(t *testing.T) {
	Convey("Given two simulators with the same seed", t, func() {
		circuit := Interfere(PrepareState(2*0.1, 2*1.2))

		sample := func() Counts {
			sim := NewSimulator(&Config{Seed: 42})
			backend, err := sim.Start(context.Background())
			So(err, ShouldBeNil)
			defer sim.Stop()

			prog, err := backend.Compile(circuit)
			So(err, ShouldBeNil)
			shots, err := backend.Run(context.Background(), prog, 512)
			So(err, ShouldBeNil)
			counts, err := Tally(shots)
			So(err, ShouldBeNil)
			return counts
		}

		Convey("They should produce identical counts", func() {
			first := sample()
			So(first.Total(), ShouldEqual, 512)
			So(sample(), ShouldResemble, first)
		})
	})

	Convey("Given a basis-state circuit", t, func() {
		sim := NewSimulator(&Config{Seed: 3})
		backend, _ := sim.Start(context.Background())
		Reset(func() { sim.Stop() })

		prog, err := backend.Compile(NewBuilder().X(Ancilla).X(Class).MeasureAll().Build())
		So(err, ShouldBeNil)

		Convey("Every shot should read the same outcome in layout order", func() {
			shots, err := backend.Run(context.Background(), prog, 50)
			So(err, ShouldBeNil)
			counts, err := Tally(shots)
			So(err, ShouldBeNil)
			So(counts, ShouldResemble, Counts{"1001": 50})
		})
	})
}

func nanAngle() float64 {
	zero := 0.0
	return zero / zero
}
