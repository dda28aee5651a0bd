package qdistancecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theapemachine/qdistance"
)

const circuitShortDesc string = "Print the interference circuit for a test vector"

func newCircuitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circuit",
		Short: circuitShortDesc,
		RunE:  runCircuit,
	}

	cmd.Flags().String("test", "0.053,0.999", "Test vector as x,y")
	cmd.Flags().Bool("states", false, "Also print the prepared statevector")
	cmd.Flags().Float64("norm-tolerance", qdistance.DefaultNormTolerance, "Allowed deviation of x²+y² from 1")

	return cmd
}

func runCircuit(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)

	v, err := initViper(cmd)
	if err != nil {
		return err
	}
	tol := configFromViper(v).NormTolerance

	training, err := trainingSet(cmd, tol)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("test")
	test, err := parseVector(raw, tol)
	if err != nil {
		return err
	}

	prepared, err := qdistance.PrepareVectors(test, training)
	if err != nil {
		return err
	}
	circuit := qdistance.Interfere(prepared)

	logger.Debug("loaded",
		"test", test,
		"encoded", test.Encoded(),
		"train", training.Second().Vector.Encoded(),
	)

	logger.Debug("circuit", "dump", circuit.Dump())
	fmt.Fprintln(cmd.OutOrStdout(), circuit)

	if states, _ := cmd.Flags().GetBool("states"); states {
		sv, err := qdistance.NewSimulator(nil).Statevector(prepared)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout())
		for _, s := range sv.States(1e-12) {
			fmt.Fprintf(cmd.OutOrStdout(), "|%s⟩\t%+.6f\t%.6f\n", s.Outcome, real(s.Amplitude), s.Probability)
		}
	}

	return nil
}
