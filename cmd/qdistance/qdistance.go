// Package qdistancecmder wires the distance classifier into a cobra CLI.
package qdistancecmder

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const qdistanceLongDesc string = `qdistance classifies 2-D unit vectors with an interference circuit.

Each test vector is amplitude-encoded next to two labelled training vectors,
a Hadamard on the ancilla interferes the branches, and shots with ancilla=0
are postselected to estimate class probabilities.

Commands:
  qdistance classify --test 0.053,0.999   Classify one or more test vectors
  qdistance circuit --test 0.053,0.999    Print the circuit for a test vector`

const qdistanceShortDesc string = "qdistance - quantum distance classifier"

func NewQDistanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "qdistance",
		Short:         qdistanceShortDesc,
		Long:          qdistanceLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Path to a qdistance.toml config file")
	cmd.PersistentFlags().String("train", "", "Override the label-1 training vector as x,y")

	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newCircuitCmd())

	return cmd
}

func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "qdistance",
	})

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}
