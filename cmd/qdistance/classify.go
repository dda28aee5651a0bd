package qdistancecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theapemachine/qdistance"
)

const classifyLongDesc string = `Classify test vectors against the training set.

Every --test vector gets its own circuit; all of them run inside a single
simulator session that is stopped when the command ends.

Examples:
  qdistance classify --test 0.053,0.999
  qdistance classify --test 0.053,0.999 --test -0.549,0.836 --shots 4096 --seed 7`

const classifyShortDesc string = "Classify test vectors"

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: classifyShortDesc,
		Long:  classifyLongDesc,
		RunE:  runClassify,
	}

	cmd.Flags().StringArray("test", []string{"0.053,0.999"}, "Test vector as x,y (repeatable)")
	cmd.Flags().Int("shots", qdistance.NewConfig().Shots, "Shots per test vector")
	cmd.Flags().Uint64("seed", 0, "Sampler seed, 0 seeds from the clock")
	cmd.Flags().Float64("norm-tolerance", qdistance.DefaultNormTolerance, "Allowed deviation of x²+y² from 1")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)

	v, err := initViper(cmd)
	if err != nil {
		return err
	}
	config := configFromViper(v)

	training, err := trainingSet(cmd, config.NormTolerance)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetStringArray("test")
	tests := make([]qdistance.FeatureVector, 0, len(raw))
	for _, r := range raw {
		vec, err := parseVector(r, config.NormTolerance)
		if err != nil {
			return err
		}
		tests = append(tests, vec)
	}

	logger.Debug("classifying",
		"tests", len(tests),
		"shots", config.Shots,
		"seed", config.Seed,
		"train", training.Second().Vector,
		"train_encoded", training.Second().Vector.Encoded(),
	)

	classifier := qdistance.NewClassifier(training, qdistance.NewSimulator(config), config)
	results, err := classifier.ClassifyAll(cmd.Context(), tests)
	if err != nil {
		return err
	}

	for _, res := range results {
		expected, err := qdistance.Expect(res.Test, training)
		if err != nil {
			return err
		}

		logger.Debug("counts", "test", res.Test, "encoded", res.Test.Encoded(), "counts", res.Counts)
		logger.Info("classified",
			"test", res.Test,
			"label", int(res.Label),
			"p0", res.Estimate.ClassProbabilities[0],
			"p1", res.Estimate.ClassProbabilities[1],
			"acceptance", res.Estimate.AcceptanceRate,
			"expected_p0", expected.ClassProbabilities[0],
			"expected_acceptance", expected.AcceptanceRate,
		)

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.4f\t%.4f\t%.4f\n",
			res.Test,
			res.Label,
			res.Estimate.ClassProbabilities[0],
			res.Estimate.ClassProbabilities[1],
			res.Estimate.AcceptanceRate,
		)
	}

	logger.Debug("metrics", "summary", classifier.Metrics().ExportMetrics())

	return nil
}
