package qdistance

import (
	"context"
	"fmt"

	"github.com/theapemachine/errnie"
)

/*
Classifier is the lazy distance classifier. It keeps the training set and a
backend server; nothing is learned ahead of time, every test vector is
classified by building, sampling and postselecting its own circuit.
*/
type Classifier struct {
	training TrainingSet
	server   Server
	config   *Config
	metrics  *Metrics
	breaker  *Breaker
}

func NewClassifier(training TrainingSet, server Server, config *Config) *Classifier {
	if config == nil {
		config = NewConfig()
	}
	return &Classifier{
		training: training,
		server:   server,
		config:   config,
		metrics:  NewMetrics(),
		breaker:  NewBreaker(config.BreakerMaxFailures, config.BreakerResetTimeout, config.BreakerHalfOpenMax),
	}
}

// Metrics accumulates over every session the classifier has opened.
func (c *Classifier) Metrics() *Metrics {
	return c.metrics
}

// Result is everything produced while classifying one test vector.
type Result struct {
	Test     FeatureVector
	Circuit  *Circuit
	Counts   Counts
	Estimate Estimate
	Label    Label
}

// Classify runs one test vector in its own backend session.
func (c *Classifier) Classify(ctx context.Context, test FeatureVector) (Result, error) {
	results, err := c.ClassifyAll(ctx, []FeatureVector{test})
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

/*
ClassifyAll classifies every test vector inside a single session. The first
failure ends the session and is returned together with the results gathered
so far.
*/
func (c *Classifier) ClassifyAll(ctx context.Context, tests []FeatureVector) ([]Result, error) {
	if c.config.Shots <= 0 {
		return nil, fmt.Errorf("%w: %d shots configured", ErrNoSamples, c.config.Shots)
	}

	results := make([]Result, 0, len(tests))

	err := WithSession(ctx, c.server, c.config, func(sess *Session) error {
		for _, test := range tests {
			result, err := c.classify(ctx, sess, test)
			if err != nil {
				return fmt.Errorf("classify %s: %w", test, err)
			}
			results = append(results, result)
		}
		return nil
	}, WithMetrics(c.metrics), WithBreaker(c.breaker))

	return results, err
}

func (c *Classifier) classify(ctx context.Context, sess *Session, test FeatureVector) (Result, error) {
	prepared, err := PrepareVectors(test, c.training)
	if err != nil {
		return Result{}, err
	}
	circuit := Interfere(prepared)

	counts, err := sess.Sample(ctx, circuit, c.config.Shots)
	if err != nil {
		return Result{}, err
	}

	estimate, err := Postselect(counts)
	if err != nil {
		return Result{}, err
	}
	sess.metrics.recordEstimate(estimate)

	errnie.Info(
		"Classify - test %v, accepted %d/%d, P(0)=%v, P(1)=%v",
		test,
		estimate.Accepted,
		estimate.Total,
		estimate.ClassProbabilities[0],
		estimate.ClassProbabilities[1],
	)

	return Result{
		Test:     test,
		Circuit:  circuit,
		Counts:   counts,
		Estimate: estimate,
		Label:    estimate.Predicted(),
	}, nil
}
