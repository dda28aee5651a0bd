package qdistance

import "time"

type Config struct {
	// Shots is the number of executions per test vector.
	Shots int
	// Seed feeds the sampler; 0 seeds from the clock.
	Seed uint64
	// NormTolerance bounds |x² + y² - 1| for parsed feature vectors.
	NormTolerance float64

	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
	BreakerHalfOpenMax  int
}

func NewConfig() *Config {
	return &Config{
		Shots:               1024,
		NormTolerance:       DefaultNormTolerance,
		BreakerMaxFailures:  3,
		BreakerResetTimeout: 30 * time.Second,
		BreakerHalfOpenMax:  1,
	}
}
