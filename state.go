package qdistance

/*
State is one computational basis state of a StateVector together with its
amplitude and the probability of measuring it.
*/
type State struct {
	Outcome     Outcome
	Amplitude   complex128
	Probability float64
}
