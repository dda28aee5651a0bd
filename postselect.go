package qdistance

import "fmt"

/*
Estimate is the result of postselecting sampled outcomes on ancilla = 0.
ClassProbabilities always sums to 1 because both entries share the Accepted
denominator.
*/
type Estimate struct {
	Total              int
	Accepted           int
	AcceptanceRate     float64
	ClassCounts        [2]int
	ClassProbabilities [2]float64
}

// Predicted returns the label with the larger probability; ties go to label 0.
func (e Estimate) Predicted() Label {
	if e.ClassProbabilities[1] > e.ClassProbabilities[0] {
		return Label1
	}
	return Label0
}

/*
Postselect keeps the outcomes whose ancilla bit is 0 and splits them by the
class bit.

It fails with ErrNoSamples when counts hold no shots, ErrNoPostselected when
no shot survived (the probabilities would be 0/0), and ErrMalformedOutcome for
keys that are not NumQubits binary digits or negative counts.
*/
func Postselect(counts Counts) (Estimate, error) {
	var e Estimate

	for o, n := range counts {
		if n < 0 {
			return Estimate{}, fmt.Errorf("%w: %q has negative count %d", ErrMalformedOutcome, string(o), n)
		}

		ancilla, err := o.Bit(Ancilla)
		if err != nil {
			return Estimate{}, err
		}
		class, err := o.Bit(Class)
		if err != nil {
			return Estimate{}, err
		}

		e.Total += n
		if ancilla != 0 {
			continue
		}
		e.Accepted += n
		e.ClassCounts[class] += n
	}

	if e.Total == 0 {
		return Estimate{}, ErrNoSamples
	}

	e.AcceptanceRate = float64(e.Accepted) / float64(e.Total)

	if e.Accepted == 0 {
		return e, fmt.Errorf("%w: 0 of %d shots had ancilla=0", ErrNoPostselected, e.Total)
	}

	for k := range e.ClassCounts {
		e.ClassProbabilities[k] = float64(e.ClassCounts[k]) / float64(e.Accepted)
	}

	return e, nil
}
