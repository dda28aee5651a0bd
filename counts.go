package qdistance

import (
	"fmt"
	"sort"
	"strings"
)

// Counts maps each observed Outcome to the number of shots that produced it.
type Counts map[Outcome]int

/*
Tally aggregates shots into Counts. Every shot must be NumQubits wide and in
Layout order; anything else would silently corrupt the postselection.
*/
func Tally(shots []Shot) (Counts, error) {
	counts := make(Counts)
	for i, shot := range shots {
		o := shot.Outcome()
		if err := o.validate(); err != nil {
			return nil, fmt.Errorf("shot %d: %w", i, err)
		}
		counts[o]++
	}
	return counts, nil
}

// Total is the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Outcomes returns the observed outcomes in lexical order.
func (c Counts) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(c))
	for o := range c {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c Counts) String() string {
	parts := make([]string, 0, len(c))
	for _, o := range c.Outcomes() {
		parts = append(parts, fmt.Sprintf("%s:%d", o, c[o]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
