package qdistance

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPostselect(t *testing.T) {
	Convey("Given counts with mixed ancilla outcomes", t, func() {
		counts := Counts{"0000": 3, "0001": 1, "1001": 4}

		Convey("It should keep only ancilla=0 shots", func() {
			e, err := Postselect(counts)
			So(err, ShouldBeNil)
			So(e.Total, ShouldEqual, 8)
			So(e.Accepted, ShouldEqual, 4)
			So(e.AcceptanceRate, ShouldEqual, 0.5)
			So(e.ClassCounts, ShouldResemble, [2]int{3, 1})
			So(e.ClassProbabilities[0], ShouldEqual, 0.75)
			So(e.ClassProbabilities[1], ShouldEqual, 0.25)
			So(e.Predicted(), ShouldEqual, Label0)
		})

		Convey("Class probabilities should sum to one", func() {
			e, err := Postselect(Counts{"0110": 7, "0111": 5, "0011": 9, "1110": 2})
			So(err, ShouldBeNil)
			So(e.ClassProbabilities[0]+e.ClassProbabilities[1], ShouldAlmostEqual, 1.0, 1e-12)
			So(e.Predicted(), ShouldEqual, Label1)
		})
	})

	Convey("Given a tie between the classes", t, func() {
		e, err := Postselect(Counts{"0000": 2, "0001": 2})
		So(err, ShouldBeNil)

		Convey("It should predict label 0", func() {
			So(e.Predicted(), ShouldEqual, Label0)
		})
	})

	Convey("Given no shots", t, func() {
		Convey("It should fail with ErrNoSamples", func() {
			_, err := Postselect(Counts{})
			So(errors.Is(err, ErrNoSamples), ShouldBeTrue)

			_, err = Postselect(Counts{"0000": 0})
			So(errors.Is(err, ErrNoSamples), ShouldBeTrue)
		})
	})

	Convey("Given shots where the ancilla always read 1", t, func() {
		e, err := Postselect(Counts{"1000": 10})

		Convey("It should fail with ErrNoPostselected and keep the totals", func() {
			So(errors.Is(err, ErrNoPostselected), ShouldBeTrue)
			So(e.Total, ShouldEqual, 10)
			So(e.Accepted, ShouldEqual, 0)
			So(e.AcceptanceRate, ShouldEqual, 0.0)
		})
	})

	Convey("Given malformed counts", t, func() {
		for _, counts := range []Counts{
			{"000": 1},
			{"00000": 1},
			{"00x0": 1},
			{"0000": -1},
		} {
			Convey("It should reject "+counts.String(), func() {
				_, err := Postselect(counts)
				So(errors.Is(err, ErrMalformedOutcome), ShouldBeTrue)
			})
		}
	})
}

func TestTally(t *testing.T) {
	Convey("Given a batch of shots", t, func() {
		shots := []Shot{
			{0, 0, 1, 1},
			{0, 0, 1, 1},
			{1, 0, 0, 0},
		}

		Convey("It should count them by outcome", func() {
			counts, err := Tally(shots)
			So(err, ShouldBeNil)
			So(counts, ShouldResemble, Counts{"0011": 2, "1000": 1})
			So(counts.Total(), ShouldEqual, len(shots))
			So(counts.Outcomes(), ShouldResemble, []Outcome{"0011", "1000"})
			So(counts.String(), ShouldEqual, "{0011:2 1000:1}")
		})

		Convey("It should reject a shot of the wrong width", func() {
			_, err := Tally(append(shots, Shot{0, 1}))
			So(errors.Is(err, ErrMalformedOutcome), ShouldBeTrue)
		})
	})
}
