package qdistance

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeProgram struct {
	source *Circuit
}

func (p fakeProgram) Source() *Circuit { return p.source }

// fakeServer is a Server and Backend whose failures are scripted.
type fakeServer struct {
	startErr error
	stopErr  error
	runErr   error
	short    int
	starts   int
	stops    int
	runs     int
}

func (f *fakeServer) Start(ctx context.Context) (Backend, error) {
	f.starts++
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f, nil
}

func (f *fakeServer) Stop() error {
	f.stops++
	return f.stopErr
}

func (f *fakeServer) Compile(circuit *Circuit) (Program, error) {
	return fakeProgram{source: circuit}, nil
}

func (f *fakeServer) Run(ctx context.Context, prog Program, shots int) ([]Shot, error) {
	f.runs++
	if f.runErr != nil {
		return nil, f.runErr
	}
	out := make([]Shot, shots-f.short)
	for i := range out {
		out[i] = Shot{0, 0, 0, 0}
	}
	return out, nil
}

func TestWithSession(t *testing.T) {
	Convey("Given a server", t, func() {
		server := &fakeServer{}
		ctx := context.Background()

		Convey("It should stop the server after a successful callback", func() {
			err := WithSession(ctx, server, nil, func(sess *Session) error {
				counts, err := sess.Sample(ctx, Interfere(PrepareState(1, 2)), 16)
				So(err, ShouldBeNil)
				So(counts, ShouldResemble, Counts{"0000": 16})
				return nil
			})

			So(err, ShouldBeNil)
			So(server.starts, ShouldEqual, 1)
			So(server.stops, ShouldEqual, 1)
		})

		Convey("It should stop the server when the callback fails", func() {
			boom := errors.New("boom")
			err := WithSession(ctx, server, nil, func(*Session) error {
				return boom
			})

			So(errors.Is(err, boom), ShouldBeTrue)
			So(server.stops, ShouldEqual, 1)
		})

		Convey("It should stop the server when the callback panics", func() {
			So(func() {
				WithSession(ctx, server, nil, func(*Session) error {
					panic("callback exploded")
				})
			}, ShouldPanic)
			So(server.stops, ShouldEqual, 1)
		})

		Convey("It should join a Stop failure into the result", func() {
			server.stopErr = errors.New("stuck")
			boom := errors.New("boom")

			err := WithSession(ctx, server, nil, func(*Session) error {
				return boom
			})

			So(errors.Is(err, boom), ShouldBeTrue)
			So(errors.Is(err, server.stopErr), ShouldBeTrue)

			var execErr *ExecutionError
			So(errors.As(err, &execErr), ShouldBeTrue)
			So(execErr.Op, ShouldEqual, "stop")
		})

		Convey("It should not call fn or Stop when Start fails", func() {
			server.startErr = ErrBackendUnavailable
			called := false

			err := WithSession(ctx, server, nil, func(*Session) error {
				called = true
				return nil
			})

			So(errors.Is(err, ErrBackendUnavailable), ShouldBeTrue)
			So(called, ShouldBeFalse)
			So(server.stops, ShouldEqual, 0)
		})

		Convey("It should share metrics passed in as an option", func() {
			metrics := NewMetrics()
			for range 2 {
				err := WithSession(ctx, server, nil, func(sess *Session) error {
					_, err := sess.Sample(ctx, Interfere(PrepareState(1, 2)), 8)
					return err
				}, WithMetrics(metrics))
				So(err, ShouldBeNil)
			}

			So(metrics.RunCount, ShouldEqual, int64(2))
			So(metrics.CircuitsCompiled, ShouldEqual, int64(2))
			So(metrics.ShotsExecuted, ShouldEqual, int64(16))
		})
	})
}

func TestSessionShotCount(t *testing.T) {
	Convey("Given a backend that returns fewer shots than requested", t, func() {
		server := &fakeServer{short: 1023}
		ctx := context.Background()

		Convey("The run should fail instead of yielding a partial estimate", func() {
			var counts Counts
			err := WithSession(ctx, server, nil, func(sess *Session) error {
				var err error
				counts, err = sess.Sample(ctx, Interfere(PrepareState(1, 2)), 1024)
				return err
			})

			var execErr *ExecutionError
			So(errors.As(err, &execErr), ShouldBeTrue)
			So(execErr.Op, ShouldEqual, "run")
			So(err.Error(), ShouldContainSubstring, "returned 1 shots, requested 1024")
			So(counts, ShouldBeNil)
			So(server.stops, ShouldEqual, 1)
		})
	})
}

func TestSessionBreaker(t *testing.T) {
	Convey("Given a backend that keeps reporting itself unavailable", t, func() {
		server := &fakeServer{runErr: &ExecutionError{Op: "run", Err: ErrBackendUnavailable}}
		config := NewConfig()
		config.BreakerMaxFailures = 2
		config.BreakerResetTimeout = time.Hour
		ctx := context.Background()

		Convey("The breaker should open and fail fast without reaching the backend", func() {
			var errs []error

			WithSession(ctx, server, config, func(sess *Session) error {
				prog, err := sess.Compile(PrepareState(1, 2))
				So(err, ShouldBeNil)
				for range 4 {
					_, err := sess.Run(ctx, prog, 1)
					errs = append(errs, err)
				}
				So(sess.Breaker().State(), ShouldEqual, BreakerOpen)
				So(sess.Metrics().BreakerRejections, ShouldEqual, int64(2))
				return nil
			})

			So(server.runs, ShouldEqual, 2)
			So(errors.Is(errs[0], ErrBackendUnavailable), ShouldBeTrue)
			So(errors.Is(errs[1], ErrBackendUnavailable), ShouldBeTrue)
			So(errors.Is(errs[2], ErrBreakerOpen), ShouldBeTrue)
			So(errors.Is(errs[3], ErrBreakerOpen), ShouldBeTrue)
		})
	})

	Convey("Given a backend failing for reasons of its input", t, func() {
		server := &fakeServer{runErr: &ExecutionError{Op: "run", Err: ErrNoSamples}}
		config := NewConfig()
		config.BreakerMaxFailures = 1
		ctx := context.Background()

		Convey("The breaker should stay closed", func() {
			WithSession(ctx, server, config, func(sess *Session) error {
				prog, _ := sess.Compile(PrepareState(1, 2))
				for range 3 {
					sess.Run(ctx, prog, 1)
				}
				So(sess.Breaker().State(), ShouldEqual, BreakerClosed)
				return nil
			})

			So(server.runs, ShouldEqual, 3)
		})
	})
}
