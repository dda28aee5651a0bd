package qdistance

import "context"

// Program is an executable produced by Backend.Compile.
type Program interface {
	// Source returns the circuit the program was compiled from.
	Source() *Circuit
}

/*
Backend compiles and executes circuits. Compile fails with a
*CompilationError for unknown gates or invalid qubit indices; Run fails with
an *ExecutionError when the backend is unavailable. Run returns every shot at
once or nothing.
*/
type Backend interface {
	Compile(circuit *Circuit) (Program, error)
	Run(ctx context.Context, program Program, shots int) ([]Shot, error)
}

/*
Server is the lifecycle of the process behind a Backend. Start is called once
per session before anything is compiled; Stop is always called when the
session ends, whatever the outcome.
*/
type Server interface {
	Start(ctx context.Context) (Backend, error)
	Stop() error
}
