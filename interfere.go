package qdistance

/*
Interfere appends a Hadamard on the ancilla and a measurement of all four
qubits to a prepared circuit, returning a new Circuit. The Hadamard mixes the
test and training branches; the ancilla=0 half of the result has weight
‖x̃ + x_i‖²/8 per training vector, which is K(x̃, x_i)/2 for unit vectors.

It is not guarded: calling it on its own output applies the Hadamard again.
*/
func Interfere(prepared *Circuit) *Circuit {
	return prepared.Extend().
		H(Ancilla).
		MeasureAll().
		Build()
}
