package qdistance

/*
PrepareState builds the amplitude-encoding circuit for one test vector and the
two training vectors. thetaTest and thetaTrain are passed to RY unchanged; the
gate itself applies the half angle. The first training vector is the basis
state |1⟩ and is loaded with a CCX, so it needs no angle.

Resulting state, with the test amplitude pattern present once per index value:

	1/2 Σ_i |0⟩_a |i⟩ |x̃⟩ |c_i⟩ + |1⟩_a |i⟩ |x_i⟩ |c_i⟩
*/
func PrepareState(thetaTest, thetaTrain float64) *Circuit {
	return NewBuilder().
		// uniform superposition over the test/training and index branches
		H(Ancilla).
		H(Index).
		// test vector on the ancilla=1 branch
		CRY(thetaTest, Ancilla, Data).
		// relabel: the test branch becomes ancilla=0
		X(Ancilla).
		// training vector [0, 1] on ancilla=1, index=1
		CCX(Ancilla, Index, Data).
		// relabel: that vector now lives on index=0
		X(Index).
		// second training vector on ancilla=1, index=1
		CCRY(thetaTrain, Ancilla, Index, Data).
		// class = index, so index 0 carries label 0 and index 1 label 1
		CX(Index, Class).
		Build()
}

// PrepareVectors computes both angles and calls PrepareState.
func PrepareVectors(test FeatureVector, training TrainingSet) (*Circuit, error) {
	thetaTest, err := test.Angle()
	if err != nil {
		return nil, err
	}

	thetaTrain, err := training.Second().Vector.Angle()
	if err != nil {
		return nil, err
	}

	return PrepareState(thetaTest, thetaTrain), nil
}
