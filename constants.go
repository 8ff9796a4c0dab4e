package poseidon

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/poseidon/field"
	"github.com/vocdoni/poseidon/internal/grain"
)

// calcRoundConstants derives the t·(full+partial) round constants from the
// Grain LFSR stream seeded with the instance parameters. The derivation is
// deterministic and bit-exact against the published reference vectors.
func calcRoundConstants(f *field.Field, t, fullRounds, partialRounds, alpha, primeBitLen int) field.Vector {
	p := f.Modulus()
	stream := grain.New(alpha, p, primeBitLen, t, fullRounds, partialRounds)

	constants := make(field.Vector, t*(fullRounds+partialRounds))
	for i := range constants {
		constants[i] = stream.NextFieldElement(p, primeBitLen)
	}
	return constants
}

// mdsMatrixGenerator builds the t×t Cauchy matrix over the disjoint ranges
// x = [0, t) and y = [t, 2t): entry (i,j) is (x_i + y_j)^-1. A zero sum means
// the (p, t) choice is invalid and surfaces as the underlying ErrArithmetic.
func mdsMatrixGenerator(f *field.Field, t int) (*field.Matrix, error) {
	m := field.NewMatrix(t)
	sum := new(big.Int)
	for i := 0; i < t; i++ {
		for j := 0; j < t; j++ {
			sum.SetInt64(int64(i + t + j))
			inv, err := f.Inverse(f.Element(sum))
			if err != nil {
				return nil, fmt.Errorf("mds entry (%d,%d): %w", i, j, err)
			}
			m.Set(i, j, inv)
		}
	}
	return m, nil
}
