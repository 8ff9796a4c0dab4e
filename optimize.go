package poseidon

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/poseidon/field"
)

// optimizedRoundConstants folds the plain round constants through the inverse
// MDS matrix into the schedule consumed by the optimized permutation.
//
// Emission order is a contract with the optimized round loop: the untouched
// pre-round chunk, halfFull-1 full-round chunks times M^-1, the telescoped
// boundary chunk, one scalar per partial round (collected in reverse), then
// the final halfFull-1 full-round chunks times M^-1. Each full round keeps t
// constants while each partial round keeps a single one: the per-partial-round
// vector additions are back-substituted through the matrix so the optimized
// permutation only ever adds one scalar there.
func optimizedRoundConstants(f *field.Field, constants field.Vector, t, halfFullRounds, partialRounds int, mds *field.Matrix) (field.Vector, error) {
	mInv, err := f.Invert(mds)
	if err != nil {
		return nil, fmt.Errorf("poseidon: mds matrix: %w", err)
	}

	chunks := make([]field.Vector, 0, len(constants)/t)
	for i := 0; i < len(constants); i += t {
		chunks = append(chunks, constants[i:i+t])
	}

	out := make(field.Vector, 0, t*2*halfFullRounds+partialRounds)
	out = append(out, chunks[0].Clone()...)
	for r := 1; r < halfFullRounds; r++ {
		out = append(out, f.VecMat(chunks[r], mInv)...)
	}

	// Back-substitute the partial-round constants, walking the chunks in
	// reverse from the end of the first full-round block.
	partialConstants := make(field.Vector, 0, partialRounds)
	finalRound := halfFullRounds + partialRounds
	acc := chunks[finalRound].Clone()
	for r := 0; r < partialRounds; r++ {
		folded := f.VecMat(acc, mInv)
		partialConstants = append(partialConstants, folded[0])
		folded[0] = new(big.Int)
		prev := chunks[finalRound-r-1]
		for i := range folded {
			folded[i] = f.Add(folded[i], prev[i])
		}
		acc = folded
	}

	out = append(out, f.VecMat(acc, mInv)...)
	for i := len(partialConstants) - 1; i >= 0; i-- {
		out = append(out, partialConstants[i])
	}

	start := halfFullRounds + partialRounds
	for r := 1; r < halfFullRounds; r++ {
		out = append(out, f.VecMat(chunks[start+r], mInv)...)
	}
	return out, nil
}

// optimizedMatrices factors the MDS matrix into the pre-matrix and one sparse
// matrix per partial round. The sparse sequence is reversed so that partial
// round r consumes entry r directly.
func optimizedMatrices(f *field.Field, mds *field.Matrix, partialRounds int) (*field.Matrix, []*field.Matrix, error) {
	sparse := make([]*field.Matrix, 0, partialRounds)
	m := mds.Clone()
	for r := 0; r < partialRounds; r++ {
		m1, m2, err := sparseFactorize(f, m)
		if err != nil {
			return nil, nil, fmt.Errorf("poseidon: partial round %d: %w", r, err)
		}
		sparse = append(sparse, m2)
		m = f.MatMul(mds, m1)
	}
	for i, j := 0, len(sparse)-1; i < j; i, j = i+1, j-1 {
		sparse[i], sparse[j] = sparse[j], sparse[i]
	}
	return m, sparse, nil
}

// sparseFactorize splits m into m1·m2 where m1 is m with its first row and
// column replaced by the unit vector, and m2 is the identity except for m's
// first row and a first column derived from the lower-right submatrix. The
// product is verified to reproduce m; a mismatch means a singular submatrix.
func sparseFactorize(f *field.Field, m *field.Matrix) (*field.Matrix, *field.Matrix, error) {
	n := m.Size()

	m1 := m.Clone()
	zero := new(big.Int)
	for j := 0; j < n; j++ {
		m1.Set(0, j, zero)
	}
	for i := 0; i < n; i++ {
		m1.Set(i, 0, zero)
	}
	m1.Set(0, 0, f.One())

	w := make(field.Vector, n-1)
	mHat := field.NewMatrix(n - 1)
	for i := 1; i < n; i++ {
		w[i-1] = m.At(i, 0)
		for j := 1; j < n; j++ {
			mHat.Set(i-1, j-1, m.At(i, j))
		}
	}
	mHatInv, err := f.Invert(mHat)
	if err != nil {
		return nil, nil, err
	}
	wHat := f.MatVec(mHatInv, w)

	m2 := field.Identity(n)
	for j := 0; j < n; j++ {
		m2.Set(0, j, m.At(0, j))
	}
	for i := 1; i < n; i++ {
		m2.Set(i, 0, wHat[i-1])
	}

	if !f.MatMul(m1, m2).Equal(m) {
		return nil, nil, fmt.Errorf("%w: sparse factorization does not reproduce the matrix", field.ErrSingularMatrix)
	}
	return m1, m2, nil
}
