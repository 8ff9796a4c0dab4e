package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixFromInts(t *testing.T, rows [][]int64) *Matrix {
	t.Helper()
	m := NewMatrix(len(rows))
	for i, row := range rows {
		require.Len(t, row, len(rows))
		for j, v := range row {
			m.Set(i, j, big.NewInt(v))
		}
	}
	return m
}

func vectorFromInts(vals ...int64) Vector {
	v := make(Vector, len(vals))
	for i, e := range vals {
		v[i] = big.NewInt(e)
	}
	return v
}

func TestIdentity(t *testing.T) {
	f := mustField(t, 101)
	id := Identity(3)
	v := vectorFromInts(5, 7, 11)

	assert.Equal(t, v, f.MatVec(id, v))
	assert.Equal(t, v, f.VecMat(v, id))

	m := matrixFromInts(t, [][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}})
	assert.True(t, f.MatMul(m, Identity(3)).Equal(m))
	assert.True(t, f.MatMul(Identity(3), m).Equal(m))
}

func TestMatVecOrientation(t *testing.T) {
	f := mustField(t, 101)
	m := matrixFromInts(t, [][]int64{{1, 2}, {3, 4}})
	v := vectorFromInts(5, 6)

	// m·v applies rows, v·m applies columns; they differ for non-symmetric m.
	left := f.MatVec(m, v)
	right := f.VecMat(v, m)
	assert.Equal(t, vectorFromInts(17, 39), left)
	assert.Equal(t, vectorFromInts(23, 34), right)
}

func TestMatMul(t *testing.T) {
	f := mustField(t, 101)
	a := matrixFromInts(t, [][]int64{{1, 2}, {3, 4}})
	b := matrixFromInts(t, [][]int64{{5, 6}, {7, 8}})

	assert.True(t, f.MatMul(a, b).Equal(matrixFromInts(t, [][]int64{{19, 22}, {43, 50}})))
	assert.True(t, f.MatMul(b, a).Equal(matrixFromInts(t, [][]int64{{23, 34}, {31, 46}})))
}

func TestInvertRoundTrip(t *testing.T) {
	f := mustField(t, 101)
	m := matrixFromInts(t, [][]int64{{2, 3, 5}, {7, 11, 13}, {17, 19, 23}})

	inv, err := f.Invert(m)
	require.NoError(t, err)
	assert.True(t, f.MatMul(m, inv).Equal(Identity(3)))
	assert.True(t, f.MatMul(inv, m).Equal(Identity(3)))
}

func TestInvertNeedsRowSwap(t *testing.T) {
	f := mustField(t, 101)
	// Zero pivot at (0,0) forces a swap with a lower row.
	m := matrixFromInts(t, [][]int64{{0, 1}, {1, 0}})

	inv, err := f.Invert(m)
	require.NoError(t, err)
	assert.True(t, f.MatMul(m, inv).Equal(Identity(2)))
}

func TestInvertSingular(t *testing.T) {
	f := mustField(t, 101)

	_, err := f.Invert(NewMatrix(2))
	assert.ErrorIs(t, err, ErrSingularMatrix)

	// Linearly dependent rows.
	m := matrixFromInts(t, [][]int64{{1, 2}, {2, 4}})
	_, err = f.Invert(m)
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestCloneIsDeep(t *testing.T) {
	m := matrixFromInts(t, [][]int64{{1, 2}, {3, 4}})
	c := m.Clone()
	c.Set(0, 0, big.NewInt(99))
	assert.Equal(t, int64(1), m.At(0, 0).Int64())

	v := vectorFromInts(1, 2, 3)
	cv := v.Clone()
	cv[0].SetInt64(50)
	assert.Equal(t, int64(1), v[0].Int64())
}
