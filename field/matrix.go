package field

import "math/big"

// Vector is an ordered sequence of field elements.
type Vector []*big.Int

// Clone returns a deep copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for i, e := range v {
		out[i] = new(big.Int).Set(e)
	}
	return out
}

// Matrix is a dense n×n grid of field elements, stored row-major.
type Matrix struct {
	n int
	a []*big.Int
}

// NewMatrix returns a zero-filled n×n matrix.
func NewMatrix(n int) *Matrix {
	m := &Matrix{n: n, a: make([]*big.Int, n*n)}
	for i := range m.a {
		m.a[i] = new(big.Int)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		m.a[i*n+i].SetUint64(1)
	}
	return m
}

// Size returns the matrix dimension.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) *big.Int {
	return m.a[i*m.n+j]
}

// Set stores a copy of v at row i, column j.
func (m *Matrix) Set(i, j int, v *big.Int) {
	m.a[i*m.n+j] = new(big.Int).Set(v)
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{n: m.n, a: make([]*big.Int, len(m.a))}
	for i, e := range m.a {
		out.a[i] = new(big.Int).Set(e)
	}
	return out
}

// Equal reports whether both matrices hold the same elements.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.n != o.n {
		return false
	}
	for i, e := range m.a {
		if e.Cmp(o.a[i]) != 0 {
			return false
		}
	}
	return true
}

// MatMul returns the matrix product a·b.
func (f *Field) MatMul(a, b *Matrix) *Matrix {
	n := a.n
	out := NewMatrix(n)
	tmp := new(big.Int)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := new(big.Int)
			for k := 0; k < n; k++ {
				sum.Add(sum, tmp.Mul(a.a[i*n+k], b.a[k*n+j]))
			}
			out.a[i*n+j] = sum.Mod(sum, f.p)
		}
	}
	return out
}

// MatVec returns the product m·v (matrix applied on the left of the vector).
func (f *Field) MatVec(m *Matrix, v Vector) Vector {
	n := m.n
	out := make(Vector, n)
	tmp := new(big.Int)
	for i := 0; i < n; i++ {
		sum := new(big.Int)
		for j := 0; j < n; j++ {
			sum.Add(sum, tmp.Mul(m.a[i*n+j], v[j]))
		}
		out[i] = sum.Mod(sum, f.p)
	}
	return out
}

// VecMat returns the product v·m (matrix applied on the right of the vector).
func (f *Field) VecMat(v Vector, m *Matrix) Vector {
	n := m.n
	out := make(Vector, n)
	tmp := new(big.Int)
	for j := 0; j < n; j++ {
		sum := new(big.Int)
		for i := 0; i < n; i++ {
			sum.Add(sum, tmp.Mul(v[i], m.a[i*n+j]))
		}
		out[j] = sum.Mod(sum, f.p)
	}
	return out
}

// Invert returns the inverse of m computed by Gauss-Jordan elimination over
// the field. It fails with ErrSingularMatrix if a pivot column has no
// invertible entry.
func (f *Field) Invert(m *Matrix) (*Matrix, error) {
	n := m.n

	// Augmented rows [m | I].
	rows := make([]Vector, n)
	for i := 0; i < n; i++ {
		rows[i] = make(Vector, 2*n)
		for j := 0; j < n; j++ {
			rows[i][j] = new(big.Int).Mod(m.a[i*n+j], f.p)
			rows[i][n+j] = new(big.Int)
		}
		rows[i][n+i].SetUint64(1)
	}

	tmp := new(big.Int)
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if rows[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, ErrSingularMatrix
		}
		rows[col], rows[pivot] = rows[pivot], rows[col]

		inv, err := f.Inverse(rows[col][col])
		if err != nil {
			return nil, ErrSingularMatrix
		}
		for j := 0; j < 2*n; j++ {
			rows[col][j].Mod(rows[col][j].Mul(rows[col][j], inv), f.p)
		}

		for r := 0; r < n; r++ {
			if r == col || rows[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Int).Set(rows[r][col])
			for j := 0; j < 2*n; j++ {
				tmp.Mul(factor, rows[col][j])
				rows[r][j].Mod(rows[r][j].Sub(rows[r][j], tmp), f.p)
			}
		}
	}

	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.a[i*n+j].Set(rows[i][n+j])
		}
	}
	return out, nil
}
