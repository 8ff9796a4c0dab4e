package poseidon

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vocdoni/poseidon/field"
)

// ParseHexElements converts a flat list of hex-encoded field elements (with
// or without a 0x prefix) into field representation.
func ParseHexElements(f *field.Field, list []string) (field.Vector, error) {
	out := make(field.Vector, len(list))
	for i, s := range list {
		v, err := parseHex(s)
		if err != nil {
			return nil, err
		}
		out[i] = f.Element(v)
	}
	return out, nil
}

// ParseHexMatrix converts a square grid of hex-encoded field elements into a
// matrix. All rows must have the same length as the grid.
func ParseHexMatrix(f *field.Field, grid [][]string) (*field.Matrix, error) {
	n := len(grid)
	m := field.NewMatrix(n)
	for i, row := range grid {
		if len(row) != n {
			return nil, fmt.Errorf("%w: matrix row %d has %d entries, want %d", ErrInvalidParameter, i, len(row), n)
		}
		for j, s := range row {
			v, err := parseHex(s)
			if err != nil {
				return nil, err
			}
			m.Set(i, j, f.Element(v))
		}
	}
	return m, nil
}

// HexElements renders field elements as fixed-width hex strings.
func HexElements(v field.Vector, width int) []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = fmt.Sprintf("0x%0*x", width, e)
	}
	return out
}

// HexMatrix renders a matrix as fixed-width hex strings.
func HexMatrix(m *field.Matrix, width int) [][]string {
	n := m.Size()
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = make([]string, n)
		for j := 0; j < n; j++ {
			out[i][j] = fmt.Sprintf("0x%0*x", width, m.At(i, j))
		}
	}
	return out
}

func parseHex(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("%w: malformed hex element %q", ErrInvalidParameter, s)
	}
	return v, nil
}
