package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustField(t *testing.T, p int64) *Field {
	t.Helper()
	f, err := New(big.NewInt(p))
	require.NoError(t, err)
	return f
}

func TestNewRejectsBadModulus(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrArithmetic)

	_, err = New(big.NewInt(0))
	assert.ErrorIs(t, err, ErrArithmetic)

	_, err = New(big.NewInt(10))
	assert.ErrorIs(t, err, ErrArithmetic)

	_, err = New(big.NewInt(1))
	assert.ErrorIs(t, err, ErrArithmetic)
}

func TestArithmetic(t *testing.T) {
	f := mustField(t, 17)

	cases := []struct {
		name string
		got  *big.Int
		want int64
	}{
		{"add", f.Add(big.NewInt(9), big.NewInt(12)), 4},
		{"sub", f.Sub(big.NewInt(3), big.NewInt(5)), 15},
		{"sub negative operand", f.Sub(big.NewInt(0), big.NewInt(1)), 16},
		{"mul", f.Mul(big.NewInt(7), big.NewInt(5)), 1},
		{"element reduces", f.Element(big.NewInt(40)), 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got.Int64())
		})
	}
}

func TestInverse(t *testing.T) {
	f := mustField(t, 17)
	for v := int64(1); v < 17; v++ {
		inv, err := f.Inverse(big.NewInt(v))
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.Mul(big.NewInt(v), inv).Int64(), "v=%d", v)
	}

	_, err := f.Inverse(big.NewInt(0))
	assert.ErrorIs(t, err, ErrArithmetic)

	// Multiples of p reduce to zero and must fail too.
	_, err = f.Inverse(big.NewInt(34))
	assert.ErrorIs(t, err, ErrArithmetic)
}

func TestExp(t *testing.T) {
	f := mustField(t, 17)

	got, err := f.Exp(big.NewInt(3), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Int64()) // 3^5 = 243 = 14*17 + 5

	got, err = f.Exp(big.NewInt(3), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Int64())

	// Exponent -1 denotes the multiplicative inverse.
	got, err = f.Exp(big.NewInt(3), -1)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Int64())

	_, err = f.Exp(big.NewInt(0), -1)
	assert.ErrorIs(t, err, ErrArithmetic)

	_, err = f.Exp(big.NewInt(3), -2)
	assert.ErrorIs(t, err, ErrArithmetic)
}

func TestOperationsStayInRange(t *testing.T) {
	f := mustField(t, 17)
	p := f.Modulus()

	vals := []*big.Int{
		f.Add(big.NewInt(16), big.NewInt(16)),
		f.Sub(big.NewInt(-40), big.NewInt(3)),
		f.Mul(big.NewInt(-5), big.NewInt(123)),
		f.Element(big.NewInt(-1)),
	}
	for i, v := range vals {
		assert.True(t, v.Sign() >= 0 && v.Cmp(p) < 0, "value %d out of range: %s", i, v)
	}
}
