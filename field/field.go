// Package field implements modular arithmetic over a runtime prime modulus,
// together with the dense matrix operations Poseidon's linear layers need.
//
// Elements are *big.Int values kept in the canonical range [0, p). Every
// operation reduces its result before returning it, so no value escapes the
// range without an explicit reduction.
package field

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrArithmetic is returned for undefined field operations, such as the
	// multiplicative inverse of the zero element.
	ErrArithmetic = errors.New("field: arithmetic error")

	// ErrSingularMatrix is returned when a matrix inversion or factorization
	// encounters a non-invertible (sub)matrix.
	ErrSingularMatrix = errors.New("field: singular matrix")
)

// Field performs arithmetic modulo a fixed odd prime.
type Field struct {
	p *big.Int
}

// New returns a Field for the given modulus. The modulus is expected to be an
// odd prime; only cheap structural checks are performed here.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be a positive odd prime", ErrArithmetic)
	}
	if p.Bit(0) == 0 || p.Cmp(big.NewInt(3)) < 0 {
		return nil, fmt.Errorf("%w: modulus %s is not an odd prime", ErrArithmetic, p)
	}
	return &Field{p: new(big.Int).Set(p)}, nil
}

// Modulus returns a copy of the field modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// BitLen returns the bit length of the modulus.
func (f *Field) BitLen() int {
	return f.p.BitLen()
}

// Element reduces v into the canonical range [0, p) and returns it as a fresh
// field element.
func (f *Field) Element(v *big.Int) *big.Int {
	return new(big.Int).Mod(v, f.p)
}

// Zero returns the additive identity.
func (f *Field) Zero() *big.Int {
	return new(big.Int)
}

// One returns the multiplicative identity.
func (f *Field) One() *big.Int {
	return big.NewInt(1)
}

// Add returns a+b mod p.
func (f *Field) Add(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Add(a, b), f.p)
}

// Sub returns a-b mod p.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(a, b), f.p)
}

// Mul returns a*b mod p.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), f.p)
}

// Inverse returns the multiplicative inverse of a. The inverse of the zero
// element is undefined and fails with ErrArithmetic.
func (f *Field) Inverse(a *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, f.p)
	if inv == nil {
		return nil, fmt.Errorf("%w: inverse of zero element", ErrArithmetic)
	}
	return inv, nil
}

// Exp returns a^alpha mod p. The exponent is a non-negative integer, or -1 to
// denote the multiplicative inverse; any other negative value fails with
// ErrArithmetic.
func (f *Field) Exp(a *big.Int, alpha int) (*big.Int, error) {
	switch {
	case alpha == -1:
		return f.Inverse(a)
	case alpha < 0:
		return nil, fmt.Errorf("%w: unsupported exponent %d", ErrArithmetic, alpha)
	default:
		return new(big.Int).Exp(a, big.NewInt(int64(alpha)), f.p), nil
	}
}
