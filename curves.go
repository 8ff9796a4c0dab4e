package poseidon

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

// Preset configurations for the reference fields the published parameter sets
// target. The rate is t-1: one state slot is reserved for the capacity
// (plain sponge use) or the domain tag (optimized variant).

// BN254Config returns a width-t configuration over the bn254 scalar field
// with the x^5 S-box at 128-bit security.
func BN254Config(t int) Config {
	return Config{
		Prime:         ecc.BN254.ScalarField(),
		SecurityLevel: 128,
		Alpha:         5,
		InputRate:     t - 1,
		T:             t,
	}
}

// BLS12381Config returns a width-t configuration over the bls12-381 scalar
// field with the x^5 S-box at 128-bit security.
func BLS12381Config(t int) Config {
	return Config{
		Prime:         ecc.BLS12_381.ScalarField(),
		SecurityLevel: 128,
		Alpha:         5,
		InputRate:     t - 1,
		T:             t,
	}
}

// BLS12377Config returns a width-t configuration over the bls12-377 scalar
// field. p-1 shares factors with the smaller odd exponents there, so the
// published parameter sets use the x^17 S-box.
func BLS12377Config(t int) Config {
	return Config{
		Prime:         ecc.BLS12_377.ScalarField(),
		SecurityLevel: 128,
		Alpha:         17,
		InputRate:     t - 1,
		T:             t,
	}
}

// Prime64 returns the 64-bit test modulus used by the published Grain
// reference vectors.
func Prime64() *big.Int {
	v, _ := new(big.Int).SetString("fffffffffffffeff", 16)
	return v
}
