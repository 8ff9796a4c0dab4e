package poseidon

import "errors"

var (
	// ErrInvalidParameter reports a construction-time configuration error:
	// an unsupported alpha, or supplied tables whose sizes do not match the
	// instance dimensions.
	ErrInvalidParameter = errors.New("poseidon: invalid parameter")

	// ErrInvalidInputLength reports a hash input that violates the variant's
	// length contract.
	ErrInvalidInputLength = errors.New("poseidon: invalid input length")
)
