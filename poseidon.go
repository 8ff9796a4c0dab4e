// Package poseidon implements the Poseidon permutation over an arbitrary
// prime field, including the parameter generation a concrete instance needs:
// round-number selection, Grain LFSR round constants, the Cauchy MDS matrix,
// and the Neptune-style optimized variant with its sparse matrix
// factorization.
package poseidon

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/poseidon/field"
)

// Poseidon is the plain permutation engine. The precomputed tables live on
// the shared Params; the state vector and constant cursor are call-local, so
// a single instance is safe for concurrent Run calls.
type Poseidon struct {
	params *Params
}

// New returns a plain Poseidon engine over the given parameter set.
func New(params *Params) *Poseidon {
	return &Poseidon{params: params}
}

// Params returns the engine's parameter set.
func (h *Poseidon) Params() *Params {
	return h.params
}

// Run applies the permutation to the input vector and returns the hash, the
// element at index 1 of the final state. Inputs shorter than t are right-
// padded with zeros; longer inputs fail with ErrInvalidInputLength.
func (h *Poseidon) Run(input []*big.Int) (*big.Int, error) {
	p := h.params
	if len(input) > p.t {
		return nil, fmt.Errorf("%w: %d elements, want at most %d", ErrInvalidInputLength, len(input), p.t)
	}

	state := make(field.Vector, p.t)
	for i := range state {
		if i < len(input) {
			state[i] = p.field.Element(input[i])
		} else {
			state[i] = new(big.Int)
		}
	}

	cursor := 0
	var err error
	if state, err = h.fullRounds(state, &cursor); err != nil {
		return nil, err
	}
	if state, err = h.partialRounds(state, &cursor); err != nil {
		return nil, err
	}
	if state, err = h.fullRounds(state, &cursor); err != nil {
		return nil, err
	}

	return new(big.Int).Set(state[1]), nil
}

// fullRounds runs half the full rounds: per position, add the next round
// constant then apply the S-box, and finish each round by applying the MDS
// matrix on the left of the state.
func (h *Poseidon) fullRounds(state field.Vector, cursor *int) (field.Vector, error) {
	p := h.params
	for r := 0; r < p.halfFullRounds; r++ {
		for i := 0; i < p.t; i++ {
			state[i] = p.field.Add(state[i], p.roundConstants[*cursor])
			*cursor++
			out, err := p.field.Exp(state[i], p.alpha)
			if err != nil {
				return nil, err
			}
			state[i] = out
		}
		state = p.field.MatVec(p.mds, state)
	}
	return state, nil
}

// partialRounds consumes a full chunk of t constants per round but applies
// the S-box to position 0 only.
func (h *Poseidon) partialRounds(state field.Vector, cursor *int) (field.Vector, error) {
	p := h.params
	for r := 0; r < p.partialRounds; r++ {
		for i := 0; i < p.t; i++ {
			state[i] = p.field.Add(state[i], p.roundConstants[*cursor])
			*cursor++
		}
		out, err := p.field.Exp(state[0], p.alpha)
		if err != nil {
			return nil, err
		}
		state[0] = out
		state = p.field.MatVec(p.mds, state)
	}
	return state, nil
}
