package poseidon

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/poseidon/field"
)

// HashType selects the domain-separation mode of the optimized engine.
type HashType uint8

const (
	// ConstInputLen tags fixed-length inputs and zero-pads them up to the
	// input rate.
	ConstInputLen HashType = iota
	// MerkleTree tags fixed-arity tree nodes.
	MerkleTree
)

func (ht HashType) String() string {
	switch ht {
	case ConstInputLen:
		return "ConstInputLen"
	case MerkleTree:
		return "MerkleTree"
	default:
		return fmt.Sprintf("HashType(%d)", uint8(ht))
	}
}

// Optimized is the optimized permutation engine. It replaces the per-partial-
// round dense matrix multiplication with one sparse update and a single
// scalar constant, using tables derived once at construction. Like the plain
// engine, all per-call state is local, so one instance is safe for concurrent
// Run calls.
type Optimized struct {
	params   *Params
	hashType HashType

	constants field.Vector
	preMatrix *field.Matrix
	sparse    []*field.Matrix
}

// NewOptimized derives the optimized round constants, the pre-matrix and the
// per-partial-round sparse matrices for the given parameter set.
func NewOptimized(params *Params, hashType HashType) (*Optimized, error) {
	if hashType != ConstInputLen && hashType != MerkleTree {
		return nil, fmt.Errorf("%w: unknown hash type %d", ErrInvalidParameter, hashType)
	}
	constants, err := optimizedRoundConstants(params.field, params.roundConstants,
		params.t, params.halfFullRounds, params.partialRounds, params.mds)
	if err != nil {
		return nil, err
	}
	preMatrix, sparse, err := optimizedMatrices(params.field, params.mds, params.partialRounds)
	if err != nil {
		return nil, err
	}
	return &Optimized{
		params:    params,
		hashType:  hashType,
		constants: constants,
		preMatrix: preMatrix,
		sparse:    sparse,
	}, nil
}

// Params returns the engine's parameter set.
func (h *Optimized) Params() *Params {
	return h.params
}

// Type returns the engine's domain-separation mode.
func (h *Optimized) Type() HashType {
	return h.hashType
}

// domainSeparation prepends the mode tag to the input: 2^len - 1 for merkle
// trees, len·2^64 plus zero padding up to the input rate for constant-length
// inputs. The separated vector must fill the state exactly.
func (h *Optimized) domainSeparation(input []*big.Int) (field.Vector, error) {
	p := h.params
	length := len(input)

	var tag *big.Int
	padding := 0
	switch h.hashType {
	case MerkleTree:
		tag = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(length)), big.NewInt(1))
	case ConstInputLen:
		if length > p.inputRate {
			return nil, fmt.Errorf("%w: %d elements exceed input rate %d", ErrInvalidInputLength, length, p.inputRate)
		}
		tag = new(big.Int).Lsh(big.NewInt(int64(length)), 64)
		padding = p.inputRate - length
	}

	state := make(field.Vector, 0, 1+length+padding)
	state = append(state, p.field.Element(tag))
	for _, v := range input {
		state = append(state, p.field.Element(v))
	}
	for i := 0; i < padding; i++ {
		state = append(state, new(big.Int))
	}
	if len(state) != p.t {
		return nil, fmt.Errorf("%w: domain-separated input fills %d of %d state slots",
			ErrInvalidInputLength, len(state), p.t)
	}
	return state, nil
}

// Run applies the optimized permutation to the input vector and returns the
// element at index 1 of the final state, matching the plain variant's output
// convention. The input must be strictly shorter than t: the domain tag
// occupies one state slot.
func (h *Optimized) Run(input []*big.Int) (*big.Int, error) {
	p := h.params
	if len(input) >= p.t {
		return nil, fmt.Errorf("%w: %d elements, want fewer than %d", ErrInvalidInputLength, len(input), p.t)
	}
	state, err := h.domainSeparation(input)
	if err != nil {
		return nil, err
	}

	// Pre-round constants are applied directly to the separated input.
	cursor := 0
	for i := 0; i < p.t; i++ {
		state[i] = p.field.Add(state[i], h.constants[cursor])
		cursor++
	}

	if state, err = h.fullRounds(state, &cursor); err != nil {
		return nil, err
	}

	// Boundary round into the sparse section: one more S-box/constant pass,
	// then the pre-matrix.
	if err = h.sboxAndAdd(state, &cursor); err != nil {
		return nil, err
	}
	state = p.field.VecMat(state, h.preMatrix)

	for r := 0; r < p.partialRounds; r++ {
		out, err := p.field.Exp(state[0], p.alpha)
		if err != nil {
			return nil, err
		}
		state[0] = p.field.Add(out, h.constants[cursor])
		cursor++
		state = p.field.VecMat(state, h.sparse[r])
	}

	if state, err = h.fullRounds(state, &cursor); err != nil {
		return nil, err
	}

	// Closing round: S-box every position without constants, then the plain
	// MDS matrix once more.
	for i := 0; i < p.t; i++ {
		out, err := p.field.Exp(state[i], p.alpha)
		if err != nil {
			return nil, err
		}
		state[i] = out
	}
	state = p.field.VecMat(state, p.mds)

	return new(big.Int).Set(state[1]), nil
}

// fullRounds runs halfFullRounds-1 optimized full rounds: S-box then
// constant per position, then the MDS matrix on the right of the state.
func (h *Optimized) fullRounds(state field.Vector, cursor *int) (field.Vector, error) {
	p := h.params
	for r := 0; r < p.halfFullRounds-1; r++ {
		if err := h.sboxAndAdd(state, cursor); err != nil {
			return nil, err
		}
		state = p.field.VecMat(state, p.mds)
	}
	return state, nil
}

func (h *Optimized) sboxAndAdd(state field.Vector, cursor *int) error {
	p := h.params
	for i := 0; i < p.t; i++ {
		out, err := p.field.Exp(state[i], p.alpha)
		if err != nil {
			return err
		}
		state[i] = p.field.Add(out, h.constants[*cursor])
		*cursor++
	}
	return nil
}
