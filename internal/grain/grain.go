// Package grain implements the Grain LFSR in self-shrinking mode used to
// derive Poseidon round constants.
//
// The register is the 80-bit sliding window described in the Poseidon paper:
// the feedback bit is the XOR of the window bits at offsets 62, 51, 38, 23,
// 13 and 0 (relative to the oldest bit), the oldest bit is dropped and the
// feedback bit appended. The first 160 feedback bits are discarded as
// warm-up. The extracted stream is then self-shrunk: bits are taken in pairs,
// and the second bit of a pair is kept only when the first bit is 1.
package grain

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

const (
	stateBits  = 80
	warmupBits = 160
)

// Stream is a running Grain LFSR seeded from a Poseidon instance description.
// It is not safe for concurrent use.
type Stream struct {
	window *bitset.BitSet
	start  uint
}

// New seeds a stream from the instance parameters. The 80-bit seed layout is
// a wire contract with the published reference vectors: 2 bits of p mod 2,
// 4 bits of S-box class tag, 12 bits of prime bit length, 12 bits of t,
// 10 bits of full rounds, 10 bits of partial rounds, then 30 one-bits.
func New(alpha int, p *big.Int, primeBitLen, t, fullRounds, partialRounds int) *Stream {
	s := &Stream{window: bitset.New(stateBits)}

	var sboxTag uint64
	switch alpha {
	case 3:
		sboxTag = 0
	case 5:
		sboxTag = 1
	case -1:
		sboxTag = 2
	default:
		sboxTag = 3
	}

	pos := uint(0)
	seed := func(v uint64, width uint) {
		for i := width; i > 0; i-- {
			s.window.SetTo(pos, v>>(i-1)&1 == 1)
			pos++
		}
	}
	seed(uint64(p.Bit(0)), 2)
	seed(sboxTag, 4)
	seed(uint64(primeBitLen), 12)
	seed(uint64(t), 12)
	seed(uint64(fullRounds), 10)
	seed(uint64(partialRounds), 10)
	seed(1<<30-1, 30)

	for i := 0; i < warmupBits; i++ {
		s.step()
	}
	return s
}

func (s *Stream) bit(offset uint) bool {
	return s.window.Test((s.start + offset) % stateBits)
}

// step advances the register by one bit and returns the feedback bit.
func (s *Stream) step() bool {
	b := s.bit(62) != s.bit(51) != s.bit(38) != s.bit(23) != s.bit(13) != s.bit(0)
	s.window.SetTo(s.start, b)
	s.start = (s.start + 1) % stateBits
	return b
}

// NextBit returns the next self-shrunk output bit.
func (s *Stream) NextBit() bool {
	for {
		keep := s.step()
		b := s.step()
		if keep {
			return b
		}
	}
}

// NextInteger collects width output bits and interprets them as a big-endian
// binary integer.
func (s *Stream) NextInteger(width int) *big.Int {
	v := new(big.Int)
	for i := 0; i < width; i++ {
		v.Lsh(v, 1)
		if s.NextBit() {
			v.SetBit(v, 0, 1)
		}
	}
	return v
}

// NextFieldElement samples width-bit integers until one falls below the
// modulus and returns it.
func (s *Stream) NextFieldElement(p *big.Int, width int) *big.Int {
	for {
		v := s.NextInteger(width)
		if v.Cmp(p) < 0 {
			return v
		}
	}
}
