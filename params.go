package poseidon

import (
	"fmt"
	"math"
	"math/big"

	"github.com/vocdoni/poseidon/field"
	"github.com/vocdoni/poseidon/logger"
)

// Config carries the construction inputs for a Poseidon instance. Only Prime,
// SecurityLevel, Alpha, InputRate and T are mandatory; everything else is
// derived when absent.
type Config struct {
	// Prime is the field modulus.
	Prime *big.Int
	// SecurityLevel is the target security level in bits (M in the paper).
	SecurityLevel int
	// Alpha is the S-box exponent: a positive integer coprime to Prime-1, or
	// -1 for the inverse S-box.
	Alpha int
	// InputRate is the number of message elements absorbed per hash.
	InputRate int
	// T is the permutation state width.
	T int
	// FullRounds and PartialRounds optionally pin the round counts. Both must
	// be set together; when absent they are derived by CalcRoundNumbers with
	// the security margin enabled.
	FullRounds    int
	PartialRounds int
	// PrimeBitLen optionally overrides ceil(log2(Prime)). Some parameter sets
	// use the nearest power of two (256 instead of 255) for byte alignment.
	PrimeBitLen int
	// MDSMatrix optionally supplies the t×t linear layer as hex strings.
	MDSMatrix [][]string
	// RoundConstants optionally supplies the flat list of t·(full+partial)
	// round constants as hex strings.
	RoundConstants []string
}

// Params bundles the instance parameters and the precomputed tables shared by
// every permutation run. A Params value is immutable after construction and
// safe for concurrent use.
type Params struct {
	field          *field.Field
	securityLevel  int
	alpha          int
	inputRate      int
	t              int
	primeBitLen    int
	fullRounds     int
	partialRounds  int
	halfFullRounds int

	roundConstants field.Vector
	mds            *field.Matrix
}

// NewParams validates the configuration and derives every table the
// permutation needs: round counts, round constants and the MDS matrix, unless
// they were supplied explicitly.
func NewParams(cfg Config) (*Params, error) {
	log := logger.Logger().With().Str("component", "poseidon").Logger()

	f, err := field.New(cfg.Prime)
	if err != nil {
		return nil, err
	}
	if cfg.T < 2 {
		return nil, fmt.Errorf("%w: state width t=%d, want t >= 2", ErrInvalidParameter, cfg.T)
	}

	switch {
	case cfg.Alpha > 0:
		pm1 := new(big.Int).Sub(cfg.Prime, big.NewInt(1))
		gcd := new(big.Int).GCD(nil, nil, big.NewInt(int64(cfg.Alpha)), pm1)
		if gcd.Cmp(big.NewInt(1)) != 0 {
			return nil, fmt.Errorf("%w: alpha %d is not coprime to p-1", field.ErrArithmetic, cfg.Alpha)
		}
	case cfg.Alpha == -1:
		// Inverse S-box.
	default:
		return nil, fmt.Errorf("%w: alpha %d (want alpha > 0 or alpha = -1)", ErrInvalidParameter, cfg.Alpha)
	}

	primeBitLen := cfg.PrimeBitLen
	if primeBitLen == 0 {
		primeBitLen = f.BitLen()
	}

	// 2^M > p^t leaves fewer state bits than the claimed security level.
	// Deliberately a warning only: reduced parameters are common in tests.
	capacity := new(big.Int).Exp(cfg.Prime, big.NewInt(int64(cfg.T)), nil)
	if new(big.Int).Lsh(big.NewInt(1), uint(cfg.SecurityLevel)).Cmp(capacity) > 0 {
		log.Warn().
			Int("securityLevel", cfg.SecurityLevel).
			Int("t", cfg.T).
			Msg("2^M exceeds p^t, instance does not reach the requested security level")
	}

	p := &Params{
		field:         f,
		securityLevel: cfg.SecurityLevel,
		alpha:         cfg.Alpha,
		inputRate:     cfg.InputRate,
		t:             cfg.T,
		primeBitLen:   primeBitLen,
	}

	if cfg.FullRounds != 0 || cfg.PartialRounds != 0 {
		if cfg.FullRounds <= 0 || cfg.PartialRounds <= 0 {
			return nil, fmt.Errorf("%w: full and partial round counts must be set together", ErrInvalidParameter)
		}
		if cfg.FullRounds%2 != 0 {
			return nil, fmt.Errorf("%w: full rounds must be even, got %d", ErrInvalidParameter, cfg.FullRounds)
		}
		p.fullRounds = cfg.FullRounds
		p.partialRounds = cfg.PartialRounds
		p.halfFullRounds = cfg.FullRounds / 2
	} else {
		log.Debug().Msg("deriving round numbers")
		primeFloat, _ := new(big.Float).SetInt(cfg.Prime).Float64()
		p.fullRounds, p.partialRounds, p.halfFullRounds, err = CalcRoundNumbers(
			math.Log2(primeFloat), cfg.SecurityLevel, cfg.T, cfg.Alpha, true)
		if err != nil {
			return nil, err
		}
		log.Debug().Int("fullRounds", p.fullRounds).Int("partialRounds", p.partialRounds).Msg("round numbers selected")
	}

	if cfg.MDSMatrix != nil {
		p.mds, err = ParseHexMatrix(f, cfg.MDSMatrix)
		if err != nil {
			return nil, err
		}
		if p.mds.Size() != cfg.T {
			return nil, fmt.Errorf("%w: mds matrix is %d×%d, want %d×%d",
				ErrInvalidParameter, p.mds.Size(), p.mds.Size(), cfg.T, cfg.T)
		}
	} else {
		log.Debug().Msg("generating mds matrix")
		p.mds, err = mdsMatrixGenerator(f, cfg.T)
		if err != nil {
			return nil, err
		}
	}

	expected := cfg.T * (p.fullRounds + p.partialRounds)
	if cfg.RoundConstants != nil {
		if len(cfg.RoundConstants) != expected {
			return nil, fmt.Errorf("%w: %d round constants supplied, want %d",
				ErrInvalidParameter, len(cfg.RoundConstants), expected)
		}
		p.roundConstants, err = ParseHexElements(f, cfg.RoundConstants)
		if err != nil {
			return nil, err
		}
	} else {
		log.Debug().Msg("generating round constants")
		p.roundConstants = calcRoundConstants(f, cfg.T, p.fullRounds, p.partialRounds, cfg.Alpha, primeBitLen)
	}

	return p, nil
}

// Field returns the instance's field.
func (p *Params) Field() *field.Field { return p.field }

// Modulus returns a copy of the field modulus.
func (p *Params) Modulus() *big.Int { return p.field.Modulus() }

// T returns the state width.
func (p *Params) T() int { return p.t }

// InputRate returns the number of message elements absorbed per hash.
func (p *Params) InputRate() int { return p.inputRate }

// Alpha returns the S-box exponent.
func (p *Params) Alpha() int { return p.alpha }

// SecurityLevel returns the target security level in bits.
func (p *Params) SecurityLevel() int { return p.securityLevel }

// PrimeBitLen returns the bit length used for constant generation.
func (p *Params) PrimeBitLen() int { return p.primeBitLen }

// FullRounds returns the number of full rounds.
func (p *Params) FullRounds() int { return p.fullRounds }

// PartialRounds returns the number of partial rounds.
func (p *Params) PartialRounds() int { return p.partialRounds }

// HalfFullRounds returns half the number of full rounds.
func (p *Params) HalfFullRounds() int { return p.halfFullRounds }

// RoundConstants returns a copy of the round-constant table.
func (p *Params) RoundConstants() field.Vector { return p.roundConstants.Clone() }

// MDSMatrix returns a copy of the linear-layer matrix.
func (p *Params) MDSMatrix() *field.Matrix { return p.mds.Clone() }
