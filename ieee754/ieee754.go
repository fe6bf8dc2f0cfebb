// Package ieee754 packs and unpacks IEEE-754 single and double precision numbers by
// assembling their bit patterns arithmetically.
//
// The encoders never reinterpret host float memory. A value is split into sign,
// binary exponent and mantissa with math.Frexp, the exponent is biased, values below
// the normal range are stored with gradual underflow, and the mantissa is rounded
// half away from zero on its last bit. The resulting bit pattern is identical on every
// host.
//
// # Limitations
//
// Infinity and NaN have no special handling. Encoding a non-finite value fails with
// errs.ErrOverflow, and decoding an all-ones exponent yields a finite power-of-two
// scaled value rather than Inf or NaN. Callers must not rely on round-tripping them.
package ieee754

import (
	"fmt"
	"math"

	"github.com/arloliu/structpack/errs"
)

// precision describes one binary interchange format.
type precision struct {
	mantBits uint // stored mantissa bits
	expBits  uint // exponent field width
	bias     int
	minExp   int // smallest normal unbiased exponent
	maxExp   int // first unbiased exponent that does not fit
	code     string
}

var (
	single = precision{mantBits: 23, expBits: 8, bias: 127, minExp: -126, maxExp: 128, code: "f"}
	double = precision{mantBits: 52, expBits: 11, bias: 1023, minExp: -1022, maxExp: 1024, code: "d"}
)

func (p precision) overflow() error {
	return fmt.Errorf("%w: float too large to pack with %s format", errs.ErrOverflow, p.code)
}

func (p precision) encode(x float64) (uint64, error) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, fmt.Errorf("%w: non-finite float %v cannot be packed with %s format", errs.ErrOverflow, x, p.code)
	}

	var sign uint64
	if math.Signbit(x) {
		sign = 1
		x = -x
	}

	f, e := math.Frexp(x)
	if f != 0 {
		// Frexp yields [0.5, 1); normalize to [1, 2)
		f *= 2
		e--
	} else {
		e = 0
	}

	if e >= p.maxExp {
		return 0, p.overflow()
	}

	switch {
	case e < p.minExp:
		// gradual underflow
		f = math.Ldexp(f, e-p.minExp)
		e = 0
	case f == 0:
		e = 0
	default:
		e += p.bias
		f -= 1.0
	}

	mant := uint64(math.Floor(math.Ldexp(f, int(p.mantBits)) + 0.5))
	if mant>>p.mantBits != 0 {
		// rounding carried into the implicit bit
		mant = 0
		e++
		if e >= 1<<p.expBits-1 {
			return 0, p.overflow()
		}
	}

	return sign<<(p.mantBits+p.expBits) | uint64(e)<<p.mantBits | mant, nil //nolint:gosec
}

func (p precision) decode(bits uint64) float64 {
	sign := (bits >> (p.mantBits + p.expBits)) & 1
	e := int((bits >> p.mantBits) & (1<<p.expBits - 1)) //nolint:gosec
	x := math.Ldexp(float64(bits&(1<<p.mantBits-1)), -int(p.mantBits))

	if e == 0 {
		e = p.minExp
	} else {
		x += 1.0
		e -= p.bias
	}
	x = math.Ldexp(x, e)

	if sign != 0 {
		x = -x
	}

	return x
}

// Float32Bits returns the IEEE-754 single precision bit pattern of x.
//
// Returns errs.ErrOverflow when |x| is not representable as a finite single.
func Float32Bits(x float64) (uint32, error) {
	bits, err := single.encode(x)
	if err != nil {
		return 0, err
	}

	return uint32(bits), nil //nolint:gosec
}

// Float32FromBits converts a single precision bit pattern to float64.
func Float32FromBits(bits uint32) float64 {
	return single.decode(uint64(bits))
}

// Float64Bits returns the IEEE-754 double precision bit pattern of x.
//
// Returns errs.ErrOverflow for non-finite x.
func Float64Bits(x float64) (uint64, error) {
	return double.encode(x)
}

// Float64FromBits converts a double precision bit pattern to float64.
func Float64FromBits(bits uint64) float64 {
	return double.decode(bits)
}
