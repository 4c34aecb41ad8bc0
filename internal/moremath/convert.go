package moremath

import "math"

const (
	f32MantissaBits = 23
	f32ExponentBias = 127
	f64MantissaBits = 52
	f64ExponentBias = 1023

	// two63 is the smallest magnitude that doesn't fit in int64. Note float64(math.MaxInt64) rounds up to this.
	two63 = 0x1p63

	// Values whose unsigned interpretation is in [2^63, 2^64) share one binade. These are log2 of the unit in the last
	// place of that binade for each float type.
	f32UpperUlpShift = 63 - f32MantissaBits
	f64UpperUlpShift = 63 - f64MantissaBits
)

// Uint32ToF32 implements "f32.convert_i32_u". x widens to int64 exactly, and int64 to float32 is correctly rounded.
func Uint32ToF32(x int32) float32 {
	return float32(int64(uint32(x)))
}

// Uint32ToF64 implements "f64.convert_i32_u". This is always exact.
func Uint32ToF64(x int32) float64 {
	return float64(int64(uint32(x)))
}

// Uint64ToF32 implements "f32.convert_i64_u".
//
// There's no wider signed integer to go through, so values at or above 2^63 are rounded by hand: the bits below the
// float32 unit in the last place are compared against half of it, ties going to even.
func Uint64ToF32(x int64) float32 {
	if x >= 0 {
		return float32(x)
	}
	m := roundUpperBinade(uint64(x), f32UpperUlpShift)
	// m has at most 24 significant bits, so both the conversion and the scaling are exact.
	return float32(int64(m)) * (1 << f32UpperUlpShift)
}

// Uint64ToF64 implements "f64.convert_i64_u". See Uint64ToF32.
func Uint64ToF64(x int64) float64 {
	if x >= 0 {
		return float64(x)
	}
	m := roundUpperBinade(uint64(x), f64UpperUlpShift)
	return float64(int64(m)) * (1 << f64UpperUlpShift)
}

// roundUpperBinade returns u / 2^shift rounded to nearest, ties to even. The result can be 2^(64-shift), when u rounds
// up to 2^64.
func roundUpperBinade(u uint64, shift uint) uint64 {
	m, rem := u>>shift, u&(1<<shift-1)
	half := uint64(1) << (shift - 1)
	if rem > half || rem == half && m&1 == 1 {
		m++
	}
	return m
}

// TruncF32ToI32 truncates x toward zero. x must be finite and in range of int32.
func TruncF32ToI32(x float32) int32 {
	return int32(TruncF64ToI64(float64(x)))
}

// TruncF32ToI64 truncates x toward zero. x must be finite and in range of int64.
func TruncF32ToI64(x float32) int64 {
	return TruncF64ToI64(float64(x))
}

// TruncF64ToI32 truncates x toward zero. x must be finite and in range of int32.
func TruncF64ToI32(x float64) int32 {
	return int32(TruncF64ToI64(x))
}

// TruncF64ToI64 truncates x toward zero. x must be finite and in range of int64.
//
// There's no saturation here: callers range check first, as the result of an out of range conversion is
// implementation-specific in Go.
func TruncF64ToI64(x float64) int64 {
	if x < 0 {
		return int64(math.Ceil(x))
	}
	return int64(math.Floor(x))
}

// TruncF32ToU64 truncates x toward zero, returning the bit pattern of the unsigned 64-bit result. Values at or above
// 2^64 saturate to all ones. x must be finite and greater than -1.
func TruncF32ToU64(x float32) int64 {
	if x < two63 {
		return TruncF32ToI64(x)
	}
	bits := math.Float32bits(x)
	exponent := int(bits>>f32MantissaBits&0xff) - f32ExponentBias
	return truncMagnitude(exponent, uint64(bits&(1<<f32MantissaBits-1)), f32MantissaBits)
}

// TruncF64ToU64 truncates x toward zero, returning the bit pattern of the unsigned 64-bit result. Values at or above
// 2^64 saturate to all ones. x must be finite and greater than -1.
func TruncF64ToU64(x float64) int64 {
	if x < two63 {
		return TruncF64ToI64(x)
	}
	bits := math.Float64bits(x)
	exponent := int(bits>>f64MantissaBits&0x7ff) - f64ExponentBias
	return truncMagnitude(exponent, bits&(1<<f64MantissaBits-1), f64MantissaBits)
}

// truncMagnitude returns the integer part of a positive float given its unbiased exponent and fraction bits.
func truncMagnitude(exponent int, fraction uint64, mantissaBits int) int64 {
	switch {
	case exponent < 0:
		return 0
	case exponent >= 64:
		return -1 // all ones
	}
	m := fraction | 1<<mantissaBits // implicit leading bit
	shift := exponent - mantissaBits
	if shift >= 0 {
		return int64(m << uint(shift))
	}
	return int64(m >> uint(-shift))
}

// RoundF32ToU64 rounds x to the nearest integer, ties away from zero, returning the bit pattern of the unsigned
// 64-bit result.
func RoundF32ToU64(x float32) int64 {
	r := float32(math.Round(float64(x)))
	if r < two63 {
		return int64(r)
	}
	return TruncF32ToU64(r)
}

// RoundF64ToU64 rounds x to the nearest integer, ties away from zero, returning the bit pattern of the unsigned
// 64-bit result.
func RoundF64ToU64(x float64) int64 {
	r := math.Round(x)
	if r < two63 {
		return int64(r)
	}
	return TruncF64ToU64(r)
}
