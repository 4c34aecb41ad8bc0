package moremath

import "github.com/tetratelabs/wasmstore/internal/wasmruntime"

// CompareUnsigned32 compares a and b as unsigned 32-bit integers, returning -1, 0 or +1.
func CompareUnsigned32(a, b int32) int {
	return compare(uint64(uint32(a)), uint64(uint32(b)))
}

// CompareUnsigned64 compares a and b as unsigned 64-bit integers, returning -1, 0 or +1.
func CompareUnsigned64(a, b int64) int {
	return compare(uint64(a), uint64(b))
}

func compare(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MinUnsigned32 returns whichever of a or b is smaller as an unsigned 32-bit integer.
func MinUnsigned32(a, b int32) int32 {
	if CompareUnsigned32(a, b) <= 0 {
		return a
	}
	return b
}

// MinUnsigned64 returns whichever of a or b is smaller as an unsigned 64-bit integer.
func MinUnsigned64(a, b int64) int64 {
	if CompareUnsigned64(a, b) <= 0 {
		return a
	}
	return b
}

// AddExactUnsigned32 returns a + b as unsigned 32-bit integers, or wasmruntime.ErrArithmeticOverflow if the sum
// wrapped around.
func AddExactUnsigned32(a, b int32) (int32, error) {
	sum := uint32(a) + uint32(b)
	if sum < uint32(a) || sum < uint32(b) {
		return 0, wasmruntime.ErrArithmeticOverflow
	}
	return int32(sum), nil
}

// AddExactUnsigned64 returns a + b as unsigned 64-bit integers, or wasmruntime.ErrArithmeticOverflow if the sum
// wrapped around.
func AddExactUnsigned64(a, b int64) (int64, error) {
	sum := uint64(a) + uint64(b)
	if sum < uint64(a) || sum < uint64(b) {
		return 0, wasmruntime.ErrArithmeticOverflow
	}
	return int64(sum), nil
}
