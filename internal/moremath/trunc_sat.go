package moremath

import "math"

// The functions below implement the non-trapping float-to-int conversions: NaN converts to zero and out of range
// values clamp to the nearest extreme of the target type. Unsigned results are returned as their bit pattern.
//
// See https://github.com/WebAssembly/spec/blob/main/proposals/nontrapping-float-to-int-conversion/Overview.md

// TruncSatF32ToI32 implements "i32.trunc_sat_f32_s".
func TruncSatF32ToI32(x float32) int32 {
	return TruncSatF64ToI32(float64(x))
}

// TruncSatF32ToU32 implements "i32.trunc_sat_f32_u".
func TruncSatF32ToU32(x float32) int32 {
	return TruncSatF64ToU32(float64(x))
}

// TruncSatF32ToI64 implements "i64.trunc_sat_f32_s".
func TruncSatF32ToI64(x float32) int64 {
	return TruncSatF64ToI64(float64(x))
}

// TruncSatF32ToU64 implements "i64.trunc_sat_f32_u".
func TruncSatF32ToU64(x float32) int64 {
	switch {
	case math.IsNaN(float64(x)), x < 0:
		return 0
	}
	return TruncF32ToU64(x)
}

// TruncSatF64ToI32 implements "i32.trunc_sat_f64_s".
func TruncSatF64ToI32(x float64) int32 {
	switch {
	case math.IsNaN(x):
		return 0
	case x <= math.MinInt32:
		return math.MinInt32
	case x >= math.MaxInt32:
		return math.MaxInt32
	}
	return TruncF64ToI32(x)
}

// TruncSatF64ToU32 implements "i32.trunc_sat_f64_u".
func TruncSatF64ToU32(x float64) int32 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= math.MaxUint32:
		return -1 // all ones
	}
	return int32(uint32(TruncF64ToI64(x)))
}

// TruncSatF64ToI64 implements "i64.trunc_sat_f64_s".
func TruncSatF64ToI64(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < -two63:
		return math.MinInt64
	case x >= two63:
		return math.MaxInt64
	}
	return TruncF64ToI64(x)
}

// TruncSatF64ToU64 implements "i64.trunc_sat_f64_u".
func TruncSatF64ToU64(x float64) int64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	}
	return TruncF64ToU64(x)
}
