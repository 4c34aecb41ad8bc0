// Package moremath implements the numeric routines WebAssembly defines more precisely than the Go math package.
//
// WebAssembly integers are sign-agnostic, so this package carries them in the signed Go type of the same width. The
// unsigned variants reinterpret the bit pattern: for example, int64(-1) is the maximum unsigned 64-bit value.
package moremath

import "math"

// WasmCompatMin is math.Min, except either one of NaN results in NaN even if another is -Inf.
// https://github.com/golang/go/blob/1d20a362d0ca4898d77865e314ef6f73582daef0/src/math/dim.go#L74-L91
func WasmCompatMin(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, -1) || math.IsInf(y, -1):
		return math.Inf(-1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return x
		}
		return y
	}
	if x < y {
		return x
	}
	return y
}

// WasmCompatMax is math.Max, except either one of NaN results in NaN even if another is Inf.
// https://github.com/golang/go/blob/1d20a362d0ca4898d77865e314ef6f73582daef0/src/math/dim.go#L42-L59
func WasmCompatMax(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case math.IsInf(x, 1) || math.IsInf(y, 1):
		return math.Inf(1)
	case x == 0 && x == y:
		if math.Signbit(x) {
			return y
		}
		return x
	}
	if x > y {
		return x
	}
	return y
}

// WasmCompatNearestF32 implements "f32.nearest": round to the nearest integer, ties to even. This differs from
// math.Round, which rounds ties away from zero. The sign of zero is preserved.
func WasmCompatNearestF32(f float32) float32 {
	// float32 widens to float64 exactly, and an integral float32 narrows back exactly.
	return float32(math.RoundToEven(float64(f)))
}

// WasmCompatNearestF64 implements "f64.nearest". See WasmCompatNearestF32.
func WasmCompatNearestF64(f float64) float64 {
	return math.RoundToEven(f)
}
