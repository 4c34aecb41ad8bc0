// Package callconv defines how an instance and user-level arguments are packed into the single parameter array used to
// invoke compiled and host functions.
//
// Index zero of the array holds the calling api.Instance. The N user arguments follow, in declaration order, at
// indices [1, 1+N). Accessors taking an argument index apply the offset, so argument zero is array index one.
package callconv

import "github.com/tetratelabs/wasmstore/api"

const (
	// InstanceIndex is the array index reserved for the calling instance.
	InstanceIndex = 0
	// ArgumentsOffset is the array index of the first user argument.
	ArgumentsOffset = 1
)

// NewEmpty returns an array sized for n arguments, with the instance slot unset.
func NewEmpty(n int) []interface{} {
	return make([]interface{}, ArgumentsOffset+n)
}

// New returns an array holding the instance and args.
func New(instance api.Instance, args ...interface{}) []interface{} {
	frame := make([]interface{}, ArgumentsOffset+len(args))
	frame[InstanceIndex] = instance
	copy(frame[ArgumentsOffset:], args)
	return frame
}

// ArgumentCount returns the number of user arguments in the frame.
func ArgumentCount(frame []interface{}) int {
	return len(frame) - ArgumentsOffset
}

// Argument returns the user argument at index i.
func Argument(frame []interface{}, i int) interface{} {
	return frame[ArgumentsOffset+i]
}

// SetArgument replaces the user argument at index i.
func SetArgument(frame []interface{}, i int, v interface{}) {
	frame[ArgumentsOffset+i] = v
}

// Arguments returns a copy of the user arguments.
func Arguments(frame []interface{}) []interface{} {
	ret := make([]interface{}, ArgumentCount(frame))
	copy(ret, frame[ArgumentsOffset:])
	return ret
}

// ModuleInstance returns the instance in the frame, or nil if unset.
func ModuleInstance(frame []interface{}) api.Instance {
	instance, _ := frame[InstanceIndex].(api.Instance)
	return instance
}

// SetModuleInstance sets the instance in the frame.
func SetModuleInstance(frame []interface{}, instance api.Instance) {
	frame[InstanceIndex] = instance
}

// IsValid returns true if the frame has room for the instance and the instance is set.
func IsValid(frame []interface{}) bool {
	if len(frame) < ArgumentsOffset {
		return false
	}
	instance, ok := frame[InstanceIndex].(api.Instance)
	return ok && instance != nil
}
