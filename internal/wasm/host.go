package wasm

import "github.com/tetratelabs/wasmstore/internal/callconv"

// HostFunction is a function implemented by the embedder.
//
// frame is laid out by package callconv: the calling api.Instance at index zero, then the arguments.
type HostFunction func(frame []interface{}) (interface{}, error)

// CallHost invokes fn on behalf of this instance, passing args in a callconv frame.
func (m *ModuleInstance) CallHost(fn HostFunction, args ...interface{}) (interface{}, error) {
	return fn(callconv.New(m, args...))
}
