package wasmstore

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tetratelabs/wasmstore/api"
	"github.com/tetratelabs/wasmstore/internal/wasm"
)

// Runtime creates module instances and the memories they own, per a RuntimeConfig.
//
// Ex.
//	r := wasmstore.NewRuntime()
//	instance := r.NewInstance("math")
//	table := instance.AllocateTable(4, nil)
//	worker := instance.Clone("math-1")
type Runtime interface {
	// NewInstance returns an instance without tables or memories.
	NewInstance(name string) api.Instance

	// NewMemory returns a linear memory of min pages, which can grow up to max pages. This errs if min is larger than
	// max, or max is larger than RuntimeConfig.WithMemoryMaxPages.
	//
	// Note: The result is not registered. Use api.Instance RegisterMemory or RegisterExternalMemory.
	NewMemory(min, max uint32) (api.Memory, error)
}

// NewRuntime returns a runtime with the default configuration.
func NewRuntime() Runtime {
	return NewRuntimeWithConfig(NewRuntimeConfig())
}

// NewRuntimeWithConfig returns a runtime with the given configuration.
func NewRuntimeWithConfig(config *RuntimeConfig) Runtime {
	return &runtime{
		tableGrowth:    config.tableGrowth,
		memoryMaxPages: config.memoryMaxPages,
		logger:         config.loggerOrDefault(),
	}
}

// runtime allows decoupling of public interfaces from internal representation.
type runtime struct {
	tableGrowth    TableGrowthPolicy
	memoryMaxPages uint32
	logger         *zap.Logger
}

// NewInstance implements Runtime NewInstance
func (r *runtime) NewInstance(name string) api.Instance {
	return wasm.NewModuleInstance(name, r.tableGrowth, r.logger)
}

// NewMemory implements Runtime NewMemory
func (r *runtime) NewMemory(min, max uint32) (api.Memory, error) {
	if min > max {
		return nil, fmt.Errorf("memory min %d pages > max %d pages", min, max)
	}
	if max > r.memoryMaxPages {
		return nil, fmt.Errorf("memory max %d pages over limit of %d pages", max, r.memoryMaxPages)
	}
	return wasm.NewMemoryInstance(min, max), nil
}
