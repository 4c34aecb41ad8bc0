package wasm

import (
	"go.uber.org/zap"

	"github.com/tetratelabs/wasmstore/api"
	"github.com/tetratelabs/wasmstore/internal/logging"
)

// MemoryRegistry holds the memories of a module instance in registration order. Its handles follow the same rules as
// TableRegistry.
//
// The registry never looks inside a memory: duplication uses api.Memory Duplicate.
type MemoryRegistry struct {
	memories []api.Memory
	logger   *zap.Logger
}

// NewMemoryRegistry returns an empty registry. A nil logger uses logging.Logger.
func NewMemoryRegistry(logger *zap.Logger) *MemoryRegistry {
	return &MemoryRegistry{logger: logging.OrDefault(logger)}
}

// Register appends a memory created by module instantiation and returns its handle.
func (r *MemoryRegistry) Register(m api.Memory) Index {
	handle := r.add(m)
	r.logger.Debug("registered memory", logging.Handle(handle))
	return handle
}

// RegisterExternal appends a memory supplied by the embedder and returns its handle. This behaves the same as
// Register, but is a separate entry point so the two origins can be told apart by callers.
func (r *MemoryRegistry) RegisterExternal(m api.Memory) Index {
	handle := r.add(m)
	r.logger.Debug("registered external memory", logging.Handle(handle))
	return handle
}

func (r *MemoryRegistry) add(m api.Memory) Index {
	handle := Index(len(r.memories))
	r.memories = append(r.memories, m)
	return handle
}

// Memory returns the memory at the handle. This panics if handle is not less than Len.
func (r *MemoryRegistry) Memory(handle Index) api.Memory {
	return r.memories[handle]
}

// Len returns the count of registered memories.
func (r *MemoryRegistry) Len() uint32 {
	return uint32(len(r.memories))
}

// Duplicate returns a registry holding the api.Memory Duplicate of every memory, in the same order and under the same
// handles.
func (r *MemoryRegistry) Duplicate() *MemoryRegistry {
	ret := &MemoryRegistry{memories: make([]api.Memory, 0, len(r.memories)), logger: r.logger}
	for _, m := range r.memories {
		ret.add(m.Duplicate())
	}
	r.logger.Debug("duplicated memories", zap.Int("count", len(ret.memories)))
	return ret
}
