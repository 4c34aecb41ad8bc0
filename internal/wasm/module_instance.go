package wasm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tetratelabs/wasmstore/api"
	"github.com/tetratelabs/wasmstore/internal/logging"
)

// ModuleInstance owns the tables and memories of an instantiated module, and implements api.Instance.
//
// Handles issued by either registry are baked into compiled code, so they are resolved by position and never by name.
// Execution against one ModuleInstance is serialized by the engine: nothing here is safe for concurrent use.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#module-instances%E2%91%A0
type ModuleInstance struct {
	ModuleName string
	Tables     *TableRegistry
	Memories   *MemoryRegistry

	// logger is not yet scoped to ModuleName, so that clones can scope it to theirs.
	logger *zap.Logger
}

// compile-time check to ensure ModuleInstance is an api.Instance
var _ api.Instance = &ModuleInstance{}

// NewModuleInstance returns an instance without tables or memories. A nil logger uses logging.Logger.
func NewModuleInstance(name string, growth TableGrowthPolicy, logger *zap.Logger) *ModuleInstance {
	logger = logging.OrDefault(logger)
	scoped := logger.With(zap.String("module", name))
	return &ModuleInstance{
		ModuleName: name,
		Tables:     NewTableRegistry(growth, scoped),
		Memories:   NewMemoryRegistry(scoped),
		logger:     logger,
	}
}

// Name implements api.Instance Name
func (m *ModuleInstance) Name() string {
	return m.ModuleName
}

// String implements fmt.Stringer
func (m *ModuleInstance) String() string {
	return fmt.Sprintf("Module[%s]", m.ModuleName)
}

// AllocateTable implements api.Instance AllocateTable
func (m *ModuleInstance) AllocateTable(initialSize uint32, max *uint32) api.Table {
	return m.Tables.AllocateTable(initialSize, max)
}

// Table implements api.Instance Table
func (m *ModuleInstance) Table(handle uint32) api.Table {
	return m.Tables.Table(handle)
}

// TableCount implements api.Instance TableCount
func (m *ModuleInstance) TableCount() uint32 {
	return m.Tables.Len()
}

// RegisterMemory implements api.Instance RegisterMemory
func (m *ModuleInstance) RegisterMemory(mem api.Memory) uint32 {
	return m.Memories.Register(mem)
}

// RegisterExternalMemory implements api.Instance RegisterExternalMemory
func (m *ModuleInstance) RegisterExternalMemory(mem api.Memory) uint32 {
	return m.Memories.RegisterExternal(mem)
}

// Memory implements api.Instance Memory
func (m *ModuleInstance) Memory(handle uint32) api.Memory {
	return m.Memories.Memory(handle)
}

// MemoryCount implements api.Instance MemoryCount
func (m *ModuleInstance) MemoryCount() uint32 {
	return m.Memories.Len()
}

// Clone implements api.Instance Clone
//
// This is how one compiled module yields several running instances: every table and memory is copied, so the clone and
// the original never observe each other's writes. Nothing may run against m while this is in progress.
func (m *ModuleInstance) Clone(name string) api.Instance {
	ret := &ModuleInstance{
		ModuleName: name,
		Tables:     m.Tables.Duplicate(),
		Memories:   m.Memories.Duplicate(),
		logger:     m.logger,
	}
	scoped := m.logger.With(zap.String("module", name))
	ret.Tables.logger, ret.Memories.logger = scoped, scoped

	m.Tables.logger.Debug("cloned instance",
		zap.String("clone", name),
		zap.Uint32("tables", ret.Tables.Len()),
		zap.Uint32("memories", ret.Memories.Len()))
	return ret
}
