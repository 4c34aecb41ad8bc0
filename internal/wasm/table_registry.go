package wasm

import (
	"go.uber.org/zap"

	"github.com/tetratelabs/wasmstore/internal/logging"
)

// TableRegistry holds the tables of a module instance in allocation order.
//
// Handles are dense and zero-based: the table at position i has Handle i. Handles are resolved by compiled code
// without a bounds check, so they are never reused or invalidated, even as the registry grows.
type TableRegistry struct {
	tables []*TableInstance
	growth TableGrowthPolicy
	logger *zap.Logger
}

// NewTableRegistry returns an empty registry whose tables will use the given growth policy. A nil logger uses
// logging.Logger.
func NewTableRegistry(growth TableGrowthPolicy, logger *zap.Logger) *TableRegistry {
	return &TableRegistry{growth: growth, logger: logging.OrDefault(logger)}
}

// AllocateTable appends a table of initialSize null references and returns it. Its handle is the count of tables
// before this call.
func (r *TableRegistry) AllocateTable(initialSize uint32, max *uint32) *TableInstance {
	handle := Index(len(r.tables))
	t := NewTableInstance(handle, initialSize, max, r.growth)
	r.tables = append(r.tables, t) // append doubles capacity, so this is amortized O(1)
	r.logger.Debug("allocated table", logging.Handle(handle), zap.Uint32("size", initialSize), logging.Max(max))
	return t
}

// Table returns the table at the handle. This panics if handle is not less than Len.
func (r *TableRegistry) Table(handle Index) *TableInstance {
	return r.tables[handle]
}

// Len returns the count of allocated tables.
func (r *TableRegistry) Len() uint32 {
	return uint32(len(r.tables))
}

// Duplicate returns a registry holding deep copies of every table, in the same order and under the same handles.
// Nothing is shared between the two afterwards.
func (r *TableRegistry) Duplicate() *TableRegistry {
	ret := &TableRegistry{tables: make([]*TableInstance, len(r.tables)), growth: r.growth, logger: r.logger}
	for i, t := range r.tables {
		ret.tables[i] = t.clone()
	}
	r.logger.Debug("duplicated tables", zap.Int("count", len(ret.tables)))
	return ret
}
