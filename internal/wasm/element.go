package wasm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tetratelabs/wasmstore/api"
	"github.com/tetratelabs/wasmstore/internal/wasmruntime"
)

// ElementSegment is an element segment whose offset expression was already evaluated by the instantiating engine.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#element-segments%E2%91%A0
type ElementSegment struct {
	// TableIndex is the handle of the table to initialize.
	TableIndex Index

	// Offset is the position in the table of Init[0].
	Offset uint32

	// Init are the references to write, in order, starting at Offset.
	Init []api.Reference
}

// ApplyElements performs the element initialization walk of instantiation.
//
// Each slot may be written at most once: this fails with wasmruntime.ErrDuplicateInitialization when a segment
// targets a slot a previous one populated, and with wasmruntime.ErrRuntimeInvalidTableAccess when a segment doesn't fit
// in its table. Segments before the failing one stay applied.
func (m *ModuleInstance) ApplyElements(segments []ElementSegment) error {
	for i := range segments {
		elem := &segments[i]
		t := m.Tables.Table(elem.TableIndex)

		// uint64 in case offset was set to -1
		if end := uint64(elem.Offset) + uint64(len(elem.Init)); end > uint64(t.Size()) {
			return fmt.Errorf("element[%d] out of bounds of table[%d]: %d > %d: %w",
				i, elem.TableIndex, end, t.Size(), wasmruntime.ErrRuntimeInvalidTableAccess)
		}

		for j, ref := range elem.Init {
			if err := t.Initialize(elem.Offset+uint32(j), ref); err != nil {
				return fmt.Errorf("element[%d]: %w", i, err)
			}
		}
	}
	m.Tables.logger.Debug("applied elements", zap.Int("segments", len(segments)))
	return nil
}
