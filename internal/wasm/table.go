package wasm

import (
	"fmt"
	"math"

	"github.com/tetratelabs/wasmstore/api"
	"github.com/tetratelabs/wasmstore/internal/wasmruntime"
)

// Index is the offset in an index namespace, such as the handle of a table in a TableRegistry.
type Index = uint32

// TableGrowthPolicy controls whether "table.grow" can resize a table after instantiation.
type TableGrowthPolicy byte

const (
	// TableGrowthUnsupported fails every TableInstance.Grow with wasmruntime.ErrGrowthUnsupported. Tables still resize
	// with TableInstance.EnsureSizeAtLeast during instantiation.
	TableGrowthUnsupported TableGrowthPolicy = iota
	// TableGrowthBounded resizes on TableInstance.Grow the same way as TableInstance.EnsureSizeAtLeast, up to the
	// declared maximum.
	TableGrowthBounded
)

// String implements fmt.Stringer
func (p TableGrowthPolicy) String() string {
	switch p {
	case TableGrowthUnsupported:
		return "unsupported"
	case TableGrowthBounded:
		return "bounded"
	}
	return fmt.Sprintf("TableGrowthPolicy(%d)", byte(p))
}

// TableInstance represents a table of references in a module instance, and implements api.Table.
//
// The size of a table never decreases.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#table-instances%E2%91%A0
type TableInstance struct {
	// References holds the elements, where api.NullReference means the slot is empty. The length is the current size.
	References []api.Reference

	handle Index
	// max if present is the maximum count of references in this table, or nil if unbounded.
	max    *uint32
	growth TableGrowthPolicy
}

// compile-time check to ensure TableInstance is an api.Table
var _ api.Table = &TableInstance{}

// NewTableInstance returns a table of initialSize null references.
//
// Note: initialSize isn't checked against max. The caller validated the table type already.
func NewTableInstance(handle Index, initialSize uint32, max *uint32, growth TableGrowthPolicy) *TableInstance {
	return &TableInstance{
		References: make([]api.Reference, initialSize),
		handle:     handle,
		max:        copyMax(max),
		growth:     growth,
	}
}

// Handle implements api.Table Handle
func (t *TableInstance) Handle() uint32 {
	return t.handle
}

// Size implements api.Table Size
func (t *TableInstance) Size() uint32 {
	return uint32(len(t.References))
}

// Max implements api.Table Max
func (t *TableInstance) Max() (uint32, bool) {
	if t.max == nil {
		return 0, false
	}
	return *t.max, true
}

// Policy returns the growth policy the table was allocated with.
func (t *TableInstance) Policy() TableGrowthPolicy {
	return t.growth
}

// String implements fmt.Stringer
func (t *TableInstance) String() string {
	if t.max == nil {
		return fmt.Sprintf("table[%d](size=%d)", t.handle, len(t.References))
	}
	return fmt.Sprintf("table[%d](size=%d, max=%d)", t.handle, len(t.References), *t.max)
}

// Get implements api.Table Get
func (t *TableInstance) Get(index uint32) api.Reference {
	return t.References[index]
}

// Set implements api.Table Set
func (t *TableInstance) Set(index uint32, v api.Reference) {
	t.References[index] = v
}

// Initialize implements api.Table Initialize
func (t *TableInstance) Initialize(index uint32, v api.Reference) error {
	if t.References[index] != api.NullReference {
		return fmt.Errorf("table[%d] element[%d]: %w", t.handle, index, wasmruntime.ErrDuplicateInitialization)
	}
	t.References[index] = v
	return nil
}

// EnsureSizeAtLeast implements api.Table EnsureSizeAtLeast
func (t *TableInstance) EnsureSizeAtLeast(size uint32) error {
	return t.ensureSizeAtLeast(uint64(size))
}

// ensureSizeAtLeast takes a uint64 so that "size + delta" can be checked without overflow.
func (t *TableInstance) ensureSizeAtLeast(size uint64) error {
	limit := uint32(math.MaxUint32)
	if t.max != nil {
		limit = *t.max
	}
	if size > uint64(limit) {
		return &wasmruntime.ResizeLimitError{Handle: t.handle, Requested: size, Max: limit}
	}

	if size > uint64(len(t.References)) {
		refs := make([]api.Reference, size)
		copy(refs, t.References)
		t.References = refs
	}
	return nil
}

// Grow implements api.Table Grow
//
// See https://github.com/WebAssembly/spec/blob/main/proposals/reference-types/Overview.md#table-instructions
func (t *TableInstance) Grow(delta uint32) (previousSize uint32, err error) {
	previousSize = t.Size()
	if t.growth != TableGrowthBounded {
		return previousSize, fmt.Errorf("table[%d]: %w", t.handle, wasmruntime.ErrGrowthUnsupported)
	}
	err = t.ensureSizeAtLeast(uint64(previousSize) + uint64(delta))
	return
}

// clone returns a deep copy of this table, under the same handle.
func (t *TableInstance) clone() *TableInstance {
	refs := make([]api.Reference, len(t.References))
	copy(refs, t.References)
	return &TableInstance{References: refs, handle: t.handle, max: copyMax(t.max), growth: t.growth}
}

func copyMax(max *uint32) *uint32 {
	if max == nil {
		return nil
	}
	m := *max
	return &m
}
