package wasm

import (
	"encoding/binary"
	"fmt"

	"github.com/tetratelabs/wasmstore/api"
)

const (
	// MemoryPageSize is the unit of memory length in WebAssembly,
	// and is defined as 2^16 = 65536.
	// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#memory-instances%E2%91%A0
	MemoryPageSize = uint32(65536)
	// MemoryLimitPages is maximum number of pages defined (2^16).
	// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#grow-mem
	MemoryLimitPages = uint32(65536)
	// MemoryPageSizeInBits satisfies the relation: "1 << MemoryPageSizeInBits == MemoryPageSize".
	MemoryPageSizeInBits = 16
)

// MemoryInstance is a linear memory, and implements api.Memory.
//
// Registries treat it as opaque. The accessors below are what the interpreter and host functions use.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#memory-instances%E2%91%A0
type MemoryInstance struct {
	Buffer   []byte
	Min, Max uint32
}

// compile-time check to ensure MemoryInstance is an api.Memory
var _ api.Memory = &MemoryInstance{}

// NewMemoryInstance returns a memory of min pages, which can grow up to max pages.
func NewMemoryInstance(min, max uint32) *MemoryInstance {
	return &MemoryInstance{Buffer: make([]byte, MemoryPagesToBytesNum(min)), Min: min, Max: max}
}

// Duplicate implements api.Memory Duplicate
func (m *MemoryInstance) Duplicate() api.Memory {
	buf := make([]byte, len(m.Buffer))
	copy(buf, m.Buffer)
	return &MemoryInstance{Buffer: buf, Min: m.Min, Max: m.Max}
}

// String implements fmt.Stringer
func (m *MemoryInstance) String() string {
	return fmt.Sprintf("memory(pages=%d, max=%d)", m.PageSize(), m.Max)
}

// Size returns the size in bytes.
func (m *MemoryInstance) Size() uint32 {
	return uint32(len(m.Buffer))
}

// hasSize returns true if Len is sufficient for sizeInBytes at the given offset.
func (m *MemoryInstance) hasSize(offset uint32, sizeInBytes uint64) bool {
	return uint64(offset)+sizeInBytes <= uint64(len(m.Buffer)) // uint64 prevents overflow on add
}

// ReadByte reads a single byte at the offset or returns false if out of range.
func (m *MemoryInstance) ReadByte(offset uint32) (byte, bool) {
	if !m.hasSize(offset, 1) {
		return 0, false
	}
	return m.Buffer[offset], true
}

// ReadUint32Le reads a little-endian uint32 at the offset or returns false if out of range.
func (m *MemoryInstance) ReadUint32Le(offset uint32) (uint32, bool) {
	if !m.hasSize(offset, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.Buffer[offset : offset+4]), true
}

// ReadUint64Le reads a little-endian uint64 at the offset or returns false if out of range.
func (m *MemoryInstance) ReadUint64Le(offset uint32) (uint64, bool) {
	if !m.hasSize(offset, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(m.Buffer[offset : offset+8]), true
}

// Read returns a view of byteCount bytes at the offset or returns false if out of range. The view shares the buffer.
func (m *MemoryInstance) Read(offset, byteCount uint32) ([]byte, bool) {
	if !m.hasSize(offset, uint64(byteCount)) {
		return nil, false
	}
	return m.Buffer[offset : offset+byteCount : offset+byteCount], true
}

// WriteByte writes a single byte at the offset or returns false if out of range.
func (m *MemoryInstance) WriteByte(offset uint32, v byte) bool {
	if !m.hasSize(offset, 1) {
		return false
	}
	m.Buffer[offset] = v
	return true
}

// WriteUint32Le writes v in little-endian at the offset or returns false if out of range.
func (m *MemoryInstance) WriteUint32Le(offset, v uint32) bool {
	if !m.hasSize(offset, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(m.Buffer[offset:], v)
	return true
}

// WriteUint64Le writes v in little-endian at the offset or returns false if out of range.
func (m *MemoryInstance) WriteUint64Le(offset uint32, v uint64) bool {
	if !m.hasSize(offset, 8) {
		return false
	}
	binary.LittleEndian.PutUint64(m.Buffer[offset:], v)
	return true
}

// Write copies val to the offset or returns false if out of range.
func (m *MemoryInstance) Write(offset uint32, val []byte) bool {
	if !m.hasSize(offset, uint64(len(val))) {
		return false
	}
	copy(m.Buffer[offset:], val)
	return true
}

// MemoryPagesToBytesNum converts the given pages into the number of bytes contained in these pages.
func MemoryPagesToBytesNum(pages uint32) (bytesNum uint64) {
	return uint64(pages) << MemoryPageSizeInBits
}

// memoryBytesNumToPages converts the given number of bytes into the number of pages.
func memoryBytesNumToPages(bytesNum uint64) (pages uint32) {
	return uint32(bytesNum >> MemoryPageSizeInBits)
}

// Grow extends the memory buffer by "delta" * MemoryPageSize, preserving its contents.
// The logic here is described in https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#grow-mem.
//
// Returns false if the operation would exceed the maximum memory pages. Otherwise, returns the prior memory size in
// pages.
func (m *MemoryInstance) Grow(delta uint32) (previousPages uint32, ok bool) {
	currentPages := m.PageSize()
	if uint64(currentPages)+uint64(delta) > uint64(m.Max) {
		return 0, false
	}
	m.Buffer = append(m.Buffer, make([]byte, MemoryPagesToBytesNum(delta))...)
	return currentPages, true
}

// PageSize returns the current memory buffer size in pages.
func (m *MemoryInstance) PageSize() uint32 {
	return memoryBytesNumToPages(uint64(len(m.Buffer)))
}
