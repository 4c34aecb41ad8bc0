// Package api includes constants and interfaces used by both end-users and internal implementations.
package api

import "fmt"

// ExternType classifies the resources an Instance owns.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#external-types%E2%91%A0
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

// ExternTypeName returns the name of the WebAssembly 1.0 (20191205) Text Format field of the given type.
func ExternTypeName(et ExternType) string {
	switch et {
	case ExternTypeFunc:
		return "func"
	case ExternTypeTable:
		return "table"
	case ExternTypeMemory:
		return "memory"
	case ExternTypeGlobal:
		return "global"
	}
	return fmt.Sprintf("%#x", et)
}

// Reference is an opaque, pointer-sized table element, usually a function reference.
//
// The zero value is NullReference.
type Reference = uintptr

// NullReference is the value of a table element that was never written.
const NullReference Reference = 0

// Table is a growable array of References bounded by an optional maximum.
//
// Note: Get and Set are unchecked. Callers validate the index against Size, and an out-of-range index panics.
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#table-instances%E2%91%A0
type Table interface {
	fmt.Stringer

	// Handle is the position of this table in its Instance. It never changes.
	Handle() uint32

	// Size returns the current count of elements.
	Size() uint32

	// Max returns the declared maximum count of elements, or false if unbounded.
	Max() (uint32, bool)

	// Get returns the element at the index.
	Get(index uint32) Reference

	// Set replaces the element at the index.
	Set(index uint32, v Reference)

	// Initialize writes an element segment value at the index. This fails when the slot already holds a non-null
	// Reference.
	Initialize(index uint32, v Reference) error

	// EnsureSizeAtLeast grows the table to at least size elements. New elements are NullReference.
	EnsureSizeAtLeast(size uint32) error

	// Grow implements "table.grow", returning the previous size. Whether this is supported depends on the policy the
	// table was allocated with.
	Grow(delta uint32) (previousSize uint32, err error)
}

// Memory is a linear memory whose layout is owned by its implementation.
//
// Instances never look inside a Memory. The only contract they rely on is Duplicate.
type Memory interface {
	// Duplicate returns an independent Memory with the same contents. Writes to either never affect the other.
	Duplicate() Memory
}

// Instance owns the tables and memories of one instantiated module.
//
// Handles are dense, zero-based and assigned in allocation order. They are never reused during the lifetime of the
// Instance.
type Instance interface {
	fmt.Stringer

	// Name is the name the instance was created with.
	Name() string

	// AllocateTable appends a table of initialSize null elements. A nil max means unbounded.
	AllocateTable(initialSize uint32, max *uint32) Table

	// Table returns the table at the handle, which must be less than TableCount.
	Table(handle uint32) Table

	// TableCount returns the number of allocated tables.
	TableCount() uint32

	// RegisterMemory appends a memory created by module instantiation and returns its handle.
	RegisterMemory(m Memory) uint32

	// RegisterExternalMemory appends a memory supplied by the embedder and returns its handle.
	RegisterExternalMemory(m Memory) uint32

	// Memory returns the memory at the handle, which must be less than MemoryCount.
	Memory(handle uint32) Memory

	// MemoryCount returns the number of registered memories.
	MemoryCount() uint32

	// Clone returns an Instance with deep copies of all tables and memories, under the same handles.
	Clone(name string) Instance
}
