// Package wasmruntime contains the errors reported by instance resources and numeric routines. This is in an
// independent package so that both internal/wasm and internal/moremath can return them without a dependency cycle.
package wasmruntime

import (
	"errors"
	"fmt"
)

// All the errors are local and synchronous. They indicate a module or host-call contract violation, and the caller
// decides whether that is a trap, a diagnostic or a failed instantiation.
var (
	// ErrResizeLimitExceeded indicates a table was asked to hold more elements than its declared maximum.
	// Returned errors are *ResizeLimitError, which carry the details.
	ErrResizeLimitExceeded = errors.New("table size exceeds declared maximum")
	// ErrDuplicateInitialization indicates an element segment targeted a table slot that was already populated.
	ErrDuplicateInitialization = errors.New("table element already initialized")
	// ErrGrowthUnsupported indicates "table.grow" was executed on a table that cannot grow after instantiation.
	ErrGrowthUnsupported = errors.New("table growth unsupported")
	// ErrArithmeticOverflow indicates an unsigned addition did not fit in its width.
	ErrArithmeticOverflow = errors.New("unsigned integer overflow")
	// ErrRuntimeInvalidTableAccess means an element segment does not fit in the table it initializes.
	ErrRuntimeInvalidTableAccess = errors.New("invalid table access")
)

// ResizeLimitError is returned when a table cannot be resized to Requested elements because of its Max.
type ResizeLimitError struct {
	// Handle is the position of the table in its registry.
	Handle uint32
	// Requested is the size that was asked for. This is a uint64 as "size + delta" may not fit in 32 bits.
	Requested uint64
	// Max is the declared maximum of the table.
	Max uint32
}

// Error implements error.
func (e *ResizeLimitError) Error() string {
	return fmt.Sprintf("table[%d]: requested size %d exceeds max %d", e.Handle, e.Requested, e.Max)
}

// Is allows errors.Is(err, ErrResizeLimitExceeded).
func (e *ResizeLimitError) Is(target error) bool {
	return target == ErrResizeLimitExceeded
}
