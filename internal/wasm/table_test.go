package wasm

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wasmstore/api"
	"github.com/tetratelabs/wasmstore/internal/wasmruntime"
)

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func TestTableGrowthPolicy_String(t *testing.T) {
	require.Equal(t, "unsupported", TableGrowthUnsupported.String())
	require.Equal(t, "bounded", TableGrowthBounded.String())
	require.Equal(t, "TableGrowthPolicy(7)", TableGrowthPolicy(7).String())
}

func TestNewTableInstance(t *testing.T) {
	max := uint32(10)
	table := NewTableInstance(3, 2, &max, TableGrowthBounded)
	require.Equal(t, uint32(3), table.Handle())
	require.Equal(t, uint32(2), table.Size())
	require.Equal(t, []api.Reference{api.NullReference, api.NullReference}, table.References)
	require.Equal(t, TableGrowthBounded, table.Policy())
	require.Equal(t, "table[3](size=2, max=10)", table.String())

	m, ok := table.Max()
	require.True(t, ok)
	require.Equal(t, uint32(10), m)

	// The table keeps its own copy of max.
	max = 1
	m, _ = table.Max()
	require.Equal(t, uint32(10), m)

	unbounded := NewTableInstance(0, 0, nil, TableGrowthUnsupported)
	_, ok = unbounded.Max()
	require.False(t, ok)
	require.Equal(t, "table[0](size=0)", unbounded.String())
}

func TestTableInstance_GetSet(t *testing.T) {
	table := NewTableInstance(0, 3, nil, TableGrowthUnsupported)
	table.Set(1, 0xa)
	require.Equal(t, api.Reference(0xa), table.Get(1))

	// Set overwrites without complaint.
	table.Set(1, 0xb)
	require.Equal(t, api.Reference(0xb), table.Get(1))

	table.Set(1, api.NullReference)
	require.Equal(t, api.NullReference, table.Get(1))

	t.Run("out of range is fatal", func(t *testing.T) {
		require.Panics(t, func() { table.Get(3) })
		require.Panics(t, func() { table.Set(3, 0xa) })
	})
}

func TestTableInstance_Initialize(t *testing.T) {
	table := NewTableInstance(1, 2, nil, TableGrowthUnsupported)
	require.NoError(t, table.Initialize(0, 0xa))
	require.Equal(t, api.Reference(0xa), table.Get(0))

	for _, v := range []api.Reference{0xa, 0xb} {
		err := table.Initialize(0, v)
		require.ErrorIs(t, err, wasmruntime.ErrDuplicateInitialization)
		require.EqualError(t, err, "table[1] element[0]: table element already initialized")
	}
	// The failed initializations didn't write.
	require.Equal(t, api.Reference(0xa), table.Get(0))

	// A slot emptied with Set can be initialized again.
	table.Set(0, api.NullReference)
	require.NoError(t, table.Initialize(0, 0xc))
}

func TestTableInstance_EnsureSizeAtLeast(t *testing.T) {
	tests := []struct {
		name         string
		initialSize  uint32
		max          *uint32
		target       uint32
		expectedSize uint32
		expectedErr  string
	}{
		{name: "grow unbounded", initialSize: 1, target: 5, expectedSize: 5},
		{name: "grow to max", initialSize: 1, max: uint32Ptr(5), target: 5, expectedSize: 5},
		{name: "grow from zero", max: uint32Ptr(5), target: 3, expectedSize: 3},
		{name: "already larger", initialSize: 4, max: uint32Ptr(5), target: 2, expectedSize: 4},
		{name: "same size", initialSize: 4, target: 4, expectedSize: 4},
		{name: "zero max, zero target", max: uint32Ptr(0), target: 0, expectedSize: 0},
		{
			name:         "over max",
			initialSize:  1,
			max:          uint32Ptr(5),
			target:       6,
			expectedSize: 1,
			expectedErr:  "table[0]: requested size 6 exceeds max 5",
		},
		{
			name:         "zero max",
			max:          uint32Ptr(0),
			target:       1,
			expectedSize: 0,
			expectedErr:  "table[0]: requested size 1 exceeds max 0",
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			table := NewTableInstance(0, tc.initialSize, tc.max, TableGrowthUnsupported)
			if tc.initialSize > 0 {
				table.Set(0, 0xf)
			}

			err := table.EnsureSizeAtLeast(tc.target)
			if tc.expectedErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.expectedErr)
				require.ErrorIs(t, err, wasmruntime.ErrResizeLimitExceeded)
			}
			require.Equal(t, tc.expectedSize, table.Size())

			// Existing contents survive, and new slots are null.
			if tc.initialSize > 0 {
				require.Equal(t, api.Reference(0xf), table.Get(0))
			}
			for i := tc.initialSize; i < table.Size(); i++ {
				require.Equal(t, api.NullReference, table.Get(i))
			}
		})
	}
}

func TestTableInstance_EnsureSizeAtLeast_preservesContents(t *testing.T) {
	for _, sizes := range [][2]uint32{{0, 0}, {0, 4}, {3, 3}, {3, 16}, {7, 100}} {
		initialSize, max := sizes[0], sizes[1]
		for _, bounded := range []bool{true, false} {
			t.Run(fmt.Sprintf("init=%d,max=%d,bounded=%v", initialSize, max, bounded), func(t *testing.T) {
				var maxPtr *uint32
				if bounded {
					maxPtr = uint32Ptr(max)
				}
				table := NewTableInstance(0, initialSize, maxPtr, TableGrowthUnsupported)
				for i := uint32(0); i < initialSize; i++ {
					table.Set(i, api.Reference(i+1))
				}

				require.NoError(t, table.EnsureSizeAtLeast(max))
				require.Equal(t, max, table.Size())
				for i := uint32(0); i < initialSize; i++ {
					require.Equal(t, api.Reference(i+1), table.Get(i))
				}

				if bounded {
					err := table.EnsureSizeAtLeast(max + 1)
					var rle *wasmruntime.ResizeLimitError
					require.True(t, errors.As(err, &rle))
					require.Equal(t, wasmruntime.ResizeLimitError{Handle: 0, Requested: uint64(max) + 1, Max: max}, *rle)
					require.Equal(t, max, table.Size())
				}
			})
		}
	}
}

func TestTableInstance_Grow(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		table := NewTableInstance(2, 1, uint32Ptr(10), TableGrowthUnsupported)
		for _, delta := range []uint32{0, 1, 100} {
			prev, err := table.Grow(delta)
			require.EqualError(t, err, "table[2]: table growth unsupported")
			require.ErrorIs(t, err, wasmruntime.ErrGrowthUnsupported)
			require.Equal(t, uint32(1), prev)
			require.Equal(t, uint32(1), table.Size())
		}
	})

	t.Run("bounded", func(t *testing.T) {
		table := NewTableInstance(0, 1, uint32Ptr(10), TableGrowthBounded)
		table.Set(0, 0xa)

		prev, err := table.Grow(4)
		require.NoError(t, err)
		require.Equal(t, uint32(1), prev)
		require.Equal(t, uint32(5), table.Size())
		require.Equal(t, api.Reference(0xa), table.Get(0))

		prev, err = table.Grow(0)
		require.NoError(t, err)
		require.Equal(t, uint32(5), prev)
		require.Equal(t, uint32(5), table.Size())

		_, err = table.Grow(6)
		require.EqualError(t, err, "table[0]: requested size 11 exceeds max 10")
		require.Equal(t, uint32(5), table.Size())

		prev, err = table.Grow(5)
		require.NoError(t, err)
		require.Equal(t, uint32(5), prev)
		require.Equal(t, uint32(10), table.Size())
	})

	t.Run("bounded overflow", func(t *testing.T) {
		table := NewTableInstance(0, 1, nil, TableGrowthBounded)
		_, err := table.Grow(math.MaxUint32)
		require.EqualError(t, err, fmt.Sprintf("table[0]: requested size %d exceeds max %d", uint64(math.MaxUint32)+1, uint32(math.MaxUint32)))
		require.ErrorIs(t, err, wasmruntime.ErrResizeLimitExceeded)
		require.Equal(t, uint32(1), table.Size())
	})
}

func TestTableInstance_clone(t *testing.T) {
	table := NewTableInstance(4, 2, uint32Ptr(8), TableGrowthBounded)
	table.Set(1, 0xa)

	c := table.clone()
	require.Equal(t, table, c)
	require.NotSame(t, table, c)
	require.NotSame(t, table.max, c.max)

	// The two don't share storage.
	c.Set(0, 0xb)
	require.Equal(t, api.NullReference, table.Get(0))
	table.Set(1, 0xc)
	require.Equal(t, api.Reference(0xa), c.Get(1))

	require.NoError(t, c.EnsureSizeAtLeast(8))
	require.Equal(t, uint32(2), table.Size())
}
