package wasmstore

import (
	"fmt"
)

// This is an example of cloning an instance so that two workers can run the same module without sharing tables.
func Example() {
	r := NewRuntimeWithConfig(NewRuntimeConfig().WithTableGrowth(TableGrowthBounded))

	i := r.NewInstance("math")
	max := uint32(8)
	table := i.AllocateTable(2, &max)
	if err := table.Initialize(0, 0x10); err != nil {
		panic(err)
	}

	worker := i.Clone("math-1")
	if _, err := worker.Table(0).Grow(2); err != nil {
		panic(err)
	}

	fmt.Println(i.Table(0))
	fmt.Println(worker.Table(0))

	// Output:
	// table[0](size=2, max=8)
	// table[0](size=4, max=8)
}
