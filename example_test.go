package ldd_test

import (
	"fmt"

	"github.com/sdzldd/ldd"
)

// This example shows the basic usage of the package: build a set of
// vectors out of singletons and unions, then query and print it.
func Example_basic() {
	store := ldd.New(ldd.Nodesize(1000), ldd.Cachesize(256))

	a := store.Singleton([]uint32{1, 2})
	b := store.Singleton([]uint32{1, 3})
	set := store.Union(a, b)
	a.Release()
	b.Release()
	defer set.Release()

	fmt.Printf("Number of vectors is %d\n", store.Len(set))
	fmt.Printf("Contains {1,2}: %t\n", store.ElementOf([]uint32{1, 2}, set))
	fmt.Printf("Contains {1,4}: %t\n", store.ElementOf([]uint32{1, 4}, set))
	// Output:
	// Number of vectors is 2
	// Contains {1,2}: true
	// Contains {1,4}: false
}

// This example shows projecting a set down onto a subset of its indices,
// merging every vector that agrees on the kept positions.
func Example_project() {
	store := ldd.New()

	a := store.Singleton([]uint32{1, 2, 3})
	b := store.Singleton([]uint32{1, 9, 3})
	set := store.Union(a, b)
	a.Release()
	b.Release()
	defer set.Release()

	proj := store.ComputeProj([]int{0, 2})
	defer proj.Release()
	result := store.Project(set, proj)
	defer result.Release()

	fmt.Printf("Number of vectors after dropping index 1 is %d\n", store.Len(result))
	fmt.Printf("Contains {1,3}: %t\n", store.ElementOf([]uint32{1, 3}, result))
	// Output:
	// Number of vectors after dropping index 1 is 1
	// Contains {1,3}: true
}

// This example shows iterating over every vector held in a set, in the
// order the underlying chains happen to expose them.
func Example_iter() {
	store := ldd.New()

	a := store.Singleton([]uint32{1, 2})
	b := store.Singleton([]uint32{1, 3})
	set := store.Union(a, b)
	a.Release()
	b.Release()
	defer set.Release()

	it := store.NewIter(set)
	for it.Next() {
		fmt.Println(it.Vector())
	}
	// Output:
	// [1 2]
	// [1 3]
}
