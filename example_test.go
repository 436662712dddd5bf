package rbforest_test

import (
	"fmt"

	"github.com/TomTonic/rbforest"
	"github.com/TomTonic/rbforest/codec"
)

func Example_basicUsage() {
	size, _ := rbforest.RequiredSize(8, 8, 140, 1)
	buf := make([]byte, size)
	f, err := rbforest.Init[uint64, uint64](buf, codec.Uint64Codec{}, codec.Uint64Codec{}, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = f.Put(0, 1, 10)
	_ = f.Put(0, 2, 20)
	_ = f.Put(0, 3, 30)

	v, ok, _ := f.Get(0, 2)
	fmt.Println(v, ok)
	// Output:
	// 20 true
}

func Example_iteration() {
	size, _ := rbforest.RequiredSize(8, 8, 140, 1)
	buf := make([]byte, size)
	f, _ := rbforest.Init[uint64, uint64](buf, codec.Uint64Codec{}, codec.Uint64Codec{}, 1)
	_ = f.Put(0, 3, 0)
	_ = f.Put(0, 1, 0)
	_ = f.Put(0, 2, 0)

	it, _ := f.Keys(0)
	for {
		k, ok := it.Next()
		if !ok {
			break
		}
		fmt.Println(k)
	}
	// Output:
	// 1
	// 2
	// 3
}
