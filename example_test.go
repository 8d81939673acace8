package vect_test

import (
	"encoding/binary"
	"fmt"

	vect "github.com/facebookincubator/go-vect"
)

func Example() {
	v := vect.New(4, 2)
	defer v.Release()

	val := make([]byte, 2)
	for _, x := range []uint16{10, 20, 30, 40, 50} {
		binary.LittleEndian.PutUint16(val, x)
		v.PushBack(val)
	}
	v.Erase(1, 3)

	fmt.Println(v.Len(), v.Cap())
	for i := uint(0); i < v.Len(); i++ {
		fmt.Println(binary.LittleEndian.Uint16(v.At(i)))
	}
	// Output:
	// 3 8
	// 10
	// 40
	// 50
}

func ExampleVector_At() {
	v := vect.New(0, 1)
	defer v.Release()
	v.PushBack([]byte{'a'})
	v.PushBack([]byte{'b'})

	// past the end reads clamp to the last element
	fmt.Printf("%s %s\n", v.At(0), v.At(100))
	// Output: a b
}
