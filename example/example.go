package main

import (
	"bytes"
	"encoding/binary"
	"fmt"

	vect "github.com/facebookincubator/go-vect"
	"github.com/facebookincubator/go-vect/snapshot"
)

func int32Bytes(x int32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(x))
	return b[:]
}

func dump(v *vect.Vector) {
	fmt.Printf("len=%d cap=%d:", v.Len(), v.Cap())
	for i := uint(0); i < v.Len(); i++ {
		fmt.Printf(" %d", int32(binary.LittleEndian.Uint32(v.At(i))))
	}
	fmt.Println()
}

func main() {
	// the element type is known only by its width
	v := vect.New(4, 4)
	defer v.Release()

	for i := int32(0); i < 7; i++ {
		v.PushBack(int32Bytes(i))
	}
	dump(v)

	// insert in the middle, then append via an out of range index
	v.Insert(int32Bytes(25), 3)
	v.Insert(int32Bytes(89), 100)
	dump(v)

	// reads past the end clamp to the last element
	fmt.Printf("at(1000) = %d\n", int32(binary.LittleEndian.Uint32(v.At(1000))))

	v.Erase(1, 3)
	v.ShrinkToFit()
	dump(v)

	// Serialize the vector and report size
	buf := bytes.NewBuffer([]byte{})
	snapshot.Write(buf, v, snapshot.CodecZstd)
	fmt.Printf("vector serializes into %d bytes\n", buf.Len())
}
