// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

// package vect implements a growable array of fixed width elements
// whose type is known only by its size in bytes.  It supports:
//  1. amortized doubling on insertion
//  2. explicit capacity control (reserve, resize, shrink)
//  3. pluggable allocators, including a hard memory budget
//  4. permissive indexing: reads past the end clamp to the last
//     element and erases past the end are no-ops
//
// A Vector is not safe for concurrent use.
package vect

import (
	"fmt"
	"math"
	"math/bits"
)

// Vector stores a contiguous array of stride-sized elements.  The zero
// value is a released vector: every mutation fails until Assign gives it
// a stride.  A nil *Vector is accepted by every method and treated as an
// invalid handle.
type Vector struct {
	buf    region
	len    uint
	cap    uint
	stride uint
	alloc  Allocator
	log    *Logger
}

// New creates a vector of stride-byte elements with room for capacity
// elements.  A zero stride, or a failed allocation, yields a released
// vector.
func New(capacity, stride uint) *Vector {
	return NewWithConfig(Config{InitialCapacity: capacity, Stride: stride})
}

// NewWithConfig creates a vector as described by c.
func NewWithConfig(c Config) *Vector {
	c = c.withDefaults()
	v := &Vector{alloc: c.Allocator, log: c.Logger}
	if c.Stride == 0 {
		return v
	}
	v.stride = c.Stride
	if c.InitialCapacity == 0 {
		return v
	}
	if err := v.setCapacity("init", c.InitialCapacity); err != nil {
		v.stride = 0
	}
	return v
}

func (v *Vector) allocator() Allocator {
	if v.alloc == nil {
		return DefaultAllocator
	}
	return v.alloc
}

func (v *Vector) logger() *Logger {
	if v.log == nil {
		return DefaultLogger
	}
	return v.log
}

// byteSize converts an element count into bytes of storage.
func byteSize(n, stride uint) (int, error) {
	hi, lo := bits.Mul(n, stride)
	if hi != 0 || lo > math.MaxInt {
		return 0, fmt.Errorf("%d elements of %d bytes overflows the address space", n, stride)
	}
	return int(lo), nil
}

func (v *Vector) allocFailed(op string, size int, err error) error {
	v.logger().LogAllocFailure(op, size, v.stride, err)
	return fmt.Errorf("%s: %w: %w", op, ErrAllocationFailure, err)
}

// check is the validity guard shared by every mutating operation.
func (v *Vector) check(op string) error {
	if v == nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidHandle)
	}
	if v.stride == 0 {
		return fmt.Errorf("%s: %w", op, ErrDeadState)
	}
	return nil
}

// Release frees the vector's storage and leaves it released: length,
// capacity and stride all become zero.  Calling Release again is a no-op.
func (v *Vector) Release() {
	if v == nil {
		return
	}
	v.buf.free()
	v.len, v.cap, v.stride = 0, 0, 0
}

// Assign replaces the contents of the vector with count elements of
// stride bytes copied from src.  The vector takes on the new stride and
// its capacity becomes exactly count.  Assign revives a released vector.
func (v *Vector) Assign(src []byte, count, stride uint) error {
	if v == nil {
		return fmt.Errorf("assign: %w", ErrInvalidHandle)
	}
	if src == nil || count == 0 || stride == 0 {
		return fmt.Errorf("assign: %w: src set %t, count %d, stride %d",
			ErrBadArgument, src != nil, count, stride)
	}
	size, err := byteSize(count, stride)
	if err != nil {
		return v.allocFailed("assign", math.MaxInt, err)
	}
	if len(src) < size {
		return fmt.Errorf("assign: %w: source holds %d bytes, need %d",
			ErrBadArgument, len(src), size)
	}
	if err := v.buf.replace(v.allocator(), src, size); err != nil {
		return v.allocFailed("assign", size, err)
	}
	v.len, v.cap, v.stride = count, count, stride
	return nil
}

// Len returns the number of elements in the vector.
func (v *Vector) Len() uint {
	if v == nil {
		return 0
	}
	return v.len
}

// Cap returns the number of element slots currently allocated.
func (v *Vector) Cap() uint {
	if v == nil {
		return 0
	}
	return v.cap
}

// Stride returns the size of one element in bytes, zero once released.
func (v *Vector) Stride() uint {
	if v == nil {
		return 0
	}
	return v.stride
}

// Empty reports whether the vector holds no elements.  A nil vector is
// not considered empty.
func (v *Vector) Empty() bool {
	return v != nil && v.len == 0
}

// Dead reports whether the vector has been released (or never had a
// stride).
func (v *Vector) Dead() bool {
	return v == nil || v.stride == 0
}
