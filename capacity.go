// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

import (
	"fmt"
	"math"
)

// setCapacity reallocates storage to exactly n elements, truncating the
// length if it no longer fits.  On failure nothing changes.
func (v *Vector) setCapacity(op string, n uint) error {
	size, err := byteSize(n, v.stride)
	if err != nil {
		return v.allocFailed(op, math.MaxInt, err)
	}
	if err := v.buf.resize(v.allocator(), size); err != nil {
		return v.allocFailed(op, size, err)
	}
	v.cap = n
	v.len = min(v.len, n)
	return nil
}

// grow makes room for one more element, doubling capacity when full.
func (v *Vector) grow(op string) error {
	if v.len < v.cap {
		return nil
	}
	return v.setCapacity(op, max(v.cap, 1)*2)
}

// Reserve ensures capacity for at least n elements.  If the vector is
// already large enough it is left alone, otherwise capacity becomes
// exactly n.
func (v *Vector) Reserve(n uint) error {
	if v == nil {
		return fmt.Errorf("reserve: %w", ErrInvalidHandle)
	}
	if v.cap >= n {
		return nil
	}
	if err := v.check("reserve"); err != nil {
		return err
	}
	return v.setCapacity("reserve", n)
}

// Resize sets the capacity to exactly n elements, discarding any elements
// beyond it.  Resizing to zero frees the storage altogether.
func (v *Vector) Resize(n uint) error {
	if err := v.check("resize"); err != nil {
		return err
	}
	return v.setCapacity("resize", n)
}

// ShrinkToFit reduces the capacity to the current length.
func (v *Vector) ShrinkToFit() error {
	if err := v.check("shrink_to_fit"); err != nil {
		return err
	}
	return v.setCapacity("shrink_to_fit", v.len)
}
