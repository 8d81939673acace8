// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

import "fmt"

// PushBack appends a copy of the first Stride() bytes of value.
func (v *Vector) PushBack(value []byte) error {
	if err := v.check("push_back"); err != nil {
		return err
	}
	if err := v.grow("push_back"); err != nil {
		return err
	}
	copy(v.buf.slot(v.len, v.stride), value)
	v.len++
	return nil
}

// PopBack removes the last element, zeroing its slot.  Popping an empty
// vector is an error.
func (v *Vector) PopBack() error {
	if err := v.check("pop_back"); err != nil {
		return err
	}
	if v.buf.absent() || v.len == 0 {
		return fmt.Errorf("pop_back: %w: vector is empty", ErrBadArgument)
	}
	v.len--
	clear(v.buf.slot(v.len, v.stride))
	return nil
}

// Insert places a copy of value at ix, shifting later elements right.
// Any ix at or past the end appends, which includes negative indices
// converted to uint.
func (v *Vector) Insert(value []byte, ix uint) error {
	if v == nil {
		return fmt.Errorf("insert: %w", ErrInvalidHandle)
	}
	if ix >= v.len {
		return v.PushBack(value)
	}
	if err := v.check("insert"); err != nil {
		return err
	}
	if err := v.grow("insert"); err != nil {
		return err
	}
	s := v.stride
	copy(v.buf.buf[(ix+1)*s:(v.len+1)*s], v.buf.buf[ix*s:v.len*s])
	copy(v.buf.slot(ix, s), value)
	v.len++
	return nil
}

// Erase removes the elements in [start, end).  The bounds are forgiving:
// they are swapped if reversed, end is clamped to Len(), and a start at or
// past the end removes nothing.  Erasing through the end truncates the
// vector and shrinks its capacity to start.
func (v *Vector) Erase(start, end uint) error {
	if v == nil {
		return fmt.Errorf("erase: %w", ErrInvalidHandle)
	}
	if start > end {
		start, end = end, start
	}
	if start >= v.len {
		return nil
	}
	end = min(end, v.len)
	if end == v.len {
		return v.setCapacity("erase", start)
	}
	s := v.stride
	copy(v.buf.buf[start*s:], v.buf.buf[end*s:v.len*s])
	v.len -= end - start
	return nil
}

// Clear frees the storage and empties the vector.  Unlike Release the
// stride is kept, so the vector remains usable.
func (v *Vector) Clear() error {
	if v == nil {
		return fmt.Errorf("clear: %w", ErrInvalidHandle)
	}
	v.buf.free()
	v.len, v.cap = 0, 0
	return nil
}

// Swap exchanges the storage of v and other without copying elements.
// Both vectors must have the same stride.
func (v *Vector) Swap(other *Vector) error {
	if v == nil || other == nil {
		return fmt.Errorf("swap: %w", ErrInvalidHandle)
	}
	if v.stride != other.stride {
		return fmt.Errorf("swap: %w: stride %d does not match %d",
			ErrBadArgument, v.stride, other.stride)
	}
	v.buf, other.buf = other.buf, v.buf
	v.len, other.len = other.len, v.len
	v.cap, other.cap = other.cap, v.cap
	return nil
}
