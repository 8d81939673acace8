// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

// At returns the element at ix as a stride-sized view into the vector's
// storage.  An index at or past the end yields the last element rather
// than an error.  At returns nil when the vector is empty.
//
// The view is invalidated by any operation that changes capacity.
func (v *Vector) At(ix uint) []byte {
	if v == nil || v.len == 0 {
		return nil
	}
	if ix >= v.len {
		ix = v.len - 1
	}
	return v.buf.slot(ix, v.stride)
}

// Front returns the first element, or nil when the vector is empty.
func (v *Vector) Front() []byte {
	return v.At(0)
}

// Back returns the last element, or nil when the vector is empty.
func (v *Vector) Back() []byte {
	if v == nil || v.len == 0 {
		return nil
	}
	return v.At(v.len - 1)
}

// Data returns the whole allocated storage, Cap()*Stride() bytes, or nil
// if nothing is allocated.  Only the first Len()*Stride() bytes hold
// elements.
func (v *Vector) Data() []byte {
	if v == nil {
		return nil
	}
	return v.buf.buf
}
