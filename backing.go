// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

// region is the single owning handle to a vector's storage.  It remembers
// the allocator that produced it so the bytes always go back to the same
// place, even after a Swap moves the region to another vector.  An absent
// region has neither bytes nor allocator.
type region struct {
	buf   []byte
	alloc Allocator
}

func (r *region) absent() bool {
	return r.buf == nil
}

// resize makes the region exactly size bytes, allocating from a when
// absent and freeing entirely when size is zero.  On error r is unchanged.
func (r *region) resize(a Allocator, size int) error {
	switch {
	case size == 0:
		r.free()
		return nil
	case r.buf == nil:
		buf, err := a.Allocate(size)
		if err != nil {
			return err
		}
		r.buf, r.alloc = buf, a
		return nil
	default:
		buf, err := r.alloc.Reallocate(r.buf, size)
		if err != nil {
			return err
		}
		r.buf = buf
		return nil
	}
}

// replace installs a fresh region of size bytes holding src, releasing the
// old one only once the new allocation succeeded.
func (r *region) replace(a Allocator, src []byte, size int) error {
	buf, err := a.Allocate(size)
	if err != nil {
		return err
	}
	copy(buf, src[:size])
	r.free()
	r.buf, r.alloc = buf, a
	return nil
}

func (r *region) free() {
	if r.buf != nil {
		r.alloc.Free(r.buf)
	}
	r.buf, r.alloc = nil, nil
}

// slot returns the stride-sized view of element ix.
func (r *region) slot(ix, stride uint) []byte {
	off := ix * stride
	return r.buf[off : off+stride : off+stride]
}
