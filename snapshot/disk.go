// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package snapshot

import (
	"fmt"
	"os"

	vect "github.com/facebookincubator/go-vect"
)

// Disk is a read-only vector that reads elements from an uncompressed
// snapshot on disk without loading it into RAM
type Disk struct {
	header Header
	f      *os.File
}

var _ vect.Reader = (*Disk)(nil)

// OpenReadOnlyFromPath opens the uncompressed snapshot at path for random
// access.
func OpenReadOnlyFromPath(path string) (*Disk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	d, err := openReadOnly(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func openReadOnly(f *os.File) (*Disk, error) {
	h, err := ReadHeader(f)
	if err != nil {
		return nil, err
	}
	if h.Codec != CodecNone {
		return nil, fmt.Errorf("%w: payload is %s", ErrCompressed, h.Codec)
	}
	size, err := h.RawSize()
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if want := int64(HeaderSize) + int64(size); st.Size() < want {
		return nil, fmt.Errorf("snapshot: file holds %d bytes, expected %d", st.Size(), want)
	}
	return &Disk{header: h, f: f}, nil
}

func (d *Disk) Close() error {
	if d.f != nil {
		return d.f.Close()
	}
	return nil
}

// Header returns the header the snapshot was opened with.
func (d *Disk) Header() Header {
	return d.header
}

func (d *Disk) Len() uint {
	return uint(d.header.Length)
}

func (d *Disk) Stride() uint {
	return uint(d.header.Stride)
}

// Get reads the element at ix, clamping to the last element like
// Vector.At.  It returns nil and no error for an empty snapshot.
func (d *Disk) Get(ix uint) ([]byte, error) {
	n := d.Len()
	if n == 0 {
		return nil, nil
	}
	if ix >= n {
		ix = n - 1
	}
	stride := d.Stride()
	val := make([]byte, stride)
	off := int64(HeaderSize) + int64(ix)*int64(stride)
	if _, err := d.f.ReadAt(val, off); err != nil {
		return nil, fmt.Errorf("snapshot: read element %d: %w", ix, err)
	}
	return val, nil
}

// At returns a copy of the element at ix, or nil if it cannot be read.
func (d *Disk) At(ix uint) []byte {
	val, err := d.Get(ix)
	if err != nil {
		return nil
	}
	return val
}
