// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

// Package snapshot reads and writes vectors as a self describing binary
// stream: a fixed little endian header followed by the (optionally
// compressed) element bytes.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"os"

	vect "github.com/facebookincubator/go-vect"
)

// magic marks the start of every snapshot ("VECT" read little endian).
const magic = uint32(0x54434556)

// version is a version number for the on disk representation format.
// Any time incompatible changes are made, it is bumped
const version = uint32(0x0001)

var (
	// ErrBadMagic is returned when a stream does not start with a
	// snapshot header.
	ErrBadMagic = errors.New("snapshot: not a vector snapshot")
	// ErrVersion is returned for snapshots written by an incompatible
	// version.
	ErrVersion = errors.New("snapshot: incompatible format version")
	// ErrChecksum is returned when the payload does not hash to the
	// value recorded in the header.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
	// ErrCompressed is returned when random access is requested on a
	// compressed snapshot.
	ErrCompressed = errors.New("snapshot: compressed snapshots cannot be read in place")
)

// Header describes a serialized vector
type Header struct {
	Magic   uint32
	Version uint32
	// the number of elements stored
	Length uint64
	// the size in bytes of one element
	Stride uint64
	// how the payload is encoded
	Codec Codec
	_     [7]byte
	// MurmurHash64A of the uncompressed element bytes
	Checksum uint64
	// the number of payload bytes following the header
	PayloadSize uint64
}

// HeaderSize is the encoded size of a Header.
var HeaderSize = binary.Size(Header{})

// RawSize reports the size of the uncompressed element bytes.
func (h *Header) RawSize() (int, error) {
	hi, lo := bits.Mul64(h.Length, h.Stride)
	if hi != 0 || lo > math.MaxInt {
		return 0, fmt.Errorf("snapshot: %d elements of %d bytes overflows", h.Length, h.Stride)
	}
	return int(lo), nil
}

// Write serializes v to w, compressing the payload with codec when that
// makes it smaller.  A released vector cannot be written.
func Write(w io.Writer, v *vect.Vector, codec Codec) (n int64, err error) {
	if v.Dead() {
		return 0, fmt.Errorf("snapshot: %w", vect.ErrDeadState)
	}
	raw := v.Data()[:v.Len()*v.Stride()]
	payload, used, err := compress(raw, codec)
	if err != nil {
		return 0, fmt.Errorf("snapshot: compress with %s: %w", codec, err)
	}
	h := Header{
		Magic:       magic,
		Version:     version,
		Length:      uint64(v.Len()),
		Stride:      uint64(v.Stride()),
		Codec:       used,
		Checksum:    checksum(raw),
		PayloadSize: uint64(len(payload)),
	}
	if err = binary.Write(w, binary.LittleEndian, h); err != nil {
		return
	}
	n += int64(HeaderSize)

	np, err := w.Write(payload)
	n += int64(np)
	return
}

// ReadHeader reads and validates a snapshot header from r.
func ReadHeader(r io.Reader) (h Header, err error) {
	if err = binary.Read(r, binary.LittleEndian, &h); err != nil {
		return
	}
	if h.Magic != magic {
		return h, ErrBadMagic
	}
	if h.Version != version {
		return h, fmt.Errorf("%w: version is %d, expected %d", ErrVersion, h.Version, version)
	}
	if h.Stride == 0 {
		return h, fmt.Errorf("snapshot: header has zero stride: %w", vect.ErrBadArgument)
	}
	return h, nil
}

// ReadHeaderFromPath reads the header of the snapshot stored at path.
func ReadHeaderFromPath(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	return ReadHeader(f)
}

// Read deserializes a vector from r.  The vector is built from cfg with
// the stride taken from the header; its capacity equals its length.
func Read(r io.Reader, cfg vect.Config) (*vect.Vector, Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, h, err
	}
	size, err := h.RawSize()
	if err != nil {
		return nil, h, err
	}
	if h.PayloadSize > math.MaxInt64 {
		return nil, h, fmt.Errorf("snapshot: payload size %d too large", h.PayloadSize)
	}

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(h.PayloadSize)); err != nil {
		return nil, h, fmt.Errorf("snapshot: read payload: %w", err)
	}
	raw, err := decompress(buf.Bytes(), h.Codec, size)
	if err != nil {
		return nil, h, fmt.Errorf("snapshot: decompress %s: %w", h.Codec, err)
	}
	if sum := checksum(raw); sum != h.Checksum {
		return nil, h, fmt.Errorf("%w: got %x, header says %x", ErrChecksum, sum, h.Checksum)
	}

	cfg.InitialCapacity = 0
	cfg.Stride = uint(h.Stride)
	v := vect.NewWithConfig(cfg)
	if h.Length > 0 {
		if err := v.Assign(raw, uint(h.Length), uint(h.Stride)); err != nil {
			return nil, h, err
		}
	}
	return v, h, nil
}

// ReadFromPath deserializes the vector stored at path.
func ReadFromPath(path string, cfg vect.Config) (*vect.Vector, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer f.Close()
	return Read(f, cfg)
}
