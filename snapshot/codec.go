// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies how the payload of a snapshot is compressed.
type Codec uint8

const (
	// CodecNone stores element bytes verbatim.  Only uncompressed
	// snapshots can be opened with OpenReadOnlyFromPath.
	CodecNone Codec = 0
	// CodecLZ4 uses LZ4 block compression (fast).
	CodecLZ4 Codec = 1
	// CodecZstd uses zstd (better ratio).
	CodecZstd Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// ParseCodec maps a codec name as printed by String back to a Codec.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CodecNone, nil
	case "lz4":
		return CodecLZ4, nil
	case "zstd":
		return CodecZstd, nil
	default:
		return 0, fmt.Errorf("unknown codec %q", name)
	}
}

var zstdEncoderPool sync.Pool

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

// lz4MaxRatio bounds how far one LZ4 block can expand: a sequence of
// 255-length run bytes per input byte, plus the trailing literals.
const lz4MaxRatio = 255

// checkExpansion rejects a claimed raw size that payload cannot decode to,
// before anything is allocated for it.
func checkExpansion(payload []byte, codec Codec, size int) error {
	if size == 0 {
		if len(payload) != 0 {
			return fmt.Errorf("%d payload bytes for an empty vector", len(payload))
		}
		return nil
	}
	if codec == CodecLZ4 && uint64(size) > lz4MaxRatio*uint64(len(payload))+16 {
		return fmt.Errorf("%d bytes of lz4 cannot expand to %d", len(payload), size)
	}
	return nil
}

// compress encodes raw with codec.  When compression does not shrink the
// data the raw bytes are returned with CodecNone.
func compress(raw []byte, codec Codec) ([]byte, Codec, error) {
	if codec == CodecNone || len(raw) == 0 {
		return raw, CodecNone, nil
	}

	var out []byte
	switch codec {
	case CodecLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, codec, err
		}
		out = dst[:n]
	case CodecZstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, codec, err
		}
		out = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, codec, fmt.Errorf("unsupported %s", codec)
	}

	// incompressible
	if len(out) == 0 || len(out) >= len(raw) {
		return raw, CodecNone, nil
	}
	return out, codec, nil
}

// decompress reverses compress; size is the expected raw length.
func decompress(payload []byte, codec Codec, size int) ([]byte, error) {
	if err := checkExpansion(payload, codec, size); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	switch codec {
	case CodecNone:
		if len(payload) != size {
			return nil, fmt.Errorf("payload holds %d bytes, expected %d", len(payload), size)
		}
		return payload, nil
	case CodecLZ4:
		raw := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, err
		}
		if n != size {
			return nil, errors.New("decompressed size mismatch")
		}
		return raw, nil
	case CodecZstd:
		// the header is untrusted: cap decoding at the claimed size and
		// let the output grow from what the payload suggests
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(size)),
		)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		raw, err := dec.DecodeAll(payload, make([]byte, 0, min(size, 4*len(payload))))
		if err != nil {
			return nil, err
		}
		if len(raw) != size {
			return nil, errors.New("decompressed size mismatch")
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported %s", codec)
	}
}
