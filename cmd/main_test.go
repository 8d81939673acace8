// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	vect "github.com/facebookincubator/go-vect"
	"github.com/facebookincubator/go-vect/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntCodec(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8} {
		buf := make([]byte, width)
		for _, x := range []int64{0, 1, -1, 100, -100} {
			encodeInt(buf, x)
			assert.Equal(t, x, decodeInt(buf), "width %d", width)
		}
	}
	assert.True(t, validWidth(4))
	assert.False(t, validWidth(3))
}

func TestCompile(t *testing.T) {
	v := vect.New(0, 2)
	defer v.Release()
	require.NoError(t, compile(v, strings.NewReader("1\n  -2\n\n0x10\n")))
	assert.Equal(t, uint(3), v.Len())
	assert.Equal(t, int64(-2), decodeInt(v.At(1)))
	assert.Equal(t, int64(16), decodeInt(v.At(2)))

	err := compile(v, strings.NewReader("7\nseven\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestOpen(t *testing.T) {
	v := vect.New(0, 4)
	defer v.Release()
	val := make([]byte, 4)
	for i := int64(0); i < 500; i++ {
		encodeInt(val, i%3)
		require.NoError(t, v.PushBack(val))
	}

	for _, codec := range []snapshot.Codec{snapshot.CodecNone, snapshot.CodecZstd} {
		path := filepath.Join(t.TempDir(), "vect.bin")
		f, err := os.Create(path)
		require.NoError(t, err)
		_, err = snapshot.Write(f, v, codec)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		r, closer, err := open(path)
		require.NoError(t, err, codec.String())
		assert.Equal(t, uint(500), r.Len())
		assert.Equal(t, int64(499%3), decodeInt(r.At(10000)))
		closer()
	}

	_, _, err := open(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

type closeFailer struct {
	strings.Builder
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return os.ErrClosed
}

func TestWriteSnapshotReportsClose(t *testing.T) {
	v := vect.New(0, 4)
	require.NoError(t, v.PushBack([]byte{1, 2, 3, 4}))

	w := &closeFailer{}
	n, err := writeSnapshot(w, v, snapshot.CodecNone)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.True(t, w.closed)
	assert.Equal(t, int64(w.Len()), n)

	v.Release()
	w = &closeFailer{}
	_, err = writeSnapshot(w, v, snapshot.CodecNone)
	assert.ErrorIs(t, err, vect.ErrDeadState)
	assert.True(t, w.closed)
}
