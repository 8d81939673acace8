package vect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesRequired(t *testing.T) {
	c := Config{InitialCapacity: 1 << 20, Stride: 8}
	assert.Equal(t, uint(8<<20), c.BytesRequired())
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "5.00 bytes", humanBytes(5))
	assert.Equal(t, "1.50 KB", humanBytes(1536))
	assert.Equal(t, "8.00 MB", humanBytes(8<<20))
	assert.Equal(t, "200 GB", humanBytes(200<<30))
	assert.Equal(t, "3.00 TB", humanBytes(3<<40))
	assert.Equal(t, "1024 bytes", humanBytes(1024))
}

func TestConfigDefaults(t *testing.T) {
	c := Config{Stride: 4}.withDefaults()
	assert.Equal(t, DefaultAllocator, c.Allocator)
	assert.Same(t, DefaultLogger, c.Logger)
}
