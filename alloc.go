// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrBudgetExceeded is returned by a BudgetAllocator when a request would
// take usage past its limit.
var ErrBudgetExceeded = errors.New("memory budget exceeded")

// Allocator hands out the byte regions backing a Vector.  Implementations
// must be safe for concurrent use since one allocator may serve many
// vectors.
type Allocator interface {
	// Allocate returns a zeroed region of exactly size bytes.
	Allocate(size int) ([]byte, error)
	// Reallocate returns a region of exactly size bytes whose first
	// min(len(buf), size) bytes equal buf.  On error buf is untouched
	// and still owned by the caller.
	Reallocate(buf []byte, size int) ([]byte, error)
	// Free returns a region obtained from Allocate or Reallocate.
	Free(buf []byte)
}

// HeapAllocator allocates from the Go heap.  It never fails.
type HeapAllocator struct{}

var _ Allocator = HeapAllocator{}

func (HeapAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative allocation size %d", size)
	}
	return make([]byte, size), nil
}

// Reallocate always copies into a fresh slice so that a shrink lets the
// garbage collector reclaim the old array.
func (HeapAllocator) Reallocate(buf []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative allocation size %d", size)
	}
	nb := make([]byte, size)
	copy(nb, buf)
	return nb, nil
}

func (HeapAllocator) Free([]byte) {}

// DefaultAllocator is used by vectors whose Config names no allocator.
var DefaultAllocator Allocator = HeapAllocator{}

// BudgetConfig configures a BudgetAllocator.
type BudgetConfig struct {
	// LimitBytes is the hard limit on bytes outstanding.  Zero means
	// usage is tracked but never refused.
	LimitBytes int64
	// Backing performs the actual allocations.  Defaults to
	// DefaultAllocator.
	Backing Allocator
}

// BudgetAllocator enforces a byte limit over another Allocator.  Growth
// past the limit fails fast with ErrBudgetExceeded; shrinking and freeing
// never fail.  Accounting follows len() of the live regions.
type BudgetAllocator struct {
	cfg  BudgetConfig
	sem  *semaphore.Weighted // nil if unlimited
	used atomic.Int64
}

var _ Allocator = (*BudgetAllocator)(nil)

// NewBudgetAllocator creates a BudgetAllocator from cfg.
func NewBudgetAllocator(cfg BudgetConfig) *BudgetAllocator {
	if cfg.Backing == nil {
		cfg.Backing = DefaultAllocator
	}
	b := &BudgetAllocator{cfg: cfg}
	if cfg.LimitBytes > 0 {
		b.sem = semaphore.NewWeighted(cfg.LimitBytes)
	}
	return b
}

func (b *BudgetAllocator) acquire(n int64) error {
	if n <= 0 {
		return nil
	}
	if b.sem != nil && !b.sem.TryAcquire(n) {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrBudgetExceeded, n, b.Used(), b.cfg.LimitBytes)
	}
	b.used.Add(n)
	return nil
}

func (b *BudgetAllocator) release(n int64) {
	if n <= 0 {
		return
	}
	if b.sem != nil {
		b.sem.Release(n)
	}
	b.used.Add(-n)
}

func (b *BudgetAllocator) Allocate(size int) ([]byte, error) {
	if err := b.acquire(int64(size)); err != nil {
		return nil, err
	}
	buf, err := b.cfg.Backing.Allocate(size)
	if err != nil {
		b.release(int64(size))
		return nil, err
	}
	return buf, nil
}

func (b *BudgetAllocator) Reallocate(buf []byte, size int) ([]byte, error) {
	delta := int64(size) - int64(len(buf))
	if err := b.acquire(delta); err != nil {
		return nil, err
	}
	nb, err := b.cfg.Backing.Reallocate(buf, size)
	if err != nil {
		b.release(delta)
		return nil, err
	}
	b.release(-delta)
	return nb, nil
}

func (b *BudgetAllocator) Free(buf []byte) {
	b.cfg.Backing.Free(buf)
	b.release(int64(len(buf)))
}

// Used reports the bytes currently outstanding.
func (b *BudgetAllocator) Used() int64 {
	return b.used.Load()
}

// Limit reports the configured limit, 0 if unlimited.
func (b *BudgetAllocator) Limit() int64 {
	return b.cfg.LimitBytes
}
