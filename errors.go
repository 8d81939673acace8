// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

import "errors"

var (
	// ErrInvalidHandle is returned when an operation targets a nil *Vector.
	ErrInvalidHandle = errors.New("vect: invalid vector handle")
	// ErrDeadState is returned by mutating operations on a vector whose
	// stride is zero, either because it was released or never initialized.
	ErrDeadState = errors.New("vect: vector is released")
	// ErrBadArgument is returned when an argument is rejected: a nil or
	// short source buffer, a zero count or stride, mismatched strides, or
	// nothing left to pop.
	ErrBadArgument = errors.New("vect: bad argument")
	// ErrAllocationFailure is returned when the allocator refused a request.
	// The allocator's own error is wrapped alongside it.
	ErrAllocationFailure = errors.New("vect: allocation failed")
)
