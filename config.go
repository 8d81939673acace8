// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

import "fmt"

// Config controls the construction of a Vector
type Config struct {
	// The number of element slots to allocate up front.  Zero defers
	// allocation until the first insertion.
	InitialCapacity uint
	// The size in bytes of one element.  Zero yields a released vector.
	Stride uint
	// Where element storage comes from.  Defaults to DefaultAllocator.
	Allocator Allocator
	// Where allocation failures are reported.  Defaults to DefaultLogger.
	Logger *Logger
}

// DefaultConfig is the configuration used by New: heap allocation and
// diagnostics on stderr.
var DefaultConfig = Config{
	Allocator: DefaultAllocator,
	Logger:    DefaultLogger,
}

func (c Config) withDefaults() Config {
	if c.Allocator == nil {
		c.Allocator = DefaultConfig.Allocator
	}
	if c.Logger == nil {
		c.Logger = DefaultConfig.Logger
	}
	return c
}

// BytesRequired reports the number of bytes the initial allocation will
// request.
func (c *Config) BytesRequired() uint {
	return c.InitialCapacity * c.Stride
}

// ExplainIndent will print an indented summary of the configuration to stdout
func (c *Config) ExplainIndent(indent string) {
	fmt.Printf("%s%4d bytes per element\n", indent, c.Stride)
	fmt.Printf("%s%4d elements allocated up front\n", indent, c.InitialCapacity)
	fmt.Printf("%s     %s storage size expected\n", indent, humanBytes(c.BytesRequired()))
}

// Explain will print a summary of the configuration to stdout
func (c *Config) Explain() {
	c.ExplainIndent("")
}

var byteUnits = []string{"bytes", "KB", "MB", "GB", "TB"}

// humanBytes renders a byte count with three significant digits.
func humanBytes(bytes uint) string {
	v := float64(bytes)
	unit := 0
	for v > 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	switch {
	case v < 10:
		return fmt.Sprintf("%.2f %s", v, byteUnits[unit])
	case v < 100:
		return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
	default:
		return fmt.Sprintf("%.0f %s", v, byteUnits[unit])
	}
}
