package sram

import (
	"errors"
	"fmt"
)

const (
	// MaxAddrWidth bounds the address width so that byte addresses of the
	// backing store always fit in a uint64.
	MaxAddrWidth = 48

	// MaxDataWidth bounds the word width in bits.
	MaxDataWidth = 4096
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid memory configuration")

// Config holds the parameters of a memory array. It is fixed when the memory
// is created.
type Config struct {
	// DataWidth is the number of bits in a word. Must be a positive multiple
	// of 8. Default: 32.
	DataWidth int

	// AddrWidth is the number of address bits. The array holds 2^AddrWidth
	// words. Default: 8.
	AddrWidth int
}

// DefaultConfig returns a 32-bit wide, 256-word configuration.
func DefaultConfig() Config {
	return Config{
		DataWidth: 32,
		AddrWidth: 8,
	}
}

// NumBytes returns the number of byte lanes in a word.
func (c Config) NumBytes() int {
	return c.DataWidth / 8
}

// Depth returns the number of addressable words.
func (c Config) Depth() uint64 {
	return uint64(1) << uint(c.AddrWidth)
}

// AddrMask returns the mask that bounds an address to AddrWidth bits.
func (c Config) AddrMask() uint64 {
	return c.Depth() - 1
}

// Validate checks that the widths describe a buildable memory.
func (c Config) Validate() error {
	if c.DataWidth <= 0 {
		return fmt.Errorf("%w: data_width must be > 0, got %d",
			ErrInvalidConfig, c.DataWidth)
	}
	if c.DataWidth%8 != 0 {
		return fmt.Errorf("%w: data_width must be a multiple of 8, got %d",
			ErrInvalidConfig, c.DataWidth)
	}
	if c.DataWidth > MaxDataWidth {
		return fmt.Errorf("%w: data_width must be <= %d, got %d",
			ErrInvalidConfig, MaxDataWidth, c.DataWidth)
	}
	if c.AddrWidth <= 0 {
		return fmt.Errorf("%w: addr_width must be > 0, got %d",
			ErrInvalidConfig, c.AddrWidth)
	}
	if c.AddrWidth > MaxAddrWidth {
		return fmt.Errorf("%w: addr_width must be <= %d, got %d",
			ErrInvalidConfig, MaxAddrWidth, c.AddrWidth)
	}
	return nil
}
