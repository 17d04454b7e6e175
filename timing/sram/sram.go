// Package sram provides a cycle-accurate model of a synchronous, byte-maskable
// memory array with a registered read port.
//
// Each call to Advance models one rising clock edge. The word at the requested
// address is sampled before any write of the same edge is applied, so a read
// and a write to the same address on the same edge never observe each other.
// The written value becomes visible from the next edge on.
//
// Memory content starts as all zeros.
package sram

import (
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"
	log "github.com/sirupsen/logrus"
)

// Edge bundles the inputs sampled on one rising clock edge.
type Edge struct {
	// WriteEnable gates the write. When false, WriteData and ByteEnable are
	// ignored.
	WriteEnable bool

	// Addr is the word address. Bits above the configured address width are
	// discarded.
	Addr uint64

	// WriteData holds the lanes to store.
	WriteData Word

	// ByteEnable selects which lanes of WriteData are stored.
	ByteEnable ByteEnable
}

// Statistics holds access counters.
type Statistics struct {
	Edges         uint64
	Writes        uint64
	PartialWrites uint64
	LanesWritten  uint64
}

// Memory is a word-addressable array with a one-cycle registered read output.
// It is not safe for concurrent use; edges must be applied one at a time.
type Memory struct {
	config   Config
	numBytes int

	storage  *mem.Storage
	readData Word

	stats Statistics
}

// New creates a memory with the given configuration.
func New(config Config) (*Memory, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	numBytes := config.NumBytes()
	capacity := config.Depth() * uint64(numBytes)

	return &Memory{
		config:   config,
		numBytes: numBytes,
		storage:  mem.NewStorage(capacity),
		readData: NewWord(numBytes),
	}, nil
}

// Config returns the memory configuration.
func (m *Memory) Config() Config {
	return m.config
}

// Stats returns access statistics.
func (m *Memory) Stats() Statistics {
	return m.stats
}

// ResetStats clears access statistics.
func (m *Memory) ResetStats() {
	m.stats = Statistics{}
}

// Word builds a word of this memory's width from v.
func (m *Memory) Word(v uint64) Word {
	return WordFromUint64(v, m.numBytes)
}

// ReadData returns the registered read output, the value produced by the most
// recent edge.
func (m *Memory) ReadData() Word {
	return m.readData.Clone()
}

// Apply performs one rising edge with the inputs bundled in e.
func (m *Memory) Apply(e Edge) Word {
	return m.Advance(e.WriteEnable, e.Addr, e.WriteData, e.ByteEnable)
}

// Advance performs one rising clock edge and returns the registered read data.
//
// The returned word is the content of addr before this edge. If writeEnable is
// set, the lanes selected by byteEnable are then replaced with the matching
// lanes of writeData.
func (m *Memory) Advance(
	writeEnable bool,
	addr uint64,
	writeData Word,
	byteEnable ByteEnable,
) Word {
	m.stats.Edges++

	byteAddr := m.byteAddr(addr)
	oldWord := m.load(byteAddr)

	if writeEnable {
		m.write(byteAddr, oldWord, writeData, byteEnable)
	}

	m.readData = oldWord

	return oldWord.Clone()
}

// Peek returns the word stored at addr without advancing the clock. It does
// not touch the registered output.
func (m *Memory) Peek(addr uint64) Word {
	return m.load(m.byteAddr(addr))
}

func (m *Memory) byteAddr(addr uint64) uint64 {
	return (addr & m.config.AddrMask()) * uint64(m.numBytes)
}

func (m *Memory) load(byteAddr uint64) Word {
	data, err := m.storage.Read(byteAddr, uint64(m.numBytes))
	if err != nil {
		log.Panicf("sram: read at byte address 0x%X: %v", byteAddr, err)
	}
	return Word(data)
}

func (m *Memory) write(
	byteAddr uint64,
	current Word,
	writeData Word,
	byteEnable ByteEnable,
) {
	merged := current.Clone()
	lanes := 0
	for i := 0; i < m.numBytes; i++ {
		if !byteEnable.Enabled(i) {
			continue
		}
		merged[i] = writeData.Lane(i)
		lanes++
	}

	m.stats.Writes++
	m.stats.LanesWritten += uint64(lanes)
	if lanes != m.numBytes {
		m.stats.PartialWrites++
	}

	if lanes == 0 {
		return
	}

	if err := m.storage.Write(byteAddr, merged); err != nil {
		log.Panicf("sram: write at byte address 0x%X: %v", byteAddr, err)
	}
}

// String describes the memory geometry.
func (m *Memory) String() string {
	return fmt.Sprintf("sram(%d words x %d bits)",
		m.config.Depth(), m.config.DataWidth)
}
