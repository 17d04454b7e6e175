// Package stimulus provides the input programs that drive a memory model and
// a reference scoreboard that checks its outputs.
package stimulus

import (
	"github.com/sarchlab/sramsim/timing/sram"
)

// Step is one clock edge of a program.
type Step struct {
	sram.Edge

	// Expect is the read data the edge must produce. Nil means the step has
	// no explicit expectation.
	Expect sram.Word

	// Comment is free text carried into reports.
	Comment string
}

// Program is a named sequence of steps applied to a freshly created memory.
type Program struct {
	Name  string
	Steps []Step
}

// Edges returns the inputs of every step in order.
func (p *Program) Edges() []sram.Edge {
	edges := make([]sram.Edge, len(p.Steps))
	for i, s := range p.Steps {
		edges[i] = s.Edge
	}
	return edges
}

// Len returns the number of steps.
func (p *Program) Len() int {
	return len(p.Steps)
}

// builder assembles steps for one memory geometry.
type builder struct {
	config sram.Config
	steps  []Step
}

func newBuilder(config sram.Config) *builder {
	return &builder{config: config}
}

func (b *builder) word(v uint64) sram.Word {
	return sram.WordFromUint64(v, b.config.NumBytes())
}

func (b *builder) addr(a uint64) uint64 {
	return a & b.config.AddrMask()
}

// distinctAddr masks a and, if it aliases other, flips its lowest bit.
func (b *builder) distinctAddr(a, other uint64) uint64 {
	a = b.addr(a)
	if a == b.addr(other) {
		a ^= 1
	}
	return a
}

func (b *builder) mask(bits uint64) sram.ByteEnable {
	if bits == allLanes {
		return sram.FullMask(b.config.NumBytes())
	}
	return sram.MaskFromBits(bits, b.config.NumBytes())
}

func (b *builder) write(addr, data, mask uint64, expect uint64, comment string) {
	b.steps = append(b.steps, Step{
		Edge: sram.Edge{
			WriteEnable: true,
			Addr:        b.addr(addr),
			WriteData:   b.word(data),
			ByteEnable:  b.mask(mask),
		},
		Expect:  b.word(expect),
		Comment: comment,
	})
}

func (b *builder) idle(addr, data, mask uint64, expect uint64, comment string) {
	b.steps = append(b.steps, Step{
		Edge: sram.Edge{
			Addr:       b.addr(addr),
			WriteData:  b.word(data),
			ByteEnable: b.mask(mask),
		},
		Expect:  b.word(expect),
		Comment: comment,
	})
}

func (b *builder) read(addr uint64, expect uint64, comment string) {
	b.steps = append(b.steps, Step{
		Edge:    sram.Edge{Addr: b.addr(addr)},
		Expect:  b.word(expect),
		Comment: comment,
	})
}

func (b *builder) program(name string) *Program {
	return &Program{Name: name, Steps: b.steps}
}
