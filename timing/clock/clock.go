// Package clock drives a memory model with a deterministic sequence of rising
// clock edges scheduled on an Akita simulation engine.
package clock

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/akita/v4/sim"
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/sramsim/timing/sram"
)

// HookPosEdge marks the point right after an edge has been applied to the
// memory. The hook item is a Sample.
var HookPosEdge = &sim.HookPos{Name: "ClockEdge"}

// Sample records the inputs and the registered output of one edge.
type Sample struct {
	// Cycle is the index of the edge, counted from 0 for the first edge
	// driven by a Driver.
	Cycle uint64

	// Time is the simulated time of the rising edge.
	Time sim.VTimeInSec

	// Edge holds the inputs applied on this edge.
	Edge sram.Edge

	// ReadData is the registered read output produced by this edge.
	ReadData sram.Word
}

// EdgeEvent is a rising clock edge carrying the inputs to apply.
type EdgeEvent struct {
	*sim.EventBase

	cycle uint64
	edge  sram.Edge
}

func newEdgeEvent(
	time sim.VTimeInSec,
	handler sim.Handler,
	cycle uint64,
	edge sram.Edge,
) *EdgeEvent {
	return &EdgeEvent{
		EventBase: sim.NewEventBase(time, handler),
		cycle:     cycle,
		edge:      edge,
	}
}

// Driver feeds edges into a memory one clock period apart. Edges are handled
// strictly one after another by the engine.
type Driver struct {
	*sim.HookableBase

	engine sim.Engine
	freq   sim.Freq
	memory *sram.Memory

	pending []sram.Edge
	samples []Sample
	cycle   uint64
}

// NewDriver creates a driver that clocks memory at freq on engine.
func NewDriver(engine sim.Engine, freq sim.Freq, memory *sram.Memory) *Driver {
	return &Driver{
		HookableBase: sim.NewHookableBase(),
		engine:       engine,
		freq:         freq,
		memory:       memory,
	}
}

// Memory returns the driven memory.
func (d *Driver) Memory() *sram.Memory {
	return d.memory
}

// Freq returns the clock frequency.
func (d *Driver) Freq() sim.Freq {
	return d.freq
}

// Cycles returns the number of edges driven so far.
func (d *Driver) Cycles() uint64 {
	return d.cycle
}

// Drive applies edges in order, one per clock period, and runs the engine
// until all of them have been handled. It returns one sample per edge.
func (d *Driver) Drive(edges []sram.Edge) ([]Sample, error) {
	if len(edges) == 0 {
		return nil, nil
	}

	d.pending = append(d.pending, edges...)
	d.samples = make([]Sample, 0, len(edges))

	now := d.engine.CurrentTime()
	first := d.freq.ThisTick(now)
	if d.cycle > 0 {
		first = d.freq.NextTick(now)
	}
	d.scheduleNext(first)

	if err := d.engine.Run(); err != nil {
		return nil, fmt.Errorf("clock: engine run failed: %w", err)
	}

	samples := d.samples
	d.samples = nil

	return samples, nil
}

// Handle applies the edge carried by an EdgeEvent.
func (d *Driver) Handle(e sim.Event) error {
	evt, ok := e.(*EdgeEvent)
	if !ok {
		return fmt.Errorf("clock: cannot handle event of type %s",
			reflect.TypeOf(e))
	}

	rdata := d.memory.Apply(evt.edge)

	sample := Sample{
		Cycle:    evt.cycle,
		Time:     evt.Time(),
		Edge:     evt.edge,
		ReadData: rdata,
	}
	d.samples = append(d.samples, sample)
	d.cycle = evt.cycle + 1

	log.WithFields(log.Fields{
		"cycle": sample.Cycle,
		"we":    evt.edge.WriteEnable,
		"addr":  fmt.Sprintf("0x%X", evt.edge.Addr),
		"rdata": rdata.String(),
	}).Debug("clock edge")

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosEdge,
		Item:   sample,
	})

	if len(d.pending) > 0 {
		d.scheduleNext(d.freq.NextTick(evt.Time()))
	}

	return nil
}

func (d *Driver) scheduleNext(time sim.VTimeInSec) {
	edge := d.pending[0]
	d.pending = d.pending[1:]

	d.engine.Schedule(newEdgeEvent(time, d, d.cycle, edge))
}
