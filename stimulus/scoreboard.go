package stimulus

import (
	"fmt"

	"github.com/sarchlab/sramsim/timing/clock"
	"github.com/sarchlab/sramsim/timing/sram"
)

// Mismatch describes one edge whose observed read data is wrong.
type Mismatch struct {
	Step    int
	Cycle   uint64
	Addr    uint64
	Got     sram.Word
	Want    sram.Word
	Reason  string
	Comment string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("step %d (cycle %d) addr 0x%X: got %s, want %s (%s)",
		m.Step, m.Cycle, m.Addr, m.Got, m.Want, m.Reason)
}

// Scoreboard is a reference model of the memory that predicts the read data
// of every edge. It keeps its own copy of the array and shares no code with
// the model under test beyond the word types.
type Scoreboard struct {
	config sram.Config
	words  map[uint64]sram.Word
}

// NewScoreboard creates a scoreboard for a freshly created, all-zero memory.
func NewScoreboard(config sram.Config) *Scoreboard {
	return &Scoreboard{
		config: config,
		words:  make(map[uint64]sram.Word),
	}
}

// Predict returns the read data the edge must produce and applies the edge to
// the reference array.
func (s *Scoreboard) Predict(e sram.Edge) sram.Word {
	numBytes := s.config.NumBytes()
	addr := e.Addr & s.config.AddrMask()

	old, ok := s.words[addr]
	if !ok {
		old = sram.NewWord(numBytes)
	}

	if e.WriteEnable {
		next := make(sram.Word, numBytes)
		for i := range next {
			next[i] = old[i]
			if !laneEnabled(e.ByteEnable, i) {
				continue
			}
			next[i] = 0
			if i < len(e.WriteData) {
				next[i] = e.WriteData[i]
			}
		}
		s.words[addr] = next
	}

	return old.Clone()
}

func laneEnabled(m sram.ByteEnable, i int) bool {
	if m == nil {
		return true
	}
	return i < len(m) && m[i]
}

// Check compares the samples of a run against the program's explicit
// expectations and against the reference prediction. The scoreboard state
// advances by one edge per step.
func (s *Scoreboard) Check(p *Program, samples []clock.Sample) []Mismatch {
	var mismatches []Mismatch

	if len(samples) != len(p.Steps) {
		mismatches = append(mismatches, Mismatch{
			Step:   len(samples),
			Reason: fmt.Sprintf("got %d samples for %d steps", len(samples), len(p.Steps)),
		})
	}

	for i, step := range p.Steps {
		want := s.Predict(step.Edge)
		if i >= len(samples) {
			continue
		}

		sample := samples[i]
		base := Mismatch{
			Step:    i,
			Cycle:   sample.Cycle,
			Addr:    step.Addr,
			Got:     sample.ReadData,
			Comment: step.Comment,
		}

		if step.Expect != nil && !step.Expect.Equal(sample.ReadData) {
			m := base
			m.Want = step.Expect
			m.Reason = "explicit expectation"
			mismatches = append(mismatches, m)
		}

		if !want.Equal(sample.ReadData) {
			m := base
			m.Want = want
			m.Reason = "reference model"
			mismatches = append(mismatches, m)
		}
	}

	return mismatches
}
