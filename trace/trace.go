// Package trace records clock edges and renders them as a console report.
package trace

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/sramsim/stimulus"
	"github.com/sarchlab/sramsim/timing/clock"
)

// Recorder is a hook that keeps every sample emitted at clock.HookPosEdge.
type Recorder struct {
	samples []clock.Sample
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Func records the sample carried by an edge hook.
func (r *Recorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != clock.HookPosEdge {
		return
	}

	sample, ok := ctx.Item.(clock.Sample)
	if !ok {
		return
	}

	r.samples = append(r.samples, sample)
}

// Samples returns the recorded samples in edge order.
func (r *Recorder) Samples() []clock.Sample {
	return r.samples
}

// Reset drops all recorded samples.
func (r *Recorder) Reset() {
	r.samples = nil
}

// Render writes a table with one row per sample followed by a summary line.
// Rows whose step appears in mismatches are marked FAIL.
func Render(
	w io.Writer,
	title string,
	samples []clock.Sample,
	mismatches []stimulus.Mismatch,
) {
	// Sample i is the outcome of step i. A sample count mismatch carries a
	// step past the last sample and marks no row.
	failed := make(map[int]bool, len(mismatches))
	for _, m := range mismatches {
		failed[m.Step] = true
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{
		"Cycle", "Time (ns)", "WE", "Addr", "WData", "BE", "RData", "Status",
	})

	for i, s := range samples {
		status := "ok"
		if failed[i] {
			status = "FAIL"
		}

		wdata, be := "-", "-"
		if s.Edge.WriteEnable {
			wdata = s.Edge.WriteData.String()
			be = s.Edge.ByteEnable.String()
		}

		t.AppendRow(table.Row{
			s.Cycle,
			fmt.Sprintf("%.3f", float64(s.Time)*1e9),
			boolBit(s.Edge.WriteEnable),
			fmt.Sprintf("0x%X", s.Edge.Addr),
			wdata,
			be,
			s.ReadData.String(),
			status,
		})
	}

	t.Render()

	fmt.Fprintf(w, "%d edges, %d mismatches\n", len(samples), len(mismatches))
	for _, m := range mismatches {
		fmt.Fprintf(w, "  %s\n", m)
	}
}

func boolBit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
