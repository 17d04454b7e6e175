package main

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/sramsim/stimulus"
	"github.com/sarchlab/sramsim/timing/clock"
	"github.com/sarchlab/sramsim/timing/sram"
	"github.com/sarchlab/sramsim/trace"
)

// allScenarios selects every built-in scenario.
const allScenarios = "all"

var errMismatch = errors.New("read data mismatches found")

func (a *app) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [stimulus_file]",
		Short: "Run a stimulus program against the memory model.",
		Long: `Run a stimulus file, a built-in scenario (--scenario) or a random
program (--random) against a fresh memory. Every edge is checked against the
program's expectations and a reference model.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.Stimulus = args[0]
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			dump, err := cmd.Flags().GetString("dump")
			if err != nil {
				return err
			}

			return a.run(dump)
		},
	}

	cmd.Flags().String("scenario", "", "built-in scenario to run, or \"all\"")
	cmd.Flags().Int("random", 0, "number of random edges to generate")
	cmd.Flags().Uint64("seed", 0, "seed for --random")
	cmd.Flags().String("dump", "", "write the program to this YAML file before running")

	return cmd
}

func (a *app) programs() ([]*stimulus.Program, error) {
	memCfg := a.cfg.Memory()

	switch {
	case a.cfg.Stimulus != "":
		p, err := stimulus.Load(a.cfg.Stimulus, memCfg)
		if err != nil {
			return nil, err
		}
		return []*stimulus.Program{p}, nil

	case a.cfg.Scenario == allScenarios:
		var programs []*stimulus.Program
		for _, name := range stimulus.ScenarioNames() {
			p, err := stimulus.Scenario(name, memCfg)
			if err != nil {
				return nil, err
			}
			programs = append(programs, p)
		}
		return programs, nil

	case a.cfg.Scenario != "":
		p, err := stimulus.Scenario(a.cfg.Scenario, memCfg)
		if err != nil {
			return nil, err
		}
		return []*stimulus.Program{p}, nil

	case a.cfg.RandomEdges > 0:
		p, err := stimulus.Random(memCfg, a.cfg.RandomEdges, a.cfg.Seed)
		if err != nil {
			return nil, err
		}
		return []*stimulus.Program{p}, nil
	}

	return nil, fmt.Errorf("nothing to run: give a stimulus file, --scenario or --random")
}

func (a *app) run(dump string) error {
	programs, err := a.programs()
	if err != nil {
		return err
	}

	if dump != "" {
		if len(programs) != 1 {
			return fmt.Errorf("--dump needs exactly one program, got %d", len(programs))
		}
		if err := stimulus.Save(dump, programs[0]); err != nil {
			return err
		}
	}

	failed := 0
	for _, p := range programs {
		n, err := a.runProgram(p)
		if err != nil {
			return err
		}
		failed += n
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d", errMismatch, failed)
	}

	return nil
}

// runProgram drives one program on a fresh memory and returns the number of
// mismatches.
func (a *app) runProgram(p *stimulus.Program) (int, error) {
	memCfg := a.cfg.Memory()

	memory, err := sram.New(memCfg)
	if err != nil {
		return 0, err
	}

	driver := clock.NewDriver(sim.NewSerialEngine(), a.cfg.Freq(), memory)
	recorder := trace.NewRecorder()
	driver.AcceptHook(recorder)

	if _, err := driver.Drive(p.Edges()); err != nil {
		return 0, err
	}

	samples := recorder.Samples()
	mismatches := stimulus.NewScoreboard(memCfg).Check(p, samples)

	trace.Render(a.out, p.Name, samples, mismatches)
	a.printStats(memory.Stats())

	for _, m := range mismatches {
		log.WithFields(log.Fields{
			"program": p.Name,
			"step":    m.Step,
			"cycle":   m.Cycle,
		}).Error(m.Reason)
	}

	return len(mismatches), nil
}

func (a *app) printStats(stats sram.Statistics) {
	fmt.Fprintf(a.out, "Edges:          %d\n", stats.Edges)
	fmt.Fprintf(a.out, "Writes:         %d\n", stats.Writes)
	fmt.Fprintf(a.out, "Partial writes: %d\n", stats.PartialWrites)
	fmt.Fprintf(a.out, "Lanes written:  %d\n", stats.LanesWritten)
	fmt.Fprintf(a.out, "\n")
}
