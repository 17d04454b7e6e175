package main

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/sramsim/config"
	"github.com/sarchlab/sramsim/timing/sram"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfg *config.Config
	out io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	mem := sram.DefaultConfig()
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:           "sramsim",
		Short:         "Cycle-accurate byte-maskable memory simulator.",
		Long:          "Drive a registered-output, byte-maskable memory model one clock edge at a time and check its read data.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "path to a YAML configuration file")
	pf.Int("data-width", mem.DataWidth, "word width in bits (multiple of 8)")
	pf.Int("addr-width", mem.AddrWidth, "address width in bits")
	pf.Float64("clock-mhz", defaults.ClockMHz, "clock frequency in MHz")
	pf.BoolP("verbose", "v", false, "log every clock edge")

	root.AddCommand(
		a.newRunCmd(),
		a.newScenariosCmd(),
		a.newConfigCmd(),
	)

	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	a.cfg = cfg
	a.out = cmd.OutOrStdout()

	return nil
}
