package stimulus_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/sramsim/stimulus"
	"github.com/sarchlab/sramsim/timing/clock"
	"github.com/sarchlab/sramsim/timing/sram"
)

func runProgram(config sram.Config, p *stimulus.Program) []clock.Sample {
	memory, err := sram.New(config)
	Expect(err).NotTo(HaveOccurred())

	driver := clock.NewDriver(sim.NewSerialEngine(), 1*sim.GHz, memory)
	samples, err := driver.Drive(p.Edges())
	Expect(err).NotTo(HaveOccurred())

	return samples
}

var _ = Describe("Scenarios", func() {
	It("should list every built-in scenario", func() {
		Expect(stimulus.ScenarioNames()).To(Equal([]string{
			"address-isolation",
			"boundary",
			"byte-mask",
			"no-write-enable",
			"race",
		}))
	})

	It("should reject unknown names", func() {
		_, err := stimulus.Scenario("nope", sram.DefaultConfig())
		Expect(err).To(HaveOccurred())
	})

	It("should reject invalid geometries", func() {
		_, err := stimulus.Scenario("race", sram.Config{DataWidth: 12, AddrWidth: 8})
		Expect(err).To(MatchError(sram.ErrInvalidConfig))
	})

	It("should expect the masked write result from the byte-mask scenario", func() {
		p, err := stimulus.Scenario("byte-mask", sram.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		Expect(p.Steps[0].Addr).To(Equal(uint64(0x01)))
		Expect(p.Steps[0].ByteEnable.Bits()).To(Equal(uint64(0b1010)))
		Expect(p.Steps[0].Expect.String()).To(Equal("0x00000000"))
		Expect(p.Steps[1].Expect.String()).To(Equal("0xAA00CC00"))
		Expect(p.Steps[3].Expect.String()).To(Equal("0x00BB00DD"))
	})

	DescribeTable("keeping the byte-mask addresses apart on narrow address widths",
		func(addrWidth int, second uint64) {
			config := sram.Config{DataWidth: 32, AddrWidth: addrWidth}
			p, err := stimulus.Scenario("byte-mask", config)
			Expect(err).NotTo(HaveOccurred())

			Expect(p.Steps[0].Addr).To(Equal(uint64(0x01)))
			Expect(p.Steps[2].Addr).To(Equal(second))
			Expect(p.Steps[4].Expect.String()).To(Equal("0x00BB00DD"))

			samples := runProgram(config, p)
			Expect(samples[4].ReadData.String()).To(Equal("0x00BB00DD"))
			Expect(stimulus.NewScoreboard(config).Check(p, samples)).To(BeEmpty())
		},
		Entry("1 address bit", 1, uint64(0x00)),
		Entry("2 address bits", 2, uint64(0x00)),
		Entry("3 address bits", 3, uint64(0x05)),
		Entry("8 address bits", 8, uint64(0x05)),
	)

	It("should target the highest address in the boundary scenario", func() {
		p, err := stimulus.Scenario("boundary", sram.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Steps[1].Addr).To(Equal(uint64(0xFF)))
	})

	configs := []sram.Config{
		sram.DefaultConfig(),
		{DataWidth: 8, AddrWidth: 1},
		{DataWidth: 32, AddrWidth: 1},
		{DataWidth: 32, AddrWidth: 2},
		{DataWidth: 32, AddrWidth: 3},
		{DataWidth: 16, AddrWidth: 4},
		{DataWidth: 64, AddrWidth: 12},
		{DataWidth: 128, AddrWidth: 8},
	}

	for _, name := range stimulus.ScenarioNames() {
		for _, config := range configs {
			It("should pass "+name+" on "+describe(config), func() {
				p, err := stimulus.Scenario(name, config)
				Expect(err).NotTo(HaveOccurred())

				samples := runProgram(config, p)
				mismatches := stimulus.NewScoreboard(config).Check(p, samples)
				Expect(mismatches).To(BeEmpty())
			})
		}
	}
})

func describe(c sram.Config) string {
	memory, _ := sram.New(c)
	return memory.String()
}
