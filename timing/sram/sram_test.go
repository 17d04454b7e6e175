package sram_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sramsim/timing/sram"
)

var _ = Describe("Memory", func() {
	var (
		m    *sram.Memory
		full sram.ByteEnable
	)

	BeforeEach(func() {
		var err error
		m, err = sram.New(sram.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		full = sram.FullMask(4)
	})

	read := func(addr uint64) sram.Word {
		return m.Advance(false, addr, nil, nil)
	}

	write := func(addr, value uint64, mask sram.ByteEnable) sram.Word {
		return m.Advance(true, addr, m.Word(value), mask)
	}

	Describe("Initial state", func() {
		It("should start with all-zero content", func() {
			for _, addr := range []uint64{0x00, 0x7F, 0xFF} {
				Expect(m.Peek(addr)).To(Equal(m.Word(0)))
			}
		})

		It("should start with an all-zero read register", func() {
			Expect(m.ReadData()).To(Equal(m.Word(0)))
		})
	})

	Describe("Write-then-read latency", func() {
		It("should return the written word on the following read edge", func() {
			write(0x10, 0x12345678, full)
			Expect(read(0x10)).To(Equal(m.Word(0x12345678)))
		})

		It("should hold the read value in the output register", func() {
			write(0x10, 0x12345678, full)
			read(0x10)
			Expect(m.ReadData()).To(Equal(m.Word(0x12345678)))
		})
	})

	Describe("Same-cycle read/write race", func() {
		It("should return the pre-write value on the writing edge", func() {
			write(0x20, 0x11111111, full)

			rdata := write(0x20, 0x22222222, full)
			Expect(rdata).To(Equal(m.Word(0x11111111)))
			Expect(m.ReadData()).To(Equal(m.Word(0x11111111)))

			Expect(read(0x20)).To(Equal(m.Word(0x22222222)))
		})

		It("should return the pre-write value for back-to-back writes", func() {
			Expect(write(0x21, 0xA, full)).To(Equal(m.Word(0)))
			Expect(write(0x21, 0xB, full)).To(Equal(m.Word(0xA)))
			Expect(write(0x21, 0xC, full)).To(Equal(m.Word(0xB)))
			Expect(read(0x21)).To(Equal(m.Word(0xC)))
		})

		It("should not let callers alias the returned word", func() {
			write(0x22, 0x01020304, full)
			rdata := read(0x22)
			rdata[0] = 0xFF
			Expect(m.Peek(0x22)).To(Equal(m.Word(0x01020304)))
			Expect(m.ReadData()).To(Equal(m.Word(0x01020304)))
		})
	})

	Describe("Byte-mask isolation", func() {
		It("should update lanes 1 and 3 for mask 0b1010", func() {
			rdata := write(0x01, 0xAABBCCDD, sram.MaskFromBits(0b1010, 4))

			Expect(rdata).To(Equal(m.Word(0x00000000)))
			Expect(m.Peek(0x01).String()).To(Equal("0xAA00CC00"))
			Expect(read(0x01)).To(Equal(m.Word(0xAA00CC00)))
		})

		It("should update lanes 0 and 2 for mask 0b0101", func() {
			rdata := write(0x01, 0xAABBCCDD, sram.MaskFromBits(0b0101, 4))

			Expect(rdata).To(Equal(m.Word(0x00000000)))
			Expect(read(0x01)).To(Equal(m.Word(0x00BB00DD)))
		})

		DescribeTable("keeping disabled lanes bit-for-bit",
			func(mask uint64, expected uint64) {
				write(0x30, 0x11223344, full)
				write(0x30, 0xAABBCCDD, sram.MaskFromBits(mask, 4))
				Expect(read(0x30)).To(Equal(m.Word(expected)))
			},
			Entry("no lanes", uint64(0b0000), uint64(0x11223344)),
			Entry("lane 0", uint64(0b0001), uint64(0x112233DD)),
			Entry("lane 1", uint64(0b0010), uint64(0x1122CC44)),
			Entry("lane 2", uint64(0b0100), uint64(0x11BB3344)),
			Entry("lane 3", uint64(0b1000), uint64(0xAA223344)),
			Entry("lanes 0 and 2", uint64(0b0101), uint64(0x11BB33DD)),
			Entry("lanes 1 and 3", uint64(0b1010), uint64(0xAA22CC44)),
			Entry("all lanes", uint64(0b1111), uint64(0xAABBCCDD)),
		)

		It("should treat a nil mask as all lanes enabled", func() {
			write(0x31, 0xCAFEF00D, nil)
			Expect(read(0x31)).To(Equal(m.Word(0xCAFEF00D)))
		})

		It("should zero lanes missing from short write data", func() {
			write(0x32, 0xFFFFFFFF, full)
			m.Advance(true, 0x32, sram.Word{0x11}, full)
			Expect(read(0x32)).To(Equal(m.Word(0x00000011)))
		})
	})

	Describe("No write enable", func() {
		It("should never mutate content", func() {
			write(0x40, 0x55555555, full)

			m.Advance(false, 0x40, m.Word(0xFFFFFFFF), full)
			m.Advance(false, 0x40, m.Word(0x12345678), sram.MaskFromBits(0b0001, 4))

			Expect(m.Peek(0x40)).To(Equal(m.Word(0x55555555)))
			for addr := uint64(0); addr < 256; addr++ {
				if addr == 0x40 {
					continue
				}
				Expect(m.Peek(addr)).To(Equal(m.Word(0)))
			}
		})
	})

	Describe("Address isolation", func() {
		It("should keep neighbouring words independent", func() {
			write(0x02, 0x11223344, full)
			write(0x03, 0x55667788, full)

			Expect(read(0x03)).To(Equal(m.Word(0x55667788)))
			Expect(read(0x02)).To(Equal(m.Word(0x11223344)))
		})
	})

	Describe("Capacity coverage", func() {
		It("should handle the lowest and highest address like any other", func() {
			write(0x00, 0xDEADBEEF, full)
			write(0xFF, 0xCAFEBABE, full)

			Expect(read(0x00)).To(Equal(m.Word(0xDEADBEEF)))
			Expect(read(0xFF)).To(Equal(m.Word(0xCAFEBABE)))
		})

		It("should bound addresses to the address width", func() {
			write(0x1FF, 0x0BADF00D, full)
			Expect(m.Peek(0xFF)).To(Equal(m.Word(0x0BADF00D)))
			Expect(read(0x2FF)).To(Equal(m.Word(0x0BADF00D)))
		})
	})

	Describe("Peek", func() {
		It("should not advance the clock or change the read register", func() {
			write(0x50, 0x01010101, full)
			read(0x50)
			write(0x51, 0x02020202, full)

			before := m.Stats()
			Expect(m.Peek(0x51)).To(Equal(m.Word(0x02020202)))
			Expect(m.Stats()).To(Equal(before))
			Expect(m.ReadData()).To(Equal(m.Word(0)))
		})
	})

	Describe("Statistics", func() {
		It("should count edges, writes and lanes", func() {
			read(0x00)
			write(0x00, 0x1, full)
			write(0x01, 0x1, sram.MaskFromBits(0b0011, 4))

			stats := m.Stats()
			Expect(stats.Edges).To(Equal(uint64(3)))
			Expect(stats.Writes).To(Equal(uint64(2)))
			Expect(stats.PartialWrites).To(Equal(uint64(1)))
			Expect(stats.LanesWritten).To(Equal(uint64(6)))

			m.ResetStats()
			Expect(m.Stats()).To(Equal(sram.Statistics{}))
		})
	})

	Describe("Apply", func() {
		It("should behave like Advance", func() {
			rdata := m.Apply(sram.Edge{
				WriteEnable: true,
				Addr:        0x60,
				WriteData:   m.Word(0x99),
				ByteEnable:  full,
			})
			Expect(rdata).To(Equal(m.Word(0)))
			Expect(m.Apply(sram.Edge{Addr: 0x60})).To(Equal(m.Word(0x99)))
		})
	})

	Describe("Wide words", func() {
		It("should mask lanes beyond 64 bits", func() {
			wide, err := sram.New(sram.Config{DataWidth: 128, AddrWidth: 4})
			Expect(err).NotTo(HaveOccurred())

			data := make(sram.Word, 16)
			for i := range data {
				data[i] = byte(i + 1)
			}
			mask := make(sram.ByteEnable, 16)
			mask[0] = true
			mask[15] = true

			Expect(wide.Advance(true, 0xF, data, mask)).To(Equal(sram.NewWord(16)))

			got := wide.Advance(false, 0xF, nil, nil)
			Expect(got.Lane(0)).To(Equal(byte(1)))
			Expect(got.Lane(15)).To(Equal(byte(16)))
			for i := 1; i < 15; i++ {
				Expect(got.Lane(i)).To(Equal(byte(0)))
			}
		})
	})
})
