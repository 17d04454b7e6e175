package stimulus

import (
	"fmt"
	"sort"

	"github.com/sarchlab/sramsim/timing/sram"
)

const allLanes = ^uint64(0)

var scenarios = map[string]func(b *builder){
	"byte-mask":         byteMask,
	"race":              race,
	"address-isolation": addressIsolation,
	"boundary":          boundary,
	"no-write-enable":   noWriteEnable,
}

// ScenarioNames lists the built-in scenarios in alphabetical order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenario builds the named built-in program for a memory of the given
// geometry. Data values are truncated to the word width and addresses to the
// address width. Addresses that must stay distinct are chosen so that they do
// not alias after masking, so every scenario is valid for any configuration.
func Scenario(name string, config sram.Config) (*Program, error) {
	build, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	b := newBuilder(config)
	build(b)
	return b.program(name), nil
}

func byteMask(b *builder) {
	first := b.addr(0x01)
	second := b.distinctAddr(0x05, first)

	b.write(first, 0xAABBCCDD, 0b1010, 0x00000000, "lanes 1 and 3, returns pre-write content")
	b.read(first, 0xAA00CC00, "only lanes 1 and 3 were stored")
	b.write(second, 0xAABBCCDD, 0b0101, 0x00000000, "lanes 0 and 2, returns pre-write content")
	b.read(second, 0x00BB00DD, "only lanes 0 and 2 were stored")
	b.write(second, 0x11223344, 0b1000, 0x00BB00DD, "lane 3 on top of earlier lanes")
	b.read(second, 0x11BB00DD, "lanes 0 and 2 untouched")
}

func race(b *builder) {
	b.write(0x20, 0x11111111, allLanes, 0x00000000, "first write")
	b.write(0x20, 0x22222222, allLanes, 0x11111111, "same-edge read sees the old word")
	b.read(0x20, 0x22222222, "next edge sees the new word")
}

func addressIsolation(b *builder) {
	b.write(0x02, 0x11223344, allLanes, 0, "write 0x02")
	b.write(0x03, 0x55667788, allLanes, 0, "write 0x03")
	b.read(0x03, 0x55667788, "read 0x03")
	b.read(0x02, 0x11223344, "read 0x02")
}

func boundary(b *builder) {
	last := b.config.AddrMask()
	b.write(0x00, 0xDEADBEEF, allLanes, 0, "lowest address")
	b.write(last, 0xCAFEBABE, allLanes, 0, "highest address")
	b.read(0x00, 0xDEADBEEF, "read lowest address")
	b.read(last, 0xCAFEBABE, "read highest address")
}

func noWriteEnable(b *builder) {
	b.write(0x40, 0x55555555, allLanes, 0, "seed content")
	b.idle(0x40, 0xFFFFFFFF, allLanes, 0x55555555, "write data ignored without write enable")
	b.idle(0x40, 0x12345678, 0b0001, 0x55555555, "byte enable ignored without write enable")
	b.read(0x40, 0x55555555, "content unchanged")
}
