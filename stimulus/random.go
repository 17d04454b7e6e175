package stimulus

import (
	"fmt"
	"math/rand/v2"

	"github.com/sarchlab/sramsim/timing/sram"
)

// hotAddrs is the number of addresses that random programs revisit often, so
// that same-address write/read races show up in short runs.
const hotAddrs = 4

// Random builds a reproducible program of n random edges. The same seed and
// geometry always produce the same program. Random steps carry no explicit
// expectations; check them with a Scoreboard.
func Random(config sram.Config, n int, seed uint64) (*Program, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("edge count must be >= 0, got %d", n)
	}

	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	numBytes := config.NumBytes()

	hot := make([]uint64, hotAddrs)
	for i := range hot {
		hot[i] = r.Uint64() & config.AddrMask()
	}

	steps := make([]Step, n)
	for i := range steps {
		addr := r.Uint64() & config.AddrMask()
		if r.IntN(2) == 0 {
			addr = hot[r.IntN(len(hot))]
		}

		data := sram.NewWord(numBytes)
		mask := make(sram.ByteEnable, numBytes)
		for lane := 0; lane < numBytes; lane++ {
			data[lane] = byte(r.UintN(256))
			mask[lane] = r.IntN(2) == 0
		}

		steps[i] = Step{
			Edge: sram.Edge{
				WriteEnable: r.IntN(2) == 0,
				Addr:        addr,
				WriteData:   data,
				ByteEnable:  mask,
			},
		}
	}

	return &Program{
		Name:  fmt.Sprintf("random-%d", seed),
		Steps: steps,
	}, nil
}
