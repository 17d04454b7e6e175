package sram

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Word is the content of one memory word. Byte lane i holds bits [8i, 8i+8),
// so index 0 is the least significant byte.
type Word []byte

// NewWord returns an all-zero word with numBytes lanes.
func NewWord(numBytes int) Word {
	return make(Word, numBytes)
}

// WordFromUint64 builds a word with numBytes lanes from v. Lanes above the
// eighth are zero; bits of v above numBytes lanes are dropped.
func WordFromUint64(v uint64, numBytes int) Word {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)

	w := NewWord(numBytes)
	copy(w, buf[:])
	return w
}

// Uint64 returns the low 64 bits of the word.
func (w Word) Uint64() uint64 {
	var buf [8]byte
	copy(buf[:], w)
	return binary.LittleEndian.Uint64(buf[:])
}

// Lane returns byte lane i, or zero if the word has no such lane.
func (w Word) Lane(i int) byte {
	if i < 0 || i >= len(w) {
		return 0
	}
	return w[i]
}

// Equal reports whether two words hold the same lanes.
func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not alias w.
func (w Word) Clone() Word {
	if w == nil {
		return nil
	}
	c := make(Word, len(w))
	copy(c, w)
	return c
}

// String prints the word in hex, most significant lane first.
func (w Word) String() string {
	if len(w) == 0 {
		return "0x"
	}

	var sb strings.Builder
	sb.WriteString("0x")
	for i := len(w) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02X", w[i])
	}
	return sb.String()
}

// ByteEnable selects the byte lanes a write updates. Entry i set means lane i
// is overwritten. A nil ByteEnable enables every lane.
type ByteEnable []bool

// FullMask enables all numBytes lanes.
func FullMask(numBytes int) ByteEnable {
	m := make(ByteEnable, numBytes)
	for i := range m {
		m[i] = true
	}
	return m
}

// MaskFromBits expands the low numBytes bits of bits into a ByteEnable. Lanes
// at or above 64 are disabled.
func MaskFromBits(bits uint64, numBytes int) ByteEnable {
	m := make(ByteEnable, numBytes)
	for i := 0; i < numBytes && i < 64; i++ {
		m[i] = bits&(1<<uint(i)) != 0
	}
	return m
}

// Enabled reports whether lane i is selected.
func (m ByteEnable) Enabled(i int) bool {
	if m == nil {
		return true
	}
	return i < len(m) && m[i]
}

// Bits packs the first 64 lanes into an integer.
func (m ByteEnable) Bits() uint64 {
	var bits uint64
	for i := 0; i < len(m) && i < 64; i++ {
		if m[i] {
			bits |= 1 << uint(i)
		}
	}
	return bits
}

// String prints the mask as a binary literal, highest lane first.
func (m ByteEnable) String() string {
	if m == nil {
		return "all"
	}

	var sb strings.Builder
	sb.WriteString("0b")
	for i := len(m) - 1; i >= 0; i-- {
		if m[i] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
