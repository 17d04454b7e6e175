package stimulus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/sramsim/timing/sram"
)

// scalar keeps the raw text of a YAML scalar so that numbers of any width and
// any base prefix (0x, 0b, 0o) can be parsed against the memory geometry.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = scalar(strings.TrimSpace(node.Value))
	return nil
}

type stepFile struct {
	WE      bool   `yaml:"we"`
	Addr    scalar `yaml:"addr"`
	Data    scalar `yaml:"data,omitempty"`
	BE      scalar `yaml:"be,omitempty"`
	Expect  scalar `yaml:"expect,omitempty"`
	Comment string `yaml:"comment,omitempty"`
}

type programFile struct {
	Name  string     `yaml:"name,omitempty"`
	Steps []stepFile `yaml:"steps"`
}

// Load reads a program from a YAML file. The program name defaults to the
// file name without extension.
func Load(path string, config sram.Config) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stimulus file: %w", err)
	}

	p, err := Parse(data, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return p, nil
}

// Parse decodes a YAML program for a memory of the given geometry.
func Parse(data []byte, config sram.Config) (*Program, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var f programFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse stimulus: %w", err)
	}

	p := &Program{Name: f.Name, Steps: make([]Step, 0, len(f.Steps))}
	for i, sf := range f.Steps {
		step, err := sf.toStep(config)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		p.Steps = append(p.Steps, step)
	}

	return p, nil
}

func (sf stepFile) toStep(config sram.Config) (Step, error) {
	var (
		step Step
		err  error
	)

	step.WriteEnable = sf.WE
	step.Comment = sf.Comment

	step.Addr, err = parseAddr(string(sf.Addr), config)
	if err != nil {
		return step, err
	}

	step.WriteData, err = parseWord(string(sf.Data), config.NumBytes())
	if err != nil {
		return step, fmt.Errorf("data: %w", err)
	}

	step.ByteEnable, err = parseMask(string(sf.BE), config.NumBytes())
	if err != nil {
		return step, fmt.Errorf("be: %w", err)
	}

	if sf.Expect != "" {
		step.Expect, err = parseWord(string(sf.Expect), config.NumBytes())
		if err != nil {
			return step, fmt.Errorf("expect: %w", err)
		}
	}

	return step, nil
}

func parseAddr(s string, config sram.Config) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("addr is required")
	}

	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("addr: %w", err)
	}
	if addr > config.AddrMask() {
		return 0, fmt.Errorf("addr 0x%X does not fit in %d address bits",
			addr, config.AddrWidth)
	}

	return addr, nil
}

func parseBig(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative number %q", s)
	}
	return v, nil
}

// parseWord converts a number into a word. An empty string yields nil.
func parseWord(s string, numBytes int) (sram.Word, error) {
	if s == "" {
		return nil, nil
	}

	v, err := parseBig(s)
	if err != nil {
		return nil, err
	}
	if v.BitLen() > numBytes*8 {
		return nil, fmt.Errorf("%s does not fit in %d bits", s, numBytes*8)
	}

	be := v.FillBytes(make([]byte, numBytes))
	w := sram.NewWord(numBytes)
	for i := range w {
		w[i] = be[numBytes-1-i]
	}

	return w, nil
}

// parseMask converts a number into a byte enable. An empty string yields nil,
// which enables every lane.
func parseMask(s string, numBytes int) (sram.ByteEnable, error) {
	if s == "" {
		return nil, nil
	}

	v, err := parseBig(s)
	if err != nil {
		return nil, err
	}
	if v.BitLen() > numBytes {
		return nil, fmt.Errorf("%s has more than %d lanes", s, numBytes)
	}

	m := make(sram.ByteEnable, numBytes)
	for i := range m {
		m[i] = v.Bit(i) == 1
	}

	return m, nil
}

// Write encodes a program as YAML in the format accepted by Parse.
func Write(w io.Writer, p *Program) error {
	f := programFile{Name: p.Name, Steps: make([]stepFile, len(p.Steps))}
	for i, s := range p.Steps {
		sf := stepFile{
			WE:      s.WriteEnable,
			Addr:    scalar(fmt.Sprintf("0x%X", s.Addr)),
			BE:      scalar(maskLiteral(s.ByteEnable)),
			Comment: s.Comment,
		}
		if len(s.WriteData) > 0 {
			sf.Data = scalar(s.WriteData.String())
		}
		if s.Expect != nil {
			sf.Expect = scalar(s.Expect.String())
		}
		f.Steps[i] = sf
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode stimulus: %w", err)
	}

	return enc.Close()
}

// Save writes a program to a YAML file.
func Save(path string, p *Program) error {
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write stimulus file: %w", err)
	}

	return nil
}

func maskLiteral(m sram.ByteEnable) string {
	if m == nil {
		return ""
	}
	return m.String()
}
