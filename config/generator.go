package config

import (
	"fmt"
	"runtime"
)

// Generator configures the corpus writer.
type Generator struct {
	Seed      uint64 `yaml:"seed"`
	Count     int    `yaml:"count"`
	Kind      string `yaml:"kind"`
	Format    string `yaml:"format"` // json or yaml
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"` // 0 means GOMAXPROCS
	Record    bool   `yaml:"record"`  // also write the draws of every fixture
	Shapes    Shapes `yaml:"shapes"`
}

// Shapes tunes the allocator fixtures written by the "cidrs" and "addrs" kinds.
// Zero is a meaningful count and mask, so absent keys stay nil until
// ApplyDefaults.
type Shapes struct {
	Family        string  `yaml:"family"` // v4 or v6
	CidrCount     *uint16 `yaml:"cidr_count"`
	CidrMask      *uint8  `yaml:"cidr_mask"`
	HostAddrCount *uint16 `yaml:"host_addr_count"`
}

const (
	FamilyV4 = "v4"
	FamilyV6 = "v6"
)

// ApplyDefaults fills zero values.
func (g *Generator) ApplyDefaults() {
	if g.Count == 0 {
		g.Count = DefaultCount
	}
	if g.Kind == "" {
		g.Kind = DefaultKind
	}
	if g.Format == "" {
		g.Format = DefaultFormat
	}
	if g.OutputDir == "" {
		g.OutputDir = DefaultOutputDir
	}
	if g.Workers == 0 {
		g.Workers = runtime.GOMAXPROCS(0)
	}
	if g.Shapes.Family == "" {
		g.Shapes.Family = FamilyV4
	}
	if g.Shapes.CidrCount == nil {
		g.Shapes.CidrCount = ptr[uint16](DefaultCidrCount)
	}
	if g.Shapes.CidrMask == nil {
		g.Shapes.CidrMask = ptr[uint8](DefaultCidrMask)
	}
	if g.Shapes.HostAddrCount == nil {
		g.Shapes.HostAddrCount = ptr[uint16](DefaultHostAddrCount)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func (g *Generator) Validate() error {
	if g.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", g.Count)
	}
	if g.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", g.Workers)
	}
	switch g.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q", g.Format)
	}
	return g.Shapes.Validate()
}

// Bits returns the address width of the configured family.
func (s Shapes) Bits() uint8 {
	if s.Family == FamilyV6 {
		return 128
	}
	return 32
}

// Cidrs returns the block count and prefix length of the "cidrs" kind.
func (s Shapes) Cidrs() (count uint16, mask uint8) {
	return valueOr[uint16](s.CidrCount, DefaultCidrCount), valueOr[uint8](s.CidrMask, DefaultCidrMask)
}

// HostAddrs returns the address count of the "addrs" kind.
func (s Shapes) HostAddrs() uint16 {
	return valueOr[uint16](s.HostAddrCount, DefaultHostAddrCount)
}

func (s Shapes) Validate() error {
	if err := ValidateFamily(s.Family); err != nil {
		return fmt.Errorf("shapes.family: %w", err)
	}
	if _, mask := s.Cidrs(); mask > s.Bits() {
		return fmt.Errorf("shapes.cidr_mask %d exceeds %d bits", mask, s.Bits())
	}
	return nil
}

// ValidateFamily accepts FamilyV4 and FamilyV6.
func ValidateFamily(family string) error {
	if family != FamilyV4 && family != FamilyV6 {
		return fmt.Errorf("family must be %q or %q, got %q", FamilyV4, FamilyV6, family)
	}
	return nil
}
