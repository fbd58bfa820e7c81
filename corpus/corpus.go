// Package corpus writes numbered fixture files for a generator kind.
//
// Fixture i is drawn from its own Seeded(seed+i) source, so files are
// independent of each other, of the worker count and of scheduling: the same
// seed always yields the same bytes.
package corpus

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/fixture"
	"github.com/Mmx233/gwfixture/gen"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Allocator kinds served on top of the fixture kinds.
const (
	KindCidrs = "cidrs"
	KindAddrs = "addrs"
)

const ManifestFile = "manifest.json"

type Manifest struct {
	RunID    string    `json:"run_id"`
	Kind     string    `json:"kind"`
	Seed     uint64    `json:"seed"`
	Count    int       `json:"count"`
	Format   string    `json:"format"`
	Files    []string  `json:"files"`
	Draws    []string  `json:"draws,omitempty"`
	Failures []Failure `json:"failures,omitempty"`
}

// Failure records a fixture whose generation failed. Failures do not abort
// the run.
type Failure struct {
	Index int    `json:"index"`
	Seed  uint64 `json:"seed"`
	Error string `json:"error"`
}

// Resolve returns the generator for cfg.Kind.
func Resolve(cfg *config.Generator) (fixture.Generator, error) {
	shapes := cfg.Shapes
	switch cfg.Kind {
	case KindCidrs:
		count, mask := shapes.Cidrs()
		return func(d draw.Driver) (any, error) {
			if shapes.Family == config.FamilyV6 {
				return gen.UniqueV6Cidrs(d, count, mask)
			}
			return gen.UniqueV4Cidrs(d, count, mask)
		}, nil
	case KindAddrs:
		count := shapes.HostAddrs()
		return func(d draw.Driver) (any, error) {
			if shapes.Family == config.FamilyV6 {
				return gen.UniqueV6HostAddrs(d, count)
			}
			return gen.UniqueV4HostAddrs(d, count)
		}, nil
	}
	return fixture.Lookup(cfg.Kind)
}

// Write resolves cfg.Kind and runs it.
func Write(ctx context.Context, cfg *config.Generator) (*Manifest, error) {
	g, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	return Run(ctx, cfg, g)
}

// Run generates cfg.Count fixtures with g into cfg.OutputDir and writes the
// manifest last.
func Run(ctx context.Context, cfg *config.Generator, g fixture.Generator) (*Manifest, error) {
	logger := log.With().Str("com", "corpus").Str("kind", cfg.Kind).Logger()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	m := &Manifest{
		RunID:  uuid.New().String(),
		Kind:   cfg.Kind,
		Seed:   cfg.Seed,
		Count:  cfg.Count,
		Format: cfg.Format,
	}
	files := make([]string, cfg.Count)
	draws := make([]string, cfg.Count)
	var (
		mu       sync.Mutex
		failures []Failure
	)

	eg, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		eg.SetLimit(cfg.Workers)
	}
	for i := range cfg.Count {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := cfg.Seed + uint64(i)
			var d draw.Driver = draw.NewSeeded(seed)
			var rec *draw.Recorder
			if cfg.Record {
				rec = draw.NewRecorder(d)
				d = rec
			}
			v, err := g(d)
			if err != nil {
				logger.Warn().Err(err).Int("index", i).Uint64("seed", seed).Msg("generation failed")
				mu.Lock()
				failures = append(failures, Failure{Index: i, Seed: seed, Error: err.Error()})
				mu.Unlock()
				return nil
			}

			name := FileName(cfg.Kind, i, cfg.Format)
			if err := writeFile(filepath.Join(cfg.OutputDir, name), cfg.Format, v); err != nil {
				return err
			}
			files[i] = name

			if rec != nil {
				name := DrawsFileName(cfg.Kind, i)
				if err := os.WriteFile(filepath.Join(cfg.OutputDir, name), rec.Replay(), 0644); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
				draws[i] = name
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, f := range files {
		if f != "" {
			m.Files = append(m.Files, f)
		}
		if draws[i] != "" {
			m.Draws = append(m.Draws, draws[i])
		}
	}
	slices.SortFunc(failures, func(a, b Failure) int {
		return cmp.Compare(a.Index, b.Index)
	})
	m.Failures = failures

	if err := writeFile(filepath.Join(cfg.OutputDir, ManifestFile), config.FormatJSON, m); err != nil {
		return nil, err
	}

	logger.Info().
		Str("run_id", m.RunID).
		Int("written", len(m.Files)).
		Int("failed", len(m.Failures)).
		Str("dir", cfg.OutputDir).
		Msg("corpus written")
	return m, nil
}

// FileName names fixture i of kind.
func FileName(kind string, i int, format string) string {
	return fmt.Sprintf("%s-%04d.%s", kind, i, format)
}

// DrawsFileName names the recorded draws of fixture i of kind. Feeding the
// file to a Bytes driver regenerates the fixture.
func DrawsFileName(kind string, i int) string {
	return fmt.Sprintf("%s-%04d.draws", kind, i)
}

// Encode renders v in format.
func Encode(format string, v any) ([]byte, error) {
	switch format {
	case config.FormatYAML:
		return yaml.Marshal(v)
	case config.FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func writeFile(path, format string, v any) error {
	data, err := Encode(format, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
