package corpus

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/corpus"
	"github.com/Mmx233/gwfixture/fixture"
	"github.com/Mmx233/gwfixture/tools"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configFile = tools.GetenvDefault(config.EnvPrefix+"GENERATOR_CONFIG", "")
	overrides  config.Generator
	listKinds  bool

	Cmd = &cobra.Command{
		Use:   "corpus",
		Short: "Write a directory of numbered fixtures",
		Args:  cobra.NoArgs,
		RunE:  runCorpus,
	}
)

func init() {
	Cmd.Flags().StringVarP(&configFile, "config", "c", configFile, "path of generator config file")
	Cmd.Flags().Uint64VarP(&overrides.Seed, "seed", "s", 0, "base seed, fixture i uses seed+i")
	Cmd.Flags().IntVarP(&overrides.Count, "count", "n", 0, "number of fixtures")
	Cmd.Flags().StringVarP(&overrides.Kind, "kind", "k", "", "fixture kind")
	Cmd.Flags().StringVarP(&overrides.Format, "format", "f", "", "output format (json or yaml)")
	Cmd.Flags().StringVarP(&overrides.OutputDir, "output", "o", "", "output directory")
	Cmd.Flags().IntVarP(&overrides.Workers, "workers", "w", 0, "parallel workers")
	Cmd.Flags().BoolVarP(&overrides.Record, "record", "r", false, "also write the draws of every fixture")
	Cmd.Flags().BoolVar(&listKinds, "list", false, "list fixture kinds and exit")
}

func runCorpus(cmd *cobra.Command, args []string) error {
	logger := log.With().Str("com", "corpus-cmd").Logger()

	if listKinds {
		kinds := append(fixture.Kinds(), corpus.KindCidrs, corpus.KindAddrs)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(kinds, "\n"))
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("kind", cfg.Kind).
		Uint64("seed", cfg.Seed).
		Int("count", cfg.Count).
		Int("workers", cfg.Workers).
		Msg("writing corpus")

	m, err := corpus.Write(ctx, cfg)
	if err != nil {
		return err
	}
	if len(m.Failures) > 0 {
		logger.Warn().Int("failed", len(m.Failures)).Msg("some fixtures could not be generated, see manifest")
	}
	return nil
}

// loadConfig reads the config file when given and applies the flags that were set on top.
func loadConfig(cmd *cobra.Command) (*config.Generator, error) {
	cfg := &config.Generator{}
	if configFile != "" {
		loaded, err := config.LoadConfig[config.Generator](configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = overrides.Seed
	}
	if flags.Changed("count") {
		cfg.Count = overrides.Count
	}
	if flags.Changed("kind") {
		cfg.Kind = overrides.Kind
	}
	if flags.Changed("format") {
		cfg.Format = overrides.Format
	}
	if flags.Changed("output") {
		cfg.OutputDir = overrides.OutputDir
	}
	if flags.Changed("workers") {
		cfg.Workers = overrides.Workers
	}
	if flags.Changed("record") {
		cfg.Record = overrides.Record
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
