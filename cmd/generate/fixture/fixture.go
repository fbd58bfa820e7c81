package fixture

import (
	"fmt"
	"os"

	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/corpus"
	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/fixture"
	"github.com/Mmx233/gwfixture/gen"
	"github.com/spf13/cobra"
)

// flags shared by every fixture subcommand
var (
	seed   uint64
	format string
	input  string // raw draw bytes, replaces the seeded source
	record string // file the draws are written to

	family string
	count  uint16
	mask   uint8
)

var (
	StatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print a dataplane status snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(cmd, fixture.DataplaneStatus)
		},
	}

	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Print a gateway config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(cmd, fixture.GatewayConfig)
		},
	}

	CidrsCmd = &cobra.Command{
		Use:   "cidrs",
		Short: "Print pairwise distinct network blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateFamily(family); err != nil {
				return err
			}
			return emit(cmd, func(d draw.Driver) (*[]string, error) {
				alloc := gen.UniqueV4Cidrs
				if family == config.FamilyV6 {
					alloc = gen.UniqueV6Cidrs
				}
				v, err := alloc(d, count, mask)
				return &v, err
			})
		},
	}

	AddrsCmd = &cobra.Command{
		Use:   "addrs",
		Short: "Print pairwise distinct interface addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateFamily(family); err != nil {
				return err
			}
			return emit(cmd, func(d draw.Driver) (*[]string, error) {
				alloc := gen.UniqueV4HostAddrs
				if family == config.FamilyV6 {
					alloc = gen.UniqueV6HostAddrs
				}
				v, err := alloc(d, count)
				return &v, err
			})
		},
	}

	KindCmd = &cobra.Command{
		Use:   "kind <name>",
		Short: "Print one fixture of any registered kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := fixture.Lookup(args[0])
			if err != nil {
				return err
			}
			return generate(cmd, g)
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{StatusCmd, ConfigCmd, CidrsCmd, AddrsCmd, KindCmd} {
		c.Flags().Uint64VarP(&seed, "seed", "s", 0, "seed of the random source")
		c.Flags().StringVarP(&format, "format", "f", config.FormatJSON, "output format (json or yaml)")
		c.Flags().StringVarP(&input, "input", "i", "", "read draws from this file instead of the seeded source")
		c.Flags().StringVarP(&record, "record", "r", "", "write the draws to this file, replayable with --input")
	}
	for _, c := range []*cobra.Command{CidrsCmd, AddrsCmd} {
		c.Flags().StringVar(&family, "family", config.FamilyV4, "address family (v4 or v6)")
		c.Flags().Uint16VarP(&count, "count", "n", 8, "number of values")
	}
	CidrsCmd.Flags().Uint8VarP(&mask, "mask", "m", config.DefaultCidrMask, "prefix length")
}

func driver() (draw.Driver, error) {
	if input == "" {
		return draw.NewSeeded(seed), nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read draws: %w", err)
	}
	return draw.NewBytes(data), nil
}

func emit[T any](cmd *cobra.Command, g func(draw.Driver) (*T, error)) error {
	return generate(cmd, func(d draw.Driver) (any, error) {
		return g(d)
	})
}

// generate runs g on the selected driver and prints the result. With
// --record the draws are saved only once generation succeeded.
func generate(cmd *cobra.Command, g fixture.Generator) error {
	d, err := driver()
	if err != nil {
		return err
	}
	var rec *draw.Recorder
	if record != "" {
		rec = draw.NewRecorder(d)
		d = rec
	}

	v, err := g(d)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	data, err := corpus.Encode(format, v)
	if err != nil {
		return err
	}
	if rec != nil {
		if err := os.WriteFile(record, rec.Replay(), 0644); err != nil {
			return fmt.Errorf("write draws: %w", err)
		}
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
