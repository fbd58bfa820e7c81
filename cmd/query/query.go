package query

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mmx233/gwfixture/client"
	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/corpus"
	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/fixture"
	"github.com/Mmx233/gwfixture/schema"
	"github.com/Mmx233/gwfixture/tools"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile = tools.GetenvDefault(config.EnvPrefix+"CLIENT_CONFIG", "client.yaml")
	format     string

	updateFile string
	updateSeed uint64

	Cmd = &cobra.Command{
		Use:   "query",
		Short: "Query a gateway config service",
		Args:  cobra.NoArgs,
	}

	generationCmd = &cobra.Command{
		Use:   "generation",
		Short: "Print the generation of the applied config",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *client.Client) error {
			generation, err := c.GetConfigGeneration(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), generation)
			return err
		}),
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the applied config",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *client.Client) error {
			cfg, err := c.GetConfig(ctx)
			if err != nil {
				return err
			}
			return write(cmd, cfg)
		}),
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print a dataplane status snapshot",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *client.Client) error {
			status, err := c.GetDataplaneStatus(ctx)
			if err != nil {
				return err
			}
			return write(cmd, status)
		}),
	}

	updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Apply a config from --file, or a generated one, as the next generation",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, cmd *cobra.Command, c *client.Client) error {
			cfg, err := updateConfig(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ApplyConfig(ctx, cfg)
			if err != nil {
				return err
			}
			if resp.Error != schema.ErrorNone {
				return fmt.Errorf("config update failed: %s (error code: %s)", resp.Message, resp.Error)
			}
			log.Info().Str("com", "query").Int64("generation", cfg.Generation).Msg(resp.Message)
			return nil
		}),
	}
)

func init() {
	Cmd.PersistentFlags().StringVarP(&configFile, "config", "c", configFile, "path of client config file")
	Cmd.PersistentFlags().StringVarP(&format, "format", "f", config.FormatYAML, "output format (json or yaml)")
	updateCmd.Flags().StringVar(&updateFile, "file", "", "YAML gateway config to apply")
	updateCmd.Flags().Uint64VarP(&updateSeed, "seed", "s", 0, "seed of the generated config when --file is not set")

	Cmd.AddCommand(generationCmd, configCmd, statusCmd, updateCmd)
}

func withClient(fn func(ctx context.Context, cmd *cobra.Command, c *client.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadClientConfig(configFile)
		if err != nil {
			return err
		}
		c, err := client.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := c.Connect(ctx); err != nil {
			return err
		}
		defer c.Close()
		return fn(ctx, cmd, c)
	}
}

func updateConfig(cmd *cobra.Command) (*schema.GatewayConfig, error) {
	if updateFile == "" {
		return fixture.GatewayConfig(draw.NewSeeded(updateSeed))
	}
	data, err := os.ReadFile(updateFile)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg schema.GatewayConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func write(cmd *cobra.Command, v any) error {
	data, err := corpus.Encode(format, v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
