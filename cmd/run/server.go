package run

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	seedOverride uint64

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Start the mock config service",
		Args:  cobra.NoArgs,
		RunE:  runServer,
	}
)

func init() {
	serverCmd.Flags().Uint64VarP(&seedOverride, "seed", "s", 0, "override the seed of the config file")
}

func runServer(cmd *cobra.Command, args []string) error {
	logger := log.With().Str("com", "server-cmd").Logger()

	logger.Info().Str("config", configFile).Msg("loading configuration")
	cfg, err := config.LoadServerConfig(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seedOverride
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("listen", cfg.Listen).Msg("starting mock config service")
	if err := server.Start(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("server error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
