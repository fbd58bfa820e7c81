package settings

import (
	"fmt"
	"os"

	"github.com/Mmx233/gwfixture/examples"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configFile string // --config flag value

	Cmd = &cobra.Command{
		Use:   "settings",
		Short: "Generate configuration files from the embedded templates",
		Args:  cobra.NoArgs,
	}
)

func init() {
	Cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "output config file path")
	for _, name := range examples.Templates() {
		Cmd.AddCommand(templateCmd(name))
	}
}

func templateCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Generate %s configuration file", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTemplate(name, configFile)
		},
	}
}

func writeTemplate(name, outputPath string) error {
	logger := log.With().Str("com", "generate").Logger()

	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("file already exists: %s", outputPath)
	}

	content, err := examples.Template(name)
	if err != nil {
		return fmt.Errorf("load %s config template: %w", name, err)
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info().Str("file", outputPath).Msgf("generated %s configuration", name)
	return nil
}
