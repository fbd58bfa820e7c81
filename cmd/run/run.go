package run

import (
	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/tools"
	"github.com/spf13/cobra"
)

var (
	configFile = tools.GetenvDefault(config.EnvPrefix+"CONFIG", "server.yaml")
	Cmd        = &cobra.Command{
		Use:   "run",
		Short: "Run the mock gateway config service",
		Args:  cobra.NoArgs,
	}
)

func init() {
	Cmd.PersistentFlags().StringVarP(&configFile, "config", "c", configFile, "path of config file")
	Cmd.AddCommand(serverCmd)
}
