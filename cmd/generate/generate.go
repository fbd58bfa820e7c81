package generate

import (
	"github.com/Mmx233/gwfixture/cmd/generate/certs"
	"github.com/Mmx233/gwfixture/cmd/generate/fixture"
	"github.com/Mmx233/gwfixture/cmd/generate/settings"
	"github.com/spf13/cobra"
)

var (
	Cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate fixtures and resources",
		Args:  cobra.NoArgs,
	}
)

func init() {
	Cmd.AddCommand(fixture.StatusCmd)
	Cmd.AddCommand(fixture.ConfigCmd)
	Cmd.AddCommand(fixture.CidrsCmd)
	Cmd.AddCommand(fixture.AddrsCmd)
	Cmd.AddCommand(fixture.KindCmd)
	Cmd.AddCommand(certs.Cmd)
	Cmd.AddCommand(settings.Cmd)
}
