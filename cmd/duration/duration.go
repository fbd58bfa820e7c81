package duration

import (
	"fmt"

	"github.com/Mmx233/gwfixture/duration"
	"github.com/spf13/cobra"
)

var (
	seconds int64
	nanos   int32

	Cmd = &cobra.Command{
		Use:   "duration",
		Short: "Normalize a signed (seconds, nanos) pair into a non-negative duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := duration.Normalize(duration.Signed{Seconds: seconds, Nanos: nanos})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d %d %s\n", c.Seconds, c.Nanos, c)
			return err
		},
	}
)

func init() {
	Cmd.Flags().Int64Var(&seconds, "seconds", 0, "seconds component")
	Cmd.Flags().Int32Var(&nanos, "nanos", 0, "nanoseconds component")
}
