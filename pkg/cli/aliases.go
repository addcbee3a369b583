package cli

import (
	"github.com/spf13/cobra"

	"github.com/adfharrison1/go-esmigrate/pkg/config"
)

func newAliasesCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "Print every index with its aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aliasMap, err := newClient(cfg).ListAliases(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), aliasMap)
		},
	}
}
