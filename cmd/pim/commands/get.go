package commands

import (
	"github.com/spf13/cobra"

	"github.com/mserebryaakov/aggregator-pim/cmd/pim/output"
)

var getCmd = &cobra.Command{
	Use:       "get <entity> <id>",
	Short:     "Show one record as JSON",
	Args:      cobra.ExactArgs(2),
	ValidArgs: entityNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := newClient(ctx, cfg, true)
		if err != nil {
			return err
		}
		r, err := lookup(c, args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}

		rec, err := r.get(ctx, id)
		if err != nil {
			return err
		}
		return output.JSON(rec)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
