package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mserebryaakov/aggregator-pim/cmd/pim/output"
	"github.com/mserebryaakov/aggregator-pim/internal/client"
)

var (
	// List flags
	page  int
	size  int
	sorts []string
)

var listCmd = &cobra.Command{
	Use:   "list <entity>",
	Short: "List one page of records",
	Long: `List one page of records of an entity.

Examples:
  pim list product                         # First page sorted by id
  pim list product --sort price,desc       # Most expensive first
  pim list order --page 2 --size 50 --json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: entityNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	listCmd.Flags().IntVar(&size, "size", 0, "Page size (default from config)")
	listCmd.Flags().StringSliceVar(&sorts, "sort", []string{"id,asc"}, "Sort as property,direction; repeatable")
}

func runList(ctx context.Context, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := newClient(ctx, cfg, true)
	if err != nil {
		return err
	}
	r, err := lookup(c, name)
	if err != nil {
		return err
	}

	pageSize := size
	if pageSize <= 0 {
		pageSize = cfg.Client.ItemsPerPage
	}
	items, rows, total, err := r.list(ctx, client.PageRequest(max(page, 1)-1, pageSize, sorts...))
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(items)
	}
	if err := output.Table(r.headers, rows); err != nil {
		return err
	}
	output.Muted("page %d, %d of %d records", max(page, 1), len(rows), total)
	return nil
}
