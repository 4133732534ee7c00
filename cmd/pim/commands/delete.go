package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mserebryaakov/aggregator-pim/cmd/pim/output"
)

var (
	// Delete flags
	assumeYes bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <entity> <id>",
	Short: "Delete one record",
	Long: `Delete one record after confirmation.

Examples:
  pim delete category 12       # Asks before deleting
  pim delete category 12 -y    # No question`,
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

		if !assumeYes && !confirm(fmt.Sprintf("Are you sure you want to delete %s %d?", args[0], id)) {
			output.Info("Cancelled")
			return nil
		}

		if err := r.delete(ctx, id); err != nil {
			output.Error("failed to delete %s %d", args[0], id)
			return err
		}
		output.Success("Deleted %s %d", args[0], id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")
}

func confirm(prompt string) bool {
	fmt.Fprintf(output.Out, "%s [y/N] ", prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
