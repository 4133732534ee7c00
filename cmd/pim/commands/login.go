package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mserebryaakov/aggregator-pim/cmd/pim/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print a token",
	Long: `Sign in with --user and --password and print a bearer token.

Export it as PIM_TOKEN to skip signing in on every command:
  export PIM_TOKEN=$(pim login -u admin -p admin --json | jq -r .token)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if login == "" || password == "" {
			return fmt.Errorf("--user and --password are required")
		}
		token = ""

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := newClient(ctx, cfg, true)
		if err != nil {
			return err
		}

		account, err := c.Account(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return output.JSON(map[string]interface{}{
				"token":   c.Token(),
				"account": account,
			})
		}
		output.Success("Signed in as %s (%s)", account.Login, strings.Join(account.Authorities, ", "))
		output.Muted("%s", c.Token())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
