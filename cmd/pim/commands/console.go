package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mserebryaakov/aggregator-pim/internal/console"
	"github.com/mserebryaakov/aggregator-pim/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console [route]",
	Short: "Open the interactive console",
	Long: `Open the interactive terminal console.

The optional route opens a screen directly, for example:
  pim console                 # Home menu
  pim console product         # Product list
  pim console order/3/view    # One order
  pim console category/new    # New category form`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := console.HomeRoute
		if len(args) == 1 {
			start = args[0]
		}
		return runConsole(cmd.Context(), start)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(ctx context.Context, start string) error {
	// log lines would tear the alternate screen
	quiet = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := newClient(ctx, cfg, false)
	if err != nil {
		return err
	}

	session := console.NewSession(c)
	if c.Token() != "" {
		// an expired token falls back to the login screen
		_ = session.Restore(ctx)
	}

	router := console.NewRouter(session, newLogger())
	console.RegisterLogin(router, session)
	console.RegisterEntities(router, console.NewServices(c), cfg.Client.ItemsPerPage)

	return tui.Run(ctx, router, start)
}
