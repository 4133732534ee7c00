package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mserebryaakov/aggregator-pim/config"
	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/pkg/logger"
)

var (
	// Global flags
	apiURL     string
	login      string
	password   string
	token      string
	logLevel   string
	configDir  string
	jsonOutput bool

	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "pim",
	Short: "PIM admin console",
	Long: `pim manages the product information system: categories, products,
baskets, basket items, addresses and orders.

Run "pim console" for the interactive terminal console, or use the list, get
and delete commands from scripts.

Environment:
  PIM_API_URL   API root (default http://localhost:8080)
  PIM_LOGIN     login used to sign in
  PIM_PASSWORD  password used to sign in
  PIM_TOKEN     bearer token from "pim login"`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	env := config.GetConsoleEnvironment()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", env.ApiURL, "API root URL")
	rootCmd.PersistentFlags().StringVarP(&login, "user", "u", env.Login, "Login to sign in with")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", env.Password, "Password to sign in with")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PIM_TOKEN"), "Bearer token from a previous login")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLvl, "Log level")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "config", "Directory holding config.json")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger() *logrus.Entry {
	if quiet {
		return logger.Discard()
	}
	return logger.NewLogger(logLevel, &client.ClientLogHook{})
}

// newClient builds an API client and signs in with the token or the
// credentials given.
func newClient(ctx context.Context, cfg config.Config, requireAuth bool) (*client.Client, error) {
	c, err := client.New(client.Config{
		BaseURL:           apiURL,
		Timeout:           cfg.Client.Timeout,
		RequestsPerSecond: cfg.Client.RequestsPerSecond,
		Burst:             cfg.Client.Burst,
	}, newLogger())
	if err != nil {
		return nil, err
	}

	switch {
	case token != "":
		c.SetToken(token)
	case login != "" && password != "":
		if err := c.Authenticate(ctx, login, password, false); err != nil {
			return nil, fmt.Errorf("failed to sign in as %s: %w", login, err)
		}
	case requireAuth:
		return nil, fmt.Errorf("sign in with --token or --user and --password")
	}
	return c, nil
}
