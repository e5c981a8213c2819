package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfache/nivo/internal/api"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

The server accepts chart documents over POST /api/v1/charts and renders
stored charts to SVG, PNG or JSON on demand. Configuration comes from
NIVO_* environment variables and an optional nivo.toml; --addr and
--config override both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configFile)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (skips search paths)")

	return cmd
}

// runServe loads configuration, builds the server and blocks until the
// context is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr, configFile string) error {
	var (
		cfg *api.Config
		err error
	)
	if configFile != "" {
		cfg, err = api.LoadFromFile(configFile)
	} else {
		cfg, err = api.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	srv, err := api.NewServer(ctx, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}
	defer srv.Close()

	c.Logger.Info("starting server",
		"addr", cfg.Addr,
		"cache", cfg.Cache.Backend,
		"store", cfg.Store.Backend)

	return srv.ListenAndServe(ctx)
}
