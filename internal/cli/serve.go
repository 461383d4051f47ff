package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bleed/pkg/cache"
	"github.com/matzehuels/bleed/pkg/server"
)

// serveKeyPrefix keeps service artifacts apart from CLI artifacts when both
// share a cache backend.
const serveKeyPrefix = "serve:"

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags paintingFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve paintings over HTTP",
		Long: `Run the HTTP API:

  GET  /healthz
  GET  /paintings/{seed}?format=svg|png|pdf|json
  POST /paintings

Painting flags set the defaults every request starts from.`,
		Example: `  bleed serve --addr :9000
  bleed serve --cache-url redis://localhost:6379/0 --layers 80`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg.Painting)
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cfg.Cache, cache.NewScopedKeyer(nil, serveKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithLogger(logger),
				server.WithConfig(cfg.Painting),
				server.WithTimeout(cfg.Server.Timeout.Std()),
			)
			printInfo("Serving on %s", StyleLink.Render(displayAddr(cfg.Server.Addr)))
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	flags.register(cmd.Flags())

	return cmd
}

// displayAddr turns a listen address into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
