package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bleed/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached paintings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := newCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			var count int
			switch s := store.(type) {
			case *cache.FileCache:
				if count, err = s.Clear(); err != nil {
					return fmt.Errorf("clear %s: %w", s.Dir(), err)
				}
				printSuccess("Cleared %d cached entries", count)
				printDetail("Directory: %s", s.Dir())
			case *cache.RedisCache:
				if count, err = s.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear redis cache: %w", err)
				}
				printSuccess("Cleared %d cached entries", count)
				printDetail("Redis: %s", cfg.Cache.URL)
			default:
				printInfo("Cache is disabled")
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where paintings are cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			switch {
			case cfg.Cache.Disabled:
				fmt.Fprintln(cmd.OutOrStdout(), "none")
			case cfg.Cache.URL != "":
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.URL)
			case cfg.Cache.Dir != "":
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Dir)
			default:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			}
			return nil
		},
	}
}
