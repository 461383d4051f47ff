package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// animateCommand creates the animate command for the live terminal preview.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		flags paintingFlags
		keep  bool
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Watch a painting bleed in the terminal",
		Long: `Paint layer after layer in the terminal, restarting with a new shape at the
end of every cycle. The canvas is drawn with braille characters in the
current shape's color.`,
		Example: `  bleed animate
  bleed animate --seed 42 --layers 80 --frame-delay 15ms
  bleed animate --cycles 5 --keep`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg.Painting)
			cfg.Painting.SetDefaults()
			if err := cfg.Painting.Validate(); err != nil {
				return err
			}

			seed := cfg.Painting.Seed
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			loggerFromContext(ctx).Debug("Starting animation", "seed", seed, "layers", cfg.Painting.Layers)

			m := NewAnimateModel(ctx, cfg.Painting, seed, 80, 24-chromeRows)
			m.stats.keep = keep
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("run animation: %w", err)
			}
			if err := m.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			printSuccess("Painted %d shapes", m.Cycles())
			printNextStep("Keep this one", fmt.Sprintf("%s paint --seed %d -f png", appName, seed))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&keep, "keep", false, "accumulate shapes instead of clearing the canvas each cycle")

	return cmd
}
