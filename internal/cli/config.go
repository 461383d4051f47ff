package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bleed/pkg/config"
)

// configCommand creates the config command that prints the effective
// configuration.
func (c *CLI) configCommand() *cobra.Command {
	var (
		showPath bool
		initFile bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration bleed runs with: the built-in defaults merged with
the config file. --init writes the defaults to the config file if it does not
exist yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			out := cmd.OutOrStdout()

			if showPath {
				fmt.Fprintln(out, path)
				return nil
			}
			if initFile {
				return writeDefaultConfig(path)
			}

			if _, err := os.Stat(path); os.IsNotExist(err) {
				printWarning("No config file at %s, showing defaults", path)
			} else {
				printKeyValue("file", path)
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return config.Write(out, cfg)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file path and exit")
	cmd.Flags().BoolVar(&initFile, "init", false, "write the default config file")

	return cmd
}

// writeDefaultConfig creates path with the built-in defaults. An existing
// file is left alone.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		printInfo("Config file already exists")
		printFile(path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := config.Write(f, config.Default()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printSuccess("Wrote default config")
	printFile(path)
	return nil
}
