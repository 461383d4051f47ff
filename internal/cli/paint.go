package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/pipeline"
)

// paintOptions holds the flags of the paint command.
type paintOptions struct {
	painting paintingFlags
	formats  string
	output   string
	shapes   int
	scale    float64
	refresh  bool
	details  bool
}

// paintCommand creates the paint command for rendering still images.
func (c *CLI) paintCommand() *cobra.Command {
	var opts paintOptions

	cmd := &cobra.Command{
		Use:   "paint",
		Short: "Render a watercolor painting to files",
		Long: `Render one painting and write it in each requested format.

Files are named <output>.<format>. Without --output the name is bleed-<seed>.
Use --output - to write a single format to stdout.`,
		Example: `  bleed paint --seed 42
  bleed paint -s 42 -f svg,png --scale 2 -o art/blot
  bleed paint -n 5 --layers 80 --alpha 0.03 -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaint(cmd, &opts)
		},
	}

	fs := cmd.Flags()
	opts.painting.register(fs)
	fs.StringVarP(&opts.formats, "format", "f", "", "output formats: svg,png,pdf,json (default from config, else svg)")
	fs.StringVarP(&opts.output, "output", "o", "", "output path without extension")
	fs.IntVarP(&opts.shapes, "shapes", "n", pipeline.DefaultShapes, "shapes to paint")
	fs.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fs.BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	fs.BoolVar(&opts.details, "details", false, "print a table of the painted shapes")

	return cmd
}

func (c *CLI) runPaint(cmd *cobra.Command, opts *paintOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.painting.apply(cmd.Flags(), &cfg.Painting)

	popts := pipeline.Options{
		Config:  cfg.Painting,
		Shapes:  opts.shapes,
		Formats: cfg.Output.Formats,
		Scale:   cfg.Output.Scale,
		Refresh: opts.refresh,
		Logger:  logger,
	}
	if cmd.Flags().Changed("format") {
		popts.Formats = parseFormats(opts.formats)
	}
	if cmd.Flags().Changed("scale") {
		popts.Scale = opts.scale
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	toStdout := opts.output == "-"
	if toStdout && len(popts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--output - needs exactly one format, got %d", len(popts.Formats))
	}
	if !toStdout && opts.output != "" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, cfg.Cache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinner(ctx, fmt.Sprintf("Painting seed %d...", popts.Seed))
		spinner.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Painted seed %d", result.Seed))

	if toStdout {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	base := opts.output
	if base == "" {
		base = fmt.Sprintf("%s-%d", appName, result.Seed)
	}
	paths, err := writeArtifacts(base, popts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Painted seed %s", StyleNumber.Render(fmt.Sprint(result.Seed)))
	printStats(result.Stats, result.CacheInfo.Hit)
	if opts.details && len(result.Shapes) > 0 {
		fmt.Println(shapesTable(result.Shapes))
	}
	for _, p := range paths {
		printFile(p)
	}
	printNextStep("Watch it bleed", fmt.Sprintf("%s animate --seed %d", appName, result.Seed))
	return nil
}

// writeArtifacts writes base.<format> for each format in order and returns
// the paths written.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s artifact rendered", format)
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
