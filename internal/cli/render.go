package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codewriter/internal/config"
	"codewriter/internal/extensions"
	"codewriter/internal/generator"
	"codewriter/internal/parser"
	"codewriter/internal/render"
)

// renderFlags are the flags shared by render and watch.
type renderFlags struct {
	template   string
	settings   string
	outputDir  string
	extension  string
	singleFile string
	partial    string
	noBOM      bool
	filters    []string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.template, "template", "t", "", "Template file (required)")
	flags.StringVarP(&f.settings, "config", "c", "", "Settings file, instead of the one beside the template")
	flags.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory outputs are written to")
	flags.StringVar(&f.extension, "ext", "", "Extension of output files")
	flags.StringVar(&f.singleFile, "single-file", "", "Render every input file into this one output")
	flags.StringVar(&f.partial, "partial", "", "Partial rendering mode: Partial or Combined")
	flags.BoolVar(&f.noBOM, "no-bom", false, "Do not start outputs with a UTF-8 byte order mark")
	flags.StringArrayVar(&f.filters, "filter", nil, "Named filter predicate as name=expression, usable as $name in filter clauses")
	_ = cmd.MarkFlagRequired("template")
}

// override applies the flags a user set on top of loaded settings.
func (f *renderFlags) override(cmd *cobra.Command, mode config.PartialRenderingMode) func(*config.Settings) {
	changed := cmd.Flags().Changed
	return func(s *config.Settings) {
		if changed("output-dir") {
			s.OutputDirectory = f.outputDir
		}
		if changed("ext") {
			s.OutputExtension = f.extension
		}
		if changed("single-file") {
			s.SingleFileMode(f.singleFile)
		}
		if changed("partial") {
			s.PartialRenderingMode = mode
		}
		if f.noBOM {
			s.Utf8BomGeneration = false
		}
	}
}

// registry builds the interpreter registry with the bundled extensions and
// any --filter predicates.
func (f *renderFlags) registry() (*render.Registry, error) {
	reg := extensions.NewRegistry()
	for _, def := range f.filters {
		name, expr, ok := strings.Cut(def, "=")
		if !ok || name == "" || expr == "" {
			return nil, errors.Newf("invalid --filter %q, want name=expression", def)
		}
		if err := extensions.RegisterFilter(reg, name, expr); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// setup loads the template and resolves the inputs.
func (f *renderFlags) setup(cmd *cobra.Command, args []string, g *globals) (*generator.Generator, []generator.Source, error) {
	mode, err := config.ParsePartialRenderingMode(f.partial)
	if err != nil {
		return nil, nil, err
	}
	reg, err := f.registry()
	if err != nil {
		return nil, nil, err
	}

	opts := []generator.Option{
		generator.WithLogger(g.logger),
		generator.WithEngine(render.New(render.WithRegistry(reg), render.WithLogger(g.logger))),
		generator.WithOverride(f.override(cmd, mode)),
	}
	if f.settings != "" {
		s, err := config.Load(f.settings)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, generator.WithSettings(s))
	}

	gen := generator.New(opts...)
	if err := gen.LoadTemplate(f.template); err != nil {
		return nil, nil, err
	}

	sources, err := generator.ResolveSources(args, parser.New(parser.WithLogger(g.logger)))
	if err != nil {
		return nil, nil, err
	}
	return gen, sources, nil
}

func newRenderCommand(g *globals) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [inputs...]",
		Short: "Render a template against Go packages, Go files or snapshots",
		Long: `Render a template once against every input file.

Inputs are Go package directories, Go files or YAML/JSON fact snapshots.
Settings are read from <template>.yaml or codewriter.yaml beside the
template unless --config names a file; flags override both.

Examples:
  # One TypeScript file per Go source file
  codewriter render -t models.tst ./internal/models

  # Every file into one output
  codewriter render -t api.tst --single-file api.ts ./internal/api

  # Reuse a filter as $api, e.g. $Classes($api)[...]
  codewriter render -t api.tst --filter 'api=*Handler' ./internal/api
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, sources, err := f.setup(cmd, args, g)
			if err != nil {
				return err
			}
			report, err := gen.Generate(cmd.Context(), sources...)
			printReport(cmd.OutOrStdout(), report, g.verbose)
			return err
		},
	}
	f.bind(cmd)
	return cmd
}

func newWatchCommand(g *globals) *cobra.Command {
	var (
		f        renderFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [inputs...]",
		Short: "Render on every change to the template, its settings or the inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, sources, err := f.setup(cmd, args, g)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			w := generator.NewWatcher(gen, sources, func(report *generator.Report, err error) {
				printReport(out, report, g.verbose)
				if err != nil {
					color.New(color.FgRed).Fprintf(out, "✗ %v\n", err)
					g.logger.Debug("render failed", zap.Error(err))
				}
			})
			w.SetDebounce(debounce)

			color.New(color.FgCyan).Fprintf(out, "Watching %s (Ctrl+C to stop)\n", gen.TemplatePath())
			return w.Run(ctx)
		},
	}
	f.bind(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", generator.DefaultDebounce, "Quiet period before a burst of changes is rendered")
	return cmd
}

func printReport(w io.Writer, report *generator.Report, verbose bool) {
	if report == nil {
		return
	}
	for _, path := range report.Written {
		color.New(color.FgGreen).Fprintf(w, "✓ wrote %s\n", path)
	}
	if verbose {
		for _, path := range report.Unchanged {
			color.New(color.Faint).Fprintf(w, "= unchanged %s\n", path)
		}
	}
	for _, path := range report.Deleted {
		color.New(color.FgYellow).Fprintf(w, "- deleted %s\n", path)
	}
	for _, path := range report.Failed {
		color.New(color.FgRed).Fprintf(w, "✗ failed %s\n", path)
	}
	fmt.Fprintf(w, "%d written, %d unchanged, %d deleted\n", len(report.Written), len(report.Unchanged), len(report.Deleted))
}
