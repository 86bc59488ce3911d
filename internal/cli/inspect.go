package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"codewriter/internal/codemodel"
	"codewriter/internal/config"
	"codewriter/internal/generator"
	"codewriter/internal/metadata"
	"codewriter/internal/parser"
)

func newInspectCommand(g *globals) *cobra.Command {
	var (
		snapshot bool
		output   string
		combined bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [inputs...]",
		Short: "Show the code model of the inputs, or export it as a snapshot",
		Long: `Print the files, types and members a template would see.

With --snapshot the facts are written as a YAML snapshot instead, which
render and watch accept as input in place of the Go sources.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := generator.ResolveSources(args, parser.New(parser.WithLogger(g.logger)))
			if err != nil {
				return err
			}
			snapshots, err := generator.LoadSnapshots(cmd.Context(), sources)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrap(err, "creating output file")
				}
				defer f.Close()
				out = f
			}

			if snapshot {
				return writeSnapshot(out, snapshots)
			}

			settings := config.New()
			if combined {
				settings.PartialRenderingMode = config.Combined
			}
			var facts []metadata.FileFacts
			for _, snap := range snapshots {
				facts = append(facts, snap.Files()...)
			}
			for _, f := range codemodel.NewFiles(facts, settings) {
				printFile(out, f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Write the facts as a YAML snapshot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&combined, "combined", false, "Merge members of types declared across files")
	return cmd
}

// writeSnapshot merges snapshots into one document.
func writeSnapshot(w io.Writer, snapshots []*metadata.Snapshot) error {
	merged := &metadata.Snapshot{}
	for _, snap := range snapshots {
		merged.Sources = append(merged.Sources, snap.Sources...)
		merged.Types = append(merged.Types, snap.Types...)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(merged); err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	return enc.Close()
}

var (
	fileColor = color.New(color.FgCyan, color.Bold)
	kindColor = color.New(color.FgMagenta)
)

func printFile(w io.Writer, f *codemodel.File) {
	fileColor.Fprintln(w, f.FullName())

	for _, c := range f.Classes().All() {
		header := c.Name() + c.TypeParameters().DisplayString()
		if base := c.BaseClass(); base != nil {
			header += " : " + base.Name()
		}
		printDecl(w, "class", header)
		for _, p := range c.Properties().All() {
			fmt.Fprintf(w, "    %s: %s\n", p.Name(), p.Type().Name())
		}
		for _, m := range c.Methods().All() {
			fmt.Fprintf(w, "    %s(%s): %s\n", m.Name(), parameters(m.Parameters()), m.Type().Name())
		}
	}

	for _, i := range f.Interfaces().All() {
		printDecl(w, "interface", i.Name()+i.TypeParameters().DisplayString())
		for _, p := range i.Properties().All() {
			fmt.Fprintf(w, "    %s: %s\n", p.Name(), p.Type().Name())
		}
		for _, m := range i.Methods().All() {
			fmt.Fprintf(w, "    %s(%s): %s\n", m.Name(), parameters(m.Parameters()), m.Type().Name())
		}
	}

	for _, e := range f.Enums().All() {
		kind := "enum"
		if e.IsFlags() {
			kind = "flags"
		}
		printDecl(w, kind, e.Name())
		for _, v := range e.Values().All() {
			fmt.Fprintf(w, "    %s = %d\n", v.Name(), v.Value())
		}
	}

	for _, d := range f.Delegates().All() {
		printDecl(w, "delegate", fmt.Sprintf("%s(%s): %s", d.Name(), parameters(d.Parameters()), d.Type().Name()))
	}
}

func printDecl(w io.Writer, kind, header string) {
	_, _ = io.WriteString(w, "  ")
	kindColor.Fprint(w, kind)
	fmt.Fprintf(w, " %s\n", header)
}

func parameters(params *codemodel.List[*codemodel.Parameter]) string {
	parts := make([]string, 0, params.Len())
	for _, p := range params.All() {
		parts = append(parts, p.Name()+": "+p.Type().Name())
	}
	return strings.Join(parts, ", ")
}
