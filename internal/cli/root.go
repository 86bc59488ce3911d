// Package cli implements the codewriter command line.
package cli

import (
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globals holds state shared by every subcommand.
type globals struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	g := &globals{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "codewriter",
		Short: "Render source files from templates over a model of your types",
		Long: color.CyanString(`codewriter - template driven code generation

codewriter reads the types of Go packages or recorded snapshots, builds a
code model of their classes, interfaces, enums and delegates, and renders
templates written in a small $directive language against every file.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.logger = newLogger(g.verbose, cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = g.logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug details to stderr")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newRenderCommand(g))
	rootCmd.AddCommand(newWatchCommand(g))
	rootCmd.AddCommand(newInspectCommand(g))

	return rootCmd
}

// newLogger logs warnings as JSON, or everything in console form when
// verbose.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if verbose {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), zapcore.DebugLevel)
		return zap.New(core)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), zapcore.WarnLevel)
	return zap.New(core)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "codewriter version: ")
			_, _ = io.WriteString(out, Version+"\n")
			titleColor.Fprint(out, "Git commit: ")
			_, _ = io.WriteString(out, GitCommit+"\n")
			titleColor.Fprint(out, "Build date: ")
			_, _ = io.WriteString(out, BuildDate+"\n")
			titleColor.Fprint(out, "Go version: ")
			_, _ = io.WriteString(out, runtime.Version()+"\n")
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
