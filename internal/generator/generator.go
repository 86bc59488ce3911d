// Package generator renders a template against source files and writes the
// rendered outputs next to the template.
package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"codewriter/internal/codemodel"
	"codewriter/internal/config"
	"codewriter/internal/render"
)

// ErrRenderFailed is returned when a template reports a rendering error.
// Nothing is written for a failed root.
var ErrRenderFailed = errors.New("render failed")

var bom = []byte{0xEF, 0xBB, 0xBF}

// settingsNames are the sibling files LoadTemplate reads settings from,
// relative to the template. "%" stands for the template's own path.
var settingsNames = []string{"%.yaml", "%.yml", "%.json", "codewriter.yaml", "codewriter.yml", "codewriter.json"}

// Generator renders one template.
type Generator struct {
	settings *config.Settings
	engine   *render.Engine
	logger   *zap.Logger

	templatePath string
	template     string
	fixed        bool
	overrides    []func(*config.Settings)
	outputHooks  []func(path string)
}

// Option configures a Generator.
type Option func(*Generator)

// WithSettings fixes the settings instead of reading them next to the
// template.
func WithSettings(s *config.Settings) Option {
	return func(g *Generator) {
		g.settings = s
		g.fixed = s != nil
	}
}

// WithOverride registers a change applied to the settings every time a
// template is loaded, after any settings file was read.
func WithOverride(fn func(*config.Settings)) Option {
	return func(g *Generator) { g.overrides = append(g.overrides, fn) }
}

// WithOutputHook registers fn to be told of every output path right before
// it is written or removed.
func WithOutputHook(fn func(path string)) Option {
	return func(g *Generator) { g.outputHooks = append(g.outputHooks, fn) }
}

// WithEngine sets the template interpreter.
func WithEngine(e *render.Engine) Option {
	return func(g *Generator) { g.engine = e }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a new Generator.
func New(opts ...Option) *Generator {
	g := &Generator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	if g.engine == nil {
		g.engine = render.New(render.WithLogger(g.logger))
	}
	if g.settings == nil {
		g.settings = config.New()
	}
	return g
}

// Settings returns the settings the next Generate uses.
func (g *Generator) Settings() *config.Settings { return g.settings }

// TemplatePath returns the path of the loaded template.
func (g *Generator) TemplatePath() string { return g.templatePath }

// LoadTemplate reads a template file and, unless settings were fixed, the
// first settings file found beside it. Overrides apply last.
func (g *Generator) LoadTemplate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "loading template")
	}
	g.templatePath = path
	g.template = string(bytes.TrimPrefix(data, bom))

	if !g.fixed {
		settingsPath := g.settingsFile()
		s, err := config.Load(settingsPath)
		if err != nil {
			return errors.Wrap(err, "loading template settings")
		}
		if settingsPath != "" {
			g.logger.Debug("loaded settings", zap.String("template", path), zap.String("settings", settingsPath))
		}
		g.settings = s
	}
	for _, fn := range g.overrides {
		fn(g.settings)
	}
	return nil
}

func (g *Generator) settingsFile() string {
	dir := filepath.Dir(g.templatePath)
	for _, name := range settingsNames {
		candidate := filepath.Join(dir, name)
		if strings.HasPrefix(name, "%") {
			candidate = g.templatePath + strings.TrimPrefix(name, "%")
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Report lists what one Generate call did to the output files.
type Report struct {
	// Written outputs whose content changed.
	Written []string
	// Unchanged outputs whose content already matched.
	Unchanged []string
	// Deleted stale outputs of roots that no longer match.
	Deleted []string
	// Failed roots whose render reported errors.
	Failed []string
}

// Outputs returns every output path the report touches, sorted.
func (r *Report) Outputs() []string {
	var all []string
	all = append(all, r.Written...)
	all = append(all, r.Unchanged...)
	all = append(all, r.Deleted...)
	sort.Strings(all)
	return all
}

// Generate renders the template against the files of every source. Each
// root gets its own output file, or all roots share one in single file mode.
// Roots with no collection match get no output and lose any stale one.
func (g *Generator) Generate(ctx context.Context, sources ...Source) (*Report, error) {
	if g.templatePath == "" {
		return nil, errors.New("no template loaded")
	}
	if err := g.settings.Validate(); err != nil {
		return nil, err
	}

	facts, err := loadFacts(ctx, sources)
	if err != nil {
		return nil, err
	}
	roots := codemodel.NewFiles(facts, g.settings)
	report := &Report{}

	if g.settings.IsSingleFileMode {
		path := filepath.Join(g.outputDir(), g.settings.SingleFileName)
		res := g.engine.ExecuteFiles(roots, g.template)
		if err := g.commit(report, path, res); err != nil {
			return report, err
		}
		if !res.Success {
			return report, errors.Wrapf(ErrRenderFailed, "%s: %d errors", g.templatePath, len(res.Errors))
		}
		return report, nil
	}

	seen := make(map[string]string)
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		path := g.outputPath(root)
		if other, ok := seen[path]; ok {
			g.logger.Warn("output path collision",
				zap.String("output", path),
				zap.String("source", root.FullName()),
				zap.String("previous", other))
		}
		seen[path] = root.FullName()

		res := g.engine.Execute(root, g.template)
		if err := g.commit(report, path, res); err != nil {
			return report, err
		}
		if !res.Success {
			report.Failed = append(report.Failed, root.FullName())
		}
	}

	if len(report.Failed) > 0 {
		return report, errors.Wrapf(ErrRenderFailed, "%s", strings.Join(report.Failed, ", "))
	}
	return report, nil
}

// commit applies one render result to its output path.
func (g *Generator) commit(report *Report, path string, res render.Result) error {
	switch {
	case !res.Success:
		return nil
	case !res.MatchFound:
		g.touch(path)
		removed, err := removeStale(path)
		if err != nil {
			return err
		}
		if removed {
			report.Deleted = append(report.Deleted, path)
			g.logger.Info("deleted stale output", zap.String("output", path))
		}
		return nil
	}

	content := []byte(res.Output)
	if g.settings.Utf8BomGeneration {
		content = append(append([]byte{}, bom...), content...)
	}
	g.touch(path)
	changed, err := writeIfChanged(path, content)
	if err != nil {
		return err
	}
	if changed {
		report.Written = append(report.Written, path)
		g.logger.Info("wrote output", zap.String("output", path))
	} else {
		report.Unchanged = append(report.Unchanged, path)
	}
	return nil
}

func (g *Generator) touch(path string) {
	for _, fn := range g.outputHooks {
		fn(path)
	}
}

// outputDir is the configured output directory, resolved against the
// template's directory when relative.
func (g *Generator) outputDir() string {
	base := filepath.Dir(g.templatePath)
	dir := g.settings.OutputDirectory
	switch {
	case dir == "":
		return base
	case filepath.IsAbs(dir):
		return dir
	default:
		return filepath.Join(base, dir)
	}
}

// outputPath names the output of one root. A file name factory wins over
// the output extension.
func (g *Generator) outputPath(root *codemodel.File) string {
	var name string
	if g.settings.OutputFilenameFactory != nil {
		name = g.settings.OutputFilenameFactory(root)
	} else {
		base := root.Name()
		name = strings.TrimSuffix(base, filepath.Ext(base)) + g.settings.OutputExtension
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(g.outputDir(), name)
}

func writeIfChanged(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.Wrapf(err, "creating output directory for %s", path)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, errors.Wrapf(err, "writing %s", path)
	}
	return true, nil
}

func removeStale(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrapf(err, "removing %s", path)
	}
}
