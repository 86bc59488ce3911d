package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codewriter/internal/config"
)

const snapshot = `
files:
  - path: src/models.cs
    classes:
      - {name: User, fullName: App.User, kind: class}
  - path: src/orders.cs
    classes:
      - {name: Order, fullName: App.Order, kind: class}
  - path: src/empty.cs
`

const classTemplate = "$Classes[export class $Name {}][\n]"

// workspace writes a snapshot and a template into a fresh directory.
func workspace(t *testing.T, template string) (dir string, src Source, tmpl string) {
	t.Helper()
	dir = t.TempDir()
	snap := filepath.Join(dir, "facts.yaml")
	require.NoError(t, os.WriteFile(snap, []byte(snapshot), 0o644))
	tmpl = filepath.Join(dir, "models.tst")
	require.NoError(t, os.WriteFile(tmpl, []byte(template), 0o644))
	return dir, SnapshotSource{Path: snap}, tmpl
}

func plainSettings() *config.Settings {
	s := config.New()
	s.Utf8BomGeneration = false
	return s
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGeneratePerFile(t *testing.T) {
	dir, src, tmpl := workspace(t, classTemplate)
	g := New(WithSettings(plainSettings()))
	require.NoError(t, g.LoadTemplate(tmpl))

	report, err := g.Generate(context.Background(), src)
	require.NoError(t, err)

	models := filepath.Join(dir, "models.ts")
	orders := filepath.Join(dir, "orders.ts")
	assert.Equal(t, []string{models, orders}, report.Written)
	assert.Equal(t, "export class User {}", readFile(t, models))
	assert.Equal(t, "export class Order {}", readFile(t, orders))
	assert.NoFileExists(t, filepath.Join(dir, "empty.ts"), "a root without matches gets no output")
}

func TestGenerateUnchangedAndStale(t *testing.T) {
	dir, src, tmpl := workspace(t, classTemplate)
	stale := filepath.Join(dir, "empty.ts")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	g := New(WithSettings(plainSettings()))
	require.NoError(t, g.LoadTemplate(tmpl))

	report, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{stale}, report.Deleted)
	assert.NoFileExists(t, stale)

	report, err = g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, report.Written)
	assert.Empty(t, report.Deleted)
	assert.Len(t, report.Unchanged, 2)
	assert.Len(t, report.Outputs(), 2)
}

func TestGenerateOutputHook(t *testing.T) {
	dir, src, tmpl := workspace(t, classTemplate)
	var touched []string
	g := New(WithSettings(plainSettings()), WithOutputHook(func(path string) {
		if _, err := os.Stat(path); err == nil {
			t.Errorf("%s already written when announced", path)
		}
		touched = append(touched, path)
	}))
	require.NoError(t, g.LoadTemplate(tmpl))

	_, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "models.ts"),
		filepath.Join(dir, "orders.ts"),
		filepath.Join(dir, "empty.ts"),
	}, touched)
}

func TestGenerateByteOrderMark(t *testing.T) {
	dir, src, tmpl := workspace(t, "\xEF\xBB\xBF$Classes(User)[$Name]")
	g := New(WithSettings(config.New()))
	require.NoError(t, g.LoadTemplate(tmpl))

	_, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFUser", readFile(t, filepath.Join(dir, "models.ts")), "the template's own mark is not rendered")
}

func TestGenerateSingleFile(t *testing.T) {
	dir, src, tmpl := workspace(t, "// $Name\n"+classTemplate)
	s := plainSettings().SingleFileMode("all.ts")
	g := New(WithSettings(s))
	require.NoError(t, g.LoadTemplate(tmpl))

	report, err := g.Generate(context.Background(), src)
	require.NoError(t, err)

	all := filepath.Join(dir, "all.ts")
	assert.Equal(t, []string{all}, report.Written)
	assert.Equal(t, "// models.csorders.csempty.cs\nexport class User {}\nexport class Order {}", readFile(t, all))
	assert.NoFileExists(t, filepath.Join(dir, "models.ts"))
}

func TestGenerateFailure(t *testing.T) {
	dir, src, tmpl := workspace(t, "$Classes(A||B)[$Name]")
	g := New(WithSettings(plainSettings()))
	require.NoError(t, g.LoadTemplate(tmpl))

	report, err := g.Generate(context.Background(), src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))
	assert.Len(t, report.Failed, 3)
	assert.Empty(t, report.Written)
	assert.NoFileExists(t, filepath.Join(dir, "models.ts"))
}

func TestGenerateWithoutTemplate(t *testing.T) {
	_, err := New().Generate(context.Background())
	assert.ErrorContains(t, err, "no template")
}

func TestLoadTemplateSettings(t *testing.T) {
	dir, src, tmpl := workspace(t, classTemplate)
	require.NoError(t, os.WriteFile(tmpl+".yaml", []byte(`
outputExtension: .d.ts
outputDirectory: out
utf8BomGeneration: false
`), 0o644))

	g := New()
	require.NoError(t, g.LoadTemplate(tmpl))
	assert.Equal(t, ".d.ts", g.Settings().OutputExtension)

	report, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, report.Written, 2)
	assert.Equal(t, "export class User {}", readFile(t, filepath.Join(dir, "out", "models.d.ts")))
}

func TestLoadTemplateSharedSettings(t *testing.T) {
	dir, _, tmpl := workspace(t, classTemplate)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codewriter.yaml"), []byte("singleFile: index.ts\n"), 0o644))

	g := New()
	require.NoError(t, g.LoadTemplate(tmpl))
	assert.True(t, g.Settings().IsSingleFileMode)
	assert.Equal(t, "index.ts", g.Settings().SingleFileName)

	g = New()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codewriter.yaml"), []byte("partialRenderingMode: sideways\n"), 0o644))
	assert.ErrorIs(t, g.LoadTemplate(tmpl), config.ErrInvalidSettings)
}

func TestOutputFilenameFactory(t *testing.T) {
	dir, src, tmpl := workspace(t, classTemplate)
	s := plainSettings()
	s.OutputFilenameFactory = func(root config.NamedRoot) string {
		return "gen/" + root.Name() + ".g.ts"
	}
	g := New(WithSettings(s))
	require.NoError(t, g.LoadTemplate(tmpl))

	_, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gen", "models.cs.g.ts"))
}

func TestGenerateFromGoPackage(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "shop.tst")
	require.NoError(t, os.WriteFile(tmpl, []byte("$Classes(User)[export interface $Name {\n$Properties[  $name: $Type;][\n]\n}]"), 0o644))

	g := New(WithSettings(plainSettings()))
	require.NoError(t, g.LoadTemplate(tmpl))

	report, err := g.Generate(context.Background(), PackageSource{Dir: "../parser/testdata/shop"})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "models.ts")}, report.Written)

	out := readFile(t, filepath.Join(dir, "models.ts"))
	assert.Contains(t, out, "export interface User {\n  id: string;")
	assert.Contains(t, out, "  updatedAt: Date | null;")
}

func TestGenerateSourceError(t *testing.T) {
	_, _, tmpl := workspace(t, classTemplate)
	g := New(WithSettings(plainSettings()))
	require.NoError(t, g.LoadTemplate(tmpl))

	_, err := g.Generate(context.Background(), SnapshotSource{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "missing.yaml")
}

func TestResolveSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "facts.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("package a\n"), 0o644))
	}
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	sources, err := ResolveSources([]string{
		filepath.Join(dir, "a.go"),
		sub,
		filepath.Join(dir, "b.go"),
		filepath.Join(dir, "facts.json"),
	}, nil)
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, []string{filepath.Join(dir, "a.go"), filepath.Join(dir, "b.go")}, sources[0].Paths())
	assert.IsType(t, PackageSource{}, sources[1])
	assert.IsType(t, SnapshotSource{}, sources[2])

	_, err = ResolveSources([]string{filepath.Join(dir, "nope")}, nil)
	assert.Error(t, err)
	_, err = ResolveSources(nil, nil)
	assert.ErrorContains(t, err, "no inputs")
}

func TestOverridesSurviveReload(t *testing.T) {
	dir, src, tmpl := workspace(t, classTemplate)
	require.NoError(t, os.WriteFile(tmpl+".yaml", []byte("outputExtension: .d.ts\n"), 0o644))

	g := New(WithOverride(func(s *config.Settings) {
		s.Utf8BomGeneration = false
		s.OutputExtension = ".gen.ts"
	}))
	for i := 0; i < 2; i++ {
		require.NoError(t, g.LoadTemplate(tmpl))
		assert.Equal(t, ".gen.ts", g.Settings().OutputExtension)
	}

	_, err := g.Generate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "export class User {}", readFile(t, filepath.Join(dir, "models.gen.ts")))
}
