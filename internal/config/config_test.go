package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, ".ts", s.OutputExtension)
	assert.Equal(t, Partial, s.PartialRenderingMode)
	assert.Equal(t, '"', s.StringLiteralCharacter)
	assert.True(t, s.StrictNullGeneration)
	assert.True(t, s.Utf8BomGeneration)
	assert.False(t, s.IsSingleFileMode)
	assert.Nil(t, s.OutputFilenameFactory)
	assert.NoError(t, s.Validate())
}

func TestSingleFileMode(t *testing.T) {
	s := New().SingleFileMode("all.ts")
	assert.True(t, s.IsSingleFileMode)
	assert.Equal(t, "all.ts", s.SingleFileName)
}

func TestProjectInclusion(t *testing.T) {
	s := New().IncludeReferencedProjects().IncludeProject("Core").IncludeProject("core").IncludeProject("Web")
	assert.True(t, s.Projects.Current)
	assert.True(t, s.Projects.Referenced)
	assert.False(t, s.Projects.All)
	assert.Equal(t, []string{"Core", "Web"}, s.Projects.Names)
}

func TestMapType(t *testing.T) {
	s := New()
	s.TypeMappings["Shop.Money"] = "string"

	mapped, ok := s.MapType("Shop.Money")
	assert.True(t, ok)
	assert.Equal(t, "string", mapped)

	mapped, ok = s.MapType("shop.money")
	assert.True(t, ok)
	assert.Equal(t, "string", mapped)

	_, ok = s.MapType("System.Int32")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"empty extension", func(s *Settings) { s.OutputExtension = "" }},
		{"bad literal character", func(s *Settings) { s.StringLiteralCharacter = '#' }},
		{"unknown mode", func(s *Settings) { s.PartialRenderingMode = "Sometimes" }},
		{"single file without name", func(s *Settings) { s.IsSingleFileMode = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.modify(s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codewriter.yaml")
	content := `
outputExtension: .d.ts
partialRenderingMode: combined
stringLiteralCharacter: "'"
strictNullGeneration: false
utf8BomGeneration: false
singleFile: models.ts
typeMappings:
  Shop.Money: string
includeProjects:
  - Core
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".d.ts", s.OutputExtension)
	assert.Equal(t, Combined, s.PartialRenderingMode)
	assert.Equal(t, '\'', s.StringLiteralCharacter)
	assert.False(t, s.StrictNullGeneration)
	assert.False(t, s.Utf8BomGeneration)
	assert.True(t, s.IsSingleFileMode)
	assert.Equal(t, "models.ts", s.SingleFileName)
	assert.Equal(t, []string{"Core"}, s.Projects.Names)

	mapped, ok := s.MapType("Shop.Money")
	assert.True(t, ok)
	assert.Equal(t, "string", mapped)

	// defaults survive the merge
	_, ok = s.MapType("encoding/json.RawMessage")
	assert.True(t, ok)
}

func TestLoadOverridesDefaultMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codewriter.yaml")
	content := `
typeMappings:
  encoding/json.RawMessage: any
  NET.IP: number
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	mapped, ok := s.MapType("encoding/json.RawMessage")
	assert.True(t, ok)
	assert.Equal(t, "any", mapped)

	mapped, ok = s.MapType("net.IP")
	assert.True(t, ok)
	assert.Equal(t, "number", mapped)

	mapped, ok = s.MapType("net/url.URL")
	assert.True(t, ok)
	assert.Equal(t, "string", mapped, "untouched defaults stay")
	assert.Len(t, s.TypeMappings, len(DefaultTypeMappings()))
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".ts", s.OutputExtension)
	assert.True(t, s.StrictNullGeneration)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("CODEWRITER_OUTPUTEXTENSION", ".gen.ts")
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".gen.ts", s.OutputExtension)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stringLiteralCharacter: \"ab\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSettings))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParsePartialRenderingMode(t *testing.T) {
	mode, err := ParsePartialRenderingMode("")
	require.NoError(t, err)
	assert.Equal(t, Partial, mode)

	mode, err = ParsePartialRenderingMode("COMBINED")
	require.NoError(t, err)
	assert.Equal(t, Combined, mode)

	_, err = ParsePartialRenderingMode("other")
	assert.Error(t, err)
}
