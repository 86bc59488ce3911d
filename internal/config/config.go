// Package config holds the per-render Settings shared by the code model,
// the template interpreter and the generator.
package config

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// ErrInvalidSettings is returned by Validate and Load for settings that
// cannot drive a render.
var ErrInvalidSettings = errors.New("invalid settings")

// PartialRenderingMode controls how multi-fragment type declarations are
// rendered.
type PartialRenderingMode string

const (
	// Partial renders only the members declared in the file under render.
	Partial PartialRenderingMode = "Partial"
	// Combined merges all fragments of a type.
	Combined PartialRenderingMode = "Combined"
)

// NamedRoot is the part of a rendered root an output file name can be
// derived from.
type NamedRoot interface {
	Name() string
	FullName() string
}

// Projects records which projects a caller should fetch facts from. The
// code model never reads it.
type Projects struct {
	Current    bool
	Referenced bool
	All        bool
	Names      []string
}

// Settings configures one render request.
type Settings struct {
	OutputExtension                   string
	OutputFilenameFactory             func(NamedRoot) string
	PartialRenderingMode              PartialRenderingMode
	OutputDirectory                   string
	SkipAddingGeneratedFilesToProject bool
	IsSingleFileMode                  bool
	SingleFileName                    string
	StringLiteralCharacter            rune
	StrictNullGeneration              bool
	Utf8BomGeneration                 bool

	// TypeMappings maps a type's full name to a target name. It is consulted
	// before the built-in primitive table.
	TypeMappings map[string]string

	Projects Projects
}

// New creates Settings with default values.
func New() *Settings {
	return &Settings{
		OutputExtension:        DefaultOutputExtension,
		PartialRenderingMode:   Partial,
		StringLiteralCharacter: '"',
		StrictNullGeneration:   true,
		Utf8BomGeneration:      true,
		TypeMappings:           DefaultTypeMappings(),
		Projects:               Projects{Current: true},
	}
}

// SingleFileMode renders every root into one output file with the given name.
func (s *Settings) SingleFileMode(name string) *Settings {
	s.IsSingleFileMode = true
	s.SingleFileName = name
	return s
}

// IncludeCurrentProject includes the project that contains the template.
func (s *Settings) IncludeCurrentProject() *Settings {
	s.Projects.Current = true
	return s
}

// IncludeReferencedProjects includes projects referenced by the current one.
func (s *Settings) IncludeReferencedProjects() *Settings {
	s.Projects.Referenced = true
	return s
}

// IncludeAllProjects includes every project in the workspace.
func (s *Settings) IncludeAllProjects() *Settings {
	s.Projects.All = true
	return s
}

// IncludeProject includes a project by name. Repeated names are ignored.
func (s *Settings) IncludeProject(name string) *Settings {
	for _, n := range s.Projects.Names {
		if strings.EqualFold(n, name) {
			return s
		}
	}
	s.Projects.Names = append(s.Projects.Names, name)
	return s
}

// MapType returns the configured target name for a type's full name.
// Lookups ignore case, since settings files lose key case on load.
func (s *Settings) MapType(fullName string) (string, bool) {
	if len(s.TypeMappings) == 0 {
		return "", false
	}
	if mapped, ok := s.TypeMappings[fullName]; ok {
		return mapped, true
	}
	for k, v := range s.TypeMappings {
		if strings.EqualFold(k, fullName) {
			return v, true
		}
	}
	return "", false
}

// Validate checks the settings for values no render can honour.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.OutputExtension) == "" && s.OutputFilenameFactory == nil && !s.IsSingleFileMode {
		return errors.Wrap(ErrInvalidSettings, "outputExtension must not be empty")
	}
	switch s.StringLiteralCharacter {
	case '"', '\'', '`':
	default:
		return errors.Wrapf(ErrInvalidSettings, "stringLiteralCharacter must be one of \" ' `, got %q", s.StringLiteralCharacter)
	}
	switch s.PartialRenderingMode {
	case Partial, Combined:
	default:
		return errors.Wrapf(ErrInvalidSettings, "unknown partialRenderingMode %q", s.PartialRenderingMode)
	}
	if s.IsSingleFileMode && strings.TrimSpace(s.SingleFileName) == "" {
		return errors.Wrap(ErrInvalidSettings, "single file mode needs a file name")
	}
	return nil
}

// fileSettings is the on-disk shape of Settings.
type fileSettings struct {
	OutputExtension                   string            `mapstructure:"outputExtension"`
	OutputDirectory                   string            `mapstructure:"outputDirectory"`
	PartialRenderingMode              string            `mapstructure:"partialRenderingMode"`
	SingleFile                        string            `mapstructure:"singleFile"`
	StringLiteralCharacter            string            `mapstructure:"stringLiteralCharacter"`
	StrictNullGeneration              bool              `mapstructure:"strictNullGeneration"`
	Utf8BomGeneration                 bool              `mapstructure:"utf8BomGeneration"`
	SkipAddingGeneratedFilesToProject bool              `mapstructure:"skipAddingGeneratedFilesToProject"`
	TypeMappings                      map[string]string `mapstructure:"typeMappings"`
	IncludeCurrentProject             bool              `mapstructure:"includeCurrentProject"`
	IncludeReferencedProjects         bool              `mapstructure:"includeReferencedProjects"`
	IncludeAllProjects                bool              `mapstructure:"includeAllProjects"`
	IncludeProjects                   []string          `mapstructure:"includeProjects"`
}

// Load reads settings from a YAML, JSON or TOML file. An empty path loads
// defaults. CODEWRITER_* environment variables override file values, e.g.
// CODEWRITER_OUTPUTEXTENSION=.d.ts.
func Load(path string) (*Settings, error) {
	// "::" keeps dotted type names in typeMappings from becoming nested keys
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	// Set defaults
	d := New()
	v.SetDefault("outputExtension", d.OutputExtension)
	v.SetDefault("outputDirectory", "")
	v.SetDefault("partialRenderingMode", string(d.PartialRenderingMode))
	v.SetDefault("singleFile", "")
	v.SetDefault("stringLiteralCharacter", string(d.StringLiteralCharacter))
	v.SetDefault("strictNullGeneration", d.StrictNullGeneration)
	v.SetDefault("utf8BomGeneration", d.Utf8BomGeneration)
	v.SetDefault("skipAddingGeneratedFilesToProject", false)
	v.SetDefault("includeCurrentProject", true)
	v.SetDefault("includeReferencedProjects", false)
	v.SetDefault("includeAllProjects", false)

	// Enable environment variable support
	v.SetEnvPrefix("CODEWRITER")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading settings file %s", path)
		}
	}

	var fs fileSettings
	if err := v.Unmarshal(&fs); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}

	s, err := fs.settings()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// settings converts the decoded file shape into Settings, merging type
// mappings over the defaults.
func (fs *fileSettings) settings() (*Settings, error) {
	s := New()
	s.OutputExtension = fs.OutputExtension
	s.OutputDirectory = fs.OutputDirectory
	s.StrictNullGeneration = fs.StrictNullGeneration
	s.Utf8BomGeneration = fs.Utf8BomGeneration
	s.SkipAddingGeneratedFilesToProject = fs.SkipAddingGeneratedFilesToProject

	mode, err := ParsePartialRenderingMode(fs.PartialRenderingMode)
	if err != nil {
		return nil, err
	}
	s.PartialRenderingMode = mode

	if utf8.RuneCountInString(fs.StringLiteralCharacter) != 1 {
		return nil, errors.Wrapf(ErrInvalidSettings, "stringLiteralCharacter must be a single character, got %q", fs.StringLiteralCharacter)
	}
	s.StringLiteralCharacter, _ = utf8.DecodeRuneInString(fs.StringLiteralCharacter)

	if fs.SingleFile != "" {
		s.SingleFileMode(fs.SingleFile)
	}

	// Loaded mappings override defaults. Keys arrive lower-cased, so a
	// default is replaced whatever its case.
	for k, v := range fs.TypeMappings {
		for existing := range s.TypeMappings {
			if strings.EqualFold(existing, k) {
				delete(s.TypeMappings, existing)
			}
		}
		s.TypeMappings[k] = v
	}

	s.Projects.Current = fs.IncludeCurrentProject
	if fs.IncludeReferencedProjects {
		s.IncludeReferencedProjects()
	}
	if fs.IncludeAllProjects {
		s.IncludeAllProjects()
	}
	for _, name := range fs.IncludeProjects {
		s.IncludeProject(name)
	}
	return s, nil
}

// ParsePartialRenderingMode parses a mode name, ignoring case. An empty name
// yields Partial.
func ParsePartialRenderingMode(name string) (PartialRenderingMode, error) {
	switch {
	case name == "":
		return Partial, nil
	case strings.EqualFold(name, string(Partial)):
		return Partial, nil
	case strings.EqualFold(name, string(Combined)):
		return Combined, nil
	}
	return "", errors.Wrapf(ErrInvalidSettings, "unknown partialRenderingMode %q", name)
}
