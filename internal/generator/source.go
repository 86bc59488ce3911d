package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"codewriter/internal/metadata"
	"codewriter/internal/parser"
)

// Source produces the facts of the files a template renders against.
type Source interface {
	Load(ctx context.Context) (*metadata.Snapshot, error)
	// Paths lists the files and directories a change is noticed in.
	Paths() []string
}

// PackageSource parses the Go package in Dir.
type PackageSource struct {
	Dir    string
	Parser *parser.Parser
}

func (s PackageSource) Load(context.Context) (*metadata.Snapshot, error) {
	return s.parser().ParsePackage(s.Dir)
}

func (s PackageSource) Paths() []string { return []string{s.Dir} }

func (s PackageSource) parser() *parser.Parser {
	if s.Parser == nil {
		return parser.New()
	}
	return s.Parser
}

// FilesSource parses a fixed set of Go files of one package.
type FilesSource struct {
	Files  []string
	Parser *parser.Parser
}

func (s FilesSource) Load(context.Context) (*metadata.Snapshot, error) {
	p := s.Parser
	if p == nil {
		p = parser.New()
	}
	return p.ParseFiles(s.Files...)
}

func (s FilesSource) Paths() []string { return s.Files }

// SnapshotSource reads facts recorded in a YAML or JSON snapshot document.
type SnapshotSource struct {
	Path string
}

func (s SnapshotSource) Load(context.Context) (*metadata.Snapshot, error) {
	return metadata.LoadSnapshot(s.Path)
}

func (s SnapshotSource) Paths() []string { return []string{s.Path} }

// ResolveSources turns command line inputs into sources: directories are
// parsed as packages, .go files are grouped per directory and anything else
// is read as a snapshot.
func ResolveSources(inputs []string, p *parser.Parser) ([]Source, error) {
	var (
		sources []Source
		goFiles = make(map[string]int)
	)
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving input %s", in)
		}

		switch {
		case info.IsDir():
			sources = append(sources, PackageSource{Dir: in, Parser: p})
		case strings.EqualFold(filepath.Ext(in), ".go"):
			dir := filepath.Dir(in)
			if i, ok := goFiles[dir]; ok {
				fs := sources[i].(FilesSource)
				fs.Files = append(fs.Files, in)
				sources[i] = fs
				continue
			}
			goFiles[dir] = len(sources)
			sources = append(sources, FilesSource{Files: []string{in}, Parser: p})
		default:
			sources = append(sources, SnapshotSource{Path: in})
		}
	}
	if len(sources) == 0 {
		return nil, errors.New("no inputs given")
	}
	return sources, nil
}

// LoadSnapshots loads every source concurrently. Snapshots come back in
// source order.
func LoadSnapshots(ctx context.Context, sources []Source) ([]*metadata.Snapshot, error) {
	snapshots := make([]*metadata.Snapshot, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			snap, err := src.Load(ctx)
			if err != nil {
				return errors.Wrapf(err, "loading %s", strings.Join(src.Paths(), ", "))
			}
			snapshots[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func loadFacts(ctx context.Context, sources []Source) ([]metadata.FileFacts, error) {
	snapshots, err := LoadSnapshots(ctx, sources)
	if err != nil {
		return nil, err
	}
	var facts []metadata.FileFacts
	for _, snap := range snapshots {
		facts = append(facts, snap.Files()...)
	}
	return facts, nil
}
