package i18n

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"hytalei18n/internal/ports/output"
	"hytalei18n/pkg/i18n"
	"hytalei18n/pkg/i18n/resource"
)

var (
	_ output.ResourceSource = (*FSSource)(nil)
	_ output.ResourceSource = (*GoI18nSource)(nil)
	_ output.ResourceSource = StaticSource{}
)

// FSSource loads lang files matching path patterns from a filesystem.
type FSSource struct {
	fsys     fs.FS
	label    string
	patterns []string
}

// NewFSSource returns a source reading patterns (e.g. "lang/%s.lang") from fsys.
func NewFSSource(fsys fs.FS, label string, patterns ...string) (*FSSource, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fs source: filesystem is required")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("fs source: no lang file patterns configured")
	}
	for _, p := range patterns {
		if _, err := resource.ParsePattern(p); err != nil {
			return nil, fmt.Errorf("fs source: %w", err)
		}
	}
	return &FSSource{fsys: fsys, label: label, patterns: append([]string(nil), patterns...)}, nil
}

// NewDirSource returns an FSSource rooted at dir on disk.
func NewDirSource(dir string, patterns ...string) (*FSSource, error) {
	return NewFSSource(os.DirFS(dir), dir, patterns...)
}

func (s *FSSource) Name() string { return "fs:" + s.label }

func (s *FSSource) Resources(_ context.Context) ([]i18n.Resource, error) {
	return resource.LoadPatterns(s.fsys, s.patterns...)
}

// GoI18nSource loads go-i18n message files (active.<lang>.toml and friends).
type GoI18nSource struct {
	fsys fs.FS
	glob string
}

// NewGoI18nSource returns a source reading go-i18n files matching glob in fsys.
func NewGoI18nSource(fsys fs.FS, glob string) *GoI18nSource {
	return &GoI18nSource{fsys: fsys, glob: glob}
}

func (s *GoI18nSource) Name() string { return "go-i18n:" + s.glob }

func (s *GoI18nSource) Resources(_ context.Context) ([]i18n.Resource, error) {
	return resource.LoadGoI18n(s.fsys, s.glob)
}

// StaticSource serves resources built in code, mostly for tests and defaults.
type StaticSource []i18n.Resource

func (StaticSource) Name() string { return "static" }

func (s StaticSource) Resources(_ context.Context) ([]i18n.Resource, error) {
	return append([]i18n.Resource(nil), s...), nil
}
