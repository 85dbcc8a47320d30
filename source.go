package mibparse

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultExtensions are the file name extensions tried when resolving
// a module name to a file. The empty entry matches bare file names
// such as "IF-MIB".
var DefaultExtensions = []string{"", ".mib", ".smi", ".txt", ".my"}

// Source locates MIB source text by module name. The loader consults
// its sources in registration order, then the bundled base modules.
// A source answers fs.ErrNotExist for modules it does not know.
type Source interface {
	// Locate opens the named module and returns its content reader
	// together with the path shown in diagnostics.
	Locate(name string) (io.ReadCloser, string, error)
}

// SourceOption configures a source constructor.
type SourceOption func(*sourceSettings)

type sourceSettings struct {
	exts []string
}

func applySourceOptions(opts []SourceOption) sourceSettings {
	s := sourceSettings{exts: DefaultExtensions}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithExtensions replaces the extension list a source recognizes.
func WithExtensions(exts ...string) SourceOption {
	return func(s *sourceSettings) {
		s.exts = exts
	}
}

// extMatches reports whether the file name carries one of the
// recognized extensions, ignoring case.
func extMatches(exts []string, name string) bool {
	got := path.Ext(name)
	for _, want := range exts {
		if strings.EqualFold(got, want) {
			return true
		}
	}
	return false
}

// --- flat directory, resolved by probing ---

// dirProbe serves a single directory by trying name+extension on
// every lookup. Nothing is cached, so files dropped into the
// directory become visible immediately.
type dirProbe struct {
	dir  string
	exts []string
}

// Dir returns a Source over one directory, without recursion.
func Dir(dir string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("MIB source %s: not a directory", dir)
	}
	settings := applySourceOptions(opts)
	return &dirProbe{dir: dir, exts: settings.exts}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(dir string, opts ...SourceOption) Source {
	src, err := Dir(dir, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (d *dirProbe) Locate(name string) (io.ReadCloser, string, error) {
	for _, ext := range d.exts {
		candidate := filepath.Join(d.dir, name+ext)
		f, err := os.Open(candidate)
		switch {
		case err == nil:
			return f, candidate, nil
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return nil, candidate, err
		}
	}
	return nil, "", fs.ErrNotExist
}

// --- indexed filesystem, shared by DirTree and FS ---

// indexSource resolves module names through a name-to-path map built
// once, on first use, by walking an fs.FS. A directory tree and an
// embedded filesystem only differ in how diagnostics paths are
// printed.
type indexSource struct {
	fsys  fs.FS
	root  string // OS path of the tree, empty for virtual filesystems
	label string // diagnostics prefix for virtual filesystems
	exts  []string

	build  sync.Once
	byName map[string]string
	broken error
}

// DirTree returns a Source that indexes a directory tree recursively.
// The walk happens on first use; when two files share a module name
// the one found first is kept.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("MIB source %s: not a directory", root)
	}
	settings := applySourceOptions(opts)
	return &indexSource{fsys: os.DirFS(root), root: root, exts: settings.exts}, nil
}

// FS returns a Source over any fs.FS, such as an embed.FS. The label
// prefixes paths in diagnostics.
func FS(label string, fsys fs.FS, opts ...SourceOption) Source {
	settings := applySourceOptions(opts)
	return &indexSource{fsys: fsys, label: label, exts: settings.exts}
}

func (s *indexSource) Locate(name string) (io.ReadCloser, string, error) {
	s.build.Do(s.buildIndex)
	if s.broken != nil {
		return nil, "", s.broken
	}
	rel, ok := s.byName[name]
	if !ok {
		return nil, "", fs.ErrNotExist
	}
	f, err := s.fsys.Open(rel)
	if err != nil {
		return nil, s.describe(rel), err
	}
	return f, s.describe(rel), nil
}

// buildIndex walks the filesystem once, mapping each recognized file
// to the module name implied by its base name.
func (s *indexSource) buildIndex() {
	s.byName = make(map[string]string)
	s.broken = fs.WalkDir(s.fsys, ".", func(rel string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		if !extMatches(s.exts, rel) {
			return nil
		}
		base := path.Base(rel)
		name := strings.TrimSuffix(base, path.Ext(base))
		if _, taken := s.byName[name]; !taken {
			s.byName[name] = rel
		}
		return nil
	})
}

func (s *indexSource) describe(rel string) string {
	if s.root != "" {
		return filepath.Join(s.root, rel)
	}
	return s.label + ":" + rel
}

// --- source chaining ---

// chain consults sources in order until one knows the module.
type chain []Source

// Multi combines sources into one; earlier sources shadow later ones.
func Multi(sources ...Source) Source {
	return chain(sources)
}

func (c chain) Locate(name string) (io.ReadCloser, string, error) {
	for _, src := range c {
		r, where, err := src.Locate(name)
		if err == nil {
			return r, where, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, where, err
		}
	}
	return nil, "", fs.ErrNotExist
}
