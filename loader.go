// Package mibparse loads and resolves SNMP MIB modules written in the
// ASN.1 subset of SMIv1 and SMIv2. It is built on a general-purpose
// parsing runtime: a streaming character buffer (text), a small regex
// engine (regex), and an LL(k) tokenizer/parser pair (parse). The mib
// package holds the resolved model; this package orchestrates
// locating, parsing and the two-pass linking of modules.
package mibparse

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golangsnmp/mibparse/internal/asn1"
	"github.com/golangsnmp/mibparse/internal/logging"
	"github.com/golangsnmp/mibparse/mib"
	"github.com/golangsnmp/mibparse/parse"
)

//go:embed base
var baseModules embed.FS

// ErrNotFound is wrapped by Load when no source provides the module.
var ErrNotFound = fmt.Errorf("MIB not found")

// LoadError aggregates the parse and semantic errors of a load
// operation. The log keeps every error of the failed pass.
type LoadError struct {
	Log *parse.ErrorLog
}

func (e *LoadError) Error() string {
	return e.Log.Error()
}

// Unwrap exposes the underlying log.
func (e *LoadError) Unwrap() error {
	return e.Log
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger for debug/trace output. If not set, no
// logging occurs.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.slogger = logger }
}

// WithSource appends a MIB search source.
func WithSource(src Source) LoaderOption {
	return func(l *Loader) { l.sources = append(l.sources, src) }
}

// WithoutBundledModules disables the embedded base modules
// (RFC1155-SMI, RFC-1212, RFC-1215, SNMPv2-SMI, SNMPv2-TC,
// SNMPv2-CONF).
func WithoutBundledModules() LoaderOption {
	return func(l *Loader) { l.bundled = nil }
}

// Loader loads MIB modules: it locates sources, parses them through
// the ASN.1 grammar, recursively loads imported modules, and runs the
// Initialize and Validate passes over each newly loaded set. Loaded
// modules are registered for the lifetime of the loader; loading the
// same module twice returns the same instance without re-parsing.
//
// A Loader is not safe for concurrent use.
type Loader struct {
	sources []Source
	bundled Source
	roots   *mib.RootSet
	mibs    map[string]*mib.Mib
	order   []*mib.Mib // load order
	pending []*mib.Mib // parsed but not yet linked
	loading map[string]bool
	slogger *slog.Logger
	logging.Sink
}

// NewLoader returns a loader with the bundled base modules available
// as a final fallback source.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		bundled: FS("bundled", baseModules, WithExtensions(".mib")),
		roots:   mib.NewRootSet(),
		mibs:    make(map[string]*mib.Mib),
		loading: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Sink = logging.Sink{Out: l.slogger}
	return l
}

// AddSource appends a MIB search source.
func (l *Loader) AddSource(src Source) {
	l.sources = append(l.sources, src)
}

// AddDir appends a directory source; missing directories are ignored.
func (l *Loader) AddDir(path string) {
	if src, err := Dir(path); err == nil {
		l.sources = append(l.sources, src)
	}
}

// LookupMib returns the loaded module with the given name, or nil.
// It implements mib.Registry.
func (l *Loader) LookupMib(name string) *mib.Mib {
	return l.mibs[name]
}

// Roots returns the loader's well-known OID roots. It implements
// mib.Registry.
func (l *Loader) Roots() *mib.RootSet {
	return l.roots
}

// All returns the loaded modules in load order.
func (l *Loader) All() []*mib.Mib {
	return l.order
}

// Load loads a MIB module by symbolic name or file path, together
// with all modules it imports, and links the newly loaded set.
// Loading an already loaded module returns the same instance.
func (l *Loader) Load(name string) (*mib.Mib, error) {
	m, err := l.loadModule(name, true)
	if err != nil {
		return nil, err
	}
	if err := l.linkPending(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadReader loads a module from an explicit reader. The name is used
// for registration until the declared module name is known.
func (l *Loader) LoadReader(r io.Reader, name string) (*mib.Mib, error) {
	if m, ok := l.mibs[name]; ok {
		return m, nil
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, perr := l.parseModule(content, name, name, true)
	if perr != nil {
		return nil, perr
	}
	if err := l.loadImports(m); err != nil {
		return nil, err
	}
	if err := l.linkPending(); err != nil {
		return nil, err
	}
	return m, nil
}

// Unload removes a loaded module, refusing while other loaded modules
// still import it. The module's OID nodes are detached.
func (l *Loader) Unload(name string) error {
	m, ok := l.mibs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	for _, other := range l.order {
		if other == m {
			continue
		}
		for _, imp := range other.Imports() {
			if imp.Mib() == m {
				return fmt.Errorf("cannot unload %s: still imported by %s", name, other.Name())
			}
		}
	}
	m.Clear()
	for key, mm := range l.mibs {
		if mm == m {
			delete(l.mibs, key)
		}
	}
	for i, mm := range l.order {
		if mm == m {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// Reset unloads every module in reverse load order.
func (l *Loader) Reset() {
	for i := len(l.order) - 1; i >= 0; i-- {
		l.order[i].Clear()
	}
	l.order = nil
	l.pending = nil
	l.mibs = make(map[string]*mib.Mib)
	l.roots = mib.NewRootSet()
}

// loadModule locates, parses and registers one module plus its
// imports, without linking.
func (l *Loader) loadModule(name string, explicit bool) (*mib.Mib, error) {
	if m, ok := l.mibs[name]; ok {
		if explicit {
			m.SetLoaded(true)
		}
		return m, nil
	}
	if l.loading[name] {
		return nil, nil // already being loaded further up the stack
	}
	l.loading[name] = true
	defer delete(l.loading, name)

	content, path, err := l.findContent(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if l.Active(slog.LevelDebug) {
		l.Emit(slog.LevelDebug, "loading module",
			slog.String("module", name), slog.String("path", path))
	}

	m, perr := l.parseModule(content, path, name, explicit)
	if perr != nil {
		return nil, perr
	}
	if err := l.loadImports(m); err != nil {
		return nil, err
	}
	return m, nil
}

// loadImports recursively loads the modules imported by m. A missing
// import is not fatal here; Initialize reports it as a semantic
// error.
func (l *Loader) loadImports(m *mib.Mib) error {
	for _, imp := range m.Imports() {
		if _, ok := l.mibs[imp.Module()]; ok {
			continue
		}
		if _, err := l.loadModule(imp.Module(), false); err != nil {
			if _, fatal := err.(*LoadError); fatal {
				return err
			}
			l.Emit(slog.LevelWarn, "imported module not found",
				slog.String("module", imp.Module()),
				slog.String("importer", m.Name()))
		}
	}
	return nil
}

// parseModule parses content into a registered module.
func (l *Loader) parseModule(content []byte, path, requested string, explicit bool) (*mib.Mib, error) {
	m := mib.NewMib(requested, l)
	m.SetFile(path)
	m.SetLoaded(explicit)
	m.SetHeaderComment(headerComment(content))
	m.SetFooterComment(footerComment(content))

	analyzer := asn1.NewMibAnalyzer(m)
	parser, err := asn1.NewParser(bytes.NewReader(content), analyzer,
		logging.Tagged(l.slogger, "parser"))
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(); err != nil {
		if log, ok := err.(*parse.ErrorLog); ok {
			log.SetFile(path)
			return nil, &LoadError{Log: log}
		}
		return nil, err
	}

	l.mibs[m.Name()] = m
	if requested != "" && requested != m.Name() {
		l.mibs[requested] = m
	}
	l.order = append(l.order, m)
	l.pending = append(l.pending, m)

	l.Emit(slog.LevelDebug, "module parsed",
		slog.String("module", m.Name()),
		slog.Int("symbols", len(m.Symbols())),
		slog.Int("imports", len(m.Imports())))
	return m, nil
}

// linkPending runs the Initialize pass over every newly parsed module
// in load order, then the Validate pass in the same order. Circular
// imports are fine: each pass sees the closed set.
func (l *Loader) linkPending() error {
	pending := l.pending
	l.pending = nil
	if len(pending) == 0 {
		return nil
	}

	log := parse.NewErrorLog()
	for _, m := range pending {
		m.Initialize(log)
	}
	for _, m := range pending {
		m.Validate(log)
	}

	l.Emit(slog.LevelDebug, "linking complete",
		slog.Int("modules", len(pending)),
		slog.Int("errors", log.Count()))

	if log.Err() != nil {
		return &LoadError{Log: log}
	}
	return nil
}

// findContent resolves a module name or path to file content, in
// order: explicit path, configured sources, bundled base modules.
func (l *Loader) findContent(name string) ([]byte, string, error) {
	if looksLikePath(name) {
		if content, err := os.ReadFile(name); err == nil {
			return content, name, nil
		}
	}
	sources := l.sources
	if l.bundled != nil {
		sources = append(append([]Source{}, l.sources...), l.bundled)
	}
	for _, src := range sources {
		r, path, err := src.Locate(name)
		if err != nil {
			continue
		}
		content, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, path, err
		}
		return content, path, nil
	}
	return nil, "", ErrNotFound
}

// looksLikePath reports whether the name should be tried as a file
// path before source lookup.
func looksLikePath(name string) bool {
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, ".") {
		return true
	}
	_, err := os.Stat(name)
	return err == nil
}

// headerComment extracts the comment block preceding the module
// definition, the way MIB files carry their copyright banner.
func headerComment(content []byte) string {
	var lines []string
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "--"):
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(trimmed, "--")))
		case trimmed == "":
			continue
		default:
			return strings.Join(lines, "\n")
		}
	}
	return strings.Join(lines, "\n")
}

// footerComment extracts the comment block after the final END.
func footerComment(content []byte) string {
	text := string(content)
	idx := strings.LastIndex(text, "\nEND")
	if idx < 0 {
		return ""
	}
	var lines []string
	for _, raw := range strings.Split(text[idx+len("\nEND"):], "\n") {
		trimmed := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if strings.HasPrefix(trimmed, "--") {
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(trimmed, "--")))
		}
	}
	return strings.Join(lines, "\n")
}
