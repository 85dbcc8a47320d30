// Command mibparse loads MIB modules and prints their symbols or OID
// tree.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golangsnmp/mibparse"
	"github.com/golangsnmp/mibparse/internal/logging"
	"github.com/golangsnmp/mibparse/mib"
	"gopkg.in/yaml.v3"
)

const usage = `mibparse - MIB parser and browser

Usage:
  mibparse [options] MODULE...

Options:
  -p PATH    Add a MIB search directory (repeatable)
  -tree      Print the OID tree instead of the symbol list
  -yaml      Print the symbol list as YAML
  -v         Enable debug logging
  -vv        Enable trace logging
  -h         Show help

Examples:
  mibparse RFC1213-MIB
  mibparse -p /usr/share/snmp/mibs -tree IF-MIB
`

type pathList []string

func (p *pathList) String() string { return fmt.Sprint([]string(*p)) }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		paths   pathList
		tree    bool
		asYAML  bool
		verbose bool
		trace   bool
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Var(&paths, "p", "MIB search directory")
	flag.BoolVar(&tree, "tree", false, "print the OID tree")
	flag.BoolVar(&asYAML, "yaml", false, "print symbols as YAML")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.BoolVar(&trace, "vv", false, "trace logging")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return 1
	}

	var logger *slog.Logger
	if verbose || trace {
		level := slog.LevelDebug
		if trace {
			level = logging.TraceLevel
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	opts := []mibparse.LoaderOption{mibparse.WithLogger(logger)}
	for _, p := range paths {
		src, err := mibparse.Dir(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mibparse: %v\n", err)
			return 1
		}
		opts = append(opts, mibparse.WithSource(src))
	}

	loader := mibparse.NewLoader(opts...)
	status := 0
	for _, name := range flag.Args() {
		m, err := loader.Load(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mibparse: %v\n", err)
			status = 1
			continue
		}
		switch {
		case tree:
			printTree(m)
		case asYAML:
			printYAML(m)
		default:
			printSymbols(m)
		}
	}
	return status
}

func printSymbols(m *mib.Mib) {
	fmt.Printf("%s (SMIv%d)\n", m.Name(), m.SMIVersion())
	for _, sym := range m.Symbols() {
		switch s := sym.(type) {
		case *mib.ValueSymbol:
			if oid, ok := s.Value().(*mib.ObjectIdentifierValue); ok {
				fmt.Printf("  %-30s %s\n", s.Name(), oid)
			} else {
				fmt.Printf("  %-30s %v\n", s.Name(), s.Value())
			}
		case *mib.TypeSymbol:
			fmt.Printf("  %-30s %s\n", s.Name(), s.Type().Name())
		case *mib.MacroSymbol:
			fmt.Printf("  %-30s MACRO\n", s.Name())
		}
	}
}

func printTree(m *mib.Mib) {
	root := m.RootSymbol()
	if root == nil {
		fmt.Printf("%s: no OID tree\n", m.Name())
		return
	}
	oid, ok := root.Value().(*mib.ObjectIdentifierValue)
	if !ok {
		return
	}
	printNode(oid, 0)
}

func printNode(node *mib.ObjectIdentifierValue, depth int) {
	name := node.Name()
	if name == "" {
		name = "-"
	}
	fmt.Printf("%*s%s(%d)  %s\n", depth*2, "", name, node.ID(), node)
	for _, child := range node.Children() {
		printNode(child, depth+1)
	}
}

// symbolDoc is the YAML projection of a symbol.
type symbolDoc struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Type  string `yaml:"type,omitempty"`
	Value string `yaml:"value,omitempty"`
}

func printYAML(m *mib.Mib) {
	var docs []symbolDoc
	for _, sym := range m.Symbols() {
		switch s := sym.(type) {
		case *mib.ValueSymbol:
			doc := symbolDoc{Name: s.Name(), Kind: "value"}
			if s.Type() != nil {
				doc.Type = s.Type().Name()
			}
			if s.Value() != nil {
				doc.Value = s.Value().String()
			}
			docs = append(docs, doc)
		case *mib.TypeSymbol:
			docs = append(docs, symbolDoc{Name: s.Name(), Kind: "type", Type: s.Type().Name()})
		case *mib.MacroSymbol:
			docs = append(docs, symbolDoc{Name: s.Name(), Kind: "macro"})
		}
	}
	out, err := yaml.Marshal(map[string]any{"module": m.Name(), "symbols": docs})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mibparse: %v\n", err)
		return
	}
	os.Stdout.Write(out)
}
