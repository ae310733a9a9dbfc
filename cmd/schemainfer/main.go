// Command schemainfer is the CLI front end wiring CSV/RDF ingestion to the
// graph output contract (spec §6), the way the teacher's cmd/orchestrator
// and cmd/worker wire subsystems into a thin main package.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mimir-aip/semantic-schema-infer/internal/config"
	"github.com/mimir-aip/semantic-schema-infer/internal/log"
	"github.com/mimir-aip/semantic-schema-infer/pkg/csvsource"
	"github.com/mimir-aip/semantic-schema-infer/pkg/graph"
	"github.com/mimir-aip/semantic-schema-infer/pkg/rdfsource"
	"github.com/mimir-aip/semantic-schema-infer/pkg/registry"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "csv":
		runCSV(os.Args[2:])
	case "rdf":
		runRDF(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: schemainfer csv --file <path> [--no-header] [--dump]")
	fmt.Fprintln(os.Stderr, "       schemainfer rdf --file <path> [--sample 1.0] [--dump]")
}

func runCSV(args []string) {
	fs := flag.NewFlagSet("csv", flag.ExitOnError)
	file := fs.String("file", "", "CSV file path")
	noHeader := fs.Bool("no-header", false, "treat the first row as data, not headers")
	configPath := fs.String("config", "", "YAML config override path")
	dump := fs.Bool("dump", false, "print a Graphviz DOT dump of the inferred graph")
	fs.Parse(args)

	if *file == "" {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	fatalOn(err)

	logger := log.Default()
	g, err := csvsource.Load(*file, csvsource.Options{HasHeader: !*noHeader}, cfg, logger)
	fatalOn(err)

	report(g, *dump)
}

func runRDF(args []string) {
	fs := flag.NewFlagSet("rdf", flag.ExitOnError)
	file := fs.String("file", "", "JSON-encoded statement stream path")
	sample := fs.Float64("sample", 1.0, "fraction of data statements to route")
	configPath := fs.String("config", "", "YAML config override path")
	dump := fs.Bool("dump", false, "print a Graphviz DOT dump of the inferred graph")
	fs.Parse(args)

	if *file == "" {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	fatalOn(err)

	portion := cfg.SamplePortion
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "sample" {
			portion = *sample
		}
	})

	data, err := os.ReadFile(*file)
	fatalOn(err)

	var statements []rdfsource.Statement
	fatalOn(json.Unmarshal(data, &statements))

	logger := log.Default()
	reg := registry.New(cfg, logger)
	router := rdfsource.New(reg, logger)
	fatalOn(router.Ingest(statements, portion))

	g := reg.Finalize()
	report(g, *dump)
}

func report(g *graph.Graph, dump bool) {
	if dump {
		fmt.Print(graph.DOT(g))
		return
	}
	for _, n := range g.Nodes() {
		fmt.Printf("%s\t%s\n", n.ID, n.Column.Kind)
	}
	for _, e := range g.Edges() {
		fmt.Printf("%s -[%s]-> %s\n", e.Source, e.Key, e.Target)
	}
}

func fatalOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "schemainfer:", err)
		os.Exit(1)
	}
}
