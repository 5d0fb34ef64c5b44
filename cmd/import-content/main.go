// Package main converts gem content from external formats into per-gem YAML
// content files.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cory-johannsen/arpg/internal/importer"
	"github.com/cory-johannsen/arpg/internal/importer/legacy"
)

func main() {
	format := flag.String("format", "", "source format: legacy")
	sourcePath := flag.String("source", "", "path to the source gem export")
	outputDir := flag.String("output", "", "path to the output gem content directory")
	flag.Parse()

	if *format == "" || *sourcePath == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-content -format <fmt> -source <file> -output <dir>")
		os.Exit(1)
	}

	var src importer.Source
	switch *format {
	case "legacy":
		src = legacy.NewSource()
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (supported: legacy)\n", *format)
		os.Exit(1)
	}

	start := time.Now()
	imp := importer.New(src)
	if err := imp.Run(*sourcePath, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}
