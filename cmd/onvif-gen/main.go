package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	catalogPath := flag.String("catalog", "", "Path to the action catalog YAML")
	outputPath := flag.String("output", "", "Output path for the generated Go file")
	flag.Parse()

	if *catalogPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: onvif-gen -catalog <path> -output <path>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*catalogPath, *outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(catalogPath, outputPath string) error {
	catalog, err := LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	code, err := GenerateCatalog(catalog)
	if err != nil {
		return fmt.Errorf("generating catalog: %w", err)
	}

	if err := writeFormatted(outputPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(outputPath), err)
	}
	fmt.Printf("  generated %s\n", outputPath)

	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
