package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MPZ-00/pdf-bank-extractor/internal/api"
	"github.com/MPZ-00/pdf-bank-extractor/internal/config"
	"github.com/MPZ-00/pdf-bank-extractor/internal/logger"
	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
	"github.com/MPZ-00/pdf-bank-extractor/internal/parser"
	"github.com/MPZ-00/pdf-bank-extractor/internal/pipeline"
	"github.com/MPZ-00/pdf-bank-extractor/internal/writer"
)

func main() {
	// CLI flags
	fileFlag := flag.String("file", "", "Single PDF file")
	dirFlag := flag.String("dir", "", "Folder with PDFs, searched recursively")
	outFlag := flag.String("out", "auszuege.csv", "Output file path")
	formatFlag := flag.String("format", "", "Output format: csv, markdown, xlsx (default from -out extension)")
	schemaFlag := flag.String("schema", "1", "Column schema version: 1 or 2")
	addFilenameFlag := flag.Bool("add-filename", false, "Include the source file name in the output")
	workersFlag := flag.Int("workers", 0, "Number of parallel workers (0 = WORKERS env or CPU count)")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	addrFlag := flag.String("addr", "", "API listen address (default from SERVER_HOST/SERVER_PORT)")
	quietFlag := flag.Bool("quiet", false, "Only log errors")
	debugFlag := flag.Bool("debug", false, "Log per-file details")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `PDF Bank Statement Extractor
by MPZ-00

Extracts transaction data from German bank statement PDFs into
semicolon-separated CSV, markdown, or Excel files.

Usage:
  pdf-bank-extractor -file <input.pdf> [flags]
  pdf-bank-extractor -dir <folder> [flags]
  pdf-bank-extractor -serve [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a single statement
  pdf-bank-extractor -file auszug.pdf

  # Convert a folder recursively into one CSV
  pdf-bank-extractor -dir ./auszuege -out alle.csv

  # Include the source file name and use the six-column layout
  pdf-bank-extractor -dir ./auszuege -add-filename -schema 2

  # Render a markdown table instead of CSV
  pdf-bank-extractor -file auszug.pdf -out auszug.md

  # Run the HTTP API
  pdf-bank-extractor -serve -addr :8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("pdf-bank-extractor v%s\n", api.Version)
		os.Exit(0)
	}

	cfg := config.Load()
	log := logger.New(logger.Level(*quietFlag, *debugFlag))

	if *serveFlag {
		addr := *addrFlag
		if addr == "" {
			addr = cfg.Server.Address()
		}
		log.Info().Str("addr", addr).Msg("starting API server")
		if err := api.NewApp(cfg, log).Listen(addr); err != nil {
			fatalf("Error: server failed: %v\n", err)
		}
		return
	}

	if (*fileFlag == "") == (*dirFlag == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -file or -dir is required.")
		flag.Usage()
		os.Exit(1)
	}

	schema, err := models.ParseSchema(*schemaFlag)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	format := writer.FormatForPath(*outFlag)
	if *formatFlag != "" {
		format, err = writer.ParseFormat(*formatFlag)
		if err != nil {
			fatalf("Error: %v\n", err)
		}
	}

	files, err := pipeline.CollectFiles(*fileFlag, *dirFlag)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	if len(files) == 0 {
		fatalf("Error: No valid PDF files found.\n")
	}

	if dir := filepath.Dir(*outFlag); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("Error: Cannot create output directory: %s\n", dir)
		}
	}

	workers := *workersFlag
	if workers <= 0 {
		workers = cfg.Convert.Workers
	}

	runner := pipeline.NewRunner(parser.New(schema), workers, cfg.Convert.OCREnabled, log)
	summary := runner.Run(context.Background(), files)

	w, err := writer.New(format, schema, *addFilenameFlag)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	if err := w.WriteToFile(*outFlag, summary.Documents()); err != nil {
		fatalf("Error: Cannot write to output file: %v\n", err)
	}

	fmt.Printf("Done. %d transactions from %d/%d file(s) → %s\n",
		summary.Transactions, summary.Succeeded, len(files), *outFlag)

	if failed := summary.FailedFiles(); len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "\nFailed to process %d file(s):\n", len(failed))
		for _, res := range failed {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", res.Path, res.Err)
		}
	}

	// A run that reconstructed nothing is a failure even when every
	// file opened cleanly.
	if summary.Transactions == 0 {
		os.Exit(1)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
