package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/tripvault/trip-vault/internal/classify"
	"github.com/tripvault/trip-vault/internal/document"
	"github.com/tripvault/trip-vault/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: trip-vault <run|reclassify> --folder <path>")
	fmt.Fprintln(os.Stderr, "  run         upload and classify travel documents incrementally")
	fmt.Fprintln(os.Stderr, "  reclassify  wipe all stored documents and re-upload using folder hints")
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	mode := os.Args[1]
	if mode != "run" && mode != "reclassify" {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", mode)
		usage()
		os.Exit(1)
	}

	fs := ff.NewFlagSet("trip-vault " + mode)
	var (
		folder        = fs.StringLong("folder", "", "Folder containing travel document PDFs")
		dbPath        = fs.StringLong("db", "", "Database file path (or set TRIP_VAULT_DB)")
		storagePath   = fs.StringLong("storage", "", "Document storage directory (or set TRIP_VAULT_STORAGE)")
		extractorType = fs.StringLong("extractor", "fitz", "PDF text extractor: 'fitz' or 'pure'")
	)

	if err := ff.Parse(fs, os.Args[2:],
		ff.WithEnvVarPrefix("TRIP_VAULT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *folder == "" {
		fmt.Fprintf(os.Stderr, "error: --folder is required\n\n%s\n", ffhelp.Flags(fs))
		os.Exit(1)
	}
	if *dbPath == "" || *storagePath == "" {
		fmt.Fprintf(os.Stderr, "error: --db and --storage are required (or set TRIP_VAULT_DB and TRIP_VAULT_STORAGE)\n\n%s\n", ffhelp.Flags(fs))
		os.Exit(1)
	}

	slog.Info("Opening database...", "path", *dbPath)
	db, err := document.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var extractor scanning.TextExtractor
	switch *extractorType {
	case "fitz":
		extractor = scanning.NewFitz()
	case "pure":
		extractor = scanning.NewPlainText()
	default:
		slog.Error("Invalid extractor type", "type", *extractorType, "valid", "fitz or pure")
		os.Exit(1)
	}
	defer extractor.Close()

	slog.Info("Initializing storage...", "path", *storagePath)
	store, err := document.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	service := document.NewService(db, extractor, store)

	var report *document.RunReport
	switch mode {
	case "run":
		report, err = service.Ingest(*folder)
	case "reclassify":
		report, err = service.Reclassify(*folder)
	}
	if err != nil {
		slog.Error("Run failed", "mode", mode, "error", err)
		os.Exit(1)
	}

	printSummary(report)
}

func printSummary(report *document.RunReport) {
	for _, category := range classify.Categories {
		if count := report.Counts[category]; count > 0 {
			slog.Info("Category total", "category", category, "count", count)
		}
	}

	summary := report.Summary
	slog.Info("Trip summary saved",
		"trip", summary.TripName,
		"start", summary.StartDate,
		"end", summary.EndDate,
		"days", summary.DurationDays,
		"passengers", strings.Join(summary.Passengers, ", "),
	)
	slog.Info("Done", "success", fmt.Sprintf("%d/%d", report.Processed, report.Found))
}
