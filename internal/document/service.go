package document

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripvault/trip-vault/internal/classify"
	"github.com/tripvault/trip-vault/internal/scanning"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service runs the ingestion pipeline: discover PDFs, extract text,
// classify, extract metadata, persist, then fold everything into the
// trip summary. Files are processed one at a time; a single file's
// failure never aborts the run.
type Service struct {
	db         DB
	extractor  scanning.TextExtractor
	storage    Storage
	timeSource TimeSource
}

// NewService creates a new Service with the default time source
func NewService(db DB, extractor scanning.TextExtractor, storage Storage) *Service {
	return &Service{
		db:         db,
		extractor:  extractor,
		storage:    storage,
		timeSource: &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, extractor scanning.TextExtractor, storage Storage, timeSrc TimeSource) *Service {
	return &Service{
		db:         db,
		extractor:  extractor,
		storage:    storage,
		timeSource: timeSrc,
	}
}

// RunReport summarizes one ingestion run.
type RunReport struct {
	Found     int
	Processed int
	Counts    map[classify.Category]int
	Summary   *TripSummary
}

// Ingest uploads and classifies every PDF under folder incrementally.
// Records are upserted by storage path, so repeated runs replace rather
// than duplicate.
func (s *Service) Ingest(folder string) (*RunReport, error) {
	return s.run(folder, false)
}

// Reclassify wipes all stored documents and blobs, then re-ingests the
// folder from scratch using each file's parent directory name as an
// authoritative category hint. This lets an improved rule set fix
// previously misclassified documents.
func (s *Service) Reclassify(folder string) (*RunReport, error) {
	return s.run(folder, true)
}

func (s *Service) run(folder string, reclassify bool) (*RunReport, error) {
	files, err := collectPDFs(folder)
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}
	slog.Info("Found documents", "folder", folder, "count", len(files))

	if reclassify {
		// The wipe must fully succeed before any re-upload starts, or a
		// partial run would leave duplicate or orphaned records.
		if err := s.clearAll(); err != nil {
			return nil, fmt.Errorf("clearing existing documents: %w", err)
		}
	}

	report := &RunReport{
		Found:  len(files),
		Counts: make(map[classify.Category]int),
	}

	var processed []*Document
	for _, path := range files {
		doc, err := s.processFile(path, reclassify)
		if err != nil {
			slog.Error("Skipping document", "filename", filepath.Base(path), "error", err)
			continue
		}
		processed = append(processed, doc)
		report.Counts[doc.Category]++

		date := doc.EventDate
		if date == "" {
			date = "no date"
		}
		slog.Info("Processed document",
			"filename", doc.Filename,
			"category", doc.Category,
			"date", date,
			"title", doc.Title,
		)
	}
	report.Processed = len(processed)

	summary := AggregateTrip(processed)
	summary.UpdatedAt = s.timeSource.Now()
	if err := s.db.SaveTripSummary(summary); err != nil {
		return nil, fmt.Errorf("saving trip summary: %w", err)
	}
	report.Summary = summary

	return report, nil
}

// processFile runs one file through the full extraction pipeline and
// persists the result. Text extraction failure degrades to empty text;
// persistence failure skips the file.
func (s *Service) processFile(path string, reclassify bool) (*Document, error) {
	filename := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		slog.Warn("Could not extract text, continuing with empty text",
			"filename", filename, "error", err)
		text = ""
	}

	folderHint := ""
	if reclassify {
		folderHint = filepath.Base(filepath.Dir(path))
	}

	category := classify.Classify(filename, text, folderHint)
	meta := classify.ExtractMetadata(text, category, filename)
	eventDate := classify.ExtractEventDate(text, filename)
	title := classify.GenerateTitle(filename, category, meta)

	storagePath := string(category) + "/" + SanitizeFilename(filename)
	if err := s.storage.Put(storagePath, data, "application/pdf"); err != nil {
		return nil, fmt.Errorf("uploading to storage: %w", err)
	}

	now := s.timeSource.Now()
	doc := &Document{
		ID:          uuid.NewString(),
		Filename:    filename,
		StoragePath: storagePath,
		Category:    category,
		Title:       title,
		RawText:     truncateText(text, rawTextLimit),
		Metadata:    meta,
		EventDate:   eventDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// First-class ingestion upserts by storage path; reclassify keys by
	// plain filename so a category change still replaces the old record.
	key := storagePath
	if reclassify {
		key = filename
	}
	if err := s.db.UpsertDocument(key, doc); err != nil {
		return nil, fmt.Errorf("saving document record: %w", err)
	}

	return doc, nil
}

// clearAll removes every stored record and blob. Any failure aborts the
// wipe so the caller never proceeds with a half-cleared store.
func (s *Service) clearAll() error {
	if err := s.db.DeleteAllDocuments(); err != nil {
		return fmt.Errorf("deleting document records: %w", err)
	}
	paths, err := s.storage.List("")
	if err != nil {
		return fmt.Errorf("listing stored files: %w", err)
	}
	if len(paths) == 0 {
		return nil
	}
	if err := s.storage.Delete(paths); err != nil {
		return fmt.Errorf("deleting stored files: %w", err)
	}
	return nil
}

// collectPDFs walks root recursively and returns every PDF path in
// lexical order, skipping dotfiles and hidden directories.
func collectPDFs(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
