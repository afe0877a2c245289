package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"codeberg.org/policydesk/server/internal/logger"
)

// discovers all PDF files under dataPath and extracts their text page by page
// returns pages and a slice of errors encountered (one per failed file or page)
func LoadDirectory(dataPath string) ([]Page, []error) {
	var allPages []Page
	var errors []error
	fileCount := 0

	// walk the directory tree to find all PDF files
	walkErr := filepath.Walk(dataPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("error accessing path",
				"path", path,
				"error", err,
			)
			errors = append(errors, fmt.Errorf("path %s: %w", path, err))
			return nil // continue walking
		}

		if info.IsDir() {
			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != ".pdf" {
			return nil
		}

		fileCount++

		source, err := filepath.Rel(dataPath, path)
		if err != nil {
			source = filepath.Base(path)
		}

		pages, pageErrs := LoadFile(path, source)
		errors = append(errors, pageErrs...)
		allPages = append(allPages, pages...)

		return nil
	})

	if walkErr != nil {
		errors = append(errors, fmt.Errorf("walk error: %w", walkErr))
	}

	logger.Info("processed PDF files",
		"file_count", fileCount,
		"pages_extracted", len(allPages),
		"errors", len(errors),
	)

	return allPages, errors
}

// extracts per-page text from a single PDF file
// pages that fail extraction are skipped and reported as errors
func LoadFile(path, source string) ([]Page, []error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, []error{fmt.Errorf("open %s: %w", path, err)}
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		return nil, []error{fmt.Errorf("stat %s: %w", path, err)}
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return nil, []error{fmt.Errorf("read pdf %s: %w", path, err)}
	}

	var pages []Page
	var errors []error

	pageCount := reader.NumPage()

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("failed to extract text from page",
				"path", path,
				"page", i,
				"error", err,
			)
			errors = append(errors, fmt.Errorf("extract %s page %d: %w", path, i, err))
			continue
		}

		text = CleanText(text)
		if text == "" {
			continue // scanned or image-only page
		}

		pages = append(pages, Page{
			Source:     source,
			PageNumber: i,
			Text:       text,
		})
	}

	return pages, errors
}
