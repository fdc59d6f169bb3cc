package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"confstats/internal/config"
)

// Export builds an EasyChair export archive for tests. Rows are laid out
// the way EasyChair writes them: review.csv carries the submission in
// column 1, the reviewer in column 3 and the score text in column 7;
// submission_field_value.csv carries the submission in column 0, the field
// name in column 2 and its value in column 3.
type Export struct {
	reviews     [][]string
	fieldValues [][]string
	resources   map[string]string
	omitted     map[string]bool
}

// NewExport starts an empty export with both resources present
func NewExport() *Export {
	return &Export{
		resources: make(map[string]string),
		omitted:   make(map[string]bool),
	}
}

// Review adds a review with the usual two-line score text
func (e *Export) Review(submission int, reviewer string, score, confidence int) *Export {
	text := fmt.Sprintf("overall evaluation: %d\nreviewer's confidence: %d", score, confidence)
	return e.ReviewText(submission, reviewer, text)
}

// ReviewText adds a review with arbitrary score text
func (e *Export) ReviewText(submission int, reviewer, text string) *Export {
	id := strconv.Itoa(len(e.reviews) + 1)
	e.reviews = append(e.reviews, []string{
		id, strconv.Itoa(submission), "1", reviewer, "", "2021-04-01", "2021-04-10", text, "",
	})
	return e
}

// Topics adds the topic field of a submission
func (e *Export) Topics(submission int, topics string) *Export {
	return e.FieldValue(submission, config.DefaultTopicsMarker, topics)
}

// FieldValue adds an arbitrary submission field
func (e *Export) FieldValue(submission int, field, value string) *Export {
	e.fieldValues = append(e.fieldValues, []string{strconv.Itoa(submission), field, field, value})
	return e
}

// Resource replaces the content of a resource verbatim
func (e *Export) Resource(name, content string) *Export {
	e.resources[name] = content
	return e
}

// Without leaves a resource out of the archive
func (e *Export) Without(name string) *Export {
	e.omitted[name] = true
	return e
}

// Write saves the archive in a fresh temp directory and returns its path
func (e *Export) Write(t *testing.T) string {
	t.Helper()
	return e.WriteTo(t, filepath.Join(t.TempDir(), "conference.zip"))
}

// WriteTo saves the archive at path
func (e *Export) WriteTo(t *testing.T, path string) string {
	t.Helper()

	content := map[string]string{
		config.DefaultReviewsResource:     encodeCSV(t, e.reviews),
		config.DefaultFieldValuesResource: encodeCSV(t, e.fieldValues),
	}
	for name, c := range e.resources {
		content[name] = c
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	for name, c := range content {
		if e.omitted[name] {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create resource %s: %v", name, err)
		}
		if _, err := w.Write([]byte(c)); err != nil {
			t.Fatalf("write resource %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return path
}

func encodeCSV(t *testing.T, rows [][]string) string {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("encode csv: %v", err)
	}
	return buf.String()
}
