package easychair

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"confstats/internal/config"
	"confstats/internal/errors"
	"confstats/pkg/contracts/domain"
)

// Column positions in review.csv
const (
	reviewSubmissionColumn = 1
	reviewReviewerColumn   = 3
	reviewScoreColumn      = 7
)

// Column positions in submission_field_value.csv
const (
	fieldSubmissionColumn = 0
	fieldNameColumn       = 2
	fieldValueColumn      = 3
)

// Resources names the tabular resources inside an export archive
type Resources struct {
	Reviews     string
	FieldValues string
}

// DefaultResources returns the resource names EasyChair uses
func DefaultResources() Resources {
	return Resources{
		Reviews:     config.DefaultReviewsResource,
		FieldValues: config.DefaultFieldValuesResource,
	}
}

// ResourcesFromConfig returns the resource names configured for a conference
func ResourcesFromConfig(cfg config.ConferenceConfig) Resources {
	return Resources{
		Reviews:     cfg.ReviewsResource,
		FieldValues: cfg.FieldValuesResource,
	}
}

// Archive is an open, read-only EasyChair export
type Archive struct {
	path      string
	reader    *zip.ReadCloser
	modTime   time.Time
	resources Resources
	logger    *slog.Logger
}

// Open opens the export archive at path
func Open(path string, resources Resources, logger *slog.Logger) (*Archive, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewInputError("cannot access archive", err).WithContext("path", path)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.NewInputError("cannot read archive", err).WithContext("path", path)
	}

	logger.Debug("opened export archive",
		slog.String("path", path),
		slog.Int("entries", len(reader.File)),
		slog.Time("mod_time", info.ModTime()))

	return &Archive{
		path:      path,
		reader:    reader,
		modTime:   info.ModTime(),
		resources: resources,
		logger:    logger.With(slog.String("component", "easychair")),
	}, nil
}

// ModTime returns the modification time of the archive file
func (a *Archive) ModTime() time.Time {
	return a.modTime
}

// Path returns the archive path
func (a *Archive) Path() string {
	return a.path
}

// Close releases the archive
func (a *Archive) Close() error {
	return a.reader.Close()
}

// Reviews reads every row of the reviews resource
func (a *Archive) Reviews(ctx context.Context) ([]domain.Review, error) {
	name := a.resources.Reviews
	var reviews []domain.Review

	err := a.readRows(name, func(line int, row []string) error {
		if err := requireColumns(name, line, row, reviewScoreColumn); err != nil {
			return err
		}

		submissionID, err := parseID(name, line, reviewSubmissionColumn, row)
		if err != nil {
			return err
		}

		score, confidence, err := ParseScoreText(row[reviewScoreColumn])
		if err != nil {
			return errors.NewInputError("malformed score text", err).
				WithContext("resource", name).
				WithContext("line", line).
				WithContext("column", reviewScoreColumn)
		}

		reviews = append(reviews, domain.Review{
			SubmissionID: submissionID,
			ReviewerID:   row[reviewReviewerColumn],
			Score:        score,
			Confidence:   confidence,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "loaded reviews",
		slog.String("resource", name),
		slog.Int("reviews", len(reviews)))
	return reviews, nil
}

// TopicAssignments reads the rows of the field value resource whose field
// name equals marker
func (a *Archive) TopicAssignments(ctx context.Context, marker string) ([]domain.TopicAssignment, error) {
	name := a.resources.FieldValues
	var assignments []domain.TopicAssignment
	skipped := 0

	err := a.readRows(name, func(line int, row []string) error {
		if len(row) <= fieldNameColumn || row[fieldNameColumn] != marker {
			skipped++
			a.logger.DebugContext(ctx, "skipping field value row",
				slog.String("resource", name),
				slog.Int("line", line))
			return nil
		}
		if err := requireColumns(name, line, row, fieldValueColumn); err != nil {
			return err
		}

		submissionID, err := parseID(name, line, fieldSubmissionColumn, row)
		if err != nil {
			return err
		}

		assignments = append(assignments, domain.NewTopicAssignment(submissionID, row[fieldValueColumn]))
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "loaded topic assignments",
		slog.String("resource", name),
		slog.String("marker", marker),
		slog.Int("assignments", len(assignments)),
		slog.Int("skipped", skipped))
	return assignments, nil
}

// readRows decodes a CSV resource and calls fn with each row and its
// 1-based line number
func (a *Archive) readRows(name string, fn func(line int, row []string) error) error {
	file, err := a.reader.Open(name)
	if err != nil {
		return errors.NewInputError("resource not found in archive", err).
			WithContext("resource", name).
			WithContext("path", a.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewInputError("malformed CSV", err).
				WithContext("resource", name)
		}

		line, _ := reader.FieldPos(0)
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

func requireColumns(name string, line int, row []string, column int) error {
	if len(row) > column {
		return nil
	}
	return errors.NewInputError(
		fmt.Sprintf("row has %d columns, need at least %d", len(row), column+1), nil).
		WithContext("resource", name).
		WithContext("line", line)
}

func parseID(name string, line, column int, row []string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(row[column]))
	if err != nil {
		return 0, errors.NewInputError("submission id is not an integer", err).
			WithContext("resource", name).
			WithContext("line", line).
			WithContext("column", column)
	}
	return id, nil
}
