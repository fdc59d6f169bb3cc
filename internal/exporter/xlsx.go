package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"confstats/internal/errors"
	"confstats/internal/report"
)

// Sheet names of the workbook
const (
	ReviewersSheet   = "Reviewers"
	BatchesSheet     = "Batches"
	AreasSheet       = "Areas"
	SummarySheet     = "Summary"
	TopicCountsSheet = "Topics"
)

// sheetSpec names a sheet and the function filling it
type sheetSpec struct {
	name string
	fill func(sheet string) error
}

// WorkbookWriter writes the report tables into a single XLSX workbook
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With(slog.String("component", "xlsx_exporter"))}
}

// Write saves d to path with one sheet per table, a Summary sheet and a
// Topics sheet with the submission count per topic
func (w *WorkbookWriter) Write(ctx context.Context, path string, d Dataset) error {
	w.logger.InfoContext(ctx, "writing workbook", slog.String("path", path))

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.NewStorageError("failed to create header style", err)
	}

	sheets := []sheetSpec{
		{ReviewersSheet, func(sheet string) error {
			return writeTableSheet(f, sheet, headings(reviewerHeadings, d.Reviewers), d.Reviewers)
		}},
		{BatchesSheet, func(sheet string) error {
			return writeTableSheet(f, sheet, headings(batchHeadings, d.Batches), d.Batches)
		}},
	}
	if d.Topics != nil {
		sheets = append(sheets, sheetSpec{AreasSheet, func(sheet string) error {
			return writeTableSheet(f, sheet, headings(topicHeadings, d.Topics), d.Topics)
		}})
	}
	sheets = append(sheets,
		sheetSpec{SummarySheet, func(sheet string) error { return writeSummarySheet(f, sheet, d) }},
		sheetSpec{TopicCountsSheet, func(sheet string) error { return writeTopicCountSheet(f, sheet, d) }},
	)

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return errors.NewStorageError("failed to name sheet", err).WithContext("sheet", s.name)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return errors.NewStorageError("failed to create sheet", err).WithContext("sheet", s.name)
		}

		if err := s.fill(s.name); err != nil {
			return errors.NewStorageError("failed to fill sheet", err).WithContext("sheet", s.name)
		}
		if err := f.SetRowStyle(s.name, 1, 1, bold); err != nil {
			return errors.NewStorageError("failed to style header row", err).WithContext("sheet", s.name)
		}
	}
	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewStorageError("failed to create directory for workbook", err).WithContext("path", path)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "wrote workbook",
		slog.String("path", path),
		slog.Int("sheets", len(sheets)))
	return nil
}

// writeTableSheet writes a report table with numeric cells kept numeric
func writeTableSheet(f *excelize.File, sheet string, header []string, table *report.Table) error {
	rows := [][]interface{}{stringsToCells(header)}

	for _, row := range table.Rows {
		cells := []interface{}{row.Rate, row.Count, row.Label}
		rows = append(rows, append(cells, intsToCells(row.Counts)...))
	}
	rows = append(rows,
		append([]interface{}{table.Total.Rate, report.Placeholder, report.TotalLabel}, intsToCells(table.Total.Counts)...),
		append([]interface{}{report.Placeholder, report.Placeholder, report.PercentageLabel}, intsToCells(table.Percentages)...),
	)

	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "C", "C", 32)
}

func writeSummarySheet(f *excelize.File, sheet string, d Dataset) error {
	rows := [][]interface{}{stringsToCells(summaryHeadings)}
	for _, row := range d.summaries() {
		s := row.Summary
		rows = append(rows, []interface{}{row.Label, s.Count, s.Mean, s.StdDev, s.Median, s.Min, s.Max})
	}
	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 32)
}

func writeTopicCountSheet(f *excelize.File, sheet string, d Dataset) error {
	rows := [][]interface{}{stringsToCells(topicCountHeadings)}
	for _, topic := range d.Index.Topics() {
		rows = append(rows, []interface{}{topic, d.Index.Counts[topic]})
	}
	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 32)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func intsToCells(values []int) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
