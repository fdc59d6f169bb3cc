package exporter

import (
	"context"
	"log/slog"
)

// TableExporter writes the report tables as CSV files
type TableExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewTableExporter creates an exporter writing into dir
func NewTableExporter(dir string, logger *slog.Logger) *TableExporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "csv_exporter"))
	return &TableExporter{
		csvWriter: NewCSVWriter(dir, logger),
		logger:    logger,
	}
}

// ExportCSV writes one CSV per table plus the score summaries and topic
// counts. The topic files are skipped when there is no topic data. It
// returns the paths written.
func (e *TableExporter) ExportCSV(ctx context.Context, d Dataset) ([]string, error) {
	type file struct {
		name    string
		headers []string
		records [][]string
	}

	files := []file{
		{ReviewersFile, headings(reviewerHeadings, d.Reviewers), d.Reviewers.Records()},
		{BatchesFile, headings(batchHeadings, d.Batches), d.Batches.Records()},
	}
	if d.Topics != nil {
		files = append(files, file{TopicsFile, headings(topicHeadings, d.Topics), d.Topics.Records()})
	}
	files = append(files, file{SummaryFile, summaryHeadings, summaryRecords(d)})
	if !d.Index.Empty() {
		files = append(files, file{TopicCountsFile, topicCountHeadings, topicCountRecords(d)})
	}

	var written []string
	for _, f := range files {
		path, err := e.csvWriter.WriteCSV(ctx, f.name, WriteOptions{
			Headers:   f.headers,
			Records:   f.records,
			BOMPrefix: true,
		})
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	e.logger.InfoContext(ctx, "exported report tables", slog.Int("files", len(written)))
	return written, nil
}

func summaryRecords(d Dataset) [][]string {
	var records [][]string
	for _, row := range d.summaries() {
		s := row.Summary
		records = append(records, []string{
			row.Label,
			formatInt(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Median),
			formatFloat(s.Min),
			formatFloat(s.Max),
		})
	}
	return records
}

func topicCountRecords(d Dataset) [][]string {
	var records [][]string
	for _, topic := range d.Index.Topics() {
		records = append(records, []string{topic, formatInt(d.Index.Counts[topic])})
	}
	return records
}
