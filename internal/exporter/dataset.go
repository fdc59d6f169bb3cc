package exporter

import (
	"confstats/internal/report"
	"confstats/internal/scoring"
)

// Output file names inside the CSV directory
const (
	ReviewersFile   = "reviewers.csv"
	BatchesFile     = "batches.csv"
	TopicsFile      = "topics.csv"
	SummaryFile     = "summary.csv"
	TopicCountsFile = "topic_counts.csv"
)

// AllReviewsLabel names the summary row covering every review
const AllReviewsLabel = "All reviews"

var (
	reviewerHeadings   = []string{"Accept rate", "Reviews", "Name"}
	batchHeadings      = []string{"Batch accept rate", "Reviews in batch", "Name"}
	topicHeadings      = []string{"Accept rate", "Scores", "Area"}
	summaryHeadings    = []string{"Name", "Reviews", "Mean", "Std dev", "Median", "Min", "Max"}
	topicCountHeadings = []string{"Area", "Submissions"}
)

// Dataset is everything one run can export
type Dataset struct {
	Reviewers *report.Table
	Batches   *report.Table

	// Topics is nil when no review could be attributed to a topic
	Topics *report.Table

	Aggregates *scoring.Aggregates
	Index      scoring.TopicIndex
}

// summaryRow describes the scores of one reviewer
type summaryRow struct {
	Label   string
	Summary scoring.Summary
}

// summaries lists the overall summary followed by one per reviewer in
// report order
func (d Dataset) summaries() []summaryRow {
	rows := []summaryRow{{Label: AllReviewsLabel, Summary: d.Aggregates.Summary}}
	if d.Reviewers == nil {
		return rows
	}
	for _, row := range d.Reviewers.Rows {
		rows = append(rows, summaryRow{
			Label:   row.Label,
			Summary: scoring.Summarize(d.Aggregates.ByReviewer.Scores(row.Label)),
		})
	}
	return rows
}

func headings(lead []string, table *report.Table) []string {
	return append(append([]string(nil), lead...), table.Columns...)
}
