// Package exporter writes the score tables in machine-readable formats next
// to the HTML report.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers and a
// UTF-8 BOM for Excel compatibility.
//
// TableExporter: Writes reviewers.csv, batches.csv and topics.csv with the
// same rows as the HTML tables, plus summary.csv (mean, deviation and
// median of each reviewer's scores) and topic_counts.csv.
//
// WorkbookWriter: Writes the same data as a single XLSX workbook with one
// sheet per table.
//
// Example usage:
//
//	dataset := exporter.Dataset{
//	    Reviewers:  reviewers,
//	    Batches:    batches,
//	    Topics:     topics,
//	    Aggregates: aggregates,
//	    Index:      index,
//	}
//
//	paths, err := exporter.NewTableExporter("out/csv", logger).ExportCSV(ctx, dataset)
//
//	err = exporter.NewWorkbookWriter(logger).Write(ctx, "out/scores.xlsx", dataset)
package exporter
