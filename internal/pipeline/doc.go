// Package pipeline runs one report generation from an export archive to
// the written outputs.
//
// A run is a fixed sequence of stages:
//
//	load      read reviews and topic assignments from the archive
//	index     map submissions to topics
//	aggregate build the reviewer, topic and batch histograms
//	format    turn each histogram into a sorted table
//	render    write the HTML report
//	export    write the optional CSV files and XLSX workbook
//
// Each stage runs in its own span and records its duration. The first
// failing stage aborts the run; outputs of earlier stages are not written
// to disk until the render stage, so a failed run leaves no report behind.
//
// Example usage:
//
//	runner, err := pipeline.NewRunner(cfg, paths, providers, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Run(ctx, "conference.zip")
package pipeline
