// Package shared holds code used across packages that belongs to no single
// stage of a run.
//
// The testutil subpackage provides:
//
//   - Builders for EasyChair export archives written to a test directory
//   - A slog handler that captures records for assertions
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    archive := testutil.NewExport().
//	        Review(1, "Alice", 3, 4).
//	        Topics(1, "Algorithms, Graphs").
//	        Write(t)
//	    logger, logs := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "Run completed")
//	}
package shared
