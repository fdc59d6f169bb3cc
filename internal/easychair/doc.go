// Package easychair reads the conference data that EasyChair exports as a
// zip archive.
//
// Two resources of the archive are used:
//
//  1. review.csv: one row per review. Column 1 holds the submission id,
//     column 3 the reviewer (PC member) and column 7 the combined score text.
//  2. submission_field_value.csv: one row per submission field. Rows whose
//     column 2 equals the topics marker carry the submission id in column 0
//     and a ", "-joined topic list in column 3.
//
// Neither resource has a header row. Resource names and the topics marker
// come from config.ConferenceConfig.
//
// # Usage
//
//	archive, err := easychair.Open(path, easychair.DefaultResources(), logger)
//	if err != nil {
//	    return err
//	}
//	defer archive.Close()
//
//	reviews, err := archive.Reviews(ctx)
//	topics, err := archive.TopicAssignments(ctx, "Topics")
//
// # Error Handling
//
// A missing archive or resource, a short row, or an unparseable id is
// returned as an errors.ErrTypeInput error carrying the resource, line and
// column in its context. A malformed score text is an errors.ErrTypeParsing
// error wrapped in the input error of its row.
package easychair
