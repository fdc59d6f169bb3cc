package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"confstats/internal/errors"
	"confstats/pkg/contracts/domain"
)

// Aggregates holds the three score histograms of a conference
type Aggregates struct {
	// ByReviewer counts each review under its reviewer
	ByReviewer *Histogram

	// ByTopic counts each review once under every topic of its submission
	ByTopic *Histogram

	// ByBatch counts, for every review a reviewer wrote, all scores given
	// to that review's submission
	ByBatch *Histogram

	// Reviews is the number of reviews aggregated
	Reviews int

	// Summary describes the distribution of all review scores
	Summary Summary
}

// Aggregator groups review scores into histograms
type Aggregator struct {
	scale  *Scale
	logger *slog.Logger
}

// NewAggregator creates an aggregator over scale
func NewAggregator(scale *Scale, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		scale:  scale,
		logger: logger.With(slog.String("component", "aggregator")),
	}
}

// Aggregate builds the reviewer, topic and batch histograms. A review
// whose score is not on the scale fails the whole aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, reviews []domain.Review, index TopicIndex) (*Aggregates, error) {
	a.logger.InfoContext(ctx, "aggregating review scores",
		slog.Int("reviews", len(reviews)),
		slog.Int("topics", len(index.Counts)))

	agg := &Aggregates{
		ByReviewer: NewHistogram(a.scale),
		ByTopic:    NewHistogram(a.scale),
		ByBatch:    NewHistogram(a.scale),
		Reviews:    len(reviews),
	}

	submissionScores := make(map[int][]int)

	for i, r := range reviews {
		if !a.scale.Contains(r.Score) {
			return nil, errors.NewInputError(fmt.Sprintf("score %d is not on the scale", r.Score), nil).
				WithContext("review", i+1).
				WithContext("submission_id", r.SubmissionID).
				WithContext("reviewer", r.ReviewerID)
		}

		if err := agg.ByReviewer.Add(r.ReviewerID, r.Score); err != nil {
			return nil, err
		}
		for _, topic := range index.BySubmission[r.SubmissionID] {
			if err := agg.ByTopic.Add(topic, r.Score); err != nil {
				return nil, err
			}
		}
		submissionScores[r.SubmissionID] = append(submissionScores[r.SubmissionID], r.Score)
	}

	for _, r := range reviews {
		if err := agg.ByBatch.AddAll(r.ReviewerID, submissionScores[r.SubmissionID]); err != nil {
			return nil, err
		}
	}

	agg.Summary = Summarize(agg.ByReviewer.TotalScores())

	a.logger.InfoContext(ctx, "aggregated review scores",
		slog.Int("reviewers", len(agg.ByReviewer.Groups())),
		slog.Int("submissions", len(submissionScores)),
		slog.Int("topic_groups", len(agg.ByTopic.Groups())),
		slog.Float64("mean_score", agg.Summary.Mean),
		slog.Float64("median_score", agg.Summary.Median),
		slog.Float64("stddev_score", agg.Summary.StdDev))

	return agg, nil
}
