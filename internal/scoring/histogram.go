package scoring

import (
	"fmt"

	"confstats/internal/errors"
)

// TotalGroup labels the synthetic bucket summing every group
const TotalGroup = "Total"

// Histogram counts scores per group over a fixed scale. Groups are kept in
// order of first appearance; the synthetic total is kept apart from them.
type Histogram struct {
	scale  *Scale
	groups []string
	counts map[string][]int
	total  []int
}

// NewHistogram creates an empty histogram over scale
func NewHistogram(scale *Scale) *Histogram {
	return &Histogram{
		scale:  scale,
		counts: make(map[string][]int),
		total:  make([]int, scale.Len()),
	}
}

// Scale returns the scale the histogram counts over
func (h *Histogram) Scale() *Scale {
	return h.scale
}

// Add counts one score for group and for the total
func (h *Histogram) Add(group string, score int) error {
	i, ok := h.scale.Index(score)
	if !ok {
		return errors.NewInputError(fmt.Sprintf("score %d is not on the scale", score), nil).
			WithContext("group", group).
			WithContext("score", score)
	}

	bucket := h.ensure(group)
	bucket[i]++
	h.total[i]++
	return nil
}

// AddAll counts every score in scores for group
func (h *Histogram) AddAll(group string, scores []int) error {
	h.ensure(group)
	for _, score := range scores {
		if err := h.Add(group, score); err != nil {
			return err
		}
	}
	return nil
}

func (h *Histogram) ensure(group string) []int {
	bucket, ok := h.counts[group]
	if !ok {
		bucket = make([]int, h.scale.Len())
		h.counts[group] = bucket
		h.groups = append(h.groups, group)
	}
	return bucket
}

// Groups returns the group keys in order of first appearance
func (h *Histogram) Groups() []string {
	return append([]string(nil), h.groups...)
}

// Has reports whether group has been seen
func (h *Histogram) Has(group string) bool {
	_, ok := h.counts[group]
	return ok
}

// Counts returns the per-scale-value counts of group. Unknown groups yield
// all zeros.
func (h *Histogram) Counts(group string) []int {
	out := make([]int, h.scale.Len())
	copy(out, h.counts[group])
	return out
}

// Total returns the per-scale-value counts over all groups
func (h *Histogram) Total() []int {
	return append([]int(nil), h.total...)
}

// Count returns the number of scores recorded for group
func (h *Histogram) Count(group string) int {
	return sum(h.counts[group])
}

// GrandTotal returns the number of scores recorded over all groups
func (h *Histogram) GrandTotal() int {
	return sum(h.total)
}

// AcceptCount returns how many of the scores of counts are accept scores.
// counts must be laid out over the histogram's scale.
func (h *Histogram) AcceptCount(counts []int) int {
	n := 0
	for i, v := range h.scale.values {
		if h.scale.IsAccept(v) && i < len(counts) {
			n += counts[i]
		}
	}
	return n
}

// Scores expands the counts of group back into a list of scores, highest
// first
func (h *Histogram) Scores(group string) []int {
	return h.expand(h.counts[group])
}

// TotalScores expands the total counts into a list of scores
func (h *Histogram) TotalScores() []int {
	return h.expand(h.total)
}

func (h *Histogram) expand(counts []int) []int {
	var scores []int
	for i, n := range counts {
		for j := 0; j < n; j++ {
			scores = append(scores, h.scale.values[i])
		}
	}
	return scores
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
