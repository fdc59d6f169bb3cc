package scoring

import (
	"sort"

	"confstats/pkg/contracts/domain"
)

// TopicIndex maps submissions to their topics and counts how many
// submissions carry each topic
type TopicIndex struct {
	// BySubmission lists the topics of a submission in source order,
	// duplicates included
	BySubmission map[int][]string

	// Counts is the number of submissions per topic
	Counts map[string]int
}

// BuildTopicIndex indexes topic assignments. Several assignments for the
// same submission are concatenated.
func BuildTopicIndex(assignments []domain.TopicAssignment) TopicIndex {
	index := TopicIndex{
		BySubmission: make(map[int][]string),
		Counts:       make(map[string]int),
	}

	for _, a := range assignments {
		for _, topic := range a.Topics {
			index.BySubmission[a.SubmissionID] = append(index.BySubmission[a.SubmissionID], topic)
			index.Counts[topic]++
		}
	}

	return index
}

// Topics returns every topic label in sorted order
func (ti TopicIndex) Topics() []string {
	topics := make([]string, 0, len(ti.Counts))
	for topic := range ti.Counts {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Empty reports whether no topic was assigned to any submission
func (ti TopicIndex) Empty() bool {
	return len(ti.Counts) == 0
}
