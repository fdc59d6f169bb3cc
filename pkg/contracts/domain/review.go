package domain

import (
	"strings"
)

// TopicSeparator joins topic labels inside a single field value of the
// submission field table.
const TopicSeparator = ", "

// Review is one reviewer's evaluation of one submission as exported by the
// conference system. Reviews are immutable once loaded.
type Review struct {
	// SubmissionID identifies the reviewed paper
	SubmissionID int `json:"submission_id" csv:"Submission"`

	// ReviewerID identifies the PC member. The export may contain an empty
	// id for reviews without an assigned member; those count towards totals
	// but never get a row of their own.
	ReviewerID string `json:"reviewer_id" csv:"Reviewer"`

	// Score is the overall evaluation and must belong to the configured scale
	Score int `json:"score" csv:"Score"`

	// Confidence is the reviewer's self-assessed confidence
	Confidence int `json:"confidence" csv:"Confidence"`
}

// TopicAssignment lists the topic labels attached to one submission
type TopicAssignment struct {
	SubmissionID int      `json:"submission_id" csv:"Submission"`
	Topics       []string `json:"topics" csv:"Topics"`
}

// NewTopicAssignment splits a joined topic value into its labels. Order and
// duplicates are preserved; an empty value yields no labels.
func NewTopicAssignment(submissionID int, value string) TopicAssignment {
	assignment := TopicAssignment{SubmissionID: submissionID}
	if value == "" {
		return assignment
	}
	assignment.Topics = strings.Split(value, TopicSeparator)
	return assignment
}
