package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTopicAssignment(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantTopics []string
	}{
		{
			name:       "single topic",
			value:      "Algorithms",
			wantTopics: []string{"Algorithms"},
		},
		{
			name:       "multiple topics keep order",
			value:      "Graphs, Algorithms, Data structures",
			wantTopics: []string{"Graphs", "Algorithms", "Data structures"},
		},
		{
			name:       "duplicates preserved",
			value:      "Graphs, Graphs",
			wantTopics: []string{"Graphs", "Graphs"},
		},
		{
			name:       "comma without space is part of the label",
			value:      "Geometry,Topology",
			wantTopics: []string{"Geometry,Topology"},
		},
		{
			// A bare split would yield one "" topic; an empty field names
			// no topic, so the submission adds nothing to the topic totals.
			name:       "empty value",
			value:      "",
			wantTopics: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignment := NewTopicAssignment(42, tt.value)
			assert.Equal(t, 42, assignment.SubmissionID)
			assert.Equal(t, tt.wantTopics, assignment.Topics)
		})
	}
}
