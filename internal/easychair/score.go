package easychair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"confstats/internal/errors"
)

// scoreSegment matches the head of one "label: value" segment. The label
// runs up to the first colon, the value is the next run of non-space
// characters and is checked separately.
var scoreSegment = regexp.MustCompile(`^\s*([^:]+?):[ \t]+(\S+)`)

// ScoreSegment is one labelled value of a score text
type ScoreSegment struct {
	Label string
	Value int
}

// ParseScoreSegments splits a score text into its labelled segments.
// Segments are separated by line breaks or runs of whitespace; labels are
// returned trimmed and are not interpreted. Every segment must carry an
// integer value.
func ParseScoreSegments(text string) ([]ScoreSegment, error) {
	return scanSegments(text, -1)
}

// scanSegments reads segments in order and stops after limit of them when
// limit is positive. Text past the last requested segment is not checked.
func scanSegments(text string, limit int) ([]ScoreSegment, error) {
	var segments []ScoreSegment
	for _, line := range strings.Split(text, "\n") {
		rest := strings.TrimRight(line, "\r")
		for strings.TrimSpace(rest) != "" {
			if limit > 0 && len(segments) == limit {
				return segments, nil
			}

			m := scoreSegment.FindStringSubmatchIndex(rest)
			if m == nil {
				return nil, errors.NewParsingError("malformed score segment", nil).
					WithContext("segment", strings.TrimSpace(rest))
			}
			label := strings.TrimSpace(rest[m[2]:m[3]])
			raw := rest[m[4]:m[5]]
			value, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.NewParsingError(fmt.Sprintf("invalid value %q for %q", raw, label), err)
			}
			segments = append(segments, ScoreSegment{Label: label, Value: value})
			rest = rest[m[1]:]
		}
	}
	return segments, nil
}

// ParseScoreText extracts the overall score and the reviewer confidence
// from the combined score text of a review, e.g.
//
//	overall evaluation: 2
//	reviewer's confidence: 4
//
// The first segment is the score and the second the confidence. Both must
// be integers; later segments are not read.
func ParseScoreText(text string) (score, confidence int, err error) {
	segments, err := scanSegments(text, 2)
	if err != nil {
		return 0, 0, err
	}
	if len(segments) < 2 {
		return 0, 0, errors.NewParsingError(
			fmt.Sprintf("expected score and confidence segments, found %d", len(segments)), nil).
			WithContext("text", text)
	}
	return segments[0].Value, segments[1].Value, nil
}
