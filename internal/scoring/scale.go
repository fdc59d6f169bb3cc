package scoring

import (
	"fmt"
	"strconv"

	"confstats/internal/config"
	"confstats/internal/errors"
)

// Scale is the ordered set of scores a reviewer may give, together with
// the subset counted as accepting
type Scale struct {
	values []int
	accept []int
	index  map[int]int
	isAcc  map[int]bool
}

// NewScale builds a scale from values in descending order and a subset of
// accept scores
func NewScale(values, accept []int) (*Scale, error) {
	if len(values) == 0 {
		return nil, errors.NewConfigError("score scale is empty", nil)
	}

	s := &Scale{
		values: append([]int(nil), values...),
		accept: append([]int(nil), accept...),
		index:  make(map[int]int, len(values)),
		isAcc:  make(map[int]bool, len(accept)),
	}

	for i, v := range values {
		if i > 0 && v >= values[i-1] {
			return nil, errors.NewConfigError("score scale must be strictly descending", nil).
				WithContext("scores", values)
		}
		s.index[v] = i
	}
	for _, v := range accept {
		if _, ok := s.index[v]; !ok {
			return nil, errors.NewConfigError(fmt.Sprintf("accept score %d is not on the scale", v), nil).
				WithContext("scores", values)
		}
		s.isAcc[v] = true
	}

	return s, nil
}

// ScaleFromConfig builds the scale configured for a conference
func ScaleFromConfig(cfg config.ConferenceConfig) (*Scale, error) {
	return NewScale(cfg.Scores, cfg.AcceptScores)
}

// Values returns the scale values in descending order
func (s *Scale) Values() []int {
	return append([]int(nil), s.values...)
}

// Accept returns the accept scores
func (s *Scale) Accept() []int {
	return append([]int(nil), s.accept...)
}

// Len returns the number of values on the scale
func (s *Scale) Len() int {
	return len(s.values)
}

// Index returns the column position of score
func (s *Scale) Index(score int) (int, bool) {
	i, ok := s.index[score]
	return i, ok
}

// Contains reports whether score is on the scale
func (s *Scale) Contains(score int) bool {
	_, ok := s.index[score]
	return ok
}

// IsAccept reports whether score counts towards acceptance
func (s *Scale) IsAccept(score int) bool {
	return s.isAcc[score]
}

// Labels returns the column headings for the scale values, positive values
// carrying an explicit sign: +3, +2, +1, 0, -1, -2
func (s *Scale) Labels() []string {
	labels := make([]string, len(s.values))
	for i, v := range s.values {
		labels[i] = Label(v)
	}
	return labels
}

// Label formats a single score as a column heading
func Label(score int) string {
	if score > 0 {
		return "+" + strconv.Itoa(score)
	}
	return strconv.Itoa(score)
}
