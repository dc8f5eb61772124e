package game

import (
	"encoding/json"
	"sort"
)

// BadgeSet is an unordered set of badge labels.
type BadgeSet map[string]struct{}

// NewBadgeSet builds a set from labels, collapsing duplicates.
func NewBadgeSet(labels ...string) BadgeSet {
	s := make(BadgeSet, len(labels))
	s.Add(labels...)
	return s
}

func (s BadgeSet) Add(labels ...string) {
	for _, label := range labels {
		s[label] = struct{}{}
	}
}

func (s BadgeSet) Len() int { return len(s) }

func (s BadgeSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Union returns a new set holding the labels of both sets.
func (s BadgeSet) Union(other BadgeSet) BadgeSet {
	out := make(BadgeSet, len(s)+len(other))
	for label := range s {
		out[label] = struct{}{}
	}
	for label := range other {
		out[label] = struct{}{}
	}
	return out
}

// Labels returns the labels sorted, for stable rendering.
func (s BadgeSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (s BadgeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Labels())
}

func (s *BadgeSet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewBadgeSet(labels...)
	return nil
}
