package game

import (
	"encoding/json"
	"reflect"
	"testing"

	"eco-quest-service/internal/domain"
)

func TestMergeAcrossLevelBoundary(t *testing.T) {
	prior := Stats{Points: 80, Badges: NewBadgeSet("Eco Learner"), Level: 1}
	next := Merge(prior, domain.KindQuiz, 20, []string{"Eco Learner"})

	if next.Points != 100 || next.Level != 2 {
		t.Fatalf("expected 100 points at level 2, got %d at %d", next.Points, next.Level)
	}
	if !reflect.DeepEqual(next.Badges.Labels(), []string{"Eco Learner"}) {
		t.Fatalf("expected single badge, got %v", next.Badges.Labels())
	}
	if next.QuizzesCompleted != 1 {
		t.Fatalf("expected quiz count 1, got %d", next.QuizzesCompleted)
	}
	if prior.Badges.Len() != 1 || prior.Points != 80 {
		t.Fatalf("merge mutated prior stats: %+v", prior)
	}
}

func TestMergePictureDoesNotCountQuiz(t *testing.T) {
	next := Merge(DefaultStats(), domain.KindPicture, 45, []string{"Picture Perfect", "Sharp Eye"})
	if next.QuizzesCompleted != 0 {
		t.Fatalf("picture completion must not bump quiz count, got %d", next.QuizzesCompleted)
	}
	if next.Points != 45 || next.Level != 1 {
		t.Fatalf("unexpected stats %+v", next)
	}
}

func TestMergeKeepsLevelInvariant(t *testing.T) {
	stats := DefaultStats()
	deltas := []int{0, 15, 20, 45, 60, 100, 99, 1, 0, 250}
	for _, d := range deltas {
		stats = Merge(stats, domain.KindQuiz, d, nil)
		if stats.Level != stats.Points/100+1 {
			t.Fatalf("level %d does not match points %d", stats.Level, stats.Points)
		}
	}
}

func TestMergeDeduplicatesBadges(t *testing.T) {
	labels := []string{"Quiz Master", "Perfect Score", "Eco Learner", "Sharp Eye"}
	for i := range labels {
		for j := range labels {
			prior := Stats{Badges: NewBadgeSet(labels[:i]...), Level: 1}
			next := Merge(prior, domain.KindQuiz, 0, append(labels[j:], labels[j:]...))
			seen := map[string]bool{}
			for _, l := range next.Badges.Labels() {
				if seen[l] {
					t.Fatalf("duplicate badge %q", l)
				}
				seen[l] = true
			}
		}
	}
}

func TestBadgeSetJSON(t *testing.T) {
	data, err := json.Marshal(NewBadgeSet("b", "a", "b"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Fatalf("unexpected json %s", data)
	}
	var back BadgeSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Has("a") || !back.Has("b") || back.Len() != 2 {
		t.Fatalf("unexpected set %v", back.Labels())
	}
}
