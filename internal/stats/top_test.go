package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/timestable/internal/model"
)

func attempt(a, b int, correct bool, elapsed time.Duration) model.Attempt {
	return model.Attempt{
		Question: model.Question{A: a, B: b, Pair: model.Pair{a, b}},
		Correct:  correct,
		Elapsed:  elapsed,
	}
}

func TestFactsGroupsUnorderedPairs(t *testing.T) {
	facts := Facts([]model.Attempt{
		attempt(7, 8, false, 0),
		attempt(8, 7, true, 3*time.Second),
		attempt(7, 8, true, 2*time.Second),
		attempt(3, 4, true, time.Second),
	})
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}
	f := facts[0]
	if f.Low != 7 || f.High != 8 || f.Correct != 2 || f.Incorrect != 1 || f.Slowest != 3*time.Second {
		t.Fatalf("unexpected fact: %+v", f)
	}
	if f.Label() != "7 × 8" {
		t.Fatalf("unexpected label %q", f.Label())
	}
}

func TestSlowestFacts(t *testing.T) {
	facts := Facts([]model.Attempt{
		attempt(2, 3, true, time.Second),
		attempt(6, 9, true, 5*time.Second),
		attempt(4, 7, true, 3*time.Second),
		attempt(5, 5, false, 0),
	})
	top := SlowestFacts(facts, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(top))
	}
	if top[0].Label() != "6 × 9" || top[1].Label() != "4 × 7" {
		t.Fatalf("unexpected order: %v", top)
	}
	if got := SlowestFacts(facts, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}

func TestMissedFacts(t *testing.T) {
	facts := Facts([]model.Attempt{
		attempt(6, 7, false, 0),
		attempt(3, 9, false, 0),
		attempt(9, 3, false, 0),
		attempt(2, 2, true, time.Second),
		attempt(4, 8, false, 0),
	})
	missed := MissedFacts(facts, 0)
	if len(missed) != 3 {
		t.Fatalf("expected 3 missed facts, got %d", len(missed))
	}
	want := []string{"3 × 9", "4 × 8", "6 × 7"}
	for i, label := range want {
		if missed[i].Label() != label {
			t.Fatalf("position %d: expected %s, got %s", i, label, missed[i].Label())
		}
	}
}
