package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/timestable/internal/model"
)

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summary{}); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No answers recorded." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderSummary(t *testing.T) {
	s := Summary{
		Correct:     2,
		Incorrect:   1,
		AnswerTimes: []time.Duration{2 * time.Second, 4 * time.Second},
		Elapsed:     75 * time.Second,
		Attempts: []model.Attempt{
			attempt(7, 8, false, 0),
			attempt(8, 7, true, 4*time.Second),
			attempt(3, 4, true, 2*time.Second),
		},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, s); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{
		"Answered: 3",
		"Correct: 2",
		"Incorrect: 1",
		"Accuracy: 66.7%",
		"Avg Time: 3.00s",
		"Session: 01:15.0",
		"Time trend: [",
		"Most missed",
		"Slowest",
		"7 × 8",
	} {
		if !strings.Contains(out, needle) {
			t.Fatalf("summary missing %q:\n%s", needle, out)
		}
	}
}

func TestRenderProductTable(t *testing.T) {
	var buf bytes.Buffer
	r := model.Ranges{FirstMin: 2, FirstMax: 3, SecondMin: 2, SecondMax: 4}
	if err := RenderProductTable(&buf, r); err != nil {
		t.Fatalf("render table: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"× 2 3  4",
		"2 4 6  8",
		"3 6 9 12",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
