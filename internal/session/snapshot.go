package session

import (
	"time"

	"github.com/verte-zerg/timestable/internal/model"
	"github.com/verte-zerg/timestable/internal/stats"
)

// Snapshot is everything the view needs to render one frame.
type Snapshot struct {
	Seq         uint64
	Question    model.Question
	Feedback    model.Feedback
	Active      bool
	Correct     int
	Incorrect   int
	Total       int
	Accuracy    float64
	AverageTime time.Duration
	HasAverage  bool
	Elapsed     time.Duration
}

// Snapshot derives the current view state.
func (e *Engine) Snapshot() Snapshot {
	avg, ok := stats.AverageTime(e.stats.AnswerTimes)
	return Snapshot{
		Seq:         e.seq,
		Question:    e.question,
		Feedback:    e.feedback,
		Active:      e.active,
		Correct:     e.stats.Correct,
		Incorrect:   e.stats.Incorrect,
		Total:       e.stats.Total(),
		Accuracy:    stats.Accuracy(e.stats.Correct, e.stats.Incorrect),
		AverageTime: avg,
		HasAverage:  ok,
		Elapsed:     e.Elapsed(),
	}
}

// Summary builds the end-of-session report input.
func (e *Engine) Summary() stats.Summary {
	return stats.Summary{
		Correct:     e.stats.Correct,
		Incorrect:   e.stats.Incorrect,
		AnswerTimes: append([]time.Duration(nil), e.stats.AnswerTimes...),
		Elapsed:     e.Elapsed(),
		Attempts:    e.Attempts(),
	}
}
