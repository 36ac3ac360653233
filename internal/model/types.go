// Package model defines shared data structures.
package model

import "time"

// Bounds are the global limits every operand range must stay inside.
type Bounds struct {
	Min int
	Max int
}

// Ranges holds the inclusive operand ranges questions are drawn from.
type Ranges struct {
	FirstMin  int
	FirstMax  int
	SecondMin int
	SecondMax int
}

// Degenerate reports whether both ranges hold a single value.
func (r Ranges) Degenerate() bool {
	return r.FirstMin == r.FirstMax && r.SecondMin == r.SecondMax
}

// Pair is a generated operand pair in draw order.
type Pair [2]int

// Same reports whether both pairs hold the same two values in any order.
func (p Pair) Same(other Pair) bool {
	return (p[0] == other[0] && p[1] == other[1]) || (p[0] == other[1] && p[1] == other[0])
}

// Question is a displayed multiplication question.
type Question struct {
	A    int
	B    int
	Pair Pair
}

// Product returns the correct answer for the displayed operands.
func (q Question) Product() int {
	return q.A * q.B
}

// FeedbackKind classifies the outcome shown after a submission.
type FeedbackKind int

// Feedback kinds.
const (
	FeedbackNone FeedbackKind = iota
	FeedbackCorrect
	FeedbackIncorrect
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return ""
	}
}

// Feedback is the message shown for the last scored answer.
type Feedback struct {
	Kind FeedbackKind
	Text string
}

// Attempt records one scored submission within a session.
type Attempt struct {
	Question Question
	Input    string
	Correct  bool
	// Elapsed is the answer time sample; zero for incorrect attempts.
	Elapsed time.Duration
	At      time.Time
}

// Config defines practice settings.
type Config struct {
	Title             string
	Bounds            Bounds
	Ranges            Ranges
	CorrectFeedback   []string
	IncorrectFeedback []string
	CorrectDelay      time.Duration
	IncorrectDelay    time.Duration
	TickInterval      time.Duration
	RetryLimit        int
}
