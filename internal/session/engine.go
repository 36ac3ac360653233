// Package session owns the practice session: the current question, scoring
// and running statistics.
package session

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/timestable/internal/generator"
	"github.com/verte-zerg/timestable/internal/model"
)

// RangeSource provides the operand ranges read on every regeneration.
type RangeSource interface {
	Snapshot() model.Ranges
}

// Ticket identifies the question a scheduled continuation belongs to.
type Ticket struct {
	Session string
	Seq     uint64
}

// Scheduled asks the caller to call Fire with Ticket after Delay.
type Scheduled struct {
	Ticket Ticket
	Delay  time.Duration
}

// Stats are the running counters of one session.
type Stats struct {
	Correct     int
	Incorrect   int
	AnswerTimes []time.Duration
	StartedAt   time.Time
}

// Total returns the number of scored answers.
func (s Stats) Total() int {
	return s.Correct + s.Incorrect
}

func (s Stats) answeredFor() time.Duration {
	var sum time.Duration
	for _, d := range s.AnswerTimes {
		sum += d
	}
	return sum
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithGenerator replaces the question generator.
func WithGenerator(gen *generator.Generator) Option {
	return func(e *Engine) {
		e.gen = gen
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIDFunc replaces the session id source.
func WithIDFunc(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// Engine runs practice sessions. It is not safe for concurrent use; all
// calls are expected from a single event loop.
type Engine struct {
	cfg    model.Config
	ranges RangeSource
	gen    *generator.Generator
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	id      string
	active  bool
	endedAt time.Time

	seq         uint64
	question    model.Question
	hasQuestion bool
	lastPair    *model.Pair
	feedback    model.Feedback
	pending     *Ticket

	stats    Stats
	attempts []model.Attempt
}

// New constructs an Engine reading ranges from src. It draws an initial
// question but does not start a session.
func New(cfg model.Config, src RangeSource, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		ranges: src,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = generator.New(cfg.RetryLimit)
	}
	e.Advance()
	return e
}

// Start begins a new session, discarding the statistics of any previous one.
func (e *Engine) Start() {
	e.id = e.newID()
	e.active = true
	e.endedAt = time.Time{}
	e.stats = Stats{StartedAt: e.now()}
	e.attempts = nil
	e.hasQuestion = false
	e.lastPair = nil
	e.logger.Debug("session started", "session", e.id)
	e.Advance()
}

// Stop ends the session and invalidates every scheduled continuation.
func (e *Engine) Stop() {
	if !e.active {
		return
	}
	e.active = false
	e.pending = nil
	e.endedAt = e.now()
	e.logger.Debug("session stopped", "session", e.id, "total", e.stats.Total())
}

// Advance replaces the current question and clears feedback. Any pending
// continuation is superseded.
func (e *Engine) Advance() {
	var last *model.Pair
	if e.hasQuestion {
		last = e.lastPair
	}
	q := e.gen.Next(e.ranges.Snapshot(), last)
	pair := q.Pair
	e.question = q
	e.hasQuestion = true
	e.lastPair = &pair
	e.feedback = model.Feedback{}
	e.pending = nil
	e.seq++
	e.logger.Debug("question", "session", e.id, "seq", e.seq, "a", q.A, "b", q.B)
}

// Regenerate draws a fresh question after a range change.
func (e *Engine) Regenerate() {
	e.Advance()
}

// Submit scores raw against the current question. It reports false without
// changing anything when no session is active or the current question has
// already been scored.
func (e *Engine) Submit(raw string) (Scheduled, bool) {
	if !e.active || e.pending != nil {
		return Scheduled{}, false
	}
	q := e.question
	now := e.now()
	input := strings.TrimSpace(raw)
	answer, err := strconv.Atoi(input)
	correct := err == nil && answer == q.Product()

	attempt := model.Attempt{Question: q, Input: input, Correct: correct, At: now}
	delay := e.cfg.IncorrectDelay
	if correct {
		sample := now.Sub(e.stats.StartedAt.Add(e.stats.answeredFor()))
		e.stats.Correct++
		e.stats.AnswerTimes = append(e.stats.AnswerTimes, sample)
		attempt.Elapsed = sample
		e.feedback = model.Feedback{Kind: model.FeedbackCorrect, Text: e.gen.Pick(e.cfg.CorrectFeedback)}
		delay = e.cfg.CorrectDelay
	} else {
		e.stats.Incorrect++
		e.feedback = model.Feedback{Kind: model.FeedbackIncorrect, Text: incorrectText(e.gen.Pick(e.cfg.IncorrectFeedback), q)}
	}
	e.attempts = append(e.attempts, attempt)

	ticket := Ticket{Session: e.id, Seq: e.seq}
	e.pending = &ticket
	e.logger.Debug("answer scored", "session", e.id, "seq", e.seq, "input", input, "correct", correct)
	return Scheduled{Ticket: ticket, Delay: delay}, true
}

// Fire runs the continuation scheduled by Submit. Stale tickets from an
// earlier session, question or range change are ignored.
func (e *Engine) Fire(t Ticket) bool {
	if !e.active || e.pending == nil || *e.pending != t {
		e.logger.Debug("stale continuation dropped", "session", t.Session, "seq", t.Seq)
		return false
	}
	e.Advance()
	return true
}

// Active reports whether a session is running.
func (e *Engine) Active() bool {
	return e.active
}

// SessionID returns the id of the current or last session.
func (e *Engine) SessionID() string {
	return e.id
}

// Question returns the current question.
func (e *Engine) Question() model.Question {
	return e.question
}

// Feedback returns the feedback for the last scored answer, if still shown.
func (e *Engine) Feedback() model.Feedback {
	return e.feedback
}

// Stats returns a copy of the running statistics.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.AnswerTimes = append([]time.Duration(nil), e.stats.AnswerTimes...)
	return s
}

// Attempts returns the scored submissions of the session in order.
func (e *Engine) Attempts() []model.Attempt {
	return append([]model.Attempt(nil), e.attempts...)
}

// Elapsed returns the session time, frozen once the session stops.
func (e *Engine) Elapsed() time.Duration {
	if e.stats.StartedAt.IsZero() {
		return 0
	}
	if !e.active {
		return e.endedAt.Sub(e.stats.StartedAt)
	}
	return e.now().Sub(e.stats.StartedAt)
}

func incorrectText(prefix string, q model.Question) string {
	detail := fmt.Sprintf("(%d × %d = %d)", q.A, q.B, q.Product())
	if prefix == "" {
		return detail
	}
	return prefix + " " + detail
}
