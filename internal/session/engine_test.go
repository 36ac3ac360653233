package session

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/timestable/internal/generator"
	"github.com/verte-zerg/timestable/internal/model"
	"github.com/verte-zerg/timestable/internal/ranges"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Add(d time.Duration) {
	c.t = c.t.Add(d)
}

func testConfig() model.Config {
	return model.Config{
		Bounds:            model.Bounds{Min: 1, Max: 20},
		CorrectFeedback:   []string{"Nice!"},
		IncorrectFeedback: []string{"Nope."},
		CorrectDelay:      300 * time.Millisecond,
		IncorrectDelay:    700 * time.Millisecond,
		TickInterval:      100 * time.Millisecond,
		RetryLimit:        generator.DefaultRetryLimit,
	}
}

func newTestEngine(t *testing.T, r model.Ranges) (*Engine, *ranges.Config, *fakeClock) {
	t.Helper()
	cfg := testConfig()
	rc := ranges.New(cfg.Bounds, r)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	ids := 0
	e := New(cfg, rc,
		WithClock(clock.Now),
		WithGenerator(generator.NewWithSource(rand.NewSource(11), cfg.RetryLimit)),
		WithIDFunc(func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		}),
	)
	return e, rc, clock
}

var twoByThree = model.Ranges{FirstMin: 2, FirstMax: 2, SecondMin: 3, SecondMax: 3}

func TestSubmitIgnoredWithoutSession(t *testing.T) {
	e, _, _ := newTestEngine(t, twoByThree)

	_, ok := e.Submit("6")
	assert.False(t, ok)
	assert.False(t, e.Active())
	assert.Equal(t, 0, e.Stats().Total())
	assert.Equal(t, model.FeedbackNone, e.Feedback().Kind)
}

func TestSubmitCorrect(t *testing.T) {
	e, _, clock := newTestEngine(t, twoByThree)
	e.Start()
	require.Equal(t, 6, e.Question().Product())

	clock.Add(1500 * time.Millisecond)
	sched, ok := e.Submit(" 6 ")
	require.True(t, ok)

	st := e.Stats()
	assert.Equal(t, 1, st.Correct)
	assert.Equal(t, 0, st.Incorrect)
	assert.Equal(t, 1, st.Total())
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, st.AnswerTimes)
	assert.Equal(t, model.FeedbackCorrect, e.Feedback().Kind)
	assert.Equal(t, "Nice!", e.Feedback().Text)
	assert.Equal(t, 300*time.Millisecond, sched.Delay)
	assert.Equal(t, Ticket{Session: "session-1", Seq: e.Snapshot().Seq}, sched.Ticket)
}

func TestSubmitIncorrect(t *testing.T) {
	e, _, clock := newTestEngine(t, twoByThree)
	e.Start()
	clock.Add(time.Second)

	sched, ok := e.Submit("7")
	require.True(t, ok)

	st := e.Stats()
	assert.Equal(t, 0, st.Correct)
	assert.Equal(t, 1, st.Incorrect)
	assert.Equal(t, 1, st.Total())
	assert.Empty(t, st.AnswerTimes)
	fb := e.Feedback()
	assert.Equal(t, model.FeedbackIncorrect, fb.Kind)
	assert.Contains(t, fb.Text, "Nope.")
	assert.Contains(t, fb.Text, "= 6)")
	assert.Equal(t, 700*time.Millisecond, sched.Delay)
}

func TestSubmitMalformedIsIncorrect(t *testing.T) {
	for _, raw := range []string{"", "abc", "6.0", "six"} {
		e, _, _ := newTestEngine(t, twoByThree)
		e.Start()
		_, ok := e.Submit(raw)
		require.True(t, ok, raw)
		assert.Equal(t, 1, e.Stats().Incorrect, raw)
		assert.Equal(t, model.FeedbackIncorrect, e.Feedback().Kind, raw)
	}
}

func TestAnswerTimesMeasureSincePreviousCorrect(t *testing.T) {
	e, _, clock := newTestEngine(t, twoByThree)
	e.Start()

	clock.Add(2 * time.Second)
	sched, ok := e.Submit("6")
	require.True(t, ok)
	clock.Add(sched.Delay)
	require.True(t, e.Fire(sched.Ticket))

	clock.Add(time.Second)
	sched, ok = e.Submit("5")
	require.True(t, ok)
	clock.Add(sched.Delay)
	require.True(t, e.Fire(sched.Ticket))

	clock.Add(3 * time.Second)
	_, ok = e.Submit("6")
	require.True(t, ok)

	// 2s + 300ms + 1s + 700ms + 3s since start; the first sample covered 2s.
	want := []time.Duration{2 * time.Second, 5 * time.Second}
	assert.Equal(t, want, e.Stats().AnswerTimes)
}

func TestDoubleSubmitIgnoredWhilePending(t *testing.T) {
	e, _, _ := newTestEngine(t, twoByThree)
	e.Start()

	_, ok := e.Submit("6")
	require.True(t, ok)
	_, ok = e.Submit("6")
	assert.False(t, ok)
	assert.Equal(t, 1, e.Stats().Total())
}

func TestFireAdvancesAndClearsFeedback(t *testing.T) {
	e, _, _ := newTestEngine(t, twoByThree)
	e.Start()
	before := e.Snapshot().Seq

	sched, ok := e.Submit("6")
	require.True(t, ok)
	require.True(t, e.Fire(sched.Ticket))

	snap := e.Snapshot()
	assert.Equal(t, before+1, snap.Seq)
	assert.Equal(t, model.FeedbackNone, snap.Feedback.Kind)
	assert.False(t, e.Fire(sched.Ticket), "ticket must only fire once")

	_, ok = e.Submit("6")
	assert.True(t, ok, "new question accepts answers again")
}

func TestRegenerateSupersedesPendingAdvance(t *testing.T) {
	e, rc, _ := newTestEngine(t, model.Ranges{FirstMin: 2, FirstMax: 9, SecondMin: 2, SecondMax: 9})
	e.Start()

	sched, ok := e.Submit("0")
	require.True(t, ok)

	_, changed := rc.SetFirstMax(5)
	require.True(t, changed)
	e.Regenerate()
	seq := e.Snapshot().Seq

	assert.False(t, e.Fire(sched.Ticket))
	assert.Equal(t, seq, e.Snapshot().Seq, "stale continuation must not replace the fresh question")
	assert.LessOrEqual(t, e.Question().Pair[0], 5)
	assert.Equal(t, model.FeedbackNone, e.Feedback().Kind)
}

func TestStartResetsSessionAndInvalidatesTickets(t *testing.T) {
	e, _, clock := newTestEngine(t, twoByThree)
	e.Start()
	sched, ok := e.Submit("6")
	require.True(t, ok)
	require.True(t, e.Fire(sched.Ticket))
	sched, ok = e.Submit("1")
	require.True(t, ok)

	clock.Add(time.Minute)
	e.Start()

	st := e.Stats()
	assert.Equal(t, 0, st.Correct)
	assert.Equal(t, 0, st.Incorrect)
	assert.Equal(t, 0, st.Total())
	assert.Empty(t, st.AnswerTimes)
	assert.Empty(t, e.Attempts())
	assert.Equal(t, clock.Now(), st.StartedAt)
	assert.Equal(t, "session-2", e.SessionID())
	assert.False(t, e.Fire(sched.Ticket))
}

func TestStopFreezesElapsedAndBlocksInput(t *testing.T) {
	e, _, clock := newTestEngine(t, twoByThree)
	assert.Equal(t, time.Duration(0), e.Elapsed())

	e.Start()
	clock.Add(4 * time.Second)
	assert.Equal(t, 4*time.Second, e.Elapsed())

	sched, ok := e.Submit("6")
	require.True(t, ok)
	e.Stop()
	clock.Add(10 * time.Second)

	assert.Equal(t, 4*time.Second, e.Elapsed())
	assert.False(t, e.Active())
	assert.False(t, e.Fire(sched.Ticket))
	_, ok = e.Submit("6")
	assert.False(t, ok)
}

func TestSnapshotDerivedStats(t *testing.T) {
	e, _, clock := newTestEngine(t, twoByThree)
	e.Start()

	snap := e.Snapshot()
	assert.True(t, snap.Active)
	assert.Equal(t, 0.0, snap.Accuracy)
	assert.False(t, snap.HasAverage)

	clock.Add(2 * time.Second)
	sched, _ := e.Submit("6")
	e.Fire(sched.Ticket)
	clock.Add(time.Second)
	e.Submit("2")

	snap = e.Snapshot()
	assert.Equal(t, 1, snap.Correct)
	assert.Equal(t, 1, snap.Incorrect)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, 50.0, snap.Accuracy)
	assert.True(t, snap.HasAverage)
	assert.Equal(t, 2*time.Second, snap.AverageTime)
	assert.Equal(t, 3*time.Second, snap.Elapsed)
}

func TestCountersStayConsistent(t *testing.T) {
	e, _, clock := newTestEngine(t, model.Ranges{FirstMin: 1, FirstMax: 12, SecondMin: 1, SecondMax: 12})
	e.Start()
	rnd := rand.New(rand.NewSource(5))

	for i := 0; i < 500; i++ {
		clock.Add(time.Duration(rnd.Intn(3000)) * time.Millisecond)
		raw := "x"
		if rnd.Intn(3) > 0 {
			raw = fmt.Sprint(e.Question().Product())
		}
		sched, ok := e.Submit(raw)
		require.True(t, ok)
		st := e.Stats()
		require.Equal(t, st.Correct+st.Incorrect, st.Total())
		require.Len(t, st.AnswerTimes, st.Correct)
		require.Len(t, e.Attempts(), st.Total())
		clock.Add(sched.Delay)
		require.True(t, e.Fire(sched.Ticket))
	}

	var sum time.Duration
	for _, d := range e.Stats().AnswerTimes {
		require.GreaterOrEqual(t, d, time.Duration(0))
		sum += d
	}
	assert.LessOrEqual(t, sum, e.Elapsed())
}

func TestAdvanceAvoidsImmediateRepeat(t *testing.T) {
	e, _, _ := newTestEngine(t, model.Ranges{FirstMin: 2, FirstMax: 12, SecondMin: 2, SecondMax: 12})
	e.Start()
	prev := e.Question().Pair
	for i := 0; i < 1000; i++ {
		e.Advance()
		cur := e.Question().Pair
		require.False(t, cur.Same(prev), "advance %d repeated %v", i, prev)
		prev = cur
	}
}
