// Package generator draws multiplication questions.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/timestable/internal/model"
)

// DefaultRetryLimit caps redraws when avoiding an immediate repeat.
const DefaultRetryLimit = 10

// Generator produces randomized questions.
type Generator struct {
	rnd        *rand.Rand
	retryLimit int
}

// New returns a Generator seeded with the current time.
func New(retryLimit int) *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()), retryLimit)
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source, retryLimit int) *Generator {
	if retryLimit <= 0 {
		retryLimit = 1
	}
	return &Generator{rnd: rand.New(src), retryLimit: retryLimit}
}

// Next draws a question from r. When last is set, a draw forming the same
// unordered pair is retried up to the retry limit, after which the repeat
// is accepted. Displayed operands are swapped half of the time; Pair keeps
// the drawn order.
func (g *Generator) Next(r model.Ranges, last *model.Pair) model.Question {
	var pair model.Pair
	for attempt := 1; ; attempt++ {
		pair = model.Pair{
			g.intIn(r.FirstMin, r.FirstMax),
			g.intIn(r.SecondMin, r.SecondMax),
		}
		if last == nil || r.Degenerate() || !pair.Same(*last) || attempt >= g.retryLimit {
			break
		}
	}
	q := model.Question{A: pair[0], B: pair[1], Pair: pair}
	if g.rnd.Intn(2) == 1 {
		q.A, q.B = q.B, q.A
	}
	return q
}

// Pick returns a uniformly chosen entry of pool, or "" when it is empty.
func (g *Generator) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[g.rnd.Intn(len(pool))]
}

func (g *Generator) intIn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rnd.Intn(hi-lo+1)
}
