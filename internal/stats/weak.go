package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/verte-zerg/timestable/internal/model"
)

// Fact is an unordered multiplication fact with its session record.
type Fact struct {
	Low       int
	High      int
	Correct   int
	Incorrect int
	// Slowest is the longest correct answer time seen for the fact.
	Slowest time.Duration
}

// Label renders the fact as "a × b".
func (f Fact) Label() string {
	return fmt.Sprintf("%d × %d", f.Low, f.High)
}

// Facts groups attempts by unordered operand pair.
func Facts(attempts []model.Attempt) []Fact {
	index := map[[2]int]int{}
	var facts []Fact
	for _, a := range attempts {
		lo, hi := a.Question.A, a.Question.B
		if lo > hi {
			lo, hi = hi, lo
		}
		key := [2]int{lo, hi}
		i, ok := index[key]
		if !ok {
			i = len(facts)
			index[key] = i
			facts = append(facts, Fact{Low: lo, High: hi})
		}
		if a.Correct {
			facts[i].Correct++
			if a.Elapsed > facts[i].Slowest {
				facts[i].Slowest = a.Elapsed
			}
		} else {
			facts[i].Incorrect++
		}
	}
	return facts
}

// MissedFacts returns up to top facts with the most incorrect answers.
func MissedFacts(facts []Fact, top int) []Fact {
	candidates := make([]Fact, 0, len(facts))
	for _, f := range facts {
		if f.Incorrect > 0 {
			candidates = append(candidates, f)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Incorrect == candidates[j].Incorrect {
			return factLess(candidates[i], candidates[j])
		}
		return candidates[i].Incorrect > candidates[j].Incorrect
	})
	return limit(candidates, top)
}

func factLess(a, b Fact) bool {
	if a.Low == b.Low {
		return a.High < b.High
	}
	return a.Low < b.Low
}

func limit(facts []Fact, top int) []Fact {
	if top <= 0 || top > len(facts) {
		top = len(facts)
	}
	return facts[:top]
}
