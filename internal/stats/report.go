// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/timestable/internal/model"
)

const (
	trendWindow = 5
	factsShown  = 5
)

// Summary contains the data of one finished session.
type Summary struct {
	Correct     int
	Incorrect   int
	AnswerTimes []time.Duration
	Elapsed     time.Duration
	Attempts    []model.Attempt
}

// Total returns the number of scored answers.
func (s Summary) Total() int {
	return s.Correct + s.Incorrect
}

// RenderSummary prints the end-of-session report.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Total() == 0 {
		_, err := fmt.Fprintln(w, "No answers recorded.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Answered: %d", s.Total()),
		fmt.Sprintf("Correct: %d", s.Correct),
		fmt.Sprintf("Incorrect: %d", s.Incorrect),
		fmt.Sprintf("Accuracy: %.1f%%", Accuracy(s.Correct, s.Incorrect)),
		fmt.Sprintf("Avg Time: %s", FormatAverage(s.AnswerTimes)),
		fmt.Sprintf("Session: %s", FormatElapsed(s.Elapsed)),
	}
	if len(s.AnswerTimes) > 1 {
		trend := Sparkline(MovingAverage(Seconds(s.AnswerTimes), trendWindow))
		lines = append(lines, fmt.Sprintf("Time trend: [%s]", trend))
	}
	if err := writeLines(w, lines); err != nil {
		return err
	}

	facts := Facts(s.Attempts)
	if missed := MissedFacts(facts, factsShown); len(missed) > 0 {
		if err := renderFacts(w, "Most missed", missed); err != nil {
			return err
		}
	}
	if slow := SlowestFacts(facts, factsShown); len(slow) > 0 {
		if err := renderFacts(w, "Slowest", slow); err != nil {
			return err
		}
	}
	return nil
}

func renderFacts(w io.Writer, title string, facts []Fact) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	headers := []string{"Fact", "Correct", "Incorrect", "Slowest"}
	rows := make([][]string, 0, len(facts))
	for _, f := range facts {
		slowest := EmptyAverage
		if f.Correct > 0 {
			slowest = FormatSeconds(f.Slowest)
		}
		rows = append(rows, []string{
			f.Label(),
			strconv.Itoa(f.Correct),
			strconv.Itoa(f.Incorrect),
			slowest,
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true}))
}

// RenderProductTable prints the products of every operand combination in r.
func RenderProductTable(w io.Writer, r model.Ranges) error {
	headers := []string{"×"}
	for b := r.SecondMin; b <= r.SecondMax; b++ {
		headers = append(headers, strconv.Itoa(b))
	}
	rows := make([][]string, 0, r.FirstMax-r.FirstMin+1)
	for a := r.FirstMin; a <= r.FirstMax; a++ {
		row := []string{strconv.Itoa(a)}
		for b := r.SecondMin; b <= r.SecondMax; b++ {
			row = append(row, strconv.Itoa(a*b))
		}
		rows = append(rows, row)
	}
	rightAlign := map[int]bool{}
	for i := range headers {
		rightAlign[i] = true
	}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
