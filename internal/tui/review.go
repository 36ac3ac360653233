package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/timestable/internal/model"
	"github.com/verte-zerg/timestable/internal/session"
	statsPkg "github.com/verte-zerg/timestable/internal/stats"
)

const reviewChrome = 6

func newReviewTable() table.Model {
	t := table.New(
		table.WithColumns(reviewColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(reviewStyles())
	return t
}

func reviewColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: 10},
		{Title: "Answer", Width: 8},
		{Title: "Result", Width: 9},
		{Title: "Time", Width: 8},
	}
}

func reviewStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#4A4A4A")).
		Bold(false)
	return styles
}

// reviewRows lists attempts newest first.
func reviewRows(attempts []model.Attempt) []table.Row {
	rows := make([]table.Row, 0, len(attempts))
	for i := len(attempts) - 1; i >= 0; i-- {
		a := attempts[i]
		result := "wrong"
		elapsed := statsPkg.EmptyAverage
		if a.Correct {
			result = "correct"
			elapsed = statsPkg.FormatSeconds(a.Elapsed)
		}
		input := a.Input
		if input == "" {
			input = "(blank)"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d × %d", a.Question.A, a.Question.B),
			input,
			result,
			elapsed,
		})
	}
	return rows
}

func (m *Model) loadReview() {
	m.review.SetRows(reviewRows(m.engine.Attempts()))
	m.review.GotoTop()
	m.resizeReview()
}

func (m *Model) resizeReview() {
	if m.height <= 0 {
		return
	}
	height := m.height - reviewChrome
	if height < 3 {
		height = 3
	}
	m.review.SetHeight(height)
}

func (m *Model) renderReview(snap session.Snapshot) string {
	if len(m.review.Rows()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Review"),
			"",
			"No answers yet.",
		)
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Review"),
		"",
		m.review.View(),
		"",
		footerStyle.Render(renderStats(snap, m.width)),
	)
}
