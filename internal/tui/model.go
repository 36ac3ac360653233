// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/timestable/internal/model"
	"github.com/verte-zerg/timestable/internal/ranges"
	"github.com/verte-zerg/timestable/internal/session"
	statsPkg "github.com/verte-zerg/timestable/internal/stats"
)

type field int

const (
	fieldAnswer field = iota
	fieldFirstMin
	fieldFirstMax
	fieldSecondMin
	fieldSecondMax
	fieldCount
)

// tickMsg refreshes the session clock of one session.
type tickMsg struct {
	session string
}

// advanceMsg fires the continuation scheduled after an answer.
type advanceMsg struct {
	ticket session.Ticket
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	config model.Config
	ranges *ranges.Config
	engine *session.Engine
	logger *slog.Logger

	width  int
	height int

	answer      textinput.Model
	rangeInputs [fieldCount - 1]textinput.Model
	focus       field
	shownSeq    uint64

	reviewing bool
	review    table.Model

	keys keyMap
	help help.Model
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a practice TUI model.
func NewModel(cfg model.Config, rc *ranges.Config, engine *session.Engine, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		config: cfg,
		ranges: rc,
		engine: engine,
		logger: logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.answer = newNumberInput("= ", 7)
	for i := range m.rangeInputs {
		m.rangeInputs[i] = newNumberInput("", 3)
	}
	m.refreshRangeInputs()
	m.review = newReviewTable()
	m.setFocus(fieldAnswer)
	return m
}

func newNumberInput(prompt string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.PromptStyle = promptStyle
	input.CharLimit = limit
	input.Width = limit
	return input
}

// Init implements tea.Model. It starts the first session.
func (m *Model) Init() tea.Cmd {
	m.engine.Start()
	m.syncQuestion()
	return tea.Batch(textinput.Blink, m.tickCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeReview()
		return m, nil
	case tickMsg:
		if msg.session != m.engine.SessionID() || !m.engine.Active() {
			return m, nil
		}
		return m, m.tickCmd()
	case advanceMsg:
		if m.engine.Fire(msg.ticket) {
			m.syncQuestion()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.reviewing = false
		m.engine.Start()
		m.syncQuestion()
		m.setFocus(fieldAnswer)
		return m, m.tickCmd()
	case key.Matches(msg, m.keys.Review):
		m.reviewing = !m.reviewing
		if m.reviewing {
			m.loadReview()
		}
		return m, nil
	}

	if m.reviewing {
		var cmd tea.Cmd
		m.review, cmd = m.review.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.commitRange(m.focus)
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.commitRange(m.focus)
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.focus == fieldAnswer {
			return m, m.submit()
		}
		m.commitRange(m.focus)
		return m, nil
	}

	if msg.Type == tea.KeySpace || (msg.Type == tea.KeyRunes && !numeric(msg.Runes)) {
		return m, nil
	}
	var cmd tea.Cmd
	if m.focus == fieldAnswer {
		m.answer, cmd = m.answer.Update(msg)
	} else {
		i := m.focus - 1
		m.rangeInputs[i], cmd = m.rangeInputs[i].Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.engine.Snapshot()
	var body string
	if m.reviewing {
		body = m.renderReview(snap)
	} else {
		body = m.renderPractice(snap)
	}
	footer := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	content := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

func (m *Model) renderPractice(snap session.Snapshot) string {
	lines := []string{
		titleStyle.Render(m.config.Title),
		"",
		m.renderRanges(),
		"",
		questionStyle.Render(fmt.Sprintf("%d × %d", snap.Question.A, snap.Question.B)) + " " + m.answer.View(),
		renderFeedback(snap.Feedback),
		"",
		footerStyle.Render(renderStats(snap, m.width)),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderRanges() string {
	return strings.Join([]string{
		labelStyle.Render("First"),
		m.rangeInputs[0].View(),
		labelStyle.Render("to"),
		m.rangeInputs[1].View(),
		labelStyle.Render("  Second"),
		m.rangeInputs[2].View(),
		labelStyle.Render("to"),
		m.rangeInputs[3].View(),
	}, " ")
}

func renderFeedback(fb model.Feedback) string {
	switch fb.Kind {
	case model.FeedbackCorrect:
		return correctStyle.Render(fb.Text)
	case model.FeedbackIncorrect:
		return incorrectStyle.Render(fb.Text)
	default:
		return ""
	}
}

// renderStats formats the running statistics, truncated to width when set.
func renderStats(snap session.Snapshot, width int) string {
	avg := statsPkg.EmptyAverage
	if snap.HasAverage {
		avg = statsPkg.FormatSeconds(snap.AverageTime)
	}
	segments := []string{
		fmt.Sprintf("Correct %d", snap.Correct),
		fmt.Sprintf("Incorrect %d", snap.Incorrect),
		fmt.Sprintf("Accuracy %.1f%%", snap.Accuracy),
		fmt.Sprintf("Avg %s", avg),
		fmt.Sprintf("Time %s", statsPkg.FormatElapsed(snap.Elapsed)),
	}
	line := strings.Join(segments, " · ")
	if width > 0 {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}

func (m *Model) submit() tea.Cmd {
	sched, ok := m.engine.Submit(m.answer.Value())
	if !ok {
		return nil
	}
	ticket := sched.Ticket
	return tea.Tick(sched.Delay, func(time.Time) tea.Msg {
		return advanceMsg{ticket: ticket}
	})
}

// commitRange applies the edited range field and regenerates the question
// when the stored value changed.
func (m *Model) commitRange(f field) {
	if f == fieldAnswer {
		return
	}
	setters := [...]func(int) (int, bool){
		m.ranges.SetFirstMin,
		m.ranges.SetFirstMax,
		m.ranges.SetSecondMin,
		m.ranges.SetSecondMax,
	}
	raw := strings.TrimSpace(m.rangeInputs[f-1].Value())
	v, err := strconv.Atoi(raw)
	if err != nil {
		m.refreshRangeInputs()
		return
	}
	stored, changed := setters[f-1](v)
	m.refreshRangeInputs()
	if !changed {
		return
	}
	m.logger.Debug("range changed", "field", int(f), "input", v, "stored", stored)
	m.engine.Regenerate()
	m.syncQuestion()
}

func (m *Model) refreshRangeInputs() {
	r := m.ranges.Snapshot()
	for i, v := range []int{r.FirstMin, r.FirstMax, r.SecondMin, r.SecondMax} {
		m.rangeInputs[i].SetValue(strconv.Itoa(v))
		m.rangeInputs[i].CursorEnd()
	}
}

// syncQuestion clears the answer field once the engine moved on.
func (m *Model) syncQuestion() {
	seq := m.engine.Snapshot().Seq
	if seq == m.shownSeq {
		return
	}
	m.shownSeq = seq
	m.answer.Reset()
}

func (m *Model) setFocus(f field) {
	m.focus = f
	if f == fieldAnswer {
		m.answer.Focus()
	} else {
		m.answer.Blur()
	}
	for i := range m.rangeInputs {
		if field(i+1) == f {
			m.rangeInputs[i].Focus()
		} else {
			m.rangeInputs[i].Blur()
		}
	}
}

func (m *Model) tickCmd() tea.Cmd {
	id := m.engine.SessionID()
	return tea.Tick(m.config.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{session: id}
	})
}

func numeric(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return len(runes) > 0
}
