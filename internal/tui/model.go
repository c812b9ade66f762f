// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/quiz"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/store"
)

const (
	noticeFadeAfter  = 2 * time.Second
	noticeClearAfter = 4 * time.Second
)

// Model implements the Bubble Tea quiz UI.
type Model struct {
	session *quiz.Session
	store   *store.Store

	width  int
	height int

	input textinput.Model

	notice      string
	noticeSeq   int
	noticeFaded bool
	errMsg      string

	drawer drawer

	startedAt time.Time
	saved     bool
	saveErr   error
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	closeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14"))
	fadedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	reviewStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
)

type noticeFadeMsg struct{ seq int }

type noticeClearMsg struct{ seq int }

// NewModel constructs the quiz UI around a session. st may be nil, in which
// case the run is not recorded.
func NewModel(session *quiz.Session, st *store.Store) *Model {
	m := &Model{
		session:   session,
		store:     st,
		startedAt: time.Now(),
	}
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "your answer"
	m.input.CharLimit = 64
	m.input.Cursor.SetMode(cursor.CursorBlink)
	m.input.Focus()
	m.drawer = newDrawer()
	if _, ok := session.Current(); !ok {
		notice, err := session.Next()
		m.handleSessionErr(err)
		m.notice = notice
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.notice != "" {
		cmds = append(cmds, m.setNotice(m.notice))
	}
	return tea.Batch(cmds...)
}

// SaveErr returns the error of the history write at quit, if any.
func (m *Model) SaveErr() error {
	return m.saveErr
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.drawer.resize(msg.Width, msg.Height)
		return m, nil
	case noticeFadeMsg:
		if msg.seq == m.noticeSeq {
			m.noticeFaded = true
		}
		return m, nil
	case noticeClearMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeFaded = false
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.finishRun()
		return m, tea.Quit
	case tea.KeyTab:
		if m.drawer.open {
			m.drawer.close()
			return m, nil
		}
		m.drawer.openFor(m.session)
		return m, nil
	}
	if m.drawer.open {
		return m, m.handleDrawerKey(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m, m.handleEnter()
	case tea.KeyCtrlR:
		notice, err := m.session.ToggleReview()
		m.handleSessionErr(err)
		m.input.Reset()
		return m, m.setNotice(notice)
	case tea.KeyCtrlE:
		res, err := m.session.Reveal()
		if err != nil {
			return m, nil
		}
		m.input.SetValue(res.Question.Answer)
		return m, nil
	}
	if m.session.Waiting() || !m.hasQuestion() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) hasQuestion() bool {
	_, ok := m.session.Current()
	return ok
}

func (m *Model) handleEnter() tea.Cmd {
	if m.session.Waiting() {
		notice, err := m.session.Continue()
		m.handleSessionErr(err)
		m.input.Reset()
		return m.setNotice(notice)
	}
	if !m.hasQuestion() || strings.TrimSpace(m.input.Value()) == "" {
		return nil
	}
	res, err := m.session.Submit(m.input.Value())
	if err != nil {
		m.handleSessionErr(err)
		return nil
	}
	return m.setNotice(res.Notice)
}

func (m *Model) handleDrawerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.drawer.close()
		return nil
	case tea.KeyEnter:
		notice, err := m.drawer.apply(m.session)
		m.drawer.close()
		m.input.Reset()
		m.handleSessionErr(err)
		return m.setNotice(notice)
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		m.drawer.table, _ = m.drawer.table.Update(msg)
		return nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.drawer.handleRune(r)
		}
	}
	return nil
}

func (m *Model) handleSessionErr(err error) {
	switch {
	case err == nil:
		m.errMsg = ""
	case errors.Is(err, quiz.ErrEmptyPool):
		m.errMsg = "No elements match the filter. Press tab to change it."
	default:
		m.errMsg = err.Error()
	}
}

// setNotice shows text and schedules its fade and clear. Timers of older
// notices are ignored through the sequence number.
func (m *Model) setNotice(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	m.noticeSeq++
	seq := m.noticeSeq
	m.notice = text
	m.noticeFaded = false
	return tea.Batch(
		tea.Tick(noticeFadeAfter, func(time.Time) tea.Msg { return noticeFadeMsg{seq: seq} }),
		tea.Tick(noticeClearAfter, func(time.Time) tea.Msg { return noticeClearMsg{seq: seq} }),
	)
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.drawer.open {
		body = m.drawer.view(m.session)
	} else {
		body = m.renderQuiz()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	main := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) renderQuiz() string {
	title := titleStyle.Render("Chemistry Quiz")
	if m.session.Mode() == quiz.ModeReview {
		title += "  " + reviewStyle.Render(fmt.Sprintf("review · %d left", m.session.MissedCount()))
	}
	lines := []string{title, ""}

	if m.errMsg != "" {
		lines = append(lines, incorrectStyle.Render(m.errMsg))
		return strings.Join(lines, "\n")
	}
	q, ok := m.session.Current()
	if !ok {
		return strings.Join(lines, "\n")
	}
	for _, line := range wrapText(q.Prompt, m.contentWidth()) {
		lines = append(lines, promptStyle.Render(line))
	}
	lines = append(lines, helpStyle.Render(q.Type.Label()), "", m.input.View(), "")

	if res, ok := m.session.LastResult(); ok {
		lines = append(lines, renderResult(res))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderNotice(), "", helpStyle.Render(m.helpLine()))
	return strings.Join(lines, "\n")
}

func renderResult(res quiz.Result) string {
	if res.Revealed {
		return incorrectStyle.Render("Answer: " + res.Question.Answer)
	}
	switch res.Status {
	case model.StatusCorrect:
		return correctStyle.Render("Correct!")
	case model.StatusClose:
		return closeStyle.Render("Close. The answer is " + res.Question.Answer)
	default:
		return incorrectStyle.Render("Incorrect. The answer is " + res.Question.Answer)
	}
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeFaded {
		return fadedStyle.Render(m.notice)
	}
	return noticeStyle.Render(m.notice)
}

func (m *Model) helpLine() string {
	if m.session.Waiting() {
		return "enter continue · ctrl+r review · tab settings · ctrl+c quit"
	}
	return "enter submit · ctrl+e reveal · ctrl+r review · tab settings · ctrl+c quit"
}

func (m *Model) renderFooter() string {
	st := m.session.Stats()
	counts := m.session.Counts()
	segments := []string{
		fmt.Sprintf("Streak %d", st.Streak),
		fmt.Sprintf("Best %d", st.BestStreak),
		fmt.Sprintf("Pool %d/%d", m.session.PoolRemaining(), m.session.PoolSize()),
		fmt.Sprintf("Missed %d", m.session.MissedCount()),
		fmt.Sprintf("✓ %d  ~ %d  ✗ %d", counts.Correct, counts.Close, counts.Incorrect),
		m.session.Mode().String(),
	}
	footer := strings.Join(segments, "  ")
	if m.width > 0 {
		footer = truncate(footer, m.width)
	}
	return footerStyle.Render(footer)
}

// finishRun records the run in the history store once.
func (m *Model) finishRun() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true
	entries := m.session.Answers()
	if len(entries) == 0 {
		return
	}
	run := model.RunRecord{
		StartedAt:  m.startedAt,
		EndedAt:    time.Now(),
		Filter:     m.session.Filter().String(),
		Modes:      m.session.Modes().String(),
		Counts:     m.session.Counts(),
		BestStreak: m.session.Stats().BestStreak,
	}
	answers := make([]model.AnswerRecord, 0, len(entries))
	for _, e := range entries {
		answers = append(answers, model.AnswerRecord{
			Key:    e.Question.Key(),
			Symbol: e.Question.Symbol,
			Type:   e.Question.Type,
			Prompt: e.Question.Prompt,
			Status: e.Status,
		})
	}
	if _, err := m.store.InsertRun(context.Background(), run, answers); err != nil {
		m.saveErr = fmt.Errorf("failed to save run: %w", err)
	}
}

func answerRows(entries []quiz.Entry, width int) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		rows = append(rows, table.Row{
			truncate(e.Question.Prompt, width),
			e.Question.Answer,
			string(e.Status),
		})
	}
	return rows
}
