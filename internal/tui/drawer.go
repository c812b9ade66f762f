package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/quiz"
)

const (
	promptColWidth = 36
	tableHeight    = 8
)

var (
	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	onStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	offStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// drawer holds the settings being edited. Changes apply only on enter.
type drawer struct {
	open   bool
	filter model.FilterConfig
	modes  model.ModeSet
	table  table.Model
}

func newDrawer() drawer {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Question", Width: promptColWidth},
			{Title: "Answer", Width: 16},
			{Title: "Result", Width: 9},
		}),
		table.WithHeight(tableHeight),
	)
	t.SetStyles(answerTableStyles())
	return drawer{table: t}
}

func (d *drawer) openFor(s *quiz.Session) {
	d.open = true
	d.filter = s.Filter()
	d.modes = s.Modes()
	d.table.SetRows(answerRows(s.Answers(), promptColWidth))
	d.table.GotoTop()
	d.table.Focus()
}

func (d *drawer) close() {
	d.open = false
	d.table.Blur()
}

func (d *drawer) resize(_, height int) {
	h := tableHeight
	if height > 0 && height-20 < h {
		h = height - 20
	}
	if h < 2 {
		h = 2
	}
	d.table.SetHeight(h)
}

func (d *drawer) handleRune(r rune) {
	switch r {
	case '1', '2', '3', '4':
		t := model.QuestionTypes[r-'1']
		d.modes[t] = !d.modes[t]
	case 'c':
		d.filter.Chem20 = !d.filter.Chem20
	case 'm':
		d.filter.MainGroup = !d.filter.MainGroup
	case 't':
		d.filter.Transition = !d.filter.Transition
	case 'r':
		d.filter.IncludeRareEarths = !d.filter.IncludeRareEarths
	case '-':
		if d.filter.MaxRow > 1 {
			d.filter.MaxRow--
		}
	case '=', '+':
		if d.filter.MaxRow < model.MaxPeriod {
			d.filter.MaxRow++
		}
	}
}

// apply hands the edited settings to the session. The filter is replaced
// wholesale when it changed; modes take effect from the next question.
func (d *drawer) apply(s *quiz.Session) (string, error) {
	s.SetModes(d.modes)
	if d.filter == s.Filter() {
		return "", nil
	}
	return s.UpdateFilter(d.filter)
}

func (d *drawer) view(s *quiz.Session) string {
	lines := []string{titleStyle.Render("Settings"), "", sectionStyle.Render("Question types")}
	for i, t := range model.QuestionTypes {
		lines = append(lines, toggleLine(fmt.Sprintf("%d", i+1), t.Label(), d.modes[t]))
	}
	lines = append(lines,
		"",
		sectionStyle.Render("Elements"),
		toggleLine("c", "Chem 20 set", d.filter.Chem20),
		toggleLine("m", "Main group", d.filter.MainGroup),
		toggleLine("t", "Transition metals", d.filter.Transition),
		toggleLine("r", "Include rare earths", d.filter.IncludeRareEarths),
		onStyle.Render(fmt.Sprintf("-/=  Max row: %d", d.filter.MaxRow)),
		"",
		sectionStyle.Render(fmt.Sprintf("Answered (%d)", len(s.Answers()))),
	)
	if len(s.Answers()) == 0 {
		lines = append(lines, offStyle.Render("Nothing answered yet."))
	} else {
		lines = append(lines, d.table.View())
	}
	lines = append(lines, "", helpStyle.Render("enter apply · esc cancel · ↑/↓ scroll"))
	return drawerStyle.Render(strings.Join(lines, "\n"))
}

func toggleLine(key, label string, on bool) string {
	if on {
		return onStyle.Render(fmt.Sprintf("%-4s [x] %s", key, label))
	}
	return offStyle.Render(fmt.Sprintf("%-4s [ ] %s", key, label))
}

func answerTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
