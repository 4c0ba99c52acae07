package browse

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizdesk/pkg/catalog"
)

type styles struct {
	noColor bool
}

func (s styles) stylize(text string, color lipgloss.Color, bold bool) string {
	if s.noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}

func (s styles) title(text string) string { return s.stylize(text, lipgloss.Color("33"), true) }
func (s styles) muted(text string) string { return s.stylize(text, lipgloss.Color("244"), false) }
func (s styles) notice(text string) string { return s.stylize(text, lipgloss.Color("42"), false) }
func (s styles) failure(text string) string {
	return s.stylize(text, lipgloss.Color("196"), true)
}

func (s styles) table() table.Styles {
	styles := table.DefaultStyles()
	if s.noColor {
		styles.Selected = styles.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

func newTable(columns []table.Column, st styles) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(st.table())
	return t
}

// columnsFor splits width between a fixed id column and flexible text columns.
func columnsFor(width int, titles ...string) []table.Column {
	const idWidth = 26
	columns := []table.Column{{Title: "ID", Width: idWidth}}
	if len(titles) == 0 {
		return columns
	}
	rest := width - idWidth - 2*len(titles) - 2
	if rest < 20*len(titles) {
		rest = 20 * len(titles)
	}
	first := rest * 2 / 3
	if len(titles) == 1 {
		first = rest
	}
	columns = append(columns, table.Column{Title: titles[0], Width: first})
	for _, title := range titles[1:] {
		columns = append(columns, table.Column{Title: title, Width: (rest - first) / (len(titles) - 1)})
	}
	return columns
}

func quizRows(quizzes []catalog.Quiz) []table.Row {
	rows := make([]table.Row, 0, len(quizzes))
	for _, quiz := range quizzes {
		rows = append(rows, table.Row{quiz.ID, oneLine(quiz.Title), strconv.Itoa(len(quiz.Questions))})
	}
	return rows
}

func questionRows(questions []catalog.Question) []table.Row {
	rows := make([]table.Row, 0, len(questions))
	for _, question := range questions {
		rows = append(rows, table.Row{question.ID, oneLine(question.Text), strings.Join(question.Keywords, ", ")})
	}
	return rows
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// renderQuestion shows the full question with its answer marked.
func renderQuestion(question catalog.Question, st styles) string {
	lines := []string{st.title(oneLine(question.Text))}
	for i, option := range question.Options {
		line := "  [" + strconv.Itoa(i) + "] " + option
		if i == question.CorrectAnswerIndex {
			line = st.notice(line + "  (correct)")
		}
		lines = append(lines, line)
	}
	if len(question.Keywords) > 0 {
		lines = append(lines, "", "Keywords: "+strings.Join(question.Keywords, ", "))
	}
	lines = append(lines, st.muted("ID: "+question.ID))
	return strings.Join(lines, "\n")
}
