package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"quizdesk/pkg/catalog"
)

// printer writes screen data as plain text, colored only on a terminal.
type printer struct {
	w       io.Writer
	noColor bool
}

func (p printer) stylize(text string, color lipgloss.Color, bold bool) string {
	if p.noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}

func (p printer) heading(text string) {
	fmt.Fprintln(p.w, p.stylize(text, lipgloss.Color("33"), true))
}

func (p printer) notice(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(p.w, p.stylize(text, lipgloss.Color("42"), false))
}

func (p printer) muted(text string) {
	fmt.Fprintln(p.w, p.stylize(text, lipgloss.Color("244"), false))
}

func (p printer) grid(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if !p.noColor {
		header := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
		t = t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return lipgloss.NewStyle()
		})
	}
	fmt.Fprintln(p.w, t.Render())
}

func (p printer) quizzes(quizzes []catalog.Quiz) {
	if len(quizzes) == 0 {
		p.muted("No quizzes found.")
		return
	}
	rows := make([][]string, 0, len(quizzes))
	for _, quiz := range quizzes {
		rows = append(rows, []string{quiz.ID, truncate(quiz.Title, 48), strconv.Itoa(len(quiz.Questions))})
	}
	p.grid([]string{"ID", "TITLE", "QUESTIONS"}, rows)
}

func (p printer) questions(questions []catalog.Question) {
	if len(questions) == 0 {
		p.muted("No questions found.")
		return
	}
	rows := make([][]string, 0, len(questions))
	for _, question := range questions {
		rows = append(rows, []string{question.ID, truncate(question.Text, 60), strings.Join(question.Keywords, ", ")})
	}
	p.grid([]string{"ID", "TEXT", "KEYWORDS"}, rows)
}

func (p printer) quiz(quiz catalog.Quiz, questions []catalog.Question) {
	p.heading(quiz.Title)
	if quiz.Description != "" {
		fmt.Fprintln(p.w, quiz.Description)
	}
	p.muted("ID: " + quiz.ID)
	fmt.Fprintln(p.w)
	p.questions(questions)
}

func (p printer) question(question catalog.Question) {
	p.heading(question.Text)
	for i, option := range question.Options {
		line := fmt.Sprintf("  [%d] %s", i, option)
		if i == question.CorrectAnswerIndex {
			line = p.stylize(line+"  (correct)", lipgloss.Color("42"), false)
		}
		fmt.Fprintln(p.w, line)
	}
	if len(question.Keywords) > 0 {
		fmt.Fprintln(p.w, "Keywords: "+strings.Join(question.Keywords, ", "))
	}
	p.muted("ID: " + question.ID)
}

// truncate shortens text for table cells.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}
