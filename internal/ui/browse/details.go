package browse

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quizdesk/internal/screen"
)

type quizDetailPage struct {
	env    *env
	id     string
	screen *screen.QuizDetail
	table  table.Model
	search textinput.Model
}

func newQuizDetailPage(e *env, id string) page {
	return &quizDetailPage{
		env:    e,
		id:     id,
		screen: screen.NewQuizDetail(e.api, redraw[screen.QuizDetailData](e.bus), e.options),
		table:  newTable(columnsFor(100, "QUESTION", "KEYWORDS"), e.styles),
		search: newFilterInput("search questions"),
	}
}

func (p *quizDetailPage) route() screen.Route { return screen.Route{Name: screen.RouteQuiz, ID: p.id} }
func (p *quizDetailPage) typing() bool { return p.search.Focused() }
func (p *quizDetailPage) close() { p.screen.Close() }
func (p *quizDetailPage) state() state { return stateOf(p.screen.Snapshot()) }

func (p *quizDetailPage) title() string {
	if title := p.screen.Snapshot().Data.Quiz.Title; title != "" {
		return title
	}
	return "Quiz " + p.id
}

func (p *quizDetailPage) start() tea.Cmd {
	return p.env.run(func(ctx context.Context) error { return p.screen.Load(ctx, p.id) })
}

func (p *quizDetailPage) resize(width, height int) {
	if width == 0 {
		return
	}
	p.table.SetColumns(columnsFor(width, "QUESTION", "KEYWORDS"))
	p.table.SetHeight(max(height-11, 3))
}

func (p *quizDetailPage) sync() {
	p.table.SetRows(questionRows(p.screen.Snapshot().Data.Visible()))
}

func (p *quizDetailPage) update(key tea.KeyMsg) tea.Cmd {
	if p.search.Focused() {
		switch key.String() {
		case "enter", "esc":
			p.search.Blur()
			p.table.Focus()
			return nil
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(key)
		_ = p.screen.SetSearch(p.search.Value())
		p.sync()
		return cmd
	}
	switch key.String() {
	case "/":
		p.table.Blur()
		return p.search.Focus()
	case "r":
		return p.start()
	case "e":
		_ = p.screen.Edit()
		return nil
	case "a":
		_ = p.screen.AddQuestions()
		return nil
	case "d":
		return p.env.run(p.screen.Delete)
	case "enter":
		if row := p.table.SelectedRow(); len(row) > 0 {
			p.env.bus.Navigate(screen.QuestionPath(row[0]))
		}
		return nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(key)
	return cmd
}

func (p *quizDetailPage) help() string {
	if p.search.Focused() {
		return "enter/esc: done searching"
	}
	return "enter: open question  /: search  e: edit  a: add questions  d: delete  r: reload  esc: back  q: quit"
}

func (p *quizDetailPage) view() string {
	quiz := p.screen.Snapshot().Data.Quiz
	parts := []string{}
	if quiz.Description != "" {
		parts = append(parts, quiz.Description)
	}
	if quiz.ID != "" {
		parts = append(parts, p.env.styles.muted("ID: "+quiz.ID), "")
	}
	if p.search.Focused() || p.search.Value() != "" {
		parts = append(parts, p.search.View())
	}
	parts = append(parts, p.table.View())
	return strings.Join(parts, "\n")
}

type questionDetailPage struct {
	env    *env
	id     string
	screen *screen.QuestionDetail
}

func newQuestionDetailPage(e *env, id string) page {
	return &questionDetailPage{
		env:    e,
		id:     id,
		screen: screen.NewQuestionDetail(e.api, redraw[screen.QuestionDetailData](e.bus), e.options),
	}
}

func (p *questionDetailPage) route() screen.Route {
	return screen.Route{Name: screen.RouteQuestion, ID: p.id}
}
func (p *questionDetailPage) title() string { return "Question " + p.id }
func (p *questionDetailPage) resize(width, height int) {}
func (p *questionDetailPage) sync() {}
func (p *questionDetailPage) typing() bool { return false }
func (p *questionDetailPage) close() { p.screen.Close() }
func (p *questionDetailPage) state() state { return stateOf(p.screen.Snapshot()) }
func (p *questionDetailPage) help() string { return "e: edit  d: delete  r: reload  esc: back  q: quit" }

func (p *questionDetailPage) start() tea.Cmd {
	return p.env.run(func(ctx context.Context) error { return p.screen.Load(ctx, p.id) })
}

func (p *questionDetailPage) update(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "r":
		return p.start()
	case "e":
		_ = p.screen.Edit()
	case "d":
		return p.env.run(p.screen.Delete)
	}
	return nil
}

func (p *questionDetailPage) view() string {
	question := p.screen.Snapshot().Data.Question
	if question.ID == "" {
		return ""
	}
	return renderQuestion(question, p.env.styles)
}
