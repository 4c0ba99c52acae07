package browse

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quizdesk/internal/screen"
)

// env is shared by every page of one browser.
type env struct {
	ctx     context.Context
	api     screen.CatalogAPI
	bus     *bus
	options screen.Options
	styles  styles
}

// resultMsg carries the outcome of a round-trip started by a page.
type resultMsg struct {
	err error
}

func (e *env) run(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg { return resultMsg{err: fn(e.ctx)} }
}

// state is what the frame around a page shows.
type state struct {
	busy    bool
	err     string
	notice  string
	loading bool
}

func stateOf[T any](snap screen.Snapshot[T]) state {
	return state{
		busy:    snap.Busy(),
		err:     snap.Err,
		notice:  snap.Notice,
		loading: snap.Phase == screen.PhaseLoading,
	}
}

// page is one entry of the navigation stack.
type page interface {
	route() screen.Route
	title() string
	start() tea.Cmd
	update(key tea.KeyMsg) tea.Cmd
	resize(width, height int)
	sync()
	state() state
	typing() bool
	help() string
	view() string
	close()
}

// lister is the surface shared by the quiz and question list screens.
type lister[D any] interface {
	Load(ctx context.Context) error
	SetFilter(filter string) error
	Delete(ctx context.Context, id string) error
	Open(id string) error
	Create() error
	Edit(id string) error
	Snapshot() screen.Snapshot[D]
	Close()
}

// listPage renders a filterable list screen as a table.
type listPage[D any] struct {
	env     *env
	name    string
	heading string
	headers []string
	screen  lister[D]
	rows    func(D) []table.Row
	table   table.Model
	filter  textinput.Model
}

func newFilterInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = placeholder
	input.CharLimit = 120
	return input
}

func newQuizListPage(e *env) page {
	return &listPage[screen.QuizListData]{
		env:     e,
		name:    screen.RouteQuizzes,
		heading: "Quizzes",
		headers: []string{"TITLE", "QUESTIONS"},
		screen:  screen.NewQuizList(e.api, redraw[screen.QuizListData](e.bus), e.options),
		rows:    func(d screen.QuizListData) []table.Row { return quizRows(d.Visible()) },
		table:   newTable(columnsFor(100, "TITLE", "QUESTIONS"), e.styles),
		filter:  newFilterInput("filter by title"),
	}
}

func newQuestionListPage(e *env) page {
	return &listPage[screen.QuestionListData]{
		env:     e,
		name:    screen.RouteQuestions,
		heading: "Questions",
		headers: []string{"TEXT", "KEYWORDS"},
		screen:  screen.NewQuestionList(e.api, redraw[screen.QuestionListData](e.bus), e.options),
		rows:    func(d screen.QuestionListData) []table.Row { return questionRows(d.Visible()) },
		table:   newTable(columnsFor(100, "TEXT", "KEYWORDS"), e.styles),
		filter:  newFilterInput("filter by text"),
	}
}

func (p *listPage[D]) route() screen.Route { return screen.Route{Name: p.name} }
func (p *listPage[D]) title() string { return p.heading }
func (p *listPage[D]) typing() bool { return p.filter.Focused() }
func (p *listPage[D]) close() { p.screen.Close() }

func (p *listPage[D]) start() tea.Cmd {
	return p.env.run(p.screen.Load)
}

func (p *listPage[D]) resize(width, height int) {
	if width == 0 {
		return
	}
	p.table.SetColumns(columnsFor(width, p.headers...))
	p.table.SetHeight(max(height-8, 3))
}

func (p *listPage[D]) sync() {
	p.table.SetRows(p.rows(p.screen.Snapshot().Data))
}

func (p *listPage[D]) state() state { return stateOf(p.screen.Snapshot()) }

func (p *listPage[D]) selectedID() (string, bool) {
	row := p.table.SelectedRow()
	if len(row) == 0 {
		return "", false
	}
	return row[0], true
}

func (p *listPage[D]) update(key tea.KeyMsg) tea.Cmd {
	if p.filter.Focused() {
		switch key.String() {
		case "enter", "esc":
			p.filter.Blur()
			p.table.Focus()
			return nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(key)
		_ = p.screen.SetFilter(p.filter.Value())
		p.sync()
		return cmd
	}
	switch key.String() {
	case "/":
		p.table.Blur()
		return p.filter.Focus()
	case "r":
		return p.start()
	case "n":
		_ = p.screen.Create()
		return nil
	case "enter":
		if id, ok := p.selectedID(); ok {
			_ = p.screen.Open(id)
		}
		return nil
	case "e":
		if id, ok := p.selectedID(); ok {
			_ = p.screen.Edit(id)
		}
		return nil
	case "d":
		if id, ok := p.selectedID(); ok {
			return p.env.run(func(ctx context.Context) error { return p.screen.Delete(ctx, id) })
		}
		return nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(key)
	return cmd
}

func (p *listPage[D]) help() string {
	if p.filter.Focused() {
		return "enter/esc: done filtering"
	}
	return "enter: open  /: filter  n: new  e: edit  d: delete  r: reload  esc: back  q: quit"
}

func (p *listPage[D]) view() string {
	parts := []string{}
	if p.filter.Focused() || p.filter.Value() != "" {
		parts = append(parts, p.filter.View())
	}
	parts = append(parts, p.table.View())
	return strings.Join(parts, "\n")
}

// homePage is the entry menu.
type homePage struct {
	env    *env
	cursor int
}

var homeEntries = []struct {
	label string
	path  string
}{
	{label: "Quizzes", path: screen.QuizzesPath},
	{label: "Questions", path: screen.QuestionsPath},
}

func (p *homePage) route() screen.Route { return screen.Route{Name: screen.RouteHome} }
func (p *homePage) title() string { return "Home" }
func (p *homePage) start() tea.Cmd { return nil }
func (p *homePage) resize(width, height int) {}
func (p *homePage) sync() {}
func (p *homePage) state() state { return state{} }
func (p *homePage) typing() bool { return false }
func (p *homePage) close() {}
func (p *homePage) help() string { return "up/down: move  enter: open  q: quit" }

func (p *homePage) update(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(homeEntries)-1 {
			p.cursor++
		}
	case "enter":
		p.env.bus.Navigate(homeEntries[p.cursor].path)
	}
	return nil
}

func (p *homePage) view() string {
	lines := make([]string, 0, len(homeEntries))
	for i, entry := range homeEntries {
		if i == p.cursor {
			lines = append(lines, p.env.styles.title("> "+entry.label))
			continue
		}
		lines = append(lines, "  "+entry.label)
	}
	return strings.Join(lines, "\n")
}
