package browse

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizdesk/internal/screen"
)

// Model is the Bubble Tea model of the browser. It owns a stack of pages;
// the bottom entry is always the home menu.
type Model struct {
	env     *env
	stack   []page
	spinner spinner.Model
	status  string
	width   int
	height  int
}

// NewModel builds a browser showing the home menu.
func NewModel(ctx context.Context, api screen.CatalogAPI, opts Options) Model {
	b := newBus()
	logger := opts.Logger
	scheduler := screen.SystemScheduler
	if opts.RedirectDelay == 0 {
		scheduler = screen.ImmediateScheduler
	}
	e := &env{
		ctx: ctx,
		api: api,
		bus: b,
		options: screen.Options{
			Router:        b,
			Scheduler:     scheduler,
			RedirectDelay: opts.RedirectDelay,
			Logger:        &logger,
		},
		styles: styles{noColor: opts.NoColor},
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{env: e, stack: []page{&homePage{env: e}}, spinner: s}
}

// Init waits for controller signals and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSignal(m.env.bus), m.spinner.Tick)
}

// Update routes keys to the top page and applies controller signals.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		for _, p := range m.stack {
			p.resize(m.width, m.height)
		}
		return m, nil
	case signalMsg:
		cmds := []tea.Cmd{waitForSignal(m.env.bus)}
		for _, path := range m.env.bus.drain() {
			cmds = append(cmds, m.navigate(path))
		}
		m.top().sync()
		return m, tea.Batch(cmds...)
	case resultMsg:
		m.status = statusFor(typed.err)
		m.top().sync()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	top := m.top()
	if !top.typing() {
		switch key.String() {
		case "q":
			return m, tea.Quit
		case "esc", "backspace":
			return m, m.back()
		}
	}
	m.status = ""
	return m, top.update(key)
}

// View renders the top page inside the frame.
func (m Model) View() string {
	top := m.top()
	st := top.state()
	st.notice = strings.TrimSpace(st.notice)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.env.styles.title(m.breadcrumb()),
		"",
		top.view(),
		"",
		m.statusLine(st),
		m.env.styles.muted(top.help()),
	)
}

func (m Model) statusLine(st state) string {
	switch {
	case st.loading:
		return m.spinner.View() + " Loading..."
	case st.busy:
		return m.spinner.View() + " Saving..."
	case st.err != "":
		return m.env.styles.failure("Error: " + st.err)
	case m.status != "":
		return m.env.styles.failure(m.status)
	default:
		return m.env.styles.notice(st.notice)
	}
}

func (m Model) breadcrumb() string {
	titles := make([]string, 0, len(m.stack)+1)
	titles = append(titles, "quizdesk")
	for _, p := range m.stack[1:] {
		titles = append(titles, p.title())
	}
	return strings.Join(titles, " > ")
}

func (m Model) top() page { return m.stack[len(m.stack)-1] }

// back pops the top page and reloads the one below.
func (m *Model) back() tea.Cmd {
	if len(m.stack) < 2 {
		return nil
	}
	m.pop()
	return m.top().start()
}

func (m *Model) pop() {
	m.top().close()
	m.stack = m.stack[:len(m.stack)-1]
}

// navigate applies a router destination to the stack.
func (m *Model) navigate(path string) tea.Cmd {
	route, ok := screen.ParsePath(path)
	if !ok {
		m.status = "unknown location: " + path
		return nil
	}
	routes := make([]screen.Route, 0, len(m.stack))
	for _, p := range m.stack {
		routes = append(routes, p.route())
	}
	keep, push := planNavigation(routes, route)
	for len(m.stack) > keep {
		m.pop()
	}
	if !push {
		return m.top().start()
	}
	p := m.open(route)
	p.resize(m.width, m.height)
	m.stack = append(m.stack, p)
	return p.start()
}

func (m *Model) open(route screen.Route) page {
	switch route.Name {
	case screen.RouteQuizzes:
		return newQuizListPage(m.env)
	case screen.RouteQuestions:
		return newQuestionListPage(m.env)
	case screen.RouteQuiz:
		return newQuizDetailPage(m.env, route.ID)
	case screen.RouteQuestion:
		return newQuestionDetailPage(m.env, route.ID)
	case screen.RouteCreateQuiz:
		return newCreateQuizPage(m.env)
	case screen.RouteUpdateQuiz:
		return newUpdateQuizPage(m.env, route.ID)
	case screen.RouteAddQuestions:
		return newAddQuestionsPage(m.env, route.ID)
	case screen.RouteCreateQuestion:
		return newCreateQuestionPage(m.env)
	case screen.RouteUpdateQuestion:
		return newUpdateQuestionPage(m.env, route.ID)
	default:
		return &homePage{env: m.env}
	}
}

func (m Model) closeAll() {
	for _, p := range m.stack {
		p.close()
	}
}

// planNavigation decides how many stack entries survive a move to target and
// whether a new page is pushed. Returning to a page already on the stack
// unwinds to it. Forms are replaced by the page they lead to.
func planNavigation(stack []screen.Route, target screen.Route) (keep int, push bool) {
	if target.Name == screen.RouteHome {
		return 1, false
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == target {
			return i + 1, false
		}
	}
	if len(stack) > 1 && transient(stack[len(stack)-1]) {
		return len(stack) - 1, true
	}
	return len(stack), true
}

func transient(route screen.Route) bool {
	switch route.Name {
	case screen.RouteCreateQuiz, screen.RouteUpdateQuiz, screen.RouteAddQuestions,
		screen.RouteCreateQuestion, screen.RouteUpdateQuestion:
		return true
	}
	return false
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, screen.ErrBusy):
		return "Please wait for the current request to finish."
	case errors.Is(err, screen.ErrNotReady):
		return "Nothing loaded yet; press r to reload."
	case err == nil, errors.Is(err, screen.ErrSuperseded), errors.Is(err, screen.ErrClosed):
		return ""
	}
	return err.Error()
}
