package browse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quizdesk/internal/screen"
)

// formScreen is the part of a screen form the page drives.
type formScreen interface {
	Submit(ctx context.Context) error
	Back() error
	RedirectPending() bool
	Close()
}

// formField binds one text input to a value of the form data.
type formField struct {
	name  string
	input textinput.Model
	value func() string
	set   func(string) error
}

func newField(name string, limit int, value func() string, set func(string) error) formField {
	input := textinput.New()
	input.Prompt = fmt.Sprintf("%-13s", name+":")
	input.CharLimit = limit
	return formField{name: strings.ToLower(name), input: input, value: value, set: set}
}

// formPage edits one record through its text inputs. The inputs are refilled
// from the form data whenever the form becomes Ready, which happens once a
// record is loaded and after every save.
type formPage struct {
	env     *env
	target  screen.Route
	heading string
	leaving string
	form    formScreen
	fields  []formField
	focus   int
	phase   func() screen.Phase
	snap    func() state
	load    func(ctx context.Context) error
	synced  screen.Phase
}

func (p *formPage) route() screen.Route { return p.target }
func (p *formPage) title() string { return p.heading }
func (p *formPage) resize(width, height int) {}
func (p *formPage) typing() bool { return true }
func (p *formPage) close() { p.form.Close() }
func (p *formPage) state() state { return p.snap() }

func (p *formPage) start() tea.Cmd {
	if p.load != nil {
		return p.env.run(p.load)
	}
	return textinput.Blink
}

func (p *formPage) sync() {
	phase := p.phase()
	if phase == screen.PhaseReady && p.synced != screen.PhaseReady {
		p.fill()
	}
	p.synced = phase
}

func (p *formPage) fill() {
	for i := range p.fields {
		p.fields[i].input.SetValue(p.fields[i].value())
		p.fields[i].input.CursorEnd()
	}
}

// apply writes every input into the form, in field order.
func (p *formPage) apply() error {
	for _, f := range p.fields {
		if err := f.set(f.input.Value()); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

func (p *formPage) move(step int) tea.Cmd {
	p.fields[p.focus].input.Blur()
	p.focus = (p.focus + step + len(p.fields)) % len(p.fields)
	return p.fields[p.focus].input.Focus()
}

func (p *formPage) update(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		_ = p.form.Back()
		return nil
	case "tab", "down":
		return p.move(1)
	case "shift+tab", "up":
		return p.move(-1)
	case "enter":
		if p.focus < len(p.fields)-1 {
			return p.move(1)
		}
		if err := p.apply(); err != nil {
			return failed(err)
		}
		return p.env.run(p.form.Submit)
	}
	field := &p.fields[p.focus]
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(key)
	_ = field.set(field.input.Value())
	return cmd
}

func (p *formPage) help() string {
	return "tab: next field  enter: save  esc: back"
}

func (p *formPage) view() string {
	lines := make([]string, 0, len(p.fields)+2)
	for _, f := range p.fields {
		lines = append(lines, f.input.View())
	}
	if p.form.RedirectPending() {
		lines = append(lines, "", p.env.styles.muted(p.leaving))
	}
	return strings.Join(lines, "\n")
}

func failed(err error) tea.Cmd {
	return func() tea.Msg { return resultMsg{err: err} }
}

func newFormPage[T any](e *env, route screen.Route, heading, leaving string, form formScreen, snapshot func() screen.Snapshot[T], fields []formField) *formPage {
	p := &formPage{
		env:     e,
		target:  route,
		heading: heading,
		leaving: leaving,
		form:    form,
		fields:  fields,
		phase:   func() screen.Phase { return snapshot().Phase },
		snap:    func() state { return stateOf(snapshot()) },
	}
	p.fill()
	p.fields[0].input.Focus()
	return p
}

type quizEditor interface {
	SetTitle(string) error
	SetDescription(string) error
	Snapshot() screen.Snapshot[screen.QuizFormData]
}

func quizFields(form quizEditor) []formField {
	data := func() screen.QuizFormData { return form.Snapshot().Data }
	return []formField{
		newField("Title", 200, func() string { return data().Title }, form.SetTitle),
		newField("Description", 1000, func() string { return data().Description }, form.SetDescription),
	}
}

func newCreateQuizPage(e *env) page {
	form := screen.NewCreateQuizForm(e.api, redraw[screen.QuizFormData](e.bus), e.options)
	return newFormPage(e, screen.Route{Name: screen.RouteCreateQuiz}, "New quiz", "Opening the new quiz...",
		form, form.Snapshot, quizFields(form))
}

func newUpdateQuizPage(e *env, id string) page {
	form := screen.NewUpdateQuizForm(e.api, redraw[screen.QuizFormData](e.bus), e.options)
	p := newFormPage(e, screen.Route{Name: screen.RouteUpdateQuiz, ID: id}, "Edit quiz", "Opening the quiz...",
		form, form.Snapshot, quizFields(form))
	p.load = func(ctx context.Context) error { return form.Load(ctx, id) }
	return p
}

// questionEditor is implemented by the question forms and by draftCursor.
type questionEditor interface {
	SetText(string) error
	SetOptions([]string) error
	SetCorrectAnswer(int) error
	SetKeywords([]string) error
}

// questionFields edits options as "a | b | c" and keywords as "x, y".
func questionFields(form questionEditor, data func() screen.QuestionFormData) []formField {
	return []formField{
		newField("Question", 500, func() string { return data().Text }, form.SetText),
		newField("Options", 1000,
			func() string { return joinOptions(data().Options) },
			func(v string) error { return form.SetOptions(splitList(v, "|")) }),
		newField("Correct", 3,
			func() string { return strconv.Itoa(data().CorrectAnswerIndex) },
			func(v string) error {
				index, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return errors.New("correct answer must be an option number starting at 0")
				}
				return form.SetCorrectAnswer(index)
			}),
		newField("Keywords", 500,
			func() string { return strings.Join(data().Keywords, ", ") },
			func(v string) error { return form.SetKeywords(splitList(v, ",")) }),
	}
}

func joinOptions(options []string) string {
	for _, option := range options {
		if option != "" {
			return strings.Join(options, " | ")
		}
	}
	return ""
}

func splitList(value, sep string) []string {
	var items []string
	for _, item := range strings.Split(value, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func newCreateQuestionPage(e *env) page {
	form := screen.NewCreateQuestionForm(e.api, redraw[screen.QuestionFormData](e.bus), e.options)
	data := func() screen.QuestionFormData { return form.Snapshot().Data }
	return newFormPage(e, screen.Route{Name: screen.RouteCreateQuestion}, "New question", "Opening the new question...",
		form, form.Snapshot, questionFields(form, data))
}

func newUpdateQuestionPage(e *env, id string) page {
	form := screen.NewUpdateQuestionForm(e.api, redraw[screen.QuestionFormData](e.bus), e.options)
	data := func() screen.QuestionFormData { return form.Snapshot().Data }
	p := newFormPage(e, screen.Route{Name: screen.RouteUpdateQuestion, ID: id}, "Edit question", "Opening the question...",
		form, form.Snapshot, questionFields(form, data))
	p.load = func(ctx context.Context) error { return form.Load(ctx, id) }
	return p
}

// draftCursor points the question fields at one draft of an add-questions form.
type draftCursor struct {
	form  *screen.AddQuestionsForm
	index int
}

func (c *draftCursor) SetText(v string) error { return c.form.SetDraftText(c.index, v) }
func (c *draftCursor) SetOptions(v []string) error { return c.form.SetDraftOptions(c.index, v) }
func (c *draftCursor) SetCorrectAnswer(v int) error { return c.form.SetDraftCorrectAnswer(c.index, v) }
func (c *draftCursor) SetKeywords(v []string) error { return c.form.SetDraftKeywords(c.index, v) }

func (c *draftCursor) count() int { return len(c.form.Snapshot().Data.Drafts) }

func (c *draftCursor) clamp() {
	if n := c.count(); c.index >= n {
		c.index = n - 1
	}
	if c.index < 0 {
		c.index = 0
	}
}

func (c *draftCursor) draft() screen.QuestionFormData {
	drafts := c.form.Snapshot().Data.Drafts
	if c.index >= len(drafts) {
		return screen.QuestionFormData{}
	}
	d := drafts[c.index]
	return screen.QuestionFormData{Text: d.Text, Options: d.Options, CorrectAnswerIndex: d.CorrectAnswerIndex, Keywords: d.Keywords}
}

// addQuestionsPage edits the drafts one at a time and uploads them together.
type addQuestionsPage struct {
	*formPage
	cursor *draftCursor
}

func newAddQuestionsPage(e *env, quizID string) page {
	form := screen.NewAddQuestionsForm(e.api, quizID, redraw[screen.AddQuestionsData](e.bus), e.options)
	cursor := &draftCursor{form: form}
	p := newFormPage(e, screen.Route{Name: screen.RouteAddQuestions, ID: quizID}, "Add questions", "Opening the quiz...",
		form, form.Snapshot, questionFields(cursor, cursor.draft))
	return &addQuestionsPage{formPage: p, cursor: cursor}
}

func (p *addQuestionsPage) sync() {
	p.cursor.clamp()
	p.formPage.sync()
}

// show moves to draft index after storing the inputs of the current one.
func (p *addQuestionsPage) show(index int) tea.Cmd {
	if err := p.apply(); err != nil {
		return failed(err)
	}
	p.cursor.index = index
	p.cursor.clamp()
	p.fill()
	return nil
}

func (p *addQuestionsPage) update(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "pgdown":
		return p.show(p.cursor.index + 1)
	case "pgup":
		return p.show(p.cursor.index - 1)
	case "ctrl+n":
		if err := p.cursor.form.AddDraft(); err != nil {
			return failed(err)
		}
		return p.show(p.cursor.count() - 1)
	case "ctrl+d":
		if err := p.cursor.form.RemoveDraft(p.cursor.index); err != nil {
			return failed(err)
		}
		p.cursor.clamp()
		p.fill()
		return nil
	}
	return p.formPage.update(key)
}

func (p *addQuestionsPage) help() string {
	return p.formPage.help() + "  pgup/pgdown: switch  ctrl+n: add  ctrl+d: remove"
}

func (p *addQuestionsPage) view() string {
	header := p.env.styles.muted(fmt.Sprintf("Question %d of %d", p.cursor.index+1, p.cursor.count()))
	return header + "\n\n" + p.formPage.view()
}
