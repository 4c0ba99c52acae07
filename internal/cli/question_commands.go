package cli

import (
	"flag"
	"fmt"
	"io"

	"quizdesk/internal/screen"
	"quizdesk/pkg/catalog"
)

// questionFlags are the fields shared by the question-writing commands.
type questionFlags struct {
	text     string
	options  stringList
	correct  int
	keywords stringList
	fs       *flag.FlagSet
}

func (q *questionFlags) define(fs *flag.FlagSet) {
	fs.StringVar(&q.text, "text", "", "Question text")
	fs.Var(&q.options, "option", "Answer option (repeat for each option)")
	fs.IntVar(&q.correct, "correct", 0, "Zero-based index of the correct option")
	fs.Var(&q.keywords, "keyword", "Keyword (repeat for each keyword)")
	q.fs = fs
}

func (q *questionFlags) question() catalog.Question {
	return catalog.Question{
		Text:               q.text,
		Options:            append([]string(nil), q.options...),
		CorrectAnswerIndex: q.correct,
		Keywords:           append([]string(nil), q.keywords...),
	}
}

// questionEditor is the field surface of both question forms.
type questionEditor interface {
	SetText(text string) error
	SetOptions(options []string) error
	SetCorrectAnswer(index int) error
	AddKeyword(keyword string) error
	RemoveKeyword(keyword string) error
	Snapshot() screen.Snapshot[screen.QuestionFormData]
}

// apply copies the flags the user set into the form. Keywords given on the
// command line replace the current ones.
func (q *questionFlags) apply(form questionEditor) error {
	set := visited(q.fs)
	if set["text"] {
		if err := form.SetText(q.text); err != nil {
			return err
		}
	}
	if set["option"] {
		if err := form.SetOptions(q.options); err != nil {
			return err
		}
	}
	if set["correct"] {
		if err := form.SetCorrectAnswer(q.correct); err != nil {
			return err
		}
	}
	if set["keyword"] {
		for _, keyword := range form.Snapshot().Data.Keywords {
			if err := form.RemoveKeyword(keyword); err != nil {
				return err
			}
		}
		for _, keyword := range q.keywords {
			if err := form.AddKeyword(keyword); err != nil {
				return err
			}
		}
	}
	return nil
}

func runQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var filter string
		s, _, code := prepare(cmd, args, stdout, stderr, nil, func(fs *flag.FlagSet) {
			fs.StringVar(&filter, "filter", "", "Show only questions whose text contains text")
		})
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		list := screen.NewQuestionList(s.client, nil, s.options())
		defer list.Close()
		if err := list.Load(ctx); err != nil {
			return fail(stderr, "Listing questions", err)
		}
		if err := list.SetFilter(filter); err != nil {
			return fail(stderr, "Filtering questions", err)
		}
		s.out.questions(list.Snapshot().Data.Visible())
		return ExitOK
	}
}

func runQuestion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		s, positional, code := prepare(cmd, args, stdout, stderr, []string{"<id>"}, nil)
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		detail := screen.NewQuestionDetail(s.client, nil, s.options())
		defer detail.Close()
		if err := detail.Load(ctx, positional[0]); err != nil {
			return fail(stderr, "Loading question", err)
		}
		s.out.question(detail.Snapshot().Data.Question)
		return ExitOK
	}
}

func runCreateQuestion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var qf questionFlags
		s, _, code := prepare(cmd, args, stdout, stderr, nil, qf.define)
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		form := screen.NewCreateQuestionForm(s.client, nil, s.options())
		defer form.Close()
		// the blank form carries empty option slots; always overwrite them
		if err := form.SetOptions(qf.options); err != nil {
			return fail(stderr, "Creating question", err)
		}
		if err := qf.apply(form); err != nil {
			return fail(stderr, "Creating question", err)
		}
		if err := form.Submit(ctx); err != nil {
			return fail(stderr, "Creating question", err)
		}
		snap := form.Snapshot()
		s.out.notice(snap.Notice)
		fmt.Fprintf(stdout, "ID: %s\n", snap.Data.SavedID)
		s.redirected()
		return ExitOK
	}
}

func runUpdateQuestion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var qf questionFlags
		s, positional, code := prepare(cmd, args, stdout, stderr, []string{"<id>"}, qf.define)
		if s == nil {
			return code
		}
		if onlyGlobals(visited(qf.fs)) {
			fmt.Fprintln(stderr, "nothing to update: pass --text, --option, --correct or --keyword")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		ctx, cancel := s.context()
		defer cancel()

		form := screen.NewUpdateQuestionForm(s.client, nil, s.options())
		defer form.Close()
		if err := form.Load(ctx, positional[0]); err != nil {
			return fail(stderr, "Loading question", err)
		}
		if err := qf.apply(form); err != nil {
			return fail(stderr, "Updating question", err)
		}
		if err := form.Submit(ctx); err != nil {
			return fail(stderr, "Updating question", err)
		}
		snap := form.Snapshot()
		s.out.notice(snap.Notice)
		s.out.question(snap.Data.Original)
		s.redirected()
		return ExitOK
	}
}

func runDeleteQuestion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		s, positional, code := prepare(cmd, args, stdout, stderr, []string{"<id>"}, nil)
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		list := screen.NewQuestionList(s.client, nil, s.options())
		defer list.Close()
		if err := list.Delete(ctx, positional[0]); err != nil {
			return fail(stderr, "Deleting question", err)
		}
		s.out.notice(fmt.Sprintf("Question %s deleted", positional[0]))
		return ExitOK
	}
}

// onlyGlobals reports whether set holds nothing but global flags.
func onlyGlobals(set map[string]bool) bool {
	for name := range set {
		switch name {
		case "config", "base-url", "verbose":
		default:
			return false
		}
	}
	return true
}
