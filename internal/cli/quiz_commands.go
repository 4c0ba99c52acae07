package cli

import (
	"flag"
	"fmt"
	"io"

	"quizdesk/internal/screen"
	"quizdesk/pkg/catalog"
)

func runQuizzes(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var filter string
		s, _, code := prepare(cmd, args, stdout, stderr, nil, func(fs *flag.FlagSet) {
			fs.StringVar(&filter, "filter", "", "Show only quizzes whose title contains text")
		})
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		list := screen.NewQuizList(s.client, nil, s.options())
		defer list.Close()
		if err := list.Load(ctx); err != nil {
			return fail(stderr, "Listing quizzes", err)
		}
		if err := list.SetFilter(filter); err != nil {
			return fail(stderr, "Filtering quizzes", err)
		}
		s.out.quizzes(list.Snapshot().Data.Visible())
		return ExitOK
	}
}

func runQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var search, populate string
		s, positional, code := prepare(cmd, args, stdout, stderr, []string{"<id>"}, func(fs *flag.FlagSet) {
			fs.StringVar(&search, "search", "", "Show only questions whose text contains text")
			fs.StringVar(&populate, "populate", "", "Let the server embed questions matching keyword")
		})
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		detail := screen.NewQuizDetail(s.client, nil, s.options())
		defer detail.Close()
		var err error
		if populate != "" {
			err = detail.LoadPopulated(ctx, positional[0], populate)
		} else {
			err = detail.Load(ctx, positional[0])
		}
		if err != nil {
			return fail(stderr, "Loading quiz", err)
		}
		if err := detail.SetSearch(search); err != nil {
			return fail(stderr, "Searching questions", err)
		}
		data := detail.Snapshot().Data
		s.out.quiz(data.Quiz, data.Visible())
		return ExitOK
	}
}

func runCreateQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var title, description string
		s, _, code := prepare(cmd, args, stdout, stderr, nil, func(fs *flag.FlagSet) {
			fs.StringVar(&title, "title", "", "Quiz title")
			fs.StringVar(&description, "description", "", "Quiz description")
		})
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		form := screen.NewCreateQuizForm(s.client, nil, s.options())
		defer form.Close()
		if err := form.SetTitle(title); err != nil {
			return fail(stderr, "Creating quiz", err)
		}
		if err := form.SetDescription(description); err != nil {
			return fail(stderr, "Creating quiz", err)
		}
		if err := form.Submit(ctx); err != nil {
			return fail(stderr, "Creating quiz", err)
		}
		snap := form.Snapshot()
		s.out.notice(snap.Notice)
		fmt.Fprintf(stdout, "ID: %s\n", snap.Data.SavedID)
		s.redirected()
		return ExitOK
	}
}

func runUpdateQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var (
			title, description string
			flags              *flag.FlagSet
		)
		s, positional, code := prepare(cmd, args, stdout, stderr, []string{"<id>"}, func(fs *flag.FlagSet) {
			fs.StringVar(&title, "title", "", "New quiz title")
			fs.StringVar(&description, "description", "", "New quiz description")
			flags = fs
		})
		if s == nil {
			return code
		}
		set := visited(flags)
		if !set["title"] && !set["description"] {
			fmt.Fprintln(stderr, "nothing to update: pass --title or --description")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		ctx, cancel := s.context()
		defer cancel()

		form := screen.NewUpdateQuizForm(s.client, nil, s.options())
		defer form.Close()
		if err := form.Load(ctx, positional[0]); err != nil {
			return fail(stderr, "Loading quiz", err)
		}
		if set["title"] {
			if err := form.SetTitle(title); err != nil {
				return fail(stderr, "Updating quiz", err)
			}
		}
		if set["description"] {
			if err := form.SetDescription(description); err != nil {
				return fail(stderr, "Updating quiz", err)
			}
		}
		if err := form.Submit(ctx); err != nil {
			return fail(stderr, "Updating quiz", err)
		}
		snap := form.Snapshot()
		s.out.notice(snap.Notice)
		s.out.heading(snap.Data.Title)
		fmt.Fprintln(stdout, snap.Data.Description)
		s.redirected()
		return ExitOK
	}
}

func runDeleteQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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

		list := screen.NewQuizList(s.client, nil, s.options())
		defer list.Close()
		if err := list.Delete(ctx, positional[0]); err != nil {
			return fail(stderr, "Deleting quiz", err)
		}
		s.out.notice(fmt.Sprintf("Quiz %s deleted", positional[0]))
		return ExitOK
	}
}

func runAddQuestion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var qf questionFlags
		s, positional, code := prepare(cmd, args, stdout, stderr, []string{"<quiz-id>"}, qf.define)
		if s == nil {
			return code
		}
		ctx, cancel := s.context()
		defer cancel()

		detail := screen.NewQuizDetail(s.client, nil, s.options())
		defer detail.Close()
		if err := detail.Load(ctx, positional[0]); err != nil {
			return fail(stderr, "Loading quiz", err)
		}
		if err := detail.AttachQuestion(ctx, qf.question()); err != nil {
			return fail(stderr, "Adding question", err)
		}
		snap := detail.Snapshot()
		s.out.notice(snap.Notice)
		s.out.quiz(snap.Data.Quiz, snap.Data.Questions)
		return ExitOK
	}
}

func runAddQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		var file string
		s, positional, code := prepare(cmd, args, stdout, stderr, []string{"<quiz-id>"}, func(fs *flag.FlagSet) {
			fs.StringVar(&file, "file", "", "YAML or JSON question file")
		})
		if s == nil {
			return code
		}
		if file == "" {
			fmt.Fprintln(stderr, "missing --file")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		questions, err := catalog.LoadQuestionFile(file)
		if err != nil {
			return fail(stderr, "Reading questions", err)
		}
		ctx, cancel := s.context()
		defer cancel()

		form := screen.NewAddQuestionsForm(s.client, positional[0], nil, s.options())
		defer form.Close()
		if err := form.ReplaceDrafts(questions); err != nil {
			return fail(stderr, "Adding questions", err)
		}
		if err := form.Submit(ctx); err != nil {
			return fail(stderr, "Adding questions", err)
		}
		s.out.notice(form.Snapshot().Notice)
		fmt.Fprintf(stdout, "Added %d question(s) to quiz %s\n", len(questions), positional[0])
		s.redirected()
		return ExitOK
	}
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	if fs == nil {
		return set
	}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
