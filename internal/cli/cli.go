package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizdesk <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nGlobal options: --config <path> --base-url <url> --verbose")
	fmt.Fprintln(w, "Use \"quizdesk <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("browse", "Open the interactive catalog browser", []string{
		"quizdesk browse",
	}, runBrowse),
	command("quizzes", "List quizzes", []string{
		"quizdesk quizzes [--filter <text>]",
	}, runQuizzes),
	command("quiz", "Show a quiz and its questions", []string{
		"quizdesk quiz <id> [--search <text>]",
		"quizdesk quiz <id> --populate <keyword>",
	}, runQuiz),
	command("create-quiz", "Create a quiz", []string{
		"quizdesk create-quiz --title <title> --description <text>",
	}, runCreateQuiz),
	command("update-quiz", "Change a quiz title or description", []string{
		"quizdesk update-quiz <id> [--title <title>] [--description <text>]",
	}, runUpdateQuiz),
	command("delete-quiz", "Delete a quiz", []string{
		"quizdesk delete-quiz <id>",
	}, runDeleteQuiz),
	command("add-question", "Create a question inside a quiz", []string{
		"quizdesk add-question <quiz-id> --text <text> --option <a> --option <b> [--correct <n>] [--keyword <k>]...",
	}, runAddQuestion),
	command("add-questions", "Add questions to a quiz from a YAML or JSON file", []string{
		"quizdesk add-questions <quiz-id> --file <questions.yaml>",
	}, runAddQuestions),
	command("questions", "List questions", []string{
		"quizdesk questions [--filter <text>]",
	}, runQuestions),
	command("question", "Show a question", []string{
		"quizdesk question <id>",
	}, runQuestion),
	command("create-question", "Create a question", []string{
		"quizdesk create-question --text <text> --option <a> --option <b> [--correct <n>] [--keyword <k>]...",
	}, runCreateQuestion),
	command("update-question", "Change a question", []string{
		"quizdesk update-question <id> [--text <text>] [--option <a>]... [--correct <n>] [--keyword <k>]...",
	}, runUpdateQuestion),
	command("delete-question", "Delete a question", []string{
		"quizdesk delete-question <id>",
	}, runDeleteQuestion),
}
