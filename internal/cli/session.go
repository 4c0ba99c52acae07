package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"quizdesk/internal/config"
	"quizdesk/internal/screen"
	"quizdesk/pkg/catalog/httpclient"
)

// globalFlags are accepted by every command.
type globalFlags struct {
	configPath string
	baseURL    string
	verbose    bool
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "Path to config file (default: search for .quizdesk.yml)")
	fs.StringVar(&g.baseURL, "base-url", "", "Catalog API base URL override")
	fs.BoolVar(&g.verbose, "verbose", false, "Log every request to stderr")
}

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// parseArgs parses flags that may follow one leading positional argument.
// It returns the positionals and, when parsing stopped the command, its exit code.
func parseArgs(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) ([]string, int, bool) {
	var positional []string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		positional = append(positional, args[0])
		args = args[1:]
	}
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return nil, ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return nil, ExitUsage, false
	}
	return append(positional, fs.Args()...), ExitOK, true
}

// requireArgs checks the positional count and reports a usage error otherwise.
func requireArgs(cmd *Command, positional []string, names []string, stderr io.Writer) bool {
	if len(positional) < len(names) {
		fmt.Fprintf(stderr, "missing %s\n", strings.Join(names[len(positional):], ", "))
		printCommandUsage(cmd, stderr)
		return false
	}
	if len(positional) > len(names) {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(positional[len(names):], " "))
		printCommandUsage(cmd, stderr)
		return false
	}
	return true
}

// prepare parses a command line made of positionals named by names and the
// flags define adds, then opens a session. A nil session means the command is
// done and code is its exit status.
func prepare(cmd *Command, args []string, stdout, stderr io.Writer, names []string, define func(fs *flag.FlagSet)) (*session, []string, int) {
	var g globalFlags
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	g.register(fs)
	if define != nil {
		define(fs)
	}
	positional, code, ok := parseArgs(cmd, fs, args, stdout, stderr)
	if !ok {
		return nil, nil, code
	}
	if !requireArgs(cmd, positional, names, stderr) {
		return nil, nil, ExitUsage
	}
	s, err := openSession(g, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
		return nil, nil, ExitError
	}
	return s, positional, ExitOK
}

// pathRecorder is the router of one-shot commands. It keeps the last
// destination so the command can tell the user where the screen went.
type pathRecorder struct {
	mu   sync.Mutex
	last string
}

func (r *pathRecorder) Navigate(path string) {
	r.mu.Lock()
	r.last = path
	r.mu.Unlock()
}

func (r *pathRecorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// session is what a command needs to talk to the catalog.
type session struct {
	cfg      config.Config
	logger   zerolog.Logger
	client   *httpclient.Client
	router   *pathRecorder
	out      printer
	decision uiModeDecision
}

func openSession(g globalFlags, stdout, stderr io.Writer) (*session, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.baseURL != "" {
		cfg.API.BaseURL = g.baseURL
		config.Normalize(&cfg)
		if err := config.Validate(&cfg); err != nil {
			return nil, err
		}
	}
	decision, err := resolveUIMode(cfg.UI.Mode, g.verbose, stdout)
	if err != nil {
		return nil, err
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}
	logger := newLogger(stderr, g.verbose)
	return &session{
		cfg:      cfg,
		logger:   logger,
		client:   httpclient.New(cfg.API.BaseURL, httpclient.WithLogger(logger)),
		router:   &pathRecorder{},
		out:      printer{w: stdout, noColor: !decision.interactive},
		decision: decision,
	}, nil
}

func newLogger(stderr io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: stderr, NoColor: !isTerminal(stderr)}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// options wires one-shot screens: redirects resolve at once into the recorder.
func (s *session) options() screen.Options {
	return screen.Options{
		Router:        s.router,
		Scheduler:     screen.ImmediateScheduler,
		RedirectDelay: s.cfg.RedirectDelay(),
		Logger:        &s.logger,
	}
}

func (s *session) context() (context.Context, context.CancelFunc) {
	if timeout := s.cfg.Timeout(); timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// fail reports err on stderr and returns the error exit code.
func fail(stderr io.Writer, action string, err error) int {
	fmt.Fprintf(stderr, "%s failed: %v\n", action, err)
	return ExitError
}

// redirected prints the screen the last mutation led to, if any.
func (s *session) redirected() {
	if last := s.router.Last(); last != "" {
		s.out.muted("Next: " + last)
	}
}
