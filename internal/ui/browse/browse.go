// Package browse is the interactive terminal front-end over the screen controllers.
package browse

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"quizdesk/internal/screen"
)

// Options configures the browser.
type Options struct {
	Input         io.Reader
	Output        io.Writer
	// RedirectDelay of zero navigates right after a save.
	RedirectDelay time.Duration
	Logger        zerolog.Logger
	NoColor       bool
}

// Run shows the browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, api screen.CatalogAPI, opts Options) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	model := NewModel(ctx, api, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(opts.Input),
		tea.WithOutput(opts.Output),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if m, ok := final.(Model); ok {
		m.closeAll()
	}
	return err
}

// bus carries controller callbacks into the program. Controllers call it from
// any goroutine, including from inside Update, so it never blocks: renders
// only poke the signal and navigations queue until the model drains them.
type bus struct {
	mu     sync.Mutex
	paths  []string
	signal chan struct{}
}

func newBus() *bus {
	return &bus{signal: make(chan struct{}, 1)}
}

// Navigate implements screen.Router.
func (b *bus) Navigate(path string) {
	b.mu.Lock()
	b.paths = append(b.paths, path)
	b.mu.Unlock()
	b.poke()
}

func (b *bus) poke() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

func (b *bus) drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	paths := b.paths
	b.paths = nil
	return paths
}

// redraw adapts a screen view to the bus.
func redraw[T any](b *bus) screen.View[T] {
	return screen.ViewFunc[T](func(screen.Snapshot[T]) { b.poke() })
}

// signalMsg reports that a controller rendered or navigated.
type signalMsg struct{}

// waitForSignal blocks until a controller pokes the bus.
func waitForSignal(b *bus) tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return signalMsg{}
	}
}
