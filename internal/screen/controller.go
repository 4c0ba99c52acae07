package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRedirectDelay is how long a success notice stays up before navigation.
const DefaultRedirectDelay = 3 * time.Second

var (
	// ErrBusy rejects a submit or edit while another round-trip owns the screen.
	ErrBusy = errors.New("screen: operation in progress")
	// ErrClosed rejects calls on a torn down controller.
	ErrClosed = errors.New("screen: controller closed")
	// ErrNotReady rejects mutations on a screen whose read failed.
	ErrNotReady = errors.New("screen: nothing loaded")
	// ErrSuperseded reports a read whose result was discarded for a newer one.
	ErrSuperseded = errors.New("screen: superseded by a newer request")
)

// View receives every state change of a screen.
type View[T any] interface {
	Render(Snapshot[T])
}

// ViewFunc adapts a function to View.
type ViewFunc[T any] func(Snapshot[T])

// Render calls f.
func (f ViewFunc[T]) Render(s Snapshot[T]) { f(s) }

// Router switches the visible screen.
type Router interface {
	Navigate(path string)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(path string)

// Navigate calls f.
func (f RouterFunc) Navigate(path string) { f(path) }

// Scheduler runs fn once after d. The returned function cancels it and
// reports whether the callback was prevented.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

type immediateScheduler struct{}

func (immediateScheduler) AfterFunc(_ time.Duration, fn func()) func() bool {
	fn()
	return func() bool { return false }
}

var (
	// SystemScheduler uses wall-clock timers.
	SystemScheduler Scheduler = systemScheduler{}
	// ImmediateScheduler runs callbacks at once. Non-interactive front-ends use it.
	ImmediateScheduler Scheduler = immediateScheduler{}
)

// Options wires the collaborators shared by every screen.
type Options struct {
	Router        Router
	Scheduler     Scheduler
	RedirectDelay time.Duration
	Logger        *zerolog.Logger
}

func (o Options) normalize() Options {
	if o.Router == nil {
		o.Router = RouterFunc(func(string) {})
	}
	if o.Scheduler == nil {
		o.Scheduler = SystemScheduler
	}
	if o.RedirectDelay <= 0 {
		o.RedirectDelay = DefaultRedirectDelay
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// Step performs one round-trip and returns how to fold its result into the
// screen data. The returned function runs under the controller lock.
type Step[T any] func(ctx context.Context) (func(T) T, error)

// Action is the round-trip of a submit. data is the screen data as it was
// when the submit was accepted.
type Action[T any] func(ctx context.Context, data T) (func(T) T, error)

// Mutation describes a submit.
type Mutation[T any] struct {
	Name   string
	Run    Action[T]
	Notice string
	// Redirect picks the destination from the updated data. Empty means stay.
	Redirect func(T) string
	// Immediate navigates without waiting for the redirect delay.
	Immediate bool
}

// Controller is the state machine behind one screen instance. State is guarded
// by a mutex that is never held across a round-trip or a collaborator call.
type Controller[T any] struct {
	name   string
	view   View[T]
	router Router
	sched  Scheduler
	delay  time.Duration
	logger zerolog.Logger

	mu         sync.Mutex
	state      Snapshot[T]
	seq        uint64
	readFailed bool
	closed     bool
	redirectID uint64
	stopTimer  func() bool
}

// NewController builds an Idle controller holding initial as its data.
func NewController[T any](name string, initial T, view View[T], opts Options) *Controller[T] {
	opts = opts.normalize()
	if view == nil {
		view = ViewFunc[T](func(Snapshot[T]) {})
	}
	return &Controller[T]{
		name:   name,
		view:   view,
		router: opts.Router,
		sched:  opts.Scheduler,
		delay:  opts.RedirectDelay,
		logger: opts.Logger.With().Str("screen", name).Logger(),
		state:  Snapshot[T]{Phase: PhaseIdle, Data: initial},
	}
}

// Snapshot returns the current state. Slices in Data are shared and must not be mutated.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load enters Loading and runs step. A later Load supersedes this one; its
// result is then dropped and ErrSuperseded returned. Load is refused with
// ErrBusy while a submit is in flight.
func (c *Controller[T]) Load(ctx context.Context, step Step[T]) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.Phase == PhaseSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.seq++
	seq := c.seq
	c.readFailed = false
	c.state = reduce(c.state, event[T]{kind: loadStarted})
	snap := c.state
	c.mu.Unlock()
	c.view.Render(snap)

	apply, err := step(ctx)

	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug().Uint64("seq", seq).Msg("discarding superseded read")
		return ErrSuperseded
	}
	if err != nil {
		c.readFailed = true
		c.state = reduce(c.state, event[T]{kind: loadFailed, err: err})
	} else {
		c.state = reduce(c.state, event[T]{kind: loadSucceeded, apply: apply})
	}
	snap = c.state
	c.mu.Unlock()
	if err != nil {
		c.logger.Debug().Err(err).Msg("read failed")
	}
	c.view.Render(snap)
	return err
}

// Submit runs a mutation. It is rejected while a round-trip is in flight and
// after a failed read. On success the notice is shown and, when a redirect is
// given, navigation happens after the redirect delay.
func (c *Controller[T]) Submit(ctx context.Context, m Mutation[T]) error {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	stop := c.cancelRedirectLocked()
	c.state = reduce(c.state, event[T]{kind: submitStarted})
	snap := c.state
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
	c.view.Render(snap)

	apply, err := m.Run(ctx, snap.Data)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug().Str("mutation", m.Name).Msg("discarding result for a closed screen")
		return err
	}
	if err != nil {
		c.state = reduce(c.state, event[T]{kind: submitFailed, err: err})
		snap = c.state
		c.mu.Unlock()
		c.logger.Debug().Err(err).Str("mutation", m.Name).Msg("mutation failed")
		c.view.Render(snap)
		return err
	}
	c.state = reduce(c.state, event[T]{kind: submitSucceeded, apply: apply, notice: m.Notice})
	snap = c.state
	target := ""
	if m.Redirect != nil {
		target = m.Redirect(c.state.Data)
	}
	var redirectID uint64
	if target != "" && !m.Immediate {
		c.redirectID++
		redirectID = c.redirectID
	}
	c.mu.Unlock()
	c.view.Render(snap)

	switch {
	case target == "":
	case m.Immediate:
		c.router.Navigate(target)
	default:
		c.scheduleRedirect(redirectID, target)
	}
	return nil
}

// Edit changes the data locally without a round-trip.
func (c *Controller[T]) Edit(fn func(T) (T, error)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.Phase == PhaseSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.readFailed {
		c.mu.Unlock()
		return ErrNotReady
	}
	next, err := fn(c.state.Data)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = reduce(c.state, event[T]{kind: edited, apply: func(T) T { return next }})
	snap := c.state
	c.mu.Unlock()
	c.view.Render(snap)
	return nil
}

// Navigate leaves the screen for path and drops any pending redirect.
func (c *Controller[T]) Navigate(path string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	stop := c.cancelRedirectLocked()
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
	c.router.Navigate(path)
	return nil
}

// RedirectPending reports whether a timed navigation is scheduled.
func (c *Controller[T]) RedirectPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redirectID != 0 && c.stopTimer != nil
}

// Close tears the screen down. A pending redirect never fires afterwards and
// in-flight results are dropped.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	stop := c.cancelRedirectLocked()
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (c *Controller[T]) mutableLocked() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.state.Phase == PhaseLoading || c.state.Phase == PhaseSubmitting:
		return ErrBusy
	case c.readFailed:
		return ErrNotReady
	}
	return nil
}

// cancelRedirectLocked forgets the pending redirect and returns its stop function.
func (c *Controller[T]) cancelRedirectLocked() func() bool {
	stop := c.stopTimer
	c.stopTimer = nil
	c.redirectID = 0
	return stop
}

func (c *Controller[T]) scheduleRedirect(id uint64, target string) {
	stop := c.sched.AfterFunc(c.delay, func() { c.fireRedirect(id, target) })

	c.mu.Lock()
	if c.redirectID != id {
		// fired synchronously or cancelled before the timer was recorded
		c.mu.Unlock()
		stop()
		return
	}
	c.stopTimer = stop
	c.mu.Unlock()
}

func (c *Controller[T]) fireRedirect(id uint64, target string) {
	c.mu.Lock()
	if c.closed || c.redirectID != id {
		c.mu.Unlock()
		return
	}
	c.redirectID = 0
	c.stopTimer = nil
	c.mu.Unlock()
	c.logger.Debug().Str("path", target).Msg("redirect")
	c.router.Navigate(target)
}
