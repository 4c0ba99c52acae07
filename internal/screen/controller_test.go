package screen

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizdesk/internal/testutil"
)

func constant(v int) Step[int] {
	return func(context.Context) (func(int) int, error) {
		return func(int) int { return v }, nil
	}
}

func failing(err error) Step[int] {
	return func(context.Context) (func(int) int, error) {
		return nil, err
	}
}

// action adapts a step that ignores the submitted data.
func action(step Step[int]) Action[int] {
	return func(ctx context.Context, _ int) (func(int) int, error) { return step(ctx) }
}

// blocking returns a step that signals started and waits for release.
func blocking(v int) (Step[int], chan struct{}, chan struct{}) {
	started := make(chan struct{})
	release := make(chan struct{})
	step := func(context.Context) (func(int) int, error) {
		close(started)
		<-release
		return func(int) int { return v }, nil
	}
	return step, started, release
}

// TestLoadRendersPhases verifies Idle -> Loading -> Ready is rendered in order.
func TestLoadRendersPhases(t *testing.T) {
	view := &recordingView[int]{}
	ctrl := NewController[int]("test", 0, view, Options{})

	if err := ctrl.Load(testutil.Context(t, 0), constant(7)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := view.Phases(); !samePhases(got, []Phase{PhaseLoading, PhaseReady}) {
		t.Fatalf("unexpected phases %v", got)
	}
	if snap := ctrl.Snapshot(); snap.Data != 7 || snap.Err != "" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

// TestLoadFailureParksScreen verifies a failed read blocks mutations until the next load.
func TestLoadFailureParksScreen(t *testing.T) {
	ctrl := NewController[int]("test", 5, nil, Options{})
	ctx := testutil.Context(t, 0)

	if err := ctrl.Load(ctx, failing(errors.New("http 404: Quiz not found"))); err == nil {
		t.Fatalf("expected load error")
	}
	snap := ctrl.Snapshot()
	if snap.Phase != PhaseFailed || snap.Err != "http 404: Quiz not found" || snap.Data != 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if err := ctrl.Submit(ctx, Mutation[int]{Run: action(constant(1))}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if err := ctrl.Edit(func(v int) (int, error) { return v + 1, nil }); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady from edit, got %v", err)
	}
	if err := ctrl.Load(ctx, constant(3)); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := ctrl.Submit(ctx, Mutation[int]{Run: action(constant(4))}); err != nil {
		t.Fatalf("submit after reload: %v", err)
	}
}

// TestLoadSupersedesEarlierRead verifies a stale response never overwrites a newer one.
func TestLoadSupersedesEarlierRead(t *testing.T) {
	ctrl := NewController[int]("test", 0, nil, Options{})
	ctx := testutil.Context(t, 0)
	slow, started, release := blocking(1)

	errs := make(chan error, 1)
	go func() { errs <- ctrl.Load(ctx, slow) }()
	<-started

	if err := ctrl.Load(ctx, constant(2)); err != nil {
		t.Fatalf("second load: %v", err)
	}
	close(release)
	if err := <-errs; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if snap := ctrl.Snapshot(); snap.Data != 2 || snap.Phase != PhaseReady {
		t.Fatalf("stale read leaked into %+v", snap)
	}
}

// TestSubmitRejectsReentry verifies a second submit is refused while one is in flight.
func TestSubmitRejectsReentry(t *testing.T) {
	ctrl := NewController[int]("test", 0, nil, Options{})
	ctx := testutil.Context(t, 0)
	slow, started, release := blocking(9)

	errs := make(chan error, 1)
	go func() { errs <- ctrl.Submit(ctx, Mutation[int]{Run: action(slow)}) }()
	<-started

	if err := ctrl.Submit(ctx, Mutation[int]{Run: action(constant(1))}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := ctrl.Edit(func(v int) (int, error) { return v, nil }); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy from edit, got %v", err)
	}
	close(release)
	if err := <-errs; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if snap := ctrl.Snapshot(); snap.Data != 9 {
		t.Fatalf("unexpected data %d", snap.Data)
	}
}

// TestSubmitRejectedWhileLoading verifies mutations wait for the read to settle.
func TestSubmitRejectedWhileLoading(t *testing.T) {
	ctrl := NewController[int]("test", 0, nil, Options{})
	ctx := testutil.Context(t, 0)
	slow, started, release := blocking(1)

	errs := make(chan error, 1)
	go func() { errs <- ctrl.Load(ctx, slow) }()
	<-started
	if err := ctrl.Submit(ctx, Mutation[int]{Run: action(constant(2))}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(release)
	if err := <-errs; err != nil {
		t.Fatalf("load: %v", err)
	}
}

// TestSubmitFailureAllowsRetry verifies the screen stays usable after a failed mutation.
func TestSubmitFailureAllowsRetry(t *testing.T) {
	router := &recordingRouter{}
	ctrl := NewController[int]("test", 4, nil, Options{Router: router, Scheduler: ImmediateScheduler})
	ctx := testutil.Context(t, 0)
	redirect := func(int) string { return "/done" }

	if err := ctrl.Submit(ctx, Mutation[int]{Run: action(failing(errors.New("boom"))), Redirect: redirect}); err == nil {
		t.Fatalf("expected failure")
	}
	snap := ctrl.Snapshot()
	if snap.Phase != PhaseFailed || snap.Data != 4 || snap.Err != "boom" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(router.Paths()) != 0 {
		t.Fatalf("failed submit navigated to %v", router.Paths())
	}
	if err := ctrl.Submit(ctx, Mutation[int]{Run: action(constant(5)), Notice: "saved", Redirect: redirect}); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if router.Last() != "/done" {
		t.Fatalf("expected redirect, got %v", router.Paths())
	}
}

// TestRedirectWaitsForDelay verifies navigation happens only after the delay elapses.
func TestRedirectWaitsForDelay(t *testing.T) {
	router := &recordingRouter{}
	sched := testutil.NewFakeScheduler()
	ctrl := NewController[int]("test", 0, nil, Options{Router: router, Scheduler: sched, RedirectDelay: testRedirectDelay})

	err := ctrl.Submit(testutil.Context(t, 0), Mutation[int]{
		Run:      action(constant(1)),
		Notice:   "saved",
		Redirect: func(int) string { return "/quizzes/1" },
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap := ctrl.Snapshot(); snap.Notice != "saved" {
		t.Fatalf("expected notice, got %+v", snap)
	}
	if !ctrl.RedirectPending() {
		t.Fatalf("expected pending redirect")
	}
	sched.Advance(testRedirectDelay - time.Millisecond)
	if len(router.Paths()) != 0 {
		t.Fatalf("navigated early: %v", router.Paths())
	}
	sched.Advance(time.Millisecond)
	if router.Last() != "/quizzes/1" {
		t.Fatalf("expected redirect, got %v", router.Paths())
	}
	if ctrl.RedirectPending() {
		t.Fatalf("redirect should be consumed")
	}
}

// TestCloseCancelsRedirect verifies a torn down screen never navigates.
func TestCloseCancelsRedirect(t *testing.T) {
	router := &recordingRouter{}
	sched := testutil.NewFakeScheduler()
	ctrl := NewController[int]("test", 0, nil, Options{Router: router, Scheduler: sched, RedirectDelay: testRedirectDelay})

	err := ctrl.Submit(testutil.Context(t, 0), Mutation[int]{Run: action(constant(1)), Redirect: func(int) string { return "/x" }})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ctrl.Close()
	if sched.Pending() != 0 {
		t.Fatalf("timer should be stopped, %d pending", sched.Pending())
	}
	sched.Advance(time.Hour)
	if len(router.Paths()) != 0 {
		t.Fatalf("closed screen navigated: %v", router.Paths())
	}
	if err := ctrl.Load(testutil.Context(t, 0), constant(2)); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

// TestNavigateDropsPendingRedirect verifies leaving early wins over the timed redirect.
func TestNavigateDropsPendingRedirect(t *testing.T) {
	router := &recordingRouter{}
	sched := testutil.NewFakeScheduler()
	ctrl := NewController[int]("test", 0, nil, Options{Router: router, Scheduler: sched, RedirectDelay: testRedirectDelay})

	if err := ctrl.Submit(testutil.Context(t, 0), Mutation[int]{Run: action(constant(1)), Redirect: func(int) string { return "/later" }}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := ctrl.Navigate("/now"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	sched.Advance(time.Hour)
	if got := router.Paths(); len(got) != 1 || got[0] != "/now" {
		t.Fatalf("unexpected navigation %v", got)
	}
}

// TestImmediateMutationNavigates verifies Immediate skips the delay.
func TestImmediateMutationNavigates(t *testing.T) {
	router := &recordingRouter{}
	sched := testutil.NewFakeScheduler()
	ctrl := NewController[int]("test", 0, nil, Options{Router: router, Scheduler: sched})

	err := ctrl.Submit(testutil.Context(t, 0), Mutation[int]{Run: action(constant(1)), Redirect: func(int) string { return "/list" }, Immediate: true})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if router.Last() != "/list" || sched.Pending() != 0 {
		t.Fatalf("expected immediate navigation, got %v pending=%d", router.Paths(), sched.Pending())
	}
}

// TestEditDuringLoadSurvives verifies local edits made while loading are folded into the result.
func TestEditDuringLoadSurvives(t *testing.T) {
	ctrl := NewController[[2]int]("test", [2]int{}, nil, Options{})
	ctx := testutil.Context(t, 0)
	started := make(chan struct{})
	release := make(chan struct{})
	step := func(context.Context) (func([2]int) [2]int, error) {
		close(started)
		<-release
		return func(d [2]int) [2]int {
			d[0] = 1
			return d
		}, nil
	}

	errs := make(chan error, 1)
	go func() { errs <- ctrl.Load(ctx, step) }()
	<-started
	if err := ctrl.Edit(func(d [2]int) ([2]int, error) {
		d[1] = 2
		return d, nil
	}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	close(release)
	if err := <-errs; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := ctrl.Snapshot().Data; got != [2]int{1, 2} {
		t.Fatalf("unexpected data %v", got)
	}
}

// TestLoadRefusedWhileSubmitting verifies an acknowledged write is applied even
// when a reload is attempted during the round-trip.
func TestLoadRefusedWhileSubmitting(t *testing.T) {
	router := &recordingRouter{}
	ctrl := NewController[int]("test", 0, nil, Options{Router: router, Scheduler: ImmediateScheduler})
	ctx := testutil.Context(t, 0)
	slow, started, release := blocking(4)

	errs := make(chan error, 1)
	go func() {
		errs <- ctrl.Submit(ctx, Mutation[int]{Run: action(slow), Notice: "saved", Redirect: func(int) string { return "/done" }})
	}()
	<-started
	if err := ctrl.Load(ctx, constant(9)); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(release)
	if err := <-errs; err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := ctrl.Snapshot()
	if snap.Phase != PhaseReady || snap.Data != 4 || snap.Notice != "saved" {
		t.Fatalf("mutation result lost: %+v", snap)
	}
	if router.Last() != "/done" {
		t.Fatalf("expected redirect, got %v", router.Paths())
	}
}

// TestSubmitUsesDataAtAcceptance verifies the action sees the data the submit was accepted with.
func TestSubmitUsesDataAtAcceptance(t *testing.T) {
	ctrl := NewController[int]("test", 0, nil, Options{})
	if err := ctrl.Edit(func(int) (int, error) { return 7, nil }); err != nil {
		t.Fatalf("edit: %v", err)
	}
	var sent int
	err := ctrl.Submit(testutil.Context(t, 0), Mutation[int]{
		Run: func(_ context.Context, data int) (func(int) int, error) {
			sent = data
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sent != 7 {
		t.Fatalf("expected the edited value to be sent, got %d", sent)
	}
}
