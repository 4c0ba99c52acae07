package screen

import (
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"quizdesk/internal/testutil"
	"quizdesk/pkg/catalog"
)

// TestCreateQuizFormSuccess verifies the notice, the reset and the delayed redirect to the new quiz.
func TestCreateQuizFormSuccess(t *testing.T) {
	h := newHarness(t)
	form := NewCreateQuizForm(h.client, nil, h.opts)
	ctx := testutil.Context(t, 0)

	if snap := form.Snapshot(); snap.Phase != PhaseIdle {
		t.Fatalf("create form should start idle, got %s", snap.Phase)
	}
	_ = form.SetTitle("T")
	_ = form.SetDescription("D")
	if err := form.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := form.Snapshot()
	if snap.Notice != "Quiz created successfully" || snap.Data.Title != "" || snap.Data.SavedID != "id1" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(h.router.Paths()) != 0 {
		t.Fatalf("navigated before the delay")
	}
	h.sched.Advance(testRedirectDelay)
	if h.router.Last() != "/quizzes/id1" {
		t.Fatalf("unexpected redirect %v", h.router.Paths())
	}

	quiz, err := h.client.GetQuiz(ctx, "id1")
	if err != nil || quiz.Title != "T" || quiz.Description != "D" {
		t.Fatalf("created quiz mismatch %+v %v", quiz, err)
	}
}

// TestCreateQuizFormValidation verifies empty fields never reach the server.
func TestCreateQuizFormValidation(t *testing.T) {
	h := newHarness(t)
	form := NewCreateQuizForm(h.client, nil, h.opts)
	_ = form.SetTitle("   ")

	err := form.Submit(testutil.Context(t, 0))
	var validation *catalog.ValidationError
	if !errors.As(err, &validation) || len(validation.Issues) != 2 {
		t.Fatalf("expected two validation issues, got %v", err)
	}
	if len(h.server.Requests()) != 0 {
		t.Fatalf("invalid quiz was sent")
	}
	if snap := form.Snapshot(); snap.Phase != PhaseFailed || snap.Data.Title != "   " {
		t.Fatalf("form values should stay, got %+v", snap)
	}
}

// TestUpdateQuizFormFlow verifies the update reflects the new title and redirects to the detail.
func TestUpdateQuizFormFlow(t *testing.T) {
	h := newHarness(t)
	ctx := testutil.Context(t, 0)
	h.server.SeedQuestion(catalog.Question{ID: "q1", Text: "Q", Options: []string{"a"}})
	h.server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "Old Title", Description: "D", Questions: []catalog.QuestionRef{catalog.RefID("q1")}})
	form := NewUpdateQuizForm(h.client, nil, h.opts)

	if err := form.Load(ctx, "quiz1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if data := form.Snapshot().Data; data.Title != "Old Title" || data.Description != "D" {
		t.Fatalf("form not pre-filled: %+v", data)
	}
	_ = form.SetTitle("New Title")
	if err := form.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap := form.Snapshot(); snap.Notice != "Quiz updated successfully" {
		t.Fatalf("unexpected notice %q", snap.Notice)
	}
	h.sched.Advance(testRedirectDelay)
	if h.router.Last() != "/quizzes/quiz1" {
		t.Fatalf("unexpected redirect %v", h.router.Paths())
	}

	quiz, err := h.client.GetQuiz(ctx, "quiz1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if quiz.Title != "New Title" {
		t.Fatalf("expected new title, got %q", quiz.Title)
	}
	if ids := quiz.QuestionIDs(); len(ids) != 1 || ids[0] != "q1" {
		t.Fatalf("update dropped question references: %v", ids)
	}
}

// TestUpdateQuizFormServerFailure verifies a 500 keeps the entered values and stays on the form.
func TestUpdateQuizFormServerFailure(t *testing.T) {
	h := newHarness(t)
	ctx := testutil.Context(t, 0)
	h.server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "Old Title", Description: "D"})
	form := NewUpdateQuizForm(h.client, nil, h.opts)
	if err := form.Load(ctx, "quiz1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	_ = form.SetTitle("New Title")

	h.server.FailNext(http.MethodPut, "/quizzes/quiz1", http.StatusInternalServerError)
	if err := form.Submit(ctx); err == nil {
		t.Fatalf("expected failure")
	}
	snap := form.Snapshot()
	if snap.Phase != PhaseFailed || snap.Err == "" || snap.Data.Title != "New Title" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	h.sched.Advance(testRedirectDelay)
	if len(h.router.Paths()) != 0 {
		t.Fatalf("failed update navigated to %v", h.router.Paths())
	}
	if form.RedirectPending() {
		t.Fatalf("no redirect should be scheduled")
	}
}

// TestUpdateQuizFormRequiresLoad verifies an unloaded form refuses to submit.
func TestUpdateQuizFormRequiresLoad(t *testing.T) {
	h := newHarness(t)
	form := NewUpdateQuizForm(h.client, nil, h.opts)
	if err := form.Submit(testutil.Context(t, 0)); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if err := form.Load(testutil.Context(t, 0), ""); !errors.Is(err, ErrInvalidQuizID) {
		t.Fatalf("expected ErrInvalidQuizID, got %v", err)
	}
}

// TestCreateQuestionFormRoundTrip verifies the created question reads back field for field.
func TestCreateQuestionFormRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := testutil.Context(t, 0)
	form := NewCreateQuestionForm(h.client, nil, h.opts)

	if got := len(form.Snapshot().Data.Options); got != BlankOptionCount {
		t.Fatalf("expected %d blank options, got %d", BlankOptionCount, got)
	}
	_ = form.SetText("Capital of France?")
	_ = form.SetOptions([]string{"Berlin", "Paris", "Rome"})
	_ = form.SetCorrectAnswer(1)
	_ = form.AddKeyword(" geography ")
	_ = form.AddKeyword("")
	_ = form.AddKeyword("europe")
	if err := form.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := form.Snapshot()
	if snap.Notice != "Question created successfully" || snap.Data.Text != "" || len(snap.Data.Options) != BlankOptionCount {
		t.Fatalf("form should reset, got %+v", snap)
	}

	got, err := h.client.GetQuestion(ctx, snap.Data.SavedID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	want := catalog.Question{
		ID:                 snap.Data.SavedID,
		Text:               "Capital of France?",
		Options:            []string{"Berlin", "Paris", "Rome"},
		CorrectAnswerIndex: 1,
		Keywords:           []string{"geography", "europe"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	h.sched.Advance(testRedirectDelay)
	if h.router.Last() != QuestionPath(snap.Data.SavedID) {
		t.Fatalf("unexpected redirect %v", h.router.Paths())
	}
}

// TestQuestionFieldEdits verifies option and keyword editing rules.
func TestQuestionFieldEdits(t *testing.T) {
	h := newHarness(t)
	form := NewCreateQuestionForm(h.client, nil, h.opts)

	if err := form.SetOption(BlankOptionCount, "x"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if err := form.SetCorrectAnswer(-1); err == nil {
		t.Fatalf("expected out of range error")
	}
	_ = form.SetOption(0, "a")
	_ = form.SetCorrectAnswer(3)
	_ = form.RemoveOption(3)
	_ = form.AddOption()
	_ = form.AddKeyword("k1")
	_ = form.AddKeyword("k2")
	_ = form.RemoveKeyword("k1")

	data := form.Snapshot().Data
	if len(data.Options) != BlankOptionCount || data.Options[0] != "a" {
		t.Fatalf("unexpected options %q", data.Options)
	}
	if data.CorrectAnswerIndex != 0 {
		t.Fatalf("removing the correct option should select the first, got %d", data.CorrectAnswerIndex)
	}
	if len(data.Keywords) != 1 || data.Keywords[0] != "k2" {
		t.Fatalf("unexpected keywords %q", data.Keywords)
	}

	_ = form.SetKeywords([]string{"x", " ", " y "})
	_ = form.SetOptions([]string{"a", "b", "c"})
	_ = form.SetCorrectAnswer(2)
	_ = form.SetOptions([]string{"a", "b"})
	data = form.Snapshot().Data
	if len(data.Keywords) != 2 || data.Keywords[1] != "y" {
		t.Fatalf("unexpected keywords %q", data.Keywords)
	}
	if data.CorrectAnswerIndex != 0 {
		t.Fatalf("correct answer past the options should reset, got %d", data.CorrectAnswerIndex)
	}
}

// TestUpdateQuestionForm verifies pre-fill, update and redirect to the question.
func TestUpdateQuestionForm(t *testing.T) {
	h := newHarness(t)
	ctx := testutil.Context(t, 0)
	h.server.SeedQuestion(catalog.Question{ID: "q1", Text: "Old", Options: []string{"a", "b"}, Keywords: []string{"k"}})
	form := NewUpdateQuestionForm(h.client, nil, h.opts)

	if err := form.Load(ctx, "q1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if data := form.Snapshot().Data; data.Text != "Old" || len(data.Options) != 2 {
		t.Fatalf("form not pre-filled: %+v", data)
	}
	_ = form.SetText("New")
	_ = form.SetCorrectAnswer(1)
	if err := form.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got, err := h.client.GetQuestion(ctx, "q1")
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if got.Text != "New" || got.CorrectAnswerIndex != 1 || len(got.Keywords) != 1 {
		t.Fatalf("unexpected stored question %+v", got)
	}
	h.sched.Advance(testRedirectDelay)
	if h.router.Last() != "/questions/q1" {
		t.Fatalf("unexpected redirect %v", h.router.Paths())
	}
}

// TestFormCloseBeforeRedirect verifies leaving the form cancels the timed navigation.
func TestFormCloseBeforeRedirect(t *testing.T) {
	h := newHarness(t)
	form := NewCreateQuizForm(h.client, nil, h.opts)
	_ = form.SetTitle("T")
	_ = form.SetDescription("D")
	if err := form.Submit(testutil.Context(t, 0)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	form.Close()
	h.sched.Advance(testRedirectDelay)
	if len(h.router.Paths()) != 0 {
		t.Fatalf("closed form navigated: %v", h.router.Paths())
	}
}

// TestCreateQuizFormWallClockRedirect verifies the system scheduler fires the redirect on its own.
func TestCreateQuizFormWallClockRedirect(t *testing.T) {
	h := newHarness(t)
	opts := Options{Router: h.router, Scheduler: SystemScheduler, RedirectDelay: 20 * time.Millisecond}
	form := NewCreateQuizForm(h.client, nil, opts)
	defer form.Close()
	_ = form.SetTitle("T")
	_ = form.SetDescription("D")
	if err := form.Submit(testutil.Context(t, 0)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	testutil.Eventually(t, time.Second, 5*time.Millisecond, func() bool {
		return h.router.Last() == "/quizzes/id1"
	}, "redirect never fired")
	if form.RedirectPending() {
		t.Fatalf("redirect should no longer be pending")
	}
}

// TestRemoveOptionKeepsCorrectAnswer verifies the answer follows its option when an earlier one is removed.
func TestRemoveOptionKeepsCorrectAnswer(t *testing.T) {
	h := newHarness(t)
	form := NewCreateQuestionForm(h.client, nil, h.opts)
	_ = form.SetOptions([]string{"a", "b", "c", "d"})
	_ = form.SetCorrectAnswer(2)

	if err := form.RemoveOption(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	data := form.Snapshot().Data
	if !reflect.DeepEqual(data.Options, []string{"b", "c", "d"}) {
		t.Fatalf("unexpected options %q", data.Options)
	}
	if got := data.Options[data.CorrectAnswerIndex]; got != "c" {
		t.Fatalf("correct answer moved to %q", got)
	}

	_ = form.RemoveOption(2)
	if data := form.Snapshot().Data; data.Options[data.CorrectAnswerIndex] != "c" {
		t.Fatalf("removing a later option moved the answer, got index %d", data.CorrectAnswerIndex)
	}
}
