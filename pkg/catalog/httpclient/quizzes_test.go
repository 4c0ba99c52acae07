package httpclient

import (
	"errors"
	"net/http"
	"testing"

	"quizdesk/internal/testutil"
	"quizdesk/pkg/catalog"
)

func quizFixture(title, description string) catalog.Quiz {
	return catalog.Quiz{Title: title, Description: description}
}

// TestCreateQuizRoundTrip verifies a created quiz reads back with the same fields.
func TestCreateQuizRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := testutil.Context(t, 0)

	created, err := client.CreateQuiz(ctx, quizFixture("T", "D"))
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	got, err := client.GetQuiz(ctx, created.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if got.Title != "T" || got.Description != "D" {
		t.Fatalf("unexpected quiz %+v", got)
	}
}

// TestCreateQuizTwiceAssignsDistinctIDs verifies creation is not idempotent.
func TestCreateQuizTwiceAssignsDistinctIDs(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := testutil.Context(t, 0)

	first, err := client.CreateQuiz(ctx, quizFixture("Same", "Same"))
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := client.CreateQuiz(ctx, quizFixture("Same", "Same"))
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %q", first.ID)
	}
	quizzes, err := client.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("expected two quizzes, got %d", len(quizzes))
	}
}

// TestCreateQuizSendsEmptyQuestionArray verifies a nil question list goes out as [].
func TestCreateQuizSendsEmptyQuestionArray(t *testing.T) {
	client, server := newTestClient(t)
	if _, err := client.CreateQuiz(testutil.Context(t, 0), quizFixture("T", "D")); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	req, ok := server.LastRequest(http.MethodPost, "/quizzes")
	if !ok {
		t.Fatalf("request not recorded")
	}
	body := testutil.DecodeJSON(t, req.Body).(map[string]any)
	questions, ok := body["questions"].([]any)
	if !ok || len(questions) != 0 {
		t.Fatalf("expected empty questions array, got %#v", body["questions"])
	}
	if _, present := body["_id"]; present {
		t.Fatalf("create should not send an empty _id")
	}
}

// TestUpdateQuizReflectsNewTitle verifies PUT replaces the stored document.
func TestUpdateQuizReflectsNewTitle(t *testing.T) {
	client, server := newTestClient(t)
	ctx := testutil.Context(t, 0)
	seeded := server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "Old Title", Description: "D"})

	seeded.Title = "New Title"
	if _, err := client.UpdateQuiz(ctx, "quiz1", seeded); err != nil {
		t.Fatalf("update quiz: %v", err)
	}
	got, err := client.GetQuiz(ctx, "quiz1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if got.Title != "New Title" {
		t.Fatalf("expected new title, got %q", got.Title)
	}
}

// TestDeleteQuizRemovesFromList verifies an acknowledged delete drops the quiz and a failed one keeps it.
func TestDeleteQuizRemovesFromList(t *testing.T) {
	client, server := newTestClient(t)
	ctx := testutil.Context(t, 0)
	server.SeedQuiz(catalog.Quiz{ID: "keep", Title: "Keep", Description: "D"})
	server.SeedQuiz(catalog.Quiz{ID: "drop", Title: "Drop", Description: "D"})

	server.FailNext(http.MethodDelete, "/quizzes/keep", http.StatusInternalServerError)
	if _, err := client.DeleteQuiz(ctx, "keep"); StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("expected injected 500, got %v", err)
	}
	ack, err := client.DeleteQuiz(ctx, "drop")
	if err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	if ack.Status != http.StatusOK {
		t.Fatalf("unexpected ack status %d", ack.Status)
	}

	quizzes, err := client.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].ID != "keep" {
		t.Fatalf("unexpected quizzes after delete: %+v", quizzes)
	}
}

// TestGetQuizPopulatedPaths verifies the populate path with and without a keyword.
func TestGetQuizPopulatedPaths(t *testing.T) {
	client, server := newTestClient(t)
	ctx := testutil.Context(t, 0)
	server.SeedQuestion(catalog.Question{ID: "q1", Text: "Go?", Options: []string{"yes"}, Keywords: []string{"golang"}})
	server.SeedQuestion(catalog.Question{ID: "q2", Text: "Rust?", Options: []string{"yes"}, Keywords: []string{"rust"}})
	server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "T", Description: "D", Questions: []catalog.QuestionRef{catalog.RefID("q1"), catalog.RefID("q2")}})

	all, err := client.GetQuizPopulated(ctx, "quiz1", "")
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if !all.Populated() || len(all.Questions) != 2 {
		t.Fatalf("expected two embedded questions, got %+v", all.Questions)
	}
	if _, ok := server.LastRequest(http.MethodGet, "/quizzes/quiz1/populate"); !ok {
		t.Fatalf("expected populate path")
	}

	filtered, err := client.GetQuizPopulated(ctx, "quiz1", "golang")
	if err != nil {
		t.Fatalf("populate keyword: %v", err)
	}
	if len(filtered.Questions) != 1 || filtered.Questions[0].ID() != "q1" {
		t.Fatalf("unexpected filtered questions %+v", filtered.Questions)
	}
	if _, ok := server.LastRequest(http.MethodGet, "/quizzes/quiz1/populate/golang"); !ok {
		t.Fatalf("expected keyword populate path")
	}
}

// TestGetQuizKeepsIDReferences verifies an unpopulated read reports bare identifiers.
func TestGetQuizKeepsIDReferences(t *testing.T) {
	client, server := newTestClient(t)
	server.SeedQuestion(catalog.Question{ID: "q1", Text: "Go?", Options: []string{"yes"}})
	server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "T", Description: "D", Questions: []catalog.QuestionRef{catalog.RefID("q1")}})

	quiz, err := client.GetQuiz(testutil.Context(t, 0), "quiz1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].IsFull() || quiz.Questions[0].ID() != "q1" {
		t.Fatalf("unexpected refs %+v", quiz.Questions)
	}
}

// TestAddQuestionToQuizDecodesQuiz verifies a quiz-shaped response is reported as a quiz.
func TestAddQuestionToQuizDecodesQuiz(t *testing.T) {
	client, server := newTestClient(t)
	server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "T", Description: "D"})

	result, err := client.AddQuestionToQuiz(testutil.Context(t, 0), "quiz1", catalog.Question{Text: "New?", Options: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if result.Quiz == nil || result.Question != nil {
		t.Fatalf("expected quiz result, got %+v", result)
	}
	if ids := result.Quiz.QuestionIDs(); len(ids) != 1 {
		t.Fatalf("expected one attached question, got %v", ids)
	}
}

// TestAddQuestionToQuizDecodesQuestion verifies a question-shaped response is reported as a question.
func TestAddQuestionToQuizDecodesQuestion(t *testing.T) {
	doer := &cannedDoer{status: http.StatusCreated, body: `{"_id":"q9","text":"New?","options":["a"],"correctAnswerIndex":0,"keywords":[]}`}
	client := New("http://catalog.local", WithHTTPDoer(doer))

	result, err := client.AddQuestionToQuiz(testutil.Context(t, 0), "quiz1", catalog.Question{Text: "New?", Options: []string{"a"}})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if result.Question == nil || result.Question.ID != "q9" {
		t.Fatalf("expected question result, got %+v", result)
	}
}

// TestAddQuestionsToQuizNeverSendsID verifies identifiers are stripped from bulk payloads.
func TestAddQuestionsToQuizNeverSendsID(t *testing.T) {
	client, server := newTestClient(t)
	ctx := testutil.Context(t, 0)
	server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "T", Description: "D"})

	questions := []catalog.Question{
		{ID: "preset", Text: "A", Options: []string{"x", "y"}, CorrectAnswerIndex: 1, Keywords: []string{"k"}},
		{Text: "B"},
	}
	result, err := client.AddQuestionsToQuiz(ctx, "quiz1", questions)
	if err != nil {
		t.Fatalf("bulk add: %v", err)
	}
	if result.Status != http.StatusCreated {
		t.Fatalf("unexpected status %d", result.Status)
	}
	req, ok := server.LastRequest(http.MethodPost, "/quizzes/quiz1/questions")
	if !ok {
		t.Fatalf("bulk request not recorded")
	}
	items := testutil.DecodeJSON(t, req.Body).([]any)
	if len(items) != 2 {
		t.Fatalf("expected two items, got %d", len(items))
	}
	for i, item := range items {
		fields := item.(map[string]any)
		if _, present := fields["_id"]; present {
			t.Fatalf("item %d carries _id: %v", i, fields)
		}
		if _, ok := fields["options"].([]any); !ok {
			t.Fatalf("item %d options not an array: %v", i, fields["options"])
		}
	}

	// an empty batch still goes out as an array without ids
	if _, err := client.AddQuestionsToQuiz(ctx, "quiz1", nil); err != nil {
		t.Fatalf("empty bulk add: %v", err)
	}
	req, _ = server.LastRequest(http.MethodPost, "/quizzes/quiz1/questions")
	if string(req.Body) != "[]" {
		t.Fatalf("expected [] body, got %s", req.Body)
	}
}

// TestAddQuestionsToQuizRequiresCreated verifies any status other than 201 is a failure.
func TestAddQuestionsToQuizRequiresCreated(t *testing.T) {
	doer := &cannedDoer{status: http.StatusOK, body: `[]`}
	client := New("http://catalog.local", WithHTTPDoer(doer))

	_, err := client.AddQuestionsToQuiz(testutil.Context(t, 0), "quiz1", []catalog.Question{{Text: "A"}})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Status != http.StatusOK || remote.Message != "unexpected response status: 200" {
		t.Fatalf("unexpected remote error %+v", remote)
	}
}

// TestAddQuestionsToQuizServerFailure verifies a failing status keeps the server message.
func TestAddQuestionsToQuizServerFailure(t *testing.T) {
	client, server := newTestClient(t)
	server.SeedQuiz(catalog.Quiz{ID: "quiz1", Title: "T", Description: "D"})
	server.FailNext(http.MethodPost, "/quizzes/quiz1/questions", http.StatusInternalServerError)

	_, err := client.AddQuestionsToQuiz(testutil.Context(t, 0), "quiz1", []catalog.Question{{Text: "A"}})
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.Message != "injected failure" {
		t.Fatalf("unexpected error %v", err)
	}
}
