package catalog

import "testing"

func sampleQuestions() []Question {
	return []Question{
		{ID: "q1", Text: "What is 2+2?"},
		{ID: "q2", Text: "Capital of FRANCE"},
		{ID: "q3", Text: "Largest planet"},
	}
}

// TestFilterQuestionsCaseInsensitive verifies substring matching ignores case.
func TestFilterQuestionsCaseInsensitive(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"q1", "q2", "q3"}},
		{query: "france", want: []string{"q2"}},
		{query: "PLAN", want: []string{"q3"}},
		{query: "a", want: []string{"q1", "q2", "q3"}},
		{query: "zebra", want: nil},
	}
	for _, tc := range cases {
		got := FilterQuestions(sampleQuestions(), tc.query)
		if len(got) != len(tc.want) {
			t.Fatalf("query %q: expected %d results, got %d", tc.query, len(tc.want), len(got))
		}
		for i, question := range got {
			if question.ID != tc.want[i] {
				t.Fatalf("query %q: expected %s at %d, got %s", tc.query, tc.want[i], i, question.ID)
			}
		}
	}
}

// TestFilterQuizzesMatchesTitle verifies quizzes are filtered by title only.
func TestFilterQuizzesMatchesTitle(t *testing.T) {
	quizzes := []Quiz{
		{ID: "a", Title: "Math basics", Description: "numbers"},
		{ID: "b", Title: "History", Description: "math of the past"},
	}
	got := FilterQuizzes(quizzes, "MATH")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only quiz a, got %+v", got)
	}
}

// TestFilterDoesNotAliasInput verifies the filtered slice can be modified freely.
func TestFilterDoesNotAliasInput(t *testing.T) {
	questions := sampleQuestions()
	got := FilterQuestions(questions, "")
	got[0].Text = "changed"
	if questions[0].Text == "changed" {
		t.Fatalf("expected filter to copy the slice")
	}
}

// TestWithoutRemovesByIdentity verifies removal matches ids, including duplicates.
func TestWithoutRemovesByIdentity(t *testing.T) {
	questions := append(sampleQuestions(), Question{ID: "q2", Text: "dup"})
	kept := WithoutQuestion(questions, "q2")
	if len(kept) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(kept))
	}
	for _, question := range kept {
		if question.ID == "q2" {
			t.Fatalf("expected q2 removed")
		}
	}
	quizzes := WithoutQuiz([]Quiz{{ID: "x"}, {ID: "y"}}, "missing")
	if len(quizzes) != 2 {
		t.Fatalf("expected no removal for unknown id")
	}
}
