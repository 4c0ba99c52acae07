package catalog

import "strings"

// MatchesText reports whether text contains query, ignoring case.
// An empty query matches everything.
func MatchesText(text, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// FilterQuizzes returns the quizzes whose title matches query.
func FilterQuizzes(quizzes []Quiz, query string) []Quiz {
	if query == "" {
		return append([]Quiz(nil), quizzes...)
	}
	filtered := make([]Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if MatchesText(quiz.Title, query) {
			filtered = append(filtered, quiz)
		}
	}
	return filtered
}

// FilterQuestions returns the questions whose text matches query.
func FilterQuestions(questions []Question, query string) []Question {
	if query == "" {
		return append([]Question(nil), questions...)
	}
	filtered := make([]Question, 0, len(questions))
	for _, question := range questions {
		if MatchesText(question.Text, query) {
			filtered = append(filtered, question)
		}
	}
	return filtered
}

// WithoutQuiz returns quizzes minus every entry whose ID equals id.
func WithoutQuiz(quizzes []Quiz, id string) []Quiz {
	kept := make([]Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if quiz.ID != id {
			kept = append(kept, quiz)
		}
	}
	return kept
}

// WithoutQuestion returns questions minus every entry whose ID equals id.
func WithoutQuestion(questions []Question, id string) []Question {
	kept := make([]Question, 0, len(questions))
	for _, question := range questions {
		if question.ID != id {
			kept = append(kept, question)
		}
	}
	return kept
}
