package screen

import (
	"context"

	"quizdesk/pkg/catalog"
	"quizdesk/pkg/catalog/httpclient"
)

// QuizAPI is the part of the catalog client the quiz screens use.
type QuizAPI interface {
	ListQuizzes(ctx context.Context) ([]catalog.Quiz, error)
	GetQuiz(ctx context.Context, id string) (catalog.Quiz, error)
	GetQuizPopulated(ctx context.Context, id, keyword string) (catalog.Quiz, error)
	CreateQuiz(ctx context.Context, quiz catalog.Quiz) (catalog.Quiz, error)
	UpdateQuiz(ctx context.Context, id string, quiz catalog.Quiz) (catalog.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) (httpclient.Ack, error)
	AddQuestionToQuiz(ctx context.Context, quizID string, question catalog.Question) (httpclient.AttachResult, error)
	AddQuestionsToQuiz(ctx context.Context, quizID string, questions []catalog.Question) (httpclient.BulkResult, error)
}

// QuestionAPI is the part of the catalog client the question screens use.
type QuestionAPI interface {
	ListQuestions(ctx context.Context) ([]catalog.Question, error)
	GetQuestion(ctx context.Context, id string) (catalog.Question, error)
	CreateQuestion(ctx context.Context, question catalog.Question) (catalog.Question, error)
	UpdateQuestion(ctx context.Context, id string, question catalog.Question) (catalog.Question, error)
	DeleteQuestion(ctx context.Context, id string) (httpclient.Ack, error)
}

// CatalogAPI is the whole remote catalog.
type CatalogAPI interface {
	QuizAPI
	QuestionAPI
}

var _ CatalogAPI = (*httpclient.Client)(nil)
